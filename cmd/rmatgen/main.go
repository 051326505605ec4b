package main

import (
	"os"

	"github.com/regulomics/rmatgen/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
