package cmd

import (
	"fmt"

	"os"

	"github.com/regulomics/rmatgen"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// initCmd: rmatgen init
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new generator configuration file",
	Run: func(cmd *cobra.Command, args []string) {
		path := cfgFile
		if path == "" {
			path = ".rmatgen.yaml"
		}
		if err := initConfigurationFile(path); err != nil {
			logger.Error("Error initializing config file", zap.Error(err))
			return
		}
		fmt.Printf("Configuration file created/updated: %s\n", path)
	},
}

func initConfigurationFile(configurationPath string) error {
	// Create a yaml file with the default conventions
	config := rmatgen.DefaultConfig()
	d, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	f, err := os.Create(configurationPath)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(d)
	if err != nil {
		return err
	}

	return nil
}
