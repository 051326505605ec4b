package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/regulomics/rmatgen"
	"github.com/regulomics/rmatgen/formatter"
	"github.com/regulomics/rmatgen/internal/gen"
	"github.com/regulomics/rmatgen/internal/rule"
	"github.com/regulomics/rmatgen/internal/rulefile"
)

var (
	ruleTarget     string
	ruleShowPrefix bool
	ruleShowDNF    bool
	ruleJsonOutput bool
	ruleOutPath    string
)

var ruleCmd = &cobra.Command{
	Use:   "rule [rule text]",
	Short: "Convert a single boolean rule and print its equations",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide the rule text")
			os.Exit(1)
		}

		raw := strings.Join(args, " ")
		target := rulefile.SanitizeTarget(ruleTarget)

		// without a target there are no equations to print, so the
		// intermediate forms become the output
		showPrefix := ruleShowPrefix || target == ""
		showDNF := ruleShowDNF || target == ""

		if err := convertRule(target, raw, showPrefix, showDNF, ruleJsonOutput, ruleOutPath); err != nil {
			printDiagnostic(target, raw, err)
			os.Exit(1)
		}
	},
}

func init() {
	ruleCmd.Flags().StringVarP(&ruleTarget, "target", "t", "", "Target variable of the rule (enables equation output)")
	ruleCmd.Flags().BoolVar(&ruleShowPrefix, "prefix", false, "Also print the prefix form")
	ruleCmd.Flags().BoolVar(&ruleShowDNF, "dnf", false, "Also print the disjunctive normal form")
	ruleCmd.Flags().BoolVar(&ruleJsonOutput, "json", false, "Output the converted forms in JSON format")
	ruleCmd.Flags().StringVarP(&ruleOutPath, "output", "o", "", "Output path (when using JSON)")
}

type convertedRule struct {
	Target    string         `json:"target,omitempty"`
	Prefix    string         `json:"prefix"`
	DNF       string         `json:"dnf"`
	Clauses   []string       `json:"clauses"`
	Equations []equationJSON `json:"equations,omitempty"`
}

type equationJSON struct {
	Target string     `json:"target"`
	Terms  []termJSON `json:"terms"`
}

type termJSON struct {
	Coeff   int    `json:"coeff"`
	Literal string `json:"literal"`
}

func convertRule(target, raw string, showPrefix, showDNF, isJson bool, jsonOutput string) error {
	prefix, err := rmatgen.Normalize(raw)
	if err != nil {
		return err
	}
	dnf, err := rmatgen.ToDNF(raw)
	if err != nil {
		return err
	}

	var eqs []rmatgen.Equation
	if target != "" {
		eqs, err = rmatgen.ToEquations(target, raw)
		if err != nil {
			return err
		}
	}

	if isJson {
		return printRuleJSON(target, prefix, dnf, eqs, jsonOutput)
	}

	if showPrefix {
		fmt.Printf("prefix: %s\n", prefix)
	}
	if showDNF {
		fmt.Printf("dnf:    %s\n", dnf)
	}
	if len(eqs) > 0 {
		fmt.Print(formatter.FormatEquations(eqs))
	}
	return nil
}

func printRuleJSON(target, prefix, dnf string, eqs []rmatgen.Equation, jsonOutput string) error {
	converted := convertedRule{
		Target:  target,
		Prefix:  prefix,
		DNF:     dnf,
		Clauses: rule.Clauses(dnf),
	}
	for _, eq := range eqs {
		ej := equationJSON{Target: eq.Target}
		for _, t := range eq.Terms {
			ej.Terms = append(ej.Terms, termJSON{Coeff: t.Coeff, Literal: t.Literal})
		}
		converted.Equations = append(converted.Equations, ej)
	}

	d, err := json.Marshal(converted)
	if err != nil {
		return err
	}
	if jsonOutput == "" {
		fmt.Println(string(d))
		return nil
	}

	f, err := os.Create(jsonOutput)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.Write(d)
	return err
}

// printDiagnostic renders a conversion failure with the caret formatter.
// Errors from ProcessFiles already carry their rule location; bare pipeline
// errors are wrapped as an ad-hoc single-rule entry first. Errors with no
// rule text at all, such as a rules file that fails to load, print as a
// plain error line.
func printDiagnostic(target, raw string, err error) {
	var convErr *gen.ConvertError
	switch {
	case errors.As(err, &convErr):
	case raw != "":
		convErr = &gen.ConvertError{
			Entry: rulefile.Entry{Line: 1, Target: target, Rule: raw},
			Err:   err,
		}
	default:
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	fmt.Fprintln(os.Stderr, formatter.FormatDiagnostic(convErr.Diagnostic()))
	if logger != nil {
		logger.Debug("rule conversion failed", zap.Error(err))
	}
}
