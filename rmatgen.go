// Package rmatgen converts boolean gene-regulation rules into R-matrix
// equations and assembles them into the regulatory constraint matrix.
package rmatgen

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/regulomics/rmatgen/internal/gen"
	"github.com/regulomics/rmatgen/internal/matrix"
	"github.com/regulomics/rmatgen/internal/rule"
	"github.com/regulomics/rmatgen/internal/rulefile"
)

// Equation is one R-matrix implication clause.
type Equation = rule.Equation

// Term is one signed operand of an equation.
type Term = rule.Term

// Engine is the conversion surface ProcessFiles drives. *gen.Generator
// implements it.
type Engine interface {
	Load(path string) ([]rulefile.Entry, error)
	Convert(entry rulefile.Entry) ([]rule.Equation, error)
	Assemble(converted [][]rule.Equation) *matrix.Matrix
}

// New creates a generator configured from the YAML file at
// configurationPath. An empty path selects the built-in defaults.
func New(configurationPath string, logger *zap.Logger) (*gen.Generator, error) {
	config, err := LoadConfig(configurationPath)
	if err != nil {
		return nil, err
	}
	return gen.New(config.MatrixOptions(), logger), nil
}

// Normalize returns the prefix form of one boolean rule.
func Normalize(raw string) (string, error) { return rule.Normalize(raw) }

// ToDNF returns the disjunctive normal form of one boolean rule.
func ToDNF(raw string) (string, error) { return rule.ToDNF(raw) }

// ToEquations converts one boolean rule into its R-matrix equations for
// the given target variable.
func ToEquations(target, raw string) ([]Equation, error) {
	return rule.ToEquations(target, raw)
}

// RuleInput is one target/rule pair supplied directly, without a file.
type RuleInput struct {
	Target string
	Rule   string
}

// ProcessFiles loads every rules file, converts the rules concurrently,
// and assembles the R-matrix. The first rule that fails conversion aborts
// the run, in file order, and comes back as a *gen.ConvertError.
func ProcessFiles(ctx context.Context, logger *zap.Logger, engine Engine, paths []string) (*matrix.Matrix, error) {
	var entries []rulefile.Entry
	for _, path := range paths {
		loaded, err := engine.Load(path)
		if err != nil {
			if logger != nil {
				logger.Error("Error loading rules file", zap.String("path", path), zap.Error(err))
			}
			return nil, err
		}
		entries = append(entries, loaded...)
	}
	return processEntries(ctx, logger, engine, entries)
}

// ProcessRules converts in-memory rules and assembles the R-matrix, with
// the same semantics as ProcessFiles.
func ProcessRules(ctx context.Context, logger *zap.Logger, engine Engine, rules []RuleInput) (*matrix.Matrix, error) {
	entries := make([]rulefile.Entry, 0, len(rules))
	for i, r := range rules {
		entries = append(entries, rulefile.Entry{
			Line:   i + 1,
			Target: rulefile.SanitizeTarget(r.Target),
			Rule:   r.Rule,
		})
	}
	return processEntries(ctx, logger, engine, entries)
}

func processEntries(ctx context.Context, logger *zap.Logger, engine Engine, entries []rulefile.Entry) (*matrix.Matrix, error) {
	converted := make([][]rule.Equation, len(entries))
	errs := make([]error, len(entries))

	// limit the number of workers
	maxWorkers := runtime.NumCPU()
	sem := make(chan struct{}, maxWorkers)
	var wg sync.WaitGroup

	// the bar goes to stderr so that a matrix written to stdout stays clean
	bar := progressbar.NewOptions(len(entries),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("converting rules"),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))

	for i, entry := range entries {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return nil, err
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, entry rulefile.Entry) {
			defer wg.Done()
			defer func() { <-sem }()

			converted[i], errs[i] = engine.Convert(entry)
			bar.Add(1)
		}(i, entry)
	}
	wg.Wait()
	fmt.Fprintln(os.Stderr)

	// report the first broken rule in file order
	for _, err := range errs {
		if err != nil {
			if logger != nil {
				logger.Error("Error converting rule", zap.Error(err))
			}
			return nil, err
		}
	}

	return engine.Assemble(converted), nil
}

// Config is the on-disk configuration of the generator.
type Config struct {
	Name   string       `yaml:"name"`
	Matrix MatrixConfig `yaml:"matrix"`
}

// MatrixConfig mirrors matrix.Options in YAML form.
type MatrixConfig struct {
	GeneSuffix         string `yaml:"gene-suffix"`
	ProteinPrefix      string `yaml:"protein-prefix"`
	NotPrefix          string `yaml:"not-prefix"`
	ExchangePrefix     string `yaml:"exchange-prefix"`
	AvailabilityPrefix string `yaml:"availability-prefix"`
	NormalizeProteins  bool   `yaml:"normalize-proteins"`
	EmitExchange       bool   `yaml:"emit-exchange"`
	EmitAvailability   bool   `yaml:"emit-availability"`
}

// DefaultConfig returns the conventions of the E. coli regulatory model.
func DefaultConfig() Config {
	opts := matrix.DefaultOptions()
	return Config{
		Name: "rmatgen",
		Matrix: MatrixConfig{
			GeneSuffix:         opts.GeneSuffix,
			ProteinPrefix:      opts.ProteinPrefix,
			NotPrefix:          opts.NotPrefix,
			ExchangePrefix:     opts.ExchangePrefix,
			AvailabilityPrefix: opts.AvailabilityPrefix,
			NormalizeProteins:  opts.NormalizeProteins,
			EmitExchange:       opts.EmitExchange,
			EmitAvailability:   opts.EmitAvailability,
		},
	}
}

// LoadConfig reads the YAML configuration file, decoding over the
// defaults so that absent keys keep their default values. An empty path
// returns the defaults unchanged.
func LoadConfig(configurationPath string) (Config, error) {
	config := DefaultConfig()
	if configurationPath == "" {
		return config, nil
	}

	f, err := os.Open(configurationPath)
	if err != nil {
		return config, err
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&config); err != nil {
		return config, err
	}
	return config, nil
}

// MatrixOptions converts the configuration into assembly options.
func (c Config) MatrixOptions() matrix.Options {
	return matrix.Options{
		GeneSuffix:         c.Matrix.GeneSuffix,
		ProteinPrefix:      c.Matrix.ProteinPrefix,
		NotPrefix:          c.Matrix.NotPrefix,
		ExchangePrefix:     c.Matrix.ExchangePrefix,
		AvailabilityPrefix: c.Matrix.AvailabilityPrefix,
		NormalizeProteins:  c.Matrix.NormalizeProteins,
		EmitExchange:       c.Matrix.EmitExchange,
		EmitAvailability:   c.Matrix.EmitAvailability,
	}
}
