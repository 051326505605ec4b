// Package gen wires the rules-file loader, the rule pipeline, and the
// matrix builder into the batch generator behind the CLI.
package gen

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/regulomics/rmatgen/internal/matrix"
	"github.com/regulomics/rmatgen/internal/rule"
	"github.com/regulomics/rmatgen/internal/rulefile"
	"github.com/regulomics/rmatgen/internal/types"
)

// Generator converts rules files into an assembled R-matrix.
type Generator struct {
	opts   matrix.Options
	logger *zap.Logger

	watch watchState
}

// New creates a Generator with the given assembly options. A nil logger
// disables logging.
func New(opts matrix.Options, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{opts: opts, logger: logger}
}

// Options returns the assembly options the generator was built with.
func (g *Generator) Options() matrix.Options {
	return g.opts
}

// Load reads one rules file.
func (g *Generator) Load(path string) ([]rulefile.Entry, error) {
	entries, err := rulefile.Load(path)
	if err != nil {
		return nil, err
	}
	g.logger.Debug("loaded rules file",
		zap.String("path", path),
		zap.Int("rules", len(entries)))
	return entries, nil
}

// Convert runs one rule through the normalization pipeline, tracing every
// stage at debug level. Failures come back as *ConvertError carrying the
// source location of the rule.
func (g *Generator) Convert(entry rulefile.Entry) ([]rule.Equation, error) {
	if err := rule.Validate(entry.Rule); err != nil {
		return nil, &ConvertError{Entry: entry, Err: err}
	}

	reformatted := rule.Reformat(entry.Rule)
	prefix := rule.InfixToPrefix(strings.Fields(reformatted))
	g.logger.Debug("normalized rule",
		zap.String("target", entry.Target),
		zap.String("reformatted", reformatted),
		zap.String("prefix", strings.Join(prefix, " ")))

	root, err := rule.BuildTree(prefix)
	if err != nil {
		return nil, &ConvertError{Entry: entry, Err: err}
	}
	dnf, err := rule.Evaluate(root)
	if err != nil {
		return nil, &ConvertError{Entry: entry, Err: err}
	}
	g.logger.Debug("reduced rule",
		zap.String("target", entry.Target),
		zap.String("dnf", dnf),
		zap.Int("clauses", len(rule.Clauses(dnf))))

	return rule.Equations(entry.Target, dnf), nil
}

// Assemble builds the matrix from per-rule equation lists, preserving rule
// order.
func (g *Generator) Assemble(converted [][]rule.Equation) *matrix.Matrix {
	b := matrix.NewBuilder(g.opts)
	for _, eqs := range converted {
		b.AddEquations(eqs)
	}
	return b.Build()
}

// ConvertError wraps a pipeline failure with the location of the rule that
// caused it.
type ConvertError struct {
	Entry rulefile.Entry
	Err   error
}

func (e *ConvertError) Error() string {
	if e.Entry.File == "" {
		return fmt.Sprintf("rule %s: %v", e.Entry.Target, e.Err)
	}
	return fmt.Sprintf("%s:%d: rule %s: %v", e.Entry.File, e.Entry.Line, e.Entry.Target, e.Err)
}

func (e *ConvertError) Unwrap() error { return e.Err }

// Diagnostic renders the failure for the caret formatter.
func (e *ConvertError) Diagnostic() types.Diagnostic {
	d := types.Diagnostic{
		Filename: e.Entry.File,
		Line:     e.Entry.Line,
		Message:  e.Err.Error(),
		RuleText: e.Entry.Rule,
	}

	var malformed *rule.MalformedInputError
	var structural *rule.StructuralParseError
	var incomplete *rule.IncompleteOperatorError
	switch {
	case errors.As(e.Err, &malformed):
		d.Code = types.CodeMalformedInput
		d.Message = malformed.Reason
		if malformed.Offset >= 0 {
			d.Column = malformed.Offset + 1
		}
	case errors.As(e.Err, &structural):
		d.Code = types.CodeStructuralParse
		d.Message = structural.Reason
		if len(structural.Prefix) > 0 {
			d.Note = "prefix form: " + strings.Join(structural.Prefix, " ")
		}
	case errors.As(e.Err, &incomplete):
		d.Code = types.CodeIncompleteOperator
	default:
		d.Code = types.CodeInvalidRuleFile
	}
	return d
}
