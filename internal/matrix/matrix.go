// Package matrix assembles R-matrix equations into the regulatory
// constraint matrix: one column per equation, one row per variable, with
// repeated literals inside an equation summing into a single coefficient.
// Assembly can derive the companion rows and columns of the regulatory
// model: paired protein-state rows, exchange columns for gene activities,
// and availability columns for proteins.
package matrix

import (
	"sort"

	"github.com/regulomics/rmatgen/internal/rule"
)

// Options control the naming conventions and derived structure of matrix
// assembly.
type Options struct {
	// GeneSuffix marks gene-activity variables, e.g. "b0001_AC".
	GeneSuffix string
	// ProteinPrefix marks present-protein variables, e.g. "pr_ArcA".
	ProteinPrefix string
	// NotPrefix marks negated literals, e.g. "NOT_ArcA".
	NotPrefix string
	// ExchangePrefix names the derived exchange columns, e.g. "EX_b0001".
	ExchangePrefix string
	// AvailabilityPrefix names the derived availability columns, e.g. "AV_ArcA".
	AvailabilityPrefix string

	// NormalizeProteins pairs every referenced protein state with its
	// complement row.
	NormalizeProteins bool
	// EmitExchange appends one exchange column per gene-activity row.
	EmitExchange bool
	// EmitAvailability appends one availability column per protein base.
	EmitAvailability bool
}

// DefaultOptions returns the conventions of the E. coli regulatory model.
func DefaultOptions() Options {
	return Options{
		GeneSuffix:         "_AC",
		ProteinPrefix:      "pr_",
		NotPrefix:          "NOT_",
		ExchangePrefix:     "EX_",
		AvailabilityPrefix: "AV_",
		NormalizeProteins:  true,
		EmitExchange:       true,
		EmitAvailability:   true,
	}
}

// Column is one labeled matrix column mapping variable names to summed
// coefficients. Variables absent from Coeffs are zero.
type Column struct {
	Label  string
	Coeffs map[string]int
}

// Builder accumulates equations into columns and registers variables in
// first-seen order. It is not safe for concurrent use; convert rules in
// parallel and feed the builder from one goroutine.
type Builder struct {
	opts     Options
	columns  []Column
	vars     []string
	varIndex map[string]struct{}
}

// NewBuilder returns an empty Builder with the given options.
func NewBuilder(opts Options) *Builder {
	return &Builder{
		opts:     opts,
		varIndex: make(map[string]struct{}),
	}
}

func (b *Builder) addVar(name string) {
	if _, ok := b.varIndex[name]; ok {
		return
	}
	b.varIndex[name] = struct{}{}
	b.vars = append(b.vars, name)
}

func (b *Builder) hasVar(name string) bool {
	_, ok := b.varIndex[name]
	return ok
}

// AddEquation appends one column labeled with the equation target. A
// literal repeated within the equation sums its coefficients, so a clause
// regulating its own target nets to zero on that row.
func (b *Builder) AddEquation(eq rule.Equation) {
	coeffs := make(map[string]int, len(eq.Terms))
	for _, t := range eq.Terms {
		coeffs[t.Literal] += t.Coeff
		b.addVar(t.Literal)
	}
	b.columns = append(b.columns, Column{Label: eq.Target, Coeffs: coeffs})
}

// AddEquations appends the columns of eqs in order.
func (b *Builder) AddEquations(eqs []rule.Equation) {
	for _, eq := range eqs {
		b.AddEquation(eq)
	}
}

// Build finalizes the matrix: protein rows are normalized and the derived
// exchange and availability columns appended, as enabled by the options.
// Rows come out sorted by variable name; columns keep insertion order with
// derived columns last. Call Build once, after all equations are added; a
// second call would append the derived columns again.
func (b *Builder) Build() *Matrix {
	if b.opts.NormalizeProteins {
		b.normalizeProteinRows()
	}
	if b.opts.EmitExchange {
		b.appendExchangeColumns()
	}
	if b.opts.EmitAvailability {
		b.appendAvailabilityColumns()
	}

	vars := make([]string, len(b.vars))
	copy(vars, b.vars)
	sort.Strings(vars)

	columns := make([]Column, len(b.columns))
	copy(columns, b.columns)

	return &Matrix{Vars: vars, Columns: columns}
}

// Matrix is an assembled R-matrix: sorted variable rows and ordered
// labeled columns.
type Matrix struct {
	Vars    []string
	Columns []Column
}

// Coeff returns the coefficient of variable v in column j.
func (m *Matrix) Coeff(v string, j int) int {
	return m.Columns[j].Coeffs[v]
}
