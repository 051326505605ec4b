package matrix

import (
	"sort"
	"strings"
)

// proteinBase returns the protein base encoded by a variable name, or ""
// when the variable does not name a protein state. Gene-activity variables
// never do, whatever their prefix.
func (b *Builder) proteinBase(v string) string {
	if strings.HasSuffix(v, b.opts.GeneSuffix) {
		return ""
	}
	notProtein := b.opts.NotPrefix + b.opts.ProteinPrefix
	switch {
	case strings.HasPrefix(v, notProtein):
		return strings.TrimPrefix(v, notProtein)
	case strings.HasPrefix(v, b.opts.ProteinPrefix):
		return strings.TrimPrefix(v, b.opts.ProteinPrefix)
	case strings.HasPrefix(v, b.opts.NotPrefix):
		// a bare NOT_SREBP1 style literal also defines the base SREBP1
		return strings.TrimPrefix(v, b.opts.NotPrefix)
	}
	return ""
}

func (b *Builder) proteinBases() []string {
	bases := make(map[string]struct{})
	for _, v := range b.vars {
		if base := b.proteinBase(v); base != "" {
			bases[base] = struct{}{}
		}
	}
	return sortedKeys(bases)
}

func (b *Builder) geneBases() []string {
	bases := make(map[string]struct{})
	for _, v := range b.vars {
		if strings.HasSuffix(v, b.opts.GeneSuffix) {
			bases[strings.TrimSuffix(v, b.opts.GeneSuffix)] = struct{}{}
		}
	}
	return sortedKeys(bases)
}

// normalizeProteinRows ensures that every protein base referenced anywhere
// in the matrix has both its pr_<base> and NOT_pr_<base> rows, with zero
// coefficients when never referenced directly.
func (b *Builder) normalizeProteinRows() {
	for _, base := range b.proteinBases() {
		b.addVar(b.opts.ProteinPrefix + base)
		b.addVar(b.opts.NotPrefix + b.opts.ProteinPrefix + base)
	}
}

// appendExchangeColumns adds one EX_<gene> column per gene-activity row,
// carrying -1 on that row.
func (b *Builder) appendExchangeColumns() {
	for _, gene := range b.geneBases() {
		row := gene + b.opts.GeneSuffix
		b.columns = append(b.columns, Column{
			Label:  b.opts.ExchangePrefix + gene,
			Coeffs: map[string]int{row: -1},
		})
	}
}

// appendAvailabilityColumns adds one AV_<base> column per protein base,
// carrying +1 on whichever of the pr_<base>, NOT_pr_<base>, and NOT_<base>
// rows exist. After normalization the first two always do.
func (b *Builder) appendAvailabilityColumns() {
	for _, base := range b.proteinBases() {
		coeffs := make(map[string]int, 3)
		candidates := []string{
			b.opts.ProteinPrefix + base,
			b.opts.NotPrefix + b.opts.ProteinPrefix + base,
			b.opts.NotPrefix + base,
		}
		for _, row := range candidates {
			if b.hasVar(row) {
				coeffs[row] = 1
			}
		}
		if len(coeffs) == 0 {
			continue
		}
		b.columns = append(b.columns, Column{
			Label:  b.opts.AvailabilityPrefix + base,
			Coeffs: coeffs,
		})
	}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
