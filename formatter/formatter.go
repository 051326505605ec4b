// Package formatter renders equations and conversion diagnostics for the
// terminal.
package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/regulomics/rmatgen/internal/rule"
	"github.com/regulomics/rmatgen/internal/types"
)

const tabWidth = 8

var (
	errorStyle   = color.New(color.FgRed, color.Bold)
	codeStyle    = color.New(color.FgYellow, color.Bold)
	fileStyle    = color.New(color.FgCyan, color.Bold)
	lineStyle    = color.New(color.FgHiBlue, color.Bold)
	messageStyle = color.New(color.FgRed, color.Bold)
	targetStyle  = color.New(color.FgCyan, color.Bold)
	coeffStyle   = color.New(color.FgYellow)
	noteStyle    = color.New(color.FgGreen, color.Bold)
)

// FormatEquations renders equations one per line, each prefixed with its
// target label.
func FormatEquations(eqs []rule.Equation) string {
	var b strings.Builder
	for _, eq := range eqs {
		b.WriteString(targetStyle.Sprint(eq.Target))
		b.WriteString(": ")
		for i, t := range eq.Terms {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(coeffStyle.Sprintf("%+d", t.Coeff))
			b.WriteByte(' ')
			b.WriteString(t.Literal)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// FormatDiagnostic renders a failed rule with a caret pointing at the
// offending column of the rule text, in the style of compiler diagnostics.
func FormatDiagnostic(d types.Diagnostic) string {
	var b strings.Builder

	b.WriteString(errorStyle.Sprint("error: "))
	b.WriteString(codeStyle.Sprintf("%s\n", d.Code))

	loc := d.Filename
	if loc == "" {
		loc = "rule"
	}
	if d.Line > 0 {
		loc = fmt.Sprintf("%s:%d", loc, d.Line)
	}
	b.WriteString(lineStyle.Sprint(" --> "))
	b.WriteString(fileStyle.Sprintf("%s\n", loc))

	if d.RuleText == "" {
		b.WriteString(lineStyle.Sprint("  = "))
		b.WriteString(messageStyle.Sprintf("%s\n", d.Message))
		return b.String()
	}

	gutter := strconv.Itoa(d.Line)
	pad := strings.Repeat(" ", len(gutter)+1)
	expanded := expandTabs(d.RuleText)

	b.WriteString(lineStyle.Sprintf("%s|\n", pad))
	b.WriteString(lineStyle.Sprintf("%s | ", gutter))
	b.WriteString(expanded)
	b.WriteByte('\n')
	b.WriteString(lineStyle.Sprintf("%s| ", pad))
	if d.Column > 0 {
		b.WriteString(strings.Repeat(" ", visualColumn(d.RuleText, d.Column)))
		b.WriteString(messageStyle.Sprintf("^ %s\n", d.Message))
	} else {
		b.WriteString(messageStyle.Sprintf("%s\n", d.Message))
	}

	if d.Note != "" {
		b.WriteString(noteStyle.Sprint("note: "))
		b.WriteString(d.Note)
		b.WriteByte('\n')
	}
	return b.String()
}

// expandTabs replaces tab characters with spaces, assuming a tab width of 8.
func expandTabs(line string) string {
	var expanded strings.Builder
	column := 0
	for _, ch := range line {
		if ch == '\t' {
			spaces := tabWidth - (column % tabWidth)
			for i := 0; i < spaces; i++ {
				expanded.WriteByte(' ')
				column++
			}
		} else {
			expanded.WriteRune(ch)
			column++
		}
	}
	return expanded.String()
}

// visualColumn converts a 1-based byte column into the visual position in
// the tab-expanded line.
func visualColumn(line string, column int) int {
	if column < 0 {
		return 0
	}
	visual := 0
	for i, ch := range line {
		if i+1 >= column {
			break
		}
		if ch == '\t' {
			visual += tabWidth - (visual % tabWidth)
		} else {
			visual++
		}
	}
	return visual
}
