// Package report renders an assembled matrix as a self-contained HTML
// page.
package report

import (
	"embed"
	"io"

	"github.com/google/safehtml/template"

	"github.com/regulomics/rmatgen/internal/matrix"
)

//go:embed templates/*
var templateFS embed.FS

// Renderer renders matrices with the embedded report template.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded report template.
func NewRenderer() (*Renderer, error) {
	trustedFS := template.TrustedFSFromEmbed(templateFS)

	tmpl, err := template.New("report.html").ParseFS(trustedFS, "templates/report.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render writes the HTML report for m to w.
func (r *Renderer) Render(w io.Writer, title string, m *matrix.Matrix) error {
	return r.tmpl.Execute(w, buildViewModel(title, m))
}

// ViewModel flattens a matrix for template consumption.
type ViewModel struct {
	Title       string
	Labels      []string
	Rows        []Row
	VarCount    int
	ColumnCount int
}

// Row is one variable row with its coefficient in every column.
type Row struct {
	Variable string
	Cells    []int
}

func buildViewModel(title string, m *matrix.Matrix) ViewModel {
	vm := ViewModel{
		Title:       title,
		Labels:      make([]string, 0, len(m.Columns)),
		Rows:        make([]Row, 0, len(m.Vars)),
		VarCount:    len(m.Vars),
		ColumnCount: len(m.Columns),
	}
	for _, c := range m.Columns {
		vm.Labels = append(vm.Labels, c.Label)
	}
	for _, v := range m.Vars {
		cells := make([]int, 0, len(m.Columns))
		for _, c := range m.Columns {
			cells = append(cells, c.Coeffs[v])
		}
		vm.Rows = append(vm.Rows, Row{Variable: v, Cells: cells})
	}
	return vm
}
