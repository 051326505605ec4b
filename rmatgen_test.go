package rmatgen

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/regulomics/rmatgen/internal/gen"
	"github.com/regulomics/rmatgen/internal/matrix"
)

func TestLoadConfigDefaultPath(t *testing.T) {
	config, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), config)
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), ".rmatgen.yaml")
	content := `name: ecoli-core
matrix:
  gene-suffix: _ACT
  emit-availability: false
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o644))

	config, err := LoadConfig(configPath)
	require.NoError(t, err)

	assert.Equal(t, "ecoli-core", config.Name)
	assert.Equal(t, "_ACT", config.Matrix.GeneSuffix)
	assert.False(t, config.Matrix.EmitAvailability)

	// keys absent from the file keep their defaults
	assert.Equal(t, "pr_", config.Matrix.ProteinPrefix)
	assert.True(t, config.Matrix.NormalizeProteins)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig("no-such-config.yaml")
	assert.Error(t, err)
}

func TestNewUsesDefaultsForEmptyPath(t *testing.T) {
	g, err := New("", zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, matrix.DefaultOptions(), g.Options())
}

func TestProcessRules(t *testing.T) {
	g, err := New("", zap.NewNop())
	require.NoError(t, err)

	rules := []RuleInput{
		{Target: "b0001_AC", Rule: "NOT (pr_ArcA OR pr_Fnr)"},
	}

	m, err := ProcessRules(context.Background(), zap.NewNop(), g, rules)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"NOT_pr_ArcA",
		"NOT_pr_Fnr",
		"b0001_AC",
		"pr_ArcA",
		"pr_Fnr",
	}, m.Vars)

	labels := make([]string, 0, len(m.Columns))
	for _, col := range m.Columns {
		labels = append(labels, col.Label)
	}
	assert.Equal(t, []string{"b0001_AC", "EX_b0001", "AV_ArcA", "AV_Fnr"}, labels)

	assert.Equal(t, -1, m.Coeff("NOT_pr_ArcA", 0))
	assert.Equal(t, -1, m.Coeff("NOT_pr_Fnr", 0))
	assert.Equal(t, 1, m.Coeff("b0001_AC", 0))
	assert.Equal(t, -1, m.Coeff("b0001_AC", 1))
	assert.Equal(t, 1, m.Coeff("pr_ArcA", 2))
	assert.Equal(t, 1, m.Coeff("NOT_pr_ArcA", 2))
}

func TestProcessRulesReportsFirstBrokenRule(t *testing.T) {
	g, err := New("", zap.NewNop())
	require.NoError(t, err)

	rules := []RuleInput{
		{Target: "b0001_AC", Rule: "pr_ArcA"},
		{Target: "b0002_AC", Rule: "(pr_Crp"},
		{Target: "b0003_AC", Rule: "pr_Fnr OR"},
	}

	_, err = ProcessRules(context.Background(), zap.NewNop(), g, rules)
	require.Error(t, err)

	var convErr *gen.ConvertError
	require.True(t, errors.As(err, &convErr))
	assert.Equal(t, 2, convErr.Entry.Line)
	assert.Equal(t, "b0002_AC", convErr.Entry.Target)
}

func TestProcessFiles(t *testing.T) {
	rulesPath := filepath.Join(t.TempDir(), "core.txt")
	content := `# core regulators
b0001_AC: NOT (pr_ArcA OR pr_Fnr)
b0002_AC: pr_Crp
`
	require.NoError(t, os.WriteFile(rulesPath, []byte(content), 0o644))

	g, err := New("", zap.NewNop())
	require.NoError(t, err)

	m, err := ProcessFiles(context.Background(), zap.NewNop(), g, []string{rulesPath})
	require.NoError(t, err)

	assert.Len(t, m.Vars, 8)

	labels := make([]string, 0, len(m.Columns))
	for _, col := range m.Columns {
		labels = append(labels, col.Label)
	}
	assert.Equal(t, []string{
		"b0001_AC",
		"b0002_AC",
		"EX_b0001",
		"EX_b0002",
		"AV_ArcA",
		"AV_Crp",
		"AV_Fnr",
	}, labels)
}

func TestProcessFilesMissingFile(t *testing.T) {
	g, err := New("", zap.NewNop())
	require.NoError(t, err)

	_, err = ProcessFiles(context.Background(), zap.NewNop(), g, []string{"no-such-rules.txt"})
	assert.Error(t, err)
}

func TestProcessFilesCanceledContext(t *testing.T) {
	rulesPath := filepath.Join(t.TempDir(), "core.txt")
	require.NoError(t, os.WriteFile(rulesPath, []byte("b0001_AC: pr_ArcA\n"), 0o644))

	g, err := New("", zap.NewNop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = ProcessFiles(ctx, zap.NewNop(), g, []string{rulesPath})
	assert.ErrorIs(t, err, context.Canceled)
}
