package rulefile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()
	input := `# E. coli core regulation
b0001 (NOT(ArcA OR Fnr))

b0002: pr_Crp AND oxygen>0
"sigma factor": rpoD
`
	entries, err := Parse(strings.NewReader(input), "rules.txt")
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, Entry{File: "rules.txt", Line: 2, Target: "b0001", Rule: "(NOT(ArcA OR Fnr))"}, entries[0])
	assert.Equal(t, Entry{File: "rules.txt", Line: 4, Target: "b0002", Rule: "pr_Crp AND oxygen>0"}, entries[1])
	assert.Equal(t, Entry{File: "rules.txt", Line: 5, Target: "sigma_factor", Rule: "rpoD"}, entries[2])
}

func TestParseKeepsRuleTextVerbatim(t *testing.T) {
	t.Parallel()
	entries, err := Parse(strings.NewReader(`g1 "santa maria" AND luigi`), "rules.txt")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, `"santa maria" AND luigi`, entries[0].Rule)
}

func TestParseTargetWithoutRule(t *testing.T) {
	t.Parallel()
	_, err := Parse(strings.NewReader("b0001\n"), "rules.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rules.txt:1")
}

func TestSanitizeTarget(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input string
		want  string
	}{
		{"b0001", "b0001"},
		{`"sigma factor 70"`, "sigma_factor_70"},
		{"'PhoB'", "PhoB"},
		{"  spaced name  ", "spaced_name"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeTarget(tt.input))
	}
}

func TestLoadPlainText(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "rules.txt")
	require.NoError(t, os.WriteFile(path, []byte("b0001 ArcA AND Fnr\n"), 0o644))

	entries, err := Load(path)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "b0001", entries[0].Target)
	assert.Equal(t, "ArcA AND Fnr", entries[0].Rule)
	assert.Equal(t, path, entries[0].File)
}

func TestLoadGzip(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "rules.txt.gz")

	f, err := os.Create(path)
	require.NoError(t, err)
	zw := gzip.NewWriter(f)
	_, err = zw.Write([]byte("b0001: NOT ArcA\nb0002: Fnr\n"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	entries, err := Load(path)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "NOT ArcA", entries[0].Rule)
	assert.Equal(t, "b0002", entries[1].Target)
}

func TestLoadJSON(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "rules.json")
	content := `[
	  {"gene": "b0001", "rule": "(NOT(ArcA OR Fnr))"},
	  {"gene": "sigma factor", "rule": "rpoD"}
	]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	entries, err := Load(path)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, Entry{File: path, Line: 1, Target: "b0001", Rule: "(NOT(ArcA OR Fnr))"}, entries[0])
	assert.Equal(t, "sigma_factor", entries[1].Target)
}

func TestLoadGzippedJSON(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "rules.json.gz")

	f, err := os.Create(path)
	require.NoError(t, err)
	zw := gzip.NewWriter(f)
	_, err = zw.Write([]byte(`[{"gene": "b0001", "rule": "ArcA"}]`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	entries, err := Load(path)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "b0001", entries[0].Target)
}

func TestParseJSONErrors(t *testing.T) {
	t.Parallel()
	t.Run("top-level object", func(t *testing.T) {
		_, err := ParseJSON(strings.NewReader(`{"gene": "x"}`), "rules.json")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not an array")
	})

	t.Run("missing rule field", func(t *testing.T) {
		_, err := ParseJSON(strings.NewReader(`[{"gene": "x"}]`), "rules.json")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "entry 1")
	})

	t.Run("invalid JSON", func(t *testing.T) {
		_, err := ParseJSON(strings.NewReader(`[{`), "rules.json")
		require.Error(t, err)
	})
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()
	_, err := Load(filepath.Join(t.TempDir(), "absent.txt"))
	assert.Error(t, err)
}
