// Package rulefile reads boolean rule sets from disk. Plain-text files
// carry one rule per line; gzip-compressed files are decompressed
// transparently and .json files are parsed as structured rule sets.
package rulefile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/klauspost/compress/gzip"
	"github.com/valyala/fastjson"
)

// Entry is one target/rule pair read from a rules file.
type Entry struct {
	File   string
	Line   int
	Target string
	Rule   string
}

// Load reads a rules file, picking the format from the file name: a .gz
// suffix selects transparent gzip decompression, a .json suffix (before
// any .gz) selects the JSON rule-set format, and anything else reads as
// plain text.
func Load(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	name := path
	if strings.HasSuffix(path, ".gz") {
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("open gzip %s: %w", path, err)
		}
		defer zr.Close()
		r = zr
		name = strings.TrimSuffix(path, ".gz")
	}

	if strings.HasSuffix(name, ".json") {
		return ParseJSON(r, path)
	}
	return Parse(r, path)
}

// Parse reads plain-text rules from r: one rule per line, blank lines and
// #-comments skipped. A "GENE: rule" line converts its first colon to a
// space; the first whitespace-delimited field is the target, the rest of
// the line is the rule text.
func Parse(r io.Reader, name string) ([]Entry, error) {
	var entries []Entry
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNum := 0
	for sc.Scan() {
		lineNum++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if i := strings.IndexByte(line, ':'); i >= 0 {
			line = strings.TrimSpace(line[:i]) + " " + strings.TrimSpace(line[i+1:])
		}

		target, ruleText, ok := splitTarget(line)
		if !ok {
			return nil, fmt.Errorf("%s:%d: line has a target but no rule text", name, lineNum)
		}
		entries = append(entries, Entry{
			File:   name,
			Line:   lineNum,
			Target: SanitizeTarget(target),
			Rule:   ruleText,
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return entries, nil
}

// splitTarget cuts the first field off the line, keeping the remainder
// verbatim so that quoting inside the rule survives. A target enclosed in
// quotes may itself contain spaces.
func splitTarget(line string) (target, rest string, ok bool) {
	if c := line[0]; c == '"' || c == '\'' {
		if end := strings.IndexByte(line[1:], c); end >= 0 {
			rest = strings.TrimSpace(line[end+2:])
			if rest == "" {
				return "", "", false
			}
			return line[:end+2], rest, true
		}
	}
	i := strings.IndexFunc(line, unicode.IsSpace)
	if i < 0 {
		return "", "", false
	}
	rest = strings.TrimSpace(line[i:])
	if rest == "" {
		return "", "", false
	}
	return line[:i], rest, true
}

// SanitizeTarget strips surrounding quotes from a target name and joins
// any internal whitespace with underscores, mirroring how the rule
// pipeline merges quoted operand names.
func SanitizeTarget(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"'`)
	return strings.Join(strings.Fields(s), "_")
}

// ParseJSON reads a JSON rule set from r: a top-level array of objects
// with "gene" and "rule" string fields.
func ParseJSON(r io.Reader, name string) ([]Entry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}

	var p fastjson.Parser
	v, err := p.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	items, err := v.Array()
	if err != nil {
		return nil, fmt.Errorf("parse %s: top-level value is not an array: %w", name, err)
	}

	entries := make([]Entry, 0, len(items))
	for i, item := range items {
		gene := string(item.GetStringBytes("gene"))
		ruleText := string(item.GetStringBytes("rule"))
		if gene == "" || ruleText == "" {
			return nil, fmt.Errorf("%s: entry %d is missing its gene or rule field", name, i+1)
		}
		entries = append(entries, Entry{
			File:   name,
			Line:   i + 1,
			Target: SanitizeTarget(gene),
			Rule:   ruleText,
		})
	}
	return entries, nil
}
