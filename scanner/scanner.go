// Package scanner discovers rules files under a directory tree.
package scanner

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultExtensions are the file suffixes recognized as rules files. A
// .gz suffix matches when the name underneath carries a rules suffix, so
// rules.txt.gz is picked up and archive.tar.gz is not.
var DefaultExtensions = []string{".txt", ".rules", ".json"}

type Scanner struct {
	rootDir    string
	extensions []string
}

// New creates a Scanner rooted at rootDir. With no extensions given the
// scanner uses DefaultExtensions.
func New(rootDir string, extensions ...string) *Scanner {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	return &Scanner{
		rootDir:    rootDir,
		extensions: extensions,
	}
}

// Scan walks the tree and returns the matching file paths in sorted
// order. Hidden directories are skipped.
func (s *Scanner) Scan() ([]string, error) {
	var files []string

	err := filepath.WalkDir(s.rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if name := d.Name(); strings.HasPrefix(name, ".") && path != s.rootDir {
				return filepath.SkipDir
			}
			return nil
		}
		if s.isRulesFile(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

func (s *Scanner) isRulesFile(path string) bool {
	name := strings.TrimSuffix(path, ".gz")
	ext := filepath.Ext(name)
	for _, targetExt := range s.extensions {
		if ext == targetExt {
			return true
		}
	}
	return false
}
