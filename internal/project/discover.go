package project

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SourceExt is the file extension of linted sources.
const SourceExt = ".sg"

// DiscoverFiles collects every source file under each target, sorted
// for deterministic output. A target may be a single file or a
// directory; directories are walked recursively, skipping hidden and
// underscore-prefixed entries.
func DiscoverFiles(targets []string) ([]string, error) {
	seen := make(map[string]bool)
	files := make([]string, 0)

	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, target := range targets {
		info, err := os.Stat(target)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %q: %w", target, err)
		}
		if !info.IsDir() {
			if !strings.HasSuffix(target, SourceExt) {
				return nil, fmt.Errorf("%q is not a %s file", target, SourceExt)
			}
			add(filepath.Clean(target))
			continue
		}
		err = filepath.WalkDir(target, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			name := d.Name()
			if d.IsDir() {
				if path != target && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")) {
					return filepath.SkipDir
				}
				return nil
			}
			if strings.HasSuffix(name, SourceExt) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %q: %w", target, err)
		}
	}

	sort.Strings(files)
	return files, nil
}
