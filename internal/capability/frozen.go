// SPDX-License-Identifier: MPL-2.0

package capability

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/exp/slices"
)

// frozenPathPrefix is the relative prefix every FROZEN_MPY_DIRS entry
// carries; paths are resolved against the tree root after stripping it.
const frozenPathPrefix = "../../"

// frozenExcludes are the entries at the root of a frozen directory that
// are never modules. Kept in sync with the preprocess_frozen_modules
// script.
var frozenExcludes = []string{"examples", "docs", "tests", "utils", "conf.py", "setup.py"}

// PrefixError is returned when a frozen directory path does not carry the
// expected relative prefix, which would mean the tree layout assumption is
// violated.
type PrefixError struct {
	Path   string
	Prefix string
}

// Error returns the error message for PrefixError.
func (e *PrefixError) Error() string {
	return fmt.Sprintf("frozen path %q does not start with %q", e.Path, e.Prefix)
}

// frozenModules extracts the frozen libraries from a space-separated list
// of frozen directory paths. A module is either a top-level source file
// (named sans extension) or a top-level directory with at least one nested
// source file (named by the directory). The result is sorted by name.
func (e *Extractor) frozenModules(frozenDirs string, withURL bool) ([]FrozenModule, error) {
	modules := []FrozenModule{}
	for _, frozenPath := range strings.Fields(frozenDirs) {
		rel, ok := strings.CutPrefix(frozenPath, frozenPathPrefix)
		if !ok {
			return nil, &PrefixError{Path: frozenPath, Prefix: frozenPathPrefix}
		}
		sourceDir := filepath.Join(e.root, filepath.FromSlash(rel))

		url := ""
		if withURL {
			url = e.repositoryURL(sourceDir)
		}

		entries, err := os.ReadDir(sourceDir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			name := entry.Name()
			if slices.Contains(frozenExcludes, name) {
				continue
			}
			if !entry.IsDir() {
				if strings.HasSuffix(name, ".py") {
					modules = append(modules, FrozenModule{Name: strings.TrimSuffix(name, ".py"), URL: url})
				}
				continue
			}
			if containsSource(filepath.Join(sourceDir, name)) {
				modules = append(modules, FrozenModule{Name: name, URL: url})
			}
		}
	}
	sort.Slice(modules, func(i, j int) bool { return modules[i].Name < modules[j].Name })
	return modules, nil
}

// containsSource reports whether any source file exists anywhere below dir.
func containsSource(dir string) bool {
	found := false
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".py") {
			found = true
			return fs.SkipAll
		}
		return nil
	})
	return found
}
