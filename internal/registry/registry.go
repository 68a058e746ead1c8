// SPDX-License-Identifier: MPL-2.0

// Package registry enumerates hardware targets ("boards") across every
// supported platform family ("port") of a firmware tree, expanding each
// board's declared aliases.
package registry

import (
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Board is one hardware target. Alias entries share the real board's
// directory and port and never carry further aliases.
type Board struct {
	// ID is the unique board id. For the vendor-nested port it is
	// "<vendor>_<leaf>"; everywhere else it is the leaf directory name.
	ID string
	// Port is the owning platform family.
	Port string
	// Dir is the board's configuration directory.
	Dir string
	// Aliases are the board's declared alias ids; empty for alias entries.
	Aliases []string
	// IsAlias marks an alias entry.
	IsAlias bool
}

// DefaultPorts returns the supported platform families.
func DefaultPorts() []string {
	return slices.Clone(supportedPorts)
}

// VendorNested reports whether the port keeps its boards in vendor
// subdirectories.
func VendorNested(port string) bool {
	return port == vendorNestedPort
}

// Mapping enumerates every board under ports/<port>/boards for the given
// ports, keyed by board id, with one extra entry per declared alias. A port
// without a boards directory contributes nothing.
func Mapping(root string, ports []string) map[string]Board {
	boards := make(map[string]Board)
	for _, port := range ports {
		boardsDir := filepath.Join(root, "ports", port, "boards")
		for _, dir := range boardDirs(boardsDir, VendorNested(port)) {
			id := filepath.Base(dir)
			if VendorNested(port) {
				vendor := filepath.Base(filepath.Dir(dir))
				id = vendor + "_" + id
			}
			aliases := aliasesByBoard[filepath.Base(dir)]
			boards[id] = Board{
				ID:      id,
				Port:    port,
				Dir:     dir,
				Aliases: aliases,
			}
			for _, alias := range aliases {
				boards[alias] = Board{
					ID:      alias,
					Port:    port,
					Dir:     dir,
					IsAlias: true,
				}
			}
		}
	}
	return boards
}

// RealBoards filters a mapping down to its non-alias boards, sorted by id.
func RealBoards(boards map[string]Board) []Board {
	var real []Board
	ids := maps.Keys(boards)
	slices.Sort(ids)
	for _, id := range ids {
		if !boards[id].IsAlias {
			real = append(real, boards[id])
		}
	}
	return real
}

// AliasDisplayName returns the branded display name for an alias id: the
// override table entry when present, else the id with underscores replaced
// by spaces and each word title-cased.
func AliasDisplayName(alias string) string {
	if name, ok := aliasBrandNames[alias]; ok {
		return name
	}
	words := strings.Split(strings.ReplaceAll(alias, "_", " "), " ")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// boardDirs lists board directories under dir, descending one extra vendor
// level when nested is set.
func boardDirs(dir string, nested bool) []string {
	var dirs []string
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if !nested {
			dirs = append(dirs, path)
			continue
		}
		sub, err := os.ReadDir(path)
		if err != nil {
			continue
		}
		for _, s := range sub {
			if s.IsDir() {
				dirs = append(dirs, filepath.Join(path, s.Name()))
			}
		}
	}
	return dirs
}
