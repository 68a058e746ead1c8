// SPDX-License-Identifier: MPL-2.0

// Package catalog builds the static mapping from module name to the build
// setting that gates it. Module names come from the shared-bindings and
// per-port bindings directories of a firmware tree, plus fixed tables for
// modules that live elsewhere.
package catalog

import (
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// gatingKeyPrefix is prepended to an uppercased module name to derive the
// default gating key for modules not listed in additionalModules.
const gatingKeyPrefix = "CIRCUITPY_"

// Bindings returns the names of every known module: directories under
// shared-bindings/ and ports/*/bindings/, plus the fixed tables. A missing
// directory contributes nothing.
func Bindings(root string) []string {
	var modules []string
	modules = append(modules, dirNames(filepath.Join(root, "shared-bindings"))...)

	portDirs, _ := os.ReadDir(filepath.Join(root, "ports"))
	for _, port := range portDirs {
		if !port.IsDir() {
			continue
		}
		modules = append(modules, dirNames(filepath.Join(root, "ports", port.Name(), "bindings"))...)
	}

	modules = append(modules, modulesNotInBindings...)
	modules = append(modules, maps.Keys(additionalModules)...)
	return modules
}

// BuildModuleMap returns the mapping from every known module name to its
// gating key. The override table wins; otherwise the key is the fixed
// prefix plus the module name uppercased with leading underscores stripped.
func BuildModuleMap(root string) map[string]string {
	moduleMap := make(map[string]string)
	for _, module := range Bindings(root) {
		key, ok := additionalModules[module]
		if !ok {
			key = gatingKeyPrefix + strings.ToUpper(strings.TrimLeft(module, "_"))
		}
		moduleMap[module] = key
	}
	return moduleMap
}

// ModuleNames returns the sorted names of every module in the map.
func ModuleNames(moduleMap map[string]string) []string {
	names := maps.Keys(moduleMap)
	slices.Sort(names)
	return names
}

func dirNames(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	return names
}
