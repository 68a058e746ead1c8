// SPDX-License-Identifier: MPL-2.0

// Package capability derives one board's capability result from its
// resolved build settings: the enabled modules, the bundled frozen
// libraries with their origin repositories, the build output extensions,
// and optional enrichment scraped from per-board files.
package capability

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"fwmatrix-cli/internal/buildcfg"
	"fwmatrix-cli/internal/registry"
)

// extensionsKey is the one required setting: the comma-separated list of
// build output file extensions every board must declare.
const extensionsKey = "CIRCUITPY_BUILD_EXTENSIONS"

// frozenDirsKey is the optional space-separated list of frozen library
// directories, relative to the tree root after prefix stripping.
const frozenDirsKey = "FROZEN_MPY_DIRS"

// Options selects which fields an extraction produces, mirroring the
// matrix command's flags.
type Options struct {
	// UseBrandedName keys results by branded display name instead of id.
	UseBrandedName bool
	// WithURL pairs each frozen library with its origin repository URL.
	WithURL bool
	// AddPort includes the owning platform family.
	AddPort bool
	// AddChips includes the MCU name and external flash descriptor.
	AddChips bool
	// AddPins includes the board pin mapping.
	AddPins bool
	// AddBrandedName includes the branded name as a result field even when
	// results are keyed by id.
	AddBrandedName bool
}

// DefaultOptions returns the options the matrix command uses by default.
func DefaultOptions() Options {
	return Options{UseBrandedName: true, WithURL: true}
}

// FrozenModule is one bundled frozen library, optionally tagged with its
// origin repository. It marshals as a bare name string, or as a
// [name, url] pair when the URL is known.
type FrozenModule struct {
	Name string
	URL  string
}

// MarshalJSON implements json.Marshaler.
func (f FrozenModule) MarshalJSON() ([]byte, error) {
	if f.URL == "" {
		return json.Marshal(f.Name)
	}
	return json.Marshal([2]string{f.Name, f.URL})
}

// Pin is one board-pin to chip-pin mapping, marshaled as a pair.
type Pin struct {
	Board string
	Chip  string
}

// MarshalJSON implements json.Marshaler.
func (p Pin) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{p.Board, p.Chip})
}

// BoardResult is the capability data for one board.
type BoardResult struct {
	Modules         []string       `json:"modules"`
	FrozenLibraries []FrozenModule `json:"frozen_libraries"`
	Extensions      []string       `json:"extensions"`
	BrandedName     string         `json:"branded_name,omitempty"`
	Port            string         `json:"port,omitempty"`
	MCU             string         `json:"mcu,omitempty"`
	Flash           string         `json:"flash,omitempty"`
	Pins            []Pin          `json:"pins,omitempty"`
}

// Extraction pairs a board's display name with its result.
type Extraction struct {
	DisplayName string
	Result      *BoardResult
}

// MissingExtensionsError is returned when a board's settings lack the
// required output-extensions setting.
type MissingExtensionsError struct {
	Board string
}

// Error returns the error message for MissingExtensionsError.
func (e *MissingExtensionsError) Error() string {
	return fmt.Sprintf("board extensions undefined: %s", e.Board)
}

// Extractor derives capability results. One Extractor is shared by every
// concurrent worker of a run; the repository-URL cache is its only mutable
// state.
type Extractor struct {
	root      string
	moduleMap map[string]string

	mu       sync.Mutex
	repoURLs map[string]string
}

// NewExtractor returns an Extractor for one firmware tree and module map.
func NewExtractor(root string, moduleMap map[string]string) *Extractor {
	return &Extractor{
		root:      root,
		moduleMap: moduleMap,
		repoURLs:  make(map[string]string),
	}
}

// Extract computes the capability result for one board from its resolved
// settings.
func (e *Extractor) Extract(board registry.Board, settings *buildcfg.Settings, opts Options) (*Extraction, error) {
	brandedName := ""
	if opts.UseBrandedName || opts.AddBrandedName {
		brandedName = e.brandedName(board, settings)
	}
	displayName := board.ID
	if opts.UseBrandedName && brandedName != "" {
		displayName = brandedName
	}

	modules, err := e.enabledModules(settings)
	if err != nil {
		return nil, fmt.Errorf("board %s: %w", board.ID, err)
	}

	extensions, err := extensions(settings, displayName)
	if err != nil {
		return nil, err
	}

	result := &BoardResult{
		Modules:         modules,
		FrozenLibraries: []FrozenModule{},
		Extensions:      extensions,
	}

	if frozenDirs, ok := settings.Get(frozenDirsKey); ok {
		frozen, err := e.frozenModules(frozenDirs, opts.WithURL)
		if err != nil {
			return nil, fmt.Errorf("board %s: %w", board.ID, err)
		}
		result.FrozenLibraries = frozen
	}

	if opts.AddBrandedName {
		result.BrandedName = brandedName
	}
	if opts.AddPort {
		result.Port = board.Port
	}
	if opts.AddChips {
		result.MCU = mcuName(board.Dir)
		result.Flash = flashDevices(board.Dir)
	}
	if opts.AddPins {
		result.Pins = pinMapping(board.Dir)
	}

	return &Extraction{DisplayName: displayName, Result: result}, nil
}

// enabledModules returns the sorted enabled-module list. Declared settings
// carry an explicit module map; derived settings gate each catalog entry on
// its key resolving to a nonzero integer.
func (e *Extractor) enabledModules(settings *buildcfg.Settings) ([]string, error) {
	modules := []string{}
	if settings.Autogen != nil {
		for name, enabled := range settings.Autogen.Modules {
			if enabled {
				modules = append(modules, name)
			}
		}
	} else {
		for name, key := range e.moduleMap {
			value, err := buildcfg.Lookup(settings, key, "0")
			if err != nil {
				return nil, err
			}
			if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil && n != 0 {
				modules = append(modules, name)
			}
		}
	}
	sort.Strings(modules)
	return modules, nil
}

// extensions reads the required output-extensions setting, a
// comma-separated list with entries trimmed of surrounding whitespace.
func extensions(settings *buildcfg.Settings, boardName string) ([]string, error) {
	raw, ok := settings.Get(extensionsKey)
	if !ok {
		return nil, &MissingExtensionsError{Board: boardName}
	}
	parts := strings.Split(raw, ",")
	exts := make([]string, 0, len(parts))
	for _, part := range parts {
		exts = append(exts, strings.TrimSpace(part))
	}
	return exts, nil
}
