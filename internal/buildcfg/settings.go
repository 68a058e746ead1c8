// SPDX-License-Identifier: MPL-2.0

// Package buildcfg resolves a board's effective build settings from one of
// two sources: the output of the port Makefile in print-variable mode, or a
// pair of declared TOML documents for ports whose boards carry their
// configuration directly.
package buildcfg

import "fmt"

// Source tags which configuration mechanism produced a Settings value.
type Source int

const (
	// SourceDerived settings come from invoking the external build tool.
	SourceDerived Source = iota
	// SourceDeclared settings come from per-board TOML documents.
	SourceDeclared
)

// String returns a human-readable source name.
func (s Source) String() string {
	switch s {
	case SourceDerived:
		return "makefile"
	case SourceDeclared:
		return "declared"
	default:
		return "unknown"
	}
}

// BoardInfo is the autogenerated capability document that accompanies
// declared settings. It lists enabled modules explicitly, bypassing
// gating-key lookup.
type BoardInfo struct {
	Name    string          `toml:"name"`
	Modules map[string]bool `toml:"modules"`
}

// Settings is one board's effective build configuration. Exactly one source
// applies per board, decided by its port. Autogen is set only for declared
// settings.
type Settings struct {
	Source  Source
	Values  map[string]string
	Autogen *BoardInfo
}

// Get returns the raw value for key without dereferencing, and whether it
// was present.
func (s *Settings) Get(key string) (string, bool) {
	v, ok := s.Values[key]
	return v, ok
}

// ToolExitError is returned when the external build tool exits with a
// status other than the accepted ones.
type ToolExitError struct {
	Args     []string
	ExitCode int
	Stderr   string
}

// Error returns the error message for ToolExitError.
func (e *ToolExitError) Error() string {
	return fmt.Sprintf("invoking %v exited with %d: %s", e.Args, e.ExitCode, e.Stderr)
}
