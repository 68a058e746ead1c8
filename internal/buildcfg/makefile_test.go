// SPDX-License-Identifier: MPL-2.0

package buildcfg

import (
	"context"
	"errors"
	"path/filepath"
	"runtime"
	"testing"

	"fwmatrix-cli/internal/testutil"
)

func TestParseMakeOutput(t *testing.T) {
	out := `make: Entering directory '/ports/atmel-samd'
CFLAGS = -Os -DNDEBUG -DCIRCUITPY_DISPLAYIO=1 -DCIRCUITPY_BUSIO=1 -ffunction-sections
CIRCUITPY_BUILD_EXTENSIONS = .uf2
FROZEN_MPY_DIRS = ../../frozen/Adafruit_CircuitPython_Lib
SRC_PATTERNS = common-hal/%
lowercase = ignored
NOT AN ASSIGNMENT
make: Leaving directory '/ports/atmel-samd'
`
	settings := parseMakeOutput(out)

	tests := []struct {
		key  string
		want string
	}{
		{"CIRCUITPY_DISPLAYIO", "1"},
		{"CIRCUITPY_BUSIO", "1"},
		{"CIRCUITPY_BUILD_EXTENSIONS", ".uf2"},
		{"FROZEN_MPY_DIRS", "../../frozen/Adafruit_CircuitPython_Lib"},
		{"SRC_PATTERNS", "common-hal/%"},
	}
	for _, tt := range tests {
		if got := settings[tt.key]; got != tt.want {
			t.Errorf("settings[%q] = %q, want %q", tt.key, got, tt.want)
		}
	}

	if _, ok := settings["lowercase"]; ok {
		t.Error("lowercase assignment captured")
	}
	if _, ok := settings["NDEBUG"]; ok {
		t.Error("non-integer define captured from CFLAGS")
	}
}

func TestFromMakefile_Offline(t *testing.T) {
	r := &Resolver{Offline: true}

	settings, err := r.FromMakefile(context.Background(), "/nonexistent", "someboard")
	if err != nil {
		t.Fatalf("FromMakefile() error = %v", err)
	}
	if settings.Source != SourceDerived {
		t.Errorf("source = %v, want %v", settings.Source, SourceDerived)
	}
	if got := settings.Values["CIRCUITPY_BUILD_EXTENSIONS"]; got != ".bin" {
		t.Errorf("stub extensions = %q, want .bin", got)
	}
}

func TestFromMakefile_StubTool(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("stub tool is a shell script")
	}
	dir := t.TempDir()
	stub := filepath.Join(dir, "fake-make")
	testutil.MustWriteExecutable(t, stub, `#!/bin/sh
echo "CFLAGS = -DCIRCUITPY_ARRAY=1"
echo "CIRCUITPY_BUILD_EXTENSIONS = .uf2"
exit 1
`)

	r := &Resolver{Make: stub}
	settings, err := r.FromMakefile(context.Background(), dir, "someboard")
	if err != nil {
		t.Fatalf("FromMakefile() with exit status 1 should succeed, got %v", err)
	}
	if got := settings.Values["CIRCUITPY_ARRAY"]; got != "1" {
		t.Errorf("CIRCUITPY_ARRAY = %q, want 1", got)
	}
	if got := settings.Values["CIRCUITPY_BUILD_EXTENSIONS"]; got != ".uf2" {
		t.Errorf("CIRCUITPY_BUILD_EXTENSIONS = %q, want .uf2", got)
	}
}

func TestFromMakefile_FatalExitStatus(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("stub tool is a shell script")
	}
	dir := t.TempDir()
	stub := filepath.Join(dir, "fake-make")
	testutil.MustWriteExecutable(t, stub, `#!/bin/sh
echo "missing separator" >&2
exit 2
`)

	r := &Resolver{Make: stub}
	_, err := r.FromMakefile(context.Background(), dir, "someboard")
	var toolErr *ToolExitError
	if !errors.As(err, &toolErr) {
		t.Fatalf("FromMakefile() error = %v, want ToolExitError", err)
	}
	if toolErr.ExitCode != 2 {
		t.Errorf("exit code = %d, want 2", toolErr.ExitCode)
	}
	if toolErr.Stderr == "" {
		t.Error("ToolExitError missing captured stderr")
	}
}
