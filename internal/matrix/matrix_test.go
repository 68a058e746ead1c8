// SPDX-License-Identifier: MPL-2.0

package matrix

import (
	"context"
	"encoding/json"
	"slices"
	"strings"
	"testing"

	"fwmatrix-cli/internal/capability"
	"fwmatrix-cli/internal/config"
	"fwmatrix-cli/internal/testutil"
)

// fixtureTree builds a minimal two-port firmware tree: a makefile-driven
// board with an alias, and a declared-configuration board on the
// vendor-nested port. The offline toggle keeps the derived path from
// invoking a real build tool.
func fixtureTree(t *testing.T) *config.Config {
	t.Helper()
	root := t.TempDir()
	testutil.WriteTree(t, root, map[string]string{
		"shared-bindings/busio/": "",
		"shared-bindings/wifi/":  "",
		"ports/atmel-samd/boards/pybadge/mpconfigboard.h": `#define MICROPY_HW_BOARD_NAME "Adafruit PyBadge"
`,
		"ports/zephyr-cp/boards/vendorx/devboard/circuitpython.toml": `CIRCUITPY_BUILD_EXTENSIONS = ".elf, .bin"
`,
		"ports/zephyr-cp/boards/vendorx/devboard/autogen_board_info.toml": `name = "Vendor DevBoard"

[modules]
busio = true
wifi = false
`,
	})

	cfg := config.DefaultConfig()
	cfg.Root = root
	cfg.Offline = true
	return cfg
}

func TestBuild(t *testing.T) {
	cfg := fixtureTree(t)

	m, err := Build(context.Background(), cfg, capability.DefaultOptions())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	var names []string
	for _, entry := range m {
		names = append(names, entry.Name)
	}
	want := []string{"Adafruit EdgeBadge", "Adafruit PyBadge", "Vendor DevBoard"}
	if !slices.Equal(names, want) {
		t.Fatalf("Build() names = %v, want %v", names, want)
	}
}

func TestBuild_AliasSharesResult(t *testing.T) {
	cfg := fixtureTree(t)

	m, err := Build(context.Background(), cfg, capability.DefaultOptions())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	byName := make(map[string]*capability.BoardResult)
	for _, entry := range m {
		byName[entry.Name] = entry.Result
	}
	real, alias := byName["Adafruit PyBadge"], byName["Adafruit EdgeBadge"]
	if real == nil || alias == nil {
		t.Fatal("Build() missing real board or alias entry")
	}

	realJSON, err := json.Marshal(real)
	if err != nil {
		t.Fatal(err)
	}
	aliasJSON, err := json.Marshal(alias)
	if err != nil {
		t.Fatal(err)
	}
	if string(realJSON) != string(aliasJSON) {
		t.Errorf("alias result differs from real board:\n%s\n%s", realJSON, aliasJSON)
	}
}

func TestBuild_DeclaredModules(t *testing.T) {
	cfg := fixtureTree(t)

	m, err := Build(context.Background(), cfg, capability.DefaultOptions())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	for _, entry := range m {
		if entry.Name != "Vendor DevBoard" {
			continue
		}
		if want := []string{"busio"}; !slices.Equal(entry.Result.Modules, want) {
			t.Errorf("declared modules = %v, want %v", entry.Result.Modules, want)
		}
		if want := []string{".elf", ".bin"}; !slices.Equal(entry.Result.Extensions, want) {
			t.Errorf("declared extensions = %v, want %v", entry.Result.Extensions, want)
		}
		return
	}
	t.Fatal("Build() missing declared-path board")
}

func TestBuild_DeterministicAcrossWorkerCounts(t *testing.T) {
	cfg := fixtureTree(t)

	var serialized []string
	for _, workers := range []int{1, 2, 8} {
		cfg.Workers = workers
		m, err := Build(context.Background(), cfg, capability.DefaultOptions())
		if err != nil {
			t.Fatalf("Build() with %d workers error = %v", workers, err)
		}
		data, err := json.Marshal(m)
		if err != nil {
			t.Fatal(err)
		}
		serialized = append(serialized, string(data))
	}
	if serialized[0] != serialized[1] || serialized[1] != serialized[2] {
		t.Error("Build() output depends on worker-pool sizing")
	}
}

func TestBuild_MissingExtensionsAborts(t *testing.T) {
	root := t.TempDir()
	testutil.WriteTree(t, root, map[string]string{
		"ports/zephyr-cp/boards/vendorx/badboard/circuitpython.toml": `CIRCUITPY_WIFI = true
`,
		"ports/zephyr-cp/boards/vendorx/badboard/autogen_board_info.toml": `name = "Bad Board"

[modules]
wifi = true
`,
	})
	cfg := config.DefaultConfig()
	cfg.Root = root
	cfg.Offline = true

	_, err := Build(context.Background(), cfg, capability.DefaultOptions())
	if err == nil {
		t.Fatal("Build() with a board missing extensions should abort")
	}
}

func TestMatrix_MarshalJSONKeepsOrder(t *testing.T) {
	m := Matrix{
		{Name: "Alpha", Result: &capability.BoardResult{Modules: []string{}, FrozenLibraries: []capability.FrozenModule{}, Extensions: []string{".bin"}}},
		{Name: "Beta", Result: &capability.BoardResult{Modules: []string{}, FrozenLibraries: []capability.FrozenModule{}, Extensions: []string{".uf2"}}},
	}

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}
	got := string(data)
	alpha := `"Alpha"`
	beta := `"Beta"`
	if !(len(got) > 0 && got[0] == '{' && got[len(got)-1] == '}') {
		t.Fatalf("MarshalJSON() = %s, want an object", got)
	}
	if ai, bi := strings.Index(got, alpha), strings.Index(got, beta); ai < 0 || bi < 0 || ai > bi {
		t.Errorf("MarshalJSON() lost entry order: %s", got)
	}
}
