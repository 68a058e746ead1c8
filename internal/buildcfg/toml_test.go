// SPDX-License-Identifier: MPL-2.0

package buildcfg

import (
	"testing"

	"fwmatrix-cli/internal/testutil"
)

func TestFromBoardDir(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteTree(t, dir, map[string]string{
		"circuitpython.toml": `CIRCUITPY_BUILD_EXTENSIONS = ".elf, .bin"
CIRCUITPY_WIFI = true
CIRCUITPY_ALARM = false
FLASH_SIZE = 4096

[usb]
VID = "0x1234"
`,
		"autogen_board_info.toml": `name = "Vendor DevBoard"

[modules]
busio = true
wifi = true
alarm = false
`,
	})

	settings, err := FromBoardDir(dir)
	if err != nil {
		t.Fatalf("FromBoardDir() error = %v", err)
	}

	if settings.Source != SourceDeclared {
		t.Errorf("source = %v, want %v", settings.Source, SourceDeclared)
	}

	tests := []struct {
		key  string
		want string
	}{
		{"CIRCUITPY_BUILD_EXTENSIONS", ".elf, .bin"},
		{"CIRCUITPY_WIFI", "1"},
		{"CIRCUITPY_ALARM", "0"},
		{"FLASH_SIZE", "4096"},
		{"usb.VID", "0x1234"},
	}
	for _, tt := range tests {
		if got := settings.Values[tt.key]; got != tt.want {
			t.Errorf("Values[%q] = %q, want %q", tt.key, got, tt.want)
		}
	}

	if settings.Autogen == nil {
		t.Fatal("FromBoardDir() returned nil Autogen")
	}
	if settings.Autogen.Name != "Vendor DevBoard" {
		t.Errorf("autogen name = %q, want Vendor DevBoard", settings.Autogen.Name)
	}
	if !settings.Autogen.Modules["busio"] || settings.Autogen.Modules["alarm"] {
		t.Errorf("autogen modules wrong: %v", settings.Autogen.Modules)
	}
}

func TestFromBoardDir_MissingDocuments(t *testing.T) {
	if _, err := FromBoardDir(t.TempDir()); err == nil {
		t.Fatal("FromBoardDir() on empty dir should fail")
	}

	// Settings document alone is not enough; the capability document is
	// required on the declared path.
	dir := t.TempDir()
	testutil.WriteTree(t, dir, map[string]string{
		"circuitpython.toml": `CIRCUITPY_BUILD_EXTENSIONS = ".elf"`,
	})
	if _, err := FromBoardDir(dir); err == nil {
		t.Fatal("FromBoardDir() without autogen document should fail")
	}
}
