// SPDX-License-Identifier: MPL-2.0

package capability

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"fwmatrix-cli/internal/buildcfg"
	"fwmatrix-cli/internal/registry"
)

// Enrichment fields are scraped from per-board files with targeted
// patterns. Every file here is optional: some ports don't ship a pin table
// at all, so absence yields an empty field, never an error.
var (
	boardNameRe = regexp.MustCompile(`MICROPY_HW_BOARD_NAME\s+(.+)`)
	mcuNameRe   = regexp.MustCompile(`MICROPY_HW_MCU_NAME\s+(.+)`)
	flashRe     = regexp.MustCompile(`EXTERNAL_FLASH_DEVICES\s+=\s+(.+)`)
	pinRe       = regexp.MustCompile(`QSTR_([^\)]+).+pin_([^\)]+)`)
)

// brandedName returns the board's branded display name: the autogen
// document's name on the declared path, else the board-name define in
// mpconfigboard.h. Falls back to "" when neither is available.
func (e *Extractor) brandedName(board registry.Board, settings *buildcfg.Settings) string {
	if settings.Autogen != nil {
		return settings.Autogen.Name
	}
	return scrapeDefine(filepath.Join(board.Dir, "mpconfigboard.h"), boardNameRe)
}

// mcuName returns the MCU define from mpconfigboard.h, or "".
func mcuName(boardDir string) string {
	return scrapeDefine(filepath.Join(boardDir, "mpconfigboard.h"), mcuNameRe)
}

// flashDevices returns the board's external flash chips from
// mpconfigboard.mk as one quoted comma-separated string, normalizing the
// varied quoting conventions boards use. Returns "" when undeclared.
func flashDevices(boardDir string) string {
	contents, err := os.ReadFile(filepath.Join(boardDir, "mpconfigboard.mk"))
	if err != nil {
		return ""
	}
	m := flashRe.FindStringSubmatch(string(contents))
	if m == nil {
		return ""
	}
	flash := strings.ReplaceAll(m[1], `"`, "")
	return `"` + flash + `"`
}

// pinMapping extracts (board pin, chip pin) pairs from the board's pins.c.
// Some ports generate pin tables elsewhere and have no pins.c; those
// boards get an empty mapping.
func pinMapping(boardDir string) []Pin {
	f, err := os.Open(filepath.Join(boardDir, "pins.c"))
	if err != nil {
		return nil
	}
	defer f.Close()

	var pins []Pin
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if m := pinRe.FindStringSubmatch(scanner.Text()); m != nil {
			pins = append(pins, Pin{Board: m[1], Chip: m[2]})
		}
	}
	return pins
}

// scrapeDefine reads a file and returns the first match of re, stripped of
// surrounding quotes and truncated at any embedded closing quote (the
// closing quote is not always at line end).
func scrapeDefine(path string, re *regexp.Regexp) string {
	contents, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	m := re.FindStringSubmatch(string(contents))
	if m == nil {
		return ""
	}
	value := strings.Trim(strings.TrimSpace(m[1]), `"`)
	if i := strings.Index(value, `"`); i >= 0 {
		value = value[:i]
	}
	return value
}
