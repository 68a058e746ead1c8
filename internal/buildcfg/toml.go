// SPDX-License-Identifier: MPL-2.0

package buildcfg

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

const (
	// settingsDocName is the declared settings document in a board directory.
	settingsDocName = "circuitpython.toml"
	// boardInfoDocName is the autogenerated capability document.
	boardInfoDocName = "autogen_board_info.toml"
)

// FromBoardDir loads declared settings for a board whose port carries
// configuration in TOML documents instead of a Makefile. Both documents are
// required for such boards.
func FromBoardDir(dir string) (*Settings, error) {
	raw := make(map[string]any)
	if err := decodeTOML(filepath.Join(dir, settingsDocName), &raw); err != nil {
		return nil, err
	}

	info := &BoardInfo{}
	if err := decodeTOML(filepath.Join(dir, boardInfoDocName), info); err != nil {
		return nil, err
	}

	return &Settings{Source: SourceDeclared, Values: flatten(raw), Autogen: info}, nil
}

func decodeTOML(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := toml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// flatten stringifies a decoded TOML document into the flat key/value shape
// the extractor reads: booleans become "1"/"0", numbers their decimal form,
// string lists a comma-separated string, and nested tables dotted keys.
func flatten(raw map[string]any) map[string]string {
	values := make(map[string]string)
	flattenInto(values, "", raw)
	return values
}

func flattenInto(values map[string]string, prefix string, raw map[string]any) {
	for key, val := range raw {
		if prefix != "" {
			key = prefix + "." + key
		}
		switch v := val.(type) {
		case map[string]any:
			flattenInto(values, key, v)
		case []any:
			parts := make([]string, 0, len(v))
			for _, item := range v {
				parts = append(parts, stringify(item))
			}
			values[key] = strings.Join(parts, ",")
		default:
			values[key] = stringify(val)
		}
	}
}

func stringify(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case bool:
		if v {
			return "1"
		}
		return "0"
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}
