// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"fwmatrix-cli/internal/capability"
	"fwmatrix-cli/internal/matrix"
)

var (
	matrixNoURLs     bool
	matrixRawNames   bool
	matrixAddPort    bool
	matrixAddChips   bool
	matrixAddPins    bool
	matrixAddBranded bool
	matrixWorkers    int
	matrixIndent     int
)

var matrixCmd = &cobra.Command{
	Use:   "matrix",
	Short: "Emit the per-board capability matrix as JSON",
	Long: `Emit the capability matrix for every board in the firmware tree as one
JSON object keyed by display name. Each entry lists the board's enabled
modules, bundled frozen libraries, and build output extensions. A fatal
error on any board aborts the run; a partial matrix is never emitted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := capability.DefaultOptions()
		opts.WithURL = !matrixNoURLs
		opts.UseBrandedName = !matrixRawNames
		opts.AddPort = matrixAddPort
		opts.AddChips = matrixAddChips
		opts.AddPins = matrixAddPins
		opts.AddBrandedName = matrixAddBranded

		if matrixWorkers > 0 {
			cfg.Workers = matrixWorkers
		}

		m, err := matrix.Build(cmd.Context(), cfg, opts)
		if err != nil {
			return &ExitError{Code: 1, Err: err}
		}

		data, err := json.Marshal(m)
		if err != nil {
			return fmt.Errorf("encoding matrix: %w", err)
		}
		var out bytes.Buffer
		if err := json.Indent(&out, data, "", strings.Repeat(" ", matrixIndent)); err != nil {
			return fmt.Errorf("encoding matrix: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), out.String())
		return nil
	},
}

func init() {
	matrixCmd.Flags().BoolVar(&matrixNoURLs, "no-urls", false, "omit frozen library origin URLs")
	matrixCmd.Flags().BoolVar(&matrixRawNames, "raw-names", false, "key results by board id instead of branded name")
	matrixCmd.Flags().BoolVar(&matrixAddPort, "ports", false, "include each board's platform family")
	matrixCmd.Flags().BoolVar(&matrixAddChips, "chips", false, "include MCU and external flash descriptors")
	matrixCmd.Flags().BoolVar(&matrixAddPins, "pins", false, "include board pin mappings")
	matrixCmd.Flags().BoolVar(&matrixAddBranded, "branded-name", false, "include the branded name as a field")
	matrixCmd.Flags().IntVar(&matrixWorkers, "workers", 0, "worker pool size (default: available parallelism)")
	matrixCmd.Flags().IntVar(&matrixIndent, "indent", 2, "JSON indentation width")
}
