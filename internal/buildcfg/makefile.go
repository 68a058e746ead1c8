// SPDX-License-Identifier: MPL-2.0

package buildcfg

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"
)

// printVars are the variables the Makefile is asked to print. Every setting
// read by the capability extractor or any downstream consumer must be
// listed here; the two lists are kept in sync by hand.
var printVars = []string{
	"CFLAGS",
	"CIRCUITPY_BUILD_EXTENSIONS",
	"FROZEN_MPY_DIRS",
	"SRC_PATTERNS",
	"SRC_SUPERVISOR",
}

var (
	cflagsDefineRe = regexp.MustCompile(`-D([A-Z][A-Z0-9_]*)=(\d+)`)
	assignmentRe   = regexp.MustCompile(`^([A-Z][A-Z0-9_]*) = (.*)$`)
)

// Resolver obtains derived settings by running the external build tool.
type Resolver struct {
	// Make overrides the build tool binary; defaults to "make".
	Make string
	// Offline short-circuits the invocation entirely and returns a fixed
	// minimal stub, for fast runs that don't need real settings.
	Offline bool
}

// FromMakefile invokes make in print-variable mode for one board and scans
// its output into a derived Settings. Make signals real errors with exit
// status 2; statuses 0 and 1 are both non-errors (duplicate-target
// warnings and the like), anything else is a ToolExitError.
func (r *Resolver) FromMakefile(ctx context.Context, portDir, boardName string) (*Settings, error) {
	if r.Offline {
		return &Settings{
			Source: SourceDerived,
			Values: map[string]string{"CIRCUITPY_BUILD_EXTENSIONS": ".bin"},
		}, nil
	}

	makeBin := r.Make
	if makeBin == "" {
		makeBin = "make"
	}
	args := []string{"-C", portDir, "-f", "Makefile", "BOARD=" + boardName}
	for _, v := range printVars {
		args = append(args, "print-"+v)
	}

	log.Debug("resolving board settings", "board", boardName, "port_dir", portDir)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, makeBin, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, err
		}
		if exitErr.ExitCode() != 1 {
			return nil, &ToolExitError{
				Args:     append([]string{makeBin}, args...),
				ExitCode: exitErr.ExitCode(),
				Stderr:   stderr.String(),
			}
		}
	}

	return &Settings{Source: SourceDerived, Values: parseMakeOutput(stdout.String())}, nil
}

// parseMakeOutput extracts settings from make's print-variable output:
// CFLAGS lines yield every -DNAME=<integer> pair, and any other
// "NAME = value" line is captured verbatim.
func parseMakeOutput(out string) map[string]string {
	settings := make(map[string]string)
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "CFLAGS =") {
			for _, m := range cflagsDefineRe.FindAllStringSubmatch(line, -1) {
				settings[m[1]] = m[2]
			}
		} else if m := assignmentRe.FindStringSubmatch(line); m != nil {
			settings[m[1]] = m[2]
		}
	}
	return settings
}
