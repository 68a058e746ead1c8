// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"fwmatrix-cli/internal/registry"
)

var boardsCmd = &cobra.Command{
	Use:   "boards",
	Short: "List known boards and their aliases per port",
	RunE: func(cmd *cobra.Command, args []string) error {
		ports := cfg.Ports
		if len(ports) == 0 {
			ports = registry.DefaultPorts()
		}
		mapping := registry.Mapping(cfg.Root, ports)
		boards := registry.RealBoards(mapping)
		if len(boards) == 0 {
			return fmt.Errorf("no boards found under %s/ports", cfg.Root)
		}

		out := cmd.OutOrStdout()
		currentPort := ""
		total := 0
		for _, board := range boardsByPort(boards) {
			if board.Port != currentPort {
				currentPort = board.Port
				fmt.Fprintln(out, TitleStyle.Render(currentPort))
			}
			line := "  " + HighlightStyle.Render(board.ID)
			if len(board.Aliases) > 0 {
				line += SubtitleStyle.Render(" (aliases: " + strings.Join(board.Aliases, ", ") + ")")
			}
			fmt.Fprintln(out, line)
			total += 1 + len(board.Aliases)
		}
		fmt.Fprintln(out, SubtitleStyle.Render(fmt.Sprintf("%d boards (aliases included)", total)))
		return nil
	},
}

// boardsByPort reorders an id-sorted board list so boards group by port,
// keeping the id order within each port.
func boardsByPort(boards []registry.Board) []registry.Board {
	grouped := make([]registry.Board, 0, len(boards))
	seen := make(map[string]bool)
	for _, b := range boards {
		if seen[b.Port] {
			continue
		}
		seen[b.Port] = true
		for _, other := range boards {
			if other.Port == b.Port {
				grouped = append(grouped, other)
			}
		}
	}
	return grouped
}
