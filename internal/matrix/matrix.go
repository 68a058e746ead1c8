// SPDX-License-Identifier: MPL-2.0

// Package matrix runs the per-board capability pipeline concurrently and
// merges everything into one deterministically-sorted mapping, replicating
// each board's result under its declared aliases.
package matrix

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"sort"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"fwmatrix-cli/internal/buildcfg"
	"fwmatrix-cli/internal/capability"
	"fwmatrix-cli/internal/catalog"
	"fwmatrix-cli/internal/config"
	"fwmatrix-cli/internal/registry"
)

// Entry pairs one display name with its capability result.
type Entry struct {
	Name   string
	Result *capability.BoardResult
}

// Matrix is the final sorted mapping. It marshals as a JSON object whose
// keys keep the slice order, so the final sort survives serialization.
type Matrix []Entry

// MarshalJSON implements json.Marshaler.
func (m Matrix) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, entry := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(entry.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		result, err := json.Marshal(entry.Result)
		if err != nil {
			return nil, err
		}
		buf.Write(result)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Build computes the capability matrix for every real board and alias in
// the tree. One worker-pool task per real board resolves its settings and
// extracts its capabilities; a task's pairs are its board plus one pair
// per alias. All pairs are flattened and sorted once at the end, so output
// order never depends on scheduling. The first task error aborts the whole
// run: a partial matrix is not a useful product.
func Build(ctx context.Context, cfg *config.Config, opts capability.Options) (Matrix, error) {
	root := cfg.Root
	ports := cfg.Ports
	if len(ports) == 0 {
		ports = registry.DefaultPorts()
	}

	moduleMap := catalog.BuildModuleMap(root)
	boards := registry.RealBoards(registry.Mapping(root, ports))
	extractor := capability.NewExtractor(root, moduleMap)
	resolver := &buildcfg.Resolver{Offline: cfg.Offline}

	log.Debug("building capability matrix", "boards", len(boards), "workers", cfg.Workers)

	results := make([][]Entry, len(boards))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i, board := range boards {
		g.Go(func() error {
			entries, err := boardEntries(ctx, board, resolver, extractor, opts)
			if err != nil {
				return err
			}
			results[i] = entries
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var matrix Matrix
	for _, entries := range results {
		matrix = append(matrix, entries...)
	}
	sort.Slice(matrix, func(i, j int) bool { return matrix[i].Name < matrix[j].Name })
	return matrix, nil
}

// boardEntries runs the resolve-then-extract pipeline for one real board
// and replicates the result under each declared alias.
func boardEntries(ctx context.Context, board registry.Board, resolver *buildcfg.Resolver, extractor *capability.Extractor, opts capability.Options) ([]Entry, error) {
	var settings *buildcfg.Settings
	var err error
	if registry.VendorNested(board.Port) {
		settings, err = buildcfg.FromBoardDir(board.Dir)
	} else {
		portDir := filepath.Dir(filepath.Dir(board.Dir))
		settings, err = resolver.FromMakefile(ctx, portDir, filepath.Base(board.Dir))
	}
	if err != nil {
		return nil, err
	}

	extraction, err := extractor.Extract(board, settings, opts)
	if err != nil {
		return nil, err
	}

	entries := []Entry{{Name: extraction.DisplayName, Result: extraction.Result}}
	for _, alias := range board.Aliases {
		name := alias
		if opts.UseBrandedName {
			name = registry.AliasDisplayName(alias)
		}
		entries = append(entries, Entry{Name: name, Result: extraction.Result})
	}
	return entries, nil
}
