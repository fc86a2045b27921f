package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/lookup"
	"github.com/hupe1980/lookup/batch"
)

// loaded is a table built from a manifest entry.
type loaded struct {
	spec   TableSpec
	handle *lookup.Handle
	engine *lookup.Engine
}

// loadResult is the JSON summary of one table load.
type loadResult struct {
	Name      string  `json:"name"`
	KeyType   string  `json:"key_type"`
	ValueType string  `json:"value_type"`
	File      string  `json:"file"`
	Size      int     `json:"size"`
	Seconds   float64 `json:"seconds"`
}

// build creates the table of spec and fills it from its file.
func (a *app) build(ctx context.Context, spec TableSpec) (*loaded, error) {
	store, name, err := a.resolver.Resolve(ctx, spec.File)
	if err != nil {
		return nil, fmt.Errorf("table %q: %w", spec.Name, err)
	}

	eng := a.engine(store)
	h := lookup.NewHandle()
	if err := eng.Create(h, spec.KeyType, spec.ValueType); err != nil {
		return nil, fmt.Errorf("table %q: %w", spec.Name, err)
	}

	file := batch.MustOf([]string{name})
	if err := eng.InitFromTextFile(ctx, h, file, spec.VocabularySize, spec.KeyIndex, spec.ValueIndex, spec.Delimiter, nil); err != nil {
		h.Release()
		return nil, fmt.Errorf("table %q: %w", spec.Name, err)
	}

	return &loaded{spec: spec, handle: h, engine: eng}, nil
}

// buildOne reads the manifest and builds the table called name.
func (a *app) buildOne(ctx context.Context, manifestPath, name string) (*loaded, error) {
	m, err := ReadManifest(manifestPath)
	if err != nil {
		return nil, err
	}
	if name == "" {
		if len(m.Tables) != 1 {
			return nil, fmt.Errorf("manifest has %d tables, select one with --table", len(m.Tables))
		}
		name = m.Tables[0].Name
	}
	spec, err := m.Table(name)
	if err != nil {
		return nil, err
	}
	return a.build(ctx, spec)
}

func newLoadCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load <manifest.yaml>",
		Short: "Load every table of a manifest and report their sizes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := ReadManifest(args[0])
			if err != nil {
				return err
			}

			results := make([]loadResult, len(m.Tables))
			g, ctx := errgroup.WithContext(cmd.Context())
			if a.concurrency > 0 {
				g.SetLimit(a.concurrency)
			}
			for i, spec := range m.Tables {
				g.Go(func() error {
					start := time.Now()
					l, err := a.build(ctx, spec)
					if err != nil {
						return err
					}
					defer l.handle.Release()

					t, err := l.handle.Table()
					if err != nil {
						return err
					}
					results[i] = loadResult{
						Name:      spec.Name,
						KeyType:   t.KeyKind().String(),
						ValueType: t.ValueKind().String(),
						File:      spec.File,
						Size:      t.Size(),
						Seconds:   time.Since(start).Seconds(),
					}
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			return writeJSON(cmd.OutOrStdout(), results)
		},
	}

	cmd.Flags().IntVar(&a.concurrency, "concurrency", 4, "tables loaded in parallel (0 = unlimited)")

	return cmd
}
