package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/lookup/batch"
	"github.com/hupe1980/lookup/dtype"
)

type findResult struct {
	Key   any `json:"key"`
	Value any `json:"value"`
}

func newFindCmd(a *app) *cobra.Command {
	var (
		manifest string
		table    string
		def      string
	)

	cmd := &cobra.Command{
		Use:   "find <key>...",
		Short: "Look up keys in a table built from a manifest",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := a.buildOne(cmd.Context(), manifest, table)
			if err != nil {
				return err
			}
			defer l.handle.Release()

			t, err := l.handle.Table()
			if err != nil {
				return err
			}

			keys, err := parseBatch(t.KeyKind(), args)
			if err != nil {
				return fmt.Errorf("keys: %w", err)
			}
			if def == "" && t.ValueKind() != dtype.String {
				def = "0"
			}
			defaults, err := parseBatch(t.ValueKind(), []string{def})
			if err != nil {
				return fmt.Errorf("--default: %w", err)
			}
			out, err := batch.New(t.ValueKind(), int64(len(args)))
			if err != nil {
				return err
			}

			if err := l.engine.Find(l.handle, keys, defaults, out); err != nil {
				return err
			}

			ks, vs := values(keys), values(out)
			results := make([]findResult, len(ks))
			for i := range ks {
				results[i] = findResult{Key: ks[i], Value: vs[i]}
			}
			return writeJSON(cmd.OutOrStdout(), results)
		},
	}

	cmd.Flags().StringVarP(&manifest, "manifest", "m", "", "table manifest (YAML)")
	cmd.Flags().StringVarP(&table, "table", "t", "", "table name; optional for single-table manifests")
	cmd.Flags().StringVarP(&def, "default", "d", "", "value returned for absent keys (numeric tables default to 0)")
	_ = cmd.MarkFlagRequired("manifest")

	return cmd
}
