package main

import (
	"fmt"
	"io"
	"os"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/spf13/cobra"

	"github.com/hupe1980/lookup/batch"
)

// writeArrow writes keys and values as a two-column Arrow IPC file.
func writeArrow(w io.Writer, keys, values *batch.Batch) error {
	mem := memory.NewGoAllocator()

	k, err := keys.ToArrow(mem)
	if err != nil {
		return err
	}
	defer k.Release()
	v, err := values.ToArrow(mem)
	if err != nil {
		return err
	}
	defer v.Release()

	schema := arrow.NewSchema([]arrow.Field{
		{Name: "key", Type: k.DataType()},
		{Name: "value", Type: v.DataType()},
	}, nil)
	rec := array.NewRecord(schema, []arrow.Array{k, v}, int64(k.Len()))
	defer rec.Release()

	fw, err := ipc.NewFileWriter(w, ipc.WithSchema(schema), ipc.WithAllocator(mem))
	if err != nil {
		return err
	}
	if err := fw.Write(rec); err != nil {
		_ = fw.Close()
		return err
	}
	return fw.Close()
}

func newExportCmd(a *app) *cobra.Command {
	var (
		manifest string
		table    string
		format   string
		output   string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Dump a table built from a manifest as JSON or Arrow IPC",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format != "json" && format != "arrow" {
				return fmt.Errorf("--format: unknown format %q", format)
			}

			l, err := a.buildOne(cmd.Context(), manifest, table)
			if err != nil {
				return err
			}
			defer l.handle.Release()

			keys, vals, err := l.engine.Export(l.handle)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}

			if format == "arrow" {
				return writeArrow(w, keys, vals)
			}

			ks, vs := values(keys), values(vals)
			entries := make([]findResult, len(ks))
			for i := range ks {
				entries[i] = findResult{Key: ks[i], Value: vs[i]}
			}
			return writeJSON(w, entries)
		},
	}

	cmd.Flags().StringVarP(&manifest, "manifest", "m", "", "table manifest (YAML)")
	cmd.Flags().StringVarP(&table, "table", "t", "", "table name; optional for single-table manifests")
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json or arrow")
	cmd.Flags().StringVarP(&output, "output", "o", "-", "output file")
	_ = cmd.MarkFlagRequired("manifest")

	return cmd
}
