package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/lookup/batch"
	"github.com/hupe1980/lookup/dtype"
	"github.com/hupe1980/lookup/reducejoin"
)

type reduceJoinResult struct {
	Shape  []int64  `json:"shape"`
	Values []string `json:"values"`
}

func newReduceJoinCmd(a *app) *cobra.Command {
	var (
		shape     string
		axes      string
		keepDims  bool
		separator string
	)

	cmd := &cobra.Command{
		Use:   "reduce-join <string>...",
		Short: "Join strings of an N-dimensional batch along axes",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dims, err := parseInts(shape)
			if err != nil {
				return fmt.Errorf("--shape: %w", err)
			}
			if dims == nil {
				dims = []int64{int64(len(args))}
			}
			ax, err := parseInts(axes)
			if err != nil {
				return fmt.Errorf("--axes: %w", err)
			}

			in, err := batch.Of(append([]string(nil), args...), dims...)
			if err != nil {
				return err
			}
			intAxes := make([]int, len(ax))
			for i, v := range ax {
				intAxes[i] = int(v)
			}
			outShape, err := reducejoin.OutputShape(dims, intAxes, keepDims)
			if err != nil {
				return err
			}
			out, err := batch.New(dtype.String, outShape...)
			if err != nil {
				return err
			}

			axesBatch, err := batch.Of(ax)
			if err != nil {
				return err
			}
			if err := a.engine(nil).ReduceJoin(in, axesBatch, keepDims, separator, out); err != nil {
				return err
			}

			joined, _ := batch.Values[string](out)
			res := reduceJoinResult{Shape: out.Shape(), Values: joined}
			if res.Shape == nil {
				res.Shape = []int64{}
			}
			return writeJSON(cmd.OutOrStdout(), res)
		},
	}

	cmd.Flags().StringVar(&shape, "shape", "", "comma-separated input shape (default: one dimension)")
	cmd.Flags().StringVar(&axes, "axes", "", "comma-separated reduction axes; negative counts from the end")
	cmd.Flags().BoolVar(&keepDims, "keep-dims", false, "keep reduced axes with size 1")
	cmd.Flags().StringVar(&separator, "separator", "", "separator placed between joined strings")

	return cmd
}
