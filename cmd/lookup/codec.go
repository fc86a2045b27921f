package main

import (
	"encoding/base64"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/lookup/batch"
	"github.com/hupe1980/lookup/strcodec"
)

type encodeResult struct {
	MaxLength   int    `json:"max_length"`
	ByteSize    int    `json:"byte_size"`
	RecordWidth int    `json:"record_width"`
	Data        []byte `json:"data"`
}

func newEncodeCmd() *cobra.Command {
	var maxLength int

	cmd := &cobra.Command{
		Use:   "encode <string>...",
		Short: "Encode strings as fixed-width UTF-32LE records (base64 output)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := batch.Of(append([]string(nil), args...))
			if err != nil {
				return err
			}

			calc, err := strcodec.ArgsCalc(b)
			if err != nil {
				return err
			}
			if maxLength <= 0 {
				maxLength = calc.MaxLength
			}

			data, err := strcodec.Encode(b, maxLength)
			if err != nil {
				return err
			}

			return writeJSON(cmd.OutOrStdout(), encodeResult{
				MaxLength:   maxLength,
				ByteSize:    len(data),
				RecordWidth: maxLength * strcodec.UnitSize,
				Data:        data,
			})
		},
	}

	cmd.Flags().IntVar(&maxLength, "max-length", 0, "code points per record; 0 uses the longest string")

	return cmd
}

func newDecodeCmd() *cobra.Command {
	var width int

	cmd := &cobra.Command{
		Use:   "decode <base64>",
		Short: "Decode fixed-width UTF-32LE records back to strings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := base64.StdEncoding.DecodeString(args[0])
			if err != nil {
				return fmt.Errorf("decode base64: %w", err)
			}

			b, err := strcodec.Decode(data, width)
			if err != nil {
				return err
			}

			out, _ := batch.Values[string](b)
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}

	cmd.Flags().IntVar(&width, "width", 0, "record width in bytes (a multiple of 4)")
	_ = cmd.MarkFlagRequired("width")

	return cmd
}
