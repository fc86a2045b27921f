package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hupe1980/lookup/batch"
	"github.com/hupe1980/lookup/dtype"
)

// parseBatch converts command-line tokens to a rank-1 batch of kind.
func parseBatch(kind dtype.Kind, tokens []string) (*batch.Batch, error) {
	switch kind {
	case dtype.String:
		return batch.Of(append([]string(nil), tokens...))
	case dtype.Int32:
		return parseEach(tokens, func(s string) (int32, error) {
			v, err := strconv.ParseInt(s, 10, 32)
			return int32(v), err
		})
	case dtype.Int64:
		return parseEach(tokens, func(s string) (int64, error) {
			return strconv.ParseInt(s, 10, 64)
		})
	case dtype.Float32:
		return parseEach(tokens, func(s string) (float32, error) {
			v, err := strconv.ParseFloat(s, 32)
			return float32(v), err
		})
	case dtype.Float64:
		return parseEach(tokens, func(s string) (float64, error) {
			return strconv.ParseFloat(s, 64)
		})
	default:
		return nil, fmt.Errorf("%w: %s", dtype.ErrUnsupported, kind)
	}
}

func parseEach[T dtype.Element](tokens []string, parse func(string) (T, error)) (*batch.Batch, error) {
	out := make([]T, len(tokens))
	for i, tok := range tokens {
		v, err := parse(strings.TrimSpace(tok))
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		out[i] = v
	}
	return batch.Of(out)
}

// parseInts parses a comma-separated list such as "2,3" or "-1".
func parseInts(s string) ([]int64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", s, err)
		}
		out[i] = v
	}
	return out, nil
}

// values returns the elements of b as a generic slice for JSON output.
func values(b *batch.Batch) []any {
	out := make([]any, 0, b.Len())
	switch b.Kind() {
	case dtype.Int32:
		v, _ := batch.Values[int32](b)
		for _, x := range v {
			out = append(out, x)
		}
	case dtype.Int64:
		v, _ := batch.Values[int64](b)
		for _, x := range v {
			out = append(out, x)
		}
	case dtype.Float32:
		v, _ := batch.Values[float32](b)
		for _, x := range v {
			out = append(out, x)
		}
	case dtype.Float64:
		v, _ := batch.Values[float64](b)
		for _, x := range v {
			out = append(out, x)
		}
	case dtype.String:
		v, _ := batch.Values[string](b)
		for _, x := range v {
			out = append(out, x)
		}
	}
	return out
}
