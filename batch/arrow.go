package batch

import (
	"fmt"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/hupe1980/lookup/dtype"
)

// FromArrow copies an Arrow array into a new batch. Null slots become the
// zero value of the kind. Without an explicit shape the batch is
// one-dimensional.
func FromArrow(arr arrow.Array, shape ...int64) (*Batch, error) {
	var (
		b   *Batch
		err error
	)

	switch a := arr.(type) {
	case *array.Int32:
		b, err = Of(copyPrimitive(a, a.Int32Values()), shape...)
	case *array.Int64:
		b, err = Of(copyPrimitive(a, a.Int64Values()), shape...)
	case *array.Float32:
		b, err = Of(copyPrimitive(a, a.Float32Values()), shape...)
	case *array.Float64:
		b, err = Of(copyPrimitive(a, a.Float64Values()), shape...)
	case *array.String:
		out := make([]string, a.Len())
		for i := range out {
			if a.IsValid(i) {
				out[i] = strings.Clone(a.Value(i))
			}
		}
		b, err = Of(out, shape...)
	case *array.LargeString:
		out := make([]string, a.Len())
		for i := range out {
			if a.IsValid(i) {
				out[i] = strings.Clone(a.Value(i))
			}
		}
		b, err = Of(out, shape...)
	default:
		return nil, fmt.Errorf("%w: arrow type %s", dtype.ErrUnsupported, arr.DataType())
	}

	if err != nil {
		return nil, err
	}
	return b, nil
}

func copyPrimitive[T int32 | int64 | float32 | float64](a arrow.Array, values []T) []T {
	out := make([]T, a.Len())
	copy(out, values)
	if a.NullN() > 0 {
		for i := range out {
			if a.IsNull(i) {
				out[i] = 0
			}
		}
	}
	return out
}

// ToArrow copies the batch, flattened in row-major order, into a new Arrow
// array. The caller owns the returned array and must Release it.
func (b *Batch) ToArrow(mem memory.Allocator) (arrow.Array, error) {
	if mem == nil {
		mem = memory.DefaultAllocator
	}

	switch v := b.dataOrNil().(type) {
	case []int32:
		bld := array.NewInt32Builder(mem)
		defer bld.Release()
		bld.AppendValues(v, nil)
		return bld.NewArray(), nil
	case []int64:
		bld := array.NewInt64Builder(mem)
		defer bld.Release()
		bld.AppendValues(v, nil)
		return bld.NewArray(), nil
	case []float32:
		bld := array.NewFloat32Builder(mem)
		defer bld.Release()
		bld.AppendValues(v, nil)
		return bld.NewArray(), nil
	case []float64:
		bld := array.NewFloat64Builder(mem)
		defer bld.Release()
		bld.AppendValues(v, nil)
		return bld.NewArray(), nil
	case []string:
		bld := array.NewStringBuilder(mem)
		defer bld.Release()
		bld.AppendValues(v, nil)
		return bld.NewArray(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrKind, b)
	}
}
