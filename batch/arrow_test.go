package batch

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/hupe1980/lookup/dtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArrowRoundTrip(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	tests := []struct {
		name string
		in   *Batch
	}{
		{"int32", MustOf([]int32{1, -2, 3})},
		{"int64", MustOf([]int64{1 << 40, 0})},
		{"float32", MustOf([]float32{0.5, 1.5})},
		{"float64", MustOf([]float64{3.25})},
		{"string", MustOf([]string{"a", "", "ccc", "dd"}, 2, 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			arr, err := tt.in.ToArrow(mem)
			require.NoError(t, err)
			defer arr.Release()

			assert.Equal(t, tt.in.Len(), arr.Len())

			got, err := FromArrow(arr, tt.in.Shape()...)
			require.NoError(t, err)
			assert.Equal(t, tt.in.Kind(), got.Kind())
			assert.Equal(t, tt.in.Shape(), got.Shape())
			assert.Equal(t, tt.in.data, got.data)
		})
	}
}

func TestFromArrow_Nulls(t *testing.T) {
	mem := memory.NewGoAllocator()

	ib := array.NewInt64Builder(mem)
	defer ib.Release()
	ib.AppendValues([]int64{7, 8, 9}, []bool{true, false, true})
	ints := ib.NewArray()
	defer ints.Release()

	b, err := FromArrow(ints)
	require.NoError(t, err)
	v, err := Values[int64](b)
	require.NoError(t, err)
	assert.Equal(t, []int64{7, 0, 9}, v)

	sb := array.NewStringBuilder(mem)
	defer sb.Release()
	sb.Append("k")
	sb.AppendNull()
	strs := sb.NewArray()
	defer strs.Release()

	b, err = FromArrow(strs)
	require.NoError(t, err)
	assert.Equal(t, dtype.String, b.Kind())
	s, _ := Values[string](b)
	assert.Equal(t, []string{"k", ""}, s)
}

func TestFromArrow_Unsupported(t *testing.T) {
	bb := array.NewBooleanBuilder(memory.NewGoAllocator())
	defer bb.Release()
	bb.Append(true)
	arr := bb.NewArray()
	defer arr.Release()

	_, err := FromArrow(arr)
	assert.ErrorIs(t, err, dtype.ErrUnsupported)
}

func TestFromArrow_ShapeMismatch(t *testing.T) {
	ib := array.NewInt32Builder(memory.NewGoAllocator())
	defer ib.Release()
	ib.AppendValues([]int32{1, 2, 3}, nil)
	arr := ib.NewArray()
	defer arr.Release()

	_, err := FromArrow(arr, 2, 2)
	assert.ErrorIs(t, err, ErrShape)
}
