package reducejoin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/lookup/batch"
	"github.com/hupe1980/lookup/dtype"
)

func values(t *testing.T, b *batch.Batch) []string {
	t.Helper()
	v, err := batch.Values[string](b)
	require.NoError(t, err)
	return v
}

func TestJoin(t *testing.T) {
	grid := []string{"a", "b", "c", "d", "e", "f"}

	tests := []struct {
		name     string
		shape    []int64
		axes     []int
		keepDims bool
		sep      string
		want     []string
		shapeOut []int64
	}{
		{"rows", []int64{2, 3}, []int{1}, false, "-", []string{"a-b-c", "d-e-f"}, []int64{2}},
		{"rows keepdims", []int64{2, 3}, []int{1}, true, "-", []string{"a-b-c", "d-e-f"}, []int64{2, 1}},
		{"columns", []int64{2, 3}, []int{0}, false, "", []string{"ad", "be", "cf"}, []int64{3}},
		{"negative axis", []int64{2, 3}, []int{-1}, false, " ", []string{"a b c", "d e f"}, []int64{2}},
		{"all axes", []int64{2, 3}, []int{0, 1}, false, ",", []string{"a,b,c,d,e,f"}, nil},
		{"all axes reversed", []int64{2, 3}, []int{1, 0}, false, ",", []string{"a,d,b,e,c,f"}, nil},
		{"all axes keepdims", []int64{2, 3}, []int{0, 1}, true, "", []string{"abcdef"}, []int64{1, 1}},
		{"no axes", []int64{2, 3}, nil, false, "-", grid, []int64{2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := batch.MustOf(grid, tt.shape...)

			out, err := Join(in, tt.axes, tt.keepDims, tt.sep)
			require.NoError(t, err)

			assert.Equal(t, tt.want, values(t, out))
			if tt.shapeOut == nil {
				assert.Equal(t, 0, out.NDim())
			} else {
				assert.Equal(t, tt.shapeOut, out.Shape())
			}
		})
	}
}

func TestJoin_ThreeDimensions(t *testing.T) {
	// shape (2,2,2): element at (i,j,k) is "ijk".
	in := batch.MustOf([]string{"000", "001", "010", "011", "100", "101", "110", "111"}, 2, 2, 2)

	t.Run("outer and inner axes", func(t *testing.T) {
		out, err := Join(in, []int{0, 2}, false, "|")
		require.NoError(t, err)
		assert.Equal(t, []int64{2}, out.Shape())
		assert.Equal(t, []string{"000|001|100|101", "010|011|110|111"}, values(t, out))
	})

	t.Run("listed order drives concatenation", func(t *testing.T) {
		out, err := Join(in, []int{2, 0}, false, "|")
		require.NoError(t, err)
		assert.Equal(t, []string{"000|100|001|101", "010|110|011|111"}, values(t, out))
	})

	t.Run("middle axis keepdims", func(t *testing.T) {
		out, err := Join(in, []int{1}, true, "+")
		require.NoError(t, err)
		assert.Equal(t, []int64{2, 1, 2}, out.Shape())
		assert.Equal(t, []string{"000+010", "001+011", "100+110", "101+111"}, values(t, out))
	})
}

func TestJoin_ZeroLengthAxis(t *testing.T) {
	in, err := batch.New(dtype.String, 2, 0)
	require.NoError(t, err)

	out, err := Join(in, []int{1}, false, "-")
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, out.Shape())
	assert.Equal(t, []string{"", ""}, values(t, out))

	out, err = Join(in, []int{0}, false, "-")
	require.NoError(t, err)
	assert.Equal(t, []int64{0}, out.Shape())
	assert.Empty(t, values(t, out))
}

func TestJoin_Scalar(t *testing.T) {
	out, err := Join(batch.Scalar("x"), nil, false, "-")
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, values(t, out))
	assert.Equal(t, 0, out.NDim())
}

func TestJoin_Errors(t *testing.T) {
	in := batch.MustOf([]string{"a", "b", "c", "d"}, 2, 2)

	for _, axes := range [][]int{{2}, {-3}, {0, 0}, {1, -1}} {
		_, err := Join(in, axes, false, "")
		assert.ErrorIs(t, err, ErrAxis, "axes %v", axes)
	}

	_, err := Join(batch.MustOf([]int64{1, 2}), []int{0}, false, "")
	assert.ErrorIs(t, err, batch.ErrKind)

	_, err = Join(nil, nil, false, "")
	assert.ErrorIs(t, err, batch.ErrKind)
}

func TestJoinInto(t *testing.T) {
	in := batch.MustOf([]string{"a", "b", "c", "d", "e", "f"}, 2, 3)

	t.Run("writes slots", func(t *testing.T) {
		out := batch.MustOf([]string{"old", "old"}, 2, 1)
		require.NoError(t, JoinInto(in, []int{1}, true, "-", out))
		assert.Equal(t, []string{"a-b-c", "d-e-f"}, values(t, out))
	})

	t.Run("wrong size", func(t *testing.T) {
		out := batch.MustOf([]string{"", "", ""})
		err := JoinInto(in, []int{1}, false, "-", out)

		var shapeErr *ErrOutputShape
		require.ErrorAs(t, err, &shapeErr)
		assert.Equal(t, []int64{2}, shapeErr.Expected)
		assert.Equal(t, []int64{3}, shapeErr.Actual)
	})

	t.Run("wrong kind", func(t *testing.T) {
		err := JoinInto(in, []int{1}, false, "-", batch.MustOf([]int32{0, 0}))
		assert.ErrorIs(t, err, batch.ErrKind)
	})
}

func TestOutputShape(t *testing.T) {
	shape, err := OutputShape([]int64{4, 5, 6}, []int{-1, 0}, false)
	require.NoError(t, err)
	assert.Equal(t, []int64{5}, shape)

	shape, err = OutputShape([]int64{4, 5, 6}, []int{-1, 0}, true)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 5, 1}, shape)

	_, err = OutputShape([]int64{4}, []int{1}, false)
	assert.ErrorIs(t, err, ErrAxis)
}

func TestResolveAxes(t *testing.T) {
	axes, err := ResolveAxes(3, []int{-1, 0, -2})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 0, 1}, axes)
}
