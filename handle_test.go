package lookup

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/lookup/batch"
	"github.com/hupe1980/lookup/dtype"
)

func TestHandle(t *testing.T) {
	t.Run("EmptyHandle", func(t *testing.T) {
		h := NewHandle()
		_, err := h.Table()
		assert.ErrorIs(t, err, ErrNotCreated)

		var nilHandle *Handle
		_, err = nilHandle.Table()
		assert.ErrorIs(t, err, ErrNotCreated)
		nilHandle.Release()
	})

	t.Run("GetOrCreate", func(t *testing.T) {
		h := NewHandle()

		tbl, created, err := h.GetOrCreate(dtype.String, dtype.Int64)
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, dtype.String, tbl.KeyKind())

		again, created, err := h.GetOrCreate(dtype.String, dtype.Int64)
		require.NoError(t, err)
		assert.False(t, created)
		assert.Same(t, tbl, again)
	})

	t.Run("KindConflict", func(t *testing.T) {
		h := NewHandle()
		_, _, err := h.GetOrCreate(dtype.Int32, dtype.Int32)
		require.NoError(t, err)

		_, _, err = h.GetOrCreate(dtype.Int32, dtype.Float32)
		var tm *ErrTypeMismatch
		require.ErrorAs(t, err, &tm)
		assert.Equal(t, "value", tm.Side)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("Unsupported", func(t *testing.T) {
		_, _, err := NewHandle().GetOrCreate(dtype.KindInvalid, dtype.Int32)
		assert.ErrorIs(t, err, ErrUnsupportedType)
	})

	t.Run("Release", func(t *testing.T) {
		h := NewHandle()
		tbl, _, err := h.GetOrCreate(dtype.Int64, dtype.String)
		require.NoError(t, err)
		require.NoError(t, tbl.Insert(batch.MustOf([]int64{1}), batch.MustOf([]string{"x"})))

		h.Release()
		assert.Zero(t, tbl.Size())
		_, err = h.Table()
		assert.ErrorIs(t, err, ErrNotCreated)

		// The slot is reusable with other kinds.
		_, created, err := h.GetOrCreate(dtype.Float64, dtype.Float64)
		require.NoError(t, err)
		assert.True(t, created)
	})

	t.Run("ConcurrentCreate", func(t *testing.T) {
		h := NewHandle()

		var (
			wg    sync.WaitGroup
			mu    sync.Mutex
			count int
		)
		for range 16 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, created, err := h.GetOrCreate(dtype.Int32, dtype.String)
				assert.NoError(t, err)
				if created {
					mu.Lock()
					count++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, count)
	})
}
