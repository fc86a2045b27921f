package testutil

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWords(t *testing.T) {
	rng := NewRNG(4711)

	words := rng.Words(500, 2)

	assert.Len(t, words, 500)
	seen := map[string]bool{}
	for _, w := range words {
		assert.GreaterOrEqual(t, len(w), 2)
		assert.False(t, seen[w], "duplicate word %q", w)
		seen[w] = true
	}
}

func TestInt64Keys(t *testing.T) {
	rng := NewRNG(4711)

	keys := rng.Int64Keys(100)

	assert.Len(t, keys, 100)
	assert.ElementsMatch(t, keys, func() []int64 {
		out := make([]int64, 100)
		for i := range out {
			out[i] = int64(i)
		}
		return out
	}())
}

func TestReset(t *testing.T) {
	rng := NewRNG(4711)
	w1 := rng.Word(10)

	rng.Reset()
	w2 := rng.Word(10)

	assert.Equal(t, w1, w2)
	assert.Equal(t, int64(4711), rng.Seed())
}

func TestZipfKeys(t *testing.T) {
	rng := NewRNG(42)

	keys := rng.ZipfKeys(10000, 100, 1.5)

	assert.Len(t, keys, 10000)
	counts := map[int64]int{}
	for _, k := range keys {
		assert.GreaterOrEqual(t, k, int64(0))
		assert.Less(t, k, int64(100))
		counts[k]++
	}
	// Key 0 is the most frequent under Zipf.
	for k, c := range counts {
		if k != 0 {
			assert.GreaterOrEqual(t, counts[0], c)
		}
	}
}

func TestHitRate(t *testing.T) {
	assert.InDelta(t, 0.5, HitRate([]string{"a", "b"}, []string{"a", "c"}), 1e-9)
	assert.Zero(t, HitRate([]int{1}, nil))
}

func TestWriteVocabulary(t *testing.T) {
	lines := []string{"5 dog", "7 cat"}
	dir := t.TempDir()

	t.Run("plain", func(t *testing.T) {
		p := WriteVocabulary(t, dir, "v.txt", lines)
		data, err := os.ReadFile(p)
		require.NoError(t, err)
		assert.Equal(t, "5 dog\n7 cat\n", string(data))
	})

	t.Run("gzip", func(t *testing.T) {
		data := EncodeVocabulary(t, ".gz", lines)
		zr, err := gzip.NewReader(bytes.NewReader(data))
		require.NoError(t, err)
		text, err := io.ReadAll(zr)
		require.NoError(t, err)
		assert.Equal(t, "5 dog\n7 cat\n", string(text))
	})

	t.Run("zstd", func(t *testing.T) {
		data := EncodeVocabulary(t, ".zst", lines)
		zr, err := zstd.NewReader(bytes.NewReader(data))
		require.NoError(t, err)
		defer zr.Close()
		text, err := io.ReadAll(zr)
		require.NoError(t, err)
		assert.Equal(t, "5 dog\n7 cat\n", string(text))
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, EncodeVocabulary(t, ".txt", nil))
	})
}

func TestPairLines(t *testing.T) {
	lines := PairLines([]int{5, 7}, []string{"dog", "cat"}, "\t", func(k int, v, sep string) string {
		return fmt.Sprintf("%d%s%s", k, sep, v)
	})

	assert.Equal(t, "5\tdog\n7\tcat", strings.Join(lines, "\n"))
}
