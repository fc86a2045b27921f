package testutil

import (
	"bytes"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/require"
)

// EncodeVocabulary joins lines with '\n' and compresses the result with the
// codec matching ext (".gz", ".zst", ".sz", ".lz4"). Any other extension
// leaves the text as is.
func EncodeVocabulary(t testing.TB, ext string, lines []string) []byte {
	t.Helper()

	text := strings.Join(lines, "\n")
	if len(lines) > 0 {
		text += "\n"
	}

	var buf bytes.Buffer
	var w io.WriteCloser
	switch strings.ToLower(ext) {
	case ".gz", ".gzip":
		w = gzip.NewWriter(&buf)
	case ".zst", ".zstd":
		zw, err := zstd.NewWriter(&buf)
		require.NoError(t, err)
		w = zw
	case ".sz", ".s2":
		w = s2.NewWriter(&buf)
	case ".lz4":
		w = lz4.NewWriter(&buf)
	default:
		return []byte(text)
	}

	_, err := io.WriteString(w, text)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return buf.Bytes()
}

// WriteVocabulary writes lines to dir/name, compressed by the name's
// extension, and returns the file path.
func WriteVocabulary(t testing.TB, dir, name string, lines []string) string {
	t.Helper()

	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, EncodeVocabulary(t, path.Ext(name), lines), 0o600))

	return p
}

// PairLines formats key/value pairs as "key<sep>value" lines.
func PairLines[K, V any](keys []K, values []V, sep string, format func(K, V, string) string) []string {
	n := min(len(keys), len(values))
	lines := make([]string, n)
	for i := range n {
		lines[i] = format(keys[i], values[i], sep)
	}
	return lines
}
