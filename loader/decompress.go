package loader

import (
	"io"
	"path"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies the codec of a vocabulary file.
type Compression string

const (
	// CompressionNone reads the file as plain text.
	CompressionNone Compression = ""
	// CompressionGzip reads gzip (.gz) files.
	CompressionGzip Compression = "gzip"
	// CompressionZstd reads zstd (.zst, .zstd) files.
	CompressionZstd Compression = "zstd"
	// CompressionS2 reads s2 and framed snappy (.sz, .s2) files.
	CompressionS2 Compression = "s2"
	// CompressionLZ4 reads lz4 frame (.lz4) files.
	CompressionLZ4 Compression = "lz4"
)

// DetectCompression infers the codec from the file extension.
func DetectCompression(name string) Compression {
	switch strings.ToLower(path.Ext(name)) {
	case ".gz", ".gzip":
		return CompressionGzip
	case ".zst", ".zstd":
		return CompressionZstd
	case ".sz", ".s2":
		return CompressionS2
	case ".lz4":
		return CompressionLZ4
	default:
		return CompressionNone
	}
}

type closeFunc func() error

func (f closeFunc) Close() error { return f() }

// decompress wraps r for codec c. The returned closer releases decoder
// resources; it does not close r.
func decompress(r io.Reader, c Compression) (io.Reader, io.Closer, error) {
	noop := closeFunc(func() error { return nil })

	switch c {
	case CompressionGzip:
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, nil, err
		}
		return zr, zr, nil
	case CompressionZstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, err
		}
		return zr, closeFunc(func() error { zr.Close(); return nil }), nil
	case CompressionS2:
		return s2.NewReader(r), noop, nil
	case CompressionLZ4:
		return lz4.NewReader(r), noop, nil
	default:
		return r, noop, nil
	}
}
