package strcodec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode/utf32"

	"github.com/hupe1980/lookup/batch"
	"github.com/hupe1980/lookup/dtype"
	"github.com/hupe1980/lookup/internal/conv"
)

// UnitSize is the number of bytes per encoded code point.
const UnitSize = 4

var (
	// ErrRecordWidth is returned for a non-positive record width or one that
	// is not a multiple of UnitSize.
	ErrRecordWidth = errors.New("strcodec: invalid record width")
	// ErrShortBatch is returned when a batch holds fewer slots than the
	// buffer has records.
	ErrShortBatch = errors.New("strcodec: batch smaller than buffer")
)

var utf32le = utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM)

// Args describes the fixed-width layout of a string batch.
type Args struct {
	// MaxLength is the longest string, in code points.
	MaxLength int
	// ByteSize is MaxLength * UnitSize * element count.
	ByteSize int
}

// RecordWidth returns the byte width of one record.
func (a Args) RecordWidth() int { return a.MaxLength * UnitSize }

// ArgsCalc returns the layout that encodes every string of b without
// truncation. MaxLength is at least 1, so batches of empty strings still
// get a record width Decode accepts.
func ArgsCalc(b *batch.Batch) (Args, error) {
	values, err := batch.Values[string](b)
	if err != nil {
		return Args{}, err
	}

	maxLen := 1
	for _, s := range values {
		if s == "" {
			continue
		}
		maxLen = max(maxLen, utf8.RuneCountInString(s))
	}

	size, err := conv.Product([]int64{int64(maxLen), UnitSize, int64(len(values))})
	if err != nil {
		return Args{}, err
	}

	return Args{MaxLength: maxLen, ByteSize: size}, nil
}

// Encode returns every slot of b encoded as records of maxLength code points.
func Encode(b *batch.Batch, maxLength int) ([]byte, error) {
	if maxLength < 0 {
		return nil, fmt.Errorf("%w: max length %d", ErrRecordWidth, maxLength)
	}
	dst := make([]byte, maxLength*UnitSize*b.Len())
	if err := EncodeTo(dst, b, maxLength); err != nil {
		return nil, err
	}
	return dst, nil
}

// EncodeTo fills dst with len(dst)/(maxLength*UnitSize) records taken from
// the leading slots of b.
func EncodeTo(dst []byte, b *batch.Batch, maxLength int) error {
	values, err := batch.Values[string](b)
	if err != nil {
		return err
	}
	if maxLength < 0 {
		return fmt.Errorf("%w: max length %d", ErrRecordWidth, maxLength)
	}
	if maxLength == 0 {
		return nil
	}

	width := maxLength * UnitSize
	n := len(dst) / width
	if n > len(values) {
		return fmt.Errorf("%w: %d records, %d slots", ErrShortBatch, n, len(values))
	}

	enc := utf32le.NewEncoder()
	for i := range n {
		rec := dst[i*width : (i+1)*width]
		clear(rec)

		s := values[i]
		if utf8.RuneCountInString(s) > maxLength {
			s = truncate(s, maxLength)
		}
		encoded, err := enc.String(s)
		if err != nil {
			return fmt.Errorf("strcodec: encode slot %d: %w", i, err)
		}
		copy(rec, encoded)
	}

	return nil
}

// Decode reads len(data)/recordWidth records into a new string batch.
// recordWidth must be a positive multiple of UnitSize.
// Without an explicit shape the batch is one-dimensional.
func Decode(data []byte, recordWidth int, shape ...int64) (*batch.Batch, error) {
	if err := checkWidth(recordWidth); err != nil {
		return nil, err
	}

	out := make([]string, len(data)/recordWidth)
	if err := decode(out, data, recordWidth); err != nil {
		return nil, err
	}

	return batch.Of(out, shape...)
}

// DecodeInto overwrites the leading slots of dst with the records of data.
func DecodeInto(dst *batch.Batch, data []byte, recordWidth int) error {
	if err := checkWidth(recordWidth); err != nil {
		return err
	}

	values, err := batch.Values[string](dst)
	if err != nil {
		return fmt.Errorf("%w: %s required", err, dtype.String)
	}

	n := len(data) / recordWidth
	if n > len(values) {
		return fmt.Errorf("%w: %d records, %d slots", ErrShortBatch, n, len(values))
	}

	return decode(values[:n], data, recordWidth)
}

func decode(out []string, data []byte, width int) error {
	dec := utf32le.NewDecoder()
	for i := range out {
		rec := data[i*width : (i+1)*width]
		end := 0
		for end < len(rec) && binary.LittleEndian.Uint32(rec[end:]) != 0 {
			end += UnitSize
		}

		s, err := decodeRecord(dec, rec[:end])
		if err != nil {
			return fmt.Errorf("strcodec: decode record %d: %w", i, err)
		}
		out[i] = s
	}
	return nil
}

func decodeRecord(dec *encoding.Decoder, rec []byte) (string, error) {
	if len(rec) == 0 {
		return "", nil
	}
	b, err := dec.Bytes(rec)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func checkWidth(w int) error {
	if w <= 0 || w%UnitSize != 0 {
		return fmt.Errorf("%w: %d", ErrRecordWidth, w)
	}
	return nil
}

func truncate(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
