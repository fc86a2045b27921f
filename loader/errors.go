package loader

import (
	"errors"
	"fmt"
)

var (
	// ErrConfig is returned by New for an invalid Config.
	ErrConfig = errors.New("invalid loader config")
	// ErrColumnIndex is returned when a line has fewer tokens than a column index needs.
	ErrColumnIndex = errors.New("column index out of range")
	// ErrParse is returned when a token cannot be parsed as the table's kind.
	ErrParse = errors.New("cannot parse token")
)

// ErrOpen indicates that the vocabulary file could not be opened.
type ErrOpen struct {
	Path string
	Err  error
}

func (e *ErrOpen) Error() string {
	return fmt.Sprintf("txt file can not be open: %s: %v", e.Path, e.Err)
}

func (e *ErrOpen) Unwrap() error { return e.Err }

// ErrVocabularySize indicates that the file did not hold the declared
// number of lines. TooSmall means the declared size was smaller than the
// file; it is reported as soon as the extra line is seen. Otherwise the file
// ended early.
type ErrVocabularySize struct {
	Declared int64
	Lines    int64
	TooSmall bool
}

func (e *ErrVocabularySize) Error() string {
	if e.TooSmall {
		return fmt.Sprintf("vocabulary size not proper: too small (declared %d, file has more lines)", e.Declared)
	}
	return fmt.Sprintf("vocabulary size not proper: too large (declared %d, file has %d lines)", e.Declared, e.Lines)
}

// LineError attaches the 0-based line number to a per-line failure.
type LineError struct {
	Line int64
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }
