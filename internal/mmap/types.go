package mmap

import "errors"

// Hint tells the kernel how a mapping is going to be read.
type Hint int

const (
	// HintNormal drops any previous hint.
	HintNormal Hint = iota
	// HintSequential suits a single front-to-back scan, as done by the
	// vocabulary loader. Pages behind the reader may be reclaimed early.
	HintSequential
	// HintWillNeed asks for read-ahead of the whole mapping.
	HintWillNeed
)

var (
	// ErrClosed is returned when a closed mapping is read.
	ErrClosed = errors.New("mmap: mapping is closed")
	// ErrInvalidSize is returned for files whose size does not fit an int.
	ErrInvalidSize = errors.New("mmap: invalid file size")
	// ErrInvalidOffset is returned for negative offsets or lengths.
	ErrInvalidOffset = errors.New("mmap: invalid offset")
)
