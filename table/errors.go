package table

import (
	"errors"
	"fmt"

	"github.com/hupe1980/lookup/dtype"
)

var (
	// ErrUnsupportedType is returned by New for kinds or pairs without a registered table.
	ErrUnsupportedType = errors.New("unsupported key/value type")

	// ErrInvalidArgument is the common cause of type and shape mismatches.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrDefaultValue is returned when a lookup is given an empty default batch.
	ErrDefaultValue = errors.New("default value batch is empty")
)

// ErrTypeMismatch indicates that a batch does not hold the kind the table was
// created with. Side names the offending argument ("keys", "values",
// "default" or "out").
type ErrTypeMismatch struct {
	Side     string
	Expected dtype.Kind
	Actual   dtype.Kind
}

func (e *ErrTypeMismatch) Error() string {
	return fmt.Sprintf("type mismatch for %s: expected %s, got %s", e.Side, e.Expected, e.Actual)
}

func (e *ErrTypeMismatch) Unwrap() error { return ErrInvalidArgument }

// ErrShapeMismatch indicates that two batches of one operation disagree in
// rank or element count.
type ErrShapeMismatch struct {
	What     string
	Expected []int64
	Actual   []int64
}

func (e *ErrShapeMismatch) Error() string {
	return fmt.Sprintf("shape mismatch for %s: expected %v, got %v", e.What, e.Expected, e.Actual)
}

func (e *ErrShapeMismatch) Unwrap() error { return ErrInvalidArgument }
