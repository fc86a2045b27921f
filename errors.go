package lookup

import (
	"errors"
	"fmt"

	"github.com/hupe1980/lookup/batch"
	"github.com/hupe1980/lookup/dtype"
	"github.com/hupe1980/lookup/loader"
	"github.com/hupe1980/lookup/reducejoin"
	"github.com/hupe1980/lookup/resource"
	"github.com/hupe1980/lookup/table"
)

var (
	// ErrUnsupportedType is returned for a type name or key/value pair
	// outside the supported set.
	ErrUnsupportedType = errors.New("unsupported type")
	// ErrInvalidArgument is returned for malformed batches or parameters.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrVocabularySize is returned when a vocabulary file does not hold the
	// declared number of lines.
	ErrVocabularySize = errors.New("vocabulary size mismatch")
	// ErrFileOpen is returned when a vocabulary file cannot be opened.
	ErrFileOpen = errors.New("file error")
	// ErrNotCreated is returned when a handle is used before Create.
	ErrNotCreated = errors.New("table not created")
	// ErrMemoryLimit is returned when string storage would exceed the
	// resource controller's memory limit.
	ErrMemoryLimit = errors.New("memory limit exceeded")
	// ErrAxis is returned for an invalid reduce-join axis.
	ErrAxis = errors.New("invalid axis")
)

// ErrTypeMismatch indicates that a batch's kind differs from the kind the
// table or operation expects.
//
// errors.Is(err, ErrInvalidArgument) holds; the original error can be
// reached with errors.As.
type ErrTypeMismatch struct {
	Side     string
	Expected dtype.Kind
	Actual   dtype.Kind
	cause    error
}

func (e *ErrTypeMismatch) Error() string {
	return fmt.Sprintf("type mismatch for %s: expected %s, got %s", e.Side, e.Expected, e.Actual)
}

func (e *ErrTypeMismatch) Unwrap() []error { return causes(e.cause) }

// ErrShapeMismatch indicates that two batches of one call disagree in shape.
//
// errors.Is(err, ErrInvalidArgument) holds.
type ErrShapeMismatch struct {
	What     string
	Expected []int64
	Actual   []int64
	cause    error
}

func (e *ErrShapeMismatch) Error() string {
	return fmt.Sprintf("shape mismatch for %s: expected %v, got %v", e.What, e.Expected, e.Actual)
}

func (e *ErrShapeMismatch) Unwrap() []error { return causes(e.cause) }

func causes(cause error) []error {
	if cause == nil {
		return []error{ErrInvalidArgument}
	}
	return []error{ErrInvalidArgument, cause}
}

func translateError(err error) error {
	if err == nil {
		return nil
	}

	// Type and shape normalization.
	var tm *table.ErrTypeMismatch
	if errors.As(err, &tm) {
		return &ErrTypeMismatch{Side: tm.Side, Expected: tm.Expected, Actual: tm.Actual, cause: err}
	}
	var sm *table.ErrShapeMismatch
	if errors.As(err, &sm) {
		return &ErrShapeMismatch{What: sm.What, Expected: sm.Expected, Actual: sm.Actual, cause: err}
	}
	var ose *reducejoin.ErrOutputShape
	if errors.As(err, &ose) {
		return &ErrShapeMismatch{What: "reduce-join output", Expected: ose.Expected, Actual: ose.Actual, cause: err}
	}
	if errors.Is(err, table.ErrUnsupportedType) || errors.Is(err, dtype.ErrUnsupported) {
		return fmt.Errorf("%w: %w", ErrUnsupportedType, err)
	}

	// Loader failures.
	var oe *loader.ErrOpen
	if errors.As(err, &oe) {
		return fmt.Errorf("%w: %w", ErrFileOpen, err)
	}
	var ve *loader.ErrVocabularySize
	if errors.As(err, &ve) {
		return fmt.Errorf("%w: %w", ErrVocabularySize, err)
	}

	if errors.Is(err, resource.ErrMemoryLimit) {
		return fmt.Errorf("%w: %w", ErrMemoryLimit, err)
	}
	if errors.Is(err, reducejoin.ErrAxis) {
		return fmt.Errorf("%w: %w", ErrAxis, err)
	}

	for _, target := range []error{
		table.ErrInvalidArgument,
		table.ErrDefaultValue,
		batch.ErrKind,
		batch.ErrShape,
		loader.ErrConfig,
		loader.ErrColumnIndex,
		loader.ErrParse,
	} {
		if errors.Is(err, target) {
			return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
		}
	}

	return err
}
