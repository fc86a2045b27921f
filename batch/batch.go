package batch

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/hupe1980/lookup/dtype"
	"github.com/hupe1980/lookup/internal/conv"
)

var (
	// ErrKind is returned when a batch is accessed as the wrong element type.
	ErrKind = errors.New("batch: kind mismatch")
	// ErrShape is returned when a shape is negative or does not match the data.
	ErrShape = errors.New("batch: invalid shape")
)

// Batch is a dense N-dimensional array of one element kind.
type Batch struct {
	kind  dtype.Kind
	shape []int64
	data  any
}

// New allocates a zero-filled batch of the given kind and shape.
// An empty shape yields a rank-0 batch holding a single element.
func New(kind dtype.Kind, shape ...int64) (*Batch, error) {
	n, err := conv.Product(shape)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrShape, err)
	}

	var data any
	switch kind {
	case dtype.Int32:
		data = make([]int32, n)
	case dtype.Int64:
		data = make([]int64, n)
	case dtype.Float32:
		data = make([]float32, n)
	case dtype.Float64:
		data = make([]float64, n)
	case dtype.String:
		data = make([]string, n)
	default:
		return nil, fmt.Errorf("%w: kind %d", dtype.ErrUnsupported, kind)
	}

	return &Batch{kind: kind, shape: slices.Clone(shape), data: data}, nil
}

// Of wraps values in a batch without copying them. Without an explicit shape
// the batch is one-dimensional with len(values) elements.
func Of[T dtype.Element](values []T, shape ...int64) (*Batch, error) {
	if len(shape) == 0 {
		shape = []int64{int64(len(values))}
	}
	n, err := conv.Product(shape)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrShape, err)
	}
	if n != len(values) {
		return nil, fmt.Errorf("%w: shape %v needs %d elements, got %d", ErrShape, shape, n, len(values))
	}
	if values == nil {
		values = []T{}
	}
	return &Batch{kind: dtype.KindOf[T](), shape: slices.Clone(shape), data: values}, nil
}

// MustOf is like Of but panics on error. Intended for tests and examples.
func MustOf[T dtype.Element](values []T, shape ...int64) *Batch {
	b, err := Of(values, shape...)
	if err != nil {
		panic(err)
	}
	return b
}

// Scalar returns a rank-0 batch holding v.
func Scalar[T dtype.Element](v T) *Batch {
	return &Batch{kind: dtype.KindOf[T](), shape: []int64{}, data: []T{v}}
}

// Values returns the batch's backing slice. Writes through the slice modify
// the batch.
func Values[T dtype.Element](b *Batch) ([]T, error) {
	if b == nil {
		return nil, fmt.Errorf("%w: nil batch", ErrKind)
	}
	v, ok := b.data.([]T)
	if !ok {
		return nil, fmt.Errorf("%w: batch holds %s, requested %s", ErrKind, b.kind, dtype.KindOf[T]())
	}
	return v, nil
}

// Kind returns the element kind.
func (b *Batch) Kind() dtype.Kind {
	if b == nil {
		return dtype.KindInvalid
	}
	return b.kind
}

// DataType returns the host descriptor of the element kind.
func (b *Batch) DataType() dtype.DataType { return b.Kind().DataType() }

// Shape returns a copy of the shape.
func (b *Batch) Shape() []int64 {
	if b == nil {
		return nil
	}
	return slices.Clone(b.shape)
}

// NDim returns the rank.
func (b *Batch) NDim() int {
	if b == nil {
		return 0
	}
	return len(b.shape)
}

// Len returns the number of elements.
func (b *Batch) Len() int {
	switch v := b.dataOrNil().(type) {
	case []int32:
		return len(v)
	case []int64:
		return len(v)
	case []float32:
		return len(v)
	case []float64:
		return len(v)
	case []string:
		return len(v)
	default:
		return 0
	}
}

func (b *Batch) dataOrNil() any {
	if b == nil {
		return nil
	}
	return b.data
}

// Reshape changes the shape in place. The element count must not change.
func (b *Batch) Reshape(shape ...int64) error {
	n, err := conv.Product(shape)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrShape, err)
	}
	if n != b.Len() {
		return fmt.Errorf("%w: cannot reshape %d elements to %v", ErrShape, b.Len(), shape)
	}
	b.shape = slices.Clone(shape)
	return nil
}

// Clone returns a deep copy. String slots are cloned so the copy shares no
// backing memory with b.
func (b *Batch) Clone() *Batch {
	if b == nil {
		return nil
	}
	c := &Batch{kind: b.kind, shape: slices.Clone(b.shape)}
	switch v := b.data.(type) {
	case []string:
		out := make([]string, len(v))
		for i, s := range v {
			out[i] = strings.Clone(s)
		}
		c.data = out
	case []int32:
		c.data = slices.Clone(v)
	case []int64:
		c.data = slices.Clone(v)
	case []float32:
		c.data = slices.Clone(v)
	case []float64:
		c.data = slices.Clone(v)
	}
	return c
}

func (b *Batch) String() string {
	if b == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s%v", b.kind, b.shape)
}

// SameShape reports whether a and b have equal rank and dimensions.
func SameShape(a, b *Batch) bool {
	return slices.Equal(a.Shape(), b.Shape())
}

// Strides returns the row-major element strides of shape.
func Strides(shape []int64) []int64 {
	strides := make([]int64, len(shape))
	product := int64(1)
	for i := len(shape) - 1; i >= 0; i-- {
		strides[i] = product
		product *= shape[i]
	}
	return strides
}
