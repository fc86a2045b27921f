package reducejoin

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hupe1980/lookup/batch"
	"github.com/hupe1980/lookup/dtype"
	"github.com/hupe1980/lookup/internal/conv"
)

// ErrAxis is returned for an axis outside [-rank, rank) or one listed twice.
var ErrAxis = errors.New("invalid reduction axis")

// ErrOutputShape indicates that the output batch does not hold one slot per
// joined group.
type ErrOutputShape struct {
	Expected []int64
	Actual   []int64
}

func (e *ErrOutputShape) Error() string {
	return fmt.Sprintf("output shape mismatch: expected %v, got %v", e.Expected, e.Actual)
}

// plan is the resolved iteration space of one join.
type plan struct {
	shape    []int64 // output shape
	kept     []int   // unreduced axes, ascending
	reduced  []int   // reduced axes, as listed
	strides  []int64 // input strides
	inShape  []int64
	outCount int
	grpCount int
}

// ResolveAxes normalizes negative axes against rank and rejects duplicates
// and out-of-range values.
func ResolveAxes(rank int, axes []int) ([]int, error) {
	resolved := make([]int, len(axes))
	seen := make([]bool, rank)
	for i, a := range axes {
		ax := a
		if ax < 0 {
			ax += rank
		}
		if ax < 0 || ax >= rank {
			return nil, fmt.Errorf("%w: %d for rank %d", ErrAxis, a, rank)
		}
		if seen[ax] {
			return nil, fmt.Errorf("%w: %d listed twice", ErrAxis, a)
		}
		seen[ax] = true
		resolved[i] = ax
	}
	return resolved, nil
}

// OutputShape returns the shape Join produces for an input of the given
// shape. Reduced dimensions are dropped, or kept with size 1 when keepDims
// is set.
func OutputShape(shape []int64, axes []int, keepDims bool) ([]int64, error) {
	p, err := newPlan(shape, axes, keepDims)
	if err != nil {
		return nil, err
	}
	return p.shape, nil
}

func newPlan(shape []int64, axes []int, keepDims bool) (*plan, error) {
	resolved, err := ResolveAxes(len(shape), axes)
	if err != nil {
		return nil, err
	}

	isReduced := make([]bool, len(shape))
	for _, ax := range resolved {
		isReduced[ax] = true
	}

	p := &plan{
		reduced: resolved,
		strides: batch.Strides(shape),
		inShape: shape,
	}
	outDims := make([]int64, 0, len(shape))
	grpDims := make([]int64, 0, len(resolved))
	for ax, dim := range shape {
		switch {
		case !isReduced[ax]:
			p.kept = append(p.kept, ax)
			p.shape = append(p.shape, dim)
			outDims = append(outDims, dim)
		case keepDims:
			p.shape = append(p.shape, 1)
		}
	}
	for _, ax := range resolved {
		grpDims = append(grpDims, shape[ax])
	}

	if p.outCount, err = conv.Product(outDims); err != nil {
		return nil, err
	}
	if p.grpCount, err = conv.Product(grpDims); err != nil {
		return nil, err
	}

	return p, nil
}

// offset maps a linear index over dims (row-major, last fastest) to an
// input element offset.
func (p *plan) offset(index int, axes []int) int64 {
	rem := int64(index)
	var acc int64
	for i := len(axes) - 1; i >= 0; i-- {
		dim := p.inShape[axes[i]]
		coord := rem % dim
		rem /= dim
		acc += coord * p.strides[axes[i]]
	}
	return acc
}

// Join reduces the string batch in along axes, joining each group with sep.
// An empty axes list copies the input element for element.
func Join(in *batch.Batch, axes []int, keepDims bool, sep string) (*batch.Batch, error) {
	src, err := stringValues(in)
	if err != nil {
		return nil, err
	}
	p, err := newPlan(in.Shape(), axes, keepDims)
	if err != nil {
		return nil, err
	}

	out, err := batch.New(dtype.String, p.shape...)
	if err != nil {
		return nil, err
	}
	dst, err := batch.Values[string](out)
	if err != nil {
		return nil, err
	}
	p.run(src, dst, sep)

	return out, nil
}

// JoinInto is Join writing into an existing string batch. out must hold
// exactly one slot per group; its shape is otherwise not inspected.
func JoinInto(in *batch.Batch, axes []int, keepDims bool, sep string, out *batch.Batch) error {
	src, err := stringValues(in)
	if err != nil {
		return err
	}
	dst, err := stringValues(out)
	if err != nil {
		return err
	}
	p, err := newPlan(in.Shape(), axes, keepDims)
	if err != nil {
		return err
	}
	if len(dst) != p.outCount {
		return &ErrOutputShape{Expected: p.shape, Actual: out.Shape()}
	}

	p.run(src, dst, sep)
	return nil
}

func (p *plan) run(src, dst []string, sep string) {
	var sb strings.Builder
	for o := range dst {
		if p.grpCount == 0 {
			dst[o] = ""
			continue
		}

		base := p.offset(o, p.kept)
		if p.grpCount == 1 {
			dst[o] = strings.Clone(src[base+p.offset(0, p.reduced)])
			continue
		}

		sb.Reset()
		for r := range p.grpCount {
			if r > 0 {
				sb.WriteString(sep)
			}
			sb.WriteString(src[base+p.offset(r, p.reduced)])
		}
		dst[o] = sb.String()
	}
}

func stringValues(b *batch.Batch) ([]string, error) {
	if b == nil {
		return nil, fmt.Errorf("%w: nil batch", batch.ErrKind)
	}
	if b.Kind() != dtype.String {
		return nil, fmt.Errorf("%w: expected %s, got %s", batch.ErrKind, dtype.String, b.Kind())
	}
	return batch.Values[string](b)
}
