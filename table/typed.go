package table

import (
	"fmt"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/lookup/batch"
	"github.com/hupe1980/lookup/dtype"
)

type typed[K, V dtype.Element] struct {
	keyKind   dtype.Kind
	valueKind dtype.Kind
	entries   map[K]V
	acct      MemoryAccountant
	reserved  int64
}

func newTyped[K, V dtype.Element](o options) *typed[K, V] {
	return &typed[K, V]{
		keyKind:   dtype.KindOf[K](),
		valueKind: dtype.KindOf[V](),
		entries:   make(map[K]V, o.capacity),
		acct:      o.acct,
	}
}

func (t *typed[K, V]) KeyKind() dtype.Kind   { return t.keyKind }
func (t *typed[K, V]) ValueKind() dtype.Kind { return t.valueKind }
func (t *typed[K, V]) Size() int             { return len(t.entries) }
func (t *typed[K, V]) IsInitialized() bool   { return len(t.entries) > 0 }

func (t *typed[K, V]) Insert(keys, values *batch.Batch) error {
	if err := checkKind("keys", t.keyKind, keys); err != nil {
		return err
	}
	if err := checkKind("values", t.valueKind, values); err != nil {
		return err
	}
	if !batch.SameShape(keys, values) {
		return &ErrShapeMismatch{What: "values", Expected: keys.Shape(), Actual: values.Shape()}
	}

	ks, err := batch.Values[K](keys)
	if err != nil {
		return err
	}
	vs, err := batch.Values[V](values)
	if err != nil {
		return err
	}

	for i, k := range ks {
		if _, ok := t.entries[k]; ok {
			continue
		}
		v := vs[i]
		if t.acct != nil {
			if n := payload(k) + payload(v); n > 0 {
				if err := t.acct.ReserveMemory(n); err != nil {
					return fmt.Errorf("insert position %d: %w", i, err)
				}
				t.reserved += n
			}
		}
		t.entries[clone(k)] = clone(v)
	}

	return nil
}

func (t *typed[K, V]) Find(keys, defaultValue, out *batch.Batch) (*roaring.Bitmap, error) {
	if err := checkKind("keys", t.keyKind, keys); err != nil {
		return nil, err
	}
	if err := checkKind("default", t.valueKind, defaultValue); err != nil {
		return nil, err
	}
	if err := checkKind("out", t.valueKind, out); err != nil {
		return nil, err
	}
	if !batch.SameShape(keys, out) {
		return nil, &ErrShapeMismatch{What: "out", Expected: keys.Shape(), Actual: out.Shape()}
	}

	ks, err := batch.Values[K](keys)
	if err != nil {
		return nil, err
	}
	defs, err := batch.Values[V](defaultValue)
	if err != nil {
		return nil, err
	}
	if len(defs) == 0 {
		return nil, ErrDefaultValue
	}
	dst, err := batch.Values[V](out)
	if err != nil {
		return nil, err
	}

	def := defs[0]
	misses := roaring.New()
	for i, k := range ks {
		v, ok := t.entries[k]
		if !ok {
			v = def
			misses.Add(uint32(i)) //nolint:gosec
		}
		dst[i] = clone(v)
	}

	return misses, nil
}

func (t *typed[K, V]) Export() (*batch.Batch, *batch.Batch) {
	ks := make([]K, 0, len(t.entries))
	vs := make([]V, 0, len(t.entries))
	for k, v := range t.entries {
		ks = append(ks, clone(k))
		vs = append(vs, clone(v))
	}
	return batch.MustOf(ks), batch.MustOf(vs)
}

func (t *typed[K, V]) Release() {
	clear(t.entries)
	if t.acct != nil && t.reserved > 0 {
		t.acct.ReleaseMemory(t.reserved)
	}
	t.reserved = 0
}

func checkKind(side string, want dtype.Kind, b *batch.Batch) error {
	if got := b.Kind(); got != want {
		return &ErrTypeMismatch{Side: side, Expected: want, Actual: got}
	}
	return nil
}

// clone copies string payloads so stored and returned values never share
// memory with caller buffers.
func clone[T dtype.Element](v T) T {
	if s, ok := any(v).(string); ok {
		return any(strings.Clone(s)).(T)
	}
	return v
}

func payload[T dtype.Element](v T) int64 {
	if s, ok := any(v).(string); ok {
		return int64(len(s))
	}
	return 0
}
