package lookup

import (
	"sync"

	"github.com/hupe1980/lookup/dtype"
	"github.com/hupe1980/lookup/table"
)

// Handle is the slot that owns at most one table. The table is built by the
// first GetOrCreate; later calls return it unchanged.
//
// A Handle is safe for concurrent use; the table it holds is not.
type Handle struct {
	mu sync.Mutex
	t  table.Table
}

// NewHandle returns an empty handle.
func NewHandle() *Handle {
	return &Handle{}
}

// GetOrCreate returns the handle's table, constructing it for keyKind and
// valueKind if the handle is empty. created reports whether this call built
// the table. Asking an occupied handle for different kinds is a type
// mismatch.
func (h *Handle) GetOrCreate(keyKind, valueKind dtype.Kind, opts ...table.Option) (t table.Table, created bool, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.t != nil {
		if h.t.KeyKind() != keyKind {
			return nil, false, &ErrTypeMismatch{Side: "key", Expected: h.t.KeyKind(), Actual: keyKind}
		}
		if h.t.ValueKind() != valueKind {
			return nil, false, &ErrTypeMismatch{Side: "value", Expected: h.t.ValueKind(), Actual: valueKind}
		}
		return h.t, false, nil
	}

	t, err = table.New(keyKind, valueKind, opts...)
	if err != nil {
		return nil, false, translateError(err)
	}
	h.t = t

	return t, true, nil
}

// Table returns the handle's table or ErrNotCreated.
func (h *Handle) Table() (table.Table, error) {
	if h == nil {
		return nil, ErrNotCreated
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.t == nil {
		return nil, ErrNotCreated
	}
	return h.t, nil
}

// Release drops the table and its entries. The handle can be reused.
func (h *Handle) Release() {
	if h == nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.t != nil {
		h.t.Release()
		h.t = nil
	}
}
