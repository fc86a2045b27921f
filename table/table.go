package table

import (
	"fmt"
	"sort"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/lookup/batch"
	"github.com/hupe1980/lookup/dtype"
)

// Table is a key/value lookup table with fixed key and value kinds.
type Table interface {
	// KeyKind returns the kind of the keys.
	KeyKind() dtype.Kind
	// ValueKind returns the kind of the values.
	ValueKind() dtype.Kind

	// Size returns the number of distinct keys. NaN keys never compare equal,
	// so each inserted NaN counts as its own entry.
	Size() int
	// IsInitialized reports whether the table holds at least one entry.
	IsInitialized() bool

	// Insert adds keys[i] -> values[i] for every position in index order.
	// Keys already present keep their value. Kind and shape are validated
	// before the table is touched.
	Insert(keys, values *batch.Batch) error

	// Find writes the value of keys[i] to out[i], or element 0 of
	// defaultValue when the key is absent. The returned bitmap holds the
	// positions that fell back to the default.
	Find(keys, defaultValue, out *batch.Batch) (*roaring.Bitmap, error)

	// Export returns the contents as two rank-1 batches in matching order.
	Export() (keys, values *batch.Batch)

	// Release drops every entry and returns accounted memory.
	Release()
}

// MemoryAccountant tracks the string payload a table stores.
// resource.Controller satisfies it.
type MemoryAccountant interface {
	ReserveMemory(n int64) error
	ReleaseMemory(n int64)
}

// Option configures a table.
type Option func(*options)

type options struct {
	acct     MemoryAccountant
	capacity int
}

// WithMemoryAccountant reserves the bytes of every stored string through acct.
func WithMemoryAccountant(acct MemoryAccountant) Option {
	return func(o *options) {
		o.acct = acct
	}
}

// WithCapacity pre-sizes the table for n entries.
func WithCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.capacity = n
		}
	}
}

type pair [2]dtype.Kind

type factory func(o options) Table

var registry = map[pair]factory{}

func register[K, V dtype.Element]() {
	registry[pair{dtype.KindOf[K](), dtype.KindOf[V]()}] = func(o options) Table {
		return newTyped[K, V](o)
	}
}

func init() {
	registerKey[int32]()
	registerKey[int64]()
	registerKey[float32]()
	registerKey[float64]()
	registerKey[string]()
}

func registerKey[K dtype.Element]() {
	register[K, int32]()
	register[K, int64]()
	register[K, float32]()
	register[K, float64]()
	register[K, string]()
}

// New creates an empty table for the given key and value kinds.
func New(keyKind, valueKind dtype.Kind, opts ...Option) (Table, error) {
	f, ok := registry[pair{keyKind, valueKind}]
	if !ok {
		return nil, fmt.Errorf("%w: %s -> %s", ErrUnsupportedType, keyKind, valueKind)
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	return f(o), nil
}

// Supported lists every registered (key, value) pair ordered by key kind,
// then value kind.
func Supported() [][2]dtype.Kind {
	out := make([][2]dtype.Kind, 0, len(registry))
	for p := range registry {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i][0] != out[j][0] {
			return out[i][0] < out[j][0]
		}
		return out[i][1] < out[j][1]
	})
	return out
}
