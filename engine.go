package lookup

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/lookup/batch"
	"github.com/hupe1980/lookup/dtype"
	"github.com/hupe1980/lookup/loader"
	"github.com/hupe1980/lookup/reducejoin"
	"github.com/hupe1980/lookup/resource"
	"github.com/hupe1980/lookup/table"
)

// Engine exposes the table operations over handles and batches.
// Errors returned by its methods can be matched against the package's
// sentinels and error types with errors.Is and errors.As.
//
// An Engine holds no table state and is safe for concurrent use; concurrent
// calls on the same handle are not.
type Engine struct {
	opts options
}

// New creates an Engine.
func New(optFns ...Option) *Engine {
	return &Engine{opts: applyOptions(optFns)}
}

// Logger returns the engine's logger.
func (e *Engine) Logger() *Logger { return e.opts.logger }

// ResourceController returns the controller set with WithResourceController,
// or nil.
func (e *Engine) ResourceController() *resource.Controller { return e.opts.rc }

func (e *Engine) tableOptions() []table.Option {
	var opts []table.Option
	if e.opts.rc != nil {
		opts = append(opts, table.WithMemoryAccountant(e.opts.rc))
	}
	if e.opts.tableCapacity > 0 {
		opts = append(opts, table.WithCapacity(e.opts.tableCapacity))
	}
	return opts
}

// Create builds the table of h for the named key and value types unless h
// already holds one. An occupied handle is left as is and the type names are
// not even parsed. Accepted names are int32, int64, float32, float64 and
// custom[string]64 (or string).
func (e *Engine) Create(h *Handle, keyTypeName, valueTypeName string) (err error) {
	ctx := context.Background()
	var created bool
	defer func() {
		e.opts.metricsCollector.RecordCreate(created, err)
		e.opts.logger.LogCreate(ctx, keyTypeName, valueTypeName, created, err)
	}()

	if h == nil {
		return fmt.Errorf("%w: nil handle", ErrInvalidArgument)
	}
	if _, terr := h.Table(); terr == nil {
		return nil
	}
	keyKind, err := dtype.Parse(keyTypeName)
	if err != nil {
		return translateError(err)
	}
	valueKind, err := dtype.Parse(valueTypeName)
	if err != nil {
		return translateError(err)
	}

	_, created, err = h.GetOrCreate(keyKind, valueKind, e.tableOptions()...)
	return err
}

// Find looks up every element of keys and writes the mapped value, or
// element 0 of defaultValue, to the same position of out.
func (e *Engine) Find(h *Handle, keys, defaultValue, out *batch.Batch) (err error) {
	ctx := context.Background()
	start := time.Now()
	count, misses := keys.Len(), 0
	defer func() {
		e.opts.metricsCollector.RecordFind(count, misses, time.Since(start), err)
		e.opts.logger.LogFind(ctx, count, misses, err)
	}()

	t, err := h.Table()
	if err != nil {
		return err
	}

	missed, err := t.Find(keys, defaultValue, out)
	if err != nil {
		return translateError(err)
	}
	misses = int(missed.GetCardinality()) //nolint:gosec

	return nil
}

// Init inserts keys[i] -> values[i] into an empty table. It does nothing if
// the table already holds entries. flag, when given, is an int32 batch whose
// first element is set to 1 on success.
func (e *Engine) Init(h *Handle, keys, values, flag *batch.Batch) (err error) {
	ctx := context.Background()
	start := time.Now()
	count := keys.Len()
	var (
		skipped bool
		size    int
	)
	defer func() {
		e.opts.metricsCollector.RecordInsert(count, time.Since(start), err)
		e.opts.logger.LogInsert(ctx, count, size, skipped, err)
	}()

	if err := checkFlag(flag); err != nil {
		return err
	}
	t, err := h.Table()
	if err != nil {
		return err
	}

	if t.IsInitialized() {
		skipped = true
	} else if err := t.Insert(keys, values); err != nil {
		return translateError(err)
	}
	size = t.Size()

	setFlag(flag)
	return nil
}

// InitFromTextFile fills an empty table from a vocabulary file. Element 0 of
// file names the file in the engine's blob store. vocabularySize,
// keyIndex, valueIndex and delimiter are interpreted as by loader.Config.
// The table is left untouched if it already holds entries.
func (e *Engine) InitFromTextFile(ctx context.Context, h *Handle, file *batch.Batch,
	vocabularySize, keyIndex, valueIndex int64, delimiter string, flag *batch.Batch,
) (err error) {
	start := time.Now()
	var (
		name  string
		lines int64
		size  int
	)
	defer func() {
		e.opts.metricsCollector.RecordLoad(lines, time.Since(start), err)
		e.opts.logger.LogLoad(ctx, name, lines, size, err)
	}()

	if err := checkFlag(flag); err != nil {
		return err
	}
	names, err := batch.Values[string](file)
	if err != nil {
		return translateError(err)
	}
	if len(names) == 0 {
		return fmt.Errorf("%w: empty file name batch", ErrInvalidArgument)
	}
	name = names[0]

	t, err := h.Table()
	if err != nil {
		return err
	}

	l, err := loader.New(loader.Config{
		VocabularySize: vocabularySize,
		KeyIndex:       keyIndex,
		ValueIndex:     valueIndex,
		Delimiter:      delimiter,
	},
		loader.WithBlobStore(e.opts.store),
		loader.WithLogger(e.opts.logger.Logger),
		loader.WithResourceController(e.opts.rc),
	)
	if err != nil {
		return translateError(err)
	}

	lines, err = l.Load(ctx, t, name)
	if err != nil {
		return translateError(err)
	}
	size = t.Size()

	setFlag(flag)
	return nil
}

// ReduceJoin joins the strings of in along axes with separator and writes
// one string per group to out. axes is an int32 or int64 batch; negative
// values count from the last dimension.
func (e *Engine) ReduceJoin(in, axes *batch.Batch, keepDims bool, separator string, out *batch.Batch) (err error) {
	ctx := context.Background()
	start := time.Now()
	var ax []int
	defer func() {
		e.opts.metricsCollector.RecordReduceJoin(out.Len(), time.Since(start), err)
		e.opts.logger.LogReduceJoin(ctx, ax, out.Len(), err)
	}()

	ax, err = axesOf(axes)
	if err != nil {
		return err
	}

	return translateError(reducejoin.JoinInto(in, ax, keepDims, separator, out))
}

// Export returns the contents of h's table as two rank-1 batches.
func (e *Engine) Export(h *Handle) (keys, values *batch.Batch, err error) {
	t, err := h.Table()
	if err != nil {
		return nil, nil, err
	}
	keys, values = t.Export()
	return keys, values, nil
}

func axesOf(b *batch.Batch) ([]int, error) {
	if b == nil {
		return nil, nil
	}
	switch b.Kind() {
	case dtype.Int32:
		v, err := batch.Values[int32](b)
		if err != nil {
			return nil, translateError(err)
		}
		axes := make([]int, len(v))
		for i, a := range v {
			axes[i] = int(a)
		}
		return axes, nil
	case dtype.Int64:
		v, err := batch.Values[int64](b)
		if err != nil {
			return nil, translateError(err)
		}
		axes := make([]int, len(v))
		for i, a := range v {
			axes[i] = int(a)
		}
		return axes, nil
	default:
		return nil, &ErrTypeMismatch{Side: "axes", Expected: dtype.Int32, Actual: b.Kind()}
	}
}

func checkFlag(flag *batch.Batch) error {
	if flag == nil {
		return nil
	}
	if flag.Kind() != dtype.Int32 {
		return &ErrTypeMismatch{Side: "flag", Expected: dtype.Int32, Actual: flag.Kind()}
	}
	return nil
}

func setFlag(flag *batch.Batch) {
	if flag == nil {
		return
	}
	if v, err := batch.Values[int32](flag); err == nil && len(v) > 0 {
		v[0] = 1
	}
}
