package loader

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/hupe1980/lookup/batch"
	"github.com/hupe1980/lookup/blobstore"
	"github.com/hupe1980/lookup/dtype"
	"github.com/hupe1980/lookup/internal/conv"
	"github.com/hupe1980/lookup/resource"
	"github.com/hupe1980/lookup/table"
)

const (
	// Unchecked disables the vocabulary size check.
	Unchecked int64 = -1
	// LineNumber selects the 0-based line counter as key or value.
	LineNumber int64 = -1
	// WholeLine selects the complete line as key or value.
	WholeLine int64 = -2
	// DefaultDelimiter separates columns when Config.Delimiter is empty.
	DefaultDelimiter = " "
)

// cancelCheckInterval is how many lines are read between context checks.
const cancelCheckInterval = 1024

// Config describes the layout of a vocabulary file.
type Config struct {
	// VocabularySize is the exact number of lines, or Unchecked.
	VocabularySize int64
	// KeyIndex is a column index, LineNumber or WholeLine.
	KeyIndex int64
	// ValueIndex is a column index, LineNumber or WholeLine.
	ValueIndex int64
	// Delimiter separates columns. It is matched literally.
	Delimiter string
	// Compression overrides the codec inferred from the file extension.
	Compression *Compression
}

// DefaultConfig maps each whole line to its line number.
func DefaultConfig() Config {
	return Config{
		VocabularySize: Unchecked,
		KeyIndex:       WholeLine,
		ValueIndex:     LineNumber,
		Delimiter:      DefaultDelimiter,
	}
}

func (c Config) tokenize() bool {
	return max(c.KeyIndex, c.ValueIndex) >= 0
}

func (c Config) validate() error {
	if c.VocabularySize < Unchecked {
		return fmt.Errorf("%w: vocabulary size %d", ErrConfig, c.VocabularySize)
	}
	if c.KeyIndex < WholeLine {
		return fmt.Errorf("%w: key index %d", ErrConfig, c.KeyIndex)
	}
	if c.ValueIndex < WholeLine {
		return fmt.Errorf("%w: value index %d", ErrConfig, c.ValueIndex)
	}
	return nil
}

// Option configures a Loader.
type Option func(*Loader)

// WithBlobStore sets the store vocabulary files are opened from.
// The default is a LocalStore resolving names against the working directory.
func WithBlobStore(store blobstore.BlobStore) Option {
	return func(l *Loader) {
		if store != nil {
			l.store = store
		}
	}
}

// WithLogger sets the logger for load progress.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithResourceController throttles file reads through rc.
func WithResourceController(rc *resource.Controller) Option {
	return func(l *Loader) {
		l.rc = rc
	}
}

// Loader streams vocabulary files into tables.
type Loader struct {
	cfg    Config
	store  blobstore.BlobStore
	logger *slog.Logger
	rc     *resource.Controller
}

// New creates a Loader for files laid out as cfg describes.
// An empty delimiter defaults to DefaultDelimiter.
func New(cfg Config, opts ...Option) (*Loader, error) {
	if cfg.Delimiter == "" {
		cfg.Delimiter = DefaultDelimiter
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	l := &Loader{
		cfg:    cfg,
		store:  blobstore.NewLocalStore(""),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(l)
	}

	return l, nil
}

// Config returns the loader's configuration.
func (l *Loader) Config() Config { return l.cfg }

// Load inserts one pair per line of the named file into t and returns the
// number of lines read. A table that is already initialized is left as is
// and Load returns 0.
//
// Lines are inserted as they are read; on error the lines before the failing
// one stay in the table.
func (l *Loader) Load(ctx context.Context, t table.Table, name string) (int64, error) {
	if t == nil {
		return 0, fmt.Errorf("%w: nil table", ErrConfig)
	}
	if t.IsInitialized() {
		l.logger.DebugContext(ctx, "table already initialized, skipping load", "file", name, "size", t.Size())
		return 0, nil
	}

	start := time.Now()
	l.logger.DebugContext(ctx, "loading vocabulary", "file", name,
		"key_index", l.cfg.KeyIndex, "value_index", l.cfg.ValueIndex, "vocabulary_size", l.cfg.VocabularySize)

	lines, err := l.load(ctx, t, name)
	if err != nil {
		l.logger.ErrorContext(ctx, "vocabulary load failed", "file", name, "lines", lines, "error", err)
		return lines, err
	}

	l.logger.DebugContext(ctx, "vocabulary loaded", "file", name, "lines", lines,
		"size", t.Size(), "duration", time.Since(start))
	return lines, nil
}

func (l *Loader) load(ctx context.Context, t table.Table, name string) (int64, error) {
	blob, err := l.store.Open(ctx, name)
	if err != nil {
		return 0, &ErrOpen{Path: name, Err: err}
	}
	defer blob.Close()

	raw, err := blobstore.NewReader(ctx, blob)
	if err != nil {
		return 0, &ErrOpen{Path: name, Err: err}
	}
	defer raw.Close()

	var src io.Reader = raw
	if l.rc != nil {
		src = resource.NewRateLimitedReader(ctx, src, l.rc)
	}

	codec := DetectCompression(name)
	if l.cfg.Compression != nil {
		codec = *l.cfg.Compression
	}
	src, dec, err := decompress(src, codec)
	if err != nil {
		return 0, &ErrOpen{Path: name, Err: err}
	}
	defer dec.Close()

	keys, err := batch.New(t.KeyKind(), 1)
	if err != nil {
		return 0, err
	}
	values, err := batch.New(t.ValueKind(), 1)
	if err != nil {
		return 0, err
	}

	r := bufio.NewReaderSize(src, 64*1024)
	var (
		cnt    int64
		tokens []string
	)
	for {
		line, rerr := r.ReadString('\n')
		if rerr != nil && !errors.Is(rerr, io.EOF) {
			return cnt, fmt.Errorf("read %s: %w", name, rerr)
		}
		if line == "" && rerr != nil {
			break
		}
		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")

		if l.cfg.VocabularySize != Unchecked && cnt == l.cfg.VocabularySize {
			return cnt, &ErrVocabularySize{Declared: l.cfg.VocabularySize, Lines: cnt + 1, TooSmall: true}
		}
		if cnt%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return cnt, err
			}
		}

		tokens = tokens[:0]
		if l.cfg.tokenize() {
			tokens = append(tokens, strings.Split(line, l.cfg.Delimiter)...)
		}

		if err := assign(keys, line, tokens, l.cfg.KeyIndex, cnt); err != nil {
			return cnt, &LineError{Line: cnt, Err: fmt.Errorf("key: %w", err)}
		}
		if err := assign(values, line, tokens, l.cfg.ValueIndex, cnt); err != nil {
			return cnt, &LineError{Line: cnt, Err: fmt.Errorf("value: %w", err)}
		}
		if err := t.Insert(keys, values); err != nil {
			return cnt, &LineError{Line: cnt, Err: err}
		}
		cnt++

		if rerr != nil {
			break
		}
	}

	if l.cfg.VocabularySize != Unchecked && cnt < l.cfg.VocabularySize {
		return cnt, &ErrVocabularySize{Declared: l.cfg.VocabularySize, Lines: cnt}
	}

	return cnt, nil
}

// assign writes the field selected by index into the single slot of b.
func assign(b *batch.Batch, line string, tokens []string, index, lineNo int64) error {
	if index == LineNumber {
		return setLineNumber(b, lineNo)
	}

	token := line
	if index != WholeLine {
		if index >= int64(len(tokens)) {
			return fmt.Errorf("%w: index %d, %d tokens", ErrColumnIndex, index, len(tokens))
		}
		token = tokens[index]
	}
	return setToken(b, token)
}

func setLineNumber(b *batch.Batch, n int64) error {
	switch b.Kind() {
	case dtype.Int32:
		v, err := conv.Int64ToInt32(n)
		if err != nil {
			return err
		}
		return set(b, v)
	case dtype.Int64:
		return set(b, n)
	case dtype.Float32:
		return set(b, float32(n))
	case dtype.Float64:
		return set(b, float64(n))
	case dtype.String:
		return set(b, strconv.FormatInt(n, 10))
	default:
		return fmt.Errorf("%w: %s", dtype.ErrUnsupported, b.Kind())
	}
}

func setToken(b *batch.Batch, token string) error {
	kind := b.Kind()
	if kind == dtype.String {
		return set(b, token)
	}

	s := strings.TrimSpace(token)
	switch kind {
	case dtype.Int32:
		v, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			return fmt.Errorf("%w: %q as %s: %w", ErrParse, token, kind, err)
		}
		return set(b, int32(v))
	case dtype.Int64:
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %q as %s: %w", ErrParse, token, kind, err)
		}
		return set(b, v)
	case dtype.Float32:
		v, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return fmt.Errorf("%w: %q as %s: %w", ErrParse, token, kind, err)
		}
		return set(b, float32(v))
	case dtype.Float64:
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("%w: %q as %s: %w", ErrParse, token, kind, err)
		}
		return set(b, v)
	default:
		return fmt.Errorf("%w: %s", dtype.ErrUnsupported, kind)
	}
}

func set[T dtype.Element](b *batch.Batch, v T) error {
	s, err := batch.Values[T](b)
	if err != nil {
		return err
	}
	s[0] = v
	return nil
}
