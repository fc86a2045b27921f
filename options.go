package lookup

import (
	"log/slog"

	"github.com/hupe1980/lookup/blobstore"
	"github.com/hupe1980/lookup/resource"
)

type options struct {
	metricsCollector MetricsCollector
	logger           *Logger
	store            blobstore.BlobStore
	rc               *resource.Controller
	tableCapacity    int
}

// Option configures an Engine.
type Option func(*options)

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &lookup.BasicMetricsCollector{}
//	eng := lookup.New(lookup.WithMetricsCollector(metrics))
//	// ... use eng ...
//	stats := metrics.GetStats()
//	fmt.Printf("Finds: %d, hit rate: %.2f\n", stats.FindCount, stats.HitRate())
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := lookup.NewJSONLogger(slog.LevelInfo)
//	eng := lookup.New(lookup.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithBlobStore sets where InitFromTextFile resolves file names.
// The default is the local file system relative to the working directory.
func WithBlobStore(store blobstore.BlobStore) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithResourceController shares rc between all tables and loads of the
// engine. String payloads count against its memory limit and vocabulary
// reads against its IO limit.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.rc = rc
	}
}

// WithTableCapacity pre-sizes newly created tables for n entries.
func WithTableCapacity(n int) Option {
	return func(o *options) {
		o.tableCapacity = n
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
		store:            blobstore.NewLocalStore(""),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.store == nil {
		o.store = blobstore.NewLocalStore("")
	}
	return o
}
