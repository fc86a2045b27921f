package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/hupe1980/lookup"
	"github.com/hupe1980/lookup/blobstore"
	"github.com/hupe1980/lookup/prom"
	"github.com/hupe1980/lookup/resource"
)

// app holds the global flags and the state shared by subcommands.
type app struct {
	logLevel     string
	memoryLimit  int64
	ioLimit      int64
	printMetrics bool
	concurrency  int
	source       sourceConfig

	// storeFactory overrides how remote buckets are opened.
	storeFactory storeFactory

	rc       *resource.Controller
	resolver *resolver
	registry *prometheus.Registry
	metrics  lookup.MetricsCollector
	logger   *lookup.Logger
}

func newRootCmd() *cobra.Command {
	return newCommand(&app{})
}

func newCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:          "lookup",
		Short:        "Typed lookup tables from vocabulary files",
		Long:         `Build typed key/value lookup tables from delimited vocabulary files on local disk, S3 or MinIO, and query them from the command line.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd.ErrOrStderr())
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			if !a.printMetrics || a.registry == nil {
				return nil
			}
			return writeMetrics(cmd.ErrOrStderr(), a.registry)
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&a.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	f.Int64Var(&a.memoryLimit, "memory-limit", 0, "memory limit in bytes for table strings and cached blocks (0 = unlimited)")
	f.Int64Var(&a.ioLimit, "io-limit", 0, "vocabulary read limit in bytes per second (0 = unlimited)")
	f.BoolVar(&a.printMetrics, "metrics", false, "print Prometheus metrics to stderr on exit")
	f.StringVar(&a.source.S3Region, "s3-region", "", "region for s3:// files")
	f.StringVar(&a.source.S3Endpoint, "s3-endpoint", "", "S3-compatible endpoint for s3:// files")
	f.StringVar(&a.source.Minio.Endpoint, "minio-endpoint", os.Getenv("MINIO_ENDPOINT"), "endpoint for minio:// files")
	f.StringVar(&a.source.Minio.AccessKey, "minio-access-key", os.Getenv("MINIO_ACCESS_KEY"), "MinIO access key")
	f.StringVar(&a.source.Minio.SecretKey, "minio-secret-key", os.Getenv("MINIO_SECRET_KEY"), "MinIO secret key")
	f.BoolVar(&a.source.Minio.Secure, "minio-secure", true, "use TLS for MinIO")
	f.Int64Var(&a.source.CacheBytes, "cache-bytes", 64<<20, "block cache size for remote files (0 = disabled)")
	f.Int64Var(&a.source.BlockSize, "cache-block-size", defaultBlockSize, "block size of the remote file cache")

	root.AddCommand(
		newLoadCmd(a),
		newFindCmd(a),
		newExportCmd(a),
		newReduceJoinCmd(a),
		newEncodeCmd(),
		newDecodeCmd(),
	)

	return root
}

func (a *app) init(stderr io.Writer) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(a.logLevel)); err != nil {
		return fmt.Errorf("--log-level: %w", err)
	}
	a.logger = lookup.NewLogger(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	a.rc = resource.NewController(resource.Config{
		MemoryLimitBytes:   a.memoryLimit,
		IOLimitBytesPerSec: a.ioLimit,
	})
	a.resolver = newResolver(a.source, a.rc)
	if a.storeFactory != nil {
		a.resolver.factory = a.storeFactory
	}

	a.registry = prometheus.NewRegistry()
	c, err := prom.NewCollector(a.registry, "lookup")
	if err != nil {
		return err
	}
	a.metrics = c

	return nil
}

// engine returns an engine reading vocabulary files from store.
func (a *app) engine(store blobstore.BlobStore) *lookup.Engine {
	return lookup.New(
		lookup.WithLogger(a.logger),
		lookup.WithMetricsCollector(a.metrics),
		lookup.WithResourceController(a.rc),
		lookup.WithBlobStore(store),
	)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if !strings.HasPrefix(mf.GetName(), "lookup_") {
			continue
		}
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
