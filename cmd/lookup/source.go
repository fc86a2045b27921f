package main

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/hupe1980/lookup/blobstore"
	miniostore "github.com/hupe1980/lookup/blobstore/minio"
	s3store "github.com/hupe1980/lookup/blobstore/s3"
	"github.com/hupe1980/lookup/internal/cache"
	"github.com/hupe1980/lookup/resource"
)

const defaultBlockSize = 1 << 20

// sourceConfig configures how vocabulary URIs are resolved.
type sourceConfig struct {
	S3Region   string
	S3Endpoint string
	Minio      miniostore.Config
	// CacheBytes enables a block cache of that size in front of each
	// remote bucket. Zero disables caching.
	CacheBytes int64
	BlockSize  int64
}

// storeFactory opens the store of a remote bucket.
type storeFactory func(ctx context.Context, scheme, bucket string) (blobstore.BlobStore, error)

// resolver maps file URIs to a blob store and a name inside it.
//
//	words.txt, /abs/words.txt, file:///abs/words.txt -> local file system
//	s3://bucket/key                                  -> Amazon S3
//	minio://bucket/key                               -> MinIO
type resolver struct {
	cfg     sourceConfig
	rc      *resource.Controller
	factory storeFactory

	mu     sync.Mutex
	local  blobstore.BlobStore
	stores map[string]blobstore.BlobStore
}

func newResolver(cfg sourceConfig, rc *resource.Controller) *resolver {
	r := &resolver{
		cfg:    cfg,
		rc:     rc,
		local:  blobstore.NewLocalStore(""),
		stores: make(map[string]blobstore.BlobStore),
	}
	r.factory = r.openRemote
	return r
}

func (r *resolver) openRemote(ctx context.Context, scheme, bucket string) (blobstore.BlobStore, error) {
	switch scheme {
	case "s3":
		var opts []s3store.Option
		if r.cfg.S3Region != "" {
			opts = append(opts, s3store.WithRegion(r.cfg.S3Region))
		}
		if r.cfg.S3Endpoint != "" {
			opts = append(opts, s3store.WithEndpoint(r.cfg.S3Endpoint))
		}
		return s3store.New(ctx, bucket, opts...)
	case "minio":
		if r.cfg.Minio.Endpoint == "" {
			return nil, fmt.Errorf("minio://%s: no MinIO endpoint configured", bucket)
		}
		return miniostore.New(r.cfg.Minio, bucket, "")
	default:
		return nil, fmt.Errorf("unsupported scheme %q", scheme)
	}
}

// Resolve returns the store holding uri and the blob name within it.
func (r *resolver) Resolve(ctx context.Context, uri string) (blobstore.BlobStore, string, error) {
	if !strings.Contains(uri, "://") {
		return r.local, uri, nil
	}

	u, err := url.Parse(uri)
	if err != nil {
		return nil, "", fmt.Errorf("parse %q: %w", uri, err)
	}
	if u.Scheme == "file" {
		return r.local, u.Path, nil
	}
	if u.Host == "" {
		return nil, "", fmt.Errorf("%q: missing bucket", uri)
	}
	name := strings.TrimPrefix(u.Path, "/")
	if name == "" {
		return nil, "", fmt.Errorf("%q: missing object key", uri)
	}

	key := u.Scheme + "://" + u.Host
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.stores[key]; ok {
		return s, name, nil
	}

	s, err := r.factory(ctx, u.Scheme, u.Host)
	if err != nil {
		return nil, "", err
	}
	if r.cfg.CacheBytes > 0 {
		blockSize := r.cfg.BlockSize
		if blockSize <= 0 {
			blockSize = defaultBlockSize
		}
		s = blobstore.NewCachingStore(s, cache.NewLRUBlockCache(r.cfg.CacheBytes, r.rc), blockSize)
	}
	r.stores[key] = s

	return s, name, nil
}
