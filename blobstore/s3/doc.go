// Package s3 provides an S3 implementation of the blobstore.BlobStore interface.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("vocabularies/"),
//	    s3.WithRegion("us-east-1"),
//	)
//
//	engine := lookup.New(lookup.WithBlobStore(store))
//
// # Features
//
//   - Range reads for streaming vocabulary files
//   - Multipart uploads with CRC32C checksums for Put
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
package s3
