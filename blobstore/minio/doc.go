// Package minio reads vocabulary files from MinIO or any other S3-compatible
// server through the MinIO client.
//
//	store, err := minio.New(minio.Config{
//	    Endpoint:  "localhost:9000",
//	    AccessKey: "minioadmin",
//	    SecretKey: "minioadmin",
//	}, "vocab", "en/")
//	if err != nil {
//	    return err
//	}
//	eng := lookup.New(lookup.WithBlobStore(store))
//
// Blobs are fetched lazily with ranged GETs, so a vocabulary file is streamed
// rather than downloaded up front. Use NewStore to share an existing client.
package minio
