// Package loader fills a table from a delimited vocabulary file.
//
// Each line of the file yields one key/value pair. A column index selects a
// delimiter-separated token; LineNumber uses the 0-based line counter and
// WholeLine uses the complete line. The file is read through a
// blobstore.BlobStore, so local, in-memory and object-store sources behave
// the same. Files ending in .gz, .zst, .sz or .lz4 are decompressed on the
// fly.
//
// A table that already holds entries is left untouched.
package loader
