// Package table implements typed lookup tables over batches.
//
// A table maps keys of one element kind to values of another. Every
// combination of the supported kinds (int32, int64, float32, float64 and
// string) is available through New, which dispatches to a generic
// implementation instantiated for that pair.
//
// Inserts keep the first value seen for a key. Lookups write the mapped value
// or a copy of the default into an output batch and report which positions
// fell back to the default.
//
// Tables are not safe for concurrent use.
package table
