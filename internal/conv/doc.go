// Package conv provides checked integer conversions.
//
// Shapes and line counters arrive as int64 from the host boundary, while Go
// slices are indexed with int and bitmap positions are uint32. These helpers
// reject values that would silently wrap.
package conv
