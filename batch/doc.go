// Package batch implements the dense, row-major array descriptor that every
// lookup operation consumes and produces.
//
// A Batch couples an element kind, a shape and a typed slice holding exactly
// product(shape) elements. String slots are plain Go strings: each slot owns
// its value and an empty string marks an unset cell.
//
// Batches can be exchanged with Apache Arrow arrays through FromArrow and
// ToArrow; Arrow arrays are one-dimensional, so the shape travels separately.
package batch
