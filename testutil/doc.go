// Package testutil provides testing utilities for the lookup engine.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded random generator for keys and vocabularies and
// helpers that write vocabulary files, optionally compressed.
//
// # Random Vocabularies
//
//	rng := testutil.NewRNG(seed)
//	words := rng.Words(1000, 8)        // distinct lowercase words
//	keys := rng.ZipfKeys(1000, 50, 1.5) // skewed, with repeats
//
// # Vocabulary Files
//
//	path := testutil.WriteVocabulary(t, t.TempDir(), "vocab.txt.gz", lines)
//
// The codec is picked from the file extension.
package testutil
