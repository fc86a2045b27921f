package testutil

import (
	"math"
	"math/rand"
	"strconv"
	"sync"
)

const letters = "abcdefghijklmnopqrstuvwxyz"

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), //nolint:gosec
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Word returns a random lowercase word of the given length.
func (r *RNG) Word(length int) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.wordLocked(length)
}

func (r *RNG) wordLocked(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = letters[r.rand.Intn(len(letters))]
	}
	return string(b)
}

// Words returns n distinct random words. Each word is at least length
// letters long; a numeric suffix keeps them unique.
func (r *RNG) Words(n, length int) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]struct{}, n)
	words := make([]string, 0, n)
	for i := 0; len(words) < n; i++ {
		w := r.wordLocked(length)
		if _, ok := seen[w]; ok {
			w += strconv.Itoa(i)
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		words = append(words, w)
	}

	return words
}

// Int64Keys returns n distinct keys in random order.
func (r *RNG) Int64Keys(n int) []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	keys := make([]int64, n)
	for i, p := range r.rand.Perm(n) {
		keys[i] = int64(p)
	}
	return keys
}

// Zipf returns a Zipfian-distributed value in [0, n).
// Uses Zipf's law: P(k) ∝ 1/k^s where s is the skew parameter.
// s=1.0 gives standard Zipf, s=1.5 gives heavy-tail (80/20 rule).
func (r *RNG) Zipf(n int, s float64) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.zipfLocked(n, s)
}

// zipfLocked is the internal implementation (caller must hold lock).
func (r *RNG) zipfLocked(n int, s float64) int {
	if n <= 1 {
		return 0
	}

	var hns float64
	for i := 1; i <= n; i++ {
		hns += 1.0 / math.Pow(float64(i), s)
	}

	u := r.rand.Float64() * hns
	var cumulative float64
	for k := 1; k <= n; k++ {
		cumulative += 1.0 / math.Pow(float64(k), s)
		if u <= cumulative {
			return k - 1
		}
	}

	return n - 1
}

// ZipfKeys returns n keys drawn from [0, distinct) with Zipfian skew.
// Useful for lookups where a few keys dominate and repeats are expected.
func (r *RNG) ZipfKeys(n, distinct int, s float64) []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	keys := make([]int64, n)
	for i := range n {
		keys[i] = int64(r.zipfLocked(distinct, s))
	}

	return keys
}

// HitRate returns the fraction of probes present in keys.
func HitRate[K comparable](keys, probes []K) float64 {
	if len(probes) == 0 {
		return 0
	}

	set := make(map[K]struct{}, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}

	hits := 0
	for _, p := range probes {
		if _, ok := set[p]; ok {
			hits++
		}
	}

	return float64(hits) / float64(len(probes))
}
