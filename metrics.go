package lookup

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus;
// package prom ships such an implementation.
type MetricsCollector interface {
	// RecordCreate is called after each Create. created is false when the
	// handle already held a table.
	RecordCreate(created bool, err error)

	// RecordInsert is called after each Init. count is the number of pairs
	// offered.
	RecordInsert(count int, duration time.Duration, err error)

	// RecordFind is called after each Find. misses is the number of keys
	// that fell back to the default value.
	RecordFind(count, misses int, duration time.Duration, err error)

	// RecordLoad is called after each InitFromTextFile with the number of
	// lines read.
	RecordLoad(lines int64, duration time.Duration, err error)

	// RecordReduceJoin is called after each ReduceJoin. count is the number
	// of joined output strings.
	RecordReduceJoin(count int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordCreate(bool, error)                   {}
func (NoopMetricsCollector) RecordInsert(int, time.Duration, error)     {}
func (NoopMetricsCollector) RecordFind(int, int, time.Duration, error)  {}
func (NoopMetricsCollector) RecordLoad(int64, time.Duration, error)     {}
func (NoopMetricsCollector) RecordReduceJoin(int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	CreateCount      atomic.Int64
	CreateErrors     atomic.Int64
	InsertCount      atomic.Int64
	InsertItems      atomic.Int64
	InsertErrors     atomic.Int64
	FindCount        atomic.Int64
	FindKeys         atomic.Int64
	FindMisses       atomic.Int64
	FindErrors       atomic.Int64
	FindTotalNanos   atomic.Int64
	LoadCount        atomic.Int64
	LoadLines        atomic.Int64
	LoadErrors       atomic.Int64
	LoadTotalNanos   atomic.Int64
	ReduceJoinCount  atomic.Int64
	ReduceJoinErrors atomic.Int64
}

// RecordCreate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCreate(_ bool, err error) {
	b.CreateCount.Add(1)
	if err != nil {
		b.CreateErrors.Add(1)
	}
}

// RecordInsert implements MetricsCollector.
func (b *BasicMetricsCollector) RecordInsert(count int, _ time.Duration, err error) {
	b.InsertCount.Add(1)
	b.InsertItems.Add(int64(count))
	if err != nil {
		b.InsertErrors.Add(1)
	}
}

// RecordFind implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFind(count, misses int, duration time.Duration, err error) {
	b.FindCount.Add(1)
	b.FindTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.FindErrors.Add(1)
		return
	}
	b.FindKeys.Add(int64(count))
	b.FindMisses.Add(int64(misses))
}

// RecordLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLoad(lines int64, duration time.Duration, err error) {
	b.LoadCount.Add(1)
	b.LoadLines.Add(lines)
	b.LoadTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.LoadErrors.Add(1)
	}
}

// RecordReduceJoin implements MetricsCollector.
func (b *BasicMetricsCollector) RecordReduceJoin(_ int, _ time.Duration, err error) {
	b.ReduceJoinCount.Add(1)
	if err != nil {
		b.ReduceJoinErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		CreateCount:      b.CreateCount.Load(),
		CreateErrors:     b.CreateErrors.Load(),
		InsertCount:      b.InsertCount.Load(),
		InsertItems:      b.InsertItems.Load(),
		InsertErrors:     b.InsertErrors.Load(),
		FindCount:        b.FindCount.Load(),
		FindKeys:         b.FindKeys.Load(),
		FindMisses:       b.FindMisses.Load(),
		FindErrors:       b.FindErrors.Load(),
		FindAvgNanos:     avg(b.FindTotalNanos.Load(), b.FindCount.Load()),
		LoadCount:        b.LoadCount.Load(),
		LoadLines:        b.LoadLines.Load(),
		LoadErrors:       b.LoadErrors.Load(),
		LoadAvgNanos:     avg(b.LoadTotalNanos.Load(), b.LoadCount.Load()),
		ReduceJoinCount:  b.ReduceJoinCount.Load(),
		ReduceJoinErrors: b.ReduceJoinErrors.Load(),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	CreateCount      int64
	CreateErrors     int64
	InsertCount      int64
	InsertItems      int64
	InsertErrors     int64
	FindCount        int64
	FindKeys         int64
	FindMisses       int64
	FindErrors       int64
	FindAvgNanos     int64
	LoadCount        int64
	LoadLines        int64
	LoadErrors       int64
	LoadAvgNanos     int64
	ReduceJoinCount  int64
	ReduceJoinErrors int64
}

// HitRate returns the fraction of looked-up keys that were found.
func (s BasicMetricsStats) HitRate() float64 {
	if s.FindKeys == 0 {
		return 0
	}
	return float64(s.FindKeys-s.FindMisses) / float64(s.FindKeys)
}
