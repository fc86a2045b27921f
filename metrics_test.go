package lookup

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBasicMetricsCollector(t *testing.T) {
	mc := &BasicMetricsCollector{}
	boom := errors.New("boom")

	mc.RecordCreate(true, nil)
	mc.RecordCreate(false, boom)
	mc.RecordInsert(10, time.Millisecond, nil)
	mc.RecordFind(8, 2, 2*time.Microsecond, nil)
	mc.RecordFind(4, 0, 4*time.Microsecond, boom)
	mc.RecordLoad(100, time.Second, nil)
	mc.RecordReduceJoin(3, time.Microsecond, boom)

	stats := mc.GetStats()
	assert.Equal(t, int64(2), stats.CreateCount)
	assert.Equal(t, int64(1), stats.CreateErrors)
	assert.Equal(t, int64(10), stats.InsertItems)
	assert.Equal(t, int64(2), stats.FindCount)
	assert.Equal(t, int64(8), stats.FindKeys, "failed finds do not count keys")
	assert.Equal(t, int64(1), stats.FindErrors)
	assert.Equal(t, int64(3000), stats.FindAvgNanos)
	assert.Equal(t, int64(100), stats.LoadLines)
	assert.Equal(t, time.Second.Nanoseconds(), stats.LoadAvgNanos)
	assert.Equal(t, int64(1), stats.ReduceJoinErrors)
	assert.InDelta(t, 0.75, stats.HitRate(), 1e-9)
}

func TestBasicMetricsStats_Empty(t *testing.T) {
	stats := (&BasicMetricsCollector{}).GetStats()
	assert.Zero(t, stats.FindAvgNanos)
	assert.Zero(t, stats.HitRate())
}

func TestNoopMetricsCollector(t *testing.T) {
	var mc MetricsCollector = NoopMetricsCollector{}
	assert.NotPanics(t, func() {
		mc.RecordCreate(true, nil)
		mc.RecordInsert(1, 0, nil)
		mc.RecordFind(1, 1, 0, nil)
		mc.RecordLoad(1, 0, nil)
		mc.RecordReduceJoin(1, 0, nil)
	})
}
