package prom

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/lookup"
	"github.com/hupe1980/lookup/batch"
	"github.com/hupe1980/lookup/dtype"
)

func TestCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg, "lookup")
	require.NoError(t, err)

	c.RecordCreate(true, nil)
	c.RecordCreate(false, nil)
	c.RecordFind(10, 3, time.Millisecond, nil)
	c.RecordFind(5, 0, time.Millisecond, errors.New("boom"))
	c.RecordLoad(42, time.Second, nil)

	assert.InDelta(t, 1, testutil.ToFloat64(c.created), 0)
	assert.InDelta(t, 7, testutil.ToFloat64(c.keys.WithLabelValues("hit")), 0)
	assert.InDelta(t, 3, testutil.ToFloat64(c.keys.WithLabelValues("miss")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(c.operations.WithLabelValues("find", "error")), 0)
	assert.InDelta(t, 42, testutil.ToFloat64(c.lines), 0)

	expected := `
# HELP lookup_operations_total Total engine operations by kind and outcome.
# TYPE lookup_operations_total counter
lookup_operations_total{op="create",status="ok"} 2
lookup_operations_total{op="find",status="error"} 1
lookup_operations_total{op="find",status="ok"} 1
lookup_operations_total{op="load",status="ok"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "lookup_operations_total"))
}

func TestCollector_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewCollector(reg, "lookup")
	require.NoError(t, err)

	_, err = NewCollector(reg, "lookup")
	assert.Error(t, err)
}

func TestCollector_WithEngine(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg, "test")
	require.NoError(t, err)

	eng := lookup.New(lookup.WithMetricsCollector(c))
	h := lookup.NewHandle()
	require.NoError(t, eng.Create(h, "int64", "int64"))
	require.NoError(t, eng.Init(h, batch.MustOf([]int64{1}), batch.MustOf([]int64{2}), nil))

	out, _ := batch.New(dtype.Int64, 2)
	require.NoError(t, eng.Find(h, batch.MustOf([]int64{1, 5}), batch.Scalar(int64(0)), out))

	assert.InDelta(t, 1, testutil.ToFloat64(c.keys.WithLabelValues("hit")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(c.keys.WithLabelValues("miss")), 0)
	assert.Equal(t, 2, testutil.CollectAndCount(c.latency))
}
