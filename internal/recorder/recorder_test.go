package recorder

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awmpietro/tracecheck/internal/temporal"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestRecorder_StampsRelativeToStart(t *testing.T) {
	clk := newFakeClock()
	r := New[string](clk.Now)

	r.Record("idle")
	clk.Advance(40 * time.Millisecond)
	r.Record("request")
	clk.Advance(60 * time.Millisecond)
	r.Record("response")

	tr := r.Snapshot()
	require.Equal(t, 3, tr.Len())
	assert.Equal(t, time.Duration(0), tr.At(0).Timestamp)
	assert.Equal(t, 40*time.Millisecond, tr.At(1).Timestamp)
	assert.Equal(t, 100*time.Millisecond, tr.At(2).Timestamp)
	assert.Equal(t, "response", tr.At(2).Value)
}

func TestRecorder_ClampsBackwardClock(t *testing.T) {
	clk := newFakeClock()
	r := New[int](clk.Now)

	clk.Advance(10 * time.Millisecond)
	r.Record(1)
	clk.Advance(-5 * time.Millisecond)
	at := r.Record(2)

	assert.Equal(t, 10*time.Millisecond, at)
	tr := r.Snapshot()
	assert.Equal(t, tr.At(0).Timestamp, tr.At(1).Timestamp)
}

func TestRecorder_SnapshotIsIndependent(t *testing.T) {
	clk := newFakeClock()
	r := New[int](clk.Now)
	r.Record(1)

	snap := r.Snapshot()
	r.Record(2)

	assert.Equal(t, 1, snap.Len())
	assert.Equal(t, 2, r.Len())
}

func TestRecorder_Reset(t *testing.T) {
	clk := newFakeClock()
	r := New[int](clk.Now)
	clk.Advance(time.Second)
	r.Record(1)

	r.Reset()
	clk.Advance(5 * time.Millisecond)
	r.Record(2)

	tr := r.Snapshot()
	require.Equal(t, 1, tr.Len())
	assert.Equal(t, 5*time.Millisecond, tr.At(0).Timestamp)
}

func TestRecorder_SnapshotFeedsEvaluator(t *testing.T) {
	clk := newFakeClock()
	r := New[string](clk.Now)

	r.Record("request")
	clk.Advance(80 * time.Millisecond)
	r.Record("response")

	isRequest := temporal.Event("request", func(s string) bool { return s == "request" })
	isResponse := temporal.Event("response", func(s string) bool { return s == "response" })
	f := temporal.Always(temporal.Implies(isRequest, temporal.EventuallyWithin(isResponse, temporal.UpTo(100*time.Millisecond))))

	res := temporal.Evaluate(r.Snapshot(), f, 0)
	assert.True(t, res.Holds, res.Reason)
}

func TestRecorder_ConcurrentRecords(t *testing.T) {
	r := New[int](nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r.Record(i*100 + j)
			}
		}(i)
	}
	wg.Wait()

	tr := r.Snapshot()
	require.Equal(t, 800, tr.Len())
	for i := 1; i < tr.Len(); i++ {
		assert.LessOrEqual(t, tr.At(i-1).Timestamp, tr.At(i).Timestamp)
	}
}
