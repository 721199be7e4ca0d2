package property

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type spyCheckObserver struct {
	mu      sync.Mutex
	records []CheckObservation
}

func (s *spyCheckObserver) ObserveCheck(obs CheckObservation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, obs)
}

func (s *spyCheckObserver) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

func TestAsyncCheckLatencyObserver_DeliversEventsOnClose(t *testing.T) {
	spy := &spyCheckObserver{}
	async := NewAsyncCheckLatencyObserver(spy, 8)

	async.ObserveCheck(CheckObservation{Property: "a", Duration: time.Millisecond})
	async.ObserveCheck(CheckObservation{Property: "b", Duration: 2 * time.Millisecond})
	async.Close()

	assert.Equal(t, 2, spy.Count())
}

func TestAsyncCheckLatencyObserver_DropsWhenBufferIsFull(t *testing.T) {
	spy := &spyCheckObserver{}
	async := NewAsyncCheckLatencyObserver(spy, 1)

	for i := 0; i < 1000; i++ {
		async.ObserveCheck(CheckObservation{Duration: time.Microsecond})
	}
	async.Close()

	assert.NotZero(t, async.Dropped())
}

func TestAsyncCheckLatencyObserver_ObserveAfterCloseIsDropped(t *testing.T) {
	spy := &spyCheckObserver{}
	async := NewAsyncCheckLatencyObserver(spy, 4)
	async.Close()
	async.Close()

	async.ObserveCheck(CheckObservation{})

	assert.Equal(t, uint64(1), async.Dropped())
	assert.Equal(t, 0, spy.Count())
}

func TestAsyncCheckLatencyObserver_CloseDuringConcurrentObserveDoesNotPanic(t *testing.T) {
	spy := &spyCheckObserver{}
	async := NewAsyncCheckLatencyObserver(spy, 32)

	const workers = 8
	const perWorker = 200
	var wg sync.WaitGroup
	var panics atomic.Int32

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				if recover() != nil {
					panics.Add(1)
				}
			}()
			for j := 0; j < perWorker; j++ {
				async.ObserveCheck(CheckObservation{Duration: time.Microsecond})
			}
		}()
	}

	time.Sleep(time.Millisecond)
	async.Close()
	wg.Wait()

	assert.Zero(t, panics.Load())
}

func TestCheckLatencyLogger_WritesStructuredEntry(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	l := NewCheckLatencyLogger(zap.New(core))

	l.ObserveCheck(CheckObservation{CheckID: "id-1", Property: "no-errors", Holds: true, Samples: 3, Duration: 1500 * time.Microsecond})

	entries := logs.FilterMessage("property_check_latency").All()
	if assert.Len(t, entries, 1) {
		fields := entries[0].ContextMap()
		assert.Equal(t, "no-errors", fields["property"])
		assert.Equal(t, true, fields["holds"])
		assert.Equal(t, int64(3), fields["samples"])
		assert.Equal(t, 1.5, fields["duration_ms"])
	}
}
