package property

import (
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// CheckObservation describes one finished check.
type CheckObservation struct {
	CheckID  string
	Property string
	Holds    bool
	Samples  int
	Duration time.Duration
}

type CheckLatencyObserver interface {
	ObserveCheck(obs CheckObservation)
}

type CheckLatencyLogger struct {
	logger *zap.Logger
}

func NewCheckLatencyLogger(logger *zap.Logger) *CheckLatencyLogger {
	return &CheckLatencyLogger{logger: logger}
}

func (l *CheckLatencyLogger) ObserveCheck(obs CheckObservation) {
	if l == nil || l.logger == nil {
		return
	}
	l.logger.Info("property_check_latency",
		zap.String("check_id", obs.CheckID),
		zap.String("property", obs.Property),
		zap.Bool("holds", obs.Holds),
		zap.Int("samples", obs.Samples),
		zap.Float64("duration_ms", float64(obs.Duration.Microseconds())/1000.0),
	)
}

// AsyncCheckLatencyObserver hands observations to next on a background
// goroutine. When the buffer is full, or after Close, observations are
// dropped and counted.
type AsyncCheckLatencyObserver struct {
	next    CheckLatencyObserver
	events  chan CheckObservation
	once    sync.Once
	mu      sync.RWMutex
	closed  bool
	wg      sync.WaitGroup
	dropped atomic.Uint64
}

func NewAsyncCheckLatencyObserver(next CheckLatencyObserver, buffer int) *AsyncCheckLatencyObserver {
	if buffer <= 0 {
		buffer = 1
	}

	o := &AsyncCheckLatencyObserver{
		next:   next,
		events: make(chan CheckObservation, buffer),
	}

	o.wg.Add(1)
	go o.drain()

	return o
}

func (o *AsyncCheckLatencyObserver) drain() {
	defer o.wg.Done()
	for obs := range o.events {
		if o.next != nil {
			o.next.ObserveCheck(obs)
		}
	}
}

func (o *AsyncCheckLatencyObserver) ObserveCheck(obs CheckObservation) {
	if o == nil {
		return
	}
	o.mu.RLock()
	defer o.mu.RUnlock()
	if o.closed {
		o.dropped.Add(1)
		return
	}
	select {
	case o.events <- obs:
	default:
		o.dropped.Add(1)
	}
}

func (o *AsyncCheckLatencyObserver) Dropped() uint64 {
	if o == nil {
		return 0
	}
	return o.dropped.Load()
}

// Close stops accepting observations and waits until the buffered ones have
// been delivered.
func (o *AsyncCheckLatencyObserver) Close() {
	if o == nil {
		return
	}
	o.once.Do(func() {
		o.mu.Lock()
		o.closed = true
		close(o.events)
		o.mu.Unlock()
		o.wg.Wait()
	})
}
