package property

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/awmpietro/tracecheck/internal/temporal"
)

const defaultMaxSamples = 100_000

type Engine struct {
	maxSamples      int
	latencyObserver CheckLatencyObserver
}

type EngineOption func(*Engine)

func WithCheckLatencyObserver(observer CheckLatencyObserver) EngineOption {
	return func(e *Engine) {
		e.latencyObserver = observer
	}
}

// WithMaxSamples caps the trace length accepted by Check.
func WithMaxSamples(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			e.maxSamples = n
		}
	}
}

func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{maxSamples: defaultMaxSamples}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type CheckOptions struct {
	StartIndex int
}

// Check builds a trace from samples and evaluates p on it. A property that
// does not hold is a Report with Holds=false; errors are reserved for
// requests that cannot be evaluated at all.
func (e *Engine) Check(p *Property, samples []Sample, opts CheckOptions) (*Report, error) {
	report, _, err := e.check(p, samples, opts)
	return report, err
}

// CheckWithDiagnostics is Check plus the DOT rendering of the formula and
// the variables no sample provides.
func (e *Engine) CheckWithDiagnostics(p *Property, samples []Sample, opts CheckOptions) (*Report, *Diagnostics, error) {
	report, elapsed, err := e.check(p, samples, opts)
	if err != nil {
		return nil, nil, err
	}

	dot, err := RenderDOT(p.Formula)
	if err != nil {
		return report, nil, err
	}
	return report, &Diagnostics{
		DOT:            dot,
		Depth:          temporal.Depth(p.Formula),
		Size:           temporal.Size(p.Formula),
		MissingVars:    missingVars(p.Vars, samples),
		DurationMicros: elapsed.Microseconds(),
	}, nil
}

func (e *Engine) check(p *Property, samples []Sample, opts CheckOptions) (*Report, time.Duration, error) {
	if p == nil || p.Formula == nil {
		return nil, 0, fmt.Errorf("property is nil")
	}
	if len(samples) > e.maxSamples {
		return nil, 0, fmt.Errorf("trace has %d samples, limit is %d", len(samples), e.maxSamples)
	}

	trace, err := BuildTrace(samples)
	if err != nil {
		return nil, 0, err
	}

	start := time.Now()
	res := temporal.Evaluate(trace, p.Formula, opts.StartIndex)
	elapsed := time.Since(start)

	report := &Report{
		CheckID:    uuid.NewString(),
		Property:   p.Name,
		Formula:    p.Formula.String(),
		Holds:      res.Holds,
		Reason:     res.Reason,
		Index:      res.Index,
		Samples:    trace.Len(),
		StartIndex: opts.StartIndex,
	}
	if res.Timestamp != nil {
		ts := res.Timestamp.Milliseconds()
		report.TimestampMS = &ts
	}

	zap.L().Debug("property checked",
		zap.String("check_id", report.CheckID),
		zap.String("property", p.Name),
		zap.Bool("holds", res.Holds),
		zap.String("reason", res.Reason),
	)
	if e.latencyObserver != nil {
		e.latencyObserver.ObserveCheck(CheckObservation{
			CheckID:  report.CheckID,
			Property: p.Name,
			Holds:    res.Holds,
			Samples:  trace.Len(),
			Duration: elapsed,
		})
	}

	return report, elapsed, nil
}

// BuildTrace converts samples into a trace. Samples must be ordered by at_ms.
func BuildTrace(samples []Sample) (*temporal.Trace[State], error) {
	events := make([]temporal.TraceEvent[State], len(samples))
	for i, s := range samples {
		at, err := msDuration(fmt.Sprintf("samples[%d].at_ms", i), s.AtMS)
		if err != nil {
			return nil, fmt.Errorf("invalid trace: %w", err)
		}
		events[i] = temporal.TraceEvent[State]{Timestamp: at, Value: s.State}
	}
	trace, err := temporal.NewTrace(events...)
	if err != nil {
		return nil, fmt.Errorf("invalid trace: %w", err)
	}
	return trace, nil
}

func missingVars(vars []string, samples []Sample) []string {
	var out []string
	for _, v := range vars {
		seen := false
		for _, s := range samples {
			if _, ok := s.State[v]; ok {
				seen = true
				break
			}
		}
		if !seen {
			out = append(out, v)
		}
	}
	return out
}
