package app

import (
	"encoding/json"
	"fmt"

	"github.com/awmpietro/tracecheck/internal/property"
	"github.com/awmpietro/tracecheck/internal/property/cache"
)

type Compiler interface {
	Compile(doc property.Document) (*property.Property, error)
}

type Checker interface {
	Check(p *property.Property, samples []property.Sample, opts property.CheckOptions) (*property.Report, error)
}

type DiagnosticChecker interface {
	CheckWithDiagnostics(p *property.Property, samples []property.Sample, opts property.CheckOptions) (*property.Report, *property.Diagnostics, error)
}

type Cache interface {
	GetOrCompute(key string, fn func() (*property.Property, error)) (*property.Property, error)
}

type CheckRequest struct {
	Property   property.Document
	Samples    []property.Sample
	StartIndex int
}

type Service struct {
	compiler Compiler
	checker  Checker
	cache    Cache
}

func NewService(compiler Compiler, checker Checker, cache Cache) *Service {
	return &Service{compiler: compiler, checker: checker, cache: cache}
}

// Check compiles the property (cached) and evaluates it against the samples.
// The caller's samples are not mutated.
func (s *Service) Check(req CheckRequest) (*property.Report, error) {
	p, samples, err := s.prepare(req)
	if err != nil {
		return nil, err
	}
	return s.checker.Check(p, samples, property.CheckOptions{StartIndex: req.StartIndex})
}

// CheckWithDiagnostics is Check plus diagnostics when the checker supports
// them; otherwise the diagnostics are nil.
func (s *Service) CheckWithDiagnostics(req CheckRequest) (*property.Report, *property.Diagnostics, error) {
	p, samples, err := s.prepare(req)
	if err != nil {
		return nil, nil, err
	}
	opts := property.CheckOptions{StartIndex: req.StartIndex}

	dc, ok := s.checker.(DiagnosticChecker)
	if !ok {
		report, err := s.checker.Check(p, samples, opts)
		return report, nil, err
	}
	return dc.CheckWithDiagnostics(p, samples, opts)
}

func (s *Service) prepare(req CheckRequest) (*property.Property, []property.Sample, error) {
	if req.Property.Formula == nil {
		return nil, nil, fmt.Errorf("property.formula is required")
	}

	raw, err := json.Marshal(req.Property)
	if err != nil {
		return nil, nil, fmt.Errorf("encode property: %w", err)
	}

	p, err := s.cache.GetOrCompute(cache.Key(raw), func() (*property.Property, error) {
		return s.compiler.Compile(req.Property)
	})
	if err != nil {
		return nil, nil, err
	}

	return p, cloneSamples(req.Samples), nil
}

func cloneSamples(in []property.Sample) []property.Sample {
	out := make([]property.Sample, len(in))
	for i, s := range in {
		st := make(property.State, len(s.State))
		for k, v := range s.State {
			st[k] = v
		}
		out[i] = property.Sample{AtMS: s.AtMS, State: st}
	}
	return out
}
