package app

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/awmpietro/tracecheck/internal/property"
	"github.com/awmpietro/tracecheck/internal/property/cache"
)

const benchPropertyJSON = `{
  "name": "response-within-5s",
  "formula": {"op": "always", "args": [
    {"op": "implies", "args": [
      {"op": "event", "cond": "kind==\"request\""},
      {"op": "eventually", "within": {"from_ms": 0, "to_ms": 5000},
       "args": [{"op": "event", "cond": "kind==\"response\""}]}
    ]}
  ]}
}`

func benchmarkService() *Service {
	compiler := property.NewCompiler()
	engine := property.NewEngine()
	c := cache.NewInMemory(1024)
	return NewService(compiler, engine, c)
}

func benchmarkRequest(b *testing.B, n int) CheckRequest {
	var doc property.Document
	if err := json.Unmarshal([]byte(benchPropertyJSON), &doc); err != nil {
		b.Fatalf("decode property: %v", err)
	}
	samples := make([]property.Sample, n)
	for i := range samples {
		kind := "request"
		if i%2 == 1 {
			kind = "response"
		}
		samples[i] = property.Sample{AtMS: int64(i * 100), State: property.State{"kind": kind}}
	}
	return CheckRequest{Property: doc, Samples: samples}
}

func BenchmarkServiceCheckCached(b *testing.B) {
	for _, n := range []int{10, 100, 1000} {
		b.Run(fmt.Sprintf("samples=%d", n), func(b *testing.B) {
			svc := benchmarkService()
			req := benchmarkRequest(b, n)

			if _, err := svc.Check(req); err != nil {
				b.Fatalf("warmup check failed: %v", err)
			}

			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				if _, err := svc.Check(req); err != nil {
					b.Fatalf("check failed: %v", err)
				}
			}
		})
	}
}

func BenchmarkServiceCheckCachedParallel(b *testing.B) {
	svc := benchmarkService()
	req := benchmarkRequest(b, 100)

	if _, err := svc.Check(req); err != nil {
		b.Fatalf("warmup check failed: %v", err)
	}

	b.ReportAllocs()
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if _, err := svc.Check(req); err != nil {
				b.Errorf("check failed: %v", err)
				return
			}
		}
	})
}
