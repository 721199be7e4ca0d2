package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"slices"
	"sync"
	"time"

	"github.com/awmpietro/tracecheck/internal/property"
	"github.com/awmpietro/tracecheck/internal/transport/checkdto"
)

type sample struct {
	latency time.Duration
	status  int
	err     error
}

type summary struct {
	requests    int
	ok          int
	rejected    int
	errs        int
	achievedRPS float64
	avg         time.Duration
	p50         time.Duration
	p90         time.Duration
	p99         time.Duration
}

func main() {
	url := flag.String("url", "http://localhost:8080/check", "check endpoint URL")
	rps := flag.Int("rps", 50, "target requests per second")
	duration := flag.Duration("duration", 60*time.Second, "test duration")
	workers := flag.Int("workers", 50, "number of concurrent workers")
	timeout := flag.Duration("timeout", 5*time.Second, "HTTP client timeout")
	traceLen := flag.Int("trace-len", 500, "samples per checked trace")
	p90Target := flag.Duration("p90", 30*time.Millisecond, "P90 latency target")
	propertyFile := flag.String("property", "", "property document to check instead of the built-in one (YAML or JSON)")
	flag.Parse()

	if *rps <= 0 || *duration <= 0 || *workers <= 0 || *traceLen <= 0 {
		fmt.Fprintln(os.Stderr, "rps, duration, workers and trace-len must be > 0")
		os.Exit(2)
	}

	payload := requestResponsePayload(*traceLen)
	if *propertyFile != "" {
		raw, err := os.ReadFile(*propertyFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "read property: %v\n", err)
			os.Exit(1)
		}
		if payload.Property, err = property.ParseDocument(raw); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		fmt.Fprintf(os.Stderr, "marshal payload: %v\n", err)
		os.Exit(1)
	}

	client := &http.Client{Timeout: *timeout}
	results := run(client, *url, body, *rps, *workers, *duration)
	if len(results) == 0 {
		fmt.Fprintln(os.Stderr, "no requests executed")
		os.Exit(1)
	}

	s := summarize(results, *duration)
	fmt.Printf("Load test finished\n")
	fmt.Printf("- target_rps: %d\n", *rps)
	fmt.Printf("- achieved_rps: %.2f\n", s.achievedRPS)
	fmt.Printf("- duration: %s\n", duration.String())
	fmt.Printf("- trace_len: %d\n", *traceLen)
	fmt.Printf("- requests: %d\n", s.requests)
	fmt.Printf("- 2xx: %d\n", s.ok)
	fmt.Printf("- non_2xx: %d\n", s.rejected)
	fmt.Printf("- errors: %d\n", s.errs)
	fmt.Printf("- avg_ms: %.3f\n", ms(s.avg))
	fmt.Printf("- p50_ms: %.3f\n", ms(s.p50))
	fmt.Printf("- p90_ms: %.3f\n", ms(s.p90))
	fmt.Printf("- p99_ms: %.3f\n", ms(s.p99))

	if s.achievedRPS >= float64(*rps)*0.98 && s.p90 < *p90Target && s.errs == 0 && s.rejected == 0 {
		fmt.Printf("PASS: meets %d RPS and P90 < %s\n", *rps, *p90Target)
		return
	}
	fmt.Println("FAIL: does not meet target (or has request errors)")
	os.Exit(1)
}

// requestResponsePayload builds a trace where every request is answered
// 40ms later, checked against a 100ms response deadline.
func requestResponsePayload(n int) checkdto.CheckRequest {
	samples := make([]property.Sample, n)
	for i := range samples {
		state := property.State{"request": i%2 == 0, "response": i%2 == 1}
		samples[i] = property.Sample{AtMS: int64(i) * 40, State: state}
	}
	upper := int64(100)
	return checkdto.CheckRequest{
		Property: property.Document{
			Name: "response_within_100ms",
			Formula: &property.Node{Op: "always", Args: []property.Node{{
				Op: "implies",
				Args: []property.Node{
					{Op: "event", Cond: "request"},
					{Op: "eventually", Within: &property.Window{FromMS: 0, ToMS: &upper}, Args: []property.Node{
						{Op: "event", Cond: "response"},
					}},
				},
			}}},
		},
		Samples: samples,
	}
}

func run(client *http.Client, url string, body []byte, rps, workers int, duration time.Duration) []sample {
	jobs := make(chan struct{}, workers)
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		results = make([]sample, 0, rps*int(duration.Seconds())+1)
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range jobs {
				s := post(client, url, body)
				mu.Lock()
				results = append(results, s)
				mu.Unlock()
			}
		}()
	}

	ticker := time.NewTicker(time.Second / time.Duration(rps))
	defer ticker.Stop()
	deadline := time.Now().Add(duration)
	for now := range ticker.C {
		if now.After(deadline) {
			break
		}
		jobs <- struct{}{}
	}
	close(jobs)
	wg.Wait()
	return results
}

func post(client *http.Client, url string, body []byte) sample {
	start := time.Now()
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return sample{latency: time.Since(start), err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	lat := time.Since(start)
	if err != nil {
		return sample{latency: lat, err: err}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
	return sample{latency: lat, status: resp.StatusCode}
}

func summarize(results []sample, duration time.Duration) summary {
	s := summary{requests: len(results)}
	latencies := make([]time.Duration, 0, len(results))
	var total time.Duration
	for _, r := range results {
		latencies = append(latencies, r.latency)
		total += r.latency
		switch {
		case r.err != nil:
			s.errs++
		case r.status >= 200 && r.status < 300:
			s.ok++
		default:
			s.rejected++
		}
	}
	slices.Sort(latencies)
	s.avg = total / time.Duration(len(latencies))
	s.p50 = percentile(latencies, 50)
	s.p90 = percentile(latencies, 90)
	s.p99 = percentile(latencies, 99)
	s.achievedRPS = float64(len(latencies)) / duration.Seconds()
	return s
}

func percentile(sorted []time.Duration, p int) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	return sorted[(len(sorted)-1)*p/100]
}

func ms(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000.0
}
