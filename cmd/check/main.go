// Command check evaluates a property document against a recorded trace file
// and prints the report as JSON. It exits 1 when the property does not hold.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/awmpietro/tracecheck/internal/logging"
	"github.com/awmpietro/tracecheck/internal/property"
	"github.com/awmpietro/tracecheck/internal/transport/checkdto"
)

func main() {
	propertyPath := flag.String("property", "", "property document (YAML or JSON)")
	tracePath := flag.String("trace", "", "recorded samples (YAML or JSON list)")
	start := flag.Int("start", 0, "index to evaluate from")
	debug := flag.Bool("debug", false, "include diagnostics (DOT rendering, missing vars)")
	verbose := flag.Bool("v", false, "log at debug level")
	flag.Parse()

	level := "warn"
	if *verbose {
		level = "debug"
	}
	logger, err := logging.Init(false, level)
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logger.Sync()

	if *propertyPath == "" || *tracePath == "" {
		fmt.Fprintln(os.Stderr, "usage: check -property <file> -trace <file> [-start n] [-debug]")
		os.Exit(2)
	}

	doc, samples, err := load(*propertyPath, *tracePath)
	if err != nil {
		zap.L().Fatal("load input", zap.Error(err))
	}

	p, err := property.NewCompiler().Compile(doc)
	if err != nil {
		zap.L().Fatal("compile property", zap.String("file", *propertyPath), zap.Error(err))
	}

	engine := property.NewEngine()
	opts := property.CheckOptions{StartIndex: *start}
	var out checkdto.CheckResponse
	if *debug {
		out.Report, out.Diagnostics, err = engine.CheckWithDiagnostics(p, samples, opts)
	} else {
		out.Report, err = engine.Check(p, samples, opts)
	}
	if err != nil {
		zap.L().Fatal("check", zap.Error(err))
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		zap.L().Fatal("write report", zap.Error(err))
	}
	if !out.Report.Holds {
		os.Exit(1)
	}
}

func load(propertyPath, tracePath string) (property.Document, []property.Sample, error) {
	rawDoc, err := os.ReadFile(propertyPath)
	if err != nil {
		return property.Document{}, nil, err
	}
	doc, err := property.ParseDocument(rawDoc)
	if err != nil {
		return property.Document{}, nil, err
	}

	rawTrace, err := os.ReadFile(tracePath)
	if err != nil {
		return property.Document{}, nil, err
	}
	samples, err := property.ParseSamples(rawTrace)
	if err != nil {
		return property.Document{}, nil, err
	}
	return doc, samples, nil
}
