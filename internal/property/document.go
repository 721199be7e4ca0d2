package property

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ParseDocument reads a property document written in YAML or JSON. Unknown
// fields are rejected so that a misspelled key does not silently drop a
// window or an argument.
func ParseDocument(raw []byte) (Document, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("parse property document: %w", err)
	}
	if doc.Formula == nil {
		return Document{}, fmt.Errorf("parse property document: formula is required")
	}
	return doc, nil
}

// ParseSamples reads a recorded trace written in YAML or JSON as a list of
// samples.
func ParseSamples(raw []byte) ([]Sample, error) {
	var samples []Sample
	if err := yaml.Unmarshal(raw, &samples); err != nil {
		return nil, fmt.Errorf("parse samples: %w", err)
	}
	return samples, nil
}
