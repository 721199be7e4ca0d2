package property

// Report is the outcome of checking one property against one trace.
type Report struct {
	CheckID     string `json:"check_id"`
	Property    string `json:"property,omitempty"`
	Formula     string `json:"formula"`
	Holds       bool   `json:"holds"`
	Reason      string `json:"reason,omitempty"`
	Index       *int   `json:"index,omitempty"`
	TimestampMS *int64 `json:"timestamp_ms,omitempty"`
	Samples     int    `json:"samples"`
	StartIndex  int    `json:"start_index"`
}

// Diagnostics is the debug view of a check.
type Diagnostics struct {
	DOT   string `json:"dot"`
	Depth int    `json:"depth"`
	Size  int    `json:"size"`
	// MissingVars are variables the property reads that no sample carries.
	MissingVars    []string `json:"missing_vars,omitempty"`
	DurationMicros int64    `json:"duration_micros"`
}
