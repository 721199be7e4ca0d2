package checkdto

import (
	"github.com/awmpietro/tracecheck/internal/app"
	"github.com/awmpietro/tracecheck/internal/property"
)

type CheckRequest struct {
	Property   property.Document `json:"property"`
	Samples    []property.Sample `json:"samples"`
	StartIndex int               `json:"start_index,omitempty"`
	Debug      bool              `json:"debug,omitempty"`
}

func (r CheckRequest) ToApp() app.CheckRequest {
	return app.CheckRequest{
		Property:   r.Property,
		Samples:    r.Samples,
		StartIndex: r.StartIndex,
	}
}

type CheckResponse struct {
	Report      *property.Report      `json:"report"`
	Diagnostics *property.Diagnostics `json:"diagnostics,omitempty"`
}

func ErrorBody(err error) map[string]any {
	return map[string]any{
		"error":   "check failed",
		"details": err.Error(),
	}
}
