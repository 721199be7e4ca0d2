package app

import "github.com/awmpietro/tracecheck/internal/property"

type CheckService interface {
	Check(req CheckRequest) (*property.Report, error)
	CheckWithDiagnostics(req CheckRequest) (*property.Report, *property.Diagnostics, error)
}
