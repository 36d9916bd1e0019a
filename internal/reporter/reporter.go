// Package reporter defines the contract shared by the report writers.
package reporter

import (
	"time"

	"github.com/IgorBayerl/ReportGenerator/go_v8_converter/internal/model"
)

// Report is the input of every report builder.
type Report struct {
	Title       string
	GeneratedAt time.Time
	Coverage    model.CoverageMap
	// ReportFiles are the V8 coverage files the report was built from.
	ReportFiles []string
}

// IReportBuilder writes one kind of report into its output directory.
type IReportBuilder interface {
	ReportType() string
	CreateReport(report *Report) error
}
