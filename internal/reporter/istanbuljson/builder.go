// Package istanbuljson writes the coverage map as Istanbul's coverage-final.json.
package istanbuljson

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/IgorBayerl/ReportGenerator/go_v8_converter/internal/model"
	"github.com/IgorBayerl/ReportGenerator/go_v8_converter/internal/reporter"
)

// FileName is the name of the written file, as produced by nyc and c8.
const FileName = "coverage-final.json"

// IstanbulReportBuilder writes coverage-final.json.
type IstanbulReportBuilder struct {
	OutputDir string
}

// NewIstanbulReportBuilder creates a builder writing into outputDir.
func NewIstanbulReportBuilder(outputDir string) *IstanbulReportBuilder {
	return &IstanbulReportBuilder{OutputDir: outputDir}
}

// ReportType returns the type of report this builder creates.
func (b *IstanbulReportBuilder) ReportType() string {
	return "Istanbul"
}

// CreateReport writes the coverage map. Keys are sorted by encoding/json, so the output only
// depends on the coverage data.
func (b *IstanbulReportBuilder) CreateReport(report *reporter.Report) error {
	if err := os.MkdirAll(b.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", b.OutputDir, err)
	}

	data, err := Marshal(report)
	if err != nil {
		return err
	}

	target := filepath.Join(b.OutputDir, FileName)
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", target, err)
	}
	slog.Info("Istanbul report written", "file", target, "files", len(report.Coverage))
	return nil
}

// Marshal encodes the coverage map of report. An empty map encodes as {}.
func Marshal(report *reporter.Report) ([]byte, error) {
	coverage := report.Coverage
	if coverage == nil {
		coverage = model.CoverageMap{}
	}
	data, err := json.MarshalIndent(coverage, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode coverage map: %w", err)
	}
	return append(data, '\n'), nil
}
