// Package textsummary writes a plain text coverage summary and prints it to the console.
package textsummary

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/IgorBayerl/ReportGenerator/go_v8_converter/internal/model"
	"github.com/IgorBayerl/ReportGenerator/go_v8_converter/internal/reporter"
)

// FileName is the name of the summary written to the output directory.
const FileName = "Summary.txt"

// Coverage thresholds of the console colors.
const (
	highWatermark   = 80.0
	mediumWatermark = 50.0
)

// styles holds the color formatters of the console table.
type styles struct {
	heading *color.Color
	high    *color.Color
	medium  *color.Color
	low     *color.Color
	plain   *color.Color
}

// newStyles creates the formatters. enabled forces colors on or off regardless of the
// terminal, so the output of a run does not depend on where it was started from.
func newStyles(enabled bool) *styles {
	s := &styles{
		heading: color.New(color.Bold),
		high:    color.New(color.FgGreen),
		medium:  color.New(color.FgYellow),
		low:     color.New(color.FgRed),
		plain:   color.New(),
	}
	s.plain.DisableColor()
	for _, c := range []*color.Color{s.heading, s.high, s.medium, s.low} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return s
}

// TextSummaryBuilder writes Summary.txt and, when Console is set, prints the same table to it.
type TextSummaryBuilder struct {
	OutputDir string
	Console   io.Writer
	UseColor  bool
}

// NewTextSummaryBuilder creates a builder. console may be nil.
func NewTextSummaryBuilder(outputDir string, console io.Writer, useColor bool) *TextSummaryBuilder {
	return &TextSummaryBuilder{OutputDir: outputDir, Console: console, UseColor: useColor}
}

// ReportType returns the type of report this builder creates.
func (b *TextSummaryBuilder) ReportType() string {
	return "TextSummary"
}

// CreateReport writes the summary file. The file never contains color codes.
func (b *TextSummaryBuilder) CreateReport(report *reporter.Report) error {
	if err := os.MkdirAll(b.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", b.OutputDir, err)
	}

	var sb strings.Builder
	write(&sb, report, newStyles(false))

	target := filepath.Join(b.OutputDir, FileName)
	if err := os.WriteFile(target, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", target, err)
	}
	slog.Info("Text summary written", "file", target)

	if b.Console != nil {
		write(b.Console, report, newStyles(b.UseColor))
	}
	return nil
}

// write renders the summary of report: the totals followed by one row per file, sorted by
// path.
func write(w io.Writer, report *reporter.Report, s *styles) {
	total := report.Coverage.Summary()

	s.heading.Fprintln(w, "Summary")
	if report.Title != "" {
		fmt.Fprintf(w, "  Title:        %s\n", report.Title)
	}
	if !report.GeneratedAt.IsZero() {
		fmt.Fprintf(w, "  Generated on: %s\n", report.GeneratedAt.Format("2006-01-02 15:04:05"))
	}
	if len(report.ReportFiles) > 0 {
		fmt.Fprintf(w, "  Reports:      %s\n", strings.Join(report.ReportFiles, ", "))
	}
	fmt.Fprintf(w, "  Files:        %d\n", len(report.Coverage))
	writeTotal(w, s, "Statements", total.Statements)
	writeTotal(w, s, "Branches", total.Branches)
	writeTotal(w, s, "Functions", total.Functions)
	writeTotal(w, s, "Lines", total.Lines)

	paths := report.Coverage.Paths()
	if len(paths) == 0 {
		return
	}

	width := len("File")
	for _, p := range paths {
		width = max(width, len(p))
	}

	fmt.Fprintln(w)
	s.heading.Fprintf(w, "%-*s %8s %8s %8s %8s\n", width, "File", "Stmts", "Branch", "Funcs", "Lines")
	for _, p := range paths {
		summary := report.Coverage[p].Summary()
		fmt.Fprintf(w, "%-*s", width, p)
		for _, c := range []model.Counter{summary.Statements, summary.Branches, summary.Functions, summary.Lines} {
			fmt.Fprint(w, " ")
			s.forPercent(c.Percent()).Fprintf(w, "%8s", FormatPercent(c.Percent()))
		}
		fmt.Fprintln(w)
	}
}

func writeTotal(w io.Writer, s *styles, name string, c model.Counter) {
	fmt.Fprintf(w, "  %-13s ", name+":")
	s.forPercent(c.Percent()).Fprint(w, FormatPercent(c.Percent()))
	fmt.Fprintf(w, " (%d of %d)\n", c.Covered, c.Total)
}

// forPercent picks the color of a coverage percentage. Nothing to cover is printed plain.
func (s *styles) forPercent(p float64) *color.Color {
	switch {
	case math.IsNaN(p):
		return s.plain
	case p >= highWatermark:
		return s.high
	case p >= mediumWatermark:
		return s.medium
	default:
		return s.low
	}
}

// FormatPercent formats a percentage with one decimal, or "n/a" when nothing is coverable.
func FormatPercent(p float64) string {
	if math.IsNaN(p) {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", p)
}
