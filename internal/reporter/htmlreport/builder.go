// Package htmlreport renders the coverage map as static HTML: a summary page and one
// annotated source page per file.
package htmlreport

import (
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/IgorBayerl/ReportGenerator/go_v8_converter/internal/model"
	"github.com/IgorBayerl/ReportGenerator/go_v8_converter/internal/reporter"
)

// SourceReader loads the text of a covered file for its annotated page.
type SourceReader interface {
	ReadSource(filePath string) (resolved string, text string, err error)
}

// HtmlReportBuilder is responsible for generating HTML reports.
type HtmlReportBuilder struct {
	OutputDir string

	reader      SourceReader
	reportTitle string
	generatedAt string
}

// NewHtmlReportBuilder creates a new HtmlReportBuilder. reader may be nil, in which case the
// file pages show coverage figures only.
func NewHtmlReportBuilder(outputDir string, reader SourceReader) *HtmlReportBuilder {
	return &HtmlReportBuilder{
		OutputDir: outputDir,
		reader:    reader,
	}
}

// ReportType returns the type of report this builder creates.
func (b *HtmlReportBuilder) ReportType() string {
	return "Html"
}

// CreateReport writes index.html and one page per covered file.
func (b *HtmlReportBuilder) CreateReport(report *reporter.Report) error {
	if err := os.MkdirAll(b.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", b.OutputDir, err)
	}

	b.reportTitle = report.Title
	if b.reportTitle == "" {
		b.reportTitle = "Coverage Report"
	}
	b.generatedAt = ""
	if !report.GeneratedAt.IsZero() {
		b.generatedAt = report.GeneratedAt.Format("2006-01-02 15:04:05")
	}

	existingFilenames := make(map[string]struct{})
	// index.html is reserved for the summary.
	existingFilenames["index.html"] = struct{}{}

	summary := SummaryPageData{
		Title:       b.reportTitle,
		GeneratedAt: b.generatedAt,
		ReportFiles: report.ReportFiles,
		Totals:      fileRow("Total", "", report.Coverage.Summary()),
	}
	for _, p := range report.Coverage.Paths() {
		fc := report.Coverage[p]
		fileName := generateUniqueFilename(p, existingFilenames)
		if err := b.generateFileDetailHTML(fc, fileName); err != nil {
			return err
		}
		summary.Files = append(summary.Files, fileRow(p, fileName, fc.Summary()))
	}

	indexPath := filepath.Join(b.OutputDir, "index.html")
	if err := renderToFile(summaryTpl, indexPath, summary); err != nil {
		return err
	}
	slog.Info("HTML report written", "file", indexPath, "pages", len(summary.Files))
	return nil
}

func (b *HtmlReportBuilder) generateFileDetailHTML(fc *model.FileCoverage, fileName string) error {
	data := b.buildFileDetailData(fc)
	return renderToFile(fileDetailTpl, filepath.Join(b.OutputDir, fileName), data)
}

func (b *HtmlReportBuilder) buildFileDetailData(fc *model.FileCoverage) FileDetailData {
	data := FileDetailData{
		Title:       b.reportTitle,
		GeneratedAt: b.generatedAt,
		Summary:     fileRow(fc.Path, "", fc.Summary()),
	}

	for _, id := range model.SortedIDs(fc.FnMap) {
		fn := fc.FnMap[id]
		status := NotCovered
		if fc.F[id] > 0 {
			status = Covered
		}
		data.Functions = append(data.Functions, FunctionViewModel{
			Name:            fn.Name,
			Line:            fn.Loc.Start.Line,
			Hits:            fc.F[id],
			LineVisitStatus: lineVisitStatusToString(status),
		})
	}

	if b.reader == nil {
		return data
	}
	_, text, err := b.reader.ReadSource(fc.Path)
	if err != nil {
		slog.Warn("Source not available for HTML report", "file", fc.Path, "error", err)
		return data
	}

	data.SourceAvailable = true
	coverage := collectLineCoverage(fc)
	for i, content := range sourceLines(text) {
		number := i + 1
		lc, ok := coverage[number]
		if !ok {
			lc = &lineCoverage{hits: -1}
		}
		data.Lines = append(data.Lines, buildLineViewModel(number, content, lc))
	}
	return data
}

func buildLineViewModel(number int, content string, lc *lineCoverage) LineViewModel {
	isBranch := lc.totalBranches > 0
	status := determineLineVisitStatus(lc.hits, isBranch, lc.coveredBranches, lc.totalBranches)

	vm := LineViewModel{
		LineNumber:      number,
		LineContent:     content,
		Hits:            max(lc.hits, 0),
		LineVisitStatus: lineVisitStatusToString(status),
		IsBranch:        isBranch,
	}
	if isBranch {
		vm.BranchText = fmt.Sprintf("%d/%d", lc.coveredBranches, lc.totalBranches)
	}

	switch status {
	case Covered:
		vm.Tooltip = fmt.Sprintf("Covered (%d visits)", vm.Hits)
	case NotCovered:
		vm.Tooltip = "Not covered"
	case PartiallyCovered:
		vm.Tooltip = fmt.Sprintf("Partially covered (%d of %d branches)", lc.coveredBranches, lc.totalBranches)
	default:
		vm.Tooltip = "Not coverable"
	}
	return vm
}

// sourceLines splits text into display lines. A terminating newline does not start a line.
func sourceLines(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

func renderToFile(tpl *template.Template, target string, data any) error {
	f, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", target, err)
	}
	defer f.Close()

	if err := tpl.Execute(f, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", target, err)
	}
	return nil
}
