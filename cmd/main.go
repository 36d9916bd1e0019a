package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/IgorBayerl/ReportGenerator/go_v8_converter/internal/analyzer"
	"github.com/IgorBayerl/ReportGenerator/go_v8_converter/internal/filereader"
	"github.com/IgorBayerl/ReportGenerator/go_v8_converter/internal/filesystem"
	"github.com/IgorBayerl/ReportGenerator/go_v8_converter/internal/logging"
	"github.com/IgorBayerl/ReportGenerator/go_v8_converter/internal/model"
	"github.com/IgorBayerl/ReportGenerator/go_v8_converter/internal/parser"
	"github.com/IgorBayerl/ReportGenerator/go_v8_converter/internal/reportconfig"
	"github.com/IgorBayerl/ReportGenerator/go_v8_converter/internal/reporter"
	"github.com/IgorBayerl/ReportGenerator/go_v8_converter/internal/reporter/htmlreport"
	"github.com/IgorBayerl/ReportGenerator/go_v8_converter/internal/reporter/istanbuljson"
	"github.com/IgorBayerl/ReportGenerator/go_v8_converter/internal/reporter/textsummary"
	"github.com/IgorBayerl/ReportGenerator/go_v8_converter/internal/utils"

	// Language processors and report parsers register themselves.
	_ "github.com/IgorBayerl/ReportGenerator/go_v8_converter/internal/language/default"
	_ "github.com/IgorBayerl/ReportGenerator/go_v8_converter/internal/language/javascript"
	_ "github.com/IgorBayerl/ReportGenerator/go_v8_converter/internal/parser/v8json"
)

// options holds the raw command line values.
type options struct {
	configFile    string
	reports       string
	output        string
	reportTypes   string
	sourceDirs    string
	fileFilters   string
	strategy      string
	workers       int
	wrapperLength int
	strict        bool
	verbosity     string
	title         string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "v8coverage",
		Short: "Convert V8 precise coverage into Istanbul coverage reports",
		Long: `v8coverage reads the JSON coverage dumps written by Node.js (NODE_V8_COVERAGE) or
returned by the DevTools profiler and converts them into Istanbul's coverage-final.json,
a text summary and an HTML report.

Scripts are mapped to line coverage by default; --strategy ast correlates the coverage
with the syntax tree of each file to report statements, functions and branches.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configFile, "config", "", "YAML configuration file; flags override its values")
	flags.StringVar(&opts.reports, "report", "", `Coverage files or glob patterns (semicolon-separated, e.g. "./coverage/*.json;./more.json")`)
	flags.StringVar(&opts.output, "output", "coverage-report", "Output directory for reports")
	flags.StringVar(&opts.reportTypes, "reporttypes", "Istanbul;TextSummary", "Report types to generate (separated by ; or ,): "+strings.Join(reportconfig.SupportedReportTypes, ", "))
	flags.StringVar(&opts.sourceDirs, "sourcedirs", "", "Directories searched for scripts whose recorded path does not exist (separated by ; or ,)")
	flags.StringVar(&opts.fileFilters, "filefilters", "", `Script path filters (semicolon-separated, e.g. "+*/src/*;-*node_modules*")`)
	flags.StringVar(&opts.strategy, "strategy", reportconfig.StrategyLines, "Conversion strategy: lines or ast")
	flags.IntVar(&opts.workers, "workers", 0, "Number of files converted concurrently (0: number of CPUs)")
	flags.IntVar(&opts.wrapperLength, "wrapper-length", -1, "Length of the CommonJS module wrapper prologue in UTF-16 code units (-1: Node.js default)")
	flags.BoolVar(&opts.strict, "strict", false, "Fail on the first script that cannot be converted")
	flags.StringVar(&opts.verbosity, "verbosity", "Info", "Logging verbosity level (Verbose, Info, Warning, Error, Off)")
	flags.StringVar(&opts.title, "title", "", "Report title (default: 'Coverage Report')")

	return cmd
}

// loadConfig merges the configuration file, if any, with the flags that were set explicitly.
func loadConfig(cmd *cobra.Command, opts *options) (*reportconfig.FileConfig, error) {
	cfg := reportconfig.Default()
	if opts.configFile != "" {
		loaded, err := reportconfig.Load(opts.configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	listSeparators := []rune{';', ','}
	if flags.Changed("report") {
		cfg.Reports = utils.SplitThatEnsuresGlobsAreSafe(opts.reports, []rune{';'})
	}
	if flags.Changed("output") {
		cfg.Output = opts.output
	}
	if flags.Changed("reporttypes") {
		cfg.ReportTypes = utils.SplitThatEnsuresGlobsAreSafe(opts.reportTypes, listSeparators)
	}
	if flags.Changed("sourcedirs") {
		cfg.SourceDirs = utils.SplitThatEnsuresGlobsAreSafe(opts.sourceDirs, listSeparators)
	}
	if flags.Changed("filefilters") {
		cfg.FileFilters = utils.SplitThatEnsuresGlobsAreSafe(opts.fileFilters, []rune{';'})
	}
	if flags.Changed("strategy") {
		cfg.Strategy = opts.strategy
	}
	if flags.Changed("workers") {
		cfg.Workers = opts.workers
		if cfg.Workers == 0 {
			cfg.Workers = runtime.NumCPU()
		}
	}
	if flags.Changed("wrapper-length") {
		length := opts.wrapperLength
		cfg.WrapperPrologueLength = &length
	}
	if flags.Changed("strict") {
		cfg.Strict = opts.strict
	}
	if flags.Changed("verbosity") {
		cfg.Verbosity = opts.verbosity
	}
	if flags.Changed("title") {
		cfg.Title = opts.title
	}
	return cfg, nil
}

func run(cmd *cobra.Command, opts *options) error {
	start := time.Now()

	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	reportConfig, err := reportconfig.Build(cfg)
	if err != nil {
		return err
	}
	slog.SetDefault(logging.NewLogger(reportConfig.VerbosityLevel(), cmd.ErrOrStderr()))

	for _, pattern := range reportConfig.InvalidReportFilePatterns() {
		slog.Warn("No files found for report pattern", "pattern", pattern)
	}

	scripts, err := parseReports(reportConfig)
	if err != nil {
		return err
	}

	reader := filereader.NewSourceReader(filesystem.DefaultFS{}, reportConfig.SourceDirectories())
	result, err := analyzer.Convert(cmd.Context(), scripts, reportConfig, reader)
	if err != nil {
		return fmt.Errorf("failed to convert coverage: %w", err)
	}

	report := &reporter.Report{
		Title:       reportConfig.Title(),
		GeneratedAt: start,
		Coverage:    result.Coverage,
		ReportFiles: reportConfig.ReportFiles(),
	}
	if err := createReports(cmd, reportConfig, reader, report); err != nil {
		return err
	}

	slog.Info("Report generation completed", "output", reportConfig.TargetDirectory(),
		"duration", time.Since(start).Round(time.Millisecond))
	return nil
}

// parseReports reads every report file. Files no parser understands are skipped with a
// warning unless the run is strict.
func parseReports(rc *reportconfig.ReportConfiguration) ([]model.ScriptCoverage, error) {
	var scripts []model.ScriptCoverage
	for _, file := range rc.ReportFiles() {
		p, err := parser.FindParserForFile(file)
		if err != nil {
			if rc.Strict() {
				return nil, err
			}
			slog.Warn("Skipping report file", "file", file, "error", err)
			continue
		}

		parsed, err := p.Parse(file, rc)
		if err != nil {
			if rc.Strict() {
				return nil, fmt.Errorf("failed to parse %s: %w", file, err)
			}
			slog.Warn("Skipping report file", "file", file, "parser", p.Name(), "error", err)
			continue
		}
		slog.Info("Parsed coverage report", "file", file, "parser", parsed.ParserName,
			"scripts", len(parsed.Scripts), "excluded", parsed.Excluded)
		scripts = append(scripts, parsed.Scripts...)
	}
	if len(scripts) == 0 && len(rc.ReportFiles()) > 0 {
		slog.Warn("No script coverage found in the report files")
	}
	return scripts, nil
}

func createReports(cmd *cobra.Command, rc *reportconfig.ReportConfiguration, reader htmlreport.SourceReader, report *reporter.Report) error {
	var builders []reporter.IReportBuilder
	for _, reportType := range rc.ReportTypes() {
		switch {
		case strings.EqualFold(reportType, reportconfig.ReportTypeIstanbul):
			builders = append(builders, istanbuljson.NewIstanbulReportBuilder(rc.TargetDirectory()))
		case strings.EqualFold(reportType, reportconfig.ReportTypeTextSummary):
			builders = append(builders, textsummary.NewTextSummaryBuilder(rc.TargetDirectory(), cmd.OutOrStdout(), !color.NoColor))
		case strings.EqualFold(reportType, reportconfig.ReportTypeHtml):
			builders = append(builders, htmlreport.NewHtmlReportBuilder(rc.TargetDirectory(), reader))
		}
	}

	var errs []error
	for _, b := range builders {
		slog.Debug("Generating report", "type", b.ReportType())
		if err := b.CreateReport(report); err != nil {
			errs = append(errs, fmt.Errorf("%s report: %w", b.ReportType(), err))
		}
	}
	return errors.Join(errs...)
}
