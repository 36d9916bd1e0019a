package reportconfig

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/IgorBayerl/ReportGenerator/go_v8_converter/internal/analyzer"
	"github.com/IgorBayerl/ReportGenerator/go_v8_converter/internal/logging"
)

// Conversion strategies.
const (
	StrategyLines = analyzer.StrategyLines
	StrategyAST   = analyzer.StrategyAST
)

// Report types.
const (
	ReportTypeIstanbul    = "Istanbul"
	ReportTypeTextSummary = "TextSummary"
	ReportTypeHtml        = "Html"
)

// SupportedReportTypes lists the report types the tool can write.
var SupportedReportTypes = []string{ReportTypeIstanbul, ReportTypeTextSummary, ReportTypeHtml}

// FileConfig is the YAML configuration file. Every field can also be set on the command line;
// flags win over the file.
type FileConfig struct {
	// Reports are V8 coverage files or glob patterns.
	Reports []string `yaml:"reports"`
	// Output is the directory reports are written to.
	Output string `yaml:"output,omitempty"`
	// ReportTypes selects the outputs, see SupportedReportTypes.
	ReportTypes []string `yaml:"report_types,omitempty"`
	// SourceDirs are searched for scripts whose recorded path does not exist.
	SourceDirs []string `yaml:"source_dirs,omitempty"`
	// FileFilters are +/- wildcard patterns matched against script paths.
	FileFilters []string `yaml:"file_filters,omitempty"`
	// Strategy is "lines" or "ast".
	Strategy string `yaml:"strategy,omitempty"`
	// Workers bounds the number of files converted concurrently.
	Workers int `yaml:"workers,omitempty"`
	// WrapperPrologueLength overrides the length of the CommonJS module wrapper prologue.
	// Negative means the Node.js default.
	WrapperPrologueLength *int `yaml:"wrapper_prologue_length,omitempty"`
	// Strict makes the first per-file failure fatal.
	Strict bool `yaml:"strict,omitempty"`
	// Verbosity is one of Verbose, Info, Warning, Error, Off.
	Verbosity string `yaml:"verbosity,omitempty"`
	// Title is shown in the HTML and text reports.
	Title string `yaml:"title,omitempty"`
}

// Default returns a configuration with every default applied.
func Default() *FileConfig {
	cfg := &FileConfig{}
	applyDefaults(cfg)
	return cfg
}

// Load reads and parses a YAML configuration file. Unknown keys are rejected.
func Load(filename string) (*FileConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg FileConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyDefaults(&cfg)
	if err := validate(&cfg, false); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return &cfg, nil
}

// Validate checks the merged configuration before a run.
func (c *FileConfig) Validate() error {
	return validate(c, true)
}

// validate checks that required fields are present and valid. Reports may come from the
// command line, so they are only required for a complete configuration.
func validate(cfg *FileConfig, complete bool) error {
	if complete && len(cfg.Reports) == 0 {
		return fmt.Errorf("reports is required")
	}
	if cfg.Strategy != StrategyLines && cfg.Strategy != StrategyAST {
		return fmt.Errorf("strategy must be %q or %q, got %q", StrategyLines, StrategyAST, cfg.Strategy)
	}
	if cfg.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", cfg.Workers)
	}
	for _, rt := range cfg.ReportTypes {
		if !isSupportedReportType(rt) {
			return fmt.Errorf("unsupported report type: %s (supported: %s)", rt, strings.Join(SupportedReportTypes, ", "))
		}
	}
	for _, f := range cfg.FileFilters {
		if f = strings.TrimSpace(f); f != "" && f[0] != '+' && f[0] != '-' {
			return fmt.Errorf("file filter %q must start with '+' or '-'", f)
		}
	}
	if _, err := logging.ParseVerbosity(cfg.Verbosity); err != nil {
		return err
	}
	return nil
}

// applyDefaults sets default values for optional fields
func applyDefaults(cfg *FileConfig) {
	if cfg.Output == "" {
		cfg.Output = "coverage-report"
	}
	if len(cfg.ReportTypes) == 0 {
		cfg.ReportTypes = []string{ReportTypeIstanbul, ReportTypeTextSummary}
	}
	if cfg.Strategy == "" {
		cfg.Strategy = StrategyLines
	}
	if cfg.Workers == 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.WrapperPrologueLength == nil {
		defaultLength := -1
		cfg.WrapperPrologueLength = &defaultLength
	}
	if cfg.Verbosity == "" {
		cfg.Verbosity = logging.Info.String()
	}
	if cfg.Title == "" {
		cfg.Title = "Coverage Report"
	}
}

func isSupportedReportType(rt string) bool {
	for _, s := range SupportedReportTypes {
		if strings.EqualFold(s, strings.TrimSpace(rt)) {
			return true
		}
	}
	return false
}
