package reportconfig

import (
	"fmt"
	"strings"

	"github.com/IgorBayerl/ReportGenerator/go_v8_converter/internal/glob"
	"github.com/IgorBayerl/ReportGenerator/go_v8_converter/internal/logging"
	"github.com/IgorBayerl/ReportGenerator/go_v8_converter/internal/parser/filtering"
)

// IReportConfiguration defines the configuration of a conversion run.
type IReportConfiguration interface {
	ReportFiles() []string
	TargetDirectory() string
	SourceDirectories() []string
	ReportTypes() []string
	FileFilters() filtering.IFilter
	Strategy() string
	Workers() int
	WrapperPrologueLength() int
	Strict() bool
	VerbosityLevel() logging.VerbosityLevel
	Title() string
	InvalidReportFilePatterns() []string
}

// ReportConfiguration is a concrete implementation of IReportConfiguration.
type ReportConfiguration struct {
	RFiles          []string
	TDirectory      string
	SDirectories    []string
	RTypes          []string
	Filters         filtering.IFilter
	CfgStrategy     string
	CfgWorkers      int
	PrologueLength  int
	CfgStrict       bool
	VLevel          logging.VerbosityLevel
	CfgTitle        string
	InvalidPatterns []string
}

// Implement IReportConfiguration methods
func (rc *ReportConfiguration) ReportFiles() []string                  { return rc.RFiles }
func (rc *ReportConfiguration) TargetDirectory() string                { return rc.TDirectory }
func (rc *ReportConfiguration) SourceDirectories() []string            { return rc.SDirectories }
func (rc *ReportConfiguration) ReportTypes() []string                  { return rc.RTypes }
func (rc *ReportConfiguration) FileFilters() filtering.IFilter         { return rc.Filters }
func (rc *ReportConfiguration) Strategy() string                       { return rc.CfgStrategy }
func (rc *ReportConfiguration) Workers() int                           { return rc.CfgWorkers }
func (rc *ReportConfiguration) WrapperPrologueLength() int             { return rc.PrologueLength }
func (rc *ReportConfiguration) Strict() bool                           { return rc.CfgStrict }
func (rc *ReportConfiguration) VerbosityLevel() logging.VerbosityLevel { return rc.VLevel }
func (rc *ReportConfiguration) Title() string                          { return rc.CfgTitle }
func (rc *ReportConfiguration) InvalidReportFilePatterns() []string    { return rc.InvalidPatterns }

// HasReportType reports whether the run writes the given report type.
func (rc *ReportConfiguration) HasReportType(reportType string) bool {
	for _, rt := range rc.RTypes {
		if strings.EqualFold(strings.TrimSpace(rt), reportType) {
			return true
		}
	}
	return false
}

// Build validates cfg and resolves it into the configuration of a run. Report patterns are
// expanded with glob.GetFiles; patterns that match nothing are kept in
// InvalidReportFilePatterns. At least one report file must exist.
func Build(cfg *FileConfig) (*ReportConfiguration, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	reportFiles, invalid := ExpandReportPatterns(cfg.Reports)
	if len(reportFiles) == 0 {
		return nil, fmt.Errorf("no report files found for patterns: %s", strings.Join(cfg.Reports, ";"))
	}

	filters, err := filtering.NewDefaultFilter(cfg.FileFilters, true)
	if err != nil {
		return nil, err
	}
	verbosity, err := logging.ParseVerbosity(cfg.Verbosity)
	if err != nil {
		return nil, err
	}
	prologueLength := -1
	if cfg.WrapperPrologueLength != nil {
		prologueLength = *cfg.WrapperPrologueLength
	}

	return &ReportConfiguration{
		RFiles:          reportFiles,
		TDirectory:      cfg.Output,
		SDirectories:    cfg.SourceDirs,
		RTypes:          cfg.ReportTypes,
		Filters:         filters,
		CfgStrategy:     cfg.Strategy,
		CfgWorkers:      cfg.Workers,
		PrologueLength:  prologueLength,
		CfgStrict:       cfg.Strict,
		VLevel:          verbosity,
		CfgTitle:        cfg.Title,
		InvalidPatterns: invalid,
	}, nil
}

// ExpandReportPatterns resolves glob patterns to existing files. Duplicates are dropped and
// order is preserved.
func ExpandReportPatterns(patterns []string) (files []string, invalid []string) {
	seen := make(map[string]struct{})
	for _, pattern := range patterns {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		matches, err := glob.GetFiles(pattern)
		if err != nil || len(matches) == 0 {
			invalid = append(invalid, pattern)
			continue
		}
		for _, m := range matches {
			if _, dup := seen[m]; dup {
				continue
			}
			seen[m] = struct{}{}
			files = append(files, m)
		}
	}
	return files, invalid
}
