package parser

import (
	"github.com/IgorBayerl/ReportGenerator/go_v8_converter/internal/model"
	"github.com/IgorBayerl/ReportGenerator/go_v8_converter/internal/parser/filtering"
)

// ParserResult holds the script coverages read from a single report file.
type ParserResult struct {
	Scripts    []model.ScriptCoverage
	ReportFile string
	ParserName string
	// Excluded counts the scripts dropped by the file filters.
	Excluded int
}

// ParserConfig defines the lean configuration required by a parser.
// This consumer-defined interface decouples parsers from the main report configuration.
type ParserConfig interface {
	FileFilters() filtering.IFilter
}

// IParser defines the contract for all coverage report parsers.
type IParser interface {
	Name() string
	SupportsFile(filePath string) bool
	Parse(filePath string, config ParserConfig) (*ParserResult, error)
}
