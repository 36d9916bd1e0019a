package v8json

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/IgorBayerl/ReportGenerator/go_v8_converter/internal/model"
	"github.com/IgorBayerl/ReportGenerator/go_v8_converter/internal/parser"
)

// V8JSONParser implements the parser.IParser interface for V8 precise coverage dumps, as
// written by NODE_V8_COVERAGE or returned by Profiler.takePreciseCoverage.
type V8JSONParser struct {
}

// NewV8JSONParser creates a new V8JSONParser.
func NewV8JSONParser() parser.IParser {
	return &V8JSONParser{}
}

func init() {
	parser.RegisterParser(NewV8JSONParser())
}

// Name returns the name of the parser.
func (p *V8JSONParser) Name() string {
	return "V8"
}

// keys that identify a V8 coverage object by its first member.
var coverageKeys = map[string]bool{
	"result":    true,
	"scriptId":  true,
	"url":       true,
	"functions": true,
	"timestamp": true,
}

// SupportsFile checks if the given file is likely a V8 coverage dump: a JSON array, or a
// JSON object whose first key is one V8 writes.
func (p *V8JSONParser) SupportsFile(filePath string) bool {
	if !strings.HasSuffix(strings.ToLower(filePath), ".json") {
		return false
	}
	f, err := os.Open(filePath)
	if err != nil {
		return false
	}
	defer f.Close()

	decoder := json.NewDecoder(f)
	token, err := decoder.Token()
	if err != nil {
		return false
	}
	switch token {
	case json.Delim('['):
		return true
	case json.Delim('{'):
		key, err := decoder.Token()
		if err != nil {
			return false
		}
		name, ok := key.(string)
		return ok && coverageKeys[name]
	}
	return false
}

// Parse reads the report and drops the scripts excluded by the file filters. Filters match
// the script url with any file:// prefix removed.
func (p *V8JSONParser) Parse(filePath string, config parser.ParserConfig) (*parser.ParserResult, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open V8 coverage file %s: %w", filePath, err)
	}
	defer f.Close()

	scripts, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode V8 coverage from %s: %w", filePath, err)
	}

	result := &parser.ParserResult{
		ReportFile: filePath,
		ParserName: p.Name(),
	}
	filter := config.FileFilters()
	for _, script := range scripts {
		name := strings.TrimPrefix(script.URL, "file://")
		if filter != nil && !filter.IsElementIncludedInReport(name) {
			slog.Debug("Script excluded by file filters", "url", script.URL, "report", filePath)
			result.Excluded++
			continue
		}
		result.Scripts = append(result.Scripts, script)
	}
	return result, nil
}

// Decode reads V8 coverage in any of the shapes tools produce: a process coverage object
// ({"result": [...]}), a bare array of script coverages, or a single script coverage.
func Decode(r io.Reader) ([]model.ScriptCoverage, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty document", model.ErrMalformedInput)
	}

	switch data[0] {
	case '[':
		var scripts []model.ScriptCoverage
		if err := json.Unmarshal(data, &scripts); err != nil {
			return nil, fmt.Errorf("%w: %v", model.ErrMalformedInput, err)
		}
		return scripts, nil
	case '{':
		var members map[string]json.RawMessage
		if err := json.Unmarshal(data, &members); err != nil {
			return nil, fmt.Errorf("%w: %v", model.ErrMalformedInput, err)
		}
		if _, ok := members["result"]; ok {
			var process model.ProcessCoverage
			if err := json.Unmarshal(data, &process); err != nil {
				return nil, fmt.Errorf("%w: %v", model.ErrMalformedInput, err)
			}
			return process.Result, nil
		}
		if _, ok := members["functions"]; ok {
			var script model.ScriptCoverage
			if err := json.Unmarshal(data, &script); err != nil {
				return nil, fmt.Errorf("%w: %v", model.ErrMalformedInput, err)
			}
			return []model.ScriptCoverage{script}, nil
		}
		return nil, fmt.Errorf("%w: object has neither \"result\" nor \"functions\"", model.ErrMalformedInput)
	}
	return nil, fmt.Errorf("%w: expected a JSON object or array", model.ErrMalformedInput)
}
