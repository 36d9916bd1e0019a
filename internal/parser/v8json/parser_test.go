package v8json

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IgorBayerl/ReportGenerator/go_v8_converter/internal/model"
	"github.com/IgorBayerl/ReportGenerator/go_v8_converter/internal/parser"
	"github.com/IgorBayerl/ReportGenerator/go_v8_converter/internal/parser/filtering"
)

const processCoverage = `{
  "result": [
    {
      "scriptId": "12",
      "url": "file:///app/src/main.mjs",
      "functions": [
        {"functionName": "", "ranges": [{"startOffset": 0, "endOffset": 29, "count": 1}], "isBlockCoverage": true},
        {"functionName": "f", "ranges": [{"startOffset": 0, "endOffset": 23, "count": 1}], "isBlockCoverage": false}
      ]
    },
    {
      "scriptId": "7",
      "url": "node:internal/main/run_main_module",
      "functions": []
    }
  ],
  "timestamp": 59811.412,
  "source-map-cache": {}
}`

// mockParserConfig for providing test configuration.
type mockParserConfig struct {
	fileFilter filtering.IFilter
}

func (m *mockParserConfig) FileFilters() filtering.IFilter { return m.fileFilter }

func newTestConfig(t *testing.T, filters ...string) *mockParserConfig {
	f, err := filtering.NewDefaultFilter(filters)
	require.NoError(t, err)
	return &mockParserConfig{fileFilter: f}
}

func writeFile(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestSupportsFile(t *testing.T) {
	p := NewV8JSONParser()

	testCases := []struct {
		name    string
		file    string
		content string
		want    bool
	}{
		{"process coverage", "coverage-1.json", processCoverage, true},
		{"array of scripts", "fixture.json", `[{"url": "a.js", "functions": []}]`, true},
		{"single script", "script.json", `{"scriptId": "1", "url": "a.js", "functions": []}`, true},
		{"unrelated object", "package.json", `{"name": "app", "version": "1.0.0"}`, false},
		{"wrong extension", "coverage.xml", processCoverage, false},
		{"not json", "broken.json", `<coverage/>`, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeFile(t, tc.file, tc.content)
			assert.Equal(t, tc.want, p.SupportsFile(path))
		})
	}

	assert.False(t, p.SupportsFile(filepath.Join(t.TempDir(), "missing.json")))
}

func TestParse_ProcessCoverage(t *testing.T) {
	path := writeFile(t, "coverage-1.json", processCoverage)

	result, err := NewV8JSONParser().Parse(path, newTestConfig(t))
	require.NoError(t, err)

	assert.Equal(t, "V8", result.ParserName)
	assert.Equal(t, path, result.ReportFile)
	require.Len(t, result.Scripts, 2)

	main := result.Scripts[0]
	assert.Equal(t, "12", main.ScriptID)
	assert.Equal(t, "file:///app/src/main.mjs", main.URL)
	assert.Nil(t, main.Source)
	require.Len(t, main.Functions, 2)
	assert.Equal(t, model.FunctionCoverage{
		FunctionName: "f",
		Ranges:       []model.CoverageRange{{StartOffset: 0, EndOffset: 23, Count: 1}},
	}, main.Functions[1])
	assert.True(t, main.Functions[0].IsBlockCoverage)
}

func TestParse_AppliesFileFilters(t *testing.T) {
	path := writeFile(t, "coverage-1.json", processCoverage)

	result, err := NewV8JSONParser().Parse(path, newTestConfig(t, "-node:*"))
	require.NoError(t, err)

	require.Len(t, result.Scripts, 1)
	assert.Equal(t, "file:///app/src/main.mjs", result.Scripts[0].URL)
	assert.Equal(t, 1, result.Excluded)

	// Filters match the path, not the url.
	result, err = NewV8JSONParser().Parse(path, newTestConfig(t, "+/app/src/*"))
	require.NoError(t, err)
	require.Len(t, result.Scripts, 1)
}

func TestParse_InvalidFile(t *testing.T) {
	path := writeFile(t, "coverage.json", `{"result": [{"url": 3}]}`)

	_, err := NewV8JSONParser().Parse(path, newTestConfig(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrMalformedInput)
	assert.Contains(t, err.Error(), path)

	_, err = NewV8JSONParser().Parse(filepath.Join(t.TempDir(), "missing.json"), newTestConfig(t))
	assert.Error(t, err)
}

func TestDecode_Shapes(t *testing.T) {
	t.Run("array with embedded source", func(t *testing.T) {
		scripts, err := Decode(strings.NewReader(`[{"url": "/a.js", "source": "x();\n", "functions": []}]`))
		require.NoError(t, err)
		require.Len(t, scripts, 1)
		require.NotNil(t, scripts[0].Source)
		assert.Equal(t, "x();\n", *scripts[0].Source)
	})

	t.Run("single script", func(t *testing.T) {
		scripts, err := Decode(strings.NewReader(`{"url": "/a.js", "functions": [{"functionName": "", "ranges": [], "isBlockCoverage": false}]}`))
		require.NoError(t, err)
		require.Len(t, scripts, 1)
		assert.Equal(t, "/a.js", scripts[0].URL)
	})

	for name, doc := range map[string]string{
		"empty":          "  ",
		"scalar":         "42",
		"unknown object": `{"name": "x"}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(doc))
			assert.ErrorIs(t, err, model.ErrMalformedInput)
		})
	}
}

func TestRegistration(t *testing.T) {
	path := writeFile(t, "coverage-1.json", processCoverage)
	p, err := parser.FindParserForFile(path)
	require.NoError(t, err)
	assert.Equal(t, "V8", p.Name())

	_, err = parser.FindParserForFile(writeFile(t, "report.xml", "<coverage/>"))
	assert.ErrorIs(t, err, parser.ErrNoParser)
}
