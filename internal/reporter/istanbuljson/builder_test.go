package istanbuljson

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IgorBayerl/ReportGenerator/go_v8_converter/internal/model"
	"github.com/IgorBayerl/ReportGenerator/go_v8_converter/internal/reporter"
)

func sampleCoverage() model.CoverageMap {
	fc := model.NewFileCoverage("/src/a.js")
	for line := 1; line <= 11; line++ {
		fc.AddStatement(model.Location{
			Start: model.Position{Line: line, Column: 0},
			End:   model.Position{Line: line, Column: 4},
		}, line%2)
	}
	fc.AddFunction(model.FunctionMapping{Name: "f", Line: 1}, 3)
	fc.AddBranch(model.BranchMapping{Type: model.BranchTypeBlock, Line: 2, Locations: []model.Location{{}}}, []int{0})
	return model.CoverageMap{fc.Path: fc}
}

func TestCreateReport(t *testing.T) {
	dir := t.TempDir()
	report := &reporter.Report{Coverage: sampleCoverage()}

	builder := NewIstanbulReportBuilder(filepath.Join(dir, "out"))
	assert.Equal(t, "Istanbul", builder.ReportType())
	require.NoError(t, builder.CreateReport(report))

	data, err := os.ReadFile(filepath.Join(dir, "out", FileName))
	require.NoError(t, err)

	var decoded model.CoverageMap
	require.NoError(t, json.Unmarshal(data, &decoded))
	if diff := cmp.Diff(report.Coverage, decoded); diff != "" {
		t.Errorf("coverage-final.json mismatch (-want +got):\n%s", diff)
	}
}

func TestMarshal_IsDeterministic(t *testing.T) {
	report := &reporter.Report{Coverage: sampleCoverage()}

	first, err := Marshal(report)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := Marshal(report)
		require.NoError(t, err)
		assert.Equal(t, string(first), string(again))
	}
}

func TestMarshal_Empty(t *testing.T) {
	data, err := Marshal(&reporter.Report{})
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(data))
}
