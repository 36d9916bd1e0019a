package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fn(ranges ...CoverageRange) FunctionCoverage {
	return FunctionCoverage{FunctionName: "f", IsBlockCoverage: true, Ranges: ranges}
}

func TestValidateFunction(t *testing.T) {
	testCases := []struct {
		name    string
		input   FunctionCoverage
		wantErr bool
	}{
		{"single range", fn(CoverageRange{0, 10, 1}), false},
		{"nested", fn(CoverageRange{0, 100, 1}, CoverageRange{10, 50, 0}, CoverageRange{20, 30, 2}), false},
		{"siblings in reverse order", fn(CoverageRange{10, 20, 3}, CoverageRange{15, 18, 1}, CoverageRange{12, 15, 2}), false},
		{"equal to outer", fn(CoverageRange{10, 20, 3}, CoverageRange{10, 20, 1}), false},
		{"empty list", FunctionCoverage{FunctionName: "f"}, true},
		{"empty range", fn(CoverageRange{5, 5, 1}), true},
		{"inverted range", fn(CoverageRange{10, 5, 1}), true},
		{"negative count", fn(CoverageRange{0, 5, -1}), true},
		{"outside outer", fn(CoverageRange{10, 20, 1}, CoverageRange{15, 25, 0}), true},
		{"partial overlap", fn(CoverageRange{0, 100, 1}, CoverageRange{10, 50, 0}, CoverageRange{40, 60, 0}), true},
		{"later range encloses earlier", fn(CoverageRange{0, 100, 1}, CoverageRange{10, 20, 0}, CoverageRange{5, 30, 0}), true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateFunction(tc.input)
			if tc.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrMalformedInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateScript_ReportsFunction(t *testing.T) {
	script := ScriptCoverage{
		URL: "/app/main.js",
		Functions: []FunctionCoverage{
			fn(CoverageRange{0, 10, 1}),
			{FunctionName: "broken"},
		},
	}

	err := ValidateScript(script)
	require.ErrorIs(t, err, ErrMalformedInput)
	assert.Contains(t, err.Error(), "/app/main.js")
	assert.Contains(t, err.Error(), "broken")
}

func TestFileCoverage_Summary(t *testing.T) {
	fc := NewFileCoverage("/app/main.js")
	loc := func(line int) Location {
		return Location{Start: Position{Line: line}, End: Position{Line: line, Column: 4}}
	}
	fc.AddStatement(loc(1), 1)
	fc.AddStatement(loc(2), 0)
	fc.AddStatement(loc(2), 3)
	fc.AddFunction(FunctionMapping{Name: "f", Decl: loc(1), Loc: loc(1), Line: 1}, 2)
	fc.AddFunction(FunctionMapping{Name: "g", Decl: loc(2), Loc: loc(2), Line: 2}, 0)
	fc.AddBranch(BranchMapping{Type: BranchTypeCond, Line: 1, Loc: loc(1), Locations: []Location{loc(1), loc(1)}}, []int{1, 0})

	s := fc.Summary()
	assert.Equal(t, Counter{Covered: 2, Total: 3}, s.Statements)
	assert.Equal(t, Counter{Covered: 1, Total: 2}, s.Lines)
	assert.Equal(t, Counter{Covered: 1, Total: 2}, s.Functions)
	assert.Equal(t, Counter{Covered: 1, Total: 2}, s.Branches)
	assert.InDelta(t, 50.0, s.Branches.Percent(), 1e-9)
	assert.True(t, math.IsNaN(Counter{}.Percent()))
}

func TestSortedIDs_Numeric(t *testing.T) {
	m := map[string]int{"10": 0, "2": 0, "0": 0, "1": 0}
	assert.Equal(t, []string{"0", "1", "2", "10"}, SortedIDs(m))
}
