package analyzer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/IgorBayerl/ReportGenerator/go_v8_converter/internal/model"
)

func TestMergeFileCoverage(t *testing.T) {
	dst := model.NewFileCoverage("/src/a.js")
	dst.AddStatement(loc(1, 0, 1, 10), 1)
	dst.AddStatement(loc(2, 0, 2, 10), 0)
	dst.AddFunction(model.FunctionMapping{Name: "f", Decl: loc(1, 0, 1, 10), Loc: loc(1, 0, 1, 10), Line: 1}, 1)
	dst.AddBranch(model.BranchMapping{Type: model.BranchTypeBlock, Line: 2, Loc: loc(2, 0, 2, 10), Locations: []model.Location{loc(2, 0, 2, 10)}}, []int{0})

	src := model.NewFileCoverage("/src/a.js")
	src.AddStatement(loc(2, 0, 2, 10), 3)
	src.AddStatement(loc(3, 0, 3, 4), 1)
	src.AddFunction(model.FunctionMapping{Name: "f", Decl: loc(1, 0, 1, 10), Loc: loc(1, 0, 1, 10), Line: 1}, 2)
	src.AddFunction(model.FunctionMapping{Name: "g", Decl: loc(3, 0, 3, 4), Loc: loc(3, 0, 3, 4), Line: 3}, 1)
	src.AddBranch(model.BranchMapping{Type: model.BranchTypeBlock, Line: 2, Loc: loc(2, 0, 2, 10), Locations: []model.Location{loc(2, 0, 2, 10)}}, []int{4})

	MergeFileCoverage(dst, src)

	assert.Equal(t, map[string]int{"0": 1, "1": 3, "2": 1}, dst.S)
	assert.Equal(t, loc(3, 0, 3, 4), dst.StatementMap["2"])
	assert.Equal(t, map[string]int{"0": 3, "1": 1}, dst.F)
	assert.Equal(t, "g", dst.FnMap["1"].Name)
	assert.Equal(t, map[string][]int{"0": {4}}, dst.B)
}

func TestMergeFileCoverage_DuplicateLocations(t *testing.T) {
	branch := model.BranchMapping{Type: model.BranchTypeBlock, Line: 1, Loc: loc(1, 0, 1, 5), Locations: []model.Location{loc(1, 0, 1, 5)}}

	dst := model.NewFileCoverage("/src/a.js")
	dst.AddBranch(branch, []int{1})
	dst.AddBranch(branch, []int{0})

	src := model.NewFileCoverage("/src/a.js")
	src.AddBranch(branch, []int{10})
	src.AddBranch(branch, []int{20})
	src.AddBranch(branch, []int{30})

	MergeFileCoverage(dst, src)

	want := map[string][]int{"0": {11}, "1": {20}, "2": {30}}
	if diff := cmp.Diff(want, dst.B); diff != "" {
		t.Errorf("B mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeFileCoverage_DoesNotAliasSource(t *testing.T) {
	dst := model.NewFileCoverage("/src/a.js")
	src := model.NewFileCoverage("/src/a.js")
	src.AddBranch(model.BranchMapping{Type: model.BranchTypeCond, Loc: loc(1, 0, 1, 5)}, []int{1, 2})

	MergeFileCoverage(dst, src)
	dst.B["0"][0] = 99

	assert.Equal(t, []int{1, 2}, src.B["0"])
}

func TestMergeInto(t *testing.T) {
	cm := make(model.CoverageMap)
	a := model.NewFileCoverage("/src/a.js")
	a.AddStatement(loc(1, 0, 1, 5), 1)
	MergeInto(cm, a)

	again := model.NewFileCoverage("/src/a.js")
	again.AddStatement(loc(1, 0, 1, 5), 2)
	MergeInto(cm, again)
	MergeInto(cm, model.NewFileCoverage("/src/b.js"))

	assert.Equal(t, []string{"/src/a.js", "/src/b.js"}, cm.Paths())
	assert.Equal(t, 3, cm["/src/a.js"].S["0"])
}
