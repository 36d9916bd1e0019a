package model

import (
	"sort"
	"strconv"
)

// Position is a point in source text: 1-based line, 0-based column.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Location is a span between two positions.
type Location struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// FunctionMapping is the fnMap entry of a function.
type FunctionMapping struct {
	Name string   `json:"name"`
	Decl Location `json:"decl"`
	Loc  Location `json:"loc"`
	Line int      `json:"line"`
}

// BranchMapping is the branchMap entry of a branch. Locations holds one location per arm.
type BranchMapping struct {
	Type      string     `json:"type"`
	Line      int        `json:"line"`
	Loc       Location   `json:"loc"`
	Locations []Location `json:"locations"`
}

// Branch types written by the converters.
const (
	BranchTypeBlock = "branch"
	BranchTypeCond  = "cond-expr"
)

// FileCoverage is Istanbul's FileCoverage data for one source file. The three categories are
// keyed by opaque ids assigned in discovery order; S, F and B use the same ids as their maps.
type FileCoverage struct {
	Path         string                     `json:"path"`
	StatementMap map[string]Location        `json:"statementMap"`
	S            map[string]int             `json:"s"`
	FnMap        map[string]FunctionMapping `json:"fnMap"`
	F            map[string]int             `json:"f"`
	BranchMap    map[string]BranchMapping   `json:"branchMap"`
	B            map[string][]int           `json:"b"`
}

// NewFileCoverage returns an empty FileCoverage for path.
func NewFileCoverage(path string) *FileCoverage {
	return &FileCoverage{
		Path:         path,
		StatementMap: make(map[string]Location),
		S:            make(map[string]int),
		FnMap:        make(map[string]FunctionMapping),
		F:            make(map[string]int),
		BranchMap:    make(map[string]BranchMapping),
		B:            make(map[string][]int),
	}
}

// AddStatement appends a statement and returns its id.
func (fc *FileCoverage) AddStatement(loc Location, count int) string {
	id := strconv.Itoa(len(fc.StatementMap))
	fc.StatementMap[id] = loc
	fc.S[id] = count
	return id
}

// AddFunction appends a function and returns its id.
func (fc *FileCoverage) AddFunction(fn FunctionMapping, count int) string {
	id := strconv.Itoa(len(fc.FnMap))
	fc.FnMap[id] = fn
	fc.F[id] = count
	return id
}

// AddBranch appends a branch with one count per location and returns its id.
func (fc *FileCoverage) AddBranch(branch BranchMapping, counts []int) string {
	id := strconv.Itoa(len(fc.BranchMap))
	fc.BranchMap[id] = branch
	fc.B[id] = counts
	return id
}

// CoverageMap maps a file path to its coverage, as in coverage-final.json.
type CoverageMap map[string]*FileCoverage

// Paths returns the file paths in sorted order.
func (cm CoverageMap) Paths() []string {
	paths := make([]string, 0, len(cm))
	for p := range cm {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// SortedIDs returns the numeric ids of a coverage category in increasing order.
func SortedIDs[V any](m map[string]V) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, errA := strconv.Atoi(ids[i])
		b, errB := strconv.Atoi(ids[j])
		if errA != nil || errB != nil {
			return ids[i] < ids[j]
		}
		return a < b
	})
	return ids
}
