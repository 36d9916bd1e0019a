package analyzer

import (
	"fmt"

	"github.com/IgorBayerl/ReportGenerator/go_v8_converter/internal/model"
)

// MergeInto adds fc to cm. When cm already holds coverage for the same path, the two are
// merged with MergeFileCoverage.
func MergeInto(cm model.CoverageMap, fc *model.FileCoverage) {
	existing, ok := cm[fc.Path]
	if !ok {
		cm[fc.Path] = fc
		return
	}
	MergeFileCoverage(existing, fc)
}

// MergeFileCoverage adds the counts of src to dst. Entries are matched by location (and by
// name for functions, by type and arm locations for branches); entries only present in src
// are appended to dst with new ids. When a location occurs several times in a file, the
// k-th occurrence in src is matched with the k-th in dst.
func MergeFileCoverage(dst, src *model.FileCoverage) {
	statements := newIDQueue(dst.StatementMap, func(loc model.Location) string {
		return fmt.Sprint(loc)
	})
	for _, id := range model.SortedIDs(src.StatementMap) {
		loc := src.StatementMap[id]
		if target, ok := statements.take(fmt.Sprint(loc)); ok {
			dst.S[target] += src.S[id]
			continue
		}
		dst.AddStatement(loc, src.S[id])
	}

	functions := newIDQueue(dst.FnMap, functionKey)
	for _, id := range model.SortedIDs(src.FnMap) {
		fn := src.FnMap[id]
		if target, ok := functions.take(functionKey(fn)); ok {
			dst.F[target] += src.F[id]
			continue
		}
		dst.AddFunction(fn, src.F[id])
	}

	branches := newIDQueue(dst.BranchMap, branchKey)
	for _, id := range model.SortedIDs(src.BranchMap) {
		branch := src.BranchMap[id]
		target, ok := branches.take(branchKey(branch))
		if ok && len(dst.B[target]) == len(src.B[id]) {
			for i, count := range src.B[id] {
				dst.B[target][i] += count
			}
			continue
		}
		dst.AddBranch(branch, append([]int(nil), src.B[id]...))
	}
}

func functionKey(fn model.FunctionMapping) string {
	return fmt.Sprintf("%s|%v", fn.Name, fn.Loc)
}

func branchKey(branch model.BranchMapping) string {
	return fmt.Sprintf("%s|%v|%v", branch.Type, branch.Loc, branch.Locations)
}

// idQueue hands out the ids of a coverage category by key, in id order.
type idQueue map[string][]string

func newIDQueue[V any](m map[string]V, key func(V) string) idQueue {
	q := make(idQueue)
	for _, id := range model.SortedIDs(m) {
		k := key(m[id])
		q[k] = append(q[k], id)
	}
	return q
}

func (q idQueue) take(key string) (string, bool) {
	ids := q[key]
	if len(ids) == 0 {
		return "", false
	}
	q[key] = ids[1:]
	return ids[0], true
}
