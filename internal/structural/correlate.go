package structural

import (
	"fmt"
	"sort"
	"strings"

	"github.com/IgorBayerl/ReportGenerator/go_v8_converter/internal/model"
	"github.com/IgorBayerl/ReportGenerator/go_v8_converter/internal/rangeset"
	"github.com/IgorBayerl/ReportGenerator/go_v8_converter/internal/source"
)

// UnmatchedFunctionError is returned when a V8 function has no syntax node with exactly the
// span of its first range. It usually means the offsets were not normalized for the module
// wrapper, or the parser does not understand a construct the engine compiled.
type UnmatchedFunctionError struct {
	Name        string
	StartOffset int
	EndOffset   int
}

func (e *UnmatchedFunctionError) Error() string {
	name := e.Name
	if name == "" {
		name = "(anonymous)"
	}
	return fmt.Sprintf("no syntax node matches function %s at [%d,%d)", name, e.StartOffset, e.EndOffset)
}

// Options tunes how functions are matched to nodes.
type Options struct {
	// WrappedProgram is set for scripts the runtime executed inside a module wrapper. V8 then
	// reports the wrapper function as well as the top-level script, and after normalization
	// both span the whole source. The first anonymous function that repeats the Program span
	// takes Program over, since its ranges carry the counts of the module body.
	WrappedProgram bool
}

// IsSynthetic reports whether name is a function V8 generates for class member
// initializers, such as <instance_members_initializer> or <static_initializer>. Their spans
// cover class syntax rather than a function node, so they may match any node and are ignored
// when no node has their span.
func IsSynthetic(name string) bool {
	return len(name) > 2 && strings.HasPrefix(name, "<") && strings.HasSuffix(name, ">")
}

// owner is a V8 function matched to a syntax node.
type owner struct {
	fn     model.FunctionCoverage
	ranges *rangeset.RangeSet
}

// count returns the execution count of [start, end) inside the function. Spans that straddle
// a partition boundary fall back to the last range that contains them.
func (o *owner) count(start, end int) int {
	if c, err := o.ranges.Count(start, end); err == nil {
		return c
	}
	c := o.fn.Ranges[0].Count
	for _, r := range o.fn.Ranges {
		if r.StartOffset <= start && end <= r.EndOffset {
			c = r.Count
		}
	}
	return c
}

// Correlate builds node-granularity coverage for one file. Functions must already be
// normalized to offsets in the source text indexed by index.
//
// Every function is matched to the first node, in depth-first order, whose span equals the
// function's first range and that is not matched yet. Statements and conditionals are then
// attributed to the innermost matched function enclosing them.
func Correlate(path string, root Node, functions []model.FunctionCoverage, index *source.LineIndex, opts Options) (*model.FileCoverage, error) {
	matches, err := match(root, functions, opts)
	if err != nil {
		return nil, err
	}

	fc := model.NewFileCoverage(path)
	anonymous := 0
	var emit func(node Node, current *owner)
	emit = func(node Node, current *owner) {
		if o, ok := matches[node]; ok {
			current = o
			if node.Kind() == Function && !IsSynthetic(o.fn.FunctionName) {
				name := o.fn.FunctionName
				if name == "" {
					name = fmt.Sprintf("(anonymous_%d)", anonymous)
					anonymous++
				}
				loc := index.Span(node.Start(), node.End())
				fc.AddFunction(model.FunctionMapping{
					Name: name,
					Decl: loc,
					Loc:  loc,
					Line: loc.Start.Line,
				}, o.fn.Ranges[0].Count)
			}
		}

		if current != nil {
			switch node.Kind() {
			case Statement:
				fc.AddStatement(index.Span(node.Start(), node.End()), current.count(node.Start(), node.End()))
			case Conditional:
				if children := node.Children(); len(children) >= 2 {
					consequent, alternate := children[len(children)-2], children[len(children)-1]
					loc := index.Span(node.Start(), node.End())
					fc.AddBranch(model.BranchMapping{
						Type: model.BranchTypeCond,
						Line: loc.Start.Line,
						Loc:  loc,
						Locations: []model.Location{
							index.Span(consequent.Start(), consequent.End()),
							index.Span(alternate.Start(), alternate.End()),
						},
					}, []int{
						current.count(consequent.Start(), consequent.End()),
						current.count(alternate.Start(), alternate.End()),
					})
				}
			}
		}

		for _, child := range node.Children() {
			emit(child, current)
		}
	}
	emit(root, nil)
	return fc, nil
}

type pending struct {
	start, end int
	index      int
	matched    bool
}

// match pairs every function with a Program or Function node of identical span.
func match(root Node, functions []model.FunctionCoverage, opts Options) (map[Node]*owner, error) {
	byIndex := make([]*pending, 0, len(functions))
	for i, fn := range functions {
		if len(fn.Ranges) == 0 {
			return nil, fmt.Errorf("%w: function %q has no ranges", model.ErrMalformedInput, fn.FunctionName)
		}
		byIndex = append(byIndex, &pending{start: fn.Ranges[0].StartOffset, end: fn.Ranges[0].EndOffset, index: i})
	}
	spans := append([]*pending(nil), byIndex...)
	sort.SliceStable(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	matches := make(map[Node]*owner, len(functions))
	remaining := len(spans)
	wrapperClaimed := !opts.WrappedProgram
	Walk(root, func(node Node) bool {
		if remaining == 0 {
			return false
		}
		// Skip subtrees that cannot contain an unmatched span.
		first := sort.Search(len(spans), func(i int) bool { return spans[i].start >= node.Start() })
		inside := false
		for _, p := range spans[first:] {
			if p.start > node.End() {
				break
			}
			if p.matched || p.end > node.End() {
				continue
			}
			inside = true
			if p.start != node.Start() || p.end != node.End() {
				continue
			}
			fn := functions[p.index]
			kind := node.Kind()
			if kind != Function && kind != Program && !IsSynthetic(fn.FunctionName) {
				continue
			}
			_, taken := matches[node]
			takeover := taken && kind == Program && !wrapperClaimed && fn.FunctionName == ""
			if taken && !takeover {
				continue
			}
			rs, err := rangeset.New(fn.Ranges)
			if err != nil {
				continue
			}
			matches[node] = &owner{fn: fn, ranges: rs}
			p.matched = true
			remaining--
			if takeover {
				wrapperClaimed = true
			}
		}
		return inside
	})

	for _, p := range byIndex {
		if fn := functions[p.index]; !p.matched && !IsSynthetic(fn.FunctionName) {
			return nil, &UnmatchedFunctionError{Name: fn.FunctionName, StartOffset: p.start, EndOffset: p.end}
		}
	}
	return matches, nil
}
