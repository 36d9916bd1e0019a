package analyzer

import (
	"github.com/IgorBayerl/ReportGenerator/go_v8_converter/internal/model"
	"github.com/IgorBayerl/ReportGenerator/go_v8_converter/internal/source"
)

// Script is the line-granularity coverage model of one source file. It is owned by the
// conversion that builds it and is never shared between goroutines.
type Script struct {
	Path      string
	Kind      ModuleKind
	Branches  []Branch
	Functions []Function

	index      *source.LineIndex
	normalizer OffsetNormalizer
}

// NewScript indexes text and returns a script with every line count at zero.
func NewScript(path, text string, kind ModuleKind, normalizer OffsetNormalizer) *Script {
	return &Script{
		Path:       path,
		Kind:       kind,
		index:      source.NewLineIndex(text),
		normalizer: normalizer,
	}
}

// Lines returns the script lines.
func (s *Script) Lines() []*source.Line {
	return s.index.Lines()
}

// EOF returns the length of the source text in UTF-16 code units.
func (s *Script) EOF() int {
	return s.index.EOF()
}

// Index returns the line index of the source text.
func (s *Script) Index() *source.LineIndex {
	return s.index
}

// ApplyCoverage folds V8 function coverage into the script. Offsets are taken as reported by
// the engine and normalized here. Ranges are applied in input order, so a later range
// overrides the count an earlier one wrote to the same line.
//
// A range that overlaps no line is ignored. A block range is recorded as a Branch; otherwise
// a named function range is recorded as a Function. A line count is only written when the
// range covers the whole line: one arm of `a ? b : c` must not reset the line.
func (s *Script) ApplyCoverage(functions []model.FunctionCoverage) {
	lines := s.index.Lines()
	for _, fn := range functions {
		for _, raw := range fn.Ranges {
			r, _ := s.normalizer.Normalize(s.Kind, s.index.EOF(), raw)
			first, last, ok := s.index.Overlapping(r.StartOffset, r.EndOffset)
			if !ok {
				continue
			}

			sp := span{StartLine: first, StartOffset: r.StartOffset, EndLine: last, EndOffset: r.EndOffset}
			if fn.IsBlockCoverage {
				s.Branches = append(s.Branches, Branch{span: sp, Count: r.Count})
			} else if fn.FunctionName != "" {
				s.Functions = append(s.Functions, Function{span: sp, Name: fn.FunctionName, Count: r.Count})
			}

			for _, line := range lines[first : last+1] {
				if r.StartOffset <= line.StartOffset && r.EndOffset >= line.EndOffset {
					line.Count = r.Count
				}
			}
		}
	}
}

// statementLines returns the lines reported as statements. The empty line that follows a
// terminating newline holds no code and is left out.
func (s *Script) statementLines() []*source.Line {
	lines := s.index.Lines()
	if n := len(lines); n > 1 && lines[n-1].Length() == 0 {
		return lines[:n-1]
	}
	return lines
}

// ToFileCoverage serializes the script. Ids are assigned in discovery order: lines in source
// order, branches and functions in the order ApplyCoverage recorded them.
func (s *Script) ToFileCoverage() *model.FileCoverage {
	lines := s.index.Lines()
	fc := model.NewFileCoverage(s.Path)
	for _, line := range s.statementLines() {
		fc.AddStatement(line.Location(), line.Count)
	}
	for _, b := range s.Branches {
		fc.AddBranch(b.mapping(lines), []int{b.Count})
	}
	for _, f := range s.Functions {
		fc.AddFunction(f.mapping(lines), f.Count)
	}
	return fc
}
