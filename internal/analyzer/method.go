package analyzer

import (
	"github.com/IgorBayerl/ReportGenerator/go_v8_converter/internal/model"
	"github.com/IgorBayerl/ReportGenerator/go_v8_converter/internal/source"
)

// span is a normalized offset range anchored to the lines it overlaps. StartLine and EndLine
// are indices into the script's line list; coordinates are resolved only when serializing.
type span struct {
	StartLine   int
	StartOffset int
	EndLine     int
	EndOffset   int
}

// location resolves the span against the script lines. Columns are measured from the start
// of the first and last overlapping line respectively.
func (s span) location(lines []*source.Line) model.Location {
	first, last := lines[s.StartLine], lines[s.EndLine]
	return model.Location{
		Start: model.Position{Line: first.Number, Column: s.StartOffset - first.StartOffset},
		End:   model.Position{Line: last.Number, Column: s.EndOffset - last.StartOffset},
	}
}

// Function is a named, non-block range recorded by ApplyCoverage.
type Function struct {
	span
	Name  string
	Count int
}

func (f Function) mapping(lines []*source.Line) model.FunctionMapping {
	loc := f.location(lines)
	return model.FunctionMapping{
		Name: f.Name,
		Decl: loc,
		Loc:  loc,
		Line: lines[f.StartLine].Number,
	}
}

// Branch is a block coverage range recorded by ApplyCoverage. It has a single arm.
type Branch struct {
	span
	Count int
}

func (b Branch) mapping(lines []*source.Line) model.BranchMapping {
	loc := b.location(lines)
	return model.BranchMapping{
		Type:      model.BranchTypeBlock,
		Line:      lines[b.StartLine].Number,
		Loc:       loc,
		Locations: []model.Location{loc},
	}
}
