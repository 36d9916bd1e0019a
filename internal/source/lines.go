// Package source indexes script text by line so that V8 offsets can be turned into
// line/column positions. Offsets and columns are UTF-16 code units, the unit V8 reports.
package source

import (
	"sort"
	"strings"

	"github.com/IgorBayerl/ReportGenerator/go_v8_converter/internal/model"
)

// Line is one newline-delimited segment of a script. [StartOffset, EndOffset) excludes the
// terminating newline. Count is the statement count assigned while applying coverage.
type Line struct {
	Number      int
	StartOffset int
	EndOffset   int
	Count       int
}

// Length returns the number of code units on the line.
func (l *Line) Length() int {
	return l.EndOffset - l.StartOffset
}

// Location returns the whole line as a location, from column 0 to its length.
func (l *Line) Location() model.Location {
	return model.Location{
		Start: model.Position{Line: l.Number, Column: 0},
		End:   model.Position{Line: l.Number, Column: l.Length()},
	}
}

// LineIndex is the ordered list of lines of a script.
type LineIndex struct {
	lines []*Line
	eof   int
}

// NewLineIndex scans text once and records every line. Lines are split on "\n" only; a
// carriage return stays part of the line it ends.
func NewLineIndex(text string) *LineIndex {
	idx := &LineIndex{}
	position := 0
	for i, lineText := range strings.Split(text, "\n") {
		length := UnitLen(lineText)
		idx.eof = position + length
		idx.lines = append(idx.lines, &Line{
			Number:      i + 1,
			StartOffset: position,
			EndOffset:   position + length,
		})
		position += length + 1
	}
	return idx
}

// Lines returns the lines in order. Index i holds line number i+1.
func (idx *LineIndex) Lines() []*Line {
	return idx.lines
}

// Len returns the number of lines.
func (idx *LineIndex) Len() int {
	return len(idx.lines)
}

// EOF returns the end offset of the last line, i.e. the length of the text.
func (idx *LineIndex) EOF() int {
	return idx.eof
}

// Overlapping returns the index range [first, last] of the lines intersecting
// [start, end], using start <= line.EndOffset && end >= line.StartOffset. ok is false when
// no line matches.
func (idx *LineIndex) Overlapping(start, end int) (first, last int, ok bool) {
	n := len(idx.lines)
	first = sort.Search(n, func(i int) bool { return idx.lines[i].EndOffset >= start })
	last = sort.Search(n, func(i int) bool { return idx.lines[i].StartOffset > end }) - 1
	if first >= n || last < 0 || first > last {
		return 0, 0, false
	}
	return first, last, true
}

// LineAt returns the index of the line holding offset. Offsets are clamped to [0, EOF].
// An offset on a newline belongs to the line the newline ends.
func (idx *LineIndex) LineAt(offset int) int {
	offset = clamp(offset, 0, idx.eof)
	lo, count := 0, len(idx.lines)
	for count > 0 {
		step := count / 2
		i := lo + step
		if idx.lines[i].StartOffset <= offset {
			lo = i + 1
			count -= step + 1
		} else {
			count = step
		}
	}
	return lo - 1
}

// Locate converts an offset to a 1-based line and 0-based column.
func (idx *LineIndex) Locate(offset int) model.Position {
	offset = clamp(offset, 0, idx.eof)
	line := idx.lines[idx.LineAt(offset)]
	return model.Position{Line: line.Number, Column: offset - line.StartOffset}
}

// Span converts [start, end) into a location.
func (idx *LineIndex) Span(start, end int) model.Location {
	return model.Location{Start: idx.Locate(start), End: idx.Locate(end)}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
