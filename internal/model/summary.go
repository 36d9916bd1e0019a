package model

import "math"

// Counter holds covered and total counts for one coverage category.
type Counter struct {
	Covered int
	Total   int
}

// Percent returns the covered percentage, or NaN when there is nothing to cover.
func (c Counter) Percent() float64 {
	if c.Total == 0 {
		return math.NaN()
	}
	return float64(c.Covered) * 100 / float64(c.Total)
}

func (c *Counter) add(other Counter) {
	c.Covered += other.Covered
	c.Total += other.Total
}

// CoverageSummary aggregates the covered/total counts of a file or a whole report.
type CoverageSummary struct {
	Statements Counter
	Branches   Counter
	Functions  Counter
	Lines      Counter
}

// Add accumulates other into s.
func (s *CoverageSummary) Add(other CoverageSummary) {
	s.Statements.add(other.Statements)
	s.Branches.add(other.Branches)
	s.Functions.add(other.Functions)
	s.Lines.add(other.Lines)
}

// Summary computes the coverage summary of a file. Branch arms are counted individually; a
// line is covered when every statement starting on it was executed at least once.
func (fc *FileCoverage) Summary() CoverageSummary {
	var s CoverageSummary

	lineHits := make(map[int]int)
	for id, loc := range fc.StatementMap {
		count := fc.S[id]
		s.Statements.Total++
		if count > 0 {
			s.Statements.Covered++
		}
		prev, seen := lineHits[loc.Start.Line]
		if !seen || count < prev {
			lineHits[loc.Start.Line] = count
		}
	}
	for _, hits := range lineHits {
		s.Lines.Total++
		if hits > 0 {
			s.Lines.Covered++
		}
	}

	for id := range fc.FnMap {
		s.Functions.Total++
		if fc.F[id] > 0 {
			s.Functions.Covered++
		}
	}

	for id := range fc.BranchMap {
		for _, count := range fc.B[id] {
			s.Branches.Total++
			if count > 0 {
				s.Branches.Covered++
			}
		}
	}
	return s
}

// Summary aggregates the summaries of every file in the map.
func (cm CoverageMap) Summary() CoverageSummary {
	var total CoverageSummary
	for _, fc := range cm {
		total.Add(fc.Summary())
	}
	return total
}
