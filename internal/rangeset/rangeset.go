// Package rangeset flattens the nested coverage ranges V8 reports for a function into a
// sorted, gap-free partition where every sub-interval carries one authoritative count.
package rangeset

import (
	"errors"
	"fmt"

	"github.com/IgorBayerl/ReportGenerator/go_v8_converter/internal/model"
)

var (
	// ErrEmptyRanges is returned when a RangeSet is built from no ranges.
	ErrEmptyRanges = errors.New("rangeset: no ranges")
	// ErrQueryRange is returned by Count for a span that is empty, lies outside the set or
	// straddles two partitions.
	ErrQueryRange = errors.New("rangeset: query range out of bounds")
)

// Range is an offset range with a count.
type Range = model.CoverageRange

// RangeSet is a partition of [splits[0], splits[n]); counts[i] applies to
// [splits[i], splits[i+1]).
type RangeSet struct {
	splits []int
	counts []int
}

// New builds a RangeSet from V8 coverage ranges. It assumes that ranges[0] contains every
// other range, that no range is empty, and that for any A listed before B, either A and B are
// disjoint or B is contained in A. Later ranges overwrite the counts of earlier ones.
func New(ranges []Range) (*RangeSet, error) {
	if len(ranges) == 0 {
		return nil, ErrEmptyRanges
	}

	first := ranges[0]
	splits := []int{first.StartOffset, first.EndOffset}
	counts := []int{first.Count}

	for _, r := range ranges[1:] {
		// The right boundary must be materialized first, otherwise the index found for the
		// left boundary is shifted by the insertion.
		rightIdx := binarySearch(splits, r.EndOffset)
		if splits[rightIdx] != r.EndOffset {
			splits = insert(splits, rightIdx+1, r.EndOffset)
			counts = insert(counts, rightIdx, counts[rightIdx])
		}
		leftIdx := binarySearch(splits, r.StartOffset)
		if splits[leftIdx] != r.StartOffset {
			leftIdx++
			splits = insert(splits, leftIdx, r.StartOffset)
			counts = insert(counts, leftIdx, r.Count)
		}
		counts[leftIdx] = r.Count
	}

	return &RangeSet{splits: splits, counts: counts}, nil
}

// Ranges returns the flattened ranges in increasing offset order.
func (rs *RangeSet) Ranges() []Range {
	result := make([]Range, len(rs.counts))
	for i, count := range rs.counts {
		result[i] = Range{StartOffset: rs.splits[i], EndOffset: rs.splits[i+1], Count: count}
	}
	return result
}

// StartOffset returns the first split.
func (rs *RangeSet) StartOffset() int {
	return rs.splits[0]
}

// EndOffset returns the last split.
func (rs *RangeSet) EndOffset() int {
	return rs.splits[len(rs.splits)-1]
}

// Count returns the count of the partition holding [start, end). The span must be non-empty,
// inside the set and must not cross a split.
func (rs *RangeSet) Count(start, end int) (int, error) {
	if start >= end {
		return 0, fmt.Errorf("%w: empty span [%d,%d)", ErrQueryRange, start, end)
	}
	if start < rs.StartOffset() || end > rs.EndOffset() {
		return 0, fmt.Errorf("%w: [%d,%d) outside [%d,%d)", ErrQueryRange, start, end, rs.StartOffset(), rs.EndOffset())
	}
	idx := binarySearch(rs.splits, start)
	if end > rs.splits[idx+1] {
		return 0, fmt.Errorf("%w: [%d,%d) straddles split %d", ErrQueryRange, start, end, rs.splits[idx+1])
	}
	return rs.counts[idx], nil
}

// binarySearch returns the largest index i such that array[i] <= value.
// array is sorted with at least two items and value >= array[0].
func binarySearch(array []int, value int) int {
	left, right := 0, len(array)-1
	if value >= array[right] {
		return right
	}
	for left+1 < right {
		mid := (left + right) / 2
		if array[mid] <= value {
			left = mid
		} else {
			right = mid
		}
	}
	return left
}

func insert(s []int, idx, value int) []int {
	s = append(s, 0)
	copy(s[idx+1:], s[idx:])
	s[idx] = value
	return s
}
