package model

import (
	"errors"
	"fmt"
)

// ErrMalformedInput marks a profiler report that breaks the structural guarantees of V8
// coverage. Reconstruction of the affected file is aborted.
var ErrMalformedInput = errors.New("malformed coverage input")

// ValidateScript checks every function of a script coverage record. The first error found is
// returned, wrapped around ErrMalformedInput.
func ValidateScript(script ScriptCoverage) error {
	for i, fn := range script.Functions {
		if err := ValidateFunction(fn); err != nil {
			return fmt.Errorf("script %q, function #%d (%q): %w", script.URL, i, fn.FunctionName, err)
		}
	}
	return nil
}

// ValidateFunction checks that a function's ranges are non-empty, well-formed and nested:
// ranges[0] encloses all others, and for any A listed before B, either A and B are disjoint
// or B is contained in A.
func ValidateFunction(fn FunctionCoverage) error {
	if len(fn.Ranges) == 0 {
		return fmt.Errorf("%w: empty range list", ErrMalformedInput)
	}
	for i, r := range fn.Ranges {
		if r.StartOffset < 0 || r.Count < 0 {
			return fmt.Errorf("%w: range #%d %s has negative values", ErrMalformedInput, i, r)
		}
		if r.StartOffset >= r.EndOffset {
			return fmt.Errorf("%w: range #%d %s is empty or inverted", ErrMalformedInput, i, r)
		}
	}

	outer := fn.Ranges[0]
	for i := 1; i < len(fn.Ranges); i++ {
		b := fn.Ranges[i]
		if !outer.Contains(b) {
			return fmt.Errorf("%w: range #%d %s is not enclosed by %s", ErrMalformedInput, i, b, outer)
		}
		for j := 1; j < i; j++ {
			a := fn.Ranges[j]
			if !a.Disjoint(b) && !a.Contains(b) {
				return fmt.Errorf("%w: range #%d %s partially overlaps range #%d %s", ErrMalformedInput, i, b, j, a)
			}
		}
	}
	return nil
}

// Contains reports whether other lies within r.
func (r CoverageRange) Contains(other CoverageRange) bool {
	return r.StartOffset <= other.StartOffset && other.EndOffset <= r.EndOffset
}

// Disjoint reports whether r and other share no offset.
func (r CoverageRange) Disjoint(other CoverageRange) bool {
	return r.EndOffset <= other.StartOffset || other.EndOffset <= r.StartOffset
}

func (r CoverageRange) String() string {
	return fmt.Sprintf("[%d,%d)x%d", r.StartOffset, r.EndOffset, r.Count)
}
