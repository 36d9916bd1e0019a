package model

// CoverageRange is a half-open [StartOffset, EndOffset) span of source text with the number
// of times it was executed. Offsets are UTF-16 code units, as reported by V8.
type CoverageRange struct {
	StartOffset int `json:"startOffset"`
	EndOffset   int `json:"endOffset"`
	Count       int `json:"count"`
}

// FunctionCoverage is the coverage V8 reports for a single function. Ranges[0] is the
// function's own span and encloses every other range in the list.
type FunctionCoverage struct {
	FunctionName    string          `json:"functionName"`
	Ranges          []CoverageRange `json:"ranges"`
	IsBlockCoverage bool            `json:"isBlockCoverage"`
}

// ScriptCoverage is the coverage of one top-level script.
// Source is optional; fixture dumps embed it, NODE_V8_COVERAGE files do not.
type ScriptCoverage struct {
	ScriptID  string             `json:"scriptId,omitempty"`
	URL       string             `json:"url"`
	Source    *string            `json:"source,omitempty"`
	Functions []FunctionCoverage `json:"functions"`
}

// ProcessCoverage is the document written by NODE_V8_COVERAGE and returned by the
// Profiler.takePreciseCoverage DevTools command.
type ProcessCoverage struct {
	Result    []ScriptCoverage `json:"result"`
	Timestamp float64          `json:"timestamp,omitempty"`
}

// CloneFunctions returns a deep copy of the function list.
func CloneFunctions(functions []FunctionCoverage) []FunctionCoverage {
	out := make([]FunctionCoverage, len(functions))
	for i, fn := range functions {
		out[i] = FunctionCoverage{
			FunctionName:    fn.FunctionName,
			IsBlockCoverage: fn.IsBlockCoverage,
			Ranges:          append([]CoverageRange(nil), fn.Ranges...),
		}
	}
	return out
}
