package analyzer

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/IgorBayerl/ReportGenerator/go_v8_converter/internal/model"
)

// ModuleKind tells how the host runtime loaded a script.
type ModuleKind int

const (
	// CommonJS scripts are executed inside the runtime's module wrapper.
	CommonJS ModuleKind = iota
	// ESModule scripts are executed as written.
	ESModule
)

func (k ModuleKind) String() string {
	if k == ESModule {
		return "esm"
	}
	return "cjs"
}

// Node.js module wrapper around CommonJS sources.
const (
	DefaultPrologue = "(function (exports, require, module, __filename, __dirname) { "
	DefaultEpilogue = "\n});"
)

// ScriptURL is the parsed url of a V8 ScriptCoverage.
type ScriptURL struct {
	Path     string
	Kind     ModuleKind
	Loadable bool
}

// ParseScriptURL derives the source path and module kind from a script url. file:// urls are
// ECMAScript modules; plain paths are CommonJS scripts. Urls with any other scheme (node:,
// http:, evalmachine.<anonymous>, ...) or no url at all cannot be read from disk.
func ParseScriptURL(raw string) ScriptURL {
	if strings.HasPrefix(raw, "file://") {
		path := strings.TrimPrefix(raw, "file://")
		if u, err := url.Parse(raw); err == nil && u.Path != "" {
			path = u.Path
		}
		if isDrivePath(path) {
			// file:///C:/dir/x.js
			path = path[1:]
		}
		return ScriptURL{Path: path, Kind: ESModule, Loadable: true}
	}
	if raw == "" || hasScheme(raw) {
		return ScriptURL{Path: raw, Kind: CommonJS, Loadable: false}
	}
	return ScriptURL{Path: raw, Kind: CommonJS, Loadable: true}
}

func isDrivePath(path string) bool {
	if len(path) < 3 || path[0] != '/' || path[2] != ':' {
		return false
	}
	c := path[1]
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// hasScheme reports whether raw starts with a url scheme. Windows drive letters ("C:\") are
// paths, not schemes.
func hasScheme(raw string) bool {
	if strings.HasPrefix(raw, "evalmachine.") {
		return true
	}
	i := strings.IndexByte(raw, ':')
	if i <= 1 {
		return false
	}
	for _, c := range raw[:i] {
		isAlpha := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
		if !isAlpha && !(c >= '0' && c <= '9') && c != '+' && c != '-' && c != '.' {
			return false
		}
	}
	return true
}

// OffsetNormalizer maps V8 offsets back onto the raw source text.
type OffsetNormalizer struct {
	// PrologueLength is the length, in UTF-16 units, of the wrapper text the runtime prepends
	// to CommonJS sources.
	PrologueLength int
}

// NewOffsetNormalizer returns a normalizer for a wrapper prologue of the given length. A
// negative length selects the Node.js default.
func NewOffsetNormalizer(prologueLength int) OffsetNormalizer {
	if prologueLength < 0 {
		prologueLength = len(DefaultPrologue)
	}
	return OffsetNormalizer{PrologueLength: prologueLength}
}

// Shift returns the offset correction for a module kind.
func (n OffsetNormalizer) Shift(kind ModuleKind) int {
	if kind == ESModule {
		return 0
	}
	return n.PrologueLength
}

// Normalize shifts a range by the wrapper prologue and clips it to [0, eof]: the start is
// raised to 0 and the end lowered to eof. ok is false when the range lies entirely outside
// the source text.
func (n OffsetNormalizer) Normalize(kind ModuleKind, eof int, r model.CoverageRange) (model.CoverageRange, bool) {
	shift := n.Shift(kind)
	out := model.CoverageRange{
		StartOffset: max(0, r.StartOffset-shift),
		EndOffset:   min(eof, r.EndOffset-shift),
		Count:       r.Count,
	}
	return out, out.StartOffset <= eof && out.EndOffset >= 0
}

// NormalizeFunctions returns a normalized copy of a function list. Block ranges left empty
// by normalization, such as ranges inside the wrapper epilogue, are dropped. A function whose
// own span lies outside the source means the wrapper prologue length does not match the
// runtime, and is reported as malformed input with its original offsets.
func (n OffsetNormalizer) NormalizeFunctions(kind ModuleKind, eof int, functions []model.FunctionCoverage) ([]model.FunctionCoverage, error) {
	out := model.CloneFunctions(functions)
	for i := range out {
		ranges := out[i].Ranges[:0]
		for j, raw := range functions[i].Ranges {
			r, ok := n.Normalize(kind, eof, raw)
			if ok && r.StartOffset < r.EndOffset {
				ranges = append(ranges, r)
				continue
			}
			if j == 0 {
				return nil, fmt.Errorf("%w: function %q at %s lies outside the %d units of source after removing a %d unit prologue",
					model.ErrMalformedInput, functions[i].FunctionName, raw, eof, n.Shift(kind))
			}
		}
		out[i].Ranges = ranges
	}
	return out, nil
}
