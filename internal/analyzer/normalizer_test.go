package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IgorBayerl/ReportGenerator/go_v8_converter/internal/model"
)

func TestParseScriptURL(t *testing.T) {
	testCases := []struct {
		name string
		url  string
		want ScriptURL
	}{
		{"file url is an ES module", "file:///srv/app/main.mjs", ScriptURL{Path: "/srv/app/main.mjs", Kind: ESModule, Loadable: true}},
		{"file url is percent-decoded", "file:///srv/my%20app/a.js", ScriptURL{Path: "/srv/my app/a.js", Kind: ESModule, Loadable: true}},
		{"file url with a drive letter", "file:///C:/app/main.mjs", ScriptURL{Path: "C:/app/main.mjs", Kind: ESModule, Loadable: true}},
		{"plain path is CommonJS", "/srv/app/lib.js", ScriptURL{Path: "/srv/app/lib.js", Kind: CommonJS, Loadable: true}},
		{"windows path is CommonJS", `C:\app\lib.js`, ScriptURL{Path: `C:\app\lib.js`, Kind: CommonJS, Loadable: true}},
		{"relative path", "lib/a.js", ScriptURL{Path: "lib/a.js", Kind: CommonJS, Loadable: true}},
		{"node builtin", "node:internal/fs/utils", ScriptURL{Path: "node:internal/fs/utils", Kind: CommonJS, Loadable: false}},
		{"remote script", "https://cdn.example.com/x.js", ScriptURL{Path: "https://cdn.example.com/x.js", Kind: CommonJS, Loadable: false}},
		{"vm script", "evalmachine.<anonymous>", ScriptURL{Path: "evalmachine.<anonymous>", Kind: CommonJS, Loadable: false}},
		{"no url", "", ScriptURL{Kind: CommonJS, Loadable: false}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseScriptURL(tc.url))
		})
	}
}

func TestNewOffsetNormalizer(t *testing.T) {
	assert.Equal(t, 62, len(DefaultPrologue))
	assert.Equal(t, 62, NewOffsetNormalizer(-1).PrologueLength)
	assert.Equal(t, 0, NewOffsetNormalizer(0).PrologueLength)
	assert.Equal(t, 10, NewOffsetNormalizer(10).PrologueLength)
}

func TestNormalize(t *testing.T) {
	n := NewOffsetNormalizer(62)
	const eof = 29

	testCases := []struct {
		name   string
		kind   ModuleKind
		in     model.CoverageRange
		want   model.CoverageRange
		wantOK bool
	}{
		{"esm is not shifted", ESModule, model.CoverageRange{StartOffset: 3, EndOffset: 9, Count: 2}, model.CoverageRange{StartOffset: 3, EndOffset: 9, Count: 2}, true},
		{"cjs is shifted by the prologue", CommonJS, model.CoverageRange{StartOffset: 65, EndOffset: 71, Count: 2}, model.CoverageRange{StartOffset: 3, EndOffset: 9, Count: 2}, true},
		{"wrapped module is clamped", CommonJS, model.CoverageRange{StartOffset: 0, EndOffset: 62 + eof + 4, Count: 1}, model.CoverageRange{StartOffset: 0, EndOffset: eof, Count: 1}, true},
		{"inside the prologue", CommonJS, model.CoverageRange{StartOffset: 0, EndOffset: 10, Count: 1}, model.CoverageRange{StartOffset: 0, EndOffset: -52, Count: 1}, false},
		{"past eof", ESModule, model.CoverageRange{StartOffset: 40, EndOffset: 50, Count: 1}, model.CoverageRange{StartOffset: 40, EndOffset: eof, Count: 1}, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := n.Normalize(tc.kind, eof, tc.in)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNormalize_WrapperLengthDoesNotChangeEOF(t *testing.T) {
	const text = "function f(){return 1;}\nf();\n"
	eof := NewScript("a.js", text, CommonJS, NewOffsetNormalizer(-1)).EOF()

	for _, prologue := range []int{0, 17, 62, 300} {
		n := NewOffsetNormalizer(prologue)
		whole := model.CoverageRange{StartOffset: 0, EndOffset: prologue + eof + len(DefaultEpilogue), Count: 1}
		got, ok := n.Normalize(CommonJS, eof, whole)
		assert.True(t, ok)
		assert.Equal(t, 0, got.StartOffset, "prologue %d", prologue)
		assert.Equal(t, len(text), got.EndOffset, "prologue %d", prologue)
	}
}

func TestNormalizeFunctions_DoesNotMutateInput(t *testing.T) {
	in := []model.FunctionCoverage{{
		FunctionName: "f",
		Ranges:       []model.CoverageRange{{StartOffset: 70, EndOffset: 80, Count: 1}},
	}}
	out, err := NewOffsetNormalizer(62).NormalizeFunctions(CommonJS, 100, in)
	require.NoError(t, err)

	assert.Equal(t, 70, in[0].Ranges[0].StartOffset)
	assert.Equal(t, model.CoverageRange{StartOffset: 8, EndOffset: 18, Count: 1}, out[0].Ranges[0])
}

func TestNormalizeFunctions_DropsRangesLeftEmpty(t *testing.T) {
	// f(true) wrapped by Node.js: 44 units of source, 62 of prologue and 4 of epilogue.
	in := []model.FunctionCoverage{
		{FunctionName: "", Ranges: []model.CoverageRange{{StartOffset: 0, EndOffset: 110, Count: 1}, {StartOffset: 107, EndOffset: 110, Count: 0}}},
	}
	out, err := NewOffsetNormalizer(-1).NormalizeFunctions(CommonJS, 44, in)
	require.NoError(t, err)
	assert.Equal(t, []model.CoverageRange{{StartOffset: 0, EndOffset: 44, Count: 1}}, out[0].Ranges)
}

func TestNormalizeFunctions_FunctionOutsideSource(t *testing.T) {
	in := []model.FunctionCoverage{
		{FunctionName: "f", Ranges: []model.CoverageRange{{StartOffset: 62, EndOffset: 96, Count: 1}}},
	}
	_, err := NewOffsetNormalizer(200).NormalizeFunctions(CommonJS, 44, in)
	require.ErrorIs(t, err, model.ErrMalformedInput)
	assert.Contains(t, err.Error(), `function "f" at [62,96)x1`)
}
