package filereader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IgorBayerl/ReportGenerator/go_v8_converter/internal/filesystem"
)

func TestDecodeSource(t *testing.T) {
	testCases := []struct {
		name  string
		input []byte
		want  string
	}{
		{"plain utf-8", []byte("let é = 1;\n"), "let é = 1;\n"},
		{"utf-8 bom is stripped", append([]byte{0xEF, 0xBB, 0xBF}, "x();"...), "x();"},
		{"utf-16le with bom", []byte{0xFF, 0xFE, 'x', 0, '(', 0, ')', 0, ';', 0}, "x();"},
		{"utf-16be with bom", []byte{0xFE, 0xFF, 0, 'x', 0, '(', 0, ')', 0, ';'}, "x();"},
		{"empty", nil, ""},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DecodeSource(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSourceReader_ReadSource(t *testing.T) {
	fsys := filesystem.MapFS{
		"/repo/src/main.js": "\xEF\xBB\xBFmain();\n",
	}
	reader := NewSourceReader(fsys, []string{"/repo"})

	resolved, text, err := reader.ReadSource("/ci/workspace/src/main.js")
	require.NoError(t, err)
	assert.Equal(t, "/repo/src/main.js", resolved)
	assert.Equal(t, "main();\n", text)

	_, _, err = reader.ReadSource("/ci/workspace/src/missing.js")
	assert.Error(t, err)
}
