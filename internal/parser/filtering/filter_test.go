package filtering

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultFilter(t *testing.T) {
	testCases := []struct {
		name    string
		filters []string
		input   string
		want    bool
	}{
		{"no filters include everything", nil, "/app/a.js", true},
		{"include match", []string{"+/app/src/*"}, "/app/src/a.js", true},
		{"include miss", []string{"+/app/src/*"}, "/app/test/a.js", false},
		{"exclude wins", []string{"+/app/*", "-*node_modules*"}, "/app/node_modules/x/index.js", false},
		{"exclude only", []string{"-node:*"}, "/app/a.js", true},
		{"case insensitive", []string{"+*/SRC/*"}, "/app/src/a.js", true},
		{"single character wildcard", []string{"+/app/?.js"}, "/app/a.js", true},
		{"dots are literal", []string{"+*.js"}, "/app/ajs", false},
		{"blank entries are ignored", []string{" ", ""}, "/app/a.js", true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f, err := NewDefaultFilter(tc.filters)
			require.NoError(t, err)
			assert.Equal(t, tc.want, f.IsElementIncludedInReport(tc.input))
		})
	}
}

func TestDefaultFilter_OSIndependentSeparator(t *testing.T) {
	f, err := NewDefaultFilter([]string{"+*/src/*"}, true)
	require.NoError(t, err)
	assert.True(t, f.IsElementIncludedInReport(`C:\app\src\a.js`))
	assert.True(t, f.IsElementIncludedInReport("/app/src/a.js"))
}

func TestDefaultFilter_HasCustomFilters(t *testing.T) {
	f, err := NewDefaultFilter(nil)
	require.NoError(t, err)
	assert.False(t, f.HasCustomFilters())

	f, err = NewDefaultFilter([]string{"-*.test.js"})
	require.NoError(t, err)
	assert.True(t, f.HasCustomFilters())
}

func TestNewDefaultFilter_Invalid(t *testing.T) {
	_, err := NewDefaultFilter([]string{"src/*"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must start with '+' or '-'")
}
