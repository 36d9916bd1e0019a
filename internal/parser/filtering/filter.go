package filtering

import (
	"fmt"
	"regexp"
	"strings"
)

// IFilter decides which scripts take part in a conversion.
type IFilter interface {
	IsElementIncludedInReport(name string) bool
	HasCustomFilters() bool
}

// DefaultFilter matches names against include (+) and exclude (-) wildcard patterns.
// Exclusions win over inclusions. Without include patterns every name is included.
type DefaultFilter struct {
	includeFilters []*regexp.Regexp
	excludeFilters []*regexp.Regexp
	hasCustom      bool
}

// NewDefaultFilter compiles filters such as "+*/src/*" or "-*node_modules*". '*' matches any
// run of characters and '?' a single one; matching is case-insensitive and anchored. When
// osIndependentPathSeparator is set, '/' and '\' in a pattern match either separator.
func NewDefaultFilter(filters []string, osIndependentPathSeparator ...bool) (IFilter, error) {
	anySeparator := len(osIndependentPathSeparator) > 0 && osIndependentPathSeparator[0]

	df := &DefaultFilter{}
	var errs []string
	for _, f := range filters {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		re, err := createFilterRegex(f, anySeparator)
		if err != nil {
			errs = append(errs, err.Error())
			continue
		}
		if f[0] == '+' {
			df.includeFilters = append(df.includeFilters, re)
		} else {
			df.excludeFilters = append(df.excludeFilters, re)
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("error creating default filter: %s", strings.Join(errs, "; "))
	}

	df.hasCustom = len(df.includeFilters) > 0 || len(df.excludeFilters) > 0
	return df, nil
}

// IsElementIncludedInReport checks if the given name matches the filter rules.
func (df *DefaultFilter) IsElementIncludedInReport(name string) bool {
	for _, re := range df.excludeFilters {
		if re.MatchString(name) {
			return false
		}
	}
	if len(df.includeFilters) == 0 {
		return true
	}
	for _, re := range df.includeFilters {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}

// HasCustomFilters returns true if any include or exclude filters were specified.
func (df *DefaultFilter) HasCustomFilters() bool {
	return df.hasCustom
}

func createFilterRegex(filter string, anySeparator bool) (*regexp.Regexp, error) {
	if filter[0] != '+' && filter[0] != '-' {
		return nil, fmt.Errorf("filter '%s' must start with '+' or '-'", filter)
	}

	var b strings.Builder
	b.WriteString("(?i)^")
	for _, r := range filter[1:] {
		switch {
		case r == '*':
			b.WriteString(".*")
		case r == '?':
			b.WriteString(".")
		case anySeparator && (r == '/' || r == '\\'):
			b.WriteString(`[/\\]`)
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString("$")

	re, err := regexp.Compile(b.String())
	if err != nil {
		return nil, fmt.Errorf("invalid filter '%s': %v", filter, err)
	}
	return re, nil
}
