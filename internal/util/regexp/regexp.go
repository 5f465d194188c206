package regexp

import "regexp"

// Match pairs a pattern with the value it stands for.
type Match[V any] struct {
	Regexp *regexp.Regexp
	Value  V
}

// MatchesAnyRegexp returns the first match whose pattern matches s.
func MatchesAnyRegexp[V any](r []*Match[V], s string) (*Match[V], bool) {
	for _, m := range r {
		if m.Regexp.MatchString(s) {
			return m, true
		}
	}

	return nil, false
}

// ExtractFields returns the named groups of the first match of the pattern
// in s. Groups that did not participate in the match are left out.
func (m *Match[V]) ExtractFields(s string) map[string]string {
	return ExtractFields(s, m.Regexp)
}

func ExtractFields(s string, r *regexp.Regexp) map[string]string {
	match := r.FindStringSubmatchIndex(s)
	result := make(map[string]string)
	if match == nil {
		return result
	}

	for i, name := range r.SubexpNames() {
		start, end := match[2*i], match[2*i+1]
		if i != 0 && name != "" && start >= 0 {
			result[name] = s[start:end]
		}
	}

	return result
}
