package strings

import (
	"strings"
)

// TrimPrefixAll removes repeated prefixes from s.
//
//	TrimPrefixAll("//api/users", "/")  // -> "api/users"
func TrimPrefixAll(s, prefix string) string {
	if prefix == "" {
		return s
	}
	for strings.HasPrefix(s, prefix) {
		s = s[len(prefix):]
	}
	return s
}

// SupplySuffix appends suffix to text unless text has it already.
func SupplySuffix(text, suffix string) string {
	if strings.HasSuffix(text, suffix) {
		return text
	}
	return text + suffix
}

// SplitIfNotEmpty splits s by sep, trimming spaces and dropping empty items.
//
// For empty s, it returns an empty slice (not nil).
func SplitIfNotEmpty(s string, sep string) []string {
	ret := []string{}
	for _, item := range strings.Split(s, sep) {
		if item = strings.TrimSpace(item); item != "" {
			ret = append(ret, item)
		}
	}
	return ret
}
