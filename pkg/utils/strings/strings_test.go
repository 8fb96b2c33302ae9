package strings_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	kstrings "github.com/taskboard/taskboard/pkg/utils/strings"
)

func TestTrimPrefixAll(t *testing.T) {
	for _, testcase := range []struct {
		s, prefix, then string
	}{
		{s: "//api/users", prefix: "/", then: "api/users"},
		{s: "aaabbbccc", prefix: "aaab", then: "bbccc"},
		{s: "aaabbbccc", prefix: "x", then: "aaabbbccc"},
		{s: "abc", prefix: "", then: "abc"},
	} {
		if got := kstrings.TrimPrefixAll(testcase.s, testcase.prefix); got != testcase.then {
			t.Errorf("TrimPrefixAll(%q, %q) = %q, want %q", testcase.s, testcase.prefix, got, testcase.then)
		}
	}
}

func TestSupplySuffix(t *testing.T) {
	if got := kstrings.SupplySuffix("/api", "/"); got != "/api/" {
		t.Errorf("got %q", got)
	}
	if got := kstrings.SupplySuffix("/api/", "/"); got != "/api/" {
		t.Errorf("got %q", got)
	}
}

func TestSplitIfNotEmpty(t *testing.T) {
	for in, want := range map[string][]string{
		"":                   {},
		"COBOL":              {"COBOL"},
		" COBOL , legado,, ": {"COBOL", "legado"},
		"banco de dados,SQL": {"banco de dados", "SQL"},
	} {
		if diff := cmp.Diff(want, kstrings.SplitIfNotEmpty(in, ",")); diff != "" {
			t.Errorf("%q (-want +got):\n%s", in, diff)
		}
	}
}
