package urlcanon

import (
	"fmt"
	"testing"

	"github.com/pmezard/go-difflib/difflib"
)

// goldenCases exercises a wide scenario table in one pass, grounded on
// url_canon_unittest.cc's ExpectedComponentCase tables. On a mismatch the
// failure message is a unified diff of every case rather than a single
// got/want pair, the way opt_tester.go in the pack renders test-plan
// mismatches for a whole file at once.
var goldenCases = []struct {
	input string
	want  string
}{
	{"HTTP://EXAMPLE.COM/Path", "http://example.com/Path"},
	{"http://example.com", "http://example.com/"},
	{"http://example.com:80/", "http://example.com/"},
	{"http://example.com/a/b/../../c", "http://example.com/c"},
	{"http://example.com/a/./b", "http://example.com/a/b"},
	{"http://example.com/%7euser", "http://example.com/~user"},
	{"http://example.com/a b", "http://example.com/a%20b"},
	{"http://EXAMPLE.com:8080/x?y=1#z", "http://example.com:8080/x?y=1#z"},
	{"ftp://example.com:21/", "ftp://example.com/"},
	{"file:///C:/Users/Bob", "file:///C:/Users/Bob"},
	{"mailto:Bob@Example.com", "mailto:Bob@Example.com"},
}

func TestCanonicalizeGoldenTable(t *testing.T) {
	var got, want []string
	for _, tc := range goldenCases {
		out, _, err := Canonicalize([]byte(tc.input))
		line := fmt.Sprintf("%s -> %s", tc.input, out)
		if err != nil {
			line = fmt.Sprintf("%s -> ERROR: %v", tc.input, err)
		}
		got = append(got, line+"\n")
		want = append(want, fmt.Sprintf("%s -> %s\n", tc.input, tc.want))
	}
	gotJoined, wantJoined := joinLines(got), joinLines(want)
	if gotJoined == wantJoined {
		return
	}
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(wantJoined),
		B:        difflib.SplitLines(gotJoined),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	}
	text, _ := difflib.GetUnifiedDiffString(diff)
	t.Errorf("golden table mismatch:\n%s", text)
}

func joinLines(lines []string) string {
	var out string
	for _, l := range lines {
		out += l
	}
	return out
}
