package urlcanon

import "testing"

func canonicalizeOrFatal(t *testing.T, raw string) ([]byte, Parsed) {
	t.Helper()
	out, parsed, err := Canonicalize([]byte(raw))
	if err != nil {
		t.Fatalf("Canonicalize(%q): %v", raw, err)
	}
	return out, parsed
}

func TestIsRelativeURL(t *testing.T) {
	base, baseParsed := canonicalizeOrFatal(t, "http://example.com/dir/page.html")
	tests := []struct {
		relative string
		want     bool
	}{
		{"2.html", true},
		{"/other.html", true},
		{"http://example.com/x", true},
		{"https://example.com/x", false},
		{"mailto:someone@example.com", false},
	}
	for _, tt := range tests {
		got, _ := IsRelativeURL(base, baseParsed, []byte(tt.relative))
		if got != tt.want {
			t.Errorf("IsRelativeURL(%q) = %v, want %v", tt.relative, got, tt.want)
		}
	}
}

func TestResolveRelativeURL(t *testing.T) {
	base, baseParsed := canonicalizeOrFatal(t, "http://example.com/dir/page.html?old=1")
	tests := []struct {
		relative string
		want     string
	}{
		{"2.html", "http://example.com/dir/2.html"},
		{"/root.html", "http://example.com/root.html"},
		{"../up.html", "http://example.com/up.html"},
		{"http://other.example/x", "http://other.example/x"},
		{"?new=2", "http://example.com/dir/page.html?new=2"},
		{"#frag", "http://example.com/dir/page.html?old=1#frag"},
		{"", "http://example.com/dir/page.html?old=1"},
		{"//other.example/y", "http://other.example/y"},
	}
	for _, tt := range tests {
		out, _, err := ResolveRelativeURL(base, baseParsed, []byte(tt.relative))
		if err != nil {
			t.Errorf("ResolveRelativeURL(%q): unexpected error %v", tt.relative, err)
			continue
		}
		if got := string(out); got != tt.want {
			t.Errorf("ResolveRelativeURL(%q) = %q, want %q", tt.relative, got, tt.want)
		}
	}
}

func TestResolveRelativeURLOpaqueBase(t *testing.T) {
	base, baseParsed := canonicalizeOrFatal(t, "data:blahblah")
	out, parsed, err := ResolveRelativeURL(base, baseParsed, []byte("file.html"))
	if err != ErrOpaqueBase {
		t.Fatalf("got %v, want ErrOpaqueBase", err)
	}
	if string(out) != "data:blahblah" {
		t.Errorf("ResolveRelativeURL opaque base: got output %q, want unchanged base %q", out, "data:blahblah")
	}
	if parsed != baseParsed {
		t.Errorf("ResolveRelativeURL opaque base: returned Parsed does not match baseParsed")
	}
}

func TestResolveRelativeURLKeepsUnrelatedAbsoluteURLUnchanged(t *testing.T) {
	base, baseParsed := canonicalizeOrFatal(t, "http://example.com/dir/page.html")
	out, _, err := ResolveRelativeURL(base, baseParsed, []byte("http://other.example/x?y=1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := string(out), "http://other.example/x?y=1"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
