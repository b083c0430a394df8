package urlcanon

import "testing"

func TestCanonicalizeBasic(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"HTTP://Example.COM/", "http://example.com/"},
		{"http:foo.com", "http://foo.com/"},
		{"http://example.com", "http://example.com/"},
		{"http://example.com:80/", "http://example.com/"},
		{"https://example.com:443/x", "https://example.com/x"},
		{"http://example.com:8080/x", "http://example.com:8080/x"},
		{"http://a b/", "http://a%20b/"},
	}
	for _, tt := range tests {
		out, _, err := Canonicalize([]byte(tt.input))
		if err != nil {
			t.Errorf("Canonicalize(%q): unexpected error %v", tt.input, err)
			continue
		}
		if got := string(out); got != tt.want {
			t.Errorf("Canonicalize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestCanonicalizeIsIdempotent(t *testing.T) {
	inputs := []string{
		"HTTP://Example.COM:80/a/../b/./c?x=1&y=2#Frag",
		"http://[::1]:8080/x",
		"http://1.2.3.4/",
		"file:///C:/Windows/",
		"mailto:someone@example.com",
	}
	for _, in := range inputs {
		once, _, err := Canonicalize([]byte(in))
		if err != nil {
			t.Fatalf("Canonicalize(%q): %v", in, err)
		}
		twice, _, err := Canonicalize(once)
		if err != nil {
			t.Fatalf("Canonicalize(%q) second pass: %v", in, err)
		}
		if string(once) != string(twice) {
			t.Errorf("Canonicalize not idempotent: %q -> %q -> %q", in, once, twice)
		}
	}
}

func TestCanonicalizeFileWindowsDriveLetter(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"file:///c|/foo", "file:///C:/foo"},
		{"file:///c:/foo", "file:///C:/foo"},
		{"file:///C:/Users/Bob", "file:///C:/Users/Bob"},
		{"file:///d|/a/../b", "file:///D:/b"},
	}
	for _, tt := range tests {
		out, _, err := Canonicalize([]byte(tt.input))
		if err != nil {
			t.Errorf("Canonicalize(%q): unexpected error %v", tt.input, err)
			continue
		}
		if got := string(out); got != tt.want {
			t.Errorf("Canonicalize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestCanonicalizeOpaqueScheme(t *testing.T) {
	out, parsed, err := Canonicalize([]byte("mailto:Bob@Example.com"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed.Host.IsValid() {
		t.Fatal("opaque scheme should have no host")
	}
	if got := string(out); got != "mailto:Bob@Example.com" {
		t.Errorf("got %q", got)
	}
}

func TestCanonicalizeIPv4Variants(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"http://0x1.0x2.0x3.0x4/", "http://1.2.3.4/"},
		{"http://0300.0250.0.1/", "http://192.168.0.1/"},
		{"http://12345678/", "http://0.188.97.78/"},
	}
	for _, tt := range tests {
		out, _, err := Canonicalize([]byte(tt.input))
		if err != nil {
			t.Errorf("Canonicalize(%q): %v", tt.input, err)
			continue
		}
		if got := string(out); got != tt.want {
			t.Errorf("Canonicalize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

// TestReplaceComponents_SchemeToAboutQuirk documents the intentional
// dispatch-on-output-scheme behavior (DESIGN.md open question 2): replacing
// an authority-bearing URL's scheme with a non-standard scheme makes the
// result canonicalize through the opaque path pipeline, which has no
// concept of an authority, so the original host text is carried into the
// output as part of the opaque path rather than as a host component.
func TestReplaceComponents_SchemeToAboutQuirk(t *testing.T) {
	orig, parsed, err := Canonicalize([]byte("http://google.com/"))
	if err != nil {
		t.Fatalf("canonicalize: %v", err)
	}
	out, _, err := ReplaceComponents(orig, parsed, Replacements{
		Scheme: SetValue("about"),
	})
	if err != nil {
		t.Fatalf("ReplaceComponents: %v", err)
	}
	// "about" is not a registered standard scheme, so the rebuilt
	// "about://google.com/" input dispatches through the opaque path
	// pipeline on re-canonicalization: everything after "about:" becomes
	// one opaque path blob, "//google.com/", not a host.
	if got, want := string(out), "about://google.com/"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestSchemeModeDispatchFollowsRegisteredStandardScheme(t *testing.T) {
	AddStandardScheme("zz-test-scheme")
	out, parsed, err := Canonicalize([]byte("zz-test-scheme://Host.Example/Path"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !parsed.Host.IsValid() {
		t.Fatal("newly-registered standard scheme should parse an authority")
	}
	if got := string(parsed.Host.Slice(out)); got != "host.example" {
		t.Errorf("host = %q, want host.example", got)
	}
}
