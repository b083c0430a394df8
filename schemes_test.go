package urlcanon

import "testing"

func TestIsStandardSchemeSeeded(t *testing.T) {
	tests := []struct {
		scheme string
		want   bool
	}{
		{"http", true},
		{"HTTPS", true},
		{"file", true},
		{"ftp", true},
		{"gopher", true},
		{"mailto", false},
		{"about", false},
	}
	for _, tt := range tests {
		got := IsStandardScheme([]byte(tt.scheme))
		if got != tt.want {
			t.Errorf("IsStandardScheme(%q) = %v, want %v", tt.scheme, got, tt.want)
		}
	}
}

func TestAddStandardSchemeIsIdempotentAndCaseInsensitive(t *testing.T) {
	AddStandardScheme("MyCustomScheme")
	if !IsStandardScheme([]byte("mycustomscheme")) {
		t.Fatal("expected mycustomscheme to be standard after adding MyCustomScheme")
	}
	if !IsStandardScheme([]byte("MYCUSTOMSCHEME")) {
		t.Fatal("expected case-insensitive lookup to succeed")
	}
	AddStandardScheme("mycustomscheme") // idempotent re-add
	if !IsStandardScheme([]byte("mycustomscheme")) {
		t.Fatal("expected scheme to remain standard after idempotent re-add")
	}
}

func TestAddStandardSchemeEmptyIsNoop(t *testing.T) {
	s := newStandardSchemeSet("http")
	s.Add("")
	if s.Has([]byte("")) {
		t.Fatal("empty scheme should never be registered")
	}
}
