package urlrebase

import "testing"

func TestRebasePrefixMatch(t *testing.T) {
	out, err := Rebase(
		[]byte("http://old.example/site/page.html?x=1"),
		[]byte("http://old.example/site/"),
		[]byte("http://new.example/mirror/"),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := string(out), "http://new.example/mirror/page.html?x=1"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRebaseExactMatch(t *testing.T) {
	out, err := Rebase(
		[]byte("http://old.example/exact"),
		[]byte("http://old.example/exact"),
		[]byte("http://new.example/renamed"),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := string(out), "http://new.example/renamed"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRebaseNoMatch(t *testing.T) {
	_, err := Rebase(
		[]byte("http://other.example/page.html"),
		[]byte("http://old.example/site/"),
		[]byte("http://new.example/mirror/"),
	)
	if err != ErrNoBase {
		t.Fatalf("got %v, want ErrNoBase", err)
	}
}

func TestRebasePortMustMatch(t *testing.T) {
	_, err := Rebase(
		[]byte("http://old.example:8080/site/page.html"),
		[]byte("http://old.example/site/"),
		[]byte("http://new.example/mirror/"),
	)
	if err != ErrNoBase {
		t.Fatalf("got %v, want ErrNoBase", err)
	}
}

func TestRebasePreservesDefaultPortOmission(t *testing.T) {
	// Neither url nor oldBase specifies an explicit port; both canonicalize
	// with the default port omitted, so the port comparison must treat
	// "absent" == "absent" rather than panicking on an absent Component.
	out, err := Rebase(
		[]byte("http://old.example/site/page.html"),
		[]byte("http://old.example/site/"),
		[]byte("http://new.example/mirror/"),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := string(out), "http://new.example/mirror/page.html"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
