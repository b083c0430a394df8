// Package urlrebase rewrites canonical URLs from one base to another.
package urlrebase

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/martin-sucha/urlcanon"
)

// ErrNoBase is returned when Rebase is called with a URL that is not under
// oldBase.
var ErrNoBase error = errors.New("urlrebase: base is not a parent of url")

// componentBytesEqual compares two components that may each be absent (a
// default port omitted by canonicalization, say): Component.Slice panics on
// an absent component since its End() is negative, so absence has to be
// checked before slicing rather than after.
func componentBytesEqual(a urlcanon.Component, aBuf []byte, b urlcanon.Component, bBuf []byte) bool {
	if a.IsValid() != b.IsValid() {
		return false
	}
	if !a.IsValid() {
		return true
	}
	return bytes.Equal(a.Slice(aBuf), b.Slice(bBuf))
}

// Rebase rewrites u to be under newBase instead of oldBase. All three
// arguments are canonicalized internally, so callers may pass raw bytes;
// u, oldBase, and newBase must each canonicalize to a standard or file URL
// (relative references are not supported).
func Rebase(u, oldBase, newBase []byte) ([]byte, error) {
	uCanon, uParsed, err := urlcanon.Canonicalize(u)
	if err != nil {
		return nil, fmt.Errorf("urlrebase: canonicalize url: %w", err)
	}
	oldCanon, oldParsed, err := urlcanon.Canonicalize(oldBase)
	if err != nil {
		return nil, fmt.Errorf("urlrebase: canonicalize old base: %w", err)
	}
	newCanon, newParsed, err := urlcanon.Canonicalize(newBase)
	if err != nil {
		return nil, fmt.Errorf("urlrebase: canonicalize new base: %w", err)
	}

	if !bytes.Equal(uParsed.Scheme.Slice(uCanon), oldParsed.Scheme.Slice(oldCanon)) {
		return nil, ErrNoBase
	}
	if !bytes.Equal(uParsed.Host.Slice(uCanon), oldParsed.Host.Slice(oldCanon)) {
		return nil, ErrNoBase
	}
	if !componentBytesEqual(uParsed.Port, uCanon, oldParsed.Port, oldCanon) {
		return nil, ErrNoBase
	}

	uPath := uParsed.Path.Slice(uCanon)
	oldPath := oldParsed.Path.Slice(oldCanon)
	newPath := newParsed.Path.Slice(newCanon)

	var rewrittenPath []byte
	if len(oldPath) == 0 || oldPath[len(oldPath)-1] != '/' {
		if !bytes.Equal(uPath, oldPath) {
			return nil, ErrNoBase
		}
		rewrittenPath = newPath
	} else {
		if !bytes.HasPrefix(uPath, oldPath) {
			return nil, ErrNoBase
		}
		if len(newPath) == 0 || newPath[len(newPath)-1] != '/' {
			return nil, fmt.Errorf("urlrebase: if old base path ends with a slash, new base path must too")
		}
		rewrittenPath = append(append([]byte{}, newPath...), uPath[len(oldPath):]...)
	}

	repl := urlcanon.Replacements{
		Scheme: urlcanon.SetValue(string(newParsed.Scheme.Slice(newCanon))),
		Host:   urlcanon.SetValue(string(newParsed.Host.Slice(newCanon))),
		Path:   urlcanon.SetValue(string(rewrittenPath)),
	}
	if newParsed.Port.IsValid() {
		repl.Port = urlcanon.SetValue(string(newParsed.Port.Slice(newCanon)))
	}

	out, _, err := urlcanon.ReplaceComponents(uCanon, uParsed, repl)
	if err != nil {
		return nil, fmt.Errorf("urlrebase: canonicalize result: %w", err)
	}
	return out, nil
}
