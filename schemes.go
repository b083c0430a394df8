package urlcanon

import (
	"strings"
	"sync"
	"sync/atomic"
)

// StandardSchemeSet is a process-wide, append-only set of lowercase scheme
// names. Reads (IsStandardScheme) are lock-free and safe from any
// goroutine at any time; writes (AddStandardScheme) publish a new
// immutable snapshot, matching spec §5's "publish-once atomic append"
// guidance and grounded on url_util.cc's standard_schemes vector (which
// the original never shrinks and never rewrites, only appends to and
// leaks at process shutdown).
type StandardSchemeSet struct {
	snapshot atomic.Pointer[map[string]struct{}]
	writeMu  sync.Mutex // serializes AddStandardScheme; reads never take it
}

func newStandardSchemeSet(seed ...string) *StandardSchemeSet {
	m := make(map[string]struct{}, len(seed))
	for _, s := range seed {
		m[s] = struct{}{}
	}
	s := &StandardSchemeSet{}
	s.snapshot.Store(&m)
	return s
}

// Add registers scheme as standard. Idempotent. Safe to call concurrently
// with itself and with Has, but per spec §5 is intended for single-threaded
// startup use only — concurrent Add calls are merely safe, not ordered.
func (s *StandardSchemeSet) Add(scheme string) {
	scheme = strings.ToLower(scheme)
	if scheme == "" {
		return
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	old := *s.snapshot.Load()
	if _, ok := old[scheme]; ok {
		return
	}
	next := make(map[string]struct{}, len(old)+1)
	for k := range old {
		next[k] = struct{}{}
	}
	next[scheme] = struct{}{}
	s.snapshot.Store(&next)
}

// Has reports whether scheme (case-insensitive) is registered as standard.
func (s *StandardSchemeSet) Has(scheme []byte) bool {
	m := *s.snapshot.Load()
	// Fast path: schemes are seeded/added lowercase, and ExtractScheme's
	// callers pass raw (possibly mixed-case) input, so lowercase without
	// allocating when possible.
	if isLowerASCII(scheme) {
		_, ok := m[string(scheme)]
		return ok
	}
	_, ok := m[strings.ToLower(string(scheme))]
	return ok
}

func isLowerASCII(b []byte) bool {
	for _, c := range b {
		if c >= 'A' && c <= 'Z' {
			return false
		}
	}
	return true
}

// standardSchemes is the process-wide registry, seeded per spec §3 with
// the five schemes the original ships in kStandardURLSchemes.
var standardSchemes = newStandardSchemeSet("http", "https", "file", "ftp", "gopher")

// AddStandardScheme adds scheme to the process-wide standard scheme
// registry. Idempotent; safe from any thread, but intended to be called
// during single-threaded initialization (spec §5).
func AddStandardScheme(scheme string) {
	standardSchemes.Add(scheme)
}

// IsStandardScheme reports whether scheme is registered as standard.
func IsStandardScheme(scheme []byte) bool {
	return standardSchemes.Has(scheme)
}

func isFileScheme(scheme []byte) bool {
	return len(scheme) == 4 &&
		lowerByte(scheme[0]) == 'f' && lowerByte(scheme[1]) == 'i' &&
		lowerByte(scheme[2]) == 'l' && lowerByte(scheme[3]) == 'e'
}

func lowerByte(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}

func upperByte(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - ('a' - 'A')
	}
	return b
}
