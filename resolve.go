package urlcanon

import "errors"

// ErrOpaqueBase is returned by ResolveRelativeURL when base does not have a
// hierarchical (authority-bearing) scheme, since only those support
// relative resolution (spec §6).
var ErrOpaqueBase = errors.New("urlcanon: base URL is opaque, cannot resolve relative reference")

// IsRelativeURL reports whether relative should be resolved against base
// rather than canonicalized standalone: true when relative has no scheme of
// its own, or its scheme case-sensitively equals base's (AreSchemesEqual in
// url_canon_relative.cc is deliberately case-sensitive against an
// already-canonical base — see DESIGN.md open question 3).
func IsRelativeURL(base []byte, baseParsed Parsed, relative []byte) (bool, urlMode) {
	ok, scheme := ExtractScheme(relative)
	if !ok {
		return true, modeStandard
	}
	baseScheme := baseParsed.Scheme.Slice(base)
	relScheme := scheme.Slice(relative)
	if areSchemesEqual(baseScheme, relScheme) {
		return true, schemeMode(relScheme)
	}
	return false, schemeMode(relScheme)
}

// areSchemesEqual is byte-for-byte case-sensitive, matching
// url_canon_relative.cc's AreSchemesEqual: base is assumed already
// canonical (lowercase), so this only accepts a relative reference whose
// scheme is spelled in the same (lowercase) canonical form.
func areSchemesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// ResolveRelativeURL resolves relative against base, which must already be
// a canonical standard or file URL (its Parsed spans are trusted, not
// re-validated). Returns the resolved canonical bytes, its Parsed spans,
// and ErrOpaqueBase if base's scheme isn't hierarchical. On ErrOpaqueBase
// the returned bytes and Parsed are base and baseParsed unchanged, per
// DoResolveRelativeURL's "base is not hierarchical, can't resolve" path,
// which leaves its output untouched rather than clearing it — callers that
// ignore the error round-trip to the original base instead of losing it.
// Grounded on url_canon_relative.cc's DoResolveRelativeURL / ResolveRelativeURL.
func ResolveRelativeURL(base []byte, baseParsed Parsed, relative []byte) ([]byte, Parsed, error) {
	mode := schemeMode(baseParsed.Scheme.Slice(base))
	if mode == modePath {
		return base, baseParsed, ErrOpaqueBase
	}

	isRel, _ := IsRelativeURL(base, baseParsed, relative)
	if !isRel {
		out, parsed, err := Canonicalize(relative)
		return out, parsed, err
	}

	relOk, relScheme := ExtractScheme(relative)
	relRest := relative
	if relOk {
		relRest = relative[relScheme.End()+1:]
	}

	// Determine which pieces the relative reference supplies vs. inherits
	// from base, following the classic RFC 3986 §5.3 merge cascade adapted
	// to byte components instead of strings.
	slashes := countLeadingSlashesGeneric(relRest)

	merged := NewOutput(len(base) + len(relative) + 8)
	merged.WriteString(string(baseParsed.Scheme.Slice(base)))
	merged.WriteByte(':')

	switch {
	case slashes >= 2:
		// Relative supplies its own authority: only scheme is inherited.
		merged.WriteString(string(relRest))
	case baseParsed.HasAuthority() && len(relRest) > 0 && (relRest[0] == '/' || relRest[0] == '\\'):
		// Absolute path relative to base's authority.
		writeAuthority(merged, base, baseParsed)
		merged.WriteString(string(relRest))
	case len(relRest) == 0:
		// Empty reference: keep base's path and query verbatim (spec
		// §6/url_canon_relative.cc's DoResolveRelativeURL "empty relative URL,
		// make no changes" path).
		writeAuthority(merged, base, baseParsed)
		merged.WriteString(string(baseParsed.Path.Slice(base)))
		if baseParsed.Query.IsValid() {
			merged.WriteByte('?')
			merged.WriteString(string(baseParsed.Query.Slice(base)))
		}
	case relRest[0] == '?':
		// Relative supplies its own query (and maybe ref): path is
		// unchanged, base's query is fully replaced, per
		// DoResolveRelativeURL's "just the query specified" branch.
		writeAuthority(merged, base, baseParsed)
		merged.WriteString(string(baseParsed.Path.Slice(base)))
		merged.WriteString(string(relRest))
	case relRest[0] == '#':
		// Ref-only reference: path AND query are inherited from base
		// unchanged (DoResolveRelativeURL only replaces query "if
		// query.len >= 0"; a ref-only reference has no query component at
		// all, so base's is copied through), only the fragment is replaced.
		writeAuthority(merged, base, baseParsed)
		merged.WriteString(string(baseParsed.Path.Slice(base)))
		if baseParsed.Query.IsValid() {
			merged.WriteByte('?')
			merged.WriteString(string(baseParsed.Query.Slice(base)))
		}
		merged.WriteString(string(relRest))
	default:
		// Relative path: merge with base's directory (everything in base's
		// path up to and including the last '/').
		writeAuthority(merged, base, baseParsed)
		dir := lastPathDirectory(base, baseParsed.Path)
		merged.WriteString(dir)
		merged.WriteString(string(relRest))
	}

	// canonicalizePath (canon_path.go) performs RFC 3986 dot-segment
	// removal on every standard/file path, including this merged one, so
	// no separate pre-resolution pass is needed here.
	out, parsed, err := Canonicalize(merged.Bytes())
	return out, parsed, err
}

func countLeadingSlashesGeneric(buf []byte) int {
	n := 0
	for n < len(buf) && isURLSlash(buf[n]) {
		n++
	}
	return n
}

// writeAuthority re-emits base's "//user:pass@host:port" (only the pieces
// present) so a merged reference re-parses with the right authority.
func writeAuthority(out *Output, base []byte, p Parsed) {
	out.WriteString("//")
	if p.Username.IsValid() || p.Password.IsValid() {
		out.WriteString(string(p.Username.Slice(base)))
		if p.Password.IsValid() {
			out.WriteByte(':')
			out.WriteString(string(p.Password.Slice(base)))
		}
		out.WriteByte('@')
	}
	out.WriteString(string(p.Host.Slice(base)))
	if p.Port.IsValid() {
		out.WriteByte(':')
		out.WriteString(string(p.Port.Slice(base)))
	}
}

// lastPathDirectory returns base's path up to and including its final '/',
// or "/" if the path has none (an authority with no path at all).
func lastPathDirectory(base []byte, path Component) string {
	if !path.IsValid() || path.Len == 0 {
		return "/"
	}
	slice := path.Slice(base)
	for i := len(slice) - 1; i >= 0; i-- {
		if slice[i] == '/' {
			return string(slice[:i+1])
		}
	}
	return "/"
}
