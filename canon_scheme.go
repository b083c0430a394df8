package urlcanon

import "errors"

// ErrInvalidScheme is returned when a non-empty scheme contains a byte that
// is never valid in a scheme, even after lowercasing.
var ErrInvalidScheme = errors.New("urlcanon: invalid scheme")

// canonicalizeScheme lowercases scheme and writes it followed by ':' to out.
// An empty (but present) scheme writes only ':', matching the "://foo"
// input class from spec §4.1's scenario table. Grounded on
// url_canon_internal.cc's DoCanonicalizeScheme: the scheme is never
// percent-encoded, only lowercased, because url_util.cc's ExtractScheme
// already rejected anything outside [A-Za-z0-9+-.] before this is reached.
func canonicalizeScheme(buf []byte, scheme Component, out *Output) (Component, error) {
	begin := out.Len()
	if !scheme.IsValid() {
		return AbsentComponent, ErrInvalidScheme
	}
	for i := scheme.Begin; i < scheme.End(); i++ {
		c := buf[i]
		if !isSchemeChar(c) {
			return AbsentComponent, ErrInvalidScheme
		}
		out.WriteByte(lowerByte(c))
	}
	end := out.Len()
	out.WriteByte(':')
	return MakeComponent(begin, end), nil
}
