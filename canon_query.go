package urlcanon

// CharsetConverter converts raw query bytes from the page's document
// charset to a byte sequence safe to percent-encode as the query string's
// "escaped as if UTF-8" bytes browsers historically produce for non-UTF-8
// pages. Implementing a real charset converter (e.g. wiring in
// golang.org/x/text/encoding) is out of scope (spec §1 non-goal); callers
// that never set one get UTF-8-is-the-source-charset behavior, which covers
// the overwhelming majority of modern input.
type CharsetConverter interface {
	ConvertToCodepage(input []byte) []byte
}

// canonicalizeQuery copies query, percent-encoding every byte outside the
// query-safe set (spec §4.6.: unreserved plus most punctuation, but not
// '#', which always starts ref). When cc is non-nil the raw bytes are run
// through it first, matching url_canon_query.cc's charset-converter hook.
func canonicalizeQuery(buf []byte, query Component, cc CharsetConverter, out *Output) Component {
	if !query.IsValid() {
		return AbsentComponent
	}
	raw := buf[query.Begin:query.End()]
	if cc != nil {
		raw = cc.ConvertToCodepage(raw)
	}
	b := out.Len()
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case isQueryChar(c):
			out.WriteByte(c)
		case c >= 0x80:
			i += appendUTF8EscapedChar(raw, i, out) - 1
		default:
			appendEscapedByte(out, c)
		}
	}
	return MakeComponent(b, out.Len())
}
