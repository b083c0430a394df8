package urlcanon

// canonicalizeRef copies ref through mostly unmodified: browsers do not
// percent-decode or re-encode fragments beyond escaping control characters
// and substituting U+FFFD for invalid UTF-8, since the fragment is never
// sent over the wire (spec §4.7). Grounded on url_canon_etc.cc's
// DoCanonicalizeRef.
func canonicalizeRef(buf []byte, ref Component, out *Output) Component {
	if !ref.IsValid() {
		return AbsentComponent
	}
	b := out.Len()
	for i := ref.Begin; i < ref.End(); {
		c := buf[i]
		switch {
		case c < 0x20 || c == 0x7f:
			appendEscapedByte(out, c)
			i++
		case c >= 0x80:
			i += appendUTF8EscapedChar(buf, i, out)
		default:
			out.WriteByte(c)
			i++
		}
	}
	return MakeComponent(b, out.Len())
}
