package urlcanon

import "errors"

// ErrInvalidHost is returned when a host's percent-escapes cannot be
// decoded. decodeHostPercentEscapes currently accepts every input, so this
// is never returned in practice: bracketed hosts that fail validation
// (including "[]") report ErrInvalidIPv6, numeric-looking hosts that fail
// to parse report ErrInvalidIPv4, and ordinary domains always succeed since
// anything not otherwise special is percent-encoded through.
var ErrInvalidHost = errors.New("urlcanon: invalid host")

// canonicalizeHost lowercases and percent-decodes a domain host, or
// delegates to the IPv4/IPv6 canonicalizers when host looks like a numeric
// literal. Grounded on url_canon_internal.cc's CanonicalizeHost /
// DoCanonicalizeHost: percent-decode first (a domain can arrive
// percent-escaped, e.g. "%65xample.com"), then classify and lowercase.
func canonicalizeHost(buf []byte, host Component, out *Output) (Component, error) {
	if !host.IsValid() {
		return AbsentComponent, nil
	}
	if host.Len == 0 {
		b := out.Len()
		return MakeComponent(b, b), nil
	}

	if buf[host.Begin] == '[' {
		return canonicalizeIPv6(buf, host, out)
	}

	decoded, decodedOK := decodeHostPercentEscapes(buf, host)
	if !decodedOK {
		return AbsentComponent, ErrInvalidHost
	}

	if looksLikeIPv4(decoded, MakeComponent(0, len(decoded))) {
		v4, err := canonicalizeIPv4(decoded, MakeComponent(0, len(decoded)), out)
		switch {
		case err == nil:
			return v4, nil
		case errors.Is(err, errTooManyIPv4Components):
			// NOT_IP: more than four dot-separated components means this
			// was never a legitimate IPv4 literal, so fall through and
			// canonicalize it as an ordinary domain label instead.
		default:
			return AbsentComponent, err
		}
	}

	b := out.Len()
	for _, c := range decoded {
		if isUnreserved(c) || c == '!' || c == '$' || c == '&' || c == '\'' ||
			c == '(' || c == ')' || c == '*' || c == '+' || c == ',' ||
			c == ';' || c == '=' {
			out.WriteByte(lowerByte(c))
			continue
		}
		appendEscapedByte(out, lowerByte(c))
	}
	return MakeComponent(b, out.Len()), nil
}

// decodeHostPercentEscapes resolves %HH sequences in host to raw bytes
// before host classification; a malformed escape passes its literal '%'
// through unchanged rather than failing the whole host.
func decodeHostPercentEscapes(buf []byte, host Component) ([]byte, bool) {
	out := make([]byte, 0, host.Len)
	for i := host.Begin; i < host.End(); i++ {
		if buf[i] == '%' {
			if v, ok := decodeEscaped(buf, i); ok {
				out = append(out, v)
				i += 2
				continue
			}
			out = append(out, '%')
			continue
		}
		out = append(out, buf[i])
	}
	return out, true
}
