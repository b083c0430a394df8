package urlcanon

// urlMode selects which of the three parse/canonicalize pipelines a scheme
// gets, mirroring url_util.cc's dispatch in DoCanonicalize: standard
// (authority + hierarchical path), file (Windows-drive-aware authority),
// or path (opaque, everything after the scheme is one blob).
type urlMode int

const (
	modeStandard urlMode = iota
	modeFile
	modePath
)

// schemeMode inspects scheme and reports which pipeline governs it. This is
// always evaluated against the scheme actually present on the URL being
// canonicalized (the "output" scheme after any replacement), never a
// caller-supplied hint — this is what produces the documented
// ReplaceComponents(scheme: "about") quirk (DESIGN.md open question 2):
// changing a URL's scheme to "about" makes it dispatch through the path
// pipeline on the next canonicalization pass, same as any other
// non-standard, non-file scheme.
func schemeMode(scheme []byte) urlMode {
	if isFileScheme(scheme) {
		return modeFile
	}
	if IsStandardScheme(scheme) {
		return modeStandard
	}
	return modePath
}

// Canonicalize parses and canonicalizes a narrow (UTF-8 or ASCII-superset)
// URL. It returns the canonical bytes, the Parsed component spans into
// those bytes, and a non-nil error if any component failed to
// canonicalize (the returned bytes and spans are still populated on error,
// covering everything up to the point of failure, per spec §7's
// best-effort-output-plus-error contract).
func Canonicalize(input []byte) ([]byte, Parsed, error) {
	return CanonicalizeWithCharset(input, nil)
}

// CanonicalizeWithCharset is Canonicalize with an explicit query charset
// converter (nil means treat the query as already UTF-8).
func CanonicalizeWithCharset(input []byte, cc CharsetConverter) ([]byte, Parsed, error) {
	begin, end := trimURL(input)
	trimmed := input[begin:end]
	scheme, ok := extractSchemeBytes(trimmed)
	if !ok {
		out := NewOutput(len(trimmed))
		p := ParsePathURL(trimmed)
		np := canonicalizePathMode(trimmed, p, out)
		return out.Bytes(), np, ErrInvalidScheme
	}
	mode := schemeMode(scheme)
	out := NewOutput(len(trimmed))
	var parsed Parsed
	var err error
	switch mode {
	case modeStandard:
		parsed = ParseStandardURL(trimmed)
		parsed, err = canonicalizeStandardMode(trimmed, parsed, cc, out)
	case modeFile:
		parsed = ParseFileURL(trimmed)
		parsed, err = canonicalizeFileMode(trimmed, parsed, cc, out)
	default:
		parsed = ParsePathURL(trimmed)
		parsed = canonicalizePathMode(trimmed, parsed, out)
	}
	return out.Bytes(), parsed, err
}

// CanonicalizeUTF16 transcodes a UTF-16 URL to UTF-8 (substituting U+FFFD
// for unpaired surrogates) and canonicalizes the result, matching spec §9's
// wide entry point sharing the narrow pipeline after transcoding.
func CanonicalizeUTF16(input []uint16) ([]byte, Parsed, error) {
	return Canonicalize(utf16ToUTF8(input))
}

func extractSchemeBytes(buf []byte) ([]byte, bool) {
	ok, comp := ExtractScheme(buf)
	if !ok {
		return nil, false
	}
	return buf[comp.Begin:comp.End()], true
}

// canonicalizeStandardMode assembles scheme, authority, path, query, and
// ref for a standard (http-like) URL. Grounded on url_canon.cc's
// DoCanonicalizeStandardURL.
func canonicalizeStandardMode(buf []byte, p Parsed, cc CharsetConverter, out *Output) (Parsed, error) {
	var np Parsed
	var firstErr error
	note := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	scheme, err := canonicalizeScheme(buf, p.Scheme, out)
	note(err)
	np.Scheme = scheme
	schemeStr := string(scheme.Slice(out.Bytes()))

	out.WriteString("//")
	np.Username, np.Password = canonicalizeUserinfo(buf, p.Username, p.Password, out)

	host, herr := canonicalizeHost(buf, p.Host, out)
	note(herr)
	np.Host = host

	port, perr := canonicalizePort(buf, schemeStr, p.Port, out)
	note(perr)
	np.Port = port

	np.Path = canonicalizePath(buf, p.Path, true, out)
	if !np.Path.IsNonEmpty() {
		// Standard URLs always have at least "/" as their path.
		b := out.Len()
		out.WriteByte('/')
		np.Path = MakeComponent(b, out.Len())
	}

	if p.Query.IsValid() {
		out.WriteByte('?')
		np.Query = canonicalizeQuery(buf, p.Query, cc, out)
	} else {
		np.Query = AbsentComponent
	}

	if p.Ref.IsValid() {
		out.WriteByte('#')
		np.Ref = canonicalizeRef(buf, p.Ref, out)
	} else {
		np.Ref = AbsentComponent
	}

	return np, firstErr
}

func canonicalizeFileMode(buf []byte, p Parsed, cc CharsetConverter, out *Output) (Parsed, error) {
	var np Parsed
	var firstErr error
	note := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	scheme, err := canonicalizeScheme(buf, p.Scheme, out)
	note(err)
	np.Scheme = scheme
	out.WriteString("//")

	np.Username = AbsentComponent
	np.Password = AbsentComponent

	host, herr := canonicalizeHost(buf, p.Host, out)
	note(herr)
	np.Host = host
	np.Port = AbsentComponent

	np.Path = canonicalizeFilePath(buf, p.Path, out)
	if !p.Path.IsValid() {
		b := out.Len()
		out.WriteByte('/')
		np.Path = MakeComponent(b, out.Len())
	}

	if p.Query.IsValid() {
		out.WriteByte('?')
		np.Query = canonicalizeQuery(buf, p.Query, cc, out)
	} else {
		np.Query = AbsentComponent
	}

	if p.Ref.IsValid() {
		out.WriteByte('#')
		np.Ref = canonicalizeRef(buf, p.Ref, out)
	} else {
		np.Ref = AbsentComponent
	}
	return np, firstErr
}

func canonicalizePathMode(buf []byte, p Parsed, out *Output) Parsed {
	var np Parsed
	scheme, _ := canonicalizeScheme(buf, p.Scheme, out)
	np.Scheme = scheme
	np.Username = AbsentComponent
	np.Password = AbsentComponent
	np.Host = AbsentComponent
	np.Port = AbsentComponent
	np.Path = canonicalizePath(buf, p.Path, false, out)
	np.Query = AbsentComponent
	np.Ref = AbsentComponent
	return np
}
