package urlcanon

// ExtractScheme trims leading ASCII whitespace/control characters, then
// scans for the first ':'. It succeeds iff at least one character precedes
// the colon and every preceding character is a valid scheme character
// (ALPHA / DIGIT / '+' / '-' / '.'); the first character is not required
// to be a letter, here or in the scheme canonicalizer, matching the
// original's lenient ExtractScheme. An empty scheme ("://foo") is accepted
// with Len == 0.
func ExtractScheme(buf []byte) (bool, Component) {
	begin := 0
	for begin < len(buf) && isURLWhitespaceOrControl(buf[begin]) {
		begin++
	}
	for i := begin; i < len(buf); i++ {
		c := buf[i]
		if c == ':' {
			return true, MakeComponent(begin, i)
		}
		if !isSchemeChar(c) {
			return false, AbsentComponent
		}
	}
	return false, AbsentComponent
}

// FindAndCompareScheme locates the scheme in buf and reports whether it
// case-insensitively equals scheme. Grounded on url_util.cc's
// FindAndCompareSchemeT.
func FindAndCompareScheme(buf []byte, scheme string) (bool, Component) {
	ok, comp := ExtractScheme(buf)
	if !ok {
		return false, AbsentComponent
	}
	if comp.Len != len(scheme) {
		return false, comp
	}
	for i := 0; i < comp.Len; i++ {
		if lowerByte(buf[comp.Begin+i]) != lowerByte(scheme[i]) {
			return false, comp
		}
	}
	return true, comp
}

// ExtractFileName returns the last path segment after the final '/',
// stopping at ';' (a path parameter separator, e.g. "/x;par" -> "x").
func ExtractFileName(buf []byte, path Component) Component {
	if !path.IsValid() {
		return AbsentComponent
	}
	end := path.End()
	semicolon := end
	for i := path.Begin; i < end; i++ {
		if buf[i] == ';' {
			semicolon = i
			break
		}
	}
	lastSlash := path.Begin - 1
	for i := path.Begin; i < semicolon; i++ {
		if buf[i] == '/' {
			lastSlash = i
		}
	}
	return MakeComponent(lastSlash+1, semicolon)
}

// countConsecutiveSlashes counts forward slashes (only, not backslashes)
// starting at begin, stopping at end. Grounded on
// url_parse::CountConsecutiveSlashes as used from url_canon_relative.cc.
func countConsecutiveSlashes(buf []byte, begin, end int) int {
	n := 0
	for i := begin; i < end && buf[i] == '/'; i++ {
		n++
	}
	return n
}

// trimURL returns the [begin, end) range of buf with leading/trailing
// ASCII whitespace and control characters removed, matching
// url_parse::TrimURL. It only trims the ends; embedded tab/CR/LF
// characters are not removed here or later (the component canonicalizers
// percent-escape them).
func trimURL(buf []byte) (begin, end int) {
	begin, end = 0, len(buf)
	for begin < end && isURLWhitespaceOrControl(buf[begin]) {
		begin++
	}
	for end > begin && isURLWhitespaceOrControl(buf[end-1]) {
		end--
	}
	return begin, end
}

// ParsePort parses a port component's decimal value. It accepts leading
// zeros. Returns -1 when the component is absent or empty, -2 when it is
// invalid (non-digit, more than 5 significant digits, or value > 65535),
// else the numeric value.
func ParsePort(buf []byte, port Component) int {
	if !port.IsValid() || port.Len == 0 {
		return -1
	}
	value := 0
	significant := 0
	for i := port.Begin; i < port.End(); i++ {
		c := buf[i]
		if !isASCIIDigit(c) {
			return -2
		}
		if significant > 0 || c != '0' {
			significant++
		}
		if significant > 5 {
			return -2
		}
		value = value*10 + int(c-'0')
	}
	if value > 65535 {
		return -2
	}
	return value
}

// ExtractScheme + mode dispatch ----------------------------------------------

// findAuthorityTerminator returns the offset of the first '/', '\', '?',
// '#', or len(buf) starting at begin — the end of the authority section in
// a standard URL.
func findAuthorityTerminator(buf []byte, begin int) int {
	for i := begin; i < len(buf); i++ {
		switch buf[i] {
		case '/', '\\', '?', '#':
			return i
		}
	}
	return len(buf)
}

// ParseStandardURL parses buf as a standard (authority-based) URL: after
// the scheme and optional "//", it locates the authority terminator (the
// first '/', '\', '?', '#', or end), splits the authority on the rightmost
// '@' (userinfo | host:port) and the first ':' within userinfo
// (user:pass), and the rightmost ':' outside of '[...]' brackets within
// host-port (host | port). Path/query/ref follow as in spec §4.1.
func ParseStandardURL(buf []byte) Parsed {
	var p Parsed
	ok, scheme := ExtractScheme(buf)
	if !ok {
		p.Scheme, p.Username, p.Password, p.Host, p.Port = AbsentComponent, AbsentComponent, AbsentComponent, AbsentComponent, AbsentComponent
		p.Query, p.Ref = AbsentComponent, AbsentComponent
		p.Path = pathOnlyComponent(buf, 0)
		return p
	}
	p.Scheme = scheme
	rest := scheme.End() + 1 // skip ':'

	// Consume up to two leading URL slashes ('/' or '\') as the "//"
	// separator; standard schemes still parse an authority even with zero
	// or one separator slash ("http:foo.com" -> host "foo.com"), matching
	// spec §4.1's "optional //" and the "known schemes lean towards
	// authority identification" behavior in url_parse_unittest.cc.
	authorityBegin := rest
	for n := 0; n < 2 && authorityBegin < len(buf) && isURLSlash(buf[authorityBegin]); n++ {
		authorityBegin++
	}

	authorityEnd := findAuthorityTerminator(buf, authorityBegin)
	parseAuthority(buf, authorityBegin, authorityEnd, &p)

	parseAfterAuthority(buf, authorityEnd, &p)
	return p
}

// parseAuthority splits buf[begin:end] into username/password/host/port.
func parseAuthority(buf []byte, begin, end int, p *Parsed) {
	if begin >= end {
		p.Username = AbsentComponent
		p.Password = AbsentComponent
		p.Host = MakeComponent(begin, begin)
		p.Port = AbsentComponent
		return
	}
	at := -1
	for i := end - 1; i >= begin; i-- {
		if buf[i] == '@' {
			at = i
			break
		}
	}
	hostPortBegin := begin
	if at >= 0 {
		userinfoEnd := at
		colon := -1
		for i := begin; i < userinfoEnd; i++ {
			if buf[i] == ':' {
				colon = i
				break
			}
		}
		if colon >= 0 {
			p.Username = MakeComponent(begin, colon)
			p.Password = MakeComponent(colon+1, userinfoEnd)
		} else {
			p.Username = MakeComponent(begin, userinfoEnd)
			p.Password = AbsentComponent
		}
		hostPortBegin = at + 1
	} else {
		p.Username = AbsentComponent
		p.Password = AbsentComponent
	}

	// Rightmost ':' outside of [...] brackets splits host from port.
	depth := 0
	colon := -1
	for i := hostPortBegin; i < end; i++ {
		switch buf[i] {
		case '[':
			depth++
		case ']':
			if depth > 0 {
				depth--
			}
		case ':':
			if depth == 0 {
				colon = i
			}
		}
	}
	if colon >= 0 {
		p.Host = MakeComponent(hostPortBegin, colon)
		p.Port = MakeComponent(colon+1, end)
	} else {
		p.Host = MakeComponent(hostPortBegin, end)
		p.Port = AbsentComponent
	}
}

// parseAfterAuthority fills path/query/ref from buf[begin:] following the
// end of the authority section (or the end of the scheme for opaque
// layouts). Shared by ParseStandardURL and ParseFileURL.
func parseAfterAuthority(buf []byte, begin int, p *Parsed) {
	path, query, ref := splitPathQueryRef(buf, begin, len(buf))
	p.Path = path
	p.Query = query
	p.Ref = ref
}

// splitPathQueryRef splits buf[begin:end] into path (up to '?' or '#'),
// query ('?' to '#'), and ref ('#' to end).
func splitPathQueryRef(buf []byte, begin, end int) (path, query, ref Component) {
	if begin >= end {
		return AbsentComponent, AbsentComponent, AbsentComponent
	}
	qm, hash := -1, -1
	for i := begin; i < end; i++ {
		switch buf[i] {
		case '?':
			if qm < 0 {
				qm = i
			}
		case '#':
			hash = i
		}
		if hash >= 0 {
			break
		}
	}
	pathEnd := end
	if qm >= 0 {
		pathEnd = qm
	} else if hash >= 0 {
		pathEnd = hash
	}
	path = MakeComponent(begin, pathEnd)

	if qm >= 0 {
		queryEnd := end
		if hash >= 0 {
			queryEnd = hash
		}
		query = MakeComponent(qm+1, queryEnd)
	} else {
		query = AbsentComponent
	}

	if hash >= 0 {
		ref = MakeComponent(hash+1, end)
	} else {
		ref = AbsentComponent
	}
	return path, query, ref
}

// pathOnlyComponent is used when a scheme couldn't even be extracted (e.g.
// the parser was handed an already-invalid fragment); everything becomes
// path so canonicalization still produces complete output (spec §4.7).
func pathOnlyComponent(buf []byte, begin int) Component {
	if begin >= len(buf) {
		return AbsentComponent
	}
	return MakeComponent(begin, len(buf))
}

// ParsePathURL parses buf as scheme + opaque rest with no authority: host,
// port, username, password are all absent; everything after the scheme's
// colon becomes the path (no dot-segment resolution is ever applied to it).
func ParsePathURL(buf []byte) Parsed {
	var p Parsed
	ok, scheme := ExtractScheme(buf)
	if !ok {
		p.Scheme, p.Username, p.Password, p.Host, p.Port = AbsentComponent, AbsentComponent, AbsentComponent, AbsentComponent, AbsentComponent
		p.Query, p.Ref = AbsentComponent, AbsentComponent
		p.Path = pathOnlyComponent(buf, 0)
		return p
	}
	p.Scheme = scheme
	p.Username = AbsentComponent
	p.Password = AbsentComponent
	p.Host = AbsentComponent
	p.Port = AbsentComponent
	rest := scheme.End() + 1
	if rest >= len(buf) {
		p.Path = AbsentComponent
		p.Query = AbsentComponent
		p.Ref = AbsentComponent
		return p
	}
	p.Path = MakeComponent(rest, len(buf))
	p.Query = AbsentComponent
	p.Ref = AbsentComponent
	return p
}

// doesBeginWindowsDriveSpec reports whether buf[begin:] starts with a
// Windows drive letter spec: [A-Za-z][:|] followed by end-of-input or a
// URL slash. Grounded on url_parse::DoesBeginWindowsDriveSpec.
func doesBeginWindowsDriveSpec(buf []byte, begin int) bool {
	if begin+1 >= len(buf) {
		return false
	}
	if !isASCIIAlpha(buf[begin]) {
		return false
	}
	if buf[begin+1] != ':' && buf[begin+1] != '|' {
		return false
	}
	if begin+2 == len(buf) {
		return true
	}
	return isURLSlash(buf[begin+2])
}

// ParseFileURL parses buf as a file: URL, applying the Windows drive-letter
// and UNC leading-slash-count rules of spec §4.1. The rules are applied
// regardless of host OS, matching wire compatibility with browsers that do
// the same.
func ParseFileURL(buf []byte) Parsed {
	var p Parsed
	ok, scheme := ExtractScheme(buf)
	rest := 0
	if ok {
		p.Scheme = scheme
		rest = scheme.End() + 1
	} else {
		p.Scheme = AbsentComponent
	}
	p.Username = AbsentComponent
	p.Password = AbsentComponent
	p.Port = AbsentComponent

	slashes := countLeadingSlashes(buf, rest)

	switch {
	case doesBeginWindowsDriveSpec(buf, rest+slashes):
		// Drive letter anywhere reachable after leading slashes: host
		// empty, path starts at the drive letter itself so it is
		// preserved verbatim in the path ("file:///C:/x" and "file:C:/x"
		// both end up with path "/C:/x" after canonicalization adds the
		// leading slash back if missing).
		p.Host = MakeComponent(rest, rest)
		driveBegin := rest + slashes
		parseAfterAuthority(buf, driveBegin, &p)
	case slashes >= 4:
		// Collapse to UNC: host = next segment, path = rest.
		hostBegin := rest + slashes
		hostEnd := findAuthorityTerminator(buf, hostBegin)
		p.Host = MakeComponent(hostBegin, hostEnd)
		parseAfterAuthority(buf, hostEnd, &p)
	case slashes == 3:
		// host empty, path is everything from the third slash onward.
		p.Host = MakeComponent(rest+2, rest+2)
		parseAfterAuthority(buf, rest+2, &p)
	default:
		// 0, 1 or 2 leading slashes and no drive letter: host = next
		// segment, path = rest.
		hostBegin := rest + slashes
		hostEnd := findAuthorityTerminator(buf, hostBegin)
		p.Host = MakeComponent(hostBegin, hostEnd)
		parseAfterAuthority(buf, hostEnd, &p)
	}
	return p
}

func countLeadingSlashes(buf []byte, begin int) int {
	n := 0
	for i := begin; i < len(buf) && isURLSlash(buf[i]); i++ {
		n++
	}
	return n
}

