package urlcanon

// Replacements holds a three-state override per component: leave the
// original value (the zero value, Set==false), clear it entirely
// (Set==true, Clear==true), or replace it with Value (Set==true,
// Clear==false). Spec §9 calls for an explicit tagged variant rather than
// nil-means-unchanged, since an empty string and "absent" are different
// outcomes for e.g. Query ("http://x/?" vs "http://x/").
type Replacements struct {
	Scheme   ComponentReplacement
	Username ComponentReplacement
	Password ComponentReplacement
	Host     ComponentReplacement
	Port     ComponentReplacement
	Path     ComponentReplacement
	Query    ComponentReplacement
	Ref      ComponentReplacement
}

// ComponentReplacement is one field of Replacements.
type ComponentReplacement struct {
	Set   bool
	Clear bool
	Value string
}

// SetValue returns a ComponentReplacement that sets the component to value.
func SetValue(value string) ComponentReplacement {
	return ComponentReplacement{Set: true, Value: value}
}

// ClearValue returns a ComponentReplacement that removes the component.
func ClearValue() ComponentReplacement {
	return ComponentReplacement{Set: true, Clear: true}
}

// apply returns the effective raw bytes and validity for a component,
// given the original url bytes, the original component, and an override.
func (r ComponentReplacement) apply(url []byte, orig Component) ([]byte, bool) {
	if !r.Set {
		if !orig.IsValid() {
			return nil, false
		}
		return orig.Slice(url), true
	}
	if r.Clear {
		return nil, false
	}
	return []byte(r.Value), true
}

// ReplaceComponents builds a new URL string from url's components with any
// of repl's fields overridden, then canonicalizes the result. The synthetic
// source carries the authority section ("//" + userinfo/host/port) whenever
// orig had one, regardless of whether the new scheme is standard or file —
// only the *reparse* after assembly, which runs on the new scheme, decides
// whether that "//..." text is interpreted as an authority or is swallowed
// verbatim into an opaque path. This reproduces the documented quirk where
// replacing an http(s) URL's scheme with "about" still carries the
// authority text through into the result ("about://host/path"), because the
// path pipeline that "about" dispatches to copies its (still slash-prefixed)
// path through unchanged rather than dropping it (DESIGN.md open question
// 2). Grounded on url_util.cc's ReplaceComponents / DoReplaceComponents.
func ReplaceComponents(url []byte, orig Parsed, repl Replacements) ([]byte, Parsed, error) {
	scheme, hasScheme := repl.Scheme.apply(url, orig.Scheme)
	if !hasScheme {
		scheme = orig.Scheme.Slice(url)
	}

	rebuilt := NewOutput(len(url) + 64)
	rebuilt.Write(scheme)
	rebuilt.WriteByte(':')

	hadAuthority := orig.HasAuthority()
	if hadAuthority {
		rebuilt.WriteString("//")
		if user, ok := repl.Username.apply(url, orig.Username); ok {
			rebuilt.Write(user)
			if pass, ok := repl.Password.apply(url, orig.Password); ok {
				rebuilt.WriteByte(':')
				rebuilt.Write(pass)
			}
			rebuilt.WriteByte('@')
		}
		if host, ok := repl.Host.apply(url, orig.Host); ok {
			rebuilt.Write(host)
		}
		if port, ok := repl.Port.apply(url, orig.Port); ok {
			rebuilt.WriteByte(':')
			rebuilt.Write(port)
		}
	}

	if path, ok := repl.Path.apply(url, orig.Path); ok {
		if len(path) > 0 && path[0] != '/' && hadAuthority {
			rebuilt.WriteByte('/')
		}
		rebuilt.Write(path)
	}
	if query, ok := repl.Query.apply(url, orig.Query); ok {
		rebuilt.WriteByte('?')
		rebuilt.Write(query)
	}
	if ref, ok := repl.Ref.apply(url, orig.Ref); ok {
		rebuilt.WriteByte('#')
		rebuilt.Write(ref)
	}

	out, parsed, err := Canonicalize(rebuilt.Bytes())
	return out, parsed, err
}
