package urlcanon

// Component is a half-open byte range into some input buffer.
//
// Len == -1 means the component is absent from the input. Len == 0 means
// the component is present but empty. Begin is only meaningful when
// Len >= 0.
type Component struct {
	Begin int
	Len   int
}

// MakeComponent returns a present component covering [begin, end).
func MakeComponent(begin, end int) Component {
	return Component{Begin: begin, Len: end - begin}
}

// AbsentComponent marks a component as not present in the input. Note this
// is NOT Go's zero value for Component (which has Len == 0, i.e.
// present-but-empty) — constructors must assign it explicitly.
var AbsentComponent = Component{Begin: 0, Len: -1}

// IsValid reports whether the component is present (possibly empty).
func (c Component) IsValid() bool {
	return c.Len >= 0
}

// IsNonEmpty reports whether the component is present and has at least one byte.
func (c Component) IsNonEmpty() bool {
	return c.Len > 0
}

// End returns the exclusive end offset of the component.
func (c Component) End() int {
	return c.Begin + c.Len
}

// Slice returns the bytes the component covers in buf. Panics if the
// component is absent; callers must check IsValid first.
func (c Component) Slice(buf []byte) []byte {
	return buf[c.Begin:c.End()]
}

// Parsed is the structural layout of a URL: the byte range of each of the
// eight components within some backing buffer. It carries no bytes itself.
type Parsed struct {
	Scheme   Component
	Username Component
	Password Component
	Host     Component
	Port     Component
	Path     Component
	Query    Component
	Ref      Component
}

// HasAuthority reports whether the parsed URL has an (even empty) authority
// section, i.e. a host component was found (possibly empty, as in
// "file:///path").
func (p *Parsed) HasAuthority() bool {
	return p.Host.IsValid()
}

// Length returns the offset one past the last component present in p,
// i.e. the number of leading bytes of the original buffer that this parse
// covers.
func (p *Parsed) Length() int {
	if p.Ref.IsValid() {
		return p.Ref.End()
	}
	if p.Query.IsValid() {
		return p.Query.End()
	}
	if p.Path.IsValid() {
		return p.Path.End()
	}
	if p.Port.IsValid() {
		return p.Port.End()
	}
	if p.Host.IsValid() {
		return p.Host.End()
	}
	if p.Password.IsValid() {
		return p.Password.End()
	}
	if p.Username.IsValid() {
		return p.Username.End()
	}
	return p.Scheme.End()
}
