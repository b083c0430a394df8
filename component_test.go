package urlcanon

import "testing"

func TestComponentIsValid(t *testing.T) {
	if AbsentComponent.IsValid() {
		t.Fatal("AbsentComponent should not be valid")
	}
	if !MakeComponent(0, 0).IsValid() {
		t.Fatal("empty-but-present component should be valid")
	}
	if !MakeComponent(3, 7).IsValid() {
		t.Fatal("non-empty component should be valid")
	}
}

func TestComponentIsNonEmpty(t *testing.T) {
	if MakeComponent(0, 0).IsNonEmpty() {
		t.Fatal("zero-length component should not be non-empty")
	}
	if !MakeComponent(0, 1).IsNonEmpty() {
		t.Fatal("one-byte component should be non-empty")
	}
	if AbsentComponent.IsNonEmpty() {
		t.Fatal("absent component should not be non-empty")
	}
}

func TestComponentSlice(t *testing.T) {
	buf := []byte("hello world")
	c := MakeComponent(6, 11)
	if got := string(c.Slice(buf)); got != "world" {
		t.Fatalf("Slice() = %q, want %q", got, "world")
	}
}

func TestParsedHasAuthority(t *testing.T) {
	p := Parsed{Host: MakeComponent(7, 10)}
	if !p.HasAuthority() {
		t.Fatal("present host should mean HasAuthority")
	}
	p2 := Parsed{Host: AbsentComponent}
	if p2.HasAuthority() {
		t.Fatal("absent host should mean no authority")
	}
}

func TestParsedLength(t *testing.T) {
	p := Parsed{
		Scheme:   MakeComponent(0, 4),
		Username: AbsentComponent,
		Password: AbsentComponent,
		Host:     MakeComponent(7, 10),
		Port:     AbsentComponent,
		Path:     MakeComponent(10, 12),
		Query:    AbsentComponent,
		Ref:      AbsentComponent,
	}
	if got, want := p.Length(), 12; got != want {
		t.Fatalf("Length() = %d, want %d", got, want)
	}
}
