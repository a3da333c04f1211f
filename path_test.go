package searchstage

import (
	"errors"
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestSinglePath_Render(t *testing.T) {
	got, err := SinglePath(Field("title")).Render(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "title" {
		t.Errorf("Render = %v, want title", got)
	}
}

func TestMultiPath_PreservesOrder(t *testing.T) {
	got, err := MultiPath(Field("b"), Field("a")).Render(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := bson.A{"b", "a"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Render = %v, want %v", got, want)
	}
}

func TestPathOf(t *testing.T) {
	single, err := PathOf("title").Render(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if single != "title" {
		t.Errorf("PathOf one name = %v, want string title", single)
	}

	multi, err := PathOf("title", "plot").Render(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(multi, bson.A{"title", "plot"}) {
		t.Errorf("PathOf two names = %v", multi)
	}
}

func TestMultiPath_Empty(t *testing.T) {
	// Empty multi paths are not rejected at construction; they render as an
	// empty array.
	got, err := MultiPath().Render(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, bson.A{}) {
		t.Errorf("Render = %#v, want empty array", got)
	}
}

func TestMultiPath_ResolutionFailureAborts(t *testing.T) {
	r := NewRendererFromFields(map[string]string{"Title": "title"})
	p := MultiPath(Member("Title"), Member("Missing"))
	if _, err := p.Render(r); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("error = %v, want ErrUnknownField", err)
	}
}

func TestMultiPath_MixedRefs(t *testing.T) {
	r := NewRendererFromFields(map[string]string{"Plot": "plot"})
	got, err := MultiPath(Field("title"), Member("Plot")).Render(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, bson.A{"title", "plot"}) {
		t.Errorf("Render = %v", got)
	}
}

func TestPathDefinition_ZeroValue(t *testing.T) {
	var p PathDefinition
	if _, err := p.Render(nil); err == nil {
		t.Fatal("expected error for zero-value path")
	}
}

func TestMultiPath_CopiesInput(t *testing.T) {
	refs := []FieldRef{Field("a"), Field("b")}
	p := MultiPath(refs...)
	refs[0] = Field("mutated")

	got, err := p.Render(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, bson.A{"a", "b"}) {
		t.Errorf("Render = %v, want [a b]", got)
	}
}
