package searchstage

import (
	"errors"
	"testing"
	"time"
)

type author struct {
	Name    string `bson:"name"`
	Country string
}

type book struct {
	ID       string    `bson:"_id"`
	Title    string    `bson:"title"`
	Author   author    `bson:"author"`
	Internal string    `bson:"-"`
	Released time.Time `bson:"released"`

	hidden string
}

func TestNewRenderer_TagNames(t *testing.T) {
	r, err := NewRenderer[book]()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		member string
		want   string
	}{
		{"ID", "_id"},
		{"Title", "title"},
		{"Author", "author"},
		{"Author.Name", "author.name"},
		{"Author.Country", "author.country"}, // no tag: lowercased
		{"Released", "released"},
	}
	for _, tt := range tests {
		got, err := r.resolve(Member(tt.member))
		if err != nil {
			t.Fatalf("resolve(%q): %v", tt.member, err)
		}
		if got != tt.want {
			t.Errorf("resolve(%q) = %q, want %q", tt.member, got, tt.want)
		}
	}
}

func TestNewRenderer_PointerType(t *testing.T) {
	r, err := NewRenderer[*book]()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, _ := r.resolve(Member("Title")); got != "title" {
		t.Errorf("resolve(Title) = %q, want title", got)
	}
}

func TestNewRenderer_NonStruct(t *testing.T) {
	if _, err := NewRenderer[string](); err == nil {
		t.Fatal("expected error for non-struct document type")
	}
}

func TestResolve_UnknownAndExcludedMembers(t *testing.T) {
	r, err := NewRenderer[book]()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, member := range []string{"Missing", "Internal", "hidden", "Released.Wall"} {
		_, err := r.resolve(Member(member))
		if !errors.Is(err, ErrUnknownField) {
			t.Errorf("resolve(%q) error = %v, want ErrUnknownField", member, err)
		}
	}
}

func TestResolve_WireNamePassesThrough(t *testing.T) {
	// Wire-level references never consult the schema; a nil renderer works.
	var r *Renderer
	got, err := r.resolve(Field("plot.summary"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "plot.summary" {
		t.Errorf("resolve = %q, want plot.summary", got)
	}
}

func TestResolve_MemberWithoutSchema(t *testing.T) {
	var r *Renderer
	if _, err := r.resolve(Member("Title")); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("error = %v, want ErrUnknownField", err)
	}
}

func TestNewRendererFromFields(t *testing.T) {
	r := NewRendererFromFields(map[string]string{"Title": "title_en"})
	got, err := r.resolve(Member("Title"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "title_en" {
		t.Errorf("resolve(Title) = %q, want title_en", got)
	}
}

type node struct {
	Label string `bson:"label"`
	Next  *node  `bson:"next"`
}

func TestNewRenderer_SelfReferentialType(t *testing.T) {
	r, err := NewRenderer[node]()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, _ := r.resolve(Member("Next.Label")); got != "next.label" {
		t.Errorf("resolve(Next.Label) = %q, want next.label", got)
	}
}
