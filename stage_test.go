package searchstage

import (
	"bytes"
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func textStage(t *testing.T, opts ...StageOption) *Stage {
	t.Helper()
	d, err := Text("foo", PathOf("bar"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s, err := NewStage(d, opts...)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return s
}

func TestStage_TextOnly(t *testing.T) {
	got, err := textStage(t).Render(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := bson.D{{Key: "$search", Value: bson.D{
		{Key: "text", Value: bson.D{
			{Key: "query", Value: "foo"},
			{Key: "path", Value: "bar"},
		}},
	}}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Render = %v, want %v", got, want)
	}
}

func TestStage_WithHighlight(t *testing.T) {
	h, err := NewHighlight(PathOf("foo"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := textStage(t, WithHighlight(h)).Render(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := bson.D{{Key: "$search", Value: bson.D{
		{Key: "text", Value: bson.D{
			{Key: "query", Value: "foo"},
			{Key: "path", Value: "bar"},
		}},
		{Key: "highlight", Value: bson.D{{Key: "path", Value: "foo"}}},
	}}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Render = %v, want %v", got, want)
	}
}

func TestStage_WithIndex(t *testing.T) {
	got, err := textStage(t, WithIndex("foo")).Render(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := bson.D{{Key: "$search", Value: bson.D{
		{Key: "text", Value: bson.D{
			{Key: "query", Value: "foo"},
			{Key: "path", Value: "bar"},
		}},
		{Key: "index", Value: "foo"},
	}}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Render = %v, want %v", got, want)
	}
}

func TestStage_KeyOrder(t *testing.T) {
	// The server contract fixes the body order: clause, highlight, index.
	h, err := NewHighlight(PathOf("plot"), MaxNumPassages(2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	doc, err := textStage(t, WithIndex("movies"), WithHighlight(h)).Render(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	body, ok := doc[0].Value.(bson.D)
	if !ok {
		t.Fatalf("stage body is %T, want bson.D", doc[0].Value)
	}
	keys := make([]string, len(body))
	for i, e := range body {
		keys[i] = e.Key
	}
	want := []string{"text", "highlight", "index"}
	if !reflect.DeepEqual(keys, want) {
		t.Errorf("body keys = %v, want %v", keys, want)
	}
}

func TestNewStage_ZeroDefinition(t *testing.T) {
	if _, err := NewStage(SearchDefinition{}); err == nil {
		t.Fatal("expected error for unset search definition")
	}
}

func TestNewStage_EmptyIndexName(t *testing.T) {
	d, err := Text("foo", PathOf("bar"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := NewStage(d, WithIndex("")); err == nil {
		t.Fatal("expected error for empty index name")
	}
}

func TestNewStage_ZeroHighlight(t *testing.T) {
	d, err := Text("foo", PathOf("bar"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := NewStage(d, WithHighlight(HighlightOptions{})); err == nil {
		t.Fatal("expected error for zero-value highlight")
	}
}

func TestStage_Name(t *testing.T) {
	if got := textStage(t).Name(); got != "$search" {
		t.Errorf("Name = %q, want $search", got)
	}
}

func TestStage_DeterministicBytes(t *testing.T) {
	// Two renders of the same stage must marshal to identical bytes.
	h, err := NewHighlight(PathOf("title", "plot"), MaxCharsToExamine(100))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := textStage(t, WithHighlight(h), WithIndex("movies"))

	first, err := s.Render(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := s.Render(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a, err := bson.Marshal(first)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	b, err := bson.Marshal(second)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("renders of the same stage produced different bytes")
	}
}

func TestStage_DoesNotMutateVerbatimDocument(t *testing.T) {
	raw := bson.D{{Key: "text", Value: bson.D{
		{Key: "query", Value: "foo"},
		{Key: "path", Value: "bar"},
	}}}
	d, err := FromDocument(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s, err := NewStage(d, WithIndex("movies"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := s.Render(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(raw) != 1 {
		t.Errorf("caller document grew to %d entries", len(raw))
	}
}

func TestRenderPipeline(t *testing.T) {
	s := textStage(t)
	docs, err := RenderPipeline(nil, s, s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("len = %d, want 2", len(docs))
	}
	if !reflect.DeepEqual(docs[0], docs[1]) {
		t.Error("identical stages rendered differently")
	}
}

func TestRenderPipeline_FailureAborts(t *testing.T) {
	bad, err := FromJSON(`{broken`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	badStage, err := NewStage(bad)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := RenderPipeline(nil, textStage(t), badStage); err == nil {
		t.Fatal("expected pipeline render to fail")
	}
}

func TestRenderPipeline_NilStage(t *testing.T) {
	if _, err := RenderPipeline(nil, nil); err == nil {
		t.Fatal("expected error for nil stage")
	}
}
