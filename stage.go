// Package searchstage builds $search aggregation stages from typed
// definitions. Callers describe a full-text query with builder values (search
// clauses, field paths, highlighting, scoring); rendering resolves logical
// member references against the document schema and produces the ordered
// stage document the server expects.
package searchstage

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

// StageName is the aggregation operator this package produces.
const StageName = "$search"

// Stage is a renderable $search pipeline stage. Construct with NewStage.
type Stage struct {
	def       SearchDefinition
	highlight *HighlightOptions
	index     string
}

// StageOption extends a stage with an optional modifier.
type StageOption func(*Stage) error

// WithHighlight adds hit highlighting to the stage.
func WithHighlight(h HighlightOptions) StageOption {
	return func(s *Stage) error {
		if h.path.isZero() {
			return fmt.Errorf("highlight path is required")
		}
		s.highlight = &h
		return nil
	}
}

// WithIndex names the search index to query instead of the server default.
func WithIndex(name string) StageOption {
	return func(s *Stage) error {
		if name == "" {
			return fmt.Errorf("index name is required")
		}
		s.index = name
		return nil
	}
}

// NewStage assembles a $search stage from a search definition and optional
// modifiers.
func NewStage(def SearchDefinition, opts ...StageOption) (*Stage, error) {
	if def.isZero() {
		return nil, fmt.Errorf("search definition is required")
	}
	s := &Stage{def: def}
	for _, o := range opts {
		if err := o(s); err != nil {
			return nil, fmt.Errorf("search stage: %w", err)
		}
	}
	return s, nil
}

// Name returns the stage operator, "$search".
func (s *Stage) Name() string { return StageName }

// Render produces the stage document. Body key order is fixed: the clause
// keys first, then highlight, then index; the server relies on it.
func (s *Stage) Render(r *Renderer) (bson.D, error) {
	clause, err := s.def.Render(r)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", StageName, err)
	}

	// Copy before extending: a verbatim FromDocument clause shares its
	// backing array with the caller.
	body := make(bson.D, len(clause), len(clause)+2)
	copy(body, clause)

	if s.highlight != nil {
		h, err := s.highlight.Render(r)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", StageName, err)
		}
		body = append(body, bson.E{Key: "highlight", Value: h})
	}
	if s.index != "" {
		body = append(body, bson.E{Key: "index", Value: s.index})
	}
	return bson.D{{Key: StageName, Value: body}}, nil
}

// PipelineStage is the capability a pipeline needs from a stage: a name for
// introspection and a render to its wire-level document.
type PipelineStage interface {
	Name() string
	Render(r *Renderer) (bson.D, error)
}

// RenderPipeline renders stages, in order, into a pipeline ready for
// aggregation. The first failing stage aborts the whole render.
func RenderPipeline(r *Renderer, stages ...PipelineStage) ([]bson.D, error) {
	out := make([]bson.D, len(stages))
	for i, st := range stages {
		if st == nil {
			return nil, fmt.Errorf("pipeline stage %d is nil", i)
		}
		doc, err := st.Render(r)
		if err != nil {
			return nil, fmt.Errorf("pipeline stage %d (%s): %w", i, st.Name(), err)
		}
		out[i] = doc
	}
	return out, nil
}
