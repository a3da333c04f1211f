package searchstage

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

// HighlightOptions configures hit highlighting for a search stage.
// Construct with NewHighlight; the value is immutable once built.
type HighlightOptions struct {
	path              PathDefinition
	maxCharsToExamine *int
	maxNumPassages    *int
}

// HighlightOption sets an optional highlight parameter.
type HighlightOption func(*HighlightOptions) error

// MaxCharsToExamine caps how many characters of each field are examined for
// highlight passages. n must be positive.
func MaxCharsToExamine(n int) HighlightOption {
	return func(h *HighlightOptions) error {
		if n <= 0 {
			return fmt.Errorf("maxCharsToExamine must be positive, got %d", n)
		}
		h.maxCharsToExamine = &n
		return nil
	}
}

// MaxNumPassages caps the number of highlight passages returned per document.
// n must be positive.
func MaxNumPassages(n int) HighlightOption {
	return func(h *HighlightOptions) error {
		if n <= 0 {
			return fmt.Errorf("maxNumPassages must be positive, got %d", n)
		}
		h.maxNumPassages = &n
		return nil
	}
}

// NewHighlight builds highlight options over the given path. Every option
// argument is validated here, before any render is attempted.
func NewHighlight(path PathDefinition, opts ...HighlightOption) (HighlightOptions, error) {
	if path.isZero() {
		return HighlightOptions{}, fmt.Errorf("highlight path is required")
	}
	h := HighlightOptions{path: path}
	for _, o := range opts {
		if err := o(&h); err != nil {
			return HighlightOptions{}, fmt.Errorf("highlight: %w", err)
		}
	}
	return h, nil
}

// Render produces the highlight sub-document: path first, then the numeric
// options that were set. Unset options are omitted entirely.
func (h HighlightOptions) Render(r *Renderer) (bson.D, error) {
	if h.path.isZero() {
		return nil, fmt.Errorf("highlight path is required")
	}
	p, err := h.path.Render(r)
	if err != nil {
		return nil, fmt.Errorf("highlight: %w", err)
	}
	doc := bson.D{{Key: "path", Value: p}}
	if h.maxCharsToExamine != nil {
		doc = append(doc, bson.E{Key: "maxCharsToExamine", Value: *h.maxCharsToExamine})
	}
	if h.maxNumPassages != nil {
		doc = append(doc, bson.E{Key: "maxNumPassages", Value: *h.maxNumPassages})
	}
	return doc, nil
}
