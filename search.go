package searchstage

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

type searchKind uint8

const (
	searchDocument searchKind = iota + 1
	searchJSON
	searchClause
)

// Operator names for structured clauses.
const (
	opText        = "text"
	opPhrase      = "phrase"
	opQueryString = "queryString"
)

// SearchDefinition is one search clause: a structured operator, a verbatim
// pre-built document, or raw extended JSON. The zero value is invalid;
// construct with Text, Phrase, QueryString, FromDocument or FromJSON.
type SearchDefinition struct {
	kind searchKind

	doc  bson.D // searchDocument: emitted verbatim
	json string // searchJSON: parsed at render time

	// searchClause fields.
	operator string
	query    string
	path     PathDefinition
	slop     *int
	score    *ScoreDefinition
}

// Render produces the clause document. Raw extended JSON is parsed here; a
// syntax error aborts the render.
func (d SearchDefinition) Render(r *Renderer) (bson.D, error) {
	switch d.kind {
	case searchDocument:
		return d.doc, nil
	case searchJSON:
		var doc bson.D
		if err := bson.UnmarshalExtJSON([]byte(d.json), false, &doc); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
		}
		return doc, nil
	case searchClause:
		return d.renderClause(r)
	default:
		return nil, fmt.Errorf("search definition is not set")
	}
}

func (d SearchDefinition) renderClause(r *Renderer) (bson.D, error) {
	p, err := d.path.Render(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", d.operator, err)
	}

	var body bson.D
	if d.operator == opQueryString {
		// queryString names its single field defaultPath, before the query.
		body = bson.D{
			{Key: "defaultPath", Value: p},
			{Key: "query", Value: d.query},
		}
	} else {
		body = bson.D{
			{Key: "query", Value: d.query},
			{Key: "path", Value: p},
		}
	}

	if d.slop != nil {
		body = append(body, bson.E{Key: "slop", Value: *d.slop})
	}
	if d.score != nil {
		s, err := d.score.Render(r)
		if err != nil {
			return nil, fmt.Errorf("%s score: %w", d.operator, err)
		}
		body = append(body, bson.E{Key: "score", Value: s})
	}
	return bson.D{{Key: d.operator, Value: body}}, nil
}

func (d SearchDefinition) isZero() bool { return d.kind == 0 }
