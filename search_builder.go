package searchstage

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

// ClauseOption sets an optional parameter on a structured clause.
type ClauseOption func(*SearchDefinition) error

// Text matches terms in the fields named by path.
func Text(query string, path PathDefinition, opts ...ClauseOption) (SearchDefinition, error) {
	return newClause(opText, query, path, opts)
}

// Phrase matches terms in order. Use WithSlop to allow gaps between them.
func Phrase(query string, path PathDefinition, opts ...ClauseOption) (SearchDefinition, error) {
	return newClause(opPhrase, query, path, opts)
}

// QueryString runs a query written in the server's query-string syntax
// against a default field.
func QueryString(defaultPath FieldRef, query string, opts ...ClauseOption) (SearchDefinition, error) {
	if defaultPath.isZero() {
		return SearchDefinition{}, fmt.Errorf("queryString: defaultPath is required")
	}
	return newClause(opQueryString, query, SinglePath(defaultPath), opts)
}

// FromDocument wraps an already-built clause document. It is emitted verbatim
// at render time, with no validation.
func FromDocument(doc bson.D) (SearchDefinition, error) {
	if doc == nil {
		return SearchDefinition{}, fmt.Errorf("search document is required")
	}
	return SearchDefinition{kind: searchDocument, doc: doc}, nil
}

// FromJSON wraps a clause written in extended JSON. The text is parsed at
// render time; invalid syntax is a render error, not a construction error.
func FromJSON(json string) (SearchDefinition, error) {
	if json == "" {
		return SearchDefinition{}, fmt.Errorf("search JSON is required")
	}
	return SearchDefinition{kind: searchJSON, json: json}, nil
}

// WithScore attaches a score definition to the clause.
func WithScore(s ScoreDefinition) ClauseOption {
	return func(d *SearchDefinition) error {
		if s.isZero() {
			return fmt.Errorf("score is not set")
		}
		d.score = &s
		return nil
	}
}

// WithSlop allows up to n positions between phrase terms. Valid on phrase
// clauses only.
func WithSlop(n int) ClauseOption {
	return func(d *SearchDefinition) error {
		if d.operator != opPhrase {
			return fmt.Errorf("slop applies only to %s clauses", opPhrase)
		}
		if n < 0 {
			return fmt.Errorf("slop must be non-negative, got %d", n)
		}
		d.slop = &n
		return nil
	}
}

func newClause(operator, query string, path PathDefinition, opts []ClauseOption) (SearchDefinition, error) {
	if query == "" {
		return SearchDefinition{}, fmt.Errorf("%s: query is required", operator)
	}
	if path.isZero() {
		return SearchDefinition{}, fmt.Errorf("%s: path is required", operator)
	}
	d := SearchDefinition{kind: searchClause, operator: operator, query: query, path: path}
	for _, o := range opts {
		if err := o(&d); err != nil {
			return SearchDefinition{}, fmt.Errorf("%s: %w", operator, err)
		}
	}
	return d, nil
}
