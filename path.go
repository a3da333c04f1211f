package searchstage

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

type pathKind uint8

const (
	pathSingle pathKind = iota + 1
	pathMulti
)

// PathDefinition names the document field or fields a clause applies to.
// The zero value is invalid; construct with SinglePath, MultiPath or PathOf.
type PathDefinition struct {
	kind   pathKind
	single FieldRef
	multi  []FieldRef
}

// SinglePath builds a path over one field.
func SinglePath(ref FieldRef) PathDefinition {
	return PathDefinition{kind: pathSingle, single: ref}
}

// MultiPath builds a path over several fields. Caller order is preserved in
// the rendered document; it drives field-priority semantics downstream.
// An empty ref list is accepted and renders as an empty array.
func MultiPath(refs ...FieldRef) PathDefinition {
	return PathDefinition{kind: pathMulti, multi: append([]FieldRef(nil), refs...)}
}

// PathOf builds a path from wire-level field names: a single path for one
// name, a multi path otherwise.
func PathOf(names ...string) PathDefinition {
	if len(names) == 1 {
		return SinglePath(Field(names[0]))
	}
	refs := make([]FieldRef, len(names))
	for i, n := range names {
		refs[i] = Field(n)
	}
	return PathDefinition{kind: pathMulti, multi: refs}
}

// Render resolves the path against the schema. A single path renders to a
// string, a multi path to an ordered array of strings. A resolution failure
// on any element aborts the whole render.
func (p PathDefinition) Render(r *Renderer) (any, error) {
	switch p.kind {
	case pathSingle:
		name, err := r.resolve(p.single)
		if err != nil {
			return nil, fmt.Errorf("path: %w", err)
		}
		return name, nil
	case pathMulti:
		out := make(bson.A, len(p.multi))
		for i, ref := range p.multi {
			name, err := r.resolve(ref)
			if err != nil {
				return nil, fmt.Errorf("path element %d: %w", i, err)
			}
			out[i] = name
		}
		return out, nil
	default:
		return nil, fmt.Errorf("path is not set")
	}
}

func (p PathDefinition) isZero() bool { return p.kind == 0 }
