package searchstage

import (
	"fmt"
	"reflect"
	"strings"
)

const tagKey = "bson"

// Renderer resolves logical member references against a document schema.
// Build one per document type and pass it to Render; it is read-only after
// construction and safe for concurrent use. A nil Renderer is valid for
// definition trees that only use wire-level Field references.
type Renderer struct {
	fields map[string]string // dotted member name -> wire-level name
}

// NewRenderer parses T's bson struct tags into a schema. T must be a struct
// or pointer to struct. A field without a tag maps to its lowercased name,
// matching the driver's default; `bson:"-"` excludes the field. Parsing
// happens once here; unresolvable references surface at render time.
func NewRenderer[T any]() (*Renderer, error) {
	var zero T
	t := reflect.TypeOf(zero)
	if t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("searchstage: document type %v is not a struct", reflect.TypeOf(zero))
	}

	r := &Renderer{fields: make(map[string]string)}
	collectFields(t, "", "", r.fields, map[reflect.Type]bool{})
	return r, nil
}

// NewRendererFromFields builds a schema from an explicit member-to-wire-name
// mapping, for schemas that are configured rather than reflected.
func NewRendererFromFields(fields map[string]string) *Renderer {
	m := make(map[string]string, len(fields))
	for member, wire := range fields {
		m[member] = wire
	}
	return &Renderer{fields: m}
}

// resolve maps a field reference to its wire-level name. Wire-level
// references pass through unchanged.
func (r *Renderer) resolve(ref FieldRef) (string, error) {
	if ref.isZero() {
		return "", fmt.Errorf("field reference is empty")
	}
	if !ref.member {
		return ref.name, nil
	}
	if r == nil {
		return "", fmt.Errorf("resolve member %q: no schema: %w", ref.name, ErrUnknownField)
	}
	wire, ok := r.fields[ref.name]
	if !ok {
		return "", fmt.Errorf("resolve member %q: %w", ref.name, ErrUnknownField)
	}
	return wire, nil
}

// collectFields walks a struct type and records the wire name for every
// exported, serialized member, descending into nested structs with dotted
// member and wire prefixes. seen guards against self-referential types.
func collectFields(
	t reflect.Type, memberPrefix, wirePrefix string,
	out map[string]string, seen map[reflect.Type]bool,
) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" {
			continue // unexported
		}
		wire, ok := wireName(f)
		if !ok {
			continue
		}
		member := memberPrefix + f.Name
		out[member] = wirePrefix + wire

		ft := f.Type
		if ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		if ft.Kind() != reflect.Struct || ft.PkgPath() == "time" || seen[ft] {
			continue
		}
		seen[ft] = true
		collectFields(ft, member+".", wirePrefix+wire+".", out, seen)
		delete(seen, ft)
	}
}

// wireName extracts the serialized field name from a bson struct tag.
func wireName(f reflect.StructField) (string, bool) {
	tag := f.Tag.Get(tagKey)
	if tag == "-" {
		return "", false
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return strings.ToLower(f.Name), true
	}
	return name, true
}
