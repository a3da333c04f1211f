package searchstage

// FieldRef identifies a document field, either by its wire-level name or by
// the name of the Go struct member that maps to it.
type FieldRef struct {
	name   string
	member bool
}

// Field references a field by its wire-level name. The name is emitted as-is
// at render time, with no schema resolution.
func Field(name string) FieldRef {
	return FieldRef{name: name}
}

// Member references a field by the Go struct member that holds it. The
// wire-level name is resolved against the document schema at render time;
// nested members are addressed with dots ("Author.Name").
func Member(name string) FieldRef {
	return FieldRef{name: name, member: true}
}

// String returns the reference as the caller wrote it.
func (f FieldRef) String() string { return f.name }

func (f FieldRef) isZero() bool { return f.name == "" }
