package searchstage

import "errors"

var (
	// ErrUnknownField signals a member reference that has no mapping in the
	// document schema.
	ErrUnknownField = errors.New("unknown field")
	// ErrInvalidJSON signals an extended JSON clause that failed to parse.
	ErrInvalidJSON = errors.New("invalid search JSON")
)
