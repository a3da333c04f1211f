package server

import (
	"encoding/json"
	"fmt"

	"github.com/lumora-db/searchstage"
)

// renderRequest describes a search request to render. Exactly one clause
// source applies: either a structured operator (query + path/members) or a
// raw clause written in extended JSON.
type renderRequest struct {
	Operator    string          `json:"operator,omitempty"` // text (default), phrase, queryString
	Query       string          `json:"query,omitempty"`
	Path        []string        `json:"path,omitempty"`    // wire-level field names
	Members     []string        `json:"members,omitempty"` // logical member names, resolved via the collection schema
	DefaultPath string          `json:"defaultPath,omitempty"`
	Slop        *int            `json:"slop,omitempty"`
	Boost       *float64        `json:"boost,omitempty"`
	Clause      json.RawMessage `json:"clause,omitempty"`

	Highlight *highlightRequest `json:"highlight,omitempty"`
	Index     string            `json:"index,omitempty"`
}

type highlightRequest struct {
	Path              []string `json:"path,omitempty"`
	Members           []string `json:"members,omitempty"`
	MaxCharsToExamine *int     `json:"maxCharsToExamine,omitempty"`
	MaxNumPassages    *int     `json:"maxNumPassages,omitempty"`
}

// renderResponse carries the rendered stage as extended JSON.
type renderResponse struct {
	Collection string          `json:"collection"`
	Stage      json.RawMessage `json:"stage"`
}

type collectionInfo struct {
	Name   string   `json:"name"`
	Index  string   `json:"index,omitempty"`
	Fields int      `json:"fields"`
	Ops    []string `json:"operators"`
}

// toPath combines wire-level names and logical member names into one path
// definition, wire-level names first.
func toPath(path, members []string) (searchstage.PathDefinition, error) {
	refs := make([]searchstage.FieldRef, 0, len(path)+len(members))
	for _, p := range path {
		if p == "" {
			return searchstage.PathDefinition{}, fmt.Errorf("path contains an empty field name")
		}
		refs = append(refs, searchstage.Field(p))
	}
	for _, m := range members {
		if m == "" {
			return searchstage.PathDefinition{}, fmt.Errorf("members contains an empty member name")
		}
		refs = append(refs, searchstage.Member(m))
	}
	if len(refs) == 0 {
		return searchstage.PathDefinition{}, fmt.Errorf("path or members is required")
	}
	if len(refs) == 1 {
		return searchstage.SinglePath(refs[0]), nil
	}
	return searchstage.MultiPath(refs...), nil
}

// toDefinition builds the search definition a request describes.
func toDefinition(req *renderRequest) (searchstage.SearchDefinition, error) {
	if len(req.Clause) > 0 {
		if req.Slop != nil {
			return searchstage.SearchDefinition{}, fmt.Errorf("slop cannot be combined with a raw clause")
		}
		if req.Boost != nil {
			return searchstage.SearchDefinition{}, fmt.Errorf("boost cannot be combined with a raw clause")
		}
		return searchstage.FromJSON(string(req.Clause))
	}

	var opts []searchstage.ClauseOption
	if req.Boost != nil {
		boost, err := searchstage.BoostValue(*req.Boost)
		if err != nil {
			return searchstage.SearchDefinition{}, err
		}
		opts = append(opts, searchstage.WithScore(boost))
	}
	// Applied to every structured operator so that a slop on a non-phrase
	// clause fails the same way the library's own option does.
	if req.Slop != nil {
		opts = append(opts, searchstage.WithSlop(*req.Slop))
	}

	switch req.Operator {
	case "", "text":
		p, err := toPath(req.Path, req.Members)
		if err != nil {
			return searchstage.SearchDefinition{}, err
		}
		return searchstage.Text(req.Query, p, opts...)
	case "phrase":
		p, err := toPath(req.Path, req.Members)
		if err != nil {
			return searchstage.SearchDefinition{}, err
		}
		return searchstage.Phrase(req.Query, p, opts...)
	case "queryString":
		if req.DefaultPath == "" {
			return searchstage.SearchDefinition{}, fmt.Errorf("queryString: defaultPath is required")
		}
		return searchstage.QueryString(searchstage.Field(req.DefaultPath), req.Query, opts...)
	default:
		return searchstage.SearchDefinition{}, fmt.Errorf("unknown operator %q", req.Operator)
	}
}

// toStageOptions builds the stage modifiers a request describes.
// defaultIndex applies when the request names no index of its own.
func toStageOptions(req *renderRequest, defaultIndex string) ([]searchstage.StageOption, error) {
	var opts []searchstage.StageOption

	if req.Highlight != nil {
		p, err := toPath(req.Highlight.Path, req.Highlight.Members)
		if err != nil {
			return nil, fmt.Errorf("highlight: %w", err)
		}
		var hopts []searchstage.HighlightOption
		if req.Highlight.MaxCharsToExamine != nil {
			hopts = append(hopts, searchstage.MaxCharsToExamine(*req.Highlight.MaxCharsToExamine))
		}
		if req.Highlight.MaxNumPassages != nil {
			hopts = append(hopts, searchstage.MaxNumPassages(*req.Highlight.MaxNumPassages))
		}
		h, err := searchstage.NewHighlight(p, hopts...)
		if err != nil {
			return nil, err
		}
		opts = append(opts, searchstage.WithHighlight(h))
	}

	index := req.Index
	if index == "" {
		index = defaultIndex
	}
	if index != "" {
		opts = append(opts, searchstage.WithIndex(index))
	}
	return opts, nil
}

// operatorLabel names the clause source for metrics. Only known operators
// become labels; everything else shares one value to keep cardinality bounded.
func operatorLabel(req *renderRequest) string {
	if len(req.Clause) > 0 {
		return "clause"
	}
	switch req.Operator {
	case "":
		return "text"
	case "text", "phrase", "queryString":
		return req.Operator
	default:
		return "invalid"
	}
}
