package search

import (
	"encoding/json"
)

// Request is a single search_in_file invocation
type Request struct {
	FilePath string `json:"filePath"`
	Keyword  string `json:"keyword"`
}

// Validate checks the request before it reaches the executor.
// The keyword is allowed to be empty. A blank path is still a path and is
// left for the read to reject.
func (r Request) Validate() error {
	if r.FilePath == "" {
		return InvalidArgument("filePath must not be empty")
	}
	return nil
}

// LineMatch is one matching line
type LineMatch struct {
	Line    int    `json:"line" jsonschema_description:"Line number where the match was found"`
	Content string `json:"content" jsonschema_description:"Content of the line containing the match"`
}

// Result holds the matches of a search in ascending line order.
// TotalMatches always equals len(Matches); use NewResult to build one.
type Result struct {
	Matches      []LineMatch `json:"matches" jsonschema_description:"Lines containing the keyword"`
	TotalMatches int         `json:"totalMatches" jsonschema_description:"Total number of matches found"`
}

// NewResult builds a Result whose count is derived from matches
func NewResult(matches []LineMatch) *Result {
	if matches == nil {
		matches = []LineMatch{}
	}
	return &Result{
		Matches:      matches,
		TotalMatches: len(matches),
	}
}

// MarshalJSON re-derives totalMatches so an edited Result cannot encode
// an inconsistent count.
func (r Result) MarshalJSON() ([]byte, error) {
	type wire Result
	w := wire(r)
	if w.Matches == nil {
		w.Matches = []LineMatch{}
	}
	w.TotalMatches = len(w.Matches)
	return json.Marshal(w)
}
