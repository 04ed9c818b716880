package models

import "encoding/json"

type Meta struct {
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`
}

// Page is the uniform shape every list screen renders. Items are kept raw; the
// screens decide how to decode them.
type Page struct {
	Items []json.RawMessage `json:"items"`
	Meta  Meta              `json:"meta"`
}

// EmptyPage is what a missing or unreadable list degrades to.
func EmptyPage() Page {
	return Page{
		Items: []json.RawMessage{},
		Meta:  Meta{CurrentPage: 1, LastPage: 1, PerPage: 0, Total: 0},
	}
}
