// Package normalize turns the backend's response envelopes into the uniform
// shapes the console works with. Missing fields never fail: they degrade to
// documented defaults. Only a body whose shape matches nothing known is
// reported, as ErrMalformedResponse, and even then a usable empty value is
// returned alongside the error.
package normalize

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/Cheertaboi/maxreward-console/internal/models"
)

var ErrMalformedResponse = errors.New("malformed_response")

// Page extracts a paginated list from a response body. collection is the key
// the screen's paginator may be nested under (data.<collection>.data); it may
// be empty. Recognised shapes, in order:
//
//	[...]                           bare array
//	{"data": [...]}                 array under data (meta read from the root)
//	{"data": {"data": [...]}}       paginator under data
//	{"data": {"<collection>": {"data": [...]}}}
//	{"data": {"<collection>": [...]}}
//	{"data": {"<any>": {"data": [...]}}}
func Page(raw []byte, collection string) (models.Page, error) {
	if !gjson.ValidBytes(raw) {
		return models.EmptyPage(), ErrMalformedResponse
	}
	root := gjson.ParseBytes(raw)

	if root.IsArray() {
		return bare(root), nil
	}
	data := root.Get("data")
	switch {
	case data.IsArray():
		return paginated(root, data), nil
	case data.IsObject():
		if inner := data.Get("data"); inner.IsArray() {
			return paginated(data, inner), nil
		}
		if collection != "" {
			c := data.Get(gjson.Escape(collection))
			if inner := c.Get("data"); c.IsObject() && inner.IsArray() {
				return paginated(c, inner), nil
			}
			if c.IsArray() {
				return bare(c), nil
			}
		}
		var found *models.Page
		data.ForEach(func(_, child gjson.Result) bool {
			if inner := child.Get("data"); child.IsObject() && inner.IsArray() {
				p := paginated(child, inner)
				found = &p
				return false
			}
			return true
		})
		if found != nil {
			return *found, nil
		}
	}
	return models.EmptyPage(), ErrMalformedResponse
}

func items(arr gjson.Result) []json.RawMessage {
	elems := arr.Array()
	out := make([]json.RawMessage, 0, len(elems))
	for _, e := range elems {
		out = append(out, json.RawMessage(e.Raw))
	}
	return out
}

func bare(arr gjson.Result) models.Page {
	it := items(arr)
	return models.Page{
		Items: it,
		Meta:  models.Meta{CurrentPage: 1, LastPage: 1, PerPage: len(it), Total: len(it)},
	}
}

func paginated(paginator, arr gjson.Result) models.Page {
	it := items(arr)
	meta := models.Meta{
		CurrentPage: intOr(paginator.Get("current_page"), 1),
		PerPage:     intOr(paginator.Get("per_page"), len(it)),
		Total:       intOr(paginator.Get("total"), len(it)),
	}
	if meta.CurrentPage < 1 {
		meta.CurrentPage = 1
	}
	if meta.PerPage < 0 {
		meta.PerPage = len(it)
	}
	if meta.Total < 0 {
		meta.Total = len(it)
	}
	meta.LastPage = intOr(paginator.Get("last_page"), lastPage(meta.Total, meta.PerPage))
	if meta.LastPage < 1 {
		meta.LastPage = 1
	}
	return models.Page{Items: it, Meta: meta}
}

func lastPage(total, perPage int) int {
	if perPage < 1 || total < 1 {
		return 1
	}
	return (total + perPage - 1) / perPage
}

// intOr reads an integer that may arrive as a number or a numeric string.
func intOr(r gjson.Result, fallback int) int {
	switch r.Type {
	case gjson.Number:
		return int(r.Int())
	case gjson.String:
		if n, err := strconv.Atoi(strings.TrimSpace(r.Str)); err == nil {
			return n
		}
	}
	return fallback
}
