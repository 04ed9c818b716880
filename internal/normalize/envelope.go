package normalize

import (
	"encoding/json"

	"github.com/tidwall/gjson"
)

// Envelope is the {success, message, data} wrapper every backend response
// uses.
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// DecodeEnvelope reads the wrapper. A body without a success flag is taken as
// successful; the HTTP status is the caller's to judge.
func DecodeEnvelope(raw []byte) (Envelope, error) {
	if !gjson.ValidBytes(raw) {
		return Envelope{}, ErrMalformedResponse
	}
	root := gjson.ParseBytes(raw)
	if !root.IsObject() {
		return Envelope{Success: true, Data: json.RawMessage(root.Raw)}, nil
	}
	env := Envelope{
		Success: true,
		Message: root.Get("message").String(),
	}
	if s := root.Get("success"); s.Exists() {
		env.Success = s.Bool()
	}
	if d := root.Get("data"); d.Exists() {
		env.Data = json.RawMessage(d.Raw)
	}
	return env, nil
}

// Message pulls a human readable message out of an error body, trying the
// Laravel validation shape (errors.<field>[0]) when message is empty.
func Message(raw []byte) string {
	if !gjson.ValidBytes(raw) {
		return ""
	}
	root := gjson.ParseBytes(raw)
	if m := root.Get("message").String(); m != "" {
		return m
	}
	var first string
	root.Get("errors").ForEach(func(_, v gjson.Result) bool {
		if v.IsArray() {
			first = v.Get("0").String()
		} else {
			first = v.String()
		}
		return first == ""
	})
	return first
}
