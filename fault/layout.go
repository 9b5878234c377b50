package fault

import (
	"bytes"
	"encoding/json"
)

// Layout is the envelope shared by every class on the wire. Class-specific
// fields are written into the same JSON object after the layout fields.
type Layout struct {
	ClassName       string            `json:"ClassName"`
	Message         string            `json:"Message"`
	StackTrace      string            `json:"StackTrace,omitempty"`
	Source          string            `json:"Source,omitempty"`
	HelpLink        string            `json:"HelpLink,omitempty"`
	Code            int32             `json:"Code"`
	Data            map[string]string `json:"Data,omitempty"`
	InnerException  json.RawMessage   `json:"InnerException,omitempty"`
	InnerExceptions []json.RawMessage `json:"InnerExceptions,omitempty"`
}

// DecodeLayout reads the envelope of a payload, ignoring class fields.
func DecodeLayout(payload []byte) (*Layout, error) {
	var l Layout
	if err := json.Unmarshal(payload, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

// merge appends the members of the JSON object extra to the object base.
// Both must be JSON objects.
func merge(base, extra []byte) []byte {
	extra = bytes.TrimSpace(extra)
	if len(extra) <= 2 {
		return base
	}
	base = bytes.TrimSpace(base)
	out := make([]byte, 0, len(base)+len(extra))
	out = append(out, base[:len(base)-1]...)
	out = append(out, ',')
	out = append(out, extra[1:]...)
	return out
}
