// Package jsonutil wraps github.com/go-json-experiment/json with the
// options used across codeaudit: map keys are always emitted in sorted
// order so that repeated runs produce identical output.
//
// Usage:
//
//	data, err := jsonutil.MarshalIndent(report)
//	err := jsonutil.Unmarshal(data, &snap)
package jsonutil

import (
	"io"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// Indent is the indentation used for human-facing documents.
const Indent = "  "

// Unmarshal parses the JSON-encoded data and stores the result in v.
func Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// Marshal returns the compact, deterministic JSON encoding of v.
func Marshal(v any) ([]byte, error) {
	return json.Marshal(v, json.Deterministic(true))
}

// MarshalIndent returns the indented, deterministic JSON encoding of v.
func MarshalIndent(v any) ([]byte, error) {
	return json.Marshal(v, json.Deterministic(true), jsontext.WithIndent(Indent))
}

// Write encodes v indented to w followed by a newline.
func Write(w io.Writer, v any) error {
	if err := json.MarshalWrite(w, v, json.Deterministic(true), jsontext.WithIndent(Indent)); err != nil {
		return err
	}
	_, err := w.Write([]byte{'\n'})
	return err
}
