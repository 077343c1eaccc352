package form

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// Fields accumulates the values entered across every step of a flow. Most fields hold one
// value; list fields such as picked images hold several.
type Fields map[string][]string

// Get returns the first value of key, trimmed.
func (f Fields) Get(key string) string {
	if vs := f[key]; len(vs) > 0 {
		return strings.TrimSpace(vs[0])
	}
	return ""
}

// Values returns every non-blank value of key.
func (f Fields) Values(key string) []string {
	out := make([]string, 0, len(f[key]))
	for _, v := range f[key] {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Has reports whether key has at least one non-blank value.
func (f Fields) Has(key string) bool {
	return len(f.Values(key)) > 0
}

func (f Fields) Set(key string, values ...string) {
	f[key] = slices.Clone(values)
}

func (f Fields) Add(key string, values ...string) {
	f[key] = append(f[key], values...)
}

// Flat returns the first value of every field.
func (f Fields) Flat() map[string]string {
	out := make(map[string]string, len(f))
	for k := range f {
		if v := f.Get(k); v != "" {
			out[k] = v
		}
	}
	return out
}

func (f Fields) clone() Fields {
	out := make(Fields, len(f))
	for k, vs := range f {
		out[k] = slices.Clone(vs)
	}
	return out
}

// UnmarshalJSON accepts each field as a single string, a list of strings or null, so
// screens can send {"title":"Bike","images":["a.jpg"]}.
func (f *Fields) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Fields, len(raw))
	for k, v := range raw {
		v = bytes.TrimSpace(v)
		switch {
		case bytes.Equal(v, []byte("null")):
			out[k] = nil
		case len(v) > 0 && v[0] == '"':
			var s string
			if err := json.Unmarshal(v, &s); err != nil {
				return fmt.Errorf("field %q: %w", k, err)
			}
			out[k] = []string{s}
		default:
			var vs []string
			if err := json.Unmarshal(v, &vs); err != nil {
				return fmt.Errorf("field %q must be a string or a list of strings: %w", k, err)
			}
			out[k] = vs
		}
	}
	*f = out
	return nil
}
