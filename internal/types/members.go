//nolint:revive // types is a standard Go package name pattern
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
)

// members is the part of a stored JSON object that a record struct would lose on a
// rewrite: keys it does not model, and modelled keys whose value is null or [] (which
// omitempty would drop). Keys keep the order they were read in.
type members struct {
	keys   []string
	values map[string]json.RawMessage
}

// memberLayout lists the JSON keys a record models, in output order, and which of
// them are tagged omitempty. It must follow the struct's json tags.
type memberLayout struct {
	modeled   []string
	omittable []string
}

// decodeMembers reads the top-level members of a JSON object in order.
func decodeMembers(data []byte) (*members, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected JSON object, got %v", tok)
	}

	m := &members{values: make(map[string]json.RawMessage)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", tok)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		if _, seen := m.values[key]; !seen {
			m.keys = append(m.keys, key)
		}
		m.values[key] = value
	}
	return m, nil
}

// extraMembers returns the members of data that a struct with layout would drop, or
// nil when there are none.
func extraMembers(data []byte, layout memberLayout) (*members, error) {
	all, err := decodeMembers(data)
	if err != nil {
		return nil, err
	}

	extra := &members{values: make(map[string]json.RawMessage)}
	for _, key := range all.keys {
		value := all.values[key]
		keep := !slices.Contains(layout.modeled, key) ||
			(slices.Contains(layout.omittable, key) && isEmptyValue(value))
		if !keep {
			continue
		}
		extra.keys = append(extra.keys, key)
		extra.values[key] = value
	}

	if len(extra.keys) == 0 {
		return nil, nil
	}
	return extra, nil
}

// marshalWithMembers encodes fields and merges extra back in. Modelled keys come first
// in layout order, with the encoded field winning over a kept value; unmodelled keys
// follow in the order they were read.
func marshalWithMembers(fields any, layout memberLayout, extra *members) ([]byte, error) {
	data, err := encodeCompact(fields)
	if err != nil || extra == nil {
		return data, err
	}

	known, err := decodeMembers(data)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	write := func(key string, value json.RawMessage) error {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		k, err := encodeCompact(key)
		if err != nil {
			return err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(value)
		return nil
	}

	for _, key := range layout.modeled {
		value, ok := known.values[key]
		if !ok {
			value, ok = extra.values[key]
		}
		if !ok {
			continue
		}
		if err := write(key, value); err != nil {
			return nil, err
		}
	}
	for _, key := range extra.keys {
		if slices.Contains(layout.modeled, key) {
			continue
		}
		if err := write(key, extra.values[key]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// encodeCompact marshals v without HTML escaping and without the trailing newline.
func encodeCompact(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func isEmptyValue(value json.RawMessage) bool {
	var buf bytes.Buffer
	if err := json.Compact(&buf, value); err != nil {
		return false
	}
	s := buf.String()
	return s == "null" || s == "[]"
}

func isNull(data []byte) bool {
	return string(bytes.TrimSpace(data)) == "null"
}
