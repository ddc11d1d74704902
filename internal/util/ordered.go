package util

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// OrderedObject is a JSON object that remembers the order its keys appeared
// in. encoding/json map decoding discards ordering, which matters to us
// because catalog and standards files encode display order positionally.
type OrderedObject struct {
	Keys   []string
	Values map[string]json.RawMessage
}

func (o *OrderedObject) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected object, got %v", tok)
	}
	o.Keys = nil
	o.Values = map[string]json.RawMessage{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key := keyTok.(string)
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("key %q: %w", key, err)
		}
		if _, dup := o.Values[key]; !dup {
			o.Keys = append(o.Keys, key)
		}
		o.Values[key] = raw
	}
	_, err = dec.Token() // closing brace
	return err
}

// Get returns the raw value for key and whether it was present.
func (o *OrderedObject) Get(key string) (json.RawMessage, bool) {
	v, ok := o.Values[key]
	return v, ok
}

// IsObject reports whether raw encodes a JSON object.
func IsObject(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	return len(t) > 0 && t[0] == '{'
}

// IsArray reports whether raw encodes a JSON array.
func IsArray(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	return len(t) > 0 && t[0] == '['
}

// DecodeString decodes raw as a JSON string, falling back to the raw text
// for bare numbers.
func DecodeString(raw json.RawMessage) (string, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, true
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String(), true
	}
	return "", false
}

// DecodeFloat decodes raw as a number, accepting numeric strings too.
func DecodeFloat(raw json.RawMessage) (float64, bool) {
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		var f2 float64
		if _, err := fmt.Sscanf(s, "%g", &f2); err == nil {
			return f2, true
		}
	}
	return 0, false
}
