package util

import (
	"encoding/json"
	"testing"
)

func TestOrderedObjectKeyOrder(t *testing.T) {
	src := `{"zeta": 1, "alpha": {"x": 2}, "mid": "v", "zeta": 3}`
	var obj OrderedObject
	if err := json.Unmarshal([]byte(src), &obj); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := []string{"zeta", "alpha", "mid"}
	if len(obj.Keys) != len(want) {
		t.Fatalf("keys: got %v, want %v", obj.Keys, want)
	}
	for i := range want {
		if obj.Keys[i] != want[i] {
			t.Errorf("key[%d] = %q, want %q", i, obj.Keys[i], want[i])
		}
	}
	// duplicate key keeps last value
	if v, ok := obj.Get("zeta"); !ok || string(v) != "3" {
		t.Errorf("zeta = %s", v)
	}
}

func TestDecodeHelpers(t *testing.T) {
	if s, ok := DecodeString(json.RawMessage(`"M10"`)); !ok || s != "M10" {
		t.Errorf("DecodeString string: %q %v", s, ok)
	}
	if s, ok := DecodeString(json.RawMessage(`12.5`)); !ok || s != "12.5" {
		t.Errorf("DecodeString number: %q %v", s, ok)
	}
	if f, ok := DecodeFloat(json.RawMessage(`"3.75"`)); !ok || f != 3.75 {
		t.Errorf("DecodeFloat string: %v %v", f, ok)
	}
	if f, ok := DecodeFloat(json.RawMessage(`42`)); !ok || f != 42 {
		t.Errorf("DecodeFloat number: %v %v", f, ok)
	}
	if _, ok := DecodeFloat(json.RawMessage(`"n/a"`)); ok {
		t.Error("DecodeFloat accepted non-numeric")
	}
	if !IsObject(json.RawMessage(` {"a":1}`)) || IsObject(json.RawMessage(`[1]`)) {
		t.Error("IsObject misclassified")
	}
	if !IsArray(json.RawMessage(`[1]`)) || IsArray(json.RawMessage(`{}`)) {
		t.Error("IsArray misclassified")
	}
}
