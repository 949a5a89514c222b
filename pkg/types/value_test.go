package types

import (
	"encoding/json"
	"testing"
)

func TestMappingOrder(t *testing.T) {
	m := NewMapping(
		Entry{Key: "b", Value: String("1")},
		Entry{Key: "a", Value: String("2")},
	)
	m.Set("c", String("3"))
	m.Set("b", String("4"))

	if m.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", m.Len())
	}
	var keys []string
	for _, e := range m.Entries() {
		keys = append(keys, e.Key)
	}
	if got := keys[0] + keys[1] + keys[2]; got != "bac" {
		t.Errorf("key order = %q, want bac", got)
	}
	if v, _ := m.Get("b"); v != String("4") {
		t.Errorf("Get(b) = %v, want overwritten value", v)
	}
	if _, ok := m.Get("missing"); ok {
		t.Error("Get(missing) reported ok")
	}

	out, err := json.Marshal(m)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `{"b":"4","a":"2","c":"3"}` {
		t.Errorf("MarshalJSON = %s", out)
	}
}

func TestDecodeValue(t *testing.T) {
	v, err := DecodeValue([]byte(`{"z":"1","sources":[{"src":"a.mp4"},"b",7,true,null],"a":{"x":"y"}}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m, ok := v.(*Mapping)
	if !ok {
		t.Fatalf("expected *Mapping, got %T", v)
	}
	entries := m.Entries()
	if len(entries) != 3 || entries[0].Key != "z" || entries[1].Key != "sources" || entries[2].Key != "a" {
		t.Fatalf("unexpected entries %+v", entries)
	}

	seq, ok := entries[1].Value.(Sequence)
	if !ok || len(seq) != 5 {
		t.Fatalf("sources = %#v", entries[1].Value)
	}
	if seq[1] != String("b") {
		t.Errorf("seq[1] = %#v", seq[1])
	}
	for i := 2; i < 5; i++ {
		if seq[i] != nil {
			t.Errorf("seq[%d] = %#v, want nil", i, seq[i])
		}
	}

	out, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `{"z":"1","sources":[{"src":"a.mp4"},"b",null,null,null],"a":{"x":"y"}}` {
		t.Errorf("round trip = %s", out)
	}
}

func TestDecodeValue_Errors(t *testing.T) {
	for _, in := range []string{``, `{"a":`, `"a" "b"`, `[1,]`} {
		if _, err := DecodeValue([]byte(in)); err == nil {
			t.Errorf("DecodeValue(%q) expected error", in)
		}
	}
}
