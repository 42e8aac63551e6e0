package config

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse_JSONKeepsKeyOrder(t *testing.T) {
	node, err := Parse([]byte(`{"zeta":1,"alpha":[1.5,"x",true,null],"mid":{"b":2,"a":1}}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if diff := cmp.Diff([]string{"zeta", "alpha", "mid"}, node.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
	mid, _ := node.Get("mid")
	if diff := cmp.Diff([]string{"b", "a"}, mid.Keys()); diff != "" {
		t.Fatalf("nested keys mismatch (-want +got):\n%s", diff)
	}
	if got := node.String(); got != `{"zeta":1,"alpha":[1.5,"x",true,null],"mid":{"b":2,"a":1}}` {
		t.Fatalf("unexpected round trip %s", got)
	}
}

func TestParse_YAML(t *testing.T) {
	raw := []byte(`
amount: [10, 1000.5]
currency:
  - USD
  - EUR
enabled: true
note: ~
defaults: &base
  reason: ["Violation"]
copy: *base
`)
	node, err := Parse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if diff := cmp.Diff([]string{"amount", "currency", "enabled", "note", "defaults", "copy"}, node.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}

	amount, _ := node.Get("amount")
	first, _ := amount.Index(0)
	if v, ok := first.AsInt(); !ok || v != 10 {
		t.Fatalf("expected integer 10, got %v (ok=%v)", v, ok)
	}
	second, _ := amount.Index(1)
	if _, ok := second.AsInt(); ok {
		t.Fatalf("1000.5 must not read as an integer")
	}

	note, ok := node.Get("note")
	if !ok || !note.IsNull() {
		t.Fatalf("expected note to be present and null")
	}

	copied, _ := node.Get("copy")
	defaults, _ := node.Get("defaults")
	if !copied.Equal(defaults) {
		t.Fatalf("alias should expand to the anchored value, got %s", copied)
	}
}

func TestParse_Empty(t *testing.T) {
	if _, err := Parse([]byte("  \n")); err == nil {
		t.Fatalf("expected error for empty document")
	}
}

func TestNode_GetDistinguishesAbsentFromNull(t *testing.T) {
	node := MustParse(`{"present": null}`)

	if _, ok := node.Get("missing"); ok {
		t.Fatalf("missing key reported present")
	}
	value, ok := node.Get("present")
	if !ok {
		t.Fatalf("null key reported absent")
	}
	if value.Kind() != KindNull {
		t.Fatalf("expected null, got %s", value.Kind())
	}
}

func TestNode_AsIntAcceptsIntegralFloats(t *testing.T) {
	if v, ok := Float(10.0).AsInt(); !ok || v != 10 {
		t.Fatalf("expected 10, got %d (ok=%v)", v, ok)
	}
	if _, ok := Float(10.25).AsInt(); ok {
		t.Fatalf("fractional float must not read as integer")
	}
	if _, ok := String("10").AsInt(); ok {
		t.Fatalf("string must not read as integer")
	}
}

func TestObject_RepeatedKeyKeepsFirstPosition(t *testing.T) {
	node := Object(
		Member{Key: "a", Value: Int(1)},
		Member{Key: "b", Value: Int(2)},
		Member{Key: "a", Value: Int(3)},
	)
	if diff := cmp.Diff([]string{"a", "b"}, node.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
	a, _ := node.Get("a")
	if v, _ := a.AsInt(); v != 3 {
		t.Fatalf("expected later value to win, got %d", v)
	}
}

func TestFromInterface_RoundTrip(t *testing.T) {
	input := map[string]any{
		"b": []any{1, 2.5, "x"},
		"a": map[string]any{"ok": true, "none": nil},
	}
	node, err := FromInterface(input)
	if err != nil {
		t.Fatalf("from interface: %v", err)
	}
	if diff := cmp.Diff([]string{"a", "b"}, node.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(input, node.Interface()); diff != "" {
		t.Fatalf("interface mismatch (-want +got):\n%s", diff)
	}
}

func TestFromInterface_Unsupported(t *testing.T) {
	if _, err := FromInterface(struct{}{}); err == nil {
		t.Fatalf("expected error for struct input")
	}
}
