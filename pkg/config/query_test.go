package config

import (
	"strings"
	"testing"
)

func TestSelect(t *testing.T) {
	doc := MustParse(`{
  "payment": {"amount": [10, 20], "currency": ["USD"]},
  "status": {"variants": ["Active"]}
}`)

	selected, err := Select(doc, ".payment")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	amount, ok := selected.Get("amount")
	if !ok || amount.Len() != 2 {
		t.Fatalf("expected amount range, got %s", selected)
	}
}

func TestSelect_EmptyExpressionReturnsInput(t *testing.T) {
	doc := MustParse(`{"a": 1}`)
	for _, expr := range []string{"", " ", "."} {
		selected, err := Select(doc, expr)
		if err != nil {
			t.Fatalf("select %q: %v", expr, err)
		}
		if !selected.Equal(doc) {
			t.Fatalf("select %q changed the document: %s", expr, selected)
		}
	}
}

func TestSelect_Errors(t *testing.T) {
	doc := MustParse(`{"items": [1, 2]}`)

	cases := map[string]string{
		".items[]":   "more than one value",
		"empty":      "no value",
		".items | (": "parse selector",
		".items.foo": "evaluate selector",
	}
	for expr, want := range cases {
		_, err := Select(doc, expr)
		if err == nil {
			t.Fatalf("select %q: expected error", expr)
		}
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("select %q: expected %q in %v", expr, want, err)
		}
	}
}
