package config

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMerge(t *testing.T) {
	base := MustParse(`{"amount": [1, 10], "payee": {"name": ["a", "b"], "iban": ["X"]}, "tags": ["x"]}`)
	overlay := MustParse(`{"payee": {"name": "fixed"}, "tags": ["y", "z"], "memo": ["m"]}`)

	got := Merge(base, overlay)

	want := `{"amount":[1,10],"payee":{"name":"fixed","iban":["X"]},"tags":["y","z"],"memo":["m"]}`
	if diff := cmp.Diff(want, got.String()); diff != "" {
		t.Fatalf("merge mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"amount", "payee", "tags"}, base.Keys()); diff != "" {
		t.Fatalf("base mutated (-want +got):\n%s", diff)
	}
}

func TestMerge_NonObjectOverlayReplaces(t *testing.T) {
	got := Merge(MustParse(`{"a": 1}`), MustParse(`[1, 2]`))
	if got.Kind() != KindArray || got.Len() != 2 {
		t.Fatalf("expected overlay array, got %s", got)
	}
}
