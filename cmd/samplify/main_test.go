package main

import (
	"strings"
	"testing"

	"github.com/goliatone/go-samplify/pkg/document"
)

func TestParseConfigSource(t *testing.T) {
	src, err := parseConfigSource("-", strings.NewReader("amount: [1, 10]\n"))
	if err != nil {
		t.Fatalf("stdin source: %v", err)
	}
	inline, ok := src.(document.InlineSource)
	if !ok {
		t.Fatalf("expected inline source, got %T", src)
	}
	if got := string(inline.Data()); got != "amount: [1, 10]\n" {
		t.Fatalf("unexpected data %q", got)
	}
	if shouldPrompt(true, "", src) {
		t.Fatalf("stdin config must not prompt")
	}

	src, err = parseConfigSource(" config/samples.yaml ", nil)
	if err != nil {
		t.Fatalf("file source: %v", err)
	}
	if src.Kind() != document.SourceKindFile || src.Location() != "config/samples.yaml" {
		t.Fatalf("unexpected source %s %q", src.Kind(), src.Location())
	}

	if _, err := parseConfigSource("", nil); err == nil {
		t.Fatalf("expected missing config error")
	}
	if _, err := parseConfigSource("-", strings.NewReader("{")); err == nil {
		t.Fatalf("expected parse error for malformed stdin")
	}
}
