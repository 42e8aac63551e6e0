package discovery

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-samplify/pkg/document"
	"github.com/goliatone/go-samplify/pkg/shape"
)

type stubAdapter struct {
	name   string
	marker string
}

func (s stubAdapter) Name() string { return s.name }

func (s stubAdapter) Detect(_ document.Source, raw []byte) bool {
	return bytes.Contains(raw, []byte(s.marker))
}

func (s stubAdapter) Shapes(context.Context, document.Document) (*shape.Registry, error) {
	reg := shape.NewRegistry()
	reg.MustRegister(s.name, shape.Text())
	return reg, nil
}

func TestRegistry_RegisterAndList(t *testing.T) {
	reg, err := NewRegistry(stubAdapter{name: "B"}, stubAdapter{name: "a"})
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	if diff := cmp.Diff([]string{"a", "b"}, reg.List()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if err := reg.Register(stubAdapter{name: " A "}); err == nil {
		t.Fatalf("expected duplicate error")
	}
	if err := reg.Register(nil); err == nil {
		t.Fatalf("expected nil adapter error")
	}
	if _, err := reg.Get("missing"); err == nil {
		t.Fatalf("expected missing adapter error")
	}
}

func TestRegistry_Resolve(t *testing.T) {
	reg, _ := NewRegistry(
		stubAdapter{name: "schema", marker: "$schema"},
		stubAdapter{name: "api", marker: "openapi"},
	)

	doc := document.MustNew(document.SourceFromFS("a.json"), []byte(`{"$schema": "x"}`))
	shapes, err := reg.Shapes(context.Background(), doc, "")
	if err != nil {
		t.Fatalf("shapes: %v", err)
	}
	if !shapes.Has("schema") {
		t.Fatalf("expected shapes from the schema adapter, got %v", shapes.List())
	}

	forced, err := reg.Resolve(doc, "API")
	if err != nil || forced.Name() != "api" {
		t.Fatalf("expected explicit format to win, got %v %v", forced, err)
	}

	none := document.MustNew(document.SourceFromFS("b.json"), []byte(`{}`))
	if _, err := reg.Resolve(none, ""); err == nil || !strings.Contains(err.Error(), "no adapter") {
		t.Fatalf("expected no adapter error, got %v", err)
	}

	both := document.MustNew(document.SourceFromFS("c.json"), []byte(`{"$schema": 1, "openapi": 2}`))
	if _, err := reg.Resolve(both, ""); err == nil || !strings.Contains(err.Error(), "multiple adapters") {
		t.Fatalf("expected ambiguity error, got %v", err)
	}
}
