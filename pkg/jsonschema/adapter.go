package jsonschema

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-samplify/pkg/config"
	"github.com/goliatone/go-samplify/pkg/discovery"
	"github.com/goliatone/go-samplify/pkg/document"
	"github.com/goliatone/go-samplify/pkg/shape"
)

const DefaultAdapterName = "jsonschema"

// Adapter derives shapes from JSON Schema documents written as JSON or YAML.
type Adapter struct {
	requireDialect bool
}

var _ discovery.Adapter = (*Adapter)(nil)

// AdapterOption configures a JSON Schema adapter.
type AdapterOption func(*Adapter)

// WithRequiredDialect rejects documents without a draft 2020-12 $schema.
func WithRequiredDialect() AdapterOption {
	return func(a *Adapter) {
		a.requireDialect = true
	}
}

// NewAdapter constructs a JSON Schema adapter.
func NewAdapter(options ...AdapterOption) *Adapter {
	a := &Adapter{}
	for _, opt := range options {
		if opt != nil {
			opt(a)
		}
	}
	return a
}

// Name returns the adapter registry identifier.
func (a *Adapter) Name() string {
	return DefaultAdapterName
}

// Detect reports whether the raw payload appears to be JSON Schema.
func (a *Adapter) Detect(_ document.Source, raw []byte) bool {
	root, err := config.Parse(raw)
	if err != nil || root.Kind() != config.KindObject {
		return false
	}
	for _, key := range []string{"openapi", "swagger"} {
		if _, ok := root.Get(key); ok {
			return false
		}
	}
	for _, key := range []string{"$schema", "$id", "$defs", "definitions", "properties", "type", "items", "oneOf"} {
		if _, ok := root.Get(key); ok {
			return true
		}
	}
	return false
}

// Shapes registers every $defs entry under its key and the root schema
// under its title.
func (a *Adapter) Shapes(ctx context.Context, doc document.Document) (*shape.Registry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	root, err := config.Parse(doc.Raw())
	if err != nil {
		return nil, fmt.Errorf("jsonschema: %w", err)
	}
	if root.Kind() != config.KindObject {
		return nil, errors.New("jsonschema: schema must be an object")
	}
	if err := a.validateDialect(root); err != nil {
		return nil, err
	}

	defs, err := collectDefs(root)
	if err != nil {
		return nil, err
	}
	conv := newConverter(defs)
	reg := shape.NewRegistry()
	for _, key := range defs.order {
		s, err := conv.def(key)
		if err != nil {
			return nil, err
		}
		if err := reg.Register(key, s); err != nil {
			return nil, fmt.Errorf("jsonschema: %w", err)
		}
	}

	if title := readString(root, "title"); title != "" && describesValue(root) && !reg.Has(title) {
		s, err := conv.convert(root, title, "#")
		if err != nil {
			return nil, err
		}
		if err := reg.Register(title, s); err != nil {
			return nil, fmt.Errorf("jsonschema: %w", err)
		}
	}

	if reg.Len() == 0 {
		return nil, fmt.Errorf("jsonschema: %s declares no named shapes (add a title or $defs)", doc.Location())
	}
	return reg, nil
}

func (a *Adapter) validateDialect(root config.Node) error {
	value := readString(root, "$schema")
	if value == "" {
		if a.requireDialect {
			return errors.New("jsonschema: $schema is required")
		}
		return nil
	}
	if !isDraft202012(value) {
		return fmt.Errorf("jsonschema: unsupported $schema %q", value)
	}
	return nil
}

func isDraft202012(value string) bool {
	trimmed := strings.TrimSuffix(strings.TrimSpace(value), "#")
	switch trimmed {
	case "https://json-schema.org/draft/2020-12/schema", "http://json-schema.org/draft/2020-12/schema":
		return true
	default:
		return false
	}
}

func describesValue(node config.Node) bool {
	for _, key := range []string{"type", "properties", "items", "oneOf", "$ref", "enum", "const"} {
		if _, ok := node.Get(key); ok {
			return true
		}
	}
	return false
}
