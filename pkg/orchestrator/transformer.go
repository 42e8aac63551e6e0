package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/goliatone/go-samplify/pkg/config"
)

// Transformer rewrites a configuration tree before it is sampled.
// Implementations can pin values, widen ranges or drop variants.
type Transformer interface {
	Transform(ctx context.Context, shapeName string, cfg config.Node) (config.Node, error)
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, shapeName string, cfg config.Node) (config.Node, error)

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, shapeName string, cfg config.Node) (config.Node, error) {
	if fn == nil {
		return cfg, nil
	}
	return fn(ctx, shapeName, cfg)
}

// OverlayTransformer merges a declarative overlay document onto the
// configuration with config.Merge. Objects merge key by key; every other
// value replaces the base:
//
//	{
//	  "currency": "EUR",
//	  "status": {"variants": ["Active"]}
//	}
//
// A top-level "shapes" object scopes overlays by shape name instead:
//
//	{"shapes": {"Payment": {"currency": "EUR"}}}
type OverlayTransformer struct {
	overlay config.Node
	scoped  bool
}

// NewOverlayTransformer constructs a transformer from a JSON or YAML
// document.
func NewOverlayTransformer(data []byte) (*OverlayTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("overlay transformer: document is empty")
	}
	overlay, err := config.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("overlay transformer: parse document: %w", err)
	}
	if overlay.Kind() != config.KindObject {
		return nil, fmt.Errorf("overlay transformer: document must be an object, got %s", overlay.Kind())
	}
	t := &OverlayTransformer{overlay: overlay}
	if scoped, ok := overlay.Get("shapes"); ok && overlay.Len() == 1 && scoped.Kind() == config.KindObject {
		t.overlay, t.scoped = scoped, true
	}
	return t, nil
}

// NewOverlayTransformerFromFS loads an overlay document from fsys.
func NewOverlayTransformerFromFS(fsys fs.FS, path string) (*OverlayTransformer, error) {
	if fsys == nil {
		return nil, errors.New("overlay transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("overlay transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("overlay transformer: read %s: %w", path, err)
	}
	return NewOverlayTransformer(data)
}

// Transform applies the overlay. Scoped overlays without an entry for
// shapeName leave cfg unchanged.
func (t *OverlayTransformer) Transform(ctx context.Context, shapeName string, cfg config.Node) (config.Node, error) {
	if err := ctx.Err(); err != nil {
		return config.Node{}, err
	}
	overlay := t.overlay
	if t.scoped {
		scoped, ok := overlay.Get(shapeName)
		if !ok {
			return cfg, nil
		}
		overlay = scoped
	}
	return config.Merge(cfg, overlay), nil
}
