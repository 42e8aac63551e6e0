package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-samplify/pkg/config"
	"github.com/goliatone/go-samplify/pkg/document"
	"github.com/goliatone/go-samplify/pkg/shape"
)

// ShapeQuery points at the shapes a request could select.
type ShapeQuery struct {
	ShapeSource   document.Source
	ShapeDocument *document.Document
	ShapeFormat   string
}

// Shapes lists the registered shape names followed by those discovered in
// the queried document.
func (o *Orchestrator) Shapes(ctx context.Context, query ShapeQuery) ([]string, error) {
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	names := o.shapes.List()
	if query.ShapeSource == nil && query.ShapeDocument == nil {
		return names, nil
	}
	discovered, err := o.discover(ctx, query)
	if err != nil {
		return nil, err
	}
	for _, name := range discovered.List() {
		if !o.shapes.Has(name) {
			names = append(names, name)
		}
	}
	return names, nil
}

// resolveShape tries the inline shape, then the registered shapes, then
// the shape document.
func (o *Orchestrator) resolveShape(ctx context.Context, req Request) (string, shape.Shape, error) {
	name := strings.TrimSpace(req.Shape)
	if req.InlineShape != nil {
		if name == "" {
			name = shapeLabel(req.InlineShape)
		}
		return name, req.InlineShape, nil
	}

	if name != "" && o.shapes.Has(name) {
		sh, err := o.shapes.Get(name)
		if err != nil {
			return "", nil, fmt.Errorf("orchestrator: %w", err)
		}
		return name, sh, nil
	}

	query := ShapeQuery{
		ShapeSource:   req.ShapeSource,
		ShapeDocument: req.ShapeDocument,
		ShapeFormat:   req.ShapeFormat,
	}
	if query.ShapeSource == nil && query.ShapeDocument == nil {
		if name == "" {
			return o.onlyShape(o.shapes, "registered shapes")
		}
		return "", nil, fmt.Errorf("orchestrator: shape %q is not registered and no shape document was given (registered: %s)", name, listOrNone(o.shapes.List()))
	}

	discovered, err := o.discover(ctx, query)
	if err != nil {
		return "", nil, err
	}
	if name == "" {
		return o.onlyShape(discovered, "the shape document")
	}
	sh, err := discovered.Get(name)
	if err != nil {
		return "", nil, fmt.Errorf("orchestrator: shape %q not found (available: %s)", name, listOrNone(discovered.List()))
	}
	return name, sh, nil
}

func (o *Orchestrator) onlyShape(reg *shape.Registry, where string) (string, shape.Shape, error) {
	names := reg.List()
	if len(names) != 1 {
		return "", nil, fmt.Errorf("orchestrator: shape name is required, %s declare %d (%s)", where, len(names), listOrNone(names))
	}
	sh, err := reg.Get(names[0])
	if err != nil {
		return "", nil, fmt.Errorf("orchestrator: %w", err)
	}
	return names[0], sh, nil
}

func (o *Orchestrator) discover(ctx context.Context, query ShapeQuery) (*shape.Registry, error) {
	var doc document.Document
	if query.ShapeDocument != nil {
		doc = *query.ShapeDocument
	} else {
		loaded, err := o.load(ctx, query.ShapeSource, "shape document")
		if err != nil {
			return nil, err
		}
		doc = loaded
	}
	reg, err := o.discovery.Shapes(ctx, doc, query.ShapeFormat)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	return reg, nil
}

// resolveConfig loads the configuration, applies Select and runs the
// transformers.
func (o *Orchestrator) resolveConfig(ctx context.Context, req Request, shapeName string) (config.Node, error) {
	var root config.Node
	switch {
	case req.Config != nil:
		root = *req.Config
	case req.ConfigSource != nil:
		doc, err := o.load(ctx, req.ConfigSource, "config")
		if err != nil {
			return config.Node{}, err
		}
		parsed, err := config.Parse(doc.Raw())
		if err != nil {
			return config.Node{}, fmt.Errorf("orchestrator: parse config %s: %w", doc.Location(), err)
		}
		root = parsed
	default:
		return config.Node{}, errors.New("orchestrator: config or config source is required")
	}

	if strings.TrimSpace(req.Select) != "" {
		selected, err := config.Select(root, req.Select)
		if err != nil {
			return config.Node{}, fmt.Errorf("orchestrator: %w", err)
		}
		root = selected
	}

	for _, transformer := range o.transformers {
		if transformer == nil {
			continue
		}
		next, err := transformer.Transform(ctx, shapeName, root)
		if err != nil {
			return config.Node{}, fmt.Errorf("orchestrator: transform config: %w", err)
		}
		root = next
	}
	return root, nil
}

func (o *Orchestrator) load(ctx context.Context, src document.Source, what string) (document.Document, error) {
	if o.loader == nil {
		return document.Document{}, errors.New("orchestrator: loader is nil")
	}
	doc, err := o.loader.Load(ctx, src)
	if err != nil {
		return document.Document{}, fmt.Errorf("orchestrator: load %s: %w", what, err)
	}
	return doc, nil
}

func shapeLabel(sh shape.Shape) string {
	switch typed := sh.(type) {
	case shape.Record:
		return typed.Name
	case shape.Union:
		return typed.Name
	default:
		return sh.Kind().String()
	}
}

func listOrNone(names []string) string {
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ", ")
}
