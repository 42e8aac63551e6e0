package openapi

import (
	"context"
	"errors"
	"strings"

	"github.com/goliatone/go-samplify/internal/openapi/parser"
	"github.com/goliatone/go-samplify/pkg/config"
	"github.com/goliatone/go-samplify/pkg/discovery"
	"github.com/goliatone/go-samplify/pkg/document"
	"github.com/goliatone/go-samplify/pkg/shape"
)

const DefaultAdapterName = "openapi"

// Adapter derives shapes from the components.schemas section of OpenAPI 3
// documents.
type Adapter struct {
	options ParserOptions
}

var _ discovery.Adapter = (*Adapter)(nil)

// NewAdapter constructs an OpenAPI adapter.
func NewAdapter(options ...ParserOption) *Adapter {
	return &Adapter{options: NewParserOptions(options...)}
}

// Name returns the adapter registry identifier.
func (a *Adapter) Name() string {
	return DefaultAdapterName
}

// Detect reports whether the raw payload appears to be an OpenAPI 3 document.
func (a *Adapter) Detect(_ document.Source, raw []byte) bool {
	root, err := config.Parse(raw)
	if err != nil {
		return false
	}
	version, ok := root.Get("openapi")
	if !ok {
		return false
	}
	s, ok := version.AsString()
	return ok && strings.HasPrefix(strings.TrimSpace(s), "3.")
}

// Shapes converts every component schema into a named shape.
func (a *Adapter) Shapes(ctx context.Context, doc document.Document) (*shape.Registry, error) {
	if a == nil {
		return nil, errors.New("openapi adapter: adapter is nil")
	}
	return parser.Shapes(ctx, doc.Raw(), parser.Options{Validate: a.options.Validate})
}
