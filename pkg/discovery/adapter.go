package discovery

import (
	"context"

	"github.com/goliatone/go-samplify/pkg/document"
	"github.com/goliatone/go-samplify/pkg/shape"
)

// Adapter turns a schema document into named shapes.
type Adapter interface {
	Name() string
	Detect(src document.Source, raw []byte) bool
	Shapes(ctx context.Context, doc document.Document) (*shape.Registry, error)
}
