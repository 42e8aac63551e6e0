package render

import (
	"context"
)

// Renderer turns a batch of sampled values into bytes (JSON, YAML, text).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, batch Batch, options RenderOptions) ([]byte, error)
}
