package samplify

import (
	"context"
	"fmt"

	internalLoader "github.com/goliatone/go-samplify/internal/loader"
	"github.com/goliatone/go-samplify/pkg/config"
	"github.com/goliatone/go-samplify/pkg/document"
	"github.com/goliatone/go-samplify/pkg/orchestrator"
	"github.com/goliatone/go-samplify/pkg/render"
	"github.com/goliatone/go-samplify/pkg/sample"
	"github.com/goliatone/go-samplify/pkg/shape"
	"github.com/goliatone/go-samplify/pkg/value"
)

// Request aliases orchestrator.Request for callers of the root package.
type Request = orchestrator.Request

// RenderOptions describes per-request renderer settings.
type RenderOptions = render.RenderOptions

// NewLoader constructs a document loader backed by the internal
// implementation while keeping the concrete type hidden.
func NewLoader(options ...document.LoaderOption) document.Loader {
	return internalLoader.New(document.NewLoaderOptions(options...))
}

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Generate samples shapeName from the shape document at shapeSource using
// the configuration at configSource and renders it in format.
func Generate(ctx context.Context, shapeSource, configSource document.Source, shapeName, format string, options ...orchestrator.Option) ([]byte, error) {
	return orchestrator.New(options...).Generate(ctx, orchestrator.Request{
		Shape:        shapeName,
		ShapeSource:  shapeSource,
		ConfigSource: configSource,
		Format:       format,
	})
}

// SampleAs samples the shape declared by T and decodes the value into a T.
// T's SampleShape must work on the zero value. Union fields need a custom
// UnmarshalJSON on the Go side.
func SampleAs[T shape.Provider](root config.Node, opts ...sample.Option) (T, error) {
	var out T
	v, err := sample.New(opts...).Sample(out.SampleShape(), root)
	if err != nil {
		return out, err
	}
	if err := value.Decode(v, &out); err != nil {
		return out, fmt.Errorf("samplify: %w", err)
	}
	return out, nil
}

// SampleNAs draws n values of T. With sample.WithSeed the batch is
// reproducible.
func SampleNAs[T shape.Provider](ctx context.Context, root config.Node, n int, opts ...sample.Option) ([]T, error) {
	var zero T
	values, err := sample.New(opts...).SampleN(ctx, zero.SampleShape(), root, n)
	if err != nil {
		return nil, err
	}
	out := make([]T, len(values))
	for i, v := range values {
		if err := value.Decode(v, &out[i]); err != nil {
			return nil, fmt.Errorf("samplify: item %d: %w", i, err)
		}
	}
	return out, nil
}
