package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	internalLoader "github.com/goliatone/go-samplify/internal/loader"
	"github.com/goliatone/go-samplify/pkg/config"
	"github.com/goliatone/go-samplify/pkg/discovery"
	"github.com/goliatone/go-samplify/pkg/document"
	"github.com/goliatone/go-samplify/pkg/jsonschema"
	pkgopenapi "github.com/goliatone/go-samplify/pkg/openapi"
	"github.com/goliatone/go-samplify/pkg/render"
	"github.com/goliatone/go-samplify/pkg/renderers/structured"
	"github.com/goliatone/go-samplify/pkg/renderers/templated"
	"github.com/goliatone/go-samplify/pkg/sample"
	"github.com/goliatone/go-samplify/pkg/shape"
)

const defaultFormatName = "json"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom document loader.
func WithLoader(loader document.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithAdapters replaces the shape discovery adapters (JSON Schema and
// OpenAPI by default).
func WithAdapters(adapters ...discovery.Adapter) Option {
	return func(o *Orchestrator) {
		o.adapters = append([]discovery.Adapter(nil), adapters...)
		o.adaptersSpecified = true
	}
}

// WithShapes registers named shapes, typically Provider types, that
// requests can select without a shape document.
func WithShapes(shapes *shape.Registry) Option {
	return func(o *Orchestrator) {
		o.shapes = shapes
	}
}

// WithSampler sets the sampler used for every request. Requests may still
// override the seed.
func WithSampler(sampler *sample.Sampler) Option {
	return func(o *Orchestrator) {
		o.sampler = sampler
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultFormat overrides the renderer used when a request omits an
// explicit Format.
func WithDefaultFormat(name string) Option {
	return func(o *Orchestrator) {
		o.defaultFormat = strings.TrimSpace(name)
	}
}

// WithConfigTransformers registers transformers that rewrite the
// configuration after selection and before sampling.
func WithConfigTransformers(transformers ...Transformer) Option {
	return func(o *Orchestrator) {
		o.transformers = append(o.transformers, transformers...)
	}
}

// Orchestrator coordinates the pipeline from shape and configuration
// documents to rendered samples. Missing dependencies default to the
// built-in implementations.
type Orchestrator struct {
	loader            document.Loader
	adapters          []discovery.Adapter
	adaptersSpecified bool
	discovery         *discovery.Registry
	shapes            *shape.Registry
	sampler           *sample.Sampler
	registry          *render.Registry
	defaultFormat     string
	transformers      []Transformer
	initialiseErr     error
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultFormat: defaultFormatName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one generation run.
type Request struct {
	// Shape names the shape to sample. It may be empty when the shape
	// document declares exactly one shape.
	Shape string

	// InlineShape bypasses every lookup.
	InlineShape shape.Shape

	// ShapeSource points at a JSON Schema or OpenAPI document to discover
	// shapes from. ShapeDocument skips the loader.
	ShapeSource   document.Source
	ShapeDocument *document.Document

	// ShapeFormat names the discovery adapter. Detected when empty.
	ShapeFormat string

	// Config is the inline configuration tree. ConfigSource is loaded and
	// parsed when Config is nil.
	Config       *config.Node
	ConfigSource document.Source

	// Select is a jq expression picking the sub-tree to sample from.
	Select string

	// Count is the number of samples. Zero means one.
	Count int

	// Seed overrides the sampler seed for this request.
	Seed *uint64

	// Format names the renderer. Falls back to the default format.
	Format string

	RenderOptions render.RenderOptions
}

// Generate resolves the shape and configuration, samples and renders.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	batch, err := o.Sample(ctx, req)
	if err != nil {
		return nil, err
	}

	renderer, err := o.rendererFor(req.Format)
	if err != nil {
		return nil, err
	}
	output, err := renderer.Render(ctx, batch, req.RenderOptions)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

// Sample runs everything Generate does except rendering.
func (o *Orchestrator) Sample(ctx context.Context, req Request) (render.Batch, error) {
	if ctx == nil {
		return render.Batch{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return render.Batch{}, err
	}
	if err := o.initialiseErr; err != nil {
		return render.Batch{}, err
	}
	if req.Count < 0 {
		return render.Batch{}, fmt.Errorf("orchestrator: count must not be negative, got %d", req.Count)
	}

	name, sh, err := o.resolveShape(ctx, req)
	if err != nil {
		return render.Batch{}, err
	}
	cfg, err := o.resolveConfig(ctx, req, name)
	if err != nil {
		return render.Batch{}, err
	}

	sampler := o.sampler
	if req.Seed != nil {
		sampler = sampler.With(sample.WithSeed(*req.Seed))
	}
	count := req.Count
	if count == 0 {
		count = 1
	}
	samples, err := sampler.SampleN(ctx, sh, cfg, count)
	if err != nil {
		return render.Batch{}, fmt.Errorf("orchestrator: sample %s: %w", name, err)
	}

	seed, seeded := sampler.Seed()
	return render.NewBatch(name, seed, seeded, samples), nil
}

// Formats lists the registered renderer names.
func (o *Orchestrator) Formats() []string {
	if o.registry == nil {
		return nil
	}
	return o.registry.List()
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := strings.TrimSpace(name)
	if target == "" {
		target = o.defaultFormat
	}
	renderer, err := o.registry.Get(target)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.loader == nil {
		o.loader = internalLoader.New(document.NewLoaderOptions())
	}
	if !o.adaptersSpecified {
		o.adapters = []discovery.Adapter{jsonschema.NewAdapter(), pkgopenapi.NewAdapter()}
	}
	reg, err := discovery.NewRegistry(o.adapters...)
	if err != nil {
		o.initialiseErr = fmt.Errorf("orchestrator: adapters: %w", err)
		return
	}
	o.discovery = reg

	if o.shapes == nil {
		o.shapes = shape.NewRegistry()
	}
	if o.sampler == nil {
		o.sampler = sample.New()
	}
	if o.registry == nil {
		registry, err := DefaultRegistry()
		if err != nil {
			o.initialiseErr = err
			return
		}
		o.registry = registry
	}
	if o.defaultFormat == "" {
		o.defaultFormat = defaultFormatName
	}
}

// DefaultRegistry returns a registry with the json, ndjson, yaml and
// template renderers.
func DefaultRegistry() (*render.Registry, error) {
	tpl, err := templated.New()
	if err != nil {
		return nil, fmt.Errorf("orchestrator: default renderer: %w", err)
	}
	registry, err := render.NewRegistry(append(structured.Renderers(), tpl)...)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: default renderers: %w", err)
	}
	return registry, nil
}
