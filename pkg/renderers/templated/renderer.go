package templated

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/goliatone/go-samplify/pkg/render"
	rendertemplate "github.com/goliatone/go-samplify/pkg/render/template"
	"github.com/goliatone/go-samplify/pkg/render/template/pongo"
)

// Option configures the template renderer.
type Option func(*config)

type config struct {
	templatesFS  fs.FS
	templatesDir string
	engine       rendertemplate.Engine
	contentType  string
	fallback     string
}

// WithTemplatesFS loads named templates from files.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templatesFS = files
	}
}

// WithTemplatesDir loads named templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		cfg.templatesDir = strings.TrimSpace(path)
	}
}

// WithEngine swaps the pongo2 engine for another implementation.
func WithEngine(engine rendertemplate.Engine) Option {
	return func(cfg *config) {
		if engine != nil {
			cfg.engine = engine
		}
	}
}

// WithContentType overrides the reported content type (text/plain by
// default).
func WithContentType(contentType string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(contentType); trimmed != "" {
			cfg.contentType = trimmed
		}
	}
}

// WithDefaultTemplate is used when a request does not name a template.
func WithDefaultTemplate(source string) Option {
	return func(cfg *config) {
		cfg.fallback = source
	}
}

// Renderer executes a template over the batch. Templates see run_id, shape,
// seed (seeded runs only), count, samples and sample (the first sample), all
// as plain maps and slices.
type Renderer struct {
	engine      rendertemplate.Engine
	contentType string
	fallback    string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the renderer, building a pongo2 engine unless one is given.
func New(options ...Option) (*Renderer, error) {
	cfg := &config{contentType: "text/plain; charset=utf-8"}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}

	engine := cfg.engine
	if engine == nil {
		var engineOpts []pongo.Option
		if cfg.templatesFS != nil {
			engineOpts = append(engineOpts, pongo.WithFS(cfg.templatesFS))
		}
		if cfg.templatesDir != "" {
			engineOpts = append(engineOpts, pongo.WithBaseDir(cfg.templatesDir))
		}
		built, err := pongo.New(engineOpts...)
		if err != nil {
			return nil, fmt.Errorf("template renderer: %w", err)
		}
		engine = built
	}

	return &Renderer{
		engine:      engine,
		contentType: cfg.contentType,
		fallback:    cfg.fallback,
	}, nil
}

func (r *Renderer) Name() string        { return "template" }
func (r *Renderer) ContentType() string { return r.contentType }

// Render executes options.Template, or the default template, with the batch
// data.
func (r *Renderer) Render(ctx context.Context, batch render.Batch, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	source := options.Template
	if strings.TrimSpace(source) == "" {
		source = r.fallback
	}
	if strings.TrimSpace(source) == "" {
		return nil, errors.New("template renderer: a template is required")
	}

	var buf bytes.Buffer
	if err := r.engine.Execute(&buf, source, render.TemplateData(batch)); err != nil {
		return nil, fmt.Errorf("template renderer: %w", err)
	}
	return buf.Bytes(), nil
}
