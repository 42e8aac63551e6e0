package pongo

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-samplify/pkg/render/template"
)

// DefaultExtension is appended to template names given without one.
const DefaultExtension = ".tpl"

// Option configures where named templates are loaded from.
type Option func(*loaders)

type loaders struct {
	dir   string
	files fs.FS
}

// WithBaseDir loads named templates from a directory on disk.
func WithBaseDir(dir string) Option {
	return func(l *loaders) {
		l.dir = strings.TrimSpace(dir)
	}
}

// WithFS loads named templates from an fs.FS. It is searched before the
// base dir.
func WithFS(files fs.FS) Option {
	return func(l *loaders) {
		l.files = files
	}
}

// Engine runs batch templates on a pongo2 template set. Named templates are
// compiled once; inline sources are compiled per call.
type Engine struct {
	set *pongo2.TemplateSet
}

var _ template.Engine = (*Engine)(nil)

// New builds an Engine. Without a base dir or fs.FS, template names resolve
// against the working directory.
func New(options ...Option) (*Engine, error) {
	var l loaders
	for _, opt := range options {
		if opt != nil {
			opt(&l)
		}
	}

	var sources []pongo2.TemplateLoader
	if l.files != nil {
		sources = append(sources, pongo2.NewFSLoader(l.files))
	}
	if l.dir != "" || len(sources) == 0 {
		local, err := pongo2.NewLocalFileSystemLoader(l.dir)
		if err != nil {
			return nil, fmt.Errorf("pongo: template dir: %w", err)
		}
		sources = append(sources, local)
	}

	registerDefaultFilters()
	return &Engine{set: pongo2.NewSet("samplify", sources...)}, nil
}

// Execute renders source with data. Output is buffered, so w receives
// nothing when execution fails.
func (e *Engine) Execute(w io.Writer, source string, data map[string]any) error {
	if e == nil || e.set == nil {
		return errors.New("pongo: engine is nil")
	}
	if w == nil {
		return errors.New("pongo: writer is required")
	}
	tmpl, label, err := e.compile(source)
	if err != nil {
		return err
	}
	if err := tmpl.ExecuteWriter(pongo2.Context(data), w); err != nil {
		return fmt.Errorf("pongo: execute %s: %w", label, err)
	}
	return nil
}

func (e *Engine) compile(source string) (*pongo2.Template, string, error) {
	if strings.TrimSpace(source) == "" {
		return nil, "", errors.New("pongo: template is required")
	}
	if template.IsTemplateContent(source) {
		tmpl, err := e.set.FromString(source)
		if err != nil {
			return nil, "", fmt.Errorf("pongo: parse inline template: %w", err)
		}
		return tmpl, "inline template", nil
	}

	name := templateName(source)
	tmpl, err := e.set.FromCache(name)
	if err != nil {
		return nil, "", fmt.Errorf("pongo: load template %q: %w", name, err)
	}
	return tmpl, fmt.Sprintf("template %q", name), nil
}

func templateName(source string) string {
	name := strings.TrimSpace(source)
	if path.Ext(name) == "" {
		name += DefaultExtension
	}
	return name
}
