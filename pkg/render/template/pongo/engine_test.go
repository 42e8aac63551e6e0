package pongo_test

import (
	"bytes"
	"embed"
	"io"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-samplify/pkg/render/template/pongo"
	"github.com/goliatone/go-samplify/pkg/testsupport"
)

//go:embed testdata/templates/*.tpl
var embeddedTemplates embed.FS

func TestEngine_ExecuteNamedTemplate(t *testing.T) {
	engine := newEngine(t)

	tests := []struct {
		name   string
		source string
		data   map[string]any
		golden string
	}{
		{
			name:   "with extension",
			source: "hello.tpl",
			data:   map[string]any{"name": "Ada"},
			golden: "hello.golden",
		},
		{
			name:   "extension added",
			source: "hello",
			data:   map[string]any{"name": "Ada"},
			golden: "hello.golden",
		},
		{
			name:   "batch samples",
			source: "payments",
			data: map[string]any{
				"samples": []any{
					map[string]any{"currency": "USD", "amount": int64(10)},
					map[string]any{"currency": "EUR", "amount": int64(20)},
				},
			},
			golden: "payments.golden",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
				return "", engine.Execute(w, tc.source, tc.data)
			})

			want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", tc.golden))
			if written != want {
				t.Fatalf("execute %s mismatch\nwant: %q\n got: %q", tc.source, want, written)
			}
		})
	}
}

func TestEngine_ExecuteInlineSource(t *testing.T) {
	engine := newEngine(t)

	var buf bytes.Buffer
	err := engine.Execute(&buf, "{% for n in names %}{{ n }};{% endfor %}", map[string]any{
		"names": []any{"a", "b"},
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if buf.String() != "a;b;" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestEngine_DefaultFilters(t *testing.T) {
	engine := newEngine(t)

	tests := []struct {
		name string
		tpl  string
		data map[string]any
		want string
	}{
		{
			name: "sanitize strips markup",
			tpl:  "<p>{{ name|sanitize }}</p>",
			data: map[string]any{"name": "<b>Ada</b><script>alert(1)</script>"},
			want: "<p>Ada</p>",
		},
		{
			name: "autoescape still applies without sanitize",
			tpl:  "{{ name }}",
			data: map[string]any{"name": "<b>"},
			want: "&lt;b&gt;",
		},
		{
			name: "trim string",
			tpl:  "[{{ name|trim }}]",
			data: map[string]any{"name": "  Ada  "},
			want: "[Ada]",
		},
		{
			name: "trim int",
			tpl:  "[{{ n|trim }}]",
			data: map[string]any{"n": 42},
			want: "[42]",
		},
		{
			name: "trim negative int64",
			tpl:  "[{{ n|trim }}]",
			data: map[string]any{"n": int64(-7)},
			want: "[-7]",
		},
		{
			name: "trim bool",
			tpl:  "[{{ ok|trim }}]",
			data: map[string]any{"ok": true},
			want: "[True]",
		},
		{
			name: "trim missing value",
			tpl:  "[{{ missing|trim }}]",
			data: map[string]any{},
			want: "[]",
		},
		{
			name: "tojson",
			tpl:  "{{ items|tojson }}",
			data: map[string]any{"items": []any{"USD", "EUR"}},
			want: `["USD","EUR"]`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := engine.Execute(&buf, tc.tpl, tc.data); err != nil {
				t.Fatalf("execute: %v", err)
			}
			if got := buf.String(); got != tc.want {
				t.Fatalf("want %q, got %q", tc.want, got)
			}
		})
	}
}

func TestEngine_Errors(t *testing.T) {
	engine := newEngine(t)

	tests := []struct {
		name   string
		source string
	}{
		{name: "missing template", source: "missing"},
		{name: "bad inline syntax", source: "{% if %}"},
		{name: "empty source", source: "  "},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := engine.Execute(&buf, tc.source, nil); err == nil {
				t.Fatalf("expected error for %q", tc.source)
			}
			if buf.Len() != 0 {
				t.Fatalf("expected no output on error, got %q", buf.String())
			}
		})
	}

	if err := engine.Execute(nil, "hello", nil); err == nil {
		t.Fatalf("expected nil writer error")
	}

	var nilEngine *pongo.Engine
	if err := nilEngine.Execute(io.Discard, "hello", nil); err == nil {
		t.Fatalf("expected nil engine error")
	}
}

func TestSanitize(t *testing.T) {
	if got := pongo.Sanitize(`<a href="javascript:alert(1)">pay</a> now`); got != "pay now" {
		t.Fatalf("unexpected sanitized output %q", got)
	}
}

func newEngine(t *testing.T) *pongo.Engine {
	t.Helper()

	templatesFS, err := fs.Sub(embeddedTemplates, "testdata/templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}

	engine, err := pongo.New(pongo.WithFS(templatesFS))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}
