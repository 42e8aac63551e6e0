package loader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/goliatone/go-samplify/pkg/document"
)

func TestLoader_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(`{"name": ["ada"]}`), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	doc, err := New(document.NewLoaderOptions()).Load(context.Background(), document.SourceFromFile(path))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Raw()) != `{"name": ["ada"]}` {
		t.Fatalf("unexpected payload %q", doc.Raw())
	}
	if doc.Ext() != ".json" {
		t.Fatalf("unexpected ext %q", doc.Ext())
	}
}

func TestLoader_FS(t *testing.T) {
	files := fstest.MapFS{
		"shapes/user.yaml": {Data: []byte("title: User\n")},
	}
	l := New(document.NewLoaderOptions(document.WithFileSystem(files)))

	doc, err := l.Load(context.Background(), document.SourceFromFS("shapes/user.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.Location() != "shapes/user.yaml" {
		t.Fatalf("unexpected location %q", doc.Location())
	}

	if _, err := l.Load(context.Background(), document.SourceFromFS("missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := l.Load(ctx, document.SourceFromFS("shapes/user.yaml")); err == nil {
		t.Fatalf("expected error for cancelled context")
	}
}

func TestLoader_FSRequiresFileSystem(t *testing.T) {
	_, err := New(document.NewLoaderOptions()).Load(context.Background(), document.SourceFromFS("a.json"))
	if err == nil || !strings.Contains(err.Error(), "fs is nil") {
		t.Fatalf("expected fs is nil error, got %v", err)
	}
}

func TestLoader_HTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/config.json":
			_, _ = w.Write([]byte(`{"amount": [1, 2]}`))
		case "/large.json":
			_, _ = w.Write([]byte(strings.Repeat("x", 64)))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	disabled := New(document.NewLoaderOptions())
	if _, err := disabled.Load(context.Background(), document.SourceFromURL(server.URL+"/config.json")); err == nil {
		t.Fatalf("expected http to be disabled by default")
	}

	l := New(document.NewLoaderOptions(
		document.WithHTTPClient(server.Client()),
		document.WithHTTPFallback(time.Second),
		document.WithMaxBytes(32),
	))
	doc, err := l.Load(context.Background(), document.SourceFromURL(server.URL+"/config.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Raw()) != `{"amount": [1, 2]}` {
		t.Fatalf("unexpected payload %q", doc.Raw())
	}

	if _, err := l.Load(context.Background(), document.SourceFromURL(server.URL+"/missing")); err == nil {
		t.Fatalf("expected error for 404")
	}
	if _, err := l.Load(context.Background(), document.SourceFromURL(server.URL+"/large.json")); err == nil {
		t.Fatalf("expected size limit error")
	}
}

func TestLoader_Inline(t *testing.T) {
	src := document.SourceFromBytes("stdin", []byte(`{}`))
	doc, err := New(document.NewLoaderOptions()).Load(context.Background(), src)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.Location() != "stdin" || string(doc.Raw()) != "{}" {
		t.Fatalf("unexpected document %q %q", doc.Location(), doc.Raw())
	}

	if _, err := New(document.NewLoaderOptions()).Load(context.Background(), document.SourceFromBytes("", nil)); err == nil {
		t.Fatalf("expected empty document error")
	}
}
