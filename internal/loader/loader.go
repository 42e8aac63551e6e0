package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/goliatone/go-samplify/pkg/document"
)

// Loader implements document.Loader by delegating to file, fs.FS, HTTP or
// inline strategies.
type Loader struct {
	fs        fs.FS
	http      *http.Client
	allowHTTP bool
	timeout   time.Duration
	maxBytes  int64
}

var _ document.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options.
func New(options document.LoaderOptions) document.Loader {
	timeout := options.RequestTimeout

	var httpClient *http.Client
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = timeout
		}
		httpClient = &clone
	case options.AllowHTTPFallback:
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Loader{
		fs:        options.FileSystem,
		http:      httpClient,
		allowHTTP: httpClient != nil,
		timeout:   timeout,
		maxBytes:  options.MaxBytes,
	}
}

// Load fetches a document from the provided source.
func (l *Loader) Load(ctx context.Context, src document.Source) (document.Document, error) {
	if src == nil {
		return document.Document{}, errors.New("loader: source is nil")
	}

	var (
		data []byte
		err  error
	)

	switch src.Kind() {
	case document.SourceKindFile:
		data, err = loadFile(ctx, src.Location())
	case document.SourceKindFS:
		data, err = loadFromFS(ctx, l.fs, src.Location())
	case document.SourceKindURL:
		if !l.allowHTTP {
			return document.Document{}, errors.New("loader: http support disabled")
		}
		data, err = loadHTTP(ctx, l.http, src.Location(), l.timeout, l.maxBytes)
	case document.SourceKindInline:
		inline, ok := src.(document.InlineSource)
		if !ok {
			return document.Document{}, errors.New("loader: inline source carries no data")
		}
		data = inline.Data()
	default:
		err = fmt.Errorf("loader: unsupported source kind %q", src.Kind())
	}
	if err != nil {
		return document.Document{}, fmt.Errorf("loader: %s: %w", src.Location(), err)
	}

	return document.New(src, data)
}
