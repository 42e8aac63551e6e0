package document

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// Source identifies where a document originated so loaders can read files,
// fs.FS entries, URLs or in-memory payloads through one contract.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind enumerates the loader modalities.
type SourceKind string

const (
	SourceKindFile   SourceKind = "file"
	SourceKindFS     SourceKind = "fs"
	SourceKindURL    SourceKind = "url"
	SourceKindInline SourceKind = "inline"
)

type fileSource struct {
	path string
}

func (s fileSource) Location() string { return s.path }
func (s fileSource) Kind() SourceKind { return SourceKindFile }

// SourceFromFile returns a Source pointing to a file path.
func SourceFromFile(path string) Source {
	return fileSource{path: filepath.Clean(path)}
}

type fsSource struct {
	name string
}

func (s fsSource) Location() string { return s.name }
func (s fsSource) Kind() SourceKind { return SourceKindFS }

// SourceFromFS returns a Source identifying a resource inside an fs.FS.
func SourceFromFS(name string) Source {
	return fsSource{name: name}
}

type urlSource struct {
	raw string
}

func (s urlSource) Location() string { return s.raw }
func (s urlSource) Kind() SourceKind { return SourceKindURL }

// SourceFromURL parses the supplied URL string and returns a Source. It panics
// if the URL is invalid to surface configuration mistakes early.
func SourceFromURL(raw string) Source {
	src, err := parseURL(raw)
	if err != nil {
		panic(err)
	}
	return src
}

// InlineSource carries its payload with it.
type InlineSource interface {
	Source
	Data() []byte
}

type inlineSource struct {
	name string
	data []byte
}

func (s inlineSource) Location() string { return s.name }
func (s inlineSource) Kind() SourceKind { return SourceKindInline }
func (s inlineSource) Data() []byte     { return append([]byte(nil), s.data...) }

// SourceFromBytes wraps an in-memory payload such as stdin or a test fixture.
// name is only used in error messages.
func SourceFromBytes(name string, data []byte) InlineSource {
	if name == "" {
		name = "inline"
	}
	return inlineSource{name: name, data: append([]byte(nil), data...)}
}

// ParseSource maps a command line style location to a Source: http and https
// URLs become URL sources, anything else a file path.
func ParseSource(location string) (Source, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, errors.New("document: empty source location")
	}
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return parseURL(location)
	}
	return SourceFromFile(location), nil
}

func parseURL(raw string) (Source, error) {
	if raw == "" {
		return nil, errors.New("document: empty URL source")
	}
	if _, err := url.ParseRequestURI(raw); err != nil {
		return nil, fmt.Errorf("document: invalid URL %q: %w", raw, err)
	}
	return urlSource{raw: raw}, nil
}
