package document

import (
	"errors"
	"path"
	"strings"
)

// Document wraps a raw payload and its origin.
type Document struct {
	source Source
	raw    []byte
}

// New constructs a Document while validating the inputs.
func New(src Source, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errors.New("document: source is required")
	}
	if len(raw) == 0 {
		return Document{}, errors.New("document: raw document is empty")
	}

	clone := append([]byte(nil), raw...)
	return Document{source: src, raw: clone}, nil
}

// MustNew panics if the document cannot be created. Useful for tests.
func MustNew(src Source, raw []byte) Document {
	doc, err := New(src, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

// Source returns the origin metadata for the document.
func (d Document) Source() Source {
	return d.source
}

// Raw returns a defensive copy of the payload.
func (d Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

// Location returns the string identifier for the origin.
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}

// Ext returns the lower-cased extension of the location, without query
// strings, or "" when there is none.
func (d Document) Ext() string {
	loc := d.Location()
	if i := strings.IndexAny(loc, "?#"); i >= 0 {
		loc = loc[:i]
	}
	return strings.ToLower(path.Ext(loc))
}
