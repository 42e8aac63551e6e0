// Package templated renders sample batches through a template engine
// (pongo2 by default) for fixtures in arbitrary text formats.
package templated
