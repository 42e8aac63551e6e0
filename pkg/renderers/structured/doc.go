// Package structured provides the json, ndjson and yaml renderers.
package structured

import "github.com/goliatone/go-samplify/pkg/render"

// Renderers returns fresh instances of every renderer in the package.
func Renderers() []render.Renderer {
	return []render.Renderer{NewJSON(), NewNDJSON(), NewYAML()}
}
