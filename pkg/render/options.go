package render

// RenderOptions carry per-request settings that renderers may honour.
type RenderOptions struct {
	// Envelope wraps the samples with the run metadata (run id, shape, seed,
	// count) instead of emitting the bare values.
	Envelope bool
	// Template is the template source, or the name of a template the engine
	// can load. Only the template renderer reads it.
	Template string
}
