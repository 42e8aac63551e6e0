package structured

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-samplify/pkg/render"
)

// JSON renders indented JSON: the bare value for a single sample, an array
// otherwise, or the run envelope when requested.
type JSON struct {
	indent string
}

var _ render.Renderer = (*JSON)(nil)

// JSONOption configures the JSON renderer.
type JSONOption func(*JSON)

// WithIndent overrides the two-space indent. An empty indent produces
// compact output.
func WithIndent(indent string) JSONOption {
	return func(r *JSON) {
		r.indent = indent
	}
}

// NewJSON constructs the JSON renderer.
func NewJSON(options ...JSONOption) *JSON {
	r := &JSON{indent: "  "}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *JSON) Name() string        { return "json" }
func (r *JSON) ContentType() string { return "application/json" }

// Render encodes batch according to options.
func (r *JSON) Render(ctx context.Context, batch render.Batch, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var payload any = batch.Samples
	switch {
	case options.Envelope:
		payload = render.EnvelopeOf(batch)
	case batch.Single():
		payload = batch.Samples[0]
	case batch.Samples == nil:
		payload = []any{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if r.indent != "" {
		enc.SetIndent("", r.indent)
	}
	if err := enc.Encode(payload); err != nil {
		return nil, fmt.Errorf("json renderer: %w", err)
	}
	return buf.Bytes(), nil
}

// NDJSON renders one compact JSON document per sample. With an envelope each
// line carries the run id, shape and index next to the sample.
type NDJSON struct{}

var _ render.Renderer = (*NDJSON)(nil)

// NewNDJSON constructs the NDJSON renderer.
func NewNDJSON() *NDJSON {
	return &NDJSON{}
}

func (r *NDJSON) Name() string        { return "ndjson" }
func (r *NDJSON) ContentType() string { return "application/x-ndjson" }

type ndjsonLine struct {
	RunID  string `json:"run_id"`
	Shape  string `json:"shape"`
	Index  int    `json:"index"`
	Sample any    `json:"sample"`
}

// Render writes each sample on its own line.
func (r *NDJSON) Render(ctx context.Context, batch render.Batch, options render.RenderOptions) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	for idx, sample := range batch.Samples {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var line any = sample
		if options.Envelope {
			line = ndjsonLine{
				RunID:  batch.RunID.String(),
				Shape:  batch.Shape,
				Index:  idx,
				Sample: sample,
			}
		}
		if err := enc.Encode(line); err != nil {
			return nil, fmt.Errorf("ndjson renderer: sample %d: %w", idx, err)
		}
	}
	return buf.Bytes(), nil
}
