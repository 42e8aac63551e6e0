package render

import (
	"github.com/goliatone/go-samplify/pkg/value"
)

// Envelope is the metadata wrapper used when RenderOptions.Envelope is set.
type Envelope struct {
	RunID   string  `json:"run_id" yaml:"run_id"`
	Shape   string  `json:"shape" yaml:"shape"`
	Seed    *uint64 `json:"seed,omitempty" yaml:"seed,omitempty"`
	Count   int     `json:"count" yaml:"count"`
	Samples []any   `json:"samples" yaml:"samples"`
}

// EnvelopeOf builds the wrapper for b.
func EnvelopeOf(b Batch) Envelope {
	env := Envelope{
		RunID:   b.RunID.String(),
		Shape:   b.Shape,
		Count:   len(b.Samples),
		Samples: b.Samples,
	}
	if env.Samples == nil {
		env.Samples = []any{}
	}
	if b.Seeded {
		seed := b.Seed
		env.Seed = &seed
	}
	return env
}

// TemplateData exposes a batch to template engines as plain Go data.
func TemplateData(b Batch) map[string]any {
	samples := make([]any, len(b.Samples))
	for i, sample := range b.Samples {
		samples[i] = value.Plain(sample)
	}
	data := map[string]any{
		"run_id":  b.RunID.String(),
		"shape":   b.Shape,
		"count":   len(samples),
		"samples": samples,
		"sample":  nil,
	}
	if len(samples) > 0 {
		data["sample"] = samples[0]
	}
	if b.Seeded {
		data["seed"] = b.Seed
	}
	return data
}
