package structured

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-samplify/pkg/render"
	"github.com/goliatone/go-samplify/pkg/value"
)

// YAML renders samples as a YAML document that keeps record field order.
type YAML struct{}

var _ render.Renderer = (*YAML)(nil)

// NewYAML constructs the YAML renderer.
func NewYAML() *YAML {
	return &YAML{}
}

func (r *YAML) Name() string        { return "yaml" }
func (r *YAML) ContentType() string { return "application/yaml" }

// Render encodes batch as one YAML document.
func (r *YAML) Render(ctx context.Context, batch render.Batch, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		node *yaml.Node
		err  error
	)
	switch {
	case options.Envelope:
		node, err = envelopeNode(batch)
	case batch.Single():
		node, err = value.YAMLNode(batch.Samples[0])
	default:
		node, err = samplesNode(batch.Samples)
	}
	if err != nil {
		return nil, fmt.Errorf("yaml renderer: %w", err)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return nil, fmt.Errorf("yaml renderer: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("yaml renderer: %w", err)
	}
	return buf.Bytes(), nil
}

func samplesNode(samples []any) (*yaml.Node, error) {
	if samples == nil {
		samples = []any{}
	}
	return value.YAMLNode(samples)
}

func envelopeNode(batch render.Batch) (*yaml.Node, error) {
	samples, err := samplesNode(batch.Samples)
	if err != nil {
		return nil, err
	}
	mapping := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	add := func(key string, val *yaml.Node) {
		mapping.Content = append(mapping.Content, scalar("!!str", key), val)
	}
	add("run_id", scalar("!!str", batch.RunID.String()))
	add("shape", scalar("!!str", batch.Shape))
	if batch.Seeded {
		add("seed", scalar("!!int", strconv.FormatUint(batch.Seed, 10)))
	}
	add("count", scalar("!!int", strconv.Itoa(batch.Len())))
	add("samples", samples)
	return mapping, nil
}

func scalar(tag, text string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: text}
}
