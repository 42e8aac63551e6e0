package value

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// MarshalJSON encodes absent options as null and present ones as their value.
func (o Option) MarshalJSON() ([]byte, error) {
	if !o.Present {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// MarshalJSON encodes the boxed value.
func (b *Box) MarshalJSON() ([]byte, error) {
	if b == nil {
		return []byte("null"), nil
	}
	return json.Marshal(b.Value)
}

// MarshalJSON encodes the record as an object keeping field order.
func (r *Record) MarshalJSON() ([]byte, error) {
	if r == nil {
		return []byte("null"), nil
	}
	return marshalFields(r.Fields)
}

// MarshalJSON uses the externally tagged layout: a unit variant is its name,
// other variants are a single-key object mapping the name to the payload.
func (v *Variant) MarshalJSON() ([]byte, error) {
	if v == nil {
		return []byte("null"), nil
	}
	name, err := json.Marshal(v.Name)
	if err != nil {
		return nil, err
	}
	var payload []byte
	switch v.Kind {
	case VariantUnit:
		return name, nil
	case VariantPositional:
		items := v.Positional
		if items == nil {
			items = []any{}
		}
		payload, err = json.Marshal(items)
	case VariantNamed:
		payload, err = marshalFields(v.Fields)
	default:
		return nil, fmt.Errorf("value: unknown variant kind %d", v.Kind)
	}
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	buf.Write(name)
	buf.WriteByte(':')
	buf.Write(payload)
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func marshalFields(fields []Field) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, field := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(field.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(field.Value)
		if err != nil {
			return nil, fmt.Errorf("value: field %q: %w", field.Name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML keeps record order when encoding with yaml.v3.
func (r *Record) MarshalYAML() (any, error) {
	return YAMLNode(r)
}

// MarshalYAML mirrors the JSON layout of variants.
func (v *Variant) MarshalYAML() (any, error) {
	return YAMLNode(v)
}

// MarshalYAML encodes the option as null or its value.
func (o Option) MarshalYAML() (any, error) {
	return YAMLNode(o)
}

// MarshalYAML encodes the boxed value.
func (b *Box) MarshalYAML() (any, error) {
	return YAMLNode(b)
}

// YAMLNode builds an ordered yaml.v3 node tree for a sampled value.
func YAMLNode(v any) (*yaml.Node, error) {
	switch typed := v.(type) {
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case Option:
		if !typed.Present {
			return YAMLNode(nil)
		}
		return YAMLNode(typed.Value)
	case *Box:
		if typed == nil {
			return YAMLNode(nil)
		}
		return YAMLNode(typed.Value)
	case *Record:
		if typed == nil {
			return YAMLNode(nil)
		}
		return fieldsNode(typed.Fields)
	case *Variant:
		if typed == nil {
			return YAMLNode(nil)
		}
		name := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: typed.Name}
		var payload *yaml.Node
		var err error
		switch typed.Kind {
		case VariantUnit:
			return name, nil
		case VariantPositional:
			payload, err = YAMLNode(typed.Positional)
		case VariantNamed:
			payload, err = fieldsNode(typed.Fields)
		default:
			return nil, fmt.Errorf("value: unknown variant kind %d", typed.Kind)
		}
		if err != nil {
			return nil, err
		}
		return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Content: []*yaml.Node{name, payload}}, nil
	case []any:
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range typed {
			child, err := YAMLNode(item)
			if err != nil {
				return nil, err
			}
			seq.Content = append(seq.Content, child)
		}
		return seq, nil
	default:
		node := &yaml.Node{}
		if err := node.Encode(v); err != nil {
			return nil, fmt.Errorf("value: encode %T: %w", v, err)
		}
		return node, nil
	}
}

func fieldsNode(fields []Field) (*yaml.Node, error) {
	mapping := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, field := range fields {
		child, err := YAMLNode(field.Value)
		if err != nil {
			return nil, fmt.Errorf("value: field %q: %w", field.Name, err)
		}
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: field.Name}
		mapping.Content = append(mapping.Content, key, child)
	}
	return mapping, nil
}

// Plain converts a sampled value into plain Go data (maps, slices and
// scalars) for template engines and query tools. Record order is lost.
func Plain(v any) any {
	switch typed := v.(type) {
	case Option:
		if !typed.Present {
			return nil
		}
		return Plain(typed.Value)
	case *Box:
		if typed == nil {
			return nil
		}
		return Plain(typed.Value)
	case *Record:
		if typed == nil {
			return nil
		}
		return plainFields(typed.Fields)
	case *Variant:
		if typed == nil {
			return nil
		}
		switch typed.Kind {
		case VariantPositional:
			items := make([]any, len(typed.Positional))
			for i, item := range typed.Positional {
				items[i] = Plain(item)
			}
			return map[string]any{typed.Name: items}
		case VariantNamed:
			return map[string]any{typed.Name: plainFields(typed.Fields)}
		default:
			return typed.Name
		}
	case []any:
		items := make([]any, len(typed))
		for i, item := range typed {
			items[i] = Plain(item)
		}
		return items
	default:
		return v
	}
}

func plainFields(fields []Field) map[string]any {
	out := make(map[string]any, len(fields))
	for _, field := range fields {
		out[field.Name] = Plain(field.Value)
	}
	return out
}

// Decode stores a sampled value into target, which must be a non-nil
// pointer. The value travels through its JSON encoding, so target types
// follow encoding/json rules; union targets need their own UnmarshalJSON.
func Decode(v any, target any) error {
	if target == nil {
		return errors.New("value: decode target is nil")
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("value: encode: %w", err)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("value: decode into %T: %w", target, err)
	}
	return nil
}
