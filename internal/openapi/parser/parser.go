package parser

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-samplify/pkg/config"
	"github.com/goliatone/go-samplify/pkg/shape"
)

const (
	componentPrefix  = "#/components/schemas/"
	discriminatorKey = "_type"
)

// Options toggles document handling.
type Options struct {
	// Validate runs the kin-openapi validator before conversion.
	Validate bool
}

// Shapes loads an OpenAPI 3 document and converts every components.schemas
// entry into a named shape.
func Shapes(ctx context.Context, raw []byte, options Options) (*shape.Registry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errors.New("openapi parser: document payload is empty")
	}

	// The tree keeps the declared property order that openapi3 maps lose.
	tree, err := config.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi parser: %w", err)
	}
	components, _ := tree.Get("components")
	hints, ok := components.Get("schemas")
	if !ok || hints.Len() == 0 {
		return nil, errors.New("openapi parser: document has no components.schemas")
	}

	loader := openapi3.NewLoader()
	loader.Context = ctx
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi parser: load document: %w", err)
	}
	if options.Validate {
		if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi parser: validate: %w", err)
		}
	}

	conv := &converter{
		schemas:  doc.Components.Schemas,
		hints:    hints,
		done:     make(map[string]shape.Shape),
		visiting: make(map[string]bool),
	}
	reg := shape.NewRegistry()
	for _, name := range conv.order() {
		s, err := conv.component(name)
		if err != nil {
			return nil, err
		}
		if err := reg.Register(name, s); err != nil {
			return nil, fmt.Errorf("openapi parser: %w", err)
		}
	}
	return reg, nil
}

type converter struct {
	schemas  openapi3.Schemas
	hints    config.Node
	done     map[string]shape.Shape
	visiting map[string]bool
}

// order lists component names in document order, then any the tree missed.
func (c *converter) order() []string {
	names := make([]string, 0, len(c.schemas))
	seen := make(map[string]bool, len(c.schemas))
	for _, key := range c.hints.Keys() {
		if _, ok := c.schemas[key]; ok {
			names = append(names, key)
			seen[key] = true
		}
	}
	var rest []string
	for key := range c.schemas {
		if !seen[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	return append(names, rest...)
}

func (c *converter) component(name string) (shape.Shape, error) {
	if s, ok := c.done[name]; ok {
		return s, nil
	}
	ref, hint, err := c.enter(name)
	if err != nil {
		return nil, err
	}
	defer delete(c.visiting, name)

	s, err := c.convertValue(ref.Value, hint, name, componentPrefix+name)
	if err != nil {
		return nil, err
	}
	c.done[name] = s
	return s, nil
}

func (c *converter) enter(name string) (*openapi3.SchemaRef, config.Node, error) {
	ref, ok := c.schemas[name]
	if !ok || ref == nil || ref.Value == nil {
		return nil, config.Node{}, fmt.Errorf("openapi parser: schema %q not found", name)
	}
	if c.visiting[name] {
		return nil, config.Node{}, fmt.Errorf("openapi parser: recursive reference to %q cannot be sampled", name)
	}
	c.visiting[name] = true
	hint, _ := c.hints.Get(name)
	return ref, hint, nil
}

func (c *converter) convert(ref *openapi3.SchemaRef, hint config.Node, name, path string) (shape.Shape, error) {
	if ref == nil {
		return nil, fmt.Errorf("openapi parser: missing schema at %s", path)
	}
	if ref.Ref != "" {
		key, err := componentKey(ref.Ref, path)
		if err != nil {
			return nil, err
		}
		s, err := c.component(key)
		if err != nil {
			return nil, err
		}
		return shape.IndirectOf(s), nil
	}
	if ref.Value == nil {
		return nil, fmt.Errorf("openapi parser: unresolved schema at %s", path)
	}
	return c.convertValue(ref.Value, hint, name, path)
}

func (c *converter) convertValue(src *openapi3.Schema, hint config.Node, name, path string) (shape.Shape, error) {
	if len(src.OneOf) > 0 {
		return c.union(src, hint, name, path)
	}

	types, nullable := schemaTypes(src)
	kind, err := resolveType(src, types, path)
	if err != nil {
		return nil, err
	}

	var out shape.Shape
	switch kind {
	case "integer":
		out, err = integerShape(src.Format, path)
		if err != nil {
			return nil, err
		}
	case "number":
		if src.Format == "float" {
			out = shape.Float32()
		} else {
			out = shape.Float64()
		}
	case "string":
		out = shape.Text()
	case "boolean":
		out = shape.Boolean()
	case "array":
		if src.Items == nil {
			return nil, fmt.Errorf("openapi parser: array requires items at %s", path)
		}
		itemsHint, _ := hint.Get("items")
		elem, err := c.convert(src.Items, itemsHint, name, path+"/items")
		if err != nil {
			return nil, err
		}
		out = shape.SequenceOf(elem)
	case "object":
		fields, err := c.fields(src, hint, path, "")
		if err != nil {
			return nil, err
		}
		out = shape.RecordOf(titleOr(src, name), fields...)
	default:
		return nil, fmt.Errorf("openapi parser: unsupported type %q at %s", kind, path)
	}

	if nullable {
		return shape.OptionalOf(out), nil
	}
	return out, nil
}

func (c *converter) fields(src *openapi3.Schema, hint config.Node, path, skip string) ([]shape.Field, error) {
	if len(src.Properties) == 0 {
		return nil, nil
	}
	required := make(map[string]bool, len(src.Required))
	for _, name := range src.Required {
		required[name] = true
	}
	propHints, _ := hint.Get("properties")

	fields := make([]shape.Field, 0, len(src.Properties))
	for _, key := range propertyOrder(src.Properties, propHints) {
		if key == skip {
			continue
		}
		propHint, _ := propHints.Get(key)
		child, err := c.convert(src.Properties[key], propHint, key, path+"/properties/"+key)
		if err != nil {
			return nil, err
		}
		if !required[key] && child.Kind() != shape.KindOptional {
			child = shape.OptionalOf(child)
		}
		fields = append(fields, shape.FieldOf(key, child))
	}
	return fields, nil
}

func (c *converter) union(src *openapi3.Schema, hint config.Node, name, path string) (shape.Shape, error) {
	discriminator := discriminatorKey
	if src.Discriminator != nil && src.Discriminator.PropertyName != "" {
		discriminator = src.Discriminator.PropertyName
	}
	variantHints, _ := hint.Get("oneOf")

	variants := make([]shape.Variant, 0, len(src.OneOf))
	for idx, ref := range src.OneOf {
		variantHint, _ := variantHints.Index(idx)
		variant, err := c.variant(ref, variantHint, discriminator, idx, fmt.Sprintf("%s/oneOf/%d", path, idx))
		if err != nil {
			return nil, err
		}
		variants = append(variants, variant)
	}
	out := shape.Shape(shape.UnionOf(titleOr(src, name), variants...))
	if _, nullable := schemaTypes(src); nullable {
		out = shape.OptionalOf(out)
	}
	return out, nil
}

func (c *converter) variant(ref *openapi3.SchemaRef, hint config.Node, discriminator string, idx int, path string) (shape.Variant, error) {
	if ref == nil {
		return shape.Variant{}, fmt.Errorf("openapi parser: missing oneOf entry at %s", path)
	}
	fallback := fmt.Sprintf("Variant%d", idx)
	src := ref.Value
	if ref.Ref != "" {
		key, err := componentKey(ref.Ref, path)
		if err != nil {
			return shape.Variant{}, err
		}
		target, targetHint, err := c.enter(key)
		if err != nil {
			return shape.Variant{}, err
		}
		defer delete(c.visiting, key)
		src, hint, fallback, path = target.Value, targetHint, key, componentPrefix+key
	}
	if src == nil {
		return shape.Variant{}, fmt.Errorf("openapi parser: unresolved oneOf entry at %s", path)
	}

	name := variantName(src, discriminator, fallback)
	fields, err := c.fields(src, hint, path, discriminator)
	if err != nil {
		return shape.Variant{}, err
	}
	if len(fields) == 0 {
		return shape.Unit(name), nil
	}
	return shape.Struct(name, fields...), nil
}

func variantName(src *openapi3.Schema, discriminator, fallback string) string {
	if title := strings.TrimSpace(src.Title); title != "" {
		return title
	}
	if prop, ok := src.Properties[discriminator]; ok && prop != nil && prop.Value != nil && len(prop.Value.Enum) == 1 {
		if value, ok := prop.Value.Enum[0].(string); ok && strings.TrimSpace(value) != "" {
			return value
		}
	}
	return fallback
}

func integerShape(format, path string) (shape.Shape, error) {
	switch format {
	case "", "int64":
		return shape.Int64(), nil
	case "int8":
		return shape.Int8(), nil
	case "int16":
		return shape.Int16(), nil
	case "int32":
		return shape.Int32(), nil
	case "uint8":
		return shape.Uint8(), nil
	case "uint16":
		return shape.Uint16(), nil
	case "uint32":
		return shape.Uint32(), nil
	case "uint64":
		return shape.Uint64(), nil
	default:
		return nil, fmt.Errorf("openapi parser: unsupported integer format %q at %s", format, path)
	}
}

func schemaTypes(src *openapi3.Schema) ([]string, bool) {
	nullable := src.Nullable
	if src.Type == nil {
		return nil, nullable
	}
	var types []string
	for _, t := range src.Type.Slice() {
		if t == "null" {
			nullable = true
			continue
		}
		types = append(types, t)
	}
	return types, nullable
}

func resolveType(src *openapi3.Schema, types []string, path string) (string, error) {
	switch len(types) {
	case 1:
		return types[0], nil
	case 0:
	default:
		return "", fmt.Errorf("openapi parser: multiple types %v are not supported at %s", types, path)
	}
	switch {
	case len(src.Properties) > 0:
		return "object", nil
	case src.Items != nil:
		return "array", nil
	case len(src.Enum) > 0:
		if _, ok := src.Enum[0].(string); ok {
			return "string", nil
		}
	}
	return "", fmt.Errorf("openapi parser: cannot infer type at %s", path)
}

func propertyOrder(props openapi3.Schemas, hints config.Node) []string {
	keys := make([]string, 0, len(props))
	seen := make(map[string]bool, len(props))
	for _, key := range hints.Keys() {
		if _, ok := props[key]; ok {
			keys = append(keys, key)
			seen[key] = true
		}
	}
	var rest []string
	for key := range props {
		if !seen[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}

func componentKey(ref, path string) (string, error) {
	if !strings.HasPrefix(ref, componentPrefix) {
		return "", fmt.Errorf("openapi parser: only local component references are supported, got %q at %s", ref, path)
	}
	return strings.TrimPrefix(ref, componentPrefix), nil
}

func titleOr(src *openapi3.Schema, fallback string) string {
	if title := strings.TrimSpace(src.Title); title != "" {
		return title
	}
	return fallback
}
