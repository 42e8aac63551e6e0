package jsonschema

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-samplify/pkg/config"
	"github.com/goliatone/go-samplify/pkg/shape"
)

const discriminatorKey = "_type"

var integerFormats = map[string]shape.Primitive{
	"int8":   shape.Int8(),
	"int16":  shape.Int16(),
	"int32":  shape.Int32(),
	"int64":  shape.Int64(),
	"uint8":  shape.Uint8(),
	"uint16": shape.Uint16(),
	"uint32": shape.Uint32(),
	"uint64": shape.Uint64(),
}

type definitions struct {
	nodes map[string]config.Node
	order []string
}

func collectDefs(root config.Node) (definitions, error) {
	defs := definitions{nodes: make(map[string]config.Node)}
	for _, key := range []string{"$defs", "definitions"} {
		block, ok := root.Get(key)
		if !ok {
			continue
		}
		if block.Kind() != config.KindObject {
			return defs, fmt.Errorf("jsonschema: %s must be an object", key)
		}
		for _, member := range block.Members() {
			if _, dup := defs.nodes[member.Key]; dup {
				return defs, fmt.Errorf("jsonschema: definition %q declared twice", member.Key)
			}
			defs.nodes[member.Key] = member.Value
			defs.order = append(defs.order, member.Key)
		}
	}
	return defs, nil
}

type converter struct {
	defs     definitions
	done     map[string]shape.Shape
	visiting map[string]bool
}

func newConverter(defs definitions) *converter {
	return &converter{
		defs:     defs,
		done:     make(map[string]shape.Shape),
		visiting: make(map[string]bool),
	}
}

func (c *converter) def(key string) (shape.Shape, error) {
	if s, ok := c.done[key]; ok {
		return s, nil
	}
	node, err := c.enter(key)
	if err != nil {
		return nil, err
	}
	defer delete(c.visiting, key)

	s, err := c.convert(node, key, joinPath("#", "$defs", key))
	if err != nil {
		return nil, err
	}
	c.done[key] = s
	return s, nil
}

func (c *converter) enter(key string) (config.Node, error) {
	node, ok := c.defs.nodes[key]
	if !ok {
		return config.Node{}, fmt.Errorf("jsonschema: definition %q not found", key)
	}
	if c.visiting[key] {
		return config.Node{}, fmt.Errorf("jsonschema: recursive $ref to %q cannot be sampled", key)
	}
	c.visiting[key] = true
	return node, nil
}

// convert maps one schema node. name is used when the node has no title.
func (c *converter) convert(node config.Node, name, path string) (shape.Shape, error) {
	if node.Kind() != config.KindObject {
		return nil, fmt.Errorf("jsonschema: schema must be an object at %s", path)
	}
	if ref := readString(node, "$ref"); ref != "" {
		key, err := refKey(ref, path)
		if err != nil {
			return nil, err
		}
		s, err := c.def(key)
		if err != nil {
			return nil, err
		}
		return shape.IndirectOf(s), nil
	}
	if _, ok := node.Get("oneOf"); ok {
		return c.union(node, name, path)
	}

	types, nullable, err := readTypes(node, path)
	if err != nil {
		return nil, err
	}
	kind, err := resolveType(node, types, path)
	if err != nil {
		return nil, err
	}

	var out shape.Shape
	switch kind {
	case "integer":
		format := readString(node, "format")
		p, ok := integerFormats[format]
		if !ok {
			if format != "" {
				return nil, fmt.Errorf("jsonschema: unsupported integer format %q at %s", format, path)
			}
			p = shape.Int64()
		}
		out = p
	case "number":
		if readString(node, "format") == "float" {
			out = shape.Float32()
		} else {
			out = shape.Float64()
		}
	case "string":
		out = shape.Text()
	case "boolean":
		out = shape.Boolean()
	case "array":
		items, ok := node.Get("items")
		if !ok {
			return nil, fmt.Errorf("jsonschema: array requires items at %s", path)
		}
		elem, err := c.convert(items, name, joinPath(path, "items"))
		if err != nil {
			return nil, err
		}
		out = shape.SequenceOf(elem)
	case "object":
		fields, err := c.fields(node, path, false)
		if err != nil {
			return nil, err
		}
		out = shape.RecordOf(titleOr(node, name), fields...)
	default:
		return nil, fmt.Errorf("jsonschema: unsupported type %q at %s", kind, path)
	}

	if nullable {
		return shape.OptionalOf(out), nil
	}
	return out, nil
}

// fields converts "properties" in document order. Properties missing from
// "required" become optional.
func (c *converter) fields(node config.Node, path string, skipDiscriminator bool) ([]shape.Field, error) {
	props, ok := node.Get("properties")
	if !ok {
		return nil, nil
	}
	if props.Kind() != config.KindObject {
		return nil, fmt.Errorf("jsonschema: properties must be an object at %s", path)
	}
	required, err := readRequired(node, path)
	if err != nil {
		return nil, err
	}

	fields := make([]shape.Field, 0, props.Len())
	for _, member := range props.Members() {
		if skipDiscriminator && member.Key == discriminatorKey {
			continue
		}
		child, err := c.convert(member.Value, member.Key, joinPath(path, "properties", member.Key))
		if err != nil {
			return nil, err
		}
		if !required[member.Key] && child.Kind() != shape.KindOptional {
			child = shape.OptionalOf(child)
		}
		fields = append(fields, shape.FieldOf(member.Key, child))
	}
	return fields, nil
}

func (c *converter) union(node config.Node, name, path string) (shape.Shape, error) {
	entries, ok := node.Get("oneOf")
	list, isArray := entries.Items()
	if !ok || !isArray {
		return nil, fmt.Errorf("jsonschema: oneOf must be an array at %s", path)
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("jsonschema: oneOf must include at least one schema at %s", path)
	}

	variants := make([]shape.Variant, 0, len(list))
	for idx, entry := range list {
		variant, err := c.variant(entry, idx, joinPath(path, "oneOf", strconv.Itoa(idx)))
		if err != nil {
			return nil, err
		}
		variants = append(variants, variant)
	}
	return shape.UnionOf(titleOr(node, name), variants...), nil
}

func (c *converter) variant(node config.Node, idx int, path string) (shape.Variant, error) {
	if node.Kind() != config.KindObject {
		return shape.Variant{}, fmt.Errorf("jsonschema: oneOf variant must be an object at %s", path)
	}
	fallback := "Variant" + strconv.Itoa(idx)
	if ref := readString(node, "$ref"); ref != "" {
		key, err := refKey(ref, path)
		if err != nil {
			return shape.Variant{}, err
		}
		target, err := c.enter(key)
		if err != nil {
			return shape.Variant{}, err
		}
		defer delete(c.visiting, key)
		node, fallback, path = target, key, joinPath("#", "$defs", key)
	}

	name := variantName(node, fallback)

	if prefix, ok := node.Get("prefixItems"); ok {
		items, ok := prefix.Items()
		if !ok {
			return shape.Variant{}, fmt.Errorf("jsonschema: prefixItems must be an array at %s", path)
		}
		elems := make([]shape.Shape, 0, len(items))
		for i, item := range items {
			elem, err := c.convert(item, name, joinPath(path, "prefixItems", strconv.Itoa(i)))
			if err != nil {
				return shape.Variant{}, err
			}
			elems = append(elems, elem)
		}
		return shape.Tuple(name, elems...), nil
	}

	fields, err := c.fields(node, path, true)
	if err != nil {
		return shape.Variant{}, err
	}
	if len(fields) == 0 {
		return shape.Unit(name), nil
	}
	return shape.Struct(name, fields...), nil
}

// variantName prefers the title, then the "_type" discriminator constant.
func variantName(node config.Node, fallback string) string {
	if title := readString(node, "title"); title != "" {
		return title
	}
	if props, ok := node.Get("properties"); ok {
		if disc, ok := props.Get(discriminatorKey); ok {
			if value := readString(disc, "const"); value != "" {
				return value
			}
			if enum, ok := disc.Get("enum"); ok && enum.Len() == 1 {
				first, _ := enum.Index(0)
				if value, ok := first.AsString(); ok && strings.TrimSpace(value) != "" {
					return value
				}
			}
		}
	}
	return fallback
}

func readTypes(node config.Node, path string) ([]string, bool, error) {
	raw, ok := node.Get("type")
	if !ok {
		return nil, false, nil
	}
	var list []string
	if s, ok := raw.AsString(); ok {
		list = []string{s}
	} else if items, ok := raw.Items(); ok {
		for i, item := range items {
			s, ok := item.AsString()
			if !ok {
				return nil, false, fmt.Errorf("jsonschema: type[%d] must be a string at %s", i, path)
			}
			list = append(list, s)
		}
	} else {
		return nil, false, fmt.Errorf("jsonschema: type must be a string or an array at %s", path)
	}

	nullable := false
	types := list[:0]
	for _, t := range list {
		if t == "null" {
			nullable = true
			continue
		}
		types = append(types, t)
	}
	return types, nullable, nil
}

func resolveType(node config.Node, types []string, path string) (string, error) {
	switch len(types) {
	case 1:
		return types[0], nil
	case 0:
	default:
		return "", fmt.Errorf("jsonschema: multiple types %v are not supported at %s", types, path)
	}
	if _, ok := node.Get("properties"); ok {
		return "object", nil
	}
	if _, ok := node.Get("items"); ok {
		return "array", nil
	}
	for _, key := range []string{"const", "enum"} {
		if raw, ok := node.Get(key); ok {
			if _, ok := raw.AsString(); ok {
				return "string", nil
			}
			if first, ok := raw.Index(0); ok && first.Kind() == config.KindString {
				return "string", nil
			}
		}
	}
	return "", fmt.Errorf("jsonschema: cannot infer type at %s", path)
}

func readRequired(node config.Node, path string) (map[string]bool, error) {
	raw, ok := node.Get("required")
	if !ok {
		return map[string]bool{}, nil
	}
	items, ok := raw.Items()
	if !ok {
		return nil, fmt.Errorf("jsonschema: required must be an array at %s", path)
	}
	required := make(map[string]bool, len(items))
	for idx, item := range items {
		s, ok := item.AsString()
		if !ok || strings.TrimSpace(s) == "" {
			return nil, fmt.Errorf("jsonschema: required[%d] must be a string at %s", idx, path)
		}
		required[s] = true
	}
	return required, nil
}

func refKey(ref, path string) (string, error) {
	for _, prefix := range []string{"#/$defs/", "#/definitions/"} {
		if strings.HasPrefix(ref, prefix) {
			key := unescapeJSONPointer(strings.TrimPrefix(ref, prefix))
			if key != "" && !strings.Contains(key, "/") {
				return key, nil
			}
		}
	}
	return "", fmt.Errorf("jsonschema: only local $defs references are supported, got %q at %s", ref, path)
}

func readString(node config.Node, key string) string {
	raw, ok := node.Get(key)
	if !ok {
		return ""
	}
	s, _ := raw.AsString()
	return strings.TrimSpace(s)
}

func titleOr(node config.Node, fallback string) string {
	if title := readString(node, "title"); title != "" {
		return title
	}
	return fallback
}

func joinPath(path string, segments ...string) string {
	if path == "" {
		path = "#"
	}
	for _, segment := range segments {
		if segment == "" {
			continue
		}
		path = path + "/" + escapeJSONPointer(segment)
	}
	return path
}

func escapeJSONPointer(value string) string {
	return strings.NewReplacer("~", "~0", "/", "~1").Replace(value)
}

func unescapeJSONPointer(value string) string {
	return strings.NewReplacer("~1", "/", "~0", "~").Replace(value)
}
