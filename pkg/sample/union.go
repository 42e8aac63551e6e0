package sample

import (
	"strconv"

	"github.com/goliatone/go-samplify/pkg/config"
	"github.com/goliatone/go-samplify/pkg/shape"
	"github.com/goliatone/go-samplify/pkg/value"
)

const (
	variantsKey    = "variants"
	variantDataKey = "variant_data"
)

func (r *run) union(u shape.Union, obj config.Node, path string) (any, error) {
	candidates, err := variantCandidates(u, obj, path)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, newError(NoVariantsAvailable, path, u.Name, "no variants available for %s", u.Name)
	}
	if r.strict {
		for _, name := range candidates {
			if _, ok := u.Variant(name); !ok {
				return nil, unknownVariant(u, name, path)
			}
		}
	}

	name := candidates[r.rng.IntN(len(candidates))]
	variant, ok := u.Variant(name)
	if !ok {
		return nil, unknownVariant(u, name, path)
	}

	out := &value.Variant{Union: u.Name, Name: name}
	variantPath := joinPath(path, name)
	switch payload := variant.Payload.(type) {
	case shape.PositionalFields:
		out.Kind = value.VariantPositional
		out.Positional = []any{}
		if len(payload) == 0 {
			return out, nil
		}
		data, err := variantData(obj, name, path)
		if err != nil {
			return nil, err
		}
		for i, elem := range payload {
			key := "field" + strconv.Itoa(i)
			node, present := data.Get(key)
			v, err := r.sample(elem, slot{node: node, present: present}, joinPath(variantPath, key))
			if err != nil {
				return nil, err
			}
			out.Positional = append(out.Positional, v)
		}
	case shape.NamedFields:
		out.Kind = value.VariantNamed
		out.Fields = []value.Field{}
		if len(payload) == 0 {
			return out, nil
		}
		data, err := variantData(obj, name, path)
		if err != nil {
			return nil, err
		}
		fields, err := r.fields(payload, data, variantPath)
		if err != nil {
			return nil, err
		}
		out.Fields = fields
	default:
		out.Kind = value.VariantUnit
	}
	return out, nil
}

func variantCandidates(u shape.Union, obj config.Node, path string) ([]string, error) {
	node, ok := obj.Get(variantsKey)
	if !ok || node.IsNull() {
		return u.VariantNames(), nil
	}
	items, ok := node.Items()
	if !ok {
		return u.VariantNames(), nil
	}
	names := make([]string, 0, len(items))
	for _, item := range items {
		if name, ok := item.AsString(); ok {
			names = append(names, name)
		}
	}
	return names, nil
}

func variantData(obj config.Node, name, path string) (config.Node, error) {
	all, ok := obj.Get(variantDataKey)
	if ok && all.Kind() == config.KindObject {
		if data, ok := all.Get(name); ok && data.Kind() == config.KindObject {
			return data, nil
		}
	}
	return config.Node{}, newError(MissingOrInvalidVariantConfig, joinPath(path, name), name,
		"variant_data for %q is missing or not an object", name)
}

func unknownVariant(u shape.Union, name, path string) *SampleError {
	return newError(UnknownVariant, path, name, "variant %q is not declared by %s", name, u.Name)
}
