package sample

import (
	"github.com/goliatone/go-samplify/pkg/config"
	"github.com/goliatone/go-samplify/pkg/shape"
	"github.com/goliatone/go-samplify/pkg/value"
)

func (r *run) sequence(s shape.Sequence, sl slot, path string) (any, error) {
	if !sl.present {
		return []any{}, nil
	}
	items, ok := sl.node.Items()
	if !ok {
		return nil, newError(WrongShape, path, lastSegment(path), "expected an array, got %s", sl.node.Kind())
	}

	elem, boxes := unwrapIndirect(s.Elem)
	if p, ok := elem.(shape.Primitive); ok {
		return r.subset(p, boxes, items, path)
	}

	out := make([]any, len(items))
	for i, item := range items {
		itemPath := indexPath(path, i)
		if item.Kind() != config.KindObject {
			return nil, newError(WrongShape, itemPath, lastSegment(path), "expected an object, got %s", item.Kind())
		}
		v, err := r.sample(s.Elem, slot{node: item, present: true}, itemPath)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// subset draws between 1 and n distinct values from the primitive pool.
func (r *run) subset(p shape.Primitive, boxes int, items []config.Node, path string) (any, error) {
	pool := make([]any, 0, len(items))
	seen := make(map[any]struct{}, len(items))
	for _, item := range items {
		v, ok := poolValue(p, item)
		if !ok {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		pool = append(pool, v)
	}
	if len(pool) == 0 {
		return nil, newError(EmptyDomain, path, lastSegment(path), "no %s values to choose from", p.Type)
	}

	n := len(pool)
	k := 1 + r.rng.IntN(n)
	for i := 0; i < k; i++ {
		j := i + r.rng.IntN(n-i)
		pool[i], pool[j] = pool[j], pool[i]
	}

	out := make([]any, k)
	for i, v := range pool[:k] {
		for b := 0; b < boxes; b++ {
			v = &value.Box{Value: v}
		}
		out[i] = v
	}
	return out, nil
}

func poolValue(p shape.Primitive, node config.Node) (any, bool) {
	switch p.Type {
	case shape.Int:
		v, ok := node.AsInt()
		if !ok {
			return nil, false
		}
		return narrowInt(p, v), true
	case shape.Float:
		v, ok := node.AsFloat()
		if !ok {
			return nil, false
		}
		if p.Width() == 32 {
			return float32(v), true
		}
		return v, true
	case shape.String:
		return node.AsString()
	case shape.Bool:
		return node.AsBool()
	default:
		return nil, false
	}
}

func unwrapIndirect(s shape.Shape) (shape.Shape, int) {
	depth := 0
	for {
		ind, ok := s.(shape.Indirect)
		if !ok {
			return s, depth
		}
		s = ind.Inner
		depth++
	}
}
