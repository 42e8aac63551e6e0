package sample

import (
	"math"

	"github.com/goliatone/go-samplify/pkg/config"
	"github.com/goliatone/go-samplify/pkg/shape"
)

func (r *run) primitive(p shape.Primitive, node config.Node, path string) (any, error) {
	switch p.Type {
	case shape.Int:
		lo, hi, err := intRange(node, path)
		if err != nil {
			return nil, err
		}
		span := uint64(hi) - uint64(lo)
		return narrowInt(p, lo+int64(r.rng.Uint64N(span))), nil
	case shape.Float:
		lo, hi, err := floatRange(node, path)
		if err != nil {
			return nil, err
		}
		return r.float(p, lo, hi, path)
	case shape.String:
		return r.text(node, path)
	case shape.Bool:
		// Booleans are copied from the config, never drawn.
		b, ok := node.AsBool()
		if !ok {
			return nil, newError(WrongShape, path, lastSegment(path), "expected a boolean, got %s", node.Kind())
		}
		return b, nil
	default:
		return nil, newError(WrongShape, path, lastSegment(path), "unsupported primitive %s", p.Type)
	}
}

func bounds(node config.Node, path string) (config.Node, config.Node, error) {
	items, ok := node.Items()
	if !ok {
		return config.Node{}, config.Node{}, newError(WrongShape, path, lastSegment(path),
			"expected a range array [min, max], got %s", node.Kind())
	}
	if len(items) != 2 {
		return config.Node{}, config.Node{}, newError(WrongShape, path, lastSegment(path),
			"range array must have exactly two elements, got %d", len(items))
	}
	return items[0], items[1], nil
}

func intRange(node config.Node, path string) (int64, int64, error) {
	a, b, err := bounds(node, path)
	if err != nil {
		return 0, 0, err
	}
	lo, okLo := a.AsInt()
	hi, okHi := b.AsInt()
	if !okLo || !okHi {
		return 0, 0, newError(InvalidRangeValues, path, lastSegment(path),
			"range bounds %s and %s are not integers", a, b)
	}
	if lo >= hi {
		return 0, 0, newError(InvalidRangeValues, path, lastSegment(path),
			"range [%d, %d) is empty", lo, hi)
	}
	return lo, hi, nil
}

func floatRange(node config.Node, path string) (float64, float64, error) {
	a, b, err := bounds(node, path)
	if err != nil {
		return 0, 0, err
	}
	lo, okLo := a.AsFloat()
	hi, okHi := b.AsFloat()
	if !okLo || !okHi || math.IsInf(lo, 0) || math.IsInf(hi, 0) || math.IsNaN(lo) || math.IsNaN(hi) {
		return 0, 0, newError(InvalidRangeValues, path, lastSegment(path),
			"range bounds %s and %s are not finite numbers", a, b)
	}
	if lo >= hi {
		return 0, 0, newError(InvalidRangeValues, path, lastSegment(path),
			"range [%g, %g) is empty", lo, hi)
	}
	return lo, hi, nil
}

// narrowInt converts v to the declared width. Values outside the width wrap
// the way Go integer conversions do.
func narrowInt(p shape.Primitive, v int64) any {
	switch {
	case p.Unsigned && p.Width() == 8:
		return uint8(v)
	case p.Unsigned && p.Width() == 16:
		return uint16(v)
	case p.Unsigned && p.Width() == 32:
		return uint32(v)
	case p.Unsigned:
		return uint64(v)
	case p.Width() == 8:
		return int8(v)
	case p.Width() == 16:
		return int16(v)
	case p.Width() == 32:
		return int32(v)
	default:
		return v
	}
}

func (r *run) float(p shape.Primitive, lo, hi float64, path string) (any, error) {
	u := r.rng.Float64()
	v := lo + u*(hi-lo)
	if math.IsInf(hi-lo, 0) {
		v = lo*(1-u) + hi*u
	}
	if v >= hi {
		v = math.Nextafter(hi, lo)
	}
	if v < lo {
		v = lo
	}
	if p.Width() != 32 {
		return v, nil
	}

	f := float32(v)
	if float64(f) >= hi {
		f = math.Nextafter32(f, float32(math.Inf(-1)))
	}
	if float64(f) < lo {
		f = math.Nextafter32(f, float32(math.Inf(1)))
	}
	if float64(f) < lo || float64(f) >= hi {
		return nil, newError(InvalidRangeValues, path, lastSegment(path),
			"range [%g, %g) holds no float32 value", lo, hi)
	}
	return f, nil
}

func (r *run) text(node config.Node, path string) (any, error) {
	if s, ok := node.AsString(); ok {
		return s, nil
	}
	items, ok := node.Items()
	if !ok {
		return nil, newError(WrongShape, path, lastSegment(path),
			"expected a string or an array of strings, got %s", node.Kind())
	}
	values := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.AsString(); ok {
			values = append(values, s)
		}
	}
	if len(values) == 0 {
		return nil, newError(EmptyDomain, path, lastSegment(path), "values array holds no strings")
	}
	return values[r.rng.IntN(len(values))], nil
}
