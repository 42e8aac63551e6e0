package config

import (
	"encoding/json"
	"fmt"
	"math/big"
	"sort"
)

// FromInterface converts a decoded Go value (as produced by encoding/json,
// yaml.v3 or gojq) into a Node. Map keys are sorted since Go maps carry no
// order.
func FromInterface(v any) (Node, error) {
	switch typed := v.(type) {
	case nil:
		return Null(), nil
	case Node:
		return typed, nil
	case bool:
		return Bool(typed), nil
	case string:
		return String(typed), nil
	case int:
		return Int(int64(typed)), nil
	case int8:
		return Int(int64(typed)), nil
	case int16:
		return Int(int64(typed)), nil
	case int32:
		return Int(int64(typed)), nil
	case int64:
		return Int(typed), nil
	case uint:
		return Float(float64(typed)), nil
	case uint8:
		return Int(int64(typed)), nil
	case uint16:
		return Int(int64(typed)), nil
	case uint32:
		return Int(int64(typed)), nil
	case uint64:
		if typed <= 1<<63-1 {
			return Int(int64(typed)), nil
		}
		return Float(float64(typed)), nil
	case float32:
		return Float(float64(typed)), nil
	case float64:
		return Float(typed), nil
	case *big.Int:
		if typed.IsInt64() {
			return Int(typed.Int64()), nil
		}
		f, _ := new(big.Float).SetInt(typed).Float64()
		return Float(f), nil
	case json.Number:
		return numberFromText(typed.String())
	case []any:
		items := make([]Node, 0, len(typed))
		for i, item := range typed {
			node, err := FromInterface(item)
			if err != nil {
				return Node{}, fmt.Errorf("[%d]: %w", i, err)
			}
			items = append(items, node)
		}
		return Array(items...), nil
	case []string:
		items := make([]Node, 0, len(typed))
		for _, item := range typed {
			items = append(items, String(item))
		}
		return Array(items...), nil
	case map[string]any:
		keys := make([]string, 0, len(typed))
		for key := range typed {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		members := make([]Member, 0, len(keys))
		for _, key := range keys {
			node, err := FromInterface(typed[key])
			if err != nil {
				return Node{}, fmt.Errorf("%s: %w", key, err)
			}
			members = append(members, Member{Key: key, Value: node})
		}
		return Object(members...), nil
	default:
		return Node{}, fmt.Errorf("config: unsupported value of type %T", v)
	}
}

// MustFromInterface panics when v cannot be converted.
func MustFromInterface(v any) Node {
	node, err := FromInterface(v)
	if err != nil {
		panic(err)
	}
	return node
}

// Interface returns the node as plain Go values: nil, bool, int (for
// integers), float64, string, []any and map[string]any.
func (n Node) Interface() any {
	switch n.kind {
	case KindBool:
		return n.boolean
	case KindNumber:
		if n.integral && float64(n.integer) == n.number {
			return int(n.integer)
		}
		return n.number
	case KindString:
		return n.text
	case KindArray:
		out := make([]any, len(n.items))
		for i, item := range n.items {
			out[i] = item.Interface()
		}
		return out
	case KindObject:
		out := make(map[string]any, len(n.keys))
		for _, key := range n.keys {
			out[key] = n.fields[key].Interface()
		}
		return out
	default:
		return nil
	}
}
