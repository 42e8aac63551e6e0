package config

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// Kind identifies the type of a Node.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Member is a single key/value entry of an object node.
type Member struct {
	Key   string
	Value Node
}

// Node is an immutable configuration tree value. The zero value is Null.
// Objects keep the order in which their keys were declared.
type Node struct {
	kind     Kind
	boolean  bool
	number   float64
	integer  int64
	integral bool
	text     string
	items    []Node
	keys     []string
	fields   map[string]Node
}

// Null returns the null node.
func Null() Node {
	return Node{}
}

// Bool returns a boolean node.
func Bool(v bool) Node {
	return Node{kind: KindBool, boolean: v}
}

// Int returns an integer number node.
func Int(v int64) Node {
	return Node{kind: KindNumber, number: float64(v), integer: v, integral: true}
}

// Float returns a number node. Finite values without a fractional part are
// also readable as integers.
func Float(v float64) Node {
	node := Node{kind: KindNumber, number: v}
	if isIntegral(v) {
		node.integer = int64(v)
		node.integral = true
	}
	return node
}

// String returns a string node.
func String(v string) Node {
	return Node{kind: KindString, text: v}
}

// Array returns an array node holding a copy of items.
func Array(items ...Node) Node {
	return Node{kind: KindArray, items: append([]Node{}, items...)}
}

// Object returns an object node. A repeated key replaces the earlier value
// but keeps its original position.
func Object(members ...Member) Node {
	node := Node{kind: KindObject, fields: make(map[string]Node, len(members))}
	for _, member := range members {
		if _, exists := node.fields[member.Key]; !exists {
			node.keys = append(node.keys, member.Key)
		}
		node.fields[member.Key] = member.Value
	}
	return node
}

// Kind reports the node type.
func (n Node) Kind() Kind {
	return n.kind
}

// IsNull reports whether the node is null.
func (n Node) IsNull() bool {
	return n.kind == KindNull
}

// AsBool returns the boolean value of a boolean node.
func (n Node) AsBool() (bool, bool) {
	if n.kind != KindBool {
		return false, false
	}
	return n.boolean, true
}

// AsFloat returns the numeric value of a number node.
func (n Node) AsFloat() (float64, bool) {
	if n.kind != KindNumber {
		return 0, false
	}
	return n.number, true
}

// AsInt returns the value of a number node that holds an integer, either
// written as one or as a float without fractional part.
func (n Node) AsInt() (int64, bool) {
	if n.kind != KindNumber || !n.integral {
		return 0, false
	}
	return n.integer, true
}

// AsString returns the value of a string node.
func (n Node) AsString() (string, bool) {
	if n.kind != KindString {
		return "", false
	}
	return n.text, true
}

// Items returns the elements of an array node. The slice must not be modified.
func (n Node) Items() ([]Node, bool) {
	if n.kind != KindArray {
		return nil, false
	}
	return n.items, true
}

// Len returns the number of elements of an array or members of an object.
func (n Node) Len() int {
	switch n.kind {
	case KindArray:
		return len(n.items)
	case KindObject:
		return len(n.keys)
	default:
		return 0
	}
}

// Index returns the i-th element of an array node.
func (n Node) Index(i int) (Node, bool) {
	if n.kind != KindArray || i < 0 || i >= len(n.items) {
		return Node{}, false
	}
	return n.items[i], true
}

// Get looks up key in an object node. The second result distinguishes an
// absent key from a key bound to null.
func (n Node) Get(key string) (Node, bool) {
	if n.kind != KindObject {
		return Node{}, false
	}
	child, ok := n.fields[key]
	return child, ok
}

// Keys returns the object keys in declaration order.
func (n Node) Keys() []string {
	if n.kind != KindObject {
		return nil
	}
	return append([]string(nil), n.keys...)
}

// Members returns the object entries in declaration order.
func (n Node) Members() []Member {
	if n.kind != KindObject {
		return nil
	}
	out := make([]Member, 0, len(n.keys))
	for _, key := range n.keys {
		out = append(out, Member{Key: key, Value: n.fields[key]})
	}
	return out
}

// Equal reports whether two nodes hold the same value. Object comparison
// ignores key order; numbers compare by value.
func (n Node) Equal(other Node) bool {
	if n.kind != other.kind {
		return false
	}
	switch n.kind {
	case KindNull:
		return true
	case KindBool:
		return n.boolean == other.boolean
	case KindNumber:
		if n.integral && other.integral {
			return n.integer == other.integer
		}
		return n.number == other.number
	case KindString:
		return n.text == other.text
	case KindArray:
		if len(n.items) != len(other.items) {
			return false
		}
		for i := range n.items {
			if !n.items[i].Equal(other.items[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(n.keys) != len(other.keys) {
			return false
		}
		for key, value := range n.fields {
			theirs, ok := other.fields[key]
			if !ok || !value.Equal(theirs) {
				return false
			}
		}
		return true
	}
	return false
}

// MarshalJSON encodes the node keeping object key order.
func (n Node) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := n.writeJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// String renders the node as compact JSON.
func (n Node) String() string {
	data, err := n.MarshalJSON()
	if err != nil {
		return "<invalid: " + err.Error() + ">"
	}
	return string(data)
}

func (n Node) writeJSON(buf *bytes.Buffer) error {
	switch n.kind {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		buf.WriteString(strconv.FormatBool(n.boolean))
	case KindNumber:
		if n.integral && float64(n.integer) == n.number {
			buf.WriteString(strconv.FormatInt(n.integer, 10))
			return nil
		}
		encoded, err := json.Marshal(n.number)
		if err != nil {
			return err
		}
		buf.Write(encoded)
	case KindString:
		encoded, err := json.Marshal(n.text)
		if err != nil {
			return err
		}
		buf.Write(encoded)
	case KindArray:
		buf.WriteByte('[')
		for i, item := range n.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindObject:
		buf.WriteByte('{')
		for i, key := range n.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			encoded, err := json.Marshal(key)
			if err != nil {
				return err
			}
			buf.Write(encoded)
			buf.WriteByte(':')
			if err := n.fields[key].writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	}
	return nil
}

func isIntegral(v float64) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	if v != math.Trunc(v) {
		return false
	}
	return v >= math.MinInt64 && v < math.MaxInt64
}
