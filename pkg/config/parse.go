package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"
)

// maxAliasDepth bounds YAML alias expansion.
const maxAliasDepth = 64

// Parse decodes a JSON or YAML document into a Node. JSON input is detected
// first so documents indented with tabs keep working; anything else is read
// as YAML. Object key order follows the document in both cases.
func Parse(raw []byte) (Node, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return Node{}, errors.New("config: document is empty")
	}
	if json.Valid(trimmed) {
		node, err := parseJSON(trimmed)
		if err != nil {
			return Node{}, fmt.Errorf("config: parse json: %w", err)
		}
		return node, nil
	}
	node, err := parseYAML(trimmed)
	if err != nil {
		return Node{}, fmt.Errorf("config: parse yaml: %w", err)
	}
	return node, nil
}

// MustParse panics if raw cannot be parsed. Useful for tests and examples.
func MustParse(raw string) Node {
	node, err := Parse([]byte(raw))
	if err != nil {
		panic(err)
	}
	return node
}

func parseJSON(raw []byte) (Node, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	node, err := decodeJSONValue(dec)
	if err != nil {
		return Node{}, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return Node{}, errors.New("trailing data after document")
	}
	return node, nil
}

func decodeJSONValue(dec *json.Decoder) (Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return Node{}, err
	}
	switch v := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(v), nil
	case string:
		return String(v), nil
	case json.Number:
		return numberFromText(v.String())
	case json.Delim:
		switch v {
		case '[':
			var items []Node
			for dec.More() {
				item, err := decodeJSONValue(dec)
				if err != nil {
					return Node{}, err
				}
				items = append(items, item)
			}
			if _, err := dec.Token(); err != nil {
				return Node{}, err
			}
			return Array(items...), nil
		case '{':
			var members []Member
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Node{}, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return Node{}, fmt.Errorf("unexpected object key %v", keyTok)
				}
				value, err := decodeJSONValue(dec)
				if err != nil {
					return Node{}, err
				}
				members = append(members, Member{Key: key, Value: value})
			}
			if _, err := dec.Token(); err != nil {
				return Node{}, err
			}
			return Object(members...), nil
		}
	}
	return Node{}, fmt.Errorf("unexpected token %v", tok)
}

func numberFromText(text string) (Node, error) {
	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		return Int(i), nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return Node{}, fmt.Errorf("invalid number %q", text)
	}
	return Float(f), nil
}

func parseYAML(raw []byte) (Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return Node{}, err
	}
	return fromYAML(&doc, 0)
}

func fromYAML(n *yaml.Node, depth int) (Node, error) {
	if n == nil {
		return Null(), nil
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Null(), nil
		}
		return fromYAML(n.Content[0], depth)
	case yaml.AliasNode:
		if depth >= maxAliasDepth {
			return Node{}, fmt.Errorf("line %d: alias nesting too deep", n.Line)
		}
		return fromYAML(n.Alias, depth+1)
	case yaml.SequenceNode:
		items := make([]Node, 0, len(n.Content))
		for _, child := range n.Content {
			item, err := fromYAML(child, depth)
			if err != nil {
				return Node{}, err
			}
			items = append(items, item)
		}
		return Array(items...), nil
	case yaml.MappingNode:
		members := make([]Member, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			keyNode := n.Content[i]
			var key string
			if err := keyNode.Decode(&key); err != nil {
				return Node{}, fmt.Errorf("line %d: object keys must be strings", keyNode.Line)
			}
			value, err := fromYAML(n.Content[i+1], depth)
			if err != nil {
				return Node{}, err
			}
			members = append(members, Member{Key: key, Value: value})
		}
		return Object(members...), nil
	case yaml.ScalarNode:
		return scalarFromYAML(n)
	default:
		return Node{}, fmt.Errorf("line %d: unsupported yaml node", n.Line)
	}
}

func scalarFromYAML(n *yaml.Node) (Node, error) {
	switch n.ShortTag() {
	case "!!null":
		return Null(), nil
	case "!!bool":
		var v bool
		if err := n.Decode(&v); err != nil {
			return Node{}, err
		}
		return Bool(v), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return Int(i), nil
		}
		var f float64
		if err := n.Decode(&f); err != nil {
			return Node{}, fmt.Errorf("line %d: invalid integer %q", n.Line, n.Value)
		}
		return Float(f), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return Node{}, fmt.Errorf("line %d: invalid number %q", n.Line, n.Value)
		}
		return Float(f), nil
	default:
		return String(n.Value), nil
	}
}
