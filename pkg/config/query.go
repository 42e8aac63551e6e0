package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/itchyny/gojq"
)

// Select evaluates a jq expression against the node and returns its single
// result. It lets one document carry configuration for several types, e.g.
// `.payments.instruction`. An empty expression returns the node unchanged.
func Select(n Node, expr string) (Node, error) {
	trimmed := strings.TrimSpace(expr)
	if trimmed == "" || trimmed == "." {
		return n, nil
	}

	query, err := gojq.Parse(trimmed)
	if err != nil {
		return Node{}, fmt.Errorf("config: parse selector %q: %w", trimmed, err)
	}

	iter := query.Run(n.Interface())
	var results []any
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, isErr := v.(error); isErr {
			var haltErr *gojq.HaltError
			if errors.As(err, &haltErr) && haltErr.Value() == nil {
				break
			}
			return Node{}, fmt.Errorf("config: evaluate selector %q: %w", trimmed, err)
		}
		results = append(results, v)
		if len(results) > 1 {
			return Node{}, fmt.Errorf("config: selector %q produced more than one value", trimmed)
		}
	}
	if len(results) == 0 {
		return Node{}, fmt.Errorf("config: selector %q produced no value", trimmed)
	}

	selected, err := FromInterface(results[0])
	if err != nil {
		return Node{}, fmt.Errorf("config: selector %q: %w", trimmed, err)
	}
	return selected, nil
}
