package sample

import (
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-samplify/pkg/config"
	"github.com/goliatone/go-samplify/pkg/shape"
	"github.com/goliatone/go-samplify/pkg/value"
)

// fields samples every field against obj. Each field gets a child source
// drawn in declaration order so the result does not depend on scheduling.
func (r *run) fields(fields []shape.Field, obj config.Node, path string) ([]value.Field, error) {
	children := make([]*run, len(fields))
	for i := range fields {
		children[i] = r.child()
	}

	values := make([]any, len(fields))
	errs := make([]error, len(fields))
	sampleAt := func(i int) {
		field := fields[i]
		node, present := obj.Get(field.Name)
		values[i], errs[i] = children[i].sample(field.Shape, slot{node: node, present: present}, joinPath(path, field.Name))
	}

	if r.parallelism > 1 && len(fields) > 1 {
		var g errgroup.Group
		g.SetLimit(r.parallelism)
		for i := range fields {
			g.Go(func() error {
				sampleAt(i)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i := range fields {
			sampleAt(i)
			if errs[i] != nil {
				break
			}
		}
	}

	out := make([]value.Field, len(fields))
	for i, field := range fields {
		if errs[i] != nil {
			return nil, errs[i]
		}
		out[i] = value.Field{Name: field.Name, Value: values[i]}
	}
	return out, nil
}
