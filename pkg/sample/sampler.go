package sample

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/goliatone/go-samplify/pkg/config"
	"github.com/goliatone/go-samplify/pkg/shape"
	"github.com/goliatone/go-samplify/pkg/value"
)

// Sampler draws random values for shapes from a configuration tree. A
// Sampler is immutable and safe for concurrent use; every call owns its
// random source.
type Sampler struct {
	seed           uint64
	seeded         bool
	strictVariants bool
	parallelism    int
}

// New builds a Sampler.
func New(opts ...Option) *Sampler {
	s := &Sampler{parallelism: 1}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// With returns a copy of s with opts applied on top of its settings.
func (s *Sampler) With(opts ...Option) *Sampler {
	clone := *s
	for _, opt := range opts {
		if opt != nil {
			opt(&clone)
		}
	}
	return &clone
}

// Seed returns the configured seed and whether one was set.
func (s *Sampler) Seed() (uint64, bool) {
	return s.seed, s.seeded
}

// Sample draws one value for s using root as its configuration.
func Sample(s shape.Shape, root config.Node) (any, error) {
	return New().Sample(s, root)
}

// Sample draws one value for sh using root as its configuration.
func (s *Sampler) Sample(sh shape.Shape, root config.Node) (any, error) {
	if err := shape.Validate(sh); err != nil {
		return nil, fmt.Errorf("sample: %w", err)
	}
	return s.newRun(s.source()).sample(sh, slot{node: root, present: true}, "")
}

// SampleN draws n independent values. With WithSeed the whole batch is
// reproducible. The context is checked between items.
func (s *Sampler) SampleN(ctx context.Context, sh shape.Shape, root config.Node, n int) ([]any, error) {
	if n < 0 {
		return nil, fmt.Errorf("sample: negative count %d", n)
	}
	if err := shape.Validate(sh); err != nil {
		return nil, fmt.Errorf("sample: %w", err)
	}
	master := s.source()
	out := make([]any, 0, n)
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		v, err := s.newRun(split(master)).sample(sh, slot{node: root, present: true}, "")
		if err != nil {
			return nil, fmt.Errorf("sample: item %d: %w", i, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func (s *Sampler) source() *rand.Rand {
	if s.seeded {
		return rand.New(rand.NewPCG(s.seed, s.seed^0x9e3779b97f4a7c15))
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

func (s *Sampler) newRun(rng *rand.Rand) *run {
	return &run{rng: rng, strict: s.strictVariants, parallelism: s.parallelism}
}

func split(rng *rand.Rand) *rand.Rand {
	return rand.New(rand.NewPCG(rng.Uint64(), rng.Uint64()))
}

// run carries the state of one sampling call. A run is used by a single
// goroutine; parallel record fields get their own child runs.
type run struct {
	rng         *rand.Rand
	strict      bool
	parallelism int
}

func (r *run) child() *run {
	return &run{rng: split(r.rng), strict: r.strict, parallelism: r.parallelism}
}

// slot is the configuration entry for one node. present is false when the
// key was missing from the enclosing object.
type slot struct {
	node    config.Node
	present bool
}

func (r *run) sample(sh shape.Shape, sl slot, path string) (any, error) {
	switch s := sh.(type) {
	case shape.Primitive:
		if !sl.present {
			return nil, missing(path)
		}
		return r.primitive(s, sl.node, path)
	case shape.Optional:
		if !sl.present || sl.node.IsNull() {
			return value.None(), nil
		}
		v, err := r.sample(s.Inner, sl, path)
		if err != nil {
			return nil, err
		}
		return value.Some(v), nil
	case shape.Sequence:
		return r.sequence(s, sl, path)
	case shape.Indirect:
		v, err := r.sample(s.Inner, sl, path)
		if err != nil {
			return nil, err
		}
		return &value.Box{Value: v}, nil
	case shape.Record:
		obj, err := object(sl, path)
		if err != nil {
			return nil, err
		}
		fields, err := r.fields(s.Fields, obj, path)
		if err != nil {
			return nil, err
		}
		return &value.Record{Name: s.Name, Fields: fields}, nil
	case shape.Union:
		obj, err := object(sl, path)
		if err != nil {
			return nil, err
		}
		return r.union(s, obj, path)
	default:
		return nil, fmt.Errorf("sample: unsupported shape %T at %s", sh, path)
	}
}

func object(sl slot, path string) (config.Node, error) {
	if !sl.present {
		return config.Node{}, missing(path)
	}
	if sl.node.Kind() != config.KindObject {
		return config.Node{}, newError(WrongShape, path, lastSegment(path), "expected an object, got %s", sl.node.Kind())
	}
	return sl.node, nil
}

func missing(path string) *SampleError {
	name := lastSegment(path)
	return newError(MissingConfig, path, name, "configuration for %q is missing", name)
}

func lastSegment(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '.' {
			return path[i+1:]
		}
	}
	return path
}
