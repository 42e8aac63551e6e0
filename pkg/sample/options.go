package sample

// Option configures a Sampler.
type Option func(*Sampler)

// WithSeed makes sampling reproducible: every call with the same shape,
// config and seed returns the same value.
func WithSeed(seed uint64) Option {
	return func(s *Sampler) {
		s.seed = seed
		s.seeded = true
	}
}

// WithStrictVariants validates every name listed under "variants" against
// the declared variants before one is selected. By default an unknown name
// only fails when it is the one drawn.
func WithStrictVariants() Option {
	return func(s *Sampler) {
		s.strictVariants = true
	}
}

// WithParallelism samples sibling record fields on up to n goroutines.
// Results do not depend on n.
func WithParallelism(n int) Option {
	return func(s *Sampler) {
		if n > 0 {
			s.parallelism = n
		}
	}
}
