// Package sample draws random values for a shape.Shape from a config.Node
// that declares the domain of every field.
//
// The configuration mirrors the shape: numeric fields take a [min, max)
// pair, string fields take a list of choices or a literal, booleans are
// copied as is, optional fields may be absent or null, sequences take an
// array (a candidate pool for primitive elements, one object per element
// otherwise), records take an object and unions take an object with the
// optional "variants" and "variant_data" keys.
//
//	s := sample.New(sample.WithSeed(42))
//	v, err := s.Sample(shape.RecordOf("Payment",
//		shape.FieldOf("currency", shape.Text()),
//		shape.FieldOf("amount", shape.Float64()),
//	), config.MustParse(`{"currency": ["USD", "EUR"], "amount": [10, 1000]}`))
//
// Errors are *SampleError values that unwrap to one of the Err* sentinels.
package sample
