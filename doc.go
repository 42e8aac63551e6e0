// Package samplify generates random values for structured data types from a
// configuration tree that declares every field's domain: numeric ranges,
// string choices, optional presence, sequence pools and union variants.
//
// Go types opt in by implementing shape.Provider:
//
//	func (Payment) SampleShape() shape.Shape {
//		return shape.RecordOf("Payment",
//			shape.FieldOf("currency", shape.Text()),
//			shape.FieldOf("amount", shape.Float64()),
//		)
//	}
//
//	p, err := samplify.SampleAs[Payment](config.MustParse(`{
//		"currency": ["USD", "EUR"],
//		"amount": [10, 1000]
//	}`))
//
// Shapes can also be discovered from JSON Schema or OpenAPI documents and
// rendered as JSON, NDJSON, YAML or templated text through the orchestrator
// and the samplify command.
package samplify
