// Package value holds the tree produced by sampling: Go scalars for
// primitives, Option for optional shapes, []any for sequences, *Box for
// indirections, *Record for records and *Variant for unions. Records keep
// field order through JSON and YAML encoding.
package value
