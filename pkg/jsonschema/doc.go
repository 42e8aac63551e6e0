// Package jsonschema derives sampling shapes from JSON Schema documents.
//
// Objects become records with properties in document order; properties not
// listed in "required", or whose type includes "null", become optional.
// Integer "format" values int8 through uint64 pick the width, number with
// format "float" becomes a 32-bit float. A "$ref" to "$defs" becomes an
// indirection; "oneOf" becomes a union whose variants are named by "title"
// or by a "_type" constant, with "prefixItems" for positional payloads.
package jsonschema
