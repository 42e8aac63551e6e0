// Package orchestrator wires the loader, shape discovery, sampler and
// renderer pipeline behind a single Generate call.
//
// A request names a shape (registered up front or discovered from a JSON
// Schema or OpenAPI document), a configuration tree (inline or loaded),
// an optional jq selection, a count, a seed and an output format.
package orchestrator
