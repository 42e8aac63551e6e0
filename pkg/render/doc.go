// Package render defines the contract shared by output renderers and the
// registry the orchestrator resolves formats from.
//
// A renderer receives a Batch (run id, shape name, seed and the sampled
// values) and returns bytes. Built-in renderers live under pkg/renderers.
package render
