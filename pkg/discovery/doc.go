// Package discovery derives shapes from schema documents through pluggable
// format adapters.
package discovery
