// Package template defines the engine contract behind the template output
// renderer. The pongo subpackage provides the default implementation.
package template
