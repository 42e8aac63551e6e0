// Package document describes where shape and config documents come from and
// how they are loaded.
package document
