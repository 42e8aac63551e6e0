// Package pongo implements the template engine contract with pongo2. It
// registers "trim", "sanitize" (bluemonday strict policy) and "tojson"
// filters the first time an engine is built.
package pongo
