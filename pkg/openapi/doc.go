// Package openapi derives sampling shapes from OpenAPI 3 component schemas.
// Properties keep document order; nullable schemas and properties missing
// from "required" become optional.
package openapi
