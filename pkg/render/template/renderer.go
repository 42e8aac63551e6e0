package template

import (
	"io"
	"strings"
)

// Engine executes one template over batch data and writes the result to w.
// source is either a template name or inline template source; data is the
// plain map built by render.TemplateData.
type Engine interface {
	Execute(w io.Writer, source string, data map[string]any) error
}

// IsTemplateContent reports whether s looks like inline template source
// rather than a template name.
func IsTemplateContent(s string) bool {
	return strings.Contains(s, "{{") || strings.Contains(s, "{%") || strings.Contains(s, "{#")
}
