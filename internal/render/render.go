// Package render substitutes named placeholders in plot templates.
package render

import (
	"io"
	"strings"

	"github.com/valyala/fasttemplate"
)

const (
	DefaultStartTag = "{{"
	DefaultEndTag   = "}}"
)

// Engine replaces every StartTag name EndTag placeholder with the value
// registered for name. Spaces around the name are ignored, unknown names
// render as the empty string, and nothing is escaped. The zero value uses
// "{{" and "}}".
type Engine struct {
	StartTag string
	EndTag   string
}

// Render substitutes the placeholders of tmpl with values. It fails when a
// start tag is never closed.
func (e Engine) Render(tmpl string, values map[string]string) (string, error) {
	start, end := e.StartTag, e.EndTag
	if start == "" {
		start = DefaultStartTag
	}
	if end == "" {
		end = DefaultEndTag
	}
	t, err := fasttemplate.NewTemplate(tmpl, start, end)
	if err != nil {
		return "", err
	}
	return t.ExecuteFuncStringWithErr(func(w io.Writer, tag string) (int, error) {
		return io.WriteString(w, values[strings.TrimSpace(tag)])
	})
}
