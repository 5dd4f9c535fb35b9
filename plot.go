package keyboard

import (
	"strconv"

	"github.com/reoring/keyboard/internal/render"
)

// TemplateEngine renders a template by substituting named placeholders with
// the given values, without escaping.
type TemplateEngine interface {
	Render(tmpl string, values map[string]string) (string, error)
}

// DefaultEngine substitutes "{{<index>}}" placeholders, the syntax used by
// keyboard documents.
var DefaultEngine TemplateEngine = render.Engine{}

// Plot renders the full plot template with labels[i] at placeholder {{i}}.
// Placeholders without a label render empty.
func (k *Keyboard) Plot(labels []rune) (string, error) {
	return k.PlotWith(DefaultEngine, labels, false)
}

// PlotCompact renders the compact template (no borders), otherwise like Plot.
func (k *Keyboard) PlotCompact(labels []rune) (string, error) {
	return k.PlotWith(DefaultEngine, labels, true)
}

// PlotWith renders the full or compact template through engine. A nil engine
// means DefaultEngine. Engine failures are returned as *RenderError.
func (k *Keyboard) PlotWith(engine TemplateEngine, labels []rune, compact bool) (string, error) {
	if engine == nil {
		engine = DefaultEngine
	}
	name, tmpl := FieldPlotTemplate, k.plotTemplate
	if compact {
		name, tmpl = FieldPlotTemplateShort, k.plotTemplateShort
	}
	values := make(map[string]string, len(labels))
	for i, r := range labels {
		values[strconv.Itoa(i)] = string(r)
	}
	out, err := engine.Render(tmpl, values)
	if err != nil {
		return "", &RenderError{Template: name, Err: err}
	}
	return out, nil
}
