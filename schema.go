package keyboard

import (
	"math"

	js "github.com/reoring/keyboard/jsonschema"
)

// ConfigJSONSchema describes the keyboard document: the nine required keys,
// rows of per-key values, coordinate pairs and the hand/finger names.
// Cross-field rules (equal key counts, unique positions) are not expressible
// here and are left to Config.Validate. Unknown keys are allowed, matching
// non-strict loading.
func ConfigJSONSchema() *js.Schema {
	rows := func(item *js.Schema, desc string) *js.Schema {
		s := js.ArrayOf(js.ArrayOf(item))
		s.Description = desc
		return s
	}
	names := func(v []string) []any {
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out
	}
	matrixCoord := &js.Schema{Type: "integer", Minimum: js.Ptr(0.0), Maximum: js.Ptr(float64(math.MaxUint8))}

	return &js.Schema{
		SchemaURI:   js.Draft,
		Title:       "keyboard",
		Description: "Per-row key properties of a physical keyboard and its plot templates.",
		Type:        "object",
		Required:    Fields(),
		Properties: map[string]*js.Schema{
			FieldMatrixPositions:      rows(js.Tuple(matrixCoord, 2), "[col, row] of each key in the switch matrix"),
			FieldPositions:            rows(js.Tuple(&js.Schema{Type: "number"}, 2), "[x, y] physical placement of each key"),
			FieldHands:                rows(&js.Schema{Type: "string", Enum: names(handNames[:])}, "hand operating each key"),
			FieldFingers:              rows(&js.Schema{Type: "string", Enum: names(fingerNames[:])}, "finger operating each key"),
			FieldKeyCosts:             rows(&js.Schema{Type: "number"}, "ergonomic cost of each key"),
			FieldSymmetries:           rows(&js.Schema{Type: "integer"}, "symmetry group of each key"),
			FieldUnbalancingPositions: rows(&js.Schema{Type: "number"}, "unbalancing weight of each key"),
			FieldPlotTemplate:         {Type: "string", Description: "plot template with {{<key index>}} placeholders"},
			FieldPlotTemplateShort:    {Type: "string", Description: "compact plot template with {{<key index>}} placeholders"},
		},
		AdditionalProperties: true,
	}
}
