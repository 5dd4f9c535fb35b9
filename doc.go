// Package keyboard provides:
//
// - Decoding of a row-structured keyboard description (YAML or JSON) into Config
// - Cross-field validation via Config.Validate with a stable error model (Issues: JSON Pointer, code, message)
// - Assembly into an immutable Keyboard whose key order (KeyIndex) is the row-major document order
// - Text plots of a keyboard from per-key labels (Plot/PlotCompact)
//
// Design policy:
// - Keep only public APIs in the root package; put detailed implementations under internal/.
// - Place the CLI under cmd/keyboard; message catalogs under i18n/; schema export under jsonschema/.
// - Decoding failures match ErrSourceRead, validation failures match one of
//   ErrMismatchedFieldCount, ErrDuplicateMatrixPosition, ErrDuplicatePosition,
//   and plot failures match ErrTemplateRender.
//
// Typical usage:
//
//	kb, err := keyboard.FromYAMLFile("standard_keyboard.yml")
//	for i, key := range kb.All() { ... }
//	out, err := kb.Plot([]rune("qwertz..."))
package keyboard
