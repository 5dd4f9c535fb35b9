package keyboard

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/reoring/keyboard/i18n"
	eng "github.com/reoring/keyboard/internal/engine"
)

// Issue codes produced while decoding a document. They are reported inside a
// *SourceError.
const (
	CodeMissingKey   = "missing_key"
	CodeUnknownKey   = "unknown_key"
	CodeDuplicateKey = "duplicate_key"
	CodeNullValue    = "null_value"
)

// Format names a document syntax.
type Format int

const (
	FormatYAML Format = iota
	FormatJSON
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	default:
		return "yaml"
	}
}

// FormatOf picks the format from a file name: ".json" is JSON, anything else
// is YAML.
func FormatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// LoadOpt configures document loading.
type LoadOpt struct {
	// Strict rejects unknown top-level keys and duplicate mapping keys
	// anywhere in the document. By default unknown keys are ignored so a
	// keyboard section can live in a larger document.
	Strict bool
	// Logger receives debug events. nil disables logging.
	Logger *zap.Logger
}

// loadOpt returns the last option given; later options replace earlier ones.
func loadOpt(opts []LoadOpt) LoadOpt {
	var opt LoadOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	if opt.Logger == nil {
		opt.Logger = zap.NewNop()
	}
	return opt
}

// FromFile loads a keyboard from a YAML or JSON file chosen by FormatOf.
func FromFile(path string, opts ...LoadOpt) (*Keyboard, error) {
	return fromFile(path, FormatOf(path), opts)
}

// FromYAMLFile loads a keyboard from a YAML file.
func FromYAMLFile(path string, opts ...LoadOpt) (*Keyboard, error) {
	return fromFile(path, FormatYAML, opts)
}

// FromJSONFile loads a keyboard from a JSON file.
func FromJSONFile(path string, opts ...LoadOpt) (*Keyboard, error) {
	return fromFile(path, FormatJSON, opts)
}

// FromYAMLString loads a keyboard from an in-memory YAML document.
func FromYAMLString(data string, opts ...LoadOpt) (*Keyboard, error) {
	return build("<string>", strings.NewReader(data), FormatYAML, loadOpt(opts))
}

// FromJSONString loads a keyboard from an in-memory JSON document.
func FromJSONString(data string, opts ...LoadOpt) (*Keyboard, error) {
	return build("<string>", strings.NewReader(data), FormatJSON, loadOpt(opts))
}

// FromReader decodes, validates and assembles a keyboard read from r.
// Decoding failures are *SourceError (ErrSourceRead); validation failures
// are Issues.
func FromReader(r io.Reader, f Format, opts ...LoadOpt) (*Keyboard, error) {
	return build("<reader>", r, f, loadOpt(opts))
}

// Decode reads a document into a Config without validating it.
func Decode(r io.Reader, f Format, opts ...LoadOpt) (Config, error) {
	c, err := decode(r, f, loadOpt(opts))
	if err != nil {
		return Config{}, &SourceError{Name: "<reader>", Err: err}
	}
	return c, nil
}

// DecodeYAML is Decode with FormatYAML.
func DecodeYAML(r io.Reader, opts ...LoadOpt) (Config, error) { return Decode(r, FormatYAML, opts...) }

// DecodeJSON is Decode with FormatJSON.
func DecodeJSON(r io.Reader, opts ...LoadOpt) (Config, error) { return Decode(r, FormatJSON, opts...) }

func fromFile(path string, f Format, opts []LoadOpt) (*Keyboard, error) {
	opt := loadOpt(opts)
	file, err := os.Open(path)
	if err != nil {
		return nil, &SourceError{Name: path, Err: err}
	}
	defer file.Close()
	return build(path, file, f, opt)
}

func build(name string, r io.Reader, f Format, opt LoadOpt) (*Keyboard, error) {
	log := opt.Logger.With(zap.String("source", name), zap.Stringer("format", f))
	c, err := decode(r, f, opt)
	if err != nil {
		log.Debug("keyboard document rejected", zap.Error(err))
		return nil, &SourceError{Name: name, Err: err}
	}
	kb, err := FromConfig(c)
	if err != nil {
		log.Debug("keyboard description invalid", zap.Error(err))
		return nil, err
	}
	log.Debug("keyboard assembled", zap.Int("keys", kb.Len()))
	return kb, nil
}

func decode(r io.Reader, f Format, opt LoadOpt) (Config, error) {
	switch f {
	case FormatJSON:
		return decodeJSON(r, opt)
	case FormatYAML:
		return decodeYAML(r, opt)
	default:
		return Config{}, fmt.Errorf("unsupported format %d", int(f))
	}
}

func decodeYAML(r io.Reader, opt LoadOpt) (Config, error) {
	dec := yaml.NewDecoder(r)
	var doc yaml.Node
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	} else if err == nil {
		var next yaml.Node
		if err := dec.Decode(&next); !errors.Is(err, io.EOF) {
			if err != nil {
				return Config{}, err
			}
			return Config{}, fmt.Errorf("line %d: expected a single YAML document", next.Line)
		}
	}
	if opt.Strict {
		var dke *eng.DuplicateKeyError
		if err := eng.CheckYAMLDuplicateKeys(&doc); errors.As(err, &dke) {
			return Config{}, Issues{{
				Path:    dke.Path,
				Code:    CodeDuplicateKey,
				Message: i18n.T(CodeDuplicateKey, map[string]string{"key": dke.Key}),
				Hint:    fmt.Sprintf("line %d, first defined at line %d", dke.Line, dke.FirstLine),
				Cause:   err,
			}}
		}
	}
	keyNodes := eng.TopLevelKeys(&doc)
	keys := make([]string, len(keyNodes))
	lines := make(map[string]int, len(keyNodes))
	for i, k := range keyNodes {
		keys[i] = k.Value
		lines[k.Value] = k.Line
	}
	if iss := checkKeys(keys, opt.Strict, func(key string) string {
		return fmt.Sprintf("line %d", lines[key])
	}); len(iss) > 0 {
		return Config{}, iss
	}
	for _, e := range eng.TopLevelEntries(&doc) {
		if !isField(e.Key.Value) {
			continue
		}
		if ptr, line, ok := eng.FirstYAMLNull(e.Value); ok {
			return Config{}, nullValue(Root().Field(e.Key.Value).Pointer()+ptr, fmt.Sprintf("line %d", line))
		}
	}
	var c Config
	if err := doc.Decode(&c); err != nil {
		return Config{}, err
	}
	return c, nil
}

func decodeJSON(r io.Reader, opt LoadOpt) (Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Config{}, err
	}
	if opt.Strict {
		dups, err := eng.DetectJSONDuplicateKeysBytes(data, eng.DupError, -1)
		if err != nil {
			return Config{}, err
		}
		if len(dups) > 0 {
			d := dups[0]
			return Config{}, Issues{{
				Path:    d.Path,
				Code:    CodeDuplicateKey,
				Message: i18n.T(CodeDuplicateKey, map[string]string{"key": lastSegment(d.Path)}),
			}}
		}
	}
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return Config{}, err
	}
	keys := make([]string, 0, len(top))
	for k := range top {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	if iss := checkKeys(keys, opt.Strict, nil); len(iss) > 0 {
		return Config{}, iss
	}
	ptr, found, err := eng.FirstJSONNull(data, func(p string) bool {
		head, _, _ := strings.Cut(strings.TrimPrefix(p, "/"), "/")
		return isField(head)
	})
	if err != nil {
		return Config{}, err
	}
	if found {
		return Config{}, nullValue(ptr, "")
	}
	var c Config
	if err := json.NewDecoder(bytes.NewReader(data)).Decode(&c); err != nil {
		return Config{}, err
	}
	return c, nil
}

// checkKeys reports required document keys that are absent and, in strict
// mode, keys that are not part of a keyboard description. where, if set,
// describes the location of a present key.
func checkKeys(keys []string, strict bool, where func(key string) string) Issues {
	present := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		present[k] = struct{}{}
	}
	var iss Issues
	for _, f := range fields {
		if _, ok := present[f]; !ok {
			iss = AppendIssues(iss, IssueAt(Root().Field(f), CodeMissingKey,
				i18n.T(CodeMissingKey, map[string]string{"key": f}), map[string]any{"key": f}))
		}
	}
	if !strict {
		return iss
	}
	for _, k := range keys {
		if isField(k) {
			continue
		}
		it := IssueAt(Root().Field(k), CodeUnknownKey,
			i18n.T(CodeUnknownKey, map[string]string{"key": k}), map[string]any{"key": k})
		if where != nil {
			it.Hint = where(k)
		}
		iss = AppendIssues(iss, it)
	}
	return iss
}

func lastSegment(pointer string) string {
	i := strings.LastIndexByte(pointer, '/')
	s := pointer[i+1:]
	return strings.ReplaceAll(strings.ReplaceAll(s, "~1", "/"), "~0", "~")
}

func isField(key string) bool { return slices.Contains(fields, key) }

// nullValue reports a null where a keyboard description needs a value. Empty
// YAML values such as "hands:" decode as null too.
func nullValue(ptr, hint string) Issues {
	return Issues{{
		Path:    ptr,
		Code:    CodeNullValue,
		Message: i18n.T(CodeNullValue, map[string]string{"field": ptr}),
		Hint:    hint,
	}}
}
