package keyboard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/keyboard/i18n"
)

// Issue codes produced by Config.Validate.
const (
	CodeMismatchedFieldCount    = "mismatched_field_count"
	CodeDuplicateMatrixPosition = "duplicate_matrix_position"
	CodeDuplicatePosition       = "duplicate_position"
)

// Message codes of SourceError and RenderError.
const (
	CodeSourceRead     = "source_read"
	CodeTemplateRender = "template_render"
)

// Sentinel errors. Every failure returned by this package matches exactly one
// of them via errors.Is.
var (
	// ErrMismatchedFieldCount: the seven key attributes describe different
	// numbers of keys.
	ErrMismatchedFieldCount = errors.New("keyboard: mismatched field count")
	// ErrDuplicateMatrixPosition: two keys share a matrix position.
	ErrDuplicateMatrixPosition = errors.New("keyboard: duplicate matrix position")
	// ErrDuplicatePosition: two keys share a spatial position.
	ErrDuplicatePosition = errors.New("keyboard: duplicate position")
	// ErrSourceRead: the document could not be opened or decoded.
	ErrSourceRead = errors.New("keyboard: source read failed")
	// ErrTemplateRender: a plot template could not be rendered.
	ErrTemplateRender = errors.New("keyboard: template render failed")
)

var codeSentinels = map[string]error{
	CodeMismatchedFieldCount:    ErrMismatchedFieldCount,
	CodeDuplicateMatrixPosition: ErrDuplicateMatrixPosition,
	CodeDuplicatePosition:       ErrDuplicatePosition,
}

// Issue represents a single validation entry.
type Issue struct {
	Path    string // JSON Pointer into the document (for example: /positions/1/3).
	Code    string // One of the Code* constants.
	Message string
	Hint    string // Optional: remediation hint.
	Cause   error  // Optional: underlying error.
	// Params carries structured parameters (e.g. {"first": "/positions/0/0"})
	// for i18n and logging.
	Params map[string]any
}

func (it Issue) Error() string {
	msg := it.Message
	if msg == "" {
		msg = i18n.T(it.Code, nil)
	}
	if it.Path == "" {
		return msg
	}
	return fmt.Sprintf("%s at %s", msg, it.Path)
}

// Unwrap returns the sentinel matching the issue code, or Cause when set.
func (it Issue) Unwrap() error {
	if it.Cause != nil {
		return it.Cause
	}
	return codeSentinels[it.Code]
}

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := min(n, maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(iss[i].Error())
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Unwrap exposes each issue so errors.Is matches the sentinels.
func (iss Issues) Unwrap() []error {
	out := make([]error, 0, len(iss))
	for _, it := range iss {
		out = append(out, it)
	}
	return out
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	return append(dst, more...)
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// SourceError reports a document that could not be opened or decoded.
type SourceError struct {
	Name string // file name, or "<string>" / "<reader>"
	Err  error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("keyboard: %s: %v", i18n.T(CodeSourceRead, map[string]string{"value": e.Name}), e.Err)
}

func (e *SourceError) Unwrap() []error { return []error{ErrSourceRead, e.Err} }

// RenderError reports a plot template that could not be rendered.
type RenderError struct {
	Template string // "plot_template" or "plot_template_short"
	Err      error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("keyboard: %s: %v", i18n.T(CodeTemplateRender, map[string]string{"field": e.Template}), e.Err)
}

func (e *RenderError) Unwrap() []error { return []error{ErrTemplateRender, e.Err} }
