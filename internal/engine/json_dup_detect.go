package engine

import (
	"bytes"
	"errors"
	"io"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// DuplicateStrictness controls duplicate key handling in detection helpers.
type DuplicateStrictness int

const (
	DupIgnore DuplicateStrictness = iota
	DupWarn
	DupError
)

// SimpleIssue is a minimal issue representation used by internal helpers.
type SimpleIssue struct {
	Code    string
	Path    string
	Message string
}

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type jsonFrame struct {
	kind         containerKind
	expectingKey bool
	pendingKey   string
	path         string
	nextIndex    int
}

// walkJSON reads every token of r and calls visit with the JSON Pointer of
// the value the token starts. Object keys are reported with isKey set and the
// pointer of their enclosing object. Returning false from visit stops the
// walk. Only invalid characters are syntax errors at this level.
func walkJSON(r io.Reader, visit func(tok json.Token, ptr string, isKey bool) bool) error {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var stack []jsonFrame

	// valuePath returns the pointer of the value about to be read and advances
	// the enclosing container.
	valuePath := func() string {
		if len(stack) == 0 {
			return ""
		}
		top := &stack[len(stack)-1]
		if top.kind == kindArray {
			p := top.path + "/" + strconv.Itoa(top.nextIndex)
			top.nextIndex++
			return p
		}
		p := top.path + "/" + escapePointer(top.pendingKey)
		top.expectingKey = true
		top.pendingKey = ""
		return p
	}

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		switch v := tok.(type) {
		case json.Delim:
			switch v {
			case '{', '[':
				p := valuePath()
				f := jsonFrame{kind: kindArray, path: p}
				if v == '{' {
					f.kind, f.expectingKey = kindObject, true
				}
				stack = append(stack, f)
				if !visit(tok, p, false) {
					return nil
				}
			case '}', ']':
				if len(stack) > 0 {
					stack = stack[:len(stack)-1]
				}
			}
			continue
		case string:
			if n := len(stack); n > 0 && stack[n-1].kind == kindObject && stack[n-1].expectingKey {
				top := &stack[n-1]
				top.expectingKey = false
				top.pendingKey = v
				if !visit(tok, top.path, true) {
					return nil
				}
				continue
			}
		}
		if !visit(tok, valuePath(), false) {
			return nil
		}
	}
}

// DetectJSONDuplicateKeysBytes detects duplicate object keys from a JSON byte slice.
// If onDup is DupIgnore, no issues are produced. With DupError detection stops at
// the first duplicate. maxIssues < 0 means unlimited; 0 means disabled; >0 sets limit.
func DetectJSONDuplicateKeysBytes(data []byte, onDup DuplicateStrictness, maxIssues int) ([]SimpleIssue, error) {
	return DetectJSONDuplicateKeysReader(bytes.NewReader(data), onDup, maxIssues)
}

// DetectJSONDuplicateKeysReader detects duplicate object keys from an io.Reader.
// Note: this will consume the reader fully.
func DetectJSONDuplicateKeysReader(r io.Reader, onDup DuplicateStrictness, maxIssues int) ([]SimpleIssue, error) {
	if onDup == DupIgnore {
		return nil, nil
	}
	var issues []SimpleIssue
	// key sets by object pointer; an object reopened under a repeated key
	// starts a fresh set
	seen := make(map[string]map[string]struct{})
	err := walkJSON(r, func(tok json.Token, ptr string, isKey bool) bool {
		if d, ok := tok.(json.Delim); ok && d == '{' {
			seen[ptr] = make(map[string]struct{})
			return true
		}
		if !isKey {
			return true
		}
		k := tok.(string)
		keys := seen[ptr]
		if _, dup := keys[k]; dup {
			if maxIssues != 0 && (maxIssues < 0 || len(issues) < maxIssues) {
				issues = append(issues, SimpleIssue{
					Code:    "duplicate_key",
					Path:    ptr + "/" + escapePointer(k),
					Message: "key '" + k + "' duplicated",
				})
			}
			if onDup == DupError {
				return false
			}
		}
		keys[k] = struct{}{}
		return true
	})
	return issues, err
}

func escapePointer(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "~", "~0"), "/", "~1")
}
