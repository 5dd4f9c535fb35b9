package engine

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DuplicateKeyError reports a duplicate key found in a YAML mapping with both
// the first occurrence position and the duplicate occurrence position.
type DuplicateKeyError struct {
	Key       string
	Path      string // JSON Pointer of the duplicated entry
	FirstLine int
	FirstCol  int
	Line      int
	Col       int
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate YAML key %q at %d:%d (first at %d:%d)", e.Key, e.Line, e.Col, e.FirstLine, e.FirstCol)
}

// CheckYAMLDuplicateKeys walks a decoded node tree and returns a
// *DuplicateKeyError for the first mapping that repeats a key.
func CheckYAMLDuplicateKeys(n *yaml.Node) error {
	return walkYAML(n, "")
}

func walkYAML(n *yaml.Node, path string) error {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case yaml.DocumentNode:
		for _, c := range n.Content {
			if err := walkYAML(c, path); err != nil {
				return err
			}
		}
	case yaml.MappingNode:
		first := make(map[string][2]int, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			key := k.Value
			child := path + "/" + escapePointer(key)
			if pos, dup := first[key]; dup {
				return &DuplicateKeyError{Key: key, Path: child, FirstLine: pos[0], FirstCol: pos[1], Line: k.Line, Col: k.Column}
			}
			first[key] = [2]int{k.Line, k.Column}
			if err := walkYAML(v, child); err != nil {
				return err
			}
		}
	case yaml.SequenceNode:
		for i, c := range n.Content {
			if err := walkYAML(c, path+"/"+strconv.Itoa(i)); err != nil {
				return err
			}
		}
	}
	return nil
}

// TopLevelKeys returns the keys of the root mapping in document order, or
// nil when the root is not a mapping.
func TopLevelKeys(n *yaml.Node) []*yaml.Node {
	entries := TopLevelEntries(n)
	if entries == nil {
		return nil
	}
	keys := make([]*yaml.Node, len(entries))
	for i, e := range entries {
		keys[i] = e.Key
	}
	return keys
}
