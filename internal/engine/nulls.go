package engine

import (
	"bytes"
	"strconv"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Entry is one key/value pair of a YAML mapping.
type Entry struct {
	Key   *yaml.Node
	Value *yaml.Node
}

// TopLevelEntries returns the pairs of the root mapping in document order, or
// nil when the root is not a mapping.
func TopLevelEntries(n *yaml.Node) []Entry {
	if n != nil && n.Kind == yaml.DocumentNode && len(n.Content) > 0 {
		n = n.Content[0]
	}
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	out := make([]Entry, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		out = append(out, Entry{Key: n.Content[i], Value: n.Content[i+1]})
	}
	return out
}

// FirstYAMLNull returns the JSON Pointer (relative to n) and line of the first
// null scalar under n, aliases followed. An empty value counts as null.
func FirstYAMLNull(n *yaml.Node) (ptr string, line int, found bool) {
	return firstYAMLNull(n, "", 0)
}

func firstYAMLNull(n *yaml.Node, path string, depth int) (string, int, bool) {
	if n == nil || depth > maxAliasDepth {
		return "", 0, false
	}
	switch n.Kind {
	case yaml.DocumentNode:
		for _, c := range n.Content {
			if p, l, ok := firstYAMLNull(c, path, depth); ok {
				return p, l, true
			}
		}
	case yaml.AliasNode:
		return firstYAMLNull(n.Alias, path, depth+1)
	case yaml.ScalarNode:
		if n.ShortTag() == "!!null" {
			return path, n.Line, true
		}
	case yaml.MappingNode:
		for i := 0; i+1 < len(n.Content); i += 2 {
			if p, l, ok := firstYAMLNull(n.Content[i+1], path+"/"+escapePointer(n.Content[i].Value), depth); ok {
				return p, l, true
			}
		}
	case yaml.SequenceNode:
		for i, c := range n.Content {
			if p, l, ok := firstYAMLNull(c, path+"/"+strconv.Itoa(i), depth); ok {
				return p, l, true
			}
		}
	}
	return "", 0, false
}

// maxAliasDepth bounds alias chains so a self-referencing anchor cannot loop.
const maxAliasDepth = 64

// FirstJSONNull returns the JSON Pointer of the first null literal in data
// for which within reports true. A nil within matches every pointer.
func FirstJSONNull(data []byte, within func(ptr string) bool) (ptr string, found bool, err error) {
	err = walkJSON(bytes.NewReader(data), func(tok json.Token, p string, isKey bool) bool {
		if !isKey && tok == nil && (within == nil || within(p)) {
			ptr, found = p, true
			return false
		}
		return true
	})
	return ptr, found, err
}
