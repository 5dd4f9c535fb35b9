package engine

import "testing"

func TestFirstYAMLNull(t *testing.T) {
	cases := []struct {
		src  string
		ptr  string
		line int
	}{
		{"a: [[1, ~]]\n", "/a/0/1", 1},
		{"a: 1\nb:\nc: 2\n", "/b", 2},
		{"a: {x/y: null}\n", "/a/x~1y", 1},
		{"base: &n ~\nuse: [*n]\n", "/base", 1},
	}
	for _, tc := range cases {
		ptr, line, ok := FirstYAMLNull(parseNode(t, tc.src))
		if !ok || ptr != tc.ptr || line != tc.line {
			t.Fatalf("%q: got (%q, %d, %v), want (%q, %d)", tc.src, ptr, line, ok, tc.ptr, tc.line)
		}
	}

	if _, _, ok := FirstYAMLNull(parseNode(t, "a: [\"~\", 'null', 0, \"\"]\n")); ok {
		t.Fatalf("quoted scalars are strings, not null")
	}
	if _, _, ok := FirstYAMLNull(nil); ok {
		t.Fatalf("nil node has no null")
	}
}

func TestFirstYAMLNull_FollowsAliases(t *testing.T) {
	n := parseNode(t, "x: &n ~\nrows: [[1, *n]]\n")
	ptr, line, ok := FirstYAMLNull(TopLevelEntries(n)[1].Value)
	if !ok || ptr != "/0/1" || line != 1 {
		t.Fatalf("alias to null not followed: %q %d %v", ptr, line, ok)
	}
}

func TestTopLevelEntries(t *testing.T) {
	entries := TopLevelEntries(parseNode(t, "b: 1\na: [1, 2]\n"))
	if len(entries) != 2 || entries[1].Key.Value != "a" || len(entries[1].Value.Content) != 2 {
		t.Fatalf("unexpected entries: %v", entries)
	}
	if TopLevelEntries(parseNode(t, "- 1\n")) != nil {
		t.Fatalf("sequence root must yield nil")
	}
}

func TestFirstJSONNull(t *testing.T) {
	data := []byte(`{"notes": null, "a": [1, {"b/c": [2, null]}], "d": null}`)

	ptr, found, err := FirstJSONNull(data, nil)
	if err != nil || !found || ptr != "/notes" {
		t.Fatalf("got (%q, %v, %v)", ptr, found, err)
	}

	ptr, found, err = FirstJSONNull(data, func(p string) bool { return p != "/notes" })
	if err != nil || !found || ptr != "/a/1/b~1c/1" {
		t.Fatalf("got (%q, %v, %v)", ptr, found, err)
	}

	if _, found, _ := FirstJSONNull([]byte(`{"a": [0, "null", false]}`), nil); found {
		t.Fatalf("no null literal present")
	}
	if _, _, err := FirstJSONNull([]byte(`{"a": @}`), nil); err == nil {
		t.Fatalf("expected syntax error")
	}
}
