package globmatch

import "testing"

func TestParseDecorations(t *testing.T) {
	cases := []struct {
		raw        string
		negation   bool
		dirOnly    bool
		anchored   bool
		recursive  bool
		text       string
	}{
		{"*.log", false, false, false, false, "*.log"},
		{"!important.log", true, false, false, false, "important.log"},
		{"build/", false, true, false, false, "build"},
		{"/vendor", false, false, true, false, "vendor"},
		{"src/gen", false, false, true, false, "src/gen"},
		{"**/*.tmp", false, false, false, true, "**/*.tmp"},
	}

	for _, c := range cases {
		p := Parse(c.raw)
		if p.IsNegation != c.negation || p.IsDirectoryOnly != c.dirOnly ||
			p.IsAnchored != c.anchored || p.IsRecursive != c.recursive || p.Text != c.text {
			t.Errorf("Parse(%q) = %+v, want negation=%v dirOnly=%v anchored=%v recursive=%v text=%q",
				c.raw, p, c.negation, c.dirOnly, c.anchored, c.recursive, c.text)
		}
	}
}

func TestMatchBasic(t *testing.T) {
	cases := []struct {
		pattern string
		path    string
		want    bool
	}{
		{"*.go", "main.go", true},
		{"*.go", "pkg/main.go", false}, // "*" does not cross "/"
		{"**/*.go", "pkg/sub/main.go", true},
		{"src/*.js", "src/app.js", true},
		{"src/*.js", "src/lib/app.js", false},
		{"[abc].txt", "a.txt", true},
		{"[!abc].txt", "a.txt", false},
		{"{foo,bar}.go", "foo.go", true},
		{"{foo,bar}.go", "baz.go", false},
	}
	for _, c := range cases {
		got := Match(c.pattern, c.path, true)
		if got != c.want {
			t.Errorf("Match(%q, %q) = %v, want %v", c.pattern, c.path, got, c.want)
		}
	}
}

func TestMatchDotfileGuard(t *testing.T) {
	if Match("*", ".env", false) {
		t.Error("non-permissive * should not match a dotfile segment")
	}
	if !Match("*", ".env", true) {
		t.Error("permissive * should match a dotfile segment")
	}
	if !Match(".*", ".env", false) {
		t.Error("a pattern that itself starts with . should match a dotfile even non-permissively")
	}
}

func TestMatchInvalidPatternFallsBackToLiteral(t *testing.T) {
	// An unterminated character class is invalid doublestar syntax.
	if Match("[abc", "[abc", true) != true {
		t.Error("invalid pattern should fall back to literal string comparison")
	}
	if Match("[abc", "xyz", true) != false {
		t.Error("invalid pattern should not literal-match an unrelated path")
	}
}

func TestSplitBase(t *testing.T) {
	cases := []struct {
		pattern  string
		wantRoot string
		wantRest string
	}{
		{"src/**/*.go", "src", "**/*.go"},
		{"*.go", ".", "*.go"},
		{"a/b/c.txt", "a/b/c.txt", ""},
		{"a/b*/c.txt", "a", "b*/c.txt"},
	}
	for _, c := range cases {
		root, rest := SplitBase(c.pattern)
		if root != c.wantRoot || rest != c.wantRest {
			t.Errorf("SplitBase(%q) = (%q, %q), want (%q, %q)", c.pattern, root, rest, c.wantRoot, c.wantRest)
		}
	}
}
