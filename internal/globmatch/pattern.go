// Package globmatch implements the Path Matcher: shell-style glob matching
// with *, ?, [...], [!...], {a,b}, and the recursive ** form, plus the
// gitignore-flavored pattern metadata (negation, anchoring, directory-only)
// that the Ignore Engine layers on top of raw glob matching.
//
// Matching itself is delegated to github.com/bmatcuk/doublestar/v4, which
// already implements the segment-aware backtracking **/{...}/class engine;
// this package adds the permissive-leading-dot toggle doublestar does not
// model and parses the gitignore-style prefix/suffix decorations into a
// Pattern value.
package globmatch

import "strings"

// Pattern is a normalized input specification, per spec §3. It is immutable
// once parsed.
type Pattern struct {
	// Text is the pattern with negation/anchor/dir-only decorations removed,
	// i.e. the bare glob ready to hand to Match.
	Text string

	// Raw is the original pattern string exactly as supplied by the caller,
	// decorations included (used for diagnostics and re-display).
	Raw string

	// IsRecursive is true when the pattern contains a ** segment.
	IsRecursive bool

	// IsDirectoryOnly is true when the pattern had a trailing "/".
	IsDirectoryOnly bool

	// IsNegation is true when the pattern had a leading "!".
	IsNegation bool

	// IsAnchored is true when the pattern had a leading "/" (after stripping
	// negation), meaning it only matches relative to its declaring directory
	// rather than at any depth below it.
	IsAnchored bool
}

// Parse decomposes a raw gitignore/glob-style pattern string into a Pattern.
// It does not validate glob syntax; Match reports invalid patterns lazily.
func Parse(raw string) Pattern {
	p := Pattern{Raw: raw}
	text := raw

	if strings.HasPrefix(text, "!") {
		p.IsNegation = true
		text = text[1:]
	}

	// A trailing "/" marks a directory-only rule, but "/" alone (root) is not
	// stripped to empty.
	if len(text) > 1 && strings.HasSuffix(text, "/") {
		p.IsDirectoryOnly = true
		text = strings.TrimSuffix(text, "/")
	}

	if strings.HasPrefix(text, "/") {
		p.IsAnchored = true
		text = text[1:]
	} else if strings.Contains(text, "/") && !strings.HasPrefix(text, "**/") {
		// A pattern containing a non-leading "/" (and not starting with a
		// recursive **/ segment) is implicitly anchored to its declaring
		// directory, matching gitignore's own rule: "a/b" only matches
		// "a/b" relative to the .gitignore's directory, never "x/a/b".
		p.IsAnchored = true
	}

	p.IsRecursive = strings.Contains(text, "**")
	p.Text = text
	return p
}

// Permissive reports whether leading "." in a path segment should be
// matchable by "*"/"?" for this pattern: either the caller requested
// permissive mode (--no-gitignore) or the pattern itself begins with ".".
func (p Pattern) Permissive(callerPermissive bool) bool {
	return callerPermissive || strings.HasPrefix(p.Text, ".") || strings.HasPrefix(p.Raw, ".")
}
