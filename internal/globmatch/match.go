package globmatch

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Match reports whether pattern matches path. Both pattern and path must use
// "/" as the separator. permissive controls whether a leading "." in a path
// segment may be matched by "*"/"?" (see Pattern.Permissive); gitignore
// semantics otherwise require it be matched literally.
//
// The recursive "**" form and {a,b} brace alternation are delegated to
// doublestar, which implements the segment backtracking; this function only
// adds the dotfile guard doublestar does not apply.
func Match(pattern, path string, permissive bool) bool {
	if !permissive && !strings.Contains(pattern, "**") {
		patSegs := strings.Split(pattern, "/")
		pathSegs := strings.Split(path, "/")
		if len(patSegs) != len(pathSegs) {
			return false
		}
		for i, seg := range pathSegs {
			if strings.HasPrefix(seg, ".") && !strings.HasPrefix(patSegs[i], ".") {
				return false
			}
		}
	} else if !permissive {
		// With "**" the segments need not line up, so a dotted path segment
		// must be matched by some pattern segment that itself begins with ".".
		patSegs := strings.Split(pattern, "/")
		for _, seg := range strings.Split(path, "/") {
			if !strings.HasPrefix(seg, ".") {
				continue
			}
			literal := false
			for _, ps := range patSegs {
				if ok, _ := doublestar.Match(ps, seg); ok && strings.HasPrefix(ps, ".") {
					literal = true
				}
			}
			if !literal {
				return false
			}
		}
	}

	ok, err := doublestar.Match(pattern, path)
	if err != nil {
		// PatternSyntax: treat an unparsable pattern as a literal string match
		// (spec §7, PatternSyntax: warn, treat pattern as literal).
		return pattern == path
	}
	return ok
}

// Valid reports whether pattern is syntactically well formed.
func Valid(pattern string) bool {
	return doublestar.ValidatePattern(pattern)
}

// HasMeta reports whether s contains any glob metacharacter recognized by
// this matcher (*, ?, [, {, or a ** segment), used by the Ingest Planner to
// decide whether a positional argument is a literal path or a pattern to
// expand.
func HasMeta(s string) bool {
	return strings.ContainsAny(s, "*?[{")
}
