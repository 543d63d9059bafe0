package globmatch

import (
	"os"
	"path/filepath"
	"strings"
)

// SplitBase separates a pattern into its non-wildcard root directory and the
// glob suffix relative to that root, so callers can start a directory walk
// at the deepest ancestor that does not itself depend on matching. For
// "src/**/*.go" it returns ("src", "**/*.go"); for a pattern with no
// metacharacters at all it returns (pattern, "").
func SplitBase(pattern string) (root, rest string) {
	segs := strings.Split(pattern, "/")
	cut := len(segs)
	for i, seg := range segs {
		if HasMeta(seg) {
			cut = i
			break
		}
	}
	if cut == 0 {
		return ".", pattern
	}
	if cut == len(segs) {
		return pattern, ""
	}
	return strings.Join(segs[:cut], "/"), strings.Join(segs[cut:], "/")
}

// Expand walks the filesystem starting at pattern's non-wildcard root and
// returns every regular file whose path (relative to the working directory)
// matches pattern. Directories that cannot be read are skipped rather than
// aborting the whole expansion, mirroring the Ingest Planner's
// skip-and-warn-on-unreadable policy.
func Expand(pattern string, permissive bool) ([]string, error) {
	root, _ := SplitBase(pattern)
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		if Match(pattern, root, permissive) {
			return []string{root}, nil
		}
		return nil, nil
	}

	var matches []string
	walkErr := filepath.Walk(root, func(path string, fi os.FileInfo, err error) error {
		if err != nil {
			return nil // skip unreadable entry, continue walk
		}
		if fi.IsDir() {
			return nil
		}
		rel := filepath.ToSlash(path)
		if Match(pattern, rel, permissive) {
			matches = append(matches, rel)
		}
		return nil
	})
	if walkErr != nil {
		return matches, walkErr
	}
	return matches, nil
}
