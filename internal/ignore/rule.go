// Package ignore implements the Ignore Engine: layered .gitignore-style rule
// files evaluated in encounter order, last-matching-rule-wins, with
// negation, anchoring, and directory-only semantics. Pattern compilation is
// delegated to internal/globmatch; this package only owns rule layering and
// precedence.
package ignore

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/llm-ctx/llm-ctx/internal/globmatch"
)

// Rule is a single parsed ignore-file line.
type Rule struct {
	Pattern globmatch.Pattern
	Source  string // file this rule came from, or "cli" / "builtin"
	Line    int
}

// File is one loaded ignore file and the rules parsed from it.
type File struct {
	Path  string
	Dir   string
	Rules []Rule
}

// parseFile reads path and returns its non-comment, non-blank lines as Rules.
func parseFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	file := &File{Path: path, Dir: filepath.Dir(path)}
	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), " \t")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		file.Rules = append(file.Rules, Rule{
			Pattern: globmatch.Parse(trimmed),
			Source:  path,
			Line:    lineNum,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return file, nil
}
