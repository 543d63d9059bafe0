package ignore

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/llm-ctx/llm-ctx/internal/globmatch"
)

// ignoreFileNames are the rule files the Engine looks for while walking from
// root down to each candidate's directory, in the order they are loaded.
var ignoreFileNames = []string{".gitignore", ".llmctxignore"}

// Engine evaluates ignore decisions against every rule loaded so far, in the
// order the rules were encountered. Unlike a per-file gitignore matcher, a
// single global ordered rule list is kept so that a later, broader file (or
// a CLI --exclude) can override an earlier, narrower one and vice versa —
// the spec requires global encounter-order, last-match-wins, not per-file
// isolation.
type Engine struct {
	mu      sync.RWMutex
	rules   []Rule
	cache   sync.Map // relPath+kind -> bool
	enabled bool
}

// NewEngine returns an Engine with gitignore processing enabled.
func NewEngine() *Engine {
	return &Engine{enabled: true}
}

// SetEnabled toggles whether Load/LoadTree rules are consulted at all
// (--no-gitignore passes false). CLI --exclude rules and the built-in .git/
// rule are unaffected, since those are not "gitignore processing".
func (e *Engine) SetEnabled(enabled bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.enabled = enabled
	e.cache = sync.Map{}
}

// LoadTree walks root's subtree collecting every .gitignore/.llmctxignore
// file it finds, in top-down, then-directory-order, so that a deeper file's
// rules are encountered (and therefore can override) shallower ones.
func (e *Engine) LoadTree(root string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.rules = append(e.rules, Rule{
		Pattern: globmatch.Parse(".git/"),
		Source:  "builtin",
	})

	err := filepath.Walk(root, func(path string, fi os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return nil
		}
		if !fi.IsDir() {
			return nil
		}
		for _, name := range ignoreFileNames {
			candidate := filepath.Join(path, name)
			if info, statErr := os.Stat(candidate); statErr == nil && !info.IsDir() {
				if file, parseErr := parseFile(candidate); parseErr == nil {
					e.rules = append(e.rules, file.Rules...)
				}
			}
		}
		return nil
	})
	e.cache = sync.Map{}
	return err
}

// AddRule appends a single pattern (from --exclude or a synthetic source)
// to the end of the encounter-order list, so it takes precedence over
// every rule loaded before it.
func (e *Engine) AddRule(pattern, source string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rules = append(e.rules, Rule{Pattern: globmatch.Parse(pattern), Source: source})
	e.cache = sync.Map{}
}

// ShouldIgnore reports whether relPath (slash-separated, relative to the
// ingest root) is excluded. isDir must reflect whether relPath names a
// directory, since directory-only rules (trailing "/") only apply there.
//
// Every rule is evaluated against relPath as given, whichever ignore file it
// came from: a rule loaded from a nested ignore file is not re-rooted at that
// file's directory, so its anchored patterns align with the ingest root and
// its unanchored patterns can match anywhere in the tree, not only below the
// file's own directory.
func (e *Engine) ShouldIgnore(relPath string, isDir bool) bool {
	relPath = filepath.ToSlash(relPath)
	key := relPath
	if isDir {
		key += "/"
	}
	if cached, ok := e.cache.Load(key); ok {
		return cached.(bool)
	}

	e.mu.RLock()
	rules := e.rules
	enabled := e.enabled
	e.mu.RUnlock()

	ignored := false
	for _, r := range rules {
		if r.Source != "builtin" && r.Source != "cli" && !enabled {
			continue
		}
		if ruleMatches(r.Pattern, relPath, isDir) {
			ignored = !r.Pattern.IsNegation
		}
	}

	e.cache.Store(key, ignored)
	return ignored
}

// ruleMatches reports whether pattern applies to relPath, trying the full
// path and then every path suffix so that an unanchored pattern can match
// at any depth, and every ancestor component so a directory-only pattern
// excludes everything beneath the directory it names.
func ruleMatches(p globmatch.Pattern, relPath string, isDir bool) bool {
	if p.IsDirectoryOnly && !isDir {
		// A directory-only rule can still match relPath if relPath is a file
		// under a matching ancestor directory; check that below.
		if !anyAncestorMatches(p, relPath) {
			return false
		}
		return true
	}

	permissive := p.Permissive(false)

	if p.IsAnchored {
		return globmatch.Match(p.Text, relPath, permissive) ||
			(p.IsDirectoryOnly && anyAncestorMatches(p, relPath))
	}

	if globmatch.Match(p.Text, relPath, permissive) {
		return true
	}
	parts := strings.Split(relPath, "/")
	for i := 1; i < len(parts); i++ {
		suffix := strings.Join(parts[i:], "/")
		if globmatch.Match(p.Text, suffix, permissive) {
			return true
		}
	}
	for _, part := range parts {
		if globmatch.Match(p.Text, part, permissive) {
			return true
		}
	}
	return false
}

// anyAncestorMatches reports whether any ancestor directory of relPath
// matches a directory-only pattern, meaning relPath sits beneath an
// excluded directory even though relPath itself is a file.
func anyAncestorMatches(p globmatch.Pattern, relPath string) bool {
	parts := strings.Split(relPath, "/")
	permissive := p.Permissive(false)
	for i := 1; i < len(parts); i++ {
		ancestor := strings.Join(parts[:i], "/")
		if p.IsAnchored {
			if globmatch.Match(p.Text, ancestor, permissive) {
				return true
			}
			continue
		}
		if globmatch.Match(p.Text, ancestor, permissive) || globmatch.Match(p.Text, parts[i-1], permissive) {
			return true
		}
	}
	return false
}

// Stats summarizes the rules currently loaded, used by the -D diagnostic
// table and by tests asserting layering order.
type Stats struct {
	TotalRules   int
	NegationRules int
	DirOnlyRules int
	AnchoredRules int
}

// Stats reports aggregate counts across every loaded rule.
func (e *Engine) Stats() Stats {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var s Stats
	for _, r := range e.rules {
		s.TotalRules++
		if r.Pattern.IsNegation {
			s.NegationRules++
		}
		if r.Pattern.IsDirectoryOnly {
			s.DirOnlyRules++
		}
		if r.Pattern.IsAnchored {
			s.AnchoredRules++
		}
	}
	return s
}
