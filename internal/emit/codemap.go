package emit

import (
	"fmt"
	"strings"

	"github.com/llm-ctx/llm-ctx/internal/parser"
)

// CodemapEntry is one extracted symbol, flattened for rendering into the
// <code_map> section. Unlike parser.Symbol this carries no cross-file
// reference data — the Emitter's code map is a per-file flat listing, not
// a project-wide index.
type CodemapEntry struct {
	Name      string
	Kind      string
	Signature string
	Container string // enclosing type/namespace, empty if top-level
}

// CodemapExtractor is the pluggable "language pack" collaborator the
// Emitter delegates to for `-m`. TreeSitterCodemap, built on internal/parser's
// LanguageRegistry, is the one concrete implementation wired into this
// module; other packs could
// implement the same interface against a different extraction engine.
type CodemapExtractor interface {
	// Supports reports whether this extractor claims the given path's
	// extension.
	Supports(path string) bool

	// Extract returns the flat symbol list for one file's content.
	Extract(path string, content []byte) ([]CodemapEntry, error)
}

// TreeSitterCodemap adapts internal/parser's LanguageRegistry/TreeSitterParser
// into a CodemapExtractor.
type TreeSitterCodemap struct {
	registry *parser.LanguageRegistry
}

// NewTreeSitterCodemap constructs a codemap extractor backed by every
// grammar wired into the module's go.mod.
func NewTreeSitterCodemap() (*TreeSitterCodemap, error) {
	registry, err := parser.NewLanguageRegistry()
	if err != nil {
		return nil, fmt.Errorf("initializing codemap language registry: %w", err)
	}
	return &TreeSitterCodemap{registry: registry}, nil
}

func (c *TreeSitterCodemap) Supports(path string) bool {
	return c.registry.GetLanguageForFile(path) != ""
}

func (c *TreeSitterCodemap) Extract(path string, content []byte) ([]CodemapEntry, error) {
	result, err := c.registry.GetParser().ParseFile(path, content)
	if err != nil {
		return nil, err
	}

	entries := make([]CodemapEntry, 0, len(result.Symbols))
	for _, sym := range result.Symbols {
		entries = append(entries, CodemapEntry{
			Name:      sym.Name,
			Kind:      string(sym.Kind),
			Signature: sym.Signature,
			Container: sym.Scope,
		})
	}
	return entries, nil
}

func (c *TreeSitterCodemap) Close() error {
	return c.registry.Close()
}

// RenderCodeMap formats per-file symbol listings for the <code_map>
// section. Files with no extractor support, or with zero extracted
// symbols, get a one-line placeholder rather than being omitted, so the
// section stays a complete file-by-file index.
func RenderCodeMap(extractor CodemapExtractor, paths []string, contents map[string][]byte) string {
	var b strings.Builder
	for _, path := range paths {
		fmt.Fprintf(&b, "%s:\n", path)

		if extractor == nil || !extractor.Supports(path) {
			b.WriteString("  (no code map support for this file type)\n")
			continue
		}

		entries, err := extractor.Extract(path, contents[path])
		if err != nil || len(entries) == 0 {
			b.WriteString("  (no symbols extracted)\n")
			continue
		}

		for _, e := range entries {
			if e.Container != "" {
				fmt.Fprintf(&b, "  %s %s.%s", e.Kind, e.Container, e.Name)
			} else {
				fmt.Fprintf(&b, "  %s %s", e.Kind, e.Name)
			}
			if e.Signature != "" {
				fmt.Fprintf(&b, " %s", e.Signature)
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}
