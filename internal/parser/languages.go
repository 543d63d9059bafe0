package parser

import (
	"fmt"
	"log/slog"
	"path/filepath"

	sitter "github.com/tree-sitter/go-tree-sitter"

	// Tree-sitter language parsers
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
	tree_sitter_c "github.com/tree-sitter/tree-sitter-c/bindings/go"
	tree_sitter_cpp "github.com/tree-sitter/tree-sitter-cpp/bindings/go"
	tree_sitter_java "github.com/tree-sitter/tree-sitter-java/bindings/go"
)

// LanguageRegistry wires each Tree-sitter grammar in the module's go.mod to
// the extensions it should claim for codemap extraction.
type LanguageRegistry struct {
	parser *TreeSitterParser
}

// NewLanguageRegistry creates a new language registry
func NewLanguageRegistry() (*LanguageRegistry, error) {
	lr := &LanguageRegistry{
		parser: NewTreeSitterParser(),
	}

	// Initialize all supported languages
	if err := lr.initializeLanguages(); err != nil {
		return nil, fmt.Errorf("failed to initialize languages: %w", err)
	}

	return lr, nil
}

// initializeLanguages sets up all supported language parsers
func (lr *LanguageRegistry) initializeLanguages() error {
	// Initialize tree-sitter languages with actual parsers
	languages := []struct {
		name       string
		language   *sitter.Language
		extensions []string
	}{
		{
			name:       "go",
			language:   sitter.NewLanguage(tree_sitter_go.Language()),
			extensions: []string{".go"},
		},
		{
			name:       "python",
			language:   sitter.NewLanguage(tree_sitter_python.Language()),
			extensions: []string{".py", ".pyx", ".pyi"},
		},
		{
			name:       "javascript",
			language:   sitter.NewLanguage(tree_sitter_javascript.Language()),
			extensions: []string{".js", ".mjs", ".jsx"},
		},
		{
			name:       "rust",
			language:   sitter.NewLanguage(tree_sitter_rust.Language()),
			extensions: []string{".rs"},
		},
		{
			name:       "typescript",
			language:   sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript()),
			extensions: []string{".ts", ".tsx", ".d.ts"},
		},
		{
			name:       "c",
			language:   sitter.NewLanguage(tree_sitter_c.Language()),
			extensions: []string{".c", ".h"},
		},
		{
			name:       "cpp",
			language:   sitter.NewLanguage(tree_sitter_cpp.Language()),
			extensions: []string{".cpp", ".cc", ".cxx", ".hpp", ".hxx", ".h++"},
		},
		{
			name:       "java",
			language:   sitter.NewLanguage(tree_sitter_java.Language()),
			extensions: []string{".java"},
		},
	}

	for _, lang := range languages {
		if err := lr.registerLanguage(lang.name, lang.language, lang.extensions); err != nil {
			// Don't fail completely if a language fails to register - log warning and continue
			slog.Warn("tree-sitter language registration failed", "language", lang.name, "error", err)
			// Register without tree-sitter parser as fallback (will use regex-based parsing)
			if err := lr.registerLanguage(lang.name, nil, lang.extensions); err != nil {
				slog.Warn("regex-fallback registration failed", "language", lang.name, "error", err)
				continue // Don't fail completely, just skip this language
			}
			slog.Debug("registered language with regex fallback", "language", lang.name)
		} else {
			slog.Debug("registered language with tree-sitter", "language", lang.name)
		}
	}

	return nil
}

// registerLanguage registers a language with its queries
func (lr *LanguageRegistry) registerLanguage(name string, language *sitter.Language, extensions []string) error {
	// Use direct AST walking instead of queries for now (more stable)
	queries := &QuerySet{}

	config := &LanguageConfig{
		Language:   language,
		Extensions: extensions,
		Queries:    queries,
		Name:       name,
	}

	return lr.parser.RegisterLanguage(config)
}

// GetParser returns the underlying tree-sitter parser
func (lr *LanguageRegistry) GetParser() *TreeSitterParser {
	return lr.parser
}

// GetLanguageForFile determines the programming language for a file
func (lr *LanguageRegistry) GetLanguageForFile(filePath string) string {
	ext := filepath.Ext(filePath)

	switch ext {
	case ".go":
		return "go"
	case ".py", ".pyx", ".pyi":
		return "python"
	case ".js", ".mjs", ".jsx":
		return "javascript"
	case ".ts", ".tsx", ".d.ts":
		return "typescript"
	case ".rs":
		return "rust"
	case ".c", ".h":
		return "c"
	case ".cpp", ".cc", ".cxx", ".hpp", ".hxx", ".h++":
		return "cpp"
	case ".java":
		return "java"
	default:
		return ""
	}
}

// Close cleans up all language resources
func (lr *LanguageRegistry) Close() error {
	return lr.parser.Close()
}

