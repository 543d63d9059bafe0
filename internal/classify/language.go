package classify

import (
	"path/filepath"
	"strings"
)

// languageHints maps a lowercased extension (including the leading ".") to
// the fence hint string used in `-o@file` output, generalized from the
// teacher's Language.Extensions table, trimmed to the hint lookup the
// Emitter needs (no MIME types, no shebang/include-exclude machinery — that
// belongs to the codemap collaborator, not this package).
var languageHints = map[string]string{
	".go":         "go",
	".mod":        "go",
	".sum":        "go",
	".js":         "javascript",
	".mjs":        "javascript",
	".jsx":        "javascript",
	".ts":         "typescript",
	".tsx":        "typescript",
	".py":         "python",
	".pyw":        "python",
	".pyi":        "python",
	".java":       "java",
	".c":          "c",
	".h":          "c",
	".cpp":        "cpp",
	".cxx":        "cpp",
	".cc":         "cpp",
	".hpp":        "cpp",
	".rs":         "rust",
	".cs":         "csharp",
	".rb":         "ruby",
	".php":        "php",
	".sh":         "bash",
	".bash":       "bash",
	".zsh":        "bash",
	".html":       "html",
	".htm":        "html",
	".css":        "css",
	".scss":       "scss",
	".json":       "json",
	".jsonc":      "json",
	".yaml":       "yaml",
	".yml":        "yaml",
	".xml":        "xml",
	".md":         "markdown",
	".markdown":   "markdown",
	".sql":        "sql",
	".toml":       "toml",
	".dockerfile": "dockerfile",
}

// filenameHints maps exact (lowercased) base filenames with no or
// ambiguous extensions to a fence hint.
var filenameHints = map[string]string{
	"makefile":   "makefile",
	"dockerfile": "dockerfile",
	"go.mod":     "go",
	"go.sum":     "go",
}

// LanguageHint returns the fence hint for path, or "" if none is known.
// Only used when writing to a file sink; default stdout mode omits hints
// per spec.
func LanguageHint(path string) string {
	base := strings.ToLower(filepath.Base(path))
	if hint, ok := filenameHints[base]; ok {
		return hint
	}
	ext := strings.ToLower(filepath.Ext(path))
	return languageHints[ext]
}
