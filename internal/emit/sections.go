package emit

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Separator is the fixed 40-dash rule that closes each file_context entry.
const Separator = "----------------------------------------"

// ResolveArgValue implements the shared `-s`/`-c`/`-e` value resolution:
//   - "@-"     reads the value from stdin
//   - "@<path>" reads the value from a file
//   - "=<text>" or any other attached text is used literally
//
// stdin is only consumed once per invocation by the caller; passing the
// same io.Reader to two "@-" resolutions will exhaust it after the first.
func ResolveArgValue(raw string, stdin io.Reader) (string, error) {
	switch {
	case raw == "@-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin for argument value: %w", err)
		}
		return string(data), nil
	case strings.HasPrefix(raw, "@"):
		path := raw[1:]
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", path, err)
		}
		return string(data), nil
	case strings.HasPrefix(raw, "="):
		return raw[1:], nil
	default:
		return raw, nil
	}
}

// ResponseGuide renders the <response_guide> body. reviewMode selects the
// PR-style code review directive; otherwise a plain no-review directive is
// used. A non-empty custom overrides both.
func ResponseGuide(reviewMode bool, custom string) string {
	if custom != "" {
		return custom
	}
	if reviewMode {
		return "Respond with PR-style code review comments: reference specific file paths and line ranges, flag correctness and clarity issues, and suggest concrete fixes."
	}
	return "Respond directly to the user instructions above; no code review is required."
}

// FileEntry is one rendered <file_context> block's inputs.
type FileEntry struct {
	Path     string
	LangHint string // only populated when writing to a file sink, per spec
	IsBinary bool
	Body     string
}

// RenderFileContext renders every entry, in order, as a "File: <path>"
// header followed by a fenced body (or the binary placeholder) and the
// fixed 40-dash separator.
func RenderFileContext(entries []FileEntry) string {
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "File: %s\n", e.Path)
		b.WriteString("```")
		b.WriteString(e.LangHint)
		b.WriteString("\n")
		if e.IsBinary {
			b.WriteString("[Binary file content skipped]")
		} else {
			b.WriteString(e.Body)
		}
		if len(e.Body) == 0 || e.Body[len(e.Body)-1] != '\n' {
			b.WriteString("\n")
		}
		b.WriteString("```\n")
		b.WriteString(Separator)
		b.WriteString("\n")
	}
	return b.String()
}
