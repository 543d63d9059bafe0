package ingest

import (
	"bytes"
	"io"
	"strings"

	"github.com/llm-ctx/llm-ctx/internal/classify"
)

// StdinMaxBytes bounds the Stdin Capturer's buffer. Reading stops and
// Truncated is set once this many bytes have been read, even if EOF has
// not been reached.
const StdinMaxBytes = 8 * 1024 * 1024

// ContentKind classifies a captured stdin blob by a prefix/structure
// heuristic, for the synthetic stdin_content CandidateFile's fence hint.
type ContentKind string

const (
	KindDiff     ContentKind = "diff"
	KindJSON     ContentKind = "json"
	KindXML      ContentKind = "xml"
	KindMarkdown ContentKind = "markdown"
	KindText     ContentKind = "text"
	KindBinary   ContentKind = "binary"
)

// StdinBlob is the captured standard input, per spec §3.
type StdinBlob struct {
	Bytes     []byte
	Kind      ContentKind
	Truncated bool
}

// CaptureStdin reads r up to StdinMaxBytes, sniffs its content kind, and
// returns the resulting StdinBlob. The caller is responsible for checking
// whether stdin is a TTY before calling this (a TTY means there is nothing
// to capture).
func CaptureStdin(r io.Reader) (StdinBlob, error) {
	limited := io.LimitReader(r, StdinMaxBytes+1)
	data, err := io.ReadAll(limited)
	if err != nil {
		return StdinBlob{}, err
	}

	blob := StdinBlob{Bytes: data}
	if len(data) > StdinMaxBytes {
		blob.Bytes = data[:StdinMaxBytes]
		blob.Truncated = true
	}

	blob.Kind = sniffKind(blob.Bytes)
	return blob, nil
}

// sniffKind checks binary-via-classifier first, then applies the ordered
// prefix heuristics: diff, then json, then xml, then markdown, else text.
func sniffKind(data []byte) ContentKind {
	if classify.IsBinary(firstWindow(data), 0) {
		return KindBinary
	}

	trimmed := bytes.TrimLeft(data, " \t\r\n")
	switch {
	case bytes.HasPrefix(trimmed, []byte("diff --git")),
		bytes.HasPrefix(trimmed, []byte("--- ")),
		bytes.HasPrefix(trimmed, []byte("+++ ")):
		return KindDiff
	case isBalancedJSON(trimmed):
		return KindJSON
	case bytes.HasPrefix(trimmed, []byte("<?xml")), looksLikeTag(trimmed):
		return KindXML
	case hasMarkdownHeading(data):
		return KindMarkdown
	default:
		return KindText
	}
}

func firstWindow(data []byte) []byte {
	if len(data) > classify.WindowSize {
		return data[:classify.WindowSize]
	}
	return data
}

// isBalancedJSON reports whether trimmed begins with '{' or '[' and its
// braces/brackets are structurally balanced (a cheap structural check, not
// a full parse).
func isBalancedJSON(trimmed []byte) bool {
	if len(trimmed) == 0 || (trimmed[0] != '{' && trimmed[0] != '[') {
		return false
	}
	depth := 0
	inString := false
	escaped := false
	for _, b := range trimmed {
		if inString {
			switch {
			case escaped:
				escaped = false
			case b == '\\':
				escaped = true
			case b == '"':
				inString = false
			}
			continue
		}
		switch b {
		case '"':
			inString = true
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}

// looksLikeTag reports whether trimmed begins with "<" followed by a letter
// or "/", the shape of an opening or closing XML/HTML tag.
func looksLikeTag(trimmed []byte) bool {
	if len(trimmed) < 2 || trimmed[0] != '<' {
		return false
	}
	c := trimmed[1]
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '/'
}

// hasMarkdownHeading reports whether one of the first few lines begins with
// "# ", the spec's "near the top" heuristic.
func hasMarkdownHeading(data []byte) bool {
	const lookaheadLines = 5
	lines := strings.SplitN(string(data), "\n", lookaheadLines+1)
	for i, line := range lines {
		if i >= lookaheadLines {
			break
		}
		if strings.HasPrefix(strings.TrimSpace(line), "# ") {
			return true
		}
	}
	return false
}
