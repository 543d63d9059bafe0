package ingest

import (
	"bytes"
	"strings"
	"testing"
)

func TestCaptureStdinTruncation(t *testing.T) {
	data := bytes.Repeat([]byte("a"), StdinMaxBytes+100)
	blob, err := CaptureStdin(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("CaptureStdin returned error: %v", err)
	}
	if !blob.Truncated {
		t.Error("expected Truncated=true when input exceeds StdinMaxBytes")
	}
	if len(blob.Bytes) != StdinMaxBytes {
		t.Errorf("expected %d captured bytes, got %d", StdinMaxBytes, len(blob.Bytes))
	}
}

func TestSniffKindDiff(t *testing.T) {
	if got := sniffKind([]byte("diff --git a/x b/x\nindex 1..2\n")); got != KindDiff {
		t.Errorf("got %v, want diff", got)
	}
}

func TestSniffKindJSON(t *testing.T) {
	if got := sniffKind([]byte(`  {"a": [1, 2, {"b": 3}]}`)); got != KindJSON {
		t.Errorf("got %v, want json", got)
	}
}

func TestSniffKindUnbalancedJSONFallsBackToText(t *testing.T) {
	if got := sniffKind([]byte(`{"a": 1`)); got == KindJSON {
		t.Error("unbalanced braces should not be classified json")
	}
}

func TestSniffKindXML(t *testing.T) {
	if got := sniffKind([]byte("<?xml version=\"1.0\"?>\n<root/>")); got != KindXML {
		t.Errorf("got %v, want xml", got)
	}
	if got := sniffKind([]byte("<config>\n  <item/>\n</config>")); got != KindXML {
		t.Errorf("got %v, want xml for bare tag", got)
	}
}

func TestSniffKindMarkdown(t *testing.T) {
	if got := sniffKind([]byte("\n# Title\n\nBody text.")); got != KindMarkdown {
		t.Errorf("got %v, want markdown", got)
	}
}

func TestSniffKindText(t *testing.T) {
	if got := sniffKind([]byte("just some plain prose with no structure")); got != KindText {
		t.Errorf("got %v, want text", got)
	}
}

func TestSniffKindBinary(t *testing.T) {
	if got := sniffKind([]byte("binary\x00junk")); got != KindBinary {
		t.Errorf("got %v, want binary", got)
	}
}

func TestIsUnderGit(t *testing.T) {
	cases := map[string]bool{
		".git":            true,
		".git/HEAD":       true,
		"pkg/.git/config": true,
		"pkg/git/main.go": false,
		"gitignore.go":    false,
	}
	for path, want := range cases {
		if got := isUnderGit(path); got != want {
			t.Errorf("isUnderGit(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestHasMarkdownHeadingRequiresNearTop(t *testing.T) {
	far := strings.Repeat("filler line\n", 20) + "# too late\n"
	if hasMarkdownHeading([]byte(far)) {
		t.Error("a heading far from the top should not count")
	}
}
