package emit

import (
	"strings"
	"testing"
)

func TestDocumentRenderOrderAndTags(t *testing.T) {
	var d Document
	d.Add(SectionUserInstructions, "do the thing")
	d.Add(SectionFileTree, "root/\n  a.go\n")

	out := d.Render()
	userIdx := strings.Index(out, "<user_instructions>")
	treeIdx := strings.Index(out, "<file_tree>")
	if userIdx == -1 || treeIdx == -1 || userIdx > treeIdx {
		t.Errorf("expected user_instructions before file_tree, got:\n%s", out)
	}
}

func TestDocumentOmitsEmptySections(t *testing.T) {
	var d Document
	d.Add(SectionSystemInstructions, "")
	d.Add(SectionUserInstructions, "hello")

	out := d.Render()
	if strings.Contains(out, "system_instructions") {
		t.Error("an empty section body should be omitted entirely")
	}
}

func TestDocumentRenderIdempotent(t *testing.T) {
	var d Document
	d.Add(SectionUserInstructions, "hello")
	first := d.Render()
	second := d.Render()
	if first != second {
		t.Error("rendering the same document twice should be byte-identical")
	}
}

func TestRenderTreeConnectors(t *testing.T) {
	tree := BuildTree([]string{"a/b.go", "a/c.go", "d.go"})
	out := RenderTree(tree)
	if !strings.Contains(out, "├── ") || !strings.Contains(out, "└── ") {
		t.Errorf("expected both connector styles in output:\n%s", out)
	}
}

func TestRenderFileContextSeparator(t *testing.T) {
	entries := []FileEntry{{Path: "a.go", Body: "package a\n"}}
	out := RenderFileContext(entries)
	if !strings.Contains(out, Separator) {
		t.Error("expected the 40-dash separator after each file block")
	}
	if len(Separator) != 40 {
		t.Errorf("separator must be exactly 40 dashes, got %d", len(Separator))
	}
}

func TestRenderFileContextBinaryPlaceholder(t *testing.T) {
	entries := []FileEntry{{Path: "img.png", IsBinary: true, Body: ""}}
	out := RenderFileContext(entries)
	if !strings.Contains(out, "[Binary file content skipped]") {
		t.Error("expected binary placeholder text")
	}
}

func TestResolveArgValueForms(t *testing.T) {
	got, err := ResolveArgValue("=literal text", nil)
	if err != nil || got != "literal text" {
		t.Errorf("= form: got %q, %v", got, err)
	}

	got, err = ResolveArgValue("plain", nil)
	if err != nil || got != "plain" {
		t.Errorf("bare form: got %q, %v", got, err)
	}
}

func TestResponseGuideModes(t *testing.T) {
	if got := ResponseGuide(false, ""); strings.Contains(got, "PR-style") {
		t.Error("non-review mode should not mention PR-style review")
	}
	if got := ResponseGuide(true, ""); !strings.Contains(got, "PR-style") {
		t.Error("review mode should mention PR-style review")
	}
	if got := ResponseGuide(true, "custom body"); got != "custom body" {
		t.Error("a custom body should override the default directive")
	}
}
