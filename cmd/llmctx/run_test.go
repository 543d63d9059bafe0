package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// withTempDir creates a temp directory, chdirs into it for the duration of
// the test, and disables ambient config discovery so tests never pick up a
// real user profile.
func withTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(cwd) })
	t.Setenv("LLM_CTX_NO_CONFIG", "1")
	return dir
}

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestRunBasicFileContextAndTags(t *testing.T) {
	dir := withTempDir(t)
	writeFile(t, dir, "main.go", "package main\n\nfunc main() {}\n")

	var out, errBuf bytes.Buffer
	code := run([]string{"-f", "main.go"}, strings.NewReader(""), &out, &errBuf, true)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr = %s", code, errBuf.String())
	}
	if !strings.Contains(out.String(), "File: main.go") {
		t.Errorf("output missing file header: %s", out.String())
	}
	if !strings.Contains(out.String(), "File: main.go\n```\n") {
		t.Errorf("stdout output should open the fence with no language hint: %s", out.String())
	}
}

func TestRunNoInputIsUsageError(t *testing.T) {
	withTempDir(t)

	var out, errBuf bytes.Buffer
	code := run([]string{}, strings.NewReader(""), &out, &errBuf, true)
	if code != ExitUsage {
		t.Fatalf("exit code = %d, want %d", code, ExitUsage)
	}
	if !strings.Contains(errBuf.String(), "No input provided") {
		t.Errorf("stderr = %q, want the no-input message", errBuf.String())
	}
}

func TestRunStdinBecomesSyntheticCandidate(t *testing.T) {
	withTempDir(t)

	var out, errBuf bytes.Buffer
	code := run([]string{}, strings.NewReader("diff --git a/x b/x\n"), &out, &errBuf, false)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr = %s", code, errBuf.String())
	}
	if !strings.Contains(out.String(), "File: stdin_content") {
		t.Errorf("output missing synthetic stdin candidate: %s", out.String())
	}
	if !strings.Contains(out.String(), "File: stdin_content\n```\n") {
		t.Errorf("stdout output should open the stdin fence with no language hint: %s", out.String())
	}
}

func TestRunStdinConsumedByArgIsNotAlsoACandidate(t *testing.T) {
	withTempDir(t)

	var out, errBuf bytes.Buffer
	code := run([]string{"-c@-"}, strings.NewReader("do the thing"), &out, &errBuf, false)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr = %s", code, errBuf.String())
	}
	if strings.Contains(out.String(), "stdin_content") {
		t.Errorf("stdin consumed by -c@- should not also appear as a file candidate: %s", out.String())
	}
	if !strings.Contains(out.String(), "do the thing") {
		t.Errorf("user instructions missing from output: %s", out.String())
	}
}

func TestRunExcludePatternFiltersFile(t *testing.T) {
	dir := withTempDir(t)
	writeFile(t, dir, "keep.go", "package main\n")
	writeFile(t, dir, "drop.log", "noisy\n")

	var out, errBuf bytes.Buffer
	code := run([]string{"--exclude", "*.log", "-f", "keep.go", "drop.log"}, strings.NewReader(""), &out, &errBuf, true)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr = %s", code, errBuf.String())
	}
	if !strings.Contains(out.String(), "File: keep.go") {
		t.Errorf("expected keep.go in output: %s", out.String())
	}
	if strings.Contains(out.String(), "File: drop.log") {
		t.Errorf("drop.log should have been excluded: %s", out.String())
	}
}

func TestRunBudgetExceededExitsThree(t *testing.T) {
	dir := withTempDir(t)
	writeFile(t, dir, "big.go", strings.Repeat("package main // filler line\n", 500))

	var out, errBuf bytes.Buffer
	code := run([]string{"-f", "big.go", "-b", "1"}, strings.NewReader(""), &out, &errBuf, true)
	if code != ExitBudget {
		t.Fatalf("exit code = %d, want %d, stderr = %s", code, ExitBudget, errBuf.String())
	}
	if !strings.Contains(errBuf.String(), "over budget 1") {
		t.Errorf("stderr = %q, want the over-budget message", errBuf.String())
	}
}

func TestRunDiagnosticsEmitsBreakdown(t *testing.T) {
	dir := withTempDir(t)
	writeFile(t, dir, "a.go", "package main\n")

	var out, errBuf bytes.Buffer
	code := run([]string{"-f", "a.go", "-D"}, strings.NewReader(""), &out, &errBuf, true)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr = %s", code, errBuf.String())
	}
	if !strings.Contains(errBuf.String(), "total:") {
		t.Errorf("stderr missing diagnostic breakdown: %s", errBuf.String())
	}
	if !strings.Contains(errBuf.String(), "file:a.go") {
		t.Errorf("stderr missing per-file breakdown row: %s", errBuf.String())
	}
}

func TestRunFilerankDebugReportsRankedOrder(t *testing.T) {
	dir := withTempDir(t)
	writeFile(t, dir, "auth.go", "package auth\n\nfunc Login() {}\n")
	writeFile(t, dir, "unrelated.go", "package unrelated\n\nfunc Noop() {}\n")

	var out, errBuf bytes.Buffer
	code := run([]string{"-c", "how does login work", "-f", "auth.go", "unrelated.go", "--filerank-debug"}, strings.NewReader(""), &out, &errBuf, true)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr = %s", code, errBuf.String())
	}
	if !strings.HasPrefix(errBuf.String(), "FileRank (query:") {
		t.Fatalf("stderr = %q, want it to begin with the FileRank header", errBuf.String())
	}
	if !strings.Contains(errBuf.String(), "kept ") {
		t.Errorf("stderr missing the kept-count summary line: %s", errBuf.String())
	}
	authIdx := strings.Index(errBuf.String(), "auth.go")
	unrelatedIdx := strings.Index(errBuf.String(), "unrelated.go")
	if authIdx == -1 || unrelatedIdx == -1 {
		t.Fatalf("expected both files listed in debug report: %s", errBuf.String())
	}
	if authIdx > unrelatedIdx {
		t.Errorf("expected auth.go (matching the query) ranked above unrelated.go")
	}
}

func TestRunOutputToFileSink(t *testing.T) {
	dir := withTempDir(t)
	writeFile(t, dir, "a.go", "package main\n")
	outPath := filepath.Join(dir, "result.txt")

	var out, errBuf bytes.Buffer
	code := run([]string{"-f", "a.go", "-o@" + outPath}, strings.NewReader(""), &out, &errBuf, true)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr = %s", code, errBuf.String())
	}
	if out.Len() != 0 {
		t.Errorf("stdout should be empty when writing to a file sink, got %q", out.String())
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("reading sink output: %v", err)
	}
	if !strings.Contains(string(data), "File: a.go") {
		t.Errorf("file sink output missing file context: %s", data)
	}
}

func TestRunHelpShortCircuits(t *testing.T) {
	withTempDir(t)

	var out, errBuf bytes.Buffer
	code := run([]string{"-h"}, strings.NewReader(""), &out, &errBuf, true)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(out.String(), "Usage: llmctx") {
		t.Errorf("help output missing usage line: %s", out.String())
	}
}

func TestRunUsageErrorFromBadFlag(t *testing.T) {
	withTempDir(t)

	var out, errBuf bytes.Buffer
	code := run([]string{"--nonsense"}, strings.NewReader(""), &out, &errBuf, true)
	if code != ExitUsage {
		t.Fatalf("exit code = %d, want %d", code, ExitUsage)
	}
}
