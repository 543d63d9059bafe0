package main

import "testing"

func TestParseArgsFBeginsFileList(t *testing.T) {
	opts, err := ParseArgs([]string{"-d", "-f", "a.go", "-notaflag", "b.go"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !opts.Debug {
		t.Error("expected -d before -f to still be parsed")
	}
	want := []string{"a.go", "-notaflag", "b.go"}
	if len(opts.Files) != len(want) {
		t.Fatalf("got files %v, want %v", opts.Files, want)
	}
	for i := range want {
		if opts.Files[i] != want[i] {
			t.Errorf("file[%d] = %q, want %q", i, opts.Files[i], want[i])
		}
	}
}

func TestParseArgsCommandForms(t *testing.T) {
	cases := []struct {
		argv []string
		want string
	}{
		{[]string{"-c", "hello"}, "hello"},
		{[]string{"-c@myfile"}, "@myfile"},
		{[]string{"-c@-"}, "@-"},
		{[]string{"-c=inline text"}, "=inline text"},
		{[]string{"--command", "hello"}, "hello"},
		{[]string{"--command=hello"}, "hello"},
	}
	for _, c := range cases {
		opts, err := ParseArgs(c.argv)
		if err != nil {
			t.Fatalf("%v: unexpected error: %v", c.argv, err)
		}
		if !opts.HasUserInstructions || opts.UserInstructions != c.want {
			t.Errorf("%v: got %q (has=%v), want %q", c.argv, opts.UserInstructions, opts.HasUserInstructions, c.want)
		}
	}
}

func TestParseArgsCAliasReadsStdin(t *testing.T) {
	opts, err := ParseArgs([]string{"-C"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !opts.HasUserInstructions || opts.UserInstructions != "@-" {
		t.Errorf("-C should be equivalent to -c @-, got %q", opts.UserInstructions)
	}
}

func TestParseArgsSystemInstructionsGluedForm(t *testing.T) {
	opts, err := ParseArgs([]string{"-sbe terse"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.SystemInstructions != "be terse" {
		t.Errorf("got %q, want glued literal %q", opts.SystemInstructions, "be terse")
	}
}

func TestParseArgsEditorCommentsOptionalValue(t *testing.T) {
	opts, err := ParseArgs([]string{"-e"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !opts.EditorComments || opts.EditorCommentsBody != "" {
		t.Errorf("bare -e should enable review mode with no body, got body %q", opts.EditorCommentsBody)
	}

	opts, err = ParseArgs([]string{"-e@guide.md"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.EditorCommentsBody != "@guide.md" {
		t.Errorf("got %q, want %q", opts.EditorCommentsBody, "@guide.md")
	}
}

func TestParseArgsTreeModes(t *testing.T) {
	opts, err := ParseArgs([]string{"-t"})
	if err != nil || !opts.TreeFull {
		t.Errorf("expected TreeFull, err=%v", err)
	}
	opts, err = ParseArgs([]string{"-T"})
	if err != nil || !opts.TreeFiltered {
		t.Errorf("expected TreeFiltered, err=%v", err)
	}
}

func TestParseArgsOutputForms(t *testing.T) {
	cases := []struct {
		argv []string
		want string
	}{
		{[]string{"-o@out.txt"}, "@out.txt"},
		{[]string{"-o", "clipboard"}, "clipboard"},
		{[]string{"--output=@out.txt"}, "@out.txt"},
	}
	for _, c := range cases {
		opts, err := ParseArgs(c.argv)
		if err != nil {
			t.Fatalf("%v: unexpected error: %v", c.argv, err)
		}
		if !opts.HasOutput || opts.Output != c.want {
			t.Errorf("%v: got %q, want %q", c.argv, opts.Output, c.want)
		}
	}
}

func TestParseArgsBareOutputMeansStdout(t *testing.T) {
	opts, err := ParseArgs([]string{"-o", "-d"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Output != "" {
		t.Errorf("bare -o before another flag should take no value, got %q", opts.Output)
	}
	if !opts.Debug {
		t.Error("the following -d should still be parsed as its own flag")
	}
}

func TestParseArgsExcludeRepeatable(t *testing.T) {
	opts, err := ParseArgs([]string{"--exclude", "*.log", "--exclude=vendor/"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"*.log", "vendor/"}
	if len(opts.Excludes) != 2 || opts.Excludes[0] != want[0] || opts.Excludes[1] != want[1] {
		t.Errorf("got %v, want %v", opts.Excludes, want)
	}
}

func TestParseArgsFilerankFlags(t *testing.T) {
	opts, err := ParseArgs([]string{
		"--filerank-weight", "path:1,content:2",
		"--filerank-cutoff", "topk:5",
		"--filerank-debug",
		"-k", "auth:2.0,login",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.FilerankWeight != "path:1,content:2" {
		t.Errorf("got weight %q", opts.FilerankWeight)
	}
	if opts.FilerankCutoff != "topk:5" {
		t.Errorf("got cutoff %q", opts.FilerankCutoff)
	}
	if !opts.FilerankDebug {
		t.Error("expected FilerankDebug")
	}
	if opts.Keywords != "auth:2.0,login" {
		t.Errorf("got keywords %q", opts.Keywords)
	}
}

func TestParseArgsTokenBudget(t *testing.T) {
	opts, err := ParseArgs([]string{"-b", "4000", "--token-model", "gpt-4o"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !opts.HasTokenBudget || opts.TokenBudget != 4000 {
		t.Errorf("got budget %d (has=%v)", opts.TokenBudget, opts.HasTokenBudget)
	}
	if opts.TokenModel != "gpt-4o" {
		t.Errorf("got model %q", opts.TokenModel)
	}
}

func TestParseArgsUnknownOptionIsUsageError(t *testing.T) {
	_, err := ParseArgs([]string{"--nonsense"})
	if err == nil {
		t.Fatal("expected a usage error for an unrecognized flag")
	}
	if exitCode(err) != ExitUsage {
		t.Errorf("expected exit code %d, got %d", ExitUsage, exitCode(err))
	}
}

func TestParseArgsMissingValueIsUsageError(t *testing.T) {
	_, err := ParseArgs([]string{"-c"})
	if err == nil {
		t.Fatal("expected a usage error for -c with no value")
	}
}

func TestParseArgsEmptyEqualsFormIsUsageError(t *testing.T) {
	_, err := ParseArgs([]string{"-c="})
	if err == nil {
		t.Fatal("expected a usage error for an empty -c= value")
	}
}

func TestHelpTextListsEveryFlag(t *testing.T) {
	help := HelpText()
	for _, want := range []string{"-f", "-c,", "-C", "-s ", "-e[arg]", "-t", "-T", "-m,", "-o,", "--no-gitignore", "--exclude", "-k,", "--filerank-weight", "--filerank-cutoff", "--filerank-debug", "-b,", "--token-model", "-D", "-d", "-h,"} {
		if !contains(help, want) {
			t.Errorf("help text missing flag %q", want)
		}
	}
}

func contains(haystack, needle string) bool {
	return len(haystack) >= len(needle) && (func() bool {
		for i := 0; i+len(needle) <= len(haystack); i++ {
			if haystack[i:i+len(needle)] == needle {
				return true
			}
		}
		return false
	})()
}
