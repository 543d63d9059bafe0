package ignore

import "testing"

func TestShouldIgnoreBasic(t *testing.T) {
	e := NewEngine()
	e.AddRule("*.log", "cli")

	if !e.ShouldIgnore("debug.log", false) {
		t.Error("debug.log should be ignored by *.log")
	}
	if e.ShouldIgnore("debug.txt", false) {
		t.Error("debug.txt should not be ignored")
	}
}

func TestShouldIgnoreNegationOverridesEarlierRule(t *testing.T) {
	e := NewEngine()
	e.AddRule("*.log", "cli")
	e.AddRule("!important.log", "cli")

	if e.ShouldIgnore("important.log", false) {
		t.Error("a later negation rule should override an earlier broader exclusion")
	}
	if !e.ShouldIgnore("debug.log", false) {
		t.Error("debug.log should remain ignored")
	}
}

func TestShouldIgnoreLaterRuleReExcludes(t *testing.T) {
	e := NewEngine()
	e.AddRule("!*.log", "cli")
	e.AddRule("debug.log", "cli")

	if !e.ShouldIgnore("debug.log", false) {
		t.Error("a later specific exclusion should override an earlier negation")
	}
	if e.ShouldIgnore("other.log", false) {
		t.Error("other.log should remain un-ignored by the negation")
	}
}

func TestShouldIgnoreDirOnly(t *testing.T) {
	e := NewEngine()
	e.AddRule("build/", "cli")

	if !e.ShouldIgnore("build", true) {
		t.Error("build/ as a directory should be ignored")
	}
	if !e.ShouldIgnore("build/output.txt", false) {
		t.Error("a file under an ignored directory should be ignored")
	}
}

func TestShouldIgnoreAnchored(t *testing.T) {
	e := NewEngine()
	e.AddRule("/vendor", "cli")

	if !e.ShouldIgnore("vendor", true) {
		t.Error("anchored /vendor should match at root")
	}
	if e.ShouldIgnore("pkg/vendor", true) {
		t.Error("anchored /vendor should not match a nested vendor directory")
	}
}

func TestShouldIgnoreGitAlwaysIgnored(t *testing.T) {
	e := NewEngine()
	// The builtin .git/ rule is only installed by LoadTree, so add it
	// directly here to test the rule in isolation.
	e.AddRule(".git/", "builtin")

	if !e.ShouldIgnore(".git/HEAD", false) {
		t.Error(".git contents should always be ignored")
	}
}

func TestSetEnabledDisablesNonCliRules(t *testing.T) {
	e := NewEngine()
	e.AddRule("*.log", "gitignore-file")
	e.SetEnabled(false)

	if e.ShouldIgnore("debug.log", false) {
		t.Error("disabling gitignore processing should stop non-cli/builtin rules from applying")
	}
}
