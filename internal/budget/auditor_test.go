package budget

import "testing"

// fakeTokenizer counts tokens as whitespace-separated words, avoiding a
// dependency on the real tiktoken BPE tables in tests.
type fakeTokenizer struct{}

func (fakeTokenizer) Count(text string) int {
	n := 0
	inWord := false
	for _, r := range text {
		if r == ' ' || r == '\n' || r == '\t' {
			inWord = false
			continue
		}
		if !inWord {
			n++
			inWord = true
		}
	}
	return n
}

func TestAuditUnderBudget(t *testing.T) {
	result := Audit(fakeTokenizer{}, "one two three", 10, nil, false)
	if result.OverBudget {
		t.Error("should not be over budget")
	}
}

func TestAuditOverBudget(t *testing.T) {
	result := Audit(fakeTokenizer{}, "one two three four five", 3, nil, false)
	if !result.OverBudget {
		t.Error("should be over budget")
	}
	msg := FormatOverBudgetError(result.Total, result.Budget)
	want := "error: context uses 5 tokens, over budget 3"
	if msg != want {
		t.Errorf("got %q, want %q", msg, want)
	}
}

func TestAuditBreakdownSumsToTotal(t *testing.T) {
	doc := "alpha beta gamma delta"
	sections := []Section{
		{Name: "system_instructions", Body: "alpha beta"},
		{Name: "file_context", Body: "gamma"},
	}
	result := Audit(fakeTokenizer{}, doc, 0, sections, true)

	sum := 0
	for _, c := range result.Breakdown {
		sum += c.Tokens
	}
	if sum != result.Total {
		t.Errorf("breakdown sum %d should equal total %d", sum, result.Total)
	}

	foundOther := false
	for _, c := range result.Breakdown {
		if c.Name == "<other>" {
			foundOther = true
		}
	}
	if !foundOther {
		t.Error("expected an <other> row in the breakdown")
	}
}
