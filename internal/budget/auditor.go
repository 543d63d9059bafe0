package budget

import (
	"fmt"
	"sort"
	"strings"
)

// Section is one named, independently tokenizable chunk of the assembled
// document, used for the -D diagnostic breakdown.
type Section struct {
	Name string // section tag, or "file:<path>" for a per-file entry
	Body string
}

// Result is the outcome of an audit.
type Result struct {
	Total       int
	Budget      int
	OverBudget  bool
	Breakdown   []SectionCount // only populated when diagnostics were requested
}

// SectionCount is one row of the -D diagnostic table.
type SectionCount struct {
	Name   string
	Tokens int
}

// Audit tokenizes the full document and, if budget > 0, fails (OverBudget)
// when the total exceeds it. diagnostics requests a per-section breakdown
// whose sum plus an "<other>" remainder accounts for the full total,
// regardless of budget outcome.
//
// budget == 0 means unbounded: Audit only still runs (and can still
// produce diagnostics) if diagnostics is true; otherwise the caller should
// skip calling Audit entirely per spec §4.8 step 1.
func Audit(tok Tokenizer, document string, budget int, sections []Section, diagnostics bool) Result {
	total := tok.Count(document)
	result := Result{Total: total, Budget: budget}

	if budget > 0 && total > budget {
		result.OverBudget = true
	}

	if diagnostics {
		result.Breakdown = breakdown(tok, total, sections)
	}

	return result
}

// breakdown re-tokenizes each section independently and reports the
// difference between their sum and the whole-document total as "<other>"
// (structural markup, separators, and section tags not attributable to any
// single section body).
func breakdown(tok Tokenizer, total int, sections []Section) []SectionCount {
	counts := make([]SectionCount, 0, len(sections)+1)
	sum := 0
	for _, s := range sections {
		n := tok.Count(s.Body)
		counts = append(counts, SectionCount{Name: s.Name, Tokens: n})
		sum += n
	}

	other := total - sum
	if other < 0 {
		other = 0
	}
	counts = append(counts, SectionCount{Name: "<other>", Tokens: other})

	sort.SliceStable(counts, func(i, j int) bool { return counts[i].Tokens > counts[j].Tokens })
	return counts
}

// FormatOverBudgetError renders the exact diagnostic string spec §4.8
// requires on over-budget failure.
func FormatOverBudgetError(total, budget int) string {
	return fmt.Sprintf("error: context uses %d tokens, over budget %d", total, budget)
}

// FormatBreakdown renders the -D diagnostic table.
func FormatBreakdown(result Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "total: %d tokens", result.Total)
	if result.Budget > 0 {
		fmt.Fprintf(&b, " / budget %d", result.Budget)
	}
	b.WriteString("\n\n")

	for _, c := range result.Breakdown {
		fmt.Fprintf(&b, "%-30s %10d\n", c.Name, c.Tokens)
	}
	return b.String()
}
