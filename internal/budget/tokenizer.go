// Package budget implements the Budget Auditor: invoking the BPE tokenizer
// collaborator on the assembled document, enforcing a fail-fast token
// budget, and producing a per-section/per-file diagnostic breakdown on
// request. Enforcement bookkeeping (the per-section stat accumulation
// idiom) is grounded on the Harvx BudgetEnforcer, adapted from its
// skip/truncate strategy pair to this pipeline's fail-fast-over-budget
// behavior; no truncation is performed here.
package budget

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// DefaultModel is the tokenizer model used when none is specified.
const DefaultModel = "gpt-4o"

// Tokenizer counts tokens in a string. The pipeline depends only on this
// narrow interface; the concrete BPE implementation is an external
// collaborator per spec §6.
type Tokenizer interface {
	Count(text string) int
}

// tiktokenTokenizer wraps github.com/pkoukk/tiktoken-go's BPE encoder.
type tiktokenTokenizer struct {
	enc *tiktoken.Tiktoken
}

var (
	warnOnce  sync.Once
	warnIssue string
)

// NewTiktoken returns a Tokenizer for model, or an error if the encoding
// for that model cannot be resolved (e.g. an unknown model name, or no
// cached BPE ranks reachable). Callers should treat an error as "tokenizer
// unavailable" per spec §4.8: warn once, skip the audit, exit normally.
func NewTiktoken(model string) (Tokenizer, error) {
	if model == "" {
		model = DefaultModel
	}
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		return nil, fmt.Errorf("resolving tiktoken encoding for model %q: %w", model, err)
	}
	return &tiktokenTokenizer{enc: enc}, nil
}

func (t *tiktokenTokenizer) Count(text string) int {
	return len(t.enc.Encode(text, nil, nil))
}

// WarnUnavailableOnce logs the tokenizer-unavailable warning exactly once
// per process, regardless of how many times the audit is attempted.
func WarnUnavailableOnce(reason string) {
	warnOnce.Do(func() {
		warnIssue = reason
		slog.Warn("tokenizer unavailable, skipping budget audit", "reason", reason)
	})
}
