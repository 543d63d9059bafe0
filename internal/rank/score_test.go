package rank

import "testing"

func TestTokenize(t *testing.T) {
	got := Tokenize("Hello, World!  foo_bar 42")
	want := []string{"hello", "world", "foo", "bar", "42"}
	if len(got) != len(want) {
		t.Fatalf("Tokenize returned %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestScoreOrdersByRelevance(t *testing.T) {
	candidates := []Candidate{
		{Path: "src/auth/login.go", Content: "func Login() { checkPassword() }"},
		{Path: "src/misc/util.go", Content: "func Add(a, b int) int { return a + b }"},
	}
	scored := Score(candidates, "login password", DefaultWeights(), nil)
	if scored[0].Path != "src/auth/login.go" {
		t.Errorf("expected login.go to rank first, got %s", scored[0].Path)
	}
}

func TestScoreStableTiesPreserveInputOrder(t *testing.T) {
	candidates := []Candidate{
		{Path: "a.go", Content: "nothing relevant here"},
		{Path: "b.go", Content: "nothing relevant either"},
	}
	scored := Score(candidates, "zzz_no_match", DefaultWeights(), nil)
	if scored[0].Path != "a.go" || scored[1].Path != "b.go" {
		t.Errorf("tied scores should preserve original order, got %s, %s", scored[0].Path, scored[1].Path)
	}
}

func TestScoreSizePenalty(t *testing.T) {
	candidates := []Candidate{
		{Path: "big.go", Size: 1024 * 1024, Content: "match token"},
		{Path: "small.go", Size: 100, Content: "match token"},
	}
	scored := Score(candidates, "match", DefaultWeights(), nil)
	var bigScore, smallScore float64
	for _, s := range scored {
		if s.Path == "big.go" {
			bigScore = s.Score
		} else {
			smallScore = s.Score
		}
	}
	if bigScore >= smallScore {
		t.Errorf("a larger file should score lower than an otherwise identical smaller one: big=%v small=%v", bigScore, smallScore)
	}
}

func TestParseBoostsDuplicateWarns(t *testing.T) {
	boosts, warnings := ParseBoosts("auth:2.0,auth:3.0")
	if boosts["auth"] != 3.0 {
		t.Errorf("expected last value to win, got %v", boosts["auth"])
	}
	if len(warnings) == 0 {
		t.Error("expected a warning for the duplicate token")
	}
}

func TestParseBoostsInvalidFactorFallsBackToOne(t *testing.T) {
	boosts, warnings := ParseBoosts("x:notanumber")
	if boosts["x"] != 1.0 {
		t.Errorf("expected fallback factor 1.0, got %v", boosts["x"])
	}
	if len(warnings) == 0 {
		t.Error("expected a warning for the invalid factor")
	}
}

func TestApplyTopK(t *testing.T) {
	scored := []Scored{{Score: 3}, {Score: 2}, {Score: 1}}
	out := Apply(scored, Policy{Kind: PolicyTopK, TopK: 2})
	if len(out) != 2 {
		t.Fatalf("expected 2 results, got %d", len(out))
	}
}

func TestApplyTopKLargerThanCountIsNoop(t *testing.T) {
	scored := []Scored{{Score: 3}, {Score: 2}}
	out := Apply(scored, Policy{Kind: PolicyTopK, TopK: 10})
	if len(out) != 2 {
		t.Fatalf("expected all 2 results kept, got %d", len(out))
	}
}

func TestApplyRatio(t *testing.T) {
	scored := []Scored{{Score: 10}, {Score: 6}, {Score: 4}, {Score: 1}}
	out := Apply(scored, Policy{Kind: PolicyRatio, Ratio: 0.5})
	if len(out) != 2 {
		t.Fatalf("expected 2 results kept at ratio 0.5 of max 10, got %d", len(out))
	}
}

func TestApplyDropsZeroScores(t *testing.T) {
	scored := []Scored{{Score: 5}, {Score: 0}}
	out := Apply(scored, Policy{Kind: PolicyTopK, TopK: 2})
	if len(out) != 1 {
		t.Fatalf("expected zero-score entries dropped, got %d results", len(out))
	}
}

func TestApplyPercentileRoundsUp(t *testing.T) {
	scored := []Scored{{Score: 5}, {Score: 4}, {Score: 3}, {Score: 2}, {Score: 1}}
	out := Apply(scored, Policy{Kind: PolicyPercentile, Percentile: 21})
	if len(out) != 2 {
		t.Fatalf("21%% of 5 rounded up should keep 2, got %d", len(out))
	}
}

func TestApplyNoneKeepsAll(t *testing.T) {
	scored := []Scored{{Score: 5}, {Score: 0}}
	out := Apply(scored, Policy{Kind: PolicyNone})
	if len(out) != 2 {
		t.Fatalf("PolicyNone should keep everything including zero scores, got %d", len(out))
	}
}
