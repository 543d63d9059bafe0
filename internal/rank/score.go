package rank

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Weights is the composite scoring weight vector, per spec §3's
// RankingWeights. Score uses every field exactly as given, zero included;
// defaults come only from DefaultWeights, which ParseWeights starts from.
type Weights struct {
	Path    float64
	Content float64
	TFIDF   float64
	Size    float64
}

// DefaultWeights are the spec's defaults.
func DefaultWeights() Weights {
	return Weights{Path: 2.0, Content: 1.0, TFIDF: 1.0, Size: 0.1}
}

// MaxBoostedKeywords bounds --keywords parsing.
const MaxBoostedKeywords = 32

// Boost is one parsed --keywords tok:factor entry.
type Boost struct {
	Token  string
	Factor float64
}

// ParseBoosts parses a comma-separated "tok:factor,tok:factor" string.
// Duplicate tokens keep the last occurrence's factor and produce a warning;
// a non-numeric or negative/non-finite factor warns and falls back to 1.0.
// Entries beyond MaxBoostedKeywords are dropped with a warning.
func ParseBoosts(spec string) (map[string]float64, []string) {
	boosts := map[string]float64{}
	var warnings []string
	if spec == "" {
		return boosts, warnings
	}

	count := 0
	for _, entry := range strings.Split(spec, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, ":", 2)
		token := strings.ToLower(strings.TrimSpace(parts[0]))
		if token == "" {
			continue
		}

		factor := 1.0
		if len(parts) == 2 {
			parsed, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
			if err != nil || parsed < 0 || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
				warnings = append(warnings, fmt.Sprintf("invalid boost factor for %q, using 1.0", token))
				parsed = 1.0
			}
			factor = parsed
		}

		if _, exists := boosts[token]; exists {
			warnings = append(warnings, fmt.Sprintf("duplicate boost token %q, using last value", token))
		}

		if len(boosts) >= MaxBoostedKeywords {
			if _, exists := boosts[token]; !exists {
				warnings = append(warnings, fmt.Sprintf("ignoring boost for %q: maximum %d boosted tokens reached", token, MaxBoostedKeywords))
				continue
			}
		}

		boosts[token] = factor
		count++
	}
	return boosts, warnings
}

// ParseWeights parses "path:x,content:y,size:z,tfidf:w" (any subset, any
// order) into a Weights value seeded from DefaultWeights, returning a
// warning for each unrecognized key or unparsable number.
func ParseWeights(spec string) (Weights, []string) {
	w := DefaultWeights()
	var warnings []string
	if spec == "" {
		return w, warnings
	}

	for _, entry := range strings.Split(spec, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, ":", 2)
		if len(parts) != 2 {
			warnings = append(warnings, fmt.Sprintf("malformed weight entry %q, ignoring", entry))
			continue
		}
		key := strings.ToLower(strings.TrimSpace(parts[0]))
		val, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("invalid weight value for %q, ignoring", key))
			continue
		}
		switch key {
		case "path":
			w.Path = val
		case "content":
			w.Content = val
		case "tfidf":
			w.TFIDF = val
		case "size":
			w.Size = val
		default:
			warnings = append(warnings, fmt.Sprintf("unknown weight key %q, ignoring", key))
		}
	}
	return w, warnings
}

// Candidate is the subset of CandidateFile the scorer needs, kept decoupled
// from internal/ingest.CandidateFile so this package has no import-cycle
// dependency on it.
type Candidate struct {
	Path    string
	Size    int64
	Content string
}

// Scored is a Candidate annotated with its computed score and hit count.
type Scored struct {
	Candidate
	Score    float64
	HitCount int
}

// Score computes the composite score for every candidate against query,
// sorts strictly descending by score with ties broken by original input
// order (stable sort), and returns the result. boosts multiplies a token's
// per-file hit count (both path and content) before summing into the score.
func Score(candidates []Candidate, query string, weights Weights, boosts map[string]float64) []Scored {
	tokens := Tokenize(query)
	n := len(candidates)

	// document frequency per token, for idf.
	df := make(map[string]int, len(tokens))
	for _, t := range tokens {
		if _, seen := df[t]; seen {
			continue
		}
		for _, c := range candidates {
			if CountSubstring(c.Content, t) > 0 {
				df[t]++
			}
		}
	}

	results := make([]Scored, n)
	for i, c := range candidates {
		var pathHits, contentHits int
		var tfidf float64

		totalContentHits := 0
		perTokenContentHits := make(map[string]int, len(tokens))
		for _, t := range tokens {
			perTokenContentHits[t] = CountSubstring(c.Content, t)
			totalContentHits += perTokenContentHits[t]
		}

		for _, t := range tokens {
			factor := 1.0
			if f, ok := boosts[t]; ok {
				factor = f
			}

			ph := CountSubstring(c.Path, t)
			ch := perTokenContentHits[t]

			pathHits += int(float64(ph) * factor)
			contentHits += int(float64(ch) * factor)

			tf := float64(ch) / math.Max(1, float64(totalContentHits))
			idf := math.Log(1 + float64(n)/float64(1+df[t]))
			tfidf += tf * idf * factor
		}

		sizePenalty := math.Log2(1 + float64(c.Size)/1024)

		score := weights.Path*float64(pathHits) +
			weights.Content*float64(contentHits) +
			weights.TFIDF*tfidf -
			weights.Size*sizePenalty

		results[i] = Scored{Candidate: c, Score: score, HitCount: pathHits + contentHits}
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	return results
}
