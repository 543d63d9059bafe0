package rank

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParsePolicy parses one of "ratio:v", "topk:n", "percentile:p", or "auto"
// into a Policy. An empty spec yields PolicyNone. Unparsable values warn and
// fall back to PolicyNone.
func ParsePolicy(spec string) (Policy, []string) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Policy{Kind: PolicyNone}, nil
	}
	if strings.EqualFold(spec, "auto") {
		return Policy{Kind: PolicyAuto}, nil
	}

	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return Policy{Kind: PolicyNone}, []string{fmt.Sprintf("malformed cutoff policy %q, disabling cutoff", spec)}
	}
	kind := strings.ToLower(strings.TrimSpace(parts[0]))
	value := strings.TrimSpace(parts[1])

	switch kind {
	case "ratio":
		r, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return Policy{Kind: PolicyNone}, []string{fmt.Sprintf("invalid ratio %q, disabling cutoff", value)}
		}
		return Policy{Kind: PolicyRatio, Ratio: r}, nil
	case "topk":
		k, err := strconv.Atoi(value)
		if err != nil {
			return Policy{Kind: PolicyNone}, []string{fmt.Sprintf("invalid topk %q, disabling cutoff", value)}
		}
		return Policy{Kind: PolicyTopK, TopK: k}, nil
	case "percentile":
		p, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return Policy{Kind: PolicyNone}, []string{fmt.Sprintf("invalid percentile %q, disabling cutoff", value)}
		}
		return Policy{Kind: PolicyPercentile, Percentile: p}, nil
	default:
		return Policy{Kind: PolicyNone}, []string{fmt.Sprintf("unknown cutoff policy %q, disabling cutoff", kind)}
	}
}

// Policy is the tagged CutoffPolicy variant from spec §3.
type Policy struct {
	Kind       PolicyKind
	Ratio      float64
	TopK       int
	Percentile float64
}

type PolicyKind int

const (
	PolicyNone PolicyKind = iota
	PolicyRatio
	PolicyTopK
	PolicyPercentile
	PolicyAuto
)

// Apply trims scored (already sorted descending) according to p. Files
// scoring exactly zero are always dropped whenever any policy other than
// PolicyNone is active.
func Apply(scored []Scored, p Policy) []Scored {
	if p.Kind == PolicyNone {
		return scored
	}

	var cut []Scored
	switch p.Kind {
	case PolicyRatio:
		cut = applyRatio(scored, p.Ratio)
	case PolicyTopK:
		cut = applyTopK(scored, p.TopK)
	case PolicyPercentile:
		cut = applyPercentile(scored, p.Percentile)
	case PolicyAuto:
		cut = applyAuto(scored)
	default:
		cut = scored
	}

	out := cut[:0:0]
	for _, s := range cut {
		if s.Score == 0 {
			continue
		}
		out = append(out, s)
	}
	return out
}

func applyRatio(scored []Scored, r float64) []Scored {
	if len(scored) == 0 {
		return scored
	}
	maxScore := scored[0].Score
	if maxScore <= 0 {
		if len(scored) > 0 {
			return scored[:1]
		}
		return nil
	}
	threshold := r * maxScore
	var out []Scored
	for _, s := range scored {
		if s.Score >= threshold {
			out = append(out, s)
		}
	}
	return out
}

func applyTopK(scored []Scored, k int) []Scored {
	if k >= len(scored) {
		return scored
	}
	if k <= 0 {
		return nil
	}
	return scored[:k]
}

func applyPercentile(scored []Scored, p float64) []Scored {
	if len(scored) == 0 {
		return scored
	}
	keep := int(math.Ceil(p / 100 * float64(len(scored))))
	if keep > len(scored) {
		keep = len(scored)
	}
	if keep < 0 {
		keep = 0
	}
	return scored[:keep]
}

// applyAuto finds the index with the maximum second-derivative drop (knee)
// in the sorted score curve and cuts there; a flat curve keeps everything.
func applyAuto(scored []Scored) []Scored {
	n := len(scored)
	if n < 3 {
		return scored
	}

	maxDrop := 0.0
	cutIdx := n
	for i := 1; i < n-1; i++ {
		secondDeriv := scored[i-1].Score - 2*scored[i].Score + scored[i+1].Score
		drop := math.Abs(secondDeriv)
		if drop > maxDrop {
			maxDrop = drop
			cutIdx = i + 1
		}
	}

	if maxDrop == 0 {
		return scored // flat curve
	}
	return scored[:cutIdx]
}
