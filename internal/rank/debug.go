package rank

import (
	"fmt"
	"strings"
)

// FormatDebugTable renders a per-file breakdown of the scoring inputs used
// to reach each Scored's final score, in the order scored is given
// (normally already sorted descending). --filerank-debug does not print
// this table; it prints FormatDebugReport.
func FormatDebugTable(scored []Scored, weights Weights) string {
	var b strings.Builder

	maxPathWidth := len("path")
	for _, s := range scored {
		if len(s.Path) > maxPathWidth {
			maxPathWidth = len(s.Path)
		}
	}

	fmt.Fprintf(&b, "weights: path=%.2f content=%.2f tfidf=%.2f size=%.2f\n\n",
		weights.Path, weights.Content, weights.TFIDF, weights.Size)

	header := fmt.Sprintf("%-*s  %10s  %8s  %10s\n", maxPathWidth, "path", "score", "hits", "size")
	b.WriteString(header)
	b.WriteString(strings.Repeat("-", len(header)-1) + "\n")

	for _, s := range scored {
		fmt.Fprintf(&b, "%-*s  %10.3f  %8d  %10s\n",
			maxPathWidth, s.Path, s.Score, s.HitCount, formatSize(s.Size))
	}

	return b.String()
}

// FormatDebugReport renders the --filerank-debug report §4.6 specifies
// verbatim: a header naming the query, one "score<tab>path" line per file
// in ranked order, and a "kept X/Y files" summary.
func FormatDebugReport(query string, all []Scored, kept []Scored) string {
	var b strings.Builder
	fmt.Fprintf(&b, "FileRank (query: %q)\n", query)
	for _, s := range all {
		fmt.Fprintf(&b, "%g\t%s\n", s.Score, s.Path)
	}
	fmt.Fprintf(&b, "kept %d/%d files\n", len(kept), len(all))
	return b.String()
}

func formatSize(n int64) string {
	if n < 1024 {
		return fmt.Sprintf("%dB", n)
	}
	if n < 1024*1024 {
		return fmt.Sprintf("%.1fKB", float64(n)/1024)
	}
	return fmt.Sprintf("%.1fMB", float64(n)/(1024*1024))
}
