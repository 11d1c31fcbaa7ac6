// Package engine implements the threat scoring core: signal extractors over
// URLs and page content, score aggregation, the learned pattern store, and
// snapshot persistence hooks.
package engine

// Kind tells the engine how to interpret the input string.
type Kind string

const (
	KindURL     Kind = "url"
	KindContent Kind = "content"
)

// Category is the resolved threat class of a verdict.
type Category string

const (
	CategoryUnknown    Category = "unknown"
	CategorySuspicious Category = "suspicious"
	CategoryPhishing   Category = "phishing"
	CategoryScam       Category = "scam"
	CategoryGambling   Category = "gambling"
	CategoryAdult      Category = "adult"
)

// Evidence is one human-readable finding from an extractor. The Hint carries
// the category the extractor attributes the finding to; empty means the
// finding is category-neutral.
type Evidence struct {
	Hint Category `json:"hint,omitempty"`
	Text string   `json:"text"`
}

// Verdict is the engine's answer for a single input.
type Verdict struct {
	Score      float64  `json:"score"`      // Final risk in [0,1]
	Category   Category `json:"category"`   // Resolved threat class
	Confidence float64  `json:"confidence"` // Heuristic-layer subtotal, clamped to [0,1]
	Reasons    []string `json:"reasons"`    // Evidence texts in extractor order
}

// fallbackVerdict is returned for unparseable URL input. Any string yields a
// verdict; there is no error path out of Evaluate.
func fallbackVerdict() Verdict {
	return Verdict{
		Score:      0.3,
		Category:   CategoryUnknown,
		Confidence: 0.3,
		Reasons:    []string{"Invalid URL structure"},
	}
}

// categoryPriority orders competing evidence hints. Gambling outranks adult,
// which outranks scam, which outranks phishing.
var categoryPriority = []Category{
	CategoryGambling,
	CategoryAdult,
	CategoryScam,
	CategoryPhishing,
}

// resolveCategory merges typed evidence hints into a single category.
// Hinted categories win by priority; an extractor-proposed category is the
// fallback, then Suspicious.
func resolveCategory(evidence []Evidence, proposed Category) Category {
	present := make(map[Category]bool, 4)
	for _, ev := range evidence {
		if ev.Hint != "" {
			present[ev.Hint] = true
		}
	}
	for _, c := range categoryPriority {
		if present[c] {
			return c
		}
	}
	if proposed != "" && proposed != CategoryUnknown {
		return proposed
	}
	return CategorySuspicious
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
