package engine

import (
	"regexp"
	"strings"
)

// Seed vocabularies for the keyword-density analyzer. The negative set grows
// through learning; the positive set only grows via catalog overlays.
var negativeSeeds = []string{
	"scam", "fraud", "fake", "phishing", "malware", "virus",
	"gambling", "casino", "bet", "porn", "adult", "nude",
	"free", "win", "prize", "survey", "claim", "urgent",
	"limited", "expires", "congratulations", "winner",
}

var positiveSeeds = []string{
	"official", "secure", "verified", "government", "bank",
	"education", "news", "help", "support", "contact",
}

var (
	// wordPattern splits input into alphabetic runs for density counting.
	wordPattern = regexp.MustCompile(`[a-zA-Z]+`)
	// tokenPattern extracts learnable tokens: alphabetic runs of length >= 3.
	tokenPattern = regexp.MustCompile(`[a-zA-Z]{3,}`)
)

// keywordSets holds the mutable positive/negative vocabularies.
// Not safe for concurrent use; the engine's lock guards it.
type keywordSets struct {
	negative map[string]struct{}
	positive map[string]struct{}
}

func newKeywordSets() *keywordSets {
	k := &keywordSets{
		negative: make(map[string]struct{}, len(negativeSeeds)*4),
		positive: make(map[string]struct{}, len(positiveSeeds)),
	}
	for _, w := range negativeSeeds {
		k.negative[strings.ToLower(w)] = struct{}{}
	}
	for _, w := range positiveSeeds {
		k.positive[strings.ToLower(w)] = struct{}{}
	}
	return k
}

func (k *keywordSets) addNegative(word string) {
	if w := strings.ToLower(strings.TrimSpace(word)); w != "" {
		k.negative[w] = struct{}{}
	}
}

func (k *keywordSets) addPositive(word string) {
	if w := strings.ToLower(strings.TrimSpace(word)); w != "" {
		k.positive[w] = struct{}{}
	}
}

// density scores the negative/positive keyword balance of text.
// Ratios are over all alphabetic words; only ratios above 0.1 contribute.
func (k *keywordSets) density(text string) signal {
	var sig signal

	words := wordPattern.FindAllString(text, -1)
	if len(words) == 0 {
		return sig
	}

	negative, positive := 0, 0
	for _, w := range words {
		lw := strings.ToLower(w)
		if _, ok := k.negative[lw]; ok {
			negative++
		}
		if _, ok := k.positive[lw]; ok {
			positive++
		}
	}

	negativeRatio := float64(negative) / float64(len(words))
	positiveRatio := float64(positive) / float64(len(words))

	if negativeRatio > 0.1 {
		sig.score += negativeRatio * 2
		sig.add("", "High negative keyword density")
	}
	if positiveRatio > 0.1 {
		sig.score -= positiveRatio
		sig.add("", "Positive keywords detected")
	}
	return sig
}

// tokenize returns the lowercased learnable tokens of text.
func tokenize(text string) []string {
	raw := tokenPattern.FindAllString(text, -1)
	tokens := make([]string, 0, len(raw))
	for _, t := range raw {
		tokens = append(tokens, strings.ToLower(t))
	}
	return tokens
}
