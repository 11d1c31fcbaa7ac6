package engine

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// PatternEntry is one learned token with its accumulated weight.
type PatternEntry struct {
	Weight float64 `json:"weight"`
	Count  int     `json:"count"`
}

// PatternStore holds tokens learned from high-risk inputs. A stored token
// that appears as a substring of a later input contributes its weight to the
// score. Not safe for concurrent use; the engine's lock guards it.
type PatternStore struct {
	ceiling float64
	entries map[string]PatternEntry
}

// NewPatternStore creates an empty store with the given weight ceiling.
func NewPatternStore(ceiling float64) *PatternStore {
	if ceiling <= 0 {
		ceiling = 1.0
	}
	return &PatternStore{
		ceiling: ceiling,
		entries: make(map[string]PatternEntry),
	}
}

// Observe records one sighting of a token: new tokens enter at weight 0.1,
// repeat sightings add 0.05 up to the ceiling.
func (s *PatternStore) Observe(token string) {
	token = strings.ToLower(strings.TrimSpace(token))
	if token == "" {
		return
	}

	entry, ok := s.entries[token]
	if !ok {
		s.entries[token] = PatternEntry{Weight: 0.1, Count: 1}
		return
	}

	entry.Weight = math.Min(entry.Weight+0.05, s.ceiling)
	entry.Count++
	s.entries[token] = entry
}

// Match returns the stored tokens appearing as substrings of input, with the
// weight each contributes. Results are sorted by token for determinism.
func (s *PatternStore) Match(input string) signal {
	var sig signal
	if len(s.entries) == 0 {
		return sig
	}

	tokens := make([]string, 0, len(s.entries))
	for token := range s.entries {
		if strings.Contains(input, token) {
			tokens = append(tokens, token)
		}
	}
	sort.Strings(tokens)

	for _, token := range tokens {
		sig.score += s.entries[token].Weight
		sig.add("", fmt.Sprintf("Learned pattern: %s", token))
	}
	return sig
}

// Len returns the number of learned tokens.
func (s *PatternStore) Len() int {
	return len(s.entries)
}

// Export returns a copy of the store contents for snapshotting.
func (s *PatternStore) Export() map[string]PatternEntry {
	out := make(map[string]PatternEntry, len(s.entries))
	for k, v := range s.entries {
		out[k] = v
	}
	return out
}

// Import merges entries into the store, dropping corrupt ones: empty tokens,
// non-positive or NaN weights, non-positive counts. Weights above the
// ceiling are clamped. Returns the number of entries dropped.
func (s *PatternStore) Import(entries map[string]PatternEntry) int {
	dropped := 0
	for token, entry := range entries {
		token = strings.ToLower(strings.TrimSpace(token))
		if token == "" || entry.Weight <= 0 || math.IsNaN(entry.Weight) || entry.Count <= 0 {
			dropped++
			continue
		}
		entry.Weight = math.Min(entry.Weight, s.ceiling)
		s.entries[token] = entry
	}
	return dropped
}
