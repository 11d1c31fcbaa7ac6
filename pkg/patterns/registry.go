// Package patterns provides a centralized, high-performance pattern registry
// for threat detection. All regex patterns are compiled once at package init
// and shared across all extractors and scanners.
//
// Design principles:
// - COMPILE ONCE: All patterns compiled at init, not per-evaluation
// - DRY: Single source of truth for all threat patterns
// - CATEGORIZED: Patterns organized by threat category for targeted scans
// - EXTENSIBLE: A YAML catalog overlay can append patterns without code changes
package patterns

import (
	"regexp"
	"sync"
)

// Category represents a threat pattern category
type Category string

const (
	// URL-side categories
	CategoryScam          Category = "scam"
	CategoryGambling      Category = "gambling"
	CategoryAdult         Category = "adult"
	CategorySuspiciousURL Category = "suspicious_url"
	CategoryPath          Category = "path"

	// Content-side categories
	CategoryCredentialField  Category = "credential_field"
	CategorySensitiveRequest Category = "sensitive_request"
	CategoryFakeUI           Category = "fake_ui"
	CategoryUrgency          Category = "urgency"
	CategoryMoneyLure        Category = "money_lure"
	CategoryCryptoMining     Category = "crypto_mining"
	CategoryGamblingRedirect Category = "gambling_redirect"
)

// Pattern holds a compiled regex with metadata
type Pattern struct {
	Name        string         // Human-readable name for logging
	Regex       *regexp.Regexp // Compiled regex (never nil after init)
	Category    Category       // Threat category
	Weight      float64        // Score contribution when the pattern fires
	Description string         // What this pattern detects
}

// Registry holds all compiled patterns, organized by category
type Registry struct {
	mu         sync.RWMutex
	byCategory map[Category][]*Pattern
	all        []*Pattern
}

// global singleton - initialized once at package load
var (
	globalRegistry *Registry
	initOnce       sync.Once
)

// Get returns the global pattern registry (singleton)
// Thread-safe and guaranteed to be initialized
func Get() *Registry {
	initOnce.Do(func() {
		globalRegistry = newRegistry()
	})
	return globalRegistry
}

// NewRegistry creates an isolated registry populated with the built-in banks.
// Use in tests or when applying a catalog overlay that must not leak into
// the shared singleton.
func NewRegistry() *Registry {
	return newRegistry()
}

// newRegistry creates and populates the pattern registry
func newRegistry() *Registry {
	r := &Registry{
		byCategory: make(map[Category][]*Pattern),
		all:        make([]*Pattern, 0, 128),
	}

	// Register all pattern categories
	r.registerScamPatterns()
	r.registerGamblingPatterns()
	r.registerAdultPatterns()
	r.registerSuspiciousURLPatterns()
	r.registerPathPatterns()
	r.registerCredentialFieldPatterns()
	r.registerSensitiveRequestPatterns()
	r.registerFakeUIPatterns()
	r.registerUrgencyPatterns()
	r.registerMoneyLurePatterns()
	r.registerScriptPatterns()

	return r
}

// register adds a pattern to the registry (internal use only)
func (r *Registry) register(name string, pattern string, category Category, weight float64, description string) {
	compiled := regexp.MustCompile(pattern)
	p := &Pattern{
		Name:        name,
		Regex:       compiled,
		Category:    category,
		Weight:      weight,
		Description: description,
	}

	r.byCategory[category] = append(r.byCategory[category], p)
	r.all = append(r.all, p)
}

// Add appends a pre-compiled pattern at runtime. The catalog overlay uses
// this to extend the built-in banks; built-ins are never replaced.
func (r *Registry) Add(p *Pattern) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byCategory[p.Category] = append(r.byCategory[p.Category], p)
	r.all = append(r.all, p)
}

// GetByCategory returns all patterns for a specific category
// Returns empty slice if category not found (never nil)
func (r *Registry) GetByCategory(cat Category) []*Pattern {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if patterns, ok := r.byCategory[cat]; ok {
		return patterns
	}
	return []*Pattern{}
}

// GetMultipleCategories returns patterns from multiple categories
// Useful for extractors that check multiple pattern types
func (r *Registry) GetMultipleCategories(cats ...Category) []*Pattern {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*Pattern
	for _, cat := range cats {
		if patterns, ok := r.byCategory[cat]; ok {
			result = append(result, patterns...)
		}
	}
	return result
}

// MatchAny checks if text matches any pattern in the given categories
// Returns the first matching pattern or nil
// This is optimized for early exit on first match
func (r *Registry) MatchAny(text string, cats ...Category) *Pattern {
	patterns := r.GetMultipleCategories(cats...)
	for _, p := range patterns {
		if p.Regex.MatchString(text) {
			return p
		}
	}
	return nil
}

// MatchAll returns all patterns that match the text in given categories
// Use when you need to know ALL matches (for comprehensive scoring)
func (r *Registry) MatchAll(text string, cats ...Category) []*Pattern {
	patterns := r.GetMultipleCategories(cats...)
	var matches []*Pattern
	for _, p := range patterns {
		if p.Regex.MatchString(text) {
			matches = append(matches, p)
		}
	}
	return matches
}

// CountMatches returns how many patterns in a category match the text
func (r *Registry) CountMatches(text string, cat Category) int {
	n := 0
	for _, p := range r.GetByCategory(cat) {
		if p.Regex.MatchString(text) {
			n++
		}
	}
	return n
}

// TotalPatterns returns the total count of registered patterns
func (r *Registry) TotalPatterns() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.all)
}

// CategoryCount returns the number of patterns in a category
func (r *Registry) CategoryCount(cat Category) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byCategory[cat])
}
