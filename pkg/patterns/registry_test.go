package patterns

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRegistryInit(t *testing.T) {
	// Get should return a singleton registry
	r1 := Get()
	r2 := Get()

	if r1 != r2 {
		t.Error("Get() should return the same registry instance")
	}
}

func TestRegistryHasPatterns(t *testing.T) {
	r := Get()

	total := r.TotalPatterns()
	if total < 90 {
		t.Errorf("expected at least 90 patterns, got %d", total)
	}

	t.Logf("Registry loaded %d patterns", total)
}

func TestCategoryPatterns(t *testing.T) {
	r := Get()

	testCases := []struct {
		category    Category
		minPatterns int
	}{
		{CategoryScam, 25},
		{CategoryGambling, 25},
		{CategoryAdult, 10},
		{CategorySuspiciousURL, 5},
		{CategoryPath, 4},
		{CategoryCredentialField, 10},
		{CategorySensitiveRequest, 1},
		{CategoryFakeUI, 5},
		{CategoryUrgency, 5},
		{CategoryMoneyLure, 4},
		{CategoryCryptoMining, 1},
		{CategoryGamblingRedirect, 1},
	}

	for _, tc := range testCases {
		t.Run(string(tc.category), func(t *testing.T) {
			patterns := r.GetByCategory(tc.category)
			if len(patterns) < tc.minPatterns {
				t.Errorf("category %s: expected at least %d patterns, got %d",
					tc.category, tc.minPatterns, len(patterns))
			}
			t.Logf("Category %s: %d patterns", tc.category, len(patterns))
		})
	}
}

func TestMatchAny(t *testing.T) {
	r := Get()

	testCases := []struct {
		name       string
		text       string
		categories []Category
		wantMatch  bool
	}{
		{
			name:       "URL shortener",
			text:       "https://bit.ly/3xYzAbC",
			categories: []Category{CategorySuspiciousURL},
			wantMatch:  true,
		},
		{
			name:       "Raw IP host",
			text:       "http://192.168.4.21/login",
			categories: []Category{CategorySuspiciousURL},
			wantMatch:  true,
		},
		{
			name:       "Gambling slang Indonesian",
			text:       "situs slot gacor maxwin hari ini",
			categories: []Category{CategoryGambling},
			wantMatch:  true,
		},
		{
			name:       "Gambling Thai",
			text:       "คาสิโนออนไลน์",
			categories: []Category{CategoryGambling},
			wantMatch:  true,
		},
		{
			name:       "Prize scam",
			text:       "Congratulations! You are our lucky winner",
			categories: []Category{CategoryScam},
			wantMatch:  true,
		},
		{
			name:       "Phishing phrase Vietnamese",
			text:       "xác minh tài khoản của bạn ngay",
			categories: []Category{CategoryScam},
			wantMatch:  true,
		},
		{
			name:       "Adult age gate",
			text:       "This site is 18+ only",
			categories: []Category{CategoryAdult},
			wantMatch:  true,
		},
		{
			name:       "Login path",
			text:       "/secure/verify",
			categories: []Category{CategoryPath},
			wantMatch:  true,
		},
		{
			name:       "Crypto miner",
			text:       "var miner = new CoinHive.Anonymous('SITE_KEY');",
			categories: []Category{CategoryCryptoMining},
			wantMatch:  true,
		},
		{
			name:       "Gambling redirect script",
			text:       "window.open('https://judi-online.example')",
			categories: []Category{CategoryGamblingRedirect},
			wantMatch:  true,
		},
		{
			name:       "Normal text",
			text:       "The quarterly report is attached for review",
			categories: []Category{CategoryScam, CategoryGambling, CategoryAdult},
			wantMatch:  false,
		},
		{
			name:       "Normal URL",
			text:       "https://example.org/docs/getting-started",
			categories: []Category{CategorySuspiciousURL},
			wantMatch:  false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			match := r.MatchAny(tc.text, tc.categories...)
			gotMatch := match != nil

			if gotMatch != tc.wantMatch {
				if tc.wantMatch {
					t.Errorf("expected match for %q, got none", tc.text)
				} else {
					t.Errorf("expected no match for %q, got %s", tc.text, match.Name)
				}
			}

			if match != nil {
				t.Logf("Matched pattern: %s - %s", match.Name, match.Description)
			}
		})
	}
}

func TestMatchAll(t *testing.T) {
	r := Get()

	// Text firing multiple scam patterns at once
	text := "Congratulations winner! Claim now your free iphone, survey expires=1699999999"

	matches := r.MatchAll(text, CategoryScam)

	if len(matches) < 3 {
		t.Errorf("expected at least 3 matches, got %d", len(matches))
	}

	t.Logf("Found %d scam matches", len(matches))
	for _, m := range matches {
		t.Logf("  - %s: %s", m.Name, m.Description)
	}
}

func TestCountMatches(t *testing.T) {
	r := Get()

	text := "free prize winner congratulations claim your iphone now"
	n := r.CountMatches(text, CategoryScam)
	if n < 2 {
		t.Errorf("expected at least 2 scam matches, got %d", n)
	}
}

func TestCatalogOverlayExtendsBanks(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")

	catalogYAML := `version: 1
patterns:
  - name: local_operator
    regex: "(?i)(slotking88|winbig777)"
    category: gambling
    weight: 0.8
    description: Regional gambling operators
  - name: local_scam_hotline
    regex: "(?i)call.{0,10}now.{0,10}to.{0,10}claim"
    category: scam
    weight: 0.9
    description: Call-to-claim scam phrasing
keywords:
  negative: [giveaway, airdrop]
  positive: [university]
`
	if err := os.WriteFile(path, []byte(catalogYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	cat, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	if len(cat.Keywords.Negative) != 2 || len(cat.Keywords.Positive) != 1 {
		t.Errorf("keyword seeds not parsed: %+v", cat.Keywords)
	}

	r := NewRegistry()
	before := r.CategoryCount(CategoryGambling)

	added, err := cat.Apply(r)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if added != 2 {
		t.Errorf("expected 2 patterns added, got %d", added)
	}
	if got := r.CategoryCount(CategoryGambling); got != before+1 {
		t.Errorf("gambling bank: expected %d patterns, got %d", before+1, got)
	}

	// Built-ins still present, overlay reachable
	if r.MatchAny("slot gacor", CategoryGambling) == nil {
		t.Error("built-in gambling pattern lost after overlay")
	}
	if r.MatchAny("visit slotking88 today", CategoryGambling) == nil {
		t.Error("overlay pattern not matching")
	}
}

func TestCatalogRejectsBadEntries(t *testing.T) {
	testCases := []struct {
		name    string
		catalog Catalog
	}{
		{
			name: "unknown category",
			catalog: Catalog{Version: 1, Patterns: []CatalogEntry{
				{Name: "x", Regex: "abc", Category: "nonsense", Weight: 0.5},
			}},
		},
		{
			name: "invalid regex",
			catalog: Catalog{Version: 1, Patterns: []CatalogEntry{
				{Name: "x", Regex: "([unclosed", Category: "scam", Weight: 0.5},
			}},
		},
		{
			name: "weight out of range",
			catalog: Catalog{Version: 1, Patterns: []CatalogEntry{
				{Name: "x", Regex: "abc", Category: "scam", Weight: 1.5},
			}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := NewRegistry()
			if _, err := tc.catalog.Apply(r); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

// Benchmark for pattern matching performance
func BenchmarkMatchAny(b *testing.B) {
	r := Get()
	text := "https://secure-verify-account.tk/login?ymid=12345"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = r.MatchAny(text, CategorySuspiciousURL)
	}
}

func BenchmarkMatchAll(b *testing.B) {
	r := Get()
	text := "Congratulations winner! Claim now your free iphone, survey expires=1699999999"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = r.MatchAll(text, CategoryScam)
	}
}

func BenchmarkMatchComprehensive(b *testing.B) {
	r := Get()
	text := `
		slot gacor maxwin deposit minimal
		Congratulations winner claim your prize
		https://bit.ly/3xYzAbC
	`

	allCategories := []Category{
		CategoryScam,
		CategoryGambling,
		CategoryAdult,
		CategorySuspiciousURL,
		CategoryPath,
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = r.MatchAll(text, allCategories...)
	}
}
