package engine

import (
	"math"
	"reflect"
	"regexp"
	"strings"
	"testing"

	"github.com/bogaguard/bogaguard/pkg/config"
	"github.com/bogaguard/bogaguard/pkg/patterns"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return New(config.NewDefaultConfig(), patterns.Get())
}

func TestEvaluateURLVerdicts(t *testing.T) {
	e := newTestEngine(t)

	testCases := []struct {
		name         string
		url          string
		minScore     float64
		maxScore     float64
		wantCategory Category
		wantReason   string
	}{
		{
			name:         "scam survey on free TLD",
			url:          "http://free-prize-survey.tk/claim?ymid=12345",
			minScore:     0.9,
			maxScore:     1.0,
			wantCategory: CategoryScam,
			wantReason:   "Scam survey/prize detected",
		},
		{
			name:         "gambling site",
			url:          "https://slot-gacor-maxwin.example.com/daftar",
			minScore:     0.8,
			maxScore:     1.0,
			wantCategory: CategoryGambling,
			wantReason:   "Gambling content detected",
		},
		{
			name:         "url shortener",
			url:          "https://bit.ly/3xYzAbC",
			minScore:     0.3,
			maxScore:     1.0,
			wantReason:   "Suspicious URL pattern",
			wantCategory: CategorySuspicious,
		},
		{
			name:         "crypto investment scam",
			url:          "https://crypto-trading.example.net/guaranteed?offer=profit-earn-money",
			minScore:     0.6,
			maxScore:     1.0,
			wantCategory: CategoryScam,
			wantReason:   "Crypto/Investment scam detected",
		},
		{
			name:         "clean documentation page",
			url:          "https://example.org/docs/getting-started",
			minScore:     0,
			maxScore:     0.29,
			wantCategory: CategorySuspicious,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := e.Evaluate(tc.url, KindURL)
			t.Logf("score=%.2f category=%s reasons=%v", v.Score, v.Category, v.Reasons)

			if v.Score < tc.minScore || v.Score > tc.maxScore {
				t.Errorf("score %.2f outside [%.2f, %.2f]", v.Score, tc.minScore, tc.maxScore)
			}
			if v.Category != tc.wantCategory {
				t.Errorf("category = %s, want %s", v.Category, tc.wantCategory)
			}
			if tc.wantReason != "" && !containsReason(v.Reasons, tc.wantReason) {
				t.Errorf("reasons %v missing %q", v.Reasons, tc.wantReason)
			}
		})
	}
}

func TestEvaluateScoreAlwaysClamped(t *testing.T) {
	e := newTestEngine(t)

	// Stacks scam, gambling, adult, suspicious URL, and free TLD signals
	hot := "http://casino-porn-survey-winner.tk/claim/prize?ymid=99&expires=123"
	v := e.Evaluate(hot, KindURL)
	if v.Score < 0 || v.Score > 1 {
		t.Fatalf("score %v escaped [0,1]", v.Score)
	}
	if v.Score != 1.0 {
		t.Errorf("stacked signals should clamp to 1.0, got %v", v.Score)
	}

	// Trusted domain drives the raw sum negative; the floor is 0
	cold := "https://www.google.com/"
	v = e.Evaluate(cold, KindURL)
	if v.Score < 0 || v.Score > 1 {
		t.Fatalf("score %v escaped [0,1]", v.Score)
	}
}

func TestTrustedDomainReducesScore(t *testing.T) {
	e := newTestEngine(t)

	trusted := e.Evaluate("https://www.shopee.co.id/free-prize", KindURL)
	untrusted := e.Evaluate("https://www.shoppee-mall.example/free-prize", KindURL)

	if trusted.Score >= untrusted.Score {
		t.Errorf("trusted %.2f should score below untrusted %.2f", trusted.Score, untrusted.Score)
	}
}

func TestMalformedInputFallback(t *testing.T) {
	e := newTestEngine(t)

	testCases := []string{
		"http://%zz%zz",
		"not a url at all",
		"/relative/path/only",
		"",
	}

	want := Verdict{
		Score:      0.3,
		Category:   CategoryUnknown,
		Confidence: 0.3,
		Reasons:    []string{"Invalid URL structure"},
	}

	for _, input := range testCases {
		t.Run(input, func(t *testing.T) {
			v := e.Evaluate(input, KindURL)
			if !reflect.DeepEqual(v, want) {
				t.Errorf("Evaluate(%q) = %+v, want %+v", input, v, want)
			}
		})
	}
}

func TestCategoryPriorityResolution(t *testing.T) {
	// Gambling evidence must win even when phishing and scam fire too
	got := resolveCategory([]Evidence{
		{Hint: CategoryPhishing, Text: "Homograph attack detected"},
		{Hint: CategoryScam, Text: "Scam survey/prize detected"},
		{Hint: CategoryGambling, Text: "Gambling content detected"},
	}, "")
	if got != CategoryGambling {
		t.Errorf("resolveCategory = %s, want %s", got, CategoryGambling)
	}

	// No hints falls back to the proposal, then to suspicious
	if got := resolveCategory(nil, CategoryPhishing); got != CategoryPhishing {
		t.Errorf("proposal fallback = %s, want %s", got, CategoryPhishing)
	}
	if got := resolveCategory(nil, ""); got != CategorySuspicious {
		t.Errorf("empty fallback = %s, want %s", got, CategorySuspicious)
	}
}

func TestEvaluateIsPureAndDeterministic(t *testing.T) {
	e := newTestEngine(t)
	url := "http://free-prize-survey.tk/claim?ymid=12345"

	before := e.LearningStats()
	first := e.Evaluate(url, KindURL)
	second := e.Evaluate(url, KindURL)
	after := e.LearningStats()

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeat evaluation diverged:\n%+v\n%+v", first, second)
	}
	if !reflect.DeepEqual(before, after) {
		t.Errorf("Evaluate mutated learned state: %+v -> %+v", before, after)
	}
}

func TestEvaluateSurvivesFaultyExtractor(t *testing.T) {
	e := newTestEngine(t)
	url := "http://free-prize-survey.tk/claim?ymid=12345"
	want := e.Evaluate(url, KindURL)

	// A panicking step must contribute nothing while the rest of the
	// pipeline keeps aggregating.
	saved := urlExtractors
	defer func() { urlExtractors = saved }()
	urlExtractors = append(append([]urlExtractor(nil), saved...), urlExtractor{
		name: "faulty",
		core: true,
		run:  func(*Engine, *urlParts) signal { panic("bad table index") },
	})

	got := e.Evaluate(url, KindURL)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("faulty extractor changed the verdict:\n got %+v\nwant %+v", got, want)
	}
	if !containsReason(got.Reasons, "Scam survey/prize detected") {
		t.Errorf("surviving extractors' evidence missing: %v", got.Reasons)
	}

	sig := e.runIsolated("faulty", func() signal { panic("bad table index") })
	if sig.score != 0 || len(sig.evidence) != 0 {
		t.Errorf("isolated panic yielded a non-zero signal: %+v", sig)
	}
}

func TestPatternWeightDrivesScore(t *testing.T) {
	reg := patterns.NewRegistry()
	reg.Add(&patterns.Pattern{
		Name:        "path_zq_route",
		Regex:       regexp.MustCompile(`(?i)/zq-custom-route`),
		Category:    patterns.CategoryPath,
		Weight:      0.35,
		Description: "Overlay path pattern carrying its own weight",
	})
	e := New(config.NewDefaultConfig(), reg)

	// Nothing else fires on this URL, so the score is the pattern's weight
	v := e.Evaluate("https://example.org/zq-custom-route", KindURL)
	if math.Abs(v.Score-0.35) > 1e-9 {
		t.Errorf("score = %v, want 0.35 from the pattern's weight", v.Score)
	}
	if !containsReason(v.Reasons, "Suspicious path pattern") {
		t.Errorf("reasons %v missing path evidence", v.Reasons)
	}
}

func TestLearnHighRiskGrowsPatterns(t *testing.T) {
	e := newTestEngine(t)
	url := "http://maliciousdomain.example/phishing-login"

	v := Verdict{Score: 0.9, Category: CategoryPhishing, Reasons: []string{"Homograph attack detected"}}
	e.Learn(url, v)

	stats := e.LearningStats()
	if stats.LearnedPatterns == 0 {
		t.Fatal("high-risk learn added no patterns")
	}
	if stats.HistorySize != 1 {
		t.Errorf("history size = %d, want 1", stats.HistorySize)
	}

	snap := e.SnapshotNow()
	if _, ok := snap.Patterns["maliciousdomain"]; !ok {
		t.Errorf("token maliciousdomain not in pattern store: %v", snap.Patterns)
	}
	// Evidence tokens join the vocabulary but never the pattern store
	if _, ok := snap.Patterns["homograph"]; ok {
		t.Error("evidence token leaked into the pattern store")
	}
	if !containsKeyword(snap.NegativeKeywords, "homograph") {
		t.Error("evidence token missing from negative vocabulary")
	}
}

func TestLearnLowRiskOnlyRecordsHistory(t *testing.T) {
	e := newTestEngine(t)

	e.Learn("https://example.org/", Verdict{Score: 0.2, Category: CategorySuspicious})

	stats := e.LearningStats()
	if stats.LearnedPatterns != 0 {
		t.Errorf("low-risk learn grew the pattern store: %d entries", stats.LearnedPatterns)
	}
	if stats.HistorySize != 1 {
		t.Errorf("history size = %d, want 1", stats.HistorySize)
	}
}

func TestLearnWeightProgressionAndCeiling(t *testing.T) {
	e := newTestEngine(t)
	v := Verdict{Score: 0.9, Category: CategoryScam}

	// First sighting inserts at 0.1, each repeat adds 0.05
	e.Learn("http://badtoken.example/", v)
	e.Learn("http://badtoken.example/", v)
	e.Learn("http://badtoken.example/", v)

	entry, ok := e.SnapshotNow().Patterns["badtoken"]
	if !ok {
		t.Fatal("badtoken not learned")
	}
	if math.Abs(entry.Weight-0.2) > 1e-9 {
		t.Errorf("weight after 3 sightings = %v, want 0.2", entry.Weight)
	}
	if entry.Count != 3 {
		t.Errorf("count = %d, want 3", entry.Count)
	}

	// Ceiling holds no matter how often a token repeats
	for i := 0; i < 40; i++ {
		e.Learn("http://badtoken.example/", v)
	}
	entry = e.SnapshotNow().Patterns["badtoken"]
	if entry.Weight > 1.0 {
		t.Errorf("weight %v exceeded ceiling 1.0", entry.Weight)
	}
}

func TestLearnedPatternsRaiseFutureScores(t *testing.T) {
	e := newTestEngine(t)
	url := "http://zqxtoken-site.example/page"

	before := e.Evaluate(url, KindURL)
	e.Learn(url, Verdict{Score: 0.95, Category: CategoryScam})
	after := e.Evaluate(url, KindURL)

	if after.Score <= before.Score {
		t.Errorf("learned pattern did not raise score: %.2f -> %.2f", before.Score, after.Score)
	}
	if !containsReason(after.Reasons, "Learned pattern: zqxtoken") {
		t.Errorf("reasons %v missing learned pattern evidence", after.Reasons)
	}
}

func TestHistoryTruncation(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.HistoryCap = 10
	cfg.HistoryKeep = 5
	e := New(cfg, patterns.Get())

	for i := 0; i < 11; i++ {
		e.Learn("https://example.org/", Verdict{Score: 0.1})
	}

	if got := e.LearningStats().HistorySize; got != 5 {
		t.Errorf("history size after overflow = %d, want 5", got)
	}
}

func TestSnapshotHistoryBounded(t *testing.T) {
	e := newTestEngine(t)
	for i := 0; i < 150; i++ {
		e.Learn("https://example.org/", Verdict{Score: 0.1})
	}

	snap := e.SnapshotNow()
	if len(snap.History) != historySnapshotSize {
		t.Errorf("snapshot history = %d records, want %d", len(snap.History), historySnapshotSize)
	}
}

func TestHydrateDropsCorruptEntries(t *testing.T) {
	e := newTestEngine(t)

	snap := Snapshot{
		NegativeKeywords: []string{"sketchyword", ""},
		Patterns: map[string]PatternEntry{
			"goodtoken": {Weight: 0.3, Count: 4},
			"":          {Weight: 0.2, Count: 1},  // empty token
			"badweight": {Weight: -1, Count: 2},   // non-positive weight
			"badcount":  {Weight: 0.5, Count: 0},  // non-positive count
			"toobig":    {Weight: 99, Count: 1},   // clamped, not dropped
		},
		History: []HistoryRecord{
			{ID: "a", Input: "http://x.example/", Score: 0.4},
			{Input: "", Score: 0.4},  // empty input
			{Input: "http://y.example/", Score: 7}, // score out of range
		},
	}

	e.Hydrate(snap)

	got := e.SnapshotNow()
	if _, ok := got.Patterns["goodtoken"]; !ok {
		t.Error("valid pattern dropped during hydrate")
	}
	if _, ok := got.Patterns["badweight"]; ok {
		t.Error("corrupt pattern survived hydrate")
	}
	if entry := got.Patterns["toobig"]; entry.Weight > 1.0 {
		t.Errorf("oversized weight not clamped: %v", entry.Weight)
	}
	if !containsKeyword(got.NegativeKeywords, "sketchyword") {
		t.Error("valid keyword dropped during hydrate")
	}
	if e.LearningStats().HistorySize != 1 {
		t.Errorf("history size = %d, want 1 valid record", e.LearningStats().HistorySize)
	}
}

func TestSnapshotSinkFiresAfterLearn(t *testing.T) {
	e := newTestEngine(t)

	var got []Snapshot
	e.SetSnapshotSink(func(s Snapshot) { got = append(got, s) })

	e.Learn("http://bad.example/", Verdict{Score: 0.9})
	e.Learn("http://worse.example/", Verdict{Score: 0.9})

	if len(got) != 2 {
		t.Fatalf("sink fired %d times, want 2", len(got))
	}
	if len(got[1].Patterns) == 0 {
		t.Error("sink snapshot missing learned patterns")
	}
}

func containsReason(reasons []string, want string) bool {
	for _, r := range reasons {
		if strings.Contains(r, want) {
			return true
		}
	}
	return false
}

func containsKeyword(words []string, want string) bool {
	for _, w := range words {
		if w == want {
			return true
		}
	}
	return false
}
