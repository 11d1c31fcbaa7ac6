package engine

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bogaguard/bogaguard/pkg/config"
	"github.com/bogaguard/bogaguard/pkg/patterns"
)

// historySnapshotSize bounds how many history records a snapshot carries.
const historySnapshotSize = 100

// HistoryRecord is one learned observation.
type HistoryRecord struct {
	ID        string    `json:"id"`
	Input     string    `json:"input"`
	Score     float64   `json:"score"`
	Reasons   []string  `json:"reasons,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Snapshot is the serializable learned state of the engine.
type Snapshot struct {
	NegativeKeywords []string                `json:"negative_keywords"`
	PositiveKeywords []string                `json:"positive_keywords"`
	Patterns         map[string]PatternEntry `json:"patterns"`
	History          []HistoryRecord         `json:"history"`
}

// Stats summarizes the engine's learned state.
type Stats struct {
	NegativeKeywords int     `json:"negative_keywords"`
	PositiveKeywords int     `json:"positive_keywords"`
	LearnedPatterns  int     `json:"learned_patterns"`
	HistorySize      int     `json:"history_size"`
	AverageScore     float64 `json:"average_score"`
}

// SnapshotSink receives a copy of the learned state after every Learn call.
// Implementations must not block; persistence latency must never affect
// evaluation.
type SnapshotSink func(Snapshot)

// Engine is the threat scoring engine. Evaluate is read-only and safe for
// concurrent use; Learn and Hydrate are the only mutators.
type Engine struct {
	mu       sync.RWMutex
	registry *patterns.Registry
	keywords *keywordSets
	store    *PatternStore
	history  []HistoryRecord

	trustedDomains []string
	learnThreshold float64
	historyCap     int
	historyKeep    int

	sink SnapshotSink
}

// New creates an engine with the seed vocabularies and an empty pattern store.
func New(cfg *config.Config, reg *patterns.Registry) *Engine {
	if reg == nil {
		reg = patterns.Get()
	}
	return &Engine{
		registry:       reg,
		keywords:       newKeywordSets(),
		store:          NewPatternStore(cfg.PatternWeightCeiling),
		trustedDomains: cfg.TrustedDomains,
		learnThreshold: cfg.BlockThreshold,
		historyCap:     cfg.HistoryCap,
		historyKeep:    cfg.HistoryKeep,
	}
}

// SetSnapshotSink installs the persistence callback. Call before serving.
func (e *Engine) SetSnapshotSink(sink SnapshotSink) {
	e.mu.Lock()
	e.sink = sink
	e.mu.Unlock()
}

// AddKeywords extends the seed vocabularies, e.g. from a catalog overlay.
func (e *Engine) AddKeywords(negative, positive []string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, w := range negative {
		e.keywords.addNegative(w)
	}
	for _, w := range positive {
		e.keywords.addPositive(w)
	}
}

// Evaluate scores an input. It never fails: malformed URLs yield the fixed
// fallback verdict and a panicking extractor is skipped. Two calls with the
// same input and the same learned state return identical verdicts.
func (e *Engine) Evaluate(text string, kind Kind) Verdict {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if kind == KindContent {
		sig := e.runIsolated("content", func() signal { return e.analyzeContent(text) })
		return Verdict{
			Score:      clamp01(sig.score),
			Category:   resolveCategory(sig.evidence, sig.proposed),
			Confidence: clamp01(sig.score),
			Reasons:    evidenceTexts(sig.evidence),
		}
	}

	parts, err := parseURLInput(text)
	if err != nil {
		return fallbackVerdict()
	}

	var total, coreTotal float64
	var evidence []Evidence
	var proposed Category

	for _, x := range urlExtractors {
		sig := e.runIsolated(x.name, func() signal { return x.run(e, parts) })
		total += sig.score
		if x.core {
			coreTotal += sig.score
		}
		evidence = append(evidence, sig.evidence...)
		if proposed == "" {
			proposed = sig.proposed
		}
	}

	return Verdict{
		Score:      clamp01(total),
		Category:   resolveCategory(evidence, proposed),
		Confidence: clamp01(coreTotal),
		Reasons:    evidenceTexts(evidence),
	}
}

// runIsolated shields the pipeline from a faulty extractor: a panic logs,
// contributes nothing, and aggregation continues.
func (e *Engine) runIsolated(name string, fn func() signal) (sig signal) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[WARN] extractor %s panicked, skipping its contribution: %v", name, r)
			sig = signal{}
		}
	}()
	return fn()
}

// Learn feeds a verdict back into the engine. High-risk inputs seed the
// negative vocabulary and the pattern store; evidence tokens only seed the
// vocabulary. Learning is monotonic - nothing is ever unlearned.
func (e *Engine) Learn(text string, v Verdict) {
	e.mu.Lock()

	e.history = append(e.history, HistoryRecord{
		ID:        uuid.NewString(),
		Input:     text,
		Score:     v.Score,
		Reasons:   v.Reasons,
		Timestamp: time.Now().UTC(),
	})
	if len(e.history) > e.historyCap {
		kept := make([]HistoryRecord, e.historyKeep)
		copy(kept, e.history[len(e.history)-e.historyKeep:])
		e.history = kept
	}

	if v.Score > e.learnThreshold {
		for _, token := range tokenize(text) {
			e.keywords.addNegative(token)
			e.store.Observe(token)
		}
	}
	for _, reason := range v.Reasons {
		for _, token := range tokenize(reason) {
			e.keywords.addNegative(token)
		}
	}

	snap := e.snapshotLocked()
	sink := e.sink
	e.mu.Unlock()

	// Sink runs outside the critical section so a slow persister cannot
	// stall evaluation.
	if sink != nil {
		sink(snap)
	}
}

// SnapshotNow returns a copy of the current learned state.
func (e *Engine) SnapshotNow() Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.snapshotLocked()
}

func (e *Engine) snapshotLocked() Snapshot {
	snap := Snapshot{
		NegativeKeywords: make([]string, 0, len(e.keywords.negative)),
		PositiveKeywords: make([]string, 0, len(e.keywords.positive)),
		Patterns:         e.store.Export(),
	}
	for w := range e.keywords.negative {
		snap.NegativeKeywords = append(snap.NegativeKeywords, w)
	}
	for w := range e.keywords.positive {
		snap.PositiveKeywords = append(snap.PositiveKeywords, w)
	}

	historyFrom := 0
	if len(e.history) > historySnapshotSize {
		historyFrom = len(e.history) - historySnapshotSize
	}
	snap.History = append([]HistoryRecord(nil), e.history[historyFrom:]...)
	return snap
}

// Hydrate merges a persisted snapshot into the engine. Corrupt entries are
// dropped and counted; valid entries always load. Call at startup before
// serving traffic.
func (e *Engine) Hydrate(snap Snapshot) {
	e.mu.Lock()
	defer e.mu.Unlock()

	dropped := 0
	for _, w := range snap.NegativeKeywords {
		if w == "" {
			dropped++
			continue
		}
		e.keywords.addNegative(w)
	}
	for _, w := range snap.PositiveKeywords {
		if w == "" {
			dropped++
			continue
		}
		e.keywords.addPositive(w)
	}

	dropped += e.store.Import(snap.Patterns)

	for _, rec := range snap.History {
		if rec.Input == "" || rec.Score < 0 || rec.Score > 1 {
			dropped++
			continue
		}
		if rec.ID == "" {
			rec.ID = uuid.NewString()
		}
		e.history = append(e.history, rec)
	}
	if len(e.history) > e.historyCap {
		e.history = e.history[len(e.history)-e.historyKeep:]
	}

	if dropped > 0 {
		log.Printf("[WARN] hydrate dropped %d corrupt snapshot entries", dropped)
	}
}

// LearningStats reports the size of the learned state.
func (e *Engine) LearningStats() Stats {
	e.mu.RLock()
	defer e.mu.RUnlock()

	s := Stats{
		NegativeKeywords: len(e.keywords.negative),
		PositiveKeywords: len(e.keywords.positive),
		LearnedPatterns:  e.store.Len(),
		HistorySize:      len(e.history),
	}
	if len(e.history) > 0 {
		sum := 0.0
		for _, rec := range e.history {
			sum += rec.Score
		}
		s.AverageScore = sum / float64(len(e.history))
	}
	return s
}

func evidenceTexts(evidence []Evidence) []string {
	texts := make([]string, 0, len(evidence))
	for _, ev := range evidence {
		texts = append(texts, ev.Text)
	}
	return texts
}
