// Package gate screens navigations through the scoring engine and maps risk
// to allow/warn/block decisions. High-risk navigations get a bounded decision
// window that defaults to block when nobody answers in time.
package gate

import (
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bogaguard/bogaguard/pkg/config"
	"github.com/bogaguard/bogaguard/pkg/engine"
)

// Risk buckets a verdict score.
type Risk string

const (
	RiskLow    Risk = "low"
	RiskMedium Risk = "medium"
	RiskHigh   Risk = "high"
)

// Action is what happens to a navigation.
type Action string

const (
	ActionAllow Action = "allow"
	ActionWarn  Action = "warn"
	ActionBlock Action = "block"
)

// Decision is the gate's answer for one navigation.
type Decision struct {
	ID      string         `json:"id"`
	URL     string         `json:"url"`
	Risk    Risk           `json:"risk"`
	Action  Action         `json:"action"` // default action; final once Resolved
	Verdict engine.Verdict `json:"verdict"`

	// Resolved is true when no further answer is accepted: low risk,
	// allowlisted hosts, and previously blocked URLs resolve immediately.
	Resolved bool `json:"resolved"`
}

// Evaluator is the slice of the engine the gate needs.
type Evaluator interface {
	Evaluate(text string, kind engine.Kind) engine.Verdict
}

// navEvent is one recorded navigation for chain detection.
type navEvent struct {
	at   time.Time
	host string
}

const (
	chainCapacity = 10

	// finishedCapacity bounds the resolved-action memory; when full the
	// whole map is dropped, so Await on a long-gone ID falls back to block.
	finishedCapacity = 1024
)

// Gate screens navigations. Safe for concurrent use.
type Gate struct {
	mu        sync.Mutex
	evaluator Evaluator

	blockThreshold float64
	warnThreshold  float64
	window         time.Duration
	chainWindow    time.Duration

	allowed  map[string]bool     // per-hostname allowlist
	blocked  map[string]bool     // URLs blocked at least once
	pending  map[string]*pending // unresolved decisions by ID
	finished map[string]Action   // final actions of resolved decisions
	chain    []navEvent          // last navigations, newest last

	now func() time.Time // injectable clock for chain tests
}

type pending struct {
	decision Decision
	once     sync.Once
	done     chan struct{}
	timer    *time.Timer
	final    Action
}

// New creates a gate in front of the given evaluator.
func New(cfg *config.Config, evaluator Evaluator) *Gate {
	return &Gate{
		evaluator:      evaluator,
		blockThreshold: cfg.BlockThreshold,
		warnThreshold:  cfg.WarnThreshold,
		window:         cfg.DecisionWindow,
		chainWindow:    cfg.ChainWindow,
		allowed:        make(map[string]bool),
		blocked:        make(map[string]bool),
		pending:        make(map[string]*pending),
		finished:       make(map[string]Action),
		now:            time.Now,
	}
}

// AllowHost adds a hostname to the allowlist. Future screens of that host
// short-circuit to allow without scoring.
func (g *Gate) AllowHost(host string) {
	g.mu.Lock()
	g.allowed[strings.ToLower(host)] = true
	g.mu.Unlock()
}

// Screen records the navigation and decides what to do with it.
func (g *Gate) Screen(rawURL string) Decision {
	host := hostnameOf(rawURL)

	g.mu.Lock()
	g.recordLocked(host)

	if host != "" && g.allowed[host] {
		id := uuid.NewString()
		g.rememberFinalLocked(id, ActionAllow)
		g.mu.Unlock()
		return Decision{
			ID:       id,
			URL:      rawURL,
			Risk:     RiskLow,
			Action:   ActionAllow,
			Resolved: true,
		}
	}

	// A URL blocked once stays blocked; no second decision window.
	if g.blocked[rawURL] {
		id := uuid.NewString()
		g.rememberFinalLocked(id, ActionBlock)
		g.mu.Unlock()
		return Decision{
			ID:       id,
			URL:      rawURL,
			Risk:     RiskHigh,
			Action:   ActionBlock,
			Resolved: true,
		}
	}
	g.mu.Unlock()

	verdict := g.evaluator.Evaluate(rawURL, engine.KindURL)

	d := Decision{
		ID:      uuid.NewString(),
		URL:     rawURL,
		Verdict: verdict,
	}

	switch {
	case verdict.Score > g.blockThreshold:
		d.Risk = RiskHigh
		d.Action = ActionBlock
		g.registerPending(d, true)
	case verdict.Score > g.warnThreshold:
		d.Risk = RiskMedium
		d.Action = ActionWarn
		g.registerPending(d, false)
	default:
		d.Risk = RiskLow
		d.Action = ActionAllow
		d.Resolved = true
		g.mu.Lock()
		g.rememberFinalLocked(d.ID, ActionAllow)
		g.mu.Unlock()
	}
	return d
}

// registerPending tracks an open decision. High-risk decisions arm the
// auto-block timer; medium-risk ones stay open until answered.
func (g *Gate) registerPending(d Decision, timed bool) {
	p := &pending{
		decision: d,
		done:     make(chan struct{}),
	}

	g.mu.Lock()
	g.pending[d.ID] = p
	g.mu.Unlock()

	if timed {
		p.timer = time.AfterFunc(g.window, func() {
			g.finish(p, ActionBlock)
		})
	}
}

// Resolve answers an open decision. The first answer wins; later answers and
// the timeout are ignored. Resolving an unknown or already-final decision is
// an error.
func (g *Gate) Resolve(id string, action Action) (Action, error) {
	switch action {
	case ActionAllow, ActionWarn, ActionBlock:
	default:
		return "", fmt.Errorf("invalid action %q", action)
	}

	g.mu.Lock()
	p, ok := g.pending[id]
	g.mu.Unlock()
	if !ok {
		return "", fmt.Errorf("no pending decision %q", id)
	}

	g.finish(p, action)
	return p.final, nil
}

// Await blocks until the decision resolves: by an explicit answer, by the
// auto-block timer, or - for untimed decisions - by the caller's deadline,
// which falls back to the decision's default action. An already-resolved
// decision returns its final action; an unknown ID blocks.
func (g *Gate) Await(id string, deadline <-chan struct{}) Action {
	g.mu.Lock()
	p, ok := g.pending[id]
	if !ok {
		final, resolved := g.finished[id]
		g.mu.Unlock()
		if resolved {
			return final
		}
		return ActionBlock
	}
	g.mu.Unlock()

	select {
	case <-p.done:
		return p.final
	case <-deadline:
		return p.decision.Action
	}
}

// finish resolves a pending decision exactly once.
func (g *Gate) finish(p *pending, action Action) {
	p.once.Do(func() {
		p.final = action
		if p.timer != nil {
			p.timer.Stop()
		}

		g.mu.Lock()
		if action == ActionBlock {
			g.blocked[p.decision.URL] = true
		}
		delete(g.pending, p.decision.ID)
		g.rememberFinalLocked(p.decision.ID, action)
		g.mu.Unlock()

		close(p.done)
	})
}

// rememberFinalLocked records a decision's final action so a late Await still
// reports the real outcome. Caller holds the lock.
func (g *Gate) rememberFinalLocked(id string, action Action) {
	if len(g.finished) >= finishedCapacity {
		clear(g.finished)
	}
	g.finished[id] = action
}

// recordLocked appends a navigation event to the ring. Caller holds the lock.
func (g *Gate) recordLocked(host string) {
	g.chain = append(g.chain, navEvent{at: g.now(), host: host})
	if len(g.chain) > chainCapacity {
		g.chain = g.chain[len(g.chain)-chainCapacity:]
	}
}

// DetectSuspiciousChain reports whether the recent navigation history looks
// like a redirect chain: the 3 most recent events landed within the chain
// window, or hopped across 3 distinct hosts.
func (g *Gate) DetectSuspiciousChain() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(g.chain) < 3 {
		return false
	}
	last := g.chain[len(g.chain)-3:]

	if last[2].at.Sub(last[0].at) < g.chainWindow {
		return true
	}

	hosts := make(map[string]bool, 3)
	for _, ev := range last {
		if ev.host == "" {
			return false
		}
		hosts[ev.host] = true
	}
	return len(hosts) == 3
}

// BlockedCount reports how many URLs the gate has blocked so far.
func (g *Gate) BlockedCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.blocked)
}

func hostnameOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}
