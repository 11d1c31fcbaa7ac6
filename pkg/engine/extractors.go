package engine

import (
	"errors"
	"net/url"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/bogaguard/bogaguard/pkg/patterns"
)

// signal is one extractor's partial contribution to a verdict.
type signal struct {
	score    float64
	evidence []Evidence
	proposed Category // weak category proposal, overridden by any evidence hint
}

func (s *signal) add(hint Category, text string) {
	s.evidence = append(s.evidence, Evidence{Hint: hint, Text: text})
}

func (s *signal) merge(other signal) {
	s.score += other.score
	s.evidence = append(s.evidence, other.evidence...)
	if s.proposed == "" {
		s.proposed = other.proposed
	}
}

// urlParts is the pre-lowercased decomposition of a URL input.
type urlParts struct {
	full  string // entire input, lowercased
	host  string
	path  string
	query string // includes leading "?" when non-empty
}

var errNoHost = errors.New("missing hostname")

func parseURLInput(raw string) (*urlParts, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, err
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return nil, errNoHost
	}

	parts := &urlParts{
		full: strings.ToLower(raw),
		host: host,
		path: strings.ToLower(u.EscapedPath()),
	}
	if u.RawQuery != "" {
		parts.query = "?" + strings.ToLower(u.RawQuery)
	}
	return parts, nil
}

// urlExtractor is one step of the URL pipeline. Core extractors form the
// confidence subtotal; bank extractors only contribute to the final score.
type urlExtractor struct {
	name string
	core bool
	run  func(e *Engine, in *urlParts) signal
}

// urlExtractors runs in fixed order so evaluation stays deterministic.
var urlExtractors = []urlExtractor{
	{"domain", true, (*Engine).analyzeDomain},
	{"path", true, (*Engine).analyzePath},
	{"parameters", true, (*Engine).analyzeParameters},
	{"keyword_density", true, (*Engine).analyzeKeywordDensity},
	{"category_banks", false, (*Engine).analyzeCategoryBanks},
	{"suspicious_url", false, (*Engine).analyzeSuspiciousURL},
	{"trusted_domains", false, (*Engine).analyzeTrustedDomains},
	{"homograph", false, (*Engine).analyzeHomograph},
	{"crypto_scam", false, (*Engine).analyzeCryptoScam},
}

var (
	freeTLDPattern    = regexp.MustCompile(`\.(tk|ml|ga|cf|pw|top|click|download|zip)$`)
	digitRunPattern   = regexp.MustCompile(`\d{3,}`)
	cryptoScamPattern = regexp.MustCompile(`(bitcoin|crypto|binance|trading|forex|investment).*(profit|earn|money)`)
	trackingParams    = regexp.MustCompile(`[?&](utm_|ref|affiliate|track|click)`)
	scamStyleParams   = regexp.MustCompile(`[?&](s|ssk|var|ymid|z)=\d+`)
	expiryParams      = regexp.MustCompile(`expires?=\d+`)
)

func (e *Engine) analyzeDomain(in *urlParts) signal {
	var sig signal
	host := in.host

	if len(host) > 25 {
		sig.score += 0.2
		sig.add("", "Long domain name")
	}
	if subdomains := strings.Count(host, ".") - 1; subdomains > 2 {
		sig.score += 0.15
		sig.add("", "Multiple subdomains")
	}
	if freeTLDPattern.MatchString(host) {
		sig.score += 0.3
		sig.add("", "Suspicious TLD")
	}
	if digitRunPattern.MatchString(host) {
		sig.score += 0.1
		sig.add("", "Many numbers in domain")
	}
	if strings.Count(host, "-") > 2 {
		sig.score += 0.15
		sig.add("", "Excessive hyphens")
	}
	for _, r := range host {
		if r > unicode.MaxASCII {
			sig.score += 0.25
			sig.add("", "Non-ASCII characters")
			break
		}
	}
	return sig
}

func (e *Engine) analyzePath(in *urlParts) signal {
	var sig signal
	for _, p := range e.registry.MatchAll(in.path, patterns.CategoryPath) {
		sig.score += p.Weight
		sig.add("", "Suspicious path pattern")
	}
	return sig
}

func (e *Engine) analyzeParameters(in *urlParts) signal {
	var sig signal
	if in.query == "" {
		return sig
	}

	if trackingParams.MatchString(in.query) {
		sig.score += 0.1
		sig.add("", "Tracking parameters")
	}
	if scamStyleParams.MatchString(in.query) {
		sig.score += 0.3
		sig.add("", "Scam-like parameters")
	}
	if expiryParams.MatchString(in.query) {
		sig.score += 0.2
		sig.add("", "Expiration parameter")
	}
	return sig
}

func (e *Engine) analyzeKeywordDensity(in *urlParts) signal {
	sig := e.keywords.density(in.full)
	sig.merge(e.store.Match(in.full))
	return sig
}

// analyzeCategoryBanks applies the multilingual threat banks. A pattern
// counts once whether it matched the full URL or just the host.
func (e *Engine) analyzeCategoryBanks(in *urlParts) signal {
	var sig signal

	scamCount := 0
	for _, p := range e.registry.GetByCategory(patterns.CategoryScam) {
		if p.Regex.MatchString(in.full) || p.Regex.MatchString(in.host) {
			scamCount++
		}
	}
	if scamCount >= 2 {
		sig.score += 0.9
		sig.add(CategoryScam, "Scam survey/prize detected")
	}

	gamblingCount := 0
	for _, p := range e.registry.GetByCategory(patterns.CategoryGambling) {
		if p.Regex.MatchString(in.full) || p.Regex.MatchString(in.host) {
			gamblingCount++
		}
	}
	if gamblingCount >= 1 {
		sig.score += 0.8
		sig.add(CategoryGambling, "Gambling content detected")
	}

	// Adult matches are additive per pattern
	for _, p := range e.registry.GetByCategory(patterns.CategoryAdult) {
		if p.Regex.MatchString(in.full) || p.Regex.MatchString(in.host) {
			sig.score += p.Weight
			sig.add(CategoryAdult, "Adult content detected")
		}
	}
	return sig
}

func (e *Engine) analyzeSuspiciousURL(in *urlParts) signal {
	var sig signal
	for _, p := range e.registry.MatchAll(in.full, patterns.CategorySuspiciousURL) {
		sig.score += p.Weight
		if p.Name == "url_secure_account" {
			// Security-theater wording is a phishing tell, not just noise
			sig.add(CategoryPhishing, "Suspicious URL pattern")
		} else {
			sig.add("", "Suspicious URL pattern")
		}
	}
	return sig
}

// analyzeTrustedDomains subtracts risk once when the host matches the
// allowlist. Matching is contains-based so "www.google.com" hits
// "google.com".
func (e *Engine) analyzeTrustedDomains(in *urlParts) signal {
	var sig signal
	for _, trusted := range e.trustedDomains {
		if trusted != "" && strings.Contains(in.host, trusted) {
			sig.score -= 0.5
			sig.add("", "Trusted domain")
			break
		}
	}
	return sig
}

// analyzeHomograph flags hosts carrying Cyrillic, Greek, Thai, or Georgian
// characters after NFKC normalization, the classic lookalike-domain trick.
func (e *Engine) analyzeHomograph(in *urlParts) signal {
	var sig signal
	normalized := norm.NFKC.String(in.host)
	for _, r := range normalized {
		if unicode.Is(unicode.Cyrillic, r) || unicode.Is(unicode.Greek, r) ||
			unicode.Is(unicode.Thai, r) || unicode.Is(unicode.Georgian, r) {
			sig.score += 0.4
			sig.add(CategoryPhishing, "Homograph attack detected")
			break
		}
	}
	return sig
}

func (e *Engine) analyzeCryptoScam(in *urlParts) signal {
	var sig signal
	if cryptoScamPattern.MatchString(in.full) {
		sig.score += 0.6
		sig.add(CategoryScam, "Crypto/Investment scam detected")
	}
	return sig
}
