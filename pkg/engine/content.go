package engine

import (
	"encoding/base64"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/bogaguard/bogaguard/pkg/patterns"
)

var (
	htmlCommentPattern = regexp.MustCompile(`<!--(?s:.*?)-->`)
	base64Candidate    = regexp.MustCompile(`[A-Za-z0-9+/]{50,}={0,2}`)
	absoluteURLPrefix  = regexp.MustCompile(`(?i)^https?://`)
	capitalPattern     = regexp.MustCompile(`[A-Z]`)

	// Brands commonly impersonated by fake logo images
	impersonatedBrands = []string{"google", "facebook", "apple", "microsoft", "amazon", "paypal"}

	// contentBanks are the categories scanned inside comments and base64 blobs
	contentBanks = []patterns.Category{
		patterns.CategoryScam,
		patterns.CategoryGambling,
		patterns.CategoryAdult,
	}
)

// analyzeContent scores a page content string. Structural checks need parsed
// HTML; when parsing fails the raw string still goes through the text
// heuristics so malformed markup cannot dodge scoring.
func (e *Engine) analyzeContent(content string) signal {
	var sig signal

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return e.analyzeContentText(content)
	}

	pageHost := pageHostFromBase(doc)

	text := doc.Find("title").Text() + " " + doc.Find("body").Text()
	sig.merge(e.analyzeContentText(text))

	sig.merge(e.analyzeHiddenElements(doc))
	sig.merge(e.analyzeIframes(doc))
	sig.merge(e.analyzeImages(doc, pageHost))
	sig.merge(e.analyzeForms(doc))
	sig.merge(e.analyzeMetaTags(doc))
	sig.merge(e.analyzeScripts(doc))
	sig.merge(e.analyzeHiddenPayloads(content))

	return sig
}

// analyzeContentText runs the language heuristics over visible text.
func (e *Engine) analyzeContentText(text string) signal {
	var sig signal

	// Category banks over text: each category contributes 0.2 per matching
	// pattern, capped at 0.6, and hints its category.
	for _, bank := range contentBanks {
		matches := e.registry.CountMatches(text, bank)
		if matches == 0 {
			continue
		}
		sig.score += math.Min(float64(matches)*0.2, 0.6)
		sig.add(bankHint(bank), fmt.Sprintf("%s language detected", bank))
	}

	for _, p := range e.registry.MatchAll(text, patterns.CategoryUrgency) {
		sig.score += p.Weight
		sig.add("", "Urgency language detected")
	}
	for _, p := range e.registry.MatchAll(text, patterns.CategoryMoneyLure) {
		sig.score += p.Weight
		sig.add("", "Money/prize language")
	}
	if p := e.registry.MatchAny(strings.ToLower(text), patterns.CategorySensitiveRequest); p != nil {
		sig.score += p.Weight
		sig.add(CategoryPhishing, "Requests sensitive information")
	}
	for _, p := range e.registry.MatchAll(text, patterns.CategoryFakeUI) {
		sig.score += p.Weight
		sig.add("", "Fake UI element detected")
	}

	if strings.Count(text, "!") > 10 {
		sig.score += 0.2
		sig.add("", "Excessive exclamation marks")
	}
	if len(text) > 0 {
		capsRatio := float64(len(capitalPattern.FindAllString(text, -1))) / float64(len(text))
		if capsRatio > 0.3 {
			sig.score += 0.2
			sig.add("", "Excessive capital letters")
		}
	}
	return sig
}

// analyzeHiddenElements flags invisible blocks carrying substantial text.
func (e *Engine) analyzeHiddenElements(doc *goquery.Document) signal {
	var sig signal
	doc.Find(`[style*="display:none"], [style*="visibility:hidden"], [hidden]`).Each(func(_ int, s *goquery.Selection) {
		if len(strings.TrimSpace(s.Text())) > 100 {
			sig.score += 0.2
			sig.add("", "Hidden content detected")
		}
	})
	return sig
}

// analyzeIframes flags frames sourced from an absolute origin. Content is
// analyzed detached from its page, so any absolute src is cross-origin.
func (e *Engine) analyzeIframes(doc *goquery.Document) signal {
	var sig signal
	doc.Find("iframe").Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		if absoluteURLPrefix.MatchString(src) {
			sig.score += 0.3
			sig.add("", fmt.Sprintf("Suspicious iframe: %s", src))
		}
	})
	return sig
}

// analyzeImages flags fake security badges and brand-impersonating logos.
func (e *Engine) analyzeImages(doc *goquery.Document, pageHost string) signal {
	var sig signal
	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		src := strings.ToLower(s.AttrOr("src", ""))
		alt := strings.ToLower(s.AttrOr("alt", ""))

		if strings.Contains(alt, "secure") || strings.Contains(alt, "verified") || strings.Contains(src, "badge") {
			sig.score += 0.1
			sig.add("", "Fake security badge detected")
		}

		if strings.Contains(src, "logo") || strings.Contains(alt, "logo") {
			for _, brand := range impersonatedBrands {
				if (strings.Contains(src, brand) || strings.Contains(alt, brand)) &&
					!strings.Contains(pageHost, brand) {
					sig.score += 0.3
					sig.add(CategoryPhishing, fmt.Sprintf("Fake %s logo detected", brand))
				}
			}
		}
	})
	return sig
}

// analyzeForms flags credential-harvesting form shapes.
func (e *Engine) analyzeForms(doc *goquery.Document) signal {
	var sig signal
	doc.Find("form").Each(func(_ int, form *goquery.Selection) {
		sensitiveFields := 0
		form.Find("input, textarea, select").Each(func(_ int, input *goquery.Selection) {
			fieldText := strings.ToLower(strings.Join([]string{
				input.AttrOr("name", ""),
				input.AttrOr("placeholder", ""),
				inputLabel(form, input),
			}, " "))
			if e.registry.MatchAny(fieldText, patterns.CategoryCredentialField) != nil {
				sensitiveFields++
			}
		})
		if sensitiveFields > 2 {
			sig.score += 0.4
			sig.add(CategoryPhishing, fmt.Sprintf("Suspicious form requesting %d sensitive fields", sensitiveFields))
		}

		if action := form.AttrOr("action", ""); absoluteURLPrefix.MatchString(action) {
			sig.score += 0.3
			sig.add(CategoryPhishing, fmt.Sprintf("Form submits to external domain: %s", action))
		}
	})
	return sig
}

func (e *Engine) analyzeMetaTags(doc *goquery.Document) signal {
	var sig signal
	doc.Find("meta").Each(func(_ int, s *goquery.Selection) {
		if strings.EqualFold(s.AttrOr("http-equiv", ""), "refresh") {
			sig.score += 0.3
			sig.add("", "Meta refresh redirect detected")
		}
	})
	return sig
}

func (e *Engine) analyzeScripts(doc *goquery.Document) signal {
	var sig signal
	doc.Find("script").Each(func(_ int, s *goquery.Selection) {
		body := s.Text()
		if body == "" {
			return
		}
		if strings.Contains(body, "eval(") || strings.Contains(body, "document.write(") {
			sig.score += 0.2
			sig.add("", "Suspicious script execution detected")
		}
		if p := e.registry.MatchAny(body, patterns.CategoryCryptoMining); p != nil {
			sig.score += p.Weight
			sig.add("", "Crypto mining script detected")
		}
		if p := e.registry.MatchAny(body, patterns.CategoryGamblingRedirect); p != nil {
			sig.score += p.Weight
			sig.add(CategoryGambling, "Gambling redirect script detected")
		}
	})
	return sig
}

// analyzeHiddenPayloads scans HTML comments and base64 blobs for bank hits.
// These run over the raw markup since parsers discard comments.
func (e *Engine) analyzeHiddenPayloads(content string) signal {
	var sig signal

	for _, comment := range htmlCommentPattern.FindAllString(content, -1) {
		if p := e.registry.MatchAny(comment, contentBanks...); p != nil {
			sig.score += 0.4
			sig.add(bankHint(p.Category), fmt.Sprintf("Hidden %s content in HTML comments", p.Category))
		}
	}

	for _, candidate := range base64Candidate.FindAllString(content, -1) {
		decoded, err := decodeBase64(candidate)
		if err != nil {
			continue
		}
		if p := e.registry.MatchAny(decoded, contentBanks...); p != nil {
			sig.score += 0.5
			sig.add(bankHint(p.Category), fmt.Sprintf("Hidden %s content in base64 encoding", p.Category))
		}
	}
	return sig
}

func decodeBase64(s string) (string, error) {
	if b, err := base64.StdEncoding.DecodeString(s); err == nil {
		return string(b), nil
	}
	b, err := base64.RawStdEncoding.DecodeString(s)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// pageHostFromBase recovers the page's own hostname from a <base> tag when
// the document carries one. Empty when unknown.
func pageHostFromBase(doc *goquery.Document) string {
	href := doc.Find("base[href]").First().AttrOr("href", "")
	if href == "" {
		return ""
	}
	parts, err := parseURLInput(href)
	if err != nil {
		return ""
	}
	return parts.host
}

// inputLabel resolves the label text for an input via its id.
func inputLabel(form *goquery.Selection, input *goquery.Selection) string {
	id, ok := input.Attr("id")
	if !ok || id == "" {
		return ""
	}
	return form.Find(fmt.Sprintf(`label[for=%q]`, id)).Text()
}

func bankHint(cat patterns.Category) Category {
	switch cat {
	case patterns.CategoryScam:
		return CategoryScam
	case patterns.CategoryGambling:
		return CategoryGambling
	case patterns.CategoryAdult:
		return CategoryAdult
	default:
		return ""
	}
}
