package parser

import (
	"bytes"
	"net/url"
	"path"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/dtnitsch/site-growth-analyzer/models"
	"github.com/dtnitsch/site-growth-analyzer/pkg/rules"
)

// iconRels are the link relations that count as a favicon.
var iconRels = map[string]struct{}{
	"icon":             {},
	"apple-touch-icon": {},
}

var vectorImageExts = map[string]struct{}{
	".svg": {},
	".ico": {},
}

const openGraphSelector = `meta[property="og:title"], meta[property="og:description"], meta[property="og:image"]`

type Parser struct {
	rules *rules.Rules
}

func New(r *rules.Rules) *Parser {
	return &Parser{rules: r}
}

// Extract turns raw markup into page signals. It never fails: markup that
// cannot be read yields the zero value for every markup-derived signal.
func (p *Parser) Extract(raw []byte, finalURL string, elapsedSeconds float64) models.PageSignals {
	signals := models.PageSignals{
		LoadTimeSeconds: elapsedSeconds,
		CTAMatches:      []string{},
	}

	if u, err := url.Parse(finalURL); err == nil {
		signals.IsHTTPS = strings.EqualFold(u.Scheme, "https")
		signals.Hostname = u.Host
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return signals
	}

	if title := doc.Find("title").First(); title.Length() > 0 {
		signals.HasTitle = true
		signals.Title = strings.TrimSpace(title.Text())
	}

	signals.H1Count = doc.Find("h1").Length()
	signals.H2Count = doc.Find("h2").Length()

	signals.HasMetaDescription = doc.Find(`meta[name="description"]`).Length() > 0
	signals.HasViewport = doc.Find(`meta[name="viewport"]`).Length() > 0
	signals.HasOpenGraph = doc.Find(openGraphSelector).Length() > 0
	signals.HasFavicon = hasFavicon(doc)

	signals.CTAMatches = p.findCTAs(doc)
	signals.NonVectorImageCount = countNonVectorImages(doc)

	// Removal mutates the document, so it runs last.
	doc.Find("script, style").Remove()
	signals.VisibleTextLength = utf8.RuneCountInString(doc.Text())

	return signals
}

func hasFavicon(doc *goquery.Document) bool {
	found := false
	doc.Find("link[rel]").EachWithBreak(func(i int, s *goquery.Selection) bool {
		rel, _ := s.Attr("rel")
		for _, token := range strings.Fields(strings.ToLower(rel)) {
			if _, ok := iconRels[token]; ok {
				found = true
				return false
			}
		}
		return true
	})
	return found
}

// findCTAs checks every button and the first LinkScanLimit anchors.
func (p *Parser) findCTAs(doc *goquery.Document) []string {
	matches := []string{}

	doc.Find("button").Each(func(i int, s *goquery.Selection) {
		if text := normalizeText(s.Text()); p.rules.MatchesCTA(text) {
			matches = append(matches, text)
		}
	})

	doc.Find("a").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if i >= p.rules.LinkScanLimit {
			return false
		}
		if text := normalizeText(s.Text()); p.rules.MatchesCTA(text) {
			matches = append(matches, text)
		}
		return true
	})

	return matches
}

func countNonVectorImages(doc *goquery.Document) int {
	count := 0
	doc.Find("img").Each(func(i int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		if src == "" || isVectorImage(src) {
			return
		}
		count++
	})
	return count
}

// isVectorImage looks at the path extension only, ignoring query and fragment.
func isVectorImage(src string) bool {
	p := src
	if u, err := url.Parse(src); err == nil {
		p = u.Path
	}
	_, ok := vectorImageExts[strings.ToLower(path.Ext(p))]
	return ok
}

func normalizeText(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}
