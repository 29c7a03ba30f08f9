// Package detector builds a descriptive page profile: site category, a
// suggested growth goal, readability metadata and the page language.
// The profile is informational and never feeds the score.
package detector

import (
	"bytes"
	"net/url"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/dtnitsch/site-growth-analyzer/pkg/analytics"
	"github.com/go-shiori/go-readability"
	"github.com/pemistahl/lingua-go"
)

const (
	// minLanguageRunes is the shortest text worth running language detection on.
	minLanguageRunes = 40
	topKeywordCount  = 10
)

// Profile describes what kind of site a page belongs to.
type Profile struct {
	DomainType    string `json:"domain_type" yaml:"domain_type"`
	Category      string `json:"category" yaml:"category"`
	Country       string `json:"country" yaml:"country"`
	SuggestedGoal string `json:"suggested_goal" yaml:"suggested_goal"`

	Language           string  `json:"language,omitempty" yaml:"language,omitempty"`
	LanguageConfidence float64 `json:"language_confidence,omitempty" yaml:"language_confidence,omitempty"`

	ReadableTitle string `json:"readable_title,omitempty" yaml:"readable_title,omitempty"`
	Author        string `json:"author,omitempty" yaml:"author,omitempty"`
	Excerpt       string `json:"excerpt,omitempty" yaml:"excerpt,omitempty"`
	SiteName      string `json:"site_name,omitempty" yaml:"site_name,omitempty"`
	PublishedTime string `json:"published_time,omitempty" yaml:"published_time,omitempty"`
	Favicon       string `json:"favicon,omitempty" yaml:"favicon,omitempty"`
	Image         string `json:"image,omitempty" yaml:"image,omitempty"`
	WordCount     int    `json:"word_count" yaml:"word_count"`

	TopKeywords []string `json:"top_keywords,omitempty" yaml:"top_keywords,omitempty"`
}

var detectedLanguages = []lingua.Language{
	lingua.English,
	lingua.German,
	lingua.French,
	lingua.Spanish,
	lingua.Portuguese,
	lingua.Italian,
	lingua.Dutch,
}

var (
	languageDetector     lingua.LanguageDetector
	languageDetectorOnce sync.Once
)

func detector() lingua.LanguageDetector {
	languageDetectorOnce.Do(func() {
		languageDetector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(detectedLanguages...).
			Build()
	})
	return languageDetector
}

// Analyze profiles the page at rawURL. Markup that readability cannot
// handle still yields the URL-derived fields.
func Analyze(rawURL string, html []byte) *Profile {
	p := &Profile{DomainType: "unknown", Category: "general", Country: "unknown", SuggestedGoal: "business"}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return p
	}

	p.DomainType = detectDomainType(parsedURL)
	p.Country = detectCountry(parsedURL)
	p.Category = detectCategory(parsedURL, p.DomainType)

	parser := readability.NewParser()
	article, err := parser.Parse(bytes.NewReader(html), parsedURL)
	if err == nil {
		p.ReadableTitle = strings.TrimSpace(article.Title)
		p.Author = article.Byline
		p.Excerpt = article.Excerpt
		p.SiteName = article.SiteName
		if article.PublishedTime != nil {
			p.PublishedTime = article.PublishedTime.Format("2006-01-02")
		}
		p.Favicon = article.Favicon
		p.Image = article.Image

		text := articleText(article.Content)
		p.WordCount = len(strings.Fields(text))
		p.Language, p.LanguageConfidence = DetectLanguage(text)
		p.TopKeywords = (&analytics.Analytics{}).TopKeywords(text, topKeywordCount)
	}

	p.SuggestedGoal = suggestGoal(p.Category, html)
	return p
}

func articleText(content string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(doc.Text())
}

// DetectLanguage returns the ISO 639-1 code of text and the detector's
// confidence, or "" when the text is too short or ambiguous.
func DetectLanguage(text string) (string, float64) {
	if utf8.RuneCountInString(strings.TrimSpace(text)) < minLanguageRunes {
		return "", 0
	}
	d := detector()
	language, exists := d.DetectLanguageOf(text)
	if !exists {
		return "", 0
	}
	return strings.ToLower(language.IsoCode639_1().String()), d.ComputeLanguageConfidence(text, language)
}

// detectDomainType identifies domain classification
func detectDomainType(u *url.URL) string {
	host := strings.ToLower(u.Hostname())

	if strings.HasSuffix(host, ".gov") || strings.HasSuffix(host, ".mil") {
		return "gov"
	}
	if strings.HasSuffix(host, ".edu") {
		return "edu"
	}
	if strings.HasPrefix(host, "m.") || strings.HasPrefix(host, "mobile.") {
		return "mobile"
	}
	return "commercial"
}

var countryTLDs = map[string]string{
	"uk": "uk", "de": "de", "fr": "fr", "jp": "jp", "cn": "cn",
	"au": "au", "ca": "ca", "in": "in", "br": "br", "ru": "ru",
	"it": "it", "es": "es", "nl": "nl", "se": "se", "ch": "ch",
}

// detectCountry extracts country from TLD
func detectCountry(u *url.URL) string {
	parts := strings.Split(strings.ToLower(u.Hostname()), ".")
	if len(parts) < 2 {
		return "unknown"
	}

	tld := parts[len(parts)-1]
	if country, ok := countryTLDs[tld]; ok {
		return country
	}
	if tld == "gov" || tld == "edu" || tld == "mil" {
		return "us"
	}
	return "unknown"
}

var (
	shopMarkers      = []string{"shop", "store", "cart", "checkout", "product"}
	portfolioMarkers = []string{"portfolio", "studio", "design", "photography"}
)

// detectCategory determines site category from URL patterns
func detectCategory(u *url.URL, domainType string) string {
	host := strings.ToLower(u.Hostname())
	path := strings.ToLower(u.Path)

	switch domainType {
	case "gov":
		return "gov/general"
	case "edu":
		return "academic/general"
	}

	if strings.Contains(host, "docs.") || strings.Contains(path, "/docs/") ||
		strings.Contains(host, "api.") || strings.Contains(path, "/api/") {
		return "docs/api"
	}
	if strings.Contains(host, "blog.") || strings.Contains(path, "/blog/") {
		return "blog"
	}
	if containsAny(host, shopMarkers) || containsAny(path, shopMarkers) {
		return "commerce"
	}
	if containsAny(host, portfolioMarkers) || containsAny(path, portfolioMarkers) {
		return "portfolio"
	}
	return "general"
}

// suggestGoal maps the category, and for general sites the markup, onto a
// goal from the growth table.
func suggestGoal(category string, html []byte) string {
	switch category {
	case "blog":
		return "blog"
	case "commerce":
		return "ecommerce"
	case "portfolio":
		return "portfolio"
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return "business"
	}
	switch ogType, _ := doc.Find(`meta[property="og:type"]`).First().Attr("content"); strings.ToLower(ogType) {
	case "article", "blog":
		return "blog"
	case "product", "product.group":
		return "ecommerce"
	case "profile":
		return "portfolio"
	}
	if doc.Find("article").Length() > 1 {
		return "blog"
	}
	return "business"
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
