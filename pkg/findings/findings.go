// Package findings derives issues, quick wins, SEO notes and trust signals
// from extracted page signals.
package findings

import (
	"fmt"
	"math"

	"github.com/dtnitsch/site-growth-analyzer/models"
)

const (
	MaxIssues      = 3
	QuickWinCount  = 3
	MaxSEONotes    = 3
	TrustCheckSize = 8

	slowIssueSeconds   = 3.0
	compressImageCount = 10
	maxBounceEstimate  = 15
)

// Findings is everything the generator derives from one page.
type Findings struct {
	Issues       []models.Finding
	QuickWins    []models.Suggestion
	SEONotes     []models.Suggestion
	TrustSignals []models.TrustSignal
}

var genericMessageIssue = models.Finding{
	Problem: "Generic homepage message",
	Why:     "Value proposition not immediately clear",
	Impact:  "Visitors may not understand what you offer - make your headline more specific",
}

// Generate builds all findings for one page.
func Generate(sig models.PageSignals, _ models.CategoryScores, loadTimeSeconds float64) Findings {
	return Findings{
		Issues:       Issues(sig, loadTimeSeconds),
		QuickWins:    QuickWins(sig),
		SEONotes:     SEONotes(sig),
		TrustSignals: TrustSignals(sig, loadTimeSeconds),
	}
}

// Issues evaluates each check in priority order, pads with a generic
// finding when fewer than MaxIssues fired, and truncates to MaxIssues.
func Issues(sig models.PageSignals, loadTimeSeconds float64) []models.Finding {
	issues := make([]models.Finding, 0, MaxIssues+2)

	if !sig.HasCTA() {
		issues = append(issues, models.Finding{
			Problem: "No clear call-to-action found",
			Why:     "Couldn't find prominent CTA buttons (e.g., 'Get Started', 'Sign Up', 'Buy Now')",
			Impact:  "Visitors may leave without taking action - add clear CTAs above the fold",
		})
	}

	if loadTimeSeconds > slowIssueSeconds {
		issues = append(issues, models.Finding{
			Problem: fmt.Sprintf("Slow load time (%.1fs)", loadTimeSeconds),
			Why:     "Page takes too long to load",
			Impact:  fmt.Sprintf("Lose ~%d%% of visitors due to slow speed - optimize images and code", VisitorLossPercent(loadTimeSeconds)),
		})
	}

	if !sig.HasMetaDescription {
		issues = append(issues, models.Finding{
			Problem: "Missing meta description",
			Why:     "No description tag for search engines",
			Impact:  "Lower click-through rate from Google - add compelling 150-char description",
		})
	}

	switch {
	case sig.H1Count == 0:
		issues = append(issues, models.Finding{
			Problem: "No H1 heading found",
			Why:     "Missing main page heading",
			Impact:  "Poor SEO and unclear page purpose - add one H1 with your main message",
		})
	case sig.H1Count > 1:
		issues = append(issues, models.Finding{
			Problem: fmt.Sprintf("%d H1 headings (should be 1)", sig.H1Count),
			Why:     "Multiple H1 tags confuse search engines",
			Impact:  "Diluted SEO value - use only one H1 per page",
		})
	}

	if len(issues) < MaxIssues {
		issues = append(issues, genericMessageIssue)
	}

	if len(issues) > MaxIssues {
		issues = issues[:MaxIssues]
	}
	return issues
}

// VisitorLossPercent estimates the share of visitors lost to a slow load.
// Very large load times saturate instead of overflowing.
func VisitorLossPercent(loadTimeSeconds float64) int {
	loss := math.Floor((loadTimeSeconds - 1) * 7)
	if loss >= math.MaxInt32 {
		return math.MaxInt32
	}
	return int(loss)
}

// QuickWins always returns QuickWinCount suggestions; only the headline
// wording depends on the signals.
func QuickWins(sig models.PageSignals) []models.Suggestion {
	ctaHeadline := "Make existing CTAs more prominent"
	if !sig.HasCTA() {
		ctaHeadline = "Add prominent CTA button above fold"
	}

	imageHeadline := "Optimize page resources"
	if sig.NonVectorImageCount > compressImageCount {
		imageHeadline = "Compress images"
	}

	metaHeadline := "Improve meta description"
	if !sig.HasMetaDescription {
		metaHeadline = "Add meta description"
	}

	return []models.Suggestion{
		{
			Headline: ctaHeadline,
			Detail:   "Use bright button with action text like 'Get Started' in top section",
			Impact:   "+20-35% conversions",
		},
		{
			Headline: imageHeadline,
			Detail:   "Use TinyPNG or similar tool to reduce image file sizes",
			Impact:   fmt.Sprintf("-%d%% bounce rate", min(maxBounceEstimate, sig.NonVectorImageCount)),
		},
		{
			Headline: metaHeadline,
			Detail:   "Write compelling 150-char summary for search results",
			Impact:   "+10-20% click-through from Google",
		},
	}
}

func SEONotes(sig models.PageSignals) []models.Suggestion {
	notes := make([]models.Suggestion, 0, MaxSEONotes)

	if !sig.HasMetaDescription {
		notes = append(notes, models.Suggestion{
			Headline: "Missing meta description",
			Detail:   "Add unique 150-character descriptions to each page",
			Impact:   "Your pages won't show compelling snippets in search results",
		})
	}
	if sig.H1Count != 1 {
		notes = append(notes, models.Suggestion{
			Headline: "H1 heading issues",
			Detail:   "Use one H1 for main topic, H2 for sections, H3 for subsections",
			Impact:   fmt.Sprintf("Found %d H1 tags, should be exactly 1", sig.H1Count),
		})
	}
	if sig.H2Count < 2 {
		notes = append(notes, models.Suggestion{
			Headline: "Poor content structure",
			Detail:   "Add H2 headings to break content into scannable sections",
			Impact:   "Not enough section headings for readability",
		})
	}
	return notes
}

// TrustSignals returns the eight checks in fixed order. Missing HTTPS,
// favicon, CTA and meta description fail; the rest only warn.
func TrustSignals(sig models.PageSignals, loadTimeSeconds float64) []models.TrustSignal {
	ctaDetail := "No CTAs found - add clear action buttons"
	if sig.HasCTA() {
		ctaDetail = fmt.Sprintf("Found %d CTAs", sig.CTACount())
	}

	headingSuffix := " - Fix H1 count"
	if sig.H1Count == 1 {
		headingSuffix = " - Good!"
	}

	speedSuffix := " - Too slow, optimize!"
	if loadTimeSeconds < slowIssueSeconds {
		speedSuffix = " - Good!"
	}

	return []models.TrustSignal{
		check(sig.IsHTTPS, models.TrustFail, "SSL Certificate (HTTPS)",
			"Secure connection",
			"Not secure - visitors see warnings! Add SSL certificate."),
		check(sig.HasFavicon, models.TrustFail, "Favicon",
			"Browser tab icon present",
			"Missing - add favicon.ico for brand recognition"),
		check(sig.HasViewport, models.TrustWarn, "Mobile Viewport",
			"Mobile-friendly meta tag found",
			"Missing - add viewport tag for mobile responsiveness"),
		check(sig.HasOpenGraph, models.TrustWarn, "Social Media Tags",
			"Open Graph tags found",
			"Missing - add OG tags for better social sharing"),
		check(sig.HasCTA(), models.TrustFail, "Call-to-Action",
			ctaDetail,
			ctaDetail),
		check(sig.HasMetaDescription, models.TrustFail, "Meta Description",
			"Present",
			"Missing - add for better SEO"),
		check(sig.H1Count == 1, models.TrustWarn, "Heading Structure",
			fmt.Sprintf("%d H1, %d H2%s", sig.H1Count, sig.H2Count, headingSuffix),
			fmt.Sprintf("%d H1, %d H2%s", sig.H1Count, sig.H2Count, headingSuffix)),
		check(loadTimeSeconds < slowIssueSeconds, models.TrustWarn, "Load Speed",
			fmt.Sprintf("%.1fs%s", loadTimeSeconds, speedSuffix),
			fmt.Sprintf("%.1fs%s", loadTimeSeconds, speedSuffix)),
	}
}

func check(ok bool, failStatus models.TrustStatus, title, okDetail, failDetail string) models.TrustSignal {
	if ok {
		return models.TrustSignal{Status: models.TrustOK, Title: title, Detail: okDetail}
	}
	return models.TrustSignal{Status: failStatus, Title: title, Detail: failDetail}
}
