// Package report assembles scores and findings into the final report and
// builds the degraded report used when a page cannot be analyzed.
package report

import (
	"fmt"

	"github.com/dtnitsch/site-growth-analyzer/models"
	"github.com/dtnitsch/site-growth-analyzer/pkg/findings"
	"github.com/dtnitsch/site-growth-analyzer/pkg/rules"
	"github.com/dtnitsch/site-growth-analyzer/pkg/scorer"
)

const (
	maxTitleRunes      = 50
	goodFoundationOver = 65
	speedFocusOver     = 3.0
	missingTitle       = "No title"

	impactExplanation = "Each missing element creates visitor doubt and reduces conversions."
)

type Assembler struct {
	rules *rules.Rules
}

func New(r *rules.Rules) *Assembler {
	return &Assembler{rules: r}
}

// Assemble combines the pipeline outputs. Growth suggestions are the
// generic fallback set until a goal is applied.
func (a *Assembler) Assemble(sig models.PageSignals, scores models.CategoryScores, f findings.Findings, hostname string) models.Report {
	overall := scorer.Overall(scores)

	return models.Report{
		OverallScore:      overall,
		Scores:            scores,
		HealthExplanation: healthExplanation(sig, overall),
		LeavingReasons:    f.Issues,
		QuickWins:         f.QuickWins,
		SEOContent:        f.SEONotes,
		TrustAnalysis: models.TrustAnalysis{
			Overview:          trustOverview(sig, hostname),
			Signals:           f.TrustSignals,
			ImpactExplanation: impactExplanation,
		},
		GrowthSuggestions: a.rules.Fallback(),
	}
}

func healthExplanation(sig models.PageSignals, overall int) string {
	verdict := "Needs improvement"
	if overall > goodFoundationOver {
		verdict = "Good foundation"
	}
	focus := "clarity"
	if sig.LoadTimeSeconds > speedFocusOver {
		focus = "speed"
	}
	return fmt.Sprintf("Your site '%s' loads in %.1fs with %d CTAs found. %s - focus on %s to boost conversions.",
		truncate(sig.TitleOr(missingTitle), maxTitleRunes), sig.LoadTimeSeconds, sig.CTACount(), verdict, focus)
}

func trustOverview(sig models.PageSignals, hostname string) string {
	meta := "no meta description"
	if sig.HasMetaDescription {
		meta = "meta description"
	}
	return fmt.Sprintf("Analyzed %s - found %d CTAs, load time %.1fs, %s.",
		hostname, sig.CTACount(), sig.LoadTimeSeconds, meta)
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
