package report

import (
	"fmt"

	"github.com/dtnitsch/site-growth-analyzer/models"
)

// Fixed sub-scores of the degraded report; they sum to FallbackOverall.
const FallbackOverall = 50

var fallbackScores = models.CategoryScores{UX: 12, SEO: 12, Performance: 13, Content: 13}

// ErrorReport is returned in place of a real analysis when fetching or
// parsing fails. It is always well formed.
func ErrorReport(err error) models.Report {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}

	return models.Report{
		Error:             msg,
		OverallScore:      FallbackOverall,
		Scores:            fallbackScores,
		HealthExplanation: fmt.Sprintf("Could not fully analyze website: %s. Showing generic recommendations.", msg),
		LeavingReasons: []models.Finding{{
			Problem: "Analysis failed",
			Why:     "Could not connect to website or parse content",
			Impact:  "Try entering a valid, accessible URL (e.g., https://example.com)",
		}},
		QuickWins:  []models.Suggestion{},
		SEOContent: []models.Suggestion{},
		TrustAnalysis: models.TrustAnalysis{
			Overview:          "Website could not be analyzed",
			Signals:           []models.TrustSignal{},
			ImpactExplanation: "Please enter a valid, accessible website URL.",
		},
		GrowthSuggestions: []models.Suggestion{},
	}
}
