// Package scorer maps page signals to the four category scores.
package scorer

import (
	"github.com/dtnitsch/site-growth-analyzer/models"
	"github.com/dtnitsch/site-growth-analyzer/pkg/rules"
)

const (
	MaxOverall = 100

	fastLoadSeconds   = 2.0
	slowLoadSeconds   = 5.0
	heavyImageCount   = 20
	richContentLength = 1000
)

type Scorer struct {
	rules *rules.Rules
}

func New(r *rules.Rules) *Scorer {
	return &Scorer{rules: r}
}

// Score computes the category scores. Each category is capped at the
// ceiling but has no floor.
func (s *Scorer) Score(sig models.PageSignals) models.CategoryScores {
	base := s.rules.BaseScores
	return models.CategoryScores{
		UX:          s.capped(base.UX + uxAdjustment(sig)),
		SEO:         s.capped(base.SEO + seoAdjustment(sig)),
		Performance: s.capped(base.Performance + performanceAdjustment(sig)),
		Content:     s.capped(base.Content + contentAdjustment(sig)),
	}
}

// Overall clamps the category sum to [0, MaxOverall].
func Overall(c models.CategoryScores) int {
	return min(max(c.Sum(), 0), MaxOverall)
}

func (s *Scorer) capped(v int) int {
	return min(v, s.rules.CategoryCeiling)
}

func uxAdjustment(sig models.PageSignals) int {
	adj := 0
	if sig.HasCTA() {
		adj += 5
	}
	if sig.H1Count == 1 {
		adj += 3
	}
	if sig.H1Count > 1 {
		adj -= 2
	}
	return adj
}

func seoAdjustment(sig models.PageSignals) int {
	adj := 0
	if sig.HasMetaDescription {
		adj += 5
	}
	if sig.H1Count >= 1 {
		adj += 4
	}
	if sig.H2Count >= 2 {
		adj += 2
	}
	if sig.HasFavicon {
		adj += 2
	}
	if sig.HasViewport {
		adj++
	}
	if sig.HasOpenGraph {
		adj++
	}
	return adj
}

// performanceAdjustment leaves load times in [2s, 5s] unadjusted.
func performanceAdjustment(sig models.PageSignals) int {
	adj := 0
	switch {
	case sig.LoadTimeSeconds < fastLoadSeconds:
		adj += 5
	case sig.LoadTimeSeconds > slowLoadSeconds:
		adj -= 10
	}
	if sig.NonVectorImageCount > heavyImageCount {
		adj -= 5
	}
	return adj
}

func contentAdjustment(sig models.PageSignals) int {
	adj := 0
	if sig.VisibleTextLength > richContentLength {
		adj += 5
	}
	if sig.HasTitle {
		adj += 3
	}
	return adj
}
