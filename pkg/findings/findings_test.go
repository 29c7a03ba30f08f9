package findings

import (
	"strings"
	"testing"

	"github.com/dtnitsch/site-growth-analyzer/models"
)

func problems(issues []models.Finding) []string {
	out := make([]string, len(issues))
	for i, f := range issues {
		out[i] = f.Problem
	}
	return out
}

func TestIssues(t *testing.T) {
	tests := []struct {
		name    string
		signals models.PageSignals
		load    float64
		want    []string
	}{
		{
			name:    "healthy page gets only the generic finding",
			signals: models.PageSignals{H1Count: 1, HasMetaDescription: true, CTAMatches: []string{"buy"}},
			load:    1.0,
			want:    []string{"Generic homepage message"},
		},
		{
			name:    "one real issue plus generic",
			signals: models.PageSignals{H1Count: 1, HasMetaDescription: true},
			load:    1.0,
			want:    []string{"No clear call-to-action found", "Generic homepage message"},
		},
		{
			name:    "two real issues plus generic",
			signals: models.PageSignals{H1Count: 2, HasMetaDescription: true},
			load:    1.0,
			want:    []string{"No clear call-to-action found", "2 H1 headings (should be 1)", "Generic homepage message"},
		},
		{
			name:    "everything wrong is truncated in priority order",
			signals: models.PageSignals{},
			load:    6.0,
			want:    []string{"No clear call-to-action found", "Slow load time (6.0s)", "Missing meta description"},
		},
		{
			name:    "three real issues leave no room for filler",
			signals: models.PageSignals{CTAMatches: []string{"shop"}},
			load:    4.0,
			want:    []string{"Slow load time (4.0s)", "Missing meta description", "No H1 heading found"},
		},
		{
			name:    "exactly 3s is not slow",
			signals: models.PageSignals{H1Count: 1, HasMetaDescription: true, CTAMatches: []string{"buy"}},
			load:    3.0,
			want:    []string{"Generic homepage message"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := problems(Issues(tt.signals, tt.load))
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("Issues() = %q, want %q", got, tt.want)
			}
			if len(got) > MaxIssues {
				t.Errorf("Issues() returned %d entries, want at most %d", len(got), MaxIssues)
			}
		})
	}
}

func TestSlowLoadImpactEmbedsPenalty(t *testing.T) {
	issues := Issues(models.PageSignals{CTAMatches: []string{"buy"}, HasMetaDescription: true, H1Count: 1}, 6.0)
	if !strings.Contains(issues[0].Impact, "~35%") {
		t.Errorf("slow load impact = %q, want it to contain ~35%%", issues[0].Impact)
	}
}

func TestVisitorLossPercent(t *testing.T) {
	tests := []struct {
		load float64
		want int
	}{
		{3.01, 14},
		{4.0, 21},
		{6.0, 35},
		{10.0, 63},
		{1e12, 2147483647},
	}

	for _, tt := range tests {
		if got := VisitorLossPercent(tt.load); got != tt.want {
			t.Errorf("VisitorLossPercent(%v) = %d, want %d", tt.load, got, tt.want)
		}
	}
}

func TestQuickWins(t *testing.T) {
	tests := []struct {
		name         string
		signals      models.PageSignals
		wantHeadline []string
		wantBounce   string
	}{
		{
			name:         "deficient page",
			signals:      models.PageSignals{NonVectorImageCount: 12},
			wantHeadline: []string{"Add prominent CTA button above fold", "Compress images", "Add meta description"},
			wantBounce:   "-12% bounce rate",
		},
		{
			name:         "healthy page",
			signals:      models.PageSignals{CTAMatches: []string{"buy"}, HasMetaDescription: true, NonVectorImageCount: 3},
			wantHeadline: []string{"Make existing CTAs more prominent", "Optimize page resources", "Improve meta description"},
			wantBounce:   "-3% bounce rate",
		},
		{
			name:         "bounce estimate is capped",
			signals:      models.PageSignals{NonVectorImageCount: 80},
			wantHeadline: []string{"Add prominent CTA button above fold", "Compress images", "Add meta description"},
			wantBounce:   "-15% bounce rate",
		},
		{
			name:         "exactly ten images does not trigger compression",
			signals:      models.PageSignals{NonVectorImageCount: 10},
			wantHeadline: []string{"Add prominent CTA button above fold", "Optimize page resources", "Add meta description"},
			wantBounce:   "-10% bounce rate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := QuickWins(tt.signals)
			if len(got) != QuickWinCount {
				t.Fatalf("QuickWins() returned %d entries, want %d", len(got), QuickWinCount)
			}
			for i, want := range tt.wantHeadline {
				if got[i].Headline != want {
					t.Errorf("QuickWins()[%d].Headline = %q, want %q", i, got[i].Headline, want)
				}
			}
			if got[1].Impact != tt.wantBounce {
				t.Errorf("bounce impact = %q, want %q", got[1].Impact, tt.wantBounce)
			}
		})
	}
}

func TestSEONotes(t *testing.T) {
	tests := []struct {
		name    string
		signals models.PageSignals
		want    []string
	}{
		{
			name:    "well structured",
			signals: models.PageSignals{HasMetaDescription: true, H1Count: 1, H2Count: 2},
			want:    []string{},
		},
		{
			name:    "all notes",
			signals: models.PageSignals{H1Count: 0, H2Count: 1},
			want:    []string{"Missing meta description", "H1 heading issues", "Poor content structure"},
		},
		{
			name:    "too many h1",
			signals: models.PageSignals{HasMetaDescription: true, H1Count: 3, H2Count: 4},
			want:    []string{"H1 heading issues"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notes := SEONotes(tt.signals)
			if notes == nil {
				t.Fatal("SEONotes() = nil, want non-nil slice")
			}
			got := make([]string, len(notes))
			for i, n := range notes {
				got[i] = n.Headline
			}
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("SEONotes() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTrustSignalsOrderAndSeverity(t *testing.T) {
	wantTitles := []string{
		"SSL Certificate (HTTPS)",
		"Favicon",
		"Mobile Viewport",
		"Social Media Tags",
		"Call-to-Action",
		"Meta Description",
		"Heading Structure",
		"Load Speed",
	}

	t.Run("all negative", func(t *testing.T) {
		got := TrustSignals(models.PageSignals{H1Count: 2, H2Count: 1}, 4.2)
		if len(got) != TrustCheckSize {
			t.Fatalf("TrustSignals() returned %d entries, want %d", len(got), TrustCheckSize)
		}
		wantStatus := []models.TrustStatus{
			models.TrustFail, models.TrustFail, models.TrustWarn, models.TrustWarn,
			models.TrustFail, models.TrustFail, models.TrustWarn, models.TrustWarn,
		}
		for i := range got {
			if got[i].Title != wantTitles[i] {
				t.Errorf("signal %d title = %q, want %q", i, got[i].Title, wantTitles[i])
			}
			if got[i].Status != wantStatus[i] {
				t.Errorf("signal %q status = %q, want %q", got[i].Title, got[i].Status, wantStatus[i])
			}
		}
		if got[6].Detail != "2 H1, 1 H2 - Fix H1 count" {
			t.Errorf("heading detail = %q", got[6].Detail)
		}
		if got[7].Detail != "4.2s - Too slow, optimize!" {
			t.Errorf("speed detail = %q", got[7].Detail)
		}
	})

	t.Run("all positive", func(t *testing.T) {
		sig := models.PageSignals{
			IsHTTPS:            true,
			HasFavicon:         true,
			HasViewport:        true,
			HasOpenGraph:       true,
			CTAMatches:         []string{"buy", "shop"},
			HasMetaDescription: true,
			H1Count:            1,
			H2Count:            3,
		}
		got := TrustSignals(sig, 1.24)
		for i := range got {
			if got[i].Title != wantTitles[i] {
				t.Errorf("signal %d title = %q, want %q", i, got[i].Title, wantTitles[i])
			}
			if got[i].Status != models.TrustOK {
				t.Errorf("signal %q status = %q, want ok", got[i].Title, got[i].Status)
			}
		}
		if got[4].Detail != "Found 2 CTAs" {
			t.Errorf("cta detail = %q", got[4].Detail)
		}
		if got[6].Detail != "1 H1, 3 H2 - Good!" {
			t.Errorf("heading detail = %q", got[6].Detail)
		}
		if got[7].Detail != "1.2s - Good!" {
			t.Errorf("speed detail = %q", got[7].Detail)
		}
	})

	t.Run("exactly 3s warns", func(t *testing.T) {
		got := TrustSignals(models.PageSignals{}, 3.0)
		if got[7].Status != models.TrustWarn {
			t.Errorf("load speed status = %q, want warn", got[7].Status)
		}
	})
}

func TestGenerateIsDeterministic(t *testing.T) {
	sig := models.PageSignals{H1Count: 3, NonVectorImageCount: 11, CTAMatches: []string{"contact"}}
	first := Generate(sig, models.CategoryScores{}, 3.5)
	second := Generate(sig, models.CategoryScores{}, 3.5)

	if strings.Join(problems(first.Issues), "|") != strings.Join(problems(second.Issues), "|") {
		t.Error("Generate() issues differ between calls")
	}
	if len(first.QuickWins) != QuickWinCount || len(first.TrustSignals) != TrustCheckSize {
		t.Errorf("Generate() sizes = (%d, %d)", len(first.QuickWins), len(first.TrustSignals))
	}
	if len(first.SEONotes) > MaxSEONotes {
		t.Errorf("Generate() SEO notes = %d, want at most %d", len(first.SEONotes), MaxSEONotes)
	}
	for i := range first.TrustSignals {
		if first.TrustSignals[i] != second.TrustSignals[i] {
			t.Errorf("trust signal %d differs: %+v vs %+v", i, first.TrustSignals[i], second.TrustSignals[i])
		}
	}
}
