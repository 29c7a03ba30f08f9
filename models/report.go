package models

// CategoryScores holds the four bounded sub-scores.
type CategoryScores struct {
	UX          int `json:"ux" yaml:"ux"`
	SEO         int `json:"seo" yaml:"seo"`
	Performance int `json:"performance" yaml:"performance"`
	Content     int `json:"content" yaml:"content"`
}

// Sum adds the four categories without clamping.
func (c CategoryScores) Sum() int {
	return c.UX + c.SEO + c.Performance + c.Content
}

// Finding describes one reason a visitor may leave the page.
type Finding struct {
	Problem string `json:"problem" yaml:"problem"`
	Why     string `json:"why" yaml:"why"`
	Impact  string `json:"impact" yaml:"impact"`
}

// Suggestion is the shared shape of quick wins, SEO notes and growth
// suggestions.
type Suggestion struct {
	Headline string `json:"headline" yaml:"headline"`
	Detail   string `json:"detail" yaml:"detail"`
	Impact   string `json:"impact" yaml:"impact"`
}

// TrustStatus is the severity of a single trust check.
type TrustStatus string

const (
	TrustOK   TrustStatus = "ok"
	TrustWarn TrustStatus = "warn"
	TrustFail TrustStatus = "fail"
)

// TrustSignal is one row of the trust analysis.
type TrustSignal struct {
	Status TrustStatus `json:"status" yaml:"status"`
	Title  string      `json:"title" yaml:"title"`
	Detail string      `json:"detail" yaml:"detail"`
}

type TrustAnalysis struct {
	Overview          string        `json:"overview" yaml:"overview"`
	Signals           []TrustSignal `json:"signals" yaml:"signals"`
	ImpactExplanation string        `json:"impactExplanation" yaml:"impactExplanation"`
}

// Report is the full analysis returned to the caller.
type Report struct {
	Error string `json:"error,omitempty" yaml:"error,omitempty"`

	OverallScore      int            `json:"overallScore" yaml:"overallScore"`
	Scores            CategoryScores `json:"scores" yaml:"scores"`
	HealthExplanation string         `json:"healthExplanation" yaml:"healthExplanation"`

	LeavingReasons    []Finding     `json:"leavingReasons" yaml:"leavingReasons"`
	QuickWins         []Suggestion  `json:"quickWins" yaml:"quickWins"`
	SEOContent        []Suggestion  `json:"seoContent" yaml:"seoContent"`
	TrustAnalysis     TrustAnalysis `json:"trustAnalysis" yaml:"trustAnalysis"`
	GrowthSuggestions []Suggestion  `json:"growthSuggestions" yaml:"growthSuggestions"`

	Goal        string `json:"goal,omitempty" yaml:"goal,omitempty"`
	GoalContext string `json:"goalContext,omitempty" yaml:"goalContext,omitempty"`
}

// Failed reports whether the report is the degraded fallback.
func (r Report) Failed() bool {
	return r.Error != ""
}
