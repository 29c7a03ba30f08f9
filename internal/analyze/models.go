package analyze

import (
	"github.com/dtnitsch/site-growth-analyzer/models"
)

// Result is one analyzed URL.
type Result struct {
	URL       string        `json:"url" yaml:"url"`
	Target    string        `json:"target,omitempty" yaml:"target,omitempty"`
	File      string        `json:"file,omitempty" yaml:"file,omitempty"`
	SaveError string        `json:"save_error,omitempty" yaml:"save_error,omitempty"`
	Report    models.Report `json:"report" yaml:"report"`
}

type Stats struct {
	Total        int     `json:"total" yaml:"total"`
	Succeeded    int     `json:"succeeded" yaml:"succeeded"`
	Failed       int     `json:"failed" yaml:"failed"`
	AverageScore float64 `json:"average_score" yaml:"average_score"`
	MinScore     int     `json:"min_score" yaml:"min_score"`
	DurationMS   int64   `json:"duration_ms" yaml:"duration_ms"`
}

// FinalOutput is printed for batch runs.
type FinalOutput struct {
	Status  string   `json:"status" yaml:"status"`
	Results []Result `json:"results" yaml:"results"`
	Stats   Stats    `json:"stats" yaml:"stats"`
}
