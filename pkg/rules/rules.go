// Package rules holds the immutable scoring and suggestion tables shared by
// the parser, scorer, findings and goals packages.
package rules

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/dtnitsch/site-growth-analyzer/models"
	"gopkg.in/yaml.v3"
)

// GoalSuggestionCount is the number of growth suggestions every goal carries.
const GoalSuggestionCount = 3

//go:embed rules.yaml
var embeddedRules []byte

type BaseScores struct {
	UX          int `yaml:"ux"`
	SEO         int `yaml:"seo"`
	Performance int `yaml:"performance"`
	Content     int `yaml:"content"`
}

// Goal is one entry of the goal tailoring table.
type Goal struct {
	Context     string              `yaml:"context"`
	Suggestions []models.Suggestion `yaml:"suggestions"`
}

// Rules must not be modified after Parse returns.
type Rules struct {
	CTAKeywords     []string            `yaml:"cta_keywords"`
	LinkScanLimit   int                 `yaml:"link_scan_limit"`
	BaseScores      BaseScores          `yaml:"base_scores"`
	CategoryCeiling int                 `yaml:"category_ceiling"`
	DefaultGoal     string              `yaml:"default_goal"`
	FallbackGrowth  []models.Suggestion `yaml:"fallback_growth"`
	Goals           map[string]Goal     `yaml:"goals"`
}

var (
	defaultOnce  sync.Once
	defaultRules *Rules
)

// Default returns the embedded rule set. It is decoded once per process.
func Default() *Rules {
	defaultOnce.Do(func() {
		r, err := Parse(embeddedRules)
		if err != nil {
			panic("invalid embedded rules: " + err.Error())
		}
		defaultRules = r
	})
	return defaultRules
}

// Load reads a rules override file.
func Load(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}
	r, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("rules file %s: %w", path, err)
	}
	return r, nil
}

// Parse decodes and validates a YAML rule set.
func Parse(data []byte) (*Rules, error) {
	var r Rules
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to parse rules: %w", err)
	}
	for i, kw := range r.CTAKeywords {
		r.CTAKeywords[i] = strings.ToLower(strings.TrimSpace(kw))
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

func (r *Rules) Validate() error {
	if len(r.CTAKeywords) == 0 {
		return errors.New("cta_keywords must not be empty")
	}
	if slices.Contains(r.CTAKeywords, "") {
		return errors.New("cta_keywords must not contain blank entries")
	}
	if r.LinkScanLimit <= 0 {
		return fmt.Errorf("link_scan_limit must be positive, got %d", r.LinkScanLimit)
	}
	if r.CategoryCeiling <= 0 {
		return fmt.Errorf("category_ceiling must be positive, got %d", r.CategoryCeiling)
	}
	if len(r.FallbackGrowth) != GoalSuggestionCount {
		return fmt.Errorf("fallback_growth must have %d entries, got %d", GoalSuggestionCount, len(r.FallbackGrowth))
	}
	if _, ok := r.Goals[r.DefaultGoal]; !ok {
		return fmt.Errorf("default_goal %q is not defined in goals", r.DefaultGoal)
	}
	for name, g := range r.Goals {
		if len(g.Suggestions) != GoalSuggestionCount {
			return fmt.Errorf("goal %q must have %d suggestions, got %d", name, GoalSuggestionCount, len(g.Suggestions))
		}
	}
	return nil
}

// MatchesCTA reports whether normalized element text contains any
// call-to-action keyword.
func (r *Rules) MatchesCTA(text string) bool {
	for _, kw := range r.CTAKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// ResolveGoal returns the goal entry for name, falling back to the default
// goal for unknown or empty names. The returned suggestions are a copy.
func (r *Rules) ResolveGoal(name string) (string, Goal) {
	key := strings.ToLower(strings.TrimSpace(name))
	g, ok := r.Goals[key]
	if !ok {
		key = r.DefaultGoal
		g = r.Goals[key]
	}
	return key, Goal{
		Context:     g.Context,
		Suggestions: slices.Clone(g.Suggestions),
	}
}

// Fallback returns a copy of the generic growth suggestions.
func (r *Rules) Fallback() []models.Suggestion {
	return slices.Clone(r.FallbackGrowth)
}
