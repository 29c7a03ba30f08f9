package models

// PageSignals is the flat set of facts extracted from one fetched page.
// Absent elements map to zero values, never to an error state.
type PageSignals struct {
	Title    string `json:"title,omitempty" yaml:"title,omitempty"`
	HasTitle bool   `json:"has_title" yaml:"has_title"`

	H1Count int `json:"h1_count" yaml:"h1_count"`
	H2Count int `json:"h2_count" yaml:"h2_count"`

	HasMetaDescription bool `json:"has_meta_description" yaml:"has_meta_description"`
	HasFavicon         bool `json:"has_favicon" yaml:"has_favicon"`
	HasViewport        bool `json:"has_viewport" yaml:"has_viewport"`
	HasOpenGraph       bool `json:"has_open_graph" yaml:"has_open_graph"`
	IsHTTPS            bool `json:"is_https" yaml:"is_https"`

	// CTAMatches holds the normalized text of every matching button or
	// link, in document order. Duplicates are kept.
	CTAMatches []string `json:"cta_matches" yaml:"cta_matches"`

	NonVectorImageCount int     `json:"non_vector_image_count" yaml:"non_vector_image_count"`
	VisibleTextLength   int     `json:"visible_text_length" yaml:"visible_text_length"`
	LoadTimeSeconds     float64 `json:"load_time_seconds" yaml:"load_time_seconds"`
	Hostname            string  `json:"hostname" yaml:"hostname"`
}

// CTACount returns the number of call-to-action matches.
func (s PageSignals) CTACount() int {
	return len(s.CTAMatches)
}

// HasCTA reports whether at least one call-to-action was found.
func (s PageSignals) HasCTA() bool {
	return len(s.CTAMatches) > 0
}

// TitleOr returns the page title, or fallback when the page has none.
func (s PageSignals) TitleOr(fallback string) string {
	if !s.HasTitle {
		return fallback
	}
	return s.Title
}
