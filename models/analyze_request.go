package models

// AnalyzeRequest is the body accepted by the analyze endpoint.
type AnalyzeRequest struct {
	URL  string `json:"url"`
	Goal string `json:"goal,omitempty"`
}

// ErrorResponse is written for transport-level rejections.
type ErrorResponse struct {
	Error string `json:"error"`
}
