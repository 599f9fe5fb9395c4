package model

// ErrorResponse is the JSON shape returned on failure.
type ErrorResponse struct {
	Error      string    `json:"error"`
	StatusCode int       `json:"status_code"`
	Message    string    `json:"message"`
	Section    SectionID `json:"section,omitempty"`
	Field      string    `json:"field,omitempty"`
}

// GenerateResponse is returned by the generate endpoint.
type GenerateResponse struct {
	Source     string      `json:"source"`
	PageConfig *PageConfig `json:"pageConfig"`
	Warnings   []string    `json:"warnings"`
}

// ApplyResponse is returned by the apply endpoint.
type ApplyResponse struct {
	PageConfig *PageConfig `json:"pageConfig"`
	Warnings   []string    `json:"warnings"`
}

// ComposedSection reports which handler a section was bound to.
type ComposedSection struct {
	ID      SectionID `json:"id"`
	Variant int       `json:"variant"`
	Handler string    `json:"handler"`
}

// ComposeResponse is returned by the compose endpoint.
type ComposeResponse struct {
	Sections []ComposedSection `json:"sections"`
}

// CandidatesResponse is returned by the candidates endpoint.
type CandidatesResponse struct {
	Candidates []*PageConfig `json:"candidates"`
}
