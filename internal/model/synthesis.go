package model

// SynthesisRequest is what the remote synthesis collaborator receives.
type SynthesisRequest struct {
	Text        string   `json:"text"`
	Creativity  *float64 `json:"creativity,omitempty"`
	Specificity *float64 `json:"specificity,omitempty"`
	KeepTone    bool     `json:"keepTone,omitempty"`
	BrandWords  []string `json:"brandWords,omitempty"`
}

// SynthesisResponse is what the remote synthesis collaborator returns.
// PageConfig is only meaningful when Success is true.
type SynthesisResponse struct {
	Success    bool     `json:"success"`
	PageConfig *Plan    `json:"pageConfig,omitempty"`
	Warnings   []string `json:"warnings,omitempty"`
	Error      string   `json:"error,omitempty"`
}
