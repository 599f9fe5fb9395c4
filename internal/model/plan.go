package model

// Plan is an unvalidated brand and section list, either synthesized locally
// or received from an external collaborator. Props stay as generic trees
// until they have been sanitized and validated.
type Plan struct {
	Brand    *PlanBrand    `json:"brand"`
	Sections []PlanSection `json:"sections"`
}

// PlanBrand carries the brand fields a plan wants to set. Empty fields leave
// the base brand untouched when merged.
type PlanBrand struct {
	Name           string `json:"name"`
	Tagline        string `json:"tagline,omitempty"`
	Industry       string `json:"industry,omitempty"`
	TargetAudience string `json:"targetAudience,omitempty"`
	Tone           string `json:"tone,omitempty"`
}

// PlanSection is a section whose props have not been validated yet.
type PlanSection struct {
	ID      SectionID      `json:"id"`
	Variant int            `json:"variant"`
	Props   map[string]any `json:"props"`
}

// PlanFromConfig converts a typed configuration back into plan form.
func PlanFromConfig(cfg *PageConfig) (*Plan, error) {
	plan := &Plan{
		Brand: &PlanBrand{
			Name:           cfg.Brand.Name,
			Tagline:        cfg.Brand.Tagline,
			Industry:       cfg.Brand.Industry,
			TargetAudience: cfg.Brand.TargetAudience,
			Tone:           string(cfg.Brand.Tone),
		},
		Sections: make([]PlanSection, 0, len(cfg.Sections)),
	}

	for _, s := range cfg.Sections {
		ps := PlanSection{ID: s.ID, Variant: s.Variant}
		if s.Props != nil {
			tree, err := EncodeProps(s.Props)
			if err != nil {
				return nil, err
			}
			ps.Props = tree
		}
		plan.Sections = append(plan.Sections, ps)
	}
	return plan, nil
}
