package model

import "slices"

// SectionID names one of the fixed section kinds a page is built from.
type SectionID string

const (
	SectionNavbar           SectionID = "navbar"
	SectionHero             SectionID = "hero"
	SectionSocialProof      SectionID = "socialProof"
	SectionFeatures         SectionID = "features"
	SectionFeatureSpotlight SectionID = "featureSpotlight"
	SectionTestimonials     SectionID = "testimonials"
	SectionMetrics          SectionID = "metrics"
	SectionPricing          SectionID = "pricing"
	SectionFAQ              SectionID = "faq"
	SectionFinalCTA         SectionID = "finalCta"
	SectionFooter           SectionID = "footer"
)

var requiredSections = [...]SectionID{
	SectionNavbar,
	SectionHero,
	SectionSocialProof,
	SectionFeatures,
	SectionFeatureSpotlight,
	SectionTestimonials,
	SectionMetrics,
	SectionPricing,
	SectionFAQ,
	SectionFinalCTA,
	SectionFooter,
}

// RequiredSections returns every section a complete page carries, in
// canonical order. The returned slice is a fresh copy.
func RequiredSections() []SectionID {
	return slices.Clone(requiredSections[:])
}

// Valid reports whether id is one of the required sections.
func (id SectionID) Valid() bool {
	return slices.Contains(requiredSections[:], id)
}

// Tone is the voice a page is written in.
type Tone string

const (
	ToneCorporate Tone = "corporate"
	ToneFriendly  Tone = "friendly"
	ToneLuxury    Tone = "luxury"
	TonePlayful   Tone = "playful"
	ToneBold      Tone = "bold"
)

// Tones lists every tone in declaration order.
func Tones() []Tone {
	return []Tone{ToneCorporate, ToneFriendly, ToneLuxury, TonePlayful, ToneBold}
}

// Valid reports whether t is a known tone.
func (t Tone) Valid() bool {
	return slices.Contains(Tones(), t)
}

// DefaultIndustry is used when no industry keyword matches.
const DefaultIndustry = "business"

// DefaultAudience is used when an industry has no dedicated audience.
const DefaultAudience = "teams and individuals looking for a better way to work"

// PlaceholderBrandName is used when no brand name can be extracted.
const PlaceholderBrandName = "Your Brand"

// BrandInfo describes the business a page is about.
type BrandInfo struct {
	Name           string `json:"name"`
	Tagline        string `json:"tagline,omitempty"`
	Industry       string `json:"industry"`
	TargetAudience string `json:"targetAudience"`
	Tone           Tone   `json:"tone"`
}

// DefaultBrand returns the brand used when neither a plan nor a base
// configuration supplies one.
func DefaultBrand() BrandInfo {
	return BrandInfo{
		Name:           PlaceholderBrandName,
		Industry:       DefaultIndustry,
		TargetAudience: DefaultAudience,
		Tone:           ToneCorporate,
	}
}

// Section binds a section kind to a presentation variant and its content.
type Section struct {
	ID      SectionID `json:"id"`
	Variant int       `json:"variant"`
	Props   Props     `json:"props"`
}

// Clone returns a deep copy of s.
func (s Section) Clone() Section {
	if s.Props != nil {
		s.Props = s.Props.clone()
	}
	return s
}

// PageConfig is a brand plus its ordered sections.
type PageConfig struct {
	Brand    BrandInfo `json:"brand"`
	Sections []Section `json:"sections"`
}

// Clone returns a deep copy of c that shares no mutable state with it.
func (c *PageConfig) Clone() *PageConfig {
	out := &PageConfig{Brand: c.Brand}
	if c.Sections != nil {
		out.Sections = make([]Section, len(c.Sections))
		for i, s := range c.Sections {
			out.Sections[i] = s.Clone()
		}
	}
	return out
}

// Section returns the first section with the given id.
func (c *PageConfig) Section(id SectionID) (Section, bool) {
	for _, s := range c.Sections {
		if s.ID == id {
			return s, true
		}
	}
	return Section{}, false
}
