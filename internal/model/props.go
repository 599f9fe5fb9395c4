package model

import (
	"fmt"
	"slices"
)

// Link is a labelled navigation target.
type Link struct {
	Label    string `json:"label"`
	Href     string `json:"href"`
	External bool   `json:"external,omitempty"`
}

// Media references an image or video asset.
type Media struct {
	Kind string `json:"kind"`
	Src  string `json:"src"`
	Alt  string `json:"alt,omitempty"`
}

// Props is the content of one section. The set of implementations is closed:
// each section kind has exactly one props type, returned by NewProps.
type Props interface {
	// Section reports which section kind the props belong to.
	Section() SectionID
	clone() Props
}

// NewProps returns an empty props value of the type registered for id.
func NewProps(id SectionID) (Props, error) {
	switch id {
	case SectionNavbar:
		return &NavbarProps{}, nil
	case SectionHero:
		return &HeroProps{}, nil
	case SectionSocialProof:
		return &SocialProofProps{}, nil
	case SectionFeatures:
		return &FeaturesProps{}, nil
	case SectionFeatureSpotlight:
		return &FeatureSpotlightProps{}, nil
	case SectionTestimonials:
		return &TestimonialsProps{}, nil
	case SectionMetrics:
		return &MetricsProps{}, nil
	case SectionPricing:
		return &PricingProps{}, nil
	case SectionFAQ:
		return &FAQProps{}, nil
	case SectionFinalCTA:
		return &FinalCTAProps{}, nil
	case SectionFooter:
		return &FooterProps{}, nil
	}
	return nil, fmt.Errorf("unknown section id %q", id)
}

type NavbarProps struct {
	Logo  string `json:"logo"`
	Links []Link `json:"links"`
	CTA   *Link  `json:"cta,omitempty"`
}

type HeroProps struct {
	Headline     string `json:"headline"`
	Subheadline  string `json:"subheadline"`
	PrimaryCTA   Link   `json:"primaryCta"`
	SecondaryCTA *Link  `json:"secondaryCta,omitempty"`
	Media        *Media `json:"media,omitempty"`
}

type SocialProofProps struct {
	Title string      `json:"title"`
	Items []LogoEntry `json:"items"`
}

// LogoEntry is one customer or partner shown in a logo strip.
type LogoEntry struct {
	Name string `json:"name"`
	Logo *Media `json:"logo,omitempty"`
}

type FeaturesProps struct {
	Title    string    `json:"title"`
	Subtitle string    `json:"subtitle,omitempty"`
	Items    []Feature `json:"items"`
}

type Feature struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon,omitempty"`
}

type FeatureSpotlightProps struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Items       []string `json:"items"`
	Media       *Media   `json:"media,omitempty"`
	CTA         *Link    `json:"cta,omitempty"`
}

type TestimonialsProps struct {
	Title string        `json:"title"`
	Items []Testimonial `json:"items"`
}

type Testimonial struct {
	Quote  string `json:"quote"`
	Author string `json:"author"`
	Role   string `json:"role,omitempty"`
}

type MetricsProps struct {
	Title string   `json:"title"`
	Items []Metric `json:"items"`
}

type Metric struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type PricingProps struct {
	Title    string        `json:"title"`
	Subtitle string        `json:"subtitle,omitempty"`
	Plans    []PricingPlan `json:"plans"`
}

type PricingPlan struct {
	Name        string   `json:"name"`
	Price       string   `json:"price"`
	Period      string   `json:"period,omitempty"`
	Features    []string `json:"features"`
	CTA         Link     `json:"cta"`
	Highlighted bool     `json:"highlighted,omitempty"`
}

type FAQProps struct {
	Title string    `json:"title"`
	Items []FAQItem `json:"items"`
}

type FAQItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type FinalCTAProps struct {
	Headline    string `json:"headline"`
	Subheadline string `json:"subheadline,omitempty"`
	CTA         Link   `json:"cta"`
}

type FooterProps struct {
	Tagline   string         `json:"tagline,omitempty"`
	Columns   []FooterColumn `json:"columns"`
	Copyright string         `json:"copyright"`
}

type FooterColumn struct {
	Title string `json:"title"`
	Links []Link `json:"links"`
}

func (*NavbarProps) Section() SectionID           { return SectionNavbar }
func (*HeroProps) Section() SectionID             { return SectionHero }
func (*SocialProofProps) Section() SectionID      { return SectionSocialProof }
func (*FeaturesProps) Section() SectionID         { return SectionFeatures }
func (*FeatureSpotlightProps) Section() SectionID { return SectionFeatureSpotlight }
func (*TestimonialsProps) Section() SectionID     { return SectionTestimonials }
func (*MetricsProps) Section() SectionID          { return SectionMetrics }
func (*PricingProps) Section() SectionID          { return SectionPricing }
func (*FAQProps) Section() SectionID              { return SectionFAQ }
func (*FinalCTAProps) Section() SectionID         { return SectionFinalCTA }
func (*FooterProps) Section() SectionID           { return SectionFooter }

func (p *NavbarProps) clone() Props {
	out := *p
	out.Links = slices.Clone(p.Links)
	out.CTA = clonePtr(p.CTA)
	return &out
}

func (p *HeroProps) clone() Props {
	out := *p
	out.SecondaryCTA = clonePtr(p.SecondaryCTA)
	out.Media = clonePtr(p.Media)
	return &out
}

func (p *SocialProofProps) clone() Props {
	out := *p
	out.Items = slices.Clone(p.Items)
	for i := range out.Items {
		out.Items[i].Logo = clonePtr(p.Items[i].Logo)
	}
	return &out
}

func (p *FeaturesProps) clone() Props {
	out := *p
	out.Items = slices.Clone(p.Items)
	return &out
}

func (p *FeatureSpotlightProps) clone() Props {
	out := *p
	out.Items = slices.Clone(p.Items)
	out.Media = clonePtr(p.Media)
	out.CTA = clonePtr(p.CTA)
	return &out
}

func (p *TestimonialsProps) clone() Props {
	out := *p
	out.Items = slices.Clone(p.Items)
	return &out
}

func (p *MetricsProps) clone() Props {
	out := *p
	out.Items = slices.Clone(p.Items)
	return &out
}

func (p *PricingProps) clone() Props {
	out := *p
	out.Plans = slices.Clone(p.Plans)
	for i := range out.Plans {
		out.Plans[i].Features = slices.Clone(p.Plans[i].Features)
	}
	return &out
}

func (p *FAQProps) clone() Props {
	out := *p
	out.Items = slices.Clone(p.Items)
	return &out
}

func (p *FinalCTAProps) clone() Props {
	out := *p
	return &out
}

func (p *FooterProps) clone() Props {
	out := *p
	out.Columns = slices.Clone(p.Columns)
	for i := range out.Columns {
		out.Columns[i].Links = slices.Clone(p.Columns[i].Links)
	}
	return &out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
