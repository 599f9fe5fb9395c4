package synth

import (
	_ "embed"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/Bahjat/page-composer/backend/internal/model"
)

//go:embed catalog.yaml
var embeddedCatalog []byte

const fallbackKey = "*"

var (
	errNoTones      = errors.New("catalog: no tones defined")
	errNoIndustries = errors.New("catalog: no industries defined")
	errPoolTooSmall = errors.New("catalog: content pool too small")
	errUnknownEntry = errors.New("catalog: unknown default")
)

// Catalog holds every keyword table and content pool the synthesizer draws
// from.
type Catalog struct {
	DefaultIndustry string                       `yaml:"default_industry"`
	DefaultTone     model.Tone                   `yaml:"default_tone"`
	Tones           []ToneContent                `yaml:"tones"`
	Industries      []IndustryContent            `yaml:"industries"`
	Taglines        map[string]map[string]string `yaml:"taglines"`
	Pricing         []model.PricingPlan          `yaml:"pricing"`
}

// ToneContent is the copy pool for one tone.
type ToneContent struct {
	Name                model.Tone          `yaml:"name"`
	Keywords            []string            `yaml:"keywords"`
	Headlines           []string            `yaml:"headlines"`
	Subheadlines        []string            `yaml:"subheadlines"`
	CTAs                []string            `yaml:"ctas"`
	SectionTitles       map[string][]string `yaml:"section_titles"`
	ClosingHeadlines    []string            `yaml:"closing_headlines"`
	ClosingSubheadlines []string            `yaml:"closing_subheadlines"`
}

// IndustryContent is the content pool for one industry.
type IndustryContent struct {
	Name         string              `yaml:"name"`
	Keywords     []string            `yaml:"keywords"`
	Audience     string              `yaml:"audience"`
	Logos        []string            `yaml:"logos"`
	Features     []model.Feature     `yaml:"features"`
	Spotlights   []Spotlight         `yaml:"spotlights"`
	Testimonials []model.Testimonial `yaml:"testimonials"`
	Metrics      []model.Metric      `yaml:"metrics"`
	FAQs         []model.FAQItem     `yaml:"faqs"`
}

// Spotlight is one feature-spotlight block.
type Spotlight struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Points      []string `yaml:"points"`
}

// sectionTitleKeys are the section_titles entries every tone must define.
var sectionTitleKeys = []string{"features", "social_proof", "testimonials", "metrics", "pricing", "faq"}

// LoadCatalog decodes and checks a YAML catalog.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	var cat Catalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cat); err != nil {
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}
	if err := cat.validate(); err != nil {
		return nil, err
	}
	return &cat, nil
}

// Minimum pool sizes cover the largest number of entries the synthesizer
// ever draws without repetition.
func (c *Catalog) validate() error {
	if len(c.Tones) == 0 {
		return errNoTones
	}
	if len(c.Industries) == 0 {
		return errNoIndustries
	}
	if c.tone(c.DefaultTone) == nil {
		return fmt.Errorf("%w: tone %q", errUnknownEntry, c.DefaultTone)
	}
	if c.industry(c.DefaultIndustry) == nil {
		return fmt.Errorf("%w: industry %q", errUnknownEntry, c.DefaultIndustry)
	}

	for _, t := range c.Tones {
		if !t.Name.Valid() {
			return fmt.Errorf("catalog: tone %q is not a known tone", t.Name)
		}
		pools := map[string]int{
			"headlines":            len(t.Headlines),
			"subheadlines":         len(t.Subheadlines),
			"ctas":                 len(t.CTAs),
			"closing_headlines":    len(t.ClosingHeadlines),
			"closing_subheadlines": len(t.ClosingSubheadlines),
		}
		for _, key := range sectionTitleKeys {
			pools["section_titles."+key] = len(t.SectionTitles[key])
		}
		for name, n := range pools {
			if n == 0 {
				return fmt.Errorf("%w: tone %s %s is empty", errPoolTooSmall, t.Name, name)
			}
		}
	}

	for _, ind := range c.Industries {
		mins := []struct {
			name string
			got  int
			min  int
		}{
			{"logos", len(ind.Logos), maxLogos},
			{"features", len(ind.Features), maxFeatures},
			{"spotlights", len(ind.Spotlights), 1},
			{"testimonials", len(ind.Testimonials), maxTestimonials},
			{"metrics", len(ind.Metrics), maxMetrics},
			{"faqs", len(ind.FAQs), maxFAQs},
		}
		for _, m := range mins {
			if m.got < m.min {
				return fmt.Errorf("%w: industry %s has %d %s, need %d", errPoolTooSmall, ind.Name, m.got, m.name, m.min)
			}
		}
		for _, s := range ind.Spotlights {
			if len(s.Points) < maxSpotlightPoints {
				return fmt.Errorf("%w: industry %s spotlight %q needs %d points", errPoolTooSmall, ind.Name, s.Title, maxSpotlightPoints)
			}
		}
	}

	if len(c.Pricing) < maxPlans {
		return fmt.Errorf("%w: pricing has %d tiers, need %d", errPoolTooSmall, len(c.Pricing), maxPlans)
	}
	return nil
}

func (c *Catalog) tone(name model.Tone) *ToneContent {
	for i := range c.Tones {
		if c.Tones[i].Name == name {
			return &c.Tones[i]
		}
	}
	return nil
}

func (c *Catalog) industry(name string) *IndustryContent {
	for i := range c.Industries {
		if c.Industries[i].Name == name {
			return &c.Industries[i]
		}
	}
	return nil
}

// tagline resolves (industry, tone), falling back to the industry-wide line,
// then the tone-wide line, then the global line.
func (c *Catalog) tagline(industry string, tone model.Tone) string {
	candidates := [][2]string{
		{industry, string(tone)},
		{industry, fallbackKey},
		{fallbackKey, string(tone)},
		{fallbackKey, fallbackKey},
	}
	for _, k := range candidates {
		if s := c.Taglines[k[0]][k[1]]; s != "" {
			return s
		}
	}
	return ""
}

func (c *Catalog) audience(industry string) string {
	if ind := c.industry(industry); ind != nil && ind.Audience != "" {
		return ind.Audience
	}
	return model.DefaultAudience
}
