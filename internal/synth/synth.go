// Package synth turns free text into a complete page configuration without
// calling out to anything. The same text always produces the same brand,
// the same variants and the same content, element for element.
package synth

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/Bahjat/page-composer/backend/internal/model"
	"github.com/Bahjat/page-composer/backend/internal/registry"
	"github.com/Bahjat/page-composer/backend/internal/seed"
)

// Draw ranges. Every range stays inside the registry's list bounds.
const (
	minNavLinks, maxNavLinks           = 3, 4
	minLogos, maxLogos                 = 4, 6
	minFeatures, maxFeatures           = 3, 6
	maxSpotlightPoints                 = 3
	minTestimonials, maxTestimonials   = 2, 4
	minMetrics, maxMetrics             = 3, 4
	minPlans, maxPlans                 = 2, 3
	minFAQs, maxFAQs                   = 4, 6
	minFooterColumns, maxFooterColumns = 2, 3
)

var navLinks = []model.Link{
	{Label: "Features", Href: "#features"},
	{Label: "Pricing", Href: "#pricing"},
	{Label: "Testimonials", Href: "#testimonials"},
	{Label: "FAQ", Href: "#faq"},
}

var footerColumns = []model.FooterColumn{
	{Title: "Product", Links: []model.Link{{Label: "Features", Href: "#features"}, {Label: "Pricing", Href: "#pricing"}}},
	{Title: "Company", Links: []model.Link{{Label: "About", Href: "/about"}, {Label: "Contact", Href: "/contact"}}},
	{Title: "Legal", Links: []model.Link{{Label: "Privacy", Href: "/privacy"}, {Label: "Terms", Href: "/terms"}}},
}

// Synthesizer builds page configurations from a content catalog. It holds
// no per-call state and is safe for concurrent use.
type Synthesizer struct {
	catalog *Catalog
}

// New returns a Synthesizer backed by cat.
func New(cat *Catalog) *Synthesizer {
	return &Synthesizer{catalog: cat}
}

var embedded = sync.OnceValues(func() (*Catalog, error) {
	return LoadCatalog(bytes.NewReader(embeddedCatalog))
})

// Default returns a Synthesizer backed by the embedded catalog. It panics if
// the embedded catalog is invalid, which is a build defect.
func Default() *Synthesizer {
	cat, err := embedded()
	if err != nil {
		panic(fmt.Sprintf("synth: embedded catalog: %v", err))
	}
	return New(cat)
}

// Synthesize derives a brand and all required sections from text. It never
// fails: empty or hostile text degrades to defaults.
func (s *Synthesizer) Synthesize(text string) *model.PageConfig {
	g := seed.NewGenerator(int64(seed.FromText(text)))
	toks := tokens(text)

	industry := s.classifyIndustry(toks)
	tone := s.classifyTone(toks)
	brand := model.BrandInfo{
		Name:           BrandName(text),
		Tagline:        s.catalog.tagline(industry, tone),
		Industry:       industry,
		TargetAudience: s.catalog.audience(industry),
		Tone:           tone,
	}

	d := &draw{
		g:        g,
		brand:    brand,
		tone:     s.catalog.tone(tone),
		industry: s.catalog.industry(industry),
		pricing:  s.catalog.Pricing,
	}
	if d.tone == nil {
		d.tone = s.catalog.tone(s.catalog.DefaultTone)
	}
	if d.industry == nil {
		d.industry = s.catalog.industry(s.catalog.DefaultIndustry)
	}

	cfg := &model.PageConfig{Brand: brand}
	for _, id := range model.RequiredSections() {
		variant := g.Int(registry.VariantCount(id)) + 1
		cfg.Sections = append(cfg.Sections, model.Section{
			ID:      id,
			Variant: variant,
			Props:   d.props(id),
		})
	}
	return cfg
}

// draw carries the generator and resolved pools through one synthesis.
type draw struct {
	g        *seed.Generator
	brand    model.BrandInfo
	tone     *ToneContent
	industry *IndustryContent
	pricing  []model.PricingPlan
}

func (d *draw) fill(s string) string {
	return strings.NewReplacer(
		"{brand}", d.brand.Name,
		"{audience}", d.brand.TargetAudience,
		"{industry}", d.brand.Industry,
	).Replace(s)
}

func (d *draw) pick(pool []string) string {
	return d.fill(seed.Choice(d.g, pool))
}

func (d *draw) count(lo, hi int) int {
	return lo + d.g.Int(hi-lo+1)
}

func (d *draw) title(key string) string {
	return d.pick(d.tone.SectionTitles[key])
}

// sample shuffles a copy of pool and keeps the first n entries.
func sample[T any](d *draw, pool []T, n int) []T {
	out := slices.Clone(pool)
	seed.Shuffle(d.g, out)
	return out[:min(n, len(out))]
}

func (d *draw) props(id model.SectionID) model.Props {
	switch id {
	case model.SectionNavbar:
		links := slices.Clone(navLinks[:d.count(minNavLinks, maxNavLinks)])
		return &model.NavbarProps{
			Logo:  d.brand.Name,
			Links: links,
			CTA:   &model.Link{Label: d.pick(d.tone.CTAs), Href: "#pricing"},
		}

	case model.SectionHero:
		return &model.HeroProps{
			Headline:     d.pick(d.tone.Headlines),
			Subheadline:  d.pick(d.tone.Subheadlines),
			PrimaryCTA:   model.Link{Label: d.pick(d.tone.CTAs), Href: "#pricing"},
			SecondaryCTA: &model.Link{Label: "Learn more", Href: "#features"},
			Media: &model.Media{
				Kind: "image",
				Src:  "/images/" + d.industry.Name + "-hero.jpg",
				Alt:  d.brand.Name,
			},
		}

	case model.SectionSocialProof:
		names := sample(d, d.industry.Logos, d.count(minLogos, maxLogos))
		items := make([]model.LogoEntry, len(names))
		for i, n := range names {
			items[i] = model.LogoEntry{Name: n}
		}
		return &model.SocialProofProps{Title: d.title("social_proof"), Items: items}

	case model.SectionFeatures:
		return &model.FeaturesProps{
			Title:    d.title("features"),
			Subtitle: d.brand.Tagline,
			Items:    sample(d, d.industry.Features, d.count(minFeatures, maxFeatures)),
		}

	case model.SectionFeatureSpotlight:
		sp := seed.Choice(d.g, d.industry.Spotlights)
		return &model.FeatureSpotlightProps{
			Title:       sp.Title,
			Description: sp.Description,
			Items:       sample(d, sp.Points, maxSpotlightPoints),
			CTA:         &model.Link{Label: d.pick(d.tone.CTAs), Href: "#pricing"},
		}

	case model.SectionTestimonials:
		return &model.TestimonialsProps{
			Title: d.title("testimonials"),
			Items: sample(d, d.industry.Testimonials, d.count(minTestimonials, maxTestimonials)),
		}

	case model.SectionMetrics:
		return &model.MetricsProps{
			Title: d.title("metrics"),
			Items: sample(d, d.industry.Metrics, d.count(minMetrics, maxMetrics)),
		}

	case model.SectionPricing:
		n := d.count(minPlans, maxPlans)
		plans := make([]model.PricingPlan, n)
		for i, tier := range d.pricing[:n] {
			tier.Features = slices.Clone(tier.Features)
			tier.CTA = model.Link{Label: "Choose " + tier.Name, Href: "#signup"}
			tier.Highlighted = i == n/2
			plans[i] = tier
		}
		return &model.PricingProps{Title: d.title("pricing"), Plans: plans}

	case model.SectionFAQ:
		return &model.FAQProps{
			Title: d.title("faq"),
			Items: sample(d, d.industry.FAQs, d.count(minFAQs, maxFAQs)),
		}

	case model.SectionFinalCTA:
		return &model.FinalCTAProps{
			Headline:    d.pick(d.tone.ClosingHeadlines),
			Subheadline: d.pick(d.tone.ClosingSubheadlines),
			CTA:         model.Link{Label: d.pick(d.tone.CTAs), Href: "#pricing"},
		}

	case model.SectionFooter:
		cols := footerColumns[:d.count(minFooterColumns, maxFooterColumns)]
		out := make([]model.FooterColumn, len(cols))
		for i, c := range cols {
			out[i] = model.FooterColumn{Title: c.Title, Links: slices.Clone(c.Links)}
		}
		return &model.FooterProps{
			Tagline:   d.brand.Tagline,
			Columns:   out,
			Copyright: "© " + d.brand.Name + ". All rights reserved.",
		}
	}
	return registry.DefaultProps(id)
}
