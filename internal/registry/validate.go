package registry

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/Bahjat/page-composer/backend/internal/model"
	"github.com/Bahjat/page-composer/backend/internal/platform/errs"
)

// ValidHref reports whether href is safe to emit as a link target: a
// relative path, a hash anchor, or an absolute http(s) URL with a host.
// Every other scheme, including script-invoking ones, is rejected.
func ValidHref(href string) bool {
	if href == "" || strings.TrimSpace(href) != href {
		return false
	}
	if strings.ContainsFunc(href, func(r rune) bool { return r < 0x20 || r == 0x7f }) {
		return false
	}

	switch {
	case strings.HasPrefix(href, "#"):
		return true
	case strings.HasPrefix(href, "//"):
		// Protocol-relative URLs point at another host.
		return false
	case strings.HasPrefix(href, "/"), strings.HasPrefix(href, "./"), strings.HasPrefix(href, "../"):
		_, err := url.Parse(href)
		return err == nil
	}

	u, err := url.Parse(href)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

var mediaKinds = map[string]bool{"image": true, "video": true}

type checker struct {
	id model.SectionID
}

func (c checker) fail(field, format string, args ...any) error {
	return &errs.AppError{
		Kind:    errs.InvalidProps,
		Section: string(c.id),
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}

func (c checker) text(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return c.fail(field, "must not be empty")
	}
	return nil
}

func (c checker) link(field string, l model.Link) error {
	if strings.TrimSpace(l.Label) == "" {
		return c.fail(field+".label", "must not be empty")
	}
	if !ValidHref(l.Href) {
		return c.fail(field+".href", "must be a relative path, a #anchor or an http(s) URL, got %q", l.Href)
	}
	return nil
}

func (c checker) optionalLink(field string, l *model.Link) error {
	if l == nil {
		return nil
	}
	return c.link(field, *l)
}

func (c checker) media(field string, m *model.Media) error {
	if m == nil {
		return nil
	}
	if !mediaKinds[m.Kind] {
		return c.fail(field+".kind", "must be image or video, got %q", m.Kind)
	}
	if !ValidHref(m.Src) {
		return c.fail(field+".src", "must be a relative path or an http(s) URL, got %q", m.Src)
	}
	return nil
}

func (c checker) count(n int) error {
	b := listBounds[c.id]
	if n < b.Min || n > b.Max {
		return c.fail(b.Field, "must have between %d and %d entries, got %d", b.Min, b.Max, n)
	}
	return nil
}

func (c checker) wrongType() error {
	return c.fail("", "props have the wrong type")
}

func item(field string, i int, sub string) string {
	return fmt.Sprintf("%s[%d].%s", field, i, sub)
}

func checkNavbar(props model.Props) error {
	c := checker{id: model.SectionNavbar}
	p, ok := props.(*model.NavbarProps)
	if !ok || p == nil {
		return c.wrongType()
	}
	if err := c.text("logo", p.Logo); err != nil {
		return err
	}
	if err := c.count(len(p.Links)); err != nil {
		return err
	}
	for i, l := range p.Links {
		if err := c.link(fmt.Sprintf("links[%d]", i), l); err != nil {
			return err
		}
	}
	return c.optionalLink("cta", p.CTA)
}

func checkHero(props model.Props) error {
	c := checker{id: model.SectionHero}
	p, ok := props.(*model.HeroProps)
	if !ok || p == nil {
		return c.wrongType()
	}
	if err := c.text("headline", p.Headline); err != nil {
		return err
	}
	if err := c.text("subheadline", p.Subheadline); err != nil {
		return err
	}
	if err := c.link("primaryCta", p.PrimaryCTA); err != nil {
		return err
	}
	if err := c.optionalLink("secondaryCta", p.SecondaryCTA); err != nil {
		return err
	}
	return c.media("media", p.Media)
}

func checkSocialProof(props model.Props) error {
	c := checker{id: model.SectionSocialProof}
	p, ok := props.(*model.SocialProofProps)
	if !ok || p == nil {
		return c.wrongType()
	}
	if err := c.text("title", p.Title); err != nil {
		return err
	}
	if err := c.count(len(p.Items)); err != nil {
		return err
	}
	for i, it := range p.Items {
		if err := c.text(item("items", i, "name"), it.Name); err != nil {
			return err
		}
		if err := c.media(item("items", i, "logo"), it.Logo); err != nil {
			return err
		}
	}
	return nil
}

func checkFeatures(props model.Props) error {
	c := checker{id: model.SectionFeatures}
	p, ok := props.(*model.FeaturesProps)
	if !ok || p == nil {
		return c.wrongType()
	}
	if err := c.text("title", p.Title); err != nil {
		return err
	}
	if err := c.count(len(p.Items)); err != nil {
		return err
	}
	for i, it := range p.Items {
		if err := c.text(item("items", i, "title"), it.Title); err != nil {
			return err
		}
		if err := c.text(item("items", i, "description"), it.Description); err != nil {
			return err
		}
	}
	return nil
}

func checkFeatureSpotlight(props model.Props) error {
	c := checker{id: model.SectionFeatureSpotlight}
	p, ok := props.(*model.FeatureSpotlightProps)
	if !ok || p == nil {
		return c.wrongType()
	}
	if err := c.text("title", p.Title); err != nil {
		return err
	}
	if err := c.text("description", p.Description); err != nil {
		return err
	}
	if err := c.count(len(p.Items)); err != nil {
		return err
	}
	for i, it := range p.Items {
		if err := c.text(fmt.Sprintf("items[%d]", i), it); err != nil {
			return err
		}
	}
	if err := c.media("media", p.Media); err != nil {
		return err
	}
	return c.optionalLink("cta", p.CTA)
}

func checkTestimonials(props model.Props) error {
	c := checker{id: model.SectionTestimonials}
	p, ok := props.(*model.TestimonialsProps)
	if !ok || p == nil {
		return c.wrongType()
	}
	if err := c.text("title", p.Title); err != nil {
		return err
	}
	if err := c.count(len(p.Items)); err != nil {
		return err
	}
	for i, it := range p.Items {
		if err := c.text(item("items", i, "quote"), it.Quote); err != nil {
			return err
		}
		if err := c.text(item("items", i, "author"), it.Author); err != nil {
			return err
		}
	}
	return nil
}

func checkMetrics(props model.Props) error {
	c := checker{id: model.SectionMetrics}
	p, ok := props.(*model.MetricsProps)
	if !ok || p == nil {
		return c.wrongType()
	}
	if err := c.text("title", p.Title); err != nil {
		return err
	}
	if err := c.count(len(p.Items)); err != nil {
		return err
	}
	for i, it := range p.Items {
		if err := c.text(item("items", i, "value"), it.Value); err != nil {
			return err
		}
		if err := c.text(item("items", i, "label"), it.Label); err != nil {
			return err
		}
	}
	return nil
}

func checkPricing(props model.Props) error {
	c := checker{id: model.SectionPricing}
	p, ok := props.(*model.PricingProps)
	if !ok || p == nil {
		return c.wrongType()
	}
	if err := c.text("title", p.Title); err != nil {
		return err
	}
	if err := c.count(len(p.Plans)); err != nil {
		return err
	}
	for i, plan := range p.Plans {
		if err := c.text(item("plans", i, "name"), plan.Name); err != nil {
			return err
		}
		if err := c.text(item("plans", i, "price"), plan.Price); err != nil {
			return err
		}
		if len(plan.Features) == 0 {
			return c.fail(item("plans", i, "features"), "must list at least one feature")
		}
		if err := c.link(item("plans", i, "cta"), plan.CTA); err != nil {
			return err
		}
	}
	return nil
}

func checkFAQ(props model.Props) error {
	c := checker{id: model.SectionFAQ}
	p, ok := props.(*model.FAQProps)
	if !ok || p == nil {
		return c.wrongType()
	}
	if err := c.text("title", p.Title); err != nil {
		return err
	}
	if err := c.count(len(p.Items)); err != nil {
		return err
	}
	for i, it := range p.Items {
		if err := c.text(item("items", i, "question"), it.Question); err != nil {
			return err
		}
		if err := c.text(item("items", i, "answer"), it.Answer); err != nil {
			return err
		}
	}
	return nil
}

func checkFinalCTA(props model.Props) error {
	c := checker{id: model.SectionFinalCTA}
	p, ok := props.(*model.FinalCTAProps)
	if !ok || p == nil {
		return c.wrongType()
	}
	if err := c.text("headline", p.Headline); err != nil {
		return err
	}
	return c.link("cta", p.CTA)
}

func checkFooter(props model.Props) error {
	c := checker{id: model.SectionFooter}
	p, ok := props.(*model.FooterProps)
	if !ok || p == nil {
		return c.wrongType()
	}
	if err := c.text("copyright", p.Copyright); err != nil {
		return err
	}
	if err := c.count(len(p.Columns)); err != nil {
		return err
	}
	for i, col := range p.Columns {
		if err := c.text(item("columns", i, "title"), col.Title); err != nil {
			return err
		}
		if len(col.Links) == 0 {
			return c.fail(item("columns", i, "links"), "must have at least one link")
		}
		for j, l := range col.Links {
			if err := c.link(fmt.Sprintf("columns[%d].links[%d]", i, j), l); err != nil {
				return err
			}
		}
	}
	return nil
}
