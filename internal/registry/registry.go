// Package registry is the static catalog of section kinds: how many
// presentation variants each offers, what its content must look like, and
// which style each variant belongs to. The catalog is built once at package
// initialization and exposes queries only.
package registry

import (
	"slices"

	"github.com/Bahjat/page-composer/backend/internal/model"
	"github.com/Bahjat/page-composer/backend/internal/platform/errs"
)

// StyleTag groups variants that share a visual treatment.
type StyleTag string

const (
	StyleMinimal StyleTag = "minimal"
	StyleBold    StyleTag = "bold"
	StyleElegant StyleTag = "elegant"
	StylePlayful StyleTag = "playful"
)

// StyleTags lists every style tag in variant order.
func StyleTags() []StyleTag {
	return []StyleTag{StyleMinimal, StyleBold, StyleElegant, StylePlayful}
}

// VariantMeta tags a 1-based variant index with its style.
type VariantMeta struct {
	Index int      `json:"index"`
	Style StyleTag `json:"style"`
}

// Bounds limits the length of a section's list field.
type Bounds struct {
	Field string
	Min   int
	Max   int
}

type entry struct {
	variants []VariantMeta
	check    func(model.Props) error
	defaults func() model.Props
}

// variantsPerSection is uniform across all section kinds.
const variantsPerSection = 4

// listBounds is the single source of truth for list lengths; validators and
// the guardrail both read it.
var listBounds = map[model.SectionID]Bounds{
	model.SectionNavbar:           {Field: "links", Min: 2, Max: 6},
	model.SectionSocialProof:      {Field: "items", Min: 3, Max: 8},
	model.SectionFeatures:         {Field: "items", Min: 3, Max: 6},
	model.SectionFeatureSpotlight: {Field: "items", Min: 2, Max: 5},
	model.SectionTestimonials:     {Field: "items", Min: 2, Max: 6},
	model.SectionMetrics:          {Field: "items", Min: 2, Max: 6},
	model.SectionPricing:          {Field: "plans", Min: 2, Max: 4},
	model.SectionFAQ:              {Field: "items", Min: 4, Max: 8},
	model.SectionFooter:           {Field: "columns", Min: 1, Max: 4},
}

var entries = buildEntries()

func buildEntries() map[model.SectionID]entry {
	variants := make([]VariantMeta, variantsPerSection)
	for i, tag := range StyleTags() {
		variants[i] = VariantMeta{Index: i + 1, Style: tag}
	}

	return map[model.SectionID]entry{
		model.SectionNavbar:           {variants: variants, check: checkNavbar, defaults: defaultNavbar},
		model.SectionHero:             {variants: variants, check: checkHero, defaults: defaultHero},
		model.SectionSocialProof:      {variants: variants, check: checkSocialProof, defaults: defaultSocialProof},
		model.SectionFeatures:         {variants: variants, check: checkFeatures, defaults: defaultFeatures},
		model.SectionFeatureSpotlight: {variants: variants, check: checkFeatureSpotlight, defaults: defaultFeatureSpotlight},
		model.SectionTestimonials:     {variants: variants, check: checkTestimonials, defaults: defaultTestimonials},
		model.SectionMetrics:          {variants: variants, check: checkMetrics, defaults: defaultMetrics},
		model.SectionPricing:          {variants: variants, check: checkPricing, defaults: defaultPricing},
		model.SectionFAQ:              {variants: variants, check: checkFAQ, defaults: defaultFAQ},
		model.SectionFinalCTA:         {variants: variants, check: checkFinalCTA, defaults: defaultFinalCTA},
		model.SectionFooter:           {variants: variants, check: checkFooter, defaults: defaultFooter},
	}
}

// VariantCount returns the number of variants for id, or 0 for an unknown id.
func VariantCount(id model.SectionID) int {
	return len(entries[id].variants)
}

// ValidVariant reports whether 1 <= v <= VariantCount(id).
func ValidVariant(id model.SectionID, v int) bool {
	return v >= 1 && v <= VariantCount(id)
}

// Variants returns the style metadata of every variant of id.
func Variants(id model.SectionID) []VariantMeta {
	return slices.Clone(entries[id].variants)
}

// VariantsByStyle returns the variant indexes of id tagged with style.
func VariantsByStyle(id model.SectionID, style StyleTag) []int {
	var out []int
	for _, v := range entries[id].variants {
		if v.Style == style {
			out = append(out, v.Index)
		}
	}
	return out
}

// StyleOf returns the style tag of variant v of id.
func StyleOf(id model.SectionID, v int) (StyleTag, bool) {
	if !ValidVariant(id, v) {
		return "", false
	}
	return entries[id].variants[v-1].Style, true
}

// BoundsFor returns the list-length bounds of id, if it has a bounded list.
func BoundsFor(id model.SectionID) (Bounds, bool) {
	b, ok := listBounds[id]
	return b, ok
}

// Check runs the validator registered for id against typed props.
func Check(id model.SectionID, props model.Props) error {
	e, ok := entries[id]
	if !ok {
		return &errs.AppError{Kind: errs.InvalidProps, Section: string(id), Message: "unknown section"}
	}
	if props == nil {
		return &errs.AppError{Kind: errs.InvalidProps, Section: string(id), Message: "props are required"}
	}
	if props.Section() != id {
		return &errs.AppError{
			Kind:    errs.InvalidProps,
			Section: string(id),
			Message: "props belong to section " + string(props.Section()),
		}
	}
	return e.check(props)
}

// Validate decodes a generic props tree into the typed props for id and
// checks it. It returns the validated props or an *errs.AppError.
func Validate(id model.SectionID, tree map[string]any) (model.Props, error) {
	if _, ok := entries[id]; !ok {
		return nil, &errs.AppError{Kind: errs.InvalidProps, Section: string(id), Message: "unknown section"}
	}

	props, err := model.DecodeProps(id, tree)
	if err != nil {
		return nil, &errs.AppError{Kind: errs.InvalidProps, Section: string(id), Message: "malformed props", Cause: err}
	}
	if err := Check(id, props); err != nil {
		return nil, err
	}
	return props, nil
}

// DefaultProps returns a fresh copy of the static fallback content for id,
// or nil for an unknown id. The result always passes Check.
func DefaultProps(id model.SectionID) model.Props {
	e, ok := entries[id]
	if !ok {
		return nil
	}
	return e.defaults()
}
