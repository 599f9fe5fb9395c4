// Package planner turns a plan, possibly from an untrusted source, into a
// complete page configuration. Only a malformed plan is fatal; every other
// problem is repaired locally and reported as a warning.
package planner

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Bahjat/page-composer/backend/internal/guardrail"
	"github.com/Bahjat/page-composer/backend/internal/model"
	"github.com/Bahjat/page-composer/backend/internal/platform/errs"
	"github.com/Bahjat/page-composer/backend/internal/registry"
)

var (
	errNilPlan       = errors.New("plan is nil")
	errMissingBrand  = errors.New("brand object is required")
	errEmptyName     = errors.New("brand name must not be empty")
	errEmptySections = errors.New("at least one section is required")
)

// Result is a complete configuration and everything that was repaired on
// the way.
type Result struct {
	Config   *model.PageConfig
	Warnings []string
}

// Apply validates plan, repairs what it can, and merges it onto base. base
// may be nil, in which case missing sections get static default content and
// the brand starts from model.DefaultBrand.
func Apply(plan *model.Plan, base *model.PageConfig) (*Result, error) {
	if err := checkShape(plan); err != nil {
		return nil, err
	}

	a := &applier{}
	sections := make([]model.Section, 0, len(model.RequiredSections()))
	seen := make(map[model.SectionID]bool)

	for i, ps := range plan.Sections {
		if !ps.ID.Valid() {
			a.warnf("dropped section #%d: unknown id %q", i, ps.ID)
			continue
		}
		if seen[ps.ID] {
			a.warnf("dropped duplicate section %s at position #%d", ps.ID, i)
			continue
		}
		seen[ps.ID] = true
		sections = append(sections, a.section(ps))
	}

	for _, id := range model.RequiredSections() {
		if seen[id] {
			continue
		}
		sections = append(sections, a.backfill(id, base))
	}

	return &Result{
		Config: &model.PageConfig{
			Brand:    a.brand(plan.Brand, base),
			Sections: sections,
		},
		Warnings: a.warnings,
	}, nil
}

func checkShape(plan *model.Plan) error {
	var cause error
	field := ""
	switch {
	case plan == nil:
		cause = errNilPlan
	case plan.Brand == nil:
		cause, field = errMissingBrand, "brand"
	case strings.TrimSpace(plan.Brand.Name) == "":
		cause, field = errEmptyName, "brand.name"
	case len(plan.Sections) == 0:
		cause, field = errEmptySections, "sections"
	default:
		return nil
	}
	return &errs.AppError{
		Kind:    errs.InvalidPlan,
		Field:   field,
		Message: "invalid plan structure",
		Cause:   cause,
	}
}

type applier struct {
	warnings []string
}

func (a *applier) warnf(format string, args ...any) {
	a.warnings = append(a.warnings, fmt.Sprintf(format, args...))
}

func (a *applier) section(ps model.PlanSection) model.Section {
	variant := clamp(ps.Variant, 1, registry.VariantCount(ps.ID))
	if variant != ps.Variant {
		a.warnf("section %s: variant %d out of range, clamped to %d", ps.ID, ps.Variant, variant)
	}

	guarded := guardrail.Sanitize(ps.ID, ps.Props)
	a.warnings = append(a.warnings, guarded.Warnings...)

	props, err := registry.Validate(ps.ID, guarded.Props)
	if err != nil {
		a.warnf("section %s: invalid content replaced with defaults: %v", ps.ID, err)
		props = registry.DefaultProps(ps.ID)
	}

	return model.Section{ID: ps.ID, Variant: variant, Props: props}
}

func (a *applier) backfill(id model.SectionID, base *model.PageConfig) model.Section {
	if base != nil {
		if s, ok := base.Section(id); ok && registry.ValidVariant(id, s.Variant) && registry.Check(id, s.Props) == nil {
			a.warnf("section %s: missing from plan, taken from base configuration", id)
			return s.Clone()
		}
	}
	a.warnf("section %s: missing from plan, filled with default content", id)
	return model.Section{ID: id, Variant: 1, Props: registry.DefaultProps(id)}
}

// brand overlays the non-empty plan fields onto the base brand.
func (a *applier) brand(pb *model.PlanBrand, base *model.PageConfig) model.BrandInfo {
	out := model.DefaultBrand()
	if base != nil {
		out = base.Brand
	}

	set := func(field, v string, dst *string) {
		clean, stripped := guardrail.StripMarkup(strings.TrimSpace(v))
		if stripped {
			a.warnf("brand: removed markup from %s", field)
		}
		if clean = strings.TrimSpace(clean); clean != "" {
			*dst = clean
		} else if v != "" {
			a.warnf("brand: ignored empty %s", field)
		}
	}

	set("name", pb.Name, &out.Name)
	set("tagline", pb.Tagline, &out.Tagline)
	set("industry", pb.Industry, &out.Industry)
	set("targetAudience", pb.TargetAudience, &out.TargetAudience)

	if pb.Tone != "" {
		if tone := model.Tone(strings.ToLower(strings.TrimSpace(pb.Tone))); tone.Valid() {
			out.Tone = tone
		} else {
			a.warnf("brand: unknown tone %q ignored", pb.Tone)
		}
	}

	if strings.TrimSpace(out.Name) == "" {
		out.Name = model.PlaceholderBrandName
	}
	if !out.Tone.Valid() {
		out.Tone = model.ToneCorporate
	}
	return out
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
