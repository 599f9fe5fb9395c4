// Package composer is the strict last gate before a configuration is
// rendered. It never repairs anything: a configuration either satisfies
// every registry rule and binds to a registered handler per section, or
// composition fails with an error naming the offending section.
package composer

import (
	"fmt"

	"github.com/Bahjat/page-composer/backend/internal/model"
	"github.com/Bahjat/page-composer/backend/internal/platform/errs"
	"github.com/Bahjat/page-composer/backend/internal/registry"
)

// Key identifies one presentation variant of a section.
type Key struct {
	ID      model.SectionID
	Variant int
}

func (k Key) String() string {
	return fmt.Sprintf("%s/v%d", k.ID, k.Variant)
}

// Lookup resolves the presentation handler registered for a section variant.
type Lookup[H any] interface {
	Handler(id model.SectionID, variant int) (H, bool)
}

// Handlers is a map-backed Lookup.
type Handlers[H any] map[Key]H

// Handler implements Lookup.
func (h Handlers[H]) Handler(id model.SectionID, variant int) (H, bool) {
	v, ok := h[Key{ID: id, Variant: variant}]
	return v, ok
}

// Bound is a validated section and the handler that presents it.
type Bound[H any] struct {
	Section model.Section
	Handler H
}

// Compose validates cfg and binds every section to its handler. Sections
// are returned in configuration order.
func Compose[H any](cfg *model.PageConfig, handlers Lookup[H]) ([]Bound[H], error) {
	if err := Validate(cfg); err != nil {
		return nil, err
	}

	out := make([]Bound[H], 0, len(cfg.Sections))
	for _, s := range cfg.Sections {
		h, ok := handlers.Handler(s.ID, s.Variant)
		if !ok {
			return nil, &errs.AppError{
				Kind:    errs.HandlerNotFound,
				Section: string(s.ID),
				Field:   "variant",
				Message: fmt.Sprintf("no handler registered for %s", Key{ID: s.ID, Variant: s.Variant}),
			}
		}
		out = append(out, Bound[H]{Section: s, Handler: h})
	}
	return out, nil
}

// Validate runs every composition check without binding handlers.
func Validate(cfg *model.PageConfig) error {
	if cfg == nil {
		return &errs.AppError{Kind: errs.InvalidInput, Message: "configuration is nil"}
	}
	if cfg.Brand.Name == "" {
		return &errs.AppError{Kind: errs.InvalidInput, Field: "brand.name", Message: "brand name must not be empty"}
	}

	if err := checkMembership(cfg.Sections); err != nil {
		return err
	}

	for _, s := range cfg.Sections {
		if !registry.ValidVariant(s.ID, s.Variant) {
			return &errs.AppError{
				Kind:    errs.VariantOutOfRange,
				Section: string(s.ID),
				Field:   "variant",
				Message: fmt.Sprintf("variant %d outside valid range [1, %d]", s.Variant, registry.VariantCount(s.ID)),
			}
		}
		// registry errors already carry the InvalidProps kind, section and field.
		if err := registry.Check(s.ID, s.Props); err != nil {
			return err
		}
	}
	return nil
}

// checkMembership reports the first unknown or duplicated id in
// configuration order, then the first missing id in canonical order.
func checkMembership(sections []model.Section) error {
	seen := make(map[model.SectionID]bool, len(sections))
	for i, s := range sections {
		if !s.ID.Valid() {
			return &errs.AppError{
				Kind:    errs.InvalidInput,
				Section: string(s.ID),
				Field:   "id",
				Message: fmt.Sprintf("unknown section id at position #%d", i),
			}
		}
		if seen[s.ID] {
			return &errs.AppError{
				Kind:    errs.DuplicateSection,
				Section: string(s.ID),
				Message: fmt.Sprintf("section appears more than once (again at position #%d)", i),
			}
		}
		seen[s.ID] = true
	}

	for _, id := range model.RequiredSections() {
		if !seen[id] {
			return &errs.AppError{
				Kind:    errs.MissingSection,
				Section: string(id),
				Message: "required section is missing",
			}
		}
	}
	return nil
}
