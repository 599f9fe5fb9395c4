package composer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bahjat/page-composer/backend/internal/model"
	"github.com/Bahjat/page-composer/backend/internal/platform/errs"
	"github.com/Bahjat/page-composer/backend/internal/registry"
	"github.com/Bahjat/page-composer/backend/internal/synth"
)

// allHandlers registers a handler name for every section variant.
func allHandlers() Handlers[string] {
	h := make(Handlers[string])
	for _, id := range model.RequiredSections() {
		for v := 1; v <= registry.VariantCount(id); v++ {
			k := Key{ID: id, Variant: v}
			h[k] = k.String()
		}
	}
	return h
}

func validConfig(t *testing.T) *model.PageConfig {
	t.Helper()
	return synth.Default().Synthesize("Friendly neighborhood bakery")
}

func requireAppError(t *testing.T, err error, kind errs.Kind, section model.SectionID) *errs.AppError {
	t.Helper()
	require.Error(t, err)
	var appErr *errs.AppError
	require.True(t, errors.As(err, &appErr), "got %T: %v", err, err)
	assert.Equal(t, kind, appErr.Kind, "error: %v", err)
	assert.Equal(t, string(section), appErr.Section)
	return appErr
}

func TestCompose_BindsInConfigurationOrder(t *testing.T) {
	cfg := validConfig(t)
	// Completeness is set membership, not position.
	cfg.Sections[0], cfg.Sections[10] = cfg.Sections[10], cfg.Sections[0]

	bound, err := Compose(cfg, allHandlers())
	require.NoError(t, err)
	require.Len(t, bound, len(cfg.Sections))

	for i, b := range bound {
		assert.Equal(t, cfg.Sections[i].ID, b.Section.ID)
		assert.Equal(t, Key{ID: b.Section.ID, Variant: b.Section.Variant}.String(), b.Handler)
	}
	assert.Equal(t, model.SectionFooter, bound[0].Section.ID)
}

func TestCompose_Failures(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *model.PageConfig)
		kind    errs.Kind
		section model.SectionID
		field   string
	}{
		{
			name:   "empty brand name",
			mutate: func(cfg *model.PageConfig) { cfg.Brand.Name = "" },
			kind:   errs.InvalidInput,
			field:  "brand.name",
		},
		{
			name:    "missing section",
			mutate:  func(cfg *model.PageConfig) { cfg.Sections = cfg.Sections[:len(cfg.Sections)-1] },
			kind:    errs.MissingSection,
			section: model.SectionFooter,
		},
		{
			name:    "no sections",
			mutate:  func(cfg *model.PageConfig) { cfg.Sections = nil },
			kind:    errs.MissingSection,
			section: model.SectionNavbar,
		},
		{
			name:    "duplicate section",
			mutate:  func(cfg *model.PageConfig) { cfg.Sections = append(cfg.Sections, cfg.Sections[3].Clone()) },
			kind:    errs.DuplicateSection,
			section: model.SectionFeatures,
		},
		{
			name:    "unknown section",
			mutate:  func(cfg *model.PageConfig) { cfg.Sections[2].ID = "carousel" },
			kind:    errs.InvalidInput,
			section: "carousel",
			field:   "id",
		},
		{
			name:    "variant above range",
			mutate:  func(cfg *model.PageConfig) { cfg.Sections[1].Variant = 5 },
			kind:    errs.VariantOutOfRange,
			section: model.SectionHero,
			field:   "variant",
		},
		{
			name:    "variant zero",
			mutate:  func(cfg *model.PageConfig) { cfg.Sections[1].Variant = 0 },
			kind:    errs.VariantOutOfRange,
			section: model.SectionHero,
			field:   "variant",
		},
		{
			name: "invalid props",
			mutate: func(cfg *model.PageConfig) {
				faq := cfg.Sections[8].Props.(*model.FAQProps)
				faq.Items = faq.Items[:1]
			},
			kind:    errs.InvalidProps,
			section: model.SectionFAQ,
			field:   "items",
		},
		{
			name: "unsafe link",
			mutate: func(cfg *model.PageConfig) {
				cfg.Sections[9].Props.(*model.FinalCTAProps).CTA.Href = "javascript:alert(1)"
			},
			kind:    errs.InvalidProps,
			section: model.SectionFinalCTA,
			field:   "cta.href",
		},
		{
			name:    "nil props",
			mutate:  func(cfg *model.PageConfig) { cfg.Sections[4].Props = nil },
			kind:    errs.InvalidProps,
			section: model.SectionFeatureSpotlight,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(cfg)

			_, err := Compose(cfg, allHandlers())
			appErr := requireAppError(t, err, tt.kind, tt.section)
			if tt.field != "" {
				assert.Equal(t, tt.field, appErr.Field)
			}
		})
	}
}

func TestCompose_VariantErrorNamesRange(t *testing.T) {
	cfg := validConfig(t)
	cfg.Sections[6].Variant = 9

	err := Validate(cfg)
	requireAppError(t, err, errs.VariantOutOfRange, model.SectionMetrics)
	assert.Contains(t, err.Error(), "variant 9")
	assert.Contains(t, err.Error(), "[1, 4]")
}

func TestCompose_MissingHandler(t *testing.T) {
	cfg := validConfig(t)
	handlers := allHandlers()
	pricing, _ := cfg.Section(model.SectionPricing)
	delete(handlers, Key{ID: model.SectionPricing, Variant: pricing.Variant})

	_, err := Compose(cfg, handlers)
	appErr := requireAppError(t, err, errs.HandlerNotFound, model.SectionPricing)
	assert.Contains(t, appErr.Message, Key{ID: model.SectionPricing, Variant: pricing.Variant}.String())
}

func TestCompose_NilConfig(t *testing.T) {
	_, err := Compose[string](nil, allHandlers())
	assert.Equal(t, errs.InvalidInput, errs.KindOf(err))
}

func TestCompose_DoesNotRepair(t *testing.T) {
	cfg := validConfig(t)
	cfg.Sections[1].Variant = 42
	before := cfg.Clone()

	_, err := Compose(cfg, allHandlers())
	require.Error(t, err)
	assert.Equal(t, before, cfg)
}
