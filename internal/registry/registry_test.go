package registry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bahjat/page-composer/backend/internal/model"
	"github.com/Bahjat/page-composer/backend/internal/platform/errs"
)

func TestEveryRequiredSectionIsRegistered(t *testing.T) {
	for _, id := range model.RequiredSections() {
		t.Run(string(id), func(t *testing.T) {
			assert.Equal(t, variantsPerSection, VariantCount(id))
			assert.Len(t, Variants(id), VariantCount(id))

			props := DefaultProps(id)
			require.NotNil(t, props)
			assert.Equal(t, id, props.Section())
			assert.NoError(t, Check(id, props), "default props must validate")
		})
	}
}

func TestValidVariant(t *testing.T) {
	tests := []struct {
		variant int
		want    bool
	}{
		{variant: -1, want: false},
		{variant: 0, want: false},
		{variant: 1, want: true},
		{variant: 4, want: true},
		{variant: 5, want: false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidVariant(model.SectionHero, tt.variant), "variant %d", tt.variant)
	}
	assert.False(t, ValidVariant("unknown", 1))
	assert.Zero(t, VariantCount("unknown"))
}

func TestStyleQueries(t *testing.T) {
	style, ok := StyleOf(model.SectionPricing, 3)
	require.True(t, ok)
	assert.Equal(t, StyleElegant, style)

	_, ok = StyleOf(model.SectionPricing, 9)
	assert.False(t, ok)

	assert.Equal(t, []int{2}, VariantsByStyle(model.SectionPricing, StyleBold))
	assert.Empty(t, VariantsByStyle(model.SectionPricing, "neon"))

	for _, meta := range Variants(model.SectionFAQ) {
		got, ok := StyleOf(model.SectionFAQ, meta.Index)
		require.True(t, ok)
		assert.Equal(t, meta.Style, got)
	}
}

func TestVariants_ReturnsCopy(t *testing.T) {
	v := Variants(model.SectionHero)
	v[0].Style = "tampered"

	style, _ := StyleOf(model.SectionHero, 1)
	assert.Equal(t, StyleMinimal, style)
}

func TestValidHref(t *testing.T) {
	tests := []struct {
		href string
		want bool
	}{
		{href: "/pricing", want: true},
		{href: "./docs", want: true},
		{href: "../up", want: true},
		{href: "#faq", want: true},
		{href: "#", want: true},
		{href: "https://example.com/path?q=1", want: true},
		{href: "http://example.com", want: true},
		{href: "HTTPS://EXAMPLE.COM", want: true},
		{href: "", want: false},
		{href: " /padded", want: false},
		{href: "javascript:alert(1)", want: false},
		{href: "JavaScript:alert(1)", want: false},
		{href: "java\tscript:alert(1)", want: false},
		{href: "data:text/html;base64,PHNjcmlwdD4=", want: false},
		{href: "vbscript:msgbox", want: false},
		{href: "mailto:hi@example.com", want: false},
		{href: "//evil.example.com", want: false},
		{href: "https://", want: false},
		{href: "pricing", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.href, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidHref(tt.href))
		})
	}
}

func TestValidate_FeaturesBounds(t *testing.T) {
	feature := map[string]any{"title": "Fast", "description": "Really fast"}

	tooFew := map[string]any{"title": "Features", "items": []any{feature, feature}}
	_, err := Validate(model.SectionFeatures, tooFew)
	require.Error(t, err)

	var appErr *errs.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, errs.InvalidProps, appErr.Kind)
	assert.Equal(t, "features", appErr.Section)
	assert.Equal(t, "items", appErr.Field)

	ok := map[string]any{"title": "Features", "items": []any{feature, feature, feature}}
	props, err := Validate(model.SectionFeatures, ok)
	require.NoError(t, err)
	assert.Len(t, props.(*model.FeaturesProps).Items, 3)
}

func TestValidate_RejectsScriptHref(t *testing.T) {
	tree := map[string]any{
		"headline":    "Hello",
		"subheadline": "World",
		"primaryCta":  map[string]any{"label": "Go", "href": "javascript:alert(1)"},
	}

	_, err := Validate(model.SectionHero, tree)
	require.Error(t, err)

	var appErr *errs.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "primaryCta.href", appErr.Field)
}

func TestValidate_MalformedTree(t *testing.T) {
	_, err := Validate(model.SectionFAQ, map[string]any{"items": "not a list"})
	require.Error(t, err)
	assert.Equal(t, errs.InvalidProps, errs.KindOf(err))

	_, err = Validate("carousel", map[string]any{})
	require.Error(t, err)
}

func TestCheck_WrongPropsType(t *testing.T) {
	err := Check(model.SectionFAQ, &model.HeroProps{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "props belong to section hero")

	var nilFAQ *model.FAQProps
	assert.Error(t, Check(model.SectionFAQ, nilFAQ))
	assert.Error(t, Check(model.SectionFAQ, nil))
}

func TestCheck_PricingPlanFields(t *testing.T) {
	props := DefaultProps(model.SectionPricing).(*model.PricingProps)
	props.Plans[1].Features = nil

	err := Check(model.SectionPricing, props)
	require.Error(t, err)

	var appErr *errs.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "plans[1].features", appErr.Field)
}

func TestBoundsFor(t *testing.T) {
	b, ok := BoundsFor(model.SectionFAQ)
	require.True(t, ok)
	assert.Equal(t, Bounds{Field: "items", Min: 4, Max: 8}, b)

	_, ok = BoundsFor(model.SectionHero)
	assert.False(t, ok)
}

func TestDefaultProps_FreshCopies(t *testing.T) {
	a := DefaultProps(model.SectionFeatures).(*model.FeaturesProps)
	a.Items[0].Title = "changed"

	b := DefaultProps(model.SectionFeatures).(*model.FeaturesProps)
	assert.Equal(t, "Simple", b.Items[0].Title)
}
