package guardrail

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bahjat/page-composer/backend/internal/model"
)

func items(n int, build func(i int) any) []any {
	out := make([]any, n)
	for i := range n {
		out[i] = build(i)
	}
	return out
}

func feature(i int) any {
	return map[string]any{"title": "Feature", "description": "Does a thing", "order": float64(i)}
}

func TestSanitize_TruncatesFeatures(t *testing.T) {
	props := map[string]any{"title": "Features", "items": items(10, feature)}

	res := Sanitize(model.SectionFeatures, props)

	assert.Len(t, res.Props["items"], 6)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "items truncated from 10 to 6")
	assert.Len(t, props["items"], 10, "input must not be modified")
}

func TestSanitize_FAQBelowMinimumKeepsItems(t *testing.T) {
	faq := func(int) any { return map[string]any{"question": "Q?", "answer": "A."} }
	props := map[string]any{"title": "FAQ", "items": items(2, faq)}

	res := Sanitize(model.SectionFAQ, props)

	assert.Len(t, res.Props["items"], 2)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "below the minimum of 4")
}

func TestSanitize_StripsScriptTags(t *testing.T) {
	props := map[string]any{
		"headline":    "<script>alert(1)</script>",
		"subheadline": "Plain text stays",
	}

	res := Sanitize(model.SectionHero, props)

	assert.Equal(t, "alert(1)", res.Props["headline"])
	assert.Equal(t, "Plain text stays", res.Props["subheadline"])
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "removed markup from headline")
	assert.Equal(t, "<script>alert(1)</script>", props["headline"], "input must not be modified")
}

func TestSanitize_ReplacesScriptHref(t *testing.T) {
	props := map[string]any{
		"headline":   "Hello",
		"primaryCta": map[string]any{"label": "Go", "href": "javascript:alert(1)"},
	}

	res := Sanitize(model.SectionHero, props)

	cta := res.Props["primaryCta"].(map[string]any)
	assert.Equal(t, PlaceholderHref, cta["href"])
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "replaced unsafe link at primaryCta.href")

	original := props["primaryCta"].(map[string]any)
	assert.Equal(t, "javascript:alert(1)", original["href"])
}

func TestSanitize_NestedTreesAndHrefKeys(t *testing.T) {
	props := map[string]any{
		"copyright": "© Acme",
		"columns": []any{
			map[string]any{
				"title": "<b>Company</b>",
				"links": []any{
					map[string]any{"label": "About", "href": "/about"},
					map[string]any{"label": "Evil", "href": "data:text/html,<script>x</script>"},
					map[string]any{"label": "Alt", "secondaryHref": "vbscript:msgbox"},
				},
			},
		},
	}

	res := Sanitize(model.SectionFooter, props)

	col := res.Props["columns"].([]any)[0].(map[string]any)
	assert.Equal(t, "Company", col["title"])
	links := col["links"].([]any)
	assert.Equal(t, "/about", links[0].(map[string]any)["href"])
	assert.Equal(t, PlaceholderHref, links[1].(map[string]any)["href"])
	assert.Equal(t, PlaceholderHref, links[2].(map[string]any)["secondaryHref"])
	assert.Len(t, res.Warnings, 3)
}

func TestSanitize_CleanInputUnchanged(t *testing.T) {
	props := map[string]any{
		"title": "Why choose us",
		"items": items(3, feature),
		"flag":  true,
		"count": float64(3),
		"empty": nil,
	}

	res := Sanitize(model.SectionFeatures, props)

	assert.Empty(t, res.Warnings)
	if diff := cmp.Diff(props, res.Props); diff != "" {
		t.Errorf("clean props changed (-want +got):\n%s", diff)
	}
}

func TestSanitize_NilProps(t *testing.T) {
	res := Sanitize(model.SectionHero, nil)
	assert.Nil(t, res.Props)
	assert.Empty(t, res.Warnings)
}

func TestSanitize_WarningPreviewTruncated(t *testing.T) {
	long := "<i>" + strings.Repeat("x", 200) + "</i>"
	res := Sanitize(model.SectionHero, map[string]any{"headline": long})

	require.Len(t, res.Warnings, 1)
	assert.Less(t, len(res.Warnings[0]), 120)
	assert.Contains(t, res.Warnings[0], "...")
}

func TestSanitize_NeverPanicsOnOddShapes(t *testing.T) {
	props := map[string]any{
		"items": "not a list",
		"deep":  []any{[]any{[]any{"<p>x</p>", 1.5, false}}},
	}
	res := Sanitize(model.SectionFeatures, props)

	deep := res.Props["deep"].([]any)[0].([]any)[0].([]any)
	assert.Equal(t, "x", deep[0])
	assert.Equal(t, "not a list", res.Props["items"])
}

func TestStripMarkup(t *testing.T) {
	tests := []struct {
		in       string
		want     string
		stripped bool
	}{
		{in: "plain", want: "plain", stripped: false},
		{in: "Tom &amp; Jerry", want: "Tom &amp; Jerry", stripped: false},
		{in: "<3 you", want: "<3 you", stripped: false},
		{in: "<b>bold</b> move", want: "bold move", stripped: true},
		{in: "<img src=x onerror=alert(1)>after", want: "after", stripped: true},
		{in: "a < b > c", want: "a  c", stripped: true},
		{in: "<!-- hidden -->shown", want: "shown", stripped: true},
		{in: "<style>p{}</style>Tom &amp; Jerry", want: "p{}Tom &amp; Jerry", stripped: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, stripped := StripMarkup(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.stripped, stripped)
		})
	}
}
