package render

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bahjat/page-composer/backend/internal/model"
	"github.com/Bahjat/page-composer/backend/internal/platform/errs"
	"github.com/Bahjat/page-composer/backend/internal/registry"
	"github.com/Bahjat/page-composer/backend/internal/synth"
)

func newSet(t *testing.T) *Set {
	t.Helper()
	set, err := NewSet()
	require.NoError(t, err)
	return set
}

func TestNewSet_RegistersEveryVariant(t *testing.T) {
	set := newSet(t)

	for _, id := range model.RequiredSections() {
		for v := 1; v <= registry.VariantCount(id); v++ {
			h, ok := set.Handler(id, v)
			require.True(t, ok, "%s/v%d", id, v)
			style, _ := registry.StyleOf(id, v)
			assert.Equal(t, style, h.Style)
		}
		_, ok := set.Handler(id, registry.VariantCount(id)+1)
		assert.False(t, ok)
	}
}

func TestHandler_RenderEachSection(t *testing.T) {
	set := newSet(t)
	brand := model.DefaultBrand()

	for _, id := range model.RequiredSections() {
		t.Run(string(id), func(t *testing.T) {
			h, ok := set.Handler(id, 2)
			require.True(t, ok)

			var buf bytes.Buffer
			err := h.Render(&buf, brand, model.Section{ID: id, Variant: 2, Props: registry.DefaultProps(id)})
			require.NoError(t, err)
			assert.Contains(t, buf.String(), "section-"+string(id))
			assert.Contains(t, buf.String(), "variant-2")
		})
	}
}

func TestRenderPage(t *testing.T) {
	set := newSet(t)
	cfg := synth.Default().Synthesize("Acme Analytics. Cloud software for data teams")

	var buf bytes.Buffer
	require.NoError(t, set.RenderPage(&buf, cfg))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "<title>Acme Analytics</title>")
	assert.Contains(t, out, "tone-"+string(cfg.Brand.Tone))
	for _, s := range cfg.Sections {
		style, _ := registry.StyleOf(s.ID, s.Variant)
		assert.Contains(t, out, "section-"+string(s.ID))
		assert.Contains(t, out, "style-"+string(style))
	}
}

func TestRenderPage_EscapesContent(t *testing.T) {
	set := newSet(t)
	cfg := synth.Default().Synthesize("Acme")
	hero := cfg.Sections[1].Props.(*model.HeroProps)
	hero.Headline = `<script>alert("x")</script>`

	var buf bytes.Buffer
	require.NoError(t, set.RenderPage(&buf, cfg))
	assert.NotContains(t, buf.String(), "<script>")
}

func TestRenderPage_RejectsInvalidConfig(t *testing.T) {
	set := newSet(t)
	cfg := synth.Default().Synthesize("Acme")
	cfg.Sections = cfg.Sections[1:]

	var buf bytes.Buffer
	err := set.RenderPage(&buf, cfg)
	assert.Equal(t, errs.MissingSection, errs.KindOf(err))
	assert.Zero(t, buf.Len(), "nothing is written on failure")
}

func TestRenderPage_Concurrent(t *testing.T) {
	set := newSet(t)
	cfg := synth.Default().Synthesize("Playful coding courses for kids")

	var want bytes.Buffer
	require.NoError(t, set.RenderPage(&want, cfg))

	var wg sync.WaitGroup
	for range 8 {
		wg.Go(func() {
			var got bytes.Buffer
			if assert.NoError(t, set.RenderPage(&got, cfg)) {
				assert.Equal(t, want.String(), got.String())
			}
		})
	}
	wg.Wait()
}
