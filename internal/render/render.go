// Package render is the presentation handler set the composer binds
// sections to. Each (section, variant) pair gets its own handler; the
// variant's style tag is emitted as CSS classes so one template per section
// serves all of its variants.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/microcosm-cc/bluemonday"

	"github.com/Bahjat/page-composer/backend/internal/composer"
	"github.com/Bahjat/page-composer/backend/internal/model"
	"github.com/Bahjat/page-composer/backend/internal/registry"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

// Handler renders one variant of one section.
type Handler struct {
	Key   composer.Key
	Style registry.StyleTag
	tmpl  *template.Template
}

// Name identifies the handler, e.g. "hero/v2".
func (h *Handler) Name() string {
	return h.Key.String()
}

// Class returns the CSS classes the handler puts on its root element.
func (h *Handler) Class() string {
	return fmt.Sprintf("section section-%s variant-%d style-%s", h.Key.ID, h.Key.Variant, h.Style)
}

type sectionData struct {
	Brand model.BrandInfo
	Props model.Props
	Class string
}

// Render writes the section markup to w.
func (h *Handler) Render(w io.Writer, brand model.BrandInfo, s model.Section) error {
	data := sectionData{Brand: brand, Props: s.Props, Class: h.Class()}
	if err := h.tmpl.ExecuteTemplate(w, string(h.Key.ID), data); err != nil {
		return fmt.Errorf("render %s: %w", h.Name(), err)
	}
	return nil
}

// Set holds a handler for every registered section variant. It is built once
// and read concurrently afterwards.
type Set struct {
	handlers composer.Handlers[*Handler]
	tmpl     *template.Template
	policy   *bluemonday.Policy
}

// NewSet parses the embedded templates and registers one handler per
// section variant known to the registry.
func NewSet() (*Set, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.gohtml")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	set := &Set{
		handlers: make(composer.Handlers[*Handler]),
		tmpl:     tmpl,
		policy:   outputPolicy(),
	}

	for _, id := range model.RequiredSections() {
		if tmpl.Lookup(string(id)) == nil {
			return nil, fmt.Errorf("no template defined for section %s", id)
		}
		for _, meta := range registry.Variants(id) {
			key := composer.Key{ID: id, Variant: meta.Index}
			set.handlers[key] = &Handler{Key: key, Style: meta.Style, tmpl: tmpl}
		}
	}
	return set, nil
}

// Handler implements composer.Lookup.
func (s *Set) Handler(id model.SectionID, variant int) (*Handler, bool) {
	return s.handlers.Handler(id, variant)
}

// Compose validates cfg and binds it to this set's handlers.
func (s *Set) Compose(cfg *model.PageConfig) ([]composer.Bound[*Handler], error) {
	return composer.Compose(cfg, s)
}

// RenderPage composes cfg and writes a complete HTML document to w. The
// section markup is passed through an allow-list sanitizer before it is
// embedded in the page.
func (s *Set) RenderPage(w io.Writer, cfg *model.PageConfig) error {
	bound, err := s.Compose(cfg)
	if err != nil {
		return err
	}

	var body bytes.Buffer
	for _, b := range bound {
		if err := b.Handler.Render(&body, cfg.Brand, b.Section); err != nil {
			return err
		}
		body.WriteByte('\n')
	}

	clean := s.policy.SanitizeBytes(body.Bytes())
	data := struct {
		Brand model.BrandInfo
		Body  template.HTML
	}{
		Brand: cfg.Brand,
		Body:  template.HTML(clean),
	}
	if err := s.tmpl.ExecuteTemplate(w, "page", data); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}

func outputPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowElements("nav", "header", "footer", "section", "article", "figure", "details", "summary")
	p.AllowAttrs("class").Globally()
	p.AllowAttrs("src", "title").OnElements("video")
	return p
}
