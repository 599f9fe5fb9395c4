// Package guardrail cleans untrusted section props before validation. It
// trims oversized lists, strips markup from every string and replaces unsafe
// link targets. It never fails; every change is reported as a warning.
package guardrail

import (
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strings"

	"golang.org/x/net/html"

	"github.com/Bahjat/page-composer/backend/internal/model"
	"github.com/Bahjat/page-composer/backend/internal/registry"
)

// PlaceholderHref replaces link targets that fail validation.
const PlaceholderHref = "#"

const previewRunes = 40

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// Result is a sanitized copy of a props tree and what was changed.
type Result struct {
	Props    map[string]any
	Warnings []string
}

// Sanitize returns a cleaned deep copy of props for section id. The input
// tree is never modified.
func Sanitize(id model.SectionID, props map[string]any) Result {
	if props == nil {
		return Result{}
	}

	s := &sanitizer{id: id}
	top := maps.Clone(props)
	s.enforceBounds(top)

	clean, _ := s.walk("", top).(map[string]any)
	return Result{Props: clean, Warnings: s.warnings}
}

// StripMarkup removes tag-like substrings from s. It reports whether
// anything was removed.
func StripMarkup(s string) (string, bool) {
	if !tagPattern.MatchString(s) {
		return s, false
	}

	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		if tt == html.TextToken {
			b.Write(z.Raw())
		}
	}

	// The tokenizer keeps malformed tags such as "< b >" as text.
	return tagPattern.ReplaceAllString(b.String(), ""), true
}

type sanitizer struct {
	id       model.SectionID
	warnings []string
}

func (s *sanitizer) warnf(format string, args ...any) {
	s.warnings = append(s.warnings, fmt.Sprintf("section %s: ", s.id)+fmt.Sprintf(format, args...))
}

func (s *sanitizer) walk(path string, v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for _, k := range slices.Sorted(maps.Keys(val)) {
			child := join(path, k)
			if str, ok := val[k].(string); ok && isHrefKey(k) {
				out[k] = s.href(child, str)
				continue
			}
			out[k] = s.walk(child, val[k])
		}
		return out

	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = s.walk(fmt.Sprintf("%s[%d]", path, i), item)
		}
		return out

	case string:
		clean, stripped := StripMarkup(val)
		if stripped {
			s.warnf("removed markup from %s: %q", path, preview(val))
		}
		return clean
	}
	return v
}

func (s *sanitizer) href(path, v string) string {
	if registry.ValidHref(v) {
		return v
	}
	s.warnf("replaced unsafe link at %s: %q", path, preview(v))
	return PlaceholderHref
}

// enforceBounds re-slices the bounded list in place of props, which must be
// a copy owned by the sanitizer.
func (s *sanitizer) enforceBounds(props map[string]any) {
	b, ok := registry.BoundsFor(s.id)
	if !ok {
		return
	}

	list, ok := props[b.Field].([]any)
	if !ok {
		return
	}

	switch {
	case len(list) > b.Max:
		s.warnf("%s truncated from %d to %d entries", b.Field, len(list), b.Max)
		props[b.Field] = list[:b.Max]
	case len(list) < b.Min:
		s.warnf("%s has %d entries, below the minimum of %d", b.Field, len(list), b.Min)
	}
}

func isHrefKey(k string) bool {
	return strings.HasSuffix(strings.ToLower(k), "href")
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func preview(s string) string {
	r := []rune(s)
	if len(r) <= previewRunes {
		return s
	}
	return string(r[:previewRunes]) + "..."
}
