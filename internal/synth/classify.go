package synth

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Bahjat/page-composer/backend/internal/model"
)

// tokens lower-cases text and splits it into words. Hyphens and apostrophes
// stay inside words so that "high-end" and "e-commerce" survive as one token.
// Casers carry state, so each call builds its own.
func tokens(text string) []string {
	return strings.FieldsFunc(cases.Lower(language.Und).String(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '-' && r != '\''
	})
}

// score counts keyword hits in toks. Single-word keywords match whole tokens;
// multi-word keywords match as a phrase.
func score(toks []string, keywords []string) int {
	joined := " " + strings.Join(toks, " ") + " "
	lower := cases.Lower(language.Und)

	var n int
	for _, kw := range keywords {
		kw = lower.String(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		if strings.Contains(kw, " ") {
			n += strings.Count(joined, " "+kw+" ")
			continue
		}
		for _, t := range toks {
			if t == kw {
				n++
			}
		}
	}
	return n
}

// best returns the index of the highest-scoring keyword list, or -1 when
// nothing matched. Ties go to the lowest index.
func best(toks []string, lists [][]string) int {
	idx, top := -1, 0
	for i, kws := range lists {
		if s := score(toks, kws); s > top {
			idx, top = i, s
		}
	}
	return idx
}

// ClassifyIndustry returns the catalog industry whose keywords best match
// text, or the catalog default when none match.
func (s *Synthesizer) ClassifyIndustry(text string) string {
	return s.classifyIndustry(tokens(text))
}

func (s *Synthesizer) classifyIndustry(toks []string) string {
	lists := make([][]string, len(s.catalog.Industries))
	for i, ind := range s.catalog.Industries {
		lists[i] = ind.Keywords
	}
	if i := best(toks, lists); i >= 0 {
		return s.catalog.Industries[i].Name
	}
	return s.catalog.DefaultIndustry
}

// ClassifyTone returns the tone whose keywords best match text, or the
// catalog default when none match.
func (s *Synthesizer) ClassifyTone(text string) model.Tone {
	return s.classifyTone(tokens(text))
}

func (s *Synthesizer) classifyTone(toks []string) model.Tone {
	lists := make([][]string, len(s.catalog.Tones))
	for i, t := range s.catalog.Tones {
		lists[i] = t.Keywords
	}
	if i := best(toks, lists); i >= 0 {
		return s.catalog.Tones[i].Name
	}
	return s.catalog.DefaultTone
}

const (
	maxBrandWords = 4
	maxBrandRunes = 60
)

// BrandName extracts a display name from the first sentence of text: at
// most four words, punctuation removed, title-cased. It returns the
// placeholder name when nothing usable remains.
func BrandName(text string) string {
	if i := strings.IndexAny(text, ".!?\n"); i >= 0 {
		text = text[:i]
	}

	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) || unicode.IsControl(r) {
			return ' '
		}
		return r
	}, text)

	words := strings.Fields(cleaned)
	if len(words) > maxBrandWords {
		words = words[:maxBrandWords]
	}

	name := []rune(strings.Join(words, " "))
	if len(name) > maxBrandRunes {
		name = []rune(strings.TrimSpace(string(name[:maxBrandRunes])))
	}
	if len(name) == 0 {
		return model.PlaceholderBrandName
	}
	return cases.Title(language.English, cases.NoLower).String(string(name))
}
