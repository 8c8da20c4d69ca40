package textutil

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Term is one canonical vocabulary entry and the display variants the
// recognizer may read for it.
type Term struct {
	Canonical string
	Variants  []string
}

// Vocabulary is an ordered set of canonical names.
type Vocabulary struct {
	terms []Term
}

// NewVocabulary builds a vocabulary from canonical names. When prefix is not
// empty every name also matches its on-screen form "<PREFIX> - <NAME>".
func NewVocabulary(prefix string, names ...string) Vocabulary {
	upper := cases.Upper(language.Und)
	prefix = strings.TrimSpace(prefix)
	terms := make([]Term, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		key := Normalize(name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		term := Term{Canonical: name, Variants: []string{name}}
		if prefix != "" {
			term.Variants = append(term.Variants, upper.String(prefix+" - "+name))
		}
		terms = append(terms, term)
	}
	return Vocabulary{terms: terms}
}

// Terms returns the vocabulary entries in order.
func (v Vocabulary) Terms() []Term {
	return v.terms
}

// Len reports the number of canonical names.
func (v Vocabulary) Len() int {
	return len(v.terms)
}

// Score returns the best similarity between text and any variant of term.
func (t Term) Score(text string) float64 {
	best := 0.0
	for _, variant := range t.Variants {
		if score := Ratio(text, variant); score > best {
			best = score
		}
	}
	return best
}

// BestMatch returns the canonical name whose variants best match text. The
// match is rejected when its score is below threshold. Ties keep vocabulary
// order.
func (v Vocabulary) BestMatch(text string, threshold float64) (string, float64, bool) {
	if Normalize(text) == "" {
		return "", 0, false
	}
	bestIdx := -1
	bestScore := 0.0
	for i, term := range v.terms {
		score := term.Score(text)
		if score > bestScore {
			bestIdx = i
			bestScore = score
		}
	}
	if bestIdx < 0 || bestScore < threshold {
		return "", bestScore, false
	}
	return v.terms[bestIdx].Canonical, bestScore, true
}
