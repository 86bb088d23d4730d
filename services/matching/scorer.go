package matching

import (
	"strings"

	"fixhive/models"
)

// MatchScorer scores one shop against one diagnosis using case-insensitive
// substring containment over expertise tags and the offered service catalog.
// Identical inputs always produce identical scores.
type MatchScorer struct {
	Weights ScoreWeights
}

func NewMatchScorer() MatchScorer {
	return MatchScorer{Weights: DefaultScoreWeights()}
}

// Score reports whether the shop matches the diagnosis and its weighted
// relevance score. Only in-stock service catalog entries participate.
func (s MatchScorer) Score(expertise []string, diag models.Diagnosis, services []models.ShopService) models.MatchResult {
	corpus := buildCorpus(expertise, services)
	if len(corpus) == 0 {
		return models.MatchResult{}
	}

	var score float64
	matched := false

	addSignal := func(term string, weight float64) {
		term = normalize(term)
		if term == "" {
			return
		}
		hit, exact := corpus.hit(term)
		if !hit {
			return
		}
		matched = true
		score += weight
		if exact {
			score += s.Weights.ExactBonus
		}
	}

	addSignal(diag.RepairComponent, s.Weights.Component)
	addSignal(diag.DeviceBrand, s.Weights.Brand)
	addSignal(diag.DeviceType, s.Weights.DeviceType)
	addSignal(diag.DeviceCategory, s.Weights.Category)
	for _, kw := range diag.RepairKeywords {
		addSignal(kw, s.Weights.Keyword)
	}

	return models.MatchResult{Matched: matched, Score: score}
}

// LooseMatch is the broadened fallback test: word-level containment of the
// repair component or device brand anywhere in the shop's expertise or
// services. A multi-word term hits if any single word of it does, so phrases
// like "cracked oled screen" still anchor on "screen".
func (s MatchScorer) LooseMatch(expertise []string, diag models.Diagnosis, services []models.ShopService) bool {
	corpus := buildCorpus(expertise, services)
	for _, term := range []string{diag.RepairComponent, diag.DeviceBrand} {
		for _, word := range strings.Fields(normalize(term)) {
			if hit, _ := corpus.hit(word); hit {
				return true
			}
		}
	}
	return false
}

// matchCorpus is the normalized text the diagnosis terms are tested against.
type matchCorpus []string

// hit tests bidirectional containment: the corpus entry contains the term or
// the term contains the entry. The second leg catches short tags inside long
// diagnosis phrases.
func (c matchCorpus) hit(term string) (hit, exact bool) {
	for _, entry := range c {
		if entry == term {
			return true, true
		}
		if strings.Contains(entry, term) || strings.Contains(term, entry) {
			hit = true
		}
	}
	return hit, false
}

func buildCorpus(expertise []string, services []models.ShopService) matchCorpus {
	corpus := make(matchCorpus, 0, len(expertise)+len(services))
	for _, tag := range expertise {
		if t := normalize(tag); t != "" {
			corpus = append(corpus, t)
		}
	}
	for _, svc := range services {
		if !svc.Offered() {
			continue
		}
		text := normalize(strings.Join([]string{svc.Name, svc.Description, svc.Type}, " "))
		if strings.TrimSpace(text) != "" {
			corpus = append(corpus, text)
		}
	}
	return corpus
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
