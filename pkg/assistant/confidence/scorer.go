package confidence

import (
	"regexp"
	"strings"

	"support-assistant-be/pkg/store"
)

var (
	specificRe = regexp.MustCompile(`(?i)specific|exactly|precisely|specifically`)
	genericRe  = regexp.MustCompile(`(?i)I don't know|I'm not sure|I can't help|I don't have specific information`)
)

// Scorer quantifies how trustworthy a composed answer is, based on the
// retrieval that produced it. Pure function of its inputs: no state, no
// side effects, deterministic.
type Scorer struct{}

// NewScorer creates a confidence scorer
func NewScorer() *Scorer {
	return &Scorer{}
}

// Score returns a confidence value in [0,1]. The weights are tunable
// policy, but the shape is contractual: more high-priority matching chunks
// never lower the score, and identical inputs always score identically.
func (s *Scorer) Score(chunks []store.RetrievedChunk, query, answer string) float64 {
	score := 0.0

	// Retrieval volume
	switch {
	case len(chunks) >= 3:
		score += 0.35
	case len(chunks) == 2:
		score += 0.25
	case len(chunks) == 1:
		score += 0.15
	}

	// High-priority material, monotonic in the number of such chunks
	highCount := 0
	for _, c := range chunks {
		if c.Metadata.Priority == "high" {
			highCount++
		}
	}
	if highCount > 0 {
		bonus := 0.1 + 0.05*float64(highCount-1)
		if bonus > 0.2 {
			bonus = 0.2
		}
		score += bonus
	}

	// Lexical overlap between query terms and the composed answer
	score += 0.15 * termOverlap(query, answer)

	// Longer answers carry more detail
	switch {
	case len(answer) > 200:
		score += 0.15
	case len(answer) > 100:
		score += 0.08
	}

	if specificRe.MatchString(answer) {
		score += 0.05
	}
	if genericRe.MatchString(answer) {
		score -= 0.3
	}

	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// termOverlap is the fraction of meaningful query terms that appear in the
// answer. Terms of three characters or fewer are skipped as noise.
func termOverlap(query, answer string) float64 {
	lowerAnswer := strings.ToLower(answer)
	terms := strings.Fields(strings.ToLower(query))

	total, hits := 0, 0
	for _, term := range terms {
		term = strings.Trim(term, ".,!?\"'")
		if len(term) <= 3 {
			continue
		}
		total++
		if strings.Contains(lowerAnswer, term) {
			hits++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}
