package usecase

import (
	"sort"
	"strings"

	"github.com/rosechem/whatsapp-bot/internal/domain"
)

// Knowledge-base match scores
const (
	kbKeywordScore  = 10.0 // entry keyword appears in the query
	kbQuestionScore = 15.0 // query contains the question's opening text
	kbQuestionAffix = 20   // characters of the question used for matching
)

// faqWords flag a message as FAQ-shaped. Multi-word entries match as
// substrings; single words match at token starts, so "show" never trips
// on "how".
var faqWords = []string{
	"how", "what", "when", "where", "can i", "do you",
	"working hours", "contact", "address", "phone", "email",
	"franchise", "training", "delivery", "payment", "order",
	"samples", "catalogue", "formulation", "customiz",
}

// KnowledgeBase scores FAQ entries against free-text queries. Structurally
// the same keyword-plus-priority scoring as the product ranker, over a
// flattened set of knowledge sections.
type KnowledgeBase struct {
	entries []domain.KnowledgeEntry
}

// NewKnowledgeBase creates a matcher over the flattened entry set
func NewKnowledgeBase(entries []domain.KnowledgeEntry) *KnowledgeBase {
	return &KnowledgeBase{entries: entries}
}

// Search returns up to maxResults entries ordered by descending match
// score. Entries scoring zero or below are excluded.
func (kb *KnowledgeBase) Search(query string, maxResults int) []domain.ScoredEntry {
	queryLower := strings.ToLower(query)

	var scored []domain.ScoredEntry
	for _, entry := range kb.entries {
		score := scoreEntry(queryLower, &entry)
		if score > 0 {
			scored = append(scored, domain.ScoredEntry{Entry: entry, Score: score})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > maxResults {
		scored = scored[:maxResults]
	}
	return scored
}

// Answer returns the best-matching entry's answer, or "" when nothing
// matches
func (kb *KnowledgeBase) Answer(query string) string {
	results := kb.Search(query, 1)
	if len(results) == 0 {
		return ""
	}
	return results[0].Entry.Answer
}

// scoreEntry computes one entry's match score against a lower-cased query
func scoreEntry(queryLower string, entry *domain.KnowledgeEntry) float64 {
	score := 0.0

	for _, keyword := range entry.Keywords {
		if strings.Contains(queryLower, strings.ToLower(keyword)) {
			score += kbKeywordScore
		}
	}

	if entry.Question != "" {
		prefix := []rune(strings.ToLower(entry.Question))
		if len(prefix) > kbQuestionAffix {
			prefix = prefix[:kbQuestionAffix]
		}
		if strings.Contains(queryLower, string(prefix)) {
			score += kbQuestionScore
		}
	}

	score += entry.Priority / 10
	return score
}

// IsFAQQuery reports whether a message's surface form suggests it seeks a
// knowledge-base answer rather than a product
func IsFAQQuery(text string) bool {
	queryLower := strings.ToLower(text)
	tokens := strings.Fields(queryLower)

	for _, w := range faqWords {
		if strings.Contains(w, " ") {
			if strings.Contains(queryLower, w) {
				return true
			}
			continue
		}
		for _, token := range tokens {
			if strings.HasPrefix(token, w) {
				return true
			}
		}
	}
	return false
}
