package usecase

import (
	"context"
	"log"
	"sort"
	"strings"

	"github.com/rosechem/whatsapp-bot/internal/domain"
)

// Field weights for general relevance scoring
const (
	weightName        = 15.0
	weightDescription = 8.0
	weightKeywords    = 10.0
	weightUses        = 6.0
	weightSearchTerms = 12.0
	weightCategory    = 7.0
	weightFeatures    = 5.0
)

// Priority-pass name-match weights and threshold
const (
	priorityExactName  = 100.0
	priorityNamePrefix = 80.0
	priorityNameSubstr = 50.0
	priorityAlignBonus = 20.0
	priorityMinScore   = 10.0
)

// Additional scoring signals
const (
	remoteCleaningToolBonus = 30.0 // remote-sourced cleaning tools float up
	popularityFloor         = 50.0 // unmapped-intent fallback cutoff
	minTermLength           = 2    // query terms must be longer than this
)

// intentCategories maps intents to the catalog category they browse.
// Used for the empty-query fallback and the priority pass.
var intentCategories = map[domain.IntentLabel]string{
	domain.IntentDIYKit:        "diy_kits",
	domain.IntentReadyProducts: "ready_to_use_chemicals",
	domain.IntentRawMaterials:  "chemical_raw_materials",
	domain.IntentBroom:         "brooms",
	domain.IntentBrush:         "brushes",
	domain.IntentMop:           "mops",
	domain.IntentWiper:         "wipers",
	domain.IntentCleaningTools: "cleaning_tools",
	domain.IntentFloorCleaner:  "ready_to_use_chemicals",
	domain.IntentDishCleaner:   "ready_to_use_chemicals",
	domain.IntentToiletCleaner: "ready_to_use_chemicals",
	domain.IntentFabricCare:    "diy_kits",
	domain.IntentContainer:     "containers",
}

// priorityIntents are category-browse intents where a match inside the
// mapped category short-circuits general scoring entirely.
var priorityIntents = map[domain.IntentLabel]bool{
	domain.IntentBroom:         true,
	domain.IntentBrush:         true,
	domain.IntentMop:           true,
	domain.IntentWiper:         true,
	domain.IntentCleaningTools: true,
	domain.IntentFloorCleaner:  true,
	domain.IntentDishCleaner:   true,
	domain.IntentToiletCleaner: true,
	domain.IntentFabricCare:    true,
	domain.IntentContainer:     true,
}

// intentBoost returns the static intent-category alignment boost
func intentBoost(intent domain.IntentLabel, p *domain.Product) float64 {
	switch intent {
	case domain.IntentDIYKit:
		if p.CategoryKey == "diy_kits" {
			return 20
		}
	case domain.IntentReadyProducts:
		if p.CategoryKey == "ready_to_use_chemicals" {
			return 15
		}
	case domain.IntentRawMaterials:
		if p.CategoryKey == "chemical_raw_materials" {
			return 15
		}
	case domain.IntentFragrance:
		for _, k := range p.Keywords {
			if strings.Contains(k, "fragrance") {
				return 10
			}
		}
	}
	return 0
}

// cleaningToolWords drive the remote cleaning-tool heuristic
var cleaningToolWords = []string{"broom", "brush", "mop", "wiper", "squeegee", "scrubber", "duster", "cleaning tool"}

// Ranker computes relevance-ordered product lists for a query and intent.
// The local catalog snapshot is immutable; the storefront client is
// best-effort and may be nil.
type Ranker struct {
	catalog            *domain.Catalog
	storefront         domain.StorefrontClient
	enableDebugLogging bool
}

// NewRanker creates a ranker over the given catalog snapshot
func NewRanker(catalog *domain.Catalog, storefront domain.StorefrontClient, enableDebugLogging bool) *Ranker {
	return &Ranker{
		catalog:            catalog,
		storefront:         storefront,
		enableDebugLogging: enableDebugLogging,
	}
}

// Rank returns up to limit products ordered by descending relevance.
// Remote storefront failures degrade to local-only results; the call
// itself never fails.
func (r *Ranker) Rank(ctx context.Context, query string, intent domain.IntentLabel, limit int) []domain.ScoredProduct {
	candidates := r.catalog.Products()

	if remote := r.fetchRemote(ctx, query, intent); len(remote) > 0 {
		candidates = append(candidates, remote...)
	}

	return RankProducts(query, intent, candidates, limit)
}

// fetchRemote pulls storefront candidates: featured items for empty
// queries, the mapped category for browse intents, search otherwise.
// Errors are logged and swallowed: ranking must proceed with the local
// catalog.
func (r *Ranker) fetchRemote(ctx context.Context, query string, intent domain.IntentLabel) []domain.Product {
	if r.storefront == nil {
		return nil
	}

	var products []domain.Product
	var err error
	switch {
	case strings.TrimSpace(query) == "":
		products, err = r.storefront.FeaturedProducts(ctx)
	case priorityIntents[intent]:
		products, err = r.storefront.ProductsByCategory(ctx, intentCategories[intent])
	default:
		products, err = r.storefront.SearchProducts(ctx, query)
	}
	if err != nil {
		log.Printf("[RANK] storefront fetch failed, using local catalog only: %v", err)
		return nil
	}

	var complete []domain.Product
	for _, p := range products {
		if p.Complete() {
			complete = append(complete, p)
		}
	}

	if r.enableDebugLogging {
		log.Printf("[RANK] merged %d remote products for %q", len(complete), query)
	}
	return complete
}

// RankProducts scores the candidate pool for the query and intent and
// returns the top results. Pure function: identical inputs yield
// identical output, ties keep candidate order (stable sort).
func RankProducts(query string, intent domain.IntentLabel, candidates []domain.Product, limit int) []domain.ScoredProduct {
	pool := make([]domain.Product, 0, len(candidates))
	for _, p := range candidates {
		if p.Complete() {
			pool = append(pool, p)
		}
	}

	terms := queryTerms(query)
	if len(terms) == 0 {
		return popularityFallback(intent, pool, limit)
	}

	if priorityIntents[intent] {
		if ranked := priorityPass(terms, intent, pool, limit); len(ranked) > 0 {
			return ranked
		}
	}

	scored := make([]domain.ScoredProduct, 0, len(pool))
	for _, p := range pool {
		score := generalScore(terms, &p)
		score += intentBoost(intent, &p)
		score += p.PopularityScore / 10

		if p.Source == domain.SourceRemote && isCleaningTool(&p) {
			score += remoteCleaningToolBonus
		}

		if score > 0 {
			scored = append(scored, domain.ScoredProduct{Product: p, Score: score})
		}
	}

	sortByScore(scored)
	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}

// queryTerms splits the query into lower-cased terms longer than two
// characters, dropping stopword-like short tokens
func queryTerms(query string) []string {
	var terms []string
	for _, t := range strings.Fields(strings.ToLower(query)) {
		if len(t) > minTermLength {
			terms = append(terms, t)
		}
	}
	return terms
}

// popularityFallback handles empty queries: filter to the intent's
// category (or to generally popular products) and order by popularity
func popularityFallback(intent domain.IntentLabel, pool []domain.Product, limit int) []domain.ScoredProduct {
	var filtered []domain.Product
	if key, ok := intentCategories[intent]; ok {
		for _, p := range pool {
			if p.CategoryKey == key {
				filtered = append(filtered, p)
			}
		}
	} else {
		for _, p := range pool {
			if p.PopularityScore > popularityFloor {
				filtered = append(filtered, p)
			}
		}
	}

	scored := make([]domain.ScoredProduct, 0, len(filtered))
	for _, p := range filtered {
		scored = append(scored, domain.ScoredProduct{Product: p, Score: p.PopularityScore})
	}

	sortByScore(scored)
	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}

// priorityPass scores only products in the intent's mapped category by
// name match strength. A hit above the minimum threshold bypasses general
// scoring entirely, so a weak category match can outrank a stronger
// cross-category one.
func priorityPass(terms []string, intent domain.IntentLabel, pool []domain.Product, limit int) []domain.ScoredProduct {
	key := intentCategories[intent]
	if key == "" {
		return nil
	}

	var scored []domain.ScoredProduct
	for _, p := range pool {
		if p.CategoryKey != key {
			continue
		}

		name := strings.ToLower(p.Name)
		score := 0.0
		for _, term := range terms {
			switch {
			case name == term:
				score += priorityExactName
			case strings.HasPrefix(name, term):
				score += priorityNamePrefix
			case strings.Contains(name, term):
				score += priorityNameSubstr
			}
		}
		score += priorityAlignBonus

		if score > priorityMinScore {
			scored = append(scored, domain.ScoredProduct{Product: p, Score: score})
		}
	}

	if len(scored) == 0 {
		return nil
	}

	sortByScore(scored)
	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}

// generalScore runs the weighted field-membership scoring for one product
func generalScore(terms []string, p *domain.Product) float64 {
	fields := []struct {
		value  string
		weight float64
		isName bool
	}{
		{p.Name, weightName, true},
		{p.Description, weightDescription, false},
		{strings.Join(p.Keywords, " "), weightKeywords, false},
		{strings.Join(p.Uses, " "), weightUses, false},
		{strings.Join(p.SearchTerms, " "), weightSearchTerms, false},
		{p.CategoryName, weightCategory, false},
		{strings.Join(p.Features, " "), weightFeatures, false},
	}

	score := 0.0
	for _, term := range terms {
		for _, f := range fields {
			if f.value == "" || !strings.Contains(strings.ToLower(f.value), term) {
				continue
			}
			if f.isName {
				// name hits count double
				score += f.weight * 2
			} else {
				score += f.weight
			}
		}
	}
	return score
}

// isCleaningTool reports whether a product looks like a household
// cleaning tool based on its name, category, and keywords
func isCleaningTool(p *domain.Product) bool {
	haystack := strings.ToLower(p.Name + " " + p.CategoryName + " " + strings.Join(p.Keywords, " "))
	for _, w := range cleaningToolWords {
		if strings.Contains(haystack, w) {
			return true
		}
	}
	return false
}

// sortByScore stable-sorts by descending score, keeping candidate order
// for equal scores
func sortByScore(scored []domain.ScoredProduct) {
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
}
