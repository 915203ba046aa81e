package catalog

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/rosechem/whatsapp-bot/internal/domain"
)

// categoryOrder fixes the category iteration order for the flattened
// product pool. Ranking tie-breaks depend on candidate order, so this must
// stay deterministic. Keys not listed sort alphabetically at the end.
var categoryOrder = []string{
	"diy_kits",
	"ready_to_use_chemicals",
	"chemical_raw_materials",
	"brooms",
	"brushes",
	"mops",
	"wipers",
	"cleaning_tools",
	"containers",
}

// knowledgeSections fixes the section flattening order for the knowledge
// base, mirroring the catalog file's logical grouping
var knowledgeSections = []string{
	"product_kits",
	"formulations",
	"franchise",
	"ordering_delivery_payment",
	"training_safety",
	"contact_information",
	"working_hours",
	"general",
}

// catalogFile is the on-disk shape of products.json
type catalogFile struct {
	Categories    map[string]fileCategory            `json:"categories"`
	KnowledgeBase map[string][]domain.KnowledgeEntry `json:"knowledge_base"`
}

type fileCategory struct {
	Name     string        `json:"name"`
	Products []fileProduct `json:"products"`
}

// fileProduct matches the legacy catalog schema, with search metadata
// nested under its own key
type fileProduct struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	MRP               *float64 `json:"mrp"`
	Description       string   `json:"description"`
	Uses              []string `json:"uses"`
	Keywords          []string `json:"keywords"`
	Yield             string   `json:"yield"`
	CostPerLiter      string   `json:"cost_per_liter"`
	ManufacturingTime string   `json:"manufacturing_time"`
	Fragrances        []string `json:"fragrances"`
	KitContents       []string `json:"kit_contents"`
	Features          []string `json:"features"`
	SearchMetadata    struct {
		SearchTerms     []string `json:"search_terms"`
		PopularityScore float64  `json:"popularity_score"`
	} `json:"search_metadata"`
}

// Load reads the catalog file and builds the immutable in-memory snapshot.
// Incomplete products stay in their category (the ranker filters them);
// knowledge sections flatten in fixed order.
func Load(path string) (*domain.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var file catalogFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}

	snapshot := &domain.Catalog{}

	for _, key := range orderedKeys(file.Categories) {
		cat := file.Categories[key]
		category := domain.Category{Key: key, Name: cat.Name}
		for _, fp := range cat.Products {
			category.Products = append(category.Products, fp.toDomain(key, cat.Name))
		}
		snapshot.Categories = append(snapshot.Categories, category)
	}

	for _, section := range knowledgeSections {
		snapshot.Knowledge = append(snapshot.Knowledge, file.KnowledgeBase[section]...)
	}

	log.Printf("[CATALOG] loaded %d categories, %d knowledge entries from %s",
		len(snapshot.Categories), len(snapshot.Knowledge), path)

	return snapshot, nil
}

// toDomain converts a legacy catalog record to the canonical product shape
func (fp *fileProduct) toDomain(categoryKey, categoryName string) domain.Product {
	return domain.Product{
		ID:                fp.ID,
		Name:              fp.Name,
		Price:             fp.MRP,
		Description:       fp.Description,
		Uses:              fp.Uses,
		Keywords:          fp.Keywords,
		CategoryKey:       categoryKey,
		CategoryName:      categoryName,
		Yield:             fp.Yield,
		CostPerLiter:      fp.CostPerLiter,
		ManufacturingTime: fp.ManufacturingTime,
		Fragrances:        fp.Fragrances,
		KitContents:       fp.KitContents,
		Features:          fp.Features,
		SearchTerms:       fp.SearchMetadata.SearchTerms,
		PopularityScore:   fp.SearchMetadata.PopularityScore,
		Source:            domain.SourceLocal,
	}
}

// orderedKeys returns category keys in the fixed order, with unknown keys
// appended alphabetically
func orderedKeys(categories map[string]fileCategory) []string {
	seen := make(map[string]bool, len(categories))
	var keys []string

	for _, key := range categoryOrder {
		if _, ok := categories[key]; ok {
			keys = append(keys, key)
			seen[key] = true
		}
	}

	var rest []string
	for key := range categories {
		if !seen[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)

	return append(keys, rest...)
}
