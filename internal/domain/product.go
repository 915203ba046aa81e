package domain

// ProductSource identifies where a catalog entry came from
type ProductSource string

const (
	// SourceLocal marks products loaded from the static catalog file
	SourceLocal ProductSource = "local"
	// SourceRemote marks products fetched live from the storefront API
	SourceRemote ProductSource = "remote"
)

// Product represents one sellable item from either catalog source
type Product struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Price        *float64      `json:"mrp,omitempty"` // nil for incomplete entries
	Description  string        `json:"description,omitempty"`
	Uses         []string      `json:"uses,omitempty"`
	Keywords     []string      `json:"keywords,omitempty"`
	CategoryKey  string        `json:"categoryKey"`
	CategoryName string        `json:"category"`
	Source       ProductSource `json:"source"`

	// DIY kit fields
	Yield             string   `json:"yield,omitempty"`
	CostPerLiter      string   `json:"cost_per_liter,omitempty"`
	ManufacturingTime string   `json:"manufacturing_time,omitempty"`
	Fragrances        []string `json:"fragrances,omitempty"`
	KitContents       []string `json:"kit_contents,omitempty"`

	// Search metadata
	Features        []string `json:"features,omitempty"`
	SearchTerms     []string `json:"search_terms,omitempty"`
	PopularityScore float64  `json:"popularity_score,omitempty"` // 0-100
}

// Complete reports whether the product has the fields required for
// ranking and display. Entries without a name or price are data-quality
// casualties and never enter a candidate pool.
func (p *Product) Complete() bool {
	return p.Name != "" && p.Price != nil
}

// Category is a named grouping of products keyed by CategoryKey
type Category struct {
	Key      string    `json:"-"`
	Name     string    `json:"name"`
	Products []Product `json:"products"`
}

// ScoredProduct wraps a product with its relevance score for one query.
// Ephemeral: produced by ranking, discarded after formatting.
type ScoredProduct struct {
	Product Product `json:"product"`
	Score   float64 `json:"score"`
}

// KnowledgeEntry is one FAQ unit from the knowledge base
type KnowledgeEntry struct {
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Keywords []string `json:"keywords,omitempty"`
	Priority float64  `json:"priority,omitempty"`
}

// ScoredEntry wraps a knowledge entry with its match score
type ScoredEntry struct {
	Entry KnowledgeEntry
	Score float64
}

// Catalog is the immutable in-memory snapshot loaded at startup
type Catalog struct {
	Categories []Category
	Knowledge  []KnowledgeEntry
}

// Products flattens all complete products across categories, preserving
// category declaration order. Incomplete entries are skipped.
func (c *Catalog) Products() []Product {
	var all []Product
	for _, cat := range c.Categories {
		for _, p := range cat.Products {
			if !p.Complete() {
				continue
			}
			p.CategoryKey = cat.Key
			p.CategoryName = cat.Name
			p.Source = SourceLocal
			all = append(all, p)
		}
	}
	return all
}
