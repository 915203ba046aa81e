package storefront

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/rosechem/whatsapp-bot/internal/domain"
)

// rawProduct is the loosely-shaped record the storefront returns.
// Identifier and price fields come under either of two names depending on
// the endpoint, and prices may be numbers or formatted strings.
type rawProduct struct {
	ID          string          `json:"id"`
	Slug        string          `json:"slug"`
	Name        string          `json:"name"`
	Title       string          `json:"title"`
	Price       json.RawMessage `json:"price"`
	MRP         json.RawMessage `json:"mrp"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Tags        []string        `json:"tags"`
	SearchTerms []string        `json:"search_terms"`
	Popularity  float64         `json:"popularity_score"`
}

// MapProducts normalizes raw storefront records into domain products
// tagged with the remote source
func MapProducts(raw []rawProduct) []domain.Product {
	products := make([]domain.Product, 0, len(raw))
	for i := range raw {
		products = append(products, mapProduct(&raw[i]))
	}
	return products
}

// mapProduct converts one record, coalescing the aliased fields
func mapProduct(r *rawProduct) domain.Product {
	id := r.ID
	if id == "" {
		id = r.Slug
	}
	name := r.Name
	if name == "" {
		name = r.Title
	}

	priceRaw := r.MRP
	if len(priceRaw) == 0 {
		priceRaw = r.Price
	}
	price := ParsePrice(priceRaw)

	return domain.Product{
		ID:              id,
		Name:            name,
		Price:           &price,
		Description:     r.Description,
		Keywords:        r.Tags,
		CategoryKey:     categoryKeyFor(r.Category),
		CategoryName:    r.Category,
		SearchTerms:     r.SearchTerms,
		PopularityScore: r.Popularity,
		Source:          domain.SourceRemote,
	}
}

// ParsePrice coerces a raw JSON price into a number. Strings are cleaned
// of currency symbols and thousands separators; anything unparseable
// defaults to 0.
func ParsePrice(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}

	var asNumber float64
	if err := json.Unmarshal(raw, &asNumber); err == nil {
		return asNumber
	}

	var asString string
	if err := json.Unmarshal(raw, &asString); err != nil {
		return 0
	}

	cleaned := strings.TrimSpace(asString)
	cleaned = strings.ReplaceAll(cleaned, "₹", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	lower := strings.ToLower(cleaned)
	for _, prefix := range []string{"rs.", "rs", "inr"} {
		if strings.HasPrefix(lower, prefix) {
			cleaned = cleaned[len(prefix):]
			break
		}
	}
	cleaned = strings.TrimSpace(cleaned)

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return value
}

// categoryKeyFor derives a catalog-style category key from a storefront
// display name ("Cleaning Tools" -> "cleaning_tools")
func categoryKeyFor(display string) string {
	key := strings.ToLower(strings.TrimSpace(display))
	key = strings.ReplaceAll(key, " ", "_")
	return key
}
