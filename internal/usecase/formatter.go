package usecase

import (
	"fmt"
	"strings"

	"github.com/rosechem/whatsapp-bot/internal/domain"
)

// Formatting limits
const (
	descriptionBudget = 80 // description characters before truncation
	listPreviewCount  = 2  // fragrances/kit contents shown before "+more"
	tierItemCap       = 4  // products rendered per price tier
	tierDisplayCap    = 12 // total products before the overflow line
)

// Price tier boundaries for category browsing
const (
	tierPremiumMin  = 100.0
	tierStandardMin = 70.0
)

const defaultLanguage = "en-IN"

const supportPhone = "+91 8610570490"

// noResultMessages are the per-language fallbacks for empty rankings.
// Unknown languages fall back to English.
var noResultMessages = map[string]string{
	"en-IN": "Sorry, I couldn't find any products matching your query. Please try different keywords or ask about our main categories: DIY Kits, Raw Materials, Ready-to-use products.",
	"ta-IN": "மன்னிக்கவும், உங்கள் தேடலுக்கு பொருந்தும் தயாரிப்புகள் எதுவும் கிடைக்கவில்லை. வேறு முக்கிய வார்த்தைகளை முயற்சிக்கவும்.",
	"hi-IN": "क्षमा करें, आपकी खोज से मेल खाने वाले कोई उत्पाद नहीं मिले। कृपया अलग कीवर्ड आज़माएं।",
}

// FormatProducts renders ranked products into the WhatsApp reply body:
// an intent-specific header, one block per product, and an intent-specific
// call to action. Empty input yields the language's no-result message.
func FormatProducts(products []domain.ScoredProduct, intent domain.IntentLabel, language string) string {
	if len(products) == 0 {
		return NoResultMessage(language)
	}

	var b strings.Builder

	switch intent {
	case domain.IntentDIYKit:
		b.WriteString("🌸 *Our DIY Manufacturing Kits:*\n\n")
	case domain.IntentPrice:
		b.WriteString("💰 *Current Pricing:*\n\n")
	default:
		fmt.Fprintf(&b, "✨ *Found %d products for you:*\n\n", len(products))
	}

	for i, sp := range products {
		writeProductBlock(&b, i+1, &sp.Product)
	}

	switch intent {
	case domain.IntentDIYKit:
		b.WriteString("🎯 *Each kit includes:* Complete formulation + PDF guide + Video tutorial\n")
		b.WriteString("📞 *Technical Support:* " + supportPhone)
	case domain.IntentPrice:
		b.WriteString("📞 *For bulk pricing:* " + supportPhone + "\n")
		b.WriteString("🚚 *Free delivery* on orders above ₹5000")
	default:
		b.WriteString("💡 *Need more details?* Ask about specific products\n")
		b.WriteString("📞 *Contact:* " + supportPhone)
	}

	return b.String()
}

// NoResultMessage returns the language-specific empty-result fallback
func NoResultMessage(language string) string {
	if msg, ok := noResultMessages[language]; ok {
		return msg
	}
	return noResultMessages[defaultLanguage]
}

// writeProductBlock renders one numbered product entry
func writeProductBlock(b *strings.Builder, rank int, p *domain.Product) {
	fmt.Fprintf(b, "%d. **%s**\n", rank, p.Name)
	fmt.Fprintf(b, "   💰 Price: ₹%s", formatPrice(p.Price))

	if p.Yield != "" {
		fmt.Fprintf(b, " | Makes: %s", p.Yield)
	}
	if p.CostPerLiter != "" {
		fmt.Fprintf(b, " | Cost/L: ₹%s", p.CostPerLiter)
	}
	b.WriteString("\n")

	if p.Description != "" {
		fmt.Fprintf(b, "   📝 %s\n", truncate(p.Description, descriptionBudget))
	}

	if p.CategoryKey == "diy_kits" {
		if p.ManufacturingTime != "" {
			fmt.Fprintf(b, "   ⏱️ Making time: %s\n", p.ManufacturingTime)
		}
		if len(p.Fragrances) > 0 {
			fmt.Fprintf(b, "   🌸 Fragrances: %s\n", previewList(p.Fragrances, "..."))
		}
		if len(p.KitContents) > 0 {
			fmt.Fprintf(b, "   📦 Includes: %s\n", previewList(p.KitContents, " & more"))
		}
	}

	b.WriteString("\n")
}

// FormatCategoryGroups buckets products into price tiers for
// category-browse intents (brooms, brushes, mops, wipers, generic tools)
func FormatCategoryGroups(products []domain.ScoredProduct, language string) string {
	if len(products) == 0 {
		return NoResultMessage(language)
	}

	var premium, standard, budget []domain.ScoredProduct
	for _, sp := range products {
		price := *sp.Product.Price
		switch {
		case price >= tierPremiumMin:
			premium = append(premium, sp)
		case price >= tierStandardMin:
			standard = append(standard, sp)
		default:
			budget = append(budget, sp)
		}
	}

	var b strings.Builder
	b.WriteString("🧹 *Our Range:*\n\n")
	writeTier(&b, "⭐ Premium (₹100+)", premium)
	writeTier(&b, "✔️ Standard (₹70-99)", standard)
	writeTier(&b, "💸 Budget (under ₹70)", budget)

	if len(products) > tierDisplayCap {
		fmt.Fprintf(&b, "...and %d more items. Ask for a specific type to narrow down!\n\n", len(products)-tierDisplayCap)
	}

	b.WriteString("📞 *Contact:* " + supportPhone)
	return b.String()
}

// writeTier renders up to tierItemCap products under a tier heading
func writeTier(b *strings.Builder, heading string, items []domain.ScoredProduct) {
	if len(items) == 0 {
		return
	}

	fmt.Fprintf(b, "%s\n", heading)
	for i, sp := range items {
		if i >= tierItemCap {
			break
		}
		fmt.Fprintf(b, "  • %s - ₹%s\n", sp.Product.Name, formatPrice(sp.Product.Price))
	}
	b.WriteString("\n")
}

// formatPrice renders a price without trailing zeros (₹1100, ₹55.5)
func formatPrice(price *float64) string {
	if price == nil {
		return "-"
	}
	s := fmt.Sprintf("%.2f", *price)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	return s
}

// truncate cuts free text to the character budget with an ellipsis marker
func truncate(s string, budget int) string {
	runes := []rune(s)
	if len(runes) <= budget {
		return s
	}
	return string(runes[:budget]) + "..."
}

// previewList shows the first entries of a list plus a more-marker when
// longer
func previewList(items []string, more string) string {
	if len(items) <= listPreviewCount {
		return strings.Join(items, ", ")
	}
	return strings.Join(items[:listPreviewCount], ", ") + more
}
