package usecase

import (
	"log"
	"regexp"
	"strings"

	"github.com/rosechem/whatsapp-bot/internal/domain"
)

// Keyword match scores for intent classification
const (
	scoreExactMessage = 10 // message is exactly the keyword
	scoreWholeToken   = 5  // keyword matches a whitespace-delimited token
	scoreSubstring    = 2  // keyword found anywhere else in the message
	scoreListingBoost = 3  // "what do you have" style phrasing
)

// listingPattern matches category-browse phrasing that boosts already
// matching intents
var listingPattern = regexp.MustCompile(`what.*do.*you.*have|show.*me|available`)

// intentKeywords associates one intent with its keyword list
type intentKeywords struct {
	label    domain.IntentLabel
	keywords []string
}

// taxonomy is the fixed intent set in declaration order. Order matters:
// the classifier breaks score ties in favor of the earlier entry.
var taxonomy = []intentKeywords{
	{domain.IntentDIYKit, []string{
		"kit", "diy", "make", "manufacture", "how to make", "fabric conditioner kit",
		"liquid detergent kit", "dish wash kit", "floor cleaner kit", "soap oil kit",
		"glass cleaner kit", "toilet bowl cleaner", "room freshener kit", "phenyl kit",
		"manufacturing kit", "production kit", "formula kit",
	}},
	{domain.IntentPrice, []string{
		"price", "cost", "rate", "mrp", "how much", "kitna", "cost per liter",
		"per litre", "pricing", "charges", "amount", "rupees", "rupee",
	}},
	{domain.IntentProductDetails, []string{
		"details", "information", "about", "tell me", "specification", "yield",
		"what is", "describe", "explain", "features", "benefits",
	}},
	{domain.IntentFranchise, []string{
		"franchise", "business", "dealership", "investment", "partner", "distributorship",
		"business opportunity", "tie up", "collaboration",
	}},
	{domain.IntentTechnicalHelp, []string{
		"how to", "guidance", "help", "support", "training", "video", "pdf",
		"tutorial", "instruction", "process", "method", "procedure",
	}},
	{domain.IntentSamples, []string{
		"sample", "trial", "test", "demo", "try", "testing", "check quality",
	}},
	{domain.IntentFragrance, []string{
		"fragrance", "perfume", "scent", "smell", "aroma", "fragrance options",
		"perfume options", "flavour", "variants",
	}},
	{domain.IntentOrdering, []string{
		"order", "buy", "purchase", "delivery", "shipping", "payment", "book",
		"place order", "want to buy", "need to order",
	}},
	{domain.IntentContact, []string{
		"contact", "phone", "address", "location", "visit", "call", "reach",
		"office", "where are you", "contact details",
	}},
	{domain.IntentWorkingHours, []string{
		"working hours", "office hours", "timing", "when open", "available when",
		"office time", "business hours",
	}},
	{domain.IntentGreeting, []string{
		"hi", "hello", "hey", "good morning", "good afternoon", "good evening",
		"namaste", "vanakkam", "namaskar", "adaab",
	}},
	{domain.IntentReadyProducts, []string{
		"ready products", "finished products", "readymade", "pre made", "prepared products",
	}},
	{domain.IntentBroom, []string{
		"broom", "brrom", "brum", "cleaning broom", "sweep", "sweeper", "sweeping broom",
		"house broom", "floor broom", "what brooms", "broom available", "show broom",
		"broom types", "broom varieties", "delux broom", "supriya broom", "tulsi broom",
	}},
	{domain.IntentBrush, []string{
		"brush", "toilet brush", "scrub brush", "cleaning brush", "kitchen brush",
		"sink brush", "what brushes", "brush available", "show brush", "brushes you have",
	}},
	{domain.IntentMop, []string{
		"mop", "mopping", "floor mop", "wet mop", "dry mop", "what mops", "mop available",
		"microfiber mop", "string mop", "show mop",
	}},
	{domain.IntentWiper, []string{
		"wiper", "squeegee", "window wiper", "glass wiper", "floor wiper",
		"what wipers", "wiper available", "show wiper",
	}},
	{domain.IntentCleaningTools, []string{
		"cleaning tools", "cleaning equipment", "household tools", "what tools",
		"cleaning accessories", "tools available", "show tools",
	}},
	{domain.IntentFloorCleaner, []string{
		"floor cleaner", "phenyl", "mopping liquid", "floor cleaning", "tile cleaner",
		"surface cleaner", "floor wash",
	}},
	{domain.IntentDishCleaner, []string{
		"dish wash", "dishwash", "utensil cleaner", "kitchen cleaner", "grease remover",
		"dish liquid", "plate cleaner",
	}},
	{domain.IntentToiletCleaner, []string{
		"toilet cleaner", "bathroom cleaner", "wc cleaner", "commode cleaner",
		"washroom cleaner", "toilet bowl",
	}},
	{domain.IntentFabricCare, []string{
		"fabric conditioner", "softener", "clothes conditioner", "laundry softener",
		"fabric softener", "conditioner",
	}},
	{domain.IntentContainer, []string{
		"container", "bottle", "packaging", "storage", "what containers",
		"container available", "packaging material",
	}},
	{domain.IntentFAQTraining, []string{
		"training", "workshop", "learn", "teach", "session", "course",
		"hands on", "online training", "manufacturing video", "pdf guide",
	}},
	{domain.IntentFAQDelivery, []string{
		"delivery", "shipping", "dispatch", "courier", "transport",
		"how long", "delivery time", "when reach", "tracking",
	}},
	{domain.IntentFAQPayment, []string{
		"payment", "pay", "upi", "bank transfer", "payment method",
		"credit", "advance payment", "how to pay",
	}},
	{domain.IntentFAQFormulation, []string{
		"formulation", "formula", "recipe", "process sheet",
		"raw material list", "documentation", "customize formula",
	}},
	{domain.IntentFAQCustomize, []string{
		"customize", "custom", "personalize", "adjust", "modify",
		"private label", "oem", "white label", "own brand",
	}},
	{domain.IntentFAQSafety, []string{
		"safety", "precaution", "sds", "msds", "safety data sheet",
		"protective gear", "safety standard", "compliance",
	}},
	{domain.IntentFAQCatalogue, []string{
		"catalogue", "catalog", "brochure", "product list", "download",
	}},
	{domain.IntentGeneral, []string{
		"help", "info", "thanks", "okay", "ok", "yes", "no",
	}},
}

// IntentClassifier scores free text against the fixed intent taxonomy
type IntentClassifier struct {
	enableDebugLogging bool
}

// NewIntentClassifier creates a new classifier
func NewIntentClassifier(enableDebugLogging bool) *IntentClassifier {
	return &IntentClassifier{enableDebugLogging: enableDebugLogging}
}

// Classify returns the best-scoring intent for the message, or
// IntentGeneral when nothing scores. Pure and deterministic: ties resolve
// to the intent declared first in the taxonomy.
func (c *IntentClassifier) Classify(text string) domain.IntentLabel {
	msg := strings.ToLower(text)
	tokens := strings.Fields(msg)
	isListing := listingPattern.MatchString(msg)

	best := domain.IntentGeneral
	bestScore := 0

	for _, entry := range taxonomy {
		score := 0
		for _, keyword := range entry.keywords {
			if !strings.Contains(msg, keyword) {
				continue
			}
			switch {
			case msg == keyword:
				score += scoreExactMessage
			case containsToken(tokens, keyword):
				score += scoreWholeToken
			default:
				score += scoreSubstring
			}
		}

		if isListing && score > 0 {
			score += scoreListingBoost
		}

		if score > bestScore {
			bestScore = score
			best = entry.label
		}
	}

	if c.enableDebugLogging {
		log.Printf("[INTENT] %q -> %s (score %d)", text, best, bestScore)
	}

	return best
}

// containsToken reports whether keyword equals any whitespace token
func containsToken(tokens []string, keyword string) bool {
	for _, t := range tokens {
		if t == keyword {
			return true
		}
	}
	return false
}
