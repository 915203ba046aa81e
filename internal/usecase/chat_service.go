package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/rosechem/whatsapp-bot/internal/domain"
)

const (
	productLimit     = 5  // ranked products per reply
	faqResultLimit   = 3  // knowledge entries blended into the prompt
	historyWindow    = 10 // trailing conversation turns sent to the AI
	storedTextBudget = 200
)

// languageOption maps a menu digit to a language and its welcome message
type languageOption struct {
	code    string
	name    string
	welcome string
}

var languageMenu = map[string]languageOption{
	"1": {"en-IN", "English", "Welcome to Rose Chemicals! How can I help you?"},
	"2": {"ta-IN", "Tamil", "ரோஸ் கெமிக்கல்ஸிற்கு வரவேற்கிறோம்! நான் உங்களுக்கு எப்படி உதவ முடியும்?"},
	"3": {"hi-IN", "Hindi", "रोज़ केमिकल्स में आपका स्वागत है! मैं आपकी कैसे मदद कर सकता हूँ?"},
	"4": {"ml-IN", "Malayalam", "റോസ് കെമിക്കൽസിലേക്ക് സ്വാഗതം! എനിക്ക് നിങ്ങളെ എങ്ങനെ സഹായിക്കാനാകും?"},
	"5": {"te-IN", "Telugu", "రోజ్ కెమికల్స్ కి స్వాగతం! నేను మీకు ఎలా సహాయపడగలను?"},
	"6": {"kn-IN", "Kannada", "ರೋಸ್ ಕೆಮಿಕಲ್ಸ್‌ಗೆ ಸ್ವಾಗತ! ನಾನು ನಿಮಗೆ ಹೇಗೆ ಸಹಾಯ ಮಾಡಬಲ್ಲೆ?"},
}

const languageMenuMessage = "🙏 Welcome to Rose Chemicals! Please select your language:\n\n" +
	"1. English\n2. Tamil\n3. Hindi\n4. Malayalam\n5. Telugu\n6. Kannada\n\n" +
	"Reply with the number (e.g., 2)."

const languageRetryMessage = "Please reply with a number from 1 to 6.\n\n" +
	"1. English\n2. Tamil\n3. Hindi\n4. Malayalam\n5. Telugu\n6. Kannada"

// ChatService orchestrates one inbound message end to end: language menu
// state machine, intent classification, ranking, prompt assembly, AI
// reply, outbound send, persistence and analytics.
type ChatService struct {
	classifier *IntentClassifier
	ranker     *Ranker
	knowledge  *KnowledgeBase
	store      domain.ConversationStore
	analytics  domain.AnalyticsSink
	sender     domain.MessageSender
	generator  domain.ReplyGenerator
}

// NewChatService wires the chat pipeline
func NewChatService(
	classifier *IntentClassifier,
	ranker *Ranker,
	knowledge *KnowledgeBase,
	store domain.ConversationStore,
	analytics domain.AnalyticsSink,
	sender domain.MessageSender,
	generator domain.ReplyGenerator,
) *ChatService {
	return &ChatService{
		classifier: classifier,
		ranker:     ranker,
		knowledge:  knowledge,
		store:      store,
		analytics:  analytics,
		sender:     sender,
		generator:  generator,
	}
}

// HandleMessage processes one inbound text message from a user. Errors
// from collaborators degrade to fallback replies; the only errors
// returned are persistence or send failures worth surfacing to the log.
func (s *ChatService) HandleMessage(ctx context.Context, from, text string) error {
	started := time.Now()

	conv, err := s.store.Find(ctx, from)
	if err != nil {
		if err != domain.ErrConversationNotFound {
			return fmt.Errorf("failed to load conversation: %w", err)
		}
		conv = &domain.Conversation{
			PhoneNumber:      from,
			Language:         "en-IN",
			InteractionState: domain.StateIdle,
		}
	}

	input := strings.TrimSpace(text)
	lower := strings.ToLower(input)

	// Greeting resets into the language menu
	if lower == "hello" || lower == "hi" || lower == "menu" {
		conv.InteractionState = domain.StateAwaitingLanguage
		if err := s.store.Save(ctx, conv); err != nil {
			return fmt.Errorf("failed to save conversation: %w", err)
		}
		return s.sender.Send(ctx, from, languageMenuMessage)
	}

	if conv.InteractionState == domain.StateAwaitingLanguage {
		return s.handleLanguageSelection(ctx, conv, input)
	}

	return s.handleChat(ctx, conv, text, started)
}

// handleLanguageSelection processes the 1-6 menu reply
func (s *ChatService) handleLanguageSelection(ctx context.Context, conv *domain.Conversation, input string) error {
	option, ok := languageMenu[input]
	if !ok {
		return s.sender.Send(ctx, conv.PhoneNumber, languageRetryMessage)
	}

	conv.Language = option.code
	conv.InteractionState = domain.StateIdle
	if err := s.store.Save(ctx, conv); err != nil {
		return fmt.Errorf("failed to save conversation: %w", err)
	}

	log.Printf("[CHAT] %s selected language %s", hashPhone(conv.PhoneNumber), option.name)
	return s.sender.Send(ctx, conv.PhoneNumber, option.welcome)
}

// handleChat runs the classify -> rank -> generate -> send pipeline
func (s *ChatService) handleChat(ctx context.Context, conv *domain.Conversation, text string, started time.Time) error {
	intent := s.classifier.Classify(text)
	products := s.ranker.Rank(ctx, text, intent, productLimit)

	var faqMatches []domain.ScoredEntry
	if IsFAQQuery(text) {
		faqMatches = s.knowledge.Search(text, faqResultLimit)
	}

	prompt := s.buildPrompt(intent, products, faqMatches, conv.Language)

	reply, err := s.generator.Generate(ctx, prompt, conv.RecentMessages(historyWindow), conv.Language)
	if err != nil {
		log.Printf("[CHAT] AI generation failed, falling back to formatted list: %v", err)
		reply = s.fallbackReply(products, faqMatches, intent, conv.Language)
	}

	if err := s.sender.Send(ctx, conv.PhoneNumber, reply); err != nil {
		return err
	}

	now := time.Now()
	conv.Messages = append(conv.Messages,
		domain.Message{Role: "user", Content: text, Timestamp: now},
		domain.Message{Role: "assistant", Content: reply, Timestamp: now},
	)
	conv.LastIntent = intent
	conv.TotalInteractions++
	if err := s.store.Save(ctx, conv); err != nil {
		return fmt.Errorf("failed to save conversation: %w", err)
	}

	s.recordInteraction(ctx, conv, intent, text, reply, len(products), time.Since(started))
	return nil
}

// buildPrompt assembles the system prompt from business context, ranked
// products and FAQ matches
func (s *ChatService) buildPrompt(intent domain.IntentLabel, products []domain.ScoredProduct, faqMatches []domain.ScoredEntry, language string) string {
	var b strings.Builder

	b.WriteString("You are the WhatsApp assistant for Rose Chemicals, a cleaning-products manufacturer in Chennai. ")
	b.WriteString("Answer briefly and helpfully. Reply in the language tagged ")
	b.WriteString(language)
	b.WriteString(".\n\nDetected topic: ")
	b.WriteString(string(intent))
	b.WriteString("\n")

	if len(products) > 0 {
		b.WriteString("\nRelevant products:\n")
		for _, sp := range products {
			fmt.Fprintf(&b, "- %s (₹%.0f", sp.Product.Name, *sp.Product.Price)
			if sp.Product.Yield != "" {
				fmt.Fprintf(&b, ", makes %s", sp.Product.Yield)
			}
			b.WriteString(")\n")
		}
	}

	if len(faqMatches) > 0 {
		b.WriteString("\nKnowledge base answers to draw on:\n")
		for _, m := range faqMatches {
			fmt.Fprintf(&b, "Q: %s\nA: %s\n", m.Entry.Question, m.Entry.Answer)
		}
	}

	b.WriteString("\nFor anything you cannot answer, direct the customer to call +91 8610570490.")
	return b.String()
}

// fallbackReply produces a usable reply when the AI service is down
func (s *ChatService) fallbackReply(products []domain.ScoredProduct, faqMatches []domain.ScoredEntry, intent domain.IntentLabel, language string) string {
	if len(faqMatches) > 0 && len(products) == 0 {
		return faqMatches[0].Entry.Answer
	}
	if priorityIntents[intent] && len(products) > 0 {
		return FormatCategoryGroups(products, language)
	}
	return FormatProducts(products, intent, language)
}

// recordInteraction writes analytics. Failures are logged and swallowed.
func (s *ChatService) recordInteraction(ctx context.Context, conv *domain.Conversation, intent domain.IntentLabel, text, reply string, productsFound int, elapsed time.Duration) {
	if s.analytics == nil {
		return
	}

	interaction := &domain.Interaction{
		PhoneHash:          hashPhone(conv.PhoneNumber),
		Timestamp:          time.Now(),
		Intent:             intent,
		UserMessage:        truncate(text, storedTextBudget),
		Reply:              truncate(reply, storedTextBudget),
		Language:           conv.Language,
		ResponseTimeMillis: elapsed.Milliseconds(),
		ProductsFound:      productsFound,
		ConversationLength: conv.TotalInteractions,
	}

	if err := s.analytics.Record(ctx, interaction); err != nil {
		log.Printf("[ANALYTICS] record failed: %v", err)
	}
}

// hashPhone derives a short privacy-preserving identifier from a phone
// number
func hashPhone(phoneNumber string) string {
	sum := sha256.Sum256([]byte(phoneNumber))
	return hex.EncodeToString(sum[:])[:8]
}
