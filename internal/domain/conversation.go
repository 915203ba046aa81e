package domain

import "time"

// InteractionState is the two-state flag driving the language menu flow
type InteractionState string

const (
	StateIdle             InteractionState = "IDLE"
	StateAwaitingLanguage InteractionState = "AWAITING_LANGUAGE"
)

// Message is a single conversation turn
type Message struct {
	Role      string    `bson:"role" json:"role"` // "user" or "assistant"
	Content   string    `bson:"content" json:"content"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}

// Conversation holds one user's chat session, keyed by phone number
type Conversation struct {
	PhoneNumber       string           `bson:"phone_number" json:"phoneNumber"`
	Messages          []Message        `bson:"messages" json:"messages"`
	Language          string           `bson:"language" json:"language"` // BCP-47 tag, e.g. "en-IN"
	InteractionState  InteractionState `bson:"interaction_state" json:"interactionState"`
	LastIntent        IntentLabel      `bson:"last_intent" json:"lastIntent"`
	TotalInteractions int              `bson:"total_interactions" json:"totalInteractions"`
	LastUpdated       time.Time        `bson:"last_updated" json:"lastUpdated"`
}

// RecentMessages returns up to n of the most recent turns, oldest first.
// Used as read-only prompt context.
func (c *Conversation) RecentMessages(n int) []Message {
	if len(c.Messages) <= n {
		return c.Messages
	}
	return c.Messages[len(c.Messages)-n:]
}

// Interaction is one analytics record for a handled message
type Interaction struct {
	PhoneHash          string      `bson:"phone_hash" json:"phoneHash"`
	Timestamp          time.Time   `bson:"timestamp" json:"timestamp"`
	Intent             IntentLabel `bson:"intent" json:"intent"`
	UserMessage        string      `bson:"user_message" json:"userMessage"`
	Reply              string      `bson:"reply" json:"reply"`
	Language           string      `bson:"language" json:"language"`
	ResponseTimeMillis int64       `bson:"response_time_ms" json:"responseTimeMs"`
	ProductsFound      int         `bson:"products_found" json:"productsFound"`
	ConversationLength int         `bson:"conversation_length" json:"conversationLength"`
}
