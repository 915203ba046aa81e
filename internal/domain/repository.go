package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// StorefrontClient defines the read operations against the remote catalog API.
// All calls are best-effort: the ranker degrades to local-only when they fail.
type StorefrontClient interface {
	SearchProducts(ctx context.Context, query string) ([]Product, error)
	FeaturedProducts(ctx context.Context) ([]Product, error)
	ProductsByCategory(ctx context.Context, category string) ([]Product, error)
}

// ConversationStore persists chat sessions keyed by phone number
type ConversationStore interface {
	Find(ctx context.Context, phoneNumber string) (*Conversation, error)
	Save(ctx context.Context, conv *Conversation) error
	List(ctx context.Context, limit int) ([]Conversation, error)
}

// AnalyticsSink records handled interactions. Implementations are
// fire-and-forget: failures must never affect the reply path.
type AnalyticsSink interface {
	Record(ctx context.Context, interaction *Interaction) error
}

// MessageSender delivers a formatted reply to a recipient phone number
type MessageSender interface {
	Send(ctx context.Context, to, text string) error
}

// ReplyGenerator produces the conversational AI reply from an assembled prompt
type ReplyGenerator interface {
	Generate(ctx context.Context, prompt string, history []Message, language string) (string, error)
}
