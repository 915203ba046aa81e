package mongostore

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rosechem/whatsapp-bot/internal/domain"
)

const (
	conversationsCollection = "conversations"
	interactionsCollection  = "interactions"
)

// Connect establishes the MongoDB connection and verifies it with a ping
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	log.Printf("[MONGO] connected")
	return client, nil
}

// Store persists conversations and analytics in MongoDB
type Store struct {
	db *mongo.Database
}

// NewStore creates a store over the named database and ensures indexes
func NewStore(client *mongo.Client, databaseName string) *Store {
	s := &Store{db: client.Database(databaseName)}
	s.createIndexes()
	return s
}

// createIndexes creates the lookup indexes; failures are logged only
func (s *Store) createIndexes() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := s.db.Collection(conversationsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "phone_number", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		log.Printf("[MONGO] conversation index creation failed: %v", err)
	}

	_, err = s.db.Collection(interactionsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "timestamp", Value: -1}},
	})
	if err != nil {
		log.Printf("[MONGO] interaction index creation failed: %v", err)
	}
}

// Find retrieves the conversation for a phone number
func (s *Store) Find(ctx context.Context, phoneNumber string) (*domain.Conversation, error) {
	var conv domain.Conversation
	err := s.db.Collection(conversationsCollection).
		FindOne(ctx, bson.M{"phone_number": phoneNumber}).
		Decode(&conv)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrConversationNotFound
		}
		return nil, err
	}
	return &conv, nil
}

// Save upserts the conversation keyed by phone number
func (s *Store) Save(ctx context.Context, conv *domain.Conversation) error {
	conv.LastUpdated = time.Now()

	_, err := s.db.Collection(conversationsCollection).ReplaceOne(
		ctx,
		bson.M{"phone_number": conv.PhoneNumber},
		conv,
		options.Replace().SetUpsert(true),
	)
	return err
}

// List returns the most recently updated conversations
func (s *Store) List(ctx context.Context, limit int) ([]domain.Conversation, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "last_updated", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := s.db.Collection(conversationsCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var conversations []domain.Conversation
	if err := cursor.All(ctx, &conversations); err != nil {
		return nil, err
	}
	return conversations, nil
}

// Record writes one analytics interaction. Fire-and-forget: the error is
// returned for logging but callers must not fail the reply path on it.
func (s *Store) Record(ctx context.Context, interaction *domain.Interaction) error {
	_, err := s.db.Collection(interactionsCollection).InsertOne(ctx, interaction)
	return err
}
