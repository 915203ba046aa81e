package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/rosechem/whatsapp-bot/config"
	httpDelivery "github.com/rosechem/whatsapp-bot/internal/delivery/http"
	"github.com/rosechem/whatsapp-bot/internal/domain"
	"github.com/rosechem/whatsapp-bot/internal/infrastructure/cache"
	"github.com/rosechem/whatsapp-bot/internal/infrastructure/catalog"
	"github.com/rosechem/whatsapp-bot/internal/infrastructure/mongostore"
	"github.com/rosechem/whatsapp-bot/internal/infrastructure/sarvam"
	"github.com/rosechem/whatsapp-bot/internal/infrastructure/storefront"
	"github.com/rosechem/whatsapp-bot/internal/infrastructure/whatsapp"
	"github.com/rosechem/whatsapp-bot/internal/usecase"
)

func main() {
	// .env is optional and only used in local development
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting Rose Chemicals WhatsApp Bot v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)

	snapshot, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	memoryCache := cache.NewMemoryCache()

	var storefrontClient domain.StorefrontClient
	if cfg.Storefront.Enabled {
		client := storefront.NewClient(cfg.Storefront.BaseURL, memoryCache, cfg.Cache.TTL)
		client.SetDebug(cfg.Debug.Storefront)
		storefrontClient = client
		log.Printf("Storefront API configured: %s", cfg.Storefront.BaseURL)
	} else {
		log.Printf("Storefront API disabled, ranking uses local catalog only")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	mongoClient, err := mongostore.Connect(ctx, cfg.Mongo.URI)
	cancel()
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	store := mongostore.NewStore(mongoClient, cfg.Mongo.Database)

	classifier := usecase.NewIntentClassifier(cfg.Debug.Intent)
	ranker := usecase.NewRanker(snapshot, storefrontClient, cfg.Debug.Ranking)
	knowledge := usecase.NewKnowledgeBase(snapshot.Knowledge)

	sender := whatsapp.NewSender(cfg.WhatsApp.AccessToken, cfg.WhatsApp.PhoneNumberID)
	generator := sarvam.NewClient(cfg.Sarvam.APIKey, cfg.Sarvam.BaseURL, cfg.Sarvam.Model)

	chatService := usecase.NewChatService(classifier, ranker, knowledge, store, store, sender, generator)

	handler := httpDelivery.NewHandler(chatService, store, cfg.WhatsApp.VerifyToken)
	router := httpDelivery.SetupRouter(cfg, handler)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
