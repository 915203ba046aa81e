package http

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rosechem/whatsapp-bot/internal/domain"
	"github.com/rosechem/whatsapp-bot/internal/usecase"
)

const (
	chatListLimit     = 50
	processingTimeout = 60 * time.Second
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	chatService *usecase.ChatService
	store       domain.ConversationStore
	verifyToken string
}

// NewHandler creates a new HTTP handler
func NewHandler(chatService *usecase.ChatService, store domain.ConversationStore, verifyToken string) *Handler {
	return &Handler{
		chatService: chatService,
		store:       store,
		verifyToken: verifyToken,
	}
}

// HealthCheck returns the health status of the service
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "rosechem-whatsapp-bot",
		"version": "1.0.0",
	})
}

// VerifyWebhook answers the Meta webhook subscription challenge
func (h *Handler) VerifyWebhook(c *gin.Context) {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if mode == "" || token == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	if mode == "subscribe" && token == h.verifyToken {
		log.Printf("[WEBHOOK] verified")
		c.String(http.StatusOK, challenge)
		return
	}

	c.Status(http.StatusForbidden)
}

// webhookEvent mirrors the WhatsApp Cloud API webhook envelope, down to
// the text messages this bot handles
type webhookEvent struct {
	Object string `json:"object"`
	Entry  []struct {
		Changes []struct {
			Value struct {
				Messages []inboundMessage `json:"messages"`
			} `json:"value"`
		} `json:"changes"`
	} `json:"entry"`
}

type inboundMessage struct {
	From string `json:"from"`
	Text *struct {
		Body string `json:"body"`
	} `json:"text"`
}

// ReceiveWebhook accepts an inbound event and processes its messages
// asynchronously. Parseable events are acknowledged with 200 regardless
// of processing outcome so Meta does not retry; unparseable bodies get
// a 400.
func (h *Handler) ReceiveWebhook(c *gin.Context) {
	var event webhookEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		log.Printf("[WEBHOOK] failed to parse body: %v", err)
		c.Status(http.StatusBadRequest)
		return
	}

	if event.Object == "" {
		c.Status(http.StatusNotFound)
		return
	}

	for _, entry := range event.Entry {
		for _, change := range entry.Changes {
			for _, msg := range change.Value.Messages {
				if msg.Text == nil || msg.Text.Body == "" {
					continue
				}
				go h.processMessage(msg.From, msg.Text.Body)
			}
		}
	}

	c.Status(http.StatusOK)
}

// processMessage handles one message outside the request lifecycle
func (h *Handler) processMessage(from, text string) {
	ctx, cancel := context.WithTimeout(context.Background(), processingTimeout)
	defer cancel()

	if err := h.chatService.HandleMessage(ctx, from, text); err != nil {
		log.Printf("[WEBHOOK] message handling failed for %s: %v", from, err)
	}
}

// ListChats returns recent conversations for the admin dashboard
func (h *Handler) ListChats(c *gin.Context) {
	conversations, err := h.store.List(c.Request.Context(), chatListLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, conversations)
}
