package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/rosechem/whatsapp-bot/internal/domain"
)

const graphAPIBase = "https://graph.facebook.com/v17.0"

// Sender delivers messages through the WhatsApp Cloud API
type Sender struct {
	httpClient    *http.Client
	accessToken   string
	phoneNumberID string
	baseURL       string
}

// NewSender creates a WhatsApp Cloud API sender
func NewSender(accessToken, phoneNumberID string) *Sender {
	return &Sender{
		httpClient:    &http.Client{Timeout: 15 * time.Second},
		accessToken:   accessToken,
		phoneNumberID: phoneNumberID,
		baseURL:       graphAPIBase,
	}
}

// SetBaseURL overrides the Graph API endpoint (used in tests)
func (s *Sender) SetBaseURL(url string) {
	s.baseURL = url
}

type sendRequest struct {
	MessagingProduct string   `json:"messaging_product"`
	To               string   `json:"to"`
	Text             textBody `json:"text"`
}

type textBody struct {
	Body string `json:"body"`
}

// Send posts a text message to the recipient phone number
func (s *Sender) Send(ctx context.Context, to, text string) error {
	payload, err := json.Marshal(sendRequest{
		MessagingProduct: "whatsapp",
		To:               to,
		Text:             textBody{Body: text},
	})
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}

	url := fmt.Sprintf("%s/%s/messages", s.baseURL, s.phoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrSendFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		log.Printf("[WHATSAPP] send failed - status %d, body: %s", resp.StatusCode, string(body))
		return fmt.Errorf("%w: status %d", domain.ErrSendFailed, resp.StatusCode)
	}

	return nil
}
