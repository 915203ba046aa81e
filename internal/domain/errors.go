package domain

import "errors"

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrStorefrontUnavailable is returned when the storefront API request fails
	ErrStorefrontUnavailable = errors.New("storefront API request failed")

	// ErrConversationNotFound is returned when no session exists for a phone number
	ErrConversationNotFound = errors.New("conversation not found")

	// ErrSendFailed is returned when the outbound WhatsApp send fails
	ErrSendFailed = errors.New("failed to send WhatsApp message")

	// ErrReplyGeneration is returned when the AI completion call fails
	ErrReplyGeneration = errors.New("reply generation failed")
)
