package storefront

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rosechem/whatsapp-bot/internal/domain"
	"golang.org/x/time/rate"
)

const (
	requestTimeout  = 10 * time.Second
	maxAttempts     = 3
	defaultCacheTTL = 30 * time.Minute
)

// Client reads the storefront's WhatsApp product API. Responses are
// fronted by a TTL cache to bound call volume; every failure surfaces as
// ErrStorefrontUnavailable so callers can degrade to the local catalog.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	cache       domain.CacheRepository
	cacheTTL    time.Duration
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates a new storefront API client. A non-positive cacheTTL
// falls back to the default expiry window.
func NewClient(baseURL string, cache domain.CacheRepository, cacheTTL time.Duration) *Client {
	// Keep well under the storefront's request budget: 2 req/sec with a
	// small burst is plenty for chat traffic
	limiter := rate.NewLimiter(rate.Limit(2), 5)

	if cacheTTL <= 0 {
		cacheTTL = defaultCacheTTL
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		baseURL:     strings.TrimRight(baseURL, "/"),
		cache:       cache,
		cacheTTL:    cacheTTL,
		rateLimiter: limiter,
	}
}

// SetDebug toggles verbose request logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// SearchProducts runs the storefront's search-by-query operation
func (c *Client) SearchProducts(ctx context.Context, query string) ([]domain.Product, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}
	endpoint := "/api/whatsapp/products/search?query=" + url.QueryEscape(query)
	return c.fetchProducts(ctx, endpoint, "search_"+strings.ToLower(query))
}

// FeaturedProducts lists the storefront's featured items
func (c *Client) FeaturedProducts(ctx context.Context) ([]domain.Product, error) {
	return c.fetchProducts(ctx, "/api/whatsapp/products/featured", "featured_products")
}

// ProductsByCategory lists storefront items for one category
func (c *Client) ProductsByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	endpoint := "/api/whatsapp/products/category/" + url.PathEscape(category)
	return c.fetchProducts(ctx, endpoint, "category_"+strings.ToLower(category))
}

// fetchProducts resolves one endpoint through the cache, hitting the
// network only on a miss
func (c *Client) fetchProducts(ctx context.Context, endpoint, cacheKey string) ([]domain.Product, error) {
	if cached, err := c.cache.Get(ctx, cacheKey); err == nil {
		if products, ok := cached.([]domain.Product); ok {
			if c.debug {
				log.Printf("[STOREFRONT] cache hit for %s", cacheKey)
			}
			return products, nil
		}
	}

	body, err := c.doRequest(ctx, c.baseURL+endpoint)
	if err != nil {
		return nil, err
	}

	var payload productListResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: malformed payload: %v", domain.ErrStorefrontUnavailable, err)
	}

	products := MapProducts(payload.Products)

	if err := c.cache.Set(ctx, cacheKey, products, c.cacheTTL); err != nil {
		log.Printf("[STOREFRONT] cache write failed for %s: %v", cacheKey, err)
	}

	return products, nil
}

// doRequest executes a GET with retries for transient failures
func (c *Client) doRequest(ctx context.Context, reqURL string) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("User-Agent", "Rose-Chemicals-WhatsApp-Bot/1.0")
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if c.debug {
				log.Printf("[STOREFRONT] request error (attempt %d): %v", attempt, err)
			}
			lastErr = fmt.Errorf("%w: %v", domain.ErrStorefrontUnavailable, err)
			time.Sleep(time.Duration(attempt*200) * time.Millisecond)
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			if c.debug {
				log.Printf("[STOREFRONT] status %d (attempt %d): %s", resp.StatusCode, attempt, string(body))
			}
			lastErr = fmt.Errorf("%w: status %d", domain.ErrStorefrontUnavailable, resp.StatusCode)
			time.Sleep(time.Duration(attempt*200) * time.Millisecond)
			continue
		}

		return body, nil
	}

	return nil, lastErr
}

// productListResponse is the common envelope for all three read endpoints
type productListResponse struct {
	Products []rawProduct `json:"products"`
}
