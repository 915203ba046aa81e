package storefront

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rosechem/whatsapp-bot/internal/domain"
	"github.com/rosechem/whatsapp-bot/internal/infrastructure/cache"
)

func TestNewClient(t *testing.T) {
	c := NewClient("https://www.rosechemicals.in/", cache.NewMemoryCache(), time.Hour)

	assert.NotNil(t, c)
	assert.Equal(t, "https://www.rosechemicals.in", c.baseURL)
	assert.Equal(t, time.Hour, c.cacheTTL)
	assert.NotNil(t, c.httpClient)
	assert.NotNil(t, c.rateLimiter)
	assert.False(t, c.debug)
}

func TestNewClient_DefaultTTL(t *testing.T) {
	c := NewClient("https://www.rosechemicals.in", cache.NewMemoryCache(), 0)
	assert.Equal(t, defaultCacheTTL, c.cacheTTL)
}

// captureCache records the TTL handed to Set
type captureCache struct {
	lastTTL time.Duration
}

func (c *captureCache) Get(ctx context.Context, key string) (interface{}, error) {
	return nil, domain.ErrCacheMiss
}

func (c *captureCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	c.lastTTL = ttl
	return nil
}

func (c *captureCache) Delete(ctx context.Context, key string) error { return nil }

func TestClient_ConfiguredTTLReachesCache(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"products":[{"id":"b-01","name":"Delux Broom","mrp":110}]}`))
	}))
	defer server.Close()

	capture := &captureCache{}
	c := NewClient(server.URL, capture, 45*time.Minute)

	_, err := c.SearchProducts(context.Background(), "broom")
	require.NoError(t, err)
	assert.Equal(t, 45*time.Minute, capture.lastTTL)
}

func TestClient_SetDebug(t *testing.T) {
	c := NewClient("https://www.rosechemicals.in", cache.NewMemoryCache(), 0)

	c.SetDebug(true)
	assert.True(t, c.debug)

	c.SetDebug(false)
	assert.False(t, c.debug)
}

func TestClient_SearchProducts(t *testing.T) {
	t.Run("successful search", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/whatsapp/products/search", r.URL.Path)
			assert.Equal(t, "floor cleaner", r.URL.Query().Get("query"))
			assert.Equal(t, "Rose-Chemicals-WhatsApp-Bot/1.0", r.Header.Get("User-Agent"))

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"products":[{"id":"fc-01","name":"Floor Cleaner 5L","mrp":"₹450","category":"Ready To Use"}]}`))
		}))
		defer server.Close()

		c := NewClient(server.URL, cache.NewMemoryCache(), 0)
		products, err := c.SearchProducts(context.Background(), "floor cleaner")

		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "fc-01", products[0].ID)
		assert.Equal(t, "Floor Cleaner 5L", products[0].Name)
		require.NotNil(t, products[0].Price)
		assert.Equal(t, 450.0, *products[0].Price)
		assert.Equal(t, domain.SourceRemote, products[0].Source)
	})

	t.Run("blank query short-circuits", func(t *testing.T) {
		c := NewClient("http://unreachable.invalid", cache.NewMemoryCache(), 0)
		products, err := c.SearchProducts(context.Background(), "   ")

		require.NoError(t, err)
		assert.Empty(t, products)
	})

	t.Run("second call hits the cache", func(t *testing.T) {
		calls := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.Write([]byte(`{"products":[{"id":"fc-01","name":"Floor Cleaner 5L","mrp":450}]}`))
		}))
		defer server.Close()

		c := NewClient(server.URL, cache.NewMemoryCache(), 0)

		_, err := c.SearchProducts(context.Background(), "floor cleaner")
		require.NoError(t, err)
		_, err = c.SearchProducts(context.Background(), "floor cleaner")
		require.NoError(t, err)

		assert.Equal(t, 1, calls)
	})

	t.Run("server errors wrap ErrStorefrontUnavailable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		c := NewClient(server.URL, cache.NewMemoryCache(), 0)
		_, err := c.SearchProducts(context.Background(), "floor cleaner")

		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrStorefrontUnavailable))
	})

	t.Run("malformed payload wraps ErrStorefrontUnavailable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<html>maintenance</html>`))
		}))
		defer server.Close()

		c := NewClient(server.URL, cache.NewMemoryCache(), 0)
		_, err := c.SearchProducts(context.Background(), "floor cleaner")

		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrStorefrontUnavailable))
	})
}

func TestClient_FeaturedProducts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/whatsapp/products/featured", r.URL.Path)
		w.Write([]byte(`{"products":[{"id":"fk-01","name":"Fabric Conditioner Kit","mrp":1100},{"id":"dk-01","name":"Dish Wash Kit","mrp":1200}]}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, cache.NewMemoryCache(), 0)
	products, err := c.FeaturedProducts(context.Background())

	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestClient_ProductsByCategory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/whatsapp/products/category/brooms", r.URL.Path)
		w.Write([]byte(`{"products":[{"id":"b-01","name":"Delux Broom","mrp":110}]}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, cache.NewMemoryCache(), 0)
	products, err := c.ProductsByCategory(context.Background(), "brooms")

	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Delux Broom", products[0].Name)
}

func TestClient_RetriesTransientFailures(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"products":[{"id":"b-01","name":"Delux Broom","mrp":110}]}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, cache.NewMemoryCache(), 0)

	start := time.Now()
	products, err := c.SearchProducts(context.Background(), "broom")
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.Len(t, products, 1)
	assert.Equal(t, 3, attempts)
	// Two backoff sleeps: 200ms + 400ms
	assert.GreaterOrEqual(t, elapsed, 600*time.Millisecond)
}
