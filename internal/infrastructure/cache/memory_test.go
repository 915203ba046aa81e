package cache

import (
	"context"
	"testing"
	"time"

	"github.com/rosechem/whatsapp-bot/internal/domain"
)

func TestMemoryCache_SetGet(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	tests := []struct {
		name  string
		key   string
		value interface{}
	}{
		{"string value", "greeting", "hello"},
		{"int value", "count", 42},
		{"slice value", "products", []string{"broom", "mop"}},
		{"nil value", "nothing", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := cache.Set(ctx, tt.key, tt.value, time.Minute); err != nil {
				t.Fatalf("Set() error = %v", err)
			}

			got, err := cache.Get(ctx, tt.key)
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}

			switch want := tt.value.(type) {
			case []string:
				gotSlice, ok := got.([]string)
				if !ok || len(gotSlice) != len(want) {
					t.Errorf("Get() = %v, want %v", got, want)
				}
			default:
				if got != tt.value {
					t.Errorf("Get() = %v, want %v", got, tt.value)
				}
			}
		})
	}
}

func TestMemoryCache_Miss(t *testing.T) {
	cache := NewMemoryCache()

	_, err := cache.Get(context.Background(), "absent")
	if err != domain.ErrCacheMiss {
		t.Errorf("Get() error = %v, want ErrCacheMiss", err)
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	cache := NewMemoryCacheWithClock(func() time.Time { return current })
	ctx := context.Background()

	if err := cache.Set(ctx, "search_brooms", "cached", 30*time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	if _, err := cache.Get(ctx, "search_brooms"); err != nil {
		t.Fatalf("Get() before expiry error = %v", err)
	}

	// Just inside the TTL
	current = current.Add(29 * time.Minute)
	if _, err := cache.Get(ctx, "search_brooms"); err != nil {
		t.Errorf("Get() at 29m error = %v, want hit", err)
	}

	// Past the TTL
	current = current.Add(2 * time.Minute)
	if _, err := cache.Get(ctx, "search_brooms"); err != domain.ErrCacheMiss {
		t.Errorf("Get() at 31m error = %v, want ErrCacheMiss", err)
	}
}

func TestMemoryCache_Overwrite(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	cache.Set(ctx, "key", "first", time.Minute)
	cache.Set(ctx, "key", "second", time.Minute)

	got, err := cache.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != "second" {
		t.Errorf("Get() = %v, want %q", got, "second")
	}
}

func TestMemoryCache_Delete(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	cache.Set(ctx, "key", "value", time.Minute)
	if err := cache.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if _, err := cache.Get(ctx, "key"); err != domain.ErrCacheMiss {
		t.Errorf("Get() after delete error = %v, want ErrCacheMiss", err)
	}

	// Deleting an absent key is not an error
	if err := cache.Delete(ctx, "absent"); err != nil {
		t.Errorf("Delete(absent) error = %v", err)
	}
}

func TestMemoryCache_SizeAndClear(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	cache.Set(ctx, "a", 1, time.Minute)
	cache.Set(ctx, "b", 2, time.Minute)

	if got := cache.Size(); got != 2 {
		t.Errorf("Size() = %d, want 2", got)
	}

	cache.Clear()
	if got := cache.Size(); got != 0 {
		t.Errorf("Size() after Clear = %d, want 0", got)
	}
}
