package storefront

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rosechem/whatsapp-bot/internal/domain"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
	}{
		{"plain number", `1100`, 1100},
		{"decimal number", `55.5`, 55.5},
		{"numeric string", `"250"`, 250},
		{"rupee symbol", `"₹1,100"`, 1100},
		{"rs dot prefix", `"Rs. 250"`, 250},
		{"rs prefix", `"rs 85"`, 85},
		{"inr prefix", `"INR 1600"`, 1600},
		{"thousands separator", `"1,20,000"`, 120000},
		{"garbage string", `"call for price"`, 0},
		{"empty string", `""`, 0},
		{"null", `null`, 0},
		{"empty raw", ``, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParsePrice(json.RawMessage(tt.raw))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMapProducts(t *testing.T) {
	t.Run("coalesces aliased fields", func(t *testing.T) {
		raw := []rawProduct{
			{
				Slug:  "delux-broom",
				Title: "Delux Broom",
				MRP:   json.RawMessage(`"₹110"`),
			},
		}

		got := MapProducts(raw)
		assert.Len(t, got, 1)
		assert.Equal(t, "delux-broom", got[0].ID)
		assert.Equal(t, "Delux Broom", got[0].Name)
		assert.NotNil(t, got[0].Price)
		assert.Equal(t, 110.0, *got[0].Price)
	})

	t.Run("id and name take priority over aliases", func(t *testing.T) {
		raw := []rawProduct{
			{
				ID:    "b-01",
				Slug:  "delux-broom",
				Name:  "Delux Broom",
				Title: "Delux Broom (Large)",
				Price: json.RawMessage(`110`),
			},
		}

		got := MapProducts(raw)
		assert.Equal(t, "b-01", got[0].ID)
		assert.Equal(t, "Delux Broom", got[0].Name)
	})

	t.Run("mrp wins over price when both present", func(t *testing.T) {
		raw := []rawProduct{
			{
				ID:    "b-01",
				Name:  "Delux Broom",
				Price: json.RawMessage(`99`),
				MRP:   json.RawMessage(`110`),
			},
		}

		got := MapProducts(raw)
		assert.Equal(t, 110.0, *got[0].Price)
	})

	t.Run("tags remote source and derived category key", func(t *testing.T) {
		raw := []rawProduct{
			{
				ID:       "t-01",
				Name:     "Window Squeegee",
				Price:    json.RawMessage(`150`),
				Category: "Cleaning Tools",
			},
		}

		got := MapProducts(raw)
		assert.Equal(t, domain.SourceRemote, got[0].Source)
		assert.Equal(t, "cleaning_tools", got[0].CategoryKey)
		assert.Equal(t, "Cleaning Tools", got[0].CategoryName)
	})

	t.Run("empty input yields empty output", func(t *testing.T) {
		assert.Empty(t, MapProducts(nil))
	})
}
