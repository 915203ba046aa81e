package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

const testCatalogJSON = `{
  "categories": {
    "brooms": {
      "name": "Brooms",
      "products": [
        {"id": "delux-broom", "name": "Delux Broom", "mrp": 110,
         "search_metadata": {"search_terms": ["delux broom"], "popularity_score": 60}}
      ]
    },
    "diy_kits": {
      "name": "DIY Manufacturing Kits",
      "products": [
        {"id": "fabric-conditioner-kit", "name": "Fabric Conditioner Kit", "mrp": 1100,
         "yield": "20 liters", "fragrances": ["Moments", "Blossom"],
         "search_metadata": {"search_terms": ["fabric conditioner kit"], "popularity_score": 85}},
        {"id": "glass-cleaner-kit", "name": "Glass Cleaner Kit"}
      ]
    },
    "seasonal_specials": {
      "name": "Seasonal Specials",
      "products": []
    }
  },
  "knowledge_base": {
    "working_hours": [
      {"question": "What are your working hours?", "answer": "9 AM to 7 PM.",
       "keywords": ["working hours"], "priority": 80}
    ],
    "franchise": [
      {"question": "How do I start a franchise?", "answer": "Call us.",
       "keywords": ["franchise"], "priority": 90}
    ]
  }
}`

func writeTestCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "products.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test catalog: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	catalog, err := Load(writeTestCatalog(t, testCatalogJSON))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	t.Run("categories follow the fixed order", func(t *testing.T) {
		if len(catalog.Categories) != 3 {
			t.Fatalf("len(Categories) = %d, want 3", len(catalog.Categories))
		}
		// diy_kits before brooms despite JSON map ordering, unknown key last
		wantOrder := []string{"diy_kits", "brooms", "seasonal_specials"}
		for i, want := range wantOrder {
			if catalog.Categories[i].Key != want {
				t.Errorf("Categories[%d].Key = %s, want %s", i, catalog.Categories[i].Key, want)
			}
		}
	})

	t.Run("products keep their category and source", func(t *testing.T) {
		kits := catalog.Categories[0]
		if len(kits.Products) != 2 {
			t.Fatalf("len(diy_kits products) = %d, want 2", len(kits.Products))
		}
		fck := kits.Products[0]
		if fck.Name != "Fabric Conditioner Kit" {
			t.Errorf("Name = %s, want Fabric Conditioner Kit", fck.Name)
		}
		if fck.Price == nil || *fck.Price != 1100 {
			t.Errorf("Price = %v, want 1100", fck.Price)
		}
		if fck.CategoryKey != "diy_kits" || fck.CategoryName != "DIY Manufacturing Kits" {
			t.Errorf("category tagging wrong: %s / %s", fck.CategoryKey, fck.CategoryName)
		}
		if fck.PopularityScore != 85 {
			t.Errorf("PopularityScore = %v, want 85", fck.PopularityScore)
		}
	})

	t.Run("incomplete products survive loading", func(t *testing.T) {
		// Filtering happens at ranking time, not load time
		glass := catalog.Categories[0].Products[1]
		if glass.Name != "Glass Cleaner Kit" {
			t.Fatalf("Name = %s, want Glass Cleaner Kit", glass.Name)
		}
		if glass.Price != nil {
			t.Errorf("Price = %v, want nil", *glass.Price)
		}
		if glass.Complete() {
			t.Error("priceless product reported as complete")
		}
	})

	t.Run("knowledge sections flatten in fixed order", func(t *testing.T) {
		if len(catalog.Knowledge) != 2 {
			t.Fatalf("len(Knowledge) = %d, want 2", len(catalog.Knowledge))
		}
		// franchise section comes before working_hours in the fixed order
		if catalog.Knowledge[0].Question != "How do I start a franchise?" {
			t.Errorf("Knowledge[0].Question = %q, want the franchise entry", catalog.Knowledge[0].Question)
		}
	})
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
			t.Error("Load() error = nil, want read error")
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		if _, err := Load(writeTestCatalog(t, "{not json")); err == nil {
			t.Error("Load() error = nil, want parse error")
		}
	})
}
