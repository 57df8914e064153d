package data

import (
	"testing"

	"github.com/willfong/fintech-datagen/internal/utils"
)

func TestLoadReferenceData(t *testing.T) {
	data, err := Load()
	if err != nil {
		t.Fatalf("Failed to load reference data: %v", err)
	}

	t.Run("GetCountry", func(t *testing.T) {
		se, ok := data.GetCountry("SE")
		if !ok {
			t.Fatal("Failed to find SE country")
		}
		if se.Currency != "SEK" {
			t.Errorf("Expected 'SEK', got '%s'", se.Currency)
		}
		if se.Timezone != "Europe/Stockholm" {
			t.Errorf("Expected 'Europe/Stockholm', got '%s'", se.Timezone)
		}
	})

	t.Run("CurrencyFor", func(t *testing.T) {
		if c := data.CurrencyFor("DE"); c != "EUR" {
			t.Errorf("Expected 'EUR' for DE, got '%s'", c)
		}
		if c := data.CurrencyFor("ZZ"); c != "USD" {
			t.Errorf("Expected USD fallback, got '%s'", c)
		}
	})

	t.Run("PickCountry", func(t *testing.T) {
		rng := utils.NewRandom(42)
		counts := make(map[string]int)
		for i := 0; i < 10000; i++ {
			counts[data.PickCountry(rng).Code]++
		}
		// US carries 40 of 100 weight
		if counts["US"] < 3700 || counts["US"] > 4300 {
			t.Errorf("Expected ~4000 US picks, got %d", counts["US"])
		}
		if counts["ES"] == 0 {
			t.Error("Expected ES to be picked at least once")
		}
	})

	t.Run("Coordinates", func(t *testing.T) {
		rng := utils.NewRandom(42)
		for i := 0; i < 1000; i++ {
			lat, lng, ok := data.Coordinates(rng, "NL")
			if !ok {
				t.Fatal("Expected coordinates for NL")
			}
			if lat < 50.7 || lat >= 53.7 || lng < 3.2 || lng >= 7.2 {
				t.Fatalf("NL coordinate (%f, %f) outside bounds", lat, lng)
			}
		}
		if _, _, ok := data.Coordinates(rng, "ZZ"); ok {
			t.Error("Expected no coordinates for unknown country")
		}
	})

	t.Run("GetFeature", func(t *testing.T) {
		f, ok := data.GetFeature("receipt_matching")
		if !ok {
			t.Fatal("Failed to find receipt_matching")
		}
		if f.Category != "receipts" {
			t.Errorf("Expected 'receipts', got '%s'", f.Category)
		}
	})
}

func TestDataConsistency(t *testing.T) {
	data, err := Load()
	if err != nil {
		t.Fatalf("Failed to load reference data: %v", err)
	}

	for _, country := range data.Countries.Countries {
		if len(country.Cities) == 0 {
			t.Errorf("Country %s has no cities", country.Code)
		}
		if country.Weight <= 0 {
			t.Errorf("Country %s has non-positive weight", country.Code)
		}
		if country.Bounds.Lat[0] >= country.Bounds.Lat[1] || country.Bounds.Lng[0] >= country.Bounds.Lng[1] {
			t.Errorf("Country %s has an empty bounding box", country.Code)
		}
		if _, ok := utils.Currencies[country.Currency]; !ok {
			t.Errorf("Country %s uses unsupported currency %s", country.Code, country.Currency)
		}
	}

	if len(data.Names.FirstNames) == 0 || len(data.Names.LastNames) == 0 {
		t.Error("Expected first and last names")
	}
	if len(data.Catalog.MerchantCategories) != 11 {
		t.Errorf("Expected 11 merchant categories, got %d", len(data.Catalog.MerchantCategories))
	}
	if len(data.Catalog.Features) != 13 {
		t.Errorf("Expected 13 features, got %d", len(data.Catalog.Features))
	}
}
