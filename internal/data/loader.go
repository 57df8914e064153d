package data

import (
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/willfong/fintech-datagen/internal/utils"
)

//go:embed reference/*.json
var dataFiles embed.FS

// ReferenceData holds all loaded reference data for the generator
type ReferenceData struct {
	Countries CountriesData
	Names     NamesData
	Catalog   CatalogData

	countryByCode     map[string]*Country
	countriesByWeight []utils.Weighted[*Country]
	featureByName     map[string]Feature
}

// CountriesData represents the structure of countries.json
type CountriesData struct {
	Countries []Country `json:"countries"`
}

// Country is one supported customer country.
type Country struct {
	Code     string   `json:"code"`
	Name     string   `json:"name"`
	Currency string   `json:"currency"`
	Weight   float64  `json:"weight"`
	Region   string   `json:"region"`
	Timezone string   `json:"timezone"`
	Cities   []string `json:"cities"`
	Bounds   Bounds   `json:"bounds"`
}

// Bounds is an approximate latitude/longitude bounding box.
type Bounds struct {
	Lat [2]float64 `json:"lat"`
	Lng [2]float64 `json:"lng"`
}

// NamesData represents the structure of names.json
type NamesData struct {
	FirstNames   []string `json:"first_names"`
	LastNames    []string `json:"last_names"`
	EmailDomains []string `json:"email_domains"`
}

// CatalogData represents the structure of catalog.json
type CatalogData struct {
	MerchantCategories []string  `json:"merchant_categories"`
	MerchantPrefixes   []string  `json:"merchant_prefixes"`
	MerchantSuffixes   []string  `json:"merchant_suffixes"`
	Features           []Feature `json:"features"`
	CampaignNames      []string  `json:"campaign_names"`
}

// Feature is a product feature a customer can activate.
type Feature struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

var (
	instance *ReferenceData
	once     sync.Once
	loadErr  error
)

// Load loads all reference data from embedded files.
// This is thread-safe and will only load data once.
func Load() (*ReferenceData, error) {
	once.Do(func() {
		instance = &ReferenceData{}
		loadErr = instance.loadAll()
	})

	if loadErr != nil {
		return nil, loadErr
	}
	return instance, nil
}

func (r *ReferenceData) loadAll() error {
	files := []struct {
		name string
		dst  any
	}{
		{"reference/countries.json", &r.Countries},
		{"reference/names.json", &r.Names},
		{"reference/catalog.json", &r.Catalog},
	}

	for _, f := range files {
		data, err := dataFiles.ReadFile(f.name)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", f.name, err)
		}
		if err := json.Unmarshal(data, f.dst); err != nil {
			return fmt.Errorf("failed to parse %s: %w", f.name, err)
		}
	}

	if len(r.Countries.Countries) == 0 {
		return fmt.Errorf("countries.json: no countries defined")
	}

	r.buildLookups()
	return nil
}

func (r *ReferenceData) buildLookups() {
	r.countryByCode = make(map[string]*Country, len(r.Countries.Countries))
	r.countriesByWeight = make([]utils.Weighted[*Country], 0, len(r.Countries.Countries))
	for i := range r.Countries.Countries {
		c := &r.Countries.Countries[i]
		r.countryByCode[c.Code] = c
		r.countriesByWeight = append(r.countriesByWeight, utils.Weighted[*Country]{Value: c, Weight: c.Weight})
	}

	r.featureByName = make(map[string]Feature, len(r.Catalog.Features))
	for _, f := range r.Catalog.Features {
		r.featureByName[f.Name] = f
	}
}

// GetCountry returns country data by ISO code
func (r *ReferenceData) GetCountry(code string) (*Country, bool) {
	c, ok := r.countryByCode[code]
	return c, ok
}

// CurrencyFor returns the settlement currency of a country, USD if unknown.
func (r *ReferenceData) CurrencyFor(code string) string {
	if c, ok := r.countryByCode[code]; ok {
		return c.Currency
	}
	return "USD"
}

// PickCountry draws a country proportionally to its weight.
func (r *ReferenceData) PickCountry(rng *utils.Random) *Country {
	return utils.PickWeighted(rng, r.countriesByWeight)
}

// CountryCodes returns the ISO codes of all supported countries in file order.
func (r *ReferenceData) CountryCodes() []string {
	codes := make([]string, len(r.Countries.Countries))
	for i, c := range r.Countries.Countries {
		codes[i] = c.Code
	}
	return codes
}

// Coordinates draws a point inside the country's bounding box.
// ok is false for unknown countries.
func (r *ReferenceData) Coordinates(rng *utils.Random, code string) (lat, lng float64, ok bool) {
	c, found := r.countryByCode[code]
	if !found {
		return 0, 0, false
	}
	lat = rng.Float64Range(c.Bounds.Lat[0], c.Bounds.Lat[1])
	lng = rng.Float64Range(c.Bounds.Lng[0], c.Bounds.Lng[1])
	return lat, lng, true
}

// GetFeature returns a feature definition by name
func (r *ReferenceData) GetFeature(name string) (Feature, bool) {
	f, ok := r.featureByName[name]
	return f, ok
}
