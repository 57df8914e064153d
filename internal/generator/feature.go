package generator

import (
	"time"

	"github.com/willfong/fintech-datagen/internal/data"
	"github.com/willfong/fintech-datagen/internal/models"
	"github.com/willfong/fintech-datagen/internal/utils"
)

// featureCounts is how many features a customer of each tier activates
var featureCounts = map[models.CustomerTier]CountRange{
	models.TierEnterprise: {8, 12},
	models.TierPremium:    {5, 9},
	models.TierStarter:    {3, 6},
	models.TierFree:       {1, 3},
}

// FeatureGenerator records which product features customers turned on.
type FeatureGenerator struct {
	rng      *utils.Random
	features []data.Feature
	endDate  time.Time
}

// NewFeatureGenerator creates a new feature generator
func NewFeatureGenerator(rng *utils.Random, refData *data.ReferenceData, endDate time.Time) *FeatureGenerator {
	return &FeatureGenerator{
		rng:      rng,
		features: refData.Catalog.Features,
		endDate:  endDate,
	}
}

// GenerateForCustomer activates a tier-dependent number of distinct
// features. One customer in ten activates none.
func (g *FeatureGenerator) GenerateForCustomer(gc GeneratedCustomer) []models.CustomerFeature {
	band, ok := featureCounts[gc.Customer.Tier]
	if !ok {
		band = featureCounts[models.TierFree]
	}
	count := g.rng.IntRange(band.Min, band.Max)
	if count > len(g.features) {
		count = len(g.features)
	}

	if g.rng.Probability(0.10) {
		return nil
	}

	// Draw until count distinct features are chosen, keeping draw order
	chosen := make([]data.Feature, 0, count)
	seen := make(map[string]bool, count)
	for len(chosen) < count {
		f := utils.Pick(g.rng, g.features)
		if seen[f.Name] {
			continue
		}
		seen[f.Name] = true
		chosen = append(chosen, f)
	}

	out := make([]models.CustomerFeature, 0, len(chosen))
	for _, f := range chosen {
		activated := addDays(gc.Customer.CreatedAt, g.rng.IntRange(0, 180))

		var lastUsed time.Time
		active := g.rng.Probability(0.70)
		if active {
			lastUsed = g.rng.Date(activated, g.endDate)
		} else {
			lastUsed = g.rng.Date(activated, addDays(activated, 30))
		}

		out = append(out, models.CustomerFeature{
			ID:          g.rng.UUID(),
			CustomerID:  gc.Customer.ID,
			FeatureName: f.Name,
			ActivatedAt: activated,
			LastUsedAt:  &lastUsed,
			Category:    f.Category,
			IsActive:    active,
		})
	}
	return out
}
