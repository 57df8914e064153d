package generator

import (
	"time"

	"github.com/willfong/fintech-datagen/internal/data"
	"github.com/willfong/fintech-datagen/internal/models"
	"github.com/willfong/fintech-datagen/internal/utils"
)

// adNetwork is a marketing network, its channels and its daily budget
type adNetwork struct {
	Name     string
	Channels []string
	Budget   AmountRange
}

var adNetworks = []utils.Weighted[adNetwork]{
	{Value: adNetwork{"google", []string{"keyword", "brand", "native"}, AmountRange{utils.Dollars(500), utils.Dollars(5000)}}, Weight: 40},
	{Value: adNetwork{"meta", []string{"social", "video"}, AmountRange{utils.Dollars(300), utils.Dollars(3000)}}, Weight: 30},
	{Value: adNetwork{"youtube", []string{"video", "native"}, AmountRange{utils.Dollars(200), utils.Dollars(2000)}}, Weight: 20},
	{Value: adNetwork{"other", []string{"native", "other"}, AmountRange{utils.Dollars(100), utils.Dollars(1000)}}, Weight: 10},
}

// AdSpendGenerator produces daily campaign spend. It does not depend on
// customers.
type AdSpendGenerator struct {
	rng     *utils.Random
	refData *data.ReferenceData
}

// NewAdSpendGenerator creates a new ad spend generator
func NewAdSpendGenerator(rng *utils.Random, refData *data.ReferenceData) *AdSpendGenerator {
	return &AdSpendGenerator{rng: rng, refData: refData}
}

// Generate walks every day from start to end inclusive. 60% of days run
// one to three campaigns.
func (g *AdSpendGenerator) Generate(start, end time.Time) []models.AdSpend {
	countries := g.refData.CountryCodes()
	var out []models.AdSpend

	for day := start; !day.After(end); day = addDays(day, 1) {
		if !g.rng.Probability(0.60) {
			continue
		}

		campaigns := g.rng.IntRange(1, 3)
		for i := 0; i < campaigns; i++ {
			network := utils.PickWeighted(g.rng, adNetworks)
			channel := utils.Pick(g.rng, network.Channels)
			country := utils.Pick(g.rng, countries)

			spend := models.AdSpend{
				CreatedAt: day,
				Network:   network.Name,
				Channel:   channel,
				Country:   country,
				Currency:  g.refData.CurrencyFor(country),
			}
			if g.rng.Probability(0.50) {
				name := utils.Pick(g.rng, g.refData.Catalog.CampaignNames)
				spend.CampaignName = &name
			}
			spend.Amount = g.rng.AmountBetween(network.Budget.Min, network.Budget.Max)
			if g.rng.Probability(0.70) {
				conversions := g.rng.IntRange(1, 50)
				spend.Conversions = &conversions
			}
			spend.ID = g.rng.UUID()

			out = append(out, spend)
		}
	}
	return out
}
