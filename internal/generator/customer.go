package generator

import (
	"fmt"
	"strings"
	"time"

	"github.com/willfong/fintech-datagen/internal/data"
	"github.com/willfong/fintech-datagen/internal/models"
	"github.com/willfong/fintech-datagen/internal/utils"
)

var customerTiers = []utils.Weighted[models.CustomerTier]{
	{Value: models.TierFree, Weight: 40},
	{Value: models.TierPremium, Weight: 30},
	{Value: models.TierEnterprise, Weight: 20},
	{Value: models.TierStarter, Weight: 10},
}

var registrationSources = []utils.Weighted[string]{
	{Value: "organic", Weight: 40},
	{Value: "google_ads", Weight: 25},
	{Value: "meta_ads", Weight: 20},
	{Value: "youtube_ads", Weight: 10},
	{Value: "referral", Weight: 5},
}

// CustomerGenerator creates customers, their KYB funnel and activation.
type CustomerGenerator struct {
	rng     *utils.Random
	refData *data.ReferenceData
	config  CustomerGeneratorConfig
}

// CustomerGeneratorConfig holds settings for customer generation
type CustomerGeneratorConfig struct {
	// Registration dates are uniform in [StartDate, EndDate]
	StartDate time.Time
	EndDate   time.Time
}

// NewCustomerGenerator creates a new customer generator
func NewCustomerGenerator(rng *utils.Random, refData *data.ReferenceData, config CustomerGeneratorConfig) *CustomerGenerator {
	return &CustomerGenerator{
		rng:     rng,
		refData: refData,
		config:  config,
	}
}

// GeneratedCustomer holds a generated customer with its country
type GeneratedCustomer struct {
	Customer models.Customer
	Country  *data.Country
}

// Currency returns the settlement currency of the customer's country
func (gc GeneratedCustomer) Currency() string {
	return gc.Country.Currency
}

// GenerateCustomers creates n customers
func (g *CustomerGenerator) GenerateCustomers(n int) []GeneratedCustomer {
	customers := make([]GeneratedCustomer, 0, n)
	for i := 0; i < n; i++ {
		customers = append(customers, g.GenerateCustomer())
	}
	return customers
}

// GenerateCustomer creates a single customer
func (g *CustomerGenerator) GenerateCustomer() GeneratedCustomer {
	createdAt := g.rng.Date(g.config.StartDate, g.config.EndDate)

	firstName := utils.Pick(g.rng, g.refData.Names.FirstNames)
	lastName := utils.Pick(g.rng, g.refData.Names.LastNames)
	email := g.generateEmail(firstName, lastName)
	country := g.refData.PickCountry(g.rng)

	c := models.Customer{
		CreatedAt:          createdAt,
		Email:              email,
		FirstName:          firstName,
		LastName:           lastName,
		Country:            country.Code,
		City:               utils.Pick(g.rng, country.Cities),
		Region:             country.Region,
		Timezone:           country.Timezone,
		RegistrationSource: utils.PickWeighted(g.rng, registrationSources),
		Tier:               utils.PickWeighted(g.rng, customerTiers),
		RiskScore:          g.rng.BoundedNormal(650, 100, 300, 850),
		KYBStatus:          models.KYBNotStarted,
		Status:             models.CustomerStatusActive,
	}

	g.runKYB(&c)
	g.activate(&c)
	c.Status = g.pickStatus()
	c.ID = g.rng.UUID()

	return GeneratedCustomer{Customer: c, Country: country}
}

// runKYB walks the onboarding funnel: 80% start, 70% of those submit,
// 85% of submissions are approved and the rest declined.
func (g *CustomerGenerator) runKYB(c *models.Customer) {
	if !g.rng.Probability(0.80) {
		return
	}
	started := addDays(c.CreatedAt, g.rng.IntRange(1, 7))
	c.KYBStartedAt = &started
	c.KYBStatus = models.KYBInProgress

	if !g.rng.Probability(0.70) {
		return
	}
	submitted := addDays(started, g.rng.IntRange(1, 14))
	c.KYBSubmittedAt = &submitted
	c.KYBStatus = models.KYBSubmitted

	if !g.rng.Probability(0.85) {
		c.KYBStatus = models.KYBDeclined
		return
	}
	approved := addDays(submitted, g.rng.IntRange(1, 5))
	c.KYBApprovedAt = &approved
	c.KYBStatus = models.KYBApproved
}

// activate sets the activation date for 70% of customers, uniformly between
// KYB approval (or a 1-30 day grace period) and the end date. A customer
// whose earliest activation falls after the end date stays dormant.
func (g *CustomerGenerator) activate(c *models.Customer) {
	if !g.rng.Probability(0.70) {
		return
	}

	var base time.Time
	if c.KYBApprovedAt != nil {
		base = *c.KYBApprovedAt
	} else {
		base = addDays(c.CreatedAt, g.rng.IntRange(1, 30))
	}
	if base.After(g.config.EndDate) {
		return
	}

	at := g.rng.Date(base, g.config.EndDate)
	c.ActivatedAt = &at
}

func (g *CustomerGenerator) pickStatus() models.CustomerStatus {
	if g.rng.Probability(0.05) {
		if g.rng.Probability(0.5) {
			return models.CustomerStatusFrozen
		}
		return models.CustomerStatusClosed
	}
	if g.rng.Probability(0.02) {
		return models.CustomerStatusSuspended
	}
	return models.CustomerStatusActive
}

func (g *CustomerGenerator) generateEmail(firstName, lastName string) string {
	first := strings.ToLower(firstName)
	last := strings.ToLower(lastName)

	var local string
	switch g.rng.IntN(4) {
	case 0:
		local = first + "." + last
	case 1:
		local = first + last
	case 2:
		local = first + "_" + last
	default:
		local = fmt.Sprintf("%s%d", first, g.rng.IntN(1000))
	}
	return local + "@" + utils.Pick(g.rng, g.refData.Names.EmailDomains)
}

func addDays(t time.Time, days int) time.Time {
	return t.AddDate(0, 0, days)
}
