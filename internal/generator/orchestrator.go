package generator

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/willfong/fintech-datagen/internal/data"
	"github.com/willfong/fintech-datagen/internal/logging"
	"github.com/willfong/fintech-datagen/internal/models"
	"github.com/willfong/fintech-datagen/internal/utils"
)

// Orchestrator runs a full generation: customers and everything hanging off
// them in parallel workers, then risk events and ad spend, then the CSV files.
type Orchestrator struct {
	refData  *data.ReferenceData
	config   OrchestratorConfig
	log      logrus.FieldLogger
	progress ProgressFactory
	metrics  *Metrics

	// Forked once, in this order, so a seed always maps to the same streams
	customerRNG *utils.Random
	workerRNGs  []*utils.Random
	riskRNG     *utils.Random
	adRNG       *utils.Random
	balanceRNG  *utils.Random

	bundles      []CustomerBundle
	transactions []models.Transaction
	riskEvents   []models.RiskEvent
	adSpend      []models.AdSpend
}

// OrchestratorConfig holds settings for the orchestrator
type OrchestratorConfig struct {
	NumCustomers int
	StartDate    time.Time
	EndDate      time.Time
	OutputDir    string
	Seed         int64

	// Number of parallel workers (0 = one per CPU)
	Workers int
	// Enable xz compression (creates .csv.xz files)
	Compress bool
	// Write tables concurrently
	Parallel bool

	SnapshotIntervalDays int
	SkipSnapshots        bool

	Stream StreamConfig
	// EndDate is filled in from the orchestrator's window
	Risk RiskConfig
}

// OrchestratorOptions holds optional collaborators
type OrchestratorOptions struct {
	Logger logrus.FieldLogger
	// Nil disables progress output
	Progress ProgressFactory
	// Nil creates a private Metrics
	Metrics *Metrics
}

// GenerationResult holds statistics from the generation run
type GenerationResult struct {
	Seed              uint64
	CustomerCount     int
	AccountCount      int
	SubscriptionCount int
	FeatureCount      int
	TransactionCount  int
	BalanceCount      int64
	RiskEventCount    int
	AdSpendCount      int
	// Completed transaction amounts per settlement currency
	Volume   map[string]utils.Money
	Workers  []WorkerResult
	Files    []string
	Duration time.Duration
}

// NewOrchestrator creates a new orchestrator
func NewOrchestrator(config OrchestratorConfig, opts OrchestratorOptions) (*Orchestrator, error) {
	if !config.EndDate.After(config.StartDate) {
		return nil, fmt.Errorf("end date %s is not after start date %s",
			FormatDate(config.EndDate), FormatDate(config.StartDate))
	}

	refData, err := data.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load reference data: %w", err)
	}

	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.Progress == nil {
		opts.Progress = func(string, int64) Progress { return noProgress{} }
	}
	if opts.Metrics == nil {
		opts.Metrics = NewMetrics()
	}
	config.Risk.EndDate = config.EndDate

	rng := utils.NewRandom(config.Seed)
	o := &Orchestrator{
		refData:  refData,
		config:   config,
		log:      opts.Logger,
		progress: opts.Progress,
		metrics:  opts.Metrics,
	}
	o.customerRNG = rng.Fork()
	o.workerRNGs = rng.ForkN(GetWorkerCount(config.Workers))
	o.riskRNG = rng.Fork()
	o.adRNG = rng.Fork()
	o.balanceRNG = rng.Fork()

	o.log.WithField("seed", rng.Seed()).Debug("orchestrator ready")
	o.config.Seed = int64(rng.Seed())
	return o, nil
}

// Metrics returns the run's metrics
func (o *Orchestrator) Metrics() *Metrics {
	return o.metrics
}

// Bundles returns the per-customer output of Generate, in customer order
func (o *Orchestrator) Bundles() []CustomerBundle {
	return o.bundles
}

// Transactions returns every transaction of Generate, grouped by customer
// and sorted by timestamp within each customer
func (o *Orchestrator) Transactions() []models.Transaction {
	return o.transactions
}

// RiskEvents returns the risk events of Generate, sorted by timestamp
func (o *Orchestrator) RiskEvents() []models.RiskEvent {
	return o.riskEvents
}

// AdSpend returns the ad spend rows of Generate
func (o *Orchestrator) AdSpend() []models.AdSpend {
	return o.adSpend
}

// Run generates the dataset and writes every table.
func (o *Orchestrator) Run(ctx context.Context) (*GenerationResult, error) {
	start := time.Now()

	result, err := o.Generate(ctx)
	if err != nil {
		return nil, err
	}
	if err := o.WriteAll(ctx, result); err != nil {
		return nil, err
	}

	result.Duration = time.Since(start)
	o.log.WithFields(logrus.Fields{
		"duration":     result.Duration.Round(time.Millisecond),
		"transactions": result.TransactionCount,
		"risk_events":  result.RiskEventCount,
	}).Info("generation complete")
	return result, nil
}

// Generate builds all records in memory without writing them.
func (o *Orchestrator) Generate(ctx context.Context) (*GenerationResult, error) {
	result := &GenerationResult{Seed: uint64(o.config.Seed)}

	// 1. Customers, sequentially so their order does not depend on workers
	done := o.metrics.Phase("customers")
	customerGen := NewCustomerGenerator(o.customerRNG, o.refData, CustomerGeneratorConfig{
		StartDate: o.config.StartDate,
		EndDate:   o.config.EndDate,
	})
	customers := customerGen.GenerateCustomers(o.config.NumCustomers)
	o.logPhase("customers", len(customers), done())

	// 2. Accounts, subscriptions, features and transactions per customer
	done = o.metrics.Phase("customer_data")
	workers, err := o.generateBundles(ctx, customers)
	if err != nil {
		return nil, err
	}
	result.Workers = workers
	txns := o.flattenTransactions()
	o.transactions = txns
	o.logPhase("customer_data", len(o.bundles), done())

	customerRows := make([]models.Customer, len(o.bundles))
	var accounts []models.Account
	for i := range o.bundles {
		b := &o.bundles[i]
		customerRows[i] = b.Customer.Customer
		accounts = append(accounts, b.Accounts...)
		if b.Subscription != nil {
			result.SubscriptionCount++
		}
		result.FeatureCount += len(b.Features)
	}

	result.CustomerCount = len(customerRows)
	result.AccountCount = len(accounts)
	result.TransactionCount = len(txns)
	result.Volume = CompletedVolume(txns)
	o.metrics.ObserveTransactions(txns)

	// 3. Risk events over the complete stream
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	done = o.metrics.Phase("risk_events")
	deriver := NewRiskEventDeriver(o.riskRNG, o.config.Risk)
	o.riskEvents = deriver.Derive(customerRows, txns, accounts)
	result.RiskEventCount = len(o.riskEvents)
	o.metrics.ObserveRiskEvents(o.riskEvents)
	o.logPhase("risk_events", len(o.riskEvents), done())

	// 4. Ad spend, independent of customers
	done = o.metrics.Phase("ad_spend")
	o.adSpend = NewAdSpendGenerator(o.adRNG, o.refData).Generate(o.config.StartDate, o.config.EndDate)
	result.AdSpendCount = len(o.adSpend)
	o.logPhase("ad_spend", len(o.adSpend), done())

	return result, nil
}

// generateBundles fans customers out to workers. Each worker owns a forked
// RNG and a contiguous shard, so the merged output is reproducible for a
// given seed and worker count.
func (o *Orchestrator) generateBundles(ctx context.Context, customers []GeneratedCustomer) ([]WorkerResult, error) {
	shards := PartitionCustomers(len(customers), len(o.workerRNGs))
	o.bundles = make([]CustomerBundle, len(customers))
	results := make([]WorkerResult, len(shards))

	progress := o.progress("Customers", int64(len(customers)))
	var processed atomic.Int64

	var wg sync.WaitGroup
	errChan := make(chan error, len(shards))

	for i, shard := range shards {
		wg.Add(1)
		go func(workerID int, shard Shard) {
			defer wg.Done()
			workerStart := time.Now()

			rng := o.workerRNGs[workerID]
			synth := NewTransactionSynthesizer(rng, o.refData, DefaultDistributions())
			w := bundleWorker{
				accounts:      NewAccountGenerator(rng),
				subscriptions: NewSubscriptionGenerator(rng, o.config.EndDate),
				features:      NewFeatureGenerator(rng, o.refData, o.config.EndDate),
				stream:        NewStreamGenerator(rng, synth, o.config.Stream),
				endDate:       o.config.EndDate,
			}

			txCount := 0
			for idx := shard.Start; idx < shard.End; idx++ {
				if err := ctx.Err(); err != nil {
					errChan <- fmt.Errorf("worker %d: %w", workerID, err)
					return
				}
				o.bundles[idx] = w.build(customers[idx])
				txCount += len(o.bundles[idx].Transactions)

				if n := processed.Add(1); n%100 == 0 {
					progress.Update(n)
				}
			}

			results[workerID] = WorkerResult{
				WorkerID:         workerID,
				CustomerCount:    shard.Len(),
				TransactionCount: txCount,
				Duration:         time.Since(workerStart),
			}
			o.log.WithFields(logrus.Fields{
				"worker":       workerID,
				"customers":    shard.Len(),
				"transactions": txCount,
			}).Debug("worker finished")
		}(i, shard)
	}

	wg.Wait()
	close(errChan)

	for err := range errChan {
		return nil, err
	}

	progress.Update(processed.Load())
	progress.Complete()
	return results, nil
}

// bundleWorker holds the generators of one worker, all sharing its RNG
type bundleWorker struct {
	accounts      *AccountGenerator
	subscriptions *SubscriptionGenerator
	features      *FeatureGenerator
	stream        *StreamGenerator
	endDate       time.Time
}

func (w *bundleWorker) build(gc GeneratedCustomer) CustomerBundle {
	b := CustomerBundle{Customer: gc}
	b.Accounts = w.accounts.GenerateForCustomer(gc)
	if sub, ok := w.subscriptions.GenerateForCustomer(gc); ok {
		b.Subscription = &sub
	}
	b.Features = w.features.GenerateForCustomer(gc)

	accountIDs := make([]string, len(b.Accounts))
	opened := make([]time.Time, len(b.Accounts))
	for i := range b.Accounts {
		accountIDs[i] = b.Accounts[i].ID
		opened[i] = b.Accounts[i].CreatedAt
	}
	b.Transactions = w.stream.Generate(StreamInput{
		CustomerID:      gc.Customer.ID,
		AccountIDs:      accountIDs,
		AccountOpenedAt: opened,
		CreatedAt:       gc.Customer.CreatedAt,
		ActivatedAt:     gc.Customer.ActivatedAt,
		EndDate:         w.endDate,
		Currency:        gc.Currency(),
		Country:         gc.Customer.Country,
		Tier:            gc.Customer.Tier,
	})
	ApplyBalances(b.Accounts, b.Transactions)
	return b
}

// flattenTransactions moves every bundle's transactions into one backing
// array, leaving each bundle with a window onto it, and returns the array.
func (o *Orchestrator) flattenTransactions() []models.Transaction {
	total := 0
	for i := range o.bundles {
		total += len(o.bundles[i].Transactions)
	}

	all := make([]models.Transaction, 0, total)
	for i := range o.bundles {
		start := len(all)
		all = append(all, o.bundles[i].Transactions...)
		o.bundles[i].Transactions = all[start:len(all):len(all)]
	}
	return all
}

// CompletedVolume sums the amounts of completed transactions by currency.
func CompletedVolume(txns []models.Transaction) map[string]utils.Money {
	volume := make(map[string]utils.Money)
	for i := range txns {
		if txns[i].IsCompleted() {
			volume[txns[i].Currency] += txns[i].Amount
		}
	}
	return volume
}

func (o *Orchestrator) logPhase(phase string, rows int, d time.Duration) {
	o.log.WithFields(logrus.Fields{
		"phase":    phase,
		"rows":     rows,
		"duration": d.Round(time.Millisecond),
	}).Info("phase complete")
}
