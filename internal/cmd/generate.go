package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/willfong/fintech-datagen/internal/config"
	"github.com/willfong/fintech-datagen/internal/generator"
	"github.com/willfong/fintech-datagen/internal/ui"
	"github.com/willfong/fintech-datagen/internal/utils"
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the synthetic fintech dataset",
	Long: `Generate a reproducible synthetic fintech dataset as CSV files.

This command creates one file per table:
- raw_customers            customers with tier, country and KYB funnel
- raw_accounts             accounts per customer with current balance
- raw_subscriptions        plans with MRR/ARR
- raw_customer_features    feature adoption
- raw_transactions         transactions with running balances
- raw_balances             periodic end-of-day balance snapshots
- raw_risk_events          fraud, AML and compliance alerts
- raw_ad_spend             daily marketing spend per channel

The same --seed and --workers always produce identical files.
Probabilities and ratios are in internal/config/defaults.go and can be
overridden through a config file or DATAGEN_GENERATE_* variables.

Example:
  datagen generate --customers 5000 --seed 42
  datagen generate --start 2025-01-01 --end 2025-12-31 --compress
  datagen generate --snapshot-interval 7 --metrics-file ./datagen.prom`,
	Run: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	d := config.DefaultConfig().Generate
	f := generateCmd.Flags()
	f.Int("customers", d.NumCustomers, "number of customers to generate")
	f.String("start", d.StartDate, "first registration date (YYYY-MM-DD)")
	f.String("end", d.EndDate, "last date of generated data (YYYY-MM-DD)")
	f.String("output", d.OutputDir, "output directory for CSV files")
	f.Int64("seed", d.Seed, "random seed for reproducibility (0 = random)")
	f.Int("workers", d.NumWorkers, "number of parallel workers (0 = auto-detect CPUs)")
	f.Bool("compress", d.Compress, "compress output with xz (creates .csv.xz files)")
	f.Bool("parallel", d.Parallel, "write all tables concurrently")
	f.Int("snapshot-interval", d.SnapshotIntervalDays, "days between balance snapshots")
	f.Bool("skip-snapshots", d.SkipSnapshots, "do not write raw_balances")
	f.String("metrics-file", d.MetricsFile, "write Prometheus metrics to this file")

	bindFlags(generateCmd, map[string]string{
		"customers":         "generate.num_customers",
		"start":             "generate.start_date",
		"end":               "generate.end_date",
		"output":            "generate.output_dir",
		"seed":              "generate.seed",
		"workers":           "generate.num_workers",
		"compress":          "generate.compress",
		"parallel":          "generate.parallel",
		"snapshot-interval": "generate.snapshot_interval_days",
		"skip-snapshots":    "generate.skip_snapshots",
		"metrics-file":      "generate.metrics_file",
	})
}

// orchestratorConfig maps the generate settings onto the orchestrator
func orchestratorConfig(g config.GenerateConfig) (generator.OrchestratorConfig, error) {
	start, end, err := g.Window()
	if err != nil {
		return generator.OrchestratorConfig{}, err
	}

	stream := generator.DefaultStreamConfig()
	stream.DormantActivityRate = g.DormantActivityRate

	risk := generator.DefaultRiskConfig(end)
	risk.LinkedEventRate = g.LinkedRiskEventRate
	risk.CustomerEventRatio = g.CustomerRiskEventRatio

	return generator.OrchestratorConfig{
		NumCustomers:         g.NumCustomers,
		StartDate:            start,
		EndDate:              end,
		OutputDir:            g.OutputDir,
		Seed:                 g.Seed,
		Workers:              g.NumWorkers,
		Compress:             g.Compress,
		Parallel:             g.Parallel,
		SnapshotIntervalDays: g.SnapshotIntervalDays,
		SkipSnapshots:        g.SkipSnapshots,
		Stream:               stream,
		Risk:                 risk,
	}, nil
}

func runGenerate(cmd *cobra.Command, args []string) {
	u := newUI()
	g := cfg.Generate

	if g.Compress {
		if err := generator.CheckXZAvailable(); err != nil {
			fail(u, "xz compression requested but xz is not available",
				"Install with: apt install xz-utils (Linux) or brew install xz (macOS)")
		}
	}

	oc, err := orchestratorConfig(g)
	if err != nil {
		fail(u, err.Error())
	}

	fmt.Println(u.Header("Fintech Dataset Generator"))
	fmt.Println()
	fmt.Println(u.KeyValue("Customers", fmt.Sprintf("%d", g.NumCustomers)))
	fmt.Println(u.KeyValue("Window", fmt.Sprintf("%s to %s", g.StartDate, g.EndDate)))
	fmt.Println(u.KeyValue("Output", g.OutputDir))
	fmt.Println(u.KeyValue("Workers", fmt.Sprintf("%d", generator.GetWorkerCount(g.NumWorkers))))
	if g.Compress {
		fmt.Println(u.KeyValue("Compression", "xz (.csv.xz)"))
	}
	switch {
	case g.SkipSnapshots:
		fmt.Println(u.KeyValue("Snapshots", "skipped"))
	case g.SnapshotIntervalDays > 1:
		fmt.Println(u.KeyValue("Snapshots", fmt.Sprintf("every %d days", g.SnapshotIntervalDays)))
	}
	fmt.Println()

	var progress generator.ProgressFactory
	if u.IsTTY && !noColor {
		progress = func(label string, total int64) generator.Progress {
			return u.NewProgressBar(label, total)
		}
	} else {
		progress = generator.PlainProgress(os.Stderr)
	}

	orchestrator, err := generator.NewOrchestrator(oc, generator.OrchestratorOptions{
		Logger:   log,
		Progress: progress,
	})
	if err != nil {
		fail(u, err.Error())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := orchestrator.Run(ctx)
	if err != nil {
		fail(u, "generation failed: "+err.Error())
	}

	if g.MetricsFile != "" {
		if err := orchestrator.Metrics().WriteTextfile(g.MetricsFile); err != nil {
			fail(u, err.Error())
		}
		log.WithField("file", g.MetricsFile).Debug("metrics written")
	}

	printGenerateSummary(u, result)
	fmt.Println()
	fmt.Println(u.Success("Output files written to: " + g.OutputDir))
	for _, f := range result.Files {
		fmt.Println(u.Muted("  " + filepath.Base(f)))
	}
}

// printGenerateSummary prints a styled generation summary
func printGenerateSummary(u *ui.UI, result *generator.GenerationResult) {
	items := []ui.KV{
		{Key: "Seed", Value: fmt.Sprintf("%d", result.Seed)},
		{Key: "Customers", Value: fmt.Sprintf("%d", result.CustomerCount)},
		{Key: "Accounts", Value: fmt.Sprintf("%d", result.AccountCount)},
		{Key: "Subscriptions", Value: fmt.Sprintf("%d", result.SubscriptionCount)},
		{Key: "Features", Value: fmt.Sprintf("%d", result.FeatureCount)},
		{Key: "Transactions", Value: fmt.Sprintf("%d", result.TransactionCount)},
		{Key: "Balances", Value: fmt.Sprintf("%d", result.BalanceCount)},
		{Key: "Risk Events", Value: fmt.Sprintf("%d", result.RiskEventCount)},
		{Key: "Ad Spend", Value: fmt.Sprintf("%d", result.AdSpendCount)},
	}
	items = append(items, volumeItems(result.Volume)...)
	items = append(items,
		ui.KV{Key: "Duration", Value: result.Duration.Round(time.Millisecond).String()},
		ui.StatusKV(true),
	)

	fmt.Println(u.SummaryBox("Generation Complete", items))
}

// volumeItems lists completed volume per currency, formatted for display
func volumeItems(volume map[string]utils.Money) []ui.KV {
	codes := make([]string, 0, len(volume))
	for code := range volume {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	items := make([]ui.KV, 0, len(codes))
	for _, code := range codes {
		items = append(items, ui.KV{Key: "Volume " + code, Value: volume[code].Format(code)})
	}
	return items
}
