package generator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/willfong/fintech-datagen/internal/models"
)

// ParallelWriteTask is one table written concurrently with the others
type ParallelWriteTask struct {
	Name string
	Fn   func() error
}

// RunParallelWrites runs every task and returns the first error, if any.
func RunParallelWrites(tasks []ParallelWriteTask) error {
	var wg sync.WaitGroup
	errChan := make(chan error, len(tasks))

	for _, task := range tasks {
		wg.Add(1)
		go func(t ParallelWriteTask) {
			defer wg.Done()
			if err := t.Fn(); err != nil {
				errChan <- fmt.Errorf("%s: %w", t.Name, err)
			}
		}(task)
	}

	wg.Wait()
	close(errChan)

	for err := range errChan {
		return err
	}
	return nil
}

// rowSink collects the rows of one table into a CSV file
type rowSink struct {
	w        *CSVWriter
	progress Progress
	n        int64
}

func (s *rowSink) write(row []string) error {
	if err := s.w.WriteRow(row); err != nil {
		return err
	}
	s.n++
	if s.n%1000 == 0 {
		s.progress.Update(s.n)
	}
	return nil
}

// WriteAll writes every table generated by Generate. With Parallel set the
// tables are written concurrently and per-table progress is suppressed.
// Rows within a table always keep generation order.
func (o *Orchestrator) WriteAll(ctx context.Context, result *GenerationResult) error {
	if o.config.Compress {
		if err := CheckXZAvailable(); err != nil {
			return err
		}
	}

	done := o.metrics.Phase("write")
	var mu sync.Mutex

	task := func(table string, total int64, rows func(emit func([]string) error) error) ParallelWriteTask {
		return ParallelWriteTask{Name: table, Fn: func() error {
			n, path, err := o.writeTable(ctx, table, total, rows)
			if err != nil {
				return err
			}
			o.metrics.AddRows(table, int(n))

			mu.Lock()
			defer mu.Unlock()
			result.Files = append(result.Files, path)
			if table == TableBalances {
				result.BalanceCount = n
			}
			return nil
		}}
	}

	tasks := []ParallelWriteTask{
		task(TableCustomers, int64(result.CustomerCount), func(emit func([]string) error) error {
			for i := range o.bundles {
				if err := emit(CustomerRow(&o.bundles[i].Customer.Customer)); err != nil {
					return err
				}
			}
			return nil
		}),
		task(TableAccounts, int64(result.AccountCount), func(emit func([]string) error) error {
			return o.eachBundle(func(b *CustomerBundle) error {
				for i := range b.Accounts {
					if err := emit(AccountRow(&b.Accounts[i])); err != nil {
						return err
					}
				}
				return nil
			})
		}),
		task(TableSubscriptions, int64(result.SubscriptionCount), func(emit func([]string) error) error {
			return o.eachBundle(func(b *CustomerBundle) error {
				if b.Subscription == nil {
					return nil
				}
				return emit(SubscriptionRow(b.Subscription))
			})
		}),
		task(TableFeatures, int64(result.FeatureCount), func(emit func([]string) error) error {
			return o.eachBundle(func(b *CustomerBundle) error {
				for i := range b.Features {
					if err := emit(FeatureRow(&b.Features[i])); err != nil {
						return err
					}
				}
				return nil
			})
		}),
		task(TableTransactions, int64(result.TransactionCount), func(emit func([]string) error) error {
			for i := range o.transactions {
				if err := emit(TransactionRow(&o.transactions[i])); err != nil {
					return err
				}
			}
			return nil
		}),
		task(TableRiskEvents, int64(result.RiskEventCount), func(emit func([]string) error) error {
			for i := range o.riskEvents {
				if err := emit(RiskEventRow(&o.riskEvents[i])); err != nil {
					return err
				}
			}
			return nil
		}),
		task(TableAdSpend, int64(result.AdSpendCount), func(emit func([]string) error) error {
			for i := range o.adSpend {
				if err := emit(AdSpendRow(&o.adSpend[i])); err != nil {
					return err
				}
			}
			return nil
		}),
	}

	if !o.config.SkipSnapshots {
		balances := NewBalanceGenerator(o.balanceRNG, o.config.EndDate, o.config.SnapshotIntervalDays)
		var expected int64
		for i := range o.bundles {
			for j := range o.bundles[i].Accounts {
				expected += int64(balances.Count(o.bundles[i].Accounts[j]))
			}
		}
		tasks = append(tasks, task(TableBalances, expected, func(emit func([]string) error) error {
			return o.eachBundle(func(b *CustomerBundle) error {
				byAccount := GroupByAccount(b.Transactions)
				for i := range b.Accounts {
					err := balances.Walk(b.Accounts[i], byAccount[b.Accounts[i].ID], func(s models.BalanceSnapshot) error {
						return emit(BalanceRow(&s))
					})
					if err != nil {
						return err
					}
				}
				return nil
			})
		}))
	}

	if o.config.Parallel {
		if err := RunParallelWrites(tasks); err != nil {
			return err
		}
	} else {
		for _, t := range tasks {
			if err := t.Fn(); err != nil {
				return fmt.Errorf("%s: %w", t.Name, err)
			}
		}
	}

	d := done()
	o.log.WithFields(logrus.Fields{
		"files":    len(result.Files),
		"dir":      o.config.OutputDir,
		"duration": d.Round(time.Millisecond),
	}).Info("tables written")
	return nil
}

// writeTable streams one table to disk and returns the row count and path
func (o *Orchestrator) writeTable(ctx context.Context, table string, total int64, rows func(emit func([]string) error) error) (int64, string, error) {
	w, err := NewCSVWriter(CSVWriterConfig{
		OutputDir: o.config.OutputDir,
		Filename:  table,
		Headers:   Headers[table],
		Compress:  o.config.Compress,
	})
	if err != nil {
		return 0, "", err
	}
	defer w.Close()

	var progress Progress = noProgress{}
	if !o.config.Parallel {
		progress = o.progress(table, total)
	}
	sink := &rowSink{w: w, progress: progress}
	err = rows(func(row []string) error {
		if sink.n%10000 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		return sink.write(row)
	})
	if err != nil {
		return 0, "", err
	}

	if err := w.Close(); err != nil {
		return 0, "", err
	}
	sink.progress.Update(sink.n)
	sink.progress.Complete()

	o.log.WithFields(logrus.Fields{"table": table, "rows": sink.n}).Debug("table written")
	return sink.n, w.Path(), nil
}

func (o *Orchestrator) eachBundle(fn func(b *CustomerBundle) error) error {
	for i := range o.bundles {
		if err := fn(&o.bundles[i]); err != nil {
			return err
		}
	}
	return nil
}
