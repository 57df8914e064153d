package generator

import (
	"runtime"
	"time"

	"github.com/willfong/fintech-datagen/internal/models"
)

// CustomerBundle is everything generated for one customer. Bundles are
// produced by workers and merged back in customer order.
type CustomerBundle struct {
	Customer     GeneratedCustomer
	Accounts     []models.Account
	Subscription *models.Subscription
	Features     []models.CustomerFeature
	// Sorted by timestamp
	Transactions []models.Transaction
}

// WorkerResult contains results from a completed worker
type WorkerResult struct {
	WorkerID         int
	CustomerCount    int
	TransactionCount int
	Duration         time.Duration
}

// Shard is a contiguous range [Start, End) of customer indexes
type Shard struct {
	Start, End int
}

// Len returns the number of customers in the shard
func (s Shard) Len() int {
	return s.End - s.Start
}

// GetWorkerCount returns the number of workers to use.
// If configured workers is 0, auto-detects using runtime.NumCPU().
func GetWorkerCount(configured int) int {
	if configured > 0 {
		return configured
	}
	if cpus := runtime.NumCPU(); cpus > 1 {
		return cpus
	}
	return 1
}

// PartitionCustomers splits n customers into at most workerCount contiguous
// shards whose sizes differ by at most one. Keeping shards contiguous lets
// worker output be stitched back together in customer order.
func PartitionCustomers(n, workerCount int) []Shard {
	if workerCount <= 0 {
		workerCount = 1
	}
	if workerCount > n {
		workerCount = n
	}
	if n <= 0 {
		return nil
	}

	shards := make([]Shard, workerCount)
	base, extra := n/workerCount, n%workerCount
	start := 0
	for i := range shards {
		size := base
		if i < extra {
			size++
		}
		shards[i] = Shard{Start: start, End: start + size}
		start += size
	}
	return shards
}
