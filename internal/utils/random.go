package utils

import (
	crand "crypto/rand"
	"encoding/binary"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Random is the sampling handle threaded through every generator. All draws
// go through it so a run is reproducible given the same seed and worker count.
// It is safe for concurrent use, but workers should each hold their own Fork.
type Random struct {
	rng  *rand.Rand
	seed uint64
	mu   sync.Mutex
}

// NewRandom creates a new Random instance with the given seed.
// If seed is 0, a cryptographically random seed is generated.
func NewRandom(seed int64) *Random {
	var actualSeed uint64
	if seed == 0 {
		actualSeed = generateRandomSeed()
	} else {
		actualSeed = uint64(seed)
	}

	return &Random{
		rng:  rand.New(rand.NewPCG(actualSeed, actualSeed^0xDEADBEEF)),
		seed: actualSeed,
	}
}

func generateRandomSeed() uint64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return uint64(time.Now().UnixNano())
	}
	return binary.LittleEndian.Uint64(b[:])
}

// Seed returns the seed used to initialize this RNG
func (r *Random) Seed() uint64 {
	return r.seed
}

// Fork creates a new Random instance with a seed drawn from r.
// Forking in the same order from the same parent yields the same children.
func (r *Random) Fork() *Random {
	r.mu.Lock()
	defer r.mu.Unlock()

	newSeed := r.rng.Uint64()
	return &Random{
		rng:  rand.New(rand.NewPCG(newSeed, newSeed^0xCAFEBABE)),
		seed: newSeed,
	}
}

// ForkN creates n independent children, one per worker.
func (r *Random) ForkN(n int) []*Random {
	results := make([]*Random, n)
	for i := 0; i < n; i++ {
		results[i] = r.Fork()
	}
	return results
}

// IntN returns a pseudo-random int in [0, n)
func (r *Random) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.IntN(n)
}

// IntRange returns a pseudo-random int in [min, max]
func (r *Random) IntRange(min, max int) int {
	if min >= max {
		return min
	}
	return min + r.IntN(max-min+1)
}

// Int64N returns a pseudo-random int64 in [0, n)
func (r *Random) Int64N(n int64) int64 {
	if n <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Int64N(n)
}

// Float64 returns a pseudo-random float64 in [0.0, 1.0)
func (r *Random) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64()
}

// Float64Range returns a pseudo-random float64 in [min, max)
func (r *Random) Float64Range(min, max float64) float64 {
	if min >= max {
		return min
	}
	return min + r.Float64()*(max-min)
}

// Probability returns true with the given probability (0.0 to 1.0)
func (r *Random) Probability(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return r.Float64() < p
}

// AmountBetween draws a uniform amount in [min, max] rounded to the cent.
func (r *Random) AmountBetween(min, max Money) Money {
	if min >= max {
		return min
	}
	return FromFloat(r.Float64Range(min.ToDollars(), max.ToDollars()))
}

// NormalFloat64 returns a normally distributed float64 with mean 0 and stddev 1
func (r *Random) NormalFloat64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.NormFloat64()
}

// BoundedNormal draws from N(mean, stddev), rounds to an integer and clamps
// the result to [lo, hi]. Used for risk and credit scores.
func (r *Random) BoundedNormal(mean, stddev float64, lo, hi int) int {
	v := int(math.Round(mean + r.NormalFloat64()*stddev))
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Duration returns a random duration in [min, max]
func (r *Random) Duration(min, max time.Duration) time.Duration {
	if min >= max {
		return min
	}
	return min + time.Duration(r.Int64N(int64(max-min+1)))
}

// Date returns a random instant between start and end (inclusive)
func (r *Random) Date(start, end time.Time) time.Time {
	if !start.Before(end) {
		return start
	}
	return start.Add(r.Duration(0, end.Sub(start)))
}

// Read fills p from the stream so Random can back uuid generation.
// It never returns an error.
func (r *Random) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := 0; i < len(p); i += 8 {
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], r.rng.Uint64())
		copy(p[i:], b[:])
	}
	return len(p), nil
}

// UUID returns a version 4 UUID drawn from this stream.
func (r *Random) UUID() string {
	id, err := uuid.NewRandomFromReader(r)
	if err != nil {
		// Read cannot fail
		panic(err)
	}
	return id.String()
}

// Weighted is one row of a weighted distribution table.
type Weighted[T any] struct {
	Value  T
	Weight float64
}

// Pick returns an element of items chosen uniformly.
// It panics if items is empty.
func Pick[T any](r *Random, items []T) T {
	if len(items) == 0 {
		panic("utils.Pick: empty slice")
	}
	return items[r.IntN(len(items))]
}

// PickWeighted returns a value chosen with probability proportional to its
// weight. The draw is scaled to the total weight and compared against the
// running cumulative weight; the last row is returned if rounding leaves the
// draw unmatched. It panics if table is empty.
func PickWeighted[T any](r *Random, table []Weighted[T]) T {
	if len(table) == 0 {
		panic("utils.PickWeighted: empty table")
	}

	total := 0.0
	for _, w := range table {
		total += w.Weight
	}

	target := r.Float64() * total
	cumulative := 0.0
	for _, w := range table {
		cumulative += w.Weight
		if target <= cumulative {
			return w.Value
		}
	}
	return table[len(table)-1].Value
}

// Threshold maps a cumulative probability ceiling to a value. A table of
// thresholds is evaluated against a single uniform draw.
type Threshold[T any] struct {
	Below float64
	Value T
}

// PickThreshold draws one uniform value and returns the first row whose
// ceiling it falls below, or fallback when none match.
func PickThreshold[T any](r *Random, table []Threshold[T], fallback T) T {
	u := r.Float64()
	for _, t := range table {
		if u < t.Below {
			return t.Value
		}
	}
	return fallback
}
