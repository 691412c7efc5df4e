package ranking

import (
	"hash/fnv"
	"math"
	"math/rand/v2"
	"slices"
	"strings"
	"time"

	"github.com/FACorreiaa/go-itinerary-recommender/internal/types"
)

const seedTimeLayout = "200601021504"

// SessionSeed derives a sampling seed from the minute of now and the sorted
// keywords. Identical requests in the same minute share a seed.
func SessionSeed(now time.Time, kws []string) int64 {
	sorted := slices.Clone(kws)
	slices.Sort(sorted)

	h := fnv.New64a()
	_, _ = h.Write([]byte(now.Format(seedTimeLayout) + "_" + strings.Join(sorted, "_")))
	return int64(h.Sum64() & math.MaxInt64)
}

// NewRand returns a generator owned by a single request.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>1|1))
}

// Select draws up to n items, each draw proportional to the item's weight
// among the items not drawn yet. Negative weights count as zero and a zero
// total falls back to a uniform draw. A drawn item whose name was already
// emitted is consumed without being returned, so the result never holds
// duplicate names and may be shorter than n.
func Select(items []types.Place, weights []float64, n int, rng *rand.Rand) []types.Place {
	if len(items) == 0 || n <= 0 {
		return []types.Place{}
	}

	drawn := make([]bool, len(items))
	seen := make(map[string]struct{}, n)
	out := make([]types.Place, 0, min(n, len(items)))

	for range n {
		remaining := 0
		var total float64
		for i := range items {
			if drawn[i] {
				continue
			}
			remaining++
			total += weightAt(weights, i)
		}
		if remaining == 0 {
			break
		}

		pick := -1
		if total <= 0 {
			target := rng.IntN(remaining)
			for i := range items {
				if drawn[i] {
					continue
				}
				if target == 0 {
					pick = i
					break
				}
				target--
			}
		} else {
			r := rng.Float64() * total
			var cum float64
			for i := range items {
				w := weightAt(weights, i)
				if drawn[i] || w <= 0 {
					continue
				}
				cum += w
				pick = i
				if cum >= r {
					break
				}
			}
		}

		drawn[pick] = true
		name := items[pick].Name
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, items[pick])
	}
	return out
}

func weightAt(weights []float64, i int) float64 {
	if i >= len(weights) || weights[i] < 0 || math.IsNaN(weights[i]) {
		return 0
	}
	return weights[i]
}

// EnsureSize pads src to need items by cycling through it from the start.
// An empty src stays empty.
func EnsureSize(src []types.Place, need int) []types.Place {
	out := slices.Clone(src)
	if len(src) == 0 {
		return out
	}
	for i := 0; len(out) < need; i++ {
		out = append(out, src[i%len(src)])
	}
	return out
}

// Unique drops repeated places, keeping the first occurrence of each Key.
func Unique(places []types.Place) []types.Place {
	seen := make(map[string]struct{}, len(places))
	out := make([]types.Place, 0, len(places))
	for _, p := range places {
		k := p.Key()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, p)
	}
	return out
}
