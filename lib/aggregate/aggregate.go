// Package aggregate computes frequency counts and score histograms over the
// catalog.
package aggregate

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"
	"sync"

	"github.com/icco/animedash/lib/catalog"
	"github.com/icco/animedash/models"
)

// Separator splits multi-valued columns such as Genres and Studios.
const Separator = ", "

// TopValues counts the labels of a delimited field across ds and returns the
// n most frequent, ordered by count descending and then label ascending.
// Records without the field contribute nothing; empty tokens are skipped.
func TopValues(ds *catalog.Dataset, field models.Field, n int) []models.LabelCount {
	if n <= 0 {
		return []models.LabelCount{}
	}

	counts := make(map[string]int)
	for _, a := range ds.All() {
		v := a.Values(field)
		if v == nil {
			continue
		}
		for _, label := range strings.Split(*v, Separator) {
			if label == "" {
				continue
			}
			counts[label]++
		}
	}

	out := make([]models.LabelCount, 0, len(counts))
	for label, count := range counts {
		out = append(out, models.LabelCount{Label: label, Count: count})
	}
	slices.SortFunc(out, func(a, b models.LabelCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return strings.Compare(a.Label, b.Label)
	})

	if len(out) > n {
		out = out[:n]
	}
	return out
}

// Histogram buckets every present score into bins equal-width buckets
// spanning the observed minimum to maximum. The last bucket is closed on the
// right. When every score is identical the range is widened by 0.5 on each
// side. Non-finite scores are ignored. A dataset without scores yields no
// buckets.
func Histogram(ds *catalog.Dataset, bins int) []models.Bin {
	if bins <= 0 {
		return []models.Bin{}
	}

	var scores []float64
	for _, a := range ds.All() {
		if a.Score == nil || math.IsNaN(*a.Score) || math.IsInf(*a.Score, 0) {
			continue
		}
		scores = append(scores, *a.Score)
	}
	if len(scores) == 0 {
		return []models.Bin{}
	}

	lo, hi := slices.Min(scores), slices.Max(scores)
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	width := (hi - lo) / float64(bins)

	out := make([]models.Bin, bins)
	for i := range out {
		out[i].Low = lo + float64(i)*width
		out[i].High = lo + float64(i+1)*width
	}
	out[bins-1].High = hi

	for _, s := range scores {
		i := int((s - lo) / width)
		if i >= bins {
			i = bins - 1
		}
		out[i].Count++
	}
	return out
}

// Aggregator memoizes TopValues and Histogram results for a single dataset.
// The dataset never changes, so entries are never invalidated.
type Aggregator struct {
	ds *catalog.Dataset

	mu        sync.Mutex
	top       map[string][]models.LabelCount
	histogram map[int][]models.Bin
}

// New returns an Aggregator over ds.
func New(ds *catalog.Dataset) *Aggregator {
	return &Aggregator{
		ds:        ds,
		top:       make(map[string][]models.LabelCount),
		histogram: make(map[int][]models.Bin),
	}
}

// TopValues is the memoized form of the package-level TopValues. Callers
// must not modify the returned slice.
func (g *Aggregator) TopValues(field models.Field, n int) []models.LabelCount {
	key := fmt.Sprintf("%s/%d", field, n)

	g.mu.Lock()
	defer g.mu.Unlock()

	if cached, ok := g.top[key]; ok {
		return cached
	}
	res := TopValues(g.ds, field, n)
	g.top[key] = res
	return res
}

// Histogram is the memoized form of the package-level Histogram. Callers
// must not modify the returned slice.
func (g *Aggregator) Histogram(bins int) []models.Bin {
	g.mu.Lock()
	defer g.mu.Unlock()

	if cached, ok := g.histogram[bins]; ok {
		return cached
	}
	res := Histogram(g.ds, bins)
	g.histogram[bins] = res
	return res
}
