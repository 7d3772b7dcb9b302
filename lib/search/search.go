// Package search implements name and score filtering over the catalog.
package search

import (
	"math"
	"strconv"
	"strings"

	"github.com/icco/animedash/lib/catalog"
	"github.com/icco/animedash/models"
)

const (
	MinScore = 0
	MaxScore = 10
)

// Query holds the two user inputs. The name query takes precedence over the
// score; a zero score means "no score filter".
type Query struct {
	Name  string
	Score int
}

// ParseQuery builds a Query from raw form values. A blank name, or a score
// that does not parse as an integer in [0, 10], is treated as no filter.
func ParseQuery(name, score string) Query {
	var q Query
	if strings.TrimSpace(name) != "" {
		q.Name = name
	}
	if n, err := strconv.Atoi(strings.TrimSpace(score)); err == nil && n >= MinScore && n <= MaxScore {
		q.Score = n
	}
	return q
}

// Active reports whether the query asks for anything. An inactive query
// corresponds to the "not searched yet" state.
func (q Query) Active() bool {
	return q.Name != "" || q.Score > 0
}

// Filter returns the records matching q, in row order. A name query matches
// records whose Name contains it case-insensitively. Otherwise a positive
// score matches records whose Score rounds (half to even) to that value. An
// inactive query returns nil.
func Filter(ds *catalog.Dataset, q Query) []models.Anime {
	var match func(models.Anime) bool
	switch {
	case q.Name != "":
		needle := strings.ToLower(q.Name)
		match = func(a models.Anime) bool {
			return a.Name != "" && strings.Contains(strings.ToLower(a.Name), needle)
		}
	case q.Score > 0:
		match = func(a models.Anime) bool {
			return a.Score != nil && RoundScore(*a.Score) == q.Score
		}
	default:
		return nil
	}

	results := []models.Anime{}
	for _, a := range ds.All() {
		if match(a) {
			results = append(results, a)
		}
	}
	return results
}

// RoundScore rounds a score to the nearest integer, ties to even.
func RoundScore(score float64) int {
	return int(math.RoundToEven(score))
}
