// Package stats computes derived views over a log store snapshot:
// per-exercise personal bests, estimated one-rep-max trends and
// training-category balance. Everything here is pure arithmetic over a
// read-only snapshot; the package has no sync or persistence concerns.
package stats

import (
	"sort"

	"github.com/liftbook/liftbook/internal/models"
)

// EstimateOneRepMax returns the Epley estimate for a single set.
func EstimateOneRepMax(weight float64, reps int) float64 {
	return weight * (1 + float64(reps)/30)
}

// ExerciseSummary holds the personal bests for one exercise name.
type ExerciseSummary struct {
	Exercise  string  `json:"exercise"`
	Sets      int     `json:"sets"`
	MaxWeight float64 `json:"max_weight"`
	MaxReps   int     `json:"max_reps"`
	Tonnage   float64 `json:"tonnage"`
	BestE1RM  float64 `json:"best_e1rm"`
}

// Summaries computes per-exercise personal bests, sorted by exercise
// name for stable output.
func Summaries(snapshot *models.LogStore) []ExerciseSummary {
	byName := make(map[string]*ExerciseSummary)
	for _, e := range snapshot.Sets {
		s, ok := byName[e.Exercise]
		if !ok {
			s = &ExerciseSummary{Exercise: e.Exercise}
			byName[e.Exercise] = s
		}
		s.Sets++
		s.Tonnage += e.Weight * float64(e.Reps)
		if e.Weight > s.MaxWeight {
			s.MaxWeight = e.Weight
		}
		if e.Reps > s.MaxReps {
			s.MaxReps = e.Reps
		}
		if est := EstimateOneRepMax(e.Weight, e.Reps); est > s.BestE1RM {
			s.BestE1RM = est
		}
	}

	out := make([]ExerciseSummary, 0, len(byName))
	for _, s := range byName {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Exercise < out[j].Exercise })
	return out
}

// TrendPoint is one point on an estimated one-rep-max trend line.
type TrendPoint struct {
	Date string  `json:"date"`
	E1RM float64 `json:"e1rm"`
}

// E1RMTrend returns the per-date maximum estimated one-rep-max for one
// exercise, sorted by date ascending. Multiple sets on the same date
// collapse to the best estimate of that day.
func E1RMTrend(snapshot *models.LogStore, exercise string) []TrendPoint {
	byDate := make(map[string]float64)
	for _, e := range snapshot.Sets {
		if e.Exercise != exercise {
			continue
		}
		if est := EstimateOneRepMax(e.Weight, e.Reps); est > byDate[e.Date] {
			byDate[e.Date] = est
		}
	}

	out := make([]TrendPoint, 0, len(byDate))
	for date, est := range byDate {
		out = append(out, TrendPoint{Date: date, E1RM: est})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// CategoryShare holds the set count and fraction for one category.
type CategoryShare struct {
	Category models.Category `json:"category"`
	Sets     int             `json:"sets"`
	Share    float64         `json:"share"`
}

// CategoryBalance returns the push/pull/legs distribution of the
// snapshot. Shares sum to 1 for a non-empty log and are 0 otherwise.
func CategoryBalance(snapshot *models.LogStore) []CategoryShare {
	counts := map[models.Category]int{}
	for _, e := range snapshot.Sets {
		counts[e.Category]++
	}

	total := len(snapshot.Sets)
	categories := []models.Category{models.CategoryPush, models.CategoryPull, models.CategoryLegs}

	out := make([]CategoryShare, 0, len(categories))
	for _, c := range categories {
		share := CategoryShare{Category: c, Sets: counts[c]}
		if total > 0 {
			share.Share = float64(counts[c]) / float64(total)
		}
		out = append(out, share)
	}
	return out
}
