package stats

import (
	"math"
	"testing"

	"github.com/liftbook/liftbook/internal/models"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func sampleLog() *models.LogStore {
	return &models.LogStore{
		Units: models.UnitsPounds,
		Sets: []models.Entry{
			{ID: "1", Date: "2024-01-01", Exercise: "bench press", Category: models.CategoryPush, Weight: 185, Reps: 5},
			{ID: "2", Date: "2024-01-01", Exercise: "bench press", Category: models.CategoryPush, Weight: 185, Reps: 3},
			{ID: "3", Date: "2024-01-08", Exercise: "bench press", Category: models.CategoryPush, Weight: 190, Reps: 2},
			{ID: "4", Date: "2024-01-03", Exercise: "barbell row", Category: models.CategoryPull, Weight: 135, Reps: 8},
			{ID: "5", Date: "2024-01-05", Exercise: "squat", Category: models.CategoryLegs, Weight: 225, Reps: 5},
		},
	}
}

// TestEstimateOneRepMax verifies the Epley formula.
func TestEstimateOneRepMax(t *testing.T) {
	if got := EstimateOneRepMax(100, 5); !almostEqual(got, 100*(1+5.0/30)) {
		t.Errorf("EstimateOneRepMax(100, 5) = %v", got)
	}
	// A single rep estimates slightly above the weight itself.
	if got := EstimateOneRepMax(90, 1); !almostEqual(got, 93) {
		t.Errorf("EstimateOneRepMax(90, 1) = %v, want 93", got)
	}
}

// TestSummaries verifies per-exercise personal bests and tonnage.
func TestSummaries(t *testing.T) {
	got := Summaries(sampleLog())

	if len(got) != 3 {
		t.Fatalf("Summaries() len = %d, want 3", len(got))
	}
	// Sorted by exercise name.
	if got[0].Exercise != "barbell row" || got[1].Exercise != "bench press" || got[2].Exercise != "squat" {
		t.Fatalf("Summaries() order = [%s %s %s]", got[0].Exercise, got[1].Exercise, got[2].Exercise)
	}

	bench := got[1]
	if bench.Sets != 3 {
		t.Errorf("bench sets = %d, want 3", bench.Sets)
	}
	if bench.MaxWeight != 190 {
		t.Errorf("bench max weight = %v, want 190", bench.MaxWeight)
	}
	if bench.MaxReps != 5 {
		t.Errorf("bench max reps = %d, want 5", bench.MaxReps)
	}
	wantTonnage := 185*5.0 + 185*3.0 + 190*2.0
	if !almostEqual(bench.Tonnage, wantTonnage) {
		t.Errorf("bench tonnage = %v, want %v", bench.Tonnage, wantTonnage)
	}
	wantBest := EstimateOneRepMax(185, 5)
	if !almostEqual(bench.BestE1RM, wantBest) {
		t.Errorf("bench best e1RM = %v, want %v", bench.BestE1RM, wantBest)
	}
}

// TestE1RMTrend verifies the per-date maximum and date ordering.
func TestE1RMTrend(t *testing.T) {
	got := E1RMTrend(sampleLog(), "bench press")

	if len(got) != 2 {
		t.Fatalf("trend len = %d, want 2 (two distinct dates)", len(got))
	}
	if got[0].Date != "2024-01-01" || got[1].Date != "2024-01-08" {
		t.Errorf("trend dates = [%s %s]", got[0].Date, got[1].Date)
	}
	// 2024-01-01 has two sets; the better estimate wins.
	want := EstimateOneRepMax(185, 5)
	if !almostEqual(got[0].E1RM, want) {
		t.Errorf("trend[0] = %v, want %v (per-date max)", got[0].E1RM, want)
	}
}

// TestE1RMTrendUnknownExercise verifies an empty series.
func TestE1RMTrendUnknownExercise(t *testing.T) {
	if got := E1RMTrend(sampleLog(), "curl"); len(got) != 0 {
		t.Errorf("trend for unknown exercise = %v, want empty", got)
	}
}

// TestCategoryBalance verifies the push/pull/legs distribution.
func TestCategoryBalance(t *testing.T) {
	got := CategoryBalance(sampleLog())

	if len(got) != 3 {
		t.Fatalf("balance len = %d, want 3", len(got))
	}

	byCat := map[models.Category]CategoryShare{}
	total := 0.0
	for _, share := range got {
		byCat[share.Category] = share
		total += share.Share
	}

	if byCat[models.CategoryPush].Sets != 3 || byCat[models.CategoryPull].Sets != 1 || byCat[models.CategoryLegs].Sets != 1 {
		t.Errorf("balance counts = %+v", byCat)
	}
	if !almostEqual(total, 1) {
		t.Errorf("shares sum = %v, want 1", total)
	}
	if !almostEqual(byCat[models.CategoryPush].Share, 0.6) {
		t.Errorf("push share = %v, want 0.6", byCat[models.CategoryPush].Share)
	}
}

// TestCategoryBalanceEmpty verifies zero shares on an empty log.
func TestCategoryBalanceEmpty(t *testing.T) {
	got := CategoryBalance(models.NewLogStore())

	for _, share := range got {
		if share.Sets != 0 || share.Share != 0 {
			t.Errorf("empty log share = %+v, want zeros", share)
		}
	}
}
