package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/rs/zerolog"

	"github.com/xtraders/tradelog/internal/models"
)

// TestProperty_LedgerRoundTrip verifies that a ledger written through the
// SQLite store reads back with the same day totals.
func TestProperty_LedgerRoundTrip(t *testing.T) {
	kv := newTestSQLite(t)
	hs := NewHistoricalStore(kv, zerolog.Nop())

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("store then load preserves every day", prop.ForAll(
		func(days []int, totals []int) bool {
			ctx := context.Background()
			data := models.HistoricalData{}
			for i, d := range days {
				key := fmt.Sprintf("%02d.01.2025", d)
				data[key] = models.HistoricalDayData{
					TotalDia: float64(totals[i]) / 4,
					Robots:   map[string]float64{"ZARION": float64(totals[i]) / 4},
				}
			}
			if err := hs.Store(ctx, data); err != nil {
				return false
			}
			loaded, err := hs.Load(ctx)
			if err != nil || len(loaded) != len(data) {
				return false
			}
			for k, v := range data {
				if loaded[k].TotalDia != v.TotalDia || loaded[k].Robots["ZARION"] != v.Robots["ZARION"] {
					return false
				}
			}
			return true
		},
		gen.SliceOfN(10, gen.IntRange(1, 28)),
		gen.SliceOfN(10, gen.IntRange(-10000, 10000)),
	))

	properties.TestingRun(t)
}
