package ingest

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func balanceGraphText(balances []int, shift int) string {
	var b strings.Builder
	b.WriteString("<DATE>\t<BALANCE>\n")
	for i, bal := range balances {
		fmt.Fprintf(&b, "2025.03.%02d 00:00\t%d\n", (i%28)+1, bal+shift)
	}
	return b.String()
}

// Property: zero-result rows never become trades, under any layout.
func TestProperty_ZeroResultsAreDropped(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("balance graph emits no zero trades", prop.ForAll(
		func(balances []int) bool {
			for _, tr := range ParseFile(balanceGraphText(balances, 0), "BOT.csv") {
				if tr.Value == 0 || tr.Profit != tr.Value {
					return false
				}
			}
			return true
		},
		gen.SliceOfN(15, gen.IntRange(-5, 5)),
	))

	properties.Property("broker report emits no zero trades", prop.ForAll(
		func(profits []int) bool {
			var b strings.Builder
			b.WriteString("Time;Ticket;Profit;Swap;Commission;Magic\n")
			for i, p := range profits {
				fmt.Fprintf(&b, "2025.03.03 10:%02d:00;%d;%d;0;-1;175939\n", i%60, i, p)
			}
			trades := ParseFile(b.String(), "r.csv")
			expected := 0
			for _, p := range profits {
				if p-1 != 0 {
					expected++
				}
			}
			if len(trades) != expected {
				return false
			}
			for _, tr := range trades {
				if tr.Value == 0 {
					return false
				}
			}
			return true
		},
		gen.SliceOfN(15, gen.IntRange(-3, 3)),
	))

	properties.Property("spreadsheet emits no zero trades", prop.ForAll(
		func(values []int) bool {
			var b strings.Builder
			b.WriteString("DIA;ZARION\n")
			for i, v := range values {
				fmt.Fprintf(&b, "%d/mar;R$ %d,00\n", (i%28)+1, v)
			}
			for _, tr := range ParseFile(b.String(), "s.csv") {
				if tr.Value == 0 {
					return false
				}
			}
			return true
		},
		gen.SliceOfN(15, gen.IntRange(-2, 2)),
	))

	properties.TestingRun(t)
}

// Property: balance-graph profits are first differences, so shifting every
// balance by a constant leaves the trades unchanged.
func TestProperty_BalanceGraphTranslationInvariant(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("shifted balances yield the same profits", prop.ForAll(
		func(balances []int, shift int) bool {
			base := ParseFile(balanceGraphText(balances, 0), "BOT.csv")
			shifted := ParseFile(balanceGraphText(balances, shift), "BOT.csv")
			if len(base) != len(shifted) {
				t.Logf("count mismatch: %d vs %d", len(base), len(shifted))
				return false
			}
			for i := range base {
				if base[i].Value != shifted[i].Value || base[i].Date != shifted[i].Date {
					t.Logf("trade %d differs: %+v vs %+v", i, base[i], shifted[i])
					return false
				}
			}
			return true
		},
		gen.SliceOfN(20, gen.IntRange(-100000, 100000)),
		gen.IntRange(-1000000, 1000000),
	))

	properties.TestingRun(t)
}

// Property: rows tagged with a non-strategy magic code are always excluded.
func TestProperty_SentinelMagicExcluded(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("magic 0 and 1247 never produce trades", prop.ForAll(
		func(magic string, profit int, swap int, symbol string) bool {
			text := "Time;Ticket;Symbol;Profit;Swap;Magic\n" +
				"2025.04.01 10:00:00;1;" + symbol + ";" + strconv.Itoa(profit) + ";" +
				strconv.Itoa(swap) + ";" + magic + "\n"
			return len(ParseFile(text, "r.csv")) == 0
		},
		gen.OneConstOf("0", "1247"),
		gen.IntRange(-10000, 10000),
		gen.IntRange(-100, 100),
		gen.OneConstOf("WINJ25", "WDOJ25", "PETR4"),
	))

	properties.TestingRun(t)
}
