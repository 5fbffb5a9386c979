package cli

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

var brlPattern = regexp.MustCompile(`^-?R\$ \d{1,3}(\.\d{3})*,\d{2}$`)

// parseBRL reverses FormatBRL.
func parseBRL(s string) float64 {
	negative := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	s = strings.TrimPrefix(s, "R$ ")
	s = strings.ReplaceAll(s, ".", "")
	s = strings.Replace(s, ",", ".", 1)
	v, _ := strconv.ParseFloat(s, 64)
	if negative {
		v = -v
	}
	return v
}

// TestProperty_BRLFormatting verifies the shape and value of formatted
// amounts.
func TestProperty_BRLFormatting(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("FormatBRL groups thousands with dots and uses a decimal comma", prop.ForAll(
		func(amount float64) bool {
			formatted := FormatBRL(amount)
			if !brlPattern.MatchString(formatted) {
				t.Logf("unexpected format for %f: %s", amount, formatted)
				return false
			}
			return (amount < 0) == strings.HasPrefix(formatted, "-") || formatted == "R$ 0,00"
		},
		gen.Float64Range(-1e12, 1e12),
	))

	properties.Property("FormatBRL preserves value to the cent", prop.ForAll(
		func(amount float64) bool {
			parsed := parseBRL(FormatBRL(amount))
			return math.Abs(parsed-math.Round(amount*100)/100) <= 0.01
		},
		gen.Float64Range(-1e9, 1e9),
	))

	properties.TestingRun(t)
}

func TestFormatBRLExamples(t *testing.T) {
	testCases := []struct {
		amount   float64
		expected string
	}{
		{0, "R$ 0,00"},
		{1, "R$ 1,00"},
		{999.99, "R$ 999,99"},
		{1000, "R$ 1.000,00"},
		{85.5, "R$ 85,50"},
		{1234567.891, "R$ 1.234.567,89"},
		{-1234.56, "-R$ 1.234,56"},
		{-0.001, "R$ 0,00"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			if result := FormatBRL(tc.amount); result != tc.expected {
				t.Errorf("FormatBRL(%f) = %s, want %s", tc.amount, result, tc.expected)
			}
		})
	}
}

func TestFormatPnLAndPercentExamples(t *testing.T) {
	if got := FormatPnL(200); got != "+R$ 200,00" {
		t.Errorf("FormatPnL(200) = %s", got)
	}
	if got := FormatPnL(-100); got != "-R$ 100,00" {
		t.Errorf("FormatPnL(-100) = %s", got)
	}
	if got := TruncateString("OPERAÇÕES NA MÃO", 10); got != "OPERAÇ..." {
		t.Errorf("TruncateString = %s", got)
	}
}
