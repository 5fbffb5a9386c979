package cli

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatBRL formats an amount in Brazilian reais, e.g. -1234.5 ->
// "-R$ 1.234,50".
func FormatBRL(amount float64) string {
	d := decimal.NewFromFloat(amount)
	negative := d.IsNegative()
	str := d.Abs().StringFixed(2)

	intPart, decPart, _ := strings.Cut(str, ".")
	result := "R$ " + groupThousands(intPart) + "," + decPart
	if negative && str != "0.00" {
		result = "-" + result
	}
	return result
}

// groupThousands inserts '.' between groups of three digits.
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	var b strings.Builder
	head := n % 3
	if head > 0 {
		b.WriteString(s[:head])
	}
	for i := head; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// FormatPnL formats a result with sign.
func FormatPnL(pnl float64) string {
	formatted := FormatBRL(pnl)
	if pnl > 0 {
		return "+" + formatted
	}
	return formatted
}

// FormatRate formats an unsigned percentage such as a win rate.
func FormatRate(value float64) string {
	return fmt.Sprintf("%.1f%%", value)
}

// FormatRatio formats a ratio such as profit factor or SQN.
func FormatRatio(value float64) string {
	return fmt.Sprintf("%.2f", value)
}

// TruncateString truncates a string to max runes with ellipsis.
func TruncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
