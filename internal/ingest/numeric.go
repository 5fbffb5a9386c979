package ingest

import (
	"strconv"
	"strings"
	"unicode"
)

// ParseNumber reads a decimal that may use a comma as decimal separator.
// Parsing is lenient: the longest numeric prefix is used, so trailing
// garbage is ignored. ok is false when no digits are found.
func ParseNumber(s string) (float64, bool) {
	s = strings.Replace(strings.TrimSpace(s), ",", ".", 1)
	prefix := numericPrefix(s)
	if prefix == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(prefix, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// NumberOrZero is ParseNumber defaulting to 0.
func NumberOrZero(s string) float64 {
	v, _ := ParseNumber(s)
	return v
}

// numericPrefix returns the longest prefix of s that is a float literal:
// optional sign, digits with an optional fraction, optional exponent.
func numericPrefix(s string) string {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		j := i + 1
		frac := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			frac++
		}
		if digits > 0 || frac > 0 {
			i = j
			digits += frac
		}
	}
	if digits == 0 {
		return ""
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		exp := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			exp++
		}
		if exp > 0 {
			i = j
		}
	}
	return s[:i]
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// parseSpreadsheetValue cleans a spreadsheet money cell such as
// "R$ 1.234,56" and parses it. Empty cells and "-" are not values.
func parseSpreadsheetValue(cell string) (float64, bool) {
	s := strings.Replace(cell, "R$", "", 1)
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	s = strings.ReplaceAll(s, ".", "")
	s = strings.TrimSpace(strings.Replace(s, ",", ".", 1))
	if s == "" || s == "-" {
		return 0, false
	}
	return ParseNumber(s)
}
