package performance

import (
	"sort"

	"github.com/xtraders/tradelog/internal/models"
)

// Filter narrows a trade set. Empty or AllValues fields match everything.
// Month is a YYYY-MM bucket.
type Filter struct {
	Year  string `json:"year"`
	Month string `json:"month"`
	Robot string `json:"robot"`
}

// Apply returns the trades matching every field of the filter.
func (f Filter) Apply(trades []models.Trade) []models.Trade {
	out := make([]models.Trade, 0, len(trades))
	for _, t := range trades {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

// Match reports whether t passes the filter.
func (f Filter) Match(t models.Trade) bool {
	return matches(f.Year, t.Year) && matches(f.Month, t.Month) && matches(f.Robot, t.Robot)
}

// RobotSelector returns the robot selection in the form Calculate expects.
func (f Filter) RobotSelector() string {
	if f.Robot == "" {
		return AllValues
	}
	return f.Robot
}

func matches(want, got string) bool {
	return want == "" || want == AllValues || want == got
}

// Options lists the values a filter can take for a trade set.
type Options struct {
	Years  []string `json:"years"`
	Months []string `json:"months"`
	Robots []string `json:"robots"`
}

// OptionsFor collects the distinct sorted years, months and robots of
// trades. Months are limited to the selected year.
func OptionsFor(trades []models.Trade, year string) Options {
	years := make(map[string]struct{})
	months := make(map[string]struct{})
	robots := make(map[string]struct{})
	for _, t := range trades {
		years[t.Year] = struct{}{}
		robots[t.Robot] = struct{}{}
		if matches(year, t.Year) {
			months[t.Month] = struct{}{}
		}
	}
	return Options{
		Years:  sortedKeys(years),
		Months: sortedKeys(months),
		Robots: sortedKeys(robots),
	}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
