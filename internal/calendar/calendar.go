// Package calendar arranges ledger days into month grids.
package calendar

import (
	"strconv"
	"strings"
	"time"

	"github.com/xtraders/tradelog/internal/ledger"
	"github.com/xtraders/tradelog/internal/models"
)

// MonthNames are the Portuguese month names, January first.
var MonthNames = [12]string{
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

// WeekdayNames head the grid columns, Sunday first.
var WeekdayNames = [7]string{"DOM", "SEG", "TER", "QUA", "QUI", "SEX", "SÁB"}

// Day is one cell of a month grid. Blank padding cells have Day 0.
type Day struct {
	Day          int      `json:"day"`
	DateKey      string   `json:"dateKey,omitempty"`
	Total        *float64 `json:"total"`
	HasOperation bool     `json:"hasOperation"`
}

// Month is the calendar view of one month of the ledger.
type Month struct {
	Key         string             `json:"monthKey"` // MM.YYYY
	Name        string             `json:"monthName"`
	Year        string             `json:"year"`
	Total       float64            `json:"totalMonth"`
	Weeks       [][]Day            `json:"calendarDays"`
	RobotTotals map[string]float64 `json:"robotTotals"`
	Days        int                `json:"totalDays"`
}

// Organize groups the ledger by month and builds a Sunday-first grid for
// each one. Months are returned newest first. Keys that are not DD.MM.YYYY
// are skipped.
func Organize(data models.HistoricalData) []Month {
	var (
		order  []string
		months = make(map[string]*Month)
		days   = make(map[string]map[int]float64)
	)

	for _, key := range ledger.SortedDates(data) {
		day, month, year, ok := splitDayKey(key)
		if !ok {
			continue
		}
		monthKey := pad2(month) + "." + year

		m, exists := months[monthKey]
		if !exists {
			m = &Month{
				Key:         monthKey,
				Name:        MonthNames[month-1],
				Year:        year,
				RobotTotals: make(map[string]float64, len(models.AutomationRobots)),
			}
			for _, robot := range models.AutomationRobots {
				m.RobotTotals[robot] = 0
			}
			months[monthKey] = m
			days[monthKey] = make(map[int]float64)
			order = append(order, monthKey)
		}

		entry := data[key]
		m.Total += entry.TotalDia
		m.Days++
		for _, robot := range models.AutomationRobots {
			m.RobotTotals[robot] += entry.Robots[robot]
		}
		days[monthKey][day] += entry.TotalDia
	}

	out := make([]Month, 0, len(order))
	for i := len(order) - 1; i >= 0; i-- {
		m := months[order[i]]
		m.Weeks = grid(m.Key, days[m.Key])
		out = append(out, *m)
	}
	return out
}

// grid lays out the days of monthKey in weeks of seven cells, padding the
// first and last weeks with blanks.
func grid(monthKey string, operations map[int]float64) [][]Day {
	month, _ := strconv.Atoi(monthKey[:2])
	year, _ := strconv.Atoi(monthKey[3:])
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	var (
		weeks [][]Day
		week  = make([]Day, int(first.Weekday()), 7)
	)
	for d := 1; d <= daysInMonth; d++ {
		cell := Day{Day: d}
		if total, ok := operations[d]; ok {
			cell.DateKey = pad2(d) + "." + monthKey
			cell.Total = &total
			cell.HasOperation = true
		}
		week = append(week, cell)
		if len(week) == 7 {
			weeks = append(weeks, week)
			week = make([]Day, 0, 7)
		}
	}
	if len(week) > 0 {
		for len(week) < 7 {
			week = append(week, Day{})
		}
		weeks = append(weeks, week)
	}
	return weeks
}

func splitDayKey(key string) (day, month int, year string, ok bool) {
	parts := strings.Split(key, ".")
	if len(parts) != 3 || len(parts[2]) != 4 {
		return 0, 0, "", false
	}
	day, err := strconv.Atoi(parts[0])
	if err != nil || day < 1 || day > 31 {
		return 0, 0, "", false
	}
	month, err = strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return 0, 0, "", false
	}
	if _, err := strconv.Atoi(parts[2]); err != nil {
		return 0, 0, "", false
	}
	return day, month, parts[2], true
}

func pad2(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
