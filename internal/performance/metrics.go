// Package performance computes trading performance metrics over a set of
// canonical trades.
package performance

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/xtraders/tradelog/internal/models"
)

// InfiniteRatio stands in for a ratio whose loss side is zero.
const InfiniteRatio = 99

// AllValues selects every value of a filter dimension.
const AllValues = "all"

// NamedValue is a labelled amount such as the best robot or best month.
type NamedValue struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// EquityPoint is one day of the equity curve.
type EquityPoint struct {
	Date     string  `json:"date"` // DD/MM
	Equity   float64 `json:"equity"`
	Drawdown float64 `json:"drawdown"`
}

// RobotStats aggregates the trades of one robot.
type RobotStats struct {
	Name        string  `json:"name"`
	TotalProfit float64 `json:"totalProfit"`
	TotalTrades int     `json:"totalTrades"`
	Wins        int     `json:"wins"`
	Losses      int     `json:"losses"`
	WinRate     float64 `json:"winRate"`
}

// MetricsData is the derived metrics bundle. It is never persisted.
type MetricsData struct {
	NetProfit    float64              `json:"netProfit"`
	ProfitFactor float64              `json:"profitFactor"`
	MaxDrawdown  float64              `json:"maxDrawdown"`
	SQN          float64              `json:"sqn"`
	AvgTrade     float64              `json:"avgTrade"`
	Payoff       float64              `json:"payoff"`
	WinRate      float64              `json:"winRate"`
	BestRobot    NamedValue           `json:"bestRobot"`
	WorstRobot   NamedValue           `json:"worstRobot"`
	BestMonth    NamedValue           `json:"bestMonth"`
	EquityCurve  []EquityPoint        `json:"equityData"`
	Heatmap      map[string][]float64 `json:"heatmapData"`
	Weekday      [7]float64           `json:"weekdayData"`
	RobotStats   []RobotStats         `json:"robotStats"`
}

// robotAccumulator keeps per-robot totals in first-seen order so that ties
// between robots resolve the same way on every run.
type robotAccumulator struct {
	order []string
	stats map[string]*RobotStats
}

func newRobotAccumulator() *robotAccumulator {
	return &robotAccumulator{stats: make(map[string]*RobotStats)}
}

func (a *robotAccumulator) add(t models.Trade) {
	rs, ok := a.stats[t.Robot]
	if !ok {
		rs = &RobotStats{Name: t.Robot}
		a.stats[t.Robot] = rs
		a.order = append(a.order, t.Robot)
	}
	rs.TotalProfit += t.Value
	rs.TotalTrades++
	if t.IsWin() {
		rs.Wins++
	} else {
		rs.Losses++
	}
}

// Calculate derives MetricsData from the filtered trades. The heatmap is
// built from all trades with only the robot selector applied.
func Calculate(filtered, all []models.Trade, robotFilter string) MetricsData {
	var (
		m            MetricsData
		grossWin     float64
		grossLoss    float64
		wins, losses int
		values       = make([]float64, 0, len(filtered))
		daily        = make(map[string]float64)
		months       = make(map[string]float64)
		monthOrder   []string
		robots       = newRobotAccumulator()
	)

	for _, t := range filtered {
		m.NetProfit += t.Value
		values = append(values, t.Value)
		if t.IsWin() {
			grossWin += t.Value
			wins++
		} else {
			grossLoss += math.Abs(t.Value)
			losses++
		}

		daily[t.Date] += t.Value
		robots.add(t)
		if t.Weekday >= 0 && t.Weekday < len(m.Weekday) {
			m.Weekday[t.Weekday] += t.Value
		}
		if _, ok := months[t.Month]; !ok {
			monthOrder = append(monthOrder, t.Month)
		}
		months[t.Month] += t.Value
	}

	total := wins + losses
	m.ProfitFactor = ratio(grossWin, grossLoss)
	if total > 0 {
		m.WinRate = float64(wins) / float64(total) * 100
		m.AvgTrade = m.NetProfit / float64(total)
	}
	if sd := populationStdDev(values); sd > 0 && total > 0 {
		m.SQN = m.AvgTrade / sd * math.Sqrt(float64(total))
	}
	m.Payoff = ratio(mean(grossWin, wins), mean(grossLoss, losses))

	m.EquityCurve, m.MaxDrawdown = equityCurve(daily)
	m.BestRobot, m.WorstRobot = robotExtremes(robots)
	m.BestMonth = bestMonth(monthOrder, months)
	m.RobotStats = robotTable(robots)
	m.Heatmap = heatmap(all, robotFilter)
	return m
}

// ratio divides win by loss, returning InfiniteRatio when only the win
// side is positive and 0 when both sides are empty.
func ratio(win, loss float64) float64 {
	switch {
	case loss > 0:
		return win / loss
	case win > 0:
		return InfiniteRatio
	default:
		return 0
	}
}

func mean(sum float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// populationStdDev divides by N.
func populationStdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	avg := sum / float64(len(values))
	var variance float64
	for _, v := range values {
		variance += (v - avg) * (v - avg)
	}
	return math.Sqrt(variance / float64(len(values)))
}

func equityCurve(daily map[string]float64) ([]EquityPoint, float64) {
	dates := make([]string, 0, len(daily))
	for d := range daily {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	var balance, peak, maxDrawdown float64
	curve := make([]EquityPoint, 0, len(dates))
	for _, d := range dates {
		balance += daily[d]
		if balance > peak {
			peak = balance
		}
		dd := balance - peak
		if dd < maxDrawdown {
			maxDrawdown = dd
		}
		curve = append(curve, EquityPoint{Date: dayMonthLabel(d), Equity: balance, Drawdown: dd})
	}
	return curve, maxDrawdown
}

// dayMonthLabel turns YYYY-MM-DD into DD/MM.
func dayMonthLabel(date string) string {
	parts := strings.Split(date, "-")
	if len(parts) != 3 {
		return date
	}
	return parts[2] + "/" + parts[1]
}

func robotExtremes(acc *robotAccumulator) (best, worst NamedValue) {
	best, worst = NamedValue{Name: "-"}, NamedValue{Name: "-"}
	for i, name := range acc.order {
		profit := acc.stats[name].TotalProfit
		if i == 0 || profit > best.Value {
			best = NamedValue{Name: name, Value: profit}
		}
		if i == 0 || profit < worst.Value {
			worst = NamedValue{Name: name, Value: profit}
		}
	}
	return best, worst
}

func bestMonth(order []string, months map[string]float64) NamedValue {
	best := NamedValue{Name: "-"}
	for i, month := range order {
		v := months[month]
		if i == 0 || v > best.Value {
			best = NamedValue{Name: monthYearLabel(month), Value: v}
		}
	}
	return best
}

// monthYearLabel turns YYYY-MM into MM/YYYY.
func monthYearLabel(month string) string {
	year, m, ok := strings.Cut(month, "-")
	if !ok {
		return month
	}
	return m + "/" + year
}

func robotTable(acc *robotAccumulator) []RobotStats {
	table := make([]RobotStats, 0, len(acc.order))
	for _, name := range acc.order {
		rs := *acc.stats[name]
		if rs.TotalTrades > 0 {
			rs.WinRate = float64(rs.Wins) / float64(rs.TotalTrades) * 100
		}
		table = append(table, rs)
	}
	sort.SliceStable(table, func(i, j int) bool {
		return table[i].TotalProfit > table[j].TotalProfit
	})
	return table
}

func heatmap(all []models.Trade, robotFilter string) map[string][]float64 {
	out := make(map[string][]float64)
	for _, t := range all {
		if !matches(robotFilter, t.Robot) {
			continue
		}
		_, m, ok := strings.Cut(t.Month, "-")
		if !ok {
			continue
		}
		idx, err := strconv.Atoi(m)
		if err != nil || idx < 1 || idx > 12 {
			continue
		}
		row, ok := out[t.Year]
		if !ok {
			row = make([]float64, 12)
			out[t.Year] = row
		}
		row[idx-1] += t.Value
	}
	return out
}
