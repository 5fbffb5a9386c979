package performance

import (
	"math"
	"testing"
	"time"

	"github.com/xtraders/tradelog/internal/models"
)

func trade(date, robot string, value float64) models.Trade {
	weekday := -1
	if d, err := time.Parse("2006-01-02", date); err == nil {
		weekday = int(d.Weekday())
	}
	return models.Trade{
		Date:    date,
		Year:    date[:4],
		Month:   date[:7],
		Value:   value,
		Profit:  value,
		Robot:   robot,
		Weekday: weekday,
	}
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCalculateRatiosAndCurve(t *testing.T) {
	trades := []models.Trade{
		trade("2025-01-02", "ZARION", 100),
		trade("2025-01-02", "ORION WIN", -40),
		trade("2025-01-03", "ZARION", -80),
		trade("2025-02-04", "ORION WIN", 60),
	}
	m := Calculate(trades, trades, AllValues)

	if m.NetProfit != 40 {
		t.Errorf("net profit = %v, want 40", m.NetProfit)
	}
	if !approx(m.ProfitFactor, 160.0/120.0) {
		t.Errorf("profit factor = %v", m.ProfitFactor)
	}
	if m.WinRate != 50 || m.AvgTrade != 10 {
		t.Errorf("win rate = %v, avg trade = %v", m.WinRate, m.AvgTrade)
	}
	if !approx(m.Payoff, 80.0/60.0) {
		t.Errorf("payoff = %v", m.Payoff)
	}
	// values 100,-40,-80,60: mean 10, variance (8100+2500+8100+2500)/4 = 5300.
	wantSQN := 10 / math.Sqrt(5300) * 2
	if !approx(m.SQN, wantSQN) {
		t.Errorf("sqn = %v, want %v", m.SQN, wantSQN)
	}

	wantCurve := []EquityPoint{
		{Date: "02/01", Equity: 60, Drawdown: 0},
		{Date: "03/01", Equity: -20, Drawdown: -80},
		{Date: "04/02", Equity: 40, Drawdown: -20},
	}
	if len(m.EquityCurve) != len(wantCurve) {
		t.Fatalf("curve = %+v", m.EquityCurve)
	}
	for i, want := range wantCurve {
		if m.EquityCurve[i] != want {
			t.Errorf("curve[%d] = %+v, want %+v", i, m.EquityCurve[i], want)
		}
	}
	if m.MaxDrawdown != -80 {
		t.Errorf("max drawdown = %v", m.MaxDrawdown)
	}

	if m.BestRobot != (NamedValue{Name: "ZARION", Value: 20}) {
		t.Errorf("best robot = %+v", m.BestRobot)
	}
	// Both robots end at 20; the first seen wins the tie on both sides.
	if m.WorstRobot != (NamedValue{Name: "ZARION", Value: 20}) {
		t.Errorf("worst robot = %+v", m.WorstRobot)
	}
	if m.BestMonth != (NamedValue{Name: "02/2025", Value: 60}) {
		t.Errorf("best month = %+v", m.BestMonth)
	}

	// 2025-01-02 is Thursday, 2025-01-03 Friday, 2025-02-04 Tuesday.
	if m.Weekday[4] != 60 || m.Weekday[5] != -80 || m.Weekday[2] != 60 {
		t.Errorf("weekday = %v", m.Weekday)
	}
}

func TestCalculateTiesKeepFirstSeenRobot(t *testing.T) {
	trades := []models.Trade{
		trade("2025-01-02", "B", 10),
		trade("2025-01-02", "A", 10),
	}
	m := Calculate(trades, trades, AllValues)
	if m.BestRobot.Name != "B" || m.WorstRobot.Name != "B" {
		t.Errorf("best = %+v, worst = %+v", m.BestRobot, m.WorstRobot)
	}
	if m.RobotStats[0].Name != "B" {
		t.Errorf("stable sort should keep B first: %+v", m.RobotStats)
	}
}

func TestCalculateSentinels(t *testing.T) {
	onlyWins := []models.Trade{trade("2025-01-02", "A", 10), trade("2025-01-03", "A", 30)}
	m := Calculate(onlyWins, onlyWins, AllValues)
	if m.ProfitFactor != InfiniteRatio || m.Payoff != InfiniteRatio {
		t.Errorf("profit factor = %v, payoff = %v, want 99", m.ProfitFactor, m.Payoff)
	}

	empty := Calculate(nil, nil, AllValues)
	if empty.ProfitFactor != 0 || empty.Payoff != 0 || empty.SQN != 0 || empty.WinRate != 0 {
		t.Errorf("empty metrics = %+v", empty)
	}
	if empty.BestRobot.Name != "-" || empty.BestMonth.Name != "-" {
		t.Errorf("empty extremes = %+v / %+v", empty.BestRobot, empty.BestMonth)
	}

	flat := []models.Trade{trade("2025-01-02", "A", 5), trade("2025-01-03", "A", 5)}
	if sqn := Calculate(flat, flat, AllValues).SQN; sqn != 0 {
		t.Errorf("sqn with zero deviation = %v", sqn)
	}
}

func TestCalculateSkipsInvalidWeekday(t *testing.T) {
	bad := trade("2025-01-02", "A", 7)
	bad.Weekday = -1
	m := Calculate([]models.Trade{bad}, nil, AllValues)
	for i, v := range m.Weekday {
		if v != 0 {
			t.Errorf("weekday[%d] = %v", i, v)
		}
	}
	if m.NetProfit != 7 {
		t.Errorf("net profit = %v", m.NetProfit)
	}
}

func TestHeatmapIgnoresDateFilter(t *testing.T) {
	all := []models.Trade{
		trade("2024-12-10", "A", 5),
		trade("2025-01-02", "A", 10),
		trade("2025-01-20", "A", 3),
		trade("2025-03-02", "B", 7),
	}
	filter := Filter{Year: "2025", Month: "2025-01", Robot: "A"}
	m := Calculate(filter.Apply(all), all, filter.RobotSelector())

	if m.NetProfit != 13 {
		t.Errorf("net profit = %v", m.NetProfit)
	}
	if got := m.Heatmap["2024"]; len(got) != 12 || got[11] != 5 {
		t.Errorf("heatmap 2024 = %v", got)
	}
	if got := m.Heatmap["2025"]; got[0] != 13 || got[2] != 0 {
		t.Errorf("heatmap 2025 = %v", got)
	}
}

func TestFilterAndOptions(t *testing.T) {
	trades := []models.Trade{
		trade("2025-02-03", "ZARION", 1),
		trade("2024-11-05", "ORION WIN", 2),
		trade("2025-01-07", "ORION WIN", 3),
	}

	if got := (Filter{}).Apply(trades); len(got) != 3 {
		t.Errorf("empty filter kept %d trades", len(got))
	}
	if got := (Filter{Year: "all", Robot: "ORION WIN"}).Apply(trades); len(got) != 2 {
		t.Errorf("robot filter kept %d trades", len(got))
	}
	if got := (Filter{Month: "2025-01"}).Apply(trades); len(got) != 1 || got[0].Value != 3 {
		t.Errorf("month filter = %+v", got)
	}

	opts := OptionsFor(trades, "2025")
	if len(opts.Years) != 2 || opts.Years[0] != "2024" {
		t.Errorf("years = %v", opts.Years)
	}
	if len(opts.Months) != 2 || opts.Months[0] != "2025-01" || opts.Months[1] != "2025-02" {
		t.Errorf("months = %v", opts.Months)
	}
	if len(opts.Robots) != 2 || opts.Robots[0] != "ORION WIN" {
		t.Errorf("robots = %v", opts.Robots)
	}
	if all := OptionsFor(trades, AllValues); len(all.Months) != 3 {
		t.Errorf("months for all years = %v", all.Months)
	}
}
