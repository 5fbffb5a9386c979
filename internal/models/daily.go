package models

import "sort"

// DailyTrade is one operation of one robot on a reporting day. Prices are
// kept as display strings because grouped partial exits carry a
// "price(contracts)" notation.
type DailyTrade struct {
	RobotName    string  `json:"robotName"`
	Operacao     string  `json:"operacao"`
	HoraEntrada  string  `json:"horaEntrada"`
	HoraSaida    string  `json:"horaSaida"`
	PrecoEntrada string  `json:"precoEntrada"`
	PrecoSaida   string  `json:"precoSaida"`
	Parcial      string  `json:"parcial,omitempty"`
	Contratos    float64 `json:"contratos"`
	Resultado    float64 `json:"resultado"`
}

// DailyRobotData is the per-robot bucket of a daily report.
type DailyRobotData struct {
	Name    string       `json:"name"`
	Margem  string       `json:"margem"`
	LogoURL string       `json:"logoUrl"`
	Trades  []DailyTrade `json:"trades"`
}

// Result sums the robot's trade results.
func (r *DailyRobotData) Result() float64 {
	if r == nil {
		return 0
	}
	var total float64
	for _, t := range r.Trades {
		total += t.Resultado
	}
	return total
}

// DailyReportData is one parsed single-day report.
type DailyReportData struct {
	Date            string                     `json:"date"` // DD.MM.YYYY
	Robots          map[string]*DailyRobotData `json:"robots"`
	TotalAutomation float64                    `json:"totalAutomation"`
}

// RobotNames returns the report's bucket names with roster robots first in
// roster order, followed by ad-hoc buckets in name order.
func (d *DailyReportData) RobotNames() []string {
	names := make([]string, 0, len(d.Robots))
	seen := make(map[string]bool, len(d.Robots))
	for _, r := range Roster {
		if _, ok := d.Robots[r.Name]; ok {
			names = append(names, r.Name)
			seen[r.Name] = true
		}
	}
	var extra []string
	for name := range d.Robots {
		if !seen[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return append(names, extra...)
}

// HistoricalDayData is one persisted ledger entry.
type HistoricalDayData struct {
	TotalDia float64            `json:"totalDia"`
	Robots   map[string]float64 `json:"robots"`
}

// HistoricalData maps a DD.MM.YYYY day key to its ledger entry.
type HistoricalData map[string]HistoricalDayData

// Clone returns a shallow copy safe to mutate at the top level.
func (h HistoricalData) Clone() HistoricalData {
	out := make(HistoricalData, len(h))
	for k, v := range h {
		out[k] = v
	}
	return out
}
