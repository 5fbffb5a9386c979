package calendar

import (
	"testing"

	"github.com/xtraders/tradelog/internal/models"
)

func TestOrganizeGroupsMonthsNewestFirst(t *testing.T) {
	data := models.HistoricalData{
		"03.03.2025": {TotalDia: 100, Robots: map[string]float64{"ZARION": 60, "ORION WIN": 40}},
		"04.03.2025": {TotalDia: -20, Robots: map[string]float64{"ZARION": -20}},
		"28.02.2025": {TotalDia: 15, Robots: map[string]float64{"GIRION": 15}},
		"bad-key":    {TotalDia: 999},
	}
	months := Organize(data)
	if len(months) != 2 {
		t.Fatalf("expected 2 months, got %d", len(months))
	}

	march := months[0]
	if march.Key != "03.2025" || march.Name != "Março" || march.Year != "2025" {
		t.Errorf("first month = %s %s %s", march.Key, march.Name, march.Year)
	}
	if march.Total != 80 || march.Days != 2 {
		t.Errorf("march total = %v over %d days", march.Total, march.Days)
	}
	if march.RobotTotals["ZARION"] != 40 || march.RobotTotals["ORION WIN"] != 40 {
		t.Errorf("robot totals = %v", march.RobotTotals)
	}
	if len(march.RobotTotals) != len(models.AutomationRobots) {
		t.Errorf("expected every automation robot, got %v", march.RobotTotals)
	}
	if months[1].Key != "02.2025" || months[1].Name != "Fevereiro" {
		t.Errorf("second month = %+v", months[1])
	}
}

func TestMonthGridAlignment(t *testing.T) {
	// March 2025 starts on a Saturday and has 31 days.
	data := models.HistoricalData{"03.03.2025": {TotalDia: 7}}
	weeks := Organize(data)[0].Weeks

	if len(weeks) != 6 {
		t.Fatalf("expected 6 weeks, got %d", len(weeks))
	}
	for i, w := range weeks {
		if len(w) != 7 {
			t.Errorf("week %d has %d cells", i, len(w))
		}
	}
	for i := 0; i < 6; i++ {
		if weeks[0][i].Day != 0 {
			t.Errorf("leading cell %d should be blank: %+v", i, weeks[0][i])
		}
	}
	if weeks[0][6].Day != 1 {
		t.Errorf("1st should fall on Saturday: %+v", weeks[0][6])
	}

	monday := weeks[1][1]
	if monday.Day != 3 || !monday.HasOperation || monday.DateKey != "03.03.2025" || *monday.Total != 7 {
		t.Errorf("03.03 cell = %+v", monday)
	}
	if tuesday := weeks[1][2]; tuesday.HasOperation || tuesday.DateKey != "" || tuesday.Total != nil {
		t.Errorf("day without operation = %+v", tuesday)
	}

	last := weeks[5]
	if last[1].Day != 31 || last[2].Day != 0 || last[6].Day != 0 {
		t.Errorf("last week = %+v", last)
	}
}

func TestOrganizeEmpty(t *testing.T) {
	if months := Organize(nil); len(months) != 0 {
		t.Errorf("expected no months, got %d", len(months))
	}
}
