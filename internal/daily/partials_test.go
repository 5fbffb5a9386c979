package daily

import (
	"testing"

	"github.com/xtraders/tradelog/internal/models"
)

func TestGroupPartialsOrdering(t *testing.T) {
	raw := []models.DailyTrade{
		{RobotName: "ORION WIN", HoraEntrada: "09:00", HoraSaida: "09:30", PrecoSaida: "10", Contratos: 2, Resultado: 20},
		{RobotName: "ZARION", HoraEntrada: "09:01", Resultado: 5},
		{RobotName: "ORION WIN", HoraEntrada: "09:00", HoraSaida: "09:20", PrecoSaida: "9", Contratos: 1.5, Resultado: 10},
		{RobotName: "ORION WIN", HoraEntrada: "10:00", HoraSaida: "10:10", PrecoSaida: "11", Contratos: 1, Resultado: -4},
		{RobotName: "CRONOS WDO", HoraEntrada: "09:00", Resultado: 1},
	}

	out := GroupPartials(raw)
	if len(out) != 4 {
		t.Fatalf("expected 4 trades, got %d", len(out))
	}
	if out[0].RobotName != "ZARION" || out[1].RobotName != "CRONOS WDO" {
		t.Errorf("non-partial robots should come first in order: %+v", out[:2])
	}

	merged := out[2]
	if merged.HoraEntrada != "09:00" || merged.HoraSaida != "09:30" {
		t.Errorf("merged times = %s-%s", merged.HoraEntrada, merged.HoraSaida)
	}
	if merged.Parcial != "9(1.5)" || merged.PrecoSaida != "10(2)" {
		t.Errorf("merged exits = %q / %q", merged.Parcial, merged.PrecoSaida)
	}
	if merged.Contratos != 3.5 || merged.Resultado != 30 {
		t.Errorf("merged sums = %v / %v", merged.Contratos, merged.Resultado)
	}

	single := out[3]
	if single.Parcial != "" || single.PrecoSaida != "11" {
		t.Errorf("single-row group must pass unchanged: %+v", single)
	}
}

func TestGroupPartialsEmpty(t *testing.T) {
	if out := GroupPartials(nil); len(out) != 0 {
		t.Errorf("expected no trades, got %d", len(out))
	}
}
