package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/text/encoding/charmap"

	"github.com/xtraders/tradelog/internal/daily"
	"github.com/xtraders/tradelog/internal/errors"
	"github.com/xtraders/tradelog/internal/models"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{2, "2"},
		{1.5, "1,5"},
		{-7.25, "-7,25"},
		{0, "0"},
		{1234.56, "1234,56"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func sampleReport() models.DailyReportData {
	return models.DailyReportData{
		Date: "01.03.2025",
		Robots: map[string]*models.DailyRobotData{
			"NOVO BOT": {Name: "NOVO BOT", Trades: []models.DailyTrade{
				{Operacao: "C", HoraEntrada: "11:00", HoraSaida: "11:15", PrecoEntrada: "50", PrecoSaida: "55", Contratos: 1, Resultado: 10.5},
			}},
			"ATRION WIN": {Name: "ATRION WIN", Trades: []models.DailyTrade{
				{Operacao: "C", HoraEntrada: "09:00", HoraSaida: "09:10", PrecoEntrada: "100", Parcial: "105(1)", PrecoSaida: "110(1)", Contratos: 2, Resultado: 75},
			}},
			models.ManualOperations: {Name: models.ManualOperations, Trades: []models.DailyTrade{
				{Operacao: "V", HoraEntrada: "10:00", HoraSaida: "10:30", PrecoEntrada: "200", PrecoSaida: "190", Contratos: 2, Resultado: -30},
			}},
			"ZARION": {Name: "ZARION", Trades: []models.DailyTrade{}},
		},
	}
}

func TestRowsOrderAndShape(t *testing.T) {
	rows := Rows([]models.DailyReportData{sampleReport()})
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	want := "01.03.2025;ATRION WIN;C;09:00;09:10;100;105(1);110(1);2;75"
	if got := strings.Join(rows[0], ";"); got != want {
		t.Errorf("row 0 = %q, want %q", got, want)
	}
	if rows[1][1] != models.ManualOperations || rows[2][1] != "NOVO BOT" {
		t.Errorf("robot order = %s, %s", rows[1][1], rows[2][1])
	}
	if rows[2][9] != "10,5" {
		t.Errorf("resultado = %q", rows[2][9])
	}
}

func TestWriteEncodesLegacyCharset(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, []models.DailyReportData{sampleReport()}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	text, err := charmap.Windows1252.NewDecoder().String(buf.String())
	if err != nil {
		t.Fatalf("decoding: %v", err)
	}
	lines := strings.Split(text, "\n")
	if lines[0] != strings.Join(Header, ";") {
		t.Errorf("header = %q", lines[0])
	}
	if !bytes.Contains(buf.Bytes(), []byte{'R', 'O', 'B', 0xD4}) {
		t.Errorf("ROBÔ should be written as a single Windows-1252 byte")
	}
	if strings.HasPrefix(text, "\ufeff") {
		t.Errorf("export must not carry a byte order mark")
	}
}

func TestWriteRoundTripsThroughDailyParser(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.csv")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := Write(f, []models.DailyReportData{sampleReport()}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	f.Close()

	report, err := daily.NewParser(zerolog.Nop()).ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if report.Date != "01.03.2025" {
		t.Errorf("date = %q", report.Date)
	}
	if report.TotalAutomation != 85.5 {
		t.Errorf("total automation = %v, want 85.5", report.TotalAutomation)
	}
	if report.Robots[models.ManualOperations].Result() != -30 {
		t.Errorf("manual result = %v", report.Robots[models.ManualOperations].Result())
	}
}

func TestWriteRejectsEmpty(t *testing.T) {
	if err := Write(&bytes.Buffer{}, nil); !errors.Is(err, errors.ErrDataNotFound) {
		t.Errorf("Write(nil) error = %v", err)
	}
}

func TestFilenames(t *testing.T) {
	now := time.Date(2025, 3, 7, 15, 0, 0, 0, time.UTC)
	if got := HistoryFilename(now); got != "XTRADERS_Historico_20250307.csv" {
		t.Errorf("HistoryFilename = %q", got)
	}
	report := sampleReport()
	if got := ReportFilename(&report); got != "XTRADERS_Relatorio_01032025.csv" {
		t.Errorf("ReportFilename = %q", got)
	}
}
