package cli

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/xtraders/tradelog/internal/ledger"
	"github.com/xtraders/tradelog/internal/models"
	"github.com/xtraders/tradelog/internal/store"
)

var errDiskFull = stderrors.New("disk full")

// failingLedger loads an empty ledger and refuses every write.
type failingLedger struct{}

func (failingLedger) Load(ctx context.Context) (models.HistoricalData, error) {
	return models.HistoricalData{}, nil
}

func (failingLedger) Store(ctx context.Context, data models.HistoricalData) error {
	return errDiskFull
}

func TestImportReportLeavesArchiveUntouchedOnLedgerFailure(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryStore()
	app := &App{
		Ledger:  ledger.NewManager(failingLedger{}, zerolog.Nop()),
		Archive: store.NewReportArchive(kv, zerolog.Nop()),
	}
	report := &models.DailyReportData{Date: "07.03.2025", Robots: map[string]*models.DailyRobotData{}}

	if _, _, err := app.importReport(ctx, report); !stderrors.Is(err, errDiskFull) {
		t.Fatalf("err = %v, want disk full", err)
	}
	archived, err := app.Archive.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(archived) != 0 {
		t.Errorf("archive holds %d report(s) the ledger never recorded", len(archived))
	}
}

func TestImportReportRecordsLedgerAndArchive(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryStore()
	app := &App{
		Ledger:  ledger.NewManager(store.NewHistoricalStore(kv, zerolog.Nop()), zerolog.Nop()),
		Archive: store.NewReportArchive(kv, zerolog.Nop()),
	}
	report := &models.DailyReportData{
		Date: "07.03.2025",
		Robots: map[string]*models.DailyRobotData{
			"ZARION": {Name: "ZARION", Trades: []models.DailyTrade{{RobotName: "ZARION", Resultado: 30}}},
		},
		TotalAutomation: 30,
	}

	data, archived, err := app.importReport(ctx, report)
	if err != nil {
		t.Fatalf("importReport: %v", err)
	}
	if data["07.03.2025"].TotalDia != 30 {
		t.Errorf("ledger entry = %+v", data["07.03.2025"])
	}
	if len(archived) != 1 || archived[0].Date != "07.03.2025" {
		t.Errorf("archive = %+v", archived)
	}
}
