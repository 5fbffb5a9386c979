package store

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/xtraders/tradelog/internal/errors"
	"github.com/xtraders/tradelog/internal/ledger"
	"github.com/xtraders/tradelog/internal/models"
)

// ReportArchive keeps every imported daily report, newest first, under
// KeyDailyReports.
type ReportArchive struct {
	kv     KVStore
	logger zerolog.Logger
}

// NewReportArchive creates a ReportArchive over kv.
func NewReportArchive(kv KVStore, logger zerolog.Logger) *ReportArchive {
	return &ReportArchive{kv: kv, logger: logger}
}

// Load returns the archived reports. A missing or malformed document reads
// as an empty archive.
func (a *ReportArchive) Load(ctx context.Context) ([]models.DailyReportData, error) {
	raw, ok, err := a.kv.Get(ctx, KeyDailyReports)
	if err != nil {
		return nil, err
	}
	if !ok || raw == "" {
		return []models.DailyReportData{}, nil
	}
	var reports []models.DailyReportData
	if err := json.Unmarshal([]byte(raw), &reports); err != nil {
		a.logger.Warn().Err(err).Str("key", KeyDailyReports).Msg("Malformed stored reports, treating as empty")
		return []models.DailyReportData{}, nil
	}
	return reports, nil
}

// Prepend stores report ahead of the archived ones and returns the new list.
func (a *ReportArchive) Prepend(ctx context.Context, report *models.DailyReportData) ([]models.DailyReportData, error) {
	reports, err := a.Load(ctx)
	if err != nil {
		return nil, err
	}
	reports = append([]models.DailyReportData{*report}, reports...)
	if err := a.save(ctx, reports); err != nil {
		return nil, err
	}
	return reports, nil
}

// Find returns the most recently archived report for day. Dates are
// compared by their DD.MM.YYYY day key.
func (a *ReportArchive) Find(ctx context.Context, day string) (*models.DailyReportData, error) {
	reports, err := a.Load(ctx)
	if err != nil {
		return nil, err
	}
	key := ledger.DayKey(day)
	for i := range reports {
		if ledger.DayKey(reports[i].Date) == key {
			return &reports[i], nil
		}
	}
	return nil, errors.Wrapf(errors.ErrDataNotFound, "no archived report for %s", day)
}

func (a *ReportArchive) save(ctx context.Context, reports []models.DailyReportData) error {
	raw, err := json.Marshal(reports)
	if err != nil {
		return errors.NewStorageError("encode", KeyDailyReports, err)
	}
	return a.kv.Set(ctx, KeyDailyReports, string(raw))
}
