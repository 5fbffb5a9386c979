// Package ledger maintains the per-day historical results of the
// automation robots.
package ledger

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/xtraders/tradelog/internal/errors"
	"github.com/xtraders/tradelog/internal/models"
)

// Storage persists the whole ledger at once.
type Storage interface {
	Load(ctx context.Context) (models.HistoricalData, error)
	Store(ctx context.Context, data models.HistoricalData) error
}

// Manager applies save and delete operations to a ledger held in Storage.
// Each operation is a full load, mutate and store cycle, serialized within
// the process. Concurrent writers in other processes are not coordinated.
type Manager struct {
	storage Storage
	logger  zerolog.Logger
	mu      sync.Mutex
}

// NewManager creates a Manager over storage.
func NewManager(storage Storage, logger zerolog.Logger) *Manager {
	return &Manager{storage: storage, logger: logger}
}

// Load returns the current ledger.
func (m *Manager) Load(ctx context.Context) (models.HistoricalData, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.load(ctx)
}

func (m *Manager) load(ctx context.Context) (models.HistoricalData, error) {
	data, err := m.storage.Load(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "loading ledger")
	}
	if data == nil {
		data = models.HistoricalData{}
	}
	return data, nil
}

// Save records the automation results of report under its day key,
// replacing any entry already stored for that day. A report without a date
// leaves the ledger untouched.
func (m *Manager) Save(ctx context.Context, report *models.DailyReportData) (models.HistoricalData, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := m.load(ctx)
	if err != nil {
		return nil, err
	}
	if report == nil || report.Date == "" {
		return data, nil
	}

	key := DayKey(report.Date)
	entry := Entry(report)
	data = data.Clone()
	data[key] = entry

	if err := m.storage.Store(ctx, data); err != nil {
		return nil, errors.Wrapf(err, "saving ledger day %s", key)
	}
	m.logger.Info().Str("day", key).Float64("total", entry.TotalDia).Msg("Ledger day saved")
	return data, nil
}

// Delete removes the entry for key. A missing key is not an error.
func (m *Manager) Delete(ctx context.Context, key string) (models.HistoricalData, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := m.load(ctx)
	if err != nil {
		return nil, err
	}
	data = data.Clone()
	delete(data, key)

	if err := m.storage.Store(ctx, data); err != nil {
		return nil, errors.Wrapf(err, "deleting ledger day %s", key)
	}
	m.logger.Info().Str("day", key).Msg("Ledger day deleted")
	return data, nil
}

// DayKey normalizes a report date to DD.MM.YYYY separators.
func DayKey(date string) string {
	return strings.ReplaceAll(date, "/", ".")
}

// Entry builds the ledger entry for report. TotalDia is the sum of the
// automation robots' results, so the manual bucket and ad-hoc robots never
// count toward it.
func Entry(report *models.DailyReportData) models.HistoricalDayData {
	entry := models.HistoricalDayData{Robots: make(map[string]float64, len(models.AutomationRobots))}
	for _, name := range models.AutomationRobots {
		result := report.Robots[name].Result()
		entry.Robots[name] = result
		entry.TotalDia += result
	}
	return entry
}

// sortKey turns DD.MM.YYYY into YYYY-MM-DD.
func sortKey(day string) string {
	parts := strings.Split(day, ".")
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, "-")
}

// SortedDates returns the ledger's day keys in calendar order.
func SortedDates(data models.HistoricalData) []string {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := sortKey(keys[i]), sortKey(keys[j])
		if a != b {
			return a < b
		}
		return keys[i] < keys[j]
	})
	return keys
}

// CumulativeTotal sums TotalDia in calendar order. When upTo is non-empty
// the walk stops after that day.
func CumulativeTotal(data models.HistoricalData, upTo string) float64 {
	var total float64
	for _, day := range SortedDates(data) {
		total += data[day].TotalDia
		if upTo != "" && day == upTo {
			break
		}
	}
	return total
}
