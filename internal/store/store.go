// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"
	"time"
)

// Well-known keys.
const (
	// KeyDailyReports holds the JSON list of every imported daily report.
	KeyDailyReports = "xtraders_daily_reports"
	// KeyHistorical holds the JSON ledger keyed by DD.MM.YYYY.
	KeyHistorical = "xtraders_historical_results"
)

// KVStore is a string key-value store. Values are opaque to the store.
type KVStore interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	// UpdatedAt returns when key was last written, or the zero time.
	UpdatedAt(ctx context.Context, key string) (time.Time, error)
	Close() error
}
