package store

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/xtraders/tradelog/internal/errors"
	"github.com/xtraders/tradelog/internal/models"
)

// HistoricalStore keeps the ledger as one JSON document under
// KeyHistorical. It satisfies ledger.Storage.
type HistoricalStore struct {
	kv     KVStore
	logger zerolog.Logger
}

// NewHistoricalStore creates a HistoricalStore over kv.
func NewHistoricalStore(kv KVStore, logger zerolog.Logger) *HistoricalStore {
	return &HistoricalStore{kv: kv, logger: logger}
}

// Load decodes the stored ledger. A missing or malformed document reads as
// an empty ledger.
func (h *HistoricalStore) Load(ctx context.Context) (models.HistoricalData, error) {
	raw, ok, err := h.kv.Get(ctx, KeyHistorical)
	if err != nil {
		return nil, err
	}
	data := models.HistoricalData{}
	if !ok || raw == "" {
		return data, nil
	}
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		h.logger.Warn().Err(err).Str("key", KeyHistorical).Msg("Malformed stored ledger, treating as empty")
		return models.HistoricalData{}, nil
	}
	return data, nil
}

// Store encodes and writes the whole ledger.
func (h *HistoricalStore) Store(ctx context.Context, data models.HistoricalData) error {
	if data == nil {
		data = models.HistoricalData{}
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return errors.NewStorageError("encode", KeyHistorical, err)
	}
	return h.kv.Set(ctx, KeyHistorical, string(raw))
}
