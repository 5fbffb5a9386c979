package ingest

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/xtraders/tradelog/internal/errors"
	"github.com/xtraders/tradelog/internal/logging"
	"github.com/xtraders/tradelog/internal/models"
)

// Source is one decoded input file.
type Source struct {
	Name string
	Text string
}

// Reader loads export files concurrently and parses them into one sorted
// trade list.
type Reader struct {
	logger        zerolog.Logger
	maxConcurrent int
}

// NewReader creates a Reader. maxConcurrent <= 0 means no limit.
func NewReader(logger zerolog.Logger, maxConcurrent int) *Reader {
	return &Reader{
		logger:        logger,
		maxConcurrent: maxConcurrent,
	}
}

// ReadFiles reads and decodes every path concurrently. Results keep the
// order of paths. Any read failure rejects the whole batch.
func (r *Reader) ReadFiles(ctx context.Context, paths []string) ([]Source, error) {
	sources := make([]Source, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	if r.maxConcurrent > 0 {
		g.SetLimit(r.maxConcurrent)
	}
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			raw, err := os.ReadFile(path)
			if err != nil {
				return errors.Wrapf(errors.ErrReadFailed, "%s: %v", path, err)
			}
			text, err := Decode(raw)
			if err != nil {
				return errors.Wrapf(errors.ErrReadFailed, "decoding %s: %v", path, err)
			}
			sources[i] = Source{Name: filepath.Base(path), Text: text}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sources, nil
}

// ProcessFiles reads paths and returns their trades sorted by open time.
func (r *Reader) ProcessFiles(ctx context.Context, paths []string) ([]models.Trade, error) {
	sources, err := r.ReadFiles(ctx, paths)
	if err != nil {
		return nil, err
	}
	return r.Process(sources), nil
}

// Process parses already decoded sources and sorts the combined trades by
// open time.
func (r *Reader) Process(sources []Source) []models.Trade {
	var all []models.Trade
	for _, src := range sources {
		trades := ParseFile(src.Text, src.Name)
		logger := logging.WithFile(r.logger, src.Name)
		logger.Debug().
			Str("format", string(detectText(src.Text))).
			Int("trades", len(trades)).
			Msg("Parsed export file")
		all = append(all, trades...)
	}
	SortByOpenTime(all)
	return all
}

// SortByOpenTime orders trades by their ISO-like open time, keeping input
// order for equal times.
func SortByOpenTime(trades []models.Trade) {
	sort.SliceStable(trades, func(i, j int) bool {
		return trades[i].OpenTime < trades[j].OpenTime
	})
}

func detectText(text string) Format {
	lines := splitLines(text)
	if len(lines) == 0 {
		return FormatSpreadsheet
	}
	return DetectFormat(lines[0])
}
