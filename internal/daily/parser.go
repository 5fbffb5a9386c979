// Package daily parses single-day operation reports.
//
// Unlike the batch importers, a daily report is parsed strictly: a file
// without data rows or without a robot column is rejected with an error.
package daily

import (
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/rs/zerolog"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/xtraders/tradelog/internal/errors"
	"github.com/xtraders/tradelog/internal/ingest"
	"github.com/xtraders/tradelog/internal/logging"
	"github.com/xtraders/tradelog/internal/models"
)

// Report column headers.
const (
	ColData         = "DATA"
	ColRobo         = "ROBÔ"
	ColOperacao     = "OPERAÇÃO"
	ColHoraEntrada  = "HORA ENTRADA"
	ColHoraSaida    = "HORA SAÍDA"
	ColPrecoEntrada = "PREÇO ENTRADA"
	ColParcial      = "PARCIAL"
	ColPrecoSaida   = "PREÇO SAÍDA"
	ColContratos    = "CONTRATOS"
	ColResultado    = "RESULTADO"
)

// robotColumnMarker is matched against upper-cased, accent-free headers.
const robotColumnMarker = "ROBO"

// Parser parses daily report files.
type Parser struct {
	logger zerolog.Logger
}

// NewParser creates a Parser.
func NewParser(logger zerolog.Logger) *Parser {
	return &Parser{logger: logger}
}

// ParseFile reads, decodes and parses the report at path.
func (p *Parser) ParseFile(path string) (*models.DailyReportData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrReadFailed, "%s: %v", path, err)
	}
	text, err := ingest.Decode(raw)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrReadFailed, "decoding %s: %v", path, err)
	}
	name := filepath.Base(path)
	fileParser := &Parser{logger: logging.WithFile(p.logger, name)}
	report, err := fileParser.Parse(text)
	if err != nil {
		return nil, errors.NewParseError(name, "daily report rejected", err)
	}
	return report, nil
}

// Parse parses the text of one daily report.
func (p *Parser) Parse(text string) (*models.DailyReportData, error) {
	text = strings.TrimSpace(text)
	lines := strings.Split(text, "\n")
	if text == "" || len(lines) < 2 {
		return nil, errors.ErrInvalidReport
	}

	cols := headerIndex(lines[0])
	robotCol, ok := cols.robotColumn()
	if !ok {
		return nil, errors.ErrRobotColumnMissing
	}

	var (
		raw        []models.DailyTrade
		reportDate string
	)
	for _, line := range lines[1:] {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		values := strings.Split(line, ";")

		if reportDate == "" {
			if cell := strings.TrimSpace(cols.value(values, ColData)); cell != "" {
				date, recognized := NormalizeDate(cell)
				if !recognized {
					p.logger.Warn().Str("date", cell).Msg("Unrecognized report date format")
				}
				reportDate = date
			}
		}

		name := strings.TrimSpace(cellAt(values, robotCol))
		if name == "" {
			continue
		}
		raw = append(raw, models.DailyTrade{
			RobotName:    name,
			Operacao:     cols.value(values, ColOperacao),
			HoraEntrada:  cols.value(values, ColHoraEntrada),
			HoraSaida:    cols.value(values, ColHoraSaida),
			PrecoEntrada: cols.value(values, ColPrecoEntrada),
			PrecoSaida:   cols.value(values, ColPrecoSaida),
			Contratos:    ingest.NumberOrZero(cols.value(values, ColContratos)),
			Resultado:    ingest.NumberOrZero(cols.value(values, ColResultado)),
		})
	}

	report := buildReport(reportDate, GroupPartials(raw))
	p.logger.Debug().
		Str("date", report.Date).
		Int("rows", len(raw)).
		Float64("total_automation", report.TotalAutomation).
		Msg("Parsed daily report")
	return report, nil
}

// buildReport buckets trades per robot, seeding every roster robot, and
// totals everything outside the manual bucket in RobotNames order.
func buildReport(date string, trades []models.DailyTrade) *models.DailyReportData {
	robots := make(map[string]*models.DailyRobotData, len(models.Roster))
	for _, r := range models.Roster {
		robots[r.Name] = newBucket(r.Name)
	}
	for _, t := range trades {
		bucket, ok := robots[t.RobotName]
		if !ok {
			bucket = newBucket(t.RobotName)
			robots[t.RobotName] = bucket
		}
		bucket.Trades = append(bucket.Trades, t)
	}

	report := &models.DailyReportData{Date: date, Robots: robots}
	for _, name := range report.RobotNames() {
		if name == models.ManualOperations {
			continue
		}
		report.TotalAutomation += robots[name].Result()
	}
	return report
}

// newBucket creates an empty bucket carrying the roster metadata of name.
// Robots outside the roster get margin "N/A" and no logo.
func newBucket(name string) *models.DailyRobotData {
	info, ok := models.LookupRoster(name)
	if !ok {
		info = models.RobotInfo{Name: name, Margem: "N/A"}
	}
	return &models.DailyRobotData{
		Name:    info.Name,
		Margem:  info.Margem,
		LogoURL: info.LogoURL,
		Trades:  []models.DailyTrade{},
	}
}

// columns maps a trimmed header name to its index. A repeated header
// resolves to its last occurrence.
type columns struct {
	names []string
	index map[string]int
}

func headerIndex(line string) columns {
	headers := strings.Split(strings.TrimRight(line, "\r"), ";")
	c := columns{index: make(map[string]int, len(headers))}
	for i, h := range headers {
		h = strings.TrimSpace(h)
		if _, seen := c.index[h]; !seen {
			c.names = append(c.names, h)
		}
		c.index[h] = i
	}
	return c
}

func (c columns) robotColumn() (int, bool) {
	for _, name := range c.names {
		if strings.Contains(strings.ToUpper(foldAccents(name)), robotColumnMarker) {
			return c.index[name], true
		}
	}
	return 0, false
}

func (c columns) value(values []string, name string) string {
	i, ok := c.index[name]
	if !ok {
		return ""
	}
	return cellAt(values, i)
}

func cellAt(values []string, i int) string {
	if i < 0 || i >= len(values) {
		return ""
	}
	return values[i]
}

var accentFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// foldAccents strips diacritics, e.g. "ROBÔ" -> "ROBO".
func foldAccents(s string) string {
	out, _, err := transform.String(accentFolder, s)
	if err != nil {
		return s
	}
	return out
}
