// Package ingest turns batch trading-log exports into canonical trades.
//
// Three layouts are recognized from the header line: balance-graph
// exports, per-trade broker reports and manually kept spreadsheets. The
// batch path is permissive: rows it cannot read are skipped and a file it
// cannot make sense of yields no trades.
package ingest

import (
	"strconv"
	"strings"
	"time"

	"github.com/xtraders/tradelog/internal/models"
)

// SpreadsheetYear is the year assigned to every manual spreadsheet row.
// The layout carries only day and month.
// TODO: take the year from the file name or a flag once the sheet owners
// agree on a convention; rows spanning a year boundary are misdated.
const SpreadsheetYear = "2025"

const (
	graphTicketPrefix = "GRAPH-"
	sheetTicketPrefix = "SHEET-"
	consolidatedSym   = "CONSOLIDATED"
	consolidatedNote  = "Consolidado do gráfico de saldo"
	unknownSymbol     = "UNKNOWN"
)

var spreadsheetMonths = map[string]string{
	"jan": "01", "fev": "02", "mar": "03", "abr": "04",
	"mai": "05", "jun": "06", "jul": "07", "ago": "08",
	"set": "09", "out": "10", "nov": "11", "dez": "12",
}

// ParseFile detects the layout of text and parses it. filename is kept as
// provenance and, for balance graphs, names the robot.
func ParseFile(text, filename string) []models.Trade {
	lines := splitLines(text)
	if len(lines) < 2 {
		return nil
	}

	switch DetectFormat(lines[0]) {
	case FormatBalanceGraph:
		return parseBalanceGraph(lines, filename)
	case FormatBrokerReport:
		return parseBrokerReport(lines, filename)
	default:
		return parseSpreadsheet(lines, filename)
	}
}

func splitLines(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// robotFromFilename takes the text before the first " l" token with the
// .csv extension stripped, e.g. "ATRION WIN l conta 2.csv" -> "ATRION WIN".
func robotFromFilename(filename string) string {
	name := filename
	if len(name) >= 4 && strings.EqualFold(name[len(name)-4:], ".csv") {
		name = name[:len(name)-4]
	}
	if i := strings.Index(name, " l"); i >= 0 {
		name = name[:i]
	}
	return strings.TrimSpace(name)
}

func parseBalanceGraph(lines []string, filename string) []models.Trade {
	robot := robotFromFilename(filename)
	delimiter := ";"
	if strings.Contains(lines[0], "\t") {
		delimiter = "\t"
	}
	cols := locateColumns(strings.Split(lines[0], delimiter), balanceGraphColumns)
	if !cols.has(colDate, colBalance) {
		return nil
	}
	dateIdx, balIdx := cols[colDate], cols[colBalance]

	var (
		trades  []models.Trade
		prev    float64
		seeded  bool
		counter = 1
	)
	for _, line := range lines[1:] {
		fields := strings.Split(line, delimiter)
		if len(fields) < 2 || balIdx >= len(fields) || dateIdx >= len(fields) {
			continue
		}
		balance, ok := ParseNumber(fields[balIdx])
		if !ok {
			continue
		}
		if !seeded {
			prev, seeded = balance, true
			continue
		}

		profit := balance - prev
		prev = balance

		date := dayFromTimestamp(fields[dateIdx])
		ticket := graphTicketPrefix + strconv.Itoa(counter)
		counter++
		if t, ok := consolidatedTrade(date, profit, robot, filename, ticket); ok {
			trades = append(trades, t)
		}
	}
	return trades
}

func parseBrokerReport(lines []string, filename string) []models.Trade {
	delimiter := ","
	if strings.Contains(lines[0], ";") {
		delimiter = ";"
	}
	cols := locateColumns(strings.Split(lines[0], delimiter), brokerReportColumns)
	if !cols.has(colTime, colProfit) {
		return nil
	}

	var trades []models.Trade
	for i := 1; i < len(lines); i++ {
		fields := strings.Split(lines[i], delimiter)
		if len(fields) < 2 {
			continue
		}
		row := brokerRow{fields: fields, cols: cols}

		profit := row.number(colProfit)
		swap := row.number(colSwap)
		commission := row.number(colCommission)
		net := profit + swap + commission

		dateRaw := row.text(colTime, "")
		if dateRaw == "" {
			continue
		}

		magic := row.text(colMagic, "0")
		if models.IsIgnoredMagic(magic) {
			continue
		}

		tradeType := models.TradeTypeBuy
		typeText := strings.ToLower(row.text(colType, "buy"))
		for _, m := range sellMarkers {
			if strings.Contains(typeText, m) {
				tradeType = models.TradeTypeSell
				break
			}
		}

		if net == 0 {
			continue
		}
		price := row.number(colPrice)
		date := dayFromTimestamp(dateRaw)
		t := newTrade(date, net, models.RobotForMagic(magic), filename)
		t.Ticket = row.text(colTicket, "T"+strconv.Itoa(i))
		t.PositionID = row.text(colPosition, "")
		t.OpenTime = strings.Replace(strings.ReplaceAll(dateRaw, ".", "-"), " ", "T", 1)
		t.Symbol = row.text(colSymbol, unknownSymbol)
		t.Type = tradeType
		t.Volume = row.number(colVolume)
		t.OpenPrice = price
		t.ClosePrice = price
		t.Swap = swap
		t.Commission = commission
		t.Magic = magic
		t.Comment = row.text(colComment, "")
		trades = append(trades, t)
	}
	return trades
}

// brokerRow reads cells of one broker report row by column role.
type brokerRow struct {
	fields []string
	cols   columnIndex
}

func (r brokerRow) cell(role columnRole) (string, bool) {
	i, ok := r.cols[role]
	if !ok || i < 0 || i >= len(r.fields) {
		return "", false
	}
	return r.fields[i], true
}

func (r brokerRow) number(role columnRole) float64 {
	s, ok := r.cell(role)
	if !ok || s == "" {
		return 0
	}
	return NumberOrZero(s)
}

func (r brokerRow) text(role columnRole, def string) string {
	s, _ := r.cell(role)
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return def
}

func parseSpreadsheet(lines []string, filename string) []models.Trade {
	headers := strings.Split(lines[0], ";")
	type robotColumn struct {
		index int
		name  string
	}
	var robots []robotColumn
	for i := 1; i < len(headers); i++ {
		name := strings.TrimSpace(headers[i])
		if name == "" || isTotalColumn(name) {
			continue
		}
		robots = append(robots, robotColumn{index: i, name: name})
	}

	var trades []models.Trade
	counter := 1
	for _, line := range lines[1:] {
		fields := strings.Split(line, ";")
		if len(fields) < 2 {
			continue
		}
		date, ok := spreadsheetDate(fields[0])
		if !ok {
			continue
		}
		for _, rc := range robots {
			if rc.index >= len(fields) || fields[rc.index] == "" {
				continue
			}
			value, ok := parseSpreadsheetValue(fields[rc.index])
			if !ok {
				continue
			}
			ticket := sheetTicketPrefix + strconv.Itoa(counter)
			counter++
			if t, ok := consolidatedTrade(date, value, rc.name, filename, ticket); ok {
				trades = append(trades, t)
			}
		}
	}
	return trades
}

func isTotalColumn(name string) bool {
	upper := strings.ToUpper(name)
	for _, m := range spreadsheetTotalMarkers {
		if strings.Contains(upper, m) {
			return true
		}
	}
	return false
}

// spreadsheetDate converts "<day>/<mmm>" (Portuguese month abbreviation)
// into a YYYY-MM-DD key in SpreadsheetYear.
func spreadsheetDate(cell string) (string, bool) {
	raw := strings.ToLower(strings.TrimSpace(cell))
	parts := strings.Split(raw, "/")
	if len(parts) < 2 {
		return "", false
	}
	month, ok := spreadsheetMonths[parts[1]]
	if !ok {
		return "", false
	}
	day := parts[0]
	if day == "" || len(day) > 2 || !isDigit(day[0]) || (len(day) == 2 && !isDigit(day[1])) {
		return "", false
	}
	if len(day) == 1 {
		day = "0" + day
	}
	return SpreadsheetYear + "-" + month + "-" + day, true
}

// dayFromTimestamp takes the token before the first space of a timestamp
// such as "2025.01.03 10:15:00" and returns it with dots as dashes.
func dayFromTimestamp(raw string) string {
	raw = strings.TrimSpace(raw)
	if i := strings.Index(raw, " "); i >= 0 {
		raw = raw[:i]
	}
	return strings.ReplaceAll(raw, ".", "-")
}

// consolidatedTrade builds a day-level trade for layouts that carry only a
// date and a result. Zero results are dropped.
func consolidatedTrade(date string, value float64, robot, sourceFile, ticket string) (models.Trade, bool) {
	if value == 0 {
		return models.Trade{}, false
	}
	t := newTrade(date, value, robot, sourceFile)
	t.Ticket = ticket
	t.OpenTime = date + "T09:00:00"
	t.Symbol = consolidatedSym
	t.Type = models.TradeTypeBuy
	if value < 0 {
		t.Type = models.TradeTypeSell
	}
	t.Volume = 1
	t.Comment = consolidatedNote
	return t, true
}

func newTrade(date string, value float64, robot, sourceFile string) models.Trade {
	return models.Trade{
		Date:       date,
		Year:       prefix(date, 4),
		Month:      prefix(date, 7),
		Value:      value,
		Profit:     value,
		Robot:      robot,
		Weekday:    weekday(date),
		SourceFile: sourceFile,
	}
}

func prefix(s string, n int) string {
	if len(s) < n {
		return s
	}
	return s[:n]
}

// weekday returns 0 (Sunday) through 6 for a YYYY-MM-DD key, or -1.
func weekday(date string) int {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return -1
	}
	return int(d.Weekday())
}
