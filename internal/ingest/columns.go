package ingest

import "strings"

// Format identifies one of the supported batch export layouts.
type Format string

// Supported formats
const (
	FormatBalanceGraph Format = "balance_graph"
	FormatBrokerReport Format = "broker_report"
	FormatSpreadsheet  Format = "spreadsheet"
)

// formatRule matches a header line when it contains every marker in All
// and, if Any is set, at least one marker in Any.
type formatRule struct {
	Format Format
	All    []string
	Any    []string
}

// formatRules are evaluated in order; the first match wins. Anything that
// matches no rule is treated as a manual spreadsheet.
var formatRules = []formatRule{
	{Format: FormatBalanceGraph, All: []string{"<DATE>", "<BALANCE>"}},
	{Format: FormatBrokerReport, All: []string{"Ticket"}, Any: []string{"Data", "Time"}},
}

func (r formatRule) matches(header string) bool {
	for _, m := range r.All {
		if !strings.Contains(header, m) {
			return false
		}
	}
	if len(r.Any) == 0 {
		return true
	}
	for _, m := range r.Any {
		if strings.Contains(header, m) {
			return true
		}
	}
	return false
}

// DetectFormat classifies a header line.
func DetectFormat(header string) Format {
	for _, r := range formatRules {
		if r.matches(header) {
			return r.Format
		}
	}
	return FormatSpreadsheet
}

// columnRole names a column the parsers look up by header keyword.
type columnRole string

const (
	colDate       columnRole = "date"
	colBalance    columnRole = "balance"
	colTicket     columnRole = "ticket"
	colPosition   columnRole = "position"
	colTime       columnRole = "time"
	colSymbol     columnRole = "symbol"
	colType       columnRole = "type"
	colVolume     columnRole = "volume"
	colPrice      columnRole = "price"
	colProfit     columnRole = "profit"
	colSwap       columnRole = "swap"
	colCommission columnRole = "commission"
	colMagic      columnRole = "magic"
	colComment    columnRole = "comment"
)

// columnRule locates a column by substring match of any keyword against a
// header token. FoldCase lowercases the token first; keywords are then
// expected in lower case.
type columnRule struct {
	Role     columnRole
	Keywords []string
	FoldCase bool
}

func (r columnRule) matches(token string) bool {
	if r.FoldCase {
		token = strings.ToLower(token)
	}
	for _, k := range r.Keywords {
		if strings.Contains(token, k) {
			return true
		}
	}
	return false
}

var balanceGraphColumns = []columnRule{
	{Role: colDate, Keywords: []string{"<DATE>"}},
	{Role: colBalance, Keywords: []string{"<BALANCE>"}},
}

var brokerReportColumns = []columnRule{
	{Role: colTicket, Keywords: []string{"ticket"}, FoldCase: true},
	{Role: colPosition, Keywords: []string{"position", "posição"}, FoldCase: true},
	{Role: colTime, Keywords: []string{"Data", "Time"}},
	{Role: colSymbol, Keywords: []string{"symbol", "símbolo"}, FoldCase: true},
	{Role: colType, Keywords: []string{"type", "tipo"}, FoldCase: true},
	{Role: colVolume, Keywords: []string{"volume"}, FoldCase: true},
	{Role: colPrice, Keywords: []string{"price", "preço"}, FoldCase: true},
	{Role: colProfit, Keywords: []string{"Lucro", "Profit"}},
	{Role: colSwap, Keywords: []string{"Swap"}},
	{Role: colCommission, Keywords: []string{"Comiss", "Comm"}},
	{Role: colMagic, Keywords: []string{"Magic", "ID"}},
	{Role: colComment, Keywords: []string{"comment", "comentário"}, FoldCase: true},
}

// Keywords for manual spreadsheet total columns, matched upper-cased.
var spreadsheetTotalMarkers = []string{"RESULTADO", "TOTAL"}

// sellMarkers identify a sell trade in the broker's type column.
var sellMarkers = []string{"sell", "venda"}

// columnIndex maps each role to the first header index matching its rule,
// or -1 when absent.
type columnIndex map[columnRole]int

func locateColumns(headers []string, rules []columnRule) columnIndex {
	idx := make(columnIndex, len(rules))
	for _, r := range rules {
		idx[r.Role] = -1
		for i, h := range headers {
			if r.matches(h) {
				idx[r.Role] = i
				break
			}
		}
	}
	return idx
}

func (c columnIndex) has(roles ...columnRole) bool {
	for _, r := range roles {
		if i, ok := c[r]; !ok || i < 0 {
			return false
		}
	}
	return true
}
