package models

// TradeType is the direction of a trade.
type TradeType string

// Trade types
const (
	TradeTypeBuy  TradeType = "buy"
	TradeTypeSell TradeType = "sell"
)

// Trade is the canonical trade record every parser emits and every
// analytics routine consumes. Value and Profit always hold the same signed
// net result; zero-result trades are never built.
type Trade struct {
	Date       string    `json:"date"`  // YYYY-MM-DD
	Year       string    `json:"year"`  // YYYY
	Month      string    `json:"month"` // YYYY-MM
	Value      float64   `json:"value"`
	Robot      string    `json:"robot"`
	Weekday    int       `json:"weekday"` // 0=Sunday, -1 when Date is not a calendar day
	SourceFile string    `json:"sourceFile"`
	Ticket     string    `json:"ticket"`
	PositionID string    `json:"positionId,omitempty"`
	OpenTime   string    `json:"openTime"`
	CloseTime  string    `json:"closeTime,omitempty"`
	Symbol     string    `json:"symbol"`
	Type       TradeType `json:"type"`
	Volume     float64   `json:"volume"`
	OpenPrice  float64   `json:"openPrice"`
	ClosePrice float64   `json:"closePrice"`
	Profit     float64   `json:"profit"`
	Swap       float64   `json:"swap"`
	Commission float64   `json:"commission"`
	Magic      string    `json:"magic,omitempty"`
	Comment    string    `json:"comment,omitempty"`
}

// IsWin reports whether the trade closed with a positive result.
func (t Trade) IsWin() bool {
	return t.Value > 0
}

// LoadedFile summarizes how many trades one source file contributed.
type LoadedFile struct {
	Name   string `json:"name"`
	Trades int    `json:"trades"`
}
