package ingest

import "github.com/xtraders/tradelog/internal/models"

// Session holds the trades loaded so far. Loading the same file name again
// appends its trades; it does not replace them.
type Session struct {
	trades []models.Trade
	files  []models.LoadedFile
}

// NewSession creates an empty session.
func NewSession() *Session {
	return &Session{}
}

// Add appends trades and updates the per-file counts.
func (s *Session) Add(trades []models.Trade) {
	counts := make(map[string]int)
	var order []string
	for _, t := range trades {
		if _, ok := counts[t.SourceFile]; !ok {
			order = append(order, t.SourceFile)
		}
		counts[t.SourceFile]++
	}

	for _, name := range order {
		found := false
		for i := range s.files {
			if s.files[i].Name == name {
				s.files[i].Trades += counts[name]
				found = true
				break
			}
		}
		if !found {
			s.files = append(s.files, models.LoadedFile{Name: name, Trades: counts[name]})
		}
	}
	s.trades = append(s.trades, trades...)
}

// RemoveFile drops every trade that came from name.
func (s *Session) RemoveFile(name string) {
	kept := s.trades[:0]
	for _, t := range s.trades {
		if t.SourceFile != name {
			kept = append(kept, t)
		}
	}
	s.trades = kept

	files := s.files[:0]
	for _, f := range s.files {
		if f.Name != name {
			files = append(files, f)
		}
	}
	s.files = files
}

// Trades returns a copy of the loaded trades.
func (s *Session) Trades() []models.Trade {
	out := make([]models.Trade, len(s.trades))
	copy(out, s.trades)
	return out
}

// Files returns a copy of the per-file trade counts.
func (s *Session) Files() []models.LoadedFile {
	out := make([]models.LoadedFile, len(s.files))
	copy(out, s.files)
	return out
}
