package ingest

import (
	"golang.org/x/text/encoding/charmap"
)

// Decode converts raw export bytes to text. Exports are written by
// Windows tooling in the legacy Western code page, never UTF-8.
func Decode(raw []byte) (string, error) {
	out, err := charmap.Windows1252.NewDecoder().Bytes(raw)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
