package daily

import (
	"regexp"
	"strings"
)

var (
	yearFirstDate = regexp.MustCompile(`^(\d{4})[./-](\d{1,2})[./-](\d{1,2})$`)
	dayFirstDate  = regexp.MustCompile(`^(\d{1,2})[./-](\d{1,2})[./-](\d{4})$`)
)

// NormalizeDate converts YYYY.MM.DD, YYYY-MM-DD, YYYY/MM/DD and the
// day-first variants into DD.MM.YYYY. ok is false for any other input,
// which is returned trimmed but otherwise unchanged.
func NormalizeDate(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if m := yearFirstDate.FindStringSubmatch(s); m != nil {
		return pad2(m[3]) + "." + pad2(m[2]) + "." + m[1], true
	}
	if m := dayFirstDate.FindStringSubmatch(s); m != nil {
		return pad2(m[1]) + "." + pad2(m[2]) + "." + m[3], true
	}
	return s, false
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
