package table

import (
	"strconv"
	"strings"
)

// ParseScore reads a score cell. It accepts integers and the "7.0" form
// spreadsheet tools write back; blanks and fractions are not scores.
func ParseScore(value string) (int, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}
	if score, err := strconv.Atoi(value); err == nil {
		return score, true
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || f != float64(int(f)) {
		return 0, false
	}
	return int(f), true
}
