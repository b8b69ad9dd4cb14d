package report

import (
	"fmt"
	"regexp"
)

// formatMean renders a mean score with two decimals.
func formatMean(mean float64) string {
	return fmt.Sprintf("%.2f", mean)
}

// formatShare returns "count (pct%)" for a slice of a distribution.
func formatShare(count, total int) string {
	if total == 0 {
		return fmt.Sprintf("%d", count)
	}
	return fmt.Sprintf("%d (%.1f%%)", count, float64(count)*100/float64(total))
}

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// fileComponent makes a task or model name safe for a file name.
func fileComponent(name string) string {
	return unsafeFileChars.ReplaceAllString(name, "_")
}
