package judge

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	scorePattern      = regexp.MustCompile(`Overall Score\s*[:\-]?\s*(\d+)`)
	outOfPattern      = regexp.MustCompile(`^/11\s*`)
	preferencePattern = regexp.MustCompile(`\b(\d+)\b`)
)

// ExtractScore finds "Overall Score: N" and returns N with the trimmed text
// after it. A leading "/11" is dropped from the justification. Scores above
// MaxScore are rejected.
func ExtractScore(reply string) (int, string, bool) {
	loc := scorePattern.FindStringSubmatchIndex(reply)
	if loc == nil {
		return 0, "", false
	}
	score, err := strconv.Atoi(reply[loc[2]:loc[3]])
	if err != nil || score > MaxScore {
		return 0, "", false
	}
	reason := strings.TrimSpace(reply[loc[1]:])
	reason = outOfPattern.ReplaceAllString(reason, "")
	return score, reason, true
}

// ExtractPreference returns the zero-based index named by the first
// standalone number in reply, when it is within 1..choices.
func ExtractPreference(reply string, choices int) (int, bool) {
	match := preferencePattern.FindStringSubmatch(reply)
	if match == nil {
		return 0, false
	}
	picked, err := strconv.Atoi(match[1])
	if err != nil || picked < 1 || picked > choices {
		return 0, false
	}
	return picked - 1, true
}
