// Package vote aggregates judge preferences into a single winner.
package vote

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// TieBreak is asked once for a deciding vote when no candidate holds a
// strict majority.
type TieBreak func(ctx context.Context) (string, error)

// Decision is the outcome of one majority vote.
type Decision struct {
	Winner    string
	TieBroken bool
	Counts    map[string]int
}

// Tally counts non-blank votes per candidate.
func Tally(votes []string) map[string]int {
	counts := make(map[string]int, len(votes))
	for _, vote := range votes {
		vote = strings.TrimSpace(vote)
		if vote == "" {
			continue
		}
		counts[vote]++
	}
	return counts
}

// Majority returns the candidate chosen by more than half of judges. Missing
// votes count for nobody, so a blank vote still counts towards the total.
func Majority(votes []string, judges int) (string, bool) {
	if judges <= 0 {
		return "", false
	}
	need := judges/2 + 1
	counts := Tally(votes)
	for _, candidate := range sortedCandidates(counts) {
		if counts[candidate] >= need {
			return candidate, true
		}
	}
	return "", false
}

// Resolve returns the strict-majority winner, or the tie-break's choice.
// tieBreak is called at most once.
func Resolve(ctx context.Context, votes []string, judges int, tieBreak TieBreak) (Decision, error) {
	decision := Decision{Counts: Tally(votes)}
	if winner, ok := Majority(votes, judges); ok {
		decision.Winner = winner
		return decision, nil
	}
	if tieBreak == nil {
		return decision, errors.New("no majority and no tie-break")
	}
	winner, err := tieBreak(ctx)
	if err != nil {
		return decision, fmt.Errorf("tie-break: %w", err)
	}
	decision.Winner = winner
	decision.TieBroken = true
	return decision, nil
}

func sortedCandidates(counts map[string]int) []string {
	out := make([]string, 0, len(counts))
	for candidate := range counts {
		out = append(out, candidate)
	}
	sort.Strings(out)
	return out
}
