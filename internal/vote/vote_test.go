package vote

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestTallySkipsBlankVotes verifies blank and whitespace votes are ignored.
func TestTallySkipsBlankVotes(t *testing.T) {
	got := Tally([]string{"a", " ", "b", "a", ""})
	want := map[string]int{"a": 2, "b": 1}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("tally mismatch (-want +got):\n%s", diff)
	}
}

func TestMajority(t *testing.T) {
	cases := []struct {
		name   string
		votes  []string
		judges int
		winner string
		ok     bool
	}{
		{name: "two of three", votes: []string{"a", "b", "a"}, judges: 3, winner: "a", ok: true},
		{name: "split three ways", votes: []string{"a", "b", "c"}, judges: 3},
		{name: "half is not enough", votes: []string{"a", "a", "b", "b"}, judges: 4},
		{name: "three of four", votes: []string{"a", "a", "b", "a"}, judges: 4, winner: "a", ok: true},
		{name: "missing votes count for nobody", votes: []string{"a", "", ""}, judges: 3},
		{name: "single judge", votes: []string{"b"}, judges: 1, winner: "b", ok: true},
		{name: "no judges", votes: nil, judges: 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			winner, ok := Majority(tc.votes, tc.judges)
			if ok != tc.ok || winner != tc.winner {
				t.Fatalf("expected (%q, %v), got (%q, %v)", tc.winner, tc.ok, winner, ok)
			}
		})
	}
}

// TestResolveMajoritySkipsTieBreak verifies the tie-break is not called when a majority exists.
func TestResolveMajoritySkipsTieBreak(t *testing.T) {
	calls := 0
	decision, err := Resolve(context.Background(), []string{"a", "a", "b"}, 3, func(context.Context) (string, error) {
		calls++
		return "b", nil
	})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if decision.Winner != "a" || decision.TieBroken || calls != 0 {
		t.Fatalf("unexpected decision %+v with %d tie-break calls", decision, calls)
	}
}

// TestResolveCallsTieBreakOnce verifies a split vote asks the tie-break exactly once.
func TestResolveCallsTieBreakOnce(t *testing.T) {
	calls := 0
	decision, err := Resolve(context.Background(), []string{"a", "b", "c"}, 3, func(context.Context) (string, error) {
		calls++
		return "c", nil
	})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected one tie-break call, got %d", calls)
	}
	if decision.Winner != "c" || !decision.TieBroken {
		t.Fatalf("unexpected decision: %+v", decision)
	}
}

// TestResolveTieBreakFailure verifies tie-break errors are wrapped.
func TestResolveTieBreakFailure(t *testing.T) {
	sentinel := errors.New("no verdict")
	decision, err := Resolve(context.Background(), []string{"a", "b"}, 2, func(context.Context) (string, error) {
		return "", sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected wrapped sentinel, got %v", err)
	}
	if decision.Winner != "" {
		t.Fatalf("expected no winner, got %q", decision.Winner)
	}
}
