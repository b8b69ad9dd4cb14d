package judge

import "testing"

func TestExtractScore(t *testing.T) {
	cases := []struct {
		name   string
		reply  string
		score  int
		reason string
		ok     bool
	}{
		{name: "colon", reply: "Overall Score: 7\nMissed concision.", score: 7, reason: "Missed concision.", ok: true},
		{name: "out of eleven", reply: "Overall Score: 9/11 Clear and accurate.", score: 9, reason: "Clear and accurate.", ok: true},
		{name: "dash", reply: "Overall Score - 11", score: 11, reason: "", ok: true},
		{name: "no separator", reply: "Overall Score 3 weak", score: 3, reason: "weak", ok: true},
		{name: "preamble", reply: "1. yes\n2. no\nOverall Score: 10\n\n  Good. ", score: 10, reason: "Good.", ok: true},
		{name: "missing", reply: "I think it deserves a 7.", ok: false},
		{name: "not a number", reply: "Overall Score: seven", ok: false},
		{name: "above rubric", reply: "Overall Score: 12 extra credit", ok: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			score, reason, ok := ExtractScore(tc.reply)
			if ok != tc.ok {
				t.Fatalf("expected ok=%v, got %v", tc.ok, ok)
			}
			if !ok {
				return
			}
			if score != tc.score || reason != tc.reason {
				t.Fatalf("expected (%d, %q), got (%d, %q)", tc.score, tc.reason, score, reason)
			}
		})
	}
}

func TestExtractPreference(t *testing.T) {
	cases := []struct {
		name    string
		reply   string
		choices int
		index   int
		ok      bool
	}{
		{name: "bare", reply: "2", choices: 3, index: 1, ok: true},
		{name: "sentence", reply: "Response 3 is best.", choices: 3, index: 2, ok: true},
		{name: "first", reply: "1", choices: 1, index: 0, ok: true},
		{name: "too large", reply: "4", choices: 3, ok: false},
		{name: "zero", reply: "0", choices: 3, ok: false},
		{name: "multi digit", reply: "12", choices: 3, ok: false},
		{name: "tenth", reply: "10", choices: 10, index: 9, ok: true},
		{name: "first number wins", reply: "Response 10 is better than 3", choices: 10, index: 9, ok: true},
		{name: "number past range", reply: "Response 11 over 2", choices: 10, ok: false},
		{name: "empty", reply: "", choices: 3, ok: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			index, ok := ExtractPreference(tc.reply, tc.choices)
			if ok != tc.ok {
				t.Fatalf("expected ok=%v, got %v", tc.ok, ok)
			}
			if ok && index != tc.index {
				t.Fatalf("expected index %d, got %d", tc.index, index)
			}
		})
	}
}
