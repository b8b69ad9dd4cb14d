// Package judge asks a model to score or rank responses and parses its
// free-text verdict, re-prompting on malformed output.
package judge

import (
	"context"
	"errors"

	"github.com/chainguard-dev/clog"

	"judgebench/internal/llm"
)

// ErrNoResult is returned when every attempt failed to produce a usable verdict.
var ErrNoResult = errors.New("judge produced no result")

// MaxAttempts bounds the calls made for one verdict.
const MaxAttempts = 3

// Modes name the two kinds of verdict.
const (
	ModeScore  = "score"
	ModePrefer = "prefer"
)

// Attempt outcomes.
const (
	OutcomeOK        = "ok"
	OutcomeError     = "error"
	OutcomeMalformed = "malformed"
)

// Attempt describes one call made while looking for a verdict.
type Attempt struct {
	Mode    string
	Judge   string
	Number  int
	Outcome string
	Err     error
}

// Score is a rubric total with the judge's justification.
type Score struct {
	Value         int
	Justification string
}

// Option customizes a Judge.
type Option func(*Judge)

// WithAttemptHook registers a callback invoked after every attempt.
func WithAttemptHook(hook func(Attempt)) Option {
	return func(j *Judge) { j.onAttempt = hook }
}

// Judge evaluates responses with a single model.
type Judge struct {
	model     string
	client    llm.Completer
	onAttempt func(Attempt)
}

// New binds a judge to a completer for model.
func New(model string, client llm.Completer, opts ...Option) *Judge {
	j := &Judge{model: model, client: client}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Score rates response against the rubric. It returns ErrNoResult after
// MaxAttempts calls without a parsable score.
func (j *Judge) Score(ctx context.Context, question, response string) (Score, error) {
	var result Score
	err := j.retry(ctx, ModeScore, scoringRequest(question, response), scoreFeedback, func(reply string) bool {
		value, reason, ok := ExtractScore(reply)
		if ok {
			result = Score{Value: value, Justification: reason}
		}
		return ok
	})
	return result, err
}

// Prefer picks the best of answers and returns its zero-based index. It
// returns ErrNoResult after MaxAttempts calls without a valid choice.
func (j *Judge) Prefer(ctx context.Context, question string, answers []string) (int, error) {
	if len(answers) == 0 {
		return 0, errors.New("no answers to compare")
	}
	var picked int
	err := j.retry(ctx, ModePrefer, preferenceRequest(question, answers), preferenceFeedback, func(reply string) bool {
		index, ok := ExtractPreference(reply, len(answers))
		if ok {
			picked = index
		}
		return ok
	})
	return picked, err
}

// retry sends prompt until parse accepts a reply. After a malformed reply the
// next prompt is feedback followed by the original prompt; feedback never
// accumulates. API errors consume an attempt and resend the same prompt.
func (j *Judge) retry(ctx context.Context, mode, original, feedback string, parse func(string) bool) error {
	log := clog.FromContext(ctx).With("judge", j.model, "mode", mode)
	prompt := original
	for number := 1; number <= MaxAttempts; number++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		reply, err := j.client.Complete(ctx, []llm.Message{llm.User(prompt)})
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			log.Warnf("attempt %d/%d: %v", number, MaxAttempts, err)
			j.report(Attempt{Mode: mode, Judge: j.model, Number: number, Outcome: OutcomeError, Err: err})
			continue
		}
		if parse(reply) {
			j.report(Attempt{Mode: mode, Judge: j.model, Number: number, Outcome: OutcomeOK})
			return nil
		}
		log.Infof("attempt %d/%d: malformed verdict", number, MaxAttempts)
		j.report(Attempt{Mode: mode, Judge: j.model, Number: number, Outcome: OutcomeMalformed})
		prompt = feedback + original
	}
	return ErrNoResult
}

func (j *Judge) report(attempt Attempt) {
	if j.onAttempt != nil {
		j.onAttempt(attempt)
	}
}
