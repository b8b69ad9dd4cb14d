// Package respondent produces one free-text answer per benchmark question.
package respondent

import (
	"context"
	"fmt"

	"judgebench/internal/llm"
)

// Respondent answers questions with a single model.
type Respondent struct {
	model        string
	systemPrompt string
	client       llm.Completer
}

// New binds a respondent to a completer for model.
func New(model, systemPrompt string, client llm.Completer) *Respondent {
	return &Respondent{model: model, systemPrompt: systemPrompt, client: client}
}

// Respond sends the system prompt and question and returns the answer text.
func (r *Respondent) Respond(ctx context.Context, question string) (string, error) {
	messages := make([]llm.Message, 0, 2)
	if r.systemPrompt != "" {
		messages = append(messages, llm.System(r.systemPrompt))
	}
	messages = append(messages, llm.User(question))
	answer, err := r.client.Complete(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("respond with %s: %w", r.model, err)
	}
	return answer, nil
}
