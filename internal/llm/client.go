// Package llm wraps an OpenAI-compatible chat completion endpoint with the
// caller identity and cost tags every judgebench request carries.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/chainguard-dev/clog"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"judgebench/internal/spec"
)

// ErrEmptyResponse is returned when the endpoint answers without any choice.
var ErrEmptyResponse = errors.New("chat completion returned no choices")

// Roles label requests in logs and metrics.
const (
	RoleRespondent = "respondent"
	RoleJudge      = "judge"
)

// Message is a single chat turn.
type Message struct {
	Role    string
	Content string
}

// System builds a system message.
func System(content string) Message { return Message{Role: "system", Content: content} }

// User builds a user message.
func User(content string) Message { return Message{Role: "user", Content: content} }

// Completer sends one chat completion and returns the first choice's text.
type Completer interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

// Recorder receives one observation per request.
type Recorder interface {
	ObserveRequest(role, model string, err error, elapsed time.Duration)
}

// Options configures the shared endpoint.
type Options struct {
	BaseURL    string
	APIKey     string
	User       string
	Tags       []string
	Timeout    time.Duration
	MaxRetries int
	HTTPClient *http.Client
	Recorder   Recorder
}

// OptionsFromConfig merges the client section of the config with
// environment credentials. LLM_BASE_URL wins over the config file.
func OptionsFromConfig(cfg spec.ClientConfig, env Env) Options {
	opts := Options{
		BaseURL: cfg.BaseURL,
		APIKey:  env.APIKey,
		User:    cfg.User,
		Tags:    append([]string(nil), cfg.Tags...),
		Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
	}
	if env.BaseURL != "" {
		opts.BaseURL = env.BaseURL
	}
	if cfg.MaxRetries != nil {
		opts.MaxRetries = *cfg.MaxRetries
	}
	return opts
}

// Provider holds one SDK client shared by every model.
type Provider struct {
	api      openai.Client
	user     string
	tags     []string
	recorder Recorder
}

// NewProvider builds the SDK client.
func NewProvider(opts Options) (*Provider, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, fmt.Errorf("api key is required")
	}
	requestOpts := []option.RequestOption{
		option.WithAPIKey(opts.APIKey),
		option.WithMaxRetries(opts.MaxRetries),
	}
	if opts.BaseURL != "" {
		requestOpts = append(requestOpts, option.WithBaseURL(opts.BaseURL))
	}
	if opts.Timeout > 0 {
		requestOpts = append(requestOpts, option.WithRequestTimeout(opts.Timeout))
	}
	if opts.HTTPClient != nil {
		requestOpts = append(requestOpts, option.WithHTTPClient(opts.HTTPClient))
	}
	return &Provider{
		api:      openai.NewClient(requestOpts...),
		user:     opts.User,
		tags:     append([]string(nil), opts.Tags...),
		recorder: opts.Recorder,
	}, nil
}

// Model returns a Completer bound to one model name and role.
func (p *Provider) Model(model, role string) *Client {
	return &Client{provider: p, model: model, role: role}
}

// Client is a Completer for a single model.
type Client struct {
	provider *Provider
	model    string
	role     string
}

// Complete sends the messages and returns the first choice's content.
func (c *Client) Complete(ctx context.Context, messages []Message) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(c.model),
		Messages: toParams(messages),
	}
	if c.provider.user != "" {
		params.User = openai.String(c.provider.user)
	}
	var requestOpts []option.RequestOption
	if len(c.provider.tags) > 0 {
		requestOpts = append(requestOpts, option.WithJSONSet("metadata", map[string]any{"tags": c.provider.tags}))
	}

	start := time.Now()
	resp, err := c.provider.api.Chat.Completions.New(ctx, params, requestOpts...)
	if err == nil && len(resp.Choices) == 0 {
		err = ErrEmptyResponse
	}
	elapsed := time.Since(start)
	if c.provider.recorder != nil {
		c.provider.recorder.ObserveRequest(c.role, c.model, err, elapsed)
	}
	if err != nil {
		clog.FromContext(ctx).Debug("chat completion failed", "role", c.role, "model", c.model, "elapsed", elapsed, "error", err)
		return "", fmt.Errorf("chat completion: %w", err)
	}
	clog.FromContext(ctx).Debug("chat completion", "role", c.role, "model", c.model, "elapsed", elapsed)
	return resp.Choices[0].Message.Content, nil
}

func toParams(messages []Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case "system":
			out = append(out, openai.SystemMessage(msg.Content))
		case "assistant":
			out = append(out, openai.AssistantMessage(msg.Content))
		default:
			out = append(out, openai.UserMessage(msg.Content))
		}
	}
	return out
}
