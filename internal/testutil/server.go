package testutil

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// ChatRequest is the subset of a chat completion request the fake server
// decodes.
type ChatRequest struct {
	Model    string `json:"model"`
	User     string `json:"user"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
	Metadata struct {
		Tags []string `json:"tags"`
	} `json:"metadata"`
}

// LastContent returns the content of the final message.
func (r ChatRequest) LastContent() string {
	if len(r.Messages) == 0 {
		return ""
	}
	return r.Messages[len(r.Messages)-1].Content
}

// ChatReply controls one fake response. A non-zero Status is sent as an
// error with Content as the message.
type ChatReply struct {
	Content   string
	Status    int
	NoChoices bool
}

// ChatServer is an in-memory OpenAI-compatible chat completion endpoint.
type ChatServer struct {
	BaseURL string

	mu       sync.Mutex
	requests []ChatRequest
}

// Requests returns every request received so far.
func (s *ChatServer) Requests() []ChatRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ChatRequest(nil), s.requests...)
}

// StartChatServer serves POST /chat/completions, answering each request with
// reply. The server is closed when the test ends.
func StartChatServer(t testing.TB, reply func(ChatRequest) ChatReply) *ChatServer {
	t.Helper()
	chat := &ChatServer{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/chat/completions" {
			http.NotFound(w, r)
			return
		}
		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		var req ChatRequest
		if err := json.Unmarshal(body, &req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		chat.mu.Lock()
		chat.requests = append(chat.requests, req)
		chat.mu.Unlock()

		out := reply(req)
		w.Header().Set("Content-Type", "application/json")
		if out.Status != 0 {
			w.WriteHeader(out.Status)
			fmt.Fprintf(w, `{"error":{"message":%q,"type":"fake_error"}}`, out.Content)
			return
		}
		choices := []map[string]any{}
		if !out.NoChoices {
			choices = append(choices, map[string]any{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": out.Content},
			})
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-test",
			"object":  "chat.completion",
			"created": 0,
			"model":   req.Model,
			"choices": choices,
		})
	}))
	t.Cleanup(server.Close)
	chat.BaseURL = server.URL
	return chat
}
