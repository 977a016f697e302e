package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"scriptforge/internal/provider"
	"scriptforge/pkg/prompts"
)

var testParams = prompts.ScriptParams{
	Topic:    "volcanoes",
	Duration: "3-5 minutes",
	Style:    "educational",
	Language: "en",
}

func TestDispatcherSelectionTotal(t *testing.T) {
	d := NewDispatcher(prompts.Default(), nil)

	for _, desc := range provider.Text() {
		if !d.Supports(desc.ID) {
			t.Errorf("no adapter registered for catalog provider %q", desc.ID)
		}
	}
}

func TestDispatcherUnsupportedProvider(t *testing.T) {
	calls := 0
	builders := map[string]BuildFunc{
		"known": func(apiKey, model string) Client {
			calls++
			return nil
		},
	}
	d := newDispatcher(prompts.Default(), nil, builders)

	_, err := d.Generate(context.Background(), "unknown-id", testParams, "some-key")
	if err == nil {
		t.Fatal("expected error for unsupported provider")
	}
	if !strings.Contains(err.Error(), "unknown-id") {
		t.Errorf("error should name the identifier: %v", err)
	}
	if calls != 0 {
		t.Errorf("no adapter should be built for an unsupported provider, got %d builds", calls)
	}
}

func TestDispatcherMissingCredential(t *testing.T) {
	calls := 0
	builders := map[string]BuildFunc{
		"openai": func(apiKey, model string) Client {
			calls++
			return nil
		},
	}
	d := newDispatcher(prompts.Default(), nil, builders)

	_, err := d.Generate(context.Background(), "openai", testParams, "")
	if !errors.Is(err, provider.ErrMissingCredential) {
		t.Fatalf("expected ErrMissingCredential, got %v", err)
	}
	if calls != 0 {
		t.Errorf("dispatch must not be attempted without a credential, got %d builds", calls)
	}
}

func TestDispatcherProviderLabeledFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal"}`))
	}))
	defer server.Close()

	builders := map[string]BuildFunc{
		"mistral": func(apiKey, model string) Client {
			return newChatClient(server.URL, apiKey, model)
		},
	}
	d := newDispatcher(prompts.Default(), map[string]string{"mistral": "mistral-small-latest"}, builders)

	_, err := d.Generate(context.Background(), "mistral", testParams, "valid-key")
	if err == nil {
		t.Fatal("expected error for HTTP 500")
	}
	if !strings.Contains(err.Error(), "mistral") {
		t.Errorf("failure should be labeled with the provider: %v", err)
	}
}

func TestDispatcherPassesRenderedPrompt(t *testing.T) {
	var gotPrompt string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if len(req.Messages) == 1 {
			gotPrompt = req.Messages[0].Content
		}
		_ = json.NewEncoder(w).Encode(chatResponse{
			Choices: []chatChoice{{Message: chatMessage{Content: "ok"}}},
		})
	}))
	defer server.Close()

	builders := map[string]BuildFunc{
		"openai": func(apiKey, model string) Client {
			return newChatClient(server.URL, apiKey, model)
		},
	}
	d := newDispatcher(prompts.Default(), map[string]string{"openai": "gpt-4o-mini"}, builders)

	text, err := d.Generate(context.Background(), "openai", testParams, "valid-key")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "ok" {
		t.Errorf("got %q, want %q", text, "ok")
	}
	if !strings.Contains(gotPrompt, "volcanoes") {
		t.Errorf("dispatched prompt missing topic: %q", gotPrompt)
	}
	if !strings.Contains(gotPrompt, "Hook") {
		t.Errorf("dispatched prompt missing section structure: %q", gotPrompt)
	}
}
