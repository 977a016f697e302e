package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"scriptforge/internal/provider"
)

func TestChatClientGenerate(t *testing.T) {
	tests := []struct {
		name           string
		serverResponse chatResponse
		serverStatus   int
		wantErr        bool
		wantShapeErr   bool
		wantContent    string
	}{
		{
			name: "successfulGeneration",
			serverResponse: chatResponse{
				Choices: []chatChoice{
					{Message: chatMessage{Role: "assistant", Content: "Here is your script."}},
				},
			},
			serverStatus: http.StatusOK,
			wantContent:  "Here is your script.",
		},
		{
			name:           "emptyChoices",
			serverResponse: chatResponse{Choices: []chatChoice{}},
			serverStatus:   http.StatusOK,
			wantErr:        true,
			wantShapeErr:   true,
		},
		{
			name: "emptyContent",
			serverResponse: chatResponse{
				Choices: []chatChoice{{Message: chatMessage{Role: "assistant"}}},
			},
			serverStatus: http.StatusOK,
			wantErr:      true,
			wantShapeErr: true,
		},
		{
			name:         "serverError",
			serverStatus: http.StatusInternalServerError,
			wantErr:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Errorf("expected POST, got %s", r.Method)
				}
				if r.Header.Get("Authorization") != "Bearer test-key" {
					t.Errorf("expected bearer credential, got %q", r.Header.Get("Authorization"))
				}

				var req chatRequest
				if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
					t.Errorf("decode request: %v", err)
				}
				if req.Model != "test-model" {
					t.Errorf("model = %q, want test-model", req.Model)
				}
				if len(req.Messages) != 1 || req.Messages[0].Role != roleUser {
					t.Errorf("expected a single user message, got %+v", req.Messages)
				}

				w.WriteHeader(tt.serverStatus)
				if tt.serverStatus == http.StatusOK {
					_ = json.NewEncoder(w).Encode(tt.serverResponse)
				}
			}))
			defer server.Close()

			client := newChatClient(server.URL, "test-key", "test-model")
			got, err := client.Generate(context.Background(), "write something")

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if tt.wantShapeErr && !errors.Is(err, provider.ErrUnexpectedResponse) {
					t.Errorf("expected ErrUnexpectedResponse, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.wantContent {
				t.Errorf("got %q, want %q", got, tt.wantContent)
			}
		})
	}
}

func TestChatClientEndpoints(t *testing.T) {
	if c := newOpenAIClient("k", "m"); c.url != openAIChatURL {
		t.Errorf("openai url = %q", c.url)
	}
	if c := newMistralClient("k", "m"); c.url != mistralChatURL {
		t.Errorf("mistral url = %q", c.url)
	}
}
