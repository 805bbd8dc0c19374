package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestOpenAIClient_Identify(t *testing.T) {
	var gotReq openAIRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("Expected path /chat/completions, got %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("Expected bearer auth header, got %q", auth)
		}

		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("Failed to decode request: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"{\"movie_name\":\"Interstellar\"}"}}]}`))
	}))
	defer server.Close()

	client := NewOpenAIClient("test-key", "", server.URL)

	content, err := client.Identify(context.Background(), "wormhole travel to save humanity")
	if err != nil {
		t.Fatalf("Identify failed: %v", err)
	}

	if !strings.Contains(content, "Interstellar") {
		t.Errorf("Expected model content in reply, got %q", content)
	}

	if gotReq.Model != defaultOpenAIModel {
		t.Errorf("Expected model %s, got %s", defaultOpenAIModel, gotReq.Model)
	}
	if gotReq.MaxTokens != openAIMaxTokens {
		t.Errorf("Expected max_tokens %d, got %d", openAIMaxTokens, gotReq.MaxTokens)
	}
	if len(gotReq.Messages) != 2 {
		t.Fatalf("Expected 2 messages, got %d", len(gotReq.Messages))
	}
	if !strings.Contains(gotReq.Messages[1].Content, "wormhole travel to save humanity") {
		t.Errorf("Expected plot in user prompt, got %q", gotReq.Messages[1].Content)
	}
}

func TestOpenAIClient_Identify_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"rate limited","type":"rate_limit"}}`))
	}))
	defer server.Close()

	client := NewOpenAIClient("test-key", "", server.URL)

	_, err := client.Identify(context.Background(), "some plot")
	if err == nil {
		t.Fatal("Expected error for non-200 response, got nil")
	}
}

func TestOpenAIClient_Identify_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client := NewOpenAIClient("test-key", "", server.URL)

	_, err := client.Identify(context.Background(), "some plot")
	if err == nil {
		t.Fatal("Expected error for empty choices, got nil")
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt("A shark terrorizes a beach town.")

	for _, want := range []string{
		"movie_name", "release_date", "rationale", "confidence",
		"Plot: A shark terrorizes a beach town.",
		"JSON object",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("Expected prompt to contain %q", want)
		}
	}
}

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name      string
		config    Config
		wantName  string
		expectErr bool
	}{
		{
			name:     "default is openai",
			config:   Config{OpenAIAPIKey: "key"},
			wantName: "openai",
		},
		{
			name:     "explicit gemini",
			config:   Config{Provider: "gemini", GeminiAPIKey: "key"},
			wantName: "gemini",
		},
		{
			name:      "openai without key",
			config:    Config{Provider: "openai"},
			expectErr: true,
		},
		{
			name:      "gemini without key",
			config:    Config{Provider: "gemini"},
			expectErr: true,
		},
		{
			name:      "unknown provider",
			config:    Config{Provider: "claude"},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, err := NewProvider(tt.config)
			if tt.expectErr {
				if err == nil {
					t.Error("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewProvider failed: %v", err)
			}
			if provider.Name() != tt.wantName {
				t.Errorf("Expected provider %s, got %s", tt.wantName, provider.Name())
			}
		})
	}
}
