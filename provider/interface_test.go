package provider_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"peermind/model"
	"peermind/provider"
	"peermind/provider/testutil"
	"testing"
	"time"
)

// TestProviderContract defines the contract every provider must satisfy.
func TestProviderContract(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/chat/completions" {
			_, _ = io.WriteString(w, `{"id":"c","object":"chat.completion","created":1,"model":"m","choices":[{"index":0,"message":{"role":"assistant","content":"pong"},"finish_reason":"stop"}]}`)
			return
		}
		_, _ = io.WriteString(w, `{"candidates":[{"content":{"parts":[{"text":"pong"}]}}]}`)
	}))
	defer server.Close()

	near, err := provider.NewNearAIProvider(server.URL, "k", "m")
	if err != nil {
		t.Fatal(err)
	}
	gemini, err := provider.NewGeminiProvider(server.URL, "k", "m", "")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		provider model.Provider
	}{
		{"Mock", testutil.NewMockProvider("test-model")},
		{"NearAI", near},
		{"Gemini", gemini},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			reply, err := tt.provider.Complete(ctx, testutil.SingleUserMessage("ping"))
			if err != nil {
				t.Errorf("Complete() error = %v", err)
			}
			if reply == "" {
				t.Error("Complete() returned empty reply")
			}
			if tt.provider.Name() == "" {
				t.Error("Name() returned empty string")
			}
			if tt.provider.GetModel() == "" {
				t.Error("GetModel() returned empty string")
			}
		})
	}
}
