package provider

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"peermind/provider/testutil"
	"testing"

	"github.com/tidwall/gjson"
)

func newTestGemini(t *testing.T, handler http.HandlerFunc) *GeminiProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := NewGeminiProvider(server.URL+"/v1beta", "gem-key", "gemini-test", "system rules")
	if err != nil {
		t.Fatal(err)
	}
	p.SetHTTPClient(server.Client())
	return p
}

func TestGeminiComplete(t *testing.T) {
	var gotPath, gotKey string
	var gotBody []byte

	p := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, testutil.GeminiCandidatesResponse)
	})

	reply, err := p.Complete(context.Background(), testutil.TestMessages())
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if reply != "Hello from Gemini" {
		t.Errorf("unexpected reply %q", reply)
	}

	if gotPath != "/v1beta/models/gemini-test:generateContent" {
		t.Errorf("unexpected path %q", gotPath)
	}
	if gotKey != "gem-key" {
		t.Errorf("expected key query param, got %q", gotKey)
	}
	if first := gjson.GetBytes(gotBody, "contents.0.parts.0.text").String(); first != "system rules" {
		t.Errorf("expected system prompt as first turn, got %q", first)
	}
	if role := gjson.GetBytes(gotBody, "contents.0.role").String(); role != "user" {
		t.Errorf("expected synthetic user turn, got %q", role)
	}
	if role := gjson.GetBytes(gotBody, "contents.2.role").String(); role != "model" {
		t.Errorf("expected assistant mapped to model, got %q", role)
	}
}

func TestGeminiUpstreamError(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusForbidden, http.StatusTooManyRequests, http.StatusServiceUnavailable} {
		p := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			_, _ = io.WriteString(w, `{"error":{"message":"nope"}}`)
		})

		_, err := p.Complete(context.Background(), testutil.SingleUserMessage("hi"))
		var upErr *UpstreamError
		if !errors.As(err, &upErr) {
			t.Fatalf("status %d: expected UpstreamError, got %v", status, err)
		}
		if upErr.StatusCode != status {
			t.Errorf("expected status %d, got %d", status, upErr.StatusCode)
		}
		if upErr.Body != `{"error":{"message":"nope"}}` {
			t.Errorf("unexpected body %q", upErr.Body)
		}
	}
}

func TestGeminiMalformedJSON(t *testing.T) {
	p := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"candidates": [`)
	})

	_, err := p.Complete(context.Background(), testutil.SingleUserMessage("hi"))
	if err == nil {
		t.Fatal("expected error for malformed JSON")
	}
	var upErr *UpstreamError
	if errors.As(err, &upErr) {
		t.Errorf("malformed body should not be an UpstreamError")
	}
}

func TestGeminiUnrecognizedShapeFallsBack(t *testing.T) {
	p := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, testutil.UnrecognizedResponse)
	})

	reply, err := p.Complete(context.Background(), testutil.SingleUserMessage("hi"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply == "" || !gjson.Valid(reply) {
		t.Errorf("expected JSON dump, got %q", reply)
	}
}
