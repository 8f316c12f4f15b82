package provider

import (
	"encoding/json"
	"peermind/provider/testutil"
	"testing"

	"github.com/tidwall/gjson"
)

func TestExtractReply(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "candidates content parts",
			body: testutil.GeminiCandidatesResponse,
			want: "Hello from Gemini",
		},
		{
			name: "legacy candidate output",
			body: testutil.GeminiLegacyCandidatesResponse,
			want: "legacy output",
		},
		{
			name: "output list",
			body: testutil.OutputListResponse,
			want: "from output list",
		},
		{
			name: "bare output_text",
			body: testutil.OutputTextResponse,
			want: "bare output text",
		},
		{
			name: "bare text",
			body: testutil.BareTextResponse,
			want: "just text",
		},
		{
			name: "candidates win over output_text",
			body: `{"output_text": "second", "candidates": [{"content": {"parts": [{"text": "first"}]}}]}`,
			want: "first",
		},
		{
			name: "empty candidate parts fall through",
			body: `{"candidates": [{"content": {"parts": []}}], "text": "fallback text"}`,
			want: "fallback text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractReply([]byte(tt.body))
			if got != tt.want {
				t.Errorf("ExtractReply() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractReplyFallbackDumpsJSON(t *testing.T) {
	got := ExtractReply([]byte(testutil.UnrecognizedResponse))
	if got == "" {
		t.Fatal("expected non-empty fallback")
	}
	if !json.Valid([]byte(got)) {
		t.Fatalf("expected JSON fallback, got %q", got)
	}
	if gjson.Get(got, "promptFeedback.blockReason").String() != "SAFETY" {
		t.Errorf("fallback lost content: %q", got)
	}
	if got != `{"promptFeedback":{"blockReason":"SAFETY"}}` {
		t.Errorf("expected compact JSON, got %q", got)
	}
}

func TestExtractReplyNeverEmpty(t *testing.T) {
	inputs := []string{"", "   ", "not json", "{}", "[]", "null", `{"candidates": "oops"}`, `{"output": [1, 2]}`}
	for _, in := range inputs {
		if got := ExtractReply([]byte(in)); got == "" {
			t.Errorf("ExtractReply(%q) returned empty string", in)
		}
	}
}

func TestExtractWithCustomMatchers(t *testing.T) {
	always := func(resp gjson.Result) (string, bool) { return "custom", true }
	got := ExtractWith([]byte(testutil.GeminiCandidatesResponse), []ShapeMatcher{always})
	if got != "custom" {
		t.Errorf("expected custom matcher to win, got %q", got)
	}

	got = ExtractWith([]byte(testutil.BareTextResponse), nil)
	if got != `{"text":"just text"}` {
		t.Errorf("expected fallback with no matchers, got %q", got)
	}
}
