package testutil

import "peermind/model"

// TestMessages returns a sample conversation for testing
func TestMessages() []model.Message {
	return []model.Message{
		{Role: "user", Content: "Hello, how are you?"},
		{Role: "assistant", Content: "I'm doing well, thank you!"},
		{Role: "user", Content: "Can you help me with a task?"},
	}
}

// SingleUserMessage returns a single user message for simple tests
func SingleUserMessage(content string) []model.Message {
	return []model.Message{
		{Role: "user", Content: content},
	}
}

// Gemini response bodies in the shapes the extractor recognises.
const (
	GeminiCandidatesResponse = `{
  "candidates": [
    {
      "content": {
        "parts": [{"text": "Hello "}, {"text": "from Gemini"}],
        "role": "model"
      },
      "finishReason": "STOP",
      "index": 0
    }
  ],
  "usageMetadata": {"promptTokenCount": 4, "candidatesTokenCount": 3}
}`

	GeminiLegacyCandidatesResponse = `{"candidates": [{"output": "legacy output"}]}`

	OutputListResponse = `{"output": [{"type": "message", "content": [{"type": "output_text", "text": "from output list"}]}]}`

	OutputTextResponse = `{"id": "resp_1", "output_text": "bare output text"}`

	BareTextResponse = `{"text": "just text"}`

	UnrecognizedResponse = `{"promptFeedback": {"blockReason": "SAFETY"}}`
)
