package provider

import (
	"peermind/model"

	"github.com/openai/openai-go/v3"
)

// ConvertToOpenAIMessages converts transcript messages to OpenAI SDK params.
//
// Roles map one-to-one for "user", "assistant" and "system". Any other role
// is sent as a user turn so a malformed transcript still reaches the API.
//
// Example:
//
//	msgs := []model.Message{
//	    {Role: "user", Content: "Hello"},
//	    {Role: "assistant", Content: "Hi there!"},
//	}
//	params := ConvertToOpenAIMessages(msgs)
func ConvertToOpenAIMessages(messages []model.Message) []openai.ChatCompletionMessageParamUnion {
	result := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case model.RoleAssistant:
			result = append(result, openai.AssistantMessage(msg.Content))
		case "system":
			result = append(result, openai.SystemMessage(msg.Content))
		default:
			result = append(result, openai.UserMessage(msg.Content))
		}
	}
	return result
}

// GeminiPart is a single text part of a Gemini content entry.
type GeminiPart struct {
	Text string `json:"text"`
}

// GeminiContent is one turn in a generateContent request.
type GeminiContent struct {
	Role  string       `json:"role"`
	Parts []GeminiPart `json:"parts"`
}

// GeminiRequest is the generateContent request body.
type GeminiRequest struct {
	Contents []GeminiContent `json:"contents"`
}

// ConvertToGeminiContents translates a transcript into Gemini contents.
//
// Gemini only knows the roles "user" and "model": assistant turns become
// "model" and everything else becomes "user". A non-empty systemPrompt is
// injected as a synthetic leading user turn because the endpoint revisions
// peermind targets do not all accept a system instruction field.
//
// Example:
//
//	contents := ConvertToGeminiContents(msgs, "You are peermind.")
//	// contents[0] == {Role: "user", Parts: [{Text: "You are peermind."}]}
func ConvertToGeminiContents(messages []model.Message, systemPrompt string) []GeminiContent {
	result := make([]GeminiContent, 0, len(messages)+1)
	if systemPrompt != "" {
		result = append(result, GeminiContent{
			Role:  "user",
			Parts: []GeminiPart{{Text: systemPrompt}},
		})
	}
	for _, msg := range messages {
		role := "user"
		if msg.Role == model.RoleAssistant {
			role = "model"
		}
		result = append(result, GeminiContent{
			Role:  role,
			Parts: []GeminiPart{{Text: msg.Content}},
		})
	}
	return result
}
