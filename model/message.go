package model

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of a transcript. Position is its only identity.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Messages []Message `json:"messages"`
}

// Choice wraps a single reply in the OpenAI-style envelope.
type Choice struct {
	Message Message `json:"message"`
}

// ChatResponse is the provider-agnostic reply envelope returned by the relay.
type ChatResponse struct {
	Choices []Choice `json:"choices"`
}

// ErrorResponse is returned with every non-2xx relay status.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewChatResponse builds the single-choice envelope for an assistant reply.
func NewChatResponse(content string) ChatResponse {
	return ChatResponse{
		Choices: []Choice{{Message: Message{Role: RoleAssistant, Content: content}}},
	}
}

// FirstContent returns the first choice's content, or "" when absent.
func (r ChatResponse) FirstContent() string {
	if len(r.Choices) == 0 {
		return ""
	}
	return r.Choices[0].Message.Content
}

// CountExchanges returns how many messages are assistant turns preceded by
// at least one user turn.
func CountExchanges(messages []Message) int {
	seenUser := false
	count := 0
	for _, msg := range messages {
		switch msg.Role {
		case RoleUser:
			seenUser = true
		case RoleAssistant:
			if seenUser {
				count++
			}
		}
	}
	return count
}
