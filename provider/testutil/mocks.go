package testutil

import (
	"context"
	"peermind/model"
	"sync"
)

// MockProvider implements model.Provider for testing
type MockProvider struct {
	// Configurable response
	CompleteFunc func(ctx context.Context, messages []model.Message) (string, error)

	mu           sync.Mutex
	calls        int
	lastMessages []model.Message
	currentModel string
}

// NewMockProvider creates a mock provider that echoes a fixed reply
func NewMockProvider(modelName string) *MockProvider {
	mock := &MockProvider{
		currentModel: modelName,
	}
	mock.CompleteFunc = mock.defaultComplete
	return mock
}

func (m *MockProvider) defaultComplete(ctx context.Context, messages []model.Message) (string, error) {
	if len(messages) == 0 {
		return "", nil
	}
	return "Mock response", nil
}

func (m *MockProvider) Complete(ctx context.Context, messages []model.Message) (string, error) {
	m.mu.Lock()
	m.calls++
	m.lastMessages = append([]model.Message(nil), messages...)
	m.mu.Unlock()
	return m.CompleteFunc(ctx, messages)
}

func (m *MockProvider) Name() string {
	return "mock"
}

func (m *MockProvider) GetModel() string {
	return m.currentModel
}

// Calls returns how many times Complete was invoked
func (m *MockProvider) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// LastMessages returns a copy of the transcript passed to the last Complete call
func (m *MockProvider) LastMessages() []model.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.Message(nil), m.lastMessages...)
}
