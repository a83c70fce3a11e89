package advisor

import (
	"context"

	"github.com/isavita/sugai/internal/llm"
)

// MockLLMClient is a hand-rolled test double for llm.LLMClient.
type MockLLMClient struct {
	ResponseToReturn *llm.LLMResponse
	ErrorToReturn    error
	LastRequest      llm.LLMRequest
	InvokeCount      int
}

func (m *MockLLMClient) InvokeModel(ctx context.Context, request llm.LLMRequest) (*llm.LLMResponse, error) {
	m.InvokeCount++
	m.LastRequest = request
	if m.ErrorToReturn != nil {
		return nil, m.ErrorToReturn
	}
	if m.ResponseToReturn != nil {
		return m.ResponseToReturn, nil
	}
	return &llm.LLMResponse{Content: "mock recommendation", StopReason: "end_turn"}, nil
}

func (m *MockLLMClient) InvokeModelWithRetry(ctx context.Context, request llm.LLMRequest) (*llm.LLMResponse, error) {
	return m.InvokeModel(ctx, request)
}
