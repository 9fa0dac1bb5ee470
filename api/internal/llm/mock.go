package llm

import (
	"context"
	"sync"
)

// MockResponse is a canned response for the MockEngine.
type MockResponse struct {
	Text string
	Err  error
}

// MockCall records one GenerateText invocation.
type MockCall struct {
	Model  string
	Prompt string
	Config GenConfig
}

// MockEngine is a deterministic Engine for tests. Canned responses are
// consumed FIFO; every call is recorded.
type MockEngine struct {
	mu        sync.Mutex
	responses []MockResponse
	Available []string
	ListErr   error
	Calls     []MockCall
}

func NewMockEngine(responses ...MockResponse) *MockEngine {
	return &MockEngine{responses: responses}
}

func (m *MockEngine) Name() string { return "mock" }

// GenerateText returns the next canned response, or an unavailable error
// once the queue is drained.
func (m *MockEngine) GenerateText(_ context.Context, model, prompt string, cfg GenConfig) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, MockCall{Model: model, Prompt: prompt, Config: cfg})

	if len(m.responses) == 0 {
		return "", &ModelError{Model: model, Kind: KindUnavailable, Err: errExhaustedQueue}
	}

	resp := m.responses[0]
	m.responses = m.responses[1:]

	if resp.Err != nil {
		return "", resp.Err
	}
	return resp.Text, nil
}

func (m *MockEngine) ListModels(_ context.Context) ([]string, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.Available, nil
}

// AddResponse appends a canned response to the queue.
func (m *MockEngine) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// CallCount returns the number of GenerateText calls made.
func (m *MockEngine) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

var errExhaustedQueue = &queueError{}

type queueError struct{}

func (*queueError) Error() string { return "mock: response queue is empty" }
