package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const okText = "the quick brown fox is long enough"

func testInvoker(e Engine, models ...string) *Invoker {
	return &Invoker{
		Engine:  e,
		Models:  models,
		Timeout: 100 * time.Millisecond,
		Backoff: time.Millisecond,
	}
}

func TestInvoker_StopsAfterFirstSuccess(t *testing.T) {
	mock := NewMockEngine(
		MockResponse{Err: errors.New("429 rate limit")},
		MockResponse{Err: errors.New("quota exceeded")},
		MockResponse{Text: okText},
	)
	inv := testInvoker(mock, "m1", "m2", "m3", "m4")

	text, model, err := inv.Generate(context.Background(), "p", GenConfig{}, "")
	require.NoError(t, err)
	assert.Equal(t, okText, text)
	assert.Equal(t, "m3", model)
	assert.Equal(t, 3, mock.CallCount()) // m4 never probed
}

func TestInvoker_AllCandidatesFail(t *testing.T) {
	mock := NewMockEngine(
		MockResponse{Err: errors.New("model not found")},
		MockResponse{Err: errors.New("quota exceeded")},
		MockResponse{Err: errors.New("something else")},
	)
	inv := testInvoker(mock, "m1", "m2", "m3")

	_, _, err := inv.Generate(context.Background(), "p", GenConfig{}, "")
	require.Error(t, err)

	var ex *ExhaustedError
	require.True(t, errors.As(err, &ex))
	assert.EqualError(t, ex.Last, "something else")
}

func TestInvoker_ShortResponseIsFailure(t *testing.T) {
	mock := NewMockEngine(
		MockResponse{Text: "   ok   "},
		MockResponse{Text: okText},
	)
	inv := testInvoker(mock, "m1", "m2")

	text, model, err := inv.Generate(context.Background(), "p", GenConfig{}, "")
	require.NoError(t, err)
	assert.Equal(t, okText, text)
	assert.Equal(t, "m2", model)
}

func TestInvoker_PinnedModelOnly(t *testing.T) {
	mock := NewMockEngine(MockResponse{Text: okText})
	inv := testInvoker(mock, "m1", "m2", "m3")

	_, model, err := inv.Generate(context.Background(), "p", GenConfig{}, "pinned-model")
	require.NoError(t, err)
	assert.Equal(t, "pinned-model", model)
	require.Equal(t, 1, mock.CallCount())
	assert.Equal(t, "pinned-model", mock.Calls[0].Model)
}

func TestInvoker_PinnedFailureExhaustsImmediately(t *testing.T) {
	mock := NewMockEngine(MockResponse{Err: errors.New("500 broken")})
	inv := testInvoker(mock, "m1", "m2", "m3")

	_, _, err := inv.Generate(context.Background(), "p", GenConfig{}, "pinned-model")
	var ex *ExhaustedError
	require.True(t, errors.As(err, &ex))
	assert.Equal(t, 1, mock.CallCount())
}

// slowEngine blocks until the attempt context expires.
type slowEngine struct{}

func (slowEngine) Name() string { return "slow" }

func (slowEngine) GenerateText(ctx context.Context, _, _ string, _ GenConfig) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func (slowEngine) ListModels(context.Context) ([]string, error) { return nil, nil }

func TestInvoker_TimeoutMovesToNextCandidate(t *testing.T) {
	inv := &Invoker{
		Engine:  slowEngine{},
		Models:  []string{"m1", "m2"},
		Timeout: 5 * time.Millisecond,
		Backoff: time.Millisecond,
	}

	_, _, err := inv.Generate(context.Background(), "p", GenConfig{}, "")
	require.Error(t, err)

	var te *TimeoutError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "m2", te.Model)
}

func TestInvoker_ParentContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mock := NewMockEngine(MockResponse{Text: okText})
	inv := testInvoker(mock, "m1")

	_, _, err := inv.Generate(ctx, "p", GenConfig{}, "")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, mock.CallCount())
}

func TestInvoker_PassesGenerationConfig(t *testing.T) {
	mock := NewMockEngine(MockResponse{Text: okText})
	inv := testInvoker(mock, "m1")

	cfg := GenConfig{Temperature: 0.3, MaxOutputTokens: 800, CandidateCount: 1}
	_, _, err := inv.Generate(context.Background(), "the prompt", cfg, "")
	require.NoError(t, err)
	require.Equal(t, 1, mock.CallCount())
	assert.Equal(t, cfg, mock.Calls[0].Config)
	assert.Equal(t, "the prompt", mock.Calls[0].Prompt)
}

func TestEngineNames(t *testing.T) {
	assert.Equal(t, "gemini", NewGemini("key").Name())
	assert.Equal(t, "mock", NewMockEngine().Name())
}
