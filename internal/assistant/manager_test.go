package assistant

import (
	"context"
	"errors"
	"testing"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crednest/server/internal/assistant/model"
	"github.com/crednest/server/internal/assistant/tools"
)

type fakeBackend struct {
	calls int
	input []*schema.Message
	out   *schema.Message
	err   error
}

func (f *fakeBackend) Generate(ctx context.Context, input []*schema.Message, opts ...einomodel.Option) (*schema.Message, error) {
	f.calls++
	f.input = input
	return f.out, f.err
}

type fakeRepository struct {
	turns     []*model.Turn
	recentErr error
}

func (f *fakeRepository) Append(ctx context.Context, turn *model.Turn) error { return nil }

func (f *fakeRepository) Recent(ctx context.Context, userID, sessionID string, limit int) ([]*model.Turn, error) {
	if f.recentErr != nil {
		return nil, f.recentErr
	}
	if len(f.turns) > limit {
		return f.turns[len(f.turns)-limit:], nil
	}
	return f.turns, nil
}

func (f *fakeRepository) History(ctx context.Context, userID, sessionID string, page, perPage int) (*model.HistoryPage, error) {
	return &model.HistoryPage{}, nil
}

func (f *fakeRepository) Sessions(ctx context.Context, userID string) ([]*model.SessionSummary, error) {
	return nil, nil
}

func (f *fakeRepository) DeleteSession(ctx context.Context, userID, sessionID string) (int64, error) {
	return 0, nil
}

func (f *fakeRepository) ClearAll(ctx context.Context, userID string) (int64, error) {
	return 0, nil
}

func newTestManager(t *testing.T, backend *fakeBackend, repo *fakeRepository) *Manager {
	t.Helper()
	m, err := NewManager(backend, repo, tools.NewRegistry(), model.ConversationConfig{
		HistoryLimit:     8,
		HistoryMaxLimit:  50,
		MaxMessageLength: 2000,
	})
	require.NoError(t, err)
	return m
}

func TestProcess_GreetingSkipsBackend(t *testing.T) {
	backend := &fakeBackend{}
	m := newTestManager(t, backend, &fakeRepository{})

	result := m.Process(context.Background(), "u1", "s1", "Hi there!")

	assert.Equal(t, model.StatusSuccess, result.Status)
	assert.Equal(t, model.ToolGreetingHandler, result.ToolUsed)
	assert.Contains(t, result.Message, "CredNest AI")
	assert.Equal(t, 0, backend.calls)
}

func TestProcess_OffTopicSkipsBackend(t *testing.T) {
	backend := &fakeBackend{}
	m := newTestManager(t, backend, &fakeRepository{})

	result := m.Process(context.Background(), "u1", "s1", "What's the weather today in Mumbai city area?")

	assert.Equal(t, model.StatusSuccess, result.Status)
	assert.Equal(t, model.ToolTopicFilter, result.ToolUsed)
	assert.Contains(t, result.Message, "financial topics only")
	assert.Equal(t, 0, backend.calls)
}

func TestProcess_PlainCompletion(t *testing.T) {
	backend := &fakeBackend{out: schema.AssistantMessage("Compare rates across banks first.", nil)}
	m := newTestManager(t, backend, &fakeRepository{})

	result := m.Process(context.Background(), "u1", "s1", "Compare home loan rates across banks for me today")

	assert.Equal(t, model.StatusSuccess, result.Status)
	assert.Equal(t, model.ToolAIChat, result.ToolUsed)
	assert.Equal(t, "Compare rates across banks first.", result.Message)
	assert.Equal(t, 1, backend.calls)
	assert.Equal(t, 0, result.ToolParameters["history_length"])
}

func TestProcess_BackendErrorReturnsApology(t *testing.T) {
	backend := &fakeBackend{err: errors.New("quota exceeded")}
	m := newTestManager(t, backend, &fakeRepository{})

	result := m.Process(context.Background(), "u1", "s1", "Am I eligible for a personal loan of 300000?")

	assert.Equal(t, model.StatusError, result.Status)
	assert.Equal(t, apologyMessage, result.Message)
	assert.Equal(t, "quota exceeded", result.Err)
	assert.Empty(t, result.ToolUsed)
}

func TestProcess_ToolCallExecuted(t *testing.T) {
	backend := &fakeBackend{out: &schema.Message{
		Role: schema.Assistant,
		ToolCalls: []schema.ToolCall{{
			ID: "call-1",
			Function: schema.FunctionCall{
				Name:      "calculate_emi",
				Arguments: `{"loan_amount": 500000, "interest_rate": 10, "tenure_months": 60}`,
			},
		}},
	}}
	m := newTestManager(t, backend, &fakeRepository{})

	result := m.Process(context.Background(), "u1", "s1", "Calculate the EMI for a 500000 loan at 10% over 60 months")

	require.Equal(t, model.StatusSuccess, result.Status)
	assert.Equal(t, "calculate_emi", result.ToolUsed)
	assert.Contains(t, result.Message, "EMI Calculation")
	assert.NotNil(t, result.Data)
	assert.Equal(t, float64(500000), result.ToolParameters["loan_amount"])
}

func TestProcess_ToolCallFailureReturnsApology(t *testing.T) {
	backend := &fakeBackend{out: &schema.Message{
		Role: schema.Assistant,
		ToolCalls: []schema.ToolCall{{
			ID: "call-1",
			Function: schema.FunctionCall{
				Name:      "calculate_emi",
				Arguments: `{"loan_amount": -1}`,
			},
		}},
	}}
	m := newTestManager(t, backend, &fakeRepository{})

	result := m.Process(context.Background(), "u1", "s1", "Calculate the EMI for my loan amount please now")

	assert.Equal(t, model.StatusError, result.Status)
	assert.Equal(t, apologyMessage, result.Message)
	assert.NotEmpty(t, result.Err)
}

func TestProcess_HistoryFlowsIntoPrompt(t *testing.T) {
	backend := &fakeBackend{out: schema.AssistantMessage("As we discussed, yes.", nil)}
	repo := &fakeRepository{turns: []*model.Turn{
		{Message: "What is CIBIL?", Response: "A credit score."},
		{Message: "How do I improve it?", Response: "Pay on time."},
	}}
	m := newTestManager(t, backend, repo)

	result := m.Process(context.Background(), "u1", "s1", "Does that also affect my loan eligibility next year?")

	require.Equal(t, model.StatusSuccess, result.Status)
	// system + 2 history pairs + current
	require.Len(t, backend.input, 6)
	assert.Equal(t, schema.System, backend.input[0].Role)
	assert.Equal(t, "What is CIBIL?", backend.input[1].Content)
	assert.Equal(t, 2, result.ToolParameters["history_length"])
}

func TestProcess_HistoryReadFailureDegradesToEmpty(t *testing.T) {
	backend := &fakeBackend{out: schema.AssistantMessage("Sure, here is how EMIs work.", nil)}
	repo := &fakeRepository{recentErr: errors.New("connection refused")}
	m := newTestManager(t, backend, repo)

	result := m.Process(context.Background(), "u1", "s1", "Explain how EMI interest is calculated please")

	assert.Equal(t, model.StatusSuccess, result.Status)
	assert.Equal(t, 1, backend.calls)
	require.Len(t, backend.input, 2)
}

func TestNewManager_NilDependencies(t *testing.T) {
	registry := tools.NewRegistry()
	conv := model.ConversationConfig{}

	_, err := NewManager(nil, &fakeRepository{}, registry, conv)
	assert.Error(t, err)

	_, err = NewManager(&fakeBackend{}, nil, registry, conv)
	assert.Error(t, err)

	_, err = NewManager(&fakeBackend{}, &fakeRepository{}, nil, conv)
	assert.Error(t, err)
}
