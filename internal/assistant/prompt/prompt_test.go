package prompt

import (
	"fmt"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crednest/server/internal/assistant/model"
)

func turns(n int) []*model.Turn {
	out := make([]*model.Turn, n)
	for i := range out {
		out[i] = &model.Turn{
			Message:  fmt.Sprintf("question %d", i),
			Response: fmt.Sprintf("answer %d", i),
		}
	}
	return out
}

func TestBuildMessages_Empty(t *testing.T) {
	messages := BuildMessages(SystemPrompt(), nil, "What is an EMI?", 8)

	require.Len(t, messages, 2)
	assert.Equal(t, schema.System, messages[0].Role)
	assert.Equal(t, SystemPrompt(), messages[0].Content)
	assert.Equal(t, schema.User, messages[1].Role)
	assert.Equal(t, "What is an EMI?", messages[1].Content)
}

func TestBuildMessages_AlternatingHistory(t *testing.T) {
	messages := BuildMessages(SystemPrompt(), turns(3), "and then?", 8)

	// system + 3 pairs + current
	require.Len(t, messages, 8)
	assert.Equal(t, schema.System, messages[0].Role)
	for i := 0; i < 3; i++ {
		user := messages[1+i*2]
		asst := messages[2+i*2]
		assert.Equal(t, schema.User, user.Role)
		assert.Equal(t, fmt.Sprintf("question %d", i), user.Content)
		assert.Equal(t, schema.Assistant, asst.Role)
		assert.Equal(t, fmt.Sprintf("answer %d", i), asst.Content)
	}
	assert.Equal(t, schema.User, messages[7].Role)
	assert.Equal(t, "and then?", messages[7].Content)
}

func TestBuildMessages_CapsToNewestTurns(t *testing.T) {
	messages := BuildMessages(SystemPrompt(), turns(20), "current", 8)

	// system + 8 newest pairs + current
	require.Len(t, messages, 18)
	assert.Equal(t, "question 12", messages[1].Content)
	assert.Equal(t, "answer 19", messages[16].Content)
	assert.Equal(t, "current", messages[17].Content)
}

func TestBuildMessages_SingleSystemMessage(t *testing.T) {
	messages := BuildMessages(SystemPrompt(), turns(5), "current", 8)

	systems := 0
	for _, m := range messages {
		if m.Role == schema.System {
			systems++
		}
	}
	assert.Equal(t, 1, systems)
	assert.Equal(t, schema.System, messages[0].Role)
}

func TestBuildMessages_SkipsEmptyTurns(t *testing.T) {
	history := []*model.Turn{
		nil,
		{Message: "", Response: "orphaned"},
		{Message: "real question", Response: "real answer"},
	}
	messages := BuildMessages(SystemPrompt(), history, "current", 8)

	require.Len(t, messages, 4)
	assert.Equal(t, "real question", messages[1].Content)
	assert.Equal(t, "real answer", messages[2].Content)
}

func TestSystemPrompt_Stable(t *testing.T) {
	p := SystemPrompt()
	assert.NotEmpty(t, p)
	assert.Contains(t, p, "CredNest AI")
	assert.Equal(t, p, SystemPrompt())
}
