package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exam-prep-assistant/internal/chat"
	"exam-prep-assistant/internal/checkpoint/memory"
	"exam-prep-assistant/internal/router"
	"exam-prep-assistant/internal/workflow"
	"exam-prep-assistant/pkg/eventbus"
	"exam-prep-assistant/pkg/llmprovider"
	pkgLog "exam-prep-assistant/pkg/log"
)

// chunkingProvider answers every call with text, streamed in fixed-size pieces.
type chunkingProvider struct {
	text  string
	size  int
	calls int
}

func (p *chunkingProvider) GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error) {
	return p.StreamContent(ctx, req, func(string) {})
}

func (p *chunkingProvider) StreamContent(ctx context.Context, req *llmprovider.Request, onChunk func(string)) (*llmprovider.Response, error) {
	p.calls++
	for rest := p.text; rest != ""; {
		n := p.size
		if n > len(rest) {
			n = len(rest)
		}
		onChunk(rest[:n])
		rest = rest[n:]
	}
	return &llmprovider.Response{Content: llmprovider.Message{
		Role:  llmprovider.RoleModel,
		Parts: []llmprovider.Part{{Text: p.text}},
	}}, nil
}

func (p *chunkingProvider) Name() string  { return "chunking" }
func (p *chunkingProvider) Model() string { return "chunking-1" }

func newWorkflowUseCase(t *testing.T, llm llmprovider.Provider) chat.UseCase {
	t.Helper()
	store := memory.NewStore()
	engine, err := workflow.New(context.Background(), workflow.Deps{
		LLM:    llm,
		Router: router.New(pkgLog.NewNop()),
		Store:  store,
		Logger: pkgLog.NewNop(),
	})
	require.NoError(t, err)
	return New(pkgLog.NewNop(), engine, store, eventbus.NewMemory(), "")
}

func TestStreamTurn_WorkflowQuizSequence(t *testing.T) {
	quiz := `{"topic": "Indian National Congress", "questions": [{"question": "Founded in?", "options": ["1885", "1905"], "answer": "1885"}]}`
	llm := &chunkingProvider{text: quiz, size: 16}
	uc := newWorkflowUseCase(t, llm)

	var got []chat.StreamEvent
	err := uc.StreamTurn(context.Background(), chat.StreamInput{
		ThreadID: "quiz-thread",
		Query:    "Give me a quiz on the Indian National Congress",
	}, collect(&got))
	require.NoError(t, err)
	assert.Equal(t, 1, llm.calls)

	// Quiz turns stream the raw JSON as tokens, then repeat it whole as quiz_json.
	require.Greater(t, len(got), 2)
	var tokens strings.Builder
	quizAt := -1
	for i, e := range got {
		switch e.Type {
		case chat.EventToken:
			assert.Equal(t, -1, quizAt, "token after quiz_json at %d", i)
			tokens.WriteString(e.Data)
		case chat.EventQuizJSON:
			assert.Equal(t, -1, quizAt, "second quiz_json at %d", i)
			quizAt = i
		case chat.EventStreamEnd:
			assert.Equal(t, len(got)-1, i)
		default:
			t.Fatalf("unexpected event %q at %d", e.Type, i)
		}
	}

	require.Equal(t, len(got)-2, quizAt)
	assert.Equal(t, quiz, got[quizAt].Data)
	assert.Equal(t, quiz, tokens.String())
	assert.Equal(t, chat.EventStreamEnd, got[len(got)-1].Type)

	conv, err := uc.GetThread(context.Background(), "quiz-thread")
	require.NoError(t, err)
	require.Len(t, conv.Messages, 2)
	assert.Equal(t, quiz, conv.Messages[1].Content)
}

func TestStreamTurn_WorkflowNotesHasNoQuizEvent(t *testing.T) {
	llm := &chunkingProvider{text: "# Photosynthesis\n- light reaction", size: 8}
	uc := newWorkflowUseCase(t, llm)

	var got []chat.StreamEvent
	err := uc.StreamTurn(context.Background(), chat.StreamInput{
		ThreadID: "notes-thread",
		Query:    "Give me notes on photosynthesis",
	}, collect(&got))
	require.NoError(t, err)

	for _, e := range got[:len(got)-1] {
		assert.Equal(t, chat.EventToken, e.Type)
	}
	assert.Equal(t, chat.EventStreamEnd, got[len(got)-1].Type)
}
