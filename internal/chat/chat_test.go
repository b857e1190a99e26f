package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-pilot/internal/llm"
	"github.com/jonathan/career-pilot/internal/types"
)

type fakeLLM struct {
	reply    string
	err      error
	lastSent []llm.Message
}

func (f *fakeLLM) GenerateJSON(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
	return "", errors.New("not implemented")
}

func (f *fakeLLM) GenerateChat(_ context.Context, messages []llm.Message, _ llm.ModelTier) (string, error) {
	f.lastSent = messages
	return f.reply, f.err
}

func (f *fakeLLM) Close() error { return nil }

func TestCleanOutgoing(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"User: hello", "hello"},
		{"AI: hello", "hello"},
		{"  -- : hello", "hello"},
		{"hello", "hello"},
		{"  hello  ", "hello"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CleanOutgoing(tt.in), "input %q", tt.in)
	}
}

func TestCleanReply(t *testing.T) {
	assert.Equal(t, "Sure!", CleanReply("AI: Sure!"))
	assert.Equal(t, "Sure!", CleanReply("Assistant: Sure!"))
	assert.Equal(t, "Sure!", CleanReply("  Sure!  "))
}

func TestBuildMessagesSingleSystemAtHead(t *testing.T) {
	profile := types.NewGenericProfile("Ada")
	history := []types.ChatMessage{
		{Sender: types.SenderUser, Text: "hi"},
		{Sender: types.SenderAI, Text: "hello"},
	}

	messages := BuildMessages(profile, history)
	require.Len(t, messages, 3)
	assert.Equal(t, llm.RoleSystem, messages[0].Role)
	for _, msg := range messages[1:] {
		assert.NotEqual(t, llm.RoleSystem, msg.Role)
	}
	assert.Equal(t, llm.RoleUser, messages[1].Role)
	assert.Equal(t, llm.RoleAssistant, messages[2].Role)
}

func TestBuildMessagesWindowsHistory(t *testing.T) {
	profile := types.NewGenericProfile("Ada")
	var history []types.ChatMessage
	for i := 0; i < 10; i++ {
		history = append(history, types.ChatMessage{
			Sender: types.SenderUser,
			Text:   fmt.Sprintf("message %d", i),
		})
	}

	messages := BuildMessages(profile, history)
	require.Len(t, messages, 7, "system plus the last six messages")
	assert.Equal(t, "message 4", messages[1].Content)
	assert.Equal(t, "message 9", messages[6].Content)
}

func TestBuildMessagesSkipsEmptyAfterSanitizing(t *testing.T) {
	profile := types.NewGenericProfile("Ada")
	history := []types.ChatMessage{
		{Sender: types.SenderUser, Text: "User:   "},
		{Sender: types.SenderUser, Text: "real question"},
	}

	messages := BuildMessages(profile, history)
	require.Len(t, messages, 2)
	assert.Equal(t, "real question", messages[1].Content)
}

func TestSystemPromptUsesStartFreshProfileContext(t *testing.T) {
	profile := types.NewStartFreshProfile("Ada")
	profile.StartFresh.BroadField = "Healthcare"
	profile.StartFresh.Interests = []string{"biology", "people"}

	messages := BuildMessages(profile, nil)
	system := messages[0].Content
	assert.Contains(t, system, "Healthcare")
	assert.Contains(t, system, "biology, people")
	assert.Contains(t, system, "Ada")
}

func TestSystemPromptUsesResumeAnalysisWhenPresent(t *testing.T) {
	profile := types.NewResumeProfile("Grace")
	profile.Resume.Analysis = &types.ResumeAnalysis{ATSScore: 82, JobTitle: "Data Engineer"}

	messages := BuildMessages(profile, nil)
	assert.Contains(t, messages[0].Content, "Resume Analysis Context")
	assert.Contains(t, messages[0].Content, "Data Engineer")

	bare := types.NewResumeProfile("Grace")
	messages = BuildMessages(bare, nil)
	assert.Contains(t, strings.ToLower(messages[0].Content), "not available")
}

func TestReplyCleansModelOutput(t *testing.T) {
	client := NewClient(&fakeLLM{reply: "AI: Here is a plan."})

	reply, err := client.Reply(context.Background(), types.NewGenericProfile(""), nil, "User: help me")
	require.NoError(t, err)
	assert.Equal(t, "Here is a plan.", reply)
}

func TestReplySendsSanitizedUserMessageLast(t *testing.T) {
	fake := &fakeLLM{reply: "ok"}
	client := NewClient(fake)

	_, err := client.Reply(context.Background(), types.NewGenericProfile(""), nil, "User: help me")
	require.NoError(t, err)
	last := fake.lastSent[len(fake.lastSent)-1]
	assert.Equal(t, llm.RoleUser, last.Role)
	assert.Equal(t, "help me", last.Content)
}

func TestReplyCountsNewMessageInsideWindow(t *testing.T) {
	fake := &fakeLLM{reply: "ok"}
	client := NewClient(fake)

	var history []types.ChatMessage
	for i := 0; i < 10; i++ {
		history = append(history, types.ChatMessage{
			Sender: types.SenderUser,
			Text:   fmt.Sprintf("message %d", i),
		})
	}

	_, err := client.Reply(context.Background(), types.NewGenericProfile(""), history, "latest question")
	require.NoError(t, err)
	require.Len(t, fake.lastSent, 7, "system plus six context messages, the new one included")
	assert.Equal(t, "message 5", fake.lastSent[1].Content)
	assert.Equal(t, "latest question", fake.lastSent[6].Content)
}

func TestReplyPropagatesModelError(t *testing.T) {
	client := NewClient(&fakeLLM{err: errors.New("unavailable")})

	_, err := client.Reply(context.Background(), types.NewGenericProfile(""), nil, "hi")
	assert.Error(t, err)
}
