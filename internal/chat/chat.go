// Package chat drives the career-advisor conversation with the model.
package chat

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/jonathan/career-pilot/internal/llm"
	"github.com/jonathan/career-pilot/internal/prompts"
	"github.com/jonathan/career-pilot/internal/types"
)

// FallbackReply is returned to the user when the model call fails; chat
// errors degrade to a canned message rather than an error response.
const FallbackReply = "Sorry, I'm having trouble responding right now. Please try again in a moment."

// historyWindow is how many trailing messages are replayed to the model.
const historyWindow = 6

// Client answers chat messages in the context of a user profile.
type Client struct {
	llm llm.Client
}

// NewClient creates a chat client over the given LLM client.
func NewClient(llmClient llm.Client) *Client {
	return &Client{llm: llmClient}
}

// Reply sends the user's message, in the profile's context and with the
// recent history replayed, and returns the model's cleaned reply. The new
// message counts inside the history window, so the model never sees more than
// historyWindow non-system messages.
func (c *Client) Reply(ctx context.Context, profile types.UserProfile, history []types.ChatMessage, text string) (string, error) {
	turn := types.ChatMessage{Sender: types.SenderUser, Text: text}
	messages := BuildMessages(profile, append(history[:len(history):len(history)], turn))

	reply, err := c.llm.GenerateChat(ctx, messages, llm.TierAdvanced)
	if err != nil {
		return "", err
	}
	return CleanReply(reply), nil
}

// BuildMessages assembles the model conversation: exactly one system message
// at index 0, rebuilt from the profile's latest state on every call, followed
// by the trailing window of history.
func BuildMessages(profile types.UserProfile, history []types.ChatMessage) []llm.Message {
	messages := []llm.Message{{Role: llm.RoleSystem, Content: systemPrompt(profile)}}

	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}
	for _, msg := range history {
		role := llm.RoleUser
		content := CleanOutgoing(msg.Text)
		if msg.Sender == types.SenderAI {
			role = llm.RoleAssistant
			content = CleanReply(msg.Text)
		}
		if content == "" {
			continue
		}
		messages = append(messages, llm.Message{Role: role, Content: content})
	}
	return messages
}

// systemPrompt picks the advisor persona for the profile variant and folds in
// whatever context the profile carries.
func systemPrompt(profile types.UserProfile) string {
	switch profile.Type {
	case types.ProfileResume:
		base := prompts.MustGet("chat.json", "resume-system")
		block := prompts.MustGet("chat.json", "analysis-context")
		return base + prompts.Format(block, map[string]string{
			"AnalysisContext": analysisContext(profile.Resume),
		})
	case types.ProfileStartFresh:
		base := prompts.MustGet("chat.json", "generic-system")
		block := prompts.MustGet("chat.json", "profile-block")
		sf := profile.StartFresh
		return base + prompts.Format(block, map[string]string{
			"Name":            orNone(profile.Name),
			"EducationLevel":  orNone(sf.EducationLevel),
			"Interests":       joinOrNone(sf.Interests),
			"Strengths":       joinOrNone(sf.Strengths),
			"WorkPreferences": joinOrNone(sf.WorkPreferences),
			"BroadField":      orNone(sf.BroadField),
			"SpecificRole":    orNone(sf.SpecificRole),
		})
	default:
		return prompts.MustGet("chat.json", "generic-system")
	}
}

// analysisContext serializes the resume analysis for the system prompt, or
// notes its absence when the upload has not completed.
func analysisContext(details *types.ResumeDetails) string {
	if details == nil || details.Analysis == nil {
		return "Not available yet; the user has not completed a resume analysis."
	}
	data, err := json.Marshal(details.Analysis)
	if err != nil {
		return "Not available."
	}
	return string(data)
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Not specified"
	}
	return s
}

func joinOrNone(values []string) string {
	if len(values) == 0 {
		return "Not specified"
	}
	return strings.Join(values, ", ")
}
