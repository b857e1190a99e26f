package types

import "time"

// ChatSender identifies the author of a chat message.
type ChatSender string

// Chat sender constants
const (
	SenderUser ChatSender = "user"
	SenderAI   ChatSender = "ai"
)

// ChatMessage is one entry in a profile's chat history. Histories are
// append-only with non-decreasing timestamps.
type ChatMessage struct {
	ID        string     `json:"id"`
	Sender    ChatSender `json:"sender"`
	Text      string     `json:"text"`
	Timestamp time.Time  `json:"timestamp"`
}
