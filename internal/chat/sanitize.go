package chat

import (
	"regexp"
	"strings"
)

var (
	outgoingPrefix = regexp.MustCompile(`(?i)^(user:|ai:)\s*`)
	leadingJunk    = regexp.MustCompile(`^[\s\-:]+`)
	replyPrefix    = regexp.MustCompile(`(?i)^(ai:|assistant:)\s*`)
)

// CleanOutgoing strips speaker labels and leading punctuation that users (or
// replayed transcripts) sometimes carry into a message.
func CleanOutgoing(text string) string {
	text = strings.TrimSpace(text)
	text = outgoingPrefix.ReplaceAllString(text, "")
	text = leadingJunk.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// CleanReply strips the speaker label the model occasionally prepends to its
// own reply.
func CleanReply(text string) string {
	text = strings.TrimSpace(text)
	text = replyPrefix.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}
