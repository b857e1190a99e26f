package server

import (
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/career-pilot/internal/chat"
	"github.com/jonathan/career-pilot/internal/types"
)

// chatRequest is the body of POST /chat. ProfileID is optional; the current
// profile is used when absent, and a bare generic persona when the session is
// empty.
type chatRequest struct {
	ProfileID string `json:"profileId,omitempty"`
	Message   string `json:"message" validate:"required,max=4000"`
}

// chatResponse carries the advisor's reply. Fallback marks replies produced
// locally because the model call failed.
type chatResponse struct {
	Reply    string `json:"reply"`
	Fallback bool   `json:"fallback"`
}

// handleChat answers one chat message. Model failures degrade to a canned
// reply with status 200 so the conversation never hard-errors.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.failWith(w, err)
		return
	}

	p, stored := s.resolveChatProfile(req.ProfileID)

	if s.chat == nil {
		s.failWith(w, &ErrMissingAPIKey{})
		return
	}

	reply, err := s.chat.Reply(r.Context(), p, p.ChatHistory, req.Message)
	fallback := false
	if err != nil {
		log.Printf("chat: model call failed, serving fallback: %v", err)
		reply = chat.FallbackReply
		fallback = true
	}

	if stored {
		now := time.Now().UTC()
		if err := s.store.AppendChat(p.ID, types.ChatMessage{
			ID:        uuid.New().String(),
			Sender:    types.SenderUser,
			Text:      chat.CleanOutgoing(req.Message),
			Timestamp: now,
		}); err != nil {
			log.Printf("chat: failed to record user message: %v", err)
		}
		if err := s.store.AppendChat(p.ID, types.ChatMessage{
			ID:        uuid.New().String(),
			Sender:    types.SenderAI,
			Text:      reply,
			Timestamp: now,
		}); err != nil {
			log.Printf("chat: failed to record reply: %v", err)
		}
	}

	s.jsonResponse(w, http.StatusOK, chatResponse{Reply: reply, Fallback: fallback})
}

// resolveChatProfile picks the profile the conversation runs against and
// reports whether it lives in the store (and so has durable history).
func (s *Server) resolveChatProfile(id string) (types.UserProfile, bool) {
	if id != "" {
		if p, ok := s.store.Get(id); ok {
			return p, true
		}
	}
	if p, ok := s.store.Current(); ok {
		return p, true
	}
	return types.NewGenericProfile(""), false
}
