package server

import (
	"net/http"

	"github.com/jonathan/career-pilot/internal/suggest"
)

// suggestRequest is the body of POST /suggest/fields. With SelectedField set
// the response is scoped to roles within that field.
type suggestRequest struct {
	EducationLevel  string   `json:"educationLevel,omitempty"`
	Interests       []string `json:"interests,omitempty"`
	Strengths       []string `json:"strengths,omitempty"`
	WorkPreferences []string `json:"workPreferences,omitempty"`
	SelectedField   string   `json:"selectedField,omitempty"`
}

// handleSuggest returns field and role suggestions for the given profile
// context.
func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	if s.suggester == nil {
		s.failWith(w, &ErrMissingAPIKey{})
		return
	}

	var req suggestRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.failWith(w, err)
		return
	}

	input := suggest.Input{
		EducationLevel:  req.EducationLevel,
		Interests:       req.Interests,
		Strengths:       req.Strengths,
		WorkPreferences: req.WorkPreferences,
		SelectedField:   req.SelectedField,
	}
	if ok, _ := suggest.ShouldFetch(input, ""); !ok {
		s.failWith(w, &ErrValidation{Field: "body", Message: "at least one profile attribute is required"})
		return
	}

	result, err := s.suggester.Suggest(r.Context(), input)
	if err != nil {
		s.failWith(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}
