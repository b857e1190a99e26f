package server

import (
	"net/http"

	"github.com/jonathan/career-pilot/internal/types"
)

// createProfileRequest is the body of POST /profiles.
type createProfileRequest struct {
	Name string `json:"name" validate:"required,max=100"`
	Type string `json:"type" validate:"required,oneof=startFresh resume generic"`
}

// updateProfileRequest is the body of PATCH /profiles/{id}. Absent fields are
// left untouched.
type updateProfileRequest struct {
	Name                   *string                  `json:"name,omitempty"`
	HasCompletedOnboarding *bool                    `json:"hasCompletedOnboarding,omitempty"`
	StartFresh             *types.StartFreshUpdate  `json:"startFresh,omitempty"`
	Resume                 *types.ResumeUpdate      `json:"resume,omitempty"`
}

// handleCreateProfile creates a profile of the requested variant and makes it
// the current profile.
func (s *Server) handleCreateProfile(w http.ResponseWriter, r *http.Request) {
	var req createProfileRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.failWith(w, err)
		return
	}

	var p types.UserProfile
	switch types.ProfileType(req.Type) {
	case types.ProfileStartFresh:
		p = types.NewStartFreshProfile(req.Name)
	case types.ProfileResume:
		p = types.NewResumeProfile(req.Name)
	default:
		p = types.NewGenericProfile(req.Name)
	}

	if err := s.store.Add(p); err != nil {
		s.failWith(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, p)
}

// handleListProfiles returns all stored profiles.
func (s *Server) handleListProfiles(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{"users": s.store.List()})
}

// handleCurrentProfile returns the active profile.
func (s *Server) handleCurrentProfile(w http.ResponseWriter, _ *http.Request) {
	p, ok := s.store.Current()
	if !ok {
		s.errorResponse(w, http.StatusNotFound, "no profile in session")
		return
	}
	s.jsonResponse(w, http.StatusOK, p)
}

// handleGetProfile returns one profile by id.
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	p, ok := s.store.Get(r.PathValue("id"))
	if !ok {
		s.errorResponse(w, http.StatusNotFound, "profile not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, p)
}

// handleUpdateProfile merges a partial update into the profile.
func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.failWith(w, err)
		return
	}

	updated, err := s.store.Update(r.PathValue("id"), types.ProfileUpdate{
		Name:                   req.Name,
		HasCompletedOnboarding: req.HasCompletedOnboarding,
		StartFresh:             req.StartFresh,
		Resume:                 req.Resume,
	})
	if err != nil {
		s.failWith(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, updated)
}

// handleActivateProfile switches the current profile.
func (s *Server) handleActivateProfile(w http.ResponseWriter, r *http.Request) {
	if err := s.store.SetCurrentByID(r.PathValue("id")); err != nil {
		s.failWith(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleLogout clears the whole session, profiles and cached roadmaps alike.
func (s *Server) handleLogout(w http.ResponseWriter, _ *http.Request) {
	if err := s.store.Clear(); err != nil {
		s.failWith(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
