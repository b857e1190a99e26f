package server

import (
	"net/http"

	"github.com/jonathan/career-pilot/internal/jobs"
)

// jobSearchRequest is the body of POST /jobs/search.
type jobSearchRequest struct {
	JobTitle    string `json:"jobTitle" validate:"required,max=200"`
	Location    string `json:"location,omitempty" validate:"max=200"`
	CountryCode string `json:"countryCode,omitempty" validate:"omitempty,len=2"`
}

// handleJobSearch proxies a search to the upstream job listings API.
func (s *Server) handleJobSearch(w http.ResponseWriter, r *http.Request) {
	var req jobSearchRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.failWith(w, err)
		return
	}

	listings, err := s.jobs.Search(r.Context(), jobs.Query{
		JobTitle:    req.JobTitle,
		Location:    req.Location,
		CountryCode: req.CountryCode,
	})
	if err != nil {
		s.failWith(w, err)
		return
	}
	if listings == nil {
		listings = []jobs.Listing{}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"jobs": listings})
}
