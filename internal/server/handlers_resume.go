package server

import (
	"io"
	"net/http"

	"github.com/jonathan/career-pilot/internal/analysis"
	"github.com/jonathan/career-pilot/internal/types"
)

// handleAnalyzeResume accepts a multipart DOCX upload under the "resume"
// field, runs the analysis pipeline, and stores the result on the target
// profile when one is given.
func (s *Server) handleAnalyzeResume(w http.ResponseWriter, r *http.Request) {
	if s.analyzer == nil {
		s.failWith(w, &ErrMissingAPIKey{})
		return
	}

	// Leave headroom for multipart framing around the 5MB file cap.
	r.Body = http.MaxBytesReader(w, r.Body, analysis.MaxUploadBytes+1<<20)
	if err := r.ParseMultipartForm(analysis.MaxUploadBytes); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid multipart upload")
		return
	}

	file, header, err := r.FormFile("resume")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "missing resume file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "failed to read upload")
		return
	}

	result, err := s.analyzer.Analyze(r.Context(), header.Filename, header.Header.Get("Content-Type"), data)
	if err != nil {
		s.failWith(w, err)
		return
	}

	// Attach the analysis to the requested profile, or the current one when
	// it is a resume profile. Failing to attach does not fail the analysis.
	targetID := r.FormValue("profileId")
	if targetID == "" {
		if current, ok := s.store.Current(); ok && current.Type == types.ProfileResume {
			targetID = current.ID
		}
	}
	if targetID != "" {
		completed := true
		_, err := s.store.Update(targetID, types.ProfileUpdate{
			HasCompletedOnboarding: &completed,
			Resume: &types.ResumeUpdate{
				ResumeFileName: &header.Filename,
				Analysis:       result,
				Suggestions:    &result.Suggestions,
			},
		})
		if err != nil {
			s.failWith(w, err)
			return
		}
	}

	s.jsonResponse(w, http.StatusOK, result)
}
