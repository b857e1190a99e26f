package server

import (
	"net/http"
	"strconv"

	"github.com/jonathan/career-pilot/internal/roadmap"
	"github.com/jonathan/career-pilot/internal/types"
)

// displaySubtaskLimit caps subtasks per task in compact responses.
const displaySubtaskLimit = 5

// toggleRequest is the body of POST /profiles/{id}/roadmap/toggle.
type toggleRequest struct {
	TaskID    string `json:"taskId" validate:"required"`
	SubtaskID string `json:"subtaskId" validate:"required"`
}

// roadmapResponse is the common shape of roadmap endpoint responses.
type roadmapResponse struct {
	Tasks      []types.RoadmapItem `json:"tasks"`
	Cached     bool                `json:"cached"`
	Progress   int                 `json:"progress"`
	Level      int                 `json:"level"`
	LevelTitle string              `json:"levelTitle"`
}

// roadmapProfile loads the profile and checks it can carry a roadmap.
func (s *Server) roadmapProfile(w http.ResponseWriter, r *http.Request) (types.UserProfile, bool) {
	p, ok := s.store.Get(r.PathValue("id"))
	if !ok {
		s.errorResponse(w, http.StatusNotFound, "profile not found")
		return types.UserProfile{}, false
	}
	if p.Type != types.ProfileStartFresh {
		s.errorResponse(w, http.StatusBadRequest, "roadmaps are only available for startFresh profiles")
		return types.UserProfile{}, false
	}
	return p, true
}

// generationAttrs extracts the roadmap-generation inputs from the profile.
func generationAttrs(p types.UserProfile) roadmap.GenerationAttrs {
	sf := p.StartFresh
	return roadmap.GenerationAttrs{
		EducationLevel:  sf.EducationLevel,
		Interests:       sf.Interests,
		Strengths:       sf.Strengths,
		WorkPreferences: sf.WorkPreferences,
		BroadField:      sf.BroadField,
		SpecificRole:    sf.SpecificRole,
	}
}

// boardFor builds the roadmap board from the profile's stored state.
func boardFor(p types.UserProfile) *roadmap.Board {
	return &roadmap.Board{
		Tasks:             p.StartFresh.RoadmapItems,
		ArchivedCompleted: p.StartFresh.ArchivedCompleted,
		ArchivedTotal:     p.StartFresh.ArchivedTotal,
	}
}

// saveBoard writes the board back onto the profile.
func (s *Server) saveBoard(id string, b *roadmap.Board) error {
	_, err := s.store.Update(id, types.ProfileUpdate{
		StartFresh: &types.StartFreshUpdate{
			RoadmapItems:      &b.Tasks,
			ArchivedCompleted: &b.ArchivedCompleted,
			ArchivedTotal:     &b.ArchivedTotal,
		},
	})
	return err
}

func (s *Server) boardResponse(b *roadmap.Board, cached bool, compact bool) roadmapResponse {
	tasks := b.Tasks
	if compact {
		tasks = roadmap.TruncateForDisplay(tasks, displaySubtaskLimit)
	}
	if tasks == nil {
		tasks = []types.RoadmapItem{}
	}
	completed := b.ArchivedCompleted + b.CompletedSubtasks()
	return roadmapResponse{
		Tasks:      tasks,
		Cached:     cached,
		Progress:   b.Progress(),
		Level:      roadmap.Level(completed),
		LevelTitle: roadmap.LevelTitle(completed),
	}
}

// handleGenerateRoadmap returns the roadmap for the profile's current
// attributes, generating via the model only when the attributes changed since
// the last generation.
func (s *Server) handleGenerateRoadmap(w http.ResponseWriter, r *http.Request) {
	if s.planner == nil {
		s.failWith(w, &ErrMissingAPIKey{})
		return
	}
	p, ok := s.roadmapProfile(w, r)
	if !ok {
		return
	}

	attrs := generationAttrs(p)
	board := boardFor(p)

	tasks, cached, err := s.planner.Tasks(r.Context(), attrs)
	if err != nil {
		s.failWith(w, err)
		return
	}

	if cached {
		// Same attributes as last time; the cached list already carries
		// toggle state.
		board.Tasks = tasks
	} else if len(board.Tasks) > 0 {
		board.Replace(tasks)
		s.planner.Save(attrs, board.Tasks)
	} else {
		board.Tasks = tasks
	}

	if err := s.saveBoard(p.ID, board); err != nil {
		s.failWith(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.boardResponse(board, cached, false))
}

// handleGetRoadmap returns the stored roadmap without generating. Pass
// compact=1 to cap subtasks per task for display.
func (s *Server) handleGetRoadmap(w http.ResponseWriter, r *http.Request) {
	p, ok := s.roadmapProfile(w, r)
	if !ok {
		return
	}
	compact, _ := strconv.ParseBool(r.URL.Query().Get("compact"))
	s.jsonResponse(w, http.StatusOK, s.boardResponse(boardFor(p), true, compact))
}

// handleToggleSubtask flips one subtask and reports the resulting events.
func (s *Server) handleToggleSubtask(w http.ResponseWriter, r *http.Request) {
	var req toggleRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.failWith(w, err)
		return
	}
	p, ok := s.roadmapProfile(w, r)
	if !ok {
		return
	}

	board := boardFor(p)
	result, err := board.Toggle(req.TaskID, req.SubtaskID)
	if err != nil {
		s.failWith(w, err)
		return
	}

	if err := s.saveBoard(p.ID, board); err != nil {
		s.failWith(w, err)
		return
	}
	if s.planner != nil {
		// Keep the cached roadmap in sync so a later generate call with the
		// same attributes returns the toggled state.
		s.planner.Save(generationAttrs(p), board.Tasks)
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"result": result,
		"tasks":  board.Tasks,
	})
}

// handleMoreTasks archives the current roadmap and generates a fresh one.
func (s *Server) handleMoreTasks(w http.ResponseWriter, r *http.Request) {
	if s.planner == nil {
		s.failWith(w, &ErrMissingAPIKey{})
		return
	}
	p, ok := s.roadmapProfile(w, r)
	if !ok {
		return
	}

	attrs := generationAttrs(p)
	tasks, err := s.planner.Regenerate(r.Context(), attrs)
	if err != nil {
		s.failWith(w, err)
		return
	}

	board := boardFor(p)
	board.Replace(tasks)
	s.planner.Save(attrs, board.Tasks)

	if err := s.saveBoard(p.ID, board); err != nil {
		s.failWith(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.boardResponse(board, false, false))
}
