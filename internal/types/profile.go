// Package types defines the shared domain model for the career guidance service.
package types

import (
	"fmt"

	"github.com/google/uuid"
)

// ProfileType discriminates the user profile variants.
type ProfileType string

// Profile variant constants
const (
	// ProfileStartFresh is a profile built through the guided questionnaire
	ProfileStartFresh ProfileType = "startFresh"
	// ProfileResume is a profile built from an uploaded resume
	ProfileResume ProfileType = "resume"
	// ProfileGeneric is a minimal fallback profile with base fields only
	ProfileGeneric ProfileType = "generic"
)

// UserProfile is a tagged union over the three profile variants. Type selects
// the variant; exactly the matching detail pointer is non-nil (none for
// generic). Consumers must switch on Type rather than probing detail pointers.
type UserProfile struct {
	ID                     string        `json:"id"`
	Name                   string        `json:"name"`
	Type                   ProfileType   `json:"type"`
	HasCompletedOnboarding bool          `json:"hasCompletedOnboarding"`
	ChatHistory            []ChatMessage `json:"chatHistory"`

	StartFresh *StartFreshDetails `json:"startFresh,omitempty"`
	Resume     *ResumeDetails     `json:"resume,omitempty"`
}

// StartFreshDetails holds the questionnaire-driven fields of a startFresh
// profile. The first six fields are the roadmap-generation inputs and form the
// profile hash.
type StartFreshDetails struct {
	EducationLevel  string   `json:"educationLevel,omitempty"`
	Interests       []string `json:"interests,omitempty"`
	Strengths       []string `json:"strengths,omitempty"`
	WorkPreferences []string `json:"workPreferences,omitempty"`
	BroadField      string   `json:"broadField,omitempty"`
	SpecificRole    string   `json:"specificRole,omitempty"`

	// LastStep records the onboarding position so the questionnaire can resume.
	LastStep int `json:"lastStep,omitempty"`

	RoadmapItems []RoadmapItem `json:"roadmapItems,omitempty"`

	// Subtask counts archived from previous roadmaps when the task list is
	// replaced.
	ArchivedCompleted int `json:"archivedCompleted,omitempty"`
	ArchivedTotal     int `json:"archivedTotal,omitempty"`
}

// ResumeDetails holds the upload-driven fields of a resume profile.
// Analysis is nil until an upload has fully succeeded.
type ResumeDetails struct {
	ResumeFileName string          `json:"resumeFileName,omitempty"`
	Analysis       *ResumeAnalysis `json:"analysis,omitempty"`
	Suggestions    *SuggestionSet  `json:"suggestions,omitempty"`
}

// NewStartFreshProfile creates a startFresh profile with a fresh id.
func NewStartFreshProfile(name string) UserProfile {
	return UserProfile{
		ID:         uuid.New().String(),
		Name:       name,
		Type:       ProfileStartFresh,
		StartFresh: &StartFreshDetails{},
	}
}

// NewResumeProfile creates a resume profile with a fresh id.
func NewResumeProfile(name string) UserProfile {
	return UserProfile{
		ID:     uuid.New().String(),
		Name:   name,
		Type:   ProfileResume,
		Resume: &ResumeDetails{},
	}
}

// NewGenericProfile creates a base-only profile. Used as the chat fallback
// when no stored profile is available.
func NewGenericProfile(name string) UserProfile {
	if name == "" {
		name = "User"
	}
	return UserProfile{
		ID:   uuid.New().String(),
		Name: name,
		Type: ProfileGeneric,
	}
}

// Clone returns a copy that shares no mutable state with the receiver. Store
// reads hand out clones so callers can toggle subtasks or append to slices
// without racing against, or silently mutating, the stored profile.
func (p UserProfile) Clone() UserProfile {
	out := p
	out.ChatHistory = append([]ChatMessage(nil), p.ChatHistory...)
	if p.StartFresh != nil {
		sf := *p.StartFresh
		sf.Interests = append([]string(nil), p.StartFresh.Interests...)
		sf.Strengths = append([]string(nil), p.StartFresh.Strengths...)
		sf.WorkPreferences = append([]string(nil), p.StartFresh.WorkPreferences...)
		sf.RoadmapItems = CloneRoadmapItems(p.StartFresh.RoadmapItems)
		out.StartFresh = &sf
	}
	if p.Resume != nil {
		rd := *p.Resume
		out.Resume = &rd
	}
	return out
}

// Validate checks the variant invariant: the detail payload present must match
// Type, and no foreign payload may be set.
func (p *UserProfile) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("profile id is required")
	}
	switch p.Type {
	case ProfileStartFresh:
		if p.StartFresh == nil {
			return fmt.Errorf("startFresh profile %s is missing its details", p.ID)
		}
		if p.Resume != nil {
			return fmt.Errorf("startFresh profile %s carries resume details", p.ID)
		}
	case ProfileResume:
		if p.Resume == nil {
			return fmt.Errorf("resume profile %s is missing its details", p.ID)
		}
		if p.StartFresh != nil {
			return fmt.Errorf("resume profile %s carries startFresh details", p.ID)
		}
	case ProfileGeneric:
		if p.StartFresh != nil || p.Resume != nil {
			return fmt.Errorf("generic profile %s carries variant details", p.ID)
		}
	default:
		return fmt.Errorf("unknown profile type %q", p.Type)
	}
	return nil
}

// ProfileUpdate carries a partial profile mutation. Nil fields are left
// untouched by the merge; chat history is append-only and updated separately.
type ProfileUpdate struct {
	Name                   *string
	HasCompletedOnboarding *bool
	StartFresh             *StartFreshUpdate
	Resume                 *ResumeUpdate
}

// StartFreshUpdate carries partial updates to startFresh details.
type StartFreshUpdate struct {
	EducationLevel    *string
	Interests         *[]string
	Strengths         *[]string
	WorkPreferences   *[]string
	BroadField        *string
	SpecificRole      *string
	LastStep          *int
	RoadmapItems      *[]RoadmapItem
	ArchivedCompleted *int
	ArchivedTotal     *int
}

// ResumeUpdate carries partial updates to resume details.
type ResumeUpdate struct {
	ResumeFileName *string
	Analysis       *ResumeAnalysis
	Suggestions    *SuggestionSet
}

// Apply merges the update into the profile. Updates addressed at a variant the
// profile does not have are rejected so a merge can never break the union
// invariant.
func (p *UserProfile) Apply(upd ProfileUpdate) error {
	if upd.StartFresh != nil && p.Type != ProfileStartFresh {
		return fmt.Errorf("cannot apply startFresh update to %s profile", p.Type)
	}
	if upd.Resume != nil && p.Type != ProfileResume {
		return fmt.Errorf("cannot apply resume update to %s profile", p.Type)
	}

	if upd.Name != nil {
		p.Name = *upd.Name
	}
	if upd.HasCompletedOnboarding != nil {
		p.HasCompletedOnboarding = *upd.HasCompletedOnboarding
	}

	if upd.StartFresh != nil {
		sf := p.StartFresh
		u := upd.StartFresh
		if u.EducationLevel != nil {
			sf.EducationLevel = *u.EducationLevel
		}
		if u.Interests != nil {
			sf.Interests = *u.Interests
		}
		if u.Strengths != nil {
			sf.Strengths = *u.Strengths
		}
		if u.WorkPreferences != nil {
			sf.WorkPreferences = *u.WorkPreferences
		}
		if u.BroadField != nil {
			sf.BroadField = *u.BroadField
		}
		if u.SpecificRole != nil {
			sf.SpecificRole = *u.SpecificRole
		}
		if u.LastStep != nil {
			sf.LastStep = *u.LastStep
		}
		if u.RoadmapItems != nil {
			sf.RoadmapItems = *u.RoadmapItems
		}
		if u.ArchivedCompleted != nil {
			sf.ArchivedCompleted = *u.ArchivedCompleted
		}
		if u.ArchivedTotal != nil {
			sf.ArchivedTotal = *u.ArchivedTotal
		}
	}

	if upd.Resume != nil {
		rd := p.Resume
		u := upd.Resume
		if u.ResumeFileName != nil {
			rd.ResumeFileName = *u.ResumeFileName
		}
		if u.Analysis != nil {
			rd.Analysis = u.Analysis
		}
		if u.Suggestions != nil {
			rd.Suggestions = u.Suggestions
		}
	}

	return nil
}
