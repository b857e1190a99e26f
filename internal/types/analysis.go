package types

import "fmt"

// SkillShare is one slice of the top-skills breakdown. Values are percentages
// and must sum to 100 across the set.
type SkillShare struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Color string `json:"color"`
}

// ResumeMetric is one axis of the five-metric radar evaluation.
type ResumeMetric struct {
	Subject  string `json:"subject"`
	Score    int    `json:"A"`
	FullMark int    `json:"fullMark"`
}

// Suggestion is a single titled recommendation with a short rationale.
type Suggestion struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// SuggestionSet groups the four suggestion categories returned by resume
// analysis, nine items each.
type SuggestionSet struct {
	SkillsToLearn   []Suggestion `json:"skillsToLearn"`
	RelevantCourses []Suggestion `json:"relevantCourses"`
	ProjectIdeas    []Suggestion `json:"projectIdeas"`
	Certifications  []Suggestion `json:"certifications"`
}

// ResumeAnalysis is the structured output of the resume analysis pipeline.
type ResumeAnalysis struct {
	ATSScore         int            `json:"atsScore"`
	JobTitle         string         `json:"jobTitle"`
	Location         string         `json:"location"`
	CountryCode      string         `json:"countryCode"`
	TopSkills        []SkillShare   `json:"topSkills"`
	DetailedAnalysis []string       `json:"detailedAnalysis"`
	ResumeMetrics    []ResumeMetric `json:"resumeMetrics"`
	Suggestions      SuggestionSet  `json:"suggestions"`
}

// TopSkillsTotal sums the top-skill percentages.
func (a *ResumeAnalysis) TopSkillsTotal() int {
	total := 0
	for _, s := range a.TopSkills {
		total += s.Value
	}
	return total
}

// Validate checks the analysis invariants the prompt demands: an ATS score in
// range and top-skill percentages summing to exactly 100.
func (a *ResumeAnalysis) Validate() error {
	if a.ATSScore < 0 || a.ATSScore > 100 {
		return fmt.Errorf("atsScore %d is out of range", a.ATSScore)
	}
	if len(a.TopSkills) > 0 {
		if total := a.TopSkillsTotal(); total != 100 {
			return fmt.Errorf("topSkills percentages sum to %d, want 100", total)
		}
	}
	return nil
}
