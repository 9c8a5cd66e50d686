package db

import (
	"time"

	"github.com/google/uuid"
)

// JobStatus is the lifecycle state of a job posting
type JobStatus string

// Job status values. The backing column is a boolean (true = active).
const (
	JobStatusActive JobStatus = "active"
	JobStatusClosed JobStatus = "closed"
)

// Toggled returns the opposite status
func (s JobStatus) Toggled() JobStatus {
	if s == JobStatusActive {
		return JobStatusClosed
	}
	return JobStatusActive
}

// Job represents a recruiting requisition
type Job struct {
	ID                     uuid.UUID `json:"id"`
	Title                  string    `json:"title"`
	Mission                string    `json:"mission"`
	TechRequirements       []string  `json:"tech_requirements"`
	BehavioralRequirements []string  `json:"behavioral_requirements"`
	Culture                string    `json:"culture"`
	ValidUntil             time.Time `json:"valid_until"`
	Status                 JobStatus `json:"status"`
	CreatedAt              time.Time `json:"created_at"`

	// ApplicantCount is computed from the candidates table on every read,
	// never stored.
	ApplicantCount int `json:"applicant_count"`
}

// Candidate represents one application against a job
type Candidate struct {
	ID        uuid.UUID `json:"id"`
	JobID     uuid.UUID `json:"job_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	ResumeURL string    `json:"resume_url"`
	AppliedAt time.Time `json:"applied_at"`

	// Analysis fields are jointly present after a successful analysis and
	// jointly absent before it.
	MatchScore         *int     `json:"match_score,omitempty"`
	MatchReasoning     *string  `json:"match_reasoning,omitempty"`
	MissingSkills      []string `json:"missing_skills"`
	InterviewQuestions []string `json:"interview_questions"`
}

// Analyzed reports whether the candidate has been through match analysis
func (c *Candidate) Analyzed() bool {
	return c.MatchScore != nil
}

// JobCreateInput is used when creating a new job posting
type JobCreateInput struct {
	Title                  string
	Mission                string
	TechRequirements       []string
	BehavioralRequirements []string
	Culture                string
	ValidUntil             time.Time
	Status                 JobStatus
}

// RequirementsUpdate replaces the packed requirements column as a pair.
// The two lists share one column, so they are always written together.
type RequirementsUpdate struct {
	Tech       []string
	Behavioral []string
}

// ProfileUpdate replaces the packed mission/culture column as a pair
type ProfileUpdate struct {
	Mission string
	Culture string
}

// JobUpdateInput is a partial update; nil fields are left unchanged
type JobUpdateInput struct {
	Title        *string
	Requirements *RequirementsUpdate
	Profile      *ProfileUpdate
	ValidUntil   *time.Time
	Status       *JobStatus
}

// CandidateCreateInput is used when creating a new candidate application
type CandidateCreateInput struct {
	JobID     uuid.UUID
	Name      string
	Email     string
	Phone     string
	ResumeURL string
}

// CandidateAnalysisInput overwrites the four analysis fields of a candidate
type CandidateAnalysisInput struct {
	Score              int
	Reasoning          string
	MissingSkills      []string
	InterviewQuestions []string
}

func statusToBool(s JobStatus) bool {
	return s != JobStatusClosed
}

func statusFromBool(active bool) JobStatus {
	if active {
		return JobStatusActive
	}
	return JobStatusClosed
}
