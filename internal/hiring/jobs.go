// Package hiring holds the job lifecycle and candidate application workflows.
package hiring

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/rafael/talentmatch/internal/db"
)

// JobStore is the persistence surface the job lifecycle needs
type JobStore interface {
	ListJobs(ctx context.Context) ([]db.Job, error)
	GetJob(ctx context.Context, id uuid.UUID) (*db.Job, error)
	CreateJob(ctx context.Context, input db.JobCreateInput) (*db.Job, error)
	UpdateJob(ctx context.Context, id uuid.UUID, input db.JobUpdateInput) (*db.Job, error)
	DeleteJob(ctx context.Context, id uuid.UUID) error
	SetJobStatus(ctx context.Context, id uuid.UUID, status db.JobStatus) error
	CountCandidates(ctx context.Context, jobID uuid.UUID) (int, error)
}

// JobService manages the job posting lifecycle
type JobService struct {
	store JobStore
}

// NewJobService creates a job lifecycle service
func NewJobService(store JobStore) *JobService {
	return &JobService{store: store}
}

// List returns all jobs, newest first
func (s *JobService) List(ctx context.Context) ([]db.Job, error) {
	return s.store.ListJobs(ctx)
}

// Get returns one job, or nil when it does not exist
func (s *JobService) Get(ctx context.Context, id uuid.UUID) (*db.Job, error) {
	return s.store.GetJob(ctx, id)
}

// Create publishes a new job posting. Requirement lists are de-duplicated at
// entry, preserving order; status defaults to active.
func (s *JobService) Create(ctx context.Context, input db.JobCreateInput) (*db.Job, error) {
	input.TechRequirements = dedupe(input.TechRequirements)
	input.BehavioralRequirements = dedupe(input.BehavioralRequirements)
	if input.Status == "" {
		input.Status = db.JobStatusActive
	}
	return s.store.CreateJob(ctx, input)
}

// Edit applies a partial update to a job posting
func (s *JobService) Edit(ctx context.Context, id uuid.UUID, input db.JobUpdateInput) (*db.Job, error) {
	if input.Requirements != nil {
		input.Requirements.Tech = dedupe(input.Requirements.Tech)
		input.Requirements.Behavioral = dedupe(input.Requirements.Behavioral)
	}
	return s.store.UpdateJob(ctx, id, input)
}

// Delete removes a job posting. A job with applicants cannot be deleted;
// the refusal happens before any delete reaches the store.
func (s *JobService) Delete(ctx context.Context, id uuid.UUID) error {
	count, err := s.store.CountCandidates(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return &ConflictError{Message: "cannot delete a job that already has applicants"}
	}
	return s.store.DeleteJob(ctx, id)
}

// SetStatus persists an explicit status as a single-field update
func (s *JobService) SetStatus(ctx context.Context, id uuid.UUID, status db.JobStatus) error {
	return s.store.SetJobStatus(ctx, id, status)
}

// ToggleStatus flips a job between active and closed with a single write
// and returns the persisted status.
func (s *JobService) ToggleStatus(ctx context.Context, id uuid.UUID) (db.JobStatus, error) {
	job, err := s.store.GetJob(ctx, id)
	if err != nil {
		return "", err
	}
	if job == nil {
		return "", &db.NotFoundError{Resource: "job", ID: id}
	}

	next := job.Status.Toggled()
	if err := s.store.SetJobStatus(ctx, id, next); err != nil {
		return "", err
	}
	return next, nil
}

// dedupe suppresses duplicate entries while preserving order; blank entries
// are dropped.
func dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	var out []string
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
