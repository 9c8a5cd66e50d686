package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ListJobs retrieves all job postings, newest first. The applicant count is
// recomputed from the candidates table on every call.
func (db *DB) ListJobs(ctx context.Context) ([]Job, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT j.id, j.title, j.requirements, j.profile, j.valid_until, j.status, j.created_at,
		        COUNT(c.id)
		 FROM jobs j
		 LEFT JOIN candidates c ON c.job_id = j.id
		 GROUP BY j.id
		 ORDER BY j.created_at DESC`,
	)
	if err != nil {
		return nil, storeError("list jobs", "jobs", err)
	}
	defer rows.Close()

	var jobs []Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, *job)
	}
	return jobs, nil
}

// GetJob retrieves a single job posting by ID, or nil if it does not exist
func (db *DB) GetJob(ctx context.Context, id uuid.UUID) (*Job, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT j.id, j.title, j.requirements, j.profile, j.valid_until, j.status, j.created_at,
		        (SELECT COUNT(*) FROM candidates c WHERE c.job_id = j.id)
		 FROM jobs j
		 WHERE j.id = $1`,
		id,
	)
	job, err := scanJob(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, storeError("get job", "jobs", err)
	}
	return job, nil
}

// CreateJob inserts a new job posting. The id and created_at are assigned
// server-side; an unset status defaults to active.
func (db *DB) CreateJob(ctx context.Context, input JobCreateInput) (*Job, error) {
	status := input.Status
	if status == "" {
		status = JobStatusActive
	}

	job := Job{
		Title:                  input.Title,
		Mission:                input.Mission,
		TechRequirements:       input.TechRequirements,
		BehavioralRequirements: input.BehavioralRequirements,
		Culture:                input.Culture,
		ValidUntil:             input.ValidUntil,
		Status:                 status,
	}

	err := db.pool.QueryRow(ctx,
		`INSERT INTO jobs (title, requirements, profile, valid_until, status)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		input.Title,
		PackRequirements(input.TechRequirements, input.BehavioralRequirements),
		PackProfile(input.Mission, input.Culture),
		input.ValidUntil,
		statusToBool(status),
	).Scan(&job.ID, &job.CreatedAt)
	if err != nil {
		return nil, storeError("create job", "jobs", err)
	}
	return &job, nil
}

// UpdateJob applies a partial update; only supplied fields change
func (db *DB) UpdateJob(ctx context.Context, id uuid.UUID, input JobUpdateInput) (*Job, error) {
	var sets []string
	var args []any
	argNum := 1

	addSet := func(column string, value any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argNum))
		args = append(args, value)
		argNum++
	}

	if input.Title != nil {
		addSet("title", *input.Title)
	}
	if input.Requirements != nil {
		addSet("requirements", PackRequirements(input.Requirements.Tech, input.Requirements.Behavioral))
	}
	if input.Profile != nil {
		addSet("profile", PackProfile(input.Profile.Mission, input.Profile.Culture))
	}
	if input.ValidUntil != nil {
		addSet("valid_until", *input.ValidUntil)
	}
	if input.Status != nil {
		addSet("status", statusToBool(*input.Status))
	}

	if len(sets) == 0 {
		return db.GetJob(ctx, id)
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE jobs SET %s WHERE id = $%d", strings.Join(sets, ", "), argNum)

	result, err := db.pool.Exec(ctx, query, args...)
	if err != nil {
		return nil, storeError("update job", "jobs", err)
	}
	if result.RowsAffected() == 0 {
		return nil, &NotFoundError{Resource: "job", ID: id}
	}

	return db.GetJob(ctx, id)
}

// DeleteJob removes a job posting. The applicant-count guard is enforced by
// the caller before this is reached.
func (db *DB) DeleteJob(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return storeError("delete job", "jobs", err)
	}
	if result.RowsAffected() == 0 {
		return &NotFoundError{Resource: "job", ID: id}
	}
	return nil
}

// SetJobStatus persists a status change as a single-field update
func (db *DB) SetJobStatus(ctx context.Context, id uuid.UUID, status JobStatus) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE jobs SET status = $1 WHERE id = $2`,
		statusToBool(status), id,
	)
	if err != nil {
		return storeError("set job status", "jobs", err)
	}
	if result.RowsAffected() == 0 {
		return &NotFoundError{Resource: "job", ID: id}
	}
	return nil
}

// scanJob reads one job row with its packed columns and applicant count
func scanJob(row pgx.Row) (*Job, error) {
	var job Job
	var packedRequirements, packedProfile string
	var active bool

	err := row.Scan(&job.ID, &job.Title, &packedRequirements, &packedProfile,
		&job.ValidUntil, &active, &job.CreatedAt, &job.ApplicantCount)
	if err != nil {
		return nil, err
	}

	job.TechRequirements, job.BehavioralRequirements = UnpackRequirements(packedRequirements)
	job.Mission, job.Culture = UnpackProfile(packedProfile)
	job.Status = statusFromBool(active)
	return &job, nil
}
