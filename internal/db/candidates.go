package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const candidateColumns = `id, job_id, full_name, email, phone, resume_url, created_at,
	 match_score, match_reasoning, missing_skills, interview_questions`

// ListCandidates retrieves all applications for a job, newest first
func (db *DB) ListCandidates(ctx context.Context, jobID uuid.UUID) ([]Candidate, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+candidateColumns+`
		 FROM candidates
		 WHERE job_id = $1
		 ORDER BY created_at DESC`,
		jobID,
	)
	if err != nil {
		return nil, storeError("list candidates", "candidates", err)
	}
	defer rows.Close()

	var candidates []Candidate
	for rows.Next() {
		candidate, err := scanCandidate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidates = append(candidates, *candidate)
	}
	return candidates, nil
}

// GetCandidate retrieves one application by ID, or nil if it does not exist
func (db *DB) GetCandidate(ctx context.Context, id uuid.UUID) (*Candidate, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+candidateColumns+` FROM candidates WHERE id = $1`,
		id,
	)
	candidate, err := scanCandidate(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, storeError("get candidate", "candidates", err)
	}
	return candidate, nil
}

// CreateCandidate inserts a new application. The id and created_at are
// assigned server-side; analysis fields start absent.
func (db *DB) CreateCandidate(ctx context.Context, input CandidateCreateInput) (*Candidate, error) {
	candidate := Candidate{
		JobID:     input.JobID,
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		ResumeURL: input.ResumeURL,
	}

	err := db.pool.QueryRow(ctx,
		`INSERT INTO candidates (job_id, full_name, email, phone, resume_url)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		input.JobID, input.Name, input.Email, input.Phone, input.ResumeURL,
	).Scan(&candidate.ID, &candidate.AppliedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgCodeForeignKeyViolation {
			return nil, &NotFoundError{Resource: "job", ID: input.JobID}
		}
		return nil, storeError("create candidate", "candidates", err)
	}
	return &candidate, nil
}

// UpdateCandidateAnalysis overwrites the four analysis fields in one write,
// keeping them jointly present. Re-analysis simply overwrites.
func (db *DB) UpdateCandidateAnalysis(ctx context.Context, id uuid.UUID, input CandidateAnalysisInput) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE candidates
		 SET match_score = $1, match_reasoning = $2, missing_skills = $3, interview_questions = $4
		 WHERE id = $5`,
		input.Score, input.Reasoning, PackList(input.MissingSkills), PackList(input.InterviewQuestions), id,
	)
	if err != nil {
		return storeError("update candidate analysis", "candidates", err)
	}
	if result.RowsAffected() == 0 {
		return &NotFoundError{Resource: "candidate", ID: id}
	}
	return nil
}

// CountCandidates recomputes the number of applications for a job
func (db *DB) CountCandidates(ctx context.Context, jobID uuid.UUID) (int, error) {
	var count int
	err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM candidates WHERE job_id = $1`,
		jobID,
	).Scan(&count)
	if err != nil {
		return 0, storeError("count candidates", "candidates", err)
	}
	return count, nil
}

// scanCandidate reads one candidate row, unpacking the nullable analysis
// columns so the four fields stay jointly present or jointly absent.
func scanCandidate(row pgx.Row) (*Candidate, error) {
	var c Candidate
	var missingSkills, interviewQuestions *string

	err := row.Scan(&c.ID, &c.JobID, &c.Name, &c.Email, &c.Phone, &c.ResumeURL,
		&c.AppliedAt, &c.MatchScore, &c.MatchReasoning, &missingSkills, &interviewQuestions)
	if err != nil {
		return nil, err
	}

	if c.MatchScore != nil {
		if missingSkills != nil {
			c.MissingSkills = UnpackList(*missingSkills)
		}
		// An analyzed candidate with no missing skills still carries an
		// empty list, never an absent one.
		if c.MissingSkills == nil {
			c.MissingSkills = []string{}
		}
		if interviewQuestions != nil {
			c.InterviewQuestions = UnpackList(*interviewQuestions)
		}
	}
	return &c, nil
}
