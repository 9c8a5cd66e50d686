package hiring

import (
	"context"
	"io"
	"log"

	"github.com/google/uuid"

	"github.com/rafael/talentmatch/internal/analysis"
	"github.com/rafael/talentmatch/internal/db"
	"github.com/rafael/talentmatch/internal/resume"
	"github.com/rafael/talentmatch/internal/storage"
)

// MaxResumeSize is the largest accepted résumé upload
const MaxResumeSize = 10 << 20 // 10MB

// CandidateStore is the persistence surface the application workflow needs
type CandidateStore interface {
	ListCandidates(ctx context.Context, jobID uuid.UUID) ([]db.Candidate, error)
	GetCandidate(ctx context.Context, id uuid.UUID) (*db.Candidate, error)
	CreateCandidate(ctx context.Context, input db.CandidateCreateInput) (*db.Candidate, error)
	UpdateCandidateAnalysis(ctx context.Context, id uuid.UUID, input db.CandidateAnalysisInput) error
	GetJob(ctx context.Context, id uuid.UUID) (*db.Job, error)
}

// ResumeStore uploads résumé files and retrieves them for analysis
type ResumeStore interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
	Download(ctx context.Context, resumeURL string) ([]byte, error)
}

// Analyzer scores a résumé against job requirements
type Analyzer interface {
	Analyze(ctx context.Context, requirements []string, resumeText string) (*analysis.MatchAnalysis, error)
}

// ApplicationService orchestrates candidate submissions and match analysis
type ApplicationService struct {
	store    CandidateStore
	resumes  ResumeStore
	analyzer Analyzer
}

// NewApplicationService creates the candidate application workflow
func NewApplicationService(store CandidateStore, resumes ResumeStore, analyzer Analyzer) *ApplicationService {
	return &ApplicationService{store: store, resumes: resumes, analyzer: analyzer}
}

// ApplicationInput is one candidate submission
type ApplicationInput struct {
	JobID             uuid.UUID
	Name              string
	Email             string
	Phone             string
	ResumeFilename    string
	ResumeContentType string
	ResumeSize        int64
	Resume            io.Reader
}

// ListForJob returns the applications submitted against a job
func (s *ApplicationService) ListForJob(ctx context.Context, jobID uuid.UUID) ([]db.Candidate, error) {
	return s.store.ListCandidates(ctx, jobID)
}

// Apply validates a submission, uploads the résumé, then creates the
// candidate record. Validation happens before any network call; the two
// remote steps are strictly sequential because the record needs the URL the
// upload produces.
func (s *ApplicationService) Apply(ctx context.Context, input ApplicationInput) (*db.Candidate, error) {
	if input.JobID == uuid.Nil {
		return nil, &ValidationError{Field: "job_id", Message: "select a job opening before applying"}
	}
	if input.Resume == nil {
		return nil, &ValidationError{Field: "resume", Message: "a resume file is required"}
	}
	if input.ResumeContentType != "application/pdf" {
		return nil, &ValidationError{Field: "resume", Message: "only PDF files are accepted"}
	}
	if input.ResumeSize > MaxResumeSize {
		return nil, &ValidationError{Field: "resume", Message: "resume must be 10MB or smaller"}
	}

	key := storage.ObjectKey(input.ResumeFilename)
	resumeURL, err := s.resumes.Upload(ctx, key, input.ResumeContentType, input.Resume)
	if err != nil {
		return nil, err
	}

	candidate, err := s.store.CreateCandidate(ctx, db.CandidateCreateInput{
		JobID:     input.JobID,
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		ResumeURL: resumeURL,
	})
	if err != nil {
		// The uploaded file is not rolled back; the orphaned object is
		// accepted and logged for auditing.
		log.Printf("candidate create failed after upload, orphaned object %s: %v", key, err)
		return nil, err
	}
	return candidate, nil
}

// AnalyzeCandidate runs match analysis for one candidate and persists the
// result. Analyzer failure yields an absent result, not an error; storage
// of a successful result still propagates store errors. Re-analysis
// overwrites the previous result.
func (s *ApplicationService) AnalyzeCandidate(ctx context.Context, candidateID uuid.UUID) (*analysis.MatchAnalysis, error) {
	candidate, err := s.store.GetCandidate(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	if candidate == nil {
		return nil, &db.NotFoundError{Resource: "candidate", ID: candidateID}
	}

	job, err := s.store.GetJob(ctx, candidate.JobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, &db.NotFoundError{Resource: "job", ID: candidate.JobID}
	}

	resumeText, err := s.resumeText(ctx, candidate)
	if err != nil {
		log.Printf("resume text unavailable for candidate %s: %v", candidateID, err)
		return nil, nil
	}

	requirements := append(append([]string{}, job.TechRequirements...), job.BehavioralRequirements...)
	result, err := s.analyzer.Analyze(ctx, requirements, resumeText)
	if err != nil {
		log.Printf("match analysis failed for candidate %s: %v", candidateID, err)
		return nil, nil
	}

	err = s.store.UpdateCandidateAnalysis(ctx, candidateID, db.CandidateAnalysisInput{
		Score:              result.Score,
		Reasoning:          result.Reasoning,
		MissingSkills:      result.MissingSkills,
		InterviewQuestions: result.InterviewQuestions,
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *ApplicationService) resumeText(ctx context.Context, candidate *db.Candidate) (string, error) {
	data, err := s.resumes.Download(ctx, candidate.ResumeURL)
	if err != nil {
		return "", err
	}
	return resume.ExtractText(resume.DetectType(data), data)
}
