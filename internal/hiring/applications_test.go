package hiring

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafael/talentmatch/internal/analysis"
	"github.com/rafael/talentmatch/internal/db"
)

type fakeCandidateStore struct {
	jobs       map[uuid.UUID]*db.Job
	candidates map[uuid.UUID]*db.Candidate

	createCalls int
	createErr   error
	lastCreate  db.CandidateCreateInput

	analysisCalls int
	analysisErr   error
	lastAnalysis  db.CandidateAnalysisInput
}

func newFakeCandidateStore() *fakeCandidateStore {
	return &fakeCandidateStore{
		jobs:       make(map[uuid.UUID]*db.Job),
		candidates: make(map[uuid.UUID]*db.Candidate),
	}
}

func (f *fakeCandidateStore) ListCandidates(_ context.Context, jobID uuid.UUID) ([]db.Candidate, error) {
	var out []db.Candidate
	for _, c := range f.candidates {
		if c.JobID == jobID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeCandidateStore) GetCandidate(_ context.Context, id uuid.UUID) (*db.Candidate, error) {
	c, ok := f.candidates[id]
	if !ok {
		return nil, nil
	}
	copied := *c
	return &copied, nil
}

func (f *fakeCandidateStore) CreateCandidate(_ context.Context, input db.CandidateCreateInput) (*db.Candidate, error) {
	f.createCalls++
	f.lastCreate = input
	if f.createErr != nil {
		return nil, f.createErr
	}
	c := &db.Candidate{
		ID:        uuid.New(),
		JobID:     input.JobID,
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		ResumeURL: input.ResumeURL,
	}
	f.candidates[c.ID] = c
	return c, nil
}

func (f *fakeCandidateStore) UpdateCandidateAnalysis(_ context.Context, id uuid.UUID, input db.CandidateAnalysisInput) error {
	f.analysisCalls++
	f.lastAnalysis = input
	return f.analysisErr
}

func (f *fakeCandidateStore) GetJob(_ context.Context, id uuid.UUID) (*db.Job, error) {
	job, ok := f.jobs[id]
	if !ok {
		return nil, nil
	}
	copied := *job
	return &copied, nil
}

type fakeResumeStore struct {
	uploadCalls   int
	uploadErr     error
	lastKey       string
	downloadCalls int
	downloadErr   error
	content       []byte
}

func (f *fakeResumeStore) Upload(_ context.Context, key, _ string, _ io.Reader) (string, error) {
	f.uploadCalls++
	f.lastKey = key
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	return "https://resumes.example.com/" + key, nil
}

func (f *fakeResumeStore) Download(_ context.Context, _ string) ([]byte, error) {
	f.downloadCalls++
	if f.downloadErr != nil {
		return nil, f.downloadErr
	}
	return f.content, nil
}

type fakeAnalyzer struct {
	calls            int
	err              error
	result           *analysis.MatchAnalysis
	lastRequirements []string
}

func (f *fakeAnalyzer) Analyze(_ context.Context, requirements []string, _ string) (*analysis.MatchAnalysis, error) {
	f.calls++
	f.lastRequirements = requirements
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func validApplication(jobID uuid.UUID) ApplicationInput {
	return ApplicationInput{
		JobID:             jobID,
		Name:              "Maria Silva",
		Email:             "maria@example.com",
		Phone:             "+55 11 99999-0000",
		ResumeFilename:    "maria resume.pdf",
		ResumeContentType: "application/pdf",
		ResumeSize:        512,
		Resume:            strings.NewReader("%PDF-1.4"),
	}
}

func TestApplicationService_Apply_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ApplicationInput)
		field   string
		message string
	}{
		{
			name:    "missing job",
			mutate:  func(in *ApplicationInput) { in.JobID = uuid.Nil },
			field:   "job_id",
			message: "select a job opening before applying",
		},
		{
			name:    "missing file",
			mutate:  func(in *ApplicationInput) { in.Resume = nil },
			field:   "resume",
			message: "a resume file is required",
		},
		{
			name:    "wrong content type",
			mutate:  func(in *ApplicationInput) { in.ResumeContentType = "application/msword" },
			field:   "resume",
			message: "only PDF files are accepted",
		},
		{
			name:    "oversized file",
			mutate:  func(in *ApplicationInput) { in.ResumeSize = MaxResumeSize + 1 },
			field:   "resume",
			message: "resume must be 10MB or smaller",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeCandidateStore()
			resumes := &fakeResumeStore{}
			svc := NewApplicationService(store, resumes, &fakeAnalyzer{})

			input := validApplication(uuid.New())
			tt.mutate(&input)

			_, err := svc.Apply(context.Background(), input)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.Equal(t, tt.message, verr.Message)

			// Rejected submissions never reach storage
			assert.Equal(t, 0, resumes.uploadCalls)
			assert.Equal(t, 0, store.createCalls)
		})
	}
}

func TestApplicationService_Apply_UploadsThenCreates(t *testing.T) {
	store := newFakeCandidateStore()
	resumes := &fakeResumeStore{}
	svc := NewApplicationService(store, resumes, &fakeAnalyzer{})

	jobID := uuid.New()
	candidate, err := svc.Apply(context.Background(), validApplication(jobID))
	require.NoError(t, err)

	assert.Equal(t, 1, resumes.uploadCalls)
	assert.Equal(t, 1, store.createCalls)
	assert.Contains(t, resumes.lastKey, "maria_resume.pdf")
	assert.Equal(t, "https://resumes.example.com/"+resumes.lastKey, candidate.ResumeURL)
	assert.Equal(t, jobID, store.lastCreate.JobID)
}

func TestApplicationService_Apply_UploadFailureSkipsCreate(t *testing.T) {
	store := newFakeCandidateStore()
	resumes := &fakeResumeStore{uploadErr: errors.New("bucket unreachable")}
	svc := NewApplicationService(store, resumes, &fakeAnalyzer{})

	_, err := svc.Apply(context.Background(), validApplication(uuid.New()))
	require.Error(t, err)
	assert.Equal(t, 0, store.createCalls)
}

func TestApplicationService_Apply_CreateFailureLeavesUpload(t *testing.T) {
	store := newFakeCandidateStore()
	store.createErr = &db.NotFoundError{Resource: "job", ID: uuid.New()}
	resumes := &fakeResumeStore{}
	svc := NewApplicationService(store, resumes, &fakeAnalyzer{})

	_, err := svc.Apply(context.Background(), validApplication(uuid.New()))

	var notFound *db.NotFoundError
	require.ErrorAs(t, err, &notFound)
	// The upload already happened; the orphaned object stays put
	assert.Equal(t, 1, resumes.uploadCalls)
}

func TestApplicationService_AnalyzeCandidate_PersistsResult(t *testing.T) {
	store := newFakeCandidateStore()
	job := &db.Job{
		ID:                     uuid.New(),
		TechRequirements:       []string{"Go", "SQL"},
		BehavioralRequirements: []string{"Communication"},
	}
	store.jobs[job.ID] = job
	candidate := &db.Candidate{ID: uuid.New(), JobID: job.ID, ResumeURL: "https://resumes.example.com/r.pdf"}
	store.candidates[candidate.ID] = candidate

	resumes := &fakeResumeStore{content: []byte("ten years of Go")}
	analyzer := &fakeAnalyzer{result: &analysis.MatchAnalysis{
		Score:              82,
		Reasoning:          "Strong backend background",
		MissingSkills:      []string{"Kubernetes"},
		InterviewQuestions: []string{"Q1", "Q2", "Q3"},
	}}
	svc := NewApplicationService(store, resumes, analyzer)

	result, err := svc.AnalyzeCandidate(context.Background(), candidate.ID)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 82, result.Score)

	// Tech requirements first, behavioral appended
	assert.Equal(t, []string{"Go", "SQL", "Communication"}, analyzer.lastRequirements)

	// Score, reasoning, skills and questions are written together
	assert.Equal(t, 1, store.analysisCalls)
	assert.Equal(t, 82, store.lastAnalysis.Score)
	assert.Equal(t, "Strong backend background", store.lastAnalysis.Reasoning)
	assert.Equal(t, []string{"Kubernetes"}, store.lastAnalysis.MissingSkills)
	assert.Equal(t, []string{"Q1", "Q2", "Q3"}, store.lastAnalysis.InterviewQuestions)
}

func TestApplicationService_AnalyzeCandidate_AnalyzerFailure(t *testing.T) {
	store := newFakeCandidateStore()
	job := &db.Job{ID: uuid.New(), TechRequirements: []string{"Go"}}
	store.jobs[job.ID] = job
	candidate := &db.Candidate{ID: uuid.New(), JobID: job.ID, ResumeURL: "https://resumes.example.com/r.pdf"}
	store.candidates[candidate.ID] = candidate

	resumes := &fakeResumeStore{content: []byte("resume text")}
	analyzer := &fakeAnalyzer{err: errors.New("model overloaded")}
	svc := NewApplicationService(store, resumes, analyzer)

	// Failure yields an absent result, not an error, and nothing is stored
	result, err := svc.AnalyzeCandidate(context.Background(), candidate.ID)
	assert.NoError(t, err)
	assert.Nil(t, result)
	assert.Equal(t, 0, store.analysisCalls)
}

func TestApplicationService_AnalyzeCandidate_DownloadFailure(t *testing.T) {
	store := newFakeCandidateStore()
	job := &db.Job{ID: uuid.New()}
	store.jobs[job.ID] = job
	candidate := &db.Candidate{ID: uuid.New(), JobID: job.ID, ResumeURL: "https://resumes.example.com/gone.pdf"}
	store.candidates[candidate.ID] = candidate

	resumes := &fakeResumeStore{downloadErr: errors.New("object not found")}
	analyzer := &fakeAnalyzer{}
	svc := NewApplicationService(store, resumes, analyzer)

	result, err := svc.AnalyzeCandidate(context.Background(), candidate.ID)
	assert.NoError(t, err)
	assert.Nil(t, result)
	assert.Equal(t, 0, analyzer.calls)
}

func TestApplicationService_AnalyzeCandidate_UnknownCandidate(t *testing.T) {
	store := newFakeCandidateStore()
	svc := NewApplicationService(store, &fakeResumeStore{}, &fakeAnalyzer{})

	_, err := svc.AnalyzeCandidate(context.Background(), uuid.New())

	var notFound *db.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "candidate", notFound.Resource)
}

func TestApplicationService_AnalyzeCandidate_StoreFailurePropagates(t *testing.T) {
	store := newFakeCandidateStore()
	store.analysisErr = errors.New("connection reset")
	job := &db.Job{ID: uuid.New(), TechRequirements: []string{"Go"}}
	store.jobs[job.ID] = job
	candidate := &db.Candidate{ID: uuid.New(), JobID: job.ID, ResumeURL: "https://resumes.example.com/r.pdf"}
	store.candidates[candidate.ID] = candidate

	resumes := &fakeResumeStore{content: []byte("resume text")}
	analyzer := &fakeAnalyzer{result: &analysis.MatchAnalysis{Score: 70}}
	svc := NewApplicationService(store, resumes, analyzer)

	_, err := svc.AnalyzeCandidate(context.Background(), candidate.ID)
	require.Error(t, err)
}
