package server

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/rafael/talentmatch/internal/analysis"
	"github.com/rafael/talentmatch/internal/db"
	"github.com/rafael/talentmatch/internal/hiring"
)

// CandidateRequest carries the personal fields of a submission
type CandidateRequest struct {
	Name  string `validate:"required"`
	Email string `validate:"required,email"`
	Phone string `validate:"required"`
}

// ListCandidatesResponse represents the response for listing applications
type ListCandidatesResponse struct {
	Candidates []db.Candidate `json:"candidates"`
	Count      int            `json:"count"`
}

// AnalyzeResponse reports the outcome of a match analysis request. A failed
// analyzer call is an absent result, not an error.
type AnalyzeResponse struct {
	Analyzed bool                    `json:"analyzed"`
	Analysis *analysis.MatchAnalysis `json:"analysis,omitempty"`
}

// handleListCandidates lists the applications submitted against a job
func (s *Server) handleListCandidates(w http.ResponseWriter, r *http.Request) {
	jobID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	candidates, err := s.apps.ListForJob(r.Context(), jobID)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, ListCandidatesResponse{
		Candidates: candidates,
		Count:      len(candidates),
	})
}

// handleCreateCandidate accepts a multipart application submit: the personal
// fields plus the résumé file.
func (s *Server) handleCreateCandidate(w http.ResponseWriter, r *http.Request) {
	jobID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	if err := r.ParseMultipartForm(hiring.MaxResumeSize + 1<<20); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
		return
	}

	req := CandidateRequest{
		Name:  r.FormValue("name"),
		Email: r.FormValue("email"),
		Phone: r.FormValue("phone"),
	}
	if err := s.validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid candidate: "+err.Error())
		return
	}

	input := hiring.ApplicationInput{
		JobID: jobID,
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	}

	// A missing file is reported by the workflow's own validation message
	file, header, err := r.FormFile("resume")
	if err == nil {
		defer file.Close()
		input.Resume = file
		input.ResumeFilename = header.Filename
		input.ResumeContentType = header.Header.Get("Content-Type")
		input.ResumeSize = header.Size
	}

	candidate, err := s.apps.Apply(r.Context(), input)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, candidate)
}

// handleAnalyzeCandidate runs (or re-runs) match analysis for one candidate
func (s *Server) handleAnalyzeCandidate(w http.ResponseWriter, r *http.Request) {
	candidateID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid candidate ID")
		return
	}

	result, err := s.apps.AnalyzeCandidate(r.Context(), candidateID)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, AnalyzeResponse{
		Analyzed: result != nil,
		Analysis: result,
	})
}
