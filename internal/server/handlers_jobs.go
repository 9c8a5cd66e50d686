package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/rafael/talentmatch/internal/db"
)

const dateLayout = "2006-01-02"

// JobRequest is the body for creating a job posting
type JobRequest struct {
	Title                  string   `json:"title" validate:"required"`
	Mission                string   `json:"mission"`
	TechRequirements       []string `json:"tech_requirements"`
	BehavioralRequirements []string `json:"behavioral_requirements"`
	Culture                string   `json:"culture"`
	ValidUntil             string   `json:"valid_until" validate:"required"`
	Status                 string   `json:"status" validate:"omitempty,oneof=active closed"`
}

// JobUpdateRequest is the body for a partial job update; absent fields are
// left unchanged.
type JobUpdateRequest struct {
	Title                  *string   `json:"title"`
	Mission                *string   `json:"mission"`
	TechRequirements       *[]string `json:"tech_requirements"`
	BehavioralRequirements *[]string `json:"behavioral_requirements"`
	Culture                *string   `json:"culture"`
	ValidUntil             *string   `json:"valid_until"`
	Status                 *string   `json:"status" validate:"omitempty,oneof=active closed"`
}

// JobStatusRequest optionally names the status to set; an empty body
// toggles the current one.
type JobStatusRequest struct {
	Status string `json:"status" validate:"omitempty,oneof=active closed"`
}

// ListJobsResponse represents the response for listing jobs
type ListJobsResponse struct {
	Jobs  []db.Job `json:"jobs"`
	Count int      `json:"count"`
}

// handleListJobs lists all job postings, newest first
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := s.jobs.List(r.Context())
	if err != nil {
		s.serviceError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, ListJobsResponse{
		Jobs:  jobs,
		Count: len(jobs),
	})
}

// handleCreateJob publishes a new job posting
func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	var req JobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job: "+err.Error())
		return
	}

	validUntil, err := time.Parse(dateLayout, req.ValidUntil)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid valid_until date, expected YYYY-MM-DD")
		return
	}

	job, err := s.jobs.Create(r.Context(), db.JobCreateInput{
		Title:                  req.Title,
		Mission:                req.Mission,
		TechRequirements:       req.TechRequirements,
		BehavioralRequirements: req.BehavioralRequirements,
		Culture:                req.Culture,
		ValidUntil:             validUntil,
		Status:                 db.JobStatus(req.Status),
	})
	if err != nil {
		s.serviceError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, job)
}

// handleUpdateJob applies a partial update to a job posting
func (s *Server) handleUpdateJob(w http.ResponseWriter, r *http.Request) {
	jobID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	var req JobUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job: "+err.Error())
		return
	}

	input := db.JobUpdateInput{Title: req.Title}

	// The two requirement lists share one column; supplying either replaces
	// both, with the missing one empty. Mission and culture behave the same.
	if req.TechRequirements != nil || req.BehavioralRequirements != nil {
		update := &db.RequirementsUpdate{}
		if req.TechRequirements != nil {
			update.Tech = *req.TechRequirements
		}
		if req.BehavioralRequirements != nil {
			update.Behavioral = *req.BehavioralRequirements
		}
		input.Requirements = update
	}
	if req.Mission != nil || req.Culture != nil {
		update := &db.ProfileUpdate{}
		if req.Mission != nil {
			update.Mission = *req.Mission
		}
		if req.Culture != nil {
			update.Culture = *req.Culture
		}
		input.Profile = update
	}
	if req.ValidUntil != nil {
		validUntil, err := time.Parse(dateLayout, *req.ValidUntil)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Invalid valid_until date, expected YYYY-MM-DD")
			return
		}
		input.ValidUntil = &validUntil
	}
	if req.Status != nil {
		status := db.JobStatus(*req.Status)
		input.Status = &status
	}

	job, err := s.jobs.Edit(r.Context(), jobID, input)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, job)
}

// handleDeleteJob removes a job posting; a job with applicants is refused
func (s *Server) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
	jobID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	if err := s.jobs.Delete(r.Context(), jobID); err != nil {
		s.serviceError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"deleted": jobID.String()})
}

// handleSetJobStatus sets or toggles the open/closed status
func (s *Server) handleSetJobStatus(w http.ResponseWriter, r *http.Request) {
	jobID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	var req JobStatusRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
			return
		}
		if err := s.validate.Struct(req); err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Invalid status: "+err.Error())
			return
		}
	}

	var status db.JobStatus
	if req.Status != "" {
		status = db.JobStatus(req.Status)
		err = s.jobs.SetStatus(r.Context(), jobID, status)
	} else {
		status, err = s.jobs.ToggleStatus(r.Context(), jobID)
	}
	if err != nil {
		s.serviceError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": string(status)})
}
