package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/openimpact/aia-engine/internal/types"
)

// handleAssessProject runs the full deterministic assessment in one call.
func (s *Server) handleAssessProject(w http.ResponseWriter, r *http.Request) {
	var req types.AssessProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	outcome, err := s.orchestrator.AssessFull(req.ProjectName, req.ProjectDescription, req.Answers)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, outcome)
}

// handleFunctionalPreview runs the heuristic preview assessment, including
// advisory generation.
func (s *Server) handleFunctionalPreview(w http.ResponseWriter, r *http.Request) {
	var req types.FunctionalPreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	preview, err := s.orchestrator.FunctionalPreview(r.Context(), req.ProjectName, req.ProjectDescription)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, preview)
}

// handleCreateWorkflow opens a new workflow session and reports its
// planned steps.
func (s *Server) handleCreateWorkflow(w http.ResponseWriter, r *http.Request) {
	var req types.CreateWorkflowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	session, err := s.registry.CreateWorkflow(req.AssessmentType, req.ProjectName, req.ProjectDescription, req.Answers)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	status, err := s.registry.GetStatus(session.ID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, status)
}

// handleExecuteWorkflowStep advances a session by one step, or by
// stepsToExecute steps when the caller asks for more.
func (s *Server) handleExecuteWorkflowStep(w http.ResponseWriter, r *http.Request) {
	var req types.ExecuteWorkflowStepRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	if req.StepsToExecute > 0 {
		outcomes, err := s.registry.AutoExecute(r.Context(), req.SessionID, req.StepsToExecute)
		if err != nil {
			s.errorResponse(w, HTTPStatus(err), err.Error())
			return
		}
		s.jsonResponse(w, http.StatusOK, map[string]interface{}{
			"session_id": req.SessionID,
			"steps":      outcomes,
		})
		return
	}

	outcome, err := s.registry.ExecuteNextStep(r.Context(), req.SessionID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, outcome)
}

// handleWorkflowStatus reports session state and progress.
func (s *Server) handleWorkflowStatus(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("session_id")
	if sessionID == "" {
		s.errorResponse(w, http.StatusBadRequest, "session_id is required")
		return
	}

	status, err := s.registry.GetStatus(sessionID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, status)
}

// handleExportReport renders a Markdown report for a session.
func (s *Server) handleExportReport(w http.ResponseWriter, r *http.Request) {
	var req types.ExportReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	result, err := s.registry.ExportReport(req.SessionID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

func extractValidationErrors(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		if len(validationErrors) > 0 {
			// Return first validation error for simplicity
			ve := validationErrors[0]
			return fmt.Sprintf("validation error: %s - %s", ve.Field(), ve.Tag())
		}
	}
	return "validation error: invalid request"
}
