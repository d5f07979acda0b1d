package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openimpact/aia-engine/internal/types"
)

// validDescription covers all six topic areas and exceeds the minimum
// word count.
const validDescription = "The purpose of this system is to triage benefit applications. " +
	"It uses a machine learning model trained on historical data sources including " +
	"personal information collected from applicants. The affected population includes " +
	"low-income individuals and vulnerable communities. Every decision is a recommendation " +
	"subject to human review before approval or denial. The architecture is a gradient " +
	"boosted model behind an internal api. Oversight is provided by a governance committee " +
	"with quarterly audit cycles and a documented recourse process for applicants."

func newTestServer(t *testing.T) *Server {
	t.Helper()
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	t.Setenv("JWT_SECRET", "")

	s, err := New(Config{
		Port:      0,
		OutputDir: t.TempDir(),
	})
	require.NoError(t, err)
	return s
}

func postJSON(t *testing.T, ts *httptest.Server, path string, body interface{}) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(ts.URL+path, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t)
	ts := httptest.NewServer(s.httpServer.Handler)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "ok", body["status"])
}

func TestAssessProject(t *testing.T) {
	s := newTestServer(t)
	ts := httptest.NewServer(s.httpServer.Handler)
	defer ts.Close()

	req := types.AssessProjectRequest{
		ProjectName:        "Benefit Triage",
		ProjectDescription: validDescription,
		Answers: []types.Answer{
			{QuestionID: "businessDrivers", SelectedValues: []string{"item4-3"}},
			{QuestionID: "decisionAutonomy", SelectedValues: []string{"item2-2"}},
			{QuestionID: "rightsImpact", SelectedValues: []string{"item2-1"}},
		},
	}

	resp := postJSON(t, ts, "/tools/assess_project", req)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var outcome types.AssessmentOutcome
	decodeBody(t, resp, &outcome)
	assert.Equal(t, types.StatusCompleted, outcome.Status)
	require.NotNil(t, outcome.Score)
	assert.Equal(t, 6, outcome.Score.TotalScore)
	assert.Equal(t, types.ImpactLevelI, outcome.Score.ImpactLevel)
}

func TestAssessProjectValidationFailure(t *testing.T) {
	s := newTestServer(t)
	ts := httptest.NewServer(s.httpServer.Handler)
	defer ts.Close()

	req := types.AssessProjectRequest{
		ProjectName:        "Thin",
		ProjectDescription: "Too short to pass.",
		Answers: []types.Answer{
			{QuestionID: "businessDrivers", SelectedValues: []string{"item1-1"}},
		},
	}

	resp := postJSON(t, ts, "/tools/assess_project", req)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var outcome types.AssessmentOutcome
	decodeBody(t, resp, &outcome)
	assert.Equal(t, types.StatusValidationFailed, outcome.Status)
	assert.Nil(t, outcome.Score)
}

func TestAssessProjectRejectsMissingFields(t *testing.T) {
	s := newTestServer(t)
	ts := httptest.NewServer(s.httpServer.Handler)
	defer ts.Close()

	resp := postJSON(t, ts, "/tools/assess_project", map[string]string{
		"projectName": "No description or answers",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestAssessProjectUnknownQuestion(t *testing.T) {
	s := newTestServer(t)
	ts := httptest.NewServer(s.httpServer.Handler)
	defer ts.Close()

	req := types.AssessProjectRequest{
		ProjectName:        "Benefit Triage",
		ProjectDescription: validDescription,
		Answers: []types.Answer{
			{QuestionID: "noSuchQuestion", SelectedValues: []string{"item1-1"}},
		},
	}

	resp := postJSON(t, ts, "/tools/assess_project", req)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestFunctionalPreview(t *testing.T) {
	s := newTestServer(t)
	ts := httptest.NewServer(s.httpServer.Handler)
	defer ts.Close()

	req := types.FunctionalPreviewRequest{
		ProjectName:        "Benefit Triage",
		ProjectDescription: validDescription,
	}

	resp := postJSON(t, ts, "/tools/functional_preview", req)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var preview types.PreviewOutcome
	decodeBody(t, resp, &preview)
	assert.Equal(t, types.StatusCompleted, preview.Status)
	require.NotNil(t, preview.OfficialData)
	require.NotNil(t, preview.AdvisoryAnalysis)
	assert.NotEmpty(t, preview.ComplianceNotices)
}

func TestWorkflowLifecycleOverHTTP(t *testing.T) {
	s := newTestServer(t)
	ts := httptest.NewServer(s.httpServer.Handler)
	defer ts.Close()

	createResp := postJSON(t, ts, "/tools/create_workflow", types.CreateWorkflowRequest{
		AssessmentType:     "quick_scan",
		ProjectName:        "Benefit Triage",
		ProjectDescription: validDescription,
	})
	require.Equal(t, http.StatusCreated, createResp.StatusCode)

	var status types.WorkflowStatus
	decodeBody(t, createResp, &status)
	require.NotEmpty(t, status.SessionID)
	assert.Equal(t, types.SessionStateCreated, status.State)
	assert.Len(t, status.PlannedSteps, 2)

	// Run both planned steps one at a time.
	for i := 0; i < 2; i++ {
		resp := postJSON(t, ts, "/tools/execute_workflow_step", types.ExecuteWorkflowStepRequest{
			SessionID: status.SessionID,
		})
		require.Equal(t, http.StatusOK, resp.StatusCode, "step %d", i)
		resp.Body.Close()
	}

	statusResp, err := http.Get(ts.URL + "/tools/workflow_status/" + status.SessionID)
	require.NoError(t, err)
	var final types.WorkflowStatus
	decodeBody(t, statusResp, &final)
	assert.Equal(t, types.SessionStateCompleted, final.State)
	assert.Equal(t, float64(100), final.ProgressPercentage)
}

func TestExecuteStepAutoExecute(t *testing.T) {
	s := newTestServer(t)
	ts := httptest.NewServer(s.httpServer.Handler)
	defer ts.Close()

	createResp := postJSON(t, ts, "/tools/create_workflow", types.CreateWorkflowRequest{
		AssessmentType:     "functional_preview",
		ProjectName:        "Benefit Triage",
		ProjectDescription: validDescription,
	})
	require.Equal(t, http.StatusCreated, createResp.StatusCode)

	var status types.WorkflowStatus
	decodeBody(t, createResp, &status)

	resp := postJSON(t, ts, "/tools/execute_workflow_step", types.ExecuteWorkflowStepRequest{
		SessionID:      status.SessionID,
		StepsToExecute: 10,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	statusResp, err := http.Get(ts.URL + "/tools/workflow_status/" + status.SessionID)
	require.NoError(t, err)
	var final types.WorkflowStatus
	decodeBody(t, statusResp, &final)
	assert.Equal(t, types.SessionStateCompleted, final.State)
}

func TestExecuteStepCountHonored(t *testing.T) {
	s := newTestServer(t)
	ts := httptest.NewServer(s.httpServer.Handler)
	defer ts.Close()

	createResp := postJSON(t, ts, "/tools/create_workflow", types.CreateWorkflowRequest{
		AssessmentType:     "full_assessment",
		ProjectName:        "Benefit Triage",
		ProjectDescription: validDescription,
		Answers: []types.Answer{
			{QuestionID: "businessDrivers", SelectedValues: []string{"item4-3"}},
		},
	})
	require.Equal(t, http.StatusCreated, createResp.StatusCode)

	var status types.WorkflowStatus
	decodeBody(t, createResp, &status)

	resp := postJSON(t, ts, "/tools/execute_workflow_step", types.ExecuteWorkflowStepRequest{
		SessionID:      status.SessionID,
		StepsToExecute: 2,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Steps []struct {
			Tool    string `json:"tool"`
			Success bool   `json:"success"`
		} `json:"steps"`
	}
	decodeBody(t, resp, &body)
	require.Len(t, body.Steps, 2)
	assert.Equal(t, "validate_description", body.Steps[0].Tool)
	assert.Equal(t, "compute_score", body.Steps[1].Tool)

	statusResp, err := http.Get(ts.URL + "/tools/workflow_status/" + status.SessionID)
	require.NoError(t, err)
	var mid types.WorkflowStatus
	decodeBody(t, statusResp, &mid)
	assert.Equal(t, types.SessionStateInProgress, mid.State)
	assert.Equal(t, float64(50), mid.ProgressPercentage)
}

func TestWorkflowStatusNotFound(t *testing.T) {
	s := newTestServer(t)
	ts := httptest.NewServer(s.httpServer.Handler)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/tools/workflow_status/does-not-exist")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestCreateWorkflowUnknownType(t *testing.T) {
	s := newTestServer(t)
	ts := httptest.NewServer(s.httpServer.Handler)
	defer ts.Close()

	resp := postJSON(t, ts, "/tools/create_workflow", types.CreateWorkflowRequest{
		AssessmentType:     "deep_audit",
		ProjectName:        "Benefit Triage",
		ProjectDescription: validDescription,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestExportReportOverHTTP(t *testing.T) {
	s := newTestServer(t)
	ts := httptest.NewServer(s.httpServer.Handler)
	defer ts.Close()

	createResp := postJSON(t, ts, "/tools/create_workflow", types.CreateWorkflowRequest{
		AssessmentType:     "quick_scan",
		ProjectName:        "Benefit Triage",
		ProjectDescription: validDescription,
	})
	var status types.WorkflowStatus
	decodeBody(t, createResp, &status)

	resp := postJSON(t, ts, "/tools/execute_workflow_step", types.ExecuteWorkflowStepRequest{
		SessionID:      status.SessionID,
		StepsToExecute: 10,
	})
	resp.Body.Close()

	exportResp := postJSON(t, ts, "/tools/export_report", types.ExportReportRequest{
		SessionID: status.SessionID,
	})
	require.Equal(t, http.StatusOK, exportResp.StatusCode)

	var result types.ExportResult
	decodeBody(t, exportResp, &result)
	assert.True(t, result.Success)
	assert.NotEmpty(t, result.FilePath)
}

func TestAuthRequiredWhenConfigured(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	t.Setenv("JWT_SECRET", "test-secret-for-auth")

	s, err := New(Config{Port: 0, OutputDir: t.TempDir()})
	require.NoError(t, err)
	ts := httptest.NewServer(s.httpServer.Handler)
	defer ts.Close()

	// Health stays open.
	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Tool endpoints reject missing tokens.
	resp = postJSON(t, ts, "/tools/functional_preview", types.FunctionalPreviewRequest{
		ProjectName:        "Benefit Triage",
		ProjectDescription: validDescription,
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// And accept a valid one.
	token, err := s.jwtService.GenerateToken("test-client")
	require.NoError(t, err)

	data, err := json.Marshal(types.FunctionalPreviewRequest{
		ProjectName:        "Benefit Triage",
		ProjectDescription: validDescription,
	})
	require.NoError(t, err)
	httpReq, err := http.NewRequest(http.MethodPost, ts.URL+"/tools/functional_preview", bytes.NewReader(data))
	require.NoError(t, err)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))

	authResp, err := http.DefaultClient.Do(httpReq)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, authResp.StatusCode)
	authResp.Body.Close()
}
