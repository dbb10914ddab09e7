/*
handlers.go - HTTP API handlers for the entitlement calculation service

PURPOSE:
  Exposes the calculation engine via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Calculation:
    POST   /api/households/compute     Compute one household-year
    POST   /api/batch/run              Run and persist a batch

  Runs:
    GET    /api/runs                   List stored batch runs
    GET    /api/runs/{id}              Run header with failures
    GET    /api/runs/{id}/results      Full stored results of a run

  Students:
    GET    /api/students/{id}/results  Stored result history

  Parameters:
    GET    /api/parameters             Registered paragraphs and years
    GET    /api/health                 Liveness probe

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Invalid body, invalid household configuration
  - 404: Run not found
  - 422: No parameter set registered for the requested year
  - 500: Internal errors

SECURITY NOTE:
  Currently NO authentication or authorization. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/warp/entitlement-engine/batch"
	"github.com/warp/entitlement-engine/entitlement"
	"github.com/warp/entitlement-engine/statute"
	"github.com/warp/entitlement-engine/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Engine   *entitlement.Engine
	Registry *statute.Registry
	Store    *sqlite.Store
}

// NewHandler creates a new handler. The registry must already be frozen.
func NewHandler(engine *entitlement.Engine, registry *statute.Registry, store *sqlite.Store) *Handler {
	return &Handler{Engine: engine, Registry: registry, Store: store}
}

// =============================================================================
// CALCULATION HANDLERS
// =============================================================================

// ComputeHousehold computes one household-year without persisting it.
// POST /api/households/compute
func (h *Handler) ComputeHousehold(w http.ResponseWriter, r *http.Request) {
	var req HouseholdRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	household, err := householdFromRequest(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid household", err)
		return
	}

	res, err := h.Engine.Compute(household)
	if err != nil {
		writeComputeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResultDTO(res))
}

// RunBatch evaluates all submitted households, persists the run, and
// returns the summary with full results.
// POST /api/batch/run
func (h *Handler) RunBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if len(req.Households) == 0 {
		writeError(w, http.StatusBadRequest, "Empty batch", nil)
		return
	}

	opts := batch.Options{Workers: req.Workers}
	if req.MinAward != "" {
		v, err := decimal.NewFromString(req.MinAward)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid min_award", err)
			return
		}
		opts.MinAward = statute.Amount{Value: v}
	}

	households := make([]entitlement.Household, len(req.Households))
	for i, hr := range req.Households {
		household, err := householdFromRequest(hr)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid household", err)
			return
		}
		households[i] = household
	}

	runner := batch.NewRunner(h.Engine, opts)
	summary := runner.Run(r.Context(), households)

	if h.Store != nil {
		if err := h.Store.SaveRun(r.Context(), summary); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to persist run", err)
			return
		}
	}

	writeJSON(w, http.StatusOK, toBatchResponse(summary))
}

func toBatchResponse(summary batch.Summary) BatchResponse {
	resp := BatchResponse{
		RunID:    summary.RunID,
		Total:    summary.Total,
		Computed: summary.Computed,
		Failed:   summary.Failed,
		Warned:   summary.Warned,
	}
	for _, o := range summary.Outcomes {
		if o.Err != nil {
			resp.Failures = append(resp.Failures, FailureDTO{
				StudentID: o.StudentID,
				Year:      int(o.Year),
				Kind:      string(o.Kind),
				Error:     o.Err.Error(),
			})
			continue
		}
		resp.Results = append(resp.Results, toResultDTO(o.Result))
	}
	return resp
}

// =============================================================================
// RUN HANDLERS
// =============================================================================

// ListRuns returns the most recent stored runs.
// GET /api/runs
func (h *Handler) ListRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := h.Store.ListRuns(r.Context(), 50)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list runs", err)
		return
	}

	dtos := make([]RunDTO, len(runs))
	for i, run := range runs {
		dtos[i] = toRunDTO(run)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetRun returns a run header plus its failures.
// GET /api/runs/{id}
func (h *Handler) GetRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	run, err := h.Store.GetRun(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get run", err)
		return
	}
	if run == nil {
		writeError(w, http.StatusNotFound, "Run not found", nil)
		return
	}

	failures, err := h.Store.GetFailures(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get failures", err)
		return
	}

	resp := struct {
		RunDTO
		Failures []FailureDTO `json:"failures,omitempty"`
	}{RunDTO: toRunDTO(*run)}
	for _, f := range failures {
		resp.Failures = append(resp.Failures, FailureDTO{
			StudentID: f.StudentID,
			Year:      int(f.Year),
			Kind:      f.FailureKind,
			Error:     f.Error,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetRunResults returns the stored result rows of a run.
// GET /api/runs/{id}/results
func (h *Handler) GetRunResults(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	run, err := h.Store.GetRun(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get run", err)
		return
	}
	if run == nil {
		writeError(w, http.StatusNotFound, "Run not found", nil)
		return
	}

	results, err := h.Store.GetResults(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get results", err)
		return
	}

	writeJSON(w, http.StatusOK, storedResultDTOs(results))
}

// GetStudentHistory returns every stored result for one student.
// GET /api/students/{id}/results
func (h *Handler) GetStudentHistory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	results, err := h.Store.GetStudentHistory(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get history", err)
		return
	}

	writeJSON(w, http.StatusOK, storedResultDTOs(results))
}

// StoredResultDTO is one persisted outcome row.
type StoredResultDTO struct {
	RunID       string `json:"run_id"`
	StudentID   string `json:"student_id"`
	Year        int    `json:"year"`
	Eligible    bool   `json:"eligible"`
	Entitlement string `json:"entitlement,omitempty"`
	FailureKind string `json:"failure_kind,omitempty"`
	Error       string `json:"error,omitempty"`
}

func storedResultDTOs(results []sqlite.ResultRecord) []StoredResultDTO {
	dtos := make([]StoredResultDTO, len(results))
	for i, res := range results {
		dtos[i] = StoredResultDTO{
			RunID:       res.RunID,
			StudentID:   res.StudentID,
			Year:        int(res.Year),
			Eligible:    res.Eligible,
			Entitlement: res.Entitlement,
			FailureKind: res.FailureKind,
			Error:       res.Error,
		}
	}
	return dtos
}

func toRunDTO(run sqlite.RunRecord) RunDTO {
	return RunDTO{
		RunID:     run.ID,
		Total:     run.Total,
		Computed:  run.Computed,
		Failed:    run.Failed,
		Warned:    run.Warned,
		CreatedAt: run.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// =============================================================================
// PARAMETER HANDLERS
// =============================================================================

// ListParameters returns the registered paragraphs with their validity
// years, for introspection.
// GET /api/parameters
func (h *Handler) ListParameters(w http.ResponseWriter, r *http.Request) {
	paragraphs := h.Registry.Paragraphs()
	dtos := make([]ParameterSetDTO, len(paragraphs))
	for i, p := range paragraphs {
		years := h.Registry.Years(p)
		dto := ParameterSetDTO{Paragraph: string(p), Years: make([]int, len(years))}
		for j, y := range years {
			dto.Years[j] = int(y)
		}
		dtos[i] = dto
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetParameter returns every validity year's parameterization for one
// paragraph.
// GET /api/parameters/{paragraph}
func (h *Handler) GetParameter(w http.ResponseWriter, r *http.Request) {
	paragraph := statute.Paragraph(chi.URLParam(r, "paragraph"))

	years := h.Registry.Years(paragraph)
	if len(years) == 0 {
		writeError(w, http.StatusNotFound, "Paragraph not registered", nil)
		return
	}

	dtos := make([]ParameterYearDTO, 0, len(years))
	for _, y := range years {
		set, err := h.Registry.Lookup(paragraph, y)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to read parameter set", err)
			return
		}
		dtos = append(dtos, toParameterYearDTO(set))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// Health is the liveness probe.
// GET /api/health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeComputeError(w http.ResponseWriter, err error) {
	switch {
	case statute.IsHouseholdInvalid(err):
		writeError(w, http.StatusBadRequest, "Invalid household configuration", err)
	case statute.IsParameterMissing(err):
		writeError(w, http.StatusUnprocessableEntity, "No parameter set for the requested year", err)
	default:
		writeError(w, http.StatusInternalServerError, "Computation failed", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
