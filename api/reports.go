package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mightytheif/sakany/internal/jobs"
	"github.com/mightytheif/sakany/pkg/models"
	"github.com/mightytheif/sakany/pkg/repository"
)

// ReportsHandler lets users flag listings and admins work the report queue.
// Every new report enqueues a triage job so repeat offenders get pulled from
// public lists without blocking the reporting request.
type ReportsHandler struct {
	reportRepo repository.ReportRepo
	propRepo   repository.PropertyRepo
	queue      jobs.Queue
}

func NewReportsHandler(rr repository.ReportRepo, pr repository.PropertyRepo, q jobs.Queue) *ReportsHandler {
	return &ReportsHandler{reportRepo: rr, propRepo: pr, queue: q}
}

type createReportRequest struct {
	Reason  string `json:"reason"`
	Details string `json:"details"`
}

func (h *ReportsHandler) Create(w http.ResponseWriter, r *http.Request) {
	propertyID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || propertyID <= 0 {
		http.Error(w, "invalid property id", http.StatusBadRequest)
		return
	}

	var req createReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Reason == "" {
		http.Error(w, "reason is required", http.StatusBadRequest)
		return
	}

	p, err := h.propRepo.GetPropertyByID(r.Context(), propertyID)
	if err != nil {
		http.Error(w, "failed to fetch property", http.StatusInternalServerError)
		return
	}
	if p == nil {
		http.Error(w, "property not found", http.StatusNotFound)
		return
	}

	report := &models.Report{
		PropertyID: propertyID,
		ReporterID: userID(r),
		Reason:     req.Reason,
		Details:    req.Details,
		Status:     models.ReportOpen,
	}
	id, err := h.reportRepo.CreateReport(r.Context(), report)
	if err != nil {
		http.Error(w, "failed to create report", http.StatusInternalServerError)
		return
	}
	report.ID = id

	if _, err := h.queue.Enqueue(r.Context(), jobs.TypeReportTriage, jobs.TriagePayload{PropertyID: propertyID}, 5, 3); err != nil {
		// The report itself is saved; triage will catch up on the next one.
		logger.Error("enqueue report triage", "property", propertyID, "err", err)
	}

	writeJSON(w, report, http.StatusCreated)
}

// List returns reports in the given status, open by default. Admin only.
func (h *ReportsHandler) List(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status == "" {
		status = models.ReportOpen
	}
	switch status {
	case models.ReportOpen, models.ReportResolved, models.ReportDismissed:
	default:
		http.Error(w, "invalid report status", http.StatusBadRequest)
		return
	}

	limit, offset := pagination(r.URL.Query().Get("limit"), r.URL.Query().Get("offset"))
	reports, err := h.reportRepo.ListReportsByStatus(r.Context(), status, limit, offset)
	if err != nil {
		http.Error(w, "failed to list reports", http.StatusInternalServerError)
		return
	}
	if reports == nil {
		reports = []models.Report{}
	}

	writeJSON(w, map[string]any{"items": reports}, http.StatusOK)
}

func (h *ReportsHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	h.close(w, r, models.ReportResolved)
}

func (h *ReportsHandler) Dismiss(w http.ResponseWriter, r *http.Request) {
	h.close(w, r, models.ReportDismissed)
}

func (h *ReportsHandler) close(w http.ResponseWriter, r *http.Request, status string) {
	reportID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || reportID <= 0 {
		http.Error(w, "invalid report id", http.StatusBadRequest)
		return
	}

	report, err := h.reportRepo.GetReportByID(r.Context(), reportID)
	if err != nil {
		http.Error(w, "failed to fetch report", http.StatusInternalServerError)
		return
	}
	if report == nil {
		http.Error(w, "report not found", http.StatusNotFound)
		return
	}
	if report.Status != models.ReportOpen {
		http.Error(w, "report already closed", http.StatusConflict)
		return
	}

	if err := h.reportRepo.UpdateReportStatus(r.Context(), reportID, status); err != nil {
		http.Error(w, "failed to update report", http.StatusInternalServerError)
		return
	}

	report.Status = status
	writeJSON(w, report, http.StatusOK)
}
