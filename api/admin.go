package api

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mightytheif/sakany/internal/jobs"
	"github.com/mightytheif/sakany/internal/visibility"
	"github.com/mightytheif/sakany/pkg/models"
	"github.com/mightytheif/sakany/pkg/repository"
)

// AdminHandler serves the moderation queue. All routes behind it require the
// admin middleware; the handler itself does not re-check the role.
type AdminHandler struct {
	propRepo repository.PropertyRepo
	queue    jobs.Queue
}

func NewAdminHandler(pr repository.PropertyRepo, q jobs.Queue) *AdminHandler {
	return &AdminHandler{propRepo: pr, queue: q}
}

// ListPending returns listings awaiting a moderation decision, oldest intent
// first by creation order within the page window.
func (h *AdminHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r.URL.Query().Get("limit"), r.URL.Query().Get("offset"))
	props, err := h.propRepo.ListByStatus(r.Context(), models.StatusPending, limit, offset)
	if err != nil {
		http.Error(w, "failed to list pending properties", http.StatusInternalServerError)
		return
	}
	if props == nil {
		props = []models.Property{}
	}

	writeJSON(w, map[string]any{"items": props}, http.StatusOK)
}

func (h *AdminHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, visibility.Approve(), "approved")
}

func (h *AdminHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, visibility.Reject(), "rejected")
}

func (h *AdminHandler) decide(w http.ResponseWriter, r *http.Request, d visibility.Decision, verdict string) {
	propertyID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || propertyID <= 0 {
		http.Error(w, "invalid property id", http.StatusBadRequest)
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
	if p.Status == models.StatusRejected {
		// Rejection is terminal; a rejected listing never re-enters the queue.
		http.Error(w, "property is rejected", http.StatusConflict)
		return
	}

	if err := h.propRepo.SetModeration(r.Context(), propertyID, d.Verified, d.Status); err != nil {
		http.Error(w, "failed to apply decision", http.StatusInternalServerError)
		return
	}

	payload := jobs.DecisionPayload{
		PropertyID: propertyID,
		OwnerID:    p.OwnerID,
		Decision:   verdict,
		Title:      p.Title,
	}
	if _, err := h.queue.Enqueue(r.Context(), jobs.TypeNotifyDecision, payload, 5, 3); err != nil {
		logger.Error("enqueue decision notification", "property", propertyID, "err", err)
	}

	p.Verified = d.Verified
	p.Status = d.Status
	writeJSON(w, p, http.StatusOK)
}
