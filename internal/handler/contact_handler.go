package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/m-ahsan-bilal/portfolio-api/internal/model"
	"github.com/m-ahsan-bilal/portfolio-api/internal/repository"
	"github.com/m-ahsan-bilal/portfolio-api/internal/service"
	"github.com/m-ahsan-bilal/portfolio-api/internal/validate"
)

// ContactHandler handles contact form submission and retrieval.
type ContactHandler struct {
	intake            service.IntakeService
	trustedProxyCount int
	memoryStorage     bool
}

// NewContactHandler creates a ContactHandler with the given service.
// memoryStorage marks whether the ledger is the in-memory default, which
// the list endpoint reports in its debug info.
func NewContactHandler(intake service.IntakeService, trustedProxyCount int, memoryStorage bool) *ContactHandler {
	return &ContactHandler{
		intake:            intake,
		trustedProxyCount: trustedProxyCount,
		memoryStorage:     memoryStorage,
	}
}

// errorResponse is the body of every failure response. Field is set only
// for validation failures.
type errorResponse struct {
	Detail string `json:"detail"`
	Field  string `json:"field,omitempty"`
}

// submitResponse is the JSON response for an accepted submission.
type submitResponse struct {
	Success      bool      `json:"success"`
	Message      string    `json:"message"`
	SubmissionID int       `json:"submission_id"`
	Timestamp    time.Time `json:"timestamp"`
}

// Submit handles POST /contact.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req model.ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Detail: "invalid request body",
			Field:  "body",
		})
		return
	}

	client := ClientIDFromRequest(r, h.trustedProxyCount)
	sub, err := h.intake.Submit(r.Context(), req, client)
	if err != nil {
		h.writeSubmitError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, submitResponse{
		Success:      true,
		Message:      "Contact form submitted successfully!",
		SubmissionID: sub.ID,
		Timestamp:    sub.Timestamp,
	})
}

// writeSubmitError maps the intake service's typed failures onto status
// codes. Anything untyped is an internal error and stays opaque.
func (h *ContactHandler) writeSubmitError(w http.ResponseWriter, err error) {
	var verr *validate.Error
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Detail: verr.Error(),
			Field:  verr.Field,
		})
		return
	}

	var rerr *service.RateLimitError
	if errors.As(err, &rerr) {
		if secs := int(rerr.RetryAfter.Seconds()) + 1; secs > 0 {
			w.Header().Set("Retry-After", strconv.Itoa(secs))
		}
		writeJSON(w, http.StatusTooManyRequests, errorResponse{
			Detail: "Too many submissions. Please wait before submitting again.",
		})
		return
	}

	writeJSON(w, http.StatusInternalServerError, errorResponse{
		Detail: "Internal server error",
	})
}

// listResponse is the JSON response for GET /contacts.
type listResponse struct {
	Submissions []*model.Submission `json:"submissions"`
	Total       int                 `json:"total"`
	DebugInfo   debugInfo           `json:"debug_info"`
}

type debugInfo struct {
	ServerStarted bool   `json:"server_started"`
	MemoryStorage bool   `json:"memory_storage"`
	Note          string `json:"note"`
}

// List handles GET /contacts.
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	submissions, err := h.intake.List(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Detail: "Internal server error"})
		return
	}

	// Return [] not null for empty ledgers
	if submissions == nil {
		submissions = []*model.Submission{}
	}

	note := "Submissions are stored in the configured database"
	if h.memoryStorage {
		note = "Data will be lost when server restarts"
	}

	writeJSON(w, http.StatusOK, listResponse{
		Submissions: submissions,
		Total:       len(submissions),
		DebugInfo: debugInfo{
			ServerStarted: true,
			MemoryStorage: h.memoryStorage,
			Note:          note,
		},
	})
}

// Get handles GET /contacts/{id}. A non-numeric id names a submission that
// cannot exist, so it is reported the same way as an out-of-range one.
func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Detail: "Submission not found"})
		return
	}

	sub, err := h.intake.Get(r.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse{Detail: "Submission not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Detail: "Internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, sub)
}
