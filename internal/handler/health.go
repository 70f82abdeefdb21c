package handler

import (
	"net/http"
	"time"
)

type rootResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// Root handles GET /.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, rootResponse{
		Message: "Portfolio Contact API is running!",
		Status:  "active",
	})
}

// Health handles GET /health. The core holds no external connections, so
// a serving process is a healthy process.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
	})
}
