package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"feedback-backend/internal/repository"
)

type HealthHandler struct {
	feedbackRepo repository.FeedbackRepository
	service      string
}

func NewHealthHandler(feedbackRepo repository.FeedbackRepository, service string) *HealthHandler {
	return &HealthHandler{feedbackRepo: feedbackRepo, service: service}
}

// --- GET /health ---

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	body := map[string]string{"status": "ok", "service": h.service, "store": "ok"}
	if err := h.feedbackRepo.Ping(ctx); err != nil {
		log.Printf("Health check: store unavailable: %v", err)
		status = http.StatusServiceUnavailable
		body["status"] = "degraded"
		body["store"] = "unavailable"
	}

	writeJSON(w, status, body)
}
