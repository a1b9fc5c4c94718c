package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"feedback-backend/internal/models"
	"feedback-backend/internal/notify"
	"feedback-backend/internal/repository"

	"github.com/go-chi/chi/v5"
)

const notifyTimeout = 10 * time.Second

type FeedbackHandler struct {
	feedbackRepo repository.FeedbackRepository
	notifier     notify.Notifier
}

func NewFeedbackHandler(feedbackRepo repository.FeedbackRepository, notifier notify.Notifier) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackRepo: feedbackRepo,
		notifier:     notifier,
	}
}

// --- POST /feedback ---

func (h *FeedbackHandler) CreateFeedback(w http.ResponseWriter, r *http.Request) {
	var req models.CreateFeedbackRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Rating != nil && !models.ValidRating(*req.Rating) {
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("rating must be between %d and %d", models.MinRating, models.MaxRating))
		return
	}

	feedback := req.ToFeedback()
	if err := h.feedbackRepo.Create(r.Context(), feedback); err != nil {
		log.Printf("Error creating feedback: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to submit feedback")
		return
	}

	// Fire the notification in a background goroutine (non-blocking)
	if h.notifier != nil {
		message := notify.FormatFeedback(feedback)
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
			defer cancel()
			if err := h.notifier.Publish(ctx, message); err != nil {
				log.Printf("Error publishing feedback notification: %v", err)
			}
		}()
	}

	writeData(w, http.StatusCreated, feedback)
}

// --- GET /feedback ---

func (h *FeedbackHandler) ListFeedback(w http.ResponseWriter, r *http.Request) {
	items, err := h.feedbackRepo.List(r.Context())
	if err != nil {
		log.Printf("Error listing feedback: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to load feedback")
		return
	}
	if items == nil {
		items = []models.Feedback{}
	}

	writeData(w, http.StatusOK, models.FeedbackList{Items: items})
}

// --- DELETE /feedback/{id} ---

func (h *FeedbackHandler) DeleteFeedback(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "feedback id is required")
		return
	}

	err := h.feedbackRepo.Delete(r.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, http.StatusNotFound, "feedback not found")
		return
	}
	if err != nil {
		log.Printf("Error deleting feedback %s: %v", id, err)
		writeError(w, http.StatusInternalServerError, "failed to delete feedback")
		return
	}

	writeData(w, http.StatusOK, models.DeleteResult{ID: id, Deleted: true})
}
