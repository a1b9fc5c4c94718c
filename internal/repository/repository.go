package repository

import (
	"context"
	"errors"
	"time"

	"feedback-backend/internal/models"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a feedback id does not exist.
var ErrNotFound = errors.New("feedback not found")

// FeedbackRepository is the persistence contract shared by every store backend.
type FeedbackRepository interface {
	// Create assigns ID and CreatedAt, then persists the record.
	Create(ctx context.Context, feedback *models.Feedback) error
	// List returns every record, newest first.
	List(ctx context.Context) ([]models.Feedback, error)
	// Delete removes the record or returns ErrNotFound.
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}

func stamp(feedback *models.Feedback) {
	feedback.ID = uuid.NewString()
	feedback.CreatedAt = time.Now().UTC()
	if feedback.Name == "" {
		feedback.Name = models.DefaultName
	}
}
