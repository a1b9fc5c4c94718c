package notify

import (
	"context"
	"fmt"
	"strings"

	"feedback-backend/internal/models"
)

// Notifier publishes a message to wherever the site owner watches for new feedback.
type Notifier interface {
	Publish(ctx context.Context, message string) error
}

// FormatFeedback renders a new submission as a short plain-text message.
func FormatFeedback(f *models.Feedback) string {
	var b strings.Builder
	b.WriteString("📝 New feedback received\n")
	if f.ProductName != "" {
		fmt.Fprintf(&b, "Product: %s\n", f.ProductName)
	}
	fmt.Fprintf(&b, "Rating: %s (%d/%d)\n", models.Stars(f.Rating), f.Rating, models.MaxRating)
	fmt.Fprintf(&b, "From: %s", f.Name)
	if f.Email != "" {
		fmt.Fprintf(&b, " <%s>", f.Email)
	}
	if f.Comment != "" {
		fmt.Fprintf(&b, "\nComment: %s", f.Comment)
	}
	return b.String()
}
