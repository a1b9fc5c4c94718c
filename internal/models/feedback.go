package models

import (
	"strings"
	"time"
)

// DefaultName is stored when a submission leaves the name blank.
const DefaultName = "Anonymous"

// Rating bounds accepted by the feedback form.
const (
	MinRating = 0
	MaxRating = 5
)

type Feedback struct {
	ID          string    `bson:"_id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Email       string    `bson:"email" json:"email"`
	ProductName string    `bson:"product_name" json:"product_name"`
	Comment     string    `bson:"comment" json:"comment"`
	Rating      int       `bson:"rating" json:"rating"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

// CreateFeedbackRequest is the public form payload. Every field is optional.
type CreateFeedbackRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	ProductName string `json:"product_name"`
	Comment     string `json:"comment"`
	Rating      *int   `json:"rating"`
}

// ToFeedback builds an unsaved record; id and created_at are left to the store.
func (r *CreateFeedbackRequest) ToFeedback() *Feedback {
	f := &Feedback{
		Name:        strings.TrimSpace(stripNUL(r.Name)),
		Email:       strings.TrimSpace(stripNUL(r.Email)),
		ProductName: strings.TrimSpace(stripNUL(r.ProductName)),
		Comment:     stripNUL(r.Comment),
	}
	if f.Name == "" {
		f.Name = DefaultName
	}
	if r.Rating != nil {
		f.Rating = *r.Rating
	}
	return f
}

// stripNUL drops U+0000, which PostgreSQL TEXT columns reject.
func stripNUL(s string) string {
	return strings.ReplaceAll(s, "\x00", "")
}

func ValidRating(rating int) bool {
	return rating >= MinRating && rating <= MaxRating
}

// Stars renders a rating as filled and empty stars, clamped to the valid range.
func Stars(rating int) string {
	if rating < MinRating {
		rating = MinRating
	}
	if rating > MaxRating {
		rating = MaxRating
	}
	return strings.Repeat("★", rating) + strings.Repeat("☆", MaxRating-rating)
}
