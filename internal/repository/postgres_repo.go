package repository

import (
	"context"
	"database/sql"
	"fmt"

	"feedback-backend/internal/models"
)

type PostgresFeedbackRepo struct {
	db *sql.DB
}

var _ FeedbackRepository = (*PostgresFeedbackRepo)(nil)

func NewPostgresFeedbackRepo(db *sql.DB) *PostgresFeedbackRepo {
	return &PostgresFeedbackRepo{db: db}
}

func (r *PostgresFeedbackRepo) Create(ctx context.Context, feedback *models.Feedback) error {
	stamp(feedback)
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO feedback (id, name, email, product_name, comment, rating, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		feedback.ID,
		feedback.Name,
		feedback.Email,
		feedback.ProductName,
		feedback.Comment,
		feedback.Rating,
		feedback.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert feedback: %w", err)
	}
	return nil
}

func (r *PostgresFeedbackRepo) List(ctx context.Context) ([]models.Feedback, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, email, product_name, comment, rating, created_at
		FROM feedback
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query feedback: %w", err)
	}
	defer rows.Close()

	items := []models.Feedback{}
	for rows.Next() {
		var f models.Feedback
		if err := rows.Scan(&f.ID, &f.Name, &f.Email, &f.ProductName, &f.Comment, &f.Rating, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan feedback: %w", err)
		}
		items = append(items, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate feedback: %w", err)
	}
	return items, nil
}

func (r *PostgresFeedbackRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM feedback WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete feedback: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresFeedbackRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
