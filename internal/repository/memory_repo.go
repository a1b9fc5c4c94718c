package repository

import (
	"context"
	"sort"
	"sync"

	"feedback-backend/internal/models"
)

// MemoryFeedbackRepo keeps feedback in process memory. Used for local
// development (STORE_DRIVER=memory) and tests; contents vanish on restart.
type MemoryFeedbackRepo struct {
	mu    sync.RWMutex
	items map[string]models.Feedback
}

var _ FeedbackRepository = (*MemoryFeedbackRepo)(nil)

func NewMemoryFeedbackRepo() *MemoryFeedbackRepo {
	return &MemoryFeedbackRepo{items: make(map[string]models.Feedback)}
}

func (r *MemoryFeedbackRepo) Create(ctx context.Context, feedback *models.Feedback) error {
	stamp(feedback)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[feedback.ID] = *feedback
	return nil
}

func (r *MemoryFeedbackRepo) List(ctx context.Context) ([]models.Feedback, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]models.Feedback, 0, len(r.items))
	for _, f := range r.items {
		items = append(items, f)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func (r *MemoryFeedbackRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *MemoryFeedbackRepo) Ping(ctx context.Context) error { return nil }
