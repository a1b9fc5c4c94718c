// Package dashboard holds the admin-side view logic: the login screen and
// the feedback dashboard, minus any markup. Views talk to the API only
// through an injected *client.Client and report navigation as a Route.
package dashboard

import (
	"context"
	"errors"
	"fmt"

	"feedback-backend/internal/client"
	"feedback-backend/internal/models"
)

type Route string

const (
	RouteLogin     Route = "/admin"
	RouteDashboard Route = "/admin/dashboard"
)

// API is the subset of *client.Client the views use.
type API interface {
	Login(ctx context.Context, username, password string) (*client.Result, error)
	Logout() error
	IsAuthenticated() bool
	GetAllFeedback(ctx context.Context) ([]models.Feedback, *client.Result, error)
	DeleteFeedback(ctx context.Context, id string) (*client.Result, error)
}

// Dashboard is the admin feedback list with its local hide toggles.
type Dashboard struct {
	api      API
	feedback []models.Feedback
	hidden   map[string]struct{}
	err      error
}

func New(api API) *Dashboard {
	return &Dashboard{api: api, hidden: make(map[string]struct{})}
}

// Mount loads the list, or sends the user to the login screen when no token
// is stored or the server rejects it.
func (d *Dashboard) Mount(ctx context.Context) (Route, error) {
	d.err = nil
	if !d.api.IsAuthenticated() {
		return RouteLogin, nil
	}

	items, _, err := d.api.GetAllFeedback(ctx)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			return d.forceLogout()
		}
		d.err = fmt.Errorf("failed to load feedback data: %w", err)
		return RouteDashboard, d.err
	}

	d.feedback = items
	d.hidden = make(map[string]struct{})
	return RouteDashboard, nil
}

// ToggleHidden flips the local hidden flag for id. The record stays in the list.
func (d *Dashboard) ToggleHidden(id string) bool {
	if _, ok := d.hidden[id]; ok {
		delete(d.hidden, id)
		return false
	}
	d.hidden[id] = struct{}{}
	return true
}

func (d *Dashboard) IsHidden(id string) bool {
	_, ok := d.hidden[id]
	return ok
}

// Delete removes the record on the server, then from the local list and
// hidden set. On failure local state is untouched and the error is returned
// for the caller to surface. A 401 also logs out.
func (d *Dashboard) Delete(ctx context.Context, id string) (Route, error) {
	if _, err := d.api.DeleteFeedback(ctx, id); err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			route, _ := d.forceLogout()
			return route, fmt.Errorf("failed to delete feedback: %w", err)
		}
		return RouteDashboard, fmt.Errorf("failed to delete feedback: %w", err)
	}

	kept := make([]models.Feedback, 0, len(d.feedback))
	for _, f := range d.feedback {
		if f.ID != id {
			kept = append(kept, f)
		}
	}
	d.feedback = kept
	delete(d.hidden, id)
	return RouteDashboard, nil
}

func (d *Dashboard) Logout() (Route, error) {
	if err := d.api.Logout(); err != nil {
		return RouteLogin, fmt.Errorf("logout: %w", err)
	}
	d.reset()
	return RouteLogin, nil
}

// All returns every loaded record, hidden or not.
func (d *Dashboard) All() []models.Feedback {
	return d.feedback
}

// Visible returns the records not toggled hidden, in list order.
func (d *Dashboard) Visible() []models.Feedback {
	out := make([]models.Feedback, 0, len(d.feedback))
	for _, f := range d.feedback {
		if !d.IsHidden(f.ID) {
			out = append(out, f)
		}
	}
	return out
}

// HiddenCount counts hidden ids that are still in the list.
func (d *Dashboard) HiddenCount() int {
	n := 0
	for _, f := range d.feedback {
		if d.IsHidden(f.ID) {
			n++
		}
	}
	return n
}

func (d *Dashboard) Total() int { return len(d.feedback) }

// Err is the last load error shown inline, if any.
func (d *Dashboard) Err() error { return d.err }

func (d *Dashboard) forceLogout() (Route, error) {
	_ = d.api.Logout()
	d.reset()
	return RouteLogin, nil
}

func (d *Dashboard) reset() {
	d.feedback = nil
	d.hidden = make(map[string]struct{})
	d.err = nil
}
