package dashboard

import (
	"context"
	"errors"
	"fmt"

	"feedback-backend/internal/client"
)

// LoginView is the admin sign-in screen.
type LoginView struct {
	api API
}

func NewLoginView(api API) *LoginView {
	return &LoginView{api: api}
}

// Mount skips the form when a token is already stored.
func (v *LoginView) Mount() Route {
	if v.api.IsAuthenticated() {
		return RouteDashboard
	}
	return RouteLogin
}

// Submit attempts a login. On any failure the view stays on RouteLogin and
// no token is kept.
func (v *LoginView) Submit(ctx context.Context, username, password string) (Route, error) {
	if username == "" || password == "" {
		return RouteLogin, fmt.Errorf("username and password are required")
	}

	if _, err := v.api.Login(ctx, username, password); err != nil {
		if errors.Is(err, client.ErrInvalidCredentials) {
			return RouteLogin, client.ErrInvalidCredentials
		}
		return RouteLogin, fmt.Errorf("login error: %w", err)
	}
	if !v.api.IsAuthenticated() {
		return RouteLogin, fmt.Errorf("login failed: token not received")
	}
	return RouteDashboard, nil
}
