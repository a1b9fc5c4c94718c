package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"feedback-backend/internal/auth"
	"feedback-backend/internal/models"
	"feedback-backend/internal/repository"

	"github.com/go-chi/chi/v5"
)

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
	done     chan struct{}
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{done: make(chan struct{}, 8)}
}

func (n *recordingNotifier) Publish(ctx context.Context, message string) error {
	n.mu.Lock()
	n.messages = append(n.messages, message)
	n.mu.Unlock()
	n.done <- struct{}{}
	return nil
}

type failingRepo struct {
	err error
}

func (f *failingRepo) Create(ctx context.Context, feedback *models.Feedback) error { return f.err }
func (f *failingRepo) List(ctx context.Context) ([]models.Feedback, error)         { return nil, f.err }
func (f *failingRepo) Delete(ctx context.Context, id string) error                 { return f.err }
func (f *failingRepo) Ping(ctx context.Context) error                              { return f.err }

func makeRequest(method, path, body string) *http.Request {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	return req
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder, data interface{}) {
	t.Helper()
	env := struct {
		Data json.RawMessage `json:"data"`
	}{}
	if err := json.NewDecoder(w.Body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v (body %q)", err, w.Body.String())
	}
	if err := json.Unmarshal(env.Data, data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
}

func TestCreateFeedback(t *testing.T) {
	repo := repository.NewMemoryFeedbackRepo()
	notifier := newRecordingNotifier()
	h := NewFeedbackHandler(repo, notifier)

	w := httptest.NewRecorder()
	h.CreateFeedback(w, makeRequest(http.MethodPost, "/feedback",
		`{"name":"Amy","email":"amy@example.com","product_name":"Widget","comment":"great","rating":4}`))

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var got models.Feedback
	decodeEnvelope(t, w, &got)
	if got.ID == "" || got.CreatedAt.IsZero() {
		t.Errorf("server did not assign id/created_at: %+v", got)
	}
	if got.Name != "Amy" || got.Rating != 4 || got.ProductName != "Widget" {
		t.Errorf("unexpected record: %+v", got)
	}

	select {
	case <-notifier.done:
	case <-time.After(2 * time.Second):
		t.Fatal("notification was not published")
	}
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	if len(notifier.messages) != 1 || !strings.Contains(notifier.messages[0], "Widget") {
		t.Errorf("messages = %q", notifier.messages)
	}
}

func TestCreateFeedbackDefaults(t *testing.T) {
	for _, body := range []string{`{}`, ``, `{"name":"   "}`, `{"unknown":"field"}`} {
		t.Run(body, func(t *testing.T) {
			h := NewFeedbackHandler(repository.NewMemoryFeedbackRepo(), nil)
			w := httptest.NewRecorder()
			h.CreateFeedback(w, makeRequest(http.MethodPost, "/feedback", body))

			if w.Code != http.StatusCreated {
				t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
			}
			var got models.Feedback
			decodeEnvelope(t, w, &got)
			if got.Name != models.DefaultName {
				t.Errorf("Name = %q, want %q", got.Name, models.DefaultName)
			}
			if got.Rating != 0 {
				t.Errorf("Rating = %d, want 0", got.Rating)
			}
		})
	}
}

func TestCreateFeedbackStripsNUL(t *testing.T) {
	repo := repository.NewMemoryFeedbackRepo()
	h := NewFeedbackHandler(repo, nil)
	w := httptest.NewRecorder()
	h.CreateFeedback(w, makeRequest(http.MethodPost, "/feedback", `{"name":"Amy\u0000","comment":"bad\u0000byte"}`))
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var got models.Feedback
	decodeEnvelope(t, w, &got)
	if got.Name != "Amy" || got.Comment != "badbyte" {
		t.Errorf("NUL not stripped: %+v", got)
	}

	stored, err := repo.List(context.Background())
	if err != nil || len(stored) != 1 {
		t.Fatalf("List: %v %+v", err, stored)
	}
	if strings.ContainsRune(stored[0].Comment, 0) {
		t.Errorf("stored comment still has NUL: %q", stored[0].Comment)
	}
}

func TestCreateFeedbackValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"name":`},
		{"rating too high", `{"rating":6}`},
		{"rating negative", `{"rating":-1}`},
		{"rating wrong type", `{"rating":"five"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := repository.NewMemoryFeedbackRepo()
			h := NewFeedbackHandler(repo, nil)
			w := httptest.NewRecorder()
			h.CreateFeedback(w, makeRequest(http.MethodPost, "/feedback", tt.body))

			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", w.Code)
			}
			items, _ := repo.List(context.Background())
			if len(items) != 0 {
				t.Errorf("invalid payload was persisted: %+v", items)
			}
		})
	}
}

func TestCreateFeedbackTooLarge(t *testing.T) {
	h := NewFeedbackHandler(repository.NewMemoryFeedbackRepo(), nil)
	big := `{"comment":"` + strings.Repeat("a", maxBodyBytes) + `"}`
	w := httptest.NewRecorder()
	h.CreateFeedback(w, makeRequest(http.MethodPost, "/feedback", big))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestCreateFeedbackStoreError(t *testing.T) {
	h := NewFeedbackHandler(&failingRepo{err: errors.New("db down")}, nil)
	w := httptest.NewRecorder()
	h.CreateFeedback(w, makeRequest(http.MethodPost, "/feedback", `{"rating":3}`))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if strings.Contains(w.Body.String(), "db down") {
		t.Error("internal error leaked to the client")
	}
}

func TestListFeedback(t *testing.T) {
	repo := repository.NewMemoryFeedbackRepo()
	for _, name := range []string{"a", "b", "c"} {
		_ = repo.Create(context.Background(), &models.Feedback{Name: name})
	}
	h := NewFeedbackHandler(repo, nil)

	w := httptest.NewRecorder()
	h.ListFeedback(w, makeRequest(http.MethodGet, "/feedback", ""))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var list models.FeedbackList
	decodeEnvelope(t, w, &list)
	if len(list.Items) != 3 {
		t.Errorf("len(items) = %d, want 3", len(list.Items))
	}
}

func TestListFeedbackEmptyIsArray(t *testing.T) {
	h := NewFeedbackHandler(repository.NewMemoryFeedbackRepo(), nil)
	w := httptest.NewRecorder()
	h.ListFeedback(w, makeRequest(http.MethodGet, "/feedback", ""))

	if got := strings.TrimSpace(w.Body.String()); got != `{"data":{"items":[]}}` {
		t.Errorf("body = %s", got)
	}
}

func TestListFeedbackStoreError(t *testing.T) {
	h := NewFeedbackHandler(&failingRepo{err: errors.New("db down")}, nil)
	w := httptest.NewRecorder()
	h.ListFeedback(w, makeRequest(http.MethodGet, "/feedback", ""))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
}

func TestDeleteFeedback(t *testing.T) {
	repo := repository.NewMemoryFeedbackRepo()
	f := &models.Feedback{Name: "Amy"}
	_ = repo.Create(context.Background(), f)
	h := NewFeedbackHandler(repo, nil)

	w := httptest.NewRecorder()
	h.DeleteFeedback(w, withURLParam(makeRequest(http.MethodDelete, "/feedback/"+f.ID, ""), "id", f.ID))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var res models.DeleteResult
	decodeEnvelope(t, w, &res)
	if res.ID != f.ID || !res.Deleted {
		t.Errorf("result = %+v", res)
	}

	// Deleting again is a consistent 404.
	for i := 0; i < 2; i++ {
		w = httptest.NewRecorder()
		h.DeleteFeedback(w, withURLParam(makeRequest(http.MethodDelete, "/feedback/"+f.ID, ""), "id", f.ID))
		if w.Code != http.StatusNotFound {
			t.Fatalf("repeat delete status = %d, want 404", w.Code)
		}
	}
}

func TestDeleteFeedbackStoreError(t *testing.T) {
	h := NewFeedbackHandler(&failingRepo{err: errors.New("db down")}, nil)
	w := httptest.NewRecorder()
	h.DeleteFeedback(w, withURLParam(makeRequest(http.MethodDelete, "/feedback/x", ""), "id", "x"))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
}

func TestLogin(t *testing.T) {
	a := auth.NewAuthenticator("admin", "pw", "secret", 0)
	h := NewAuthHandler(a)

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"success", `{"username":"admin","password":"pw"}`, http.StatusOK},
		{"wrong password", `{"username":"admin","password":"nope"}`, http.StatusUnauthorized},
		{"missing fields", `{"username":"admin"}`, http.StatusBadRequest},
		{"malformed", `not json`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.Login(w, makeRequest(http.MethodPost, "/admin/login", tt.body))
			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", w.Code, tt.wantStatus, w.Body.String())
			}
			if tt.wantStatus != http.StatusOK {
				if strings.Contains(w.Body.String(), "token") {
					t.Errorf("failed login leaked a token: %s", w.Body.String())
				}
				return
			}
			var resp models.LoginResponse
			decodeEnvelope(t, w, &resp)
			if _, err := a.Authorize(resp.Token); err != nil {
				t.Errorf("issued token does not authorize: %v", err)
			}
		})
	}
}

type brokenIssuer struct{}

func (brokenIssuer) Login(username, password string) (string, error) {
	return "", errors.New("signer unavailable")
}

func TestLoginIssuerError(t *testing.T) {
	h := NewAuthHandler(brokenIssuer{})
	w := httptest.NewRecorder()
	h.Login(w, makeRequest(http.MethodPost, "/admin/login", `{"username":"a","password":"b"}`))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
}

func TestHealth(t *testing.T) {
	w := httptest.NewRecorder()
	NewHealthHandler(repository.NewMemoryFeedbackRepo(), "svc").Health(w, makeRequest(http.MethodGet, "/health", ""))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" || body["service"] != "svc" {
		t.Errorf("body = %v", body)
	}

	w = httptest.NewRecorder()
	NewHealthHandler(&failingRepo{err: errors.New("down")}, "svc").Health(w, makeRequest(http.MethodGet, "/health", ""))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("degraded status = %d, want 503", w.Code)
	}
	if !bytes.Contains(w.Body.Bytes(), []byte(`"store":"unavailable"`)) {
		t.Errorf("body = %s", w.Body.String())
	}
}
