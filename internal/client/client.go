// Package client is the single point of HTTP access to the feedback API.
//
// A Client is built once per session with a base URL and a TokenStore and
// passed to whatever needs it. Every call yields a Result carrying the
// status and raw body; non-2xx statuses are also returned as *APIError, and
// network or decode failures as *TransportError.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"feedback-backend/internal/models"
)

// Result is the uniform outcome of a call that reached the server.
type Result struct {
	OK     bool
	Status int
	Data   json.RawMessage
}

// Err converts a non-2xx Result into an *APIError.
func (r *Result) Err() error {
	if r.OK {
		return nil
	}
	var body struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(r.Data, &body) == nil && body.Error != "" {
		return &APIError{StatusCode: r.Status, Message: body.Error}
	}
	msg := strings.TrimSpace(string(r.Data))
	if msg == "" {
		msg = http.StatusText(r.Status)
	}
	return &APIError{StatusCode: r.Status, Message: msg}
}

// DecodeData unmarshals the payload inside the {"data": ...} envelope into v.
func (r *Result) DecodeData(v interface{}) error {
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(r.Data, &env); err != nil {
		return &TransportError{Op: "decoding envelope", Err: err}
	}
	if len(env.Data) == 0 {
		return &TransportError{Op: "decoding envelope", Err: fmt.Errorf("missing data field")}
	}
	if err := json.Unmarshal(env.Data, v); err != nil {
		return &TransportError{Op: "decoding data", Err: err}
	}
	return nil
}

type Client struct {
	baseURL    string
	tokens     TokenStore
	httpClient *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a client targeting baseURL (e.g. "http://localhost:5000").
func New(baseURL string, tokens TokenStore, opts ...Option) *Client {
	if tokens == nil {
		tokens = NewMemoryTokenStore()
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		tokens:     tokens,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string { return c.baseURL }

// --- Auth ---

// Login exchanges credentials for a token and stores it. Nothing is stored
// unless the server returns a token.
func (c *Client) Login(ctx context.Context, username, password string) (*Result, error) {
	res, err := c.Request(ctx, http.MethodPost, "/admin/login", models.LoginRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		if res != nil && res.Status == http.StatusUnauthorized {
			return res, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
		}
		return res, err
	}

	var payload models.LoginResponse
	if err := res.DecodeData(&payload); err != nil {
		return res, err
	}
	if payload.Token == "" {
		return res, fmt.Errorf("login response did not include a token")
	}
	if err := c.tokens.Set(payload.Token); err != nil {
		return res, fmt.Errorf("store token: %w", err)
	}
	return res, nil
}

// Logout discards the stored token. The server keeps no session state.
func (c *Client) Logout() error {
	return c.tokens.Clear()
}

func (c *Client) IsAuthenticated() bool {
	token, err := c.tokens.Get()
	return err == nil && token != ""
}

// --- Feedback ---

func (c *Client) SubmitFeedback(ctx context.Context, req models.CreateFeedbackRequest) (*models.Feedback, *Result, error) {
	res, err := c.Request(ctx, http.MethodPost, "/feedback", req)
	if err != nil {
		return nil, res, err
	}
	var feedback models.Feedback
	if err := res.DecodeData(&feedback); err != nil {
		return nil, res, err
	}
	return &feedback, res, nil
}

// GetAllFeedback fetches the list and normalizes whichever envelope shape
// the server used.
func (c *Client) GetAllFeedback(ctx context.Context) ([]models.Feedback, *Result, error) {
	res, err := c.Request(ctx, http.MethodGet, "/feedback", nil)
	if err != nil {
		return nil, res, err
	}
	tree, err := res.Tree()
	if err != nil {
		return nil, res, err
	}
	return ExtractFeedback(tree), res, nil
}

func (c *Client) DeleteFeedback(ctx context.Context, id string) (*Result, error) {
	return c.Request(ctx, http.MethodDelete, "/feedback/"+url.PathEscape(id), nil)
}

func (c *Client) Health(ctx context.Context) (*Result, error) {
	return c.Request(ctx, http.MethodGet, "/health", nil)
}

// Request performs one JSON call, attaching the stored token when present.
// When the server answered, the Result is returned even alongside an error.
func (c *Client) Request(ctx context.Context, method, path string, body interface{}) (*Result, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, &TransportError{Op: "marshaling request body", Err: err}
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, &TransportError{Op: "creating request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token, err := c.tokens.Get(); err == nil && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "performing request", Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: "reading response", Err: err}
	}

	res := &Result{
		OK:     resp.StatusCode >= 200 && resp.StatusCode < 300,
		Status: resp.StatusCode,
		Data:   data,
	}
	// A non-2xx status wins over the body, so a gateway's HTML 401 still
	// reads as ErrUnauthorized.
	if !res.OK {
		return res, res.Err()
	}
	if len(bytes.TrimSpace(data)) > 0 && !json.Valid(data) {
		return res, &TransportError{Op: "decoding response", Err: fmt.Errorf("HTTP %d body is not JSON", resp.StatusCode)}
	}
	return res, res.Err()
}
