// Package remote talks to a skateday sync server.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/julianstephens/skateday/internal/constants"
	"github.com/julianstephens/skateday/internal/exchange"
	"github.com/julianstephens/skateday/internal/models"
)

var (
	// ErrUnauthorized is returned when the server rejects the session token
	ErrUnauthorized = errors.New("not signed in to the sync server")
	// ErrConflict is returned when registering an email that is taken
	ErrConflict = errors.New("email already registered")
	// ErrNoServer is returned when no remote URL is configured
	ErrNoServer = errors.New("no sync server configured")
)

// APIError carries a non-2xx response from the server
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("sync server returned %d", e.Status)
	}
	return fmt.Sprintf("sync server returned %d: %s", e.Status, e.Message)
}

// Client is a thin JSON client for the sync API
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New creates a client for baseURL. token may be empty for the public
// endpoints.
func New(baseURL, token string) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, ErrNoServer
	}
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: constants.RemoteTimeout},
	}, nil
}

// SetToken replaces the bearer token used for authenticated calls
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out interface{}) error {
	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, r)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("sync request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		apiErr := &APIError{Status: resp.StatusCode, Message: e.Error}
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			return fmt.Errorf("%w: %v", ErrUnauthorized, apiErr)
		case http.StatusConflict:
			return fmt.Errorf("%w: %v", ErrConflict, apiErr)
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode sync response: %w", err)
	}
	return nil
}

func encode(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

// Register creates an account and returns its user id
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (int64, error) {
	body, err := encode(req)
	if err != nil {
		return 0, err
	}
	var resp struct {
		UserID int64 `json:"userId"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", body, &resp); err != nil {
		return 0, err
	}
	return resp.UserID, nil
}

// Login exchanges credentials for a session token. The token is also kept
// on the client.
func (c *Client) Login(ctx context.Context, email, password string) (models.LoginResponse, error) {
	body, err := encode(models.LoginRequest{Email: email, Password: password})
	if err != nil {
		return models.LoginResponse{}, err
	}
	var resp models.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &resp); err != nil {
		return models.LoginResponse{}, err
	}
	c.token = resp.Token
	return resp, nil
}

// GetDays fetches every day stored for the signed-in user
func (c *Client) GetDays(ctx context.Context) ([]models.Day, error) {
	var days []models.Day
	if err := c.do(ctx, http.MethodGet, "/api/days", nil, &days); err != nil {
		return nil, err
	}
	return days, nil
}

// PutDays uploads days; the server replaces the habits of each listed day
func (c *Client) PutDays(ctx context.Context, days []models.Day) error {
	body, err := exchange.Export(days)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPut, "/api/days", body, nil)
}

// Status returns the server's storage and auth configuration
func (c *Client) Status(ctx context.Context) (models.StatusResponse, error) {
	var status models.StatusResponse
	err := c.do(ctx, http.MethodGet, "/api/status", nil, &status)
	return status, err
}
