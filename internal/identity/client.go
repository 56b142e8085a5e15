// Package identity is the HTTP client for the external identity store that
// owns account credentials. The relational profile row is kept in sync with
// it by the auth and user services.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

var (
	ErrAccountExists   = errors.New("identity account already exists")
	ErrAccountNotFound = errors.New("identity account not found")
)

// UpstreamError carries the identity store's own diagnostics through to the
// API error response.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("identity store returned %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
}

func NewClient(baseURL, serviceKey string) *Client {
	return &Client{
		baseURL:    baseURL,
		serviceKey: serviceKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type createAccountRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type createAccountResponse struct {
	ID string `json:"id"`
}

// CreateAccount registers the credential with the identity store and returns
// the account id.
func (c *Client) CreateAccount(ctx context.Context, email, password string) (string, error) {
	body, err := json.Marshal(createAccountRequest{Email: email, Password: password})
	if err != nil {
		return "", fmt.Errorf("json.Marshal -> %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, "/accounts", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
	case http.StatusConflict:
		return "", ErrAccountExists
	default:
		return "", &UpstreamError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	var created createAccountResponse
	if err = json.Unmarshal(respBody, &created); err != nil {
		return "", fmt.Errorf("json.Unmarshal -> %w", err)
	}

	return created.ID, nil
}

// DeleteAccount removes the credential. Deleting an absent account returns
// ErrAccountNotFound.
func (c *Client) DeleteAccount(ctx context.Context, accountID string) error {
	resp, err := c.do(ctx, http.MethodDelete, "/accounts/"+accountID, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent:
		return nil
	case http.StatusNotFound:
		return ErrAccountNotFound
	default:
		return &UpstreamError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("http.NewRequestWithContext -> %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("c.httpClient.Do -> %w", err)
	}

	return resp, nil
}
