package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// RemoteIdentity is the claim set returned by the auth-service for a valid token.
type RemoteIdentity struct {
	ID       string `json:"id"`
	Fullname string `json:"fullname"`
	Email    string `json:"email"`
}

// VerifyClient verifies identity tokens against a remote auth-service.
// Every call is bounded by the client timeout, so an unreachable
// auth-service fails the request instead of hanging it.
type VerifyClient struct {
	baseURL string
	http    *http.Client
}

func NewVerifyClient(baseURL string, timeout time.Duration) *VerifyClient {
	return &VerifyClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// Verify posts the token to the auth-service verify endpoint.
// A 401 from the auth-service maps to ErrInvalidToken; any transport
// failure or 5xx maps to ErrAuthUnavailable.
func (c *VerifyClient) Verify(ctx context.Context, token string) (*RemoteIdentity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/auth/verify", nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuthUnavailable, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuthUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to decode
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, ErrInvalidToken
	default:
		return nil, fmt.Errorf("%w: unexpected status %d", ErrAuthUnavailable, resp.StatusCode)
	}

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Valid bool           `json:"valid"`
			User  RemoteIdentity `json:"user"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: bad response body: %v", ErrAuthUnavailable, err)
	}
	if !body.Data.Valid || body.Data.User.ID == "" {
		return nil, ErrInvalidToken
	}
	return &body.Data.User, nil
}
