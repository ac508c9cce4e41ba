package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"consult-chat/internal/apperrors"
)

// Client calls the auth service over HTTP. The whole request is bounded by
// the client timeout; a timed-out verification denies the caller rather than
// proceeding unauthenticated.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a Client for the auth service base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type verifyResponse struct {
	Valid       bool   `json:"valid"`
	UserID      string `json:"user_id"`
	Role        string `json:"role"`
	DisplayName string `json:"display_name"`
	ExpiresIn   int64  `json:"expires_in"`
}

type profileResponse struct {
	Data struct {
		Name string `json:"name"`
	} `json:"data"`
}

// Verify resolves the bearer token via POST {base}/verify.
func (c *Client) Verify(ctx context.Context, token string) (Identity, error) {
	if token == "" {
		return Identity{}, apperrors.Authentication("missing bearer token")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/verify", nil)
	if err != nil {
		return Identity{}, apperrors.Wrap(apperrors.KindAuthentication, "token verification failed", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		// Cannot verify, therefore deny. Covers timeouts and transport errors.
		return Identity{}, apperrors.Wrap(apperrors.KindAuthentication, "token verification failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Identity{}, apperrors.Authentication(fmt.Sprintf("auth service rejected token: status %d", resp.StatusCode))
	}

	var body verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Identity{}, apperrors.Wrap(apperrors.KindAuthentication, "malformed verification response", err)
	}
	if !body.Valid {
		return Identity{}, apperrors.Authentication("invalid or expired token")
	}

	userID, err := uuid.Parse(body.UserID)
	if err != nil {
		return Identity{}, apperrors.Wrap(apperrors.KindAuthentication, "auth service returned malformed user id", err)
	}

	return Identity{
		UserID:      userID,
		Role:        Role(body.Role),
		DisplayName: body.DisplayName,
		ExpiresIn:   body.ExpiresIn,
	}, nil
}

// ResolveDisplayName looks up a provider's public name via
// GET {base}/data/provider/{id}.
func (c *Client) ResolveDisplayName(ctx context.Context, userID uuid.UUID, token string) (string, error) {
	url := fmt.Sprintf("%s/data/provider/%s", c.baseURL, userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build profile request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch profile: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", apperrors.NotFound("user profile not found")
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return "", apperrors.Authorization(fmt.Sprintf("profile lookup denied: status %d", resp.StatusCode))
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("profile lookup failed: status %d", resp.StatusCode)
	}

	var body profileResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode profile response: %w", err)
	}
	if body.Data.Name == "" {
		return "", apperrors.NotFound("user profile has no display name")
	}
	return body.Data.Name, nil
}

var _ Gateway = (*Client)(nil)
