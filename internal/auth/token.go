package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// TokenProvider obtains a helpdesk bearer token per submission. The
// token-issuing service owns expiry and caching; this client never stores a
// token across calls.
type TokenProvider interface {
	AccessToken(ctx context.Context) (string, error)
}

// TokenClient fetches bearer tokens from the token-issuing service.
type TokenClient struct {
	serviceURL string
	httpClient *http.Client
}

// NewTokenClient builds a client for the given token-service base URL.
func NewTokenClient(serviceURL string, httpClient *http.Client) *TokenClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &TokenClient{
		serviceURL: strings.TrimSuffix(serviceURL, "/"),
		httpClient: httpClient,
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// AccessToken performs one GET <service-url>/token call. Any non-2xx status
// or missing access_token field is a hard failure.
func (c *TokenClient) AccessToken(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.serviceURL+"/token", nil)
	if err != nil {
		return "", fmt.Errorf("token: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("token: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("token: read body: %w", err)
	}

	var parsed tokenResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("token: decode json: %w", err)
	}
	if parsed.AccessToken == "" {
		return "", fmt.Errorf("token: response missing access_token")
	}
	return parsed.AccessToken, nil
}
