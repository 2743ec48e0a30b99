package desk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Submitter creates tickets in the helpdesk API.
type Submitter interface {
	CreateTicket(ctx context.Context, token string, payload TicketPayload) (*CreateResult, error)
}

// Client posts tickets to the helpdesk API for one organization.
type Client struct {
	domain     string
	orgID      string
	httpClient *http.Client
}

// NewClient builds a helpdesk client for the given desk domain and org id.
func NewClient(domain, orgID string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		domain:     strings.TrimSuffix(domain, "/"),
		orgID:      orgID,
		httpClient: httpClient,
	}
}

// CreateTicket POSTs the payload with the per-request bearer token. The
// downstream body is parsed regardless of status: a non-2xx surfaces the
// downstream message as the error, a 2xx relays status and body verbatim.
func (c *Client) CreateTicket(ctx context.Context, token string, payload TicketPayload) (*CreateResult, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("desk: encode payload: %w", err)
	}

	reqURL := c.ticketsURL()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("desk: create request: %w", err)
	}
	req.Header.Set("orgId", c.orgID)
	req.Header.Set("Authorization", "Zoho-oauthtoken "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("desk: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("desk: read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var parsed errorResponse
		_ = json.Unmarshal(body, &parsed)
		if parsed.Message == "" {
			parsed.Message = fmt.Sprintf("ticket creation failed with status %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("desk: %s", parsed.Message)
	}

	return &CreateResult{Status: resp.StatusCode, Body: body}, nil
}

func (c *Client) ticketsURL() string {
	domain := c.domain
	if !strings.HasPrefix(domain, "http://") && !strings.HasPrefix(domain, "https://") {
		domain = "https://" + domain
	}
	return domain + "/api/v1/tickets"
}
