package commerce

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/spec-kit/ticket-gateway/internal/domain"
)

// orderHistoryLimit caps how many recent orders are fetched per customer.
const orderHistoryLimit = 5

// Enricher fetches customer context from the commerce backend.
type Enricher interface {
	CustomerByEmail(ctx context.Context, email string) (*domain.CustomerProfile, error)
	OrderHistory(ctx context.Context, email string) ([]domain.OrderRecord, error)
}

// Client talks to the commerce backend's read-only customer and order APIs
// using a static bearer token configured at process start.
type Client struct {
	baseURL    string
	apiToken   string
	httpClient *http.Client
}

// NewClient builds a commerce client.
func NewClient(baseURL, apiToken string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiToken:   apiToken,
		httpClient: httpClient,
	}
}

type customerSearchResponse struct {
	Customers []struct {
		ID        string `json:"id"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Email     string `json:"email"`
	} `json:"customers"`
}

type orderListResponse struct {
	Orders []struct {
		ID        string    `json:"id"`
		Number    string    `json:"number"`
		Total     string    `json:"total"`
		Currency  string    `json:"currency"`
		Status    string    `json:"status"`
		CreatedAt time.Time `json:"created_at"`
	} `json:"orders"`
}

// CustomerByEmail searches customers by email. No match yields (nil, nil);
// any non-2xx status is a hard failure.
func (c *Client) CustomerByEmail(ctx context.Context, email string) (*domain.CustomerProfile, error) {
	query := url.Values{}
	query.Set("email", email)

	body, err := c.get(ctx, "/customers/search", query)
	if err != nil {
		return nil, err
	}

	var parsed customerSearchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("commerce: decode customer search: %w", err)
	}
	if len(parsed.Customers) == 0 {
		return nil, nil
	}

	first := parsed.Customers[0]
	return &domain.CustomerProfile{
		ID:        first.ID,
		FirstName: first.FirstName,
		LastName:  first.LastName,
		Email:     first.Email,
	}, nil
}

// OrderHistory returns up to five orders for the customer, most recent first,
// in the order the backend returned them. An empty history is not an error.
func (c *Client) OrderHistory(ctx context.Context, email string) ([]domain.OrderRecord, error) {
	query := url.Values{}
	query.Set("customer_email", email)
	query.Set("sort", "created_at:desc")
	query.Set("pageSize", fmt.Sprintf("%d", orderHistoryLimit))

	body, err := c.get(ctx, "/orders", query)
	if err != nil {
		return nil, err
	}

	var parsed orderListResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("commerce: decode order list: %w", err)
	}

	orders := make([]domain.OrderRecord, 0, len(parsed.Orders))
	for _, o := range parsed.Orders {
		orders = append(orders, domain.OrderRecord{
			ID:        o.ID,
			Number:    o.Number,
			Total:     o.Total,
			Currency:  o.Currency,
			Status:    o.Status,
			CreatedAt: o.CreatedAt,
		})
		if len(orders) == orderHistoryLimit {
			break
		}
	}
	return orders, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	reqURL := c.baseURL + path + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("commerce: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("commerce: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("commerce: unexpected status %d for %s", resp.StatusCode, path)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("commerce: read body: %w", err)
	}
	return body, nil
}
