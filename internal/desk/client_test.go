package desk

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTicket_headersAndRelay(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/tickets", r.URL.Path)
		assert.Equal(t, "org-42", r.Header.Get("orgId"))
		assert.Equal(t, "Zoho-oauthtoken tok-1", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, _ := io.ReadAll(r.Body)
		var payload map[string]any
		require.NoError(t, json.Unmarshal(body, &payload))
		assert.Equal(t, "A | Broken item | Jane", payload["subject"])
		assert.Equal(t, "12", payload["departmentId"])

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":"ticket-9","status":"Open"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "org-42", srv.Client())
	result, err := client.CreateTicket(context.Background(), "tok-1", TicketPayload{
		Subject:      "A | Broken item | Jane",
		DepartmentID: "12",
		Description:  "<div><strong>Detail:</strong> item arrived broken</div>",
		Contact:      &Contact{FirstName: "Jane", LastName: "Smith", Email: "jane@x.com"},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, result.Status)
	assert.JSONEq(t, `{"id":"ticket-9","status":"Open"}`, string(result.Body))
}

func TestCreateTicket_downstreamMessageSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"departmentId is invalid"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "org-42", srv.Client())
	_, err := client.CreateTicket(context.Background(), "tok-1", TicketPayload{Subject: "x", DepartmentID: "bad"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "departmentId is invalid")
}

func TestCreateTicket_genericFallbackMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "org-42", srv.Client())
	_, err := client.CreateTicket(context.Background(), "tok-1", TicketPayload{Subject: "x", DepartmentID: "1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
}

func TestTicketsURL_schemeDefaultsToHTTPS(t *testing.T) {
	client := NewClient("desk.example.com", "org-42", nil)
	assert.Equal(t, "https://desk.example.com/api/v1/tickets", client.ticketsURL())
}
