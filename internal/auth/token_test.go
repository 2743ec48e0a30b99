package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/token", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"zoho-abc"}`))
	}))
	defer srv.Close()

	client := NewTokenClient(srv.URL, srv.Client())
	token, err := client.AccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "zoho-abc", token)
}

func TestAccessToken_non2xxIsHardFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewTokenClient(srv.URL, srv.Client())
	_, err := client.AccessToken(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
}

func TestAccessToken_missingFieldIsHardFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"expires_in":3600}`))
	}))
	defer srv.Close()

	client := NewTokenClient(srv.URL, srv.Client())
	_, err := client.AccessToken(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing access_token")
}
