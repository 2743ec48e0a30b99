package http

import (
	"context"
	"errors"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-gateway/internal/api/http/handlers"
	"github.com/spec-kit/ticket-gateway/internal/config"
	"github.com/spec-kit/ticket-gateway/internal/desk"
	"github.com/spec-kit/ticket-gateway/internal/domain"
	"github.com/spec-kit/ticket-gateway/internal/events"
	"github.com/spec-kit/ticket-gateway/internal/observability"
	"github.com/spec-kit/ticket-gateway/internal/service"
	"github.com/spec-kit/ticket-gateway/internal/worker"
)

type stubTokens struct {
	err error
}

func (s *stubTokens) AccessToken(ctx context.Context) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return "tok-1", nil
}

type stubEnricher struct{}

func (s *stubEnricher) CustomerByEmail(ctx context.Context, email string) (*domain.CustomerProfile, error) {
	return nil, nil
}

func (s *stubEnricher) OrderHistory(ctx context.Context, email string) ([]domain.OrderRecord, error) {
	return nil, nil
}

type stubSubmitter struct {
	result *desk.CreateResult
	calls  chan desk.TicketPayload
}

func newStubSubmitter(status int, body string) *stubSubmitter {
	return &stubSubmitter{
		result: &desk.CreateResult{Status: status, Body: []byte(body)},
		calls:  make(chan desk.TicketPayload, 8),
	}
}

func (s *stubSubmitter) CreateTicket(ctx context.Context, token string, payload desk.TicketPayload) (*desk.CreateResult, error) {
	s.calls <- payload
	return s.result, nil
}

type appOptions struct {
	mode      config.DispatchMode
	tokens    *stubTokens
	submitter *stubSubmitter
}

func newTestApp(t *testing.T, opts appOptions) (*fiber.App, func()) {
	t.Helper()
	if opts.tokens == nil {
		opts.tokens = &stubTokens{}
	}
	if opts.submitter == nil {
		opts.submitter = newStubSubmitter(200, `{}`)
	}
	if opts.mode == "" {
		opts.mode = config.DispatchSync
	}

	logger := zap.NewNop()
	metrics := observability.NewMetrics()
	corsCfg := config.CORSConfig{AllowedOrigins: []string{"https://shop-a.example.com", "https://shop-b.example.com"}}
	deskCfg := config.DeskConfig{DefaultDepartmentID: "dep-1", DefaultContactID: "contact-1"}

	ticketService := service.NewTicketService(deskCfg, service.TicketDependencies{
		Tokens:     opts.tokens,
		Enricher:   &stubEnricher{},
		Submitter:  opts.submitter,
		Dispatcher: events.NewInMemoryDispatcher(),
		Metrics:    metrics,
	})

	var submitWorker *worker.SubmitWorker
	cleanup := func() {}
	if opts.mode == config.DispatchAsync {
		submitWorker = worker.NewSubmitWorker(ticketService, logger, 8)
		submitWorker.Start()
		cleanup = submitWorker.Stop
	}

	app := fiber.New()
	RegisterMiddlewares(app, logger, metrics, corsCfg, 5*time.Second)
	RegisterRoutes(app, RouteConfig{
		Health:  handlers.NewHealthHandler("gateway-test", "test"),
		Tickets: handlers.NewTicketsHandler(ticketService, submitWorker, opts.mode),
	})
	return app, cleanup
}

func TestRouter_unknownPathIs404(t *testing.T) {
	app, cleanup := newTestApp(t, appOptions{})
	defer cleanup()

	resp, err := app.Test(httptest.NewRequest(nethttp.MethodGet, "/nope", nil))
	require.NoError(t, err)
	assert.Equal(t, nethttp.StatusNotFound, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"error":"not found"}`, string(body))
}

func TestRouter_nonPostTicketsIs405(t *testing.T) {
	app, cleanup := newTestApp(t, appOptions{})
	defer cleanup()

	for _, method := range []string{nethttp.MethodGet, nethttp.MethodPut, nethttp.MethodDelete} {
		resp, err := app.Test(httptest.NewRequest(method, "/tickets", nil))
		require.NoError(t, err)
		assert.Equal(t, nethttp.StatusMethodNotAllowed, resp.StatusCode, method)
	}
}

func TestRouter_syncSubmissionMirrorsDownstream(t *testing.T) {
	submitter := newStubSubmitter(200, `{"id":"ticket-1"}`)
	app, cleanup := newTestApp(t, appOptions{submitter: submitter})
	defer cleanup()

	req := httptest.NewRequest(nethttp.MethodPost, "/tickets",
		strings.NewReader(`{"subject":"Broken item","departmentId":"12","details":"broken"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"id":"ticket-1"}`, string(body))

	payload := <-submitter.calls
	assert.Equal(t, "Broken item", payload.Subject)
}

func TestRouter_tokenFailureIs500WithoutDeskCall(t *testing.T) {
	submitter := newStubSubmitter(200, `{}`)
	app, cleanup := newTestApp(t, appOptions{
		tokens:    &stubTokens{err: errors.New("token service unreachable")},
		submitter: submitter,
	})
	defer cleanup()

	req := httptest.NewRequest(nethttp.MethodPost, "/tickets",
		strings.NewReader(`{"subject":"x","departmentId":"12"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, nethttp.StatusInternalServerError, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "token service unreachable")
	assert.Empty(t, submitter.calls)
}

func TestRouter_malformedBodyIs500(t *testing.T) {
	app, cleanup := newTestApp(t, appOptions{})
	defer cleanup()

	req := httptest.NewRequest(nethttp.MethodPost, "/tickets", strings.NewReader(`{not json`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, nethttp.StatusInternalServerError, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "invalid submission body")
}

func TestRouter_asyncSubmissionAcknowledgesImmediately(t *testing.T) {
	submitter := newStubSubmitter(200, `{}`)
	app, cleanup := newTestApp(t, appOptions{mode: config.DispatchAsync, submitter: submitter})
	defer cleanup()

	req := httptest.NewRequest(nethttp.MethodPost, "/tickets",
		strings.NewReader(`{"subject":"Broken item","departmentId":"12"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, nethttp.StatusAccepted, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"status":"processing","message":"Request received"}`, string(body))

	select {
	case payload := <-submitter.calls:
		assert.Equal(t, "Broken item", payload.Subject)
	case <-time.After(2 * time.Second):
		t.Fatal("background submission never reached the desk client")
	}
}

func TestRouter_healthLive(t *testing.T) {
	app, cleanup := newTestApp(t, appOptions{})
	defer cleanup()

	resp, err := app.Test(httptest.NewRequest(nethttp.MethodGet, "/health/live", nil))
	require.NoError(t, err)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
}
