package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/ticket-gateway/internal/api/http"
	"github.com/spec-kit/ticket-gateway/internal/api/http/handlers"
	"github.com/spec-kit/ticket-gateway/internal/auth"
	"github.com/spec-kit/ticket-gateway/internal/commerce"
	"github.com/spec-kit/ticket-gateway/internal/config"
	"github.com/spec-kit/ticket-gateway/internal/desk"
	"github.com/spec-kit/ticket-gateway/internal/events"
	"github.com/spec-kit/ticket-gateway/internal/observability"
	"github.com/spec-kit/ticket-gateway/internal/service"
	"github.com/spec-kit/ticket-gateway/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	metrics := observability.NewMetrics()

	dispatcher := events.NewInMemoryDispatcher()
	auditService := service.NewAuditService(dispatcher, logger)
	auditService.RegisterHandlers()

	httpClient := http.DefaultClient
	tokenClient := auth.NewTokenClient(cfg.Token.ServiceURL, httpClient)
	commerceClient := commerce.NewClient(cfg.Commerce.BaseURL, cfg.Commerce.APIToken, httpClient)
	deskClient := desk.NewClient(cfg.Desk.Domain, cfg.Desk.OrgID, httpClient)

	ticketService := service.NewTicketService(cfg.Desk, service.TicketDependencies{
		Tokens:     tokenClient,
		Enricher:   commerceClient,
		Submitter:  deskClient,
		Dispatcher: dispatcher,
		Metrics:    metrics,
	})

	var submitWorker *worker.SubmitWorker
	if cfg.Dispatch.Mode == config.DispatchAsync {
		submitWorker = worker.NewSubmitWorker(ticketService, logger, cfg.Dispatch.QueueSize)
		submitWorker.Start()
	}

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.CORS, cfg.App.RequestTimeout())

	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version)
	ticketsHandler := handlers.NewTicketsHandler(ticketService, submitWorker, cfg.Dispatch.Mode)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:  healthHandler,
		Tickets: ticketsHandler,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
	if submitWorker != nil {
		// Best effort: drains queued submissions, gives no guarantee for the
		// one in flight if the process is killed.
		submitWorker.Stop()
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
