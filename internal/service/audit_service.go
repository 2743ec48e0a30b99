package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-gateway/internal/events"
)

// AuditService logs one structured line per submission flow event. This is the
// single place flow progress is logged; the rest of the pipeline stays quiet.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger) *AuditService {
	return &AuditService{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to the submission flow events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventSubmissionReceived, a.logEvent("submission received"))
	a.dispatcher.Subscribe(events.EventTokenObtained, a.logEvent("access token obtained"))
	a.dispatcher.Subscribe(events.EventEnrichmentCompleted, a.logEvent("enrichment completed"))
	a.dispatcher.Subscribe(events.EventTicketSubmitted, a.logEvent("ticket submitted"))
	a.dispatcher.Subscribe(events.EventSubmissionFailed, a.logFailure)
}

func (a *AuditService) logEvent(message string) events.EventHandler {
	return func(ctx context.Context, event events.Event) {
		a.logger.Info(message,
			zap.String("request_id", event.RequestID),
			zap.String("channel", string(event.Channel)),
			zap.Any("payload", event.Payload))
	}
}

func (a *AuditService) logFailure(ctx context.Context, event events.Event) {
	a.logger.Error("submission failed",
		zap.String("request_id", event.RequestID),
		zap.String("channel", string(event.Channel)),
		zap.Any("payload", event.Payload))
}
