package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/ticket-gateway/internal/auth"
	"github.com/spec-kit/ticket-gateway/internal/commerce"
	"github.com/spec-kit/ticket-gateway/internal/config"
	"github.com/spec-kit/ticket-gateway/internal/desk"
	"github.com/spec-kit/ticket-gateway/internal/domain"
	"github.com/spec-kit/ticket-gateway/internal/events"
	"github.com/spec-kit/ticket-gateway/internal/observability"
	apperrors "github.com/spec-kit/ticket-gateway/pkg/util"
)

// TicketService coordinates one submission end to end: token, enrichment,
// description, downstream POST.
type TicketService struct {
	tokens     auth.TokenProvider
	enricher   commerce.Enricher
	submitter  desk.Submitter
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	deskCfg    config.DeskConfig
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	Tokens     auth.TokenProvider
	Enricher   commerce.Enricher
	Submitter  desk.Submitter
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
}

// Submission is the channel-agnostic ticket input. Form and voicemail share
// subject/department; the remaining fields are channel-specific and optional.
type Submission struct {
	Subject      string
	DepartmentID string
	ContactID    string

	Name        string
	Email       string
	Store       string
	OrderNumber string
	Details     string

	Phone         string
	RecordingURL  string
	Transcription string
}

// Channel resolves which intake produced the submission: voicemail when a
// phone or recording is present, form otherwise.
func (s Submission) Channel() domain.Channel {
	if s.Phone != "" || s.RecordingURL != "" {
		return domain.ChannelVoicemail
	}
	return domain.ChannelForm
}

// HasEmail reports whether the submission carries an email for enrichment.
func (s Submission) HasEmail() bool {
	return strings.TrimSpace(s.Email) != ""
}

// SubmitResult relays the downstream status and body to the caller.
type SubmitResult struct {
	Status int
	Body   []byte
}

// NewTicketService constructs the service.
func NewTicketService(deskCfg config.DeskConfig, deps TicketDependencies) *TicketService {
	return &TicketService{
		tokens:     deps.Tokens,
		enricher:   deps.Enricher,
		submitter:  deps.Submitter,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		deskCfg:    deskCfg,
	}
}

// Submit validates the submission, enriches it when an email is present, and
// posts the resulting ticket to the helpdesk API. The downstream status and
// body are returned verbatim on success.
func (s *TicketService) Submit(ctx context.Context, requestID string, sub Submission) (*SubmitResult, error) {
	channel := sub.Channel()

	departmentID := sub.DepartmentID
	if departmentID == "" {
		departmentID = s.deskCfg.DefaultDepartmentID
	}
	if strings.TrimSpace(sub.Subject) == "" || departmentID == "" {
		err := apperrors.NewInvalidSubmission("subject and departmentId are required", nil)
		s.failSubmission(ctx, requestID, channel, "validate", err)
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:      events.EventSubmissionReceived,
		RequestID: requestID,
		Channel:   channel,
		Payload: events.SubmissionReceivedPayload{
			Subject:      sub.Subject,
			DepartmentID: departmentID,
			HasEmail:     sub.HasEmail(),
		},
	})

	token, err := s.tokens.AccessToken(ctx)
	if err != nil {
		wrapped := apperrors.NewUpstreamError(err.Error(), err)
		s.failSubmission(ctx, requestID, channel, "token", wrapped)
		return nil, wrapped
	}
	s.publishEvent(ctx, events.Event{
		Type:      events.EventTokenObtained,
		RequestID: requestID,
		Channel:   channel,
	})

	var customer *domain.CustomerProfile
	var orders []domain.OrderRecord
	if sub.HasEmail() {
		customer, err = s.enricher.CustomerByEmail(ctx, sub.Email)
		if err != nil {
			wrapped := apperrors.NewUpstreamError(err.Error(), err)
			s.failSubmission(ctx, requestID, channel, "enrichment", wrapped)
			return nil, wrapped
		}
		orders, err = s.enricher.OrderHistory(ctx, sub.Email)
		if err != nil {
			wrapped := apperrors.NewUpstreamError(err.Error(), err)
			s.failSubmission(ctx, requestID, channel, "enrichment", wrapped)
			return nil, wrapped
		}
		s.publishEvent(ctx, events.Event{
			Type:      events.EventEnrichmentCompleted,
			RequestID: requestID,
			Channel:   channel,
			Payload: events.EnrichmentCompletedPayload{
				CustomerMatched: customer != nil,
				OrderCount:      len(orders),
			},
		})
	}

	payload := s.buildPayload(channel, departmentID, sub, customer, orders)

	result, err := s.submitter.CreateTicket(ctx, token, payload)
	if err != nil {
		wrapped := apperrors.NewUpstreamError(err.Error(), err)
		s.failSubmission(ctx, requestID, channel, "submit", wrapped)
		return nil, wrapped
	}

	s.publishEvent(ctx, events.Event{
		Type:      events.EventTicketSubmitted,
		RequestID: requestID,
		Channel:   channel,
		Payload:   events.TicketSubmittedPayload{DownstreamStatus: result.Status},
	})
	s.metrics.RecordSubmission(string(channel), "submitted")

	return &SubmitResult{Status: result.Status, Body: result.Body}, nil
}

func (s *TicketService) buildPayload(channel domain.Channel, departmentID string, sub Submission, customer *domain.CustomerProfile, orders []domain.OrderRecord) desk.TicketPayload {
	payload := desk.TicketPayload{
		Subject:      BuildSubject(channel, sub.Store, sub.Subject, sub.Name),
		DepartmentID: departmentID,
		Description: BuildDescription(DescriptionInput{
			Channel:       channel,
			OrderNumber:   sub.OrderNumber,
			Details:       sub.Details,
			RecordingURL:  sub.RecordingURL,
			Transcription: sub.Transcription,
			Customer:      customer,
			Orders:        orders,
		}),
	}

	switch {
	case channel == domain.ChannelVoicemail:
		payload.Phone = sub.Phone
		payload.ContactID = s.contactID(sub)
	case sub.HasEmail():
		first, last := splitName(sub.Name)
		payload.Contact = &desk.Contact{FirstName: first, LastName: last, Email: sub.Email}
	default:
		payload.ContactID = s.contactID(sub)
	}
	return payload
}

func (s *TicketService) contactID(sub Submission) string {
	if sub.ContactID != "" {
		return sub.ContactID
	}
	return s.deskCfg.DefaultContactID
}

func (s *TicketService) failSubmission(ctx context.Context, requestID string, channel domain.Channel, stage string, err error) {
	s.publishEvent(ctx, events.Event{
		Type:      events.EventSubmissionFailed,
		RequestID: requestID,
		Channel:   channel,
		Payload:   events.SubmissionFailedPayload{Stage: stage, Error: err.Error()},
	})
	s.metrics.RecordSubmission(string(channel), "failed")
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	s.dispatcher.Publish(ctx, event)
}

func splitName(name string) (string, string) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", ""
	}
	first, last, found := strings.Cut(trimmed, " ")
	if !found {
		return trimmed, ""
	}
	return first, strings.TrimSpace(last)
}
