package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/spec-kit/ticket-gateway/internal/api/dto"
	"github.com/spec-kit/ticket-gateway/internal/config"
	"github.com/spec-kit/ticket-gateway/internal/observability"
	"github.com/spec-kit/ticket-gateway/internal/service"
	"github.com/spec-kit/ticket-gateway/internal/worker"
	apperrors "github.com/spec-kit/ticket-gateway/pkg/util"
)

// TicketsHandler accepts ticket submissions on /tickets.
type TicketsHandler struct {
	service *service.TicketService
	worker  *worker.SubmitWorker
	mode    config.DispatchMode
}

// NewTicketsHandler constructs the handler. worker may be nil in sync mode.
func NewTicketsHandler(ticketService *service.TicketService, submitWorker *worker.SubmitWorker, mode config.DispatchMode) *TicketsHandler {
	return &TicketsHandler{service: ticketService, worker: submitWorker, mode: mode}
}

// Submit handles /tickets. Sync mode mirrors the downstream status and body;
// async mode enqueues and acknowledges with 202 before any downstream call.
func (h *TicketsHandler) Submit(c *fiber.Ctx) error {
	if c.Method() != fiber.MethodPost {
		return apperrors.NewMethodNotAllowed(c.Method())
	}

	requestID := uuid.NewString()
	observability.SetRequestID(c, requestID)

	var req dto.TicketSubmission
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewInvalidSubmission("invalid submission body", err)
	}
	sub := submissionFromRequest(req)

	if h.mode == config.DispatchAsync {
		if h.worker == nil || !h.worker.Enqueue(requestID, sub) {
			return apperrors.NewInternalError(nil)
		}
		return c.Status(fiber.StatusAccepted).JSON(dto.NewAcceptedResponse())
	}

	result, err := h.service.Submit(c.UserContext(), requestID, sub)
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Status(result.Status).Send(result.Body)
}

func submissionFromRequest(req dto.TicketSubmission) service.Submission {
	return service.Submission{
		Subject:       req.Subject,
		DepartmentID:  req.DepartmentID,
		ContactID:     req.ContactID,
		Name:          req.Name,
		Email:         req.Email,
		Store:         req.Store,
		OrderNumber:   req.OrderNumber,
		Details:       req.Details,
		Phone:         req.Phone,
		RecordingURL:  req.RecordingURL,
		Transcription: req.Transcription,
	}
}
