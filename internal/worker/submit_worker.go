package worker

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-gateway/internal/service"
)

// SubmitWorker runs ticket submissions decoupled from the request that
// accepted them. Outcomes are observable only through logs and metrics; there
// is no delivery guarantee, and an item in flight when the process is torn
// down may be lost.
type SubmitWorker struct {
	service *service.TicketService
	logger  *zap.Logger

	mu     sync.Mutex
	queue  chan job
	closed bool
	done   chan struct{}
}

type job struct {
	requestID  string
	submission service.Submission
}

// NewSubmitWorker creates a worker with the given queue capacity.
func NewSubmitWorker(ticketService *service.TicketService, logger *zap.Logger, queueSize int) *SubmitWorker {
	if queueSize <= 0 {
		queueSize = 64
	}
	return &SubmitWorker{
		service: ticketService,
		logger:  logger,
		queue:   make(chan job, queueSize),
		done:    make(chan struct{}),
	}
}

// Start launches the background loop.
func (w *SubmitWorker) Start() {
	go w.run()
}

// Enqueue schedules a submission without blocking the caller. It reports
// false when the queue is full or the worker has been stopped; the submission
// is dropped in that case.
func (w *SubmitWorker) Enqueue(requestID string, submission service.Submission) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return false
	}
	select {
	case w.queue <- job{requestID: requestID, submission: submission}:
		return true
	default:
		w.logger.Error("submission dropped, queue full",
			zap.String("request_id", requestID))
		return false
	}
}

// Stop closes intake and waits for queued items to finish.
func (w *SubmitWorker) Stop() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	close(w.queue)
	w.mu.Unlock()

	<-w.done
}

func (w *SubmitWorker) run() {
	defer close(w.done)
	for item := range w.queue {
		// The accepting request already returned 202; submission runs on a
		// fresh context so it is not cancelled with that request.
		if _, err := w.service.Submit(context.Background(), item.requestID, item.submission); err != nil {
			w.logger.Error("background submission failed",
				zap.String("request_id", item.requestID),
				zap.Error(err))
		}
	}
}
