package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/m-ahsan-bilal/portfolio-api/internal/model"
	"github.com/m-ahsan-bilal/portfolio-api/internal/notify"
	"github.com/m-ahsan-bilal/portfolio-api/internal/ratelimit"
	"github.com/m-ahsan-bilal/portfolio-api/internal/repository"
	"github.com/m-ahsan-bilal/portfolio-api/internal/validate"
)

// Limiter is the admission-control dependency of the intake service.
// Satisfied by *ratelimit.SlidingWindow.
type Limiter interface {
	Admit(key string, now time.Time) ratelimit.Decision
}

// intakeServiceImpl is the production implementation of IntakeService.
type intakeServiceImpl struct {
	repo     repository.SubmissionRepository
	limiter  Limiter
	notifier notify.Notifier

	// now is the injected clock; time.Now in production.
	now func() time.Time
}

// NewIntakeService creates an IntakeService over the given ledger, limiter
// and notifier.
func NewIntakeService(repo repository.SubmissionRepository, limiter Limiter, notifier notify.Notifier) IntakeService {
	return &intakeServiceImpl{
		repo:     repo,
		limiter:  limiter,
		notifier: notifier,
		now:      time.Now,
	}
}

// Submit runs the intake pipeline: validate, admit, append, notify.
// Validation runs first so malformed input never consumes a rate-limit
// slot. A consumed slot stands even if the caller goes away before the
// append is observed; the append itself cannot fail on the in-memory
// ledger, so no partial state arises.
func (s *intakeServiceImpl) Submit(ctx context.Context, req model.ContactRequest, client model.ClientID) (*model.Submission, error) {
	fields, verr := validate.ContactForm(req.Email, req.Topic, req.Message)
	if verr != nil {
		return nil, verr
	}

	now := s.now().UTC()
	if d := s.limiter.Admit(string(client), now); !d.Allowed {
		slog.Warn("submission rate limited", "client_id", string(client))
		return nil, &RateLimitError{RetryAfter: d.RetryAfter}
	}

	sub := &model.Submission{
		Email:     fields.Email,
		Topic:     fields.Topic,
		Message:   fields.Message,
		Timestamp: now,
		Status:    model.StatusReceived,
		ClientID:  client,
	}
	if err := s.repo.Append(ctx, sub); err != nil {
		return nil, err
	}

	slog.Info("contact form submitted",
		"submission_id", sub.ID,
		"email", sub.Email,
		"client_id", string(client),
	)

	// Fire-and-forget: notification failures are logged, never surfaced,
	// and must not hold up the response.
	go func(sub *model.Submission) {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := s.notifier.NotifySubmission(ctx, sub); err != nil {
			slog.Error("email notification failed", "submission_id", sub.ID, "error", err)
		}
	}(sub)

	return sub, nil
}

// Get returns a single submission by id.
func (s *intakeServiceImpl) Get(ctx context.Context, id int) (*model.Submission, error) {
	return s.repo.Get(ctx, id)
}

// List returns all submissions in ascending id order.
func (s *intakeServiceImpl) List(ctx context.Context) ([]*model.Submission, error) {
	return s.repo.List(ctx)
}
