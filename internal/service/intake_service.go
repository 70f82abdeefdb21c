package service

import (
	"context"
	"fmt"
	"time"

	"github.com/m-ahsan-bilal/portfolio-api/internal/model"
)

// IntakeService defines the business logic for contact form intake.
type IntakeService interface {
	// Submit validates the raw form, charges the client's rate-limit
	// window, and appends the sanitized submission to the ledger. Failures
	// are typed: *validate.Error for bad input, *RateLimitError when the
	// client is over its window. No submission is created if either gate
	// rejects, and a validation failure consumes no rate-limit slot.
	Submit(ctx context.Context, req model.ContactRequest, client model.ClientID) (*model.Submission, error)

	// Get returns a single submission by id (repository.ErrNotFound when
	// id is outside the ledger range).
	Get(ctx context.Context, id int) (*model.Submission, error)

	// List returns all submissions in ascending id order.
	List(ctx context.Context) ([]*model.Submission, error)
}

// RateLimitError is returned by Submit when the client has exhausted its
// window. RetryAfter is the wait until capacity returns.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("too many submissions, retry after %s", e.RetryAfter.Round(time.Second))
}
