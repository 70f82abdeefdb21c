// Package notify delivers email notifications for accepted submissions.
// Delivery is best effort: callers invoke it fire-and-forget and log
// failures without propagating them.
package notify

import (
	"context"
	"log/slog"

	"github.com/m-ahsan-bilal/portfolio-api/internal/model"
)

// Notifier is the outbound notification collaborator.
type Notifier interface {
	// NotifySubmission announces a single accepted submission.
	NotifySubmission(ctx context.Context, sub *model.Submission) error

	// DailySummary sends a digest of the given submissions.
	DailySummary(ctx context.Context, submissions []*model.Submission) error
}

// LogNotifier writes notifications to the log instead of sending email.
// It is the fallback when no SMTP sender is configured.
type LogNotifier struct{}

var _ Notifier = LogNotifier{}

func (LogNotifier) NotifySubmission(_ context.Context, sub *model.Submission) error {
	slog.Info("contact submission received (email notifications disabled)",
		"submission_id", sub.ID,
		"email", sub.Email,
		"topic", sub.Topic,
	)
	return nil
}

func (LogNotifier) DailySummary(_ context.Context, submissions []*model.Submission) error {
	slog.Info("daily summary (email notifications disabled)", "total", len(submissions))
	return nil
}
