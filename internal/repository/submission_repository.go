package repository

import (
	"context"

	"github.com/m-ahsan-bilal/portfolio-api/internal/model"
)

// SubmissionRepository is the append-only ledger of accepted submissions.
// Append assigns sub.ID; ids form a gapless increasing sequence starting
// at 1, and id order is insertion order is List order.
type SubmissionRepository interface {
	// Append stores a new submission and populates sub.ID.
	Append(ctx context.Context, sub *model.Submission) error

	// Get returns the submission with the given id, or ErrNotFound when id
	// is outside [1, count].
	Get(ctx context.Context, id int) (*model.Submission, error)

	// List returns all submissions in ascending id order.
	List(ctx context.Context) ([]*model.Submission, error)
}
