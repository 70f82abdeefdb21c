package repository

import (
	"context"
	"sync"

	"github.com/m-ahsan-bilal/portfolio-api/internal/model"
)

// MemorySubmissionRepository is the in-memory implementation of
// SubmissionRepository. The id counter is co-located with the slice and
// advanced under the same lock as the insert, so ids stay gapless under
// concurrent appends. Data lives for the process lifetime only.
type MemorySubmissionRepository struct {
	mu          sync.Mutex
	nextID      int
	submissions []*model.Submission
}

// NewMemorySubmissionRepository creates an empty in-memory ledger.
func NewMemorySubmissionRepository() *MemorySubmissionRepository {
	return &MemorySubmissionRepository{nextID: 1}
}

var _ SubmissionRepository = (*MemorySubmissionRepository)(nil)

// Append assigns the next id and stores the submission. It never fails.
func (r *MemorySubmissionRepository) Append(_ context.Context, sub *model.Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sub.ID = r.nextID
	r.nextID++
	r.submissions = append(r.submissions, sub)
	return nil
}

// Get returns the submission with the given id.
func (r *MemorySubmissionRepository) Get(_ context.Context, id int) (*model.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id < 1 || id > len(r.submissions) {
		return nil, ErrNotFound
	}
	return r.submissions[id-1], nil
}

// List returns a point-in-time copy of the ledger in ascending id order.
func (r *MemorySubmissionRepository) List(_ context.Context) ([]*model.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*model.Submission, len(r.submissions))
	copy(out, r.submissions)
	return out, nil
}
