package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/m-ahsan-bilal/portfolio-api/internal/model"
)

// PgSubmissionRepository is the PostgreSQL implementation of
// SubmissionRepository, for deployments that need submissions to survive
// restarts. The concurrency invariants of the in-memory ledger are carried
// by the database here; sequence gaps can appear after aborted inserts.
type PgSubmissionRepository struct {
	pool *pgxpool.Pool
}

// NewPgSubmissionRepository creates a PgSubmissionRepository backed by the given pool.
func NewPgSubmissionRepository(pool *pgxpool.Pool) *PgSubmissionRepository {
	return &PgSubmissionRepository{pool: pool}
}

var _ SubmissionRepository = (*PgSubmissionRepository)(nil)

// Append inserts a new contact_submissions row and populates sub.ID from
// the RETURNING clause.
func (r *PgSubmissionRepository) Append(ctx context.Context, sub *model.Submission) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO contact_submissions (email, topic, message, submitted_at, status, client_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		sub.Email, sub.Topic, sub.Message, sub.Timestamp, sub.Status, string(sub.ClientID),
	).Scan(&sub.ID)
}

// Get returns the submission with the given id, mapping a missing row to
// ErrNotFound.
func (r *PgSubmissionRepository) Get(ctx context.Context, id int) (*model.Submission, error) {
	var s model.Submission
	err := r.pool.QueryRow(ctx,
		`SELECT id, email, topic, message, submitted_at, status, client_id
		 FROM contact_submissions WHERE id = $1`,
		id,
	).Scan(&s.ID, &s.Email, &s.Topic, &s.Message, &s.Timestamp, &s.Status, &s.ClientID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// List returns all submissions in ascending id order.
func (r *PgSubmissionRepository) List(ctx context.Context) ([]*model.Submission, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, email, topic, message, submitted_at, status, client_id
		 FROM contact_submissions ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var submissions []*model.Submission
	for rows.Next() {
		var s model.Submission
		if err := rows.Scan(&s.ID, &s.Email, &s.Topic, &s.Message, &s.Timestamp, &s.Status, &s.ClientID); err != nil {
			return nil, err
		}
		submissions = append(submissions, &s)
	}
	return submissions, rows.Err()
}
