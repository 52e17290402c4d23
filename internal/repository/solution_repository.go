package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/unifix/complaint-service/internal/domain"
	apperrors "github.com/unifix/complaint-service/pkg/util/errorutil"
)

// SolutionRepository reads solution records. Writes happen only through
// ComplaintRepository.Resolve so the status update and the solution insert
// share one transaction.
type SolutionRepository interface {
	GetByComplaint(ctx context.Context, complaintID int64) (*domain.Solution, error)
}

type solutionRepository struct {
	pool *pgxpool.Pool
}

// NewSolutionRepository returns a Postgres-backed implementation.
func NewSolutionRepository(pool *pgxpool.Pool) SolutionRepository {
	return &solutionRepository{pool: pool}
}

func (r *solutionRepository) GetByComplaint(ctx context.Context, complaintID int64) (*domain.Solution, error) {
	const query = `
        SELECT solution_id, complaint_id, topic, resolution, updated_at
        FROM solutions WHERE complaint_id=$1
        ORDER BY updated_at DESC LIMIT 1`

	var solution domain.Solution
	if err := r.pool.QueryRow(ctx, query, complaintID).Scan(
		&solution.ID,
		&solution.ComplaintID,
		&solution.Topic,
		&solution.Resolution,
		&solution.UpdatedAt,
	); err != nil {
		return nil, apperrors.MapStoreError("solution", err)
	}
	return &solution, nil
}
