package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/unifix/complaint-service/internal/domain"
	apperrors "github.com/unifix/complaint-service/pkg/util/errorutil"
)

// UserComplaintCounts summarizes one student's complaints for the dashboard.
type UserComplaintCounts struct {
	Pending    int
	InProgress int
	Resolved   int
	Total      int
}

// ReportRepository computes read-side aggregates. Nothing is cached; every
// call hits the database so reports reflect the current state.
type ReportRepository interface {
	CountTotal(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context, status domain.ComplaintStatus) (int, error)
	CountResolvedOn(ctx context.Context, day time.Time) (int, error)
	AverageResolutionHours(ctx context.Context) (float64, bool, error)
	BreakdownByCategory(ctx context.Context) (map[domain.ComplaintCategory]int, error)
	BreakdownByStatus(ctx context.Context) (map[domain.ComplaintStatus]int, error)
	CountsForUser(ctx context.Context, userID int64) (UserComplaintCounts, error)
}

type reportRepository struct {
	pool *pgxpool.Pool
}

// NewReportRepository returns a Postgres-backed implementation.
func NewReportRepository(pool *pgxpool.Pool) ReportRepository {
	return &reportRepository{pool: pool}
}

func (r *reportRepository) CountTotal(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM complaints`
	var count int
	if err := r.pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, apperrors.MapStoreError("report", err)
	}
	return count, nil
}

func (r *reportRepository) CountByStatus(ctx context.Context, status domain.ComplaintStatus) (int, error) {
	const query = `SELECT COUNT(*) FROM complaints WHERE status=$1`
	var count int
	if err := r.pool.QueryRow(ctx, query, status).Scan(&count); err != nil {
		return 0, apperrors.MapStoreError("report", err)
	}
	return count, nil
}

func (r *reportRepository) CountResolvedOn(ctx context.Context, day time.Time) (int, error) {
	const query = `
        SELECT COUNT(DISTINCT c.complaint_id)
        FROM complaints c JOIN solutions s ON c.complaint_id = s.complaint_id
        WHERE c.status=$1 AND s.updated_at::date = $2::date`
	var count int
	if err := r.pool.QueryRow(ctx, query, domain.StatusResolved, day).Scan(&count); err != nil {
		return 0, apperrors.MapStoreError("report", err)
	}
	return count, nil
}

func (r *reportRepository) AverageResolutionHours(ctx context.Context) (float64, bool, error) {
	const query = `
        SELECT AVG(EXTRACT(EPOCH FROM (s.updated_at - c.created_at)) / 3600.0)
        FROM complaints c JOIN solutions s ON c.complaint_id = s.complaint_id
        WHERE c.status=$1`
	var avg *float64
	if err := r.pool.QueryRow(ctx, query, domain.StatusResolved).Scan(&avg); err != nil {
		return 0, false, apperrors.MapStoreError("report", err)
	}
	if avg == nil {
		// No resolved complaints yet.
		return 0, false, nil
	}
	return *avg, true, nil
}

func (r *reportRepository) BreakdownByCategory(ctx context.Context) (map[domain.ComplaintCategory]int, error) {
	const query = `SELECT category, COUNT(*) FROM complaints GROUP BY category`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.MapStoreError("report", err)
	}
	defer rows.Close()

	result := make(map[domain.ComplaintCategory]int)
	for rows.Next() {
		var category domain.ComplaintCategory
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return nil, apperrors.MapStoreError("report", err)
		}
		result[category] = count
	}
	return result, apperrors.MapStoreError("report", rows.Err())
}

func (r *reportRepository) BreakdownByStatus(ctx context.Context) (map[domain.ComplaintStatus]int, error) {
	const query = `SELECT status, COUNT(*) FROM complaints GROUP BY status`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.MapStoreError("report", err)
	}
	defer rows.Close()

	result := make(map[domain.ComplaintStatus]int)
	for rows.Next() {
		var status domain.ComplaintStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, apperrors.MapStoreError("report", err)
		}
		result[status] = count
	}
	return result, apperrors.MapStoreError("report", rows.Err())
}

func (r *reportRepository) CountsForUser(ctx context.Context, userID int64) (UserComplaintCounts, error) {
	const query = `
        SELECT
            COUNT(*) FILTER (WHERE status=$2),
            COUNT(*) FILTER (WHERE status=$3),
            COUNT(*) FILTER (WHERE status=$4),
            COUNT(*)
        FROM complaints WHERE user_id=$1`

	var counts UserComplaintCounts
	if err := r.pool.QueryRow(ctx, query, userID,
		domain.StatusPending, domain.StatusInProgress, domain.StatusResolved,
	).Scan(&counts.Pending, &counts.InProgress, &counts.Resolved, &counts.Total); err != nil {
		return UserComplaintCounts{}, apperrors.MapStoreError("report", err)
	}
	return counts, nil
}
