package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/unifix/complaint-service/internal/domain"
	"github.com/unifix/complaint-service/internal/schema"
	apperrors "github.com/unifix/complaint-service/pkg/util/errorutil"
)

// ComplaintFilter captures list parameters. Results are always ordered
// newest-first by created_at; OrderByPriority additionally sorts the
// pending queue by urgency when the schema carries the column.
type ComplaintFilter struct {
	UserID          *int64
	AssignedTo      *string
	Statuses        []domain.ComplaintStatus
	OrderByPriority bool
	Limit           int
	Offset          int
}

// ComplaintRepository encapsulates complaint persistence.
type ComplaintRepository interface {
	// Create inserts the complaint and returns the names of optional
	// fields the live schema could not hold.
	Create(ctx context.Context, complaint *domain.Complaint) ([]string, error)
	GetByID(ctx context.Context, id int64) (*domain.Complaint, error)
	List(ctx context.Context, filter ComplaintFilter) ([]domain.Complaint, error)
	UpdateAssignment(ctx context.Context, id int64, technicianName string) error
	UpdatePriority(ctx context.Context, id int64, priority domain.ComplaintPriority) error
	// Resolve writes the solution and moves the complaint to Resolved as a
	// single transaction; both writes succeed or neither does.
	Resolve(ctx context.Context, complaintID int64, solution *domain.Solution) error
}

type complaintRepository struct {
	pool  *pgxpool.Pool
	probe ColumnProber
}

// NewComplaintRepository instantiates repository.
func NewComplaintRepository(pool *pgxpool.Pool, probe ColumnProber) ComplaintRepository {
	return &complaintRepository{pool: pool, probe: probe}
}

// storeErr maps a pgx error and drops the probe cache for the complaints
// table when the error says the cached schema view is stale.
func (r *complaintRepository) storeErr(err error) error {
	mapped := apperrors.MapStoreError("complaint", err)
	if apperrors.StoreKindOf(mapped) == apperrors.StoreSchemaIncompatible {
		r.probe.Invalidate(schema.TableComplaints)
	}
	return mapped
}

// optionalColumns returns the optional complaint columns present in the schema.
func (r *complaintRepository) optionalColumns(ctx context.Context) []string {
	available := []string{}
	for _, col := range []string{schema.ColumnImagePath, schema.ColumnPriority} {
		if r.probe.HasColumn(ctx, schema.TableComplaints, col) {
			available = append(available, col)
		}
	}
	return available
}

func (r *complaintRepository) Create(ctx context.Context, complaint *domain.Complaint) ([]string, error) {
	cols := []string{"user_id", "category", "location", "description", "status"}
	args := []any{complaint.UserID, complaint.Category, complaint.Location, complaint.Description, complaint.Status}
	dropped := []string{}

	if complaint.ImagePath != nil {
		if r.probe.HasColumn(ctx, schema.TableComplaints, schema.ColumnImagePath) {
			cols = append(cols, schema.ColumnImagePath)
			args = append(args, *complaint.ImagePath)
		} else {
			dropped = append(dropped, schema.ColumnImagePath)
			complaint.ImagePath = nil
		}
	}
	if r.probe.HasColumn(ctx, schema.TableComplaints, schema.ColumnPriority) {
		cols = append(cols, schema.ColumnPriority)
		args = append(args, complaint.Priority)
	} else if complaint.Priority != "" && complaint.Priority != domain.PriorityLow {
		dropped = append(dropped, schema.ColumnPriority)
		complaint.Priority = domain.PriorityLow
	}

	placeholders := make([]string, len(args))
	for i := range args {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	query := fmt.Sprintf(`
        INSERT INTO complaints (%s)
        VALUES (%s)
        RETURNING complaint_id, created_at`,
		strings.Join(cols, ", "), strings.Join(placeholders, ","))

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&complaint.ID, &complaint.CreatedAt); err != nil {
		return nil, r.storeErr(err)
	}
	return dropped, nil
}

func (r *complaintRepository) selectClause(ctx context.Context) (string, []string) {
	optional := r.optionalColumns(ctx)
	cols := "complaint_id, user_id, category, location, description, status, assigned_to, created_at"
	if len(optional) > 0 {
		cols += ", " + strings.Join(optional, ", ")
	}
	return cols, optional
}

func scanComplaint(row pgx.Row, optional []string) (*domain.Complaint, error) {
	var complaint domain.Complaint
	complaint.Priority = domain.PriorityLow
	dest := []any{
		&complaint.ID,
		&complaint.UserID,
		&complaint.Category,
		&complaint.Location,
		&complaint.Description,
		&complaint.Status,
		&complaint.AssignedTo,
		&complaint.CreatedAt,
	}
	for _, col := range optional {
		switch col {
		case schema.ColumnImagePath:
			dest = append(dest, &complaint.ImagePath)
		case schema.ColumnPriority:
			dest = append(dest, &complaint.Priority)
		}
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &complaint, nil
}

func (r *complaintRepository) GetByID(ctx context.Context, id int64) (*domain.Complaint, error) {
	cols, optional := r.selectClause(ctx)
	query := fmt.Sprintf(`SELECT %s FROM complaints WHERE complaint_id=$1`, cols)
	complaint, err := scanComplaint(r.pool.QueryRow(ctx, query, id), optional)
	if err != nil {
		return nil, r.storeErr(err)
	}
	return complaint, nil
}

func (r *complaintRepository) List(ctx context.Context, filter ComplaintFilter) ([]domain.Complaint, error) {
	cols, optional := r.selectClause(ctx)
	clauses := []string{"1=1"}
	args := []any{}

	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		clauses = append(clauses, fmt.Sprintf("user_id=$%d", len(args)))
	}
	if filter.AssignedTo != nil {
		args = append(args, *filter.AssignedTo)
		clauses = append(clauses, fmt.Sprintf("assigned_to=$%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}

	order := "created_at DESC"
	if filter.OrderByPriority && containsColumn(optional, schema.ColumnPriority) {
		order = "priority DESC, created_at DESC"
	}

	query := fmt.Sprintf(`SELECT %s FROM complaints WHERE %s ORDER BY %s`,
		cols, strings.Join(clauses, " AND "), order)
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, r.storeErr(err)
	}
	defer rows.Close()

	var result []domain.Complaint
	for rows.Next() {
		complaint, err := scanComplaint(rows, optional)
		if err != nil {
			return nil, r.storeErr(err)
		}
		result = append(result, *complaint)
	}
	return result, r.storeErr(rows.Err())
}

func (r *complaintRepository) UpdateAssignment(ctx context.Context, id int64, technicianName string) error {
	const query = `
        UPDATE complaints SET status=$1, assigned_to=$2
        WHERE complaint_id=$3`
	cmd, err := r.pool.Exec(ctx, query, domain.StatusInProgress, technicianName, id)
	if err != nil {
		return r.storeErr(err)
	}
	if cmd.RowsAffected() == 0 {
		return apperrors.NewNotFound("complaint")
	}
	return nil
}

func (r *complaintRepository) UpdatePriority(ctx context.Context, id int64, priority domain.ComplaintPriority) error {
	if !r.probe.HasColumn(ctx, schema.TableComplaints, schema.ColumnPriority) {
		return apperrors.NewStoreError(apperrors.StoreSchemaIncompatible, "schema does not support priority", nil)
	}
	const query = `UPDATE complaints SET priority=$1 WHERE complaint_id=$2`
	cmd, err := r.pool.Exec(ctx, query, priority, id)
	if err != nil {
		return r.storeErr(err)
	}
	if cmd.RowsAffected() == 0 {
		return apperrors.NewNotFound("complaint")
	}
	return nil
}

func (r *complaintRepository) Resolve(ctx context.Context, complaintID int64, solution *domain.Solution) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return r.storeErr(err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const insertSolution = `
        INSERT INTO solutions (complaint_id, topic, resolution)
        VALUES ($1, $2, $3)
        RETURNING solution_id, updated_at`
	if err := tx.QueryRow(ctx, insertSolution,
		complaintID,
		solution.Topic,
		solution.Resolution,
	).Scan(&solution.ID, &solution.UpdatedAt); err != nil {
		return apperrors.MapStoreError("solution", err)
	}
	solution.ComplaintID = complaintID

	const updateComplaint = `
        UPDATE complaints SET status=$1
        WHERE complaint_id=$2 AND status <> $1`
	cmd, err := tx.Exec(ctx, updateComplaint, domain.StatusResolved, complaintID)
	if err != nil {
		return r.storeErr(err)
	}
	if cmd.RowsAffected() == 0 {
		// Already resolved by a concurrent caller; roll everything back.
		return apperrors.NewConflict("complaint already resolved", map[string]any{"complaint_id": complaintID})
	}

	return r.storeErr(tx.Commit(ctx))
}

func containsColumn(cols []string, name string) bool {
	for _, col := range cols {
		if col == name {
			return true
		}
	}
	return false
}
