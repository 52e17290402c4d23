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

// ProfileUpdate carries the optional profile fields a student may edit.
type ProfileUpdate struct {
	RegisterNo *string
	Address    *string
	Phone      *string
}

// UserRepository defines persistence access for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Delete(ctx context.Context, id int64) error
	CountComplaints(ctx context.Context, userID int64) (int, error)
	// UpdateProfile persists whichever optional fields the live schema
	// supports and returns the names of fields it had to drop.
	UpdateProfile(ctx context.Context, userID int64, update ProfileUpdate) ([]string, error)
}

type userRepository struct {
	pool  *pgxpool.Pool
	probe ColumnProber
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool, probe ColumnProber) UserRepository {
	return &userRepository{pool: pool, probe: probe}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (name, email, password_hash, role)
        VALUES ($1, $2, $3, $4)
        RETURNING user_id, created_at`

	err := r.pool.QueryRow(ctx, query,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Role,
	).Scan(&user.ID, &user.CreatedAt)
	return apperrors.MapStoreError("user", err)
}

// storeErr maps a pgx error and drops the probe cache for the users table
// when the error says the cached schema view is stale.
func (r *userRepository) storeErr(err error) error {
	mapped := apperrors.MapStoreError("user", err)
	if apperrors.StoreKindOf(mapped) == apperrors.StoreSchemaIncompatible {
		r.probe.Invalidate(schema.TableUsers)
	}
	return mapped
}

// profileColumns returns the optional user columns present in the schema.
func (r *userRepository) profileColumns(ctx context.Context) []string {
	available := []string{}
	for _, col := range []string{schema.ColumnRegisterNo, schema.ColumnAddress, schema.ColumnPhone} {
		if r.probe.HasColumn(ctx, schema.TableUsers, col) {
			available = append(available, col)
		}
	}
	return available
}

func (r *userRepository) selectClause(ctx context.Context) (string, []string) {
	optional := r.profileColumns(ctx)
	cols := "user_id, name, email, password_hash, role, created_at"
	if len(optional) > 0 {
		cols += ", " + strings.Join(optional, ", ")
	}
	return cols, optional
}

func scanUser(row pgx.Row, optional []string) (*domain.User, error) {
	var user domain.User
	dest := []any{&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Role, &user.CreatedAt}
	for _, col := range optional {
		switch col {
		case schema.ColumnRegisterNo:
			dest = append(dest, &user.RegisterNo)
		case schema.ColumnAddress:
			dest = append(dest, &user.Address)
		case schema.ColumnPhone:
			dest = append(dest, &user.Phone)
		}
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	cols, optional := r.selectClause(ctx)
	query := fmt.Sprintf(`SELECT %s FROM users WHERE user_id=$1`, cols)
	user, err := scanUser(r.pool.QueryRow(ctx, query, id), optional)
	if err != nil {
		return nil, r.storeErr(err)
	}
	return user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	cols, optional := r.selectClause(ctx)
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email=$1`, cols)
	user, err := scanUser(r.pool.QueryRow(ctx, query, email), optional)
	if err != nil {
		return nil, r.storeErr(err)
	}
	return user, nil
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	cols, optional := r.selectClause(ctx)
	query := fmt.Sprintf(`SELECT %s FROM users ORDER BY created_at DESC`, cols)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, r.storeErr(err)
	}
	defer rows.Close()

	var result []domain.User
	for rows.Next() {
		user, err := scanUser(rows, optional)
		if err != nil {
			return nil, r.storeErr(err)
		}
		result = append(result, *user)
	}
	return result, r.storeErr(rows.Err())
}

func (r *userRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM users WHERE user_id=$1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return apperrors.MapStoreError("user", err)
	}
	if cmd.RowsAffected() == 0 {
		return apperrors.NewNotFound("user")
	}
	return nil
}

func (r *userRepository) CountComplaints(ctx context.Context, userID int64) (int, error) {
	const query = `SELECT COUNT(*) FROM complaints WHERE user_id=$1`
	var count int
	if err := r.pool.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, apperrors.MapStoreError("complaint", err)
	}
	return count, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, userID int64, update ProfileUpdate) ([]string, error) {
	requested := map[string]*string{
		schema.ColumnRegisterNo: update.RegisterNo,
		schema.ColumnAddress:    update.Address,
		schema.ColumnPhone:      update.Phone,
	}

	sets := []string{}
	args := []any{}
	dropped := []string{}
	for _, col := range []string{schema.ColumnRegisterNo, schema.ColumnAddress, schema.ColumnPhone} {
		val := requested[col]
		if val == nil {
			continue
		}
		if !r.probe.HasColumn(ctx, schema.TableUsers, col) {
			dropped = append(dropped, col)
			continue
		}
		args = append(args, *val)
		sets = append(sets, fmt.Sprintf("%s=$%d", col, len(args)))
	}

	if len(sets) == 0 {
		// Nothing the schema can hold; the caller reports a partial result.
		return dropped, nil
	}

	args = append(args, userID)
	query := fmt.Sprintf(`UPDATE users SET %s WHERE user_id=$%d`, strings.Join(sets, ", "), len(args))
	cmd, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return dropped, r.storeErr(err)
	}
	if cmd.RowsAffected() == 0 {
		return dropped, apperrors.NewNotFound("user")
	}
	return dropped, nil
}
