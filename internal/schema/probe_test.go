package schema

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRow struct {
	exists bool
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*bool)) = r.exists
	return nil
}

type fakeDB struct {
	columns map[string]bool
	err     error
	queries int
}

func (db *fakeDB) QueryRow(_ context.Context, _ string, args ...any) pgx.Row {
	db.queries++
	if db.err != nil {
		return fakeRow{err: db.err}
	}
	key := args[0].(string) + "." + args[1].(string)
	return fakeRow{exists: db.columns[key]}
}

func TestHasColumn(t *testing.T) {
	db := &fakeDB{columns: map[string]bool{
		"complaints.priority": true,
	}}
	probe := NewProbe(db, zap.NewNop())
	ctx := context.Background()

	assert.True(t, probe.HasColumn(ctx, TableComplaints, ColumnPriority))
	assert.False(t, probe.HasColumn(ctx, TableComplaints, ColumnImagePath))
}

func TestHasColumnCachesResults(t *testing.T) {
	db := &fakeDB{columns: map[string]bool{"users.phone": true}}
	probe := NewProbe(db, zap.NewNop())
	ctx := context.Background()

	require.True(t, probe.HasColumn(ctx, TableUsers, ColumnPhone))
	require.True(t, probe.HasColumn(ctx, TableUsers, ColumnPhone))
	assert.Equal(t, 1, db.queries)

	require.False(t, probe.HasColumn(ctx, TableUsers, ColumnAddress))
	require.False(t, probe.HasColumn(ctx, TableUsers, ColumnAddress))
	assert.Equal(t, 2, db.queries)
}

func TestHasColumnFailsClosedWithoutCaching(t *testing.T) {
	db := &fakeDB{
		columns: map[string]bool{"complaints.image_path": true},
		err:     errors.New("connection refused"),
	}
	probe := NewProbe(db, zap.NewNop())
	ctx := context.Background()

	assert.False(t, probe.HasColumn(ctx, TableComplaints, ColumnImagePath))

	// Once metadata queries work again the probe must see the column.
	db.err = nil
	assert.True(t, probe.HasColumn(ctx, TableComplaints, ColumnImagePath))
}

func TestInvalidateDropsTableEntries(t *testing.T) {
	db := &fakeDB{columns: map[string]bool{}}
	probe := NewProbe(db, zap.NewNop())
	ctx := context.Background()

	require.False(t, probe.HasColumn(ctx, TableComplaints, ColumnPriority))

	// Migration adds the column; the stale cache still says absent.
	db.columns["complaints.priority"] = true
	require.False(t, probe.HasColumn(ctx, TableComplaints, ColumnPriority))

	probe.Invalidate(TableComplaints)
	assert.True(t, probe.HasColumn(ctx, TableComplaints, ColumnPriority))
}
