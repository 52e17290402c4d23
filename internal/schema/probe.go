package schema

import (
	"context"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// Optional columns introduced by later schema revisions. Every query that
// references one of these must consult the probe first.
const (
	TableUsers      = "users"
	TableComplaints = "complaints"

	ColumnImagePath  = "image_path"
	ColumnPriority   = "priority"
	ColumnRegisterNo = "register_no"
	ColumnAddress    = "address"
	ColumnPhone      = "phone"
)

// RowQuerier is the slice of pgxpool.Pool the probe needs.
type RowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Probe inspects live database metadata to determine which optional columns
// exist, so the service can run against databases created by older versions
// of itself. Results are cached for the probe's lifetime; Invalidate drops
// a table's entries when a schema-incompatible error suggests the cache
// is stale.
type Probe struct {
	db     RowQuerier
	logger *zap.Logger

	mu    sync.RWMutex
	cache map[string]bool
}

// NewProbe builds a probe over the given connection.
func NewProbe(db RowQuerier, logger *zap.Logger) *Probe {
	return &Probe{
		db:     db,
		logger: logger,
		cache:  make(map[string]bool),
	}
}

const columnExistsQuery = `
    SELECT EXISTS (
        SELECT 1 FROM information_schema.columns
        WHERE table_name = $1 AND column_name = $2
    )`

// HasColumn reports whether the table carries the column. On metadata-query
// failure it fails closed: the column is treated as absent and a warning is
// logged, so callers fall back to the degraded statement instead of issuing
// SQL that cannot succeed.
func (p *Probe) HasColumn(ctx context.Context, table, column string) bool {
	key := table + "." + column

	p.mu.RLock()
	exists, ok := p.cache[key]
	p.mu.RUnlock()
	if ok {
		return exists
	}

	if err := p.db.QueryRow(ctx, columnExistsQuery, table, column).Scan(&exists); err != nil {
		p.logger.Warn("schema probe failed; treating column as absent",
			zap.String("table", table),
			zap.String("column", column),
			zap.Error(err),
		)
		return false
	}

	p.mu.Lock()
	p.cache[key] = exists
	p.mu.Unlock()
	return exists
}

// Invalidate drops cached results for a table so the next access re-probes.
func (p *Probe) Invalidate(table string) {
	prefix := table + "."
	p.mu.Lock()
	defer p.mu.Unlock()
	for key := range p.cache {
		if strings.HasPrefix(key, prefix) {
			delete(p.cache, key)
		}
	}
}
