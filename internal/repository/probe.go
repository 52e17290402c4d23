package repository

import "context"

// ColumnProber answers whether an optional column exists in the live schema.
// Satisfied by *schema.Probe; stubbed in tests.
type ColumnProber interface {
	HasColumn(ctx context.Context, table, column string) bool
	Invalidate(table string)
}
