package domain

import "time"

// Solution records how a complaint was resolved. Created exactly once per
// resolution and never updated afterwards.
type Solution struct {
	ID          int64
	ComplaintID int64
	Topic       string
	Resolution  string
	UpdatedAt   time.Time
}
