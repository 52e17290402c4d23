package domain

import "time"

// ComplaintStatus enumerates lifecycle states for complaints.
// The stored spellings match the legacy schema's enum values.
type ComplaintStatus string

const (
	StatusPending    ComplaintStatus = "Pending"
	StatusInProgress ComplaintStatus = "In Progress"
	StatusResolved   ComplaintStatus = "Resolved"
)

// ComplaintPriority enumerates urgency levels.
type ComplaintPriority string

const (
	PriorityLow    ComplaintPriority = "Low"
	PriorityMedium ComplaintPriority = "Medium"
	PriorityHigh   ComplaintPriority = "High"
)

// ComplaintCategory enumerates the closed set of complaint categories.
type ComplaintCategory string

const (
	CategoryMaintenance    ComplaintCategory = "Maintenance"
	CategorySecurity       ComplaintCategory = "Security"
	CategoryCleanliness    ComplaintCategory = "Cleanliness"
	CategoryInfrastructure ComplaintCategory = "Infrastructure"
	CategoryOther          ComplaintCategory = "Other"
)

// Categories lists every valid complaint category.
func Categories() []ComplaintCategory {
	return []ComplaintCategory{
		CategoryMaintenance,
		CategorySecurity,
		CategoryCleanliness,
		CategoryInfrastructure,
		CategoryOther,
	}
}

// ValidCategory reports whether c is a member of the category set.
func ValidCategory(c ComplaintCategory) bool {
	switch c {
	case CategoryMaintenance, CategorySecurity, CategoryCleanliness, CategoryInfrastructure, CategoryOther:
		return true
	}
	return false
}

// ValidPriority reports whether p is a member of the priority set.
func ValidPriority(p ComplaintPriority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Complaint is the aggregate for facility issues raised by students.
type Complaint struct {
	ID          int64
	UserID      int64
	Category    ComplaintCategory
	Location    Location
	Description string
	ImagePath   *string
	Priority    ComplaintPriority
	Status      ComplaintStatus
	AssignedTo  *string
	CreatedAt   time.Time
}

// forwardTransitions encodes the one-way status machine. A status may only
// move to the listed successors; Resolved is terminal.
var forwardTransitions = map[ComplaintStatus][]ComplaintStatus{
	StatusPending:    {StatusInProgress},
	StatusInProgress: {StatusResolved},
	StatusResolved:   {},
}

// CanTransition reports whether a complaint may move from current to next.
func CanTransition(current, next ComplaintStatus) bool {
	for _, candidate := range forwardTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}
