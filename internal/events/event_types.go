package events

import (
	"time"

	"github.com/unifix/complaint-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventComplaintSubmitted       EventType = "complaint_submitted"
	EventComplaintAssigned        EventType = "complaint_assigned"
	EventComplaintPriorityChanged EventType = "complaint_priority_changed"
	EventComplaintResolved        EventType = "complaint_resolved"
	EventUserRemoved              EventType = "user_removed"
)

// Actor encapsulates the acting session for an event.
type Actor struct {
	UserID int64       `json:"user_id"`
	Role   domain.Role `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID          string      `json:"id"`
	Type        EventType   `json:"type"`
	ComplaintID int64       `json:"complaint_id,omitempty"`
	Actor       Actor       `json:"actor"`
	Timestamp   time.Time   `json:"timestamp"`
	Payload     interface{} `json:"payload"`
}

// ComplaintSubmittedPayload payload.
type ComplaintSubmittedPayload struct {
	Category      domain.ComplaintCategory `json:"category"`
	Location      domain.Location          `json:"location"`
	Priority      domain.ComplaintPriority `json:"priority"`
	ImageAttached bool                     `json:"image_attached"`
}

// ComplaintAssignedPayload payload.
type ComplaintAssignedPayload struct {
	TechnicianName string                 `json:"technician_name"`
	OldStatus      domain.ComplaintStatus `json:"old_status"`
}

// ComplaintPriorityChangedPayload payload.
type ComplaintPriorityChangedPayload struct {
	OldPriority domain.ComplaintPriority `json:"old_priority"`
	NewPriority domain.ComplaintPriority `json:"new_priority"`
}

// ComplaintResolvedPayload payload.
type ComplaintResolvedPayload struct {
	SolutionID int64  `json:"solution_id"`
	Topic      string `json:"topic"`
}

// UserRemovedPayload payload.
type UserRemovedPayload struct {
	RemovedUserID int64       `json:"removed_user_id"`
	RemovedRole   domain.Role `json:"removed_role"`
}
