package dto

import (
	"time"

	"github.com/unifix/complaint-service/internal/domain"
)

// SubmitComplaintRequest files a new complaint.
type SubmitComplaintRequest struct {
	Category    string `json:"category" validate:"required,oneof=Maintenance Security Cleanliness Infrastructure Other"`
	Location    string `json:"location" validate:"required"`
	Description string `json:"description" validate:"required"`
	Priority    string `json:"priority" validate:"omitempty,oneof=Low Medium High"`
	// ImageExt is set when the client attached an image it will upload
	// under the path returned in the response.
	ImageExt string `json:"image_ext" validate:"omitempty,max=10"`
}

// AssignComplaintRequest hands a complaint to a technician.
type AssignComplaintRequest struct {
	TechnicianName string `json:"technician_name" validate:"required,min=2,max=100"`
}

// ResolveComplaintRequest records a solution.
type ResolveComplaintRequest struct {
	Topic      string `json:"topic" validate:"required,max=100"`
	Resolution string `json:"resolution" validate:"required"`
}

// SetPriorityRequest changes a complaint's urgency.
type SetPriorityRequest struct {
	Priority string `json:"priority" validate:"required,oneof=Low Medium High"`
}

// ComplaintSummary is the list rendering.
type ComplaintSummary struct {
	ID         int64                    `json:"id"`
	Category   domain.ComplaintCategory `json:"category"`
	Location   string                   `json:"location"`
	Priority   domain.ComplaintPriority `json:"priority"`
	Status     domain.ComplaintStatus   `json:"status"`
	AssignedTo *string                  `json:"assigned_to,omitempty"`
	CreatedAt  time.Time                `json:"created_at"`
}

// ComplaintDetailResponse is the single-complaint rendering including the
// solution once resolved.
type ComplaintDetailResponse struct {
	ID          int64                    `json:"id"`
	StudentName string                   `json:"student_name,omitempty"`
	Category    domain.ComplaintCategory `json:"category"`
	Location    string                   `json:"location"`
	Description string                   `json:"description"`
	ImagePath   *string                  `json:"image_path,omitempty"`
	Priority    domain.ComplaintPriority `json:"priority"`
	Status      domain.ComplaintStatus   `json:"status"`
	AssignedTo  *string                  `json:"assigned_to,omitempty"`
	CreatedAt   time.Time                `json:"created_at"`
	Solution    *SolutionResponse        `json:"solution,omitempty"`
}

// SolutionResponse renders the resolution record.
type SolutionResponse struct {
	ID         int64     `json:"id"`
	Topic      string    `json:"topic"`
	Resolution string    `json:"resolution"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// SubmitComplaintResponse reports the created complaint and, when the
// schema could not hold every optional field, which fields were dropped.
type SubmitComplaintResponse struct {
	Complaint     ComplaintSummary `json:"complaint"`
	ImagePath     *string          `json:"image_path,omitempty"`
	Partial       bool             `json:"partial"`
	DroppedFields []string         `json:"dropped_fields,omitempty"`
}

// NewComplaintSummary maps the domain model.
func NewComplaintSummary(complaint *domain.Complaint) ComplaintSummary {
	return ComplaintSummary{
		ID:         complaint.ID,
		Category:   complaint.Category,
		Location:   complaint.Location.DisplayName(),
		Priority:   complaint.Priority,
		Status:     complaint.Status,
		AssignedTo: complaint.AssignedTo,
		CreatedAt:  complaint.CreatedAt,
	}
}

// NewComplaintDetail maps the aggregate detail.
func NewComplaintDetail(complaint *domain.Complaint, solution *domain.Solution, studentName string) ComplaintDetailResponse {
	resp := ComplaintDetailResponse{
		ID:          complaint.ID,
		StudentName: studentName,
		Category:    complaint.Category,
		Location:    complaint.Location.DisplayName(),
		Description: complaint.Description,
		ImagePath:   complaint.ImagePath,
		Priority:    complaint.Priority,
		Status:      complaint.Status,
		AssignedTo:  complaint.AssignedTo,
		CreatedAt:   complaint.CreatedAt,
	}
	if solution != nil {
		resp.Solution = &SolutionResponse{
			ID:         solution.ID,
			Topic:      solution.Topic,
			Resolution: solution.Resolution,
			UpdatedAt:  solution.UpdatedAt,
		}
	}
	return resp
}
