package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/unifix/complaint-service/internal/domain"
	"github.com/unifix/complaint-service/internal/events"
	"github.com/unifix/complaint-service/internal/repository"
	apperrors "github.com/unifix/complaint-service/pkg/util/errorutil"
)

// ComplaintService owns the complaint lifecycle: submission, assignment,
// priority and resolution. Every operation checks the session's role
// against the permission table before touching the store.
type ComplaintService struct {
	complaints repository.ComplaintRepository
	solutions  repository.SolutionRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
	uploadsDir string
	now        func() time.Time
}

// ComplaintDependencies bundles collaborators for the complaint service.
type ComplaintDependencies struct {
	ComplaintRepo repository.ComplaintRepository
	SolutionRepo  repository.SolutionRepository
	UserRepo      repository.UserRepository
	Dispatcher    events.Dispatcher
	UploadsDir    string
}

// NewComplaintService constructs the service.
func NewComplaintService(deps ComplaintDependencies) *ComplaintService {
	return &ComplaintService{
		complaints: deps.ComplaintRepo,
		solutions:  deps.SolutionRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
		uploadsDir: deps.UploadsDir,
		now:        time.Now,
	}
}

// SubmitInput describes a new complaint.
type SubmitInput struct {
	Category    domain.ComplaintCategory
	Location    domain.Location
	Description string
	Priority    domain.ComplaintPriority
	// ImageExt is the attachment's file extension (".jpg"); empty means no
	// image was attached. The caller copies the file; the core only records
	// the path.
	ImageExt string
}

// SubmitOutcome reports the created complaint plus any optional fields the
// live schema could not persist. Partial outcomes are reported, never
// silently dropped.
type SubmitOutcome struct {
	Complaint     *domain.Complaint
	Partial       bool
	DroppedFields []string
}

// ComplaintDetail joins a complaint with its solution (present once
// resolved) and the submitting student's name.
type ComplaintDetail struct {
	Complaint   domain.Complaint
	Solution    *domain.Solution
	StudentName string
}

// Submit files a new complaint in Pending state.
func (s *ComplaintService) Submit(ctx context.Context, session domain.Session, input SubmitInput) (*SubmitOutcome, error) {
	if !session.Can(domain.PermSubmit) {
		return nil, apperrors.NewPermissionDenied("role cannot submit complaints")
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, apperrors.NewValidationError("description required", nil)
	}
	// Category and location arrive through validated request types; a value
	// outside the closed sets here is a caller bug, not user input.
	if !domain.ValidCategory(input.Category) {
		return nil, apperrors.NewInternalError(fmt.Errorf("unknown category %q", input.Category))
	}
	if !domain.ValidLocation(input.Location) {
		return nil, apperrors.NewInternalError(fmt.Errorf("unknown location %q", input.Location))
	}

	priority := input.Priority
	if priority == "" {
		priority = domain.PriorityLow
	}
	if !domain.ValidPriority(priority) {
		return nil, apperrors.NewInternalError(fmt.Errorf("unknown priority %q", priority))
	}

	complaint := &domain.Complaint{
		UserID:      session.UserID,
		Category:    input.Category,
		Location:    input.Location,
		Description: strings.TrimSpace(input.Description),
		Priority:    priority,
		Status:      domain.StatusPending,
	}
	if input.ImageExt != "" {
		if !validImageExt(input.ImageExt) {
			return nil, apperrors.NewValidationError("image extension must be alphanumeric", map[string]any{
				"image_ext": input.ImageExt,
			})
		}
		path := s.imagePath(session.UserID, input.ImageExt)
		complaint.ImagePath = &path
	}

	dropped, err := s.complaints.Create(ctx, complaint)
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:        events.EventComplaintSubmitted,
		ComplaintID: complaint.ID,
		Actor:       sessionActor(session),
		Payload: events.ComplaintSubmittedPayload{
			Category:      complaint.Category,
			Location:      complaint.Location,
			Priority:      complaint.Priority,
			ImageAttached: complaint.ImagePath != nil,
		},
	})

	return &SubmitOutcome{
		Complaint:     complaint,
		Partial:       len(dropped) > 0,
		DroppedFields: dropped,
	}, nil
}

// Assign hands a complaint to a technician and moves it to In Progress.
// Re-assigning is allowed as long as the complaint is not yet resolved.
func (s *ComplaintService) Assign(ctx context.Context, session domain.Session, complaintID int64, technicianName string) (*domain.Complaint, error) {
	if !session.Can(domain.PermAssign) {
		return nil, apperrors.NewPermissionDenied("role cannot assign complaints")
	}
	if strings.TrimSpace(technicianName) == "" {
		return nil, apperrors.NewValidationError("technician name required", nil)
	}

	complaint, err := s.complaints.GetByID(ctx, complaintID)
	if err != nil {
		return nil, err
	}
	if complaint.Status == domain.StatusResolved {
		return nil, apperrors.NewConflict("complaint already resolved", map[string]any{"complaint_id": complaintID})
	}

	oldStatus := complaint.Status
	if err := s.complaints.UpdateAssignment(ctx, complaintID, strings.TrimSpace(technicianName)); err != nil {
		return nil, err
	}
	complaint.Status = domain.StatusInProgress
	name := strings.TrimSpace(technicianName)
	complaint.AssignedTo = &name

	s.publishEvent(ctx, events.Event{
		Type:        events.EventComplaintAssigned,
		ComplaintID: complaint.ID,
		Actor:       sessionActor(session),
		Payload: events.ComplaintAssignedPayload{
			TechnicianName: name,
			OldStatus:      oldStatus,
		},
	})
	return complaint, nil
}

// Resolve records the solution and moves the complaint to Resolved in one
// transaction. Only the technician the complaint is assigned to may resolve
// it; resolving twice fails with a conflict rather than creating a second
// solution row.
func (s *ComplaintService) Resolve(ctx context.Context, session domain.Session, complaintID int64, topic, resolution string) (*domain.Complaint, *domain.Solution, error) {
	if !session.Can(domain.PermResolve) {
		return nil, nil, apperrors.NewPermissionDenied("role cannot resolve complaints")
	}
	if strings.TrimSpace(topic) == "" || strings.TrimSpace(resolution) == "" {
		return nil, nil, apperrors.NewValidationError("topic and resolution required", nil)
	}

	complaint, err := s.complaints.GetByID(ctx, complaintID)
	if err != nil {
		return nil, nil, err
	}
	if complaint.Status == domain.StatusResolved {
		return nil, nil, apperrors.NewConflict("complaint already resolved", map[string]any{"complaint_id": complaintID})
	}
	if complaint.AssignedTo == nil || *complaint.AssignedTo != session.Name {
		return nil, nil, apperrors.NewPermissionDenied("complaint is not assigned to this technician")
	}

	solution := &domain.Solution{
		Topic:      strings.TrimSpace(topic),
		Resolution: strings.TrimSpace(resolution),
	}
	if err := s.complaints.Resolve(ctx, complaintID, solution); err != nil {
		return nil, nil, err
	}
	complaint.Status = domain.StatusResolved

	s.publishEvent(ctx, events.Event{
		Type:        events.EventComplaintResolved,
		ComplaintID: complaint.ID,
		Actor:       sessionActor(session),
		Payload: events.ComplaintResolvedPayload{
			SolutionID: solution.ID,
			Topic:      solution.Topic,
		},
	})
	return complaint, solution, nil
}

// SetPriority changes a complaint's urgency while it is still open.
func (s *ComplaintService) SetPriority(ctx context.Context, session domain.Session, complaintID int64, priority domain.ComplaintPriority) (*domain.Complaint, error) {
	if !session.Can(domain.PermAssign) {
		return nil, apperrors.NewPermissionDenied("role cannot change priority")
	}
	if !domain.ValidPriority(priority) {
		return nil, apperrors.NewValidationError("invalid priority", map[string]any{"priority": priority})
	}

	complaint, err := s.complaints.GetByID(ctx, complaintID)
	if err != nil {
		return nil, err
	}
	if complaint.Status == domain.StatusResolved {
		return nil, apperrors.NewConflict("complaint already resolved", map[string]any{"complaint_id": complaintID})
	}

	oldPriority := complaint.Priority
	if err := s.complaints.UpdatePriority(ctx, complaintID, priority); err != nil {
		return nil, err
	}
	complaint.Priority = priority

	s.publishEvent(ctx, events.Event{
		Type:        events.EventComplaintPriorityChanged,
		ComplaintID: complaint.ID,
		Actor:       sessionActor(session),
		Payload: events.ComplaintPriorityChangedPayload{
			OldPriority: oldPriority,
			NewPriority: priority,
		},
	})
	return complaint, nil
}

// ListForSession returns the complaints the session may see: students their
// own, technicians those assigned to them, wardens and admins everything.
func (s *ComplaintService) ListForSession(ctx context.Context, session domain.Session) ([]domain.Complaint, error) {
	filter := repository.ComplaintFilter{}
	switch {
	case session.Can(domain.PermViewAll):
		// no scope restriction
	case session.Role == domain.RoleTechnician:
		name := session.Name
		filter.AssignedTo = &name
	default:
		userID := session.UserID
		filter.UserID = &userID
	}
	return s.complaints.List(ctx, filter)
}

// ListAll returns every complaint; requires the view-all permission.
func (s *ComplaintService) ListAll(ctx context.Context, session domain.Session) ([]domain.Complaint, error) {
	if !session.Can(domain.PermViewAll) {
		return nil, apperrors.NewPermissionDenied("role cannot view all complaints")
	}
	return s.complaints.List(ctx, repository.ComplaintFilter{})
}

// ListPendingQueue returns unassigned work for the warden's queue, most
// urgent first when the schema tracks priority.
func (s *ComplaintService) ListPendingQueue(ctx context.Context, session domain.Session) ([]domain.Complaint, error) {
	if !session.Can(domain.PermAssign) {
		return nil, apperrors.NewPermissionDenied("role cannot view the pending queue")
	}
	return s.complaints.List(ctx, repository.ComplaintFilter{
		Statuses:        []domain.ComplaintStatus{domain.StatusPending},
		OrderByPriority: true,
	})
}

// Detail fetches one complaint with its solution, enforcing the same view
// scope as listing.
func (s *ComplaintService) Detail(ctx context.Context, session domain.Session, complaintID int64) (*ComplaintDetail, error) {
	complaint, err := s.complaints.GetByID(ctx, complaintID)
	if err != nil {
		return nil, err
	}
	if !s.canView(session, complaint) {
		return nil, apperrors.NewPermissionDenied("complaint not visible to this session")
	}

	detail := &ComplaintDetail{Complaint: *complaint}

	if owner, err := s.users.GetByID(ctx, complaint.UserID); err == nil {
		detail.StudentName = owner.Name
	}

	if complaint.Status == domain.StatusResolved {
		solution, err := s.solutions.GetByComplaint(ctx, complaintID)
		if err != nil {
			if apperrors.StoreKindOf(err) != apperrors.StoreNotFound {
				return nil, err
			}
		} else {
			detail.Solution = solution
		}
	}
	return detail, nil
}

func (s *ComplaintService) canView(session domain.Session, complaint *domain.Complaint) bool {
	if session.Can(domain.PermViewAll) {
		return true
	}
	if session.Role == domain.RoleTechnician {
		return complaint.AssignedTo != nil && *complaint.AssignedTo == session.Name
	}
	return complaint.UserID == session.UserID
}

func (s *ComplaintService) imagePath(userID int64, ext string) string {
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	name := fmt.Sprintf("%d_%d%s", userID, s.now().Unix(), ext)
	return filepath.Join(s.uploadsDir, name)
}

// validImageExt accepts a bare or dot-prefixed extension of ASCII letters
// and digits only. Anything else could smuggle path separators into the
// stored upload path.
func validImageExt(ext string) bool {
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" || len(ext) > 8 {
		return false
	}
	for _, r := range ext {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

func (s *ComplaintService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func sessionActor(session domain.Session) events.Actor {
	return events.Actor{UserID: session.UserID, Role: session.Role}
}
