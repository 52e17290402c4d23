package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/unifix/complaint-service/internal/domain"
	"github.com/unifix/complaint-service/internal/repository"
	apperrors "github.com/unifix/complaint-service/pkg/util/errorutil"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubComplaintRepo struct {
	complaints map[int64]*domain.Complaint
	solutions  map[int64]*domain.Solution // keyed by complaint id
	nextID     int64
	nextSolID  int64

	// dropOnCreate simulates a schema without the named optional columns.
	dropOnCreate []string
	// priorityUnsupported makes UpdatePriority fail like a v1 schema would.
	priorityUnsupported bool
	failWith            error
}

func newStubComplaintRepo() *stubComplaintRepo {
	return &stubComplaintRepo{
		complaints: make(map[int64]*domain.Complaint),
		solutions:  make(map[int64]*domain.Solution),
	}
}

func (r *stubComplaintRepo) Create(_ context.Context, complaint *domain.Complaint) ([]string, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	r.nextID++
	complaint.ID = r.nextID
	dropped := []string{}
	for _, col := range r.dropOnCreate {
		if col == "image_path" && complaint.ImagePath != nil {
			complaint.ImagePath = nil
			dropped = append(dropped, col)
		}
		if col == "priority" && complaint.Priority != domain.PriorityLow {
			complaint.Priority = domain.PriorityLow
			dropped = append(dropped, col)
		}
	}
	clone := *complaint
	r.complaints[complaint.ID] = &clone
	return dropped, nil
}

func (r *stubComplaintRepo) GetByID(_ context.Context, id int64) (*domain.Complaint, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	complaint, ok := r.complaints[id]
	if !ok {
		return nil, apperrors.NewNotFound("complaint")
	}
	clone := *complaint
	return &clone, nil
}

func (r *stubComplaintRepo) List(_ context.Context, filter repository.ComplaintFilter) ([]domain.Complaint, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	var result []domain.Complaint
	for _, complaint := range r.complaints {
		if filter.UserID != nil && complaint.UserID != *filter.UserID {
			continue
		}
		if filter.AssignedTo != nil {
			if complaint.AssignedTo == nil || *complaint.AssignedTo != *filter.AssignedTo {
				continue
			}
		}
		if len(filter.Statuses) > 0 && !statusIn(complaint.Status, filter.Statuses) {
			continue
		}
		result = append(result, *complaint)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *stubComplaintRepo) UpdateAssignment(_ context.Context, id int64, technicianName string) error {
	complaint, ok := r.complaints[id]
	if !ok {
		return apperrors.NewNotFound("complaint")
	}
	name := strings.TrimSpace(technicianName)
	complaint.Status = domain.StatusInProgress
	complaint.AssignedTo = &name
	return nil
}

func (r *stubComplaintRepo) UpdatePriority(_ context.Context, id int64, priority domain.ComplaintPriority) error {
	if r.priorityUnsupported {
		return apperrors.NewStoreError(apperrors.StoreSchemaIncompatible, "schema does not support priority", nil)
	}
	complaint, ok := r.complaints[id]
	if !ok {
		return apperrors.NewNotFound("complaint")
	}
	complaint.Priority = priority
	return nil
}

func (r *stubComplaintRepo) Resolve(_ context.Context, complaintID int64, solution *domain.Solution) error {
	complaint, ok := r.complaints[complaintID]
	if !ok {
		return apperrors.NewNotFound("complaint")
	}
	if complaint.Status == domain.StatusResolved {
		return apperrors.NewConflict("complaint already resolved", nil)
	}
	r.nextSolID++
	solution.ID = r.nextSolID
	solution.ComplaintID = complaintID
	clone := *solution
	r.solutions[complaintID] = &clone
	complaint.Status = domain.StatusResolved
	return nil
}

func statusIn(status domain.ComplaintStatus, set []domain.ComplaintStatus) bool {
	for _, s := range set {
		if s == status {
			return true
		}
	}
	return false
}

type stubSolutionRepo struct {
	complaints *stubComplaintRepo
}

func (r *stubSolutionRepo) GetByComplaint(_ context.Context, complaintID int64) (*domain.Solution, error) {
	solution, ok := r.complaints.solutions[complaintID]
	if !ok {
		return nil, apperrors.NewNotFound("solution")
	}
	clone := *solution
	return &clone, nil
}

type stubUserRepo struct {
	users  map[int64]*domain.User
	nextID int64

	complaintCounts map[int64]int
	dropOnProfile   []string
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		users:           make(map[int64]*domain.User),
		complaintCounts: make(map[int64]int),
	}
}

func (r *stubUserRepo) seed(name, email string, role domain.Role) *domain.User {
	r.nextID++
	user := &domain.User{ID: r.nextID, Name: name, Email: email, Role: role}
	r.users[user.ID] = user
	return user
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return apperrors.NewStoreError(apperrors.StoreConstraintViolation, "user constraint violated", nil)
		}
	}
	r.nextID++
	user.ID = r.nextID
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *stubUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, apperrors.NewNotFound("user")
	}
	clone := *user
	return &clone, nil
}

func (r *stubUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, apperrors.NewNotFound("user")
}

func (r *stubUserRepo) List(_ context.Context) ([]domain.User, error) {
	var result []domain.User
	for _, user := range r.users {
		result = append(result, *user)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

func (r *stubUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return apperrors.NewNotFound("user")
	}
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) CountComplaints(_ context.Context, userID int64) (int, error) {
	return r.complaintCounts[userID], nil
}

func (r *stubUserRepo) UpdateProfile(_ context.Context, userID int64, update repository.ProfileUpdate) ([]string, error) {
	user, ok := r.users[userID]
	if !ok {
		return nil, apperrors.NewNotFound("user")
	}
	dropped := []string{}
	apply := func(col string, val *string, field **string) {
		if val == nil {
			return
		}
		for _, d := range r.dropOnProfile {
			if d == col {
				dropped = append(dropped, col)
				return
			}
		}
		*field = val
	}
	apply("register_no", update.RegisterNo, &user.RegisterNo)
	apply("address", update.Address, &user.Address)
	apply("phone", update.Phone, &user.Phone)
	return dropped, nil
}

type stubReportRepo struct {
	byStatus      map[domain.ComplaintStatus]int
	byCategory    map[domain.ComplaintCategory]int
	resolvedToday int
	avgHours      float64
	avgAvailable  bool
	userCounts    map[int64]repository.UserComplaintCounts
}

func newStubReportRepo() *stubReportRepo {
	return &stubReportRepo{
		byStatus:   make(map[domain.ComplaintStatus]int),
		byCategory: make(map[domain.ComplaintCategory]int),
		userCounts: make(map[int64]repository.UserComplaintCounts),
	}
}

func (r *stubReportRepo) CountTotal(_ context.Context) (int, error) {
	total := 0
	for _, count := range r.byStatus {
		total += count
	}
	return total, nil
}

func (r *stubReportRepo) CountByStatus(_ context.Context, status domain.ComplaintStatus) (int, error) {
	return r.byStatus[status], nil
}

func (r *stubReportRepo) CountResolvedOn(_ context.Context, _ time.Time) (int, error) {
	return r.resolvedToday, nil
}

func (r *stubReportRepo) AverageResolutionHours(_ context.Context) (float64, bool, error) {
	return r.avgHours, r.avgAvailable, nil
}

func (r *stubReportRepo) BreakdownByCategory(_ context.Context) (map[domain.ComplaintCategory]int, error) {
	return r.byCategory, nil
}

func (r *stubReportRepo) BreakdownByStatus(_ context.Context) (map[domain.ComplaintStatus]int, error) {
	return r.byStatus, nil
}

func (r *stubReportRepo) CountsForUser(_ context.Context, userID int64) (repository.UserComplaintCounts, error) {
	return r.userCounts[userID], nil
}
