package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/unifix/complaint-service/internal/auth"
	"github.com/unifix/complaint-service/internal/domain"
	"github.com/unifix/complaint-service/internal/events"
	"github.com/unifix/complaint-service/internal/repository"
	apperrors "github.com/unifix/complaint-service/pkg/util/errorutil"
)

// UserService covers admin user management and student profile updates.
type UserService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
	bcryptCost int
}

// NewUserService constructs the service.
func NewUserService(users repository.UserRepository, dispatcher events.Dispatcher, bcryptCost int) *UserService {
	return &UserService{users: users, dispatcher: dispatcher, bcryptCost: bcryptCost}
}

// AddUserInput describes an account created by an admin.
type AddUserInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

// AddUser creates an account with any role; admin only.
func (s *UserService) AddUser(ctx context.Context, session domain.Session, input AddUserInput) (*domain.User, error) {
	if !session.Can(domain.PermManageUsers) {
		return nil, apperrors.NewPermissionDenied("role cannot manage users")
	}
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Email) == "" || input.Password == "" {
		return nil, apperrors.NewValidationError("name, email and password required", nil)
	}
	if !domain.ValidRole(input.Role) {
		return nil, apperrors.NewValidationError("invalid role", map[string]any{"role": input.Role})
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash: hash,
		Role:         input.Role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// RemoveUser deletes an account; admin only. Removal is rejected while the
// user still owns complaints, so complaint history is never orphaned or
// silently cascaded away.
func (s *UserService) RemoveUser(ctx context.Context, session domain.Session, userID int64) error {
	if !session.Can(domain.PermManageUsers) {
		return apperrors.NewPermissionDenied("role cannot manage users")
	}
	if userID == session.UserID {
		return apperrors.NewConflict("cannot remove own account", nil)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	owned, err := s.users.CountComplaints(ctx, userID)
	if err != nil {
		return err
	}
	if owned > 0 {
		return apperrors.NewStoreError(apperrors.StoreConstraintViolation,
			"user still owns complaints", nil)
	}

	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventUserRemoved,
			Actor:     sessionActor(session),
			Timestamp: time.Now(),
			Payload: events.UserRemovedPayload{
				RemovedUserID: user.ID,
				RemovedRole:   user.Role,
			},
		})
	}
	return nil
}

// ListUsers returns all accounts newest-first; admin only.
func (s *UserService) ListUsers(ctx context.Context, session domain.Session) ([]domain.User, error) {
	if !session.Can(domain.PermManageUsers) {
		return nil, apperrors.NewPermissionDenied("role cannot manage users")
	}
	return s.users.List(ctx)
}

// ProfileOutcome reports a profile update along with any fields the live
// schema could not hold.
type ProfileOutcome struct {
	Partial       bool
	DroppedFields []string
}

// UpdateProfile edits the optional profile fields. Only the owning user
// (or an admin) may change a profile.
func (s *UserService) UpdateProfile(ctx context.Context, session domain.Session, userID int64, update repository.ProfileUpdate) (*ProfileOutcome, error) {
	if session.UserID != userID && !session.Can(domain.PermManageUsers) {
		return nil, apperrors.NewPermissionDenied("cannot edit another user's profile")
	}
	if update.RegisterNo == nil && update.Address == nil && update.Phone == nil {
		return nil, apperrors.NewValidationError("no profile fields provided", nil)
	}

	dropped, err := s.users.UpdateProfile(ctx, userID, update)
	if err != nil {
		return nil, err
	}
	return &ProfileOutcome{Partial: len(dropped) > 0, DroppedFields: dropped}, nil
}

// GetProfile returns a user's account including whatever optional profile
// fields the schema carries.
func (s *UserService) GetProfile(ctx context.Context, session domain.Session, userID int64) (*domain.User, error) {
	if session.UserID != userID && !session.Can(domain.PermManageUsers) {
		return nil, apperrors.NewPermissionDenied("cannot view another user's profile")
	}
	return s.users.GetByID(ctx, userID)
}
