package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/unifix/complaint-service/internal/domain"
	"github.com/unifix/complaint-service/internal/repository"
	apperrors "github.com/unifix/complaint-service/pkg/util/errorutil"
)

func adminSession() domain.Session {
	return domain.Session{UserID: 100, Name: "Admin", Role: domain.RoleAdmin}
}

func TestAddUserHashesPassword(t *testing.T) {
	users := newStubUserRepo()
	svc := NewUserService(users, nil, bcrypt.MinCost)

	user, err := svc.AddUser(context.Background(), adminSession(), AddUserInput{
		Name:     "Tech1",
		Email:    "Tech1@Campus.edu",
		Password: "secret",
		Role:     domain.RoleTechnician,
	})
	require.NoError(t, err)

	assert.Equal(t, "tech1@campus.edu", user.Email)
	assert.NotEqual(t, "secret", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret")))
}

func TestAddUserForbiddenForWarden(t *testing.T) {
	users := newStubUserRepo()
	svc := NewUserService(users, nil, bcrypt.MinCost)

	_, err := svc.AddUser(context.Background(), wardenSession(), AddUserInput{
		Name: "X", Email: "x@campus.edu", Password: "pw", Role: domain.RoleStudent,
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodePermissionDenied, apperrors.ToDomainError(err).Code)
	assert.Empty(t, users.users)
}

func TestAddUserRejectsUnknownRole(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), nil, bcrypt.MinCost)

	_, err := svc.AddUser(context.Background(), adminSession(), AddUserInput{
		Name: "X", Email: "x@campus.edu", Password: "pw", Role: domain.Role("Janitor"),
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeValidation, apperrors.ToDomainError(err).Code)
}

func TestRemoveUserRejectedWhileComplaintsExist(t *testing.T) {
	users := newStubUserRepo()
	student := users.seed("Asha", "asha@campus.edu", domain.RoleStudent)
	users.complaintCounts[student.ID] = 2
	svc := NewUserService(users, nil, bcrypt.MinCost)

	err := svc.RemoveUser(context.Background(), adminSession(), student.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.StoreConstraintViolation, apperrors.StoreKindOf(err))

	_, err = users.GetByID(context.Background(), student.ID)
	assert.NoError(t, err)
}

func TestRemoveUserWithoutComplaints(t *testing.T) {
	users := newStubUserRepo()
	student := users.seed("Asha", "asha@campus.edu", domain.RoleStudent)
	svc := NewUserService(users, nil, bcrypt.MinCost)

	err := svc.RemoveUser(context.Background(), adminSession(), student.ID)
	require.NoError(t, err)

	_, err = users.GetByID(context.Background(), student.ID)
	assert.Equal(t, apperrors.StoreNotFound, apperrors.StoreKindOf(err))
}

func TestRemoveOwnAccountConflicts(t *testing.T) {
	users := newStubUserRepo()
	admin := users.seed("Admin", "admin@campus.edu", domain.RoleAdmin)
	svc := NewUserService(users, nil, bcrypt.MinCost)

	session := domain.Session{UserID: admin.ID, Name: admin.Name, Role: domain.RoleAdmin}
	err := svc.RemoveUser(context.Background(), session, admin.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeConflict, apperrors.ToDomainError(err).Code)
}

func TestUpdateProfileOwnerOnly(t *testing.T) {
	users := newStubUserRepo()
	owner := users.seed("Asha", "asha@campus.edu", domain.RoleStudent)
	other := users.seed("Ravi", "ravi@campus.edu", domain.RoleStudent)
	svc := NewUserService(users, nil, bcrypt.MinCost)

	phone := "9876543210"
	otherSession := domain.Session{UserID: other.ID, Name: other.Name, Role: domain.RoleStudent}
	_, err := svc.UpdateProfile(context.Background(), otherSession, owner.ID, repository.ProfileUpdate{Phone: &phone})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodePermissionDenied, apperrors.ToDomainError(err).Code)

	ownerSession := domain.Session{UserID: owner.ID, Name: owner.Name, Role: domain.RoleStudent}
	outcome, err := svc.UpdateProfile(context.Background(), ownerSession, owner.ID, repository.ProfileUpdate{Phone: &phone})
	require.NoError(t, err)
	assert.False(t, outcome.Partial)

	updated, err := users.GetByID(context.Background(), owner.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.Phone)
	assert.Equal(t, phone, *updated.Phone)
}

func TestUpdateProfileReportsDroppedFields(t *testing.T) {
	users := newStubUserRepo()
	users.dropOnProfile = []string{"register_no"}
	owner := users.seed("Asha", "asha@campus.edu", domain.RoleStudent)
	svc := NewUserService(users, nil, bcrypt.MinCost)

	registerNo := "RA2111"
	address := "Paari Hostel, Room 214"
	session := domain.Session{UserID: owner.ID, Name: owner.Name, Role: domain.RoleStudent}
	outcome, err := svc.UpdateProfile(context.Background(), session, owner.ID, repository.ProfileUpdate{
		RegisterNo: &registerNo,
		Address:    &address,
	})
	require.NoError(t, err)

	assert.True(t, outcome.Partial)
	assert.Equal(t, []string{"register_no"}, outcome.DroppedFields)

	updated, err := users.GetByID(context.Background(), owner.ID)
	require.NoError(t, err)
	assert.Nil(t, updated.RegisterNo)
	require.NotNil(t, updated.Address)
	assert.Equal(t, address, *updated.Address)
}

func TestUpdateProfileWithNoFields(t *testing.T) {
	users := newStubUserRepo()
	owner := users.seed("Asha", "asha@campus.edu", domain.RoleStudent)
	svc := NewUserService(users, nil, bcrypt.MinCost)

	session := domain.Session{UserID: owner.ID, Name: owner.Name, Role: domain.RoleStudent}
	_, err := svc.UpdateProfile(context.Background(), session, owner.ID, repository.ProfileUpdate{})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeValidation, apperrors.ToDomainError(err).Code)
}
