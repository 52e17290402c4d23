package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/unifix/complaint-service/internal/api/dto"
	"github.com/unifix/complaint-service/internal/auth"
	"github.com/unifix/complaint-service/internal/domain"
	"github.com/unifix/complaint-service/internal/repository"
	"github.com/unifix/complaint-service/internal/service"
	apperrors "github.com/unifix/complaint-service/pkg/util/errorutil"
)

// UsersHandler covers admin user management and profile endpoints.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{users: userService}
}

// List GET /admin/users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	session, ok := auth.SessionFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	users, err := h.users.ListUsers(c.UserContext(), session)
	if err != nil {
		return err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, dto.NewUserResponse(&users[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Add POST /admin/users.
func (h *UsersHandler) Add(c *fiber.Ctx) error {
	session, ok := auth.SessionFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.AddUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := validateStruct(req); err != nil {
		return err
	}

	user, err := h.users.AddUser(c.UserContext(), session, service.AddUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// Remove DELETE /admin/users/:id.
func (h *UsersHandler) Remove(c *fiber.Ctx) error {
	session, ok := auth.SessionFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	id, err := parseID(c.Params("id"))
	if err != nil {
		return err
	}
	if err := h.users.RemoveUser(c.UserContext(), session, id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// GetProfile GET /profile.
func (h *UsersHandler) GetProfile(c *fiber.Ctx) error {
	session, ok := auth.SessionFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	user, err := h.users.GetProfile(c.UserContext(), session, session.UserID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// UpdateProfile PUT /profile.
func (h *UsersHandler) UpdateProfile(c *fiber.Ctx) error {
	session, ok := auth.SessionFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := validateStruct(req); err != nil {
		return err
	}

	outcome, err := h.users.UpdateProfile(c.UserContext(), session, session.UserID, repository.ProfileUpdate{
		RegisterNo: req.RegisterNo,
		Address:    req.Address,
		Phone:      req.Phone,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"partial":        outcome.Partial,
		"dropped_fields": outcome.DroppedFields,
	}})
}
