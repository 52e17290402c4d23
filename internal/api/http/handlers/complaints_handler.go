package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/unifix/complaint-service/internal/api/dto"
	"github.com/unifix/complaint-service/internal/auth"
	"github.com/unifix/complaint-service/internal/domain"
	"github.com/unifix/complaint-service/internal/service"
	apperrors "github.com/unifix/complaint-service/pkg/util/errorutil"
)

// ComplaintsHandler manages complaint lifecycle endpoints.
type ComplaintsHandler struct {
	complaints *service.ComplaintService
}

// NewComplaintsHandler constructs handler.
func NewComplaintsHandler(complaintService *service.ComplaintService) *ComplaintsHandler {
	return &ComplaintsHandler{complaints: complaintService}
}

// Submit POST /complaints.
func (h *ComplaintsHandler) Submit(c *fiber.Ctx) error {
	session, ok := auth.SessionFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.SubmitComplaintRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := validateStruct(req); err != nil {
		return err
	}
	if !domain.ValidLocation(domain.Location(req.Location)) {
		return apperrors.NewValidationError("unknown location", map[string]any{"location": req.Location})
	}

	outcome, err := h.complaints.Submit(c.UserContext(), session, service.SubmitInput{
		Category:    domain.ComplaintCategory(req.Category),
		Location:    domain.Location(req.Location),
		Description: req.Description,
		Priority:    domain.ComplaintPriority(req.Priority),
		ImageExt:    req.ImageExt,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.SubmitComplaintResponse{
		Complaint:     dto.NewComplaintSummary(outcome.Complaint),
		ImagePath:     outcome.Complaint.ImagePath,
		Partial:       outcome.Partial,
		DroppedFields: outcome.DroppedFields,
	}})
}

// List GET /complaints. Scope depends on the caller's role.
func (h *ComplaintsHandler) List(c *fiber.Ctx) error {
	session, ok := auth.SessionFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	complaints, err := h.complaints.ListForSession(c.UserContext(), session)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": complaintSummaries(complaints)})
}

// PendingQueue GET /complaints/pending.
func (h *ComplaintsHandler) PendingQueue(c *fiber.Ctx) error {
	session, ok := auth.SessionFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	complaints, err := h.complaints.ListPendingQueue(c.UserContext(), session)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": complaintSummaries(complaints)})
}

// Detail GET /complaints/:id.
func (h *ComplaintsHandler) Detail(c *fiber.Ctx) error {
	session, ok := auth.SessionFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	id, err := parseID(c.Params("id"))
	if err != nil {
		return err
	}
	detail, err := h.complaints.Detail(c.UserContext(), session, id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewComplaintDetail(&detail.Complaint, detail.Solution, detail.StudentName)})
}

// Assign POST /complaints/:id/assign.
func (h *ComplaintsHandler) Assign(c *fiber.Ctx) error {
	session, ok := auth.SessionFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	id, err := parseID(c.Params("id"))
	if err != nil {
		return err
	}
	var req dto.AssignComplaintRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := validateStruct(req); err != nil {
		return err
	}

	complaint, err := h.complaints.Assign(c.UserContext(), session, id, req.TechnicianName)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewComplaintSummary(complaint)})
}

// Resolve POST /complaints/:id/resolve.
func (h *ComplaintsHandler) Resolve(c *fiber.Ctx) error {
	session, ok := auth.SessionFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	id, err := parseID(c.Params("id"))
	if err != nil {
		return err
	}
	var req dto.ResolveComplaintRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := validateStruct(req); err != nil {
		return err
	}

	complaint, solution, err := h.complaints.Resolve(c.UserContext(), session, id, req.Topic, req.Resolution)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewComplaintDetail(complaint, solution, "")})
}

// SetPriority POST /complaints/:id/priority.
func (h *ComplaintsHandler) SetPriority(c *fiber.Ctx) error {
	session, ok := auth.SessionFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	id, err := parseID(c.Params("id"))
	if err != nil {
		return err
	}
	var req dto.SetPriorityRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := validateStruct(req); err != nil {
		return err
	}

	complaint, err := h.complaints.SetPriority(c.UserContext(), session, id, domain.ComplaintPriority(req.Priority))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewComplaintSummary(complaint)})
}

func complaintSummaries(complaints []domain.Complaint) []dto.ComplaintSummary {
	items := make([]dto.ComplaintSummary, 0, len(complaints))
	for i := range complaints {
		items = append(items, dto.NewComplaintSummary(&complaints[i]))
	}
	return items
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid id", map[string]any{"id": raw})
	}
	return id, nil
}
