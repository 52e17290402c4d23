package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/unifix/complaint-service/internal/api/dto"
	"github.com/unifix/complaint-service/internal/auth"
	"github.com/unifix/complaint-service/internal/service"
	apperrors "github.com/unifix/complaint-service/pkg/util/errorutil"
)

// ReportsHandler exposes dashboard statistics.
type ReportsHandler struct {
	reports *service.ReportService
}

// NewReportsHandler constructs handler.
func NewReportsHandler(reportService *service.ReportService) *ReportsHandler {
	return &ReportsHandler{reports: reportService}
}

// Statistics GET /reports/statistics.
func (h *ReportsHandler) Statistics(c *fiber.Ctx) error {
	session, ok := auth.SessionFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	stats, err := h.reports.Statistics(c.UserContext(), session)
	if err != nil {
		return err
	}

	resp := dto.StatisticsResponse{
		Total:         stats.Total,
		Pending:       stats.Pending,
		ResolvedToday: stats.ResolvedToday,
		ByCategory:    stats.ByCategory,
		ByStatus:      stats.ByStatus,
	}
	if stats.AvgAvailable {
		avg := stats.AvgHours
		resp.AvgResolutionHours = &avg
	}
	return c.JSON(fiber.Map{"data": resp})
}

// MyCounts GET /reports/my-counts.
func (h *ReportsHandler) MyCounts(c *fiber.Ctx) error {
	session, ok := auth.SessionFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	counts, err := h.reports.CountsForUser(c.UserContext(), session, session.UserID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.UserCountsResponse{
		Pending:    counts.Pending,
		InProgress: counts.InProgress,
		Resolved:   counts.Resolved,
		Total:      counts.Total,
	}})
}
