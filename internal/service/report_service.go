package service

import (
	"context"
	"time"

	"github.com/unifix/complaint-service/internal/domain"
	"github.com/unifix/complaint-service/internal/repository"
	apperrors "github.com/unifix/complaint-service/pkg/util/errorutil"
)

// Statistics is the admin dashboard snapshot, computed fresh per request.
type Statistics struct {
	Total         int
	Pending       int
	ResolvedToday int
	AvgHours      float64
	AvgAvailable  bool
	ByCategory    map[domain.ComplaintCategory]int
	ByStatus      map[domain.ComplaintStatus]int
}

// ReportService is the read-side aggregator over complaint data.
type ReportService struct {
	reports repository.ReportRepository
	now     func() time.Time
}

// NewReportService constructs the service.
func NewReportService(reports repository.ReportRepository) *ReportService {
	return &ReportService{reports: reports, now: time.Now}
}

// CountByStatus returns how many complaints sit in the given status.
func (s *ReportService) CountByStatus(ctx context.Context, status domain.ComplaintStatus) (int, error) {
	return s.reports.CountByStatus(ctx, status)
}

// CountResolvedOn returns how many complaints were resolved on the given day.
func (s *ReportService) CountResolvedOn(ctx context.Context, day time.Time) (int, error) {
	return s.reports.CountResolvedOn(ctx, day)
}

// AverageResolutionHours returns the mean hours from submission to solution.
// ok is false when no complaint has been resolved yet.
func (s *ReportService) AverageResolutionHours(ctx context.Context) (avg float64, ok bool, err error) {
	return s.reports.AverageResolutionHours(ctx)
}

// BreakdownByCategory returns complaint counts per category.
func (s *ReportService) BreakdownByCategory(ctx context.Context) (map[domain.ComplaintCategory]int, error) {
	return s.reports.BreakdownByCategory(ctx)
}

// BreakdownByStatus returns complaint counts per status.
func (s *ReportService) BreakdownByStatus(ctx context.Context) (map[domain.ComplaintStatus]int, error) {
	return s.reports.BreakdownByStatus(ctx)
}

// Statistics assembles the full dashboard; requires the view-all permission.
func (s *ReportService) Statistics(ctx context.Context, session domain.Session) (*Statistics, error) {
	if !session.Can(domain.PermViewAll) {
		return nil, apperrors.NewPermissionDenied("role cannot view statistics")
	}

	total, err := s.reports.CountTotal(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := s.reports.CountByStatus(ctx, domain.StatusPending)
	if err != nil {
		return nil, err
	}
	resolvedToday, err := s.reports.CountResolvedOn(ctx, s.now())
	if err != nil {
		return nil, err
	}
	avg, ok, err := s.reports.AverageResolutionHours(ctx)
	if err != nil {
		return nil, err
	}
	byCategory, err := s.reports.BreakdownByCategory(ctx)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.reports.BreakdownByStatus(ctx)
	if err != nil {
		return nil, err
	}

	return &Statistics{
		Total:         total,
		Pending:       pending,
		ResolvedToday: resolvedToday,
		AvgHours:      avg,
		AvgAvailable:  ok,
		ByCategory:    byCategory,
		ByStatus:      byStatus,
	}, nil
}

// CountsForUser summarizes one student's complaints for their dashboard.
// Students may only ask about themselves.
func (s *ReportService) CountsForUser(ctx context.Context, session domain.Session, userID int64) (repository.UserComplaintCounts, error) {
	if session.UserID != userID && !session.Can(domain.PermViewAll) {
		return repository.UserComplaintCounts{}, apperrors.NewPermissionDenied("cannot view another user's counters")
	}
	return s.reports.CountsForUser(ctx, userID)
}
