package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/aronpal/accountd/internal/models"
)

// DashboardStatsResponse contains aggregate directory metrics.
type DashboardStatsResponse struct {
	TotalUsers    int64 `json:"total_users"`
	ActiveUsers   int64 `json:"active_users"`
	InactiveUsers int64 `json:"inactive_users"`
	AdminCount    int64 `json:"admin_count"`
	NewUsersToday int64 `json:"new_users_today"`
}

// AdminService aggregates data for the admin dashboard.
type AdminService struct {
	repo   UserRepository
	logger *slog.Logger
}

// NewAdminService creates a new AdminService
func NewAdminService(repo UserRepository, logger *slog.Logger) *AdminService {
	return &AdminService{
		repo:   repo,
		logger: logger,
	}
}

// GetDashboardStats returns aggregate user counts.
func (s *AdminService) GetDashboardStats(ctx context.Context) (*DashboardStatsResponse, error) {
	total, err := s.repo.CountTotal(ctx)
	if err != nil {
		s.logger.Error("dashboard: failed to count total users", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	active, err := s.repo.CountByActive(ctx, true)
	if err != nil {
		s.logger.Error("dashboard: failed to count active users", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	inactive, err := s.repo.CountByActive(ctx, false)
	if err != nil {
		s.logger.Error("dashboard: failed to count inactive users", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	admins, err := s.repo.CountByRole(ctx, models.RoleAdmin)
	if err != nil {
		s.logger.Error("dashboard: failed to count admins", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	midnight := time.Now().UTC().Truncate(24 * time.Hour)
	newToday, err := s.repo.CountNewSince(ctx, midnight)
	if err != nil {
		s.logger.Error("dashboard: failed to count new users", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	return &DashboardStatsResponse{
		TotalUsers:    total,
		ActiveUsers:   active,
		InactiveUsers: inactive,
		AdminCount:    admins,
		NewUsersToday: newToday,
	}, nil
}
