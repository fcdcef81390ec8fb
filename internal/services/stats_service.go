package services

import (
	"fmt"
	"math"

	"github.com/codecops/cleanify-api/internal/models"
	"github.com/codecops/cleanify-api/internal/repository"
)

// DashboardStats are the aggregated metrics behind the admin dashboard.
type DashboardStats struct {
	TotalBins         int64 `json:"total_bins"`
	FullBins          int64 `json:"full_bins"`
	AvgFillLevel      int   `json:"avg_fill_level"`
	PendingAlerts     int64 `json:"pending_alerts"`
	PendingComplaints int64 `json:"pending_complaints"`
	ActiveWorkers     int64 `json:"active_workers"`
	CollectionRate    int   `json:"collection_rate"`
}

// StatsService aggregates dashboard metrics across the fleet, complaint
// queue, and worker pool.
type StatsService struct {
	binRepo       repository.BinRepository
	alertRepo     repository.AlertRepository
	complaintRepo repository.ComplaintRepository
	userRepo      repository.UserRepository
}

// NewStatsService creates a new StatsService
func NewStatsService(
	binRepo repository.BinRepository,
	alertRepo repository.AlertRepository,
	complaintRepo repository.ComplaintRepository,
	userRepo repository.UserRepository,
) *StatsService {
	return &StatsService{
		binRepo:       binRepo,
		alertRepo:     alertRepo,
		complaintRepo: complaintRepo,
		userRepo:      userRepo,
	}
}

// Dashboard computes the current dashboard metrics.
func (s *StatsService) Dashboard() (*DashboardStats, error) {
	bins, err := s.binRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list bins: %w", err)
	}

	stats := &DashboardStats{
		TotalBins:      int64(len(bins)),
		CollectionRate: 100,
	}

	fillSum := 0
	for _, bin := range bins {
		fillSum += bin.FillLevel
		if bin.Status == models.BinStatusFull || bin.Status == models.BinStatusOverflow {
			stats.FullBins++
		}
	}
	if stats.TotalBins > 0 {
		stats.AvgFillLevel = int(math.Round(float64(fillSum) / float64(stats.TotalBins)))
		stats.CollectionRate = int(math.Round(100 - float64(stats.FullBins)/float64(stats.TotalBins)*100))
	}

	if stats.PendingAlerts, err = s.alertRepo.CountActive(); err != nil {
		return nil, fmt.Errorf("failed to count active alerts: %w", err)
	}

	complaints, err := s.complaintRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list complaints: %w", err)
	}
	for _, c := range complaints {
		if c.Status == models.ComplaintStatusPending {
			stats.PendingComplaints++
		}
	}

	workers, err := s.userRepo.ListByRole(models.RoleWorker)
	if err != nil {
		return nil, fmt.Errorf("failed to list workers: %w", err)
	}
	stats.ActiveWorkers = int64(len(workers))

	return stats, nil
}
