package services

import (
	"fmt"

	"github.com/codecops/cleanify-api/internal/models"
	"github.com/codecops/cleanify-api/internal/repository"
)

// RewardLevel is a named banding derived purely from a point total.
type RewardLevel string

const (
	LevelBronze   RewardLevel = "Bronze"
	LevelSilver   RewardLevel = "Silver"
	LevelGold     RewardLevel = "Gold"
	LevelPlatinum RewardLevel = "Platinum"
)

// Milestone pairs a level with its minimum point threshold.
type Milestone struct {
	Level RewardLevel `json:"level"`
	Min   int         `json:"min"`
}

// Milestones is the fixed ascending tier table.
var Milestones = []Milestone{
	{LevelBronze, 0},
	{LevelSilver, 100},
	{LevelGold, 300},
	{LevelPlatinum, 500},
}

// TierOf returns the highest milestone whose threshold is at or below the
// given point total.
func TierOf(points int) RewardLevel {
	level := Milestones[0].Level
	for _, m := range Milestones {
		if points >= m.Min {
			level = m.Level
		}
	}
	return level
}

// ProgressToNext returns the percentage progress from the current tier
// towards the next one, linearly interpolated between thresholds. At or
// beyond the top tier it returns 100.
func ProgressToNext(points int) float64 {
	var current Milestone
	var next *Milestone
	for i, m := range Milestones {
		if points >= m.Min {
			current = m
			if i+1 < len(Milestones) {
				next = &Milestones[i+1]
			} else {
				next = nil
			}
		}
	}
	if next == nil {
		return 100
	}
	return float64(points-current.Min) / float64(next.Min-current.Min) * 100
}

// RewardSummary is a citizen's ledger view: running total, derived level,
// and the append-only history newest first.
type RewardSummary struct {
	Points  int                  `json:"points"`
	Level   RewardLevel          `json:"level"`
	History []models.RewardEntry `json:"history"`
}

// RewardService reads the per-citizen reward ledger. All writing happens
// inside the lifecycle engine.
type RewardService struct {
	rewardRepo repository.RewardRepository
}

// NewRewardService creates a new RewardService
func NewRewardService(rewardRepo repository.RewardRepository) *RewardService {
	return &RewardService{rewardRepo: rewardRepo}
}

// Summary returns the ledger summary for a citizen. The level is computed
// from the summed history on every call and never persisted.
func (s *RewardService) Summary(userID uint64) (*RewardSummary, error) {
	points, err := s.rewardRepo.TotalPoints(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum reward points: %w", err)
	}

	history, err := s.rewardRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reward history: %w", err)
	}

	return &RewardSummary{
		Points:  points,
		Level:   TierOf(points),
		History: history,
	}, nil
}
