package repository

import (
	"gorm.io/gorm"

	"github.com/codecops/cleanify-api/internal/models"
)

// GormRewardRepository is a GORM implementation of RewardRepository
type GormRewardRepository struct {
	db *gorm.DB
}

// NewRewardRepository creates a new RewardRepository
func NewRewardRepository(db *gorm.DB) RewardRepository {
	return &GormRewardRepository{db: db}
}

func (r *GormRewardRepository) WithTx(tx *gorm.DB) RewardRepository {
	return &GormRewardRepository{db: tx}
}

// Append appends entries to a citizen's history
func (r *GormRewardRepository) Append(entries ...*models.RewardEntry) error {
	for _, entry := range entries {
		if err := r.db.Create(entry).Error; err != nil {
			return err
		}
	}
	return nil
}

// ListByUser retrieves a citizen's history, newest first
func (r *GormRewardRepository) ListByUser(userID uint64) ([]models.RewardEntry, error) {
	var entries []models.RewardEntry
	if err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// TotalPoints sums a citizen's point deltas
func (r *GormRewardRepository) TotalPoints(userID uint64) (int, error) {
	var total int64
	err := r.db.Model(&models.RewardEntry{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(points), 0)").
		Scan(&total).Error
	return int(total), err
}
