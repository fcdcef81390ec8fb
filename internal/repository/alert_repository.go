package repository

import (
	"gorm.io/gorm"

	"github.com/codecops/cleanify-api/internal/models"
)

// GormAlertRepository is a GORM implementation of AlertRepository
type GormAlertRepository struct {
	db *gorm.DB
}

// NewAlertRepository creates a new AlertRepository
func NewAlertRepository(db *gorm.DB) AlertRepository {
	return &GormAlertRepository{db: db}
}

func (r *GormAlertRepository) WithTx(tx *gorm.DB) AlertRepository {
	return &GormAlertRepository{db: tx}
}

// Create creates a new alert
func (r *GormAlertRepository) Create(alert *models.Alert) error {
	return r.db.Create(alert).Error
}

// FindByID finds an alert by ID
func (r *GormAlertRepository) FindByID(id uint64) (*models.Alert, error) {
	var alert models.Alert
	if err := r.db.First(&alert, id).Error; err != nil {
		return nil, err
	}
	return &alert, nil
}

// List retrieves all alerts, newest first
func (r *GormAlertRepository) List() ([]models.Alert, error) {
	var alerts []models.Alert
	if err := r.db.Order("created_at DESC, id DESC").Find(&alerts).Error; err != nil {
		return nil, err
	}
	return alerts, nil
}

// FindActiveByBin finds the active alert for a bin, if any
func (r *GormAlertRepository) FindActiveByBin(binID uint64) (*models.Alert, error) {
	var alert models.Alert
	if err := r.db.Where("bin_id = ? AND status = ?", binID, models.AlertStatusActive).
		First(&alert).Error; err != nil {
		return nil, err
	}
	return &alert, nil
}

// ResolveByBin resolves all active alerts for a bin
func (r *GormAlertRepository) ResolveByBin(binID uint64) error {
	return r.db.Model(&models.Alert{}).
		Where("bin_id = ? AND status = ?", binID, models.AlertStatusActive).
		Update("status", models.AlertStatusResolved).Error
}

// Update updates an alert
func (r *GormAlertRepository) Update(alert *models.Alert) error {
	return r.db.Save(alert).Error
}

// CountActive counts active alerts
func (r *GormAlertRepository) CountActive() (int64, error) {
	var count int64
	err := r.db.Model(&models.Alert{}).
		Where("status = ?", models.AlertStatusActive).
		Count(&count).Error
	return count, err
}
