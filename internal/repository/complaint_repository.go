package repository

import (
	"gorm.io/gorm"

	"github.com/codecops/cleanify-api/internal/models"
)

// GormComplaintRepository is a GORM implementation of ComplaintRepository
type GormComplaintRepository struct {
	db *gorm.DB
}

// NewComplaintRepository creates a new ComplaintRepository
func NewComplaintRepository(db *gorm.DB) ComplaintRepository {
	return &GormComplaintRepository{db: db}
}

func (r *GormComplaintRepository) WithTx(tx *gorm.DB) ComplaintRepository {
	return &GormComplaintRepository{db: tx}
}

// Create creates a new complaint
func (r *GormComplaintRepository) Create(complaint *models.Complaint) error {
	return r.db.Create(complaint).Error
}

// FindByID finds a complaint by ID
func (r *GormComplaintRepository) FindByID(id uint64) (*models.Complaint, error) {
	var complaint models.Complaint
	if err := r.db.First(&complaint, id).Error; err != nil {
		return nil, err
	}
	return &complaint, nil
}

// List retrieves all complaints, newest first
func (r *GormComplaintRepository) List() ([]models.Complaint, error) {
	var complaints []models.Complaint
	if err := r.db.Order("created_at DESC").Find(&complaints).Error; err != nil {
		return nil, err
	}
	return complaints, nil
}

// ListByUser retrieves a citizen's complaints, newest first
func (r *GormComplaintRepository) ListByUser(userID uint64) ([]models.Complaint, error) {
	var complaints []models.Complaint
	if err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&complaints).Error; err != nil {
		return nil, err
	}
	return complaints, nil
}

// Update updates a complaint
func (r *GormComplaintRepository) Update(complaint *models.Complaint) error {
	return r.db.Save(complaint).Error
}
