package repository

import (
	"gorm.io/gorm"

	"github.com/codecops/cleanify-api/internal/models"
)

// GormBinRepository is a GORM implementation of BinRepository
type GormBinRepository struct {
	db *gorm.DB
}

// NewBinRepository creates a new BinRepository
func NewBinRepository(db *gorm.DB) BinRepository {
	return &GormBinRepository{db: db}
}

func (r *GormBinRepository) WithTx(tx *gorm.DB) BinRepository {
	return &GormBinRepository{db: tx}
}

// Create creates a new bin
func (r *GormBinRepository) Create(bin *models.Bin) error {
	return r.db.Create(bin).Error
}

// FindByID finds a bin by ID
func (r *GormBinRepository) FindByID(id uint64) (*models.Bin, error) {
	var bin models.Bin
	if err := r.db.First(&bin, id).Error; err != nil {
		return nil, err
	}
	return &bin, nil
}

// List retrieves all bins ordered by ID
func (r *GormBinRepository) List() ([]models.Bin, error) {
	var bins []models.Bin
	if err := r.db.Order("id ASC").Find(&bins).Error; err != nil {
		return nil, err
	}
	return bins, nil
}

// Update updates a bin
func (r *GormBinRepository) Update(bin *models.Bin) error {
	return r.db.Save(bin).Error
}
