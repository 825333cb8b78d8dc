package repository

import (
	"github.com/yashika222/ReliefNet/internal/models"
	"gorm.io/gorm"
)

// GormDisasterRepository is a GORM implementation of DisasterRepository
type GormDisasterRepository struct {
	db *gorm.DB
}

// NewDisasterRepository creates a new DisasterRepository
func NewDisasterRepository(db *gorm.DB) DisasterRepository {
	return &GormDisasterRepository{db: db}
}

// FindByID finds a disaster by ID
func (r *GormDisasterRepository) FindByID(id uint64) (*models.Disaster, error) {
	var disaster models.Disaster
	if err := r.db.First(&disaster, id).Error; err != nil {
		return nil, err
	}
	return &disaster, nil
}

// ListActive lists active disasters, most recently updated first
func (r *GormDisasterRepository) ListActive() ([]models.Disaster, error) {
	var disasters []models.Disaster
	err := r.db.
		Where("is_active = ?", true).
		Order("updated_at DESC").
		Find(&disasters).Error
	if err != nil {
		return nil, err
	}
	return disasters, nil
}
