// Package repository provides GORM-backed implementations of the scheduling
// store interfaces.
package repository

import (
	"context"
	"errors"

	"github.com/petgroomhq/grooming-app/models"
	"gorm.io/gorm"
)

// ProfessionalRepository implements scheduling.ProfessionalRegistry.
type ProfessionalRepository struct {
	db *gorm.DB
}

func NewProfessionalRepository(db *gorm.DB) *ProfessionalRepository {
	return &ProfessionalRepository{db: db}
}

// ListActive returns the company's active professionals, ordered by ID so
// allocation tie-breaks are stable.
func (r *ProfessionalRepository) ListActive(ctx context.Context, companyID uint) ([]models.Professional, error) {
	var pros []models.Professional
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND is_active = ?", companyID, true).
		Order("id asc").
		Find(&pros).Error
	return pros, err
}

// FindByID returns a professional regardless of active flag, or nil when the
// company has no such record.
func (r *ProfessionalRepository) FindByID(ctx context.Context, companyID, id uint) (*models.Professional, error) {
	var pro models.Professional
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		First(&pro, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &pro, nil
}
