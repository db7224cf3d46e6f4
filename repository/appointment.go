package repository

import (
	"context"
	"errors"

	"github.com/petgroomhq/grooming-app/models"
	"gorm.io/gorm"
)

// AppointmentRepository implements scheduling.AppointmentStore.
type AppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

func (r *AppointmentRepository) ListForProfessionalOnDate(ctx context.Context, companyID, professionalID uint, date string, excludeCancelled bool) ([]models.Appointment, error) {
	query := r.db.WithContext(ctx).
		Where("company_id = ? AND professional_id = ? AND date = ?", companyID, professionalID, date)
	if excludeCancelled {
		query = query.Where("status <> ?", models.StatusCancelled)
	}

	var appointments []models.Appointment
	err := query.Order("time asc").Find(&appointments).Error
	return appointments, err
}

func (r *AppointmentRepository) ListForDate(ctx context.Context, companyID uint, date string, excludeCancelled bool) ([]models.Appointment, error) {
	query := r.db.WithContext(ctx).
		Preload("Pet").
		Preload("Professional").
		Where("company_id = ? AND date = ?", companyID, date)
	if excludeCancelled {
		query = query.Where("status <> ?", models.StatusCancelled)
	}

	var appointments []models.Appointment
	err := query.Order("time asc").Find(&appointments).Error
	return appointments, err
}

func (r *AppointmentRepository) FindByID(ctx context.Context, companyID, id uint) (*models.Appointment, error) {
	var appointment models.Appointment
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		First(&appointment, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}

func (r *AppointmentRepository) Create(ctx context.Context, appointment *models.Appointment) error {
	return r.db.WithContext(ctx).Create(appointment).Error
}

func (r *AppointmentRepository) Update(ctx context.Context, appointment *models.Appointment) error {
	return r.db.WithContext(ctx).Save(appointment).Error
}
