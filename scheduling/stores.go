package scheduling

import (
	"context"

	"github.com/petgroomhq/grooming-app/models"
)

// ProfessionalRegistry is the read view of staff records. Implementations
// must exclude deactivated professionals from ListActive.
type ProfessionalRegistry interface {
	ListActive(ctx context.Context, companyID uint) ([]models.Professional, error)
	FindByID(ctx context.Context, companyID, id uint) (*models.Professional, error)
}

// AppointmentStore is the read/write view of bookings. Dates are civil-date
// strings ("2006-01-02") in the shop timezone.
type AppointmentStore interface {
	ListForProfessionalOnDate(ctx context.Context, companyID, professionalID uint, date string, excludeCancelled bool) ([]models.Appointment, error)
	ListForDate(ctx context.Context, companyID uint, date string, excludeCancelled bool) ([]models.Appointment, error)
	FindByID(ctx context.Context, companyID, id uint) (*models.Appointment, error)
	Create(ctx context.Context, appointment *models.Appointment) error
	Update(ctx context.Context, appointment *models.Appointment) error
}

// RecordSink receives the service-history entry emitted at check-out. It is
// an external collaborator from the core's point of view.
type RecordSink interface {
	AppendRecord(ctx context.Context, record *models.GroomingRecord) error
}
