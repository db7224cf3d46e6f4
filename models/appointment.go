package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// ServiceType identifies the service booked for a pet.
type ServiceType string

const (
	ServiceBath         ServiceType = "bath"
	ServiceGrooming     ServiceType = "grooming"
	ServiceBathGrooming ServiceType = "bath_grooming"
	ServiceVet          ServiceType = "vet"
	ServiceHotel        ServiceType = "hotel"
	ServiceOther        ServiceType = "other"
)

var serviceTypes = map[ServiceType]bool{
	ServiceBath:         true,
	ServiceGrooming:     true,
	ServiceBathGrooming: true,
	ServiceVet:          true,
	ServiceHotel:        true,
	ServiceOther:        true,
}

// IsValid returns true if the service type is recognized.
func (s ServiceType) IsValid() bool {
	return serviceTypes[s]
}

// ParseServiceType converts a string to a ServiceType, returning an error if invalid.
func ParseServiceType(s string) (ServiceType, error) {
	st := ServiceType(s)
	if !st.IsValid() {
		return "", fmt.Errorf("invalid service type: %s", s)
	}
	return st, nil
}

// AppointmentStatus represents the current state of an appointment in its lifecycle.
type AppointmentStatus string

const (
	StatusConfirmed  AppointmentStatus = "confirmed"
	StatusCheckedIn  AppointmentStatus = "checked_in"
	StatusInProgress AppointmentStatus = "in_progress"
	StatusCompleted  AppointmentStatus = "completed"
	StatusCancelled  AppointmentStatus = "cancelled"
)

// validTransitions defines the state machine for appointment status transitions.
var validTransitions = map[AppointmentStatus][]AppointmentStatus{
	StatusConfirmed:  {StatusCheckedIn, StatusCancelled},
	StatusCheckedIn:  {StatusInProgress, StatusCompleted, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

// IsValid returns true if the status is a recognized appointment status.
func (s AppointmentStatus) IsValid() bool {
	_, exists := validTransitions[s]
	return exists
}

// CanTransitionTo returns true if a transition from this status to the target is allowed.
func (s AppointmentStatus) CanTransitionTo(target AppointmentStatus) bool {
	allowed, exists := validTransitions[s]
	if !exists {
		return false
	}
	for _, t := range allowed {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true if no further transitions are possible from this status.
func (s AppointmentStatus) IsTerminal() bool {
	allowed, exists := validTransitions[s]
	if !exists {
		return true
	}
	return len(allowed) == 0
}

// String returns the string representation of the status.
func (s AppointmentStatus) String() string {
	return string(s)
}

// Appointment is a booked service for a pet on a professional's schedule.
// Date is a civil date ("2006-01-02") and Time a time of day ("15:04"), both
// in the shop's timezone. DurationMinutes is frozen at creation from the
// service duration table and only changes on an explicit reschedule.
type Appointment struct {
	gorm.Model
	ReferenceCode           string            `json:"reference_code" gorm:"index"`
	PetID                   uint              `json:"pet_id"`
	Pet                     Pet               `json:"pet,omitempty" gorm:"foreignKey:PetID"`
	CustomerID              uint              `json:"customer_id"`
	Customer                User              `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	ProfessionalID          *uint             `json:"professional_id" gorm:"index:idx_appointments_professional_date"`
	Professional            *Professional     `json:"professional,omitempty" gorm:"foreignKey:ProfessionalID"`
	Service                 ServiceType       `json:"service"`
	Date                    string            `json:"date" gorm:"index:idx_appointments_professional_date"`
	Time                    string            `json:"time"`
	DurationMinutes         int               `json:"duration_minutes"`
	Status                  AppointmentStatus `json:"status"`
	CheckInTime             *time.Time        `json:"check_in_time"`
	CheckOutTime            *time.Time        `json:"check_out_time"`
	EstimatedCompletionTime *time.Time        `json:"estimated_completion_time"`
	CancelledAt             *time.Time        `json:"cancelled_at"`
	CancellationFeePct      float64           `json:"cancellation_fee_pct"`
	IsLate                  bool              `json:"is_late"`
	RequiresConfirmation    bool              `json:"requires_confirmation"`
	Notes                   string            `json:"notes"`
	PhotoURL                string            `json:"photo_url"`
	CompanyID               uint              `json:"company_id" gorm:"index"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.Status == "" {
		a.Status = StatusConfirmed
	}
	return nil
}
