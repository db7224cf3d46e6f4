package models

import (
	"time"

	"gorm.io/gorm"
)

// GroomingRecord is an append-only service-history entry for a pet, written
// when an appointment is checked out. Records are never updated or deleted.
type GroomingRecord struct {
	gorm.Model
	AppointmentID  uint        `json:"appointment_id" gorm:"index"`
	PetID          uint        `json:"pet_id" gorm:"index"`
	Pet            Pet         `json:"pet,omitempty" gorm:"foreignKey:PetID"`
	ProfessionalID uint        `json:"professional_id"`
	Service        ServiceType `json:"service"`
	Notes          string      `json:"notes"`
	PhotoURL       string      `json:"photo_url"`
	PerformedAt    time.Time   `json:"performed_at"`
	CompanyID      uint        `json:"company_id" gorm:"index"`
}
