package models

import (
	"gorm.io/gorm"
)

// Pet belongs to a customer and is the subject of appointments and
// grooming records.
type Pet struct {
	gorm.Model
	Name       string `json:"name"`
	Species    string `json:"species"` // dog, cat, ...
	Breed      string `json:"breed"`
	Size       string `json:"size"` // small, medium, large
	CoatNotes  string `json:"coat_notes"`
	PhotoURL   string `json:"photo_url"`
	CustomerID uint   `json:"customer_id"`
	Customer   User   `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	CompanyID  uint   `json:"company_id" gorm:"index"`
}
