package models

import (
	"gorm.io/gorm"
)

// Company is the tenant that owns professionals, pets and appointments.
// Every scheduling operation is scoped to exactly one company.
type Company struct {
	gorm.Model
	Name        string `json:"name"`
	Description string `json:"description"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	ZipCode     string `json:"zip_code"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
	LogoURL     string `json:"logo_url"`
	TimeZone    string `json:"time_zone"` // IANA name, informational; schedule math uses SHOP_TZ
}
