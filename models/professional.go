package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Professional is a staff member who performs grooming services. The work
// schedule is stored as "HH:MM" times plus a list of weekday names off.
// Professionals are never hard-deleted: deactivation flips IsActive so past
// appointments keep a valid owner.
type Professional struct {
	gorm.Model
	Name        string `json:"name"`
	UserID      *uint  `json:"user_id"`
	User        *User  `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Specialties string `json:"specialties"` // comma-joined service tags; empty means all services
	StartTime   string `json:"start_time"`  // "08:00"
	EndTime     string `json:"end_time"`    // "18:00"
	LunchStart  string `json:"lunch_start"` // optional, "12:00"
	LunchEnd    string `json:"lunch_end"`   // optional, "13:00"
	DaysOff     string `json:"days_off"`    // comma-joined weekday names, e.g. "Sunday,Monday"
	IsActive    bool   `json:"is_active" gorm:"default:true"`
	PhotoURL    string `json:"photo_url"`
	CompanyID   uint   `json:"company_id" gorm:"index"`
}

// DayOffOn returns true if the professional does not work on the given weekday.
func (p *Professional) DayOffOn(day time.Weekday) bool {
	for _, d := range splitCSV(p.DaysOff) {
		if strings.EqualFold(d, day.String()) {
			return true
		}
	}
	return false
}

// SpecialtyList returns the declared specialties as service tags.
func (p *Professional) SpecialtyList() []string {
	return splitCSV(p.Specialties)
}

// HasSpecialty returns true if the professional can perform the service.
// An empty specialty list means the professional performs every service.
func (p *Professional) HasSpecialty(service ServiceType) bool {
	tags := p.SpecialtyList()
	if len(tags) == 0 {
		return true
	}
	for _, tag := range tags {
		if strings.EqualFold(tag, string(service)) {
			return true
		}
	}
	return false
}

func splitCSV(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
