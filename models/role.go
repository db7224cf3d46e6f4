package models

import (
	"time"

	"gorm.io/gorm"
)

// Role groups permissions. The shop ships with owner, manager, groomer and
// customer roles; owner and manager count as privileged for cancellation.
type Role struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Name        string         `json:"name" gorm:"unique"`
	Description string         `json:"description"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
	Permissions []Permission   `json:"permissions,omitempty" gorm:"many2many:role_permissions;"`
}

// PrivilegedRoles may cancel inside the cancellation window (with fee).
var PrivilegedRoles = map[string]bool{
	"owner":   true,
	"manager": true,
}

// IsPrivilegedRole returns true for roles allowed to override booking policy.
func IsPrivilegedRole(name string) bool {
	return PrivilegedRoles[name]
}
