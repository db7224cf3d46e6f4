package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewReferenceCode returns a short booking reference shown to customers,
// e.g. "A1B2C3D4".
func NewReferenceCode() string {
	id := uuid.New().String()
	return strings.ToUpper(strings.ReplaceAll(id, "-", "")[:8])
}
