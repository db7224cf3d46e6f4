// Package scheduling implements the appointment scheduling core: availability
// computation, conflict detection with buffers, load-balanced assignment and
// the time-gated appointment lifecycle. It talks to storage only through the
// interfaces in stores.go.
package scheduling

import (
	"errors"
	"fmt"
)

// Kind classifies a business-rule rejection.
type Kind string

const (
	KindValidation     Kind = "validation"
	KindNotFound       Kind = "not_found"
	KindConflict       Kind = "conflict"
	KindGap            Kind = "gap_too_small"
	KindState          Kind = "invalid_state"
	KindPolicy         Kind = "policy"
	KindNoProfessional Kind = "no_professional_available"
)

// Reject is a structured business-rule rejection. Rejections are expected
// outcomes, not faults: they carry enough context for the caller to render an
// actionable message and are never retried inside the core.
type Reject struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`

	// ConflictingAppointmentID names the colliding booking for conflict and
	// gap rejections.
	ConflictingAppointmentID uint `json:"conflicting_appointment_id,omitempty"`
	// GapMinutes is the offending gap for gap rejections.
	GapMinutes int `json:"gap_minutes,omitempty"`
	// HoursRemaining is the time left before the slot for policy rejections.
	HoursRemaining float64 `json:"hours_remaining,omitempty"`
	// MinutesLate is set on check-in lateness policy context.
	MinutesLate int `json:"minutes_late,omitempty"`
}

func (r *Reject) Error() string {
	return fmt.Sprintf("%s: %s", r.Kind, r.Message)
}

func Validationf(format string, args ...interface{}) *Reject {
	return &Reject{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func NotFoundf(format string, args ...interface{}) *Reject {
	return &Reject{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Statef(format string, args ...interface{}) *Reject {
	return &Reject{Kind: KindState, Message: fmt.Sprintf(format, args...)}
}

func Policyf(format string, args ...interface{}) *Reject {
	return &Reject{Kind: KindPolicy, Message: fmt.Sprintf(format, args...)}
}

func conflictWith(appointmentID uint) *Reject {
	return &Reject{
		Kind:                     KindConflict,
		Message:                  "time slot overlaps an existing appointment",
		ConflictingAppointmentID: appointmentID,
	}
}

func gapTooSmall(appointmentID uint, gap int) *Reject {
	return &Reject{
		Kind:                     KindGap,
		Message:                  fmt.Sprintf("only %d minutes from another appointment, minimum is %d", gap, MinimumGapMinutes),
		ConflictingAppointmentID: appointmentID,
		GapMinutes:               gap,
	}
}

func noProfessional() *Reject {
	return &Reject{Kind: KindNoProfessional, Message: "no professional available for the requested slot"}
}

// AsReject extracts a Reject from an error chain.
func AsReject(err error) (*Reject, bool) {
	var r *Reject
	if errors.As(err, &r) {
		return r, true
	}
	return nil, false
}

// IsKind reports whether err is a rejection of the given kind.
func IsKind(err error, kind Kind) bool {
	r, ok := AsReject(err)
	return ok && r.Kind == kind
}
