package scheduling

import (
	"time"

	"github.com/petgroomhq/grooming-app/models"
)

// Business-rule constants. These are the single source of truth for all
// scheduling math; nothing else in the repo hardcodes them.
const (
	// SlotStepMinutes is the booking granularity offered to customers.
	SlotStepMinutes = 30
	// OverlapBufferMinutes pads every existing appointment on both sides when
	// testing overlap, absorbing clean-up time between services.
	OverlapBufferMinutes = 5
	// MinimumGapMinutes is the smallest allowed separation between two
	// appointments that do not overlap.
	MinimumGapMinutes = 15
	// CheckInToleranceMinutes is how late a check-in can be before it is
	// flagged for confirmation.
	CheckInToleranceMinutes = 15
	// HotelMinimumMinutes is the shortest bookable hotel stay.
	HotelMinimumMinutes = 60
	// LateCancellationFeePct is charged when a privileged actor cancels
	// inside the cancellation window.
	LateCancellationFeePct = 50.0
)

// CancellationDeadline is how long before the scheduled time a customer may
// still cancel free of charge.
const CancellationDeadline = 2 * time.Hour

// serviceDurations maps each fixed-length service to its duration in minutes.
// Hotel stays are variable-length and validated separately.
var serviceDurations = map[models.ServiceType]int{
	models.ServiceBath:         60,
	models.ServiceGrooming:     90,
	models.ServiceBathGrooming: 120,
	models.ServiceVet:          30,
	models.ServiceOther:        60,
}

// ServiceDuration resolves the duration to freeze on a new appointment.
// For hotel stays the caller supplies the duration, which must sit on the
// slot grid and be at least HotelMinimumMinutes; for every other service the
// table wins and any requested value is ignored.
func ServiceDuration(service models.ServiceType, requestedMinutes int) (int, error) {
	if !service.IsValid() {
		return 0, Validationf("unknown service %q", service)
	}
	if service == models.ServiceHotel {
		if requestedMinutes < HotelMinimumMinutes {
			return 0, Validationf("hotel stay requires a duration of at least %d minutes", HotelMinimumMinutes)
		}
		if requestedMinutes%SlotStepMinutes != 0 {
			return 0, Validationf("hotel stay duration must be a multiple of %d minutes", SlotStepMinutes)
		}
		return requestedMinutes, nil
	}
	return serviceDurations[service], nil
}

// WithinCancellationWindow reports whether now falls inside the deadline
// before the scheduled time. The boundary itself counts as inside: a
// cancellation exactly at the 2-hour mark is already late.
func WithinCancellationWindow(scheduledAt, now time.Time) bool {
	return scheduledAt.Sub(now) <= CancellationDeadline
}

// CancellationFee returns the fee percentage for a cancellation at now.
func CancellationFee(scheduledAt, now time.Time) float64 {
	if WithinCancellationWindow(scheduledAt, now) {
		return LateCancellationFeePct
	}
	return 0
}

// MinutesLate returns whole minutes between the scheduled time and now;
// negative means early.
func MinutesLate(scheduledAt, now time.Time) int {
	return int(now.Sub(scheduledAt).Minutes())
}
