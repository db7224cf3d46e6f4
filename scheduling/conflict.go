package scheduling

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/petgroomhq/grooming-app/models"
)

// Interval is a half-open [Start, End) range in minutes since midnight,
// tagged with the appointment it belongs to.
type Interval struct {
	Start         int
	End           int
	AppointmentID uint
}

// MinuteOfDay parses an "HH:MM" time of day into minutes since midnight.
func MinuteOfDay(hm string) (int, error) {
	parts := strings.Split(hm, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time format: %s", hm)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid hour in %q", hm)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid minute in %q", hm)
	}
	return hour*60 + minute, nil
}

// FormatMinute renders minutes since midnight as "HH:MM".
func FormatMinute(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// overlapsBuffered reports whether the candidate intersects the existing
// interval once the existing one is padded by the overlap buffer.
func overlapsBuffered(cand, existing Interval) bool {
	return cand.Start < existing.End+OverlapBufferMinutes &&
		cand.End > existing.Start-OverlapBufferMinutes
}

// CheckSlot validates a candidate interval against a professional's existing
// bookings for the day. It returns nil when the slot is free, a conflict
// rejection when the buffered intervals intersect, and a gap rejection when
// the slot clears the buffer but sits closer than the minimum gap to a
// neighbor. The two reasons are distinct so callers can tell "time taken"
// from "too close to another booking".
func CheckSlot(cand Interval, existing []Interval) *Reject {
	for _, ex := range existing {
		if overlapsBuffered(cand, ex) {
			return conflictWith(ex.AppointmentID)
		}
	}
	for _, ex := range existing {
		gap := cand.Start - ex.End
		if gap < 0 {
			gap = ex.Start - cand.End
		}
		if gap > 0 && gap < MinimumGapMinutes {
			return gapTooSmall(ex.AppointmentID, gap)
		}
	}
	return nil
}

// DayIntervals converts a day's appointments into intervals, skipping
// cancelled bookings and (optionally) one appointment being rescheduled.
// Appointments with unparseable times are skipped rather than blocking the
// whole day.
func DayIntervals(appointments []models.Appointment, excludeID uint) []Interval {
	intervals := make([]Interval, 0, len(appointments))
	for _, a := range appointments {
		if a.Status == models.StatusCancelled {
			continue
		}
		if excludeID != 0 && a.ID == excludeID {
			continue
		}
		start, err := MinuteOfDay(a.Time)
		if err != nil {
			continue
		}
		intervals = append(intervals, Interval{
			Start:         start,
			End:           start + a.DurationMinutes,
			AppointmentID: a.ID,
		})
	}
	sort.Slice(intervals, func(i, j int) bool { return intervals[i].Start < intervals[j].Start })
	return intervals
}
