package scheduling

import (
	"time"

	"github.com/petgroomhq/grooming-app/models"
)

// workWindow is a professional's parsed schedule for one day.
type workWindow struct {
	start, end           int
	lunchStart, lunchEnd int
	hasLunch             bool
}

func parseWorkWindow(p *models.Professional) (workWindow, error) {
	var w workWindow
	var err error
	if w.start, err = MinuteOfDay(p.StartTime); err != nil {
		return w, Validationf("professional %d has invalid start time %q", p.ID, p.StartTime)
	}
	if w.end, err = MinuteOfDay(p.EndTime); err != nil {
		return w, Validationf("professional %d has invalid end time %q", p.ID, p.EndTime)
	}
	if w.end <= w.start {
		return w, Validationf("professional %d has an empty working window", p.ID)
	}
	w.hasLunch = p.LunchStart != "" && p.LunchEnd != ""
	if w.hasLunch {
		if w.lunchStart, err = MinuteOfDay(p.LunchStart); err != nil {
			return w, Validationf("professional %d has invalid lunch start %q", p.ID, p.LunchStart)
		}
		if w.lunchEnd, err = MinuteOfDay(p.LunchEnd); err != nil {
			return w, Validationf("professional %d has invalid lunch end %q", p.ID, p.LunchEnd)
		}
	}
	return w, nil
}

// fits reports whether the candidate lies inside the working window and
// clear of the lunch break.
func (w workWindow) fits(cand Interval) bool {
	if cand.Start < w.start || cand.End > w.end {
		return false
	}
	if w.hasLunch && cand.Start < w.lunchEnd && cand.End > w.lunchStart {
		return false
	}
	return true
}

// DaySlots computes the bookable start times ("HH:MM", ascending) for one
// professional on one date. Candidates step through the working window at the
// slot granularity, skip the lunch break, and keep only starts that pass the
// full conflict check against the day's bookings — a returned slot is
// guaranteed to survive the create-time validation. An empty result is a
// normal outcome, not an error.
func DaySlots(p *models.Professional, date time.Time, durationMinutes int, booked []Interval) ([]string, error) {
	if durationMinutes <= 0 {
		return nil, Validationf("duration must be positive")
	}
	if p.DayOffOn(date.Weekday()) {
		return nil, nil
	}
	window, err := parseWorkWindow(p)
	if err != nil {
		return nil, err
	}

	var slots []string
	for start := window.start; start+durationMinutes <= window.end; start += SlotStepMinutes {
		cand := Interval{Start: start, End: start + durationMinutes}
		if !window.fits(cand) {
			continue
		}
		if CheckSlot(cand, booked) != nil {
			continue
		}
		slots = append(slots, FormatMinute(start))
	}
	return slots, nil
}

// SlotFree validates one exact candidate slot against a professional's
// schedule and bookings, the same check DaySlots applies per candidate.
// Returns nil when bookable.
func SlotFree(p *models.Professional, date time.Time, cand Interval, booked []Interval) error {
	if p.DayOffOn(date.Weekday()) {
		return Validationf("professional %s does not work on %s", p.Name, date.Weekday())
	}
	window, err := parseWorkWindow(p)
	if err != nil {
		return err
	}
	if !window.fits(cand) {
		return Validationf("requested time is outside working hours or during lunch")
	}
	if rej := CheckSlot(cand, booked); rej != nil {
		return rej
	}
	return nil
}
