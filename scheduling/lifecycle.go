package scheduling

import (
	"context"
	"time"

	"github.com/petgroomhq/grooming-app/models"
	"github.com/petgroomhq/grooming-app/utils"
)

const civilDateLayout = "2006-01-02"

// Scheduler drives appointments through their lifecycle: create, check-in,
// start, check-out and cancel, plus the availability queries. Every mutation
// for a professional's day is serialized on a DayLocks mutex held across
// validate+commit; availability reads are advisory and unsynchronized.
type Scheduler struct {
	registry ProfessionalRegistry
	store    AppointmentStore
	records  RecordSink
	locks    *DayLocks
	loc      *time.Location

	// now is swappable so deadline math is testable.
	now func() time.Time
}

func NewScheduler(registry ProfessionalRegistry, store AppointmentStore, records RecordSink, loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	return &Scheduler{
		registry: registry,
		store:    store,
		records:  records,
		locks:    NewDayLocks(),
		loc:      loc,
		now:      time.Now,
	}
}

// parseCivilDate interprets a "2006-01-02" date in the shop timezone.
func (s *Scheduler) parseCivilDate(date string) (time.Time, error) {
	t, err := time.ParseInLocation(civilDateLayout, date, s.loc)
	if err != nil {
		return time.Time{}, Validationf("invalid date %q, expected YYYY-MM-DD", date)
	}
	return t, nil
}

// scheduledAt combines an appointment's civil date and time of day into an
// instant in the shop timezone.
func (s *Scheduler) scheduledAt(a *models.Appointment) (time.Time, error) {
	day, err := s.parseCivilDate(a.Date)
	if err != nil {
		return time.Time{}, err
	}
	minute, err := MinuteOfDay(a.Time)
	if err != nil {
		return time.Time{}, Validationf("invalid time %q, expected HH:MM", a.Time)
	}
	return day.Add(time.Duration(minute) * time.Minute), nil
}

// CreateInput carries a booking request. ProfessionalID nil means the
// scheduler picks the least-loaded professional able to take the slot.
// DurationMinutes is only honored for hotel stays.
type CreateInput struct {
	CompanyID       uint
	PetID           uint
	CustomerID      uint
	ProfessionalID  *uint
	Service         models.ServiceType
	Date            string // "2006-01-02"
	Time            string // "15:04"
	DurationMinutes int
	Notes           string
}

// Create books a new appointment. The slot is validated (working hours,
// buffered overlap, minimum gap) against the latest state under the day lock
// before the record is written.
func (s *Scheduler) Create(ctx context.Context, in CreateInput) (*models.Appointment, error) {
	if in.PetID == 0 {
		return nil, Validationf("pet is required")
	}
	if in.CustomerID == 0 {
		return nil, Validationf("customer is required")
	}
	if in.Date == "" {
		return nil, Validationf("date is required")
	}
	if in.Time == "" {
		return nil, Validationf("time is required")
	}
	duration, err := ServiceDuration(in.Service, in.DurationMinutes)
	if err != nil {
		return nil, err
	}
	date, err := s.parseCivilDate(in.Date)
	if err != nil {
		return nil, err
	}
	startMinute, err := MinuteOfDay(in.Time)
	if err != nil {
		return nil, Validationf("invalid time %q, expected HH:MM", in.Time)
	}
	startAt := date.Add(time.Duration(startMinute) * time.Minute)
	if !startAt.After(s.now()) {
		return nil, Validationf("cannot book an appointment in the past")
	}
	cand := Interval{Start: startMinute, End: startMinute + duration}

	appointment := &models.Appointment{
		ReferenceCode:   utils.NewReferenceCode(),
		PetID:           in.PetID,
		CustomerID:      in.CustomerID,
		Service:         in.Service,
		Date:            in.Date,
		Time:            in.Time,
		DurationMinutes: duration,
		Status:          models.StatusConfirmed,
		Notes:           in.Notes,
		CompanyID:       in.CompanyID,
	}

	if in.ProfessionalID != nil {
		pro, err := s.registry.FindByID(ctx, in.CompanyID, *in.ProfessionalID)
		if err != nil {
			return nil, err
		}
		if pro == nil || !pro.IsActive {
			return nil, NotFoundf("professional %d not found", *in.ProfessionalID)
		}
		return s.commitCreate(ctx, appointment, pro, date, cand)
	}

	ranked, err := s.rankCandidates(ctx, in.CompanyID, in.Service, date, in.Date, cand)
	if err != nil {
		return nil, err
	}
	for i := range ranked {
		created, err := s.commitCreate(ctx, appointment, &ranked[i], date, cand)
		if err == nil {
			return created, nil
		}
		// The slot may have been taken between ranking and locking; move on
		// to the next candidate only for business rejections.
		if _, ok := AsReject(err); !ok {
			return nil, err
		}
	}
	return nil, noProfessional()
}

// commitCreate re-validates the slot for one professional under the day lock
// and writes the appointment.
func (s *Scheduler) commitCreate(ctx context.Context, appointment *models.Appointment, pro *models.Professional, date time.Time, cand Interval) (*models.Appointment, error) {
	unlock := s.locks.Lock(appointment.CompanyID, pro.ID, appointment.Date)
	defer unlock()

	day, err := s.store.ListForProfessionalOnDate(ctx, appointment.CompanyID, pro.ID, appointment.Date, true)
	if err != nil {
		return nil, err
	}
	if err := SlotFree(pro, date, cand, DayIntervals(day, 0)); err != nil {
		return nil, err
	}

	a := *appointment
	proID := pro.ID
	a.ProfessionalID = &proID
	if err := s.store.Create(ctx, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// CheckInResult reports the outcome of a check-in, including how late the
// customer was relative to the scheduled time.
type CheckInResult struct {
	Appointment *models.Appointment `json:"appointment"`
	MinutesLate int                 `json:"minutes_late"`
}

// CheckIn marks arrival. Only confirmed appointments can check in. Arrivals
// beyond the tolerance are still accepted but flagged late and requiring
// confirmation, so the front desk can decide whether to reschedule.
func (s *Scheduler) CheckIn(ctx context.Context, companyID, id uint) (*CheckInResult, error) {
	appointment, unlock, err := s.lockAppointment(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if appointment.Status != models.StatusConfirmed {
		return nil, Statef("cannot check in from status %s", appointment.Status)
	}
	scheduledAt, err := s.scheduledAt(appointment)
	if err != nil {
		return nil, err
	}

	now := s.now()
	minutesLate := MinutesLate(scheduledAt, now)
	if minutesLate > CheckInToleranceMinutes {
		appointment.IsLate = true
		appointment.RequiresConfirmation = true
	}
	estimated := now.Add(time.Duration(appointment.DurationMinutes) * time.Minute)
	appointment.CheckInTime = &now
	appointment.EstimatedCompletionTime = &estimated
	appointment.Status = models.StatusCheckedIn

	if err := s.store.Update(ctx, appointment); err != nil {
		return nil, err
	}
	return &CheckInResult{Appointment: appointment, MinutesLate: minutesLate}, nil
}

// Start moves a checked-in appointment onto the grooming table. No time gate.
func (s *Scheduler) Start(ctx context.Context, companyID, id uint) (*models.Appointment, error) {
	appointment, unlock, err := s.lockAppointment(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if appointment.Status != models.StatusCheckedIn {
		return nil, Statef("cannot start service from status %s", appointment.Status)
	}
	appointment.Status = models.StatusInProgress
	if err := s.store.Update(ctx, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

// CheckOut completes an appointment and appends the pet's service-history
// record. Allowed from checked_in or in_progress; a recorded check-in is
// required.
func (s *Scheduler) CheckOut(ctx context.Context, companyID, id uint, notes, photoURL string) (*models.Appointment, error) {
	appointment, unlock, err := s.lockAppointment(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if appointment.Status != models.StatusCheckedIn && appointment.Status != models.StatusInProgress {
		return nil, Statef("cannot check out from status %s", appointment.Status)
	}
	if appointment.CheckInTime == nil {
		return nil, Statef("cannot check out an appointment that was never checked in")
	}

	now := s.now()
	appointment.CheckOutTime = &now
	appointment.Status = models.StatusCompleted
	if notes != "" {
		appointment.Notes = notes
	}
	if photoURL != "" {
		appointment.PhotoURL = photoURL
	}
	if err := s.store.Update(ctx, appointment); err != nil {
		return nil, err
	}

	record := &models.GroomingRecord{
		AppointmentID:  appointment.ID,
		PetID:          appointment.PetID,
		ProfessionalID: *appointment.ProfessionalID,
		Service:        appointment.Service,
		Notes:          appointment.Notes,
		PhotoURL:       appointment.PhotoURL,
		PerformedAt:    now,
		CompanyID:      appointment.CompanyID,
	}
	if err := s.records.AppendRecord(ctx, record); err != nil {
		return nil, err
	}
	return appointment, nil
}

// Cancel cancels an appointment. Nobody may cancel once the scheduled time
// has passed. Customers are blocked inside the cancellation window; a
// privileged actor (owner/manager) may always cancel but incurs the late
// cancellation fee inside the window.
func (s *Scheduler) Cancel(ctx context.Context, companyID, id uint, privileged bool) (*models.Appointment, error) {
	appointment, unlock, err := s.lockAppointment(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if !appointment.Status.CanTransitionTo(models.StatusCancelled) {
		return nil, Statef("cannot cancel from status %s", appointment.Status)
	}
	scheduledAt, err := s.scheduledAt(appointment)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if now.After(scheduledAt) {
		return nil, Policyf("cannot cancel an appointment whose scheduled time has passed")
	}
	remaining := scheduledAt.Sub(now)
	if WithinCancellationWindow(scheduledAt, now) && !privileged {
		return nil, &Reject{
			Kind:           KindPolicy,
			Message:        "cancellations require at least 2 hours notice",
			HoursRemaining: remaining.Hours(),
		}
	}

	appointment.CancellationFeePct = CancellationFee(scheduledAt, now)
	appointment.CancelledAt = &now
	appointment.Status = models.StatusCancelled
	if err := s.store.Update(ctx, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

// lockAppointment fetches an appointment and acquires its professional-day
// lock, re-reading afterwards so the guard checks run against current state.
func (s *Scheduler) lockAppointment(ctx context.Context, companyID, id uint) (*models.Appointment, func(), error) {
	appointment, err := s.store.FindByID(ctx, companyID, id)
	if err != nil {
		return nil, nil, err
	}
	if appointment == nil {
		return nil, nil, NotFoundf("appointment %d not found", id)
	}
	if appointment.ProfessionalID == nil {
		return nil, nil, Statef("appointment %d has no professional assigned", id)
	}

	unlock := s.locks.Lock(companyID, *appointment.ProfessionalID, appointment.Date)
	appointment, err = s.store.FindByID(ctx, companyID, id)
	if err != nil || appointment == nil {
		unlock()
		if err != nil {
			return nil, nil, err
		}
		return nil, nil, NotFoundf("appointment %d not found", id)
	}
	return appointment, unlock, nil
}

// Availability returns the bookable start times for one professional.
func (s *Scheduler) Availability(ctx context.Context, companyID, professionalID uint, dateStr string, service models.ServiceType, requestedMinutes int) ([]string, error) {
	duration, err := ServiceDuration(service, requestedMinutes)
	if err != nil {
		return nil, err
	}
	date, err := s.parseCivilDate(dateStr)
	if err != nil {
		return nil, err
	}
	pro, err := s.registry.FindByID(ctx, companyID, professionalID)
	if err != nil {
		return nil, err
	}
	if pro == nil || !pro.IsActive {
		return nil, NotFoundf("professional %d not found", professionalID)
	}
	day, err := s.store.ListForProfessionalOnDate(ctx, companyID, professionalID, dateStr, true)
	if err != nil {
		return nil, err
	}
	return DaySlots(pro, date, duration, DayIntervals(day, 0))
}

// ProfessionalSlots is one professional's open slots for a date.
type ProfessionalSlots struct {
	ProfessionalID   uint     `json:"professional_id"`
	ProfessionalName string   `json:"professional_name"`
	Slots            []string `json:"slots"`
}

// AvailabilityAll returns open slots for every active professional able to
// perform the service. Professionals with no open slots are included with an
// empty list so the caller can render a full roster.
func (s *Scheduler) AvailabilityAll(ctx context.Context, companyID uint, dateStr string, service models.ServiceType, requestedMinutes int) ([]ProfessionalSlots, error) {
	duration, err := ServiceDuration(service, requestedMinutes)
	if err != nil {
		return nil, err
	}
	date, err := s.parseCivilDate(dateStr)
	if err != nil {
		return nil, err
	}
	pros, err := s.registry.ListActive(ctx, companyID)
	if err != nil {
		return nil, err
	}

	result := make([]ProfessionalSlots, 0, len(pros))
	for i := range pros {
		p := pros[i]
		if !p.HasSpecialty(service) {
			continue
		}
		day, err := s.store.ListForProfessionalOnDate(ctx, companyID, p.ID, dateStr, true)
		if err != nil {
			return nil, err
		}
		slots, err := DaySlots(&p, date, duration, DayIntervals(day, 0))
		if err != nil {
			return nil, err
		}
		result = append(result, ProfessionalSlots{
			ProfessionalID:   p.ID,
			ProfessionalName: p.Name,
			Slots:            slots,
		})
	}
	return result, nil
}

// DaySchedule is one day of the weekly view.
type DaySchedule struct {
	Date         string               `json:"date"`
	Appointments []models.Appointment `json:"appointments"`
}

// WeeklySchedule returns 7 consecutive days of non-cancelled appointments
// starting at the given date.
func (s *Scheduler) WeeklySchedule(ctx context.Context, companyID uint, startDate string) ([]DaySchedule, error) {
	start, err := s.parseCivilDate(startDate)
	if err != nil {
		return nil, err
	}

	week := make([]DaySchedule, 0, 7)
	for i := 0; i < 7; i++ {
		day := start.AddDate(0, 0, i).Format(civilDateLayout)
		appointments, err := s.store.ListForDate(ctx, companyID, day, true)
		if err != nil {
			return nil, err
		}
		week = append(week, DaySchedule{Date: day, Appointments: appointments})
	}
	return week, nil
}
