package scheduling

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/petgroomhq/grooming-app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// In-memory fakes for the storage interfaces.

type fakeRegistry struct {
	pros []models.Professional
}

func (f *fakeRegistry) ListActive(_ context.Context, companyID uint) ([]models.Professional, error) {
	var out []models.Professional
	for _, p := range f.pros {
		if p.CompanyID == companyID && p.IsActive {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeRegistry) FindByID(_ context.Context, companyID, id uint) (*models.Professional, error) {
	for i := range f.pros {
		if f.pros[i].CompanyID == companyID && f.pros[i].ID == id {
			p := f.pros[i]
			return &p, nil
		}
	}
	return nil, nil
}

type fakeStore struct {
	mu           sync.Mutex
	appointments []models.Appointment
	nextID       uint
}

func (f *fakeStore) ListForProfessionalOnDate(_ context.Context, companyID, professionalID uint, date string, excludeCancelled bool) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Appointment
	for _, a := range f.appointments {
		if a.CompanyID != companyID || a.Date != date {
			continue
		}
		if a.ProfessionalID == nil || *a.ProfessionalID != professionalID {
			continue
		}
		if excludeCancelled && a.Status == models.StatusCancelled {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeStore) ListForDate(_ context.Context, companyID uint, date string, excludeCancelled bool) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Appointment
	for _, a := range f.appointments {
		if a.CompanyID != companyID || a.Date != date {
			continue
		}
		if excludeCancelled && a.Status == models.StatusCancelled {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeStore) FindByID(_ context.Context, companyID, id uint) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.appointments {
		if a.CompanyID == companyID && a.ID == id {
			cp := a
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) Create(_ context.Context, appointment *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	appointment.ID = f.nextID
	f.appointments = append(f.appointments, *appointment)
	return nil
}

func (f *fakeStore) Update(_ context.Context, appointment *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.appointments {
		if f.appointments[i].ID == appointment.ID {
			f.appointments[i] = *appointment
			return nil
		}
	}
	return nil
}

type fakeRecords struct {
	mu      sync.Mutex
	records []models.GroomingRecord
}

func (f *fakeRecords) AppendRecord(_ context.Context, record *models.GroomingRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, *record)
	return nil
}

const testCompany = uint(1)

func newGroomer(id uint, daysOff string) models.Professional {
	p := models.Professional{
		Name:       "Groomer",
		StartTime:  "08:00",
		EndTime:    "18:00",
		LunchStart: "12:00",
		LunchEnd:   "13:00",
		DaysOff:    daysOff,
		IsActive:   true,
		CompanyID:  testCompany,
	}
	p.ID = id
	return p
}

// newTestScheduler wires a Scheduler over the fakes with the clock frozen at
// 2026-03-02 08:00 UTC, the day before the test bookings.
func newTestScheduler(t *testing.T, pros ...models.Professional) (*Scheduler, *fakeStore, *fakeRecords) {
	t.Helper()
	store := &fakeStore{}
	records := &fakeRecords{}
	s := NewScheduler(&fakeRegistry{pros: pros}, store, records, time.UTC)
	s.now = func() time.Time { return time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC) }
	return s, store, records
}

func mustCreate(t *testing.T, s *Scheduler, in CreateInput) *models.Appointment {
	t.Helper()
	a, err := s.Create(context.Background(), in)
	require.NoError(t, err)
	return a
}

func bathAt(timeOfDay string, proID *uint) CreateInput {
	return CreateInput{
		CompanyID:      testCompany,
		PetID:          10,
		CustomerID:     20,
		ProfessionalID: proID,
		Service:        models.ServiceBath,
		Date:           "2026-03-03",
		Time:           timeOfDay,
	}
}

func uintPtr(v uint) *uint { return &v }

func TestCreateValidation(t *testing.T) {
	s, _, _ := newTestScheduler(t, newGroomer(1, ""))

	tests := []struct {
		name     string
		mutate   func(*CreateInput)
		wantKind Kind
	}{
		{name: "missing pet", mutate: func(in *CreateInput) { in.PetID = 0 }, wantKind: KindValidation},
		{name: "missing customer", mutate: func(in *CreateInput) { in.CustomerID = 0 }, wantKind: KindValidation},
		{name: "missing date", mutate: func(in *CreateInput) { in.Date = "" }, wantKind: KindValidation},
		{name: "bad date", mutate: func(in *CreateInput) { in.Date = "03/03/2026" }, wantKind: KindValidation},
		{name: "missing time", mutate: func(in *CreateInput) { in.Time = "" }, wantKind: KindValidation},
		{name: "bad time", mutate: func(in *CreateInput) { in.Time = "9am" }, wantKind: KindValidation},
		{name: "bad service", mutate: func(in *CreateInput) { in.Service = "haircut" }, wantKind: KindValidation},
		{name: "in the past", mutate: func(in *CreateInput) { in.Date = "2026-03-01" }, wantKind: KindValidation},
		{name: "unknown professional", mutate: func(in *CreateInput) { in.ProfessionalID = uintPtr(99) }, wantKind: KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := bathAt("10:00", uintPtr(1))
			tt.mutate(&in)
			_, err := s.Create(context.Background(), in)
			assert.True(t, IsKind(err, tt.wantKind), "got %v", err)
		})
	}
}

func TestCreateFreezesDuration(t *testing.T) {
	s, _, _ := newTestScheduler(t, newGroomer(1, ""))

	in := bathAt("10:00", uintPtr(1))
	in.DurationMinutes = 999
	a := mustCreate(t, s, in)

	assert.Equal(t, 60, a.DurationMinutes)
	assert.Equal(t, models.StatusConfirmed, a.Status)
	assert.NotEmpty(t, a.ReferenceCode)
	require.NotNil(t, a.ProfessionalID)
	assert.Equal(t, uint(1), *a.ProfessionalID)
}

func TestCreateHotelStay(t *testing.T) {
	s, _, _ := newTestScheduler(t, newGroomer(1, ""))

	in := bathAt("14:00", uintPtr(1))
	in.Service = models.ServiceHotel
	in.DurationMinutes = 45
	_, err := s.Create(context.Background(), in)
	assert.True(t, IsKind(err, KindValidation))

	in.DurationMinutes = 180
	a := mustCreate(t, s, in)
	assert.Equal(t, 180, a.DurationMinutes)
}

func TestCreateRejectsConflicts(t *testing.T) {
	s, _, _ := newTestScheduler(t, newGroomer(1, ""))
	mustCreate(t, s, bathAt("09:00", uintPtr(1)))

	_, err := s.Create(context.Background(), bathAt("09:30", uintPtr(1)))
	require.Error(t, err)
	rej, ok := AsReject(err)
	require.True(t, ok)
	assert.Equal(t, KindConflict, rej.Kind)
	assert.NotZero(t, rej.ConflictingAppointmentID)

	// 10:30 is the first start clear of the buffer and the minimum gap.
	a := mustCreate(t, s, bathAt("10:30", uintPtr(1)))
	assert.Equal(t, "10:30", a.Time)
}

func TestCreateAutoAssignPicksLeastLoaded(t *testing.T) {
	s, _, _ := newTestScheduler(t, newGroomer(1, ""), newGroomer(2, ""))

	// Load up professional 1.
	mustCreate(t, s, bathAt("08:00", uintPtr(1)))
	mustCreate(t, s, bathAt("14:00", uintPtr(1)))

	a := mustCreate(t, s, bathAt("10:00", nil))
	require.NotNil(t, a.ProfessionalID)
	assert.Equal(t, uint(2), *a.ProfessionalID)
}

func TestCreateAutoAssignTieBreaksOnID(t *testing.T) {
	s, _, _ := newTestScheduler(t, newGroomer(2, ""), newGroomer(1, ""))

	a := mustCreate(t, s, bathAt("10:00", nil))
	require.NotNil(t, a.ProfessionalID)
	assert.Equal(t, uint(1), *a.ProfessionalID)
}

func TestCreateAutoAssignSkipsDayOffAndSpecialty(t *testing.T) {
	vetOnly := newGroomer(1, "")
	vetOnly.Specialties = "vet"
	offTuesday := newGroomer(2, "Tuesday")
	available := newGroomer(3, "")

	s, _, _ := newTestScheduler(t, vetOnly, offTuesday, available)

	a := mustCreate(t, s, bathAt("10:00", nil))
	require.NotNil(t, a.ProfessionalID)
	assert.Equal(t, uint(3), *a.ProfessionalID)
}

func TestCreateNoProfessionalAvailable(t *testing.T) {
	s, _, _ := newTestScheduler(t, newGroomer(1, "Tuesday"))

	_, err := s.Create(context.Background(), bathAt("10:00", nil))
	assert.True(t, IsKind(err, KindNoProfessional))
}

func TestCheckInOnTime(t *testing.T) {
	s, _, _ := newTestScheduler(t, newGroomer(1, ""))
	a := mustCreate(t, s, bathAt("10:00", uintPtr(1)))

	// Arrive 10 minutes late, inside the tolerance.
	s.now = func() time.Time { return time.Date(2026, 3, 3, 10, 10, 0, 0, time.UTC) }
	result, err := s.CheckIn(context.Background(), testCompany, a.ID)
	require.NoError(t, err)

	assert.Equal(t, 10, result.MinutesLate)
	assert.Equal(t, models.StatusCheckedIn, result.Appointment.Status)
	assert.False(t, result.Appointment.IsLate)
	assert.False(t, result.Appointment.RequiresConfirmation)
	require.NotNil(t, result.Appointment.CheckInTime)
	require.NotNil(t, result.Appointment.EstimatedCompletionTime)
	assert.Equal(t,
		result.Appointment.CheckInTime.Add(60*time.Minute),
		*result.Appointment.EstimatedCompletionTime)
}

func TestCheckInBeyondTolerance(t *testing.T) {
	s, _, _ := newTestScheduler(t, newGroomer(1, ""))
	a := mustCreate(t, s, bathAt("10:00", uintPtr(1)))

	s.now = func() time.Time { return time.Date(2026, 3, 3, 10, 20, 0, 0, time.UTC) }
	result, err := s.CheckIn(context.Background(), testCompany, a.ID)
	require.NoError(t, err)

	assert.Equal(t, 20, result.MinutesLate)
	assert.True(t, result.Appointment.IsLate)
	assert.True(t, result.Appointment.RequiresConfirmation)
	assert.Equal(t, models.StatusCheckedIn, result.Appointment.Status)
}

func TestCheckInWrongState(t *testing.T) {
	s, _, _ := newTestScheduler(t, newGroomer(1, ""))
	a := mustCreate(t, s, bathAt("10:00", uintPtr(1)))

	s.now = func() time.Time { return time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC) }
	_, err := s.CheckIn(context.Background(), testCompany, a.ID)
	require.NoError(t, err)

	_, err = s.CheckIn(context.Background(), testCompany, a.ID)
	assert.True(t, IsKind(err, KindState))
}

func TestStartRequiresCheckIn(t *testing.T) {
	s, _, _ := newTestScheduler(t, newGroomer(1, ""))
	a := mustCreate(t, s, bathAt("10:00", uintPtr(1)))

	_, err := s.Start(context.Background(), testCompany, a.ID)
	assert.True(t, IsKind(err, KindState))

	s.now = func() time.Time { return time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC) }
	_, err = s.CheckIn(context.Background(), testCompany, a.ID)
	require.NoError(t, err)

	started, err := s.Start(context.Background(), testCompany, a.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, started.Status)
}

func TestCheckOutEmitsRecord(t *testing.T) {
	s, _, records := newTestScheduler(t, newGroomer(1, ""))
	a := mustCreate(t, s, bathAt("10:00", uintPtr(1)))

	s.now = func() time.Time { return time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC) }
	_, err := s.CheckIn(context.Background(), testCompany, a.ID)
	require.NoError(t, err)
	_, err = s.Start(context.Background(), testCompany, a.ID)
	require.NoError(t, err)

	s.now = func() time.Time { return time.Date(2026, 3, 3, 11, 5, 0, 0, time.UTC) }
	done, err := s.CheckOut(context.Background(), testCompany, a.ID, "matted coat, extra brushing", "https://cdn.example/after.jpg")
	require.NoError(t, err)

	assert.Equal(t, models.StatusCompleted, done.Status)
	require.NotNil(t, done.CheckOutTime)
	assert.Equal(t, "matted coat, extra brushing", done.Notes)

	require.Len(t, records.records, 1)
	record := records.records[0]
	assert.Equal(t, a.ID, record.AppointmentID)
	assert.Equal(t, a.PetID, record.PetID)
	assert.Equal(t, uint(1), record.ProfessionalID)
	assert.Equal(t, models.ServiceBath, record.Service)
	assert.Equal(t, "matted coat, extra brushing", record.Notes)
	assert.Equal(t, "https://cdn.example/after.jpg", record.PhotoURL)
	assert.Equal(t, testCompany, record.CompanyID)
}

func TestCheckOutDirectlyFromCheckedIn(t *testing.T) {
	s, _, records := newTestScheduler(t, newGroomer(1, ""))
	a := mustCreate(t, s, bathAt("10:00", uintPtr(1)))

	s.now = func() time.Time { return time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC) }
	_, err := s.CheckIn(context.Background(), testCompany, a.ID)
	require.NoError(t, err)

	done, err := s.CheckOut(context.Background(), testCompany, a.ID, "", "")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, done.Status)
	assert.Len(t, records.records, 1)
}

func TestCheckOutWithoutCheckIn(t *testing.T) {
	s, _, records := newTestScheduler(t, newGroomer(1, ""))
	a := mustCreate(t, s, bathAt("10:00", uintPtr(1)))

	_, err := s.CheckOut(context.Background(), testCompany, a.ID, "", "")
	assert.True(t, IsKind(err, KindState))
	assert.Empty(t, records.records)
}

func TestCancelOutsideWindow(t *testing.T) {
	s, _, _ := newTestScheduler(t, newGroomer(1, ""))
	a := mustCreate(t, s, bathAt("10:00", uintPtr(1)))

	// 07:59 the same day: 2h01m of notice.
	s.now = func() time.Time { return time.Date(2026, 3, 3, 7, 59, 0, 0, time.UTC) }
	cancelled, err := s.Cancel(context.Background(), testCompany, a.ID, false)
	require.NoError(t, err)

	assert.Equal(t, models.StatusCancelled, cancelled.Status)
	assert.Zero(t, cancelled.CancellationFeePct)
	require.NotNil(t, cancelled.CancelledAt)
}

func TestCancelCustomerBlockedAtDeadline(t *testing.T) {
	s, _, _ := newTestScheduler(t, newGroomer(1, ""))
	a := mustCreate(t, s, bathAt("10:00", uintPtr(1)))

	// Exactly 2 hours of notice is already too late for a customer.
	s.now = func() time.Time { return time.Date(2026, 3, 3, 8, 0, 0, 0, time.UTC) }
	_, err := s.Cancel(context.Background(), testCompany, a.ID, false)
	require.Error(t, err)
	rej, ok := AsReject(err)
	require.True(t, ok)
	assert.Equal(t, KindPolicy, rej.Kind)
	assert.InDelta(t, 2.0, rej.HoursRemaining, 0.001)
}

func TestCancelPrivilegedInsideWindowPaysFee(t *testing.T) {
	s, _, _ := newTestScheduler(t, newGroomer(1, ""))
	a := mustCreate(t, s, bathAt("10:00", uintPtr(1)))

	s.now = func() time.Time { return time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC) }
	cancelled, err := s.Cancel(context.Background(), testCompany, a.ID, true)
	require.NoError(t, err)

	assert.Equal(t, models.StatusCancelled, cancelled.Status)
	assert.Equal(t, LateCancellationFeePct, cancelled.CancellationFeePct)
}

func TestCancelAfterScheduledTime(t *testing.T) {
	s, _, _ := newTestScheduler(t, newGroomer(1, ""))
	a := mustCreate(t, s, bathAt("10:00", uintPtr(1)))

	s.now = func() time.Time { return time.Date(2026, 3, 3, 10, 30, 0, 0, time.UTC) }
	_, err := s.Cancel(context.Background(), testCompany, a.ID, true)
	assert.True(t, IsKind(err, KindPolicy))
}

func TestCancelCompletedAppointment(t *testing.T) {
	s, _, _ := newTestScheduler(t, newGroomer(1, ""))
	a := mustCreate(t, s, bathAt("10:00", uintPtr(1)))

	s.now = func() time.Time { return time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC) }
	_, err := s.CheckIn(context.Background(), testCompany, a.ID)
	require.NoError(t, err)
	_, err = s.CheckOut(context.Background(), testCompany, a.ID, "", "")
	require.NoError(t, err)

	_, err = s.Cancel(context.Background(), testCompany, a.ID, true)
	assert.True(t, IsKind(err, KindState))
}

func TestCancelledSlotBecomesBookable(t *testing.T) {
	s, _, _ := newTestScheduler(t, newGroomer(1, ""))
	a := mustCreate(t, s, bathAt("10:00", uintPtr(1)))

	_, err := s.Cancel(context.Background(), testCompany, a.ID, true)
	require.NoError(t, err)

	again := mustCreate(t, s, bathAt("10:00", uintPtr(1)))
	assert.NotEqual(t, a.ID, again.ID)
}

func TestLifecycleNotFound(t *testing.T) {
	s, _, _ := newTestScheduler(t, newGroomer(1, ""))

	_, err := s.CheckIn(context.Background(), testCompany, 99)
	assert.True(t, IsKind(err, KindNotFound))

	_, err = s.Cancel(context.Background(), testCompany, 99, false)
	assert.True(t, IsKind(err, KindNotFound))
}

func TestLifecycleScopedToCompany(t *testing.T) {
	s, _, _ := newTestScheduler(t, newGroomer(1, ""))
	a := mustCreate(t, s, bathAt("10:00", uintPtr(1)))

	_, err := s.CheckIn(context.Background(), 42, a.ID)
	assert.True(t, IsKind(err, KindNotFound))
}

func TestAvailabilityReflectsBookings(t *testing.T) {
	s, _, _ := newTestScheduler(t, newGroomer(1, ""))
	mustCreate(t, s, bathAt("09:00", uintPtr(1)))

	slots, err := s.Availability(context.Background(), testCompany, 1, "2026-03-03", models.ServiceBath, 0)
	require.NoError(t, err)
	assert.NotContains(t, slots, "09:00")
	assert.NotContains(t, slots, "09:30")
	assert.Contains(t, slots, "10:30")
}

func TestAvailabilityAllIncludesFullyBookedStaff(t *testing.T) {
	busy := newGroomer(1, "Tuesday")
	free := newGroomer(2, "")
	vetOnly := newGroomer(3, "")
	vetOnly.Specialties = "vet"

	s, _, _ := newTestScheduler(t, busy, free, vetOnly)

	roster, err := s.AvailabilityAll(context.Background(), testCompany, "2026-03-03", models.ServiceBath, 0)
	require.NoError(t, err)

	// The vet-only groomer is filtered out; the day-off groomer shows with
	// an empty slot list.
	require.Len(t, roster, 2)
	assert.Equal(t, uint(1), roster[0].ProfessionalID)
	assert.Empty(t, roster[0].Slots)
	assert.Equal(t, uint(2), roster[1].ProfessionalID)
	assert.Len(t, roster[1].Slots, 16)
}

func TestWeeklySchedule(t *testing.T) {
	s, _, _ := newTestScheduler(t, newGroomer(1, ""))
	mustCreate(t, s, bathAt("10:00", uintPtr(1)))

	in := bathAt("10:00", uintPtr(1))
	in.Date = "2026-03-06"
	mustCreate(t, s, in)

	week, err := s.WeeklySchedule(context.Background(), testCompany, "2026-03-03")
	require.NoError(t, err)

	require.Len(t, week, 7)
	assert.Equal(t, "2026-03-03", week[0].Date)
	assert.Equal(t, "2026-03-09", week[6].Date)
	assert.Len(t, week[0].Appointments, 1)
	assert.Len(t, week[3].Appointments, 1)
	assert.Empty(t, week[1].Appointments)
}

func TestConcurrentBookingsSameSlot(t *testing.T) {
	s, store, _ := newTestScheduler(t, newGroomer(1, ""))

	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.Create(context.Background(), bathAt("10:00", uintPtr(1)))
		}(i)
	}
	wg.Wait()

	var created int
	for _, err := range errs {
		if err == nil {
			created++
		} else {
			assert.True(t, IsKind(err, KindConflict), "got %v", err)
		}
	}
	assert.Equal(t, 1, created)
	assert.Len(t, store.appointments, 1)
}
