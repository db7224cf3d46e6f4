package scheduling

import (
	"testing"
	"time"

	"github.com/petgroomhq/grooming-app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2026-03-03 is a Tuesday.
var tuesday = time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)

func fullDayGroomer() *models.Professional {
	p := &models.Professional{
		Name:       "Dana",
		StartTime:  "08:00",
		EndTime:    "18:00",
		LunchStart: "12:00",
		LunchEnd:   "13:00",
		IsActive:   true,
	}
	p.ID = 1
	return p
}

func TestDaySlotsEmptyDay(t *testing.T) {
	slots, err := DaySlots(fullDayGroomer(), tuesday, 60, nil)
	require.NoError(t, err)

	// 08:00 through 17:00 on the half hour, minus the three starts that
	// would run into lunch (11:30, 12:00, 12:30). 11:00 stays: it ends
	// exactly when lunch begins.
	require.Len(t, slots, 16)
	assert.Equal(t, "08:00", slots[0])
	assert.Contains(t, slots, "11:00")
	assert.NotContains(t, slots, "11:30")
	assert.NotContains(t, slots, "12:00")
	assert.NotContains(t, slots, "12:30")
	assert.Contains(t, slots, "13:00")
	assert.Equal(t, "17:00", slots[len(slots)-1])
}

func TestDaySlotsAroundExistingBooking(t *testing.T) {
	// One booking 09:00-10:00. Starts 08:00 through 10:00 all collide with
	// the buffered interval; 10:30 is the first start free after it.
	booked := []Interval{{Start: 540, End: 600, AppointmentID: 7}}

	slots, err := DaySlots(fullDayGroomer(), tuesday, 60, booked)
	require.NoError(t, err)

	require.Len(t, slots, 11)
	assert.Equal(t, []string{
		"10:30", "11:00",
		"13:00", "13:30", "14:00", "14:30", "15:00",
		"15:30", "16:00", "16:30", "17:00",
	}, slots)
}

func TestDaySlotsDayOff(t *testing.T) {
	p := fullDayGroomer()
	p.DaysOff = "Tuesday"

	slots, err := DaySlots(p, tuesday, 60, nil)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestDaySlotsLongServiceShrinksTheWindow(t *testing.T) {
	slots, err := DaySlots(fullDayGroomer(), tuesday, 120, nil)
	require.NoError(t, err)

	// A 2-hour service can start no later than 16:00, and no start between
	// 10:30 and 12:30 clears the lunch break.
	assert.Equal(t, "16:00", slots[len(slots)-1])
	assert.NotContains(t, slots, "10:30")
	assert.NotContains(t, slots, "11:00")
	assert.Contains(t, slots, "10:00")
	assert.Contains(t, slots, "13:00")
}

func TestDaySlotsInvalidSchedule(t *testing.T) {
	p := fullDayGroomer()
	p.EndTime = "07:00"

	_, err := DaySlots(p, tuesday, 60, nil)
	assert.True(t, IsKind(err, KindValidation))
}

func TestSlotFree(t *testing.T) {
	p := fullDayGroomer()
	booked := []Interval{{Start: 540, End: 600, AppointmentID: 7}}

	tests := []struct {
		name     string
		cand     Interval
		wantKind Kind
	}{
		{name: "open slot", cand: Interval{Start: 630, End: 690}},
		{name: "overlapping slot", cand: Interval{Start: 570, End: 630}, wantKind: KindConflict},
		{name: "before opening", cand: Interval{Start: 420, End: 480}, wantKind: KindValidation},
		{name: "runs past closing", cand: Interval{Start: 1050, End: 1110}, wantKind: KindValidation},
		{name: "during lunch", cand: Interval{Start: 720, End: 780}, wantKind: KindValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := SlotFree(p, tuesday, tt.cand, booked)
			if tt.wantKind == "" {
				assert.NoError(t, err)
				return
			}
			assert.True(t, IsKind(err, tt.wantKind))
		})
	}
}

func TestSlotFreeDayOff(t *testing.T) {
	p := fullDayGroomer()
	p.DaysOff = "Tuesday, Sunday"

	err := SlotFree(p, tuesday, Interval{Start: 600, End: 660}, nil)
	assert.True(t, IsKind(err, KindValidation))
}
