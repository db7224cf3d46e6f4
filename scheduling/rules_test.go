package scheduling

import (
	"testing"
	"time"

	"github.com/petgroomhq/grooming-app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceDuration(t *testing.T) {
	tests := []struct {
		name      string
		service   models.ServiceType
		requested int
		want      int
		wantErr   bool
	}{
		{name: "bath", service: models.ServiceBath, want: 60},
		{name: "grooming", service: models.ServiceGrooming, want: 90},
		{name: "bath and grooming", service: models.ServiceBathGrooming, want: 120},
		{name: "vet visit", service: models.ServiceVet, want: 30},
		{name: "other", service: models.ServiceOther, want: 60},
		{name: "requested minutes ignored for fixed services", service: models.ServiceBath, requested: 999, want: 60},
		{name: "hotel uses requested duration", service: models.ServiceHotel, requested: 120, want: 120},
		{name: "hotel overnight", service: models.ServiceHotel, requested: 1440, want: 1440},
		{name: "hotel below minimum", service: models.ServiceHotel, requested: 30, wantErr: true},
		{name: "hotel off the slot grid", service: models.ServiceHotel, requested: 100, wantErr: true},
		{name: "hotel missing duration", service: models.ServiceHotel, requested: 0, wantErr: true},
		{name: "unknown service", service: models.ServiceType("haircut"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ServiceDuration(tt.service, tt.requested)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsKind(err, KindValidation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCancellationWindow(t *testing.T) {
	scheduledAt := time.Date(2026, 3, 3, 14, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		now    time.Time
		inside bool
		fee    float64
	}{
		{
			name:   "well before the deadline",
			now:    scheduledAt.Add(-5 * time.Hour),
			inside: false,
			fee:    0,
		},
		{
			name:   "one minute outside the deadline",
			now:    scheduledAt.Add(-2*time.Hour - time.Minute),
			inside: false,
			fee:    0,
		},
		{
			name:   "exactly at the deadline counts as inside",
			now:    scheduledAt.Add(-2 * time.Hour),
			inside: true,
			fee:    LateCancellationFeePct,
		},
		{
			name:   "one minute inside",
			now:    scheduledAt.Add(-time.Hour - 59*time.Minute),
			inside: true,
			fee:    LateCancellationFeePct,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.inside, WithinCancellationWindow(scheduledAt, tt.now))
			assert.Equal(t, tt.fee, CancellationFee(scheduledAt, tt.now))
		})
	}
}

func TestMinutesLate(t *testing.T) {
	scheduledAt := time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, MinutesLate(scheduledAt, scheduledAt))
	assert.Equal(t, 10, MinutesLate(scheduledAt, scheduledAt.Add(10*time.Minute)))
	assert.Equal(t, -15, MinutesLate(scheduledAt, scheduledAt.Add(-15*time.Minute)))
}
