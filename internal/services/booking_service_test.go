// internal/services/booking_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBookingDates(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		end     string
		wantErr string
	}{
		{"valid range", "2026-09-01", "2026-09-04", ""},
		{"bad start format", "09/01/2026", "2026-09-04", "invalid start date"},
		{"bad end format", "2026-09-01", "next friday", "invalid end date"},
		{"end before start", "2026-09-04", "2026-09-01", "end date must be after start date"},
		{"same day", "2026-09-01", "2026-09-01", "end date must be after start date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, err := parseBookingDates(tt.start, tt.end)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, end.After(start))
		})
	}
}

func TestBookingRate(t *testing.T) {
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 500.0, bookingRate(500, start, start.AddDate(0, 0, 1)))
	assert.Equal(t, 1500.0, bookingRate(500, start, start.AddDate(0, 0, 3)))
	assert.Equal(t, 0.0, bookingRate(0, start, start.AddDate(0, 0, 3)))
}
