package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelier/internal/domains/booking/model"
)

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func TestBooking_Overlaps(t *testing.T) {
	booking := model.Booking{CheckIn: day(10), CheckOut: day(12)}

	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		want     bool
	}{
		{"identical range", day(10), day(12), true},
		{"contained range", day(10), day(11), true},
		{"straddles check-out", day(11), day(13), true},
		{"straddles check-in", day(9), day(11), true},
		{"touches at check-out", day(12), day(14), false},
		{"touches at check-in", day(8), day(10), false},
		{"fully before", day(5), day(7), false},
		{"fully after", day(20), day(22), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, booking.Overlaps(tt.checkIn, tt.checkOut))
		})
	}
}

func TestNights(t *testing.T) {
	assert.Equal(t, 2, model.Nights(day(10), day(12)))
	assert.Equal(t, 1, model.Nights(day(10), day(11)))
}

func TestNights_DSTTransitions(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	at := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, berlin)
	}

	// Spring forward: the night of 2025-03-30 is 23 hours long.
	assert.Equal(t, 1, model.Nights(at(2025, time.March, 30), at(2025, time.March, 31)))
	// Fall back: the night of 2025-10-26 is 25 hours long.
	assert.Equal(t, 1, model.Nights(at(2025, time.October, 26), at(2025, time.October, 27)))
	// Multi-night stays spanning a transition still count calendar days.
	assert.Equal(t, 3, model.Nights(at(2025, time.March, 29), at(2025, time.April, 1)))
}

func TestStatus_Active(t *testing.T) {
	assert.True(t, model.StatusPending.Active())
	assert.True(t, model.StatusConfirmed.Active())
	assert.False(t, model.StatusCancelled.Active())
}

func TestParsePaymentMethod(t *testing.T) {
	method, ok := model.ParsePaymentMethod("Card")
	assert.True(t, ok)
	assert.Equal(t, model.PaymentCard, method)

	method, ok = model.ParsePaymentMethod("CASH")
	assert.True(t, ok)
	assert.Equal(t, model.PaymentCash, method)

	_, ok = model.ParsePaymentMethod("crypto")
	assert.False(t, ok)
}
