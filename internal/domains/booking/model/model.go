package model

import (
	"database/sql"
	"fmt"
	"math"
	"strings"
	"time"

	roomModel "hotelier/internal/domains/room/model"
	"hotelier/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldBookingID     = "booking_id"
	FieldGuestName     = "guest_name"
	FieldRoomNumber    = "room_number"
	FieldCheckIn       = "check_in"
	FieldCheckOut      = "check_out"
	FieldStatus        = "status"
	FieldPaymentMethod = "payment_method"
	FieldPaymentDate   = "payment_date"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// Active reports whether the booking still holds its room.
func (s Status) Active() bool {
	return s == StatusPending || s == StatusConfirmed
}

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentCard PaymentMethod = "card"
)

// ParsePaymentMethod normalizes a payment method. The second return value is
// false for anything other than cash or card.
func ParsePaymentMethod(raw string) (PaymentMethod, bool) {
	switch PaymentMethod(strings.ToLower(raw)) {
	case PaymentCash:
		return PaymentCash, true
	case PaymentCard:
		return PaymentCard, true
	default:
		return "", false
	}
}

type Booking struct {
	BookingID     string         `db:"booking_id"`
	GuestName     string         `db:"guest_name"`
	RoomNumber    int            `db:"room_number"`
	CheckIn       time.Time      `db:"check_in"`
	CheckOut      time.Time      `db:"check_out"`
	Status        Status         `db:"status"`
	PaymentMethod sql.NullString `db:"payment_method"`
	PaymentDate   sql.NullTime   `db:"payment_date"`
	RoomType      string         `db:"room_type"       table:"rooms" column:"type"`
	PricePerNight float64        `db:"price_per_night" table:"rooms"`
	model.Metadata
}

func (Booking) GetJoinQuery() string {
	return fmt.Sprintf("LEFT JOIN %s ON %s.%s = %s.%s",
		roomModel.TableName,
		roomModel.TableName, roomModel.FieldRoomNumber,
		TableName, FieldRoomNumber,
	)
}

// Overlaps reports whether the booking's stay overlaps the half-open interval
// [checkIn, checkOut). Intervals that only touch at a boundary do not overlap.
func (b Booking) Overlaps(checkIn, checkOut time.Time) bool {
	return checkIn.Before(b.CheckOut) && b.CheckIn.Before(checkOut)
}

// Nights returns the number of nights between check-in and check-out.
func (b Booking) Nights() int {
	return Nights(b.CheckIn, b.CheckOut)
}

// Nights counts calendar days between check-in and check-out. Rounding keeps
// the count stable across DST transitions, where a day is 23 or 25 hours long.
func Nights(checkIn, checkOut time.Time) int {
	return int(math.Round(checkOut.Sub(checkIn).Hours() / 24))
}
