package dto

import (
	"time"

	"hotelier/internal/domains/booking/model"
	roomModel "hotelier/internal/domains/room/model"
	roomDto "hotelier/internal/domains/room/model/dto"
	"hotelier/shared"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/timezone"
)

type BookRoomRequest struct {
	RoomNumber int    `json:"room_number" validate:"required,min=1"`
	GuestName  string `json:"guest_name"  validate:"required,max=100"`
	BookingID  string `json:"booking_id"  validate:"omitempty,max=64"`
	CheckIn    string `json:"check_in"    validate:"required,datetime=2006-01-02"`
	CheckOut   string `json:"check_out"   validate:"required,datetime=2006-01-02"`
}

// Interval parses the requested stay. Validation of the ordering is left to
// the reservation engine.
func (r *BookRoomRequest) Interval() (checkIn, checkOut time.Time, err error) {
	checkIn, err = shared.ParseDateOnly(constant.RequestParamCheckIn, r.CheckIn)
	if err != nil {
		return checkIn, checkOut, err
	}

	checkOut, err = shared.ParseDateOnly(constant.RequestParamCheckOut, r.CheckOut)

	return checkIn, checkOut, err
}

type ProcessPaymentRequest struct {
	PaymentMethod string `json:"payment_method" validate:"required"`
}

type BookingResponse struct {
	BookingID     string  `json:"booking_id"`
	GuestName     string  `json:"guest_name"`
	RoomNumber    int     `json:"room_number"`
	RoomType      string  `json:"room_type,omitempty"`
	CheckIn       string  `json:"check_in"`
	CheckOut      string  `json:"check_out"`
	Nights        int     `json:"nights"`
	PricePerNight float64 `json:"price_per_night"`
	TotalPrice    float64 `json:"total_price"`
	Status        string  `json:"status"`
	PaymentMethod *string `json:"payment_method"`
	PaymentDate   *string `json:"payment_date"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(mod model.Booking) {
	r.BookingID = mod.BookingID
	r.GuestName = mod.GuestName
	r.RoomNumber = mod.RoomNumber
	r.RoomType = mod.RoomType
	r.CheckIn = timezone.Format(mod.CheckIn, constant.DateOnlyFormat)
	r.CheckOut = timezone.Format(mod.CheckOut, constant.DateOnlyFormat)
	r.Nights = mod.Nights()
	r.PricePerNight = mod.PricePerNight
	r.TotalPrice = float64(mod.Nights()) * mod.PricePerNight
	r.Status = string(mod.Status)

	if mod.PaymentMethod.Valid {
		method := mod.PaymentMethod.String
		r.PaymentMethod = &method
	}

	if mod.PaymentDate.Valid {
		date := timezone.Format(mod.PaymentDate.Time, constant.DateFormat)
		r.PaymentDate = &date
	}

	r.Metadata.FromModel(mod.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

type AvailableRoomsResponse struct {
	CheckIn  string                 `json:"check_in"`
	CheckOut string                 `json:"check_out"`
	Rooms    []roomDto.RoomResponse `json:"rooms"`
}

func (r *AvailableRoomsResponse) FromModels(checkIn, checkOut time.Time, models []roomModel.Room) {
	r.CheckIn = timezone.Format(checkIn, constant.DateOnlyFormat)
	r.CheckOut = timezone.Format(checkOut, constant.DateOnlyFormat)

	r.Rooms = make([]roomDto.RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}

type QuoteResponse struct {
	RoomNumber    int     `json:"room_number"`
	CheckIn       string  `json:"check_in"`
	CheckOut      string  `json:"check_out"`
	Nights        int     `json:"nights"`
	PricePerNight float64 `json:"price_per_night"`
	TotalPrice    float64 `json:"total_price"`
}

type RefundResponse struct {
	BookingID    string  `json:"booking_id"`
	TotalPrice   float64 `json:"total_price"`
	RefundAmount float64 `json:"refund_amount"`
}

// BookingEvent is the payload published to the booking events topic on every
// lifecycle transition.
type BookingEvent struct {
	EventType  string    `json:"event_type"`
	BookingID  string    `json:"booking_id"`
	RoomNumber int       `json:"room_number"`
	GuestName  string    `json:"guest_name"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

const (
	EventBookingCreated   = "booking.created"
	EventBookingConfirmed = "booking.confirmed"
	EventBookingCancelled = "booking.cancelled"
)
