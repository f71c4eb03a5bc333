package booking

import (
	"net/http"
	"time"

	"hotelier/infras/otel"
	"hotelier/internal/domains/booking/model"
	"hotelier/internal/domains/booking/model/dto"
	"hotelier/internal/domains/booking/service"
	"hotelier/shared"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/failure"
	"hotelier/shared/validator"
	"hotelier/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.BookRoom)
		routerGroup.Get("/", handler.GetBookings)
		routerGroup.Get("/available-rooms", handler.AvailableRooms)
		routerGroup.Get("/quote", handler.Quote)
		routerGroup.Get("/{id}", handler.GetBookingByID)
		routerGroup.Post("/{id}/cancel", handler.CancelBooking)
		routerGroup.Get("/{id}/refund", handler.RefundAmount)
		routerGroup.Post("/{id}/payment", handler.ProcessPayment)
	})
}

// BookRoom creates a new booking.
// @Summary Book a room
// @Description Create a pending booking for a room over a half-open date range.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.BookRoomRequest true "Booking details"
// @Success 201 {object} response.Data[dto.BookingResponse] "Booking created"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 503 {object} response.Error
// @Router /v1/bookings [post]
func (handler *Handler) BookRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".BookRoom")
	defer scope.End()

	var req dto.BookRoomRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	booking, err := handler.service.BookRoom(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to book room")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking created successfully")

	response.WithJSON(w, http.StatusCreated, booking)
}

// GetBookings retrieves the booking log.
// @Summary Get all bookings
// @Description Retrieve bookings with optional filtering and pagination.
// @Tags Booking
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status"
// @Param room_number query integer false "Filter by room number"
// @Param guest_name query string false "Filter by guest name"
// @Success 200 {object} response.Data[dto.GetBookingsResponse] "List of bookings"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [get]
func (handler *Handler) GetBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
	}

	if status := r.URL.Query().Get(model.FieldStatus); status != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.TableName,
		})
	}

	if number, err := shared.ConvertStringToInt(r.URL.Query().Get(model.FieldRoomNumber)); err == nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldRoomNumber,
			Operator: gDto.FilterOperatorEq,
			Value:    number,
			Table:    model.TableName,
		})
	}

	if guest := r.URL.Query().Get(model.FieldGuestName); guest != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldGuestName,
			Operator: gDto.FilterOperatorLike,
			Value:    guest,
			Table:    model.TableName,
		})
	}

	bookings, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bookings")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Bookings retrieved successfully")

	response.WithJSON(w, http.StatusOK, bookings)
}

// AvailableRooms lists rooms free over a date range.
// @Summary Get available rooms
// @Description List rooms with no active booking overlapping the requested range.
// @Tags Booking
// @Accept json
// @Produce json
// @Param check_in query string true "Check-in date (YYYY-MM-DD)"
// @Param check_out query string true "Check-out date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.AvailableRoomsResponse] "Available rooms"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/available-rooms [get]
func (handler *Handler) AvailableRooms(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AvailableRooms")
	defer scope.End()

	checkIn, checkOut, err := parseInterval(r)
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	rooms, err := handler.service.AvailableRooms(ctx, checkIn, checkOut)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get available rooms")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Available rooms retrieved successfully")

	response.WithJSON(w, http.StatusOK, rooms)
}

// Quote computes the total price for a stay.
// @Summary Quote a stay
// @Description Compute nights × price per night for a room and date range.
// @Tags Booking
// @Accept json
// @Produce json
// @Param room_number query integer true "Room number"
// @Param check_in query string true "Check-in date (YYYY-MM-DD)"
// @Param check_out query string true "Check-out date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.QuoteResponse] "Quote"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/bookings/quote [get]
func (handler *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Quote")
	defer scope.End()

	number, err := shared.ConvertStringToInt(r.URL.Query().Get(model.FieldRoomNumber))
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, failure.BadRequestFromString("room_number must be an integer"))

		return
	}

	checkIn, checkOut, err := parseInterval(r)
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	quote, err := handler.service.TotalPrice(ctx, number, checkIn, checkOut)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to quote stay")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Stay quoted successfully")

	response.WithJSON(w, http.StatusOK, quote)
}

// GetBookingByID retrieves a booking by its id.
// @Summary Get a booking by id
// @Description Retrieve the first booking matching the id.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking id"
// @Success 200 {object} response.Data[dto.BookingResponse] "Booking details"
// @Failure 404 {object} response.Error
// @Router /v1/bookings/{id} [get]
func (handler *Handler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByID")
	defer scope.End()

	booking, err := handler.service.FindByID(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking by id")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking retrieved successfully")

	response.WithJSON(w, http.StatusOK, booking)
}

// CancelBooking cancels a booking.
// @Summary Cancel a booking
// @Description Cancel a pending or confirmed booking and free its room.
// @Tags Booking
// @Produce json
// @Param id path string true "Booking id"
// @Success 200 {object} response.Data[dto.BookingResponse] "Cancelled booking"
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 503 {object} response.Error
// @Router /v1/bookings/{id}/cancel [post]
func (handler *Handler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelBooking")
	defer scope.End()

	booking, err := handler.service.CancelBooking(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to cancel booking")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking cancelled successfully")

	response.WithJSON(w, http.StatusOK, booking)
}

// RefundAmount computes the refund due for a booking.
// @Summary Get the refund amount
// @Description Full refund more than two days ahead of check-in, half otherwise.
// @Tags Booking
// @Produce json
// @Param id path string true "Booking id"
// @Success 200 {object} response.Data[dto.RefundResponse] "Refund amount"
// @Failure 404 {object} response.Error
// @Router /v1/bookings/{id}/refund [get]
func (handler *Handler) RefundAmount(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RefundAmount")
	defer scope.End()

	refund, err := handler.service.RefundAmount(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to compute refund amount")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Refund amount computed successfully")

	response.WithJSON(w, http.StatusOK, refund)
}

// ProcessPayment settles a pending booking.
// @Summary Process a payment
// @Description Confirm a pending booking with a cash or card payment.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking id"
// @Param request body dto.ProcessPaymentRequest true "Payment details"
// @Success 200 {object} response.Data[dto.BookingResponse] "Confirmed booking"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 503 {object} response.Error
// @Router /v1/bookings/{id}/payment [post]
func (handler *Handler) ProcessPayment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ProcessPayment")
	defer scope.End()

	var req dto.ProcessPaymentRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	booking, err := handler.service.ProcessPayment(ctx, chi.URLParam(r, constant.RequestParamID), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to process payment")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Payment processed successfully")

	response.WithJSON(w, http.StatusOK, booking)
}

func parseInterval(r *http.Request) (checkIn, checkOut time.Time, err error) {
	checkIn, err = shared.ParseDateOnly(constant.RequestParamCheckIn, r.URL.Query().Get(constant.RequestParamCheckIn))
	if err != nil {
		return checkIn, checkOut, err
	}

	checkOut, err = shared.ParseDateOnly(constant.RequestParamCheckOut, r.URL.Query().Get(constant.RequestParamCheckOut))

	return checkIn, checkOut, err
}
