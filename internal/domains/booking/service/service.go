package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"hotelier/config"
	"hotelier/infras/kafka"
	"hotelier/infras/otel"
	"hotelier/internal/domains/booking/model"
	"hotelier/internal/domains/booking/model/dto"
	"hotelier/internal/domains/booking/repository"
	roomModel "hotelier/internal/domains/room/model"
	roomRepository "hotelier/internal/domains/room/repository"
	"hotelier/shared/clock"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/failure"
	gModel "hotelier/shared/model"
	"hotelier/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const defaultActor = "system"

// refundCutoffDays is the number of days before check-in up to which a
// cancellation is refunded in full. Later cancellations refund half.
const refundCutoffDays = 2

type Booking interface {
	AvailableRooms(ctx context.Context, checkIn, checkOut time.Time) (dto.AvailableRoomsResponse, error)
	BookRoom(ctx context.Context, req dto.BookRoomRequest) (dto.BookingResponse, error)
	CancelBooking(ctx context.Context, bookingID string) (dto.BookingResponse, error)
	ProcessPayment(ctx context.Context, bookingID string, req dto.ProcessPaymentRequest) (dto.BookingResponse, error)
	TotalPrice(ctx context.Context, roomNumber int, checkIn, checkOut time.Time) (dto.QuoteResponse, error)
	RefundAmount(ctx context.Context, bookingID string) (dto.RefundResponse, error)
	FindByID(ctx context.Context, bookingID string) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
}

// serviceImpl keeps the room catalog and the booking log in memory, guarded by
// a single mutex so every check-then-act sequence is atomic. State is loaded
// from the stores on first use; every mutation is written back immediately.
// When a write fails the operation reports StoreUnavailable and memory stays
// ahead of storage until the next successful write.
//
// A room's is_available flag is a persisted hint ("engaged by at least one
// active booking") kept for catalog views. Availability and conflict decisions
// are always derived from the booking log's interval test, never the flag.
type serviceImpl struct {
	mu       sync.Mutex
	loaded   bool
	rooms    map[int]*roomModel.Room
	order    []int
	bookings []*model.Booking

	repo     repository.Booking
	roomRepo roomRepository.Room
	cfg      *config.Config
	clock    clock.Clock
	producer kafka.Client
	otel     otel.Otel
}

func New(repo repository.Booking, roomRepo roomRepository.Room, cfg *config.Config, clk clock.Clock, producer kafka.Client, otel otel.Otel) Booking {
	return &serviceImpl{
		rooms:    map[int]*roomModel.Room{},
		repo:     repo,
		roomRepo: roomRepo,
		cfg:      cfg,
		clock:    clk,
		producer: producer,
		otel:     otel,
	}
}

// ensureLoaded populates the in-memory state from the stores. Bookings that
// reference a room number missing from the catalog are dropped with a warning.
// An empty catalog is never pinned: seeding is the one catalog mutation that
// happens outside the engine, and it only applies to an empty store, so the
// engine re-reads until rooms appear. Callers must hold the mutex.
func (s *serviceImpl) ensureLoaded(ctx context.Context) error {
	if s.loaded && len(s.rooms) > 0 {
		return nil
	}

	rooms, err := s.roomRepo.LoadAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to load room catalog")

		return failure.StoreUnavailable("room store unavailable") // nolint:wrapcheck
	}

	bookings, err := s.repo.LoadAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to load booking log")

		return failure.StoreUnavailable("booking store unavailable") // nolint:wrapcheck
	}

	s.rooms = make(map[int]*roomModel.Room, len(rooms))
	s.order = make([]int, 0, len(rooms))
	for i := range rooms {
		s.rooms[rooms[i].RoomNumber] = &rooms[i]
		s.order = append(s.order, rooms[i].RoomNumber)
	}

	s.bookings = make([]*model.Booking, 0, len(bookings))
	for i := range bookings {
		if _, ok := s.rooms[bookings[i].RoomNumber]; !ok {
			log.Warn().
				Str("bookingID", bookings[i].BookingID).
				Int("roomNumber", bookings[i].RoomNumber).
				Msg("dropping booking referencing unknown room")

			continue
		}

		s.bookings = append(s.bookings, &bookings[i])
	}

	s.loaded = true

	return nil
}

func validateInterval(checkIn, checkOut time.Time) error {
	if !checkOut.After(checkIn) {
		return failure.BadRequestFromString("check_out must be after check_in")
	}

	return nil
}

// hasOverlap reports whether any active booking on the room overlaps the
// half-open interval [checkIn, checkOut). Callers must hold the mutex.
func (s *serviceImpl) hasOverlap(roomNumber int, checkIn, checkOut time.Time) bool {
	for _, booking := range s.bookings {
		if booking.RoomNumber != roomNumber || !booking.Status.Active() {
			continue
		}

		if booking.Overlaps(checkIn, checkOut) {
			return true
		}
	}

	return false
}

// hasActiveBooking reports whether any active booking engages the room.
// Callers must hold the mutex.
func (s *serviceImpl) hasActiveBooking(roomNumber int) bool {
	for _, booking := range s.bookings {
		if booking.RoomNumber == roomNumber && booking.Status.Active() {
			return true
		}
	}

	return false
}

// findBooking returns the first booking with the given id, in log order.
// Callers must hold the mutex.
func (s *serviceImpl) findBooking(bookingID string) *model.Booking {
	for _, booking := range s.bookings {
		if booking.BookingID == bookingID {
			return booking
		}
	}

	return nil
}

func (s *serviceImpl) publishEvent(ctx context.Context, eventType string, booking model.Booking) {
	event := dto.BookingEvent{
		EventType:  eventType,
		BookingID:  booking.BookingID,
		RoomNumber: booking.RoomNumber,
		GuestName:  booking.GuestName,
		Status:     string(booking.Status),
		OccurredAt: s.clock.Now(),
	}

	message := kafka.Message{Key: booking.BookingID, Value: event}
	if err := s.producer.SendMessages(ctx, s.cfg.Kafka.Topic.BookingEvents, message); err != nil {
		log.Error().Err(err).Str("bookingID", booking.BookingID).Str("eventType", eventType).Msg("failed to publish booking event")
	}
}

func auditActor(ctx context.Context) string {
	if staff, ok := ctx.Value(constant.ContextKeyStaffName).(string); ok && staff != constant.Empty {
		return staff
	}

	return defaultActor
}

func (s *serviceImpl) AvailableRooms(ctx context.Context, checkIn, checkOut time.Time) (res dto.AvailableRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AvailableRooms")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = validateInterval(checkIn, checkOut); err != nil {
		return res, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err = s.ensureLoaded(ctx); err != nil {
		return res, err
	}

	available := make([]roomModel.Room, 0, len(s.order))
	for _, number := range s.order {
		if s.hasOverlap(number, checkIn, checkOut) {
			continue
		}

		available = append(available, *s.rooms[number])
	}

	res.FromModels(checkIn, checkOut, available)

	return res, nil
}

func (s *serviceImpl) BookRoom(ctx context.Context, req dto.BookRoomRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".BookRoom")
	defer scope.End()
	defer scope.TraceIfError(err)

	checkIn, checkOut, err := req.Interval()
	if err != nil {
		return res, err
	}

	if err = validateInterval(checkIn, checkOut); err != nil {
		return res, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err = s.ensureLoaded(ctx); err != nil {
		return res, err
	}

	room, ok := s.rooms[req.RoomNumber]
	if !ok {
		return res, failure.NotFound("room not found") // nolint:wrapcheck
	}

	if s.hasOverlap(req.RoomNumber, checkIn, checkOut) {
		return res, failure.Conflict(fmt.Sprintf("room %d is already booked for the requested dates", req.RoomNumber)) // nolint:wrapcheck
	}

	bookingID := req.BookingID
	if bookingID == constant.Empty {
		bookingID = uuid.NewString()
	} else if s.findBooking(bookingID) != nil {
		return res, failure.Conflict(fmt.Sprintf("booking %s already exists", bookingID)) // nolint:wrapcheck
	}

	actor := auditActor(ctx)
	now := timezone.ToAppTime(s.clock.Now())

	booking := &model.Booking{
		BookingID:     bookingID,
		GuestName:     req.GuestName,
		RoomNumber:    req.RoomNumber,
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		Status:        model.StatusPending,
		RoomType:      string(room.Type),
		PricePerNight: room.PricePerNight,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  actor,
			ModifiedBy: actor,
		},
	}

	room.IsAvailable = false
	s.bookings = append(s.bookings, booking)

	if err = s.roomRepo.UpdateAvailability(ctx, room.RoomNumber, false); err != nil {
		log.Error().Err(err).Int("roomNumber", room.RoomNumber).Msg("failed to persist room availability")

		return res, failure.StoreUnavailable("room store unavailable") // nolint:wrapcheck
	}

	if err = s.repo.Save(ctx, *booking); err != nil {
		log.Error().Err(err).Str("bookingID", bookingID).Msg("failed to persist booking")

		return res, failure.StoreUnavailable("booking store unavailable") // nolint:wrapcheck
	}

	s.publishEvent(ctx, dto.EventBookingCreated, *booking)

	res.FromModel(*booking)

	return res, nil
}

func (s *serviceImpl) CancelBooking(ctx context.Context, bookingID string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CancelBooking")
	defer scope.End()
	defer scope.TraceIfError(err)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err = s.ensureLoaded(ctx); err != nil {
		return res, err
	}

	booking := s.findBooking(bookingID)
	if booking == nil {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if booking.Status == model.StatusCancelled {
		return res, failure.InvalidState("booking is already cancelled") // nolint:wrapcheck
	}

	booking.Status = model.StatusCancelled
	booking.ModifiedAt = timezone.ToAppTime(s.clock.Now())
	booking.ModifiedBy = auditActor(ctx)

	room, ok := s.rooms[booking.RoomNumber]
	available := false
	if ok {
		available = !s.hasActiveBooking(booking.RoomNumber)
		room.IsAvailable = available
	}

	if err = s.repo.Save(ctx, *booking); err != nil {
		log.Error().Err(err).Str("bookingID", bookingID).Msg("failed to persist booking cancellation")

		return res, failure.StoreUnavailable("booking store unavailable") // nolint:wrapcheck
	}

	if ok {
		if err = s.roomRepo.UpdateAvailability(ctx, booking.RoomNumber, available); err != nil {
			log.Error().Err(err).Int("roomNumber", booking.RoomNumber).Msg("failed to persist room availability")

			return res, failure.StoreUnavailable("room store unavailable") // nolint:wrapcheck
		}
	}

	s.publishEvent(ctx, dto.EventBookingCancelled, *booking)

	res.FromModel(*booking)

	return res, nil
}

func (s *serviceImpl) ProcessPayment(ctx context.Context, bookingID string, req dto.ProcessPaymentRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ProcessPayment")
	defer scope.End()
	defer scope.TraceIfError(err)

	method, ok := model.ParsePaymentMethod(req.PaymentMethod)
	if !ok {
		return res, failure.BadRequestFromString("payment_method must be cash or card") // nolint:wrapcheck
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err = s.ensureLoaded(ctx); err != nil {
		return res, err
	}

	booking := s.findBooking(bookingID)
	if booking == nil {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if booking.Status != model.StatusPending {
		return res, failure.InvalidState(fmt.Sprintf("booking is %s, only pending bookings can be paid", booking.Status)) // nolint:wrapcheck
	}

	now := timezone.ToAppTime(s.clock.Now())

	booking.Status = model.StatusConfirmed
	booking.PaymentMethod.String = string(method)
	booking.PaymentMethod.Valid = true
	booking.PaymentDate.Time = now
	booking.PaymentDate.Valid = true
	booking.ModifiedAt = now
	booking.ModifiedBy = auditActor(ctx)

	if err = s.repo.Save(ctx, *booking); err != nil {
		log.Error().Err(err).Str("bookingID", bookingID).Msg("failed to persist booking payment")

		return res, failure.StoreUnavailable("booking store unavailable") // nolint:wrapcheck
	}

	s.publishEvent(ctx, dto.EventBookingConfirmed, *booking)

	res.FromModel(*booking)

	return res, nil
}

func (s *serviceImpl) TotalPrice(ctx context.Context, roomNumber int, checkIn, checkOut time.Time) (res dto.QuoteResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".TotalPrice")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = validateInterval(checkIn, checkOut); err != nil {
		return res, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err = s.ensureLoaded(ctx); err != nil {
		return res, err
	}

	room, ok := s.rooms[roomNumber]
	if !ok {
		return res, failure.NotFound("room not found") // nolint:wrapcheck
	}

	nights := model.Nights(checkIn, checkOut)

	res = dto.QuoteResponse{
		RoomNumber:    roomNumber,
		CheckIn:       timezone.Format(checkIn, constant.DateOnlyFormat),
		CheckOut:      timezone.Format(checkOut, constant.DateOnlyFormat),
		Nights:        nights,
		PricePerNight: room.PricePerNight,
		TotalPrice:    float64(nights) * room.PricePerNight,
	}

	return res, nil
}

func (s *serviceImpl) RefundAmount(ctx context.Context, bookingID string) (res dto.RefundResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RefundAmount")
	defer scope.End()
	defer scope.TraceIfError(err)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err = s.ensureLoaded(ctx); err != nil {
		return res, err
	}

	booking := s.findBooking(bookingID)
	if booking == nil {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	total := float64(booking.Nights()) * booking.PricePerNight

	res = dto.RefundResponse{
		BookingID:    bookingID,
		TotalPrice:   total,
		RefundAmount: s.refund(total, booking.CheckIn),
	}

	return res, nil
}

// refund applies the cancellation policy: a full refund when today is still
// before the cutoff (two days ahead of check-in), half otherwise.
func (s *serviceImpl) refund(total float64, checkIn time.Time) float64 {
	now := timezone.ToAppTime(s.clock.Now())
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	cutoff := checkIn.AddDate(0, 0, -refundCutoffDays)
	if today.Before(cutoff) {
		return total
	}

	return total / 2
}

func (s *serviceImpl) FindByID(ctx context.Context, bookingID string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".FindByID")
	defer scope.End()
	defer scope.TraceIfError(err)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err = s.ensureLoaded(ctx); err != nil {
		return res, err
	}

	booking := s.findBooking(bookingID)
	if booking == nil {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	res.FromModel(*booking)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}
