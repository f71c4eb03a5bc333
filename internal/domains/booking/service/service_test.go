package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotelier/config"
	"hotelier/infras/kafka"
	kafkaMocks "hotelier/infras/kafka/mocks"
	"hotelier/infras/otel/mocks"
	bookingMocks "hotelier/internal/domains/booking/mocks"
	"hotelier/internal/domains/booking/model"
	"hotelier/internal/domains/booking/model/dto"
	"hotelier/internal/domains/booking/service"
	roomMocks "hotelier/internal/domains/room/mocks"
	roomModel "hotelier/internal/domains/room/model"
	"hotelier/shared/clock"
	gDto "hotelier/shared/dto"
	"hotelier/shared/failure"
)

type engineMocks struct {
	repo     *bookingMocks.MockBooking
	roomRepo *roomMocks.MockRoom
	producer *kafkaMocks.MockClient
}

// newEngine builds the engine around mocked stores preloaded with the given
// state. Store load expectations are lazy since some operations never touch
// the stores.
func newEngine(t *testing.T, clk clock.Clock, rooms []roomModel.Room, bookings []model.Booking) (service.Booking, engineMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	m := engineMocks{
		repo:     bookingMocks.NewMockBooking(ctrl),
		roomRepo: roomMocks.NewMockRoom(ctrl),
		producer: kafkaMocks.NewMockClient(ctrl),
	}

	m.roomRepo.EXPECT().LoadAll(gomock.Any()).Return(rooms, nil).AnyTimes()
	m.repo.EXPECT().LoadAll(gomock.Any()).Return(bookings, nil).AnyTimes()

	svc := service.New(m.repo, m.roomRepo, &config.Config{}, clk, m.producer, mocks.NewOtel())

	return svc, m
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func standardRoom(number int) roomModel.Room {
	return roomModel.Room{
		RoomNumber:    number,
		Type:          roomModel.TypeStandard,
		PricePerNight: 50,
		IsAvailable:   true,
	}
}

func activeBooking(id string, room int, checkIn, checkOut time.Time) model.Booking {
	return model.Booking{
		BookingID:     id,
		GuestName:     "Guest",
		RoomNumber:    room,
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		Status:        model.StatusPending,
		PricePerNight: 50,
	}
}

func TestBookingService_Scenario(t *testing.T) {
	clk := clock.NewFixed(date(2024, 1, 1))
	svc, m := newEngine(t, clk, []roomModel.Room{standardRoom(100)}, nil)
	ctx := context.Background()

	m.roomRepo.EXPECT().UpdateAvailability(gomock.Any(), 100, gomock.Any()).Return(nil).AnyTimes()
	m.repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.producer.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	// Alice books [01-10, 01-12): two nights at $50.
	booked, err := svc.BookRoom(ctx, dto.BookRoomRequest{
		RoomNumber: 100,
		GuestName:  "Alice",
		BookingID:  "ID1",
		CheckIn:    "2024-01-10",
		CheckOut:   "2024-01-12",
	})
	require.NoError(t, err)
	assert.Equal(t, "ID1", booked.BookingID)
	assert.Equal(t, string(model.StatusPending), booked.Status)
	assert.Equal(t, 2, booked.Nights)
	assert.Equal(t, 100.0, booked.TotalPrice)

	// An overlapping range conflicts.
	_, err = svc.BookRoom(ctx, dto.BookRoomRequest{
		RoomNumber: 100,
		GuestName:  "Bob",
		CheckIn:    "2024-01-11",
		CheckOut:   "2024-01-13",
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))

	// Touching at the boundary does not overlap.
	touched, err := svc.BookRoom(ctx, dto.BookRoomRequest{
		RoomNumber: 100,
		GuestName:  "Bob",
		BookingID:  "ID2",
		CheckIn:    "2024-01-12",
		CheckOut:   "2024-01-14",
	})
	require.NoError(t, err)
	assert.Equal(t, string(model.StatusPending), touched.Status)

	// The booked range no longer lists room 100.
	available, err := svc.AvailableRooms(ctx, date(2024, 1, 10), date(2024, 1, 12))
	require.NoError(t, err)
	assert.Empty(t, available.Rooms)

	// Paying with "Card" confirms the booking, case-insensitively.
	paid, err := svc.ProcessPayment(ctx, "ID1", dto.ProcessPaymentRequest{PaymentMethod: "Card"})
	require.NoError(t, err)
	assert.Equal(t, string(model.StatusConfirmed), paid.Status)
	require.NotNil(t, paid.PaymentMethod)
	assert.Equal(t, string(model.PaymentCard), *paid.PaymentMethod)
	require.NotNil(t, paid.PaymentDate)

	// Paying twice is an invalid transition.
	_, err = svc.ProcessPayment(ctx, "ID1", dto.ProcessPaymentRequest{PaymentMethod: "Card"})
	require.Error(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, failure.GetCode(err))

	// Cancelling frees the range again.
	cancelled, err := svc.CancelBooking(ctx, "ID1")
	require.NoError(t, err)
	assert.Equal(t, string(model.StatusCancelled), cancelled.Status)

	available, err = svc.AvailableRooms(ctx, date(2024, 1, 10), date(2024, 1, 12))
	require.NoError(t, err)
	require.Len(t, available.Rooms, 1)
	assert.Equal(t, 100, available.Rooms[0].RoomNumber)

	// Cancelling twice is an invalid transition.
	_, err = svc.CancelBooking(ctx, "ID1")
	require.Error(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, failure.GetCode(err))
}

func TestBookingService_BookRoom(t *testing.T) {
	clk := clock.NewFixed(date(2024, 1, 1))

	tests := []struct {
		name      string
		req       dto.BookRoomRequest
		setupMock func(m engineMocks)
		wantCode  int
	}{
		{
			name: "unknown room",
			req: dto.BookRoomRequest{
				RoomNumber: 999,
				GuestName:  "Alice",
				CheckIn:    "2024-01-10",
				CheckOut:   "2024-01-12",
			},
			setupMock: func(m engineMocks) {},
			wantCode:  http.StatusNotFound,
		},
		{
			name: "check-out not after check-in",
			req: dto.BookRoomRequest{
				RoomNumber: 100,
				GuestName:  "Alice",
				CheckIn:    "2024-01-10",
				CheckOut:   "2024-01-10",
			},
			setupMock: func(m engineMocks) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "duplicate booking id",
			req: dto.BookRoomRequest{
				RoomNumber: 100,
				GuestName:  "Alice",
				BookingID:  "TAKEN",
				CheckIn:    "2024-03-10",
				CheckOut:   "2024-03-12",
			},
			setupMock: func(m engineMocks) {},
			wantCode:  http.StatusConflict,
		},
		{
			name: "room store write failure",
			req: dto.BookRoomRequest{
				RoomNumber: 100,
				GuestName:  "Alice",
				CheckIn:    "2024-03-10",
				CheckOut:   "2024-03-12",
			},
			setupMock: func(m engineMocks) {
				m.roomRepo.EXPECT().
					UpdateAvailability(gomock.Any(), 100, false).
					Return(errors.New("db down"))
			},
			wantCode: http.StatusServiceUnavailable,
		},
		{
			name: "booking store write failure",
			req: dto.BookRoomRequest{
				RoomNumber: 100,
				GuestName:  "Alice",
				CheckIn:    "2024-03-10",
				CheckOut:   "2024-03-12",
			},
			setupMock: func(m engineMocks) {
				m.roomRepo.EXPECT().
					UpdateAvailability(gomock.Any(), 100, false).
					Return(nil)

				m.repo.EXPECT().
					Save(gomock.Any(), gomock.Any()).
					Return(errors.New("db down"))
			},
			wantCode: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			existing := activeBooking("TAKEN", 100, date(2024, 2, 1), date(2024, 2, 3))
			svc, m := newEngine(t, clk, []roomModel.Room{standardRoom(100)}, []model.Booking{existing})
			tt.setupMock(m)

			_, err := svc.BookRoom(context.Background(), tt.req)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}

func TestBookingService_BookRoom_GeneratesID(t *testing.T) {
	clk := clock.NewFixed(date(2024, 1, 1))
	svc, m := newEngine(t, clk, []roomModel.Room{standardRoom(100)}, nil)

	m.roomRepo.EXPECT().UpdateAvailability(gomock.Any(), 100, false).Return(nil)
	m.producer.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	var saved model.Booking
	m.repo.EXPECT().
		Save(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, mod model.Booking) error {
			saved = mod

			return nil
		})

	res, err := svc.BookRoom(context.Background(), dto.BookRoomRequest{
		RoomNumber: 100,
		GuestName:  "Alice",
		CheckIn:    "2024-01-10",
		CheckOut:   "2024-01-12",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.BookingID)
	assert.Equal(t, res.BookingID, saved.BookingID)
	assert.Equal(t, model.StatusPending, saved.Status)
	assert.False(t, saved.PaymentMethod.Valid)
	assert.False(t, saved.PaymentDate.Valid)
}

func TestBookingService_AvailableRooms(t *testing.T) {
	clk := clock.NewFixed(date(2024, 1, 1))

	rooms := []roomModel.Room{standardRoom(100), standardRoom(101), standardRoom(102)}

	overlapping := activeBooking("B1", 101, date(2024, 1, 10), date(2024, 1, 12))
	cancelled := activeBooking("B2", 102, date(2024, 1, 10), date(2024, 1, 12))
	cancelled.Status = model.StatusCancelled

	svc, _ := newEngine(t, clk, rooms, []model.Booking{overlapping, cancelled})

	res, err := svc.AvailableRooms(context.Background(), date(2024, 1, 11), date(2024, 1, 13))
	require.NoError(t, err)

	numbers := make([]int, 0, len(res.Rooms))
	for _, room := range res.Rooms {
		numbers = append(numbers, room.RoomNumber)
	}

	// 101 is blocked by the active overlap; the cancelled booking on 102 does
	// not count.
	assert.Equal(t, []int{100, 102}, numbers)

	// A range beyond every booking frees all rooms.
	res, err = svc.AvailableRooms(context.Background(), date(2024, 2, 1), date(2024, 2, 3))
	require.NoError(t, err)
	assert.Len(t, res.Rooms, 3)

	// The engine validates the range itself.
	_, err = svc.AvailableRooms(context.Background(), date(2024, 1, 13), date(2024, 1, 11))
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestBookingService_ProcessPayment(t *testing.T) {
	clk := clock.NewFixed(date(2024, 1, 5))

	tests := []struct {
		name      string
		bookingID string
		method    string
		status    model.Status
		setupMock func(m engineMocks)
		wantCode  int
	}{
		{
			name:      "invalid method",
			bookingID: "B1",
			method:    "crypto",
			status:    model.StatusPending,
			setupMock: func(m engineMocks) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "booking not found",
			bookingID: "missing",
			method:    "cash",
			status:    model.StatusPending,
			setupMock: func(m engineMocks) {},
			wantCode:  http.StatusNotFound,
		},
		{
			name:      "cancelled booking cannot be paid",
			bookingID: "B1",
			method:    "cash",
			status:    model.StatusCancelled,
			setupMock: func(m engineMocks) {},
			wantCode:  http.StatusUnprocessableEntity,
		},
		{
			name:      "confirmed booking cannot be re-paid",
			bookingID: "B1",
			method:    "card",
			status:    model.StatusConfirmed,
			setupMock: func(m engineMocks) {},
			wantCode:  http.StatusUnprocessableEntity,
		},
		{
			name:      "store write failure",
			bookingID: "B1",
			method:    "cash",
			status:    model.StatusPending,
			setupMock: func(m engineMocks) {
				m.repo.EXPECT().
					Save(gomock.Any(), gomock.Any()).
					Return(errors.New("db down"))
			},
			wantCode: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			booking := activeBooking("B1", 100, date(2024, 1, 10), date(2024, 1, 12))
			booking.Status = tt.status

			svc, m := newEngine(t, clk, []roomModel.Room{standardRoom(100)}, []model.Booking{booking})
			tt.setupMock(m)

			_, err := svc.ProcessPayment(context.Background(), tt.bookingID, dto.ProcessPaymentRequest{PaymentMethod: tt.method})
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))

			// Failed payments never touch the payment fields.
			if tt.bookingID == "B1" && tt.status == model.StatusCancelled {
				current, err := svc.FindByID(context.Background(), "B1")
				require.NoError(t, err)
				assert.Nil(t, current.PaymentMethod)
				assert.Nil(t, current.PaymentDate)
			}
		})
	}
}

func TestBookingService_ProcessPayment_Success(t *testing.T) {
	paymentDay := date(2024, 1, 5)
	clk := clock.NewFixed(paymentDay)

	booking := activeBooking("B1", 100, date(2024, 1, 10), date(2024, 1, 12))
	svc, m := newEngine(t, clk, []roomModel.Room{standardRoom(100)}, []model.Booking{booking})

	var saved model.Booking
	m.repo.EXPECT().
		Save(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, mod model.Booking) error {
			saved = mod

			return nil
		})
	m.producer.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	res, err := svc.ProcessPayment(context.Background(), "B1", dto.ProcessPaymentRequest{PaymentMethod: "CASH"})
	require.NoError(t, err)
	assert.Equal(t, string(model.StatusConfirmed), res.Status)
	require.NotNil(t, res.PaymentMethod)
	assert.Equal(t, string(model.PaymentCash), *res.PaymentMethod)

	assert.Equal(t, model.StatusConfirmed, saved.Status)
	require.True(t, saved.PaymentDate.Valid)
	assert.True(t, saved.PaymentDate.Time.Equal(paymentDay))
}

func TestBookingService_CancelBooking(t *testing.T) {
	clk := clock.NewFixed(date(2024, 1, 5))

	t.Run("booking not found", func(t *testing.T) {
		svc, _ := newEngine(t, clk, []roomModel.Room{standardRoom(100)}, nil)

		_, err := svc.CancelBooking(context.Background(), "missing")
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("already cancelled", func(t *testing.T) {
		booking := activeBooking("B1", 100, date(2024, 1, 10), date(2024, 1, 12))
		booking.Status = model.StatusCancelled

		svc, _ := newEngine(t, clk, []roomModel.Room{standardRoom(100)}, []model.Booking{booking})

		_, err := svc.CancelBooking(context.Background(), "B1")
		require.Error(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, failure.GetCode(err))
	})

	t.Run("store write failure", func(t *testing.T) {
		booking := activeBooking("B1", 100, date(2024, 1, 10), date(2024, 1, 12))

		svc, m := newEngine(t, clk, []roomModel.Room{standardRoom(100)}, []model.Booking{booking})
		m.repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

		_, err := svc.CancelBooking(context.Background(), "B1")
		require.Error(t, err)
		assert.Equal(t, http.StatusServiceUnavailable, failure.GetCode(err))
	})

	t.Run("cancelling a confirmed booking frees the room", func(t *testing.T) {
		booking := activeBooking("B1", 100, date(2024, 1, 10), date(2024, 1, 12))
		booking.Status = model.StatusConfirmed

		svc, m := newEngine(t, clk, []roomModel.Room{standardRoom(100)}, []model.Booking{booking})
		m.repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
		m.roomRepo.EXPECT().UpdateAvailability(gomock.Any(), 100, true).Return(nil)
		m.producer.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		res, err := svc.CancelBooking(context.Background(), "B1")
		require.NoError(t, err)
		assert.Equal(t, string(model.StatusCancelled), res.Status)
	})
}

func TestBookingService_RefundAmount(t *testing.T) {
	// Two nights at $50: total 100.
	tests := []struct {
		name       string
		today      time.Time
		checkIn    time.Time
		wantRefund float64
	}{
		{
			name:       "check-in ten days out refunds in full",
			today:      date(2024, 1, 1),
			checkIn:    date(2024, 1, 11),
			wantRefund: 100,
		},
		{
			name:       "check-in tomorrow refunds half",
			today:      date(2024, 1, 1),
			checkIn:    date(2024, 1, 2),
			wantRefund: 50,
		},
		{
			name:       "check-in exactly two days out refunds half",
			today:      date(2024, 1, 1),
			checkIn:    date(2024, 1, 3),
			wantRefund: 50,
		},
		{
			name:       "check-in three days out refunds in full",
			today:      date(2024, 1, 1),
			checkIn:    date(2024, 1, 4),
			wantRefund: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			booking := activeBooking("B1", 100, tt.checkIn, tt.checkIn.AddDate(0, 0, 2))

			svc, _ := newEngine(t, clock.NewFixed(tt.today), []roomModel.Room{standardRoom(100)}, []model.Booking{booking})

			res, err := svc.RefundAmount(context.Background(), "B1")
			require.NoError(t, err)
			assert.Equal(t, 100.0, res.TotalPrice)
			assert.Equal(t, tt.wantRefund, res.RefundAmount)
		})
	}

	t.Run("booking not found", func(t *testing.T) {
		svc, _ := newEngine(t, clock.NewFixed(date(2024, 1, 1)), []roomModel.Room{standardRoom(100)}, nil)

		_, err := svc.RefundAmount(context.Background(), "missing")
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestBookingService_TotalPrice(t *testing.T) {
	clk := clock.NewFixed(date(2024, 1, 1))
	svc, _ := newEngine(t, clk, []roomModel.Room{standardRoom(100)}, nil)
	ctx := context.Background()

	res, err := svc.TotalPrice(ctx, 100, date(2024, 1, 10), date(2024, 1, 13))
	require.NoError(t, err)
	assert.Equal(t, 3, res.Nights)
	assert.Equal(t, 50.0, res.PricePerNight)
	assert.Equal(t, 150.0, res.TotalPrice)

	_, err = svc.TotalPrice(ctx, 999, date(2024, 1, 10), date(2024, 1, 13))
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))

	_, err = svc.TotalPrice(ctx, 100, date(2024, 1, 13), date(2024, 1, 10))
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestBookingService_LoadDropsUnknownRooms(t *testing.T) {
	clk := clock.NewFixed(date(2024, 1, 1))

	known := activeBooking("KNOWN", 100, date(2024, 1, 10), date(2024, 1, 12))
	orphan := activeBooking("ORPHAN", 999, date(2024, 1, 10), date(2024, 1, 12))

	svc, _ := newEngine(t, clk, []roomModel.Room{standardRoom(100)}, []model.Booking{known, orphan})
	ctx := context.Background()

	_, err := svc.FindByID(ctx, "KNOWN")
	require.NoError(t, err)

	_, err = svc.FindByID(ctx, "ORPHAN")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestBookingService_LoadFailure(t *testing.T) {
	clk := clock.NewFixed(date(2024, 1, 1))
	ctx := context.Background()

	t.Run("room store down", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := bookingMocks.NewMockBooking(ctrl)
		roomRepo := roomMocks.NewMockRoom(ctrl)

		roomRepo.EXPECT().LoadAll(gomock.Any()).Return(nil, errors.New("connection refused"))

		svc := service.New(repo, roomRepo, &config.Config{}, clk, kafkaMocks.NewMockClient(ctrl), mocks.NewOtel())

		_, err := svc.AvailableRooms(ctx, date(2024, 1, 10), date(2024, 1, 12))
		require.Error(t, err)
		assert.Equal(t, http.StatusServiceUnavailable, failure.GetCode(err))
	})

	t.Run("booking store down", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := bookingMocks.NewMockBooking(ctrl)
		roomRepo := roomMocks.NewMockRoom(ctrl)

		roomRepo.EXPECT().LoadAll(gomock.Any()).Return([]roomModel.Room{standardRoom(100)}, nil)
		repo.EXPECT().LoadAll(gomock.Any()).Return(nil, errors.New("connection refused"))

		svc := service.New(repo, roomRepo, &config.Config{}, clk, kafkaMocks.NewMockClient(ctrl), mocks.NewOtel())

		_, err := svc.AvailableRooms(ctx, date(2024, 1, 10), date(2024, 1, 12))
		require.Error(t, err)
		assert.Equal(t, http.StatusServiceUnavailable, failure.GetCode(err))
	})
}

func TestBookingService_SeesCatalogSeededAfterFirstRead(t *testing.T) {
	clk := clock.NewFixed(date(2024, 1, 1))
	ctx := context.Background()

	ctrl := gomock.NewController(t)
	repo := bookingMocks.NewMockBooking(ctrl)
	roomRepo := roomMocks.NewMockRoom(ctrl)
	producer := kafkaMocks.NewMockClient(ctrl)

	gomock.InOrder(
		roomRepo.EXPECT().LoadAll(gomock.Any()).Return([]roomModel.Room{}, nil),
		roomRepo.EXPECT().LoadAll(gomock.Any()).Return([]roomModel.Room{standardRoom(100)}, nil),
	)
	repo.EXPECT().LoadAll(gomock.Any()).Return([]model.Booking{}, nil).AnyTimes()

	svc := service.New(repo, roomRepo, &config.Config{}, clk, producer, mocks.NewOtel())

	// First read runs against a store that has not been seeded yet.
	_, err := svc.TotalPrice(ctx, 100, date(2024, 1, 10), date(2024, 1, 12))
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))

	// The catalog gets seeded through the room repository; the next
	// operation re-reads the store instead of pinning the empty catalog.
	roomRepo.EXPECT().UpdateAvailability(gomock.Any(), 100, false).Return(nil)
	repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
	producer.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	res, err := svc.BookRoom(ctx, dto.BookRoomRequest{
		RoomNumber: 100,
		GuestName:  "Alice",
		CheckIn:    "2024-01-10",
		CheckOut:   "2024-01-12",
	})
	require.NoError(t, err)
	assert.Equal(t, 100, res.RoomNumber)
}

func TestBookingService_GetAll(t *testing.T) {
	clk := clock.NewFixed(date(2024, 1, 1))
	svc, m := newEngine(t, clk, nil, nil)

	m.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
	m.repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.Booking{
			activeBooking("B1", 100, date(2024, 1, 10), date(2024, 1, 12)),
		}, nil)

	res, err := svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalData)
	require.Len(t, res.Bookings, 1)
	assert.Equal(t, "B1", res.Bookings[0].BookingID)
	assert.Equal(t, 100.0, res.Bookings[0].TotalPrice)
}

func TestBookingService_PublishesLifecycleEvents(t *testing.T) {
	clk := clock.NewFixed(date(2024, 1, 1))
	svc, m := newEngine(t, clk, []roomModel.Room{standardRoom(100)}, nil)
	ctx := context.Background()

	m.roomRepo.EXPECT().UpdateAvailability(gomock.Any(), 100, gomock.Any()).Return(nil).AnyTimes()
	m.repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	var events []string
	m.producer.EXPECT().
		SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
			for _, message := range messages {
				if event, ok := message.Value.(dto.BookingEvent); ok {
					events = append(events, event.EventType)
				}
			}

			return nil
		}).
		Times(3)

	_, err := svc.BookRoom(ctx, dto.BookRoomRequest{
		RoomNumber: 100,
		GuestName:  "Alice",
		BookingID:  "EV1",
		CheckIn:    "2024-01-10",
		CheckOut:   "2024-01-12",
	})
	require.NoError(t, err)

	_, err = svc.ProcessPayment(ctx, "EV1", dto.ProcessPaymentRequest{PaymentMethod: "card"})
	require.NoError(t, err)

	_, err = svc.CancelBooking(ctx, "EV1")
	require.NoError(t, err)

	assert.Equal(t, []string{
		dto.EventBookingCreated,
		dto.EventBookingConfirmed,
		dto.EventBookingCancelled,
	}, events)
}
