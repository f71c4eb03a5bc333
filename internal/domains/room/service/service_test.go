package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"hotelier/config"
	"hotelier/infras/otel/mocks"
	roomMocks "hotelier/internal/domains/room/mocks"
	"hotelier/internal/domains/room/model"
	"hotelier/internal/domains/room/service"
	cacheMocks "hotelier/shared/cache/mocks"
	gDto "hotelier/shared/dto"
	"hotelier/shared/failure"
)

func TestRoomService_InitializeCatalog(t *testing.T) {
	tests := []struct {
		name        string
		setupMock   func(repo *roomMocks.MockRoom)
		wantErr     bool
		wantCode    int
		wantCreated int
	}{
		{
			name: "seeds the default catalog when empty",
			setupMock: func(repo *roomMocks.MockRoom) {
				repo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(0, nil)

				repo.EXPECT().
					InsertBulk(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, rooms []model.Room) error {
						assert.Len(t, rooms, 50)
						assert.Equal(t, 100, rooms[0].RoomNumber)
						assert.Equal(t, model.TypeStandard, rooms[0].Type)
						assert.Equal(t, 50.0, rooms[0].PricePerNight)
						assert.Equal(t, 309, rooms[49].RoomNumber)
						assert.Equal(t, model.TypeSuite, rooms[49].Type)

						return nil
					})
			},
			wantCreated: 50,
		},
		{
			name: "refuses to reseed a non-empty catalog",
			setupMock: func(repo *roomMocks.MockRoom) {
				repo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(50, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "count error",
			setupMock: func(repo *roomMocks.MockRoom) {
				repo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(0, errors.New("db down"))
			},
			wantErr: true,
		},
		{
			name: "insert error",
			setupMock: func(repo *roomMocks.MockRoom) {
				repo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(0, nil)

				repo.EXPECT().
					InsertBulk(gomock.Any(), gomock.Any()).
					Return(errors.New("db down"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockRepo := roomMocks.NewMockRoom(ctrl)
			tt.setupMock(mockRepo)

			svc := service.New(mockRepo, &config.Config{}, cacheMocks.NewCache(), mocks.NewOtel())

			res, err := svc.InitializeCatalog(context.Background())
			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantCreated, res.RoomsCreated)
		})
	}
}

func TestRoomService_Get(t *testing.T) {
	tests := []struct {
		name       string
		roomNumber int
		setupMock  func(repo *roomMocks.MockRoom)
		wantErr    bool
		wantCode   int
	}{
		{
			name:       "returns the room",
			roomNumber: 100,
			setupMock: func(repo *roomMocks.MockRoom) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Room{
						RoomNumber:    100,
						Type:          model.TypeStandard,
						PricePerNight: 50,
						IsAvailable:   true,
					}, nil)
			},
		},
		{
			name:       "room not found",
			roomNumber: 999,
			setupMock: func(repo *roomMocks.MockRoom) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Room{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name:       "repository error",
			roomNumber: 100,
			setupMock: func(repo *roomMocks.MockRoom) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Room{}, errors.New("db down"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockRepo := roomMocks.NewMockRoom(ctrl)
			tt.setupMock(mockRepo)

			svc := service.New(mockRepo, &config.Config{}, cacheMocks.NewCache(), mocks.NewOtel())

			res, err := svc.Get(context.Background(), tt.roomNumber)
			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.roomNumber, res.RoomNumber)
			assert.Equal(t, "Standard Room", res.Description)
		})
	}
}

func TestRoomService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := roomMocks.NewMockRoom(ctrl)

	mockRepo.EXPECT().
		Count(gomock.Any(), gomock.Any()).
		Return(2, nil)
	mockRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.Room{
			{RoomNumber: 100, Type: model.TypeStandard, PricePerNight: 50, IsAvailable: true},
			{RoomNumber: 200, Type: model.TypeDeluxe, PricePerNight: 75, IsAvailable: false},
		}, nil)

	svc := service.New(mockRepo, &config.Config{}, cacheMocks.NewCache(), mocks.NewOtel())

	res, err := svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})
	assert.NoError(t, err)
	assert.Equal(t, 2, res.TotalData)
	assert.Equal(t, 1, res.TotalPage)
	assert.Len(t, res.Rooms, 2)
	assert.Equal(t, "Deluxe Room", res.Rooms[1].Description)
	assert.False(t, res.Rooms[1].IsAvailable)
}
