package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"hotelier/infras/otel"
	"hotelier/infras/postgres"
	"hotelier/internal/domains/room/model"
	"hotelier/shared"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	gRepo "hotelier/shared/repository"
	"hotelier/shared/timezone"
)

type Room interface {
	Insert(ctx context.Context, model model.Room) error
	InsertBulk(ctx context.Context, models []model.Room) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Room, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Room, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	LoadAll(ctx context.Context) ([]model.Room, error)
	UpdateAvailability(ctx context.Context, roomNumber int, available bool) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Room]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Room {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Room](model.EntityName, model.TableName, model.FieldRoomNumber, db, otel),
		db:         db,
		otel:       otel,
	}
}

// LoadAll returns the entire catalog ordered by room number.
func (r *repositoryImpl) LoadAll(ctx context.Context) ([]model.Room, error) {
	params := gDto.QueryParams{
		SortBy:  model.FieldRoomNumber,
		SortDir: "ASC",
	}

	return r.GetAll(ctx, params, gDto.FilterGroup{})
}

func (r *repositoryImpl) UpdateAvailability(ctx context.Context, roomNumber int, available bool) error {
	fields := map[string]any{
		model.FieldIsAvailable:   available,
		constant.FieldModifiedAt: timezone.Now(),
	}

	return r.Update(ctx, fields, shared.FilterByID(roomNumber, model.FieldRoomNumber, model.TableName))
}
