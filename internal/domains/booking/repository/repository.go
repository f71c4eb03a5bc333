package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"strings"

	"hotelier/infras/otel"
	"hotelier/infras/postgres"
	"hotelier/internal/domains/booking/model"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/logger"
	gRepo "hotelier/shared/repository"
)

type Booking interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	LoadAll(ctx context.Context) ([]model.Booking, error)
	Save(ctx context.Context, mod model.Booking) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldBookingID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// LoadAll returns the whole booking log in insertion order.
func (r *repositoryImpl) LoadAll(ctx context.Context) ([]model.Booking, error) {
	params := gDto.QueryParams{
		SortBy:  fmt.Sprintf("%s.%s", model.TableName, constant.FieldCreatedAt),
		SortDir: "ASC",
	}

	return r.GetAll(ctx, params, gDto.FilterGroup{})
}

// Save inserts the booking, or replaces it when the booking id already exists.
func (r *repositoryImpl) Save(ctx context.Context, mod model.Booking) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Save", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	columns := r.InsertColumns
	placeholders := make([]string, len(columns))
	updates := make([]string, 0, len(columns))

	for i, col := range columns {
		placeholders[i] = ":" + col

		if col != model.FieldBookingID {
			updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", col, col))
		}
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (%s) DO UPDATE SET %s",
		model.TableName,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
		model.FieldBookingID,
		strings.Join(updates, ", "),
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := r.db.Write.NamedExecContext(ctx, query, mod); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to save data (%s): %w", model.EntityName, err)
	}

	return nil
}
