package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"time"

	"cowork/infras/otel"
	"cowork/infras/postgres"
	officeModel "cowork/internal/domains/office/model"
	"cowork/internal/domains/reservation/model"
	gDto "cowork/shared/dto"
	gRepo "cowork/shared/repository"
)

type Reservation interface {
	Insert(ctx context.Context, model model.Reservation) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Reservation, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Reservation, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Reservation]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Reservation {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Reservation](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// ActiveBetweenFilter matches active reservations on the given office whose
// stay overlaps the inclusive [start, end] range: a stay conflicts when it
// starts inside the range, ends inside the range, or covers it entirely.
func ActiveBetweenFilter(officeID string, start, end time.Time) gDto.FilterGroup {
	startsWithin := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldStartDate,
				Operator: gDto.FilterOperatorGreaterEq,
				Value:    start,
				Table:    model.TableName,
				ArgName:  "overlap_from",
			},
			gDto.Filter{
				Field:    model.FieldStartDate,
				Operator: gDto.FilterOperatorLessEq,
				Value:    end,
				Table:    model.TableName,
				ArgName:  "overlap_to",
			},
		},
	}

	endsWithin := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldEndDate,
				Operator: gDto.FilterOperatorGreaterEq,
				Value:    start,
				Table:    model.TableName,
				ArgName:  "overlap_from",
			},
			gDto.Filter{
				Field:    model.FieldEndDate,
				Operator: gDto.FilterOperatorLessEq,
				Value:    end,
				Table:    model.TableName,
				ArgName:  "overlap_to",
			},
		},
	}

	covers := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldStartDate,
				Operator: gDto.FilterOperatorLess,
				Value:    start,
				Table:    model.TableName,
				ArgName:  "overlap_from",
			},
			gDto.Filter{
				Field:    model.FieldEndDate,
				Operator: gDto.FilterOperatorGreater,
				Value:    end,
				Table:    model.TableName,
				ArgName:  "overlap_to",
			},
		},
	}

	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldOfficeID,
				Operator: gDto.FilterOperatorEq,
				Value:    officeID,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldStatus,
				Operator: gDto.FilterOperatorEq,
				Value:    model.StatusActive,
				Table:    model.TableName,
			},
			gDto.FilterGroup{
				Operator: gDto.FilterGroupOperatorOr,
				Filters:  []any{startsWithin, endsWithin, covers},
			},
		},
	}
}

// ActiveOnOfficeFilter matches active reservations on one office. Office
// deletion is refused while any exist.
func ActiveOnOfficeFilter(officeID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldOfficeID,
				Operator: gDto.FilterOperatorEq,
				Value:    officeID,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldStatus,
				Operator: gDto.FilterOperatorEq,
				Value:    model.StatusActive,
				Table:    model.TableName,
			},
		},
	}
}

// ForHostFilter matches reservations on any office owned by the given host,
// via a subquery so the listing does not need a join on the generic columns.
func ForHostFilter(hostUserID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Operator: gDto.FilterPlainQuery,
				Value: model.TableName + "." + model.FieldOfficeID +
					" IN (SELECT " + officeModel.FieldID + " FROM " + officeModel.TableName +
					" WHERE " + officeModel.FieldUserID + " = :host_user_id)",
				Args: map[string]any{"host_user_id": hostUserID},
			},
		},
	}
}
