package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"cowork/infras/otel"
	"cowork/infras/postgres"
	"cowork/internal/domains/office/model"
	resModel "cowork/internal/domains/reservation/model"
	gDto "cowork/shared/dto"
	gRepo "cowork/shared/repository"
)

type Office interface {
	Insert(ctx context.Context, model model.Office) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Office, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Office, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type OfficeTag interface {
	InsertBulk(ctx context.Context, models []model.OfficeTag) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.OfficeTag, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Office]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Office {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Office](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

type tagRepositoryImpl struct {
	gRepo.Repository[model.OfficeTag]
	db   *postgres.Connection
	otel otel.Otel
}

func NewOfficeTag(db *postgres.Connection, otel otel.Otel) OfficeTag {
	return &tagRepositoryImpl{
		Repository: gRepo.NewRepository[model.OfficeTag](model.OfficeTagEntityName, model.OfficeTagTableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// VisibleFilter restricts a listing query to offices a non-owner may see:
// approved, not hidden, not soft-deleted.
func VisibleFilter() []any {
	return []any{
		gDto.Filter{
			Field:    model.FieldApprovalStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    model.ApprovalApproved,
			Table:    model.TableName,
		},
		gDto.Filter{
			Field:    model.FieldHidden,
			Operator: gDto.FilterOperatorEq,
			Value:    false,
			Table:    model.TableName,
		},
		gDto.Filter{
			Field:    model.FieldDeletedAt,
			Operator: gDto.FilterIsNull,
			Table:    model.TableName,
		},
	}
}

// OwnedListingFilter is the listing restriction for an owner browsing their
// own offices: hidden and pending rows stay visible, soft-deleted ones do not.
func OwnedListingFilter() []any {
	return []any{
		gDto.Filter{
			Field:    model.FieldDeletedAt,
			Operator: gDto.FilterIsNull,
			Table:    model.TableName,
		},
	}
}

// ListingFilters picks the base predicates for the office listing. A user
// filtering by their own user_id gets their hidden and pending offices too;
// everyone else only sees approved, visible ones.
func ListingFilters(ownerID, requester string) []any {
	if ownerID != "" && ownerID == requester {
		return OwnedListingFilter()
	}

	return VisibleFilter()
}

// ReservedByFilter matches offices the given visitor has reserved at least
// once, via the same subquery shape the host reservation listing uses.
func ReservedByFilter(visitorID string) gDto.Filter {
	return gDto.Filter{
		Operator: gDto.FilterPlainQuery,
		Value: model.TableName + "." + model.FieldID +
			" IN (SELECT " + resModel.FieldOfficeID + " FROM " + resModel.TableName +
			" WHERE " + resModel.FieldUserID + " = :visitor_id)",
		Args: map[string]any{"visitor_id": visitorID},
	}
}

// NearestToOrder is an ordering expression approximating the distance from
// the given point, 69.1 miles per degree of latitude and the longitude leg
// scaled by the cosine of the latitude.
func NearestToOrder(lat, lng float64) string {
	return fmt.Sprintf("POW(69.1 * (%s - %g), 2) + POW(69.1 * (%g - %s) * COS(%s / 57.3), 2)",
		model.FieldLat, lat, lng, model.FieldLng, model.FieldLat)
}

// ExistingFilter matches a single office by id, excluding soft-deleted rows.
func ExistingFilter(id string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldID,
				Operator: gDto.FilterOperatorEq,
				Value:    id,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldDeletedAt,
				Operator: gDto.FilterIsNull,
				Table:    model.TableName,
			},
		},
	}
}
