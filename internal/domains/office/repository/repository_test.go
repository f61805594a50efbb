package repository_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cowork/internal/domains/office/model"
	"cowork/internal/domains/office/repository"
	gDto "cowork/shared/dto"
)

func whereClause(filters []any) string {
	group := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  filters,
	}

	sql, _ := group.GetWhereClause()

	return sql
}

func TestListingFilters(t *testing.T) {
	tests := []struct {
		name          string
		ownerID       string
		requester     string
		wantHiddenRow bool
	}{
		{
			name:          "owner filtering by own id sees hidden and pending",
			ownerID:       "user-1",
			requester:     "user-1",
			wantHiddenRow: true,
		},
		{
			name:          "anonymous visitor only sees visible offices",
			ownerID:       "user-1",
			requester:     "",
			wantHiddenRow: false,
		},
		{
			name:          "other user only sees visible offices",
			ownerID:       "user-1",
			requester:     "user-2",
			wantHiddenRow: false,
		},
		{
			name:          "unfiltered listing only sees visible offices",
			ownerID:       "",
			requester:     "user-1",
			wantHiddenRow: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql := whereClause(repository.ListingFilters(tt.ownerID, tt.requester))

			assert.Contains(t, sql, model.FieldDeletedAt+" IS NULL")

			if tt.wantHiddenRow {
				assert.NotContains(t, sql, model.FieldApprovalStatus)
				assert.NotContains(t, sql, model.FieldHidden)
			} else {
				assert.Contains(t, sql, model.FieldApprovalStatus)
				assert.Contains(t, sql, model.FieldHidden)
			}
		})
	}
}

func TestReservedByFilter(t *testing.T) {
	filter := repository.ReservedByFilter("visitor-1")

	sql, args := filter.GetWhereClause()

	assert.Equal(t, "(offices.id IN (SELECT office_id FROM reservations WHERE user_id = :visitor_id))", sql)
	assert.Equal(t, "visitor-1", args["visitor_id"])
}

func TestNearestToOrder(t *testing.T) {
	order := repository.NearestToOrder(39.74, -8.77)

	assert.Equal(t, "POW(69.1 * (lat - 39.74), 2) + POW(69.1 * (-8.77 - lng) * COS(lat / 57.3), 2)", order)
}

func TestVisibleFilterRestrictsApprovalAndVisibility(t *testing.T) {
	sql := whereClause(repository.VisibleFilter())

	for _, fragment := range []string{
		model.TableName + "." + model.FieldApprovalStatus + " = :" + model.FieldApprovalStatus,
		model.TableName + "." + model.FieldHidden + " = :" + model.FieldHidden,
		model.TableName + "." + model.FieldDeletedAt + " IS NULL",
	} {
		assert.Contains(t, sql, fragment)
	}
}
