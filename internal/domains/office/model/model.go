package model

import (
	"time"

	"cowork/shared/model"
)

const (
	TableName  = "offices"
	EntityName = "office"

	FieldID              = "id"
	FieldUserID          = "user_id"
	FieldTitle           = "title"
	FieldDescription     = "description"
	FieldLat             = "lat"
	FieldLng             = "lng"
	FieldAddressLine     = "address_line1"
	FieldHidden          = "hidden"
	FieldPricePerDay     = "price_per_day"
	FieldMonthlyDiscount = "monthly_discount"
	FieldApprovalStatus  = "approval_status"
	FieldFeaturedImageID = "featured_image_id"
	FieldDeletedAt       = "deleted_at"
)

const (
	ApprovalPending  = "pending"
	ApprovalApproved = "approved"
)

const (
	OfficeTagTableName  = "office_tags"
	OfficeTagEntityName = "office_tag"

	FieldOfficeID = "office_id"
	FieldTagID    = "tag_id"
)

// Office is a listing owned by a host. Prices are minor currency units per
// day; MonthlyDiscount is a whole percentage applied to stays of 28 days or
// longer. A soft-deleted office keeps its rows but carries DeletedAt.
type Office struct {
	ID              string     `db:"id"`
	UserID          string     `db:"user_id"`
	Title           string     `db:"title"`
	Description     string     `db:"description"`
	Lat             float64    `db:"lat"`
	Lng             float64    `db:"lng"`
	AddressLine     string     `db:"address_line1"`
	Hidden          bool       `db:"hidden"`
	PricePerDay     int64      `db:"price_per_day"`
	MonthlyDiscount int        `db:"monthly_discount"`
	ApprovalStatus  string     `db:"approval_status"`
	FeaturedImageID *string    `db:"featured_image_id"`
	DeletedAt       *time.Time `db:"deleted_at"`
	model.Metadata
}

type OfficeTag struct {
	ID       string `db:"id"`
	OfficeID string `db:"office_id"`
	TagID    string `db:"tag_id"`
}
