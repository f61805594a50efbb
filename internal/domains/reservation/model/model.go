package model

import (
	"time"

	"cowork/shared/model"
)

const (
	TableName  = "reservations"
	EntityName = "reservation"

	FieldID        = "id"
	FieldUserID    = "user_id"
	FieldOfficeID  = "office_id"
	FieldStartDate = "start_date"
	FieldEndDate   = "end_date"
	FieldStatus    = "status"
	FieldPrice     = "price"
)

const (
	StatusActive    = "active"
	StatusCancelled = "cancelled"
)

// Reservation holds one admitted stay. StartDate/EndDate are calendar dates
// (midnight in the app timezone); both endpoints are booked nights, so the
// charged day count is inclusive. Price is the total in minor currency units,
// frozen at admission time.
type Reservation struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	OfficeID  string    `db:"office_id"`
	StartDate time.Time `db:"start_date"`
	EndDate   time.Time `db:"end_date"`
	Status    string    `db:"status"`
	Price     int64     `db:"price"`
	model.Metadata
}
