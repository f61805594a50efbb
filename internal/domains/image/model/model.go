package model

import "cowork/shared/model"

const (
	TableName  = "office_images"
	EntityName = "image"

	FieldID       = "id"
	FieldOfficeID = "office_id"
	FieldURL      = "url"
)

type Image struct {
	ID       string `db:"id"`
	OfficeID string `db:"office_id"`
	URL      string `db:"url"`
	model.Metadata
}
