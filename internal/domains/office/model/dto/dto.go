package dto

import (
	"cowork/internal/domains/office/model"
	"cowork/shared"
	gDto "cowork/shared/dto"
	gModel "cowork/shared/model"
	"cowork/shared/timezone"

	"github.com/google/uuid"
)

type CreateOfficeRequest struct {
	Title           string   `json:"title"            validate:"required,max=200"`
	Description     string   `json:"description"      validate:"required"`
	Lat             float64  `json:"lat"              validate:"required,gte=-90,lte=90"`
	Lng             float64  `json:"lng"              validate:"required,gte=-180,lte=180"`
	AddressLine     string   `json:"address_line1"    validate:"required,max=255"`
	Hidden          bool     `json:"hidden"`
	PricePerDay     int64    `json:"price_per_day"    validate:"required,gt=0"`
	MonthlyDiscount int      `json:"monthly_discount" validate:"gte=0,lte=90"`
	Tags            []string `json:"tags"             validate:"omitempty,dive,uuid"`
}

// ToModel builds a new office. Listings always start pending approval
// regardless of who created them.
func (c *CreateOfficeRequest) ToModel(user string) model.Office {
	return model.Office{
		ID:              uuid.NewString(),
		UserID:          user,
		Title:           c.Title,
		Description:     c.Description,
		Lat:             c.Lat,
		Lng:             c.Lng,
		AddressLine:     c.AddressLine,
		Hidden:          c.Hidden,
		PricePerDay:     c.PricePerDay,
		MonthlyDiscount: c.MonthlyDiscount,
		ApprovalStatus:  model.ApprovalPending,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

func (c *CreateOfficeRequest) ToTagModels(officeID string) []model.OfficeTag {
	officeTags := make([]model.OfficeTag, len(c.Tags))
	for i, tagID := range c.Tags {
		officeTags[i] = model.OfficeTag{
			ID:       uuid.NewString(),
			OfficeID: officeID,
			TagID:    tagID,
		}
	}

	return officeTags
}

type UpdateOfficeRequest struct {
	Title           string   `db:"title"            json:"title"            validate:"omitempty,max=200"`
	Description     string   `db:"description"      json:"description"      validate:"omitempty"`
	Lat             float64  `db:"lat"              json:"lat"              validate:"omitempty,gte=-90,lte=90"`
	Lng             float64  `db:"lng"              json:"lng"              validate:"omitempty,gte=-180,lte=180"`
	AddressLine     string   `db:"address_line1"    json:"address_line1"    validate:"omitempty,max=255"`
	Hidden          *bool    `db:"hidden"           json:"hidden,omitempty"`
	PricePerDay     int64    `db:"price_per_day"    json:"price_per_day"    validate:"omitempty,gt=0"`
	MonthlyDiscount *int     `db:"monthly_discount" json:"monthly_discount,omitempty" validate:"omitempty,gte=0,lte=90"`
	FeaturedImageID *string  `db:"featured_image_id" json:"featured_image_id,omitempty" validate:"omitempty,uuid"`
	Tags            []string `json:"tags,omitempty"  validate:"omitempty,dive,uuid"`
}

// ResetsApproval reports whether the update touches a field that must send the
// listing back through review.
func (u *UpdateOfficeRequest) ResetsApproval() bool {
	return u.PricePerDay != 0 || u.MonthlyDiscount != nil || u.Hidden != nil
}

func (u *UpdateOfficeRequest) ToTagModels(officeID string) []model.OfficeTag {
	officeTags := make([]model.OfficeTag, len(u.Tags))
	for i, tagID := range u.Tags {
		officeTags[i] = model.OfficeTag{
			ID:       uuid.NewString(),
			OfficeID: officeID,
			TagID:    tagID,
		}
	}

	return officeTags
}

type OfficeResponse struct {
	ID              string   `json:"id"`
	UserID          string   `json:"user_id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Lat             float64  `json:"lat"`
	Lng             float64  `json:"lng"`
	AddressLine     string   `json:"address_line1"`
	Hidden          bool     `json:"hidden"`
	PricePerDay     int64    `json:"price_per_day"`
	MonthlyDiscount int      `json:"monthly_discount"`
	ApprovalStatus  string   `json:"approval_status"`
	FeaturedImageID *string  `json:"featured_image_id,omitempty"`
	Tags            []string `json:"tags,omitempty"`
	gDto.Metadata
}

func (r *OfficeResponse) FromModel(model model.Office) {
	r.ID = model.ID
	r.UserID = model.UserID
	r.Title = model.Title
	r.Description = model.Description
	r.Lat = model.Lat
	r.Lng = model.Lng
	r.AddressLine = model.AddressLine
	r.Hidden = model.Hidden
	r.PricePerDay = model.PricePerDay
	r.MonthlyDiscount = model.MonthlyDiscount
	r.ApprovalStatus = model.ApprovalStatus
	r.FeaturedImageID = model.FeaturedImageID
	r.Metadata.FromModel(model.Metadata)
}

type GetOfficesResponse struct {
	Offices   []OfficeResponse `json:"offices"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

func (r *GetOfficesResponse) FromModels(models []model.Office, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Offices = make([]OfficeResponse, len(models))
	for i, mod := range models {
		r.Offices[i].FromModel(mod)
	}
}
