package dto

import (
	"time"

	"cowork/internal/domains/reservation/model"
	"cowork/shared"
	"cowork/shared/constant"
	gDto "cowork/shared/dto"
	gModel "cowork/shared/model"
	"cowork/shared/timezone"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	OfficeID  string `json:"office_id"  validate:"required,uuid"`
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date"   validate:"required,datetime=2006-01-02"`
}

// Dates parses both endpoints as calendar dates in the app timezone.
func (c *CreateReservationRequest) Dates() (start, end time.Time, err error) {
	start, err = timezone.Parse(constant.DateOnlyFormat, c.StartDate)
	if err != nil {
		return start, end, err
	}

	end, err = timezone.Parse(constant.DateOnlyFormat, c.EndDate)

	return start, end, err
}

func (c *CreateReservationRequest) ToModel(user string, price int64, start, end time.Time) model.Reservation {
	return model.Reservation{
		ID:        uuid.NewString(),
		UserID:    user,
		OfficeID:  c.OfficeID,
		StartDate: start,
		EndDate:   end,
		Status:    model.StatusActive,
		Price:     price,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateStatusRequest struct {
	Status string `db:"status" json:"status" validate:"required,oneof=active cancelled"`
}

type ReservationResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	OfficeID  string `json:"office_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Status    string `json:"status"`
	Price     int64  `json:"price"`
	Days      int    `json:"days"`
	gDto.Metadata
}

func (r *ReservationResponse) FromModel(model model.Reservation) {
	r.ID = model.ID
	r.UserID = model.UserID
	r.OfficeID = model.OfficeID
	r.StartDate = timezone.Format(model.StartDate, constant.DateOnlyFormat)
	r.EndDate = timezone.Format(model.EndDate, constant.DateOnlyFormat)
	r.Status = model.Status
	r.Price = model.Price
	r.Days = InclusiveDays(model.StartDate, model.EndDate)
	r.Metadata.FromModel(model.Metadata)
}

type GetReservationsResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetReservationsResponse) FromModels(models []model.Reservation, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reservations = make([]ReservationResponse, len(models))
	for i, mod := range models {
		r.Reservations[i].FromModel(mod)
	}
}

// InclusiveDays counts booked days with both endpoints included, so a stay
// ending the day after it starts is two days. The count goes over calendar
// dates, not elapsed time: a DST transition inside the stay must not shorten
// the day count, so both endpoints are pinned to UTC midnight first.
func InclusiveDays(start, end time.Time) int {
	const hoursPerDay = 24

	startDay := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	endDay := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)

	return int(endDay.Sub(startDay).Hours()/hoursPerDay) + 1
}

// TotalPrice computes the charge for a stay: day count times the daily rate,
// with the monthly discount percentage knocked off stays of 28 days or more.
// The discount is integer arithmetic, multiply first then divide, truncating.
func TotalPrice(days int, pricePerDay int64, monthlyDiscount int) int64 {
	price := int64(days) * pricePerDay

	if days >= constant.MonthlyStayDays && monthlyDiscount > 0 {
		price -= price * int64(monthlyDiscount) / 100
	}

	return price
}
