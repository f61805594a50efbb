package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cowork/config"
	"cowork/infras/locker"
	"cowork/infras/otel"
	officeModel "cowork/internal/domains/office/model"
	officeRepo "cowork/internal/domains/office/repository"
	"cowork/internal/domains/reservation/model"
	"cowork/internal/domains/reservation/model/dto"
	"cowork/internal/domains/reservation/repository"
	"cowork/internal/notification"
	"cowork/shared"
	"cowork/shared/cache"
	"cowork/shared/constant"
	gDto "cowork/shared/dto"
	"cowork/shared/failure"
	"cowork/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetReservation    = "reservation:get"
	cacheGetAllReservation = "reservation:gets"
	cacheCountReservation  = "reservation:count"

	lockPrefix = "reservations:office"
)

const (
	fieldOfficeID  = "office_id"
	fieldStartDate = "start_date"
	fieldEndDate   = "end_date"
)

type Reservation interface {
	Create(ctx context.Context, req dto.CreateReservationRequest) (dto.ReservationResponse, error)
	Get(ctx context.Context, id string) (dto.ReservationResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetReservationsResponse, error)
	GetAllForHost(ctx context.Context, params gDto.QueryParams, hostID string) (dto.GetReservationsResponse, error)
	Cancel(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo       repository.Reservation
	officeRepo officeRepo.Office
	locker     locker.Locker
	notifier   notification.Notifier
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
}

func New(
	repo repository.Reservation,
	officeRepo officeRepo.Office,
	locker locker.Locker,
	notifier notification.Notifier,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Reservation {
	return &serviceImpl{
		repo:       repo,
		officeRepo: officeRepo,
		locker:     locker,
		notifier:   notifier,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
	}
}

// Create admits a reservation. All business checks that depend on other
// reservations run under a per-office lock so concurrent requests on the same
// office serialize; everything before the lock only reads office state.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateReservationRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	start, end, err := req.Dates()
	if err != nil {
		log.Error().Err(err).Msg("failed to parse reservation dates")

		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err)) //nolint:wrapcheck
	}

	now := timezone.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if !start.After(today) {
		return res, failure.Unprocessable(fieldStartDate, "start_date must be a date after today") //nolint:wrapcheck
	}

	if !end.After(start) {
		return res, failure.Unprocessable(fieldEndDate, "end_date must be a date after start_date") //nolint:wrapcheck
	}

	office, err := s.officeRepo.Get(ctx, officeRepo.ExistingFilter(req.OfficeID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get office")

		return res, fmt.Errorf("failed to get office: %w", err)
	}

	if office.ID == constant.Empty {
		return res, failure.Unprocessable(fieldOfficeID, "Invalid office_id") //nolint:wrapcheck
	}

	if office.UserID == user {
		return res, failure.Unprocessable(fieldOfficeID, "You cannot make a reservation on your own office") //nolint:wrapcheck
	}

	if office.Hidden || office.ApprovalStatus != officeModel.ApprovalApproved {
		return res, failure.Unprocessable(fieldOfficeID, "You cannot make a reservation on a hidden or pending office") //nolint:wrapcheck
	}

	lockKey := shared.BuildCacheKey(lockPrefix, office.ID)

	handle, err := s.locker.Acquire(ctx, lockKey)
	if err != nil {
		if errors.Is(err, locker.ErrBusy) {
			return res, failure.Conflict("another reservation for this office is being processed, please retry") //nolint:wrapcheck
		}

		log.Error().Err(err).Str("key", lockKey).Msg("failed to acquire office lock")

		return res, fmt.Errorf("failed to acquire office lock: %w", err)
	}

	defer func() {
		if releaseErr := s.locker.Release(context.WithoutCancel(ctx), handle); releaseErr != nil {
			log.Error().Err(releaseErr).Str("key", lockKey).Msg("failed to release office lock")
		}
	}()

	conflict, err := s.repo.Exist(ctx, repository.ActiveBetweenFilter(office.ID, start, end))
	if err != nil {
		log.Error().Err(err).Msg("failed to check overlapping reservations")

		return res, fmt.Errorf("failed to check overlapping reservations: %w", err)
	}

	if conflict {
		return res, failure.Unprocessable(fieldOfficeID, "You cannot make a reservation during this time") //nolint:wrapcheck
	}

	days := dto.InclusiveDays(start, end)
	price := dto.TotalPrice(days, office.PricePerDay, office.MonthlyDiscount)

	reservation := req.ToModel(user, price, start, end)

	if err = s.repo.Insert(ctx, reservation); err != nil {
		log.Error().Err(err).Msg("failed to create reservation")

		return res, fmt.Errorf("failed to create reservation: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		event := notification.ReservationCreatedEvent{
			ReservationID: reservation.ID,
			OfficeID:      office.ID,
			OfficeTitle:   office.Title,
			RequesterID:   user,
			HostID:        office.UserID,
			StartDate:     req.StartDate,
			EndDate:       req.EndDate,
			Days:          days,
			Price:         price,
		}

		if err := s.notifier.ReservationCreated(c, event); err != nil {
			log.Error().Err(err).Str("reservation_id", reservation.ID).Msg("failed to notify reservation created")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllReservation)
		shared.InvalidateCaches(c, s.cache, cacheCountReservation)
	}()

	res.FromModel(reservation)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	cacheKey := shared.BuildCacheKey(cacheGetReservation, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil && res.UserID == user {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservation")

		return res, nil
	}

	reservation, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return res, fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == constant.Empty {
		return res, failure.NotFound("reservation not found") //nolint:wrapcheck
	}

	if reservation.UserID != user {
		return res, failure.ResourceRestrictedError //nolint:wrapcheck
	}

	res = dto.ReservationResponse{}
	res.FromModel(reservation)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservation to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllReservation, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservations")

		return res, nil
	}

	total, err := s.count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservations")

		return res, fmt.Errorf("failed to count reservations: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations")

		return res, fmt.Errorf("failed to get reservations: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservations to cache")
		}
	}()

	return res, nil
}

// GetAllForHost lists the reservations made on any office the host owns.
func (s *serviceImpl) GetAllForHost(ctx context.Context, params gDto.QueryParams, hostID string) (res dto.GetReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAllForHost")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.GetAll(ctx, params, repository.ForHostFilter(hostID))
}

func (s *serviceImpl) count(ctx context.Context, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountReservation, gDto.QueryParams{}, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		return res, fmt.Errorf("failed to count reservations: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservation count to cache")
		}
	}()

	return res, nil
}

// Cancel flips an active reservation owned by the requester to cancelled.
// Nothing is deleted; the stay simply stops blocking the office calendar.
func (s *serviceImpl) Cancel(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	reservation, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == constant.Empty {
		return failure.NotFound("reservation not found") //nolint:wrapcheck
	}

	if reservation.UserID != user {
		return failure.ResourceRestrictedError //nolint:wrapcheck
	}

	if reservation.Status != model.StatusActive {
		return failure.BadRequestFromString("only active reservations can be cancelled") //nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(dto.UpdateStatusRequest{Status: model.StatusCancelled}, user)

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to cancel reservation")

		return fmt.Errorf("failed to cancel reservation: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetReservation, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete reservation from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllReservation)
		shared.InvalidateCaches(c, s.cache, cacheCountReservation)
	}()

	return nil
}
