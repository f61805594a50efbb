package service

import (
	"context"
	"fmt"

	"cowork/config"
	"cowork/infras/otel"
	"cowork/infras/s3"
	imageRepo "cowork/internal/domains/image/repository"
	"cowork/internal/domains/office/model"
	"cowork/internal/domains/office/model/dto"
	"cowork/internal/domains/office/repository"
	reservationRepo "cowork/internal/domains/reservation/repository"
	"cowork/shared"
	"cowork/shared/cache"
	"cowork/shared/constant"
	gDto "cowork/shared/dto"
	"cowork/shared/failure"
	"cowork/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetOffice    = "office:get"
	cacheGetAllOffice = "office:gets"
	cacheCountOffice  = "office:count"
)

type Office interface {
	Create(ctx context.Context, req dto.CreateOfficeRequest) (dto.OfficeResponse, error)
	Get(ctx context.Context, id string) (dto.OfficeResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetOfficesResponse, error)
	Update(ctx context.Context, req dto.UpdateOfficeRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo            repository.Office
	officeTagRepo   repository.OfficeTag
	reservationRepo reservationRepo.Reservation
	imageRepo       imageRepo.Image
	s3              s3.S3
	cfg             *config.Config
	cache           cache.RedisCache
	otel            otel.Otel
}

func New(
	repo repository.Office,
	officeTagRepo repository.OfficeTag,
	reservationRepo reservationRepo.Reservation,
	imageRepo imageRepo.Image,
	s3 s3.S3,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Office {
	return &serviceImpl{
		repo:            repo,
		officeTagRepo:   officeTagRepo,
		reservationRepo: reservationRepo,
		imageRepo:       imageRepo,
		s3:              s3,
		cfg:             cfg,
		cache:           cache,
		otel:            otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateOfficeRequest) (res dto.OfficeResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	office := req.ToModel(user)

	if err = s.repo.Insert(ctx, office); err != nil {
		log.Error().Err(err).Msg("failed to create office")

		return res, fmt.Errorf("failed to create office: %w", err)
	}

	if len(req.Tags) > 0 {
		if err = s.officeTagRepo.InsertBulk(ctx, req.ToTagModels(office.ID)); err != nil {
			log.Error().Err(err).Msg("failed to attach office tags")

			return res, fmt.Errorf("failed to attach office tags: %w", err)
		}
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllOffice)
		shared.InvalidateCaches(c, s.cache, cacheCountOffice)
	}()

	res.FromModel(office)
	res.Tags = req.Tags

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.OfficeResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	office, err := s.repo.Get(ctx, repository.ExistingFilter(id))
	if err != nil {
		log.Error().Err(err).Msg("failed to get office")

		return res, fmt.Errorf("failed to get office: %w", err)
	}

	if office.ID == constant.Empty {
		return res, failure.NotFound("office not found") //nolint:wrapcheck
	}

	// A hidden or still-pending listing only exists for its owner.
	if (office.Hidden || office.ApprovalStatus != model.ApprovalApproved) && office.UserID != user {
		return res, failure.NotFound("office not found") //nolint:wrapcheck
	}

	officeTags, err := s.officeTagRepo.GetAll(ctx, gDto.QueryParams{}, officeTagFilter(id))
	if err != nil {
		log.Error().Err(err).Msg("failed to get office tags")

		return res, fmt.Errorf("failed to get office tags: %w", err)
	}

	res.FromModel(office)

	res.Tags = make([]string, len(officeTags))
	for i, officeTag := range officeTags {
		res.Tags[i] = officeTag.TagID
	}

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetOfficesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllOffice, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for offices")

		return res, nil
	}

	total, err := s.count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count offices")

		return res, fmt.Errorf("failed to count offices: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get offices")

		return res, fmt.Errorf("failed to get offices: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save offices to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) count(ctx context.Context, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountOffice, gDto.QueryParams{}, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		return res, fmt.Errorf("failed to count offices: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save office count to cache")
		}
	}()

	return res, nil
}

// Update edits a listing. Changing price, discount, or visibility sends the
// office back through host review, so it drops out of public listings until
// approved again.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateOfficeRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	office, err := s.repo.Get(ctx, repository.ExistingFilter(id))
	if err != nil {
		log.Error().Err(err).Msg("failed to get office")

		return fmt.Errorf("failed to get office: %w", err)
	}

	if office.ID == constant.Empty {
		return failure.NotFound("office not found") //nolint:wrapcheck
	}

	if office.UserID != user && role != constant.RoleAdmin {
		return failure.ResourceRestrictedError //nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, user)

	if req.ResetsApproval() {
		updatedFields[model.FieldApprovalStatus] = model.ApprovalPending
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update office")

		return fmt.Errorf("failed to update office: %w", err)
	}

	if req.Tags != nil {
		if err = s.officeTagRepo.Delete(ctx, officeTagFilter(id)); err != nil {
			log.Error().Err(err).Msg("failed to detach office tags")

			return fmt.Errorf("failed to detach office tags: %w", err)
		}

		if len(req.Tags) > 0 {
			if err = s.officeTagRepo.InsertBulk(ctx, req.ToTagModels(id)); err != nil {
				log.Error().Err(err).Msg("failed to attach office tags")

				return fmt.Errorf("failed to attach office tags: %w", err)
			}
		}
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetOffice, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete office from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllOffice)
		shared.InvalidateCaches(c, s.cache, cacheCountOffice)
	}()

	return nil
}

// Delete soft-deletes a listing. Offices with active reservations cannot be
// removed; stored images are cleaned from S3 best-effort afterwards.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	office, err := s.repo.Get(ctx, repository.ExistingFilter(id))
	if err != nil {
		log.Error().Err(err).Msg("failed to get office")

		return fmt.Errorf("failed to get office: %w", err)
	}

	if office.ID == constant.Empty {
		return failure.NotFound("office not found") //nolint:wrapcheck
	}

	if office.UserID != user && role != constant.RoleAdmin {
		return failure.ResourceRestrictedError //nolint:wrapcheck
	}

	hasActive, err := s.reservationRepo.Exist(ctx, reservationRepo.ActiveOnOfficeFilter(id))
	if err != nil {
		log.Error().Err(err).Msg("failed to check active reservations")

		return fmt.Errorf("failed to check active reservations: %w", err)
	}

	if hasActive {
		return failure.BadRequestFromString("cannot delete an office with active reservations") //nolint:wrapcheck
	}

	updatedFields := map[string]any{
		model.FieldDeletedAt:     timezone.Now(),
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete office")

		return fmt.Errorf("failed to delete office: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		s.cleanupImages(c, id)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetOffice, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete office from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllOffice)
		shared.InvalidateCaches(c, s.cache, cacheCountOffice)
	}()

	return nil
}

func (s *serviceImpl) cleanupImages(ctx context.Context, officeID string) {
	images, err := s.imageRepo.GetAll(ctx, gDto.QueryParams{}, imageRepo.ByOfficeFilter(officeID))
	if err != nil {
		log.Error().Err(err).Str("office_id", officeID).Msg("failed to list office images for cleanup")

		return
	}

	bucket := s.cfg.External.S3.BucketName

	for _, image := range images {
		objectName := s.s3.GetObjectNameFromURL(bucket, image.URL)
		if objectName == constant.Empty {
			continue
		}

		if err := s.s3.DeleteFile(ctx, bucket, constant.Empty, objectName); err != nil {
			log.Error().Err(err).Str("object", objectName).Msg("failed to delete office image from S3")
		}
	}

	if err := s.imageRepo.Delete(ctx, imageRepo.ByOfficeFilter(officeID)); err != nil {
		log.Error().Err(err).Str("office_id", officeID).Msg("failed to delete office image rows")
	}
}

func officeTagFilter(officeID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldOfficeID,
				Operator: gDto.FilterOperatorEq,
				Value:    officeID,
				Table:    model.OfficeTagTableName,
			},
		},
	}
}
