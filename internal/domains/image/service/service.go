package service

import (
	"context"
	"fmt"
	"path"
	"path/filepath"

	"cowork/config"
	"cowork/infras/otel"
	"cowork/infras/s3"
	"cowork/internal/domains/image/model"
	"cowork/internal/domains/image/model/dto"
	"cowork/internal/domains/image/repository"
	officeModel "cowork/internal/domains/office/model"
	officeRepo "cowork/internal/domains/office/repository"
	"cowork/shared"
	"cowork/shared/constant"
	gDto "cowork/shared/dto"
	"cowork/shared/failure"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	imageDirectory = "offices"
)

type Image interface {
	Upload(ctx context.Context, officeID string, req dto.UploadImageRequest) (dto.ImageResponse, error)
	GetAll(ctx context.Context, officeID string) (dto.GetImagesResponse, error)
	Delete(ctx context.Context, officeID, imageID string) error
}

type serviceImpl struct {
	repo       repository.Image
	officeRepo officeRepo.Office
	s3         s3.S3
	cfg        *config.Config
	otel       otel.Otel
}

func New(repo repository.Image, officeRepo officeRepo.Office, s3 s3.S3, cfg *config.Config, otel otel.Otel) Image {
	return &serviceImpl{
		repo:       repo,
		officeRepo: officeRepo,
		s3:         s3,
		cfg:        cfg,
		otel:       otel,
	}
}

func (s *serviceImpl) Upload(ctx context.Context, officeID string, req dto.UploadImageRequest) (res dto.ImageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Upload")
	defer scope.End()
	defer scope.TraceIfError(err)

	office, err := s.ownedOffice(ctx, officeID)
	if err != nil {
		return res, err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	fileName := uuid.NewString() + filepath.Ext(req.FileHeader.Filename)
	directory := path.Join(imageDirectory, office.ID)

	url, err := s.s3.UploadFile(ctx, constant.Empty, directory, req.File, &req.FileHeader, fileName)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload image to S3")

		return res, fmt.Errorf("failed to upload image: %w", err)
	}

	image := req.ToModel(office.ID, url, user)

	if err = s.repo.Insert(ctx, image); err != nil {
		log.Error().Err(err).Msg("failed to save image")

		return res, fmt.Errorf("failed to save image: %w", err)
	}

	res.FromModel(image)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, officeID string) (res dto.GetImagesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	models, err := s.repo.GetAll(ctx, gDto.QueryParams{}, repository.ByOfficeFilter(officeID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get images")

		return res, fmt.Errorf("failed to get images: %w", err)
	}

	res.FromModels(models)

	return res, nil
}

// Delete removes one image. The last remaining image and the office's
// featured image are protected; the S3 object is removed best-effort after
// the row is gone.
func (s *serviceImpl) Delete(ctx context.Context, officeID, imageID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	office, err := s.ownedOffice(ctx, officeID)
	if err != nil {
		return err
	}

	image, err := s.repo.Get(ctx, shared.FilterByID(imageID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get image")

		return fmt.Errorf("failed to get image: %w", err)
	}

	if image.ID == constant.Empty || image.OfficeID != office.ID {
		return failure.NotFound("image not found") //nolint:wrapcheck
	}

	count, err := s.repo.Count(ctx, repository.ByOfficeFilter(office.ID))
	if err != nil {
		log.Error().Err(err).Msg("failed to count images")

		return fmt.Errorf("failed to count images: %w", err)
	}

	if count <= 1 {
		return failure.BadRequestFromString("cannot delete the only image of an office") //nolint:wrapcheck
	}

	if office.FeaturedImageID != nil && *office.FeaturedImageID == image.ID {
		return failure.BadRequestFromString("cannot delete the featured image") //nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(imageID, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete image")

		return fmt.Errorf("failed to delete image: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		bucket := s.cfg.External.S3.BucketName

		objectName := s.s3.GetObjectNameFromURL(bucket, image.URL)
		if objectName == constant.Empty {
			return
		}

		if err := s.s3.DeleteFile(c, bucket, constant.Empty, objectName); err != nil {
			log.Error().Err(err).Str("object", objectName).Msg("failed to delete image from S3")
		}
	}()

	return nil
}

func (s *serviceImpl) ownedOffice(ctx context.Context, officeID string) (officeModel.Office, error) {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	office, err := s.officeRepo.Get(ctx, officeRepo.ExistingFilter(officeID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get office")

		return office, fmt.Errorf("failed to get office: %w", err)
	}

	if office.ID == constant.Empty {
		return office, failure.NotFound("office not found") //nolint:wrapcheck
	}

	if office.UserID != user && role != constant.RoleAdmin {
		return office, failure.ResourceRestrictedError //nolint:wrapcheck
	}

	return office, nil
}
