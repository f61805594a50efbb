package image

import (
	"net/http"

	"cowork/infras/otel"
	"cowork/internal/domains/image/model/dto"
	"cowork/internal/domains/image/service"
	"cowork/shared/constant"
	"cowork/shared/failure"
	"cowork/shared/validator"
	"cowork/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Image
	otel    otel.Otel
}

func New(service service.Image, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/offices/{id}/images", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.UploadImage)
		routerGroup.Get("/", handler.GetImages)
		routerGroup.Delete("/{image_id}", handler.DeleteImage)
	})
}

// UploadImage uploads an image for an office.
// @Summary Upload an office image
// @Description Upload an image for an office owned by the authenticated user.
// @Tags Image
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Office ID"
// @Param image formData file true "Image file (jpeg, png or webp, max 5 MB)"
// @Success 201 {object} response.Data[dto.ImageResponse] "Image uploaded successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/offices/{id}/images [post]
// @Security BearerAuth
func (handler *Handler) UploadImage(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadImage")
	defer scope.End()

	officeID := chi.URLParam(request, constant.RequestParamID)

	if err := request.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(writer, err)

		return
	}

	file, fileHeader, err := request.FormFile(constant.FormFile)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to read image file from form")

		response.WithError(writer, failure.BadRequestFromString("image file is required"))

		return
	}
	defer file.Close()

	req := dto.UploadImageRequest{
		File:       file,
		FileHeader: *fileHeader,
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Upload(ctx, officeID, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload office image")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Office image uploaded successfully by user " + user)

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetImages retrieves all images of an office.
// @Summary Get office images
// @Description Retrieve all images attached to an office.
// @Tags Image
// @Accept json
// @Produce json
// @Param id path string true "Office ID"
// @Success 200 {object} response.Data[dto.GetImagesResponse] "List of office images"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/offices/{id}/images [get]
func (handler *Handler) GetImages(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetImages")
	defer scope.End()

	officeID := chi.URLParam(r, constant.RequestParamID)

	images, err := handler.service.GetAll(ctx, officeID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get office images")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Office images retrieved successfully")

	response.WithJSON(w, http.StatusOK, images)
}

// DeleteImage deletes an office image by its ID.
// @Summary Delete an office image
// @Description Delete an image from an office. The only image or the featured image cannot be deleted.
// @Tags Image
// @Accept json
// @Produce json
// @Param id path string true "Office ID"
// @Param image_id path string true "Image ID"
// @Success 200 {object} response.Message "Image deleted successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/offices/{id}/images/{image_id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteImage")
	defer scope.End()

	officeID := chi.URLParam(r, constant.RequestParamID)
	imageID := chi.URLParam(r, constant.RequestParamImageID)

	if err := handler.service.Delete(ctx, officeID, imageID); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete office image")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Office image deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Image deleted successfully")
}
