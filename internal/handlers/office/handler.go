package office

import (
	"net/http"
	"strconv"

	"cowork/infras/otel"
	"cowork/internal/domains/office/model"
	"cowork/internal/domains/office/model/dto"
	"cowork/internal/domains/office/repository"
	"cowork/internal/domains/office/service"
	"cowork/shared/constant"
	gDto "cowork/shared/dto"
	"cowork/shared/failure"
	"cowork/shared/validator"
	"cowork/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Office
	otel    otel.Otel
}

func New(service service.Office, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/offices", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateOffice)
		routerGroup.Get("/", handler.GetOffices)
		routerGroup.Get("/{id}", handler.GetOfficeByID)
		routerGroup.Patch("/{id}", handler.UpdateOffice)
		routerGroup.Delete("/{id}", handler.DeleteOffice)
	})
}

// CreateOffice handles the creation of a new office listing.
// @Summary Create a new office
// @Description Create a new office listing. New listings start in pending approval and are not reservable.
// @Tags Office
// @Accept json
// @Produce json
// @Param request body dto.CreateOfficeRequest true "Create Office Request"
// @Success 201 {object} response.Data[dto.OfficeResponse] "Office created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/offices [post]
// @Security BearerAuth
func (handler *Handler) CreateOffice(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateOffice")
	defer scope.End()

	req := dto.CreateOfficeRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create office")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Office created successfully by user " + user)

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetOffices retrieves all publicly visible offices based on query parameters.
// @Summary Get all offices
// @Description Retrieve approved, visible offices with optional filtering and pagination. Owners filtering by their own user_id also see their hidden and pending offices.
// @Tags Office
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param title query string false "Filter by title"
// @Param user_id query string false "Filter by owner ID"
// @Param visitor_id query string false "Filter to offices the visitor has reserved"
// @Param lat query number false "Order by distance from this latitude (requires lng)"
// @Param lng query number false "Order by distance from this longitude (requires lat)"
// @Success 200 {object} response.Data[dto.GetOfficesResponse] "List of offices"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/offices [get]
func (handler *Handler) GetOffices(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOffices")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	title := r.URL.Query().Get(model.FieldTitle)
	ownerID := r.URL.Query().Get(model.FieldUserID)
	visitorID := r.URL.Query().Get("visitor_id")
	latParam := r.URL.Query().Get(model.FieldLat)
	lngParam := r.URL.Query().Get(model.FieldLng)

	requester, _ := ctx.Value(constant.ContextKeyUserID).(string)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  repository.ListingFilters(ownerID, requester),
	}

	if title != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldTitle,
			Operator: gDto.FilterOperatorLike,
			Value:    title,
			Table:    model.TableName,
		})
	}

	if ownerID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldUserID,
			Operator: gDto.FilterOperatorEq,
			Value:    ownerID,
			Table:    model.TableName,
		})
	}

	if visitorID != "" {
		filterGroup.Filters = append(filterGroup.Filters, repository.ReservedByFilter(visitorID))
	}

	if latParam != "" || lngParam != "" {
		lat, latErr := strconv.ParseFloat(latParam, 64)
		lng, lngErr := strconv.ParseFloat(lngParam, 64)

		if latErr != nil || lngErr != nil {
			err := failure.BadRequestFromString("lat and lng must both be valid coordinates")
			scope.TraceError(err)
			log.Error().Str("lat", latParam).Str("lng", lngParam).Msg("invalid coordinates on office listing")

			response.WithError(w, err)

			return
		}

		queryParams.SortBy = repository.NearestToOrder(lat, lng)
		queryParams.SortDir = gDto.SortDirAsc
	}

	offices, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get offices")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Offices retrieved successfully")

	response.WithJSON(w, http.StatusOK, offices)
}

// GetOfficeByID retrieves an office by its ID.
// @Summary Get an office by ID
// @Description Retrieve an office by its unique identifier. Hidden or pending offices are only visible to their owner.
// @Tags Office
// @Accept json
// @Produce json
// @Param id path string true "Office ID"
// @Success 200 {object} response.Data[dto.OfficeResponse] "Office details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/offices/{id} [get]
func (handler *Handler) GetOfficeByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOfficeByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	office, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get office by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Office retrieved successfully")

	response.WithJSON(w, http.StatusOK, office)
}

// UpdateOffice updates an existing office by its ID.
// @Summary Update an office by ID
// @Description Update an office listing. Changing the price, discount, or visibility resets approval to pending.
// @Tags Office
// @Accept json
// @Produce json
// @Param id path string true "Office ID"
// @Param request body dto.UpdateOfficeRequest true "Update Office Request"
// @Success 200 {object} response.Message "Office updated successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/offices/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateOffice(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateOffice")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateOfficeRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update office")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Office updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Office updated successfully")
}

// DeleteOffice soft-deletes an office by its ID.
// @Summary Delete an office by ID
// @Description Soft-delete an office listing. Offices with active reservations cannot be deleted.
// @Tags Office
// @Accept json
// @Produce json
// @Param id path string true "Office ID"
// @Success 200 {object} response.Message "Office deleted successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/offices/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteOffice(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteOffice")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete office")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Office deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Office deleted successfully")
}
