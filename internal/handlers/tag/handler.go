package tag

import (
	"net/http"

	"cowork/infras/otel"
	"cowork/internal/domains/tag/service"
	"cowork/shared/constant"
	"cowork/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Tag
	otel    otel.Otel
}

func New(service service.Tag, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/tags", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetTags)
	})
}

// GetTags retrieves the full amenity tag catalog.
// @Summary Get all tags
// @Description Retrieve the catalog of amenity tags offices can be labelled with.
// @Tags Tag
// @Accept json
// @Produce json
// @Success 200 {object} response.Data[dto.GetTagsResponse] "List of tags"
// @Failure 500 {object} response.Error
// @Router /v1/tags [get]
func (handler *Handler) GetTags(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTags")
	defer scope.End()

	tags, err := handler.service.GetAll(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get tags")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Tags retrieved successfully")

	response.WithJSON(w, http.StatusOK, tags)
}
