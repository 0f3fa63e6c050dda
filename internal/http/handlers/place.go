package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/routesettings-backend/internal/data/filters"
	"github.com/yungbote/routesettings-backend/internal/http/response"
	"github.com/yungbote/routesettings-backend/internal/platform/logger"
	"github.com/yungbote/routesettings-backend/internal/services"
)

type PlaceHandler struct {
	log    *logger.Logger
	places services.PlaceService
}

func NewPlaceHandler(log *logger.Logger, places services.PlaceService) *PlaceHandler {
	return &PlaceHandler{log: log.With("handler", "PlaceHandler"), places: places}
}

// GET /places
func (h *PlaceHandler) ListPlaces(c *gin.Context) {
	q := c.Request.URL.Query()
	f, err := filters.ParsePlaceFilter(q)
	if err != nil {
		response.RespondServiceError(c, http.StatusBadRequest, badQuery(err))
		return
	}
	page, err := filters.ParsePage(q)
	if err != nil {
		response.RespondServiceError(c, http.StatusBadRequest, badQuery(err))
		return
	}
	places, count, err := h.places.List(c.Request.Context(), f, page)
	if err != nil {
		h.log.Error("ListPlaces failed", "error", err)
		response.RespondServiceError(c, http.StatusInternalServerError, err)
		return
	}
	response.RespondPage(c, count, NewPlaceViews(places))
}

// GET /places/:id
func (h *PlaceHandler) GetPlace(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		response.RespondServiceError(c, http.StatusNotFound, errPlaceNotFound)
		return
	}
	place, err := h.places.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondServiceError(c, http.StatusInternalServerError, err)
		return
	}
	response.RespondOK(c, NewPlaceDetailView(place))
}
