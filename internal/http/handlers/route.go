package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"

	"github.com/yungbote/routesettings-backend/internal/data/filters"
	"github.com/yungbote/routesettings-backend/internal/http/response"
	"github.com/yungbote/routesettings-backend/internal/platform/logger"
	"github.com/yungbote/routesettings-backend/internal/services"
)

const maxRouteBody = 1 << 20

type RouteHandlerDeps struct {
	Log    *logger.Logger
	Routes services.RouteService
	Builds services.BuildService
	Guides services.GuideService
}

type RouteHandler struct {
	log    *logger.Logger
	routes services.RouteService
	builds services.BuildService
	guides services.GuideService
}

func NewRouteHandlerWithDeps(deps RouteHandlerDeps) *RouteHandler {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	return &RouteHandler{
		log:    log.With("handler", "RouteHandler"),
		routes: deps.Routes,
		builds: deps.Builds,
		guides: deps.Guides,
	}
}

// GET /routes
func (h *RouteHandler) ListRoutes(c *gin.Context) {
	q := c.Request.URL.Query()
	f, err := filters.ParseRouteFilter(q)
	if err != nil {
		response.RespondServiceError(c, http.StatusBadRequest, badQuery(err))
		return
	}
	page, err := filters.ParsePage(q)
	if err != nil {
		response.RespondServiceError(c, http.StatusBadRequest, badQuery(err))
		return
	}
	routes, count, err := h.routes.List(c.Request.Context(), f, page)
	if err != nil {
		h.log.Error("ListRoutes failed", "error", err)
		response.RespondServiceError(c, http.StatusInternalServerError, err)
		return
	}
	response.RespondPage(c, count, NewRouteListItemViews(routes))
}

// GET /routes/:uuid
func (h *RouteHandler) GetRoute(c *gin.Context) {
	id, ok := uuidParam(c, "uuid")
	if !ok {
		response.RespondServiceError(c, http.StatusNotFound, errRouteNotFound)
		return
	}
	route, err := h.routes.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondServiceError(c, http.StatusInternalServerError, err)
		return
	}
	response.RespondOK(c, NewRouteDetailView(route))
}

// POST /routes/
func (h *RouteHandler) CreateRoute(c *gin.Context) {
	in, _, err := readRouteInput(c, true)
	if err != nil {
		response.RespondServiceError(c, http.StatusBadRequest, err)
		return
	}
	route, err := h.routes.Create(c.Request.Context(), in)
	if err != nil {
		response.RespondServiceError(c, http.StatusBadRequest, err)
		return
	}
	response.RespondCreated(c, NewRouteDetailView(route))
}

// PUT /routes/:uuid/ replaces every field; omitted ones are cleared.
func (h *RouteHandler) ReplaceRoute(c *gin.Context) {
	h.update(c, true)
}

// PATCH /routes/:uuid/ touches only the fields present in the body.
func (h *RouteHandler) PatchRoute(c *gin.Context) {
	h.update(c, false)
}

func (h *RouteHandler) update(c *gin.Context, full bool) {
	id, ok := uuidParam(c, "uuid")
	if !ok {
		response.RespondServiceError(c, http.StatusNotFound, errRouteNotFound)
		return
	}
	in, fields, err := readRouteInput(c, full)
	if err != nil {
		response.RespondServiceError(c, http.StatusBadRequest, err)
		return
	}
	route, err := h.routes.Update(c.Request.Context(), id, in, fields)
	if err != nil {
		response.RespondServiceError(c, http.StatusBadRequest, err)
		return
	}
	response.RespondOK(c, NewRouteDetailView(route))
}

// DELETE /routes/:uuid/
func (h *RouteHandler) DeleteRoute(c *gin.Context) {
	id, ok := uuidParam(c, "uuid")
	if !ok {
		response.RespondServiceError(c, http.StatusNotFound, errRouteNotFound)
		return
	}
	if err := h.routes.Delete(c.Request.Context(), id); err != nil {
		response.RespondServiceError(c, http.StatusBadRequest, err)
		return
	}
	response.RespondNoContent(c)
}

// POST /routes/:uuid/build/
func (h *RouteHandler) BuildRoute(c *gin.Context) {
	id, ok := uuidParam(c, "uuid")
	if !ok {
		response.RespondServiceError(c, http.StatusNotFound, errRouteNotFound)
		return
	}
	if err := h.builds.Build(c.Request.Context(), id); err != nil {
		if errors.Is(err, services.ErrGatewayUnavailable) {
			h.log.Warn("route build dispatch failed", "route_uuid", id, "error", err)
		}
		response.RespondServiceError(c, http.StatusBadRequest, err)
		return
	}
	response.RespondNoContent(c)
}

// GET /routes/:uuid/guide/
func (h *RouteHandler) GetGuide(c *gin.Context) {
	id, ok := uuidParam(c, "uuid")
	if !ok {
		response.RespondServiceError(c, http.StatusNotFound, errRouteNotFound)
		return
	}
	guide, err := h.guides.Guide(c.Request.Context(), id)
	if err != nil {
		response.RespondServiceError(c, http.StatusInternalServerError, err)
		return
	}
	if guide.Stored() {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(guide.Text))
		return
	}
	c.HTML(http.StatusOK, "guide.html", guide.Context)
}

// readRouteInput decodes a route body and records which keys were sent.
// With full set every field counts as sent.
func readRouteInput(c *gin.Context, full bool) (services.RouteInput, services.FieldSet, error) {
	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxRouteBody))
	if err != nil {
		return services.RouteInput{}, services.FieldSet{}, fmt.Errorf("%w: read body: %v", services.ErrValidation, err)
	}
	return decodeRouteInput(raw, full)
}

func decodeRouteInput(raw []byte, full bool) (services.RouteInput, services.FieldSet, error) {
	var (
		in     services.RouteInput
		fields services.FieldSet
		body   map[string]json.RawMessage
	)
	if err := json.Unmarshal(raw, &body); err != nil || body == nil {
		return in, fields, fmt.Errorf("%w: body must be a JSON object", services.ErrValidation)
	}

	decode := func(key string, dst any) (bool, error) {
		v, ok := body[key]
		if !ok {
			return false, nil
		}
		if err := json.Unmarshal(v, dst); err != nil {
			return true, fmt.Errorf("%w: %s: %v", services.ErrValidation, key, err)
		}
		return true, nil
	}

	var err error
	if fields.Name, err = decode("name", &in.Name); err != nil {
		return in, fields, err
	}
	if fields.GuideDescription, err = decode("guide_description", &in.GuideDescription); err != nil {
		return in, fields, err
	}
	if fields.Criteria, err = decode("criteria", &in.Criteria); err != nil {
		return in, fields, err
	}
	if fields.Places, err = decode("places", &in.Places); err != nil {
		return in, fields, err
	}
	if full {
		fields = services.AllFields()
	}
	return in, fields, nil
}
