package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/routesettings-backend/internal/data/filters"
	"github.com/yungbote/routesettings-backend/internal/http/response"
	"github.com/yungbote/routesettings-backend/internal/platform/logger"
	"github.com/yungbote/routesettings-backend/internal/services"
)

type CriterionHandler struct {
	log      *logger.Logger
	criteria services.CriterionService
}

func NewCriterionHandler(log *logger.Logger, criteria services.CriterionService) *CriterionHandler {
	return &CriterionHandler{log: log.With("handler", "CriterionHandler"), criteria: criteria}
}

// GET /criteria returns a plain array, not a page.
func (h *CriterionHandler) ListCriteria(c *gin.Context) {
	f, err := filters.ParseCriterionFilter(c.Request.URL.Query())
	if err != nil {
		response.RespondServiceError(c, http.StatusBadRequest, badQuery(err))
		return
	}
	criteria, err := h.criteria.List(c.Request.Context(), f)
	if err != nil {
		h.log.Error("ListCriteria failed", "error", err)
		response.RespondServiceError(c, http.StatusInternalServerError, err)
		return
	}
	response.RespondOK(c, NewCriterionViews(criteria))
}
