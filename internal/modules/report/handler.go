package report

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"hoteldash/internal/middleware"
	"hoteldash/internal/pkg/response"
	"hoteldash/internal/pkg/validator"
	"hoteldash/internal/source"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the report endpoints. Export is limited to exportRoles when any are given.
func (h *Handler) RegisterRoutes(protected *gin.RouterGroup, exportRoles ...string) {
	g := protected.Group("/reports")
	{
		g.GET("", h.GetReport)
		if len(exportRoles) > 0 {
			g.GET("/export", middleware.RequireRole(exportRoles...), h.Export)
		} else {
			g.GET("/export", h.Export)
		}
	}
}

func (h *Handler) bindQuery(c *gin.Context) (Query, Range, bool) {
	var q Query
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid query parameters")
		return q, Range{}, false
	}
	if errs := validator.Validate(q); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeValidation,
			"type must be dashboard or rooms and dates must be YYYY-MM-DD", errs)
		return q, Range{}, false
	}
	rng, err := h.service.ResolveRange(q.FromDate, q.ToDate)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, err.Error())
		return q, Range{}, false
	}
	return q, rng, true
}

func (h *Handler) GetReport(c *gin.Context) {
	q, rng, ok := h.bindQuery(c)
	if !ok {
		return
	}
	sess, _ := middleware.CurrentSession(c)

	if q.Type == TypeRooms {
		res, err := h.service.Rooms(c.Request.Context(), sess)
		if err != nil {
			h.fail(c, err)
			return
		}
		response.Success(c, http.StatusOK, res)
		return
	}

	res, err := h.service.Dashboard(c.Request.Context(), sess, rng)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

func (h *Handler) Export(c *gin.Context) {
	_, rng, ok := h.bindQuery(c)
	if !ok {
		return
	}
	sess, _ := middleware.CurrentSession(c)

	data, name, err := h.service.Export(c.Request.Context(), sess, rng)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, xlsxContentType, data)
}

func (h *Handler) fail(c *gin.Context, err error) {
	_ = c.Error(err)
	if errors.Is(err, source.ErrUnauthorized) {
		response.Error(c, http.StatusUnauthorized, response.CodeSessionExpired, "Backend session expired, please sign in again")
		return
	}
	log.Error().Err(err).Msg("report failed")
	response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to build report")
}
