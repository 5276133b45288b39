package metric

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/carebridge/portal-api/internal/handler"
	"github.com/carebridge/portal-api/internal/model"
	"github.com/carebridge/portal-api/internal/service/metric"
)

type Handler struct {
	service metric.MetricService
}

func NewHandler(service metric.MetricService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	metrics := r.Group("/health-metrics")
	{
		metrics.GET("", h.GetMetrics)
		metrics.GET("/:name", h.GetSeries)
		metrics.POST("/readings", h.AddReading)
	}
}

func (h *Handler) GetMetrics(c *gin.Context) {
	metrics, err := h.service.GetAll(c.Request.Context(), handler.UserID(c))
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(metrics))
}

func (h *Handler) GetSeries(c *gin.Context) {
	series, err := h.service.GetSeries(c.Request.Context(), handler.UserID(c), c.Param("name"))
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(series))
}

func (h *Handler) AddReading(c *gin.Context) {
	var req model.NewReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	metrics, err := h.service.AddReading(c.Request.Context(), handler.UserID(c), req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(metrics))
}
