package labreport

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/carebridge/portal-api/internal/handler"
	"github.com/carebridge/portal-api/internal/model"
	"github.com/carebridge/portal-api/internal/service/labreport"
)

type Handler struct {
	service labreport.LabReportService
}

func NewHandler(service labreport.LabReportService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	reports := r.Group("/lab-reports")
	{
		reports.GET("", h.ListReports)
		reports.POST("", h.AddReport)
		reports.POST("/:id/results", h.AddResult)
		reports.DELETE("/:id", h.RemoveReport)
	}
}

func (h *Handler) ListReports(c *gin.Context) {
	reports, err := h.service.List(c.Request.Context(), handler.UserID(c))
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(reports))
}

func (h *Handler) AddReport(c *gin.Context) {
	var req model.NewLabReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	report, err := h.service.Add(c.Request.Context(), handler.UserID(c), req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(report))
}

func (h *Handler) AddResult(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid report ID"))
		return
	}

	var req model.NewLabResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	report, err := h.service.AddResult(c.Request.Context(), handler.UserID(c), id, req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(report))
}

func (h *Handler) RemoveReport(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid report ID"))
		return
	}

	if err := h.service.Remove(c.Request.Context(), handler.UserID(c), id); err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}
