package healthrecord

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/carebridge/portal-api/internal/handler"
	"github.com/carebridge/portal-api/internal/model"
	"github.com/carebridge/portal-api/internal/service/healthrecord"
)

type Handler struct {
	service healthrecord.HealthRecordService
}

func NewHandler(service healthrecord.HealthRecordService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	records := r.Group("/health-record")
	{
		records.GET("/personal-info", h.GetPersonalInfo)
		records.PUT("/personal-info", h.UpdatePersonalInfo)
		records.GET("/vitals", h.GetVitals)
		records.PUT("/vitals", h.UpdateVitals)
		records.GET("/lifestyle", h.GetLifestyle)
		records.PUT("/lifestyle", h.UpdateLifestyle)
	}
}

func (h *Handler) GetPersonalInfo(c *gin.Context) {
	info, err := h.service.GetPersonalInfo(c.Request.Context(), handler.UserID(c))
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(info))
}

func (h *Handler) UpdatePersonalInfo(c *gin.Context) {
	var patch model.PersonalInfoPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	info, err := h.service.UpdatePersonalInfo(c.Request.Context(), handler.UserID(c), patch)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(info))
}

func (h *Handler) GetVitals(c *gin.Context) {
	vitals, err := h.service.GetVitals(c.Request.Context(), handler.UserID(c))
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(vitals))
}

func (h *Handler) UpdateVitals(c *gin.Context) {
	var patch model.VitalsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	vitals, err := h.service.UpdateVitals(c.Request.Context(), handler.UserID(c), patch)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(vitals))
}

func (h *Handler) GetLifestyle(c *gin.Context) {
	lifestyle, err := h.service.GetLifestyle(c.Request.Context(), handler.UserID(c))
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(lifestyle))
}

func (h *Handler) UpdateLifestyle(c *gin.Context) {
	var patch model.LifestylePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	lifestyle, err := h.service.UpdateLifestyle(c.Request.Context(), handler.UserID(c), patch)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(lifestyle))
}
