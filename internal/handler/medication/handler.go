package medication

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/carebridge/portal-api/internal/handler"
	"github.com/carebridge/portal-api/internal/model"
	"github.com/carebridge/portal-api/internal/service/medication"
)

type Handler struct {
	service medication.MedicationService
}

func NewHandler(service medication.MedicationService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	medications := r.Group("/medications")
	{
		medications.GET("", h.ListMedications)
		medications.POST("", h.AddMedication)
		medications.DELETE("/:id", h.RemoveMedication)
	}
}

func (h *Handler) ListMedications(c *gin.Context) {
	medications, err := h.service.List(c.Request.Context(), handler.UserID(c))
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(medications))
}

func (h *Handler) AddMedication(c *gin.Context) {
	var req model.NewMedicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	med, err := h.service.Add(c.Request.Context(), handler.UserID(c), req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(med))
}

func (h *Handler) RemoveMedication(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid medication ID"))
		return
	}

	if err := h.service.Remove(c.Request.Context(), handler.UserID(c), id); err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}
