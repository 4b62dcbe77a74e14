package appointment

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/healthbridge/records-api/internal/handler"
	"github.com/healthbridge/records-api/internal/model"
	"github.com/healthbridge/records-api/internal/service/appointment"
	"github.com/healthbridge/records-api/pkg/apperror"
)

type Handler struct {
	svc *appointment.Service
}

func NewHandler(svc *appointment.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	appointments := r.Group("/appointments")
	{
		appointments.GET("", h.ListAppointments)
		appointments.POST("", h.CreateAppointment)
		appointments.PATCH("/:id", h.UpdateStatus)
	}
}

func (h *Handler) ListAppointments(c *gin.Context) {
	userID, ok := handler.UserID(c)
	if !ok {
		handler.RespondError(c, apperror.Unauthorized("not authenticated"))
		return
	}

	appointments, err := h.svc.ListAppointments(c.Request.Context(), userID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(appointments))
}

func (h *Handler) CreateAppointment(c *gin.Context) {
	userID, ok := handler.UserID(c)
	if !ok {
		handler.RespondError(c, apperror.Unauthorized("not authenticated"))
		return
	}

	var req model.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	created, err := h.svc.CreateAppointment(c.Request.Context(), userID, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(created))
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	userID, ok := handler.UserID(c)
	if !ok {
		handler.RespondError(c, apperror.Unauthorized("not authenticated"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment ID"))
		return
	}

	var req model.UpdateAppointmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	updated, err := h.svc.UpdateStatus(c.Request.Context(), userID, id, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(updated))
}
