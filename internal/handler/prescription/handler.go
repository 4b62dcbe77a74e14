package prescription

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/healthbridge/records-api/internal/handler"
	"github.com/healthbridge/records-api/internal/model"
	"github.com/healthbridge/records-api/internal/service/export"
	"github.com/healthbridge/records-api/internal/service/record"
	"github.com/healthbridge/records-api/pkg/apperror"
)

type Handler struct {
	svc      *record.Service
	exporter *export.Service
}

func NewHandler(svc *record.Service, exporter *export.Service) *Handler {
	return &Handler{svc: svc, exporter: exporter}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	prescriptions := r.Group("/prescriptions")
	{
		prescriptions.GET("", h.ListPrescriptions)
		prescriptions.POST("", h.CreatePrescription)
		prescriptions.GET("/:id/download", h.DownloadPrescription)
	}
}

func (h *Handler) ListPrescriptions(c *gin.Context) {
	userID, ok := handler.UserID(c)
	if !ok {
		handler.RespondError(c, apperror.Unauthorized("not authenticated"))
		return
	}

	prescriptions, err := h.svc.ListPrescriptions(c.Request.Context(), userID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(prescriptions))
}

func (h *Handler) CreatePrescription(c *gin.Context) {
	userID, ok := handler.UserID(c)
	if !ok {
		handler.RespondError(c, apperror.Unauthorized("not authenticated"))
		return
	}

	var req model.CreatePrescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	prescription, err := h.svc.CreatePrescription(c.Request.Context(), userID, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(prescription))
}

// DownloadPrescription streams the PDF rendering to the owning patient.
func (h *Handler) DownloadPrescription(c *gin.Context) {
	userID, ok := handler.UserID(c)
	if !ok {
		handler.RespondError(c, apperror.Unauthorized("not authenticated"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid prescription ID"))
		return
	}

	prescription, err := h.svc.GetPrescriptionForDownload(c.Request.Context(), userID, id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	data, filename, err := h.exporter.RenderPrescription(prescription)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}
