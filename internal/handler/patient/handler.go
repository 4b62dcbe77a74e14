package patient

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/healthbridge/records-api/internal/handler"
	"github.com/healthbridge/records-api/internal/service/identity"
	"github.com/healthbridge/records-api/pkg/apperror"
	"github.com/healthbridge/records-api/pkg/identifier"
)

type Handler struct {
	svc *identity.Service
}

func NewHandler(svc *identity.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/patients/:patient_id", h.GetPatient)
	r.GET("/doctor/patients", h.ListPatients)
}

// GetPatient is self-only: patients can read their own profile, everyone else
// gets NotFound.
func (h *Handler) GetPatient(c *gin.Context) {
	userID, ok := handler.UserID(c)
	if !ok {
		handler.RespondError(c, apperror.Unauthorized("not authenticated"))
		return
	}

	patientID := c.Param("patient_id")
	if !identifier.Valid(patientID) {
		handler.RespondError(c, apperror.NotFound("patient"))
		return
	}

	profile, err := h.svc.GetPatient(c.Request.Context(), userID, patientID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(profile))
}

// ListPatients is the doctor-only patient roster.
func (h *Handler) ListPatients(c *gin.Context) {
	userID, ok := handler.UserID(c)
	if !ok {
		handler.RespondError(c, apperror.Unauthorized("not authenticated"))
		return
	}

	patients, err := h.svc.ListPatientsForDoctor(c.Request.Context(), userID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(patients))
}
