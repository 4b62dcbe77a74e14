package doctor

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

// RegisterRoutes mounts the doctor directory. The list endpoint sits behind
// the response cache middleware configured in the router.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, listMiddleware ...gin.HandlerFunc) {
	handlers := append(listMiddleware, h.ListDoctors)
	r.GET("/doctors", handlers...)
	r.GET("/doctors/:doctor_id", h.GetDoctor)
}

// ListDoctors is readable by any authenticated user.
func (h *Handler) ListDoctors(c *gin.Context) {
	doctors, err := h.svc.ListDoctors(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(doctors))
}

func (h *Handler) GetDoctor(c *gin.Context) {
	doctorID := c.Param("doctor_id")
	if !identifier.Valid(doctorID) {
		handler.RespondError(c, apperror.NotFound("doctor"))
		return
	}

	profile, err := h.svc.GetDoctor(c.Request.Context(), doctorID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(profile))
}
