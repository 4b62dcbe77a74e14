package emr

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/healthbridge/records-api/internal/handler"
	"github.com/healthbridge/records-api/internal/model"
	"github.com/healthbridge/records-api/internal/service/record"
	"github.com/healthbridge/records-api/pkg/apperror"
)

type Handler struct {
	svc *record.Service
}

func NewHandler(svc *record.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	emrs := r.Group("/emrs")
	{
		emrs.GET("", h.ListEMRs)
		emrs.POST("", h.CreateEMR)
		emrs.GET("/:id/labresults", h.ListLabResults)
		emrs.POST("/:id/labresults", h.CreateLabResult)
	}
}

func (h *Handler) ListEMRs(c *gin.Context) {
	userID, ok := handler.UserID(c)
	if !ok {
		handler.RespondError(c, apperror.Unauthorized("not authenticated"))
		return
	}

	emrs, err := h.svc.ListEMRs(c.Request.Context(), userID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(emrs))
}

func (h *Handler) CreateEMR(c *gin.Context) {
	userID, ok := handler.UserID(c)
	if !ok {
		handler.RespondError(c, apperror.Unauthorized("not authenticated"))
		return
	}

	var req model.CreateEMRRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	emr, err := h.svc.CreateEMR(c.Request.Context(), userID, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(emr))
}

func (h *Handler) ListLabResults(c *gin.Context) {
	userID, ok := handler.UserID(c)
	if !ok {
		handler.RespondError(c, apperror.Unauthorized("not authenticated"))
		return
	}

	emrID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid EMR ID"))
		return
	}

	results, err := h.svc.ListLabResults(c.Request.Context(), userID, emrID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(results))
}

func (h *Handler) CreateLabResult(c *gin.Context) {
	userID, ok := handler.UserID(c)
	if !ok {
		handler.RespondError(c, apperror.Unauthorized("not authenticated"))
		return
	}

	emrID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid EMR ID"))
		return
	}

	var req model.CreateLabResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	result, err := h.svc.CreateLabResult(c.Request.Context(), userID, emrID, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(result))
}
