package metric

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/healthbridge/records-api/internal/handler"
	"github.com/healthbridge/records-api/internal/model"
	"github.com/healthbridge/records-api/internal/service/metric"
	"github.com/healthbridge/records-api/pkg/apperror"
)

type Handler struct {
	svc *metric.Service
}

func NewHandler(svc *metric.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	metrics := r.Group("/healthmetrics")
	{
		metrics.GET("", h.ListMetrics)
		metrics.POST("", h.CreateMetric)
	}
}

func (h *Handler) ListMetrics(c *gin.Context) {
	userID, ok := handler.UserID(c)
	if !ok {
		handler.RespondError(c, apperror.Unauthorized("not authenticated"))
		return
	}

	metrics, err := h.svc.ListMetrics(c.Request.Context(), userID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(metrics))
}

func (h *Handler) CreateMetric(c *gin.Context) {
	userID, ok := handler.UserID(c)
	if !ok {
		handler.RespondError(c, apperror.Unauthorized("not authenticated"))
		return
	}

	var req model.CreateHealthMetricRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	created, err := h.svc.CreateMetric(c.Request.Context(), userID, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(created))
}
