package conversation

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/healthbridge/records-api/internal/handler"
	"github.com/healthbridge/records-api/internal/model"
	"github.com/healthbridge/records-api/internal/service/messaging"
	"github.com/healthbridge/records-api/pkg/apperror"
)

type Handler struct {
	svc *messaging.Service
}

func NewHandler(svc *messaging.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	conversations := r.Group("/conversations")
	{
		conversations.GET("", h.ListConversations)
		conversations.POST("", h.CreateConversation)
		conversations.GET("/:id/messages", h.ListMessages)
		conversations.POST("/:id/messages", h.PostMessage)
	}
}

func (h *Handler) ListConversations(c *gin.Context) {
	userID, ok := handler.UserID(c)
	if !ok {
		handler.RespondError(c, apperror.Unauthorized("not authenticated"))
		return
	}

	conversations, err := h.svc.ListConversations(c.Request.Context(), userID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(conversations))
}

func (h *Handler) CreateConversation(c *gin.Context) {
	userID, ok := handler.UserID(c)
	if !ok {
		handler.RespondError(c, apperror.Unauthorized("not authenticated"))
		return
	}

	var req model.CreateConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	conversation, err := h.svc.CreateConversation(c.Request.Context(), userID, req.Participants)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(conversation))
}

func (h *Handler) ListMessages(c *gin.Context) {
	userID, ok := handler.UserID(c)
	if !ok {
		handler.RespondError(c, apperror.Unauthorized("not authenticated"))
		return
	}

	conversationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid conversation ID"))
		return
	}

	messages, err := h.svc.ListMessages(c.Request.Context(), userID, conversationID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(messages))
}

func (h *Handler) PostMessage(c *gin.Context) {
	userID, ok := handler.UserID(c)
	if !ok {
		handler.RespondError(c, apperror.Unauthorized("not authenticated"))
		return
	}

	conversationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid conversation ID"))
		return
	}

	var req model.PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	message, err := h.svc.PostMessage(c.Request.Context(), userID, conversationID, req.Body)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(message))
}
