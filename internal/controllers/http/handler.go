package http

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Pavel26ru/BruCup/internal/domain"
	"github.com/Pavel26ru/BruCup/internal/services"
)

type Handler struct {
	conversation *services.ConversationService
}

func NewHandler(conversation *services.ConversationService) *Handler {
	return &Handler{conversation: conversation}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.Use(requestID())
	r.POST("/events", h.HandleEvent)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Header("X-Request-ID", id)
		c.Set("requestID", id)
		c.Next()
	}
}

func (h *Handler) HandleEvent(c *gin.Context) {
	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ev := services.Event{
		ConversationID: req.ConversationID,
		User: services.UserIdentity{
			ID:        req.User.ID,
			Username:  req.User.Username,
			FirstName: req.User.FirstName,
			LastName:  req.User.LastName,
		},
		Kind:    services.EventKind(req.Kind),
		Payload: req.Payload,
		Message: domain.MessageRef{
			ChatID:    req.Message.ChatID,
			MessageID: req.Message.MessageID,
		},
	}

	reply, err := h.conversation.Handle(c.Request.Context(), ev)
	if err != nil {
		log.Printf("event %s: %v", c.GetString("requestID"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, EventResponse{
		Text:      reply.Text,
		Keyboard:  reply.Keyboard,
		Alert:     reply.Alert,
		Followups: reply.Followups,
	})
}
