package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Vishal-1503/AI-Voice-Based-Patient-Call-System/internal/domain"
	"github.com/Vishal-1503/AI-Voice-Based-Patient-Call-System/internal/store"
)

type sendMessageBody struct {
	SenderID    string `json:"senderId" binding:"required"`
	ReceiverID  string `json:"receiverId" binding:"required"`
	Content     string `json:"content" binding:"required"`
	MessageType string `json:"messageType"`
	ImageURL    string `json:"imageUrl"`
}

// SendMessage stores a direct message between two users.
func (h *Handlers) SendMessage(c *gin.Context) {
	var body sendMessageBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.fail(c, http.StatusBadRequest, err.Error())
		return
	}
	msg, err := h.store.CreateMessage(c.Request.Context(), store.CreateMessageParams{
		SenderID:    body.SenderID,
		ReceiverID:  body.ReceiverID,
		Content:     body.Content,
		MessageType: body.MessageType,
		ImageURL:    body.ImageURL,
	})
	if err != nil {
		h.failStore(c, "send message", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": msg,
	})
}

// GetConversation lists all messages between two users in chronological
// order.
func (h *Handlers) GetConversation(c *gin.Context) {
	userA := c.Query("userA")
	userB := c.Query("userB")
	if userA == "" || userB == "" {
		h.fail(c, http.StatusBadRequest, "userA and userB are required")
		return
	}
	messages, err := h.store.ListConversation(c.Request.Context(), userA, userB)
	if err != nil {
		h.failStore(c, "get conversation", err)
		return
	}
	if messages == nil {
		messages = []domain.Message{}
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"messages": messages,
	})
}

// MarkMessageRead flags a message as read and pushes a receipt to the
// sender's live connections.
func (h *Handlers) MarkMessageRead(c *gin.Context) {
	msg, err := h.store.MarkMessageRead(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.failStore(c, "mark message read", err)
		return
	}
	h.hub.BroadcastMessageRead(msg.SenderID, msg.ID)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": msg,
	})
}
