package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/studysync/tutor-scheduler/internal/httperr"
	"github.com/studysync/tutor-scheduler/internal/middleware"
	"github.com/studysync/tutor-scheduler/internal/models"
)

type MessageHandler struct {
	db *gorm.DB
}

func NewMessageHandler(db *gorm.DB) *MessageHandler {
	return &MessageHandler{db: db}
}

type SendMessageRequest struct {
	RecipientID uint   `json:"recipient_id" binding:"required"`
	Body        string `json:"body" binding:"required,max=2000"`
}

func (h *MessageHandler) Send(c *gin.Context) {
	senderID := c.MustGet(middleware.ContextUserID).(uint)

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid message payload.")
		return
	}

	if req.RecipientID == senderID {
		httperr.BadRequest(c, "self_message", "Cannot message yourself.")
		return
	}

	var recipient models.User
	if err := h.db.First(&recipient, req.RecipientID).Error; err != nil {
		httperr.NotFound(c, "recipient_not_found", "Recipient not found.")
		return
	}

	msg := models.Message{
		SenderID:    senderID,
		RecipientID: recipient.ID,
		Body:        req.Body,
	}

	if err := h.db.Create(&msg).Error; err != nil {
		httperr.Internal(c, "failed_to_send_message", "Could not send message.")
		return
	}

	c.JSON(201, msg)
}

// Thread returns the two-way conversation between the caller and one other
// user, oldest first.
func (h *MessageHandler) Thread(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	otherID, err := strconv.ParseUint(c.Param("userID"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_user_id", "Invalid user id.")
		return
	}

	var msgs []models.Message
	if err := h.db.
		Where(
			"(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
			userID, otherID, otherID, userID,
		).
		Order("created_at ASC").
		Find(&msgs).Error; err != nil {
		httperr.Internal(c, "failed_to_list_messages", "Could not list messages.")
		return
	}

	c.JSON(200, gin.H{
		"messages": msgs,
		"total":    len(msgs),
	})
}

// MarkRead marks everything the other user sent to the caller as read.
func (h *MessageHandler) MarkRead(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	otherID, err := strconv.ParseUint(c.Param("userID"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_user_id", "Invalid user id.")
		return
	}

	res := h.db.
		Model(&models.Message{}).
		Where("sender_id = ? AND recipient_id = ? AND read = false", otherID, userID).
		Update("read", true)

	if res.Error != nil {
		httperr.Internal(c, "failed_to_mark_read", "Could not mark messages read.")
		return
	}

	c.JSON(200, gin.H{"updated": res.RowsAffected})
}

// UnreadCount backs the inbox badge.
func (h *MessageHandler) UnreadCount(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var count int64
	if err := h.db.
		Model(&models.Message{}).
		Where("recipient_id = ? AND read = false", userID).
		Count(&count).Error; err != nil {
		httperr.Internal(c, "failed_to_count_unread", "Could not count unread messages.")
		return
	}

	c.JSON(200, gin.H{"unread": count})
}
