package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"medibook-server/internal/middleware"
	"medibook-server/internal/models"
	"medibook-server/internal/scheduling"
	"medibook-server/internal/utils"
)

// MessageHandler exposes the consultation thread attached to an appointment.
// Plain request/response CRUD; there is no push or real-time delivery.
type MessageHandler struct {
	DB      *gorm.DB
	Manager *scheduling.Manager
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(db *gorm.DB, manager *scheduling.Manager) *MessageHandler {
	return &MessageHandler{DB: db, Manager: manager}
}

// threadAccess loads the appointment and verifies the caller is the involved
// patient, the involved doctor, or an admin.
func (h *MessageHandler) threadAccess(c *gin.Context) (*models.Appointment, bool) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return nil, false
	}
	role, _ := middleware.GetUserRoleFromContext(c)

	appointment, err := h.Manager.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondSchedulingError(c, err)
		return nil, false
	}

	if role != models.RoleAdmin && userID != appointment.PatientID && userID != appointment.DoctorID {
		utils.Forbidden(c, "You are not part of this consultation")
		return nil, false
	}
	return appointment, true
}

// ListThread returns an appointment's consultation messages, oldest first.
func (h *MessageHandler) ListThread(c *gin.Context) {
	appointment, ok := h.threadAccess(c)
	if !ok {
		return
	}

	var messages []models.Message
	err := h.DB.Preload("Sender").
		Where("appointment_id = ?", appointment.ID).
		Order("created_at asc").
		Find(&messages).Error
	if err != nil {
		utils.InternalServerError(c)
		return
	}

	utils.Success(c, "Messages fetched successfully", messages)
}

// SendMessageRequest is the body for posting into a consultation thread.
type SendMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// SendMessage appends a message to the appointment's consultation thread.
func (h *MessageHandler) SendMessage(c *gin.Context) {
	appointment, ok := h.threadAccess(c)
	if !ok {
		return
	}
	senderID, _ := middleware.GetUserIDFromContext(c)

	var req SendMessageRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	message := models.Message{
		AppointmentID: appointment.ID,
		SenderID:      senderID,
		Content:       req.Content,
	}
	if err := h.DB.Create(&message).Error; err != nil {
		utils.InternalServerError(c)
		return
	}

	utils.Created(c, "Message sent successfully", message)
}

// MarkMessageRead stamps a message as read by the other party.
func (h *MessageHandler) MarkMessageRead(c *gin.Context) {
	appointment, ok := h.threadAccess(c)
	if !ok {
		return
	}

	now := time.Now()
	result := h.DB.Model(&models.Message{}).
		Where("id = ? AND appointment_id = ?", c.Param("messageId"), appointment.ID).
		Update("read_at", &now)
	if result.Error != nil {
		utils.InternalServerError(c)
		return
	}
	if result.RowsAffected == 0 {
		utils.NotFound(c, "Message not found")
		return
	}

	utils.Success(c, "Message marked as read", nil)
}
