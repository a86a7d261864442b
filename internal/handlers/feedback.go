package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"medibook-server/internal/middleware"
	"medibook-server/internal/models"
	"medibook-server/internal/utils"
)

// FeedbackHandler handles patient feedback submission and public listing.
// Moderation lives on the admin handler.
type FeedbackHandler struct {
	DB *gorm.DB
}

// NewFeedbackHandler creates a new FeedbackHandler.
func NewFeedbackHandler(db *gorm.DB) *FeedbackHandler {
	return &FeedbackHandler{DB: db}
}

// SubmitFeedbackRequest is the body for a patient review.
type SubmitFeedbackRequest struct {
	DoctorID string `json:"doctorId"`
	Rating   int    `json:"rating" binding:"required,min=1,max=5"`
	Comment  string `json:"comment" binding:"required"`
}

// Submit stores a patient's feedback, hidden until an admin publishes it.
func (h *FeedbackHandler) Submit(c *gin.Context) {
	patientID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var req SubmitFeedbackRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	feedback := models.Feedback{
		PatientID: patientID,
		DoctorID:  req.DoctorID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if err := h.DB.Create(&feedback).Error; err != nil {
		utils.InternalServerError(c)
		return
	}

	utils.Created(c, "Feedback submitted successfully", feedback)
}

// ListPublished returns published feedback. Public endpoint.
func (h *FeedbackHandler) ListPublished(c *gin.Context) {
	query := h.DB.Where("published = ?", true).Order("created_at desc")
	if doctorID := c.Query("doctorId"); doctorID != "" {
		query = query.Where("doctor_id = ?", doctorID)
	}

	var feedbacks []models.Feedback
	if err := query.Find(&feedbacks).Error; err != nil {
		utils.InternalServerError(c)
		return
	}

	utils.Success(c, "Feedbacks fetched successfully", feedbacks)
}
